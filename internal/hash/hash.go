// Package hash provides the digests used by the Thor protocol: Blake2b-256 for
// transaction hashes, ids and certificates, and Keccak-256 for addresses.
package hash

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Size is the digest length in bytes of both hash functions.
const Size = 32

// Blake2b256 computes the unkeyed Blake2b-256 digest of the concatenated data.
func Blake2b256(data ...[]byte) []byte {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		// only reachable with an oversized key
		panic(err)
	}
	for _, b := range data {
		hasher.Write(b)
	}
	return hasher.Sum(nil)
}

// Blake2b256Hash is Blake2b256 returning a fixed-size array.
func Blake2b256Hash(data ...[]byte) [Size]byte {
	var h [Size]byte
	copy(h[:], Blake2b256(data...))
	return h
}

// Keccak256 computes the legacy Keccak-256 digest of the concatenated data.
func Keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range data {
		hasher.Write(b)
	}
	return hasher.Sum(nil)
}

// Keccak256Hash is Keccak256 returning a fixed-size array.
func Keccak256Hash(data ...[]byte) [Size]byte {
	var h [Size]byte
	copy(h[:], Keccak256(data...))
	return h
}
