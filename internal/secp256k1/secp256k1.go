// Package secp256k1 implements the key and signature primitives of the Thor
// protocol over the secp256k1 curve. Signatures are 65 bytes laid out as
// [R || S || V] where V is the recovery id (0 or 1).
package secp256k1

import (
	dsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/vechain/vechain-sdk-go/internal/secure"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

const (
	// PrivateKeyLength is the length of a raw private key.
	PrivateKeyLength = 32

	// MessageHashLength is the length of a digest accepted by Sign and Recover.
	MessageHashLength = 32

	// SignatureLength is the length of a recoverable signature.
	SignatureLength = 65

	// CompressedPublicKeyLength is the length of a compressed public key.
	CompressedPublicKeyLength = 33

	// UncompressedPublicKeyLength is the length of an uncompressed public key.
	UncompressedPublicKeyLength = 65

	// compactRecoveryBase is the header offset decred uses for
	// uncompressed-key compact signatures.
	compactRecoveryBase = 27

	maxKeyAttempts = 16
)

// GeneratePrivateKey returns a random private key in the valid curve range.
func GeneratePrivateKey() ([]byte, error) {
	for range maxKeyAttempts {
		candidate, err := secure.RandomBytes(PrivateKeyLength)
		if err != nil {
			return nil, sdkerr.WithCause(sdkerr.ErrInvalidPrivateKey, err)
		}
		if IsValidPrivateKey(candidate) {
			return candidate, nil
		}
		secure.Zero(candidate)
	}
	return nil, sdkerr.Newf(sdkerr.ErrInvalidPrivateKey, "unable to generate a private key in range")
}

// IsValidPrivateKey reports whether key is 32 bytes, non-zero and below the
// curve order.
func IsValidPrivateKey(key []byte) bool {
	if len(key) != PrivateKeyLength {
		return false
	}
	var scalar dsecp.ModNScalar
	overflow := scalar.SetByteSlice(key)
	valid := !overflow && !scalar.IsZero()
	scalar.Zero()
	return valid
}

// IsValidMessageHash reports whether hash has the digest length.
func IsValidMessageHash(hash []byte) bool {
	return len(hash) == MessageHashLength
}

// DerivePublicKey derives the public key of privateKey, serialized in
// compressed (33 bytes) or uncompressed (65 bytes) form.
func DerivePublicKey(privateKey []byte, compressed bool) ([]byte, error) {
	if !IsValidPrivateKey(privateKey) {
		return nil, sdkerr.ErrInvalidPrivateKey
	}
	priv := dsecp.PrivKeyFromBytes(privateKey)
	defer priv.Zero()

	if compressed {
		return priv.PubKey().SerializeCompressed(), nil
	}
	return priv.PubKey().SerializeUncompressed(), nil
}

// Sign produces a deterministic (RFC 6979) recoverable signature of hash.
func Sign(hash, privateKey []byte) ([]byte, error) {
	if !IsValidMessageHash(hash) {
		return nil, sdkerr.ErrInvalidMessageHash
	}
	if !IsValidPrivateKey(privateKey) {
		return nil, sdkerr.ErrInvalidPrivateKey
	}

	priv := dsecp.PrivKeyFromBytes(privateKey)
	defer priv.Zero()

	// SignCompact returns [V || R || S] with V = 27 + recovery id
	compact := ecdsa.SignCompact(priv, hash, false)
	if len(compact) != SignatureLength {
		return nil, sdkerr.ErrInvalidSignature
	}

	sig := make([]byte, SignatureLength)
	copy(sig[0:64], compact[1:65])
	sig[64] = compact[0] - compactRecoveryBase
	return sig, nil
}

// RecoverPublicKey recovers the uncompressed public key that produced sig
// over hash.
func RecoverPublicKey(hash, sig []byte) ([]byte, error) {
	if !IsValidMessageHash(hash) {
		return nil, sdkerr.ErrInvalidMessageHash
	}
	if len(sig) != SignatureLength {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidSignature,
			"signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	recovery := sig[64]
	if recovery > 1 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidSignature, "invalid signature recovery value %d", recovery)
	}

	compact := make([]byte, SignatureLength)
	compact[0] = recovery + compactRecoveryBase
	copy(compact[1:], sig[0:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrInvalidSignature, err)
	}
	return pub.SerializeUncompressed(), nil
}

// CompressPublicKey converts a public key to its 33-byte form. Compressed
// input is returned as a copy.
func CompressPublicKey(publicKey []byte) ([]byte, error) {
	pub, err := dsecp.ParsePubKey(publicKey)
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrInvalidDataType, err)
	}
	return pub.SerializeCompressed(), nil
}

// InflatePublicKey converts a public key to its 65-byte form.
func InflatePublicKey(publicKey []byte) ([]byte, error) {
	pub, err := dsecp.ParsePubKey(publicKey)
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrInvalidDataType, err)
	}
	return pub.SerializeUncompressed(), nil
}

// RandomBytes returns n bytes from the secure random source.
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType, "random byte length must be positive, got %d", n)
	}
	b, err := secure.RandomBytes(n)
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrGeneral, err)
	}
	return b, nil
}
