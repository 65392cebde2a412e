// Package rlp implements Recursive Length Prefix encoding as used by the Thor
// transaction wire format, together with typed kinds that map structured
// values to and from RLP.
// See: https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/
package rlp

import (
	"math/big"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

const (
	stringOffset = 0x80
	listOffset   = 0xc0

	// shortLimit is the largest payload length encoded in the header byte.
	shortLimit = 55
)

// Encode encodes a value to RLP.
// Supported types: []byte, string (raw bytes), non-negative integers,
// *big.Int, nil (empty string), [][]byte and []any for lists.
func Encode(val any) ([]byte, error) {
	switch v := val.(type) {
	case nil:
		return []byte{stringOffset}, nil
	case []byte:
		return encodeBytes(v), nil
	case string:
		return encodeBytes([]byte(v)), nil
	case *big.Int:
		return encodeBigInt(v)
	case uint64:
		return encodeUint64(v), nil
	case uint:
		return encodeUint64(uint64(v)), nil
	case uint32:
		return encodeUint64(uint64(v)), nil
	case uint16:
		return encodeUint64(uint64(v)), nil
	case uint8:
		return encodeUint64(uint64(v)), nil
	case int:
		return encodeInt64(int64(v))
	case int64:
		return encodeInt64(v)
	case int32:
		return encodeInt64(int64(v))
	case [][]byte:
		items := make([]any, len(v))
		for i, b := range v {
			items[i] = b
		}
		return encodeList(items)
	case []any:
		return encodeList(v)
	default:
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: unsupported type %T", val)
	}
}

// encodeBytes encodes a byte slice.
// - For a single byte in [0x00, 0x7f], the byte is its own RLP encoding.
// - For 0-55 bytes, prefix with (0x80 + length).
// - For >55 bytes, prefix with (0xb7 + length of length) followed by length.
func encodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < stringOffset {
		return []byte{b[0]}
	}
	return concat(encodeLength(len(b), stringOffset), b)
}

// encodeBigInt encodes a non-negative big.Int. Zero is the empty string.
func encodeBigInt(i *big.Int) ([]byte, error) {
	if i == nil || i.Sign() == 0 {
		return []byte{stringOffset}, nil
	}
	if i.Sign() < 0 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: cannot encode negative integer %s", i)
	}
	return encodeBytes(i.Bytes()), nil
}

func encodeInt64(i int64) ([]byte, error) {
	if i < 0 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: cannot encode negative integer %d", i)
	}
	return encodeUint64(uint64(i)), nil
}

// encodeUint64 encodes a uint64 as RLP bytes.
func encodeUint64(i uint64) []byte {
	if i == 0 {
		return []byte{stringOffset}
	}
	return encodeBytes(bigEndianBytes(i))
}

// encodeList encodes a list of items.
// - For 0-55 total bytes, prefix with (0xc0 + length).
// - For >55 bytes, prefix with (0xf7 + length of length) followed by length.
func encodeList(items []any) ([]byte, error) {
	encodedItems := make([][]byte, len(items))
	totalLen := 0
	for i, item := range items {
		enc, err := Encode(item)
		if err != nil {
			return nil, err
		}
		encodedItems[i] = enc
		totalLen += len(enc)
	}

	content := make([]byte, 0, totalLen)
	for _, encoded := range encodedItems {
		content = append(content, encoded...)
	}
	return concat(encodeLength(len(content), listOffset), content), nil
}

// encodeLength encodes the length prefix for strings (offset=0x80) or lists (offset=0xc0).
func encodeLength(length int, offset byte) []byte {
	if length <= shortLimit {
		return []byte{offset + byte(length)} //nolint:gosec // G115: length <= 55, safe conversion
	}

	lenBytes := bigEndianBytes(uint64(length))
	return append([]byte{offset + shortLimit + byte(len(lenBytes))}, lenBytes...) //nolint:gosec // G115: len(lenBytes) <= 8 for any uint64
}

// bigEndianBytes converts a uint64 to minimal big-endian bytes (no leading zeros).
func bigEndianBytes(i uint64) []byte {
	if i == 0 {
		return nil
	}

	n := 0
	for v := i; v > 0; v >>= 8 {
		n++
	}

	result := make([]byte, n)
	for j := n - 1; j >= 0; j-- {
		result[j] = byte(i)
		i >>= 8
	}
	return result
}

func concat(slices ...[]byte) []byte {
	totalLen := 0
	for _, s := range slices {
		totalLen += len(s)
	}

	result := make([]byte, 0, totalLen)
	for _, s := range slices {
		result = append(result, s...)
	}
	return result
}
