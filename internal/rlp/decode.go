package rlp

import (
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Decode decodes a single RLP item that must span the whole input. Byte
// strings decode to []byte and lists to []any.
//
// Decoding is strict: only the canonical encoding of a value is accepted, so
// every value has exactly one valid byte representation.
func Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: empty input")
	}
	item, rest, err := decodeItem(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: %d trailing bytes after item", len(rest))
	}
	return item, nil
}

func decodeItem(data []byte) (any, []byte, error) {
	if len(data) == 0 {
		return nil, nil, errTruncated()
	}

	isList, offset, length, err := readHeader(data)
	if err != nil {
		return nil, nil, err
	}
	end := offset + length
	if end > uint64(len(data)) {
		return nil, nil, errTruncated()
	}
	payload := data[offset:end]
	rest := data[end:]

	if !isList {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, rest, nil
	}

	items := make([]any, 0)
	for len(payload) > 0 {
		var item any
		item, payload, err = decodeItem(payload)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}
	return items, rest, nil
}

// readHeader returns whether the item is a list, the offset of its payload
// and the payload length.
func readHeader(data []byte) (bool, uint64, uint64, error) {
	prefix := data[0]
	switch {
	case prefix < stringOffset:
		return false, 0, 1, nil

	case prefix <= stringOffset+shortLimit:
		length := uint64(prefix - stringOffset)
		if length == 1 {
			if len(data) < 2 {
				return false, 0, 0, errTruncated()
			}
			if data[1] < stringOffset {
				return false, 0, 0, sdkerr.Newf(sdkerr.ErrInvalidDataType,
					"rlp: non-canonical single byte 0x%02x", data[1])
			}
		}
		return false, 1, length, nil

	case prefix < listOffset:
		length, err := readLongLength(data, int(prefix-stringOffset-shortLimit))
		if err != nil {
			return false, 0, 0, err
		}
		return false, 1 + uint64(prefix-stringOffset-shortLimit), length, nil

	case prefix <= listOffset+shortLimit:
		return true, 1, uint64(prefix - listOffset), nil

	default:
		length, err := readLongLength(data, int(prefix-listOffset-shortLimit))
		if err != nil {
			return false, 0, 0, err
		}
		return true, 1 + uint64(prefix-listOffset-shortLimit), length, nil
	}
}

// readLongLength reads the big-endian length following a long-form header.
func readLongLength(data []byte, size int) (uint64, error) {
	if len(data) < 1+size {
		return 0, errTruncated()
	}
	raw := data[1 : 1+size]
	if raw[0] == 0 {
		return 0, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: length has leading zero bytes")
	}
	var length uint64
	for _, b := range raw {
		length = length<<8 | uint64(b)
	}
	if length <= shortLimit {
		return 0, sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: long form used for %d byte payload", length)
	}
	if length > uint64(len(data)) {
		return 0, errTruncated()
	}
	return length, nil
}

func errTruncated() error {
	return sdkerr.Newf(sdkerr.ErrInvalidDataType, "rlp: input is truncated")
}
