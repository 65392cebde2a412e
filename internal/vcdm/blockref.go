package vcdm

import "encoding/binary"

const (
	// BlockRefDigits is the digit count of a BlockRef.
	BlockRefDigits = 16
	// ThorIDDigits is the digit count of a ThorID.
	ThorIDDigits = 64
)

// BlockRef references a block by the first eight bytes of its id. The first
// four bytes carry the block number.
type BlockRef struct {
	HexUInt
}

// BlockRefOf accepts the same inputs as HexUIntOf and fits the value to 16
// digits.
func BlockRefOf(exp any) (BlockRef, error) {
	if v, ok := exp.(BlockRef); ok {
		return v, nil
	}
	u, err := HexUIntOf(exp)
	if err != nil {
		return BlockRef{}, err
	}
	fitted, err := u.Fit(BlockRefDigits)
	if err != nil {
		return BlockRef{}, err
	}
	return BlockRef{fitted}, nil
}

// BlockRefOfID returns the reference of the block with the given id.
func BlockRefOfID(id ThorID) BlockRef {
	return BlockRef{HexUInt{Hex{digits: id.digits[:BlockRefDigits]}}}
}

// Number returns the block number.
func (b BlockRef) Number() uint32 {
	return binary.BigEndian.Uint32(b.Bytes()[:4])
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BlockRef) UnmarshalText(text []byte) error {
	v, err := BlockRefOf(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ThorID is a 32-byte identifier of a block or transaction.
type ThorID struct {
	HexUInt
}

// ThorIDOf accepts the same inputs as HexUIntOf and fits the value to 64
// digits.
func ThorIDOf(exp any) (ThorID, error) {
	if v, ok := exp.(ThorID); ok {
		return v, nil
	}
	u, err := HexUIntOf(exp)
	if err != nil {
		return ThorID{}, err
	}
	fitted, err := u.Fit(ThorIDDigits)
	if err != nil {
		return ThorID{}, err
	}
	return ThorID{fitted}, nil
}

// ThorIDOfHash wraps a 32-byte digest.
func ThorIDOfHash(h [32]byte) ThorID {
	return ThorID{HexUInt{HexOfBytes(h[:])}}
}

// IsValidThorID reports whether s is a 0x prefixed 64 digit expression.
func IsValidThorID(s string) bool {
	return len(s) == 2+ThorIDDigits && IsValid0x(s) && s[0] != '-'
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ThorID) UnmarshalText(text []byte) error {
	v, err := ThorIDOf(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
