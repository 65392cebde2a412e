package vcdm

import (
	"math/big"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// HexUInt is a non-negative Hex.
type HexUInt struct {
	Hex
}

// HexUIntOf accepts the same inputs as HexOf and rejects negative values.
func HexUIntOf(exp any) (HexUInt, error) {
	switch v := exp.(type) {
	case HexUInt:
		return v, nil
	case HexInt:
		return v.HexUInt, nil
	}
	h, err := HexOf(exp)
	if err != nil {
		return HexUInt{}, err
	}
	return hexUIntOfHex(h)
}

func hexUIntOfHex(h Hex) (HexUInt, error) {
	if h.negative {
		return HexUInt{}, sdkerr.Newf(sdkerr.ErrInvalidDataType, "not an unsigned hexadecimal expression: %s", h)
	}
	return HexUInt{Hex: h}, nil
}

// Fit is Hex.Fit keeping the unsigned type.
func (h HexUInt) Fit(n int) (HexUInt, error) {
	fitted, err := h.Hex.Fit(n)
	if err != nil {
		return HexUInt{}, err
	}
	return HexUInt{Hex: fitted}, nil
}

// AlignToBytes is Hex.AlignToBytes keeping the unsigned type.
func (h HexUInt) AlignToBytes() HexUInt {
	return HexUInt{Hex: h.Hex.AlignToBytes()}
}

// Uint64 returns the value when it fits in 64 bits.
func (h HexUInt) Uint64() (uint64, error) {
	n := h.BigInt()
	if !n.IsUint64() {
		return 0, sdkerr.Newf(sdkerr.ErrInvalidDataType, "value %s overflows uint64", h)
	}
	return n.Uint64(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexUInt) UnmarshalText(text []byte) error {
	v, err := HexUIntOf(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// MaxSafeInteger is the largest integer an IEEE-754 double represents exactly.
const MaxSafeInteger = 1<<53 - 1

var maxSafeInteger = big.NewInt(MaxSafeInteger)

// HexInt is an unsigned hexadecimal integer that can be read back as a
// native integer while it stays in the IEEE-754 safe range.
type HexInt struct {
	HexUInt
}

// HexIntOf accepts the same inputs as HexUIntOf.
func HexIntOf(exp any) (HexInt, error) {
	if v, ok := exp.(HexInt); ok {
		return v, nil
	}
	u, err := HexUIntOf(exp)
	if err != nil {
		return HexInt{}, err
	}
	return HexInt{HexUInt: u}, nil
}

// Int64 returns the value, failing outside [0, MaxSafeInteger].
func (h HexInt) Int64() (int64, error) {
	n := h.BigInt()
	if n.Cmp(maxSafeInteger) > 0 {
		return 0, sdkerr.Newf(sdkerr.ErrInvalidDataType, "value %s is not in the safe integer range", h)
	}
	return n.Int64(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexInt) UnmarshalText(text []byte) error {
	v, err := HexIntOf(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
