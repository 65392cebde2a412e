package vcdm

import "strings"

// Quantity is an unsigned value rendered with the minimum number of digits,
// as the Thor REST API expects for numeric fields. Zero is "0x0".
type Quantity struct {
	HexUInt
}

// QuantityOf accepts the same inputs as HexUIntOf.
func QuantityOf(exp any) (Quantity, error) {
	if v, ok := exp.(Quantity); ok {
		return v, nil
	}
	u, err := HexUIntOf(exp)
	if err != nil {
		return Quantity{}, err
	}
	digits := strings.TrimLeft(u.digits, "0")
	if digits == "" {
		digits = "0"
	}
	return Quantity{HexUInt{Hex{digits: digits}}}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quantity) UnmarshalText(text []byte) error {
	v, err := QuantityOf(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}
