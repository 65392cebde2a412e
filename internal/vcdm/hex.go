// Package vcdm implements the canonical value types of the Thor data model:
// hexadecimal values and the fixed-width identifiers built on them.
//
// Every type is an immutable value. Operations that change a value return a
// new one.
package vcdm

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/vechain/vechain-sdk-go/internal/secure"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

const (
	// Negative is the sign of a negative Hex value.
	Negative = -1
	// Positive is the sign of a zero or positive Hex value.
	Positive = 1

	// float64Digits is the digit count of an IEEE-754 encoded Hex value.
	float64Digits = 32
)

var (
	hexPattern       = regexp.MustCompile(`(?i)^-?(0x)?[0-9a-f]*$`)
	hexPrefixPattern = regexp.MustCompile(`(?i)^-?0x`)
)

// Hex is a signed hexadecimal value kept as a sign and a string of lowercase
// digits. Leading zeros are significant: 0x00ff and 0xff have different
// digits but compare equal.
type Hex struct {
	negative bool
	digits   string
}

// HexOf builds a Hex from a byte slice, a big integer, a Go integer or float,
// or a hexadecimal string with an optional sign and 0x prefix.
//
// Integer inputs keep integer provenance. Floating point inputs are encoded
// as their IEEE-754 bytes in a 16-byte buffer, so HexOf(255.0) and
// HexOf(255) are different values.
func HexOf(exp any) (Hex, error) {
	switch v := exp.(type) {
	case Hex:
		return v, nil
	case []byte:
		return HexOfBytes(v), nil
	case string:
		return HexOfString(v)
	case *big.Int:
		if v == nil {
			return Hex{}, sdkerr.Newf(sdkerr.ErrInvalidDataType, "not a hexadecimal expression: nil big.Int")
		}
		return HexOfBigInt(v), nil
	case big.Int:
		return HexOfBigInt(&v), nil
	case float64:
		return HexOfFloat64(v)
	case float32:
		return HexOfFloat64(float64(v))
	case int:
		return HexOfBigInt(big.NewInt(int64(v))), nil
	case int8:
		return HexOfBigInt(big.NewInt(int64(v))), nil
	case int16:
		return HexOfBigInt(big.NewInt(int64(v))), nil
	case int32:
		return HexOfBigInt(big.NewInt(int64(v))), nil
	case int64:
		return HexOfBigInt(big.NewInt(v)), nil
	case uint:
		return HexOfBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint8:
		return HexOfBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint16:
		return HexOfBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint32:
		return HexOfBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint64:
		return HexOfBigInt(new(big.Int).SetUint64(v)), nil
	case fmt.Stringer:
		return HexOfString(v.String())
	default:
		return Hex{}, sdkerr.Newf(sdkerr.ErrInvalidDataType, "not a hexadecimal expression: unsupported type %T", exp)
	}
}

// HexOfBytes encodes b as two digits per byte.
func HexOfBytes(b []byte) Hex {
	return Hex{digits: hex.EncodeToString(b)}
}

// HexOfBigInt encodes the integer without leading zeros. Zero has the single
// digit "0".
func HexOfBigInt(n *big.Int) Hex {
	return Hex{negative: n.Sign() < 0, digits: new(big.Int).Abs(n).Text(16)}
}

// HexOfFloat64 encodes f as its IEEE-754 big-endian bytes followed by eight
// zero bytes, giving 32 digits. Non-finite values are rejected.
func HexOfFloat64(f float64) (Hex, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Hex{}, sdkerr.Newf(sdkerr.ErrInvalidDataType, "not a hexadecimal expression: non-finite number %v", f)
	}
	buf := make([]byte, float64Digits/2)
	binary.BigEndian.PutUint64(buf, math.Float64bits(f))
	return Hex{negative: f < 0, digits: hex.EncodeToString(buf)}, nil
}

// HexOfString parses a case-insensitive hexadecimal expression with an
// optional leading '-' and optional 0x prefix. "0x" alone has no digits.
func HexOfString(s string) (Hex, error) {
	if !hexPattern.MatchString(s) {
		return Hex{}, sdkerr.Newf(sdkerr.ErrInvalidDataType, "not a hexadecimal expression: %q", s)
	}
	negative := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	if hexPrefixPattern.MatchString(s) {
		body = body[2:]
	}
	return Hex{negative: negative, digits: strings.ToLower(body)}, nil
}

// MustHexOf is HexOf that panics on error. It is meant for constants in
// tests and package initialization.
func MustHexOf(exp any) Hex {
	h, err := HexOf(exp)
	if err != nil {
		panic(err)
	}
	return h
}

// RandomHex returns a Hex of n random bytes.
func RandomHex(n int) (Hex, error) {
	if n <= 0 {
		return Hex{}, sdkerr.Newf(sdkerr.ErrInvalidDataType, "random hex length must be > 0, got %d", n)
	}
	b, err := secure.RandomBytes(n)
	if err != nil {
		return Hex{}, sdkerr.WithCause(sdkerr.ErrGeneral, err)
	}
	return HexOfBytes(b), nil
}

// IsValid reports whether s is a hexadecimal expression, with or without the
// 0x prefix.
func IsValid(s string) bool {
	return hexPattern.MatchString(s)
}

// IsValid0x reports whether s is a hexadecimal expression with the 0x prefix.
func IsValid0x(s string) bool {
	return hexPrefixPattern.MatchString(s) && hexPattern.MatchString(s)
}

// Sign returns Negative or Positive.
func (h Hex) Sign() int {
	if h.negative {
		return Negative
	}
	return Positive
}

// Digits returns the lowercase digits without sign or prefix.
func (h Hex) Digits() string {
	return h.digits
}

// Abs returns the value with a positive sign.
func (h Hex) Abs() Hex {
	return Hex{digits: h.digits}
}

// BigInt returns the signed integer value of the digits.
func (h Hex) BigInt() *big.Int {
	n := new(big.Int)
	if h.digits != "" {
		n.SetString(h.digits, 16)
	}
	if h.negative {
		n.Neg(n)
	}
	return n
}

// Bytes returns the digits as bytes, left-padded to a whole byte. The sign is
// not represented.
func (h Hex) Bytes() []byte {
	b, _ := hex.DecodeString(h.AlignToBytes().digits)
	return b
}

// Float64 decodes a value built from an IEEE-754 number. It fails unless the
// value has exactly 32 digits.
func (h Hex) Float64() (float64, error) {
	if !h.IsNumber() {
		return 0, sdkerr.Newf(sdkerr.ErrInvalidDataType, "not an IEEE 754 float 64 number: %s", h)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(h.Bytes()[:8])), nil
}

// IsNumber reports whether h has the 32 digits of an encoded float64.
func (h Hex) IsNumber() bool {
	return len(h.digits) == float64Digits
}

// AlignToBytes left-pads the digits to an even count.
func (h Hex) AlignToBytes() Hex {
	if len(h.digits)%2 == 0 {
		return h
	}
	return Hex{negative: h.negative, digits: "0" + h.digits}
}

// Fit pads with or strips leading zeros to get exactly n digits. It fails
// when a non-zero digit would be dropped.
func (h Hex) Fit(n int) (Hex, error) {
	switch {
	case n < len(h.digits):
		cue := 0
		for len(h.digits)-cue > n && h.digits[cue] == '0' {
			cue++
		}
		if len(h.digits)-cue == n {
			return Hex{negative: h.negative, digits: h.digits[cue:]}, nil
		}
		return Hex{}, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidDataType, "can't fit in %d digits", n),
			map[string]string{"hex": h.String()},
		)
	case n > len(h.digits):
		return Hex{negative: h.negative, digits: strings.Repeat("0", n-len(h.digits)) + h.digits}, nil
	default:
		return h, nil
	}
}

// CompareTo returns -1, 0 or +1. Any negative value sorts before any
// non-negative one, -0x0 included; values of the same sign compare
// numerically, ignoring leading zeros.
func (h Hex) CompareTo(that Hex) int {
	if h.negative != that.negative {
		if h.negative {
			return -1
		}
		return 1
	}
	return h.BigInt().Cmp(that.BigInt())
}

// IsEqual reports whether h and that have the same sign and numeric value.
func (h Hex) IsEqual(that Hex) bool {
	return h.CompareTo(that) == 0
}

// String returns the 0x prefixed digits, preceded by '-' when negative.
func (h Hex) String() string {
	if h.negative {
		return "-0x" + h.digits
	}
	return "0x" + h.digits
}

// MarshalText implements encoding.TextMarshaler.
func (h Hex) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hex) UnmarshalText(text []byte) error {
	v, err := HexOfString(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
