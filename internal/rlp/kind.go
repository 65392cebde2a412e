package rlp

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strconv"

	"github.com/holiman/uint256"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Kind describes how a value maps to RLP. A Kind is a ScalarKind, a Struct or
// an Array.
type Kind interface {
	kind()
}

// ScalarKind converts a single value to and from an RLP byte string. The
// context names the field being processed and is reported in errors.
type ScalarKind interface {
	Kind
	EncodeValue(value any, context string) ([]byte, error)
	DecodeValue(data []byte, context string) (any, error)
}

// Field is a named member of a Struct.
type Field struct {
	Name string
	Kind Kind
}

// Struct encodes a map[string]any as a list of its fields in declaration
// order.
type Struct []Field

// Array encodes a []any as a list of items of the same kind.
type Array struct {
	Item Kind
}

func (Struct) kind() {}
func (Array) kind()  {}

var (
	decimalPattern = regexp.MustCompile(`^[0-9]+$`)
	hexPattern     = regexp.MustCompile(`(?i)^0x[0-9a-f]*$`)
)

func errKind(context, format string, args ...any) error {
	return sdkerr.WithDetails(
		sdkerr.Newf(sdkerr.ErrInvalidRLP, format, args...),
		map[string]string{"context": context},
	)
}

// NumericKind encodes a non-negative integer of at most MaxBytes bytes as its
// minimal big-endian representation.
type NumericKind struct {
	MaxBytes int
}

func (NumericKind) kind() {}

// EncodeValue accepts Go integers, *big.Int, decimal strings and 0x prefixed
// hexadecimal strings.
func (k NumericKind) EncodeValue(value any, context string) ([]byte, error) {
	n, err := k.toBig(value, context)
	if err != nil {
		return nil, err
	}
	u, overflow := uint256.FromBig(n)
	if overflow || (k.MaxBytes > 0 && u.ByteLen() > k.MaxBytes) {
		return nil, errKind(context, "expected number in %d bytes", k.MaxBytes)
	}
	return u.Bytes(), nil
}

func (k NumericKind) toBig(value any, context string) (*big.Int, error) {
	var n *big.Int
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, errKind(context, "expected non-nil number")
		}
		n = v
	case int:
		n = big.NewInt(int64(v))
	case int64:
		n = big.NewInt(v)
	case int32:
		n = big.NewInt(int64(v))
	case uint:
		n = new(big.Int).SetUint64(uint64(v))
	case uint64:
		n = new(big.Int).SetUint64(v)
	case uint32:
		n = new(big.Int).SetUint64(uint64(v))
	case uint8:
		n = new(big.Int).SetUint64(uint64(v))
	case string:
		parsed, err := parseNumericString(v)
		if err != nil {
			return nil, errKind(context, "%s", err.Error())
		}
		n = parsed
	default:
		return nil, errKind(context, "expected number, got %T", value)
	}
	if n.Sign() < 0 {
		return nil, errKind(context, "expected non-negative number")
	}
	return n, nil
}

func parseNumericString(s string) (*big.Int, error) {
	switch {
	case hexPattern.MatchString(s):
		if len(s) == 2 {
			return nil, fmt.Errorf("expected hex string with digits")
		}
		n, _ := new(big.Int).SetString(s[2:], 16)
		return n, nil
	case decimalPattern.MatchString(s):
		n, _ := new(big.Int).SetString(s, 10)
		return n, nil
	default:
		return nil, fmt.Errorf("expected non-negative integer string, got %q", s)
	}
}

// DecodeValue returns a *big.Int. Leading zero bytes are rejected.
func (k NumericKind) DecodeValue(data []byte, context string) (any, error) {
	if k.MaxBytes > 0 && len(data) > k.MaxBytes {
		return nil, errKind(context, "expected less than %d bytes", k.MaxBytes)
	}
	if len(data) > 0 && data[0] == 0 {
		return nil, errKind(context, "expected canonical integer (no leading zero bytes)")
	}
	return new(big.Int).SetBytes(data), nil
}

// BufferKind passes []byte through unchanged.
type BufferKind struct{}

func (BufferKind) kind() {}

// EncodeValue implements ScalarKind.
func (BufferKind) EncodeValue(value any, context string) ([]byte, error) {
	b, ok := value.([]byte)
	if !ok {
		return nil, errKind(context, "expected []byte, got %T", value)
	}
	return b, nil
}

// DecodeValue implements ScalarKind.
func (BufferKind) DecodeValue(data []byte, _ string) (any, error) {
	return data, nil
}

// HexBlobKind encodes an even-length 0x prefixed hex string as its bytes.
type HexBlobKind struct{}

func (HexBlobKind) kind() {}

// EncodeValue implements ScalarKind.
func (HexBlobKind) EncodeValue(value any, context string) ([]byte, error) {
	return hexBlobBytes(value, context)
}

// DecodeValue implements ScalarKind.
func (HexBlobKind) DecodeValue(data []byte, _ string) (any, error) {
	return "0x" + hex.EncodeToString(data), nil
}

func hexBlobBytes(value any, context string) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errKind(context, "expected string, got %T", value)
	}
	if !hexPattern.MatchString(s) {
		return nil, errKind(context, "expected hex string")
	}
	if len(s)%2 != 0 {
		return nil, errKind(context, "expected even length string")
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, errKind(context, "expected hex string")
	}
	return b, nil
}

// FixedHexBlobKind is a HexBlobKind of exactly Bytes bytes.
type FixedHexBlobKind struct {
	Bytes int
}

func (FixedHexBlobKind) kind() {}

// EncodeValue implements ScalarKind.
func (k FixedHexBlobKind) EncodeValue(value any, context string) ([]byte, error) {
	b, err := hexBlobBytes(value, context)
	if err != nil {
		return nil, err
	}
	if len(b) != k.Bytes {
		return nil, errKind(context, "expected %d bytes", k.Bytes)
	}
	return b, nil
}

// DecodeValue implements ScalarKind.
func (k FixedHexBlobKind) DecodeValue(data []byte, context string) (any, error) {
	if len(data) != k.Bytes {
		return nil, errKind(context, "expected %d bytes", k.Bytes)
	}
	return "0x" + hex.EncodeToString(data), nil
}

// OptionalFixedHexBlobKind is a FixedHexBlobKind where nil, a nil *string or
// an empty string encode as the empty byte string and decode back to nil.
type OptionalFixedHexBlobKind struct {
	Bytes int
}

func (OptionalFixedHexBlobKind) kind() {}

// EncodeValue implements ScalarKind.
func (k OptionalFixedHexBlobKind) EncodeValue(value any, context string) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return []byte{}, nil
	case *string:
		if v == nil {
			return []byte{}, nil
		}
		value = *v
	case string:
		if v == "" {
			return []byte{}, nil
		}
	}
	return FixedHexBlobKind(k).EncodeValue(value, context)
}

// DecodeValue implements ScalarKind.
func (k OptionalFixedHexBlobKind) DecodeValue(data []byte, context string) (any, error) {
	if len(data) == 0 {
		return nil, nil //nolint:nilnil // nil is the decoded absent value
	}
	return FixedHexBlobKind(k).DecodeValue(data, context)
}

// CompactFixedHexBlobKind encodes a fixed size hex string with its leading
// zero bytes removed. Decoding restores them.
type CompactFixedHexBlobKind struct {
	Bytes int
}

func (CompactFixedHexBlobKind) kind() {}

// EncodeValue implements ScalarKind.
func (k CompactFixedHexBlobKind) EncodeValue(value any, context string) ([]byte, error) {
	b, err := FixedHexBlobKind(k).EncodeValue(value, context)
	if err != nil {
		return nil, err
	}
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:], nil
}

// DecodeValue implements ScalarKind.
func (k CompactFixedHexBlobKind) DecodeValue(data []byte, context string) (any, error) {
	if len(data) > k.Bytes {
		return nil, errKind(context, "expected less than %d bytes", k.Bytes)
	}
	if len(data) > 0 && data[0] == 0 {
		return nil, errKind(context, "no leading zero bytes allowed")
	}
	padded := make([]byte, k.Bytes)
	copy(padded[k.Bytes-len(data):], data)
	return "0x" + hex.EncodeToString(padded), nil
}

// Profile binds a Kind to a name used as the root of error contexts.
type Profile struct {
	Name string
	Kind Kind
}

// EncodeObject packs obj according to the profile and RLP encodes it.
func (p Profile) EncodeObject(obj any) ([]byte, error) {
	packed, err := pack(obj, p.Kind, p.Name)
	if err != nil {
		return nil, err
	}
	return Encode(packed)
}

// DecodeObject decodes data and unpacks it according to the profile.
// Structs decode to map[string]any and arrays to []any.
func (p Profile) DecodeObject(data []byte) (any, error) {
	packed, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return unpack(packed, p.Kind, p.Name)
}

func pack(obj any, k Kind, context string) (any, error) {
	switch kind := k.(type) {
	case ScalarKind:
		return kind.EncodeValue(obj, context)

	case Struct:
		fields, ok := obj.(map[string]any)
		if !ok {
			return nil, errKind(context, "expected object, got %T", obj)
		}
		out := make([]any, len(kind))
		for i, f := range kind {
			v, err := pack(fields[f.Name], f.Kind, context+"."+f.Name)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case Array:
		items, ok := obj.([]any)
		if !ok {
			return nil, errKind(context, "expected an array in %s", context)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := pack(item, kind.Item, context+".#"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	default:
		return nil, errKind(context, "unknown kind %T", k)
	}
}

func unpack(packed any, k Kind, context string) (any, error) {
	switch kind := k.(type) {
	case ScalarKind:
		b, ok := packed.([]byte)
		if !ok {
			return nil, errKind(context, "expected byte string")
		}
		return kind.DecodeValue(b, context)

	case Struct:
		parts, ok := packed.([]any)
		if !ok {
			return nil, errKind(context, "expected list")
		}
		if len(parts) != len(kind) {
			return nil, errKind(context, "expected %d items, but got %d", len(kind), len(parts))
		}
		out := make(map[string]any, len(kind))
		for i, f := range kind {
			v, err := unpack(parts[i], f.Kind, context+"."+f.Name)
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil

	case Array:
		parts, ok := packed.([]any)
		if !ok {
			return nil, errKind(context, "expected an array in %s", context)
		}
		out := make([]any, len(parts))
		for i, part := range parts {
			v, err := unpack(part, kind.Item, context+".#"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	default:
		return nil, errKind(context, "unknown kind %T", k)
	}
}

// ContextOf returns the field path reported by a kind error, or "".
func ContextOf(err error) string {
	var se *sdkerr.SDKError
	if sdkerr.As(err, &se) {
		return se.Details["context"]
	}
	return ""
}
