package vcdm

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

func TestHexOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected string
		sign     int
	}{
		{"bytes", []byte{0x00, 0xff}, "0x00ff", Positive},
		{"empty bytes", []byte{}, "0x", Positive},
		{"big int", big.NewInt(255), "0xff", Positive},
		{"negative big int", big.NewInt(-255), "-0xff", Negative},
		{"zero big int", big.NewInt(0), "0x0", Positive},
		{"int", 255, "0xff", Positive},
		{"negative int64", int64(-16), "-0x10", Negative},
		{"uint64", uint64(math.MaxUint64), "0xffffffffffffffff", Positive},
		{"prefixed string", "0xff", "0xff", Positive},
		{"upper case string", "0XFF", "0xff", Positive},
		{"bare string", "FF", "0xff", Positive},
		{"negative string", "-0xff", "-0xff", Negative},
		{"negative bare string", "-ff", "-0xff", Negative},
		{"empty string", "", "0x", Positive},
		{"prefix only", "0x", "0x", Positive},
		{"float", 255.0, "0x406fe000000000000000000000000000", Positive},
		{"negative float", -1.5, "-0xbff80000000000000000000000000000", Negative},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h, err := HexOf(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, h.String())
			assert.Equal(t, tc.sign, h.Sign())
		})
	}
}

func TestHexOfErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
	}{
		{"invalid characters", "0xzz"},
		{"double sign", "--0x1"},
		{"inner prefix", "0x0x1"},
		{"NaN", math.NaN()},
		{"infinity", math.Inf(1)},
		{"nil big int", (*big.Int)(nil)},
		{"unsupported type", struct{}{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := HexOf(tc.input)
			require.ErrorIs(t, err, sdkerr.ErrInvalidDataType)
		})
	}
}

func TestHexCrossRepresentationEquality(t *testing.T) {
	t.Parallel()

	fromBigInt := HexOfBigInt(big.NewInt(255))
	fromBytes := HexOfBytes([]byte{0xff})
	fromString := MustHexOf("0xff")
	fromFloat := MustHexOf(255.0)

	assert.True(t, fromBigInt.IsEqual(fromBytes))
	assert.True(t, fromBigInt.IsEqual(fromString))
	assert.False(t, fromBigInt.IsEqual(fromFloat))
}

func TestHexFloat64(t *testing.T) {
	t.Parallel()

	for _, f := range []float64{0, 1, -1.5, 255, math.Pi, math.MaxFloat64, -math.SmallestNonzeroFloat64} {
		h, err := HexOfFloat64(f)
		require.NoError(t, err)
		assert.True(t, h.IsNumber())

		got, err := h.Float64()
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := MustHexOf("0xff").Float64()
	require.ErrorIs(t, err, sdkerr.ErrInvalidDataType)
}

func TestHexBigIntAndBytes(t *testing.T) {
	t.Parallel()

	h := MustHexOf("-0xfff")
	assert.Equal(t, big.NewInt(-4095), h.BigInt())
	assert.Equal(t, []byte{0x0f, 0xff}, h.Bytes())
	assert.Equal(t, "0xfff", h.Abs().String())
	assert.Equal(t, "fff", h.Digits())

	assert.Equal(t, int64(0), MustHexOf("0x").BigInt().Int64())
	assert.Empty(t, MustHexOf("0x").Bytes())
}

func TestHexAlignToBytes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0x0fff", MustHexOf("0xfff").AlignToBytes().String())
	assert.Equal(t, "-0x0f", MustHexOf("-0xf").AlignToBytes().String())
	assert.Equal(t, "0xff", MustHexOf("0xff").AlignToBytes().String())
}

func TestHexFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		digits   int
		expected string
		wantErr  bool
	}{
		{"pad", "0xff", 4, "0x00ff", false},
		{"cut leading zeros", "0x000000ff", 2, "0xff", false},
		{"partial cut", "0x000000ff", 4, "0x00ff", false},
		{"same length", "0xabcd", 4, "0xabcd", false},
		{"keeps sign", "-0x0f", 4, "-0x000f", false},
		{"non-zero digit dropped", "0x1ff", 2, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := MustHexOf(tc.input).Fit(tc.digits)
			if tc.wantErr {
				require.ErrorIs(t, err, sdkerr.ErrInvalidDataType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.String())
		})
	}
}

func TestHexCompareTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"equal", "0xff", "0xff", 0},
		{"leading zeros ignored", "0x00ff", "0xff", 0},
		{"less", "0x01", "0x02", -1},
		{"greater", "0x0200", "0xff", 1},
		{"negative below positive", "-0x1", "0x1", -1},
		{"positive above negative", "0x1", "-0xff", 1},
		{"negatives compare numerically", "-0x2", "-0x1", -1},
		{"negative zero below zero", "-0x0", "0x00", -1},
		{"zero above negative zero", "0x0", "-0x00", 1},
		{"negative zeros", "-0x0", "-0x00", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a, b := MustHexOf(tc.a), MustHexOf(tc.b)
			assert.Equal(t, tc.expected, a.CompareTo(b))
			assert.Equal(t, tc.expected == 0, a.IsEqual(b))
		})
	}
}

func TestHexIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		valid   bool
		valid0x bool
	}{
		{"0xff", true, true},
		{"ff", true, false},
		{"-0xFF", true, true},
		{"0x", true, true},
		{"", true, false},
		{"0xzz", false, false},
		{"0x-1", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.valid, IsValid(tc.input))
			assert.Equal(t, tc.valid0x, IsValid0x(tc.input))
		})
	}
}

func TestRandomHex(t *testing.T) {
	t.Parallel()

	a, err := RandomHex(8)
	require.NoError(t, err)
	assert.Len(t, a.Digits(), 16)

	b, err := RandomHex(8)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digits(), b.Digits())

	_, err = RandomHex(0)
	require.ErrorIs(t, err, sdkerr.ErrInvalidDataType)
	_, err = RandomHex(-1)
	require.ErrorIs(t, err, sdkerr.ErrInvalidDataType)
}

func TestHexText(t *testing.T) {
	t.Parallel()

	var payload struct {
		Value Hex `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"value":"-0xABC"}`), &payload))
	assert.Equal(t, "-0xabc", payload.Value.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"-0xabc"}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"value":"0xgg"}`), &payload))
}
