package transaction

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/vechain-sdk-go/internal/rlp"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

func TestDecodeVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		isSigned bool
		body     Body
		id       string
	}{
		{"undelegated unsigned", undelegatedUnsigned, false, legacyBody(), ""},
		{"undelegated signed", undelegatedSigned, true, legacyBody(), undelegatedID},
		{"delegated unsigned", delegatedUnsigned, false, delegatedBody(), ""},
		{"delegated signed", delegatedSigned, true, delegatedBody(), delegatedID},
		{"delegated with unused", unusedUnsigned, false, unusedBody(), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx, err := Decode(mustHex(t, tc.raw), tc.isSigned)
			require.NoError(t, err)
			assert.Equal(t, tc.body, tx.Body())
			assert.Equal(t, tc.isSigned, tx.IsSigned())
			assert.Equal(t, tc.raw, hex.EncodeToString(tx.Encoded()))

			if tc.id != "" {
				id, err := tx.ID()
				require.NoError(t, err)
				assert.Equal(t, tc.id, id.String())
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		isSigned bool
	}{
		{"signed data decoded as unsigned", undelegatedSigned, false},
		{"unsigned data decoded as signed", undelegatedUnsigned, true},
		{"truncated", undelegatedUnsigned[:40], false},
		{"not a list", "80", false},
		{"empty", "", false},
		{"type prefix only", "51", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(mustHex(t, tc.raw), tc.isSigned)
			require.ErrorIs(t, err, sdkerr.ErrInvalidTransactionField)
		})
	}
}

// reencodeReserved replaces the reserved list of an unsigned encoding.
func reencodeReserved(t *testing.T, raw string, reserved []any) []byte {
	t.Helper()
	decoded, err := rlp.Decode(mustHex(t, raw))
	require.NoError(t, err)
	fields := decoded.([]any)
	fields[len(fields)-1] = reserved
	out, err := rlp.Encode(fields)
	require.NoError(t, err)
	return out
}

func TestDecodeReserved(t *testing.T) {
	t.Parallel()

	untrimmed := reencodeReserved(t, delegatedUnsigned, []any{[]byte{0x01}, []byte{}})
	_, err := Decode(untrimmed, false)
	require.ErrorIs(t, err, sdkerr.ErrInvalidTransactionField)

	onlyEmpty := reencodeReserved(t, delegatedUnsigned, []any{[]byte{}})
	_, err = Decode(onlyEmpty, false)
	require.ErrorIs(t, err, sdkerr.ErrInvalidTransactionField)

	paddedFeatures := reencodeReserved(t, delegatedUnsigned, []any{[]byte{0x00, 0x01}})
	_, err = Decode(paddedFeatures, false)
	require.ErrorIs(t, err, sdkerr.ErrInvalidTransactionField)

	none := reencodeReserved(t, delegatedUnsigned, []any{})
	tx, err := Decode(none, false)
	require.NoError(t, err)
	assert.Nil(t, tx.Body().Reserved)
	assert.False(t, tx.IsDelegated())
}

func TestReservedEncodingIsTrimmed(t *testing.T) {
	t.Parallel()

	body := legacyBody()
	body.Reserved = &Reserved{Features: 0}
	tx := mustOf(t, body)
	assert.Equal(t, undelegatedUnsigned, hex.EncodeToString(tx.Encoded()))
	assert.Nil(t, tx.Body().Reserved)

	roundTrip, err := Decode(tx.Encoded(), false)
	require.NoError(t, err)
	assert.Equal(t, tx.Body(), roundTrip.Body())

	body.Reserved = &Reserved{Features: 0, Unused: [][]byte{{0x01}}}
	tx = mustOf(t, body)
	decoded, err := rlp.Decode(tx.Encoded())
	require.NoError(t, err)
	fields := decoded.([]any)
	assert.Equal(t, []any{[]byte{}, []byte{0x01}}, fields[len(fields)-1])
}

func TestDynamicFeeRoundTrip(t *testing.T) {
	t.Parallel()

	tx := mustOf(t, dynamicFeeBody())
	assert.Equal(t, TypeDynamicFee, tx.Type())

	encoded := tx.Encoded()
	require.NotEmpty(t, encoded)
	assert.Equal(t, byte(TypeDynamicFee), encoded[0])

	decoded, err := Decode(encoded, false)
	require.NoError(t, err)
	assert.Equal(t, dynamicFeeBody(), decoded.Body())
	assert.Equal(t, TypeDynamicFee, decoded.Type())

	signed, err := tx.Sign(signerKey(t))
	require.NoError(t, err)
	decodedSigned, err := Decode(signed.Encoded(), true)
	require.NoError(t, err)

	origin, err := decodedSigned.Origin()
	require.NoError(t, err)
	assert.Equal(t, addressOf(t, signerKey(t)).String(), origin.String())

	id1, err := signed.ID()
	require.NoError(t, err)
	id2, err := decodedSigned.ID()
	require.NoError(t, err)
	assert.True(t, id1.IsEqual(id2.Hex))
}

func TestDynamicFeeFieldOrder(t *testing.T) {
	t.Parallel()

	encoded := mustOf(t, dynamicFeeBody()).Encoded()
	decoded, err := rlp.Decode(encoded[1:])
	require.NoError(t, err)
	fields := decoded.([]any)

	// chainTag, blockRef, expiration, clauses, maxPriorityFeePerGas, maxFeePerGas, ...
	require.Len(t, fields, 10)
	assert.Equal(t, dynamicFeeBody().MaxPriorityFeePerGas.Bytes(), fields[4])
	assert.Equal(t, dynamicFeeBody().MaxFeePerGas.Bytes(), fields[5])
}

func TestDynamicFeeAndLegacyHashesDiffer(t *testing.T) {
	t.Parallel()

	legacy := mustOf(t, legacyBody())
	dynamic := mustOf(t, dynamicFeeBody())
	assert.False(t, mustHash(t, legacy, nil).IsEqual(mustHash(t, dynamic, nil).Hex))
}
