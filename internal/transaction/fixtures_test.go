package transaction

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/vechain-sdk-go/internal/vcdm"
)

const (
	signerKeyHex   = "7582be841ca040aa940fff6c05773129e135623e41acce3e0b8ba520dc1ae26a"
	gasPayerKeyHex = "40de805e918403683fb9a6081c3fba072cdc5c88232c62a9509165122488dab7"
	recipient      = "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"

	undelegatedSigningHash = "0x2a1c25ce0d66f45276a5f308b99bf410e2fc7d5b6ea37a49f2ab9f1da9446478"
	undelegatedID          = "0xda90eaea52980bc4bb8d40cb2ff84d78433b3b4a6e7d50b75736c5e3e77b71ec"
	undelegatedUnsigned    = "f8540184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0"
	undelegatedSigned      = "f8970184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0b841f76f3c91a834165872aa9464fc55b03a13f46ea8d3b858e528fcceaf371ad6884193c3f313ff8effbb57fe4d1adc13dceb933bedbf9dbb528d2936203d5511df00"

	delegatedSigningHash = "0x005fb0b47dfd16b7f2f61bb17df791242bc37ed1fffe9b05fa55fb0fe069f9a3"
	delegatedID          = "0xd4d1ae152119bd7c9410844e70b82d6d42c15494f1d59b99f5808a90da403a98"
	delegatedUnsigned    = "f8550184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec101"
	delegatedSigned      = "f8d90184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec101b8822cec617320e27c7ddd4058c048328ca7288914a4b9c9a663a0f7673b774b1f2c3e4366ddc5a03724ad9aad72c8805cb7972a927638eee40718e2eb4e580d322d0124a1817609f0971ff356b0252958f6c1d8a23b872a14ac1ccaad88c2ce8d3aa535cdfb1d538e557e63735ab86051ecc2f8c5d2aa1cddd4129a23cbced6ab294b00"

	unusedSigningHash = "0xd6e8f162e3e08585ee8fcf81868e5bd57a59966fef218528339766ee2587726c"
	unusedID          = "0xd244b56d0ac6d05e6bb3c48867d3093e86414392d46e20f04ecaf026b6f8d20d"
	unusedUnsigned    = "f8610184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ecd01853078303030853078303030"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func ptr[T any](v T) *T {
	return &v
}

// legacyBody is the reference body used across the transaction vectors.
func legacyBody() Body {
	return Body{
		ChainTag:   1,
		BlockRef:   "0x00000000aabbccdd",
		Expiration: 32,
		Clauses: []Clause{
			{To: ptr(recipient), Value: big.NewInt(10000), Data: "0x000000606060"},
			{To: ptr(recipient), Value: big.NewInt(20000), Data: "0x000000606060"},
		},
		GasPriceCoef: ptr(uint8(128)),
		Gas:          21000,
		DependsOn:    nil,
		Nonce:        12345678,
	}
}

func delegatedBody() Body {
	b := legacyBody()
	b.Reserved = &Reserved{Features: FeatureDelegated}
	return b
}

func unusedBody() Body {
	b := legacyBody()
	b.Reserved = &Reserved{Features: FeatureDelegated, Unused: [][]byte{[]byte("0x000"), []byte("0x000")}}
	return b
}

func dynamicFeeBody() Body {
	b := legacyBody()
	b.GasPriceCoef = nil
	b.MaxFeePerGas = big.NewInt(10_000_000_000_000)
	b.MaxPriorityFeePerGas = big.NewInt(1_000_000)
	return b
}

func mustOf(t *testing.T, body Body) *Transaction {
	t.Helper()
	tx, err := Of(body, nil)
	require.NoError(t, err)
	return tx
}

func mustHash(t *testing.T, tx *Transaction, sender *vcdm.Address) vcdm.ThorID {
	t.Helper()
	h, err := tx.GetTransactionHash(sender)
	require.NoError(t, err)
	return h
}

func signerKey(t *testing.T) []byte {
	t.Helper()
	return mustHex(t, signerKeyHex)
}

func gasPayerKey(t *testing.T) []byte {
	t.Helper()
	return mustHex(t, gasPayerKeyHex)
}

func addressOf(t *testing.T, key []byte) vcdm.Address {
	t.Helper()
	addr, err := vcdm.AddressOfPrivateKey(key)
	require.NoError(t, err)
	return addr
}

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}
