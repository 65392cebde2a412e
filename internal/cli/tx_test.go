package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/vechain-sdk-go/internal/config"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

const (
	legacyBodyYAML = `chainTag: 1
blockRef: "0x00000000aabbccdd"
expiration: 32
clauses:
  - to: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
    value: 10000
    data: "0x000000606060"
  - to: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
    value: "20000"
    data: "0x000000606060"
gasPriceCoef: 128
gas: 21000
nonce: 12345678
`

	delegatedBodyYAML = legacyBodyYAML + `reserved:
  features: 1
`

	legacyUnsigned = "0xf8540184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0"
	legacySigned   = "0xf8970184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec0b841f76f3c91a834165872aa9464fc55b03a13f46ea8d3b858e528fcceaf371ad6884193c3f313ff8effbb57fe4d1adc13dceb933bedbf9dbb528d2936203d5511df00"
	legacyHash     = "0x2a1c25ce0d66f45276a5f308b99bf410e2fc7d5b6ea37a49f2ab9f1da9446478"
	legacyID       = "0xda90eaea52980bc4bb8d40cb2ff84d78433b3b4a6e7d50b75736c5e3e77b71ec"

	delegatedSigned = "0xf8d90184aabbccdd20f840df947567d83b7b8d80addcb281a71d54fc7b3364ffed82271086000000606060df947567d83b7b8d80addcb281a71d54fc7b3364ffed824e208600000060606081808252088083bc614ec101b8822cec617320e27c7ddd4058c048328ca7288914a4b9c9a663a0f7673b774b1f2c3e4366ddc5a03724ad9aad72c8805cb7972a927638eee40718e2eb4e580d322d0124a1817609f0971ff356b0252958f6c1d8a23b872a14ac1ccaad88c2ce8d3aa535cdfb1d538e557e63735ab86051ecc2f8c5d2aa1cddd4129a23cbced6ab294b00"
	delegatedID     = "0xd4d1ae152119bd7c9410844e70b82d6d42c15494f1d59b99f5808a90da403a98"
)

func gasPayerAddress(t *testing.T) string {
	t.Helper()
	h, err := vcdm.HexUIntOf(gasPayerKeyHex)
	require.NoError(t, err)
	addr, err := vcdm.AddressOfPrivateKey(h.Bytes())
	require.NoError(t, err)
	return addr.String()
}

func TestTxEncode(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", legacyBodyYAML)

	var v txView
	runJSON(t, home, &v, "tx", "encode", body)
	assert.Equal(t, "legacy", v.Type)
	assert.Equal(t, "unsigned", v.SignatureState)
	assert.False(t, v.Delegated)
	assert.Equal(t, legacyHash, v.SigningHash)
	assert.Equal(t, "37432", v.IntrinsicGas)
	assert.Equal(t, legacyUnsigned, v.Raw)
	assert.Empty(t, v.ID)
	assert.Empty(t, v.Origin)
}

func TestTxEncodeWithSignature(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", legacyBodyYAML)
	sig := "0x" + legacySigned[len(legacySigned)-130:]

	var v txView
	runJSON(t, home, &v, "tx", "encode", body, "--signature", sig)
	assert.Equal(t, "complete", v.SignatureState)
	assert.Equal(t, legacySigned, v.Raw)
	assert.Equal(t, legacyID, v.ID)
}

func TestTxSignLegacy(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", legacyBodyYAML)
	withMockSecrets(t, senderKeyHex)

	var v txView
	runJSON(t, home, &v, "tx", "sign", body)
	assert.Equal(t, "complete", v.SignatureState)
	assert.Equal(t, legacySigned, v.Raw)
	assert.Equal(t, legacyID, v.ID)
	assert.True(t, strings.EqualFold(senderAddress, v.Origin))
	assert.Empty(t, v.GasPayer)
}

func TestTxSignDelegated(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", delegatedBodyYAML)
	withMockSecrets(t, "0x"+senderKeyHex, gasPayerKeyHex)

	var v txView
	runJSON(t, home, &v, "tx", "sign", body)
	assert.True(t, v.Delegated)
	assert.Equal(t, delegatedSigned, v.Raw)
	assert.Equal(t, delegatedID, v.ID)
	assert.True(t, strings.EqualFold(senderAddress, v.Origin))
	assert.Equal(t, gasPayerAddress(t), v.GasPayer)
}

func TestTxSenderOnlyThenCosign(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", delegatedBodyYAML)
	withMockSecrets(t, senderKeyHex, gasPayerKeyHex)

	var partial txView
	runJSON(t, home, &partial, "tx", "sign", "--sender-only", body)
	assert.Equal(t, "sender-only", partial.SignatureState)
	assert.True(t, strings.EqualFold(senderAddress, partial.Origin))
	assert.Empty(t, partial.ID)

	var full txView
	runJSON(t, home, &full, "tx", "cosign", partial.Raw)
	assert.Equal(t, "complete", full.SignatureState)
	assert.Equal(t, delegatedSigned, full.Raw)
	assert.Equal(t, delegatedID, full.ID)
	assert.Equal(t, gasPayerAddress(t), full.GasPayer)
}

func TestTxCosignRejectsCompleteTransaction(t *testing.T) {
	home := testHome(t)
	withMockSecrets(t, gasPayerKeyHex)

	_, stderr, err := runCLI(t, home, "-o", "text", "tx", "cosign", delegatedSigned)
	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrInvalidTransactionField)
	assert.Contains(t, stderr, "sender only")
}

func TestTxSignErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		secrets []string
		args    []string
		want    *sdkerr.SDKError
		exit    int
	}{
		{
			name:    "malformed key",
			body:    legacyBodyYAML,
			secrets: []string{"not a key"},
			want:    sdkerr.ErrInvalidPrivateKey,
			exit:    sdkerr.ExitInput,
		},
		{
			name:    "zero key",
			body:    legacyBodyYAML,
			secrets: []string{strings.Repeat("0", 64)},
			want:    sdkerr.ErrInvalidPrivateKey,
			exit:    sdkerr.ExitInput,
		},
		{
			name:    "sender only on an undelegated body",
			body:    legacyBodyYAML,
			secrets: []string{senderKeyHex},
			args:    []string{"--sender-only"},
			want:    sdkerr.ErrNotDelegated,
			exit:    sdkerr.ExitState,
		},
		{
			name: "invalid body",
			body: "blockRef: \"0x01\"\nclauses: []\n",
			want: sdkerr.ErrInvalidTransactionField,
			exit: sdkerr.ExitInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := testHome(t)
			body := writeFile(t, "body.yaml", tc.body)
			withMockSecrets(t, tc.secrets...)

			args := append([]string{"-o", "json", "tx", "sign", body}, tc.args...)
			_, stderr, err := runCLI(t, home, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.exit, ExitCode(err))
			assert.Contains(t, stderr, `"code": "`+tc.want.Code+`"`)
		})
	}
}

func TestTxDecode(t *testing.T) {
	home := testHome(t)

	var v txView
	runJSON(t, home, &v, "tx", "decode", "--signed", legacySigned)
	assert.Equal(t, legacyID, v.ID)
	require.NotNil(t, v.Body)
	assert.Equal(t, uint8(1), v.Body.ChainTag)
	assert.Equal(t, "0x00000000aabbccdd", v.Body.BlockRef)
	assert.Equal(t, uint64(12345678), v.Body.Nonce)
	require.Len(t, v.Body.Clauses, 2)
	assert.Equal(t, "20000", v.Body.Clauses[1].Value)
	require.NotNil(t, v.Body.GasPriceCoef)
	assert.Equal(t, uint8(128), *v.Body.GasPriceCoef)
}

func TestTxDecodeText(t *testing.T) {
	home := testHome(t)

	stdout, _, err := runCLI(t, home, "-o", "text", "tx", "decode", legacyUnsigned)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unsigned")
	assert.Contains(t, stdout, "0x00000000aabbccdd")
	assert.Contains(t, stdout, legacyUnsigned)
}

func TestTxDecodeRejectsGarbage(t *testing.T) {
	home := testHome(t)

	_, _, err := runCLI(t, home, "-o", "json", "tx", "decode", "0xzz")
	require.Error(t, err)
	assert.ErrorIs(t, err, sdkerr.ErrInvalidInput)

	_, _, err = runCLI(t, home, "-o", "json", "tx", "decode", "0xc0")
	require.Error(t, err)
	assert.Equal(t, sdkerr.ExitInput, ExitCode(err))
}

func TestTxGas(t *testing.T) {
	home := testHome(t)
	body := writeFile(t, "body.yaml", legacyBodyYAML)

	var v gasView
	runJSON(t, home, &v, "tx", "gas", body)
	assert.Equal(t, 2, v.Clauses)
	assert.Equal(t, "37432", v.IntrinsicGas)
}

func TestParseBodyDefaults(t *testing.T) {
	cfg = config.Defaults()
	cfg.Network.Name = "testnet"
	cfg.Transaction.Expiration = 50
	cfg.Transaction.GasPriceCoef = 64

	body, err := parseBody([]byte(`blockRef: "0x00000000aabbccdd"
clauses:
  - to: null
    value: "0x10"
    data: "0x6080"
gas: 60000
reserved:
  features: 1
  unused: ["0x01"]
`))
	require.NoError(t, err)
	assert.Equal(t, config.ChainTagTestnet, body.ChainTag)
	assert.Equal(t, uint32(50), body.Expiration)
	require.NotNil(t, body.GasPriceCoef)
	assert.Equal(t, uint8(64), *body.GasPriceCoef)
	require.Len(t, body.Clauses, 1)
	assert.Nil(t, body.Clauses[0].To)
	assert.Equal(t, int64(16), body.Clauses[0].Value.Int64())
	require.NotNil(t, body.Reserved)
	assert.Equal(t, [][]byte{{0x01}}, body.Reserved.Unused)
}

func TestParseBodyDynamicFeeKeepsCoefUnset(t *testing.T) {
	cfg = config.Defaults()

	body, err := parseBody([]byte(`blockRef: "0x00000000aabbccdd"
maxFeePerGas: 10_000_000_000_000
maxPriorityFeePerGas: "0xf4240"
gas: 21000
`))
	require.NoError(t, err)
	assert.Nil(t, body.GasPriceCoef)
	assert.Equal(t, "10000000000000", body.MaxFeePerGas.String())
	assert.Equal(t, int64(1_000_000), body.MaxPriorityFeePerGas.Int64())
	assert.Equal(t, config.ChainTagMainnet, body.ChainTag)
}

func TestParseBodyErrors(t *testing.T) {
	cfg = config.Defaults()

	for name, doc := range map[string]string{
		"not yaml":     "clauses: [",
		"bad value":    "clauses:\n  - value: ten\n",
		"bad reserved": "reserved:\n  unused: [\"xyz\"]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseBody([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestVerboseLogsMetrics(t *testing.T) {
	home := testHome(t)

	_, _, err := runCLI(t, home, "-v", "-o", "json", "tx", "decode", "--signed", legacySigned)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".thorsdk", "thorsdk.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG]")
	assert.Contains(t, string(data), "decodes=")
}
