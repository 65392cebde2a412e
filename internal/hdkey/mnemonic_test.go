package hdkey

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Vectors from https://github.com/trezor/python-mnemonic/blob/master/vectors.json,
// seeds derived with the passphrase "TREZOR".
var bip39Vectors = []struct {
	mnemonic string
	seed     string
}{
	{
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		seed:     "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
	},
	{
		mnemonic: "legal winner thank year wave sausage worth useful legal winner thank yellow",
		seed:     "2e8905819b8723fe2c1d161860e5ee1830318dbf49a83bd451cfb8440c28bd6fa457fe1296106559a3c80937a1c1069be3a3a5bd381ee6260e8d9739fce1f607",
	},
	{
		mnemonic: "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
		seed:     "0cd6e5d827bb62eb8fc1e262254223817fd068a74b5b449cc2f667c3f1f985a76379b43348d952e2265b4cd129090758b3e3c2c49103b5051aac2eaeb890a528",
	},
	{
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
		seed:     "bda85446c68413707090a52022edd26a1c9462295029f2e60cd7c4f2bbd3097170af7a4d73245cafa9c3cca8d561a7c3de6f5d4a10be8ed2a5e608d68f92fcc8",
	},
}

func TestGenerateMnemonic(t *testing.T) {
	t.Parallel()

	for _, count := range []int{12, 15, 18, 21, 24} {
		mnemonic, err := GenerateMnemonic(count)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), count)
		require.NoError(t, ValidateMnemonic(mnemonic))
	}

	a, err := GenerateMnemonic(12)
	require.NoError(t, err)
	b, err := GenerateMnemonic(12)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateMnemonicInvalidWordCount(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, 11, 13, 25, -12} {
		_, err := GenerateMnemonic(count)
		require.ErrorIs(t, err, sdkerr.ErrInvalidInput)
	}
}

func TestValidateMnemonic(t *testing.T) {
	t.Parallel()

	for _, v := range bip39Vectors {
		require.NoError(t, ValidateMnemonic(v.mnemonic))
	}

	invalid := []struct {
		name     string
		mnemonic string
	}{
		{"invalid word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon xyz"},
		{"wrong word count", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
		{"invalid checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
		{"empty", ""},
		{"single word", "abandon"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, ValidateMnemonic(tc.mnemonic), sdkerr.ErrInvalidMnemonic)
		})
	}
}

func TestInvalidMnemonicDoesNotLeakWords(t *testing.T) {
	t.Parallel()

	words := "denial pet squirrel other broom bar gas better priority spoil cross"
	_, err := FromMnemonic(words, "")
	require.ErrorIs(t, err, sdkerr.ErrInvalidMnemonic)
	for _, w := range strings.Fields(words) {
		assert.NotContains(t, strings.Fields(err.Error()), w)
	}
}

func TestNormalizeMnemonicInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normalized", "abandon abandon about", "abandon abandon about"},
		{"surrounding whitespace", "  abandon abandon about  ", "abandon abandon about"},
		{"tabs and newlines", "abandon\tabandon\nabout", "abandon abandon about"},
		{"mixed case", "Abandon ABANDON About", "abandon abandon about"},
		{"commas", "abandon,abandon, about", "abandon abandon about"},
		{"numbered list", "1. abandon\n2) abandon\n3: about", "abandon abandon about"},
		{"bullets", "- abandon\n* abandon\n• about", "abandon abandon about"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, NormalizeMnemonicInput(tc.input))
		})
	}
}

func TestMnemonicToSeed(t *testing.T) {
	t.Parallel()

	for _, v := range bip39Vectors {
		seed, err := MnemonicToSeed(v.mnemonic, "TREZOR")
		require.NoError(t, err)
		assert.Equal(t, v.seed, hex.EncodeToString(seed))
	}

	plain, err := MnemonicToSeed(bip39Vectors[0].mnemonic, "")
	require.NoError(t, err)
	upper, err := MnemonicToSeed(strings.ToUpper(bip39Vectors[0].mnemonic), "")
	require.NoError(t, err)
	assert.Equal(t, plain, upper)
	assert.NotEqual(t, bip39Vectors[0].seed, hex.EncodeToString(plain))

	_, err = MnemonicToSeed("invalid mnemonic words here", "")
	require.ErrorIs(t, err, sdkerr.ErrInvalidMnemonic)
}

//nolint:misspell // intentional typos
func TestSuggestWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"abondon", "abandon"},
		{"abadon", "abandon"},
		{"abanddon", "abandon"},
		{"zooo", "zoo"},
		{"abandon", "abandon"},
		{"ABONDON", "abandon"},
		{"xyzqwerty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, SuggestWord(tc.input))
		})
	}
}

//nolint:misspell // intentional typos
func TestDetectTypos(t *testing.T) {
	t.Parallel()

	typos := DetectTypos("abondon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon xyzqwerty")
	require.Len(t, typos, 2)
	assert.Equal(t, TypoInfo{Index: 0, Word: "abondon", Suggestion: "abandon", Distance: 1}, typos[0])
	assert.Equal(t, TypoInfo{Index: 11, Word: "xyzqwerty"}, typos[1])

	assert.Equal(t,
		"Word 1: 'abondon' - did you mean 'abandon'?\nWord 12: 'xyzqwerty' is not a valid BIP39 word",
		FormatTypoSuggestions(typos))

	assert.Empty(t, DetectTypos(""))
	assert.Empty(t, DetectTypos(bip39Vectors[0].mnemonic))
	assert.Empty(t, FormatTypoSuggestions(nil))
	assert.True(t, IsValidWord("Zoo"))
	assert.False(t, IsValidWord("zooo"))
}
