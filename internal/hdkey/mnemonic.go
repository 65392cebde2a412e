// Package hdkey derives secp256k1 account keys from BIP-39 mnemonics along
// BIP-32 paths, defaulting to the VeChain coin type 818.
package hdkey

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	"github.com/vechain/vechain-sdk-go/internal/secure"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// entropyBits maps the supported mnemonic lengths to their entropy size.
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

func invalidMnemonic() error {
	// The message never echoes the words back.
	return sdkerr.WithSuggestion(
		sdkerr.Newf(sdkerr.ErrInvalidMnemonic, "invalid mnemonic words given as input"),
		"check the word count (12, 15, 18, 21 or 24), the spelling and the word order")
}

// GenerateMnemonic creates a new English BIP-39 mnemonic of wordCount words.
func GenerateMnemonic(wordCount int) (string, error) {
	bits, ok := entropyBits[wordCount]
	if !ok {
		return "", sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidInput, "word count must be one of 12, 15, 18, 21, 24"),
			map[string]string{"words": strconv.Itoa(wordCount)})
	}

	entropy, err := secure.RandomSecureBytes(bits / 8)
	if err != nil {
		return "", sdkerr.WithCause(sdkerr.ErrGeneral, err)
	}
	defer entropy.Destroy()

	mnemonic, err := bip39.NewMnemonic(entropy.Bytes())
	if err != nil {
		return "", sdkerr.WithCause(sdkerr.ErrGeneral, err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks word count, word validity and checksum.
func ValidateMnemonic(mnemonic string) error {
	normalized := NormalizeMnemonicInput(mnemonic)
	if _, ok := entropyBits[len(strings.Fields(normalized))]; !ok {
		return invalidMnemonic()
	}
	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		return invalidMnemonic()
	}
	return nil
}

// NormalizeMnemonicInput lower-cases pasted input, drops list numbering,
// bullets and commas, and collapses whitespace to single spaces.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// MnemonicToSeed validates mnemonic and returns its 64-byte BIP-39 seed.
// The caller should zero the seed after use.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.NewSeed(NormalizeMnemonicInput(mnemonic), passphrase), nil
}

// IsValidWord reports whether word is in the English BIP-39 word list.
func IsValidWord(word string) bool {
	_, ok := bip39.GetWordIndex(strings.ToLower(word))
	return ok
}

// MaxTypoDistance is the largest Levenshtein distance SuggestWord accepts.
const MaxTypoDistance = 2

// TypoInfo describes a word that is not in the word list.
type TypoInfo struct {
	Index      int    // 0-based word position
	Word       string // as typed
	Suggestion string // closest valid word, empty if none is close enough
	Distance   int
}

// SuggestWord returns the closest BIP-39 word to input, or "" when nothing
// lies within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string
	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos lists the words of mnemonic that are not BIP-39 words.
func DetectTypos(mnemonic string) []TypoInfo {
	var typos []TypoInfo
	for i, word := range strings.Fields(NormalizeMnemonicInput(mnemonic)) {
		if IsValidWord(word) {
			continue
		}
		info := TypoInfo{Index: i, Word: word, Suggestion: SuggestWord(word)}
		if info.Suggestion != "" {
			info.Distance = levenshtein.ComputeDistance(word, info.Suggestion)
		}
		typos = append(typos, info)
	}
	return typos
}

// FormatTypoSuggestions renders typos one per line, 1-indexed.
func FormatTypoSuggestions(typos []TypoInfo) string {
	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Word ")
		b.WriteString(strconv.Itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a valid BIP39 word")
		}
	}
	return b.String()
}
