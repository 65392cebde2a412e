package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vechain/vechain-sdk-go/internal/hdkey"
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	"github.com/vechain/vechain-sdk-go/internal/secure"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // prompt functions are swapped out in tests
var (
	promptSecretFn   = promptSecret
	promptMnemonicFn = promptMnemonic
)

// promptSecret reads a line without echo when stdin is a terminal. The
// caller zeroes the result.
func promptSecret(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	fd := int(os.Stdin.Fd()) //nolint:gosec // G115: Fd() fits an int on supported platforms
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		out(os.Stderr, "\n")
		if err != nil {
			return nil, fmt.Errorf("reading secret: %w", err)
		}
		return secret, nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	return []byte(strings.TrimSpace(string(line))), nil
}

// promptPrivateKey asks for a hex private key on behalf of role.
func promptPrivateKey(role string) ([]byte, error) {
	secret, err := promptSecretFn(fmt.Sprintf("Enter %s private key (hex): ", role))
	if err != nil {
		return nil, err
	}
	defer secure.Zero(secret)

	key, err := vcdm.HexUIntOf(strings.TrimSpace(string(secret)))
	if err != nil {
		return nil, invalidKeyInput(role)
	}
	b := key.Bytes()
	if !secp256k1.IsValidPrivateKey(b) {
		secure.Zero(b)
		return nil, invalidKeyInput(role)
	}
	return b, nil
}

func invalidKeyInput(role string) error {
	return sdkerr.WithSuggestion(
		sdkerr.Newf(sdkerr.ErrInvalidPrivateKey, "invalid %s private key", role),
		"enter 32 bytes as 64 hex digits, with or without 0x")
}

// promptMnemonic reads a mnemonic and reports typos without echoing the
// valid words.
func promptMnemonic() (string, error) {
	secret, err := promptSecretFn("Enter mnemonic words: ")
	if err != nil {
		return "", err
	}
	defer secure.Zero(secret)

	mnemonic := hdkey.NormalizeMnemonicInput(string(secret))
	if err := hdkey.ValidateMnemonic(mnemonic); err != nil {
		if typos := hdkey.DetectTypos(mnemonic); len(typos) > 0 {
			return "", sdkerr.WithSuggestion(err, hdkey.FormatTypoSuggestions(typos))
		}
		return "", err
	}
	return mnemonic, nil
}
