package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vechain/vechain-sdk-go/internal/hdkey"
	"github.com/vechain/vechain-sdk-go/internal/output"
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	"github.com/vechain/vechain-sdk-go/internal/secure"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Generate and derive secp256k1 account keys",
	}

	keyGenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a random private key",
		Args:  cobra.NoArgs,
		RunE:  runKeyGenerate,
	}

	keyAddressCmd = &cobra.Command{
		Use:   "address",
		Short: "Print the address of a private key entered at a prompt",
		Args:  cobra.NoArgs,
		RunE:  runKeyAddress,
	}

	keyMnemonicCmd = &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a BIP-39 mnemonic",
		Args:  cobra.NoArgs,
		RunE:  runKeyMnemonic,
	}

	keyDeriveCmd = &cobra.Command{
		Use:   "derive",
		Short: "Derive account addresses from a mnemonic",
		Long: `Derive accounts from a mnemonic entered at a prompt.

Accounts are children of the configured derivation path, by default
m/44'/818'/0'/0.

Example:
  thorsdk key derive --count 5
  thorsdk key derive --index 3 --show-private`,
		Args: cobra.NoArgs,
		RunE: runKeyDerive,
	}

	keyWords       int
	keyIndex       uint32
	keyCount       uint32
	keyPath        string
	keyShowPrivate bool
	keyQR          bool
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenerateCmd, keyAddressCmd, keyMnemonicCmd, keyDeriveCmd)

	keyMnemonicCmd.Flags().IntVarP(&keyWords, "words", "w", 12, "number of words: 12, 15, 18, 21 or 24")
	keyDeriveCmd.Flags().Uint32Var(&keyIndex, "index", 0, "first account index (default from config)")
	keyDeriveCmd.Flags().Uint32Var(&keyCount, "count", 1, "number of accounts")
	keyDeriveCmd.Flags().StringVar(&keyPath, "path", "", "parent derivation path (default from config)")
	keyDeriveCmd.Flags().BoolVar(&keyShowPrivate, "show-private", false, "also print private keys")
	for _, c := range []*cobra.Command{keyGenerateCmd, keyAddressCmd} {
		c.Flags().BoolVar(&keyQR, "qr", false, "render the address as a QR code")
	}
}

type accountView struct {
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Address    string `json:"address" yaml:"address"`
	PublicKey  string `json:"publicKey" yaml:"publicKey"`
	PrivateKey string `json:"privateKey,omitempty" yaml:"privateKey,omitempty"`
}

func (v accountView) String() string {
	t := output.NewTable()
	if v.Path != "" {
		t.AddRow("path", v.Path)
	}
	t.AddRow("address", v.Address)
	t.AddRow("public key", v.PublicKey)
	if v.PrivateKey != "" {
		t.AddRow("private key", v.PrivateKey)
	}
	return strings.TrimSuffix(t.String(), "\n")
}

func accountOf(privateKey []byte, withPrivate bool) (accountView, error) {
	addr, err := vcdm.AddressOfPrivateKey(privateKey)
	if err != nil {
		return accountView{}, err
	}
	pub, err := secp256k1.DerivePublicKey(privateKey, true)
	if err != nil {
		return accountView{}, err
	}

	v := accountView{Address: addr.String(), PublicKey: vcdm.HexOfBytes(pub).String()}
	if withPrivate {
		v.PrivateKey = vcdm.HexOfBytes(privateKey).String()
	}
	return v, nil
}

func printAccount(cmd *cobra.Command, v accountView) error {
	if err := formatter.Print(v); err != nil {
		return err
	}
	if keyQR && formatter.IsText() {
		return output.RenderQR(cmd.OutOrStdout(), v.Address, output.DefaultQRConfig())
	}
	return nil
}

func runKeyGenerate(cmd *cobra.Command, _ []string) error {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return err
	}
	defer secure.Zero(key)

	v, err := accountOf(key, true)
	if err != nil {
		return err
	}
	if formatter.IsText() {
		output.Warnf(cmd.ErrOrStderr(), "store the private key securely; it is not saved anywhere")
	}
	return printAccount(cmd, v)
}

func runKeyAddress(cmd *cobra.Command, _ []string) error {
	key, err := promptPrivateKey("account")
	if err != nil {
		return err
	}
	defer secure.Zero(key)

	v, err := accountOf(key, false)
	if err != nil {
		return err
	}
	return printAccount(cmd, v)
}

type mnemonicView struct {
	Words    int    `json:"words" yaml:"words"`
	Mnemonic string `json:"mnemonic" yaml:"mnemonic"`
}

func (v mnemonicView) String() string {
	return v.Mnemonic
}

func runKeyMnemonic(cmd *cobra.Command, _ []string) error {
	mnemonic, err := hdkey.GenerateMnemonic(keyWords)
	if err != nil {
		return err
	}
	if formatter.IsText() {
		output.Warnf(cmd.ErrOrStderr(), "write these words down; anyone holding them controls the derived accounts")
	}
	return formatter.Print(mnemonicView{Words: keyWords, Mnemonic: mnemonic})
}

type accountsView []accountView

func (v accountsView) String() string {
	headers := []string{"PATH", "ADDRESS"}
	if len(v) > 0 && v[0].PrivateKey != "" {
		headers = append(headers, "PRIVATE KEY")
	}
	t := output.NewTable(headers...)
	for _, a := range v {
		t.AddRow(a.Path, a.Address, a.PrivateKey)
	}
	return strings.TrimSuffix(t.String(), "\n")
}

func runKeyDerive(cmd *cobra.Command, _ []string) error {
	path := keyPath
	if path == "" {
		path = cfg.Derivation.Path
	}
	if !hdkey.IsValidPath(path) {
		return sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidHDKey, "invalid derivation path"), map[string]string{"path": path})
	}
	start := keyIndex
	if !cmd.Flags().Changed("index") {
		start = cfg.Derivation.Index
	}
	if keyCount == 0 || uint64(start)+uint64(keyCount) > 1<<31 {
		return sdkerr.Newf(sdkerr.ErrInvalidInput, "account range out of bounds")
	}

	mnemonic, err := promptMnemonicFn()
	if err != nil {
		return err
	}
	root, err := hdkey.FromMnemonic(mnemonic, path)
	if err != nil {
		return err
	}

	accounts := make(accountsView, 0, keyCount)
	for i := start; i < start+keyCount; i++ {
		child, err := root.DeriveChild(i)
		if err != nil {
			return err
		}
		priv, err := child.PrivateKey()
		if err != nil {
			return err
		}
		v, err := accountOf(priv, keyShowPrivate)
		secure.Zero(priv)
		if err != nil {
			return err
		}
		v.Path = path + "/" + strconv.FormatUint(uint64(i), 10)
		accounts = append(accounts, v)
	}
	logger.Named("key").Debug("derived %d accounts under %s", len(accounts), path)
	return formatter.Print(accounts)
}
