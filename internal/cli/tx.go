package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vechain/vechain-sdk-go/internal/output"
	"github.com/vechain/vechain-sdk-go/internal/secure"
	"github.com/vechain/vechain-sdk-go/internal/transaction"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	txCmd = &cobra.Command{
		Use:   "tx",
		Short: "Encode, decode and sign transactions",
		Long: `Work with VeChainThor transactions offline.

Bodies are YAML or JSON documents; "-" reads stdin. Missing chainTag and
expiration come from the configuration.

Example body:
  blockRef: "0x00000000aabbccdd"
  clauses:
    - to: "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"
      value: 10000
      data: "0x"
  gas: 21000
  nonce: 1`,
	}

	txEncodeCmd = &cobra.Command{
		Use:   "encode <body-file>",
		Short: "Encode a transaction body",
		Args:  cobra.ExactArgs(1),
		RunE:  runTxEncode,
	}

	txSignCmd = &cobra.Command{
		Use:   "sign <body-file>",
		Short: "Sign a transaction body",
		Long: `Sign a transaction body with keys entered at a hidden prompt.

Delegated bodies (reserved.features: 1) need the sender and the gas payer.
With --sender-only the partially signed transaction is printed for the gas
payer to complete with "thorsdk tx cosign".`,
		Args: cobra.ExactArgs(1),
		RunE: runTxSign,
	}

	txCosignCmd = &cobra.Command{
		Use:   "cosign <raw-tx>",
		Short: "Add the gas payer signature to a sender-signed transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runTxCosign,
	}

	txDecodeCmd = &cobra.Command{
		Use:   "decode <raw-tx>",
		Short: "Decode a raw transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runTxDecode,
	}

	txGasCmd = &cobra.Command{
		Use:   "gas <body-file>",
		Short: "Compute the intrinsic gas of a body's clauses",
		Args:  cobra.ExactArgs(1),
		RunE:  runTxGas,
	}

	txSignature  string
	txSenderOnly bool
	txSigned     bool
	txQR         bool
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txEncodeCmd, txSignCmd, txCosignCmd, txDecodeCmd, txGasCmd)

	txEncodeCmd.Flags().StringVar(&txSignature, "signature", "", "attach an existing hex signature")
	txSignCmd.Flags().BoolVar(&txSenderOnly, "sender-only", false, "sign a delegated body as sender only")
	txDecodeCmd.Flags().BoolVar(&txSigned, "signed", false, "the raw transaction carries a signature")
	for _, c := range []*cobra.Command{txEncodeCmd, txSignCmd, txCosignCmd} {
		c.Flags().BoolVar(&txQR, "qr", false, "also render the raw transaction as a QR code")
	}
}

// txView is the printed form of a transaction.
type txView struct {
	Type           string    `json:"type" yaml:"type"`
	SignatureState string    `json:"signatureState" yaml:"signatureState"`
	Delegated      bool      `json:"delegated" yaml:"delegated"`
	SigningHash    string    `json:"signingHash" yaml:"signingHash"`
	IntrinsicGas   string    `json:"intrinsicGas" yaml:"intrinsicGas"`
	ID             string    `json:"id,omitempty" yaml:"id,omitempty"`
	Origin         string    `json:"origin,omitempty" yaml:"origin,omitempty"`
	GasPayer       string    `json:"gasPayer,omitempty" yaml:"gasPayer,omitempty"`
	Raw            string    `json:"raw" yaml:"raw"`
	Body           *bodyView `json:"body,omitempty" yaml:"body,omitempty"`
}

type clauseView struct {
	To    string `json:"to" yaml:"to"`
	Value string `json:"value" yaml:"value"`
	Data  string `json:"data" yaml:"data"`
}

type bodyView struct {
	ChainTag             uint8        `json:"chainTag" yaml:"chainTag"`
	BlockRef             string       `json:"blockRef" yaml:"blockRef"`
	Expiration           uint32       `json:"expiration" yaml:"expiration"`
	Clauses              []clauseView `json:"clauses" yaml:"clauses"`
	GasPriceCoef         *uint8       `json:"gasPriceCoef,omitempty" yaml:"gasPriceCoef,omitempty"`
	MaxFeePerGas         string       `json:"maxFeePerGas,omitempty" yaml:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string       `json:"maxPriorityFeePerGas,omitempty" yaml:"maxPriorityFeePerGas,omitempty"`
	Gas                  uint64       `json:"gas" yaml:"gas"`
	DependsOn            string       `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
	Nonce                uint64       `json:"nonce" yaml:"nonce"`
	Features             uint32       `json:"features,omitempty" yaml:"features,omitempty"`
}

func newTxView(tx *transaction.Transaction, withBody bool) (txView, error) {
	gas, err := tx.IntrinsicGas()
	if err != nil {
		return txView{}, err
	}
	signingHash, err := tx.GetTransactionHash(nil)
	if err != nil {
		return txView{}, err
	}
	v := txView{
		Type:           tx.Type().String(),
		SignatureState: tx.SignatureState().String(),
		Delegated:      tx.IsDelegated(),
		SigningHash:    signingHash.String(),
		IntrinsicGas:   gas.String(),
	}

	raw := tx.Encoded()
	if tx.SignatureState() != transaction.Unsigned {
		if raw, err = tx.Encode(true); err != nil {
			return txView{}, err
		}
		origin, err := tx.Origin()
		if err != nil {
			return txView{}, err
		}
		v.Origin = origin.String()
	}
	v.Raw = vcdm.HexOfBytes(raw).String()

	if tx.IsSigned() {
		id, err := tx.ID()
		if err != nil {
			return txView{}, err
		}
		v.ID = id.String()
		if tx.IsDelegated() {
			payer, err := tx.GasPayer()
			if err != nil {
				return txView{}, err
			}
			v.GasPayer = payer.String()
		}
	}

	if withBody {
		v.Body = newBodyView(tx.Body())
	}
	return v, nil
}

func newBodyView(b transaction.Body) *bodyView {
	v := &bodyView{
		ChainTag:     b.ChainTag,
		BlockRef:     b.BlockRef,
		Expiration:   b.Expiration,
		Clauses:      make([]clauseView, len(b.Clauses)),
		GasPriceCoef: b.GasPriceCoef,
		Gas:          b.Gas,
		Nonce:        b.Nonce,
	}
	for i, c := range b.Clauses {
		to := "(deploy)"
		if c.To != nil {
			to = *c.To
		}
		v.Clauses[i] = clauseView{To: to, Value: c.Value.String(), Data: c.Data}
	}
	if b.MaxFeePerGas != nil {
		v.MaxFeePerGas = b.MaxFeePerGas.String()
	}
	if b.MaxPriorityFeePerGas != nil {
		v.MaxPriorityFeePerGas = b.MaxPriorityFeePerGas.String()
	}
	if b.DependsOn != nil {
		v.DependsOn = *b.DependsOn
	}
	if b.Reserved != nil {
		v.Features = b.Reserved.Features
	}
	return v
}

// String renders the text form.
func (v txView) String() string {
	var sb strings.Builder
	table := output.NewTable()
	table.AddRow("type", v.Type)
	table.AddRow("signature", v.SignatureState)
	table.AddRow("delegated", strconv.FormatBool(v.Delegated))
	table.AddRow("signing hash", v.SigningHash)
	table.AddRow("intrinsic gas", v.IntrinsicGas)
	for _, row := range [][2]string{{"id", v.ID}, {"origin", v.Origin}, {"gas payer", v.GasPayer}} {
		if row[1] != "" {
			table.AddRow(row[0], row[1])
		}
	}
	if v.Body != nil {
		b := v.Body
		table.AddRow("chain tag", "0x"+strconv.FormatUint(uint64(b.ChainTag), 16))
		table.AddRow("block ref", b.BlockRef)
		table.AddRow("expiration", strconv.FormatUint(uint64(b.Expiration), 10))
		table.AddRow("gas", strconv.FormatUint(b.Gas, 10))
		table.AddRow("nonce", strconv.FormatUint(b.Nonce, 10))
	}
	sb.WriteString(table.String())

	if v.Body != nil && len(v.Body.Clauses) > 0 {
		clauses := output.NewTable("#", "TO", "VALUE", "DATA")
		for i, c := range v.Body.Clauses {
			clauses.AddRow(strconv.Itoa(i), c.To, c.Value, c.Data)
		}
		sb.WriteString("\n")
		sb.WriteString(clauses.String())
	}
	sb.WriteString("\n")
	sb.WriteString(v.Raw)
	return sb.String()
}

func loadBody(cmd *cobra.Command, path string) (transaction.Body, error) {
	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return transaction.Body{}, err
	}
	return parseBody(data)
}

func printTx(cmd *cobra.Command, tx *transaction.Transaction, withBody bool) error {
	v, err := newTxView(tx, withBody)
	if err != nil {
		return err
	}
	if err := formatter.Print(v); err != nil {
		return err
	}
	if txQR && formatter.IsText() {
		return output.RenderQR(cmd.OutOrStdout(), v.Raw, output.DefaultQRConfig())
	}
	return nil
}

func runTxEncode(cmd *cobra.Command, args []string) error {
	body, err := loadBody(cmd, args[0])
	if err != nil {
		return err
	}

	var sig []byte
	if txSignature != "" {
		if sig, err = parseHexInput("signature", txSignature); err != nil {
			return err
		}
	}

	tx, err := transaction.Of(body, sig)
	if err != nil {
		return err
	}
	logger.Named("tx").Debug("encoded %s transaction, %d clauses", tx.Type(), len(body.Clauses))
	return printTx(cmd, tx, false)
}

func runTxSign(cmd *cobra.Command, args []string) error {
	body, err := loadBody(cmd, args[0])
	if err != nil {
		return err
	}
	tx, err := transaction.Of(body, nil)
	if err != nil {
		return err
	}

	senderKey, err := promptPrivateKey("sender")
	if err != nil {
		return err
	}
	defer secure.Zero(senderKey)

	var signed *transaction.Transaction
	switch {
	case !tx.IsDelegated():
		if txSenderOnly {
			return sdkerr.WithSuggestion(
				sdkerr.Newf(sdkerr.ErrNotDelegated, "--sender-only needs a delegated body"),
				"set reserved.features to 1")
		}
		signed, err = tx.Sign(senderKey)
	case txSenderOnly:
		signed, err = tx.SignAsSender(senderKey)
	default:
		payerKey, perr := promptPrivateKey("gas payer")
		if perr != nil {
			return perr
		}
		defer secure.Zero(payerKey)
		signed, err = tx.SignAsSenderAndGasPayer(senderKey, payerKey)
	}
	if err != nil {
		return err
	}

	logger.Named("tx").Info("signed %s transaction, state %s", signed.Type(), signed.SignatureState())
	return printTx(cmd, signed, false)
}

func runTxCosign(cmd *cobra.Command, args []string) error {
	raw, err := parseHexInput("raw transaction", args[0])
	if err != nil {
		return err
	}
	tx, err := transaction.Decode(raw, true)
	if err != nil {
		return err
	}
	if !tx.IsDelegated() {
		return sdkerr.Newf(sdkerr.ErrNotDelegated, "transaction is not delegated")
	}
	if tx.SignatureState() != transaction.SenderOnly {
		return sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidTransactionField, "expected a transaction signed by the sender only"),
			map[string]string{"state": tx.SignatureState().String()})
	}
	sender, err := tx.Origin()
	if err != nil {
		return err
	}

	payerKey, err := promptPrivateKey("gas payer")
	if err != nil {
		return err
	}
	defer secure.Zero(payerKey)

	signed, err := tx.SignAsGasPayer(sender, payerKey)
	if err != nil {
		return err
	}
	logger.Named("tx").Info("gas payer signed for sender %s", sender)
	return printTx(cmd, signed, false)
}

func runTxDecode(cmd *cobra.Command, args []string) error {
	raw, err := parseHexInput("raw transaction", args[0])
	if err != nil {
		return err
	}
	tx, err := transaction.Decode(raw, txSigned)
	if err != nil {
		return err
	}
	return printTx(cmd, tx, true)
}

type gasView struct {
	Clauses      int    `json:"clauses" yaml:"clauses"`
	IntrinsicGas string `json:"intrinsicGas" yaml:"intrinsicGas"`
}

func (v gasView) String() string {
	return v.IntrinsicGas
}

func runTxGas(cmd *cobra.Command, args []string) error {
	body, err := loadBody(cmd, args[0])
	if err != nil {
		return err
	}
	gas, err := transaction.IntrinsicGas(body.Clauses)
	if err != nil {
		return err
	}
	return formatter.Print(gasView{Clauses: len(body.Clauses), IntrinsicGas: gas.String()})
}
