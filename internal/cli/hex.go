package cli

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vechain/vechain-sdk-go/internal/output"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	hexCmd = &cobra.Command{
		Use:   "hex <value>",
		Short: "Normalize a hex or decimal value",
		Long: `Parse a value and print its canonical forms.

Values starting with 0x (or -0x) are hex, others decimal integers.

Example:
  thorsdk hex 0xABCDEF
  thorsdk hex --as address 0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
  thorsdk hex --as blockref 0x00000000aabbccdd00000000`,
		Args: cobra.ExactArgs(1),
		RunE: runHex,
	}

	hexAs string
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(hexCmd)
	hexCmd.Flags().StringVar(&hexAs, "as", "hex", "interpretation: hex, uint, int, quantity, address, blockref, thorid")
}

type hexView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Hex     string `json:"hex" yaml:"hex"`
	Decimal string `json:"decimal" yaml:"decimal"`
	Bytes   int    `json:"bytes" yaml:"bytes"`
	Number  uint32 `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
}

func (v hexView) String() string {
	t := output.NewTable()
	t.AddRow("kind", v.Kind)
	t.AddRow("hex", v.Hex)
	t.AddRow("decimal", v.Decimal)
	if v.Kind == "blockref" {
		t.AddRow("block number", strconv.FormatUint(uint64(v.Number), 10))
	}
	return strings.TrimSuffix(t.String(), "\n")
}

func parseHexValue(kind, s string) (hexView, error) {
	var input any = s
	if !strings.HasPrefix(strings.TrimPrefix(s, "-"), "0x") {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return hexView{}, sdkerr.WithDetails(
				sdkerr.Newf(sdkerr.ErrInvalidDataType, "not a hex or decimal value"),
				map[string]string{"value": s})
		}
		input = n
	}

	var (
		h   vcdm.Hex
		str string
		v   = hexView{Kind: kind}
	)
	switch kind {
	case "hex":
		x, err := vcdm.HexOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str = x, x.String()
	case "uint":
		x, err := vcdm.HexUIntOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str = x.Hex, x.String()
	case "int":
		x, err := vcdm.HexIntOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str = x.Hex, x.String()
	case "quantity":
		x, err := vcdm.QuantityOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str = x.Hex, x.String()
	case "address":
		x, err := vcdm.AddressOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str = x.Hex, x.String()
	case "blockref":
		x, err := vcdm.BlockRefOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str, v.Number = x.Hex, x.String(), x.Number()
	case "thorid":
		x, err := vcdm.ThorIDOf(input)
		if err != nil {
			return hexView{}, err
		}
		h, str = x.Hex, x.String()
	default:
		return hexView{}, sdkerr.WithSuggestion(
			sdkerr.Newf(sdkerr.ErrInvalidInput, "unknown kind %q", kind),
			"use one of hex, uint, int, quantity, address, blockref, thorid")
	}

	v.Hex = str
	v.Decimal = h.BigInt().String()
	v.Bytes = len(h.Bytes())
	return v, nil
}

func runHex(_ *cobra.Command, args []string) error {
	v, err := parseHexValue(strings.ToLower(hexAs), strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	return formatter.Print(v)
}
