package cli

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vechain/vechain-sdk-go/internal/fileutil"
	"github.com/vechain/vechain-sdk-go/internal/transaction"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// readInput reads path, or r when path is "-".
func readInput(path string, r io.Reader) ([]byte, error) {
	if path == "-" {
		return fileutil.ReadAll(r, "stdin")
	}
	return fileutil.ReadFile(path)
}

// quantity is an integer written as a YAML number, a decimal string or a
// 0x hex string.
type quantity struct {
	*big.Int
}

func (q *quantity) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	n, ok := new(big.Int).SetString(strings.ReplaceAll(s, "_", ""), 0)
	if node.Kind != yaml.ScalarNode || !ok {
		return sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidInput, "not an integer: %q", s),
			map[string]string{"line": strconv.Itoa(node.Line)})
	}
	q.Int = n
	return nil
}

func (q *quantity) big() *big.Int {
	if q == nil {
		return nil
	}
	return q.Int
}

type clauseDoc struct {
	To      *string   `yaml:"to"`
	Value   *quantity `yaml:"value"`
	Data    string    `yaml:"data"`
	Comment string    `yaml:"comment"`
}

type reservedDoc struct {
	Features uint32   `yaml:"features"`
	Unused   []string `yaml:"unused"`
}

// bodyDoc is the YAML (or JSON) form of a transaction body. A missing
// chain tag or expiration is filled from the configuration.
type bodyDoc struct {
	ChainTag             *uint8       `yaml:"chainTag"`
	BlockRef             string       `yaml:"blockRef"`
	Expiration           *uint32      `yaml:"expiration"`
	Clauses              []clauseDoc  `yaml:"clauses"`
	GasPriceCoef         *uint8       `yaml:"gasPriceCoef"`
	MaxFeePerGas         *quantity    `yaml:"maxFeePerGas"`
	MaxPriorityFeePerGas *quantity    `yaml:"maxPriorityFeePerGas"`
	Gas                  uint64       `yaml:"gas"`
	DependsOn            *string      `yaml:"dependsOn"`
	Nonce                uint64       `yaml:"nonce"`
	Reserved             *reservedDoc `yaml:"reserved"`
}

// parseBody decodes a body document, applying defaults from cfg.
func parseBody(data []byte) (transaction.Body, error) {
	var doc bodyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return transaction.Body{}, sdkerr.WithCause(sdkerr.Newf(sdkerr.ErrInvalidInput, "malformed transaction body document"), err)
	}

	body := transaction.Body{
		BlockRef:             doc.BlockRef,
		GasPriceCoef:         doc.GasPriceCoef,
		MaxFeePerGas:         doc.MaxFeePerGas.big(),
		MaxPriorityFeePerGas: doc.MaxPriorityFeePerGas.big(),
		Gas:                  doc.Gas,
		DependsOn:            doc.DependsOn,
		Nonce:                doc.Nonce,
	}

	if doc.ChainTag != nil {
		body.ChainTag = *doc.ChainTag
	} else {
		tag, err := cfg.ChainTag()
		if err != nil {
			return transaction.Body{}, err
		}
		body.ChainTag = tag
	}

	body.Expiration = cfg.Transaction.Expiration
	if doc.Expiration != nil {
		body.Expiration = *doc.Expiration
	}

	// legacy bodies take the configured coefficient when none is given
	if body.GasPriceCoef == nil && body.MaxFeePerGas == nil && body.MaxPriorityFeePerGas == nil {
		coef := cfg.Transaction.GasPriceCoef
		body.GasPriceCoef = &coef
	}

	body.Clauses = make([]transaction.Clause, len(doc.Clauses))
	for i, c := range doc.Clauses {
		body.Clauses[i] = transaction.Clause{To: c.To, Value: c.Value.big(), Data: c.Data, Comment: c.Comment}
	}

	if doc.Reserved != nil {
		reserved := &transaction.Reserved{Features: doc.Reserved.Features}
		for _, u := range doc.Reserved.Unused {
			h, err := vcdm.HexUIntOf(u)
			if err != nil {
				return transaction.Body{}, err
			}
			reserved.Unused = append(reserved.Unused, h.Bytes())
		}
		body.Reserved = reserved
	}
	return body, nil
}

// parseHexInput decodes a 0x hex argument into bytes.
func parseHexInput(name, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !vcdm.IsValid0x(s) && !vcdm.IsValid("0x"+s) {
		return nil, sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidInput, "%s is not hex", name), map[string]string{"input": name})
	}
	h, err := vcdm.HexUIntOf(s)
	if err != nil {
		return nil, err
	}
	return h.Bytes(), nil
}
