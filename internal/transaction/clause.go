package transaction

import (
	"math/big"
	"strings"

	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Clause is one call or transfer inside a transaction. A nil To deploys a
// contract with Data as its bytecode.
type Clause struct {
	To    *string  `json:"to"`
	Value *big.Int `json:"value"`
	Data  string   `json:"data"`

	// Comment and ABI are informational and never encoded.
	Comment string `json:"comment,omitempty"`
	ABI     string `json:"abi,omitempty"`
}

// NewTransferClause returns a clause sending value wei of VET to the address.
func NewTransferClause(to vcdm.Address, value *big.Int) Clause {
	addr := "0x" + to.Digits()
	return Clause{To: &addr, Value: new(big.Int).Set(value), Data: "0x"}
}

// NewDeployClause returns a contract creation clause.
func NewDeployClause(bytecode string) Clause {
	return Clause{Value: new(big.Int), Data: bytecode}
}

func (c Clause) clone() Clause {
	out := c
	if c.To != nil {
		to := *c.To
		out.To = &to
	}
	if c.Value != nil {
		out.Value = new(big.Int).Set(c.Value)
	}
	return out
}

// normalize lower-cases hex fields and fills defaults so that a decoded
// clause equals the one that was encoded.
func (c Clause) normalize() Clause {
	out := c.clone()
	if out.To != nil {
		to := strings.ToLower(*out.To)
		out.To = &to
	}
	if out.Value == nil {
		out.Value = new(big.Int)
	}
	if out.Data == "" {
		out.Data = "0x"
	}
	out.Data = strings.ToLower(out.Data)
	return out
}

func (c Clause) object() map[string]any {
	return map[string]any{
		"to":    c.To,
		"value": c.Value,
		"data":  c.Data,
	}
}

func clauseFromObject(obj map[string]any) Clause {
	var c Clause
	if to, ok := obj["to"].(string); ok {
		c.To = &to
	}
	c.Value, _ = obj["value"].(*big.Int)
	c.Data, _ = obj["data"].(string)
	return c
}

func validateClause(c Clause, index int) error {
	details := map[string]string{"clause": itoa(index)}
	if c.To != nil && !vcdm.IsValidAddress(*c.To) {
		return sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidTransactionField,
			"invalid clause: `to` must be an address or nil"), details)
	}
	if c.Value != nil && c.Value.Sign() < 0 {
		return sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidTransactionField,
			"invalid clause: negative value"), details)
	}
	if c.Data != "" && (!vcdm.IsValid0x(c.Data) || len(c.Data)%2 != 0) {
		return sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidTransactionField,
			"invalid clause: data must be an even length 0x prefixed hex string"), details)
	}
	return nil
}
