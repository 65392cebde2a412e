package transaction

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Type identifies the fee model of a transaction body.
type Type byte

const (
	// TypeLegacy bodies pay gas through gasPriceCoef.
	TypeLegacy Type = 0x00
	// TypeDynamicFee bodies pay gas through EIP-1559 fee caps. Their
	// encoding is prefixed by the type byte.
	TypeDynamicFee Type = 0x51
)

func (t Type) String() string {
	switch t {
	case TypeLegacy:
		return "legacy"
	case TypeDynamicFee:
		return "dynamic-fee"
	default:
		return "unknown"
	}
}

const (
	blockRefLength  = 8
	dependsOnLength = 32
	maxFeeBytes     = 32

	// FeatureDelegated is the reserved feature bit enabling fee delegation.
	FeatureDelegated uint32 = 1
)

// Reserved holds the feature flags and any unused trailing entries of a
// transaction body.
type Reserved struct {
	Features uint32   `json:"features,omitempty"`
	Unused   [][]byte `json:"unused,omitempty"`
}

// Body is the content of a transaction. Exactly one fee model must be
// present: GasPriceCoef for legacy bodies, or both MaxFeePerGas and
// MaxPriorityFeePerGas for dynamic-fee bodies.
type Body struct {
	ChainTag             uint8     `json:"chainTag"`
	BlockRef             string    `json:"blockRef"`
	Expiration           uint32    `json:"expiration"`
	Clauses              []Clause  `json:"clauses"`
	GasPriceCoef         *uint8    `json:"gasPriceCoef,omitempty"`
	MaxFeePerGas         *big.Int  `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *big.Int  `json:"maxPriorityFeePerGas,omitempty"`
	Gas                  uint64    `json:"gas"`
	DependsOn            *string   `json:"dependsOn"`
	Nonce                uint64    `json:"nonce"`
	Reserved             *Reserved `json:"reserved,omitempty"`
}

// Type reports the fee model of the body. It fails when the fee fields do
// not describe exactly one model.
func (b Body) Type() (Type, error) {
	hasCoef := b.GasPriceCoef != nil
	hasMax := b.MaxFeePerGas != nil
	hasPriority := b.MaxPriorityFeePerGas != nil

	switch {
	case hasCoef && !hasMax && !hasPriority:
		return TypeLegacy, nil
	case !hasCoef && hasMax && hasPriority:
		return TypeDynamicFee, nil
	default:
		return 0, sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidTransactionField,
			"invalid body: set either gasPriceCoef or both maxFeePerGas and maxPriorityFeePerGas"),
			map[string]string{"fieldName": "fee"})
	}
}

// IsDelegated reports whether the delegation feature bit is set.
func (b Body) IsDelegated() bool {
	return b.Reserved != nil && b.Reserved.Features&FeatureDelegated == FeatureDelegated
}

func (b Body) clone() Body {
	out := b
	if b.Clauses != nil {
		out.Clauses = make([]Clause, len(b.Clauses))
		for i, c := range b.Clauses {
			out.Clauses[i] = c.clone()
		}
	}
	if b.GasPriceCoef != nil {
		coef := *b.GasPriceCoef
		out.GasPriceCoef = &coef
	}
	if b.MaxFeePerGas != nil {
		out.MaxFeePerGas = new(big.Int).Set(b.MaxFeePerGas)
	}
	if b.MaxPriorityFeePerGas != nil {
		out.MaxPriorityFeePerGas = new(big.Int).Set(b.MaxPriorityFeePerGas)
	}
	if b.DependsOn != nil {
		dep := *b.DependsOn
		out.DependsOn = &dep
	}
	if b.Reserved != nil {
		r := Reserved{Features: b.Reserved.Features}
		for _, u := range b.Reserved.Unused {
			r.Unused = append(r.Unused, append([]byte(nil), u...))
		}
		out.Reserved = &r
	}
	return out
}

func (b Body) normalize() Body {
	out := b.clone()
	out.BlockRef = strings.ToLower(out.BlockRef)
	if out.DependsOn != nil {
		dep := strings.ToLower(*out.DependsOn)
		out.DependsOn = &dep
	}
	for i, c := range out.Clauses {
		out.Clauses[i] = c.normalize()
	}
	if out.Clauses == nil {
		out.Clauses = []Clause{}
	}
	// an empty reserved list decodes as nil
	if r := out.Reserved; r != nil && r.Features == 0 && len(r.Unused) == 0 {
		out.Reserved = nil
	}
	return out
}

func invalidField(field, format string, args ...any) error {
	return sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidTransactionField, format, args...),
		map[string]string{"fieldName": field})
}

func (b Body) validate() error {
	if _, err := b.Type(); err != nil {
		return err
	}

	if !vcdm.IsValid0x(b.BlockRef) || strings.HasPrefix(b.BlockRef, "-") {
		return invalidField("blockRef", "invalid body: blockRef must be a 0x prefixed hex string")
	}
	ref, err := vcdm.HexUIntOf(b.BlockRef)
	if err != nil || len(ref.Bytes()) != blockRefLength {
		return invalidField("blockRef", "invalid body: blockRef must be %d bytes", blockRefLength)
	}

	if err := validateFee("maxFeePerGas", b.MaxFeePerGas); err != nil {
		return err
	}
	if err := validateFee("maxPriorityFeePerGas", b.MaxPriorityFeePerGas); err != nil {
		return err
	}

	if b.DependsOn != nil && !vcdm.IsValidThorID(*b.DependsOn) {
		return invalidField("dependsOn", "invalid body: dependsOn must be a %d byte id or nil", dependsOnLength)
	}

	for i, c := range b.Clauses {
		if err := validateClause(c, i); err != nil {
			return err
		}
	}

	if b.Reserved != nil {
		if n := len(b.Reserved.Unused); n > 0 && len(b.Reserved.Unused[n-1]) == 0 {
			return invalidField("reserved",
				"invalid reserved field: fields in the `reserved` property must be properly trimmed")
		}
	}
	return nil
}

func validateFee(name string, fee *big.Int) error {
	if fee != nil && (fee.Sign() < 0 || len(fee.Bytes()) > maxFeeBytes) {
		return invalidField(name, "invalid body: %s out of range", name)
	}
	return nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
