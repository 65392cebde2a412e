package transaction

import (
	"math/big"
	"strings"

	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Intrinsic gas costs.
const (
	TxGas                     = 5000
	ClauseGas                 = 16000
	ClauseGasContractCreation = 48000
	ZeroGasData               = 4
	NonZeroGasData            = 68
)

// IntrinsicGas returns the minimum gas a transaction with the given clauses
// must offer. A clause recipient may be an address or a domain name
// containing a '.'. Clause data must be empty or a hex string.
func IntrinsicGas(clauses []Clause) (*big.Int, error) {
	if len(clauses) == 0 {
		return big.NewInt(TxGas + ClauseGas), nil
	}

	sum := big.NewInt(TxGas)
	for i, c := range clauses {
		if c.To != nil {
			if !vcdm.IsValidAddress(*c.To) && !strings.Contains(*c.To, ".") {
				return nil, sdkerr.WithDetails(sdkerr.Newf(sdkerr.ErrInvalidDataType,
					"invalid data type in clause: each `to` field must be a valid address"),
					map[string]string{"clause": itoa(i)})
			}
			sum.Add(sum, big.NewInt(ClauseGas))
		} else {
			sum.Add(sum, big.NewInt(ClauseGasContractCreation))
		}

		dataGas, err := dataGas(c.Data)
		if err != nil {
			return nil, sdkerr.WithDetails(err, map[string]string{"clause": itoa(i)})
		}
		sum.Add(sum, dataGas)
	}
	return sum, nil
}

// dataGas charges each zero byte and each non-zero byte of data.
func dataGas(data string) (*big.Int, error) {
	h, err := vcdm.HexOfString(data)
	if err != nil {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType,
			"invalid data type for gas calculation: data should be a hexadecimal string")
	}
	digits := h.Digits()
	if h.Sign() == vcdm.Negative || len(digits)%2 != 0 {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidDataType,
			"invalid data type for gas calculation: data should be whole bytes")
	}

	var zeros, nonZeros int64
	for i := 0; i < len(digits); i += 2 {
		if digits[i:i+2] == "00" {
			zeros++
		} else {
			nonZeros++
		}
	}
	gas := big.NewInt(zeros * ZeroGasData)
	return gas.Add(gas, big.NewInt(nonZeros*NonZeroGasData)), nil
}
