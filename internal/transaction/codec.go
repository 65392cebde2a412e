package transaction

import (
	"math/big"

	"github.com/vechain/vechain-sdk-go/internal/metrics"
	"github.com/vechain/vechain-sdk-go/internal/rlp"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

var (
	clauseKind = rlp.Struct{
		{Name: "to", Kind: rlp.OptionalFixedHexBlobKind{Bytes: 20}},
		{Name: "value", Kind: rlp.NumericKind{MaxBytes: 32}},
		{Name: "data", Kind: rlp.HexBlobKind{}},
	}

	featuresKind = rlp.NumericKind{MaxBytes: 4}

	leadingFields = rlp.Struct{
		{Name: "chainTag", Kind: rlp.NumericKind{MaxBytes: 1}},
		{Name: "blockRef", Kind: rlp.CompactFixedHexBlobKind{Bytes: blockRefLength}},
		{Name: "expiration", Kind: rlp.NumericKind{MaxBytes: 4}},
		{Name: "clauses", Kind: rlp.Array{Item: clauseKind}},
	}

	trailingFields = rlp.Struct{
		{Name: "gas", Kind: rlp.NumericKind{MaxBytes: 8}},
		{Name: "dependsOn", Kind: rlp.OptionalFixedHexBlobKind{Bytes: dependsOnLength}},
		{Name: "nonce", Kind: rlp.NumericKind{MaxBytes: 8}},
		{Name: "reserved", Kind: rlp.Array{Item: rlp.BufferKind{}}},
	}

	legacyFeeFields = rlp.Struct{
		{Name: "gasPriceCoef", Kind: rlp.NumericKind{MaxBytes: 1}},
	}

	dynamicFeeFields = rlp.Struct{
		{Name: "maxPriorityFeePerGas", Kind: rlp.NumericKind{MaxBytes: maxFeeBytes}},
		{Name: "maxFeePerGas", Kind: rlp.NumericKind{MaxBytes: maxFeeBytes}},
	}

	signatureField = rlp.Field{Name: "signature", Kind: rlp.BufferKind{}}
)

// fields returns the ordered wire fields of a body type.
func fields(t Type, signed bool) rlp.Struct {
	out := make(rlp.Struct, 0, len(leadingFields)+len(dynamicFeeFields)+len(trailingFields)+1)
	out = append(out, leadingFields...)
	if t == TypeDynamicFee {
		out = append(out, dynamicFeeFields...)
	} else {
		out = append(out, legacyFeeFields...)
	}
	out = append(out, trailingFields...)
	if signed {
		out = append(out, signatureField)
	}
	return out
}

func profile(t Type, signed bool) rlp.Profile {
	return rlp.Profile{Name: "tx", Kind: fields(t, signed)}
}

// encodeBody RLP encodes a validated body, prefixing dynamic-fee bodies with
// their type byte. A nil signature produces the unsigned encoding.
func encodeBody(body Body, t Type, signature []byte) ([]byte, error) {
	obj, err := bodyObject(body)
	if err != nil {
		return nil, err
	}
	signed := signature != nil
	if signed {
		obj["signature"] = signature
	}

	encoded, err := profile(t, signed).EncodeObject(obj)
	if err != nil {
		return nil, sdkerr.WithCause(
			sdkerr.WithDetails(sdkerr.ErrInvalidTransactionField, map[string]string{"fieldName": rlp.ContextOf(err)}),
			err)
	}
	if t == TypeDynamicFee {
		return append([]byte{byte(TypeDynamicFee)}, encoded...), nil
	}
	return encoded, nil
}

func bodyObject(body Body) (map[string]any, error) {
	clauses := make([]any, len(body.Clauses))
	for i, c := range body.Clauses {
		clauses[i] = c.object()
	}

	reserved, err := encodeReserved(body.Reserved)
	if err != nil {
		return nil, err
	}

	obj := map[string]any{
		"chainTag":   uint64(body.ChainTag),
		"blockRef":   body.BlockRef,
		"expiration": uint64(body.Expiration),
		"clauses":    clauses,
		"gas":        body.Gas,
		"dependsOn":  body.DependsOn,
		"nonce":      body.Nonce,
		"reserved":   reserved,
	}
	if body.GasPriceCoef != nil {
		obj["gasPriceCoef"] = uint64(*body.GasPriceCoef)
	}
	if body.MaxFeePerGas != nil {
		obj["maxFeePerGas"] = body.MaxFeePerGas
		obj["maxPriorityFeePerGas"] = body.MaxPriorityFeePerGas
	}
	return obj, nil
}

// encodeReserved returns [features, unused...] with trailing empty entries
// removed.
func encodeReserved(r *Reserved) ([]any, error) {
	var features uint32
	var unused [][]byte
	if r != nil {
		features = r.Features
		unused = r.Unused
	}

	encodedFeatures, err := featuresKind.EncodeValue(uint64(features), "tx.reserved.features")
	if err != nil {
		return nil, err
	}
	list := make([][]byte, 0, 1+len(unused))
	list = append(list, encodedFeatures)
	list = append(list, unused...)

	for len(list) > 0 && len(list[len(list)-1]) == 0 {
		list = list[:len(list)-1]
	}

	out := make([]any, len(list))
	for i, b := range list {
		out[i] = b
	}
	return out, nil
}

func decodeReserved(entries []any) (*Reserved, error) {
	if len(entries) == 0 {
		return nil, nil //nolint:nilnil // absent reserved field
	}
	last, _ := entries[len(entries)-1].([]byte)
	if len(last) == 0 {
		return nil, invalidField("reserved",
			"invalid reserved field: fields in the `reserved` property must be properly trimmed")
	}

	first, _ := entries[0].([]byte)
	features, err := featuresKind.DecodeValue(first, "tx.reserved.features")
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrInvalidTransactionField, err)
	}

	r := &Reserved{Features: uint32(features.(*big.Int).Uint64())} //nolint:gosec // G115: at most 4 bytes
	for _, e := range entries[1:] {
		b, _ := e.([]byte)
		r.Unused = append(r.Unused, b)
	}
	return r, nil
}

// Decode parses a raw transaction. When isSigned is set the encoding must
// carry a trailing signature. Dynamic-fee encodings are recognized by their
// type prefix.
func Decode(raw []byte, isSigned bool) (*Transaction, error) {
	tx, err := decode(raw, isSigned)
	metrics.Global.RecordDecode(err)
	return tx, err
}

func decode(raw []byte, isSigned bool) (*Transaction, error) {
	t := TypeLegacy
	data := raw
	if len(raw) > 0 && raw[0] == byte(TypeDynamicFee) {
		t = TypeDynamicFee
		data = raw[1:]
	}

	decoded, err := profile(t, isSigned).DecodeObject(data)
	if err != nil {
		return nil, sdkerr.WithCause(
			sdkerr.WithDetails(sdkerr.ErrInvalidTransactionField, map[string]string{"fieldName": rlp.ContextOf(err)}),
			err)
	}
	obj, _ := decoded.(map[string]any)

	body, err := bodyFromObject(obj, t)
	if err != nil {
		return nil, err
	}

	var signature []byte
	if isSigned {
		signature, _ = obj["signature"].([]byte)
		if signature == nil {
			signature = []byte{}
		}
	}
	return Of(body, signature)
}

func bodyFromObject(obj map[string]any, t Type) (Body, error) {
	body := Body{
		ChainTag:   uint8(bigField(obj, "chainTag").Uint64()),    //nolint:gosec // G115: decoded from 1 byte
		Expiration: uint32(bigField(obj, "expiration").Uint64()), //nolint:gosec // G115: decoded from 4 bytes
		Gas:        bigField(obj, "gas").Uint64(),
		Nonce:      bigField(obj, "nonce").Uint64(),
	}
	body.BlockRef, _ = obj["blockRef"].(string)
	if dep, ok := obj["dependsOn"].(string); ok {
		body.DependsOn = &dep
	}

	if t == TypeDynamicFee {
		body.MaxPriorityFeePerGas = bigField(obj, "maxPriorityFeePerGas")
		body.MaxFeePerGas = bigField(obj, "maxFeePerGas")
	} else {
		coef := uint8(bigField(obj, "gasPriceCoef").Uint64()) //nolint:gosec // G115: decoded from 1 byte
		body.GasPriceCoef = &coef
	}

	items, _ := obj["clauses"].([]any)
	body.Clauses = make([]Clause, len(items))
	for i, item := range items {
		fields, _ := item.(map[string]any)
		body.Clauses[i] = clauseFromObject(fields)
	}

	entries, _ := obj["reserved"].([]any)
	reserved, err := decodeReserved(entries)
	if err != nil {
		return Body{}, err
	}
	body.Reserved = reserved
	return body, nil
}

func bigField(obj map[string]any, name string) *big.Int {
	if n, ok := obj[name].(*big.Int); ok {
		return n
	}
	return new(big.Int)
}
