// Package transaction implements the VeChain Thor transaction model: body
// validation, the RLP wire format, intrinsic gas, and the signing state
// machine including fee delegation.
//
// A Transaction is immutable. Signing returns a new Transaction.
package transaction

import (
	"math/big"

	"github.com/vechain/vechain-sdk-go/internal/hash"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Transaction is a validated body with its signing state.
type Transaction struct {
	body      Body
	txType    Type
	signature signature

	unsigned []byte
	signed   []byte
}

// Of validates body and builds a transaction. A nil signature builds an
// unsigned transaction. Otherwise the signature must be 65 bytes, or 65 or
// 130 bytes when the body is delegated; a 65 byte signature on a delegated
// body is kept as the sender part so gas payers can complete it later.
//
// Every encoding failure surfaces here, never later.
func Of(body Body, sig []byte) (*Transaction, error) {
	if err := body.validate(); err != nil {
		return nil, err
	}
	t, _ := body.Type()
	normalized := body.normalize()

	s, err := parseSignature(sig, normalized.IsDelegated())
	if err != nil {
		return nil, err
	}

	unsigned, err := encodeBody(normalized, t, nil)
	if err != nil {
		return nil, err
	}
	tx := &Transaction{body: normalized, txType: t, signature: s, unsigned: unsigned}

	if raw := s.bytes(); raw != nil {
		tx.signed, err = encodeBody(normalized, t, raw)
		if err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// Body returns a copy of the transaction body.
func (tx *Transaction) Body() Body {
	return tx.body.clone()
}

// Type returns the fee model of the body.
func (tx *Transaction) Type() Type {
	return tx.txType
}

// Signature returns the raw signature bytes, or nil when unsigned.
func (tx *Transaction) Signature() []byte {
	return tx.signature.bytes()
}

// SignatureState returns how far signing has progressed.
func (tx *Transaction) SignatureState() SignatureState {
	return tx.signature.state
}

// IsDelegated reports whether a gas payer pays for this transaction.
func (tx *Transaction) IsDelegated() bool {
	return tx.body.IsDelegated()
}

// IsSigned reports whether the transaction carries every signature it needs.
func (tx *Transaction) IsSigned() bool {
	return tx.signature.state == Complete
}

// Encoded returns the wire form: signed when IsSigned, unsigned otherwise.
func (tx *Transaction) Encoded() []byte {
	if tx.IsSigned() {
		return clone(tx.signed)
	}
	return clone(tx.unsigned)
}

// Encode returns the encoding with or without the signature. Including a
// signature that does not exist fails with an unavailable field error.
func (tx *Transaction) Encode(includeSignature bool) ([]byte, error) {
	if !includeSignature {
		return clone(tx.unsigned), nil
	}
	if tx.signed == nil {
		return nil, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrUnavailableField, "not signed transaction: signature unavailable"),
			map[string]string{"fieldName": "signature"})
	}
	return clone(tx.signed), nil
}

// signingHash is the Blake2b256 digest of the unsigned encoding.
func (tx *Transaction) signingHash() [hash.Size]byte {
	return hash.Blake2b256Hash(tx.unsigned)
}

// saltedHash binds the signing hash to sender. The sender must be a full
// 20 byte address; an empty one would salt with nothing.
func (tx *Transaction) saltedHash(sender vcdm.Address) ([hash.Size]byte, error) {
	raw := sender.Bytes()
	if len(raw) != vcdm.AddressLength {
		return [hash.Size]byte{}, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidDataType, "invalid sender address: expected %d bytes", vcdm.AddressLength),
			map[string]string{"length": itoa(len(raw))})
	}
	h := tx.signingHash()
	return hash.Blake2b256Hash(h[:], raw), nil
}

// GetTransactionHash returns the digest the sender signs. With a sender
// address it returns the digest salted by that address, which the gas payer
// signs.
func (tx *Transaction) GetTransactionHash(sender *vcdm.Address) (vcdm.ThorID, error) {
	if sender == nil {
		return vcdm.ThorIDOfHash(tx.signingHash()), nil
	}
	h, err := tx.saltedHash(*sender)
	if err != nil {
		return vcdm.ThorID{}, err
	}
	return vcdm.ThorIDOfHash(h), nil
}

// Origin recovers the sender address from the signature.
func (tx *Transaction) Origin() (vcdm.Address, error) {
	if tx.signature.state == Unsigned {
		return vcdm.Address{}, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrUnavailableField, "not signed transaction: origin unavailable"),
			map[string]string{"fieldName": "origin"})
	}
	h := tx.signingHash()
	return recoverSigner(h[:], tx.signature.sender)
}

// GasPayer recovers the address paying for a delegated transaction.
func (tx *Transaction) GasPayer() (vcdm.Address, error) {
	if !tx.IsDelegated() {
		return vcdm.Address{}, sdkerr.Newf(sdkerr.ErrNotDelegated, "not delegated transaction")
	}
	if tx.signature.state != Complete {
		return vcdm.Address{}, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrUnavailableField, "missing gas payer signature"),
			map[string]string{"fieldName": "gasPayer"})
	}
	origin, err := tx.Origin()
	if err != nil {
		return vcdm.Address{}, err
	}
	h, err := tx.saltedHash(origin)
	if err != nil {
		return vcdm.Address{}, err
	}
	return recoverSigner(h[:], tx.signature.gasPayer)
}

// ID returns Blake2b256(signing hash || origin). It is only defined for
// fully signed transactions.
func (tx *Transaction) ID() (vcdm.ThorID, error) {
	if !tx.IsSigned() {
		return vcdm.ThorID{}, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrUnavailableField, "not signed transaction: id unavailable"),
			map[string]string{"fieldName": "id"})
	}
	origin, err := tx.Origin()
	if err != nil {
		return vcdm.ThorID{}, err
	}
	h, err := tx.saltedHash(origin)
	if err != nil {
		return vcdm.ThorID{}, err
	}
	return vcdm.ThorIDOfHash(h), nil
}

// IntrinsicGas returns the intrinsic gas of the body clauses.
func (tx *Transaction) IntrinsicGas() (*big.Int, error) {
	return IntrinsicGas(tx.body.Clauses)
}
