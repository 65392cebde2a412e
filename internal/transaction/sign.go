package transaction

import (
	"github.com/vechain/vechain-sdk-go/internal/metrics"
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

func invalidKey(role string) error {
	return sdkerr.Newf(sdkerr.ErrInvalidPrivateKey,
		"invalid %s private key: ensure it is a secp256k1 key", role)
}

// sign signs hash and counts the signature.
func sign(hash, privateKey []byte) ([]byte, error) {
	sig, err := secp256k1.Sign(hash, privateKey)
	metrics.Global.RecordSign(err)
	return sig, err
}

func notDelegated() error {
	return sdkerr.WithSuggestion(
		sdkerr.Newf(sdkerr.ErrNotDelegated, "not delegated transaction"),
		"use Sign for transactions without the delegation feature")
}

// Sign signs a non-delegated transaction and returns the signed copy.
func (tx *Transaction) Sign(privateKey []byte) (*Transaction, error) {
	if !secp256k1.IsValidPrivateKey(privateKey) {
		return nil, invalidKey("signer")
	}
	if tx.IsDelegated() {
		return nil, sdkerr.WithSuggestion(
			invalidField("gasPayer", "delegated transaction: a gas payer signature is required"),
			"use SignAsSender or SignAsSenderAndGasPayer")
	}

	h := tx.signingHash()
	sig, err := sign(h[:], privateKey)
	if err != nil {
		return nil, err
	}
	return Of(tx.body, sig)
}

// SignAsSender adds the sender signature to a delegated transaction. The
// result waits for SignAsGasPayer.
func (tx *Transaction) SignAsSender(privateKey []byte) (*Transaction, error) {
	if !secp256k1.IsValidPrivateKey(privateKey) {
		return nil, invalidKey("signer")
	}
	if !tx.IsDelegated() {
		return nil, notDelegated()
	}

	h := tx.signingHash()
	sig, err := sign(h[:], privateKey)
	if err != nil {
		return nil, err
	}
	return Of(tx.body, sig)
}

// SignAsGasPayer completes a delegated transaction already signed by sender.
// The gas payer signs the hash salted with the sender address, so the
// signature is only valid for that sender. Any previous gas payer signature
// is replaced.
func (tx *Transaction) SignAsGasPayer(sender vcdm.Address, privateKey []byte) (*Transaction, error) {
	if !secp256k1.IsValidPrivateKey(privateKey) {
		return nil, invalidKey("gas payer")
	}
	if !tx.IsDelegated() {
		return nil, notDelegated()
	}
	if tx.signature.state == Unsigned {
		return nil, sdkerr.WithSuggestion(
			invalidField("signature", "unsigned transaction: the sender must sign first"),
			"use SignAsSender before SignAsGasPayer")
	}

	h, err := tx.saltedHash(sender)
	if err != nil {
		return nil, err
	}
	gasPayerSig, err := sign(h[:], privateKey)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 0, 2*secp256k1.SignatureLength)
	sig = append(sig, tx.signature.sender...)
	sig = append(sig, gasPayerSig...)
	return Of(tx.body, sig)
}

// SignAsSenderAndGasPayer signs a delegated transaction with both keys.
func (tx *Transaction) SignAsSenderAndGasPayer(senderKey, gasPayerKey []byte) (*Transaction, error) {
	if !secp256k1.IsValidPrivateKey(senderKey) {
		return nil, invalidKey("signer")
	}
	if !secp256k1.IsValidPrivateKey(gasPayerKey) {
		return nil, invalidKey("gas payer")
	}
	if !tx.IsDelegated() {
		return nil, notDelegated()
	}

	sender, err := vcdm.AddressOfPrivateKey(senderKey)
	if err != nil {
		return nil, err
	}
	partial, err := tx.SignAsSender(senderKey)
	if err != nil {
		return nil, err
	}
	return partial.SignAsGasPayer(sender, gasPayerKey)
}
