// Package certificate implements signed identification certificates: a
// JSON document signed by an account key and verified by recovering the
// signer from the signature.
package certificate

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vechain/vechain-sdk-go/internal/hash"
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// Payload is the content a certificate attests to.
type Payload struct {
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
}

// Certificate is a signed statement by Signer. Signature is empty until the
// certificate is signed.
type Certificate struct {
	Purpose   string  `json:"purpose" yaml:"purpose"`
	Payload   Payload `json:"payload" yaml:"payload"`
	Domain    string  `json:"domain" yaml:"domain"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Signer    string  `json:"signer" yaml:"signer"`
	Signature string  `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// Of validates data and returns a certificate with the signer lower-cased
// and the signature, if any, normalized to whole bytes.
func Of(data Certificate) (*Certificate, error) {
	if data.Timestamp < 0 || data.Timestamp > vcdm.MaxSafeInteger {
		return nil, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidDataType, "invalid certificate data: not positive safe integer timestamp"),
			map[string]string{"field": "timestamp"})
	}
	if !vcdm.IsValidAddress(data.Signer) {
		return nil, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidDataType, "invalid certificate data: signer is not an address"),
			map[string]string{"field": "signer"})
	}

	c := data
	c.Signer = strings.ToLower(data.Signer)
	if data.Signature != "" {
		sig, err := vcdm.HexUIntOf(data.Signature)
		if err != nil || !vcdm.IsValid0x(data.Signature) {
			return nil, sdkerr.WithDetails(
				sdkerr.Newf(sdkerr.ErrInvalidDataType, "invalid certificate data: invalid signature"),
				map[string]string{"field": "signature"})
		}
		c.Signature = sig.AlignToBytes().String()
	}
	return &c, nil
}

// Encode returns the signed form of the certificate: key-sorted compact
// JSON of every field except the signature, NFC normalized.
func (c *Certificate) Encode() ([]byte, error) {
	doc := map[string]any{
		"purpose": c.Purpose,
		"payload": map[string]any{
			"type":    c.Payload.Type,
			"content": c.Payload.Content,
		},
		"domain":    c.Domain,
		"timestamp": c.Timestamp,
		"signer":    strings.ToLower(c.Signer),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, sdkerr.WithCause(sdkerr.ErrInvalidDataType, err)
	}
	return norm.NFC.Bytes(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// IsSigned reports whether the certificate carries a hex signature.
func (c *Certificate) IsSigned() bool {
	return c.Signature != "" && vcdm.IsValid0x(c.Signature)
}

// Sign returns a copy of the certificate signed with privateKey.
func (c *Certificate) Sign(privateKey []byte) (*Certificate, error) {
	if !secp256k1.IsValidPrivateKey(privateKey) {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidPrivateKey, "invalid private key: ensure it is a secp256k1 key")
	}
	encoded, err := c.Encode()
	if err != nil {
		return nil, err
	}
	sig, err := secp256k1.Sign(hash.Blake2b256(encoded), privateKey)
	if err != nil {
		return nil, err
	}

	signed := *c
	signed.Signature = vcdm.HexOfBytes(sig).String()
	return &signed, nil
}

// Verify recovers the signer from the signature and fails with a signature
// mismatch error when it is not Signer.
func (c *Certificate) Verify() error {
	if !c.IsSigned() {
		return sdkerr.Newf(sdkerr.ErrSignatureMismatch, "signature missing")
	}
	encoded, err := c.Encode()
	if err != nil {
		return err
	}
	sig, err := vcdm.HexUIntOf(c.Signature)
	if err != nil {
		return sdkerr.WithCause(sdkerr.ErrSignatureMismatch, err)
	}

	pub, err := secp256k1.RecoverPublicKey(hash.Blake2b256(encoded), sig.AlignToBytes().Bytes())
	if err != nil {
		return sdkerr.WithCause(sdkerr.Newf(sdkerr.ErrSignatureMismatch, "signature doesn't match with signer's public key"), err)
	}
	signer, err := vcdm.AddressOfPublicKey(pub)
	if err != nil {
		return err
	}
	if "0x"+signer.Digits() != strings.ToLower(c.Signer) {
		return sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrSignatureMismatch, "signature doesn't match with signer's public key"),
			map[string]string{"recovered": signer.String()})
	}
	return nil
}
