package transaction

import (
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// SignatureState tells how far a transaction has progressed through signing.
type SignatureState int

const (
	// Unsigned transactions carry no signature.
	Unsigned SignatureState = iota
	// SenderOnly delegated transactions carry the sender signature and
	// wait for the gas payer.
	SenderOnly
	// Complete transactions carry every signature they need.
	Complete
)

func (s SignatureState) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case SenderOnly:
		return "sender-only"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// signature is the signing state of a transaction. gasPayer is only set on
// complete delegated transactions.
type signature struct {
	state    SignatureState
	sender   []byte
	gasPayer []byte
}

// parseSignature classifies raw signature bytes. Delegated transactions
// accept a sender signature alone or followed by the gas payer signature.
func parseSignature(raw []byte, delegated bool) (signature, error) {
	if raw == nil {
		return signature{state: Unsigned}, nil
	}

	const one = secp256k1.SignatureLength
	switch {
	case len(raw) == one && !delegated:
		return signature{state: Complete, sender: clone(raw)}, nil
	case len(raw) == one && delegated:
		return signature{state: SenderOnly, sender: clone(raw)}, nil
	case len(raw) == 2*one && delegated:
		return signature{state: Complete, sender: clone(raw[:one]), gasPayer: clone(raw[one:])}, nil
	default:
		return signature{}, sdkerr.WithDetails(
			sdkerr.Newf(sdkerr.ErrInvalidSignature, "invalid signature length %d", len(raw)),
			map[string]string{"delegated": boolString(delegated)})
	}
}

// bytes returns the wire form of the signature, nil when unsigned.
func (s signature) bytes() []byte {
	switch s.state {
	case Unsigned:
		return nil
	case SenderOnly:
		return clone(s.sender)
	default:
		out := make([]byte, 0, len(s.sender)+len(s.gasPayer))
		out = append(out, s.sender...)
		return append(out, s.gasPayer...)
	}
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
