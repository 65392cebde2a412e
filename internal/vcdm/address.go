package vcdm

import (
	"regexp"
	"strings"

	"github.com/vechain/vechain-sdk-go/internal/hash"
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

const (
	// AddressLength is the byte length of an account address.
	AddressLength = 20
	// AddressDigits is the digit count of an account address.
	AddressDigits = 2 * AddressLength
)

var addressPattern = regexp.MustCompile(`(?i)^0x[0-9a-f]{40}$`)

// Address is a 20-byte account address. String renders the mixed-case
// checksum form.
type Address struct {
	HexUInt
}

// AddressOf accepts the same inputs as HexUIntOf and fits the value to 40
// digits.
func AddressOf(exp any) (Address, error) {
	if v, ok := exp.(Address); ok {
		return v, nil
	}
	u, err := HexUIntOf(exp)
	if err != nil {
		return Address{}, err
	}
	fitted, err := u.Fit(AddressDigits)
	if err != nil {
		return Address{}, sdkerr.Wrap(err, "not a valid address")
	}
	return Address{fitted}, nil
}

// AddressOfPublicKey derives the address of a compressed or uncompressed
// public key: the last 20 bytes of Keccak256 over the X and Y coordinates.
func AddressOfPublicKey(publicKey []byte) (Address, error) {
	uncompressed, err := secp256k1.InflatePublicKey(publicKey)
	if err != nil {
		return Address{}, err
	}
	digest := hash.Keccak256(uncompressed[1:])
	return Address{HexUInt{HexOfBytes(digest[32-AddressLength:])}}, nil
}

// AddressOfPrivateKey derives the address controlled by privateKey.
func AddressOfPrivateKey(privateKey []byte) (Address, error) {
	pub, err := secp256k1.DerivePublicKey(privateKey, false)
	if err != nil {
		return Address{}, err
	}
	return AddressOfPublicKey(pub)
}

// IsValidAddress reports whether s is a 0x prefixed 40 digit expression. The
// checksum case is not verified.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Checksum returns the checksummed form of a 0x prefixed address.
func Checksum(addr string) (string, error) {
	if !IsValidAddress(addr) {
		return "", sdkerr.Newf(sdkerr.ErrInvalidDataType, "not a valid address: %q", addr)
	}
	return checksum(strings.ToLower(addr[2:])), nil
}

// checksum uppercases every letter whose Keccak256 nibble of the lowercase
// digits is above 7.
func checksum(digits string) string {
	digest := hash.Keccak256([]byte(digits))
	out := []byte(digits)
	for i := range out {
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble > 7 && out[i] >= 'a' {
			out[i] -= 'a' - 'A'
		}
	}
	return "0x" + string(out)
}

// String returns the checksummed address.
func (a Address) String() string {
	return checksum(a.digits)
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	v, err := AddressOf(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
