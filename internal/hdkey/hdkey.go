package hdkey

import (
	"errors"
	"strconv"
	"strings"

	"github.com/decred/base58"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/hdkeychain/v3"

	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	"github.com/vechain/vechain-sdk-go/internal/secure"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// VETDerivationPath is the BIP-44 account path for coin type 818; account
// keys are its children.
const VETDerivationPath = "m/44'/818'/0'/0"

// ChainCodeLength is the size of a BIP-32 chain code.
const ChainCodeLength = 32

// netParams carries the standard mainnet xprv/xpub version bytes.
type netParams struct{}

func (netParams) HDPrivKeyVersion() [4]byte { return [4]byte{0x04, 0x88, 0xAD, 0xE4} }
func (netParams) HDPubKeyVersion() [4]byte  { return [4]byte{0x04, 0x88, 0xB2, 0x1E} }

// Key is a node of a BIP-32 tree. Keys built from a public key can only
// derive non-hardened children.
type Key struct {
	ext *hdkeychain.ExtendedKey
}

func invalidHDKey(format string, args ...any) *sdkerr.SDKError {
	return sdkerr.Newf(sdkerr.ErrInvalidHDKey, format, args...)
}

// FromMnemonic builds the master key of mnemonic and derives path from it.
// An empty path means VETDerivationPath.
func FromMnemonic(mnemonic, path string) (*Key, error) {
	seed, err := MnemonicToSeed(mnemonic, "")
	if err != nil {
		return nil, err
	}
	locked := secure.FromSlice(seed)
	secure.Zero(seed)
	defer locked.Destroy()

	return FromSeed(locked.Bytes(), path)
}

// FromSeed builds the master key of seed and derives path from it.
func FromSeed(seed []byte, path string) (*Key, error) {
	if path == "" {
		path = VETDerivationPath
	}
	master, err := hdkeychain.NewMaster(seed, netParams{})
	if err != nil {
		return nil, sdkerr.WithCause(invalidHDKey("failed to create master key"), err)
	}
	return (&Key{ext: master}).Derive(path)
}

// FromPrivateKey builds a root key from a raw private key and chain code.
func FromPrivateKey(privateKey, chainCode []byte) (*Key, error) {
	if !secp256k1.IsValidPrivateKey(privateKey) {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidPrivateKey, "invalid private key given as input")
	}
	if len(chainCode) != ChainCodeLength {
		return nil, sdkerr.Newf(sdkerr.ErrInvalidPrivateKey, "invalid chain code given as input: length must be exactly %d bytes", ChainCodeLength)
	}
	keyData := make([]byte, 0, 33)
	keyData = append(keyData, 0x00)
	keyData = append(keyData, privateKey...)
	defer secure.Zero(keyData)
	return rootKey(netParams{}.HDPrivKeyVersion(), keyData, chainCode)
}

// FromPublicKey builds a public-only root key from a public key, compressed
// or not, and chain code.
func FromPublicKey(publicKey, chainCode []byte) (*Key, error) {
	if len(chainCode) != ChainCodeLength {
		return nil, invalidHDKey("invalid chain code given as input: length must be exactly %d bytes", ChainCodeLength)
	}
	compressed, err := secp256k1.CompressPublicKey(publicKey)
	if err != nil {
		return nil, sdkerr.WithCause(invalidHDKey("invalid public key given as input"), err)
	}
	return rootKey(netParams{}.HDPubKeyVersion(), compressed, chainCode)
}

// Serialized extended key layout: version(4) depth(1) parent fingerprint(4)
// child number(4) chain code(32) key data(33), then a 4 byte checksum.
const (
	chainCodeOffset = 13
	keyDataOffset   = chainCodeOffset + ChainCodeLength
	serializedLen   = keyDataOffset + 33
)

// rootKey builds a depth zero key by serializing it and loading it back, the
// only way hdkeychain accepts external key material.
func rootKey(version [4]byte, keyData, chainCode []byte) (*Key, error) {
	payload := make([]byte, chainCodeOffset, serializedLen+4)
	copy(payload, version[:])
	payload = append(payload, chainCode...)
	payload = append(payload, keyData...)
	payload = append(payload, checksum(payload)...)
	defer secure.Zero(payload)

	ext, err := hdkeychain.NewKeyFromString(base58.Encode(payload), netParams{})
	if err != nil {
		return nil, sdkerr.WithCause(invalidHDKey("invalid extended key material"), err)
	}
	return &Key{ext: ext}, nil
}

// checksum is the first four bytes of BLAKE-256 applied twice, as used by
// hdkeychain serializations.
func checksum(payload []byte) []byte {
	first := blake256.Sum256(payload)
	second := blake256.Sum256(first[:])
	return second[:4]
}

// Parse decodes a base58 xprv or xpub string.
func Parse(extended string) (*Key, error) {
	ext, err := hdkeychain.NewKeyFromString(extended, netParams{})
	if err != nil {
		return nil, sdkerr.WithCause(invalidHDKey("invalid extended key"), err)
	}
	return &Key{ext: ext}, nil
}

// Derive walks path from k. Paths start with "m"; hardened components end
// with an apostrophe.
func (k *Key) Derive(path string) (*Key, error) {
	indexes, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	ext := k.ext
	for _, i := range indexes {
		if ext, err = ext.ChildBIP32Std(i); err != nil {
			return nil, deriveError(path, err)
		}
	}
	return &Key{ext: ext}, nil
}

// DeriveChild returns the non-hardened child at index.
func (k *Key) DeriveChild(index uint32) (*Key, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return nil, invalidHDKey("child index %d is hardened", index)
	}
	ext, err := k.ext.ChildBIP32Std(index)
	if err != nil {
		return nil, deriveError(strconv.FormatUint(uint64(index), 10), err)
	}
	return &Key{ext: ext}, nil
}

func deriveError(path string, err error) error {
	e := invalidHDKey("invalid derivation path given as input")
	if errors.Is(err, hdkeychain.ErrDeriveHardFromPublic) {
		e = invalidHDKey("cannot derive a hardened key from a public key")
	}
	return sdkerr.WithCause(sdkerr.WithDetails(e, map[string]string{"path": path}), err)
}

// IsPrivate reports whether k carries private key material.
func (k *Key) IsPrivate() bool {
	return k.ext.IsPrivate()
}

// PrivateKey returns the raw 32-byte private key.
func (k *Key) PrivateKey() ([]byte, error) {
	priv, err := k.ext.SerializedPrivKey()
	if err != nil {
		return nil, sdkerr.WithCause(sdkerr.Newf(sdkerr.ErrUnavailableField, "private key is not available for a public key node"), err)
	}
	return clone(priv), nil
}

// PublicKey returns the compressed 33-byte public key.
func (k *Key) PublicKey() []byte {
	return clone(k.ext.SerializedPubKey())
}

// ChainCode returns a copy of the chain code.
func (k *Key) ChainCode() []byte {
	decoded := base58.Decode(k.ext.String())
	defer secure.Zero(decoded)
	if len(decoded) != serializedLen+4 {
		return nil
	}
	return clone(decoded[chainCodeOffset:keyDataOffset])
}

// Address returns the account address of k.
func (k *Key) Address() (vcdm.Address, error) {
	return vcdm.AddressOfPublicKey(k.ext.SerializedPubKey())
}

// Neuter returns the public-only form of k.
func (k *Key) Neuter() *Key {
	return &Key{ext: k.ext.Neuter()}
}

// String returns the base58 xprv or xpub serialization.
func (k *Key) String() string {
	return k.ext.String()
}

// IsValidPath reports whether path is a BIP-32 derivation path.
func IsValidPath(path string) bool {
	_, err := parsePath(path)
	return err == nil
}

func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if parts[0] != "m" {
		return nil, sdkerr.WithDetails(invalidHDKey("invalid derivation path given as input"), map[string]string{"path": path})
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		digits := strings.TrimSuffix(part, "'")
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || digits == "" || digits[0] == '+' || n >= uint64(hdkeychain.HardenedKeyStart) {
			return nil, sdkerr.WithDetails(invalidHDKey("invalid derivation path given as input"), map[string]string{"path": path})
		}
		i := uint32(n)
		if hardened {
			i += hdkeychain.HardenedKeyStart
		}
		indexes = append(indexes, i)
	}
	return indexes, nil
}

// DerivePrivateKey returns the private key of account index under
// VETDerivationPath.
func DerivePrivateKey(mnemonic string, index uint32) ([]byte, error) {
	root, err := FromMnemonic(mnemonic, VETDerivationPath)
	if err != nil {
		return nil, err
	}
	child, err := root.DeriveChild(index)
	if err != nil {
		return nil, err
	}
	return child.PrivateKey()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
