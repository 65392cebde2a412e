package transaction

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/vechain-sdk-go/internal/metrics"
	"github.com/vechain/vechain-sdk-go/internal/secp256k1"
	"github.com/vechain/vechain-sdk-go/internal/vcdm"
	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// DefaultSignerCacheSize is the number of recovered signers kept in memory.
const DefaultSignerCacheSize = 1024

//nolint:gochecknoglobals // process-wide cache shared by every transaction
var signerCache atomic.Pointer[lru.Cache]

func init() {
	cache, _ := lru.New(DefaultSignerCacheSize)
	signerCache.Store(cache)
}

// SetSignerCacheSize replaces the signer recovery cache. A size of zero
// disables caching.
func SetSignerCacheSize(size int) error {
	if size < 0 {
		return sdkerr.Newf(sdkerr.ErrInvalidInput, "signer cache size must not be negative, got %d", size)
	}
	if size == 0 {
		signerCache.Store(nil)
		return nil
	}
	cache, err := lru.New(size)
	if err != nil {
		return sdkerr.WithCause(sdkerr.ErrInvalidInput, err)
	}
	signerCache.Store(cache)
	return nil
}

// recoverSigner returns the address that produced sig over hash.
func recoverSigner(hash, sig []byte) (vcdm.Address, error) {
	cache := signerCache.Load()
	key := string(hash) + string(sig)
	if cache != nil {
		if v, ok := cache.Get(key); ok {
			metrics.Global.RecordCacheHit()
			return v.(vcdm.Address), nil //nolint:forcetypeassert // only addresses are stored
		}
		metrics.Global.RecordCacheMiss()
	}

	start := time.Now()
	pub, err := secp256k1.RecoverPublicKey(hash, sig)
	metrics.Global.RecordRecovery(time.Since(start), err)
	if err != nil {
		return vcdm.Address{}, err
	}
	addr, err := vcdm.AddressOfPublicKey(pub)
	if err != nil {
		return vcdm.Address{}, err
	}
	if cache != nil {
		cache.Add(key, addr)
	}
	return addr, nil
}
