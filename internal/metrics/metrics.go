// Package metrics counts signing, signer recovery and decoding work done by
// the SDK. Counters are atomic and safe for concurrent use.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds process-wide counters.
type Metrics struct {
	// Signing
	signaturesTotal atomic.Int64
	signErrorsTotal atomic.Int64

	// Signer recovery
	recoveriesTotal      atomic.Int64
	recoveryErrorsTotal  atomic.Int64
	recoveryLatencyNanos atomic.Int64

	// Signer cache
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64

	// Decoding
	decodesTotal      atomic.Int64
	decodeErrorsTotal atomic.Int64
}

// Global is the instance the SDK packages record into.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordSign records a signing attempt.
func (m *Metrics) RecordSign(err error) {
	m.signaturesTotal.Add(1)
	if err != nil {
		m.signErrorsTotal.Add(1)
	}
}

// RecordRecovery records a public key recovery and its duration.
func (m *Metrics) RecordRecovery(duration time.Duration, err error) {
	m.recoveriesTotal.Add(1)
	m.recoveryLatencyNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.recoveryErrorsTotal.Add(1)
	}
}

// RecordCacheHit records a signer cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a signer cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordDecode records a transaction decode.
func (m *Metrics) RecordDecode(err error) {
	m.decodesTotal.Add(1)
	if err != nil {
		m.decodeErrorsTotal.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	SignaturesTotal      int64 `json:"signatures_total" yaml:"signatures_total"`
	SignErrorsTotal      int64 `json:"sign_errors_total" yaml:"sign_errors_total"`
	RecoveriesTotal      int64 `json:"recoveries_total" yaml:"recoveries_total"`
	RecoveryErrorsTotal  int64 `json:"recovery_errors_total" yaml:"recovery_errors_total"`
	RecoveryLatencyNanos int64 `json:"recovery_latency_nanos" yaml:"recovery_latency_nanos"`
	CacheHits            int64 `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses          int64 `json:"cache_misses" yaml:"cache_misses"`
	DecodesTotal         int64 `json:"decodes_total" yaml:"decodes_total"`
	DecodeErrorsTotal    int64 `json:"decode_errors_total" yaml:"decode_errors_total"`
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		SignaturesTotal:      m.signaturesTotal.Load(),
		SignErrorsTotal:      m.signErrorsTotal.Load(),
		RecoveriesTotal:      m.recoveriesTotal.Load(),
		RecoveryErrorsTotal:  m.recoveryErrorsTotal.Load(),
		RecoveryLatencyNanos: m.recoveryLatencyNanos.Load(),
		CacheHits:            m.cacheHits.Load(),
		CacheMisses:          m.cacheMisses.Load(),
		DecodesTotal:         m.decodesTotal.Load(),
		DecodeErrorsTotal:    m.decodeErrorsTotal.Load(),
	}
}

// RecoveryLatencyAvgMs returns the average recovery latency in
// milliseconds, or 0 before the first recovery.
func (m *Metrics) RecoveryLatencyAvgMs() float64 {
	n := m.recoveriesTotal.Load()
	if n == 0 {
		return 0
	}
	return float64(m.recoveryLatencyNanos.Load()) / float64(n) / 1e6
}

// CacheHitRate returns the signer cache hit rate as a percentage (0-100).
// Returns 0 if no lookups have occurred.
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	total := hits + m.cacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Reset resets all counters to zero.
func (m *Metrics) Reset() {
	m.signaturesTotal.Store(0)
	m.signErrorsTotal.Store(0)
	m.recoveriesTotal.Store(0)
	m.recoveryErrorsTotal.Store(0)
	m.recoveryLatencyNanos.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.decodesTotal.Store(0)
	m.decodeErrorsTotal.Store(0)
}
