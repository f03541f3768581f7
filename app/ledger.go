// Package app contains the stateful services composing the pure domain
// packages with storage, clock, and external providers.
package app

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/adapters/metrics"
	"github.com/muadel/muadel/domain/usage"
	"github.com/muadel/muadel/ports"
)

// ledgerKey is where the shared per-day usage entry lives in the
// key-value store.
const ledgerKey = "usage:daily"

// LedgerService enforces the per-feature daily quota. It is advisory,
// not security-critical: storage read failures are treated as zero usage
// (fail open) and write failures are swallowed (fail silent), so a
// storage glitch never denies service and never crashes a feature that
// already succeeded.
type LedgerService struct {
	store   ports.KVStore
	clock   ports.Clock
	logger  zerolog.Logger
	metrics *metrics.Collector

	mu     sync.Mutex
	policy usage.Policy
}

// NewLedgerService creates the ledger service. metrics may be nil.
func NewLedgerService(store ports.KVStore, clk ports.Clock, policy usage.Policy, logger zerolog.Logger, m *metrics.Collector) *LedgerService {
	return &LedgerService{
		store:   store,
		clock:   clk,
		logger:  logger,
		metrics: m,
		policy:  policy,
	}
}

// SetPolicy swaps the limits, e.g. after a config hot reload.
func (s *LedgerService) SetPolicy(p usage.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
}

// CanUse reports whether the caller may perform the gated feature now.
// Privileged callers bypass the ledger entirely and are never counted.
func (s *LedgerService) CanUse(ctx context.Context, feature string, privileged bool) usage.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := usage.Day(s.clock.Now())
	d := usage.Decide(s.readEntry(ctx), today, feature, privileged, s.policy)

	if s.metrics != nil {
		allowed := "false"
		if d.Allowed {
			allowed = "true"
		}
		s.metrics.LedgerChecks.WithLabelValues(feature, allowed).Inc()
		if !d.Allowed {
			s.metrics.LedgerDenials.WithLabelValues(feature).Inc()
		}
	}
	return d
}

// RecordUsage increments today's count for feature. Best-effort: the
// gated action already happened, so failures here only risk
// under-counting, never block the caller. Privileged usage is never
// recorded, so a caller who later loses privilege starts from a clean
// quota.
func (s *LedgerService) RecordUsage(ctx context.Context, feature string, privileged bool) {
	if privileged {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := usage.Day(s.clock.Now())
	entry := usage.Increment(s.readEntry(ctx), today, feature)

	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, ledgerKey, string(raw)); err != nil {
		s.logger.Warn().Err(err).Str("feature", feature).Msg("failed to persist usage entry")
		if s.metrics != nil {
			s.metrics.StoreFailures.WithLabelValues("write").Inc()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.UsageRecorded.WithLabelValues(feature).Inc()
	}
}

// readEntry loads the stored entry, failing open to a zero entry on any
// read or decode problem.
func (s *LedgerService) readEntry(ctx context.Context) usage.Entry {
	raw, ok, err := s.store.Get(ctx, ledgerKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read usage entry, assuming zero usage")
		if s.metrics != nil {
			s.metrics.StoreFailures.WithLabelValues("read").Inc()
		}
		return usage.Entry{}
	}
	if !ok {
		return usage.Entry{}
	}
	var e usage.Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt usage entry, assuming zero usage")
		return usage.Entry{}
	}
	return e
}
