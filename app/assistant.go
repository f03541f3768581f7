package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/adapters/metrics"
	"github.com/muadel/muadel/ports"
)

// ErrQuotaExceeded is returned when the daily allowance for a feature
// is used up.
var ErrQuotaExceeded = errors.New("daily quota exceeded")

// ErrPremiumRequired is returned for features gated to privileged users.
var ErrPremiumRequired = errors.New("feature requires a premium subscription")

// AssistantService front-ends the completion provider with the quota
// ledger and the response cache. Order matters: the quota is checked
// before any network call, the cache is consulted before spending the
// allowance, and usage is recorded only after a response comes back.
type AssistantService struct {
	ledger       *LedgerService
	cache        ports.ResponseCache
	completer    ports.Completer
	entitlements ports.Entitlements
	logger       zerolog.Logger
	metrics      *metrics.Collector
}

// NewAssistantService wires the assistant. entitlements may be a noop
// provider; the rest are required.
func NewAssistantService(ledger *LedgerService, cache ports.ResponseCache, completer ports.Completer, entitlements ports.Entitlements, logger zerolog.Logger, collector *metrics.Collector) *AssistantService {
	return &AssistantService{
		ledger:       ledger,
		cache:        cache,
		completer:    completer,
		entitlements: entitlements,
		logger:       logger,
		metrics:      collector,
	}
}

// Generate produces a completion for the feature and prompt on behalf
// of userID. Cache hits cost nothing and skip the provider entirely.
func (s *AssistantService) Generate(ctx context.Context, userID, feature, prompt string) (ports.CompletionResult, error) {
	privileged := s.privileged(ctx, userID)

	decision := s.ledger.CanUse(ctx, feature, privileged)
	if !decision.Allowed {
		s.logger.Info().
			Str("feature", feature).
			Str("reason", decision.Reason).
			Int("used", decision.Used).
			Int("limit", decision.Limit).
			Msg("request blocked by ledger")
		if decision.Gated {
			return ports.CompletionResult{}, ErrPremiumRequired
		}
		return ports.CompletionResult{}, ErrQuotaExceeded
	}

	normalized := strings.TrimSpace(prompt)
	if cached, ok := s.cache.Get(feature, normalized); ok {
		if s.metrics != nil {
			s.metrics.CacheHits.WithLabelValues(feature).Inc()
		}
		s.logger.Debug().Str("feature", feature).Msg("cache hit")
		return ports.CompletionResult{Content: cached, Remaining: decision.Limit - decision.Used}, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.WithLabelValues(feature).Inc()
		s.metrics.CompletionCalls.WithLabelValues(feature).Inc()
	}

	result := s.completer.Complete(ctx, ports.CompletionRequest{Feature: feature, Prompt: normalized})
	if result.Fallback {
		// Fallback content is served but not cached and not counted:
		// caching it would keep masking the provider after it recovers,
		// and the user did not receive the real service.
		if s.metrics != nil {
			s.metrics.CompletionFallbacks.WithLabelValues(feature).Inc()
		}
		return result, nil
	}

	s.cache.Put(feature, normalized, result.Content)
	s.ledger.RecordUsage(ctx, feature, privileged)
	return result, nil
}

// Remaining reports how many uses of the feature are left today, or -1
// for privileged users.
func (s *AssistantService) Remaining(ctx context.Context, userID, feature string) int {
	decision := s.ledger.CanUse(ctx, feature, s.privileged(ctx, userID))
	if decision.Limit < 0 {
		return -1
	}
	left := decision.Limit - decision.Used
	if left < 0 {
		return 0
	}
	return left
}

func (s *AssistantService) privileged(ctx context.Context, userID string) bool {
	if s.entitlements == nil {
		return false
	}
	ok, err := s.entitlements.IsPrivileged(ctx, userID)
	if err != nil {
		// Entitlement outages degrade to the free tier rather than
		// blocking the feature outright.
		s.logger.Warn().Err(err).Msg("entitlement check failed")
		return false
	}
	return ok
}
