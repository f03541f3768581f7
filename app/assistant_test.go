package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/adapters/clock"
	"github.com/muadel/muadel/adapters/memory"
	"github.com/muadel/muadel/ports"
)

// countingCompleter records calls and echoes a deterministic answer.
type countingCompleter struct {
	calls    int
	fallback bool
}

func (c *countingCompleter) Complete(ctx context.Context, req ports.CompletionRequest) ports.CompletionResult {
	c.calls++
	return ports.CompletionResult{
		Content:   "generated for " + req.Prompt,
		Remaining: -1,
		Fallback:  c.fallback,
	}
}

type staticEntitlements struct {
	privileged bool
	err        error
}

func (e staticEntitlements) IsPrivileged(context.Context, string) (bool, error) {
	return e.privileged, e.err
}

func newTestAssistant(completer ports.Completer, ent ports.Entitlements) (*AssistantService, *clock.Fake) {
	clk := clock.NewFake(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	ledger := NewLedgerService(memory.NewKVStore(), clk, testLedgerPolicy(), zerolog.Nop(), nil)
	cache := memory.NewResponseCache(memory.DefaultCacheCapacity)
	return NewAssistantService(ledger, cache, completer, ent, zerolog.Nop(), nil), clk
}

func TestAssistantCacheHitSkipsProviderAndQuota(t *testing.T) {
	ctx := context.Background()
	provider := &countingCompleter{}
	svc, _ := newTestAssistant(provider, staticEntitlements{})

	// Limit for coverLetter is 1; the first call spends it.
	first, err := svc.Generate(ctx, "u1", "coverLetter", "prompt")
	if err != nil {
		t.Fatal(err)
	}

	// Same prompt again: served from cache even though the quota is gone.
	second, err := svc.Generate(ctx, "u1", "coverLetter", "prompt")
	if err != nil {
		t.Fatalf("cached repeat must not fail: %v", err)
	}
	if second.Content != first.Content {
		t.Errorf("cache returned %q, want %q", second.Content, first.Content)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}

	// A different prompt is a real request and hits the spent quota.
	if _, err := svc.Generate(ctx, "u1", "coverLetter", "another prompt"); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("err = %v, want ErrQuotaExceeded", err)
	}
}

func TestAssistantQuotaResetsNextDay(t *testing.T) {
	ctx := context.Background()
	provider := &countingCompleter{}
	svc, clk := newTestAssistant(provider, staticEntitlements{})

	if _, err := svc.Generate(ctx, "u1", "summary", "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Generate(ctx, "u1", "summary", "b"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}

	clk.NextDay()
	if _, err := svc.Generate(ctx, "u1", "summary", "b"); err != nil {
		t.Errorf("next day must reset the quota: %v", err)
	}
}

func TestAssistantPremiumGate(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestAssistant(&countingCompleter{}, staticEntitlements{})
	if _, err := svc.Generate(ctx, "u1", "jobMatch", "p"); !errors.Is(err, ErrPremiumRequired) {
		t.Errorf("err = %v, want ErrPremiumRequired", err)
	}

	privileged, _ := newTestAssistant(&countingCompleter{}, staticEntitlements{privileged: true})
	if _, err := privileged.Generate(ctx, "u1", "jobMatch", "p"); err != nil {
		t.Errorf("privileged caller must pass the gate: %v", err)
	}
}

func TestAssistantPrivilegedUnlimited(t *testing.T) {
	ctx := context.Background()
	provider := &countingCompleter{}
	svc, _ := newTestAssistant(provider, staticEntitlements{privileged: true})

	for i := 0; i < 5; i++ {
		if _, err := svc.Generate(ctx, "u1", "summary", string(rune('a'+i))); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := svc.Remaining(ctx, "u1", "summary"); got != -1 {
		t.Errorf("Remaining = %d, want -1 for privileged", got)
	}
}

func TestAssistantEntitlementErrorDegradesToFree(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAssistant(&countingCompleter{}, staticEntitlements{err: errors.New("stripe down")})

	// Free-tier rules still apply rather than a hard failure.
	if _, err := svc.Generate(ctx, "u1", "summary", "p"); err != nil {
		t.Fatalf("first free use must succeed: %v", err)
	}
	if _, err := svc.Generate(ctx, "u1", "jobMatch", "p"); !errors.Is(err, ErrPremiumRequired) {
		t.Errorf("err = %v, want ErrPremiumRequired", err)
	}
}

func TestAssistantFallbackNotCachedNotCounted(t *testing.T) {
	ctx := context.Background()
	provider := &countingCompleter{fallback: true}
	svc, _ := newTestAssistant(provider, staticEntitlements{})

	res, err := svc.Generate(ctx, "u1", "summary", "p")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Fallback {
		t.Error("expected a fallback result")
	}

	// The failed attempt spent nothing; the retry reaches the provider
	// again instead of the cache.
	if _, err := svc.Generate(ctx, "u1", "summary", "p"); err != nil {
		t.Fatal(err)
	}
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2 (fallback not cached)", provider.calls)
	}
	if got := svc.Remaining(ctx, "u1", "summary"); got != 1 {
		t.Errorf("Remaining = %d, want 1 (fallback not counted)", got)
	}
}

func TestAssistantRemaining(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAssistant(&countingCompleter{}, staticEntitlements{})

	if got := svc.Remaining(ctx, "u1", "summary"); got != 1 {
		t.Errorf("Remaining = %d, want 1", got)
	}
	if _, err := svc.Generate(ctx, "u1", "summary", "p"); err != nil {
		t.Fatal(err)
	}
	if got := svc.Remaining(ctx, "u1", "summary"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}
