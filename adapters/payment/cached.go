package payment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/ports"
)

// premiumFlagKey is where the cached entitlement state lives in the
// key-value store.
const premiumFlagKey = "entitlement:premium"

// DefaultRefreshInterval is how long a cached entitlement answer stays
// fresh before the provider is consulted again.
const DefaultRefreshInterval = 12 * time.Hour

type cachedFlag struct {
	UserID     string    `json:"userId"`
	Privileged bool      `json:"privileged"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// Cached decorates an entitlement provider with a persisted flag so the
// expensive remote check runs at most once per refresh interval. When
// the provider is unreachable the last known answer is reused, stale or
// not; a user is never blocked by a billing outage.
type Cached struct {
	inner    ports.Entitlements
	store    ports.KVStore
	clock    ports.Clock
	interval time.Duration
	logger   zerolog.Logger
}

// NewCached wraps inner with the persisted cache.
func NewCached(inner ports.Entitlements, store ports.KVStore, clock ports.Clock, interval time.Duration, logger zerolog.Logger) *Cached {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Cached{inner: inner, store: store, clock: clock, interval: interval, logger: logger}
}

// IsPrivileged returns the cached answer when fresh, otherwise refreshes
// it from the underlying provider.
func (c *Cached) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	now := c.clock.Now()

	cached, hasCached := c.load(ctx, userID)
	if hasCached && now.Sub(cached.CheckedAt) < c.interval {
		return cached.Privileged, nil
	}

	privileged, err := c.inner.IsPrivileged(ctx, userID)
	if err != nil {
		c.logger.Warn().Err(err).Msg("entitlement check failed, using last known state")
		if hasCached {
			return cached.Privileged, nil
		}
		return false, nil
	}

	c.save(ctx, cachedFlag{UserID: userID, Privileged: privileged, CheckedAt: now})
	return privileged, nil
}

func (c *Cached) load(ctx context.Context, userID string) (cachedFlag, bool) {
	raw, ok, err := c.store.Get(ctx, premiumFlagKey)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to read cached entitlement flag")
		return cachedFlag{}, false
	}
	if !ok {
		return cachedFlag{}, false
	}
	var f cachedFlag
	if err := json.Unmarshal([]byte(raw), &f); err != nil || f.UserID != userID {
		return cachedFlag{}, false
	}
	return f, true
}

func (c *Cached) save(ctx context.Context, f cachedFlag) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, premiumFlagKey, string(raw)); err != nil {
		// Write failures only cost an extra remote check next time.
		c.logger.Warn().Err(err).Msg("failed to persist entitlement flag")
	}
}

var _ ports.Entitlements = (*Cached)(nil)
