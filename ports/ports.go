// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability. The usage ledger derives "today"
// from it on every call, never caching the date across calls.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers for finalized records.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// KVStore is the device-local persistent key-value store. All values are
// JSON text. Implementations must treat Get of a missing key as
// (value="", ok=false, err=nil), not as an error.
type KVStore interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// MultiGet retrieves several keys at once. Missing keys are simply
	// absent from the returned map.
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// -----------------------------------------------------------------------------
// External Service Ports
// -----------------------------------------------------------------------------

// CompletionRequest is one call to the hosted completion proxy.
type CompletionRequest struct {
	Feature string `json:"feature"`
	Prompt  string `json:"prompt"`
}

// CompletionResult is the proxy's answer. Remaining is the server-side
// quota counter, advisory only; -1 means the proxy did not report one.
type CompletionResult struct {
	Content   string `json:"content"`
	Remaining int    `json:"remaining"`

	// Fallback is true when Content came from the local deterministic
	// fallback rather than the remote service.
	Fallback bool `json:"-"`
}

// Completer produces generated text for a gated feature. Implementations
// never return an error for remote failures; they resolve to a
// deterministic local fallback so callers are never blocked.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) CompletionResult
}

// ResponseCache remembers the last successful completion per
// (feature, prompt) pair within one process lifetime.
type ResponseCache interface {
	Get(feature, prompt string) (string, bool)
	Put(feature, prompt, content string)
}

// Entitlements reports whether a caller holds an active paid entitlement.
type Entitlements interface {
	// IsPrivileged returns the entitlement state for userID. Errors mean
	// the provider could not be reached; callers decide the fallback.
	IsPrivileged(ctx context.Context, userID string) (bool, error)
}
