// Package usage provides pure decision rules for the per-day, per-feature
// usage ledger. All functions are deterministic with no side effects; the
// stateful service around them lives in app.
package usage

import (
	"fmt"
	"time"
)

// DateLayout is the ledger's date key format. Days are derived from the
// device-local calendar date, uniformly, so the rollover boundary is the
// user's own midnight.
const DateLayout = "2006-01-02"

// Day formats t as a ledger date key.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// Entry is the stored per-day record: one date key plus a counter per
// gated feature. An entry whose Date is not today is treated as all
// zeros; it is rolled forward lazily on the next write.
type Entry struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// CountFor returns the recorded count for feature on the given day.
// Stale entries (any other date) count as zero.
func (e Entry) CountFor(today, feature string) int {
	if e.Date != today {
		return 0
	}
	return e.Counts[feature]
}

// Policy configures the ledger's limits.
type Policy struct {
	// Limits holds the per-feature daily limit. Features missing from
	// the map fall back to DefaultLimit.
	Limits map[string]int

	// DefaultLimit applies to features without an explicit limit.
	DefaultLimit int

	// PrivilegedOnly features are hard-gated: non-privileged callers are
	// always denied regardless of count. Checked before any counter.
	PrivilegedOnly map[string]bool
}

// LimitFor returns the daily limit for a feature.
func (p Policy) LimitFor(feature string) int {
	if l, ok := p.Limits[feature]; ok {
		return l
	}
	return p.DefaultLimit
}

// Decision is the outcome of a ledger check (value type).
type Decision struct {
	Allowed bool
	Reason  string
	Gated   bool // denied because the feature is privileged-only
	Used    int
	Limit   int // -1 for privileged callers (no limit applies)
}

// Decide performs a ledger check against the stored entry. This is a
// PURE function; reading the store and the wall clock is the caller's
// concern. Privileged callers bypass the ledger entirely: the counter is
// not consulted and privileged usage is never counted.
func Decide(e Entry, today, feature string, privileged bool, p Policy) Decision {
	if privileged {
		return Decision{Allowed: true, Limit: -1}
	}
	if p.PrivilegedOnly[feature] {
		return Decision{
			Reason: fmt.Sprintf("%s is available to subscribers only", feature),
			Gated:  true,
		}
	}

	used := e.CountFor(today, feature)
	limit := p.LimitFor(feature)
	if used >= limit {
		return Decision{
			Reason: fmt.Sprintf("daily limit of %d reached for %s", limit, feature),
			Used:   used,
			Limit:  limit,
		}
	}
	return Decision{Allowed: true, Used: used, Limit: limit}
}

// Increment returns a copy of the entry with today's count for feature
// raised by one. A stale entry is rolled to today first, dropping
// yesterday's counts.
func Increment(e Entry, today, feature string) Entry {
	next := Entry{Date: today, Counts: make(map[string]int, len(e.Counts)+1)}
	if e.Date == today {
		for k, v := range e.Counts {
			next.Counts[k] = v
		}
	}
	next.Counts[feature]++
	return next
}
