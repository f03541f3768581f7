package usage

import (
	"testing"
	"time"
)

func testPolicy() Policy {
	return Policy{
		Limits:         map[string]int{"summary": 1, "coverLetter": 3},
		DefaultLimit:   2,
		PrivilegedOnly: map[string]bool{"jobMatch": true},
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	at := time.Date(2026, 3, 9, 23, 30, 0, 0, loc)
	if got := Day(at); got != "2026-03-09" {
		t.Errorf("Day = %q, want 2026-03-09", got)
	}
}

func TestDecide_UnderLimit(t *testing.T) {
	d := Decide(Entry{}, "2026-03-09", "summary", false, testPolicy())
	if !d.Allowed || d.Used != 0 || d.Limit != 1 {
		t.Errorf("Decide on fresh entry = %+v", d)
	}
}

func TestDecide_AtLimit(t *testing.T) {
	e := Entry{Date: "2026-03-09", Counts: map[string]int{"summary": 1}}
	d := Decide(e, "2026-03-09", "summary", false, testPolicy())
	if d.Allowed {
		t.Fatalf("expected denial at limit, got %+v", d)
	}
	if d.Reason == "" {
		t.Error("denial must carry a human-readable reason")
	}
}

func TestDecide_StaleEntryCountsAsZero(t *testing.T) {
	e := Entry{Date: "2026-03-08", Counts: map[string]int{"summary": 5}}
	d := Decide(e, "2026-03-09", "summary", false, testPolicy())
	if !d.Allowed || d.Used != 0 {
		t.Errorf("stale entry should read as zero usage, got %+v", d)
	}
}

func TestDecide_PrivilegedBypass(t *testing.T) {
	e := Entry{Date: "2026-03-09", Counts: map[string]int{"summary": 99}}
	d := Decide(e, "2026-03-09", "summary", true, testPolicy())
	if !d.Allowed || d.Limit != -1 {
		t.Errorf("privileged caller must always be allowed, got %+v", d)
	}
}

func TestDecide_HardGatedFeature(t *testing.T) {
	if d := Decide(Entry{}, "2026-03-09", "jobMatch", false, testPolicy()); d.Allowed || !d.Gated {
		t.Errorf("jobMatch must be denied as gated for non-privileged callers, got %+v", d)
	}
	if d := Decide(Entry{}, "2026-03-09", "jobMatch", true, testPolicy()); !d.Allowed {
		t.Errorf("jobMatch must be allowed for privileged callers, got %+v", d)
	}
}

func TestDecide_DefaultLimit(t *testing.T) {
	e := Entry{Date: "2026-03-09", Counts: map[string]int{"other": 2}}
	if d := Decide(e, "2026-03-09", "other", false, testPolicy()); d.Allowed {
		t.Errorf("default limit of 2 should deny third use, got %+v", d)
	}
}

func TestIncrement(t *testing.T) {
	e := Increment(Entry{}, "2026-03-09", "summary")
	if e.Date != "2026-03-09" || e.Counts["summary"] != 1 {
		t.Errorf("Increment on empty entry = %+v", e)
	}

	e = Increment(e, "2026-03-09", "summary")
	if e.Counts["summary"] != 2 {
		t.Errorf("second increment = %+v", e)
	}

	// Rolling to a new day drops yesterday's counts.
	e = Increment(e, "2026-03-10", "coverLetter")
	if e.Date != "2026-03-10" || e.Counts["summary"] != 0 || e.Counts["coverLetter"] != 1 {
		t.Errorf("rolled entry = %+v", e)
	}
}

func TestIncrementDoesNotMutateInput(t *testing.T) {
	orig := Entry{Date: "2026-03-09", Counts: map[string]int{"summary": 1}}
	_ = Increment(orig, "2026-03-09", "summary")
	if orig.Counts["summary"] != 1 {
		t.Errorf("input entry mutated: %+v", orig)
	}
}
