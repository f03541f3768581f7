package clock

import (
	"testing"
	"time"
)

func TestRealNow(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("Real.Now() = %v outside [%v, %v]", got, before, after)
	}
}

func TestFake(t *testing.T) {
	start := time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC)
	f := NewFake(start)

	if !f.Now().Equal(start) {
		t.Errorf("Now = %v, want %v", f.Now(), start)
	}

	f.Advance(3 * time.Hour)
	if got := f.Now(); !got.Equal(start.Add(3 * time.Hour)) {
		t.Errorf("after Advance, Now = %v", got)
	}

	f.Set(start)
	f.NextDay()
	if got := f.Now(); got.Day() != 10 || got.Hour() != 22 {
		t.Errorf("after NextDay, Now = %v", got)
	}
}
