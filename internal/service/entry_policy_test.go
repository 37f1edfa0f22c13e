package service

import (
	"errors"
	"testing"
	"time"
)

func TestEntryDatePolicy(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	policy := NewEntryDatePolicy(loc, false)
	// 22:30 UTC on May 20 is already May 21 in MSK.
	policy.now = func() time.Time { return time.Date(2023, time.May, 20, 22, 30, 0, 0, time.UTC) }

	if today := policy.Today(); today.Day() != 21 || today.Hour() != 0 {
		t.Fatalf("expected midnight May 21 in policy zone, got %v", today)
	}
	if err := policy.Check(time.Date(2023, time.May, 21, 23, 0, 0, 0, loc)); err != nil {
		t.Fatalf("expected today to be allowed, got %v", err)
	}
	if err := policy.Check(time.Date(2023, time.May, 1, 0, 0, 0, 0, loc)); err != nil {
		t.Fatalf("expected past date to be allowed, got %v", err)
	}
	if err := policy.Check(time.Date(2023, time.May, 22, 0, 0, 0, 0, loc)); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}

	permissive := NewEntryDatePolicy(loc, true)
	permissive.now = policy.now
	if err := permissive.Check(time.Date(2030, time.January, 1, 0, 0, 0, 0, loc)); err != nil {
		t.Fatalf("expected future dates allowed, got %v", err)
	}
	if !permissive.IsFuture(time.Date(2030, time.January, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("IsFuture should not depend on allowFuture")
	}

	// 20:00 EST on May 21 is already May 22 in MSK.
	if err := policy.Check(time.Date(2023, time.May, 21, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected offset timestamp judged in policy zone, got %v", err)
	}
}
