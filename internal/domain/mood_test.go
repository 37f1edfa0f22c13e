package domain

import (
	"errors"
	"testing"
	"time"
)

func TestMoodBand(t *testing.T) {
	want := map[Mood]string{
		0:            MoodBandNone,
		MoodTerrible: MoodBandCritical,
		MoodBad:      MoodBandLow,
		MoodNeutral:  MoodBandNeutral,
		MoodGood:     MoodBandGood,
		MoodGreat:    MoodBandGreat,
		6:            MoodBandNone,
	}
	for mood, band := range want {
		if got := mood.Band(); got != band {
			t.Fatalf("Mood(%d).Band() = %q, want %q", mood, got, band)
		}
	}
	if Mood(6).Valid() || Mood(0).Valid() || !MoodNeutral.Valid() {
		t.Fatalf("unexpected Valid results")
	}
}

func TestParseEntryDate(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)

	got, err := ParseEntryDate("2023-05-02", loc)
	if err != nil {
		t.Fatalf("parse bare date: %v", err)
	}
	if got.Location() != loc || DateKey(got) != "2023-05-02" || got.Hour() != 0 {
		t.Fatalf("unexpected bare date %v", got)
	}

	got, err = ParseEntryDate("2023-05-01T22:30:00Z", loc)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	if DateKey(got) != "2023-05-01" {
		t.Fatalf("expected timestamp keyed in its own zone, got %s", DateKey(got))
	}

	for _, raw := range []string{"", "  ", "02.05.2023", "2023-13-01"} {
		if _, err := ParseEntryDate(raw, loc); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2023, time.May, 2, 0, 0, 1, 0, time.UTC)
	b := time.Date(2023, time.May, 2, 23, 59, 59, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatalf("expected same day")
	}
	if SameDay(a, a.AddDate(0, 0, 1)) {
		t.Fatalf("expected different days")
	}
}

func TestStartOfDay(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	late := time.Date(2023, time.May, 2, 23, 0, 0, 0, ny)

	got := StartOfDay(late, time.UTC)
	if !got.Equal(time.Date(2023, time.May, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected May 3 UTC midnight, got %v", got)
	}
	if got := StartOfDay(late, ny); DateKey(got) != "2023-05-02" || got.Hour() != 0 {
		t.Fatalf("expected May 2 midnight in EST, got %v", got)
	}
}

func TestIsKnownSymptom(t *testing.T) {
	for _, s := range DefaultSymptoms() {
		if !IsKnownSymptom(s) {
			t.Fatalf("expected %q known", s)
		}
	}
	if IsKnownSymptom("euphoria") {
		t.Fatalf("expected unknown symptom rejected")
	}
}
