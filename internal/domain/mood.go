package domain

import (
	"errors"
	"strings"
	"time"
)

// Mood is the five-point self-rating recorded for a day.
type Mood int

const (
	MoodTerrible Mood = 1
	MoodBad      Mood = 2
	MoodNeutral  Mood = 3
	MoodGood     Mood = 4
	MoodGreat    Mood = 5
)

// Mood bands are presentation-neutral identifiers used by calendars and charts.
const (
	MoodBandNone     = "none"
	MoodBandCritical = "critical"
	MoodBandLow      = "low"
	MoodBandNeutral  = "neutral"
	MoodBandGood     = "good"
	MoodBandGreat    = "great"
)

func (m Mood) Valid() bool {
	return m >= MoodTerrible && m <= MoodGreat
}

func (m Mood) Label() string {
	switch m {
	case MoodTerrible:
		return "Terrible"
	case MoodBad:
		return "Bad"
	case MoodNeutral:
		return "Neutral"
	case MoodGood:
		return "Good"
	case MoodGreat:
		return "Great"
	default:
		return ""
	}
}

// Band maps the mood to its band identifier; out of range values map to MoodBandNone.
func (m Mood) Band() string {
	switch m {
	case MoodTerrible:
		return MoodBandCritical
	case MoodBad:
		return MoodBandLow
	case MoodNeutral:
		return MoodBandNeutral
	case MoodGood:
		return MoodBandGood
	case MoodGreat:
		return MoodBandGreat
	default:
		return MoodBandNone
	}
}

type Symptom string

const (
	SymptomAnxiety       Symptom = "anxiety"
	SymptomFatigue       Symptom = "fatigue"
	SymptomInsomnia      Symptom = "insomnia"
	SymptomIrritability  Symptom = "irritability"
	SymptomSadness       Symptom = "sadness"
	SymptomStress        Symptom = "stress"
	SymptomHeadache      Symptom = "headache"
	SymptomApathy        Symptom = "apathy"
	SymptomConcentration Symptom = "concentration"
)

// DefaultSymptoms returns the fixed symptom vocabulary in display order.
func DefaultSymptoms() []Symptom {
	return []Symptom{
		SymptomAnxiety,
		SymptomFatigue,
		SymptomInsomnia,
		SymptomIrritability,
		SymptomSadness,
		SymptomStress,
		SymptomHeadache,
		SymptomApathy,
		SymptomConcentration,
	}
}

func IsKnownSymptom(s Symptom) bool {
	for _, known := range DefaultSymptoms() {
		if s == known {
			return true
		}
	}
	return false
}

// MoodEntry is a single journal record. Entries are identified by calendar date.
type MoodEntry struct {
	Date     time.Time `json:"date"`
	Mood     Mood      `json:"mood"`
	Symptoms []Symptom `json:"symptoms"`
	Notes    string    `json:"notes,omitempty"`
}

// Key returns the calendar date key of the entry.
func (e MoodEntry) Key() string {
	return DateKey(e.Date)
}

// DateKeyLayout is the normalized calendar date form used for identity.
const DateKeyLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// DateKey truncates t to its calendar date in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// StartOfDay returns midnight of the calendar day t falls on as seen from loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseEntryDate accepts either a bare YYYY-MM-DD date, interpreted in loc, or an
// RFC 3339 timestamp. Timestamps keep their offset; callers map them to a zone.
func ParseEntryDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateKeyLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
