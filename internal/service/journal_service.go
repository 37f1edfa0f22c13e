package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/domain"
	"github.com/1SadFox/psyco/internal/repository"
)

// MoodEntriesKey is the storage key holding the JSON array of entries.
const MoodEntriesKey = "moodEntries"

// JournalService owns the mood entries of one journal, at most one per calendar date.
// Calendar dates are taken in loc; every stored date is midnight of its day there.
type JournalService struct {
	mu      sync.Mutex
	store   repository.KVStore
	logger  *zap.Logger
	loc     *time.Location
	entries map[string]domain.MoodEntry
}

// NewJournalService hydrates the journal from store. Missing, unreadable or malformed
// content falls back to the demo dataset; construction never fails.
func NewJournalService(store repository.KVStore, logger *zap.Logger, loc *time.Location) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	s := &JournalService{
		store:   store,
		logger:  logger,
		loc:     loc,
		entries: make(map[string]domain.MoodEntry),
	}
	s.hydrate()
	return s
}

func (s *JournalService) hydrate() {
	if s.store == nil {
		s.seed()
		return
	}
	raw, found, err := s.store.Get(MoodEntriesKey)
	if err != nil {
		s.logger.Warn("read mood entries failed, using seed data", zap.Error(err))
		s.seed()
		return
	}
	if !found || strings.TrimSpace(raw) == "" {
		s.seed()
		return
	}

	var stored []domain.MoodEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("malformed mood entries in storage, using seed data", zap.Error(err))
		s.seed()
		return
	}
	if stored == nil {
		s.seed()
		return
	}
	for _, entry := range stored {
		normalized, err := normalizeEntry(entry, s.loc)
		if err != nil {
			s.logger.Warn("dropping invalid stored mood entry", zap.Error(err), zap.String("date", entry.Key()))
			continue
		}
		s.entries[normalized.Key()] = normalized
	}
}

func (s *JournalService) seed() {
	for _, entry := range SeedMoodEntries() {
		// Seed days are calendar days, so keep year, month and day in the journal zone.
		entry.Date = time.Date(entry.Date.Year(), entry.Date.Month(), entry.Date.Day(), 0, 0, 0, 0, s.loc)
		s.entries[entry.Key()] = entry
	}
}

// SaveMoodEntry stores entry, replacing wholesale any entry on the same calendar date,
// and writes the whole journal to storage. Write failures are logged, not returned.
func (s *JournalService) SaveMoodEntry(entry domain.MoodEntry) (domain.MoodEntry, error) {
	normalized, err := normalizeEntry(entry, s.loc)
	if err != nil {
		return domain.MoodEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalized.Key()
	_, replaced := s.entries[key]
	s.entries[key] = normalized
	s.persistLocked()

	s.logger.Info("mood entry saved", zap.String("date", key), zap.Bool("replaced", replaced))
	return cloneEntry(normalized), nil
}

// GetMoodEntryByDate returns the entry recorded on date's calendar day.
func (s *JournalService) GetMoodEntryByDate(date time.Time) (domain.MoodEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[s.dayKey(date)]
	if !ok {
		return domain.MoodEntry{}, false
	}
	return cloneEntry(entry), true
}

// GetMoodColorForDate returns the mood band of date's entry, or domain.MoodBandNone.
func (s *JournalService) GetMoodColorForDate(date time.Time) string {
	entry, ok := s.GetMoodEntryByDate(date)
	if !ok {
		return domain.MoodBandNone
	}
	return entry.Mood.Band()
}

// GetAllMoodEntries returns every entry, most recent first.
func (s *JournalService) GetAllMoodEntries() []domain.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// CalendarDay is one cell of a month view.
type CalendarDay struct {
	Date     string `json:"date"`
	Band     string `json:"band"`
	HasEntry bool   `json:"has_entry"`
	Future   bool   `json:"future"`
}

// MonthView returns one cell per day of month. policy may be nil, in which case no
// day is marked as future.
func (s *JournalService) MonthView(year int, month time.Month, policy *EntryDatePolicy) ([]CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be 1..12", ErrValidation)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	days := first.AddDate(0, 1, -1).Day()

	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]CalendarDay, 0, days)
	for d := 0; d < days; d++ {
		day := first.AddDate(0, 0, d)
		cell := CalendarDay{
			Date: domain.DateKey(day),
			Band: domain.MoodBandNone,
		}
		if entry, ok := s.entries[cell.Date]; ok {
			cell.Band = entry.Mood.Band()
			cell.HasEntry = true
		}
		if policy != nil {
			cell.Future = policy.IsFuture(day)
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func (s *JournalService) sortedLocked() []domain.MoodEntry {
	out := make([]domain.MoodEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, cloneEntry(entry))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() > out[j].Key()
	})
	return out
}

func (s *JournalService) persistLocked() {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(s.sortedLocked())
	if err != nil {
		s.logger.Warn("encode mood entries failed", zap.Error(err))
		return
	}
	if err := s.store.Set(MoodEntriesKey, string(payload)); err != nil {
		s.logger.Warn("write mood entries failed", zap.Error(err))
	}
}

// Location returns the zone calendar dates are taken in.
func (s *JournalService) Location() *time.Location {
	return s.loc
}

func (s *JournalService) dayKey(date time.Time) string {
	return domain.DateKey(date.In(s.loc))
}

func normalizeEntry(entry domain.MoodEntry, loc *time.Location) (domain.MoodEntry, error) {
	if entry.Date.IsZero() {
		return domain.MoodEntry{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !entry.Mood.Valid() {
		return domain.MoodEntry{}, fmt.Errorf("%w: mood must be between 1 and 5, got %d", ErrValidation, entry.Mood)
	}

	symptoms := make([]domain.Symptom, 0, len(entry.Symptoms))
	seen := make(map[domain.Symptom]struct{}, len(entry.Symptoms))
	for _, raw := range entry.Symptoms {
		symptom := domain.Symptom(strings.ToLower(strings.TrimSpace(string(raw))))
		if !domain.IsKnownSymptom(symptom) {
			return domain.MoodEntry{}, fmt.Errorf("%w: unknown symptom %q", ErrValidation, raw)
		}
		if _, dup := seen[symptom]; dup {
			continue
		}
		seen[symptom] = struct{}{}
		symptoms = append(symptoms, symptom)
	}

	return domain.MoodEntry{
		Date:     domain.StartOfDay(entry.Date, loc),
		Mood:     entry.Mood,
		Symptoms: symptoms,
		Notes:    strings.TrimSpace(entry.Notes),
	}, nil
}

func cloneEntry(entry domain.MoodEntry) domain.MoodEntry {
	out := entry
	out.Symptoms = append([]domain.Symptom{}, entry.Symptoms...)
	return out
}

// SeedMoodEntries is the demo dataset used when storage holds no journal.
func SeedMoodEntries() []domain.MoodEntry {
	day := func(d int) time.Time {
		return time.Date(2023, time.May, d, 0, 0, 0, 0, time.UTC)
	}
	return []domain.MoodEntry{
		{Date: day(2), Mood: domain.MoodGreat, Symptoms: []domain.Symptom{}, Notes: "Great day, got a lot done."},
		{Date: day(5), Mood: domain.MoodGood, Symptoms: []domain.Symptom{}, Notes: "Good day, a bit tired by the evening."},
		{Date: day(8), Mood: domain.MoodNeutral, Symptoms: []domain.Symptom{domain.SymptomFatigue}, Notes: "Ordinary day, nothing special."},
		{Date: day(12), Mood: domain.MoodBad, Symptoms: []domain.Symptom{domain.SymptomAnxiety, domain.SymptomStress, domain.SymptomHeadache}, Notes: "Anxious about work, headache."},
		{Date: day(15), Mood: domain.MoodTerrible, Symptoms: []domain.Symptom{domain.SymptomAnxiety, domain.SymptomInsomnia, domain.SymptomSadness}, Notes: "Slept very badly, feeling low."},
		{Date: day(18), Mood: domain.MoodGood, Symptoms: []domain.Symptom{}, Notes: "Much better, slept well."},
		{Date: day(21), Mood: domain.MoodNeutral, Symptoms: []domain.Symptom{domain.SymptomFatigue}, Notes: "Somewhat tired but fine overall."},
		{Date: day(25), Mood: domain.MoodGreat, Symptoms: []domain.Symptom{}, Notes: "Excellent day, did everything planned."},
		{Date: day(28), Mood: domain.MoodGood, Symptoms: []domain.Symptom{}, Notes: "Good day, productive at work."},
	}
}
