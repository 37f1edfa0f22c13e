package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/domain"
	"github.com/1SadFox/psyco/internal/service"
)

// JournalHandler expone el diario de animo.
type JournalHandler struct {
	logger  *zap.Logger
	journal *service.JournalService
	policy  *service.EntryDatePolicy
	loc     *time.Location
}

// NewJournalHandler crea el handler; loc se usa para fechas sin zona horaria.
func NewJournalHandler(logger *zap.Logger, journal *service.JournalService, policy *service.EntryDatePolicy, loc *time.Location) *JournalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &JournalHandler{
		logger:  logger,
		journal: journal,
		policy:  policy,
		loc:     loc,
	}
}

// SaveEntry maneja POST /mood-entries.
func (h *JournalHandler) SaveEntry(c *gin.Context) {
	var req struct {
		Date     string   `json:"date" binding:"required"`
		Mood     int      `json:"mood" binding:"required"`
		Symptoms []string `json:"symptoms"`
		Notes    string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid mood entry request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	date, err := domain.ParseEntryDate(req.Date, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	if h.policy != nil {
		if err := h.policy.Check(date); err != nil {
			respondError(c, h.logger, err, "could not save mood entry", nil)
			return
		}
	}

	symptoms := make([]domain.Symptom, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		symptoms = append(symptoms, domain.Symptom(s))
	}
	entry, err := h.journal.SaveMoodEntry(domain.MoodEntry{
		Date:     date,
		Mood:     domain.Mood(req.Mood),
		Symptoms: symptoms,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, err, "could not save mood entry", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// ListEntries maneja GET /mood-entries.
func (h *JournalHandler) ListEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.journal.GetAllMoodEntries()})
}

// GetEntry maneja GET /mood-entries/:date.
func (h *JournalHandler) GetEntry(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	entry, found := h.journal.GetMoodEntryByDate(date)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "mood entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// GetColor maneja GET /mood-entries/:date/color.
func (h *JournalHandler) GetColor(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  domain.DateKey(date.In(h.journal.Location())),
		"color": h.journal.GetMoodColorForDate(date),
	})
}

// MonthView maneja GET /mood-calendar/:year/:month.
func (h *JournalHandler) MonthView(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year or month"})
		return
	}
	days, err := h.journal.MonthView(year, time.Month(month), h.policy)
	if err != nil {
		respondError(c, h.logger, err, "could not build calendar", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "days": days})
}

// ListSymptoms maneja GET /symptoms.
func (h *JournalHandler) ListSymptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symptoms": domain.DefaultSymptoms()})
}

func (h *JournalHandler) dateParam(c *gin.Context) (time.Time, bool) {
	date, err := domain.ParseEntryDate(c.Param("date"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return time.Time{}, false
	}
	return date, true
}
