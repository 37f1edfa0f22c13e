package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/service"
)

// QuestionnaireHandler expone el catalogo de tests y las evaluaciones en curso.
type QuestionnaireHandler struct {
	logger   *zap.Logger
	engine   *service.QuestionnaireEngine
	registry *service.AssessmentRegistry
}

// NewQuestionnaireHandler crea una instancia de QuestionnaireHandler.
func NewQuestionnaireHandler(logger *zap.Logger, engine *service.QuestionnaireEngine, registry *service.AssessmentRegistry) *QuestionnaireHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionnaireHandler{
		logger:   logger,
		engine:   engine,
		registry: registry,
	}
}

// ListQuestionnaires maneja GET /questionnaires?category=&q=.
func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	catalog := h.engine.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"questionnaires": catalog.List(service.CatalogFilter{
			Category: c.Query("category"),
			Search:   c.Query("q"),
		}),
		"categories": catalog.Categories(),
	})
}

// GetQuestionnaire maneja GET /questionnaires/:id.
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	q, err := h.engine.Catalog().Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "could not load questionnaire", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionnaire": q})
}

// CreateAssessment maneja POST /assessments.
func (h *QuestionnaireHandler) CreateAssessment(c *gin.Context) {
	var req struct {
		QuestionnaireID string `json:"questionnaire_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, snap, err := h.registry.Create(req.QuestionnaireID)
	if err != nil {
		respondError(c, h.logger, err, "could not create assessment", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "assessment": snap})
}

// GetAssessment maneja GET /assessments/:id.
func (h *QuestionnaireHandler) GetAssessment(c *gin.Context) {
	h.apply(c, nil)
}

// DeleteAssessment maneja DELETE /assessments/:id.
func (h *QuestionnaireHandler) DeleteAssessment(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		respondError(c, h.logger, err, "could not delete assessment", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// Start maneja POST /assessments/:id/start.
func (h *QuestionnaireHandler) Start(c *gin.Context) {
	h.apply(c, (*service.AssessmentSession).Start)
}

// Answer maneja POST /assessments/:id/answer.
func (h *QuestionnaireHandler) Answer(c *gin.Context) {
	var req struct {
		QuestionID *int `json:"question_id" binding:"required"`
		Value      *int `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid answer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.apply(c, func(s *service.AssessmentSession) error {
		return s.SelectAnswer(*req.QuestionID, *req.Value)
	})
}

// Next maneja POST /assessments/:id/next.
func (h *QuestionnaireHandler) Next(c *gin.Context) {
	h.apply(c, (*service.AssessmentSession).Next)
}

// Previous maneja POST /assessments/:id/previous.
func (h *QuestionnaireHandler) Previous(c *gin.Context) {
	h.apply(c, (*service.AssessmentSession).Previous)
}

// Restart maneja POST /assessments/:id/restart.
func (h *QuestionnaireHandler) Restart(c *gin.Context) {
	h.apply(c, (*service.AssessmentSession).Restart)
}

// Result maneja GET /assessments/:id/result.
func (h *QuestionnaireHandler) Result(c *gin.Context) {
	snap, err := h.registry.Do(c.Param("id"), func(s *service.AssessmentSession) error {
		_, err := s.Result()
		return err
	})
	if err != nil {
		respondError(c, h.logger, err, "could not load result", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": snap.Result})
}

// apply ejecuta fn sobre la evaluacion y responde con su estado, tambien en error.
func (h *QuestionnaireHandler) apply(c *gin.Context, fn func(*service.AssessmentSession) error) {
	id := c.Param("id")
	snap, err := h.registry.Do(id, fn)
	if err != nil {
		var extra gin.H
		if snap.QuestionnaireID != "" {
			extra = gin.H{"id": id, "assessment": snap}
		}
		respondError(c, h.logger, err, "could not update assessment", extra)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "assessment": snap})
}
