package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas del diario y los tests.
func NewRouter(
	logger *zap.Logger,
	journalH *JournalHandler,
	questionnaireH *QuestionnaireHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/symptoms", journalH.ListSymptoms)

	entries := r.Group("/mood-entries")
	entries.GET("", journalH.ListEntries)
	entries.POST("", journalH.SaveEntry)
	entries.GET("/:date", journalH.GetEntry)
	entries.GET("/:date/color", journalH.GetColor)

	r.GET("/mood-calendar/:year/:month", journalH.MonthView)

	questionnaires := r.Group("/questionnaires")
	questionnaires.GET("", questionnaireH.ListQuestionnaires)
	questionnaires.GET("/:id", questionnaireH.GetQuestionnaire)

	assessments := r.Group("/assessments")
	assessments.POST("", questionnaireH.CreateAssessment)
	assessments.GET("/:id", questionnaireH.GetAssessment)
	assessments.DELETE("/:id", questionnaireH.DeleteAssessment)
	assessments.POST("/:id/start", questionnaireH.Start)
	assessments.POST("/:id/answer", questionnaireH.Answer)
	assessments.POST("/:id/next", questionnaireH.Next)
	assessments.POST("/:id/previous", questionnaireH.Previous)
	assessments.POST("/:id/restart", questionnaireH.Restart)
	assessments.GET("/:id/result", questionnaireH.Result)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
