package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/domain"
	"github.com/1SadFox/psyco/internal/service"
)

// statusFor traduce errores de servicio a codigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrFutureDate),
		errors.Is(err, service.ErrInvalidAnswer),
		errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrIncompleteAnswer):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError escribe el error con extra opcional; los 5xx no exponen el detalle.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string, extra gin.H) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		logger.Error(fallback, zap.Error(err))
		body["error"] = fallback
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
