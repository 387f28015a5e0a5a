package handlers

import (
	"errors"
	"net/http"

	"battery-dispatch/internal/api/models"
	"battery-dispatch/internal/model"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the "error.code" field.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidStrategy = "INVALID_STRATEGY"
	CodeInvalidConfig   = "INVALID_CONFIG"
	CodeInvalidSeries   = "INVALID_SERIES"
	CodeNotFound        = "NOT_FOUND"
	CodeSimulation      = "SIMULATION_ERROR"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondSimulationError maps domain errors onto status codes and error codes.
func respondSimulationError(c *gin.Context, err error) {
	var cfgErr *model.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		respondError(c, http.StatusBadRequest, CodeInvalidConfig, err.Error(), map[string]interface{}{
			"field":  cfgErr.Field,
			"reason": cfgErr.Reason,
		})
	case errors.Is(err, model.ErrInvalidConfig):
		respondError(c, http.StatusBadRequest, CodeInvalidConfig, err.Error(), nil)
	case errors.Is(err, model.ErrInvalidStrategy):
		respondError(c, http.StatusBadRequest, CodeInvalidStrategy, err.Error(), nil)
	case errors.Is(err, model.ErrInvalidSeries):
		respondError(c, http.StatusBadRequest, CodeInvalidSeries, err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, CodeSimulation, err.Error(), nil)
	}
}
