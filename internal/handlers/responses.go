package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kyc-co/synthforms/internal/models"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the service and its dependencies.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// BatchResponse is the result of a batch generation.
type BatchResponse struct {
	Seed      int64 `json:"seed,string"`
	Count     int   `json:"count"`
	Persisted bool  `json:"persisted"`
	Published bool  `json:"published"`
	Forms     []any `json:"forms"`
}

var badRequestErrors = []error{
	models.ErrUnsupportedIDType,
	models.ErrInvalidAgeRange,
	models.ErrUnknownFormType,
	models.ErrUnknownField,
	models.ErrInvalidSeed,
	models.ErrInvalidCount,
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
