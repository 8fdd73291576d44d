// File: api/handlers/errors.go

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

// statusFor maps a failure kind to the HTTP status returned to API clients
func statusFor(kind result.Kind) int {
	switch kind {
	case result.KindInvalidQuery, result.KindInvalidID:
		return http.StatusBadRequest
	case result.KindNotAuthenticated:
		return http.StatusUnauthorized
	case result.KindNetwork, result.KindUnexpectedContentType, result.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, msg string, err error) {
	kind := result.KindOf(err)
	status := statusFor(kind)
	log.Printf("[%s] %s: %v", requestID(c), msg, err)
	c.JSON(status, models.ErrorResponse{
		Error:   msg,
		Kind:    string(kind),
		Details: err.Error(),
	})
}
