// File: api/handlers/health.go

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Backend Backend
}

func NewHealthHandler(backend Backend) *HealthHandler {
	return &HealthHandler{Backend: backend}
}

func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().Format(time.RFC3339),
		"session": h.Backend.SessionStatus(),
	})
}
