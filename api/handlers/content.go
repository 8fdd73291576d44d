// File: api/handlers/content.go

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

// ContentHandler serves threads, posts and users by ID
type ContentHandler struct {
	Backend Backend
	Timeout time.Duration
}

func NewContentHandler(backend Backend) *ContentHandler {
	return &ContentHandler{Backend: backend, Timeout: 2 * time.Minute}
}

func (h *ContentHandler) HandleThread(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	thread, err := h.Backend.Thread(ctx, id)
	if err != nil {
		respondError(c, "Failed to fetch thread", err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *ContentHandler) HandlePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	post, err := h.Backend.Post(ctx, id)
	if err != nil {
		respondError(c, "Failed to fetch post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ContentHandler) HandleUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	user, err := h.Backend.User(ctx, id)
	if err != nil {
		respondError(c, "Failed to resolve user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// pathID reads the :id parameter and answers 400 when it is not a
// positive integer
func pathID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid id",
			Kind:    string(result.KindInvalidID),
			Details: "id must be a positive integer, got " + strconv.Quote(raw),
		})
		return 0, false
	}
	return id, true
}
