// File: api/handlers/search.go

package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/query"
	"github.com/pranesh-j/handiwork/internal/result"
	"github.com/pranesh-j/handiwork/internal/services"
	"github.com/pranesh-j/handiwork/internal/utils"
)

const maxLimit = 100

// Backend is the part of services.Client the handlers use
type Backend interface {
	SearchURLs(ctx context.Context, hq *query.HandiworkSearchQuery, limit int) (services.SearchResult, error)
	Thread(ctx context.Context, id int) (*models.Thread, error)
	Post(ctx context.Context, id int) (models.Post, error)
	User(ctx context.Context, id int) (models.PlatformUser, error)
	SessionStatus() map[string]interface{}
}

type SearchHandler struct {
	Backend      Backend
	DefaultLimit int
	Timeout      time.Duration
}

func NewSearchHandler(backend Backend, defaultLimit int) *SearchHandler {
	if defaultLimit <= 0 {
		defaultLimit = services.DefaultResultLimit
	}
	return &SearchHandler{
		Backend:      backend,
		DefaultLimit: defaultLimit,
		Timeout:      60 * time.Second,
	}
}

// HandleSearch answers POST /api/search with a structured request body
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request payload: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	hq, err := toHandiworkQuery(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid search request",
			Kind:    string(result.KindInvalidQuery),
			Details: err.Error(),
		})
		return
	}
	h.run(c, hq, req)
}

// HandleQuerySearch answers GET /api/search?q=... using the free-form
// filter syntax of utils.ParseQuery
func (h *SearchHandler) HandleQuerySearch(c *gin.Context) {
	q := c.Query("q")
	hq, err := utils.ParseQuery(q)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid search query",
			Kind:    string(result.KindInvalidQuery),
			Details: err.Error(),
		})
		return
	}

	req := models.SearchRequest{
		Keywords:         hq.Keywords,
		IncludedTags:     hq.IncludedTags,
		ExcludedTags:     hq.ExcludedTags,
		IncludedPrefixes: hq.IncludedPrefixes,
		Category:         hq.Category,
		Order:            string(hq.Order),
		NewerThan:        formatDate(hq.NewerThan),
		OlderThan:        formatDate(hq.OlderThan),
		Page:             hq.Page,
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit", Details: err.Error()})
			return
		}
		req.Limit = n
	}
	h.run(c, hq, req)
}

func (h *SearchHandler) run(c *gin.Context, hq *query.HandiworkSearchQuery, req models.SearchRequest) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	if req.Limit <= 0 {
		req.Limit = h.DefaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit // Cap the maximum limit
	}

	log.Printf("Search request: Keywords='%s', Tags=%v, Category='%s', Order='%s', Limit=%d",
		hq.Keywords, hq.IncludedTags, hq.Category, hq.Order, req.Limit)

	startTime := time.Now()
	res, err := h.Backend.SearchURLs(ctx, hq, req.Limit)
	if err != nil {
		respondError(c, "Search failed", err)
		return
	}

	elapsedTime := time.Since(startTime).Seconds()
	log.Printf("Search completed in %.2f seconds, found %d results", elapsedTime, len(res.URLs))

	c.JSON(http.StatusOK, models.SearchResponse{
		Backend:     string(res.Backend),
		QueryURL:    res.QueryURL,
		Results:     res.URLs,
		TotalCount:  len(res.URLs),
		ElapsedTime: elapsedTime,
		LastUpdated: time.Now().Unix(),
		Request:     req,
	})
}

// toHandiworkQuery converts the API request, applying the query defaults
// for fields left empty
func toHandiworkQuery(req models.SearchRequest) (*query.HandiworkSearchQuery, error) {
	hq := query.NewHandiworkSearchQuery()
	hq.Keywords = req.Keywords
	hq.IncludedTags = lower(req.IncludedTags)
	hq.ExcludedTags = lower(req.ExcludedTags)
	hq.IncludedPrefixes = lower(req.IncludedPrefixes)
	hq.Category = strings.ToLower(req.Category)

	if req.Order != "" {
		hq.Order = query.Order(strings.ToLower(req.Order))
	}
	if req.Page != 0 {
		hq.Page = req.Page
	}

	var err error
	if hq.NewerThan, err = parseDate("newerThan", req.NewerThan); err != nil {
		return nil, err
	}
	if hq.OlderThan, err = parseDate("olderThan", req.OlderThan); err != nil {
		return nil, err
	}
	return hq, nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: want YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func lower(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
