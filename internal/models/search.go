// File: internal/models/search.go
package models

// SearchRequest represents the incoming search request
type SearchRequest struct {
	Keywords         string   `json:"keywords"`
	IncludedTags     []string `json:"includedTags,omitempty"`
	ExcludedTags     []string `json:"excludedTags,omitempty"`
	IncludedPrefixes []string `json:"includedPrefixes,omitempty"`
	Category         string   `json:"category,omitempty"`
	Order            string   `json:"order,omitempty"`
	NewerThan        string   `json:"newerThan,omitempty"` // YYYY-MM-DD
	OlderThan        string   `json:"olderThan,omitempty"` // YYYY-MM-DD
	Page             int      `json:"page,omitempty"`
	Limit            int      `json:"limit,omitempty"`
}

// SearchResponse lists the thread URLs a search produced
type SearchResponse struct {
	Backend     string        `json:"backend"`
	QueryURL    string        `json:"queryUrl"`
	Results     []string      `json:"results"`
	TotalCount  int           `json:"totalCount"`
	ElapsedTime float64       `json:"elapsedTime"`
	LastUpdated int64         `json:"lastUpdated"` // Unix timestamp of data freshness
	Request     SearchRequest `json:"requestParams"`
}

// ErrorResponse is the body of every non-2xx API answer
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}
