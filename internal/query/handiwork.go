package query

import (
	"fmt"
	"strings"
	"time"
)

// HandiworkSearchQuery is the unified search request. It is never sent as
// is: a Resolver casts it to the backend SelectSearchType picks.
type HandiworkSearchQuery struct {
	Keywords         string
	IncludedTags     []string // tag names
	ExcludedTags     []string // tag names
	IncludedPrefixes []string // prefix names
	Category         string   // empty means "games"
	NewerThan        time.Time
	OlderThan        time.Time
	Order            Order
	Page             int
}

// NewHandiworkSearchQuery returns a date-ordered request for the first page
func NewHandiworkSearchQuery() *HandiworkSearchQuery {
	return &HandiworkSearchQuery{
		Order: OrderDate,
		Page:  1,
	}
}

// SelectSearchType picks the backend: free-text keywords or more tags than
// the listing can filter on need the thread search.
func (q *HandiworkSearchQuery) SelectSearchType() Backend {
	if strings.TrimSpace(q.Keywords) != "" || len(q.IncludedTags) > MaxLatestTags {
		return BackendThread
	}
	return BackendLatest
}

func (q *HandiworkSearchQuery) Validate() []Violation {
	var vs []Violation
	if q.Category != "" && !isCategory(q.Category) {
		vs = append(vs, Violation{"category", fmt.Sprintf("%q is not one of %v", q.Category, Categories)})
	}
	if !q.Order.Valid() {
		vs = append(vs, Violation{"order", fmt.Sprintf("%q is not one of %v", q.Order, Orders)})
	}
	if q.Page < 1 {
		vs = append(vs, Violation{"page", "must be at least 1"})
	}
	if !q.NewerThan.IsZero() && !q.OlderThan.IsZero() && q.NewerThan.After(q.OlderThan) {
		vs = append(vs, Violation{"newerThan", "must not be after olderThan"})
	}
	return vs
}

func (q *HandiworkSearchQuery) category() string {
	if q.Category == "" {
		return "games"
	}
	return q.Category
}
