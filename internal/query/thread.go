package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pranesh-j/handiwork/internal/result"
)

// searchDateLayout is the date format of the search form's date fields
const searchDateLayout = "2006-01-02"

// ThreadSearchQuery targets the thread-search form
type ThreadSearchQuery struct {
	Keywords         string
	IncludedTags     []string // tag names
	ExcludedTags     []string // tag names
	IncludedPrefixes []int    // prefix IDs
	Nodes            []int    // forum node IDs of the searched categories
	NewerThan        time.Time
	OlderThan        time.Time
	OnlyTitles       bool
	MinimumReplies   int
	Order            ThreadOrder
	Page             int
}

// NewThreadSearchQuery returns a relevance-ordered search of the first page
func NewThreadSearchQuery() *ThreadSearchQuery {
	return &ThreadSearchQuery{
		Order: ThreadOrderRelevance,
		Page:  1,
	}
}

func (q *ThreadSearchQuery) Backend() Backend { return BackendThread }

func (q *ThreadSearchQuery) sealed() {}

func (q *ThreadSearchQuery) Validate() []Violation {
	var vs []Violation
	for _, tag := range q.IncludedTags {
		if strings.TrimSpace(tag) == "" {
			vs = append(vs, Violation{"includedTags", "empty tag name"})
		}
	}
	for _, tag := range q.ExcludedTags {
		if strings.TrimSpace(tag) == "" {
			vs = append(vs, Violation{"excludedTags", "empty tag name"})
		}
	}
	for _, id := range q.IncludedPrefixes {
		if id <= 0 {
			vs = append(vs, Violation{"includedPrefixes", fmt.Sprintf("prefix id %d is not positive", id)})
		}
	}
	for _, id := range q.Nodes {
		if id <= 0 {
			vs = append(vs, Violation{"nodes", fmt.Sprintf("node id %d is not positive", id)})
		}
	}
	if !q.NewerThan.IsZero() && !q.OlderThan.IsZero() && q.NewerThan.After(q.OlderThan) {
		vs = append(vs, Violation{"newerThan", "must not be after olderThan"})
	}
	if q.MinimumReplies < 0 {
		vs = append(vs, Violation{"minimumReplies", "must not be negative"})
	}
	if !q.Order.Valid() {
		vs = append(vs, Violation{"order", fmt.Sprintf("%q is not one of %v", q.Order, threadOrders)})
	}
	if q.Page < 1 {
		vs = append(vs, Violation{"page", "must be at least 1"})
	}
	return vs
}

func (q *ThreadSearchQuery) URL(baseURL string) result.Result[string] {
	p := &params{}
	p.Add("q", q.Keywords)
	p.Add("t", "post")
	p.Add("c[child_nodes]", "1")
	for _, id := range q.Nodes {
		p.Add("c[nodes][]", strconv.Itoa(id))
	}
	for _, tag := range q.IncludedTags {
		p.Add("c[tags][]", tag)
	}
	for _, tag := range q.ExcludedTags {
		p.Add("c[excludeTags][]", tag)
	}
	for _, id := range q.IncludedPrefixes {
		p.Add("c[prefixes][]", strconv.Itoa(id))
	}
	p.Add("c[newer_than]", formatSearchDate(q.NewerThan))
	p.Add("c[older_than]", formatSearchDate(q.OlderThan))
	p.Add("c[title_only]", boolParam(q.OnlyTitles))
	p.Add("c[min_reply_count]", strconv.Itoa(q.MinimumReplies))
	p.Add("o", string(q.Order))
	p.Add("page", strconv.Itoa(q.Page))
	return buildURL(q, baseURL, searchPath, p)
}

func (q *ThreadSearchQuery) CreateURL() result.Result[string] {
	return q.URL(DefaultBaseURL)
}

// formatSearchDate renders t for the form; an unset date stays empty
func formatSearchDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(searchDateLayout)
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
