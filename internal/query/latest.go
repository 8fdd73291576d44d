package query

import (
	"fmt"
	"strconv"

	"github.com/pranesh-j/handiwork/internal/result"
)

// LatestSearchQuery targets the latest-listing endpoint
type LatestSearchQuery struct {
	Category         string
	IncludedTags     []int // tag IDs, at most MaxLatestTags
	IncludedPrefixes []int // prefix IDs, at most MaxLatestPrefixes
	Order            LatestOrder
	Date             DateFilter
	Page             int
}

// NewLatestSearchQuery returns the listing's default request: newest games
// of any date, first page.
func NewLatestSearchQuery() *LatestSearchQuery {
	return &LatestSearchQuery{
		Category: "games",
		Order:    LatestOrderDate,
		Date:     DateAny,
		Page:     1,
	}
}

func (q *LatestSearchQuery) Backend() Backend { return BackendLatest }

func (q *LatestSearchQuery) sealed() {}

func (q *LatestSearchQuery) Validate() []Violation {
	var vs []Violation
	if !isCategory(q.Category) {
		vs = append(vs, Violation{"category", fmt.Sprintf("%q is not one of %v", q.Category, Categories)})
	}
	if len(q.IncludedTags) > MaxLatestTags {
		vs = append(vs, Violation{"includedTags", fmt.Sprintf("%d tags exceed the maximum of %d", len(q.IncludedTags), MaxLatestTags)})
	}
	for _, id := range q.IncludedTags {
		if id <= 0 {
			vs = append(vs, Violation{"includedTags", fmt.Sprintf("tag id %d is not positive", id)})
		}
	}
	if len(q.IncludedPrefixes) > MaxLatestPrefixes {
		vs = append(vs, Violation{"includedPrefixes", fmt.Sprintf("%d prefixes exceed the maximum of %d", len(q.IncludedPrefixes), MaxLatestPrefixes)})
	}
	for _, id := range q.IncludedPrefixes {
		if id <= 0 {
			vs = append(vs, Violation{"includedPrefixes", fmt.Sprintf("prefix id %d is not positive", id)})
		}
	}
	if !q.Order.Valid() {
		vs = append(vs, Violation{"order", fmt.Sprintf("%q is not one of %v", q.Order, latestOrders)})
	}
	if !q.Date.Valid() {
		vs = append(vs, Violation{"date", fmt.Sprintf("%d is not one of %v or null", q.Date, dateBuckets)})
	}
	if q.Page < 1 {
		vs = append(vs, Violation{"page", "must be at least 1"})
	}
	return vs
}

func (q *LatestSearchQuery) URL(baseURL string) result.Result[string] {
	p := &params{}
	p.Add("cmd", "list")
	p.Add("cat", q.Category)
	for _, id := range q.IncludedTags {
		p.Add("tags[]", strconv.Itoa(id))
	}
	for _, id := range q.IncludedPrefixes {
		p.Add("prefixes[]", strconv.Itoa(id))
	}
	p.Add("sort", string(q.Order))
	p.Add("date", q.Date.String())
	p.Add("page", strconv.Itoa(q.Page))
	return buildURL(q, baseURL, latestPath, p)
}

func (q *LatestSearchQuery) CreateURL() result.Result[string] {
	return q.URL(DefaultBaseURL)
}
