package query

import (
	"fmt"
	"log"
	"time"

	"github.com/pranesh-j/handiwork/internal/catalog"
	"github.com/pranesh-j/handiwork/internal/result"
)

// Resolver casts unified requests into backend-specific queries.
// Names are translated to IDs through the catalog.
type Resolver struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewResolver creates a resolver over c; a nil catalog uses catalog.Default()
func NewResolver(c *catalog.Catalog) *Resolver {
	if c == nil {
		c = catalog.Default()
	}
	return &Resolver{catalog: c, now: time.Now}
}

// WithClock replaces the clock used for date bucketing
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve validates hq and casts it to the backend SelectSearchType picks
func (r *Resolver) Resolve(hq *HandiworkSearchQuery) result.Result[Query] {
	switch hq.SelectSearchType() {
	case BackendThread:
		return result.Then(r.ToThread(hq), func(q *ThreadSearchQuery) result.Result[Query] {
			return result.Success[Query](q)
		})
	default:
		return result.Then(r.ToLatest(hq), func(q *LatestSearchQuery) result.Result[Query] {
			return result.Success[Query](q)
		})
	}
}

// ToLatest casts hq to the latest-listing shape. Keywords, excluded tags
// and olderThan have no latest equivalent and are dropped.
func (r *Resolver) ToLatest(hq *HandiworkSearchQuery) result.Result[*LatestSearchQuery] {
	if vs := hq.Validate(); len(vs) > 0 {
		return result.Failure[*LatestSearchQuery](violationsError(vs))
	}
	order, _ := ToLatestOrder(hq.Order)

	tags, err := r.lookup(hq.IncludedTags, "includedTags", r.catalog.TagID)
	if err != nil {
		return result.Failure[*LatestSearchQuery](err)
	}
	prefixes, err := r.lookup(hq.IncludedPrefixes, "includedPrefixes", r.catalog.PrefixID)
	if err != nil {
		return result.Failure[*LatestSearchQuery](err)
	}

	if len(hq.ExcludedTags) > 0 || !hq.OlderThan.IsZero() {
		log.Printf("Latest listing ignores excluded tags and olderThan (%d excluded tags dropped)", len(hq.ExcludedTags))
	}

	return result.Success(&LatestSearchQuery{
		Category:         hq.category(),
		IncludedTags:     tags,
		IncludedPrefixes: prefixes,
		Order:            order,
		Date:             NearestDate(hq.NewerThan, r.now()),
		Page:             hq.Page,
	})
}

// ToThread casts hq to the thread-search shape. The search always matches
// titles only.
func (r *Resolver) ToThread(hq *HandiworkSearchQuery) result.Result[*ThreadSearchQuery] {
	if vs := hq.Validate(); len(vs) > 0 {
		return result.Failure[*ThreadSearchQuery](violationsError(vs))
	}
	order, _ := ToThreadOrder(hq.Order)

	prefixes, err := r.lookup(hq.IncludedPrefixes, "includedPrefixes", r.catalog.PrefixID)
	if err != nil {
		return result.Failure[*ThreadSearchQuery](err)
	}
	var nodes []int
	if hq.Category != "" {
		id, ok := r.catalog.CategoryID(hq.Category)
		if !ok {
			return result.Failure[*ThreadSearchQuery](result.InvalidQuery("category", fmt.Sprintf("no node id for category %q", hq.Category)))
		}
		nodes = []int{id}
	}

	return result.Success(&ThreadSearchQuery{
		Keywords:         hq.Keywords,
		IncludedTags:     append([]string(nil), hq.IncludedTags...),
		ExcludedTags:     append([]string(nil), hq.ExcludedTags...),
		IncludedPrefixes: prefixes,
		Nodes:            nodes,
		NewerThan:        hq.NewerThan,
		OlderThan:        hq.OlderThan,
		OnlyTitles:       true,
		Order:            order,
		Page:             hq.Page,
	})
}

func (r *Resolver) lookup(names []string, field string, find func(string) (int, bool)) ([]int, *result.Error) {
	var ids []int
	for _, name := range names {
		id, ok := find(name)
		if !ok {
			return nil, result.InvalidQuery(field, fmt.Sprintf("unknown name %q", name))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
