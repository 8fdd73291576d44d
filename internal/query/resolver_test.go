package query

import (
	"strings"
	"testing"
	"time"

	"github.com/pranesh-j/handiwork/internal/catalog"
	"github.com/pranesh-j/handiwork/internal/result"
)

var fixedNow = time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	return NewResolver(catalog.Default()).WithClock(func() time.Time { return fixedNow })
}

func TestSelectSearchType(t *testing.T) {
	sixTags := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	fiveTags := sixTags[:5]

	testCases := []struct {
		name     string
		keywords string
		tags     []string
		want     Backend
	}{
		{"keywords only", "harem", nil, BackendThread},
		{"keywords and few tags", "harem", fiveTags, BackendThread},
		{"no keywords no tags", "", nil, BackendLatest},
		{"no keywords five tags", "", fiveTags, BackendLatest},
		{"no keywords six tags", "", sixTags, BackendThread},
		{"blank keywords", "   ", nil, BackendLatest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewHandiworkSearchQuery()
			q.Keywords = tc.keywords
			q.IncludedTags = tc.tags
			if got := q.SelectSearchType(); got != tc.want {
				t.Errorf("SelectSearchType() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestOrderRemapIsTotal(t *testing.T) {
	for _, o := range Orders {
		lo, ok := ToLatestOrder(o)
		if !ok || !lo.Valid() {
			t.Errorf("unified %q has no valid latest order (got %q)", o, lo)
		}
		to, ok := ToThreadOrder(o)
		if !ok || !to.Valid() {
			t.Errorf("unified %q has no valid thread order (got %q)", o, to)
		}
	}
}

func TestOrderRemapEntries(t *testing.T) {
	latest := map[Order]LatestOrder{
		OrderDate: LatestOrderDate, OrderLikes: LatestOrderLikes, OrderRelevance: LatestOrderRating,
		OrderReplies: LatestOrderViews, OrderTitle: LatestOrderTitle, OrderViews: LatestOrderViews,
	}
	thread := map[Order]ThreadOrder{
		OrderDate: ThreadOrderDate, OrderLikes: ThreadOrderRelevance, OrderRelevance: ThreadOrderRelevance,
		OrderReplies: ThreadOrderReplies, OrderTitle: ThreadOrderTitle, OrderViews: ThreadOrderViews,
	}
	for o, want := range latest {
		if got, _ := ToLatestOrder(o); got != want {
			t.Errorf("latest remap %q = %q, want %q", o, got, want)
		}
	}
	for o, want := range thread {
		if got, _ := ToThreadOrder(o); got != want {
			t.Errorf("thread remap %q = %q, want %q", o, got, want)
		}
	}
}

func TestResolveSixTagsToThreadKeepsViews(t *testing.T) {
	q := NewHandiworkSearchQuery()
	q.IncludedTags = []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	q.Order = OrderViews

	r := newTestResolver().Resolve(q)
	if r.IsFailure() {
		t.Fatalf("Resolve failed: %v", r.Err())
	}
	tq, ok := r.Value().(*ThreadSearchQuery)
	if !ok {
		t.Fatalf("expected *ThreadSearchQuery, got %T", r.Value())
	}
	if tq.Order != ThreadOrderViews {
		t.Errorf("Expected order views, got %q", tq.Order)
	}
	if !tq.OnlyTitles {
		t.Error("thread cast must force title-only search")
	}
	if len(tq.IncludedTags) != 6 {
		t.Errorf("Expected 6 tags, got %v", tq.IncludedTags)
	}
}

func TestToThreadCopiesFields(t *testing.T) {
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	q := &HandiworkSearchQuery{
		Keywords:         "  Summer Nights ",
		IncludedTags:     []string{"sandbox"},
		ExcludedTags:     []string{"rpg", "fantasy"},
		IncludedPrefixes: []string{"Completed"},
		Category:         "comics",
		NewerThan:        newer,
		OlderThan:        older,
		Order:            OrderLikes,
		Page:             4,
	}

	tq := newTestResolver().ToThread(q).Value()
	if tq == nil {
		t.Fatal("ToThread failed")
	}
	if tq.Keywords != q.Keywords {
		t.Errorf("keywords must be copied verbatim, got %q", tq.Keywords)
	}
	if strings.Join(tq.ExcludedTags, ",") != "rpg,fantasy" {
		t.Errorf("excluded tags = %v", tq.ExcludedTags)
	}
	if !tq.NewerThan.Equal(newer) || !tq.OlderThan.Equal(older) {
		t.Errorf("dates not copied: %v %v", tq.NewerThan, tq.OlderThan)
	}
	if tq.Order != ThreadOrderRelevance {
		t.Errorf("likes should remap to relevance, got %q", tq.Order)
	}
	if len(tq.Nodes) != 1 || tq.Nodes[0] != 40 {
		t.Errorf("comics should map to node 40, got %v", tq.Nodes)
	}
	if len(tq.IncludedPrefixes) != 1 || tq.IncludedPrefixes[0] != 18 {
		t.Errorf("prefixes = %v", tq.IncludedPrefixes)
	}
	if tq.Page != 4 {
		t.Errorf("page = %d", tq.Page)
	}

	// The cast must not alias the caller's slices.
	q.ExcludedTags[0] = "changed"
	if tq.ExcludedTags[0] != "rpg" {
		t.Error("ToThread aliased ExcludedTags")
	}
}

func TestToLatest(t *testing.T) {
	q := NewHandiworkSearchQuery()
	q.IncludedTags = []string{"3dcg", "Sandbox"}
	q.IncludedPrefixes = []string{"ren'py"}
	q.Order = OrderReplies
	q.NewerThan = fixedNow.AddDate(0, 0, -10)

	r := newTestResolver().Resolve(q)
	lq, ok := r.Value().(*LatestSearchQuery)
	if !ok {
		t.Fatalf("expected *LatestSearchQuery, got %T (%v)", r.Value(), r.Err())
	}
	if lq.Category != "games" {
		t.Errorf("empty category should default to games, got %q", lq.Category)
	}
	if len(lq.IncludedTags) != 2 || lq.IncludedTags[0] != 107 || lq.IncludedTags[1] != 2257 {
		t.Errorf("tags = %v", lq.IncludedTags)
	}
	if len(lq.IncludedPrefixes) != 1 || lq.IncludedPrefixes[0] != 7 {
		t.Errorf("prefixes = %v", lq.IncludedPrefixes)
	}
	if lq.Order != LatestOrderViews {
		t.Errorf("replies should remap to views, got %q", lq.Order)
	}
	if lq.Date != 14 {
		t.Errorf("10 days back should select the 14 day bucket, got %v", lq.Date)
	}
	if u := lq.CreateURL(); u.IsFailure() {
		t.Errorf("cast query should be valid: %v", u.Err())
	}
}

func TestToLatestUnknownTag(t *testing.T) {
	q := NewHandiworkSearchQuery()
	q.IncludedTags = []string{"not-a-tag"}

	r := newTestResolver().Resolve(q)
	if r.IsSuccess() {
		t.Fatal("expected failure for an unknown tag")
	}
	if r.Err().Kind != result.KindInvalidQuery || r.Err().Field != "includedTags" {
		t.Errorf("unexpected failure %v", r.Err())
	}
}

func TestResolveRejectsInvalidUnifiedQuery(t *testing.T) {
	q := NewHandiworkSearchQuery()
	q.Order = "hot"
	q.Page = 0

	r := newTestResolver().Resolve(q)
	if r.IsSuccess() {
		t.Fatal("expected failure")
	}
	if r.Err().Field != "order,page" {
		t.Errorf("fields = %q", r.Err().Field)
	}
}

func TestNearestDate(t *testing.T) {
	testCases := []struct {
		name string
		days int
		want DateFilter
	}{
		{"today", 0, 1},
		{"exactly one day", 1, 1},
		{"two days", 2, 3},
		{"exactly three days", 3, 3},
		{"four days", 4, 7},
		{"exactly a week", 7, 7},
		{"fifteen days", 15, 30},
		{"two months", 60, 90},
		{"exactly a year", 365, 365},
		{"more than a year", 366, DateAny},
		{"future date", -3, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newer := fixedNow.AddDate(0, 0, -tc.days)
			if got := NearestDate(newer, fixedNow); got != tc.want {
				t.Errorf("NearestDate(-%d days) = %v, want %v", tc.days, got, tc.want)
			}
		})
	}

	if got := NearestDate(time.Time{}, fixedNow); got != DateAny {
		t.Errorf("zero date should map to DateAny, got %v", got)
	}
}

func TestNearestDateUsesCalendarDays(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 30, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 29, 23, 45, 0, 0, time.UTC)
	if got := NearestDate(newer, now); got != 1 {
		t.Errorf("yesterday late evening should be one calendar day back, got %v", got)
	}
}

func TestDateFilterString(t *testing.T) {
	if DateAny.String() != "null" {
		t.Errorf("DateAny.String() = %q", DateAny.String())
	}
	if DateFilter(90).String() != "90" {
		t.Errorf("DateFilter(90).String() = %q", DateFilter(90).String())
	}
}
