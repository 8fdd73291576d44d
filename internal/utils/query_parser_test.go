package utils

import (
	"reflect"
	"testing"
	"time"

	"github.com/pranesh-j/handiwork/internal/query"
)

func TestParseQuery(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		keywords string
		included []string
		excluded []string
		prefixes []string
		category string
		order    query.Order
		page     int
		newer    time.Time
	}{
		{
			name:     "keywords only",
			input:    "  farm   life ",
			keywords: "farm life",
			order:    query.OrderDate,
			page:     1,
		},
		{
			name:     "all filters",
			input:    `tag:Sandbox -tag:"male protagonist" prefix:completed cat:comics sort:likes newer:2024-01-02 page:3 farm life`,
			keywords: "farm life",
			included: []string{"sandbox"},
			excluded: []string{"male protagonist"},
			prefixes: []string{"completed"},
			category: "comics",
			order:    query.OrderLikes,
			page:     3,
			newer:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "filters between keywords",
			input:    "farm tag:3dcg life tag:rpg",
			keywords: "farm life",
			included: []string{"3dcg", "rpg"},
			order:    query.OrderDate,
			page:     1,
		},
		{
			name:     "dash inside a keyword is not a filter",
			input:    "sci-fi",
			keywords: "sci-fi",
			order:    query.OrderDate,
			page:     1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hq, err := ParseQuery(tc.input)
			if err != nil {
				t.Fatalf("ParseQuery failed: %v", err)
			}
			if hq.Keywords != tc.keywords {
				t.Errorf("Expected keywords %q, got %q", tc.keywords, hq.Keywords)
			}
			if !reflect.DeepEqual(hq.IncludedTags, tc.included) {
				t.Errorf("Expected tags %v, got %v", tc.included, hq.IncludedTags)
			}
			if !reflect.DeepEqual(hq.ExcludedTags, tc.excluded) {
				t.Errorf("Expected excluded %v, got %v", tc.excluded, hq.ExcludedTags)
			}
			if !reflect.DeepEqual(hq.IncludedPrefixes, tc.prefixes) {
				t.Errorf("Expected prefixes %v, got %v", tc.prefixes, hq.IncludedPrefixes)
			}
			if hq.Category != tc.category || hq.Order != tc.order || hq.Page != tc.page {
				t.Errorf("unexpected scalars %+v", hq)
			}
			if !hq.NewerThan.Equal(tc.newer) {
				t.Errorf("Expected newer %v, got %v", tc.newer, hq.NewerThan)
			}
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	inputs := []string{
		"sort:hot",
		"newer:yesterday",
		"page:0",
		"-prefix:completed",
		`tag:""`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseQuery(input); err == nil {
				t.Errorf("Expected error for %q", input)
			}
		})
	}
}

func TestParsedQuerySelectsBackend(t *testing.T) {
	hq, err := ParseQuery("tag:a tag:b tag:c tag:d tag:e tag:f")
	if err != nil {
		t.Fatal(err)
	}
	if hq.SelectSearchType() != query.BackendThread {
		t.Errorf("six tags should route to the thread search")
	}
}
