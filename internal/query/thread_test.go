package query

import (
	"strings"
	"testing"
	"time"

	"github.com/pranesh-j/handiwork/internal/result"
)

func TestThreadCreateURL(t *testing.T) {
	q := NewThreadSearchQuery()
	q.Keywords = "summer nights"
	q.IncludedTags = []string{"sandbox", "3dcg"}
	q.ExcludedTags = []string{"rpg"}
	q.IncludedPrefixes = []int{18}
	q.Nodes = []int{2}
	q.NewerThan = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q.OnlyTitles = true
	q.Order = ThreadOrderViews
	q.Page = 2

	got := q.URL("https://f95zone.to").Value()
	want := "https://f95zone.to/search/search/?q=summer+nights&t=post&c%5Bchild_nodes%5D=1" +
		"&c%5Bnodes%5D%5B%5D=2" +
		"&c%5Btags%5D%5B%5D=sandbox&c%5Btags%5D%5B%5D=3dcg" +
		"&c%5BexcludeTags%5D%5B%5D=rpg" +
		"&c%5Bprefixes%5D%5B%5D=18" +
		"&c%5Bnewer_than%5D=2024-03-01&c%5Bolder_than%5D=" +
		"&c%5Btitle_only%5D=1&c%5Bmin_reply_count%5D=0&o=views&page=2"
	if got != want {
		t.Errorf("URL mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestThreadCreateURLKeepsScalarKeys(t *testing.T) {
	got := NewThreadSearchQuery().CreateURL().Value()
	for _, key := range []string{"q=", "c%5Bnewer_than%5D=", "c%5Bolder_than%5D=", "c%5Btitle_only%5D=0", "o=relevance", "page=1"} {
		if !strings.Contains(got, key) {
			t.Errorf("URL %q is missing %q", got, key)
		}
	}
	if strings.Contains(got, "tags") {
		t.Errorf("empty tag lists must not be serialised: %q", got)
	}
}

func TestThreadValidate(t *testing.T) {
	q := NewThreadSearchQuery()
	q.NewerThan = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	q.OlderThan = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	q.MinimumReplies = -1
	q.Order = "likes"
	q.IncludedTags = []string{" "}

	r := q.CreateURL()
	if r.IsSuccess() {
		t.Fatal("expected invalid query")
	}
	if r.Err().Kind != result.KindInvalidQuery {
		t.Errorf("Expected %s, got %s", result.KindInvalidQuery, r.Err().Kind)
	}
	if r.Err().Field != "includedTags,minimumReplies,newerThan,order" {
		t.Errorf("unexpected fields %q", r.Err().Field)
	}
}
