// File: internal/services/search.go

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranesh-j/handiwork/internal/query"
	"github.com/pranesh-j/handiwork/internal/result"
)

// DefaultResultLimit caps the number of result URLs when no limit is given
const DefaultResultLimit = 30

// threadResultSelector bounds the thread search's result list
const threadResultSelector = ".block-body .block-row .contentRow-title a"

// SearchResult is the outcome of a resolved search
type SearchResult struct {
	Backend  query.Backend
	QueryURL string
	URLs     []string
}

// SearchService executes search queries against the platform
type SearchService struct {
	transport Transport
	resolver  *query.Resolver
	base      *url.URL
}

// NewSearchService creates a search service. A nil resolver uses the
// embedded catalog.
func NewSearchService(t Transport, resolver *query.Resolver, baseURL string) (*SearchService, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if resolver == nil {
		resolver = query.NewResolver(nil)
	}
	return &SearchService{transport: t, resolver: resolver, base: base}, nil
}

// Search resolves hq to a backend query and runs it
func (s *SearchService) Search(ctx context.Context, hq *query.HandiworkSearchQuery, limit int) result.Result[SearchResult] {
	return result.Then(s.resolver.Resolve(hq), func(q query.Query) result.Result[SearchResult] {
		queryURL := q.URL(s.base.String())
		if queryURL.IsFailure() {
			return result.Forward[SearchResult](queryURL)
		}
		log.Printf("Search routed to %s backend: %s", q.Backend(), queryURL.Value())

		urls := s.FetchResultURLs(ctx, q, limit)
		if urls.IsFailure() {
			return result.Forward[SearchResult](urls)
		}
		return result.Success(SearchResult{
			Backend:  q.Backend(),
			QueryURL: queryURL.Value(),
			URLs:     urls.Value(),
		})
	})
}

// FetchResultURLs runs q and returns at most limit absolute thread URLs in
// the order the platform ranked them. A limit of 0 or less means
// DefaultResultLimit.
func (s *SearchService) FetchResultURLs(ctx context.Context, q query.Query, limit int) result.Result[[]string] {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	queryURL := q.URL(s.base.String())
	if queryURL.IsFailure() {
		return result.Forward[[]string](queryURL)
	}

	var links result.Result[[]string]
	switch q.Backend() {
	case query.BackendLatest:
		links = result.Then(s.transport.Fetch(ctx, queryURL.Value()), parseLatestResults)
	default:
		links = result.Then(s.transport.FetchHTML(ctx, queryURL.Value()), parseThreadResults)
	}
	if links.IsFailure() {
		return links
	}

	return result.Success(s.normalize(links.Value(), limit))
}

// normalize drops duplicates, truncates and resolves against the base URL
func (s *SearchService) normalize(links []string, limit int) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, min(len(links), limit))
	for _, link := range links {
		abs, ok := s.resolve(link)
		if !ok || seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
		if len(out) == limit {
			break
		}
	}
	return out
}

// resolve makes link absolute. Links on the platform's own host inherit
// its scheme; plain-http links elsewhere are upgraded to https.
func (s *SearchService) resolve(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	abs := s.base.ResolveReference(ref)
	switch {
	case strings.EqualFold(abs.Host, s.base.Host):
		abs.Scheme = s.base.Scheme
	case strings.EqualFold(abs.Scheme, "http"):
		abs.Scheme = "https"
	}
	abs.Fragment = ""
	return abs.String(), true
}

// latestResponse is the listing endpoint's JSON envelope
type latestResponse struct {
	Status string `json:"status"`
	Msg    struct {
		Data []struct {
			ThreadID int    `json:"thread_id"`
			Title    string `json:"title"`
		} `json:"data"`
	} `json:"msg"`
}

func parseLatestResults(p *Page) result.Result[[]string] {
	if !strings.Contains(p.MediaType(), "json") {
		return result.Failure[[]string](result.UnexpectedContentType("fetch latest results", "application/json", p.ContentType))
	}

	var resp latestResponse
	if err := json.Unmarshal([]byte(p.Body), &resp); err != nil {
		return result.Failure[[]string](result.ParseFailure("decode latest results", err))
	}
	if resp.Status != "ok" {
		return result.Failure[[]string](result.ParseFailuref("decode latest results", "status %q", resp.Status))
	}

	links := make([]string, 0, len(resp.Msg.Data))
	for _, item := range resp.Msg.Data {
		if item.ThreadID > 0 {
			links = append(links, threadPath(item.ThreadID))
		}
	}
	return result.Success(links)
}

func parseThreadResults(p *Page) result.Result[[]string] {
	return result.Then(p.Document(), func(doc *goquery.Document) result.Result[[]string] {
		links := []string{}
		doc.Find(threadResultSelector).Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				links = append(links, href)
			}
		})
		return result.Success(links)
	})
}

func threadPath(id int) string {
	return fmt.Sprintf("/threads/%d/", id)
}
