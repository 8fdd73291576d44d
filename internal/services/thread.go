// File: internal/services/thread.go

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

// PostsPerPage is the page size requested before the fan-out
const PostsPerPage = 100

type threadState int

const (
	stateInit threadState = iota
	stateMetadataFetched
	statePaginationConfigured
	statePagesFetched
	stateAssembled
	stateFailed
)

func (s threadState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateMetadataFetched:
		return "metadata_fetched"
	case statePaginationConfigured:
		return "pagination_configured"
	case statePagesFetched:
		return "pages_fetched"
	case stateAssembled:
		return "assembled"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// threadRun tracks one retrieval through the pipeline
type threadRun struct {
	id    int
	state threadState
}

func (r *threadRun) advance(to threadState) {
	log.Printf("thread %d: %s -> %s", r.id, r.state, to)
	r.state = to
}

// fail moves the run to the failed state and forwards err unchanged
func (r *threadRun) fail(err *result.Error) result.Result[*models.Thread] {
	log.Printf("thread %d: %s -> %s (%v)", r.id, r.state, stateFailed, err)
	r.state = stateFailed
	return result.Failure[*models.Thread](err)
}

// ThreadService reconstructs whole threads
type ThreadService struct {
	transport Transport
	session   SessionProvider
	body      BodyParser
	baseURL   string
}

func NewThreadService(t Transport, session SessionProvider, body BodyParser, baseURL string) *ThreadService {
	return &ThreadService{
		transport: t,
		session:   session,
		body:      body,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Fetch retrieves thread id with all of its posts sorted by post ID.
// Any failing step fails the whole fetch; no partial thread is returned.
func (s *ThreadService) Fetch(ctx context.Context, id int) result.Result[*models.Thread] {
	run := &threadRun{id: id, state: stateInit}
	if id <= 0 {
		return run.fail(result.InvalidID("fetch thread", id))
	}

	meta := result.Then(s.transport.FetchHTML(ctx, s.pageURL(id, 1)), parseMetadata)
	if meta.IsFailure() {
		return run.fail(meta.Err())
	}
	run.advance(stateMetadataFetched)

	if r := s.configurePagination(ctx, id); r.IsFailure() {
		return run.fail(r.Err())
	}
	run.advance(statePaginationConfigured)

	posts := s.fetchPages(ctx, id, meta.Value().Pages)
	if posts.IsFailure() {
		return run.fail(posts.Err())
	}
	run.advance(statePagesFetched)

	m := meta.Value()
	thread := &models.Thread{
		ID:       id,
		Title:    m.Title,
		URL:      m.Canonical,
		Tags:     m.Tags,
		Prefixes: m.Prefixes,
		OwnerID:  m.OwnerID,
		Created:  m.Created,
		Rating:   m.Rating,
		Posts:    posts.Value(),
	}
	if thread.URL == "" {
		thread.URL = s.pageURL(id, 1)
	}
	run.advance(stateAssembled)

	return result.Success(thread)
}

// configurePagination asks the platform to serve PostsPerPage posts per page
// for this account. It needs a logged-in session token.
func (s *ThreadService) configurePagination(ctx context.Context, id int) result.Result[struct{}] {
	const op = "configure pagination"

	token := s.session.Token()
	if token == "" || !s.session.IsLogged() {
		return result.Failure[struct{}](result.NotAuthenticated(op, "a logged-in session token is required"))
	}

	form := url.Values{}
	form.Set("_xfToken", token)
	form.Set("_xfRequestUri", threadPath(id))
	form.Set("_xfWithData", "1")
	form.Set("_xfResponseType", "json")
	form.Set("posts_per_page", strconv.Itoa(PostsPerPage))

	return result.Then(s.transport.PostForm(ctx, s.baseURL+"/account/dpp-update", form), func(p *Page) result.Result[struct{}] {
		var resp struct {
			Status string   `json:"status"`
			Errors []string `json:"errors"`
		}
		if err := json.Unmarshal([]byte(p.Body), &resp); err != nil || resp.Status != "ok" {
			msg := "platform rejected the session token"
			if len(resp.Errors) > 0 {
				msg = fmt.Sprintf("%s: %s", msg, strings.Join(resp.Errors, "; "))
			}
			return result.Failure[struct{}](result.NotAuthenticated(op, msg))
		}
		return result.Success(struct{}{})
	})
}

// fetchPages requests pages 1..total at once and waits for all of them.
// Results keep their request index so the first failure is deterministic.
func (s *ThreadService) fetchPages(ctx context.Context, id, total int) result.Result[[]models.Post] {
	if total < 1 {
		total = 1
	}
	results := make([]result.Result[[]models.Post], total)

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page := s.transport.FetchHTML(ctx, s.pageURL(id, i+1))
			results[i] = result.Then(page, func(p *Page) result.Result[[]models.Post] {
				return parsePosts(p, s.body)
			})
		}(i)
	}
	wg.Wait()

	return mergePosts(results)
}

// mergePosts concatenates page results and sorts them by post ID. Posts
// seen on more than one page are kept once.
func mergePosts(pages []result.Result[[]models.Post]) result.Result[[]models.Post] {
	if err := result.FirstFailure(pages); err != nil {
		return result.Failure[[]models.Post](err)
	}

	seen := make(map[int]bool)
	posts := []models.Post{}
	for _, page := range pages {
		for _, post := range page.Value() {
			if seen[post.ID] {
				continue
			}
			seen[post.ID] = true
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return result.Success(posts)
}

func (s *ThreadService) pageURL(id, page int) string {
	if page <= 1 {
		return s.baseURL + threadPath(id)
	}
	return fmt.Sprintf("%s%spage-%d", s.baseURL, threadPath(id), page)
}
