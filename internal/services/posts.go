// File: internal/services/posts.go

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

// PostService fetches single posts. The platform redirects a post link to
// the thread page holding it.
type PostService struct {
	transport Transport
	body      BodyParser
	baseURL   string
}

func NewPostService(t Transport, body BodyParser, baseURL string) *PostService {
	return &PostService{transport: t, body: body, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *PostService) Fetch(ctx context.Context, id int) result.Result[models.Post] {
	if id <= 0 {
		return result.Failure[models.Post](result.InvalidID("fetch post", id))
	}

	postURL := fmt.Sprintf("%s/posts/%d/", s.baseURL, id)
	posts := result.Then(s.transport.FetchHTML(ctx, postURL), func(p *Page) result.Result[[]models.Post] {
		return parsePosts(p, s.body)
	})

	return result.Then(posts, func(ps []models.Post) result.Result[models.Post] {
		for _, p := range ps {
			if p.ID == id {
				return result.Success(p)
			}
		}
		return result.Failure[models.Post](result.ParseFailuref("fetch post", "post %d not found on its page", id))
	})
}
