// File: internal/services/users.go

package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranesh-j/handiwork/internal/cache"
	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

// UserService resolves the user IDs held by threads and posts
type UserService struct {
	transport Transport
	baseURL   string
	cache     *cache.Cache[int, models.PlatformUser]
}

// NewUserService creates a resolver caching members for ttl
func NewUserService(t Transport, baseURL string, ttl time.Duration) *UserService {
	cfg := cache.DefaultConfig[int, models.PlatformUser]()
	if ttl > 0 {
		cfg.DefaultTTL = ttl
	}
	return &UserService{
		transport: t,
		baseURL:   strings.TrimRight(baseURL, "/"),
		cache:     cache.New(cfg),
	}
}

// Resolve loads the member profile of id
func (s *UserService) Resolve(ctx context.Context, id int) result.Result[models.PlatformUser] {
	if id <= 0 {
		return result.Failure[models.PlatformUser](result.InvalidID("resolve user", id))
	}
	if user, ok := s.cache.Get(id); ok {
		log.Printf("Cache hit for user %d", id)
		return result.Success(user)
	}

	memberURL := fmt.Sprintf("%s/members/%d/", s.baseURL, id)
	r := result.Then(s.transport.FetchHTML(ctx, memberURL), func(p *Page) result.Result[models.PlatformUser] {
		return parseMember(p, id, s.baseURL)
	})
	if r.IsSuccess() {
		s.cache.Set(id, r.Value())
	}
	return r
}

// Close stops the cache janitor
func (s *UserService) Close() {
	s.cache.Close()
}

func parseMember(p *Page, id int, baseURL string) result.Result[models.PlatformUser] {
	return result.Then(p.Document(), func(doc *goquery.Document) result.Result[models.PlatformUser] {
		header := doc.Find(".memberHeader").First()
		name := cleanText(header.Find(".memberHeader-name .username").First().Text())
		if name == "" {
			return result.Failure[models.PlatformUser](result.ParseFailuref("parse member", "no member name on %s", p.URL))
		}

		user := models.PlatformUser{
			ID:    id,
			Name:  name,
			Title: cleanText(header.Find(".memberHeader-blurb .userTitle").First().Text()),
		}
		if src, ok := header.Find(".memberHeader-avatar img").First().Attr("src"); ok {
			if strings.HasPrefix(src, "/") {
				src = baseURL + src
			}
			user.Avatar = src
		}

		header.Find("dl.pairs").Each(func(_ int, dl *goquery.Selection) {
			switch strings.ToLower(cleanText(dl.Find("dt").First().Text())) {
			case "joined":
				user.Joined = timeOf(dl.Find("dd time").First())
			case "messages":
				digits := strings.NewReplacer(",", "", ".", "", " ", "").Replace(cleanText(dl.Find("dd").First().Text()))
				if n, err := strconv.Atoi(digits); err == nil {
					user.MessageCount = n
				}
			}
		})

		return result.Success(user)
	})
}
