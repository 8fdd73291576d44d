// File: internal/services/thread_parser.go

package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

// BodyParser turns a post body fragment into typed elements and a raw
// message. *content.Parser implements it.
type BodyParser interface {
	Elements(fragment string) ([]models.Element, error)
	Message(fragment string) string
}

// threadMetadata is what the first page of a thread tells us
type threadMetadata struct {
	Title     string
	Canonical string
	Tags      []string
	Prefixes  []string
	OwnerID   int
	Created   time.Time
	Pages     int
	Rating    models.Rating
}

var timeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// parseMetadata extracts the thread header, page count and rating
func parseMetadata(p *Page) result.Result[threadMetadata] {
	return result.Then(p.Document(), func(doc *goquery.Document) result.Result[threadMetadata] {
		const op = "parse thread metadata"

		heading := doc.Find("h1.p-title-value").First()
		if heading.Length() == 0 {
			return result.Failure[threadMetadata](result.ParseFailuref(op, "no title on %s", p.URL))
		}

		var meta threadMetadata
		heading.Find("span.label").Each(func(_ int, s *goquery.Selection) {
			if text := cleanText(s.Text()); text != "" {
				meta.Prefixes = append(meta.Prefixes, text)
			}
		})
		title := heading.Clone()
		title.Find(".label, .label-append").Remove()
		meta.Title = cleanText(title.Text())

		doc.Find("a.tagItem").Each(func(_ int, s *goquery.Selection) {
			if text := cleanText(s.Text()); text != "" {
				meta.Tags = append(meta.Tags, text)
			}
		})

		desc := doc.Find(".p-description").First()
		meta.OwnerID = userIDOf(desc.Find("a.username").First())
		meta.Created = timeOf(desc.Find("time.u-dt").First())

		meta.Pages = 1
		if last := doc.Find(".pageNav-main .pageNav-page").Last(); last.Length() > 0 {
			if n, err := strconv.Atoi(cleanText(last.Text())); err == nil && n > 0 {
				meta.Pages = n
			}
		}
		meta.Canonical = doc.Find(`link[rel="canonical"]`).AttrOr("href", "")

		rating := result.Then(locateJSONLD(doc), extractRating)
		if rating.IsFailure() {
			return result.Forward[threadMetadata](rating)
		}
		meta.Rating = rating.Value()

		return result.Success(meta)
	})
}

// parsePosts extracts every post on a thread page, in page order
func parsePosts(p *Page, body BodyParser) result.Result[[]models.Post] {
	return result.Then(p.Document(), func(doc *goquery.Document) result.Result[[]models.Post] {
		var (
			posts   []models.Post
			failure *result.Error
		)
		doc.Find(`article.message[data-content^="post-"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			r := parsePost(s, body)
			if r.IsFailure() {
				failure = r.Err()
				return false
			}
			posts = append(posts, r.Value())
			return true
		})
		if failure != nil {
			return result.Failure[[]models.Post](failure)
		}
		return result.Success(posts)
	})
}

func parsePost(s *goquery.Selection, body BodyParser) result.Result[models.Post] {
	const op = "parse post"

	raw := strings.TrimPrefix(s.AttrOr("data-content", ""), "post-")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return result.Failure[models.Post](result.ParseFailuref(op, "bad post id %q", raw))
	}

	post := models.Post{
		ID:         id,
		Number:     postNumber(s.Find(".message-attribution-opposite li:last-child a").First().Text()),
		Published:  timeOf(s.Find(".message-attribution-main time.u-dt").First()),
		OwnerID:    userIDOf(s.Find(".message-name a.username").First()),
		Bookmarked: s.Find(".bookmarkLink.is-bookmarked").Length() > 0,
	}
	if edit := s.Find(".message-lastEdit time.u-dt").First(); edit.Length() > 0 {
		t := timeOf(edit)
		if !t.IsZero() {
			post.LastEdit = &t
		}
	}

	fragment, err := s.Find(".message-body .bbWrapper").First().Html()
	if err != nil {
		return result.Failure[models.Post](result.ParseFailure(op, err))
	}
	elements, err := body.Elements(fragment)
	if err != nil {
		return result.Failure[models.Post](result.ParseFailure(op, err))
	}
	post.Body = elements
	post.Message = body.Message(fragment)

	return result.Success(post)
}

// postNumber reads labels like "#1,024"
func postNumber(label string) int {
	label = strings.NewReplacer("#", "", ",", "", ".", "").Replace(cleanText(label))
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0
	}
	return n
}

// userIDOf reads a username link; guests have no ID and yield 0
func userIDOf(s *goquery.Selection) int {
	id, err := strconv.Atoi(s.AttrOr("data-user-id", ""))
	if err != nil {
		return 0
	}
	return id
}

// timeOf reads a <time> element, preferring the machine-readable attributes
func timeOf(s *goquery.Selection) time.Time {
	if dt, ok := s.Attr("datetime"); ok {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, dt); err == nil {
				return t.UTC()
			}
		}
	}
	if unix, err := strconv.ParseInt(s.AttrOr("data-time", ""), 10, 64); err == nil {
		return time.Unix(unix, 0).UTC()
	}
	return time.Time{}
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
