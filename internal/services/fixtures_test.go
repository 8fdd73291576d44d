package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pranesh-j/handiwork/internal/result"
)

const testBase = "https://forum.test"

// fakeTransport serves canned pages keyed by URL
type fakeTransport struct {
	mu     sync.Mutex
	pages  map[string]result.Result[*Page]
	delays map[string]time.Duration
	posts  []url.Values
	calls  []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		pages:  make(map[string]result.Result[*Page]),
		delays: make(map[string]time.Duration),
	}
}

func (f *fakeTransport) html(rawURL, body string) {
	f.pages[rawURL] = result.Success(&Page{URL: rawURL, StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: body})
}

func (f *fakeTransport) json(rawURL, body string) {
	f.pages[rawURL] = result.Success(&Page{URL: rawURL, StatusCode: 200, ContentType: "application/json", Body: body})
}

func (f *fakeTransport) fail(rawURL string, err *result.Error) {
	f.pages[rawURL] = result.Failure[*Page](err)
}

func (f *fakeTransport) get(ctx context.Context, rawURL string) result.Result[*Page] {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	delay := f.delays[rawURL]
	r, ok := f.pages[rawURL]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if !ok {
		return result.Failure[*Page](result.HTTPStatusError("GET "+rawURL, 404))
	}
	return r
}

func (f *fakeTransport) Fetch(ctx context.Context, rawURL string) result.Result[*Page] {
	return f.get(ctx, rawURL)
}

func (f *fakeTransport) FetchHTML(ctx context.Context, rawURL string) result.Result[*Page] {
	return result.Then(f.get(ctx, rawURL), func(p *Page) result.Result[*Page] {
		if !p.IsHTML() {
			return result.Failure[*Page](result.UnexpectedContentType("fetch "+rawURL, "text/html", p.ContentType))
		}
		return result.Success(p)
	})
}

func (f *fakeTransport) PostForm(ctx context.Context, rawURL string, form url.Values) result.Result[*Page] {
	f.mu.Lock()
	f.posts = append(f.posts, form)
	f.mu.Unlock()
	return f.get(ctx, rawURL)
}

func (f *fakeTransport) called(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == rawURL {
			n++
		}
	}
	return n
}

// staticSession is a SessionProvider with fixed state
type staticSession struct {
	token    string
	loggedIn bool
}

func (s staticSession) Token() string  { return s.token }
func (s staticSession) IsLogged() bool { return s.loggedIn }

const ratingJSONLD = `<script type="application/ld+json">
{"@context":"https://schema.org","@type":"DiscussionForumPosting",
 "mainEntity":{"@type":"CreativeWork","aggregateRating":{"@type":"AggregateRating","ratingValue":"4.5","bestRating":"5","ratingCount":"120"}}}
</script>`

// threadHTML renders a thread page holding postIDs, with a page
// navigation of totalPages
func threadHTML(title string, totalPages int, postIDs []int) string {
	var b strings.Builder
	b.WriteString(`<html data-csrf="tok123" data-logged-in="true"><head>`)
	b.WriteString(`<link rel="canonical" href="https://forum.test/threads/sample-game.42/">`)
	b.WriteString(ratingJSONLD)
	b.WriteString(`</head><body>`)
	fmt.Fprintf(&b, `<h1 class="p-title-value"><span class="label label--blue">Ren'Py</span><span class="label-append">&nbsp;</span><span class="label">Completed</span>%s</h1>`, title)
	b.WriteString(`<div class="p-description"><a class="username" data-user-id="77" href="/members/dev.77/">dev</a>`)
	b.WriteString(`<time class="u-dt" datetime="2023-01-15T10:30:00+0000" data-time="1673778600">Jan 15, 2023</time></div>`)
	b.WriteString(`<div class="tagList"><a class="tagItem" href="/tags/3dcg/">3dcg</a><a class="tagItem" href="/tags/sandbox/"> sandbox </a></div>`)
	if totalPages > 1 {
		b.WriteString(`<div class="pageNav"><ul class="pageNav-main">`)
		for i := 1; i <= totalPages; i++ {
			fmt.Fprintf(&b, `<li class="pageNav-page"><a href="/threads/42/page-%d">%d</a></li>`, i, i)
		}
		b.WriteString(`</ul></div>`)
	}
	for n, id := range postIDs {
		b.WriteString(postHTML(id, n+1))
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func postHTML(id, number int) string {
	return fmt.Sprintf(`<article class="message message--post" data-author="dev" data-content="post-%d">
<div class="message-name"><a class="username" data-user-id="77" href="/members/dev.77/">dev</a></div>
<ul class="message-attribution-main"><li><time class="u-dt" datetime="2023-02-01T08:00:00+0000">Feb 1</time></li></ul>
<ul class="message-attribution-opposite"><li><a class="bookmarkLink">Bookmark</a></li><li><a href="/posts/%d/">#%d</a></li></ul>
<div class="message-body"><div class="bbWrapper">Post <b>%d</b> body</div></div>
</article>`, id, id, number, id)
}

func idRange(from, n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = from + i
	}
	return ids
}

func reversed(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
