// File: internal/services/fetcher.go

package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranesh-j/handiwork/internal/result"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Page is a platform response
type Page struct {
	URL         string // final URL after redirects
	StatusCode  int
	ContentType string
	Body        string
}

// MediaType returns the content type without parameters
func (p *Page) MediaType() string {
	mt, _, err := mime.ParseMediaType(p.ContentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(p.ContentType))
	}
	return mt
}

// IsHTML reports whether the page carries HTML
func (p *Page) IsHTML() bool {
	mt := p.MediaType()
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// Document parses the body as HTML
func (p *Page) Document() result.Result[*goquery.Document] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Body))
	if err != nil {
		return result.Failure[*goquery.Document](result.ParseFailure("parse html "+p.URL, err))
	}
	return result.Success(doc)
}

// Transport is the HTTP surface the services need
type Transport interface {
	// Fetch GETs rawURL and accepts any content type.
	Fetch(ctx context.Context, rawURL string) result.Result[*Page]
	// FetchHTML GETs rawURL and fails with UnexpectedContentType unless the
	// response is HTML.
	FetchHTML(ctx context.Context, rawURL string) result.Result[*Page]
	// PostForm submits form to rawURL.
	PostForm(ctx context.Context, rawURL string, form url.Values) result.Result[*Page]
}

// FetcherConfig configures the fetcher
type FetcherConfig struct {
	Timeout   time.Duration // Default: 30s.
	MaxBytes  int64         // Max response body size. Default: 10MB.
	UserAgent string
	Jar       http.CookieJar
}

func (c *FetcherConfig) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 * 1024 * 1024
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// Fetcher is the default Transport. It never retries.
type Fetcher struct {
	client *http.Client
	config FetcherConfig
}

// NewFetcher creates a Fetcher sharing cfg.Jar across all requests
func NewFetcher(cfg FetcherConfig) *Fetcher {
	cfg.defaults()
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     cfg.Jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects (%d)", len(via))
				}
				return nil
			},
		},
		config: cfg,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) result.Result[*Page] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return result.Failure[*Page](result.NetworkError("new request", err))
	}
	return f.do(req)
}

func (f *Fetcher) FetchHTML(ctx context.Context, rawURL string) result.Result[*Page] {
	return result.Then(f.Fetch(ctx, rawURL), func(p *Page) result.Result[*Page] {
		if !p.IsHTML() {
			return result.Failure[*Page](result.UnexpectedContentType("fetch "+rawURL, "text/html", p.ContentType))
		}
		return result.Success(p)
	})
}

func (f *Fetcher) PostForm(ctx context.Context, rawURL string, form url.Values) result.Result[*Page] {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return result.Failure[*Page](result.NetworkError("new request", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) result.Result[*Page] {
	op := req.Method + " " + req.URL.String()
	req.Header.Set("User-Agent", f.config.UserAgent)

	log.Printf("Sending %s", op)
	resp, err := f.client.Do(req)
	if err != nil {
		return result.Failure[*Page](result.NetworkError(op, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes+1))
	if err != nil {
		return result.Failure[*Page](result.NetworkError(op, fmt.Errorf("read body: %w", err)))
	}
	if int64(len(body)) > f.config.MaxBytes {
		log.Printf("Response for %s exceeds %d bytes", op, f.config.MaxBytes)
		return result.Failure[*Page](result.NetworkError(op, fmt.Errorf("response exceeds %d bytes", f.config.MaxBytes)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Error response for %s: %s", op, resp.Status)
		return result.Failure[*Page](result.HTTPStatusError(op, resp.StatusCode))
	}

	return result.Success(&Page{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	})
}
