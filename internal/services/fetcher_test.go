package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pranesh-j/handiwork/internal/result"
)

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/html":
			if r.Header.Get("User-Agent") != "handiwork-test" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=UTF-8")
			w.Write([]byte("<html><title>ok</title></html>"))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		case "/form":
			r.ParseForm()
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte(r.PostForm.Get("a")))
		case "/moved":
			http.Redirect(w, r, "/html", http.StatusFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{UserAgent: "handiwork-test"})
	ctx := context.Background()

	t.Run("html page", func(t *testing.T) {
		p, err := f.FetchHTML(ctx, srv.URL+"/moved").Unwrap()
		if err != nil {
			t.Fatalf("FetchHTML failed: %v", err)
		}
		if p.URL != srv.URL+"/html" {
			t.Errorf("Expected final URL after redirect, got %q", p.URL)
		}
		if p.MediaType() != "text/html" || !p.IsHTML() {
			t.Errorf("unexpected media type %q", p.MediaType())
		}
		doc, err := p.Document().Unwrap()
		if err != nil || doc.Find("title").Text() != "ok" {
			t.Errorf("Document() = %v, %v", doc, err)
		}
	})

	t.Run("json is not html", func(t *testing.T) {
		r := f.FetchHTML(ctx, srv.URL+"/json")
		if r.IsSuccess() || r.Err().Kind != result.KindUnexpectedContentType {
			t.Errorf("Expected unexpected content type, got %v", r.Err())
		}
		if f.Fetch(ctx, srv.URL+"/json").IsFailure() {
			t.Error("Fetch should accept any content type")
		}
	})

	t.Run("status error", func(t *testing.T) {
		r := f.Fetch(ctx, srv.URL+"/missing")
		if r.IsSuccess() || r.Err().Kind != result.KindNetwork || r.Err().Status != http.StatusNotFound {
			t.Errorf("Expected 404 network error, got %v", r.Err())
		}
	})

	t.Run("post form", func(t *testing.T) {
		p, err := f.PostForm(ctx, srv.URL+"/form", url.Values{"a": {"b c"}}).Unwrap()
		if err != nil {
			t.Fatalf("PostForm failed: %v", err)
		}
		if p.Body != "b c" {
			t.Errorf("Expected echoed form value, got %q", p.Body)
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		r := f.Fetch(ctx, "http://127.0.0.1:1/")
		if r.IsSuccess() || r.Err().Kind != result.KindNetwork {
			t.Errorf("Expected network error, got %v", r.Err())
		}
	})
}

func TestFetcherRejectsOversizedBody(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 1; i <= 100; i++ {
		fmt.Fprintf(&b, `<article class="message" data-content="post-%d"></article>`, i)
	}
	b.WriteString("</body></html>")
	body := b.String()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	testCases := []struct {
		name      string
		maxBytes  int64
		expectErr bool
	}{
		{"half the body", int64(len(body) / 2), true},
		{"one byte short", int64(len(body) - 1), true},
		{"exact fit", int64(len(body)), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFetcher(FetcherConfig{MaxBytes: tc.maxBytes})
			r := f.FetchHTML(context.Background(), srv.URL)
			if !tc.expectErr {
				if r.IsFailure() {
					t.Fatalf("Unexpected failure: %v", r.Err())
				}
				if r.Value().Body != body {
					t.Errorf("Expected the full body, got %d of %d bytes", len(r.Value().Body), len(body))
				}
				return
			}
			if r.IsSuccess() {
				t.Fatalf("Expected failure, got %d of %d bytes", len(r.Value().Body), len(body))
			}
			if r.Err().Kind != result.KindNetwork {
				t.Errorf("Expected %s, got %s", result.KindNetwork, r.Err().Kind)
			}
			if !strings.Contains(r.Err().Error(), fmt.Sprintf("response exceeds %d bytes", tc.maxBytes)) {
				t.Errorf("Expected size message, got %q", r.Err().Error())
			}
		})
	}
}
