// File: internal/services/client.go

package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pranesh-j/handiwork/internal/catalog"
	"github.com/pranesh-j/handiwork/internal/content"
	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/query"
)

// ClientConfig configures a Client
type ClientConfig struct {
	BaseURL      string
	Credentials  Credentials
	UserAgent    string
	Timeout      time.Duration
	Catalog      *catalog.Catalog // nil uses the embedded catalog
	Store        SessionStore     // nil keeps the session in memory
	UserCacheTTL time.Duration
}

// Client wires the services together. It is the outer boundary of the
// retrieval pipeline: its methods return plain Go errors that still carry
// the failure kind (see result.KindOf).
type Client struct {
	config  ClientConfig
	session *Session
	fetcher *Fetcher

	Search  *SearchService
	Threads *ThreadService
	Posts   *PostService
	Users   *UserService
}

// NewClient creates a client with a logged-out session
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = query.DefaultBaseURL
	}

	session, err := NewSession(cfg.BaseURL, NewFormAuthenticator(cfg.BaseURL), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	fetcher := NewFetcher(FetcherConfig{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Jar:       session,
	})
	parser, err := content.NewParser(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create body parser: %w", err)
	}
	search, err := NewSearchService(fetcher, query.NewResolver(cfg.Catalog), cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create search service: %w", err)
	}

	return &Client{
		config:  cfg,
		session: session,
		fetcher: fetcher,
		Search:  search,
		Threads: NewThreadService(fetcher, session, parser, cfg.BaseURL),
		Posts:   NewPostService(fetcher, parser, cfg.BaseURL),
		Users:   NewUserService(fetcher, cfg.BaseURL, cfg.UserCacheTTL),
	}, nil
}

// Session exposes the client's session for read-only use
func (c *Client) Session() SessionProvider {
	return c.session
}

// Connect restores a saved session and logs in when it is not valid
// anymore and credentials are configured
func (c *Client) Connect(ctx context.Context) error {
	if _, err := c.session.Restore(ctx).Unwrap(); err != nil {
		log.Printf("Warning: could not restore session: %v", err)
	}
	if c.session.IsLogged() {
		if _, err := c.session.RefreshToken(ctx, c.fetcher).Unwrap(); err == nil {
			return nil
		}
		log.Printf("Saved session is no longer valid")
	}
	if c.config.Credentials.Username == "" {
		log.Printf("No credentials configured, continuing without login")
		return nil
	}
	return c.Login(ctx)
}

func (c *Client) Login(ctx context.Context) error {
	if _, err := c.session.Login(ctx, c.fetcher, c.config.Credentials).Unwrap(); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.session.Logout(ctx).Unwrap(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// SessionStatus reports authentication metrics
func (c *Client) SessionStatus() map[string]interface{} {
	return c.session.Status()
}

// SearchURLs resolves and runs hq
func (c *Client) SearchURLs(ctx context.Context, hq *query.HandiworkSearchQuery, limit int) (SearchResult, error) {
	return c.Search.Search(ctx, hq, limit).Unwrap()
}

// FetchResultURLs runs an already concrete query
func (c *Client) FetchResultURLs(ctx context.Context, q query.Query, limit int) ([]string, error) {
	return c.Search.FetchResultURLs(ctx, q, limit).Unwrap()
}

func (c *Client) Thread(ctx context.Context, id int) (*models.Thread, error) {
	return c.Threads.Fetch(ctx, id).Unwrap()
}

func (c *Client) Post(ctx context.Context, id int) (models.Post, error) {
	return c.Posts.Fetch(ctx, id).Unwrap()
}

func (c *Client) User(ctx context.Context, id int) (models.PlatformUser, error) {
	return c.Users.Resolve(ctx, id).Unwrap()
}

// Close releases background resources, including the session store's
// connection when it has one
func (c *Client) Close() {
	c.Users.Close()
	if closer, ok := c.config.Store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("Warning: closing session store: %v", err)
		}
	}
}
