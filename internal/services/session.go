// File: internal/services/session.go

package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pranesh-j/handiwork/internal/result"
)

// SessionProvider is the read-only view of the session the retrieval
// pipeline depends on
type SessionProvider interface {
	Token() string
	IsLogged() bool
}

// Credentials for the platform's login form
type Credentials struct {
	Username string
	Password string
}

// AuthState is what the platform reports about the current session
type AuthState struct {
	Token    string
	LoggedIn bool
}

// Session holds the process-wide authentication state: the CSRF token,
// the login flag and the cookie jar shared by every request.
//
// Reads take a read lock. Every mutation (login, refresh, restore, logout)
// first acquires a single-slot gate, so at most one of them runs at a time.
type Session struct {
	baseURL *url.URL
	auth    Authenticator
	store   SessionStore
	gate    *semaphore.Weighted

	mu       sync.RWMutex
	jar      http.CookieJar
	token    string
	loggedIn bool

	// For monitoring
	lastRefresh time.Time
	refreshes   int
	authErrors  int
}

// NewSession creates a logged-out session for the platform at baseURL.
// A nil store keeps state in memory only.
func NewSession(baseURL string, auth Authenticator, store SessionStore) (*Session, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if store == nil {
		store = NewMemorySessionStore()
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Session{
		baseURL: u,
		auth:    auth,
		store:   store,
		gate:    semaphore.NewWeighted(1),
		jar:     jar,
	}, nil
}

// Token returns the current CSRF token, "" when none is held
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsLogged reports whether the platform accepted our credentials
func (s *Session) IsLogged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// SetCookies implements http.CookieJar
func (s *Session) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.RLock()
	jar := s.jar
	s.mu.RUnlock()
	jar.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	s.mu.RLock()
	jar := s.jar
	s.mu.RUnlock()
	return jar.Cookies(u)
}

// Login runs the login handshake and persists the resulting session
func (s *Session) Login(ctx context.Context, t Transport, creds Credentials) result.Result[AuthState] {
	return s.mutate(ctx, "login", func() result.Result[AuthState] {
		log.Printf("Logging in as %s", creds.Username)
		return s.auth.Login(ctx, t, creds)
	})
}

// RefreshToken asks the platform for a fresh token. A session the platform
// no longer considers logged in fails with NotAuthenticated.
func (s *Session) RefreshToken(ctx context.Context, t Transport) result.Result[AuthState] {
	return s.mutate(ctx, "refresh token", func() result.Result[AuthState] {
		r := s.auth.Probe(ctx, t)
		if r.IsSuccess() && !r.Value().LoggedIn {
			return result.Failure[AuthState](result.NotAuthenticated("refresh token", "platform reports the session as logged out"))
		}
		return r
	})
}

// Restore loads a previously saved session from the store. It succeeds
// with a logged-out state when nothing was saved.
func (s *Session) Restore(ctx context.Context) result.Result[AuthState] {
	if err := s.acquire(ctx, "restore session"); err != nil {
		return result.Failure[AuthState](err)
	}
	defer s.gate.Release(1)

	saved, err := s.store.Load(ctx)
	if err != nil {
		return result.Failure[AuthState](result.NetworkError("load session", err))
	}
	if saved == nil {
		return result.Success(AuthState{})
	}

	cookies := make([]*http.Cookie, 0, len(saved.Cookies))
	for _, c := range saved.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	s.SetCookies(s.baseURL, cookies)

	s.mu.Lock()
	s.token = saved.Token
	s.loggedIn = saved.LoggedIn
	s.mu.Unlock()

	log.Printf("Restored session saved at %s (logged in: %v)", saved.SavedAt.Format(time.RFC3339), saved.LoggedIn)
	return result.Success(AuthState{Token: saved.Token, LoggedIn: saved.LoggedIn})
}

// Logout forgets the token and cookies and clears the store
func (s *Session) Logout(ctx context.Context) result.Result[AuthState] {
	if err := s.acquire(ctx, "logout"); err != nil {
		return result.Failure[AuthState](err)
	}
	defer s.gate.Release(1)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return result.Failure[AuthState](result.NetworkError("logout", err))
	}
	s.mu.Lock()
	s.jar = jar
	s.token = ""
	s.loggedIn = false
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return result.Failure[AuthState](result.NetworkError("clear session", err))
	}
	return result.Success(AuthState{})
}

// Status reports authentication metrics
func (s *Session) Status() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := map[string]interface{}{
		"has_token":     s.token != "",
		"logged_in":     s.loggedIn,
		"refresh_count": s.refreshes,
		"error_count":   s.authErrors,
	}
	if !s.lastRefresh.IsZero() {
		status["last_refresh_ago"] = time.Since(s.lastRefresh).Seconds()
	}
	return status
}

// acquire waits for the gate. A wait cut short by ctx is reported as
// NetworkError wrapping ctx.Err(), the same way an HTTP request aborted
// by ctx is; errors.Is(err, context.Canceled) still holds.
func (s *Session) acquire(ctx context.Context, op string) *result.Error {
	if err := s.gate.Acquire(ctx, 1); err != nil {
		return result.NetworkError(op+": wait for session gate", err)
	}
	return nil
}

// mutate runs fn under the gate and applies its outcome
func (s *Session) mutate(ctx context.Context, op string, fn func() result.Result[AuthState]) result.Result[AuthState] {
	if err := s.acquire(ctx, op); err != nil {
		return result.Failure[AuthState](err)
	}
	defer s.gate.Release(1)

	r := fn()
	if r.IsFailure() {
		s.mu.Lock()
		s.authErrors++
		s.mu.Unlock()
		log.Printf("Session %s failed: %v", op, r.Err())
		return r
	}

	state := r.Value()
	s.mu.Lock()
	s.token = state.Token
	s.loggedIn = state.LoggedIn
	s.lastRefresh = time.Now()
	s.refreshes++
	s.mu.Unlock()

	log.Printf("Session %s succeeded, token %s", op, tokenPreview(state.Token))

	if err := s.store.Save(ctx, s.snapshot()); err != nil {
		log.Printf("Warning: could not persist session: %v", err)
	}
	return r
}

func (s *Session) snapshot() *SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := &SessionState{
		Token:    s.token,
		LoggedIn: s.loggedIn,
		SavedAt:  time.Now().UTC(),
	}
	for _, c := range s.jar.Cookies(s.baseURL) {
		state.Cookies = append(state.Cookies, StoredCookie{Name: c.Name, Value: c.Value})
	}
	return state
}

// tokenPreview keeps logs free of full tokens
func tokenPreview(token string) string {
	if len(token) > 5 {
		return token[:5] + "..."
	}
	if token == "" {
		return "<empty>"
	}
	return token
}
