// File: internal/services/session_store.go

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StoredCookie is the persisted part of a session cookie
type StoredCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionState is what a SessionStore persists between runs
type SessionState struct {
	Token    string         `json:"token"`
	LoggedIn bool           `json:"logged_in"`
	Cookies  []StoredCookie `json:"cookies"`
	SavedAt  time.Time      `json:"saved_at"`
}

// SessionStore persists the session. Load returns nil, nil when nothing
// is stored.
type SessionStore interface {
	Load(ctx context.Context) (*SessionState, error)
	Save(ctx context.Context, state *SessionState) error
	Clear(ctx context.Context) error
}

// MemorySessionStore keeps the session for the life of the process
type MemorySessionStore struct {
	mu    sync.Mutex
	state *SessionState
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Load(ctx context.Context) (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	cp := *m.state
	cp.Cookies = append([]StoredCookie(nil), m.state.Cookies...)
	return &cp, nil
}

func (m *MemorySessionStore) Save(ctx context.Context, state *SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *state
	cp.Cookies = append([]StoredCookie(nil), state.Cookies...)
	m.state = &cp
	return nil
}

func (m *MemorySessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}

const (
	defaultSessionPrefix = "handiwork:session:"
	defaultSessionTTL    = 30 * 24 * time.Hour
)

// RedisSessionStore keeps the session in Redis so several processes can
// share one login
type RedisSessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSessionStore connects to redisURL and stores the session of
// account under a prefixed key
func NewRedisSessionStore(redisURL, account string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, account), nil
}

// NewRedisSessionStoreWithClient creates a store from an existing client
func NewRedisSessionStoreWithClient(client *redis.Client, account string) *RedisSessionStore {
	if account == "" {
		account = "anonymous"
	}
	return &RedisSessionStore{
		client: client,
		key:    defaultSessionPrefix + account,
		ttl:    defaultSessionTTL,
	}
}

func (s *RedisSessionStore) Load(ctx context.Context) (*SessionState, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &state, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
