package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pranesh-j/handiwork/internal/catalog"
	"github.com/pranesh-j/handiwork/internal/services"
)

type Config struct {
	Port         string
	BaseURL      string
	Username     string
	Password     string
	UserAgent    string
	Timeout      time.Duration
	ResultLimit  int
	CatalogPath  string // empty uses the embedded catalog
	RedisURL     string // empty keeps the session in memory
	CORSOrigins  []string
	UserCacheTTL time.Duration
}

func Load() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		BaseURL:      strings.TrimRight(getenv("HANDIWORK_BASE_URL", "https://f95zone.to"), "/"),
		Username:     getenv("HANDIWORK_USERNAME", ""),
		Password:     getenv("HANDIWORK_PASSWORD", ""),
		UserAgent:    getenv("HANDIWORK_USER_AGENT", ""),
		Timeout:      time.Duration(getenvInt("HANDIWORK_TIMEOUT_SECONDS", 30)) * time.Second,
		ResultLimit:  getenvInt("HANDIWORK_RESULT_LIMIT", services.DefaultResultLimit),
		CatalogPath:  getenv("HANDIWORK_CATALOG", ""),
		RedisURL:     getenv("REDIS_URL", ""),
		CORSOrigins:  getenvList("HANDIWORK_CORS_ORIGINS", []string{"http://localhost:3000"}),
		UserCacheTTL: time.Duration(getenvInt("HANDIWORK_USER_CACHE_TTL_SECONDS", 900)) * time.Second,
	}
}

// Credentials returns the configured login, empty when none is set
func (c Config) Credentials() services.Credentials {
	return services.Credentials{Username: c.Username, Password: c.Password}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getenvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// NewClient builds a platform client from the configuration: the catalog
// file, the Redis session store when REDIS_URL is set, and the login.
func (c Config) NewClient() (*services.Client, error) {
	cat, err := catalog.Load(c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var store services.SessionStore
	if c.RedisURL != "" {
		rs, err := services.NewRedisSessionStore(c.RedisURL, c.Username)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		store = rs
	}

	return services.NewClient(services.ClientConfig{
		BaseURL:      c.BaseURL,
		Credentials:  c.Credentials(),
		UserAgent:    c.UserAgent,
		Timeout:      c.Timeout,
		Catalog:      cat,
		Store:        store,
		UserCacheTTL: c.UserCacheTTL,
	})
}
