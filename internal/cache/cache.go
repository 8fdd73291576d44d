// File: internal/cache/cache.go

package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry represents a cached item with expiration
type entry[K comparable, V any] struct {
	key        K
	value      V
	expiration int64
}

// Cache provides a thread-safe LRU cache with TTL
type Cache[K comparable, V any] struct {
	maxItems   int
	items      map[K]*list.Element
	evictList  *list.List
	mu         sync.Mutex
	defaultTTL time.Duration
	janitor    *janitor
	onEvict    func(key K, value V)
	now        func() time.Time
}

// Config holds cache configuration options
type Config[K comparable, V any] struct {
	MaxItems        int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	OnEvict         func(key K, value V)
}

// DefaultConfig creates a default cache configuration
func DefaultConfig[K comparable, V any]() Config[K, V] {
	return Config[K, V]{
		MaxItems:        1000,
		DefaultTTL:      15 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// New creates a new cache with the given configuration
func New[K comparable, V any](config Config[K, V]) *Cache[K, V] {
	defaults := DefaultConfig[K, V]()
	if config.MaxItems <= 0 {
		config.MaxItems = defaults.MaxItems
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = defaults.DefaultTTL
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}

	c := &Cache[K, V]{
		maxItems:   config.MaxItems,
		items:      make(map[K]*list.Element, config.MaxItems),
		evictList:  list.New(),
		defaultTTL: config.DefaultTTL,
		onEvict:    config.OnEvict,
		now:        time.Now,
	}

	// Start the background cleanup process
	c.janitor = &janitor{
		interval: config.CleanupInterval,
		stop:     make(chan struct{}),
	}
	go c.janitor.run(c.deleteExpired)

	return c
}

// Set adds an item to the cache with the default TTL
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL adds an item to the cache with a specific TTL
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Replace an existing entry
	if element, exists := c.items[key]; exists {
		c.removeElement(element)
	}

	// Make room
	for c.evictList.Len() >= c.maxItems {
		c.evictOldest()
	}

	element := c.evictList.PushFront(&entry[K, V]{
		key:        key,
		value:      value,
		expiration: c.now().Add(ttl).UnixNano(),
	})
	c.items[key] = element
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	element, found := c.items[key]
	if !found {
		return zero, false
	}

	e := element.Value.(*entry[K, V])
	if e.expiration < c.now().UnixNano() {
		c.removeElement(element)
		return zero, false
	}

	// Move to front (recently used)
	c.evictList.MoveToFront(element)
	return e.value, true
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, found := c.items[key]
	if !found {
		return false
	}
	c.removeElement(element)
	return true
}

func (c *Cache[K, V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	e := el.Value.(*entry[K, V])
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// evictOldest removes the least recently used item
func (c *Cache[K, V]) evictOldest() {
	if element := c.evictList.Back(); element != nil {
		c.removeElement(element)
	}
}

// Len returns the number of items in the cache
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		for _, element := range c.items {
			e := element.Value.(*entry[K, V])
			c.onEvict(e.key, e.value)
		}
	}
	c.items = make(map[K]*list.Element, c.maxItems)
	c.evictList = list.New()
}

// deleteExpired deletes expired items from the cache
func (c *Cache[K, V]) deleteExpired() {
	now := c.now().UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, element := range c.items {
		if element.Value.(*entry[K, V]).expiration < now {
			c.removeElement(element)
		}
	}
}

// Close stops the janitor
func (c *Cache[K, V]) Close() {
	close(c.janitor.stop)
}

// janitor cleans up expired items at regular intervals
type janitor struct {
	interval time.Duration
	stop     chan struct{}
}

func (j *janitor) run(sweep func()) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweep()
		case <-j.stop:
			return
		}
	}
}
