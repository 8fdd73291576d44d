// Package catalog maps the platform's tag, prefix and category names to the
// numeric IDs its listing endpoints expect.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Catalog holds name→ID tables. Names are matched case-insensitively.
type Catalog struct {
	Categories map[string]int `toml:"categories"`
	Tags       map[string]int `toml:"tags"`
	Prefixes   map[string]int `toml:"prefixes"`
}

// Default returns the embedded catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a TOML file. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML catalog
func Parse(data []byte) (*Catalog, error) {
	var raw Catalog
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	c := &Catalog{
		Categories: normalize(raw.Categories),
		Tags:       normalize(raw.Tags),
		Prefixes:   normalize(raw.Prefixes),
	}
	for name, id := range c.Categories {
		if id <= 0 {
			return nil, fmt.Errorf("category %q has non-positive id %d", name, id)
		}
	}
	return c, nil
}

func normalize(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// TagID returns the ID of the named tag
func (c *Catalog) TagID(name string) (int, bool) {
	id, ok := c.Tags[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// PrefixID returns the ID of the named prefix
func (c *Catalog) PrefixID(name string) (int, bool) {
	id, ok := c.Prefixes[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// CategoryID returns the forum node ID of the named category
func (c *Catalog) CategoryID(name string) (int, bool) {
	id, ok := c.Categories[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// CategoryNames lists the known categories in alphabetical order
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
