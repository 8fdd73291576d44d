// File: internal/utils/query_parser.go

package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pranesh-j/handiwork/internal/query"
)

// filterRegex matches key:value filters. Values may be double-quoted to
// carry spaces, and a leading '-' negates a tag.
var filterRegex = regexp.MustCompile(`(?i)(^|\s)(-?)(tag|prefix|cat|sort|newer|older|page):("[^"]*"|\S+)`)

const dateLayout = "2006-01-02"

// ParseQuery turns a free-form search string into a unified search
// request. Everything that is not a filter becomes the keywords:
//
//	tag:sandbox -tag:"male protagonist" prefix:completed cat:games
//	sort:likes newer:2024-01-01 older:2024-06-30 page:2 farm life
func ParseQuery(input string) (*query.HandiworkSearchQuery, error) {
	hq := query.NewHandiworkSearchQuery()

	for _, m := range filterRegex.FindAllStringSubmatch(input, -1) {
		negated := m[2] == "-"
		key := strings.ToLower(m[3])
		value := strings.Trim(m[4], `"`)
		if value == "" {
			return nil, fmt.Errorf("empty value for %s", key)
		}
		if negated && key != "tag" {
			return nil, fmt.Errorf("only tags can be excluded, got -%s", key)
		}

		switch key {
		case "tag":
			if negated {
				hq.ExcludedTags = append(hq.ExcludedTags, strings.ToLower(value))
			} else {
				hq.IncludedTags = append(hq.IncludedTags, strings.ToLower(value))
			}
		case "prefix":
			hq.IncludedPrefixes = append(hq.IncludedPrefixes, strings.ToLower(value))
		case "cat":
			hq.Category = strings.ToLower(value)
		case "sort":
			order := query.Order(strings.ToLower(value))
			if !order.Valid() {
				return nil, fmt.Errorf("unknown sort %q, want one of %v", value, query.Orders)
			}
			hq.Order = order
		case "newer", "older":
			t, err := time.Parse(dateLayout, value)
			if err != nil {
				return nil, fmt.Errorf("invalid %s date %q: %w", key, value, err)
			}
			if key == "newer" {
				hq.NewerThan = t
			} else {
				hq.OlderThan = t
			}
		case "page":
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				return nil, fmt.Errorf("invalid page %q", value)
			}
			hq.Page = page
		}
	}

	keywords := filterRegex.ReplaceAllString(input, " ")
	hq.Keywords = strings.Join(strings.Fields(keywords), " ")

	return hq, nil
}
