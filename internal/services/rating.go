// File: internal/services/rating.go

package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranesh-j/handiwork/internal/models"
	"github.com/pranesh-j/handiwork/internal/result"
)

const ratingKey = "aggregateRating"

// locateJSONLD decodes every structured-metadata block of the page and
// returns the first one that carries an aggregate rating
func locateJSONLD(doc *goquery.Document) result.Result[interface{}] {
	var found interface{}
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var tree interface{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &tree); err != nil {
			return true
		}
		if findKey(tree, ratingKey) != nil {
			found = tree
			return false
		}
		return true
	})
	if found == nil {
		return result.Failure[interface{}](result.ParseFailuref("locate json-ld", "no block with %s", ratingKey))
	}
	return result.Success(found)
}

// extractRating reads the aggregate rating nested anywhere in tree
func extractRating(tree interface{}) result.Result[models.Rating] {
	const op = "parse rating"

	obj, ok := findKey(tree, ratingKey).(map[string]interface{})
	if !ok {
		return result.Failure[models.Rating](result.ParseFailuref(op, "%s is missing or not an object", ratingKey))
	}

	avg, ok := getNumber(obj, "ratingValue")
	if !ok {
		return result.Failure[models.Rating](result.ParseFailuref(op, "ratingValue %v is not a number", obj["ratingValue"]))
	}
	best, ok := getNumber(obj, "bestRating")
	if !ok {
		return result.Failure[models.Rating](result.ParseFailuref(op, "bestRating %v is not a number", obj["bestRating"]))
	}
	count, ok := getCount(obj, "ratingCount")
	if !ok {
		return result.Failure[models.Rating](result.ParseFailuref(op, "ratingCount %v is not a non-negative whole number", obj["ratingCount"]))
	}

	return result.Success(models.Rating{Average: avg, Best: best, Count: count})
}

// containerKeys are the JSON-LD keys that nest further entities, in the
// order they are searched
var containerKeys = []string{"mainEntity", "@graph", "itemReviewed", "about"}

// findKey searches tree for key: the object itself first, then its
// container keys in a fixed order, then list elements in document order
func findKey(tree interface{}, key string) interface{} {
	switch v := tree.(type) {
	case map[string]interface{}:
		if val, ok := v[key]; ok {
			return val
		}
		for _, k := range containerKeys {
			if val := findKey(v[k], key); val != nil {
				return val
			}
		}
	case []interface{}:
		for _, child := range v {
			if val := findKey(child, key); val != nil {
				return val
			}
		}
	}
	return nil
}

// Helper function to get a finite number that may be encoded as JSON text
func getNumber(data map[string]interface{}, key string) (float64, bool) {
	var f float64
	switch v := data[key].(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Helper function to get a non-negative whole count
func getCount(data map[string]interface{}, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
