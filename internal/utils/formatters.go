// File: internal/utils/formatters.go

package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pranesh-j/handiwork/internal/models"
)

// FormatTimeAgo formats t relative to now as a human-readable "time ago" string
func FormatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 48*time.Hour:
		return "yesterday"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/24/30), "month")
	default:
		return plural(int(diff.Hours()/24/365), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateWithEllipsis shortens text to at most maxLength runes, preferring
// to cut at a word boundary
func TruncateWithEllipsis(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	breakPoint := maxLength - 3 // Reserve space for ellipsis
	for i := breakPoint; i > breakPoint-20 && i > 0; i-- {
		if runes[i] == ' ' || runes[i] == ',' || runes[i] == '.' {
			breakPoint = i
			break
		}
	}

	return string(runes[:breakPoint]) + "..."
}

// FormatNumber renders n compactly: 999, 1,234, 12K, 1.2M
func FormatNumber(n int) string {
	switch {
	case n < 1000:
		return strconv.Itoa(n)
	case n < 10000:
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	case n < 1000000:
		return fmt.Sprintf("%dK", n/1000)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatRating renders a thread rating, e.g. "4.5/5 (120 votes)"
func FormatRating(r models.Rating) string {
	if r.Count == 0 {
		return "not rated"
	}
	votes := "votes"
	if r.Count == 1 {
		votes = "vote"
	}
	return fmt.Sprintf("%s/%s (%s %s)",
		strconv.FormatFloat(r.Average, 'f', -1, 64),
		strconv.FormatFloat(r.Best, 'f', -1, 64),
		FormatNumber(r.Count), votes)
}
