package query

import (
	"strconv"
	"time"
)

// DateFilter is the latest backend's recency bucket, in days.
// DateAny is the "anytime" sentinel and serialises as "null".
type DateFilter int

const DateAny DateFilter = 0

// dateBuckets is ordered from most to least restrictive
var dateBuckets = []DateFilter{1, 3, 7, 14, 30, 90, 180, 365}

func (d DateFilter) String() string {
	if d == DateAny {
		return "null"
	}
	return strconv.Itoa(int(d))
}

func (d DateFilter) Valid() bool {
	if d == DateAny {
		return true
	}
	for _, b := range dateBuckets {
		if b == d {
			return true
		}
	}
	return false
}

// NearestDate picks the smallest bucket covering everything newer than
// newerThan, measured in whole UTC calendar days before now. An elapsed
// count equal to a bucket selects that bucket. DateAny is returned when
// newerThan is zero or older than the widest bucket.
func NearestDate(newerThan, now time.Time) DateFilter {
	if newerThan.IsZero() {
		return DateAny
	}
	elapsed := daysBetween(newerThan, now)
	for _, b := range dateBuckets {
		if int(b) >= elapsed {
			return b
		}
	}
	return DateAny
}

func daysBetween(from, to time.Time) int {
	f := from.UTC()
	t := to.UTC()
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}
