package utils

import (
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates (midnight UTC).
// The second return value is true when the input was a plain date.
func ParseDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return t, true, nil
}

// ParseRangeEnd parses an inclusive end bound and returns it as an exclusive one.
// A plain date covers the whole day; a timestamp covers up to and including that
// instant at the store's microsecond precision.
func ParseRangeEnd(value string) (time.Time, error) {
	t, dateOnly, err := ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		return t.AddDate(0, 0, 1), nil
	}
	return t.Add(time.Microsecond), nil
}
