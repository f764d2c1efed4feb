package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for dates arriving from bank exports. French bank CSVs use
// DD/MM/YYYY; API clients send ISO dates.
var acceptedLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	time.RFC3339,
}

// ParseFlexible parses a date in DD/MM/YYYY or ISO form and normalizes it to UTC
// midnight.
func ParseFlexible(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q (expected DD/MM/YYYY or YYYY-MM-DD)", value)
}
