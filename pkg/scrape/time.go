package scrape

import (
	"strings"
	"time"
)

// Форматы дат, встречающиеся в атрибутах datetime и react props
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTime parses a timestamp in any of the formats the site emits.
// Blank or unparseable input yields nil.
func ParseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
