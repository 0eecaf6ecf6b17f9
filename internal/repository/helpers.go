package repository

import (
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// ErrNotFound is returned when a lookup or delete matches no row.
var ErrNotFound = errors.New("not found")

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime tolerates bad values; timestamps are informational only.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// JoinNames stores a name list as comma-separated text.
func JoinNames(names []string) string {
	return strings.Join(SplitNames(strings.Join(names, ",")), ",")
}

// SplitNames parses comma-delimited names (ASCII or full-width comma),
// trimming each and dropping empties and repeats.
func SplitNames(s string) []string {
	s = strings.ReplaceAll(s, "，", ",")
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// sqlb builds statements with SQLite "?" placeholders.
var sqlb = sq.StatementBuilder.PlaceholderFormat(sq.Question)
