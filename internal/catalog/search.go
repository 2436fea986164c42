package catalog

import (
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Search returns the records matching query, case-insensitively, against the
// decimal id, name, link and code. A query containing glob metacharacters is
// matched as a pattern against the whole name or id instead. An empty query
// matches everything.
func (s *Store) Search(query string) []Record {
	return Filter(s.Records(), query)
}

func Filter(records []Record, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	glob := strings.ContainsAny(q, "*?[{") && doublestar.ValidatePattern(q)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		id := strconv.FormatInt(r.ID, 10)
		if glob {
			if matchGlob(q, id) || matchGlob(q, strings.ToLower(r.Name)) {
				out = append(out, r)
			}
			continue
		}
		if strings.Contains(id, q) ||
			strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Link), q) ||
			strings.Contains(strings.ToLower(r.Code), q) {
			out = append(out, r)
		}
	}
	return out
}

func matchGlob(pattern, value string) bool {
	ok, err := doublestar.Match(pattern, value)
	return err == nil && ok
}
