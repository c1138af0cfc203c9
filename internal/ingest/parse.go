// Package ingest parses the flat-file item definition format.
// It converts uploaded text into validated item records,
// degrading gracefully on malformed lines instead of aborting.
package ingest

import (
	"strconv"
	"strings"
)

// Directive is the token that marks an item definition line.
const Directive = "add_item"

// Field positions within a tokenized definition line (0-based, counting
// the directive token itself).
const (
	fieldID   = 1
	fieldName = 6

	// minFields is the minimum token count for a usable line: the name
	// field must exist, so the directive plus six payload fields.
	minFields = fieldName + 1
)

// Record is a single parsed item definition.
type Record struct {
	ID   int
	Name string
}

// Stats aggregates the outcome of one parse pass.
type Stats struct {
	// Scanned counts candidate lines (trimmed lines starting with the
	// directive token). Non-candidate lines are ignored entirely.
	Scanned int

	// Accepted counts records that made it into the result. A duplicate
	// id overwriting an earlier record still counts as accepted.
	Accepted int

	// Rejected counts candidate lines dropped for too few fields, an
	// unparseable id, or an empty name.
	Rejected int
}

// Parse extracts item records from raw file content.
// Records are returned in insertion order: a later duplicate id replaces the
// earlier name but keeps the original position. Malformed candidate lines are
// counted in Stats.Rejected and skipped; parsing never fails as a whole.
func Parse(content string) ([]Record, Stats) {
	var (
		records []Record
		index   = make(map[int]int) // id -> position in records
		stats   Stats
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, Directive) {
			continue
		}
		stats.Scanned++

		fields := splitFields(line)
		if len(fields) < minFields {
			stats.Rejected++
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[fieldID]))
		if err != nil {
			stats.Rejected++
			continue
		}

		name := strings.TrimSpace(fields[fieldName])
		if name == "" {
			stats.Rejected++
			continue
		}

		stats.Accepted++
		if pos, ok := index[id]; ok {
			// Last write wins within one pass.
			records[pos].Name = name
			continue
		}
		index[id] = len(records)
		records = append(records, Record{ID: id, Name: name})
	}

	return records, stats
}

// splitFields tokenizes a definition line on the backslash delimiter,
// dropping empty tokens produced by consecutive delimiters.
func splitFields(line string) []string {
	raw := strings.Split(line, `\`)
	fields := raw[:0]
	for _, f := range raw {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
