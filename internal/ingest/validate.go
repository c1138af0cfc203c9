package ingest

import (
	"fmt"
	"strings"
)

// Thresholds for the pre-ingestion check. Fewer than minExpectedItems
// definition lines suggests a truncated or hand-edited file.
const minExpectedItems = 5

// Verdict is the outcome of the cheap pre-ingestion validation.
// It is intentionally independent of full parse success: it only counts
// definition lines so obviously wrong uploads are rejected before the
// heavier parse runs.
type Verdict struct {
	Valid   bool
	Reason  string // set when Valid is false
	Warning string // set when the file looks incomplete
}

// Validate inspects raw file content before ingestion.
// Zero definition lines is invalid; one to four is valid with a warning;
// five or more is valid with no warning.
func Validate(content string) Verdict {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), Directive) {
			count++
		}
	}

	switch {
	case count == 0:
		return Verdict{
			Valid:  false,
			Reason: fmt.Sprintf("no %q lines found; this does not look like an item definition file", Directive),
		}
	case count < minExpectedItems:
		return Verdict{
			Valid:   true,
			Warning: fmt.Sprintf("only %d %q line(s) found; the file may be incomplete", count, Directive),
		}
	default:
		return Verdict{Valid: true}
	}
}
