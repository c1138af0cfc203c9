// Package view renders query results into paginated display payloads and
// the interactive controls that drive navigation. No page state lives on
// the server: everything a later control activation needs is embedded in
// the control ids and the page-indicator label rendered here.
package view

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/search"
)

// Defaults for page geometry. ChunkLimit matches the field-length ceiling
// of the downstream chat platform; a chunk never exceeds it and a result
// line is never split across chunks.
const (
	DefaultPageSize = 10
	ChunkLimit      = 1024
)

// Context is the query context a page was rendered from. It rides along
// inside control ids so a later activation can re-run the query.
type Context struct {
	Query    string
	Category catalog.Category
}

// Page is a fully rendered result page.
type Page struct {
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Chunks     []string  `json:"chunks,omitempty"`
	Controls   []Control `json:"controls,omitempty"`
}

// Render slices matches into pages of pageSize and renders the requested
// page. An out-of-range page clamps into [1, totalPages]; an empty match
// set still renders one "no results" page. Controls are emitted only when
// there is more than one page.
func Render(matches []search.Match, page, pageSize int, vc Context) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(matches) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page = Clamp(page, totalPages)

	p := Page{
		Page:       page,
		TotalPages: totalPages,
		Title:      title(vc),
		Summary:    fmt.Sprintf("%d matches - page %d of %d", len(matches), page, totalPages),
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}
	if start < len(matches) {
		p.Chunks = chunkLines(matches[start:end])
	}

	if totalPages > 1 {
		p.Controls = navControls(page, totalPages, vc)
	}
	return p
}

// Clamp forces a requested page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func title(vc Context) string {
	if vc.Category == catalog.CategoryAll || vc.Category == "" {
		return fmt.Sprintf("Results for %q", vc.Query)
	}
	return fmt.Sprintf("Results for %q (%ss)", vc.Query, string(vc.Category))
}

// chunkLines renders `• <id> - <name>` lines, starting a new chunk
// whenever appending the next line would push the current chunk past
// ChunkLimit.
func chunkLines(matches []search.Match) []string {
	var (
		chunks []string
		cur    strings.Builder
	)
	for _, m := range matches {
		line := fmt.Sprintf("• %d - %s", m.ID, m.Name)
		if cur.Len() > 0 && cur.Len()+1+len(line) > ChunkLimit {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func navControls(page, totalPages int, vc Context) []Control {
	onFirst := page == 1
	onLast := page == totalPages

	return []Control{
		{ID: EncodeControlID(ActionFirst, vc), Action: ActionFirst, Label: "«", Disabled: onFirst},
		{ID: EncodeControlID(ActionPrev, vc), Action: ActionPrev, Label: "‹", Disabled: onFirst},
		{Action: ActionIndicator, Label: FormatIndicator(page, totalPages), Disabled: true},
		{ID: EncodeControlID(ActionNext, vc), Action: ActionNext, Label: "›", Disabled: onLast},
		{ID: EncodeControlID(ActionLast, vc), Action: ActionLast, Label: "»", Disabled: onLast},
	}
}

// Transition applies a navigation action to the current page number.
// The result is always within [1, totalPages].
func Transition(action Action, current, totalPages int) int {
	switch action {
	case ActionFirst:
		return 1
	case ActionPrev:
		return Clamp(current-1, totalPages)
	case ActionNext:
		return Clamp(current+1, totalPages)
	case ActionLast:
		return totalPages
	default:
		return Clamp(current, totalPages)
	}
}
