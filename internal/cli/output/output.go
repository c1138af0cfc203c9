// Package output renders command results for terminals, scripts, and
// agents. Auto mode picks a styled table on a TTY and markdown when the
// output is piped.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/itemdex/internal/search"
	"github.com/leapstack-labs/itemdex/internal/view"
)

// Mode selects an output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// ParseMode validates a --output flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeTable, "text":
		return ModeTable, nil
	case ModeMarkdown, "md":
		return ModeMarkdown, nil
	case ModeJSON:
		return ModeJSON, nil
	case ModeYAML:
		return ModeYAML, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want auto, table, markdown, json, or yaml)", s)
	}
}

// Resolve maps auto onto a concrete mode for the given writer.
func Resolve(mode Mode, w io.Writer) Mode {
	if mode != ModeAuto {
		return mode
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeTable
	}
	return ModeMarkdown
}

// Matches renders a match list.
func Matches(w io.Writer, matches []search.Match, mode Mode) error {
	switch Resolve(mode, w) {
	case ModeJSON:
		return renderJSON(w, matches)
	case ModeYAML:
		return renderYAML(w, matches)
	case ModeMarkdown:
		return matchesMarkdown(w, matches)
	default:
		return matchesTable(w, matches)
	}
}

// Page renders a paginated view the way the chat platform would show it:
// title, summary, content chunks, then the control row.
func Page(w io.Writer, p *view.Page, mode Mode) error {
	switch Resolve(mode, w) {
	case ModeJSON:
		return renderJSON(w, p)
	case ModeYAML:
		return renderYAML(w, p)
	default:
		return pageText(w, p)
	}
}

// Object renders any result (stats, summaries) structurally.
func Object(w io.Writer, v any, mode Mode) error {
	switch Resolve(mode, w) {
	case ModeYAML:
		return renderYAML(w, v)
	default:
		return renderJSON(w, v)
	}
}

func matchesTable(w io.Writer, matches []search.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "(0 matches)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name"})
	for _, m := range matches {
		t.AppendRow(table.Row{m.ID, m.Name})
	}
	t.Render()

	_, err := fmt.Fprintf(w, "(%d matches)\n", len(matches))
	return err
}

func matchesMarkdown(w io.Writer, matches []search.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "(0 matches)")
		return err
	}

	if _, err := fmt.Fprintln(w, "| ID | Name |\n|---|---|"); err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "| %d | %s |\n", m.ID, m.Name); err != nil {
			return err
		}
	}
	return nil
}

func pageText(w io.Writer, p *view.Page) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", p.Title, p.Summary); err != nil {
		return err
	}
	for _, chunk := range p.Chunks {
		if _, err := fmt.Fprintf(w, "\n%s\n", chunk); err != nil {
			return err
		}
	}
	if len(p.Controls) > 0 {
		labels := make([]string, 0, len(p.Controls))
		for _, c := range p.Controls {
			if c.Disabled && c.Action != view.ActionIndicator {
				continue
			}
			labels = append(labels, c.Label)
		}
		if _, err := fmt.Fprintf(w, "\n[%s]\n", strings.Join(labels, " ")); err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(v)
}
