package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/cli/output"
	"github.com/leapstack-labs/itemdex/internal/service"
	"github.com/leapstack-labs/itemdex/internal/view"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl <file>",
		Short: "Interactively search a local item file",
		Long: `Ingest a local item file and iterate on queries in a readline loop.
Page navigation goes through the same control round-trip the chat
surface uses, so browsing behaves exactly like the live bot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, args[0])
		},
	}
}

// replState is what the loop carries between inputs. Navigation does not
// read page numbers from here: it replays the control id and indicator
// label of the last rendered page, same as a remote activation would.
type replState struct {
	category catalog.Category
	query    string
	page     *view.Page
}

func runRepl(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	svc, err := cmdCtx.loadLocalService(cmd, path)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "itemdex> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem(".category",
				readline.PcItem("all"), readline.PcItem("block"), readline.PcItem("seed")),
			readline.PcItem(".id"),
			readline.PcItem(".info"),
			readline.PcItem(".next"), readline.PcItem(".prev"),
			readline.PcItem(".first"), readline.PcItem(".last"),
			readline.PcItem(".help"), readline.PcItem(".quit"),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "itemdex REPL (%s)\n", path)
	_, _ = fmt.Fprintln(w, "Type a query to search, .help for commands, .quit to exit")

	state := replState{category: catalog.CategoryAll}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, svc, &state, line, cmdCtx.Mode); quit {
				return nil
			}
			continue
		}

		state.query = line
		page, err := svc.Search(cmd.Context(), localTenant, line, state.category, 1)
		if err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		state.page = page
		_ = output.Page(w, page, cmdCtx.Mode)
	}
}

// handleDotCommand processes a REPL dot-command. Returns true on quit.
func handleDotCommand(cmd *cobra.Command, svc *service.Service, state *replState, line string, mode output.Mode) bool {
	w := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case ".quit", ".exit":
		return true

	case ".help":
		_, _ = fmt.Fprintln(w, `commands:
  <query>           search the catalog
  .category <c>     set category filter (all, block, seed)
  .id <n>           look up one item by id
  .info             catalog summary
  .next .prev .first .last
                    navigate the last result set
  .quit             exit`)

	case ".category":
		if len(fields) != 2 {
			_, _ = fmt.Fprintln(w, "usage: .category all|block|seed")
			return false
		}
		cat, err := catalog.ParseCategory(fields[1])
		if err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
			return false
		}
		state.category = cat
		_, _ = fmt.Fprintf(w, "category: %s\n", cat)

	case ".id":
		if len(fields) != 2 {
			_, _ = fmt.Fprintln(w, "usage: .id <number>")
			return false
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			_, _ = fmt.Fprintln(w, "error: id must be an integer")
			return false
		}
		item, err := svc.Lookup(cmd.Context(), localTenant, id)
		if err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(w, "%d - %s (%s)\n", item.ID, item.Name, item.Kind)

	case ".info":
		sum, err := svc.Info(cmd.Context(), localTenant)
		if err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(w, "%d items (%d blocks, %d seeds)\n", sum.Total, sum.Blocks, sum.Seeds)

	case ".next", ".prev", ".first", ".last":
		navigate(cmd, svc, state, view.Action(strings.TrimPrefix(fields[0], ".")), mode)

	default:
		_, _ = fmt.Fprintf(w, "unknown command %s (.help for help)\n", fields[0])
	}
	return false
}

// navigate replays a control activation against the last rendered page.
func navigate(cmd *cobra.Command, svc *service.Service, state *replState, action view.Action, mode output.Mode) {
	w := cmd.OutOrStdout()
	if state.page == nil || len(state.page.Controls) == 0 {
		_, _ = fmt.Fprintln(w, "nothing to navigate; run a multi-page query first")
		return
	}

	var controlID, indicator string
	for _, c := range state.page.Controls {
		if c.Action == action {
			controlID = c.ID
		}
		if c.Action == view.ActionIndicator {
			indicator = c.Label
		}
	}
	if controlID == "" || indicator == "" {
		_, _ = fmt.Fprintln(w, "no such control on the current page")
		return
	}

	act, err := svc.Activate(cmd.Context(), localTenant, controlID, indicator)
	if err != nil {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if act.NoOp {
		_, _ = fmt.Fprintln(w, "(already there)")
		return
	}
	state.page = act.Page
	_ = output.Page(w, act.Page, mode)
}
