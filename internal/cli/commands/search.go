package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/cli/output"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <file> <query>...",
		Short: "Search a local item file",
		Long: `Ingest a local item file and run a query against it, rendering the
result page the way the chat surface would.`,
		Example: `  itemdex search items.txt oak
  itemdex search items.txt wheat seeds --category seed
  itemdex search items.txt stone --page 2 --output json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().String("category", "all", "Category filter (all|block|seed)")
	cmd.Flags().Int("page", 1, "Page to render")

	return cmd
}

func runSearch(cmd *cobra.Command, path, query string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	rawCat, _ := cmd.Flags().GetString("category")
	cat, err := catalog.ParseCategory(rawCat)
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")

	svc, err := cmdCtx.loadLocalService(cmd, path)
	if err != nil {
		return err
	}

	result, err := svc.Search(cmd.Context(), localTenant, query, cat, page)
	if err != nil {
		return err
	}
	return output.Page(cmd.OutOrStdout(), result, cmdCtx.Mode)
}
