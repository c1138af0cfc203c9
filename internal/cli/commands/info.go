package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/itemdex/internal/cli/output"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a local item file",
		Long: `Ingest a local item file and print its catalog summary: total and
per-kind counts plus the first few entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	svc, err := cmdCtx.loadLocalService(cmd, path)
	if err != nil {
		return err
	}

	sum, err := svc.Info(cmd.Context(), localTenant)
	if err != nil {
		return err
	}

	mode := output.Resolve(cmdCtx.Mode, cmd.OutOrStdout())
	if mode == output.ModeJSON || mode == output.ModeYAML {
		return output.Object(cmd.OutOrStdout(), sum, mode)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%d items (%d blocks, %d seeds)\n", sum.Total, sum.Blocks, sum.Seeds)
	if len(sum.Samples) > 0 {
		_, _ = fmt.Fprintln(w, "first entries:")
	}
	return output.Matches(w, sum.Samples, cmdCtx.Mode)
}
