package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/itemdex/internal/cli/output"
	"github.com/leapstack-labs/itemdex/internal/ingest"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate and parse a local item file",
		Long: `Run the pre-ingestion check and the full parser against a local
item file, reporting what an upload of it would do.`,
		Example: `  itemdex validate items.txt
  itemdex validate items.txt --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

// validateReport is the structured result of a validate run.
type validateReport struct {
	Valid    bool   `json:"valid" yaml:"valid"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Warning  string `json:"warning,omitempty" yaml:"warning,omitempty"`
	Scanned  int    `json:"scanned" yaml:"scanned"`
	Accepted int    `json:"accepted" yaml:"accepted"`
	Rejected int    `json:"rejected" yaml:"rejected"`
}

func runValidate(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read item file: %w", err)
	}

	verdict := ingest.Validate(string(content))
	report := validateReport{
		Valid:   verdict.Valid,
		Reason:  verdict.Reason,
		Warning: verdict.Warning,
	}
	if verdict.Valid {
		_, stats := ingest.Parse(string(content))
		report.Scanned = stats.Scanned
		report.Accepted = stats.Accepted
		report.Rejected = stats.Rejected
	}

	mode := output.Resolve(cmdCtx.Mode, cmd.OutOrStdout())
	if mode == output.ModeJSON || mode == output.ModeYAML {
		return output.Object(cmd.OutOrStdout(), report, mode)
	}

	w := cmd.OutOrStdout()
	if !report.Valid {
		_, _ = fmt.Fprintf(w, "invalid: %s\n", report.Reason)
		return nil
	}
	_, _ = fmt.Fprintf(w, "valid: %d line(s) scanned, %d accepted, %d rejected\n",
		report.Scanned, report.Accepted, report.Rejected)
	if report.Warning != "" {
		_, _ = fmt.Fprintf(w, "warning: %s\n", report.Warning)
	}
	return nil
}
