// Package commands implements the itemdex subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/cli/output"
	"github.com/leapstack-labs/itemdex/internal/config"
	"github.com/leapstack-labs/itemdex/internal/service"
)

// localTenant is the tenant id file-based commands ingest into. The local
// commands run a throwaway single-tenant service; the id never leaves the
// process.
const localTenant = "local"

// CommandContext bundles what every command needs.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Mode   output.Mode
}

// NewCommandContext resolves config, logger, and output mode for a command.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.Current()
	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:    cfg,
		Logger: config.GetLogger(cmd.Context()),
		Mode:   mode,
	}, nil
}

// loadLocalService ingests a local item file into a fresh single-tenant
// service, mirroring exactly what an upload through the router would do.
func (c *CommandContext) loadLocalService(cmd *cobra.Command, path string) (*service.Service, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item file: %w", err)
	}

	svc := service.New(catalog.NewStore(), service.Options{
		MatchLimit: c.Cfg.MatchLimit,
		PageSize:   c.Cfg.PageSize,
		Logger:     c.Logger,
	})

	res, err := svc.Upload(cmd.Context(), localTenant, content)
	if err != nil {
		return nil, err
	}
	if res.Warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", res.Warning)
	}
	if res.Rejected > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d malformed line(s) skipped\n", res.Rejected)
	}
	return svc, nil
}
