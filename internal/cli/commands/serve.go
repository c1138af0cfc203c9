package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/config"
	"github.com/leapstack-labs/itemdex/internal/server"
	"github.com/leapstack-labs/itemdex/internal/service"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP server",
		Long: `Run the HTTP surface the chat interaction router calls: catalog
upload and delete, substring search, pagination control activation,
catalog summaries, and a /healthz keep-alive endpoint.

Catalogs live in process memory only; a restart starts empty.`,
		Example: `  # Serve on the configured address
  itemdex serve

  # Development: keep a tenant in sync with a local file
  itemdex serve --watch-file ./items.txt --watch-tenant dev`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().String("watch-file", "", "Local item file to re-ingest on change")
	cmd.Flags().String("watch-tenant", "", "Tenant the watched file is ingested into")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	// serve-local flags override the loaded config the same way
	// persistent flags do.
	cfg := config.Current()
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("watch-file"); v != "" {
		cfg.WatchFile = v
	}
	if v, _ := cmd.Flags().GetString("watch-tenant"); v != "" {
		cfg.WatchTenant = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := config.GetLogger(cmd.Context())
	svc := service.New(catalog.NewStore(), service.Options{
		MatchLimit: cfg.MatchLimit,
		PageSize:   cfg.PageSize,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(svc, cfg, logger).Serve(ctx)
}
