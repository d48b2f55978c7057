package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mediadesk/internal/config"
	"mediadesk/internal/logging"
	"mediadesk/internal/observability"
	serverhttp "mediadesk/internal/server/http"
	"mediadesk/internal/store"
)

func newServeCommand() *cobra.Command {
	var noSeed bool
	var chunkDelay time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, !noSeed, chunkDelay)
		},
	}

	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Start with an empty catalog")
	cmd.Flags().DurationVar(&chunkDelay, "chunk-delay", 40*time.Millisecond, "Delay between generation snapshots")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, seed bool, chunkDelay time.Duration) error {
	logger := logging.NewComponentLogger("Serve")
	metrics := observability.New()

	st := store.New()
	if seed {
		if err := store.Seed(st); err != nil {
			return err
		}
	}

	srv := serverhttp.New(cfg.Server, st,
		serverhttp.WithLogger(logging.NewComponentLogger("HTTPServer")),
		serverhttp.WithMetrics(metrics),
		serverhttp.WithGenerator(serverhttp.NewRewriteGenerator(chunkDelay)),
	)

	banner := color.New(color.FgCyan, color.Bold).SprintFunc()
	color.Cyan("mediadesk")
	logger.Info("%s", banner("catalog API on http://"+cfg.Server.Addr()))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(srv.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
