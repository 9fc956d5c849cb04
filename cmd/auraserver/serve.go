package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/auracore/internal/config"
	"github.com/udisondev/auracore/internal/game/unit"
	"github.com/udisondev/auracore/internal/logging"
	"github.com/udisondev/auracore/internal/observability"
	"github.com/udisondev/auracore/internal/replication"
	"github.com/udisondev/auracore/internal/world"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation shard",
		Long: `Load the aura catalog and faction table, then tick the world shard
until interrupted. Metrics and health endpoints are served on metrics_addr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Server) error {
	logger := logging.Setup("auraserver", version, cfg.LogFormat, cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	factions, err := cfg.FactionTable()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	// shard is assigned before the observability server starts.
	var shard *world.Shard
	var obs *observability.Server
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obs = observability.NewServer(cfg.MetricsAddr, func() bool { return shard.Ready() })
		metrics = obs.Metrics()
	} else {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	hub := replication.NewHub(logger)
	hub.OnReject = metrics.ReplicationRejected

	env := &unit.Env{
		Catalog:  catalog,
		Factions: factions,
		Recorder: metrics,
		Events:   unit.NewBus(),
		Logger:   logger,
		Strict:   cfg.StrictInvariants,
	}
	w := world.New(env, hub)
	shard = world.NewShard(w, cfg.TickInterval, metrics)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := shard.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if obs != nil {
		errCh, err := obs.Start()
		if err != nil {
			return err
		}
		g.Go(func() error {
			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case <-gctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return obs.Stop(shutdownCtx)
			}
		})
	}

	logger.Info("aura server started",
		"auras", catalog.Len(),
		"factions", factions.Len(),
		"tick_interval", cfg.TickInterval,
		"strict", cfg.StrictInvariants)

	err = g.Wait()
	logger.Info("aura server stopped", "ticks", shard.Ticks())
	return err
}
