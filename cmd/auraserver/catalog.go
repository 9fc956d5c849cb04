package main

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/udisondev/auracore/internal/config"
	"github.com/udisondev/auracore/internal/db"
	"github.com/udisondev/auracore/internal/game/aura"
)

// NewCatalogCmd creates the catalog subcommand.
func NewCatalogCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and list an aura catalog",
		Long: `Load an aura catalog, validate every definition and print one line per aura.
Without --file the catalog source of the config is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				c   *aura.Catalog
				err error
			)
			if file != "" {
				c, err = aura.LoadCatalogFile(file)
			} else {
				var cfg config.Server
				if cfg, err = loadConfig(); err != nil {
					return err
				}
				c, err = loadCatalog(cmd.Context(), cfg)
			}
			if err != nil {
				return err
			}

			for _, id := range c.IDs() {
				info := c.Get(id)
				cmd.Printf("%d\t%s\teffects=%d\tduration_ms=%d\tmax_stack=%d\n",
					info.ID, info.Name, len(info.Effects), info.DurationMs, info.StackLimit())
			}
			cmd.Printf("%d auras OK\n", c.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "catalog YAML file")
	return cmd
}

// loadCatalog reads the catalog from the database when enabled, from the
// configured file otherwise.
func loadCatalog(ctx context.Context, cfg config.Server) (*aura.Catalog, error) {
	if !cfg.Database.Enabled {
		return aura.LoadCatalogFile(cfg.AurasFile)
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	defer database.Close()

	c, err := db.NewAuraRepository(database.Pool()).LoadAll(ctx)
	if err != nil {
		return nil, oops.With("operation", "load aura catalog").Wrap(err)
	}
	slog.Info("aura catalog loaded from database", "auras", c.Len())
	return c, nil
}
