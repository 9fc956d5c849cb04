package main

import (
	"github.com/spf13/cobra"

	"github.com/udisondev/auracore/internal/config"
)

// configFile is the --config flag shared by every subcommand.
var configFile string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "auraserver",
		Short:        "Aura and combat simulation shard",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $"+config.PathEnv+" or "+config.DefaultPath+")")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCatalogCmd())

	return cmd
}

func loadConfig() (config.Server, error) {
	return config.Load(config.ResolvePath(configFile))
}
