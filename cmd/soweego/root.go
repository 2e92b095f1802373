package main

import (
	"fmt"
	"os"

	"github.com/soweego-go/soweego/internal/ioconfig"
	"github.com/soweego-go/soweego/pkg/config"
	"github.com/soweego-go/soweego/pkg/logger"
	"github.com/spf13/cobra"
)

var cfgFile string

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soweego",
		Short: "soweego links and validates a knowledge base against authority catalogs",
		Long: `soweego synchronizes a large authority knowledge base with external
identity catalogs (Discogs, IMDb, MusicBrainz and friends). It builds a
probabilistic record-linkage pipeline -- dataset construction, blocking,
feature extraction, classification, evaluation -- and validates existing
links against the catalogs through three checks: dead identifiers,
broken/missing external links, and disagreeing biographical data.

Configuration is managed through a soweego.yaml file, environment
variables (with SOWEEGO_ prefix), and command-line flags.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./soweego.yaml or ~/.config/soweego/soweego.yaml)")

	rootCmd.AddCommand(
		getImportCmd(),
		getLinkerCmd(),
		getSyncCmd(),
		getIngestCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		exists, err := ioconfig.ConfigFileExists()
		if err != nil {
			return BootstrapError("check config file", err)
		}
		if !exists {
			if generatedPath, err := ioconfig.GenerateDefaultConfig(); err != nil {
				fmt.Printf("Warning: could not generate config file: %v\n", err)
			} else {
				fmt.Printf("Generated default config at: %s\n", generatedPath)
			}
		}
	}

	result, err := ioconfig.Load(cfgFile)
	if err != nil {
		return BootstrapError("load configuration", err)
	}
	cfg = result.Config

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return BootstrapError("resolve home directory", err)
	}
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	logDir := ""
	if cfg.Log.Destination == "file" {
		logDir = config.LogDir(cfg.HomeDir)
	}
	log = logger.New(&cfg.Log, logDir)

	switch result.Source {
	case "file":
		log.Info("config loaded", "source", "file", "path", result.SourcePath)
	case "defaults+env":
		log.Info("config loaded", "source", "defaults with environment overrides")
	default:
		log.Info("config loaded", "source", "built-in defaults")
	}

	return nil
}
