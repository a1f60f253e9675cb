// Package cmd provides CLI commands for ernie.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/McNamara84/ernie-go/config"
	"github.com/McNamara84/ernie-go/refdata"
	"github.com/McNamara84/ernie-go/resource"
	"github.com/McNamara84/ernie-go/store"
)

var configFile string

func setupLogger(cfg config.Config) {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = strings.ToUpper(cfg.LogLevel)
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "ernie",
	Short: "Curate and exchange DataCite metadata",
	Long: `Ernie is the curation core of a DataCite metadata editor.

It converts DataCite JSON into an internal resource graph and back out to
DataCite JSON or XML, validates documents against the 4.6 schema rules,
and suggests the next free DOI in an institutional numbering series.

Examples:
  ernie convert -i record.json --to xml -o record.xml
  cat record.json | ernie convert --to json
  ernie validate -i record.json --strict
  ernie suggest 10.5880/GFZ.2023.041`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML)")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(suggestCmd)
}

// loadConfig reads the --config file when given, otherwise returns the
// built-in defaults. The logger is configured as a side effect so every
// command logs at the requested level.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	setupLogger(cfg)
	return cfg, nil
}

// buildRegistry loads the embedded vocabularies and installs the
// configured default publisher, when one is set.
func buildRegistry(cfg config.Config) (*refdata.Registry, error) {
	registry, err := refdata.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	if cfg.DefaultPublisher.Name != "" {
		registry.SetDefaultPublisher(&resource.Publisher{
			Name:             cfg.DefaultPublisher.Name,
			Identifier:       cfg.DefaultPublisher.Identifier,
			IdentifierScheme: cfg.DefaultPublisher.IdentifierScheme,
			SchemeURI:        cfg.DefaultPublisher.SchemeURI,
			Language:         cfg.DefaultPublisher.Language,
		})
	}
	return registry, nil
}

// openStore selects SQLite when a database path is configured and the
// in-memory store otherwise.
func openStore(cfg config.Config) (store.Store, func() error, error) {
	if cfg.DatabasePath == "" {
		return store.NewMemory(), func() error { return nil }, nil
	}
	db, err := store.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return db, db.Close, nil
}
