package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flightdeck-app/flightdeck/internal/config"
	"github.com/flightdeck-app/flightdeck/internal/store"
)

var version = "dev"

var (
	configFile   string
	configSets   []string
	dbPath       string
	debugLogging bool
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flightdeck",
		Short: "Flightdeck - presentation analysis and scoring",
		Long: `Flightdeck scores presentation training sessions across three channels:
slide content, speech delivery, and audience-facing engagement.

Slide decks are chunked and classified by an inference service, recordings
are transcribed and measured, and gaze captures are reduced to an attention
score. Finished sessions combine all three into one training score.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile, "Scoring config file")
	cmd.PersistentFlags().StringArrayVar(&configSets, "set", nil, "Override a config value (dotted.key=value, can be repeated)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", store.DefaultDBFile, "SQLite database file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		// Optional .env for the inference API key.
		_ = godotenv.Load()
	}

	cmd.AddCommand(newSlidesCommand())
	cmd.AddCommand(newRecordingCommand())
	cmd.AddCommand(newGazeCommand())
	cmd.AddCommand(newSessionCommand())
	cmd.AddCommand(newProgressCommand())
	cmd.AddCommand(newPresentationCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig builds the effective ScoreConfig from file and --set overrides,
// printing validation warnings to stderr.
func loadConfig() (*config.ScoreConfig, error) {
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(configSets); err != nil {
		return nil, err
	}
	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "[WARN] %s\n", w)
	}
	return cfg, nil
}
