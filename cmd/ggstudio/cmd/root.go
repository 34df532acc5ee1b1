package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	studio "github.com/gogpu/gg-studio"
	"github.com/gogpu/gg-studio/credential"
	"github.com/gogpu/gg-studio/internal/config"
)

var (
	// Global flags
	verbose bool
	dbPath  string

	cfg = config.Load()
)

var rootCmd = &cobra.Command{
	Use:   "ggstudio",
	Short: "AI-assisted design studio",
	Long: `Serve the design studio API, render saved designs offline, and manage
the Gemini API key.

Examples:
  ggstudio serve --port 3000                         # Start the local API
  ggstudio validate-key AIza...                      # Check and store a key
  ggstudio erase flyer.png -o clean.png              # Remove all text
  ggstudio render design.json --image clean.png      # Flatten a saved design`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		studio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "settings database path")
}

// storedKey returns flagKey when set, otherwise the persisted key.
func storedKey(ctx context.Context, flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	store, err := credential.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()
	key, err := store.APIKey(ctx)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("%w: run ggstudio validate-key first", studio.ErrMissingCredential)
	}
	return key, nil
}
