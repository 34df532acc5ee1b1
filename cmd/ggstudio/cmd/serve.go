package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	studio "github.com/gogpu/gg-studio"
	"github.com/gogpu/gg-studio/ai"
	"github.com/gogpu/gg-studio/credential"
	"github.com/gogpu/gg-studio/server"
)

var (
	servePort  string
	serveModel string
	fontDir    string
	accessLog  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local studio API",
	Long: `Start the HTTP API serving one editing session.

The API key and model chosen in a previous run are restored from the
settings database.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", cfg.Port, "listen port")
	serveCmd.Flags().StringVar(&serveModel, "model", cfg.Model, "default Gemini model id")
	serveCmd.Flags().StringVar(&fontDir, "fonts", cfg.FontDir, "directory with catalog font files")
	serveCmd.Flags().BoolVar(&accessLog, "access-log", !cfg.Production(), "log every request")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveModel != "" {
		if _, ok := ai.Lookup(serveModel); !ok {
			return fmt.Errorf("unknown model %q", serveModel)
		}
	}

	fonts, err := loadFonts(fontDir)
	if err != nil {
		return err
	}

	store, err := credential.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(
		server.WithSettings(store),
		server.WithModel(serveModel),
		server.WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout),
		server.WithClientOptions(ai.WithTimeout(cfg.AITimeout)),
		server.WithSessionOptions(studio.WithFonts(fonts)),
		server.WithAccessLog(accessLog),
	)
	if err := srv.LoadSettings(cmd.Context()); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(":" + servePort) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errc:
		return err
	case <-sig:
	}

	studio.Logger().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func loadFonts(dir string) (*studio.FontCatalog, error) {
	fonts := studio.NewFontCatalog()
	if dir == "" {
		return fonts, nil
	}
	n, err := fonts.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	studio.Logger().Info("fonts loaded", "dir", dir, "count", n)
	return fonts, nil
}
