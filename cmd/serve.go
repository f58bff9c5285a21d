package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codemindhq/codemind/internal/aiengine"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/internal/githubfetch"
	"github.com/codemindhq/codemind/internal/webserver"
)

const shutdownGrace = 10 * time.Second

// serveCmd runs the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CodeMind HTTP API server.",
	Long: `Serve the analysis, suggestion and feedback endpoints over HTTP.

Endpoints:
  POST /api/analyze-files  - Analyze uploaded source files
  POST /api/analyze-github - Analyze a GitHub account
  POST /api/suggest        - Style-matched code suggestion
  POST /api/feedback       - Record suggestion feedback
  GET  /api/profile/{owner} - Fetch a stored profile
  GET  /api/health         - Health check

Examples:
  # Serve on the default port
  codemind serve

  # Serve on a custom port
  codemind serve --port 9000`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		fetcher := githubfetch.New(cfg)

		// The suggestion endpoint is optional; the rest of the API works
		// without a Gemini key.
		var suggester contract.Suggester
		engine, err := aiengine.NewEngine(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			contract.LogWarn("suggestion engine unavailable", err)
		} else {
			suggester = engine
		}

		api := webserver.NewAPI(cfg, store, fetcher, suggester)
		srv := webserver.New(cfg.ServerPort, webserver.NewRouter(api))

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("CodeMind API listening on :%d\n", cfg.ServerPort)
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				contract.LogFatal("Server failed", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				contract.LogFatal("Server shutdown failed", err)
			}
			fmt.Println("Server stopped.")
		}
	},
}
