package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrArnoldPalmer/delivlib/pkg/cli/config"
	controller "github.com/MrArnoldPalmer/delivlib/pkg/controller/http"
	"github.com/MrArnoldPalmer/delivlib/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		pipelineCfg config.Pipelines
		serverCfg   config.Server
		githubCfg   config.GitHub
	)

	flags := append(pipelineCfg.Flags(), serverCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Synthesize definitions and answer webhook trigger queries over HTTP",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			doc, err := pipelineCfg.Load()
			if err != nil {
				return err
			}

			reqs, err := doc.Requests()
			if err != nil {
				return err
			}

			// Synthesize once at startup; the evaluator answers
			// queries against this snapshot.
			defs, err := usecase.NewSynth().Synthesize(ctx, reqs)
			if err != nil {
				return goerr.Wrap(err, "failed to synthesize definitions")
			}

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				usecase.NewTrigger(defs),
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting",
					slog.String("addr", serverCfg.Addr),
					slog.Int("pipelines", len(defs)),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
