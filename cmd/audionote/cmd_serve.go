package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-note/internal/acquire"
	"github.com/nguyentantai21042004/audio-note/internal/session"
	"github.com/nguyentantai21042004/audio-note/internal/webapi"
)

// shutdownTimeout bounds the drain of in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the HTTP API",
		Long: `Host the HTTP API: POST /api/process/video downloads the audio of a
video synchronously, GET /api/history lists recent downloads and
GET /health reports liveness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := buildApp(ctx, *configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			runCtx, cancel := signalContext(ctx, a.logger)
			defer cancel()

			return runServer(runCtx, a)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// runServer hosts the web API until the context is cancelled or the listener
// fails.
func runServer(ctx context.Context, a *app) error {
	log := a.logger

	factory := func(downloadDir string) (acquire.Acquirer, error) {
		if downloadDir == "" {
			return acquire.New(a.downloader, a.store, log), nil
		}
		// Per-request download dir: a dedicated store sharing the history file.
		store := session.New(downloadDir, a.cfg.Paths.HistoryFile, log)
		return acquire.New(a.downloader, store, log), nil
	}

	srv := webapi.NewServer(a.cfg.Server.Addr, factory, a.store, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(context.Background(), "Shutdown error: %v", err)
		}
		return nil
	case err := <-errChan:
		return err
	}
}
