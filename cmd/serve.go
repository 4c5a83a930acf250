package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pdf-rag/internal/server"
	"pdf-rag/internal/session"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Starts an HTTP server with a page for uploading PDF files and asking
questions, plus a JSON API under /api/v1. Every browser gets its own
session; an idle session is dropped together with its index.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg.Server, session.NewStore(pipeline, cfg.Server.SessionTTL))
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
