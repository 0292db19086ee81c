package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filewriter"
	"github.com/sagarc03/filewriter/config"
	fwhttp "github.com/sagarc03/filewriter/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the filewriter HTTP API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port (env: PORT)")
	serveCmd.Flags().String("root", "static", "what GET / serves: static, listing")
	serveCmd.Flags().String("tag-update", "keep", "tags on update without tags: keep, replace")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := ensureBucket(ctx, a.store, cfg.Storage.Bucket, cfg.Storage.BucketRequired); err != nil {
		return err
	}

	rootMode, err := filewriter.ParseRootMode(cfg.Server.Root)
	if err != nil {
		return fmt.Errorf("parse root mode: %w", err)
	}

	handlerConfig := fwhttp.HandlerConfig{
		RootMode:    rootMode,
		MaxBodySize: cfg.Server.MaxBodySize,
		CORS:        corsConfig(cfg.CORS),
	}

	handler := fwhttp.NewHandler(&handlerConfig, a.service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"storage", cfg.Storage.Type,
		"bucket", cfg.Storage.Bucket,
		"tags", a.service.TagsEnabled(),
		"root", rootMode,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func corsConfig(c config.CORSConfig) fwhttp.CORSConfig {
	return fwhttp.CORSConfig{
		Enabled:          c.Enabled,
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   c.AllowedMethods,
		AllowedHeaders:   c.AllowedHeaders,
		ExposedHeaders:   c.ExposedHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}
}
