package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the bucket and tag table",
	Long: `Create the configured bucket if it does not exist and, when tags are
enabled, create the tag table and its indexes, then validate the schema.
Both steps are idempotent. Unlike serve, a bucket failure here is always
fatal.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := ensureBucket(ctx, a.store, cfg.Storage.Bucket, true); err != nil {
		return err
	}

	slog.Info("initialization complete",
		"storage", cfg.Storage.Type,
		"bucket", cfg.Storage.Bucket,
		"tags", a.service.TagsEnabled(),
	)
	return nil
}
