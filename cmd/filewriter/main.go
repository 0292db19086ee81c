package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filewriter/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "filewriter",
	Short:   "Text file API backed by S3 with optional tags",
	Long: `filewriter stores free-text files in an S3-compatible bucket (or a
local directory) and can annotate each file with tags kept in
PostgreSQL or SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path(s), merged left to right (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("storage-type", "", "object store: s3, filesystem (env: FILEWRITER_STORAGE_TYPE)")
	rootCmd.PersistentFlags().String("storage-path", "", "directory for the filesystem store (env: FILEWRITER_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket name (env: S3_BUCKET_NAME)")
	rootCmd.PersistentFlags().Bool("metadata", true, "enable tags (env: FILEWRITER_METADATA_ENABLED)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: postgres, sqlite (env: FILEWRITER_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
