package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filewriter"
)

var importCmd = &cobra.Command{
	Use:   "import [flags] <file1> [file2] ...",
	Short: "Import local text files",
	Long: `Store local text files under their base name, as PUT /files/{filename}
would. Existing files are overwritten unless --no-clobber is set.

Examples:
  # Import two notes
  filewriter import notes/a.txt notes/b.txt

  # Import with tags
  filewriter import --tags work,draft plan.txt

  # Skip files that already exist
  filewriter import --no-clobber *.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var (
	importTags      string
	importNoClobber bool
	importQuiet     bool
)

func init() {
	importCmd.Flags().StringVar(&importTags, "tags", "", "comma-separated tags applied to every imported file")
	importCmd.Flags().BoolVarP(&importNoClobber, "no-clobber", "n", false, "skip existing files instead of overwriting")
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "suppress per-file output")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	var tags []string
	if cmd.Flags().Changed("tags") {
		tags = filewriter.ParseTags(importTags)
	}

	imported := 0
	skipped := 0

	for _, path := range args {
		name := filepath.Base(path)
		if !filewriter.IsValidFilename(name) {
			return fmt.Errorf("import %s: invalid filename %q", path, name)
		}

		if importNoClobber {
			_, getErr := a.service.Get(ctx, name)
			if getErr == nil {
				skipped++
				if !importQuiet {
					slog.Info("skipped (exists)", "filename", name)
				}
				continue
			}
			if !errors.Is(getErr, filewriter.ErrNotFound) {
				return fmt.Errorf("import %s: %w", path, getErr)
			}
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("import %s: %w", path, readErr)
		}
		if !utf8.Valid(data) {
			slog.Warn("file is not valid UTF-8, invalid bytes will be replaced on read", "path", path)
		}

		if _, err := a.service.Update(ctx, name, filewriter.WriteRequest{Text: string(data), Tags: tags}); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}

		imported++
		if !importQuiet {
			slog.Info("imported", "filename", name, "bytes", len(data))
		}
	}

	slog.Info("import complete", "imported", imported, "skipped", skipped)
	return nil
}
