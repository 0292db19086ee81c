package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filewriter"
)

var removeCmd = &cobra.Command{
	Use:   "remove [flags] <filename1> [filename2] ...",
	Short: "Remove files and their tags",
	Long: `Delete files from the object store and drop their tag rows, as
DELETE /files/{filename} would.

Examples:
  # Remove a single file
  filewriter remove 1700000000000.txt

  # Remove multiple files
  filewriter remove a.txt b.txt c.txt

  # Remove every file carrying any of the given tags
  filewriter remove --tagged draft,scratch

  # Remove quietly (suppress per-file output)
  filewriter remove -q a.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

var (
	removeTagged bool
	removeQuiet  bool
)

func init() {
	removeCmd.Flags().BoolVar(&removeTagged, "tagged", false, "treat arguments as tags and remove every file carrying one of them")
	removeCmd.Flags().BoolVarP(&removeQuiet, "quiet", "q", false, "suppress per-file output")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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

	filenames := args
	if removeTagged {
		var tags []string
		for _, arg := range args {
			tags = append(tags, filewriter.ParseTags(arg)...)
		}

		filenames, err = a.service.Search(ctx, tags)
		if err != nil {
			return fmt.Errorf("find tagged files: %w", err)
		}
	}

	removed, notFound, err := removeFiles(ctx, a.service, filenames)
	slog.Info("remove complete", "removed", removed, "not_found", notFound)
	return err
}

// removeFiles deletes each filename, counting the ones already gone.
func removeFiles(ctx context.Context, service *filewriter.FileService, filenames []string) (removed, notFound int, err error) {
	for _, name := range filenames {
		deleteErr := service.Delete(ctx, name)
		if errors.Is(deleteErr, filewriter.ErrNotFound) {
			notFound++
			if !removeQuiet {
				slog.Warn("not found", "filename", name)
			}
			continue
		}
		if deleteErr != nil {
			return removed, notFound, fmt.Errorf("remove %s: %w", name, deleteErr)
		}

		removed++
		if !removeQuiet {
			slog.Info("removed", "filename", name)
		}
	}

	return removed, notFound, nil
}
