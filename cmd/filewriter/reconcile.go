package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filewriter"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Report objects and tag rows that disagree",
	Long: `Compare the object store with the tag table and report:
  - objects that have no tag rows at all
  - filenames with tag rows but no object

Writes are not transactional across the two stores, so a failure between
the object write and the tag write leaves either kind of gap behind.
With --prune, tag rows of missing objects are deleted. Objects are never
touched.`,
	RunE: runReconcile,
}

var (
	reconcilePrune bool
	reconcileJSON  bool
)

func init() {
	reconcileCmd.Flags().BoolVar(&reconcilePrune, "prune", false, "delete tag rows whose object no longer exists")
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	if !cfg.Metadata.Enabled {
		return fmt.Errorf("reconcile: %w", filewriter.ErrTagsDisabled)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.Reconcile(ctx, reconcilePrune)
	if err != nil {
		return err
	}

	slog.Info("reconcile complete",
		"missing_tags", len(report.MissingTags),
		"orphaned_tags", len(report.OrphanedTags),
		"pruned", report.Pruned,
	)

	return printReport(cmd.OutOrStdout(), report, reconcileJSON)
}

func printReport(w io.Writer, report filewriter.ReconcileReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if len(report.MissingTags) == 0 && len(report.OrphanedTags) == 0 {
		_, err := fmt.Fprintln(w, "object store and tag table agree")
		return err
	}

	for _, name := range report.MissingTags {
		if _, err := fmt.Fprintf(w, "missing tags\t%s\n", name); err != nil {
			return err
		}
	}
	for _, name := range report.OrphanedTags {
		if _, err := fmt.Fprintf(w, "orphaned tags\t%s\n", name); err != nil {
			return err
		}
	}
	if report.Pruned > 0 {
		if _, err := fmt.Fprintf(w, "pruned %d orphaned filename(s)\n", report.Pruned); err != nil {
			return err
		}
	}
	return nil
}
