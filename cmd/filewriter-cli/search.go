package main

import (
	"os"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <tag> [tag...]",
	Short: "Find files carrying any of the given tags",
	Long: `List the files tagged with at least one of the given tags.

Requires the server to run with metadata enabled.

Examples:
  filewriter-cli search work
  filewriter-cli search work notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Search(cmd.Context(), args)
	if err != nil {
		return err
	}

	return getFormatter().FormatSearch(os.Stdout, result)
}
