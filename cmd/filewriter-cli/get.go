package main

import (
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <filename>",
	Short: "Print a file",
	Long: `Print the content of a file.

Examples:
  filewriter-cli get 1700000000000.txt
  filewriter-cli get -q 1700000000000.txt > out.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	content, err := client.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return getFormatter().FormatGet(os.Stdout, content)
}
