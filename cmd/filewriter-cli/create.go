package main

import (
	"os"

	"github.com/spf13/cobra"
)

var createFlags writeFlags

var createCmd = &cobra.Command{
	Use:   "create [text]",
	Short: "Store text under a new generated filename",
	Long: `Store text as a new file. The server picks the filename.

Examples:
  filewriter-cli create "hello world"
  filewriter-cli create "meeting notes" --tags work,notes
  echo "from stdin" | filewriter-cli create -f -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createFlags.register(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	opts, err := createFlags.options(cmd, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Create(cmd.Context(), opts)
	if err != nil {
		return err
	}

	return getFormatter().FormatWrite(os.Stdout, result)
}
