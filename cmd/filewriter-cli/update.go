package main

import (
	"os"

	"github.com/spf13/cobra"
)

var updateFlags writeFlags

var updateCmd = &cobra.Command{
	Use:   "update <filename> [text]",
	Short: "Overwrite a file, creating it if missing",
	Long: `Overwrite the content of a file. A missing file is created.

Tags are left alone unless --tags is given. Whether the given tags replace
the stored ones depends on the server's tag update policy.

Examples:
  filewriter-cli update notes.txt "new content"
  filewriter-cli update notes.txt -f ./notes.txt --tags work
  filewriter-cli update notes.txt "untagged" --tags ""`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runUpdate,
}

func init() {
	updateFlags.register(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	opts, err := updateFlags.options(cmd, args[1:], cmd.InOrStdin())
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Update(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	return getFormatter().FormatWrite(os.Stdout, result)
}
