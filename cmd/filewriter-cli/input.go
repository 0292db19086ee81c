package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sagarc03/filewriter/clientcli"
	"github.com/spf13/cobra"
)

// writeFlags are shared by create and update.
type writeFlags struct {
	file string
	tags []string
}

func (f *writeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", `read text from a file ("-" for stdin)`)
	cmd.Flags().StringSliceVarP(&f.tags, "tags", "t", nil, "comma-separated tags")
}

// options builds the request from a positional text argument or --file.
// Tags are only sent when --tags was given, so an empty --tags="" clears them.
func (f *writeFlags) options(cmd *cobra.Command, args []string, stdin io.Reader) (clientcli.WriteOptions, error) {
	var opts clientcli.WriteOptions

	switch {
	case len(args) > 0 && f.file != "":
		return opts, errors.New("pass text as an argument or with --file, not both")
	case len(args) > 0:
		opts.Text = args[0]
	case f.file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return opts, fmt.Errorf("read stdin: %w", err)
		}
		opts.Text = string(data)
	case f.file != "":
		data, err := os.ReadFile(filepath.Clean(f.file)) //#nosec G304 -- path is user-provided input file
		if err != nil {
			return opts, fmt.Errorf("read %s: %w", f.file, err)
		}
		opts.Text = string(data)
	}

	if cmd.Flags().Changed("tags") {
		opts.Tags = make([]string, 0, len(f.tags))
		for _, t := range f.tags {
			if t != "" {
				opts.Tags = append(opts.Tags, t)
			}
		}
	}

	return opts, nil
}
