package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ekristen/libslice/pkg/config"
	"github.com/ekristen/libslice/pkg/definitions"
	"github.com/ekristen/libslice/pkg/docs"
)

// NewDocsCommand creates the docs command
func NewDocsCommand(root *rootOptions) *cobra.Command {
	var (
		files   []string
		options bool
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate a markdown reference of the settings",
		Long: `Generate a markdown reference of every registered setting, grouped by category.

Settings are registered from the definition files of --config and from
--definitions. With --options the keys of the configuration file are
documented instead.

Examples:
  libslice docs --definitions fdmprinter.def.json > settings.md
  libslice docs --options`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options {
				return runDocsOptions(cmd)
			}

			if root.configPath != "" {
				if _, err := root.load(cmd); err != nil {
					return err
				}
			}

			log, err := root.logger(cmd)
			if err != nil {
				return err
			}

			for _, file := range files {
				regs, err := definitions.LoadFile(file)
				if err != nil {
					return err
				}
				definitions.Register(regs, log)
			}

			return docs.GenerateSettings(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVar(&files, "definitions", nil, "JSON setting definition files to document")
	cmd.Flags().BoolVar(&options, "options", false, "Document the keys of the configuration file")

	return cmd
}

func runDocsOptions(cmd *cobra.Command) error {
	opts := docs.GenerateOptionsMap(config.Config{})

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "| Key | Description |")
	fmt.Fprintln(out, "|---|---|")
	for _, k := range keys {
		fmt.Fprintf(out, "| `%s` | %s |\n", k, opts[k])
	}

	return nil
}
