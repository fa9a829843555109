package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ekristen/libslice/pkg/config"
	"github.com/ekristen/libslice/pkg/filter"
	liblog "github.com/ekristen/libslice/pkg/log"
)

// NewDumpCommand creates the dump command
func NewDumpCommand(root *rootOptions) *cobra.Command {
	var (
		scopes  []string
		hide    []string
		compact bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every setting visible in a scope",
		Long: `Print every setting visible in one or more scopes of the slice job, the value
closest to the scope wins. Settings matched by the filters of the configuration
or by --hide are left out.

Examples:
  # Dump every scope
  libslice dump -c job.yaml

  # Dump an extruder without the machine settings
  libslice dump -c job.yaml --scope extruder:0 --hide 'machine_*'

  # Dump a mesh as YAML
  libslice dump -c job.yaml --scope mesh:cube -o yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.load(cmd)
			if err != nil {
				return err
			}

			// Every pattern is its own group, a setting is hidden when any of them matches
			for _, pattern := range hide {
				f := filter.NewGlobFilter(pattern)
				f.Group = "hide:" + pattern
				c.Filters = appendFilter(c.Filters, f)
			}

			if len(scopes) == 0 {
				scopes = c.Scopes()
			}

			if OutputFormat(output) != FormatText {
				return runDumpStructured(cmd, c, scopes, output)
			}

			return runDump(cmd, c, scopes, compact)
		},
	}

	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", nil, "Scopes to dump, defaults to every scope")
	cmd.Flags().StringSliceVar(&hide, "hide", nil, "Glob patterns of setting keys to leave out")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print each scope on a single line")
	cmd.Flags().StringVarP(&output, "output", "o", string(FormatText), "Output format: text, json or yaml")

	return cmd
}

func appendFilter(f filter.Filters, flt filter.Filter) filter.Filters {
	if f == nil {
		f = make(filter.Filters)
	}
	f.Append(filter.Filters{filter.Global: {flt}})
	return f
}

func runDump(cmd *cobra.Command, c *config.Config, scopes []string, compact bool) error {
	out := cmd.OutOrStdout()

	for _, scope := range scopes {
		values, err := c.Dump(scope)
		if err != nil {
			return err
		}

		if compact {
			fmt.Fprintf(out, "%s - %s\n", liblog.ColorScope.Sprint(scope), liblog.Sorted(values))
			continue
		}

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprint(out, liblog.Line(scope, k, values[k], liblog.LevelInfo, ""))
		}
	}

	return nil
}

func runDumpStructured(cmd *cobra.Command, c *config.Config, scopes []string, format string) error {
	results := make(map[string]map[string]string, len(scopes))

	for _, scope := range scopes {
		values, err := c.Dump(scope)
		if err != nil {
			return err
		}
		results[scope] = values
	}

	return outputResults(cmd.OutOrStdout(), format, results)
}
