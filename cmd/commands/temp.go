package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekristen/libslice/pkg/config"
	liblog "github.com/ekristen/libslice/pkg/log"
	"github.com/ekristen/libslice/pkg/settings"
)

const (
	keyFlowTempGraph     = "material_flow_temp_graph"
	keyPrintTemperature  = "material_print_temperature"
	keyFlowDependentTemp = "material_flow_dependent_temperature"
	defaultTempScope     = "extruder:0"
)

// NewTempCommand creates the temp command
func NewTempCommand(root *rootOptions) *cobra.Command {
	var (
		scope string
		flows []float64
	)

	cmd := &cobra.Command{
		Use:   "temp",
		Short: "Show the printing temperature for a flow",
		Long: `Show the printing temperature an extruder uses for the given flows (mm3/s).

When material_flow_dependent_temperature is enabled the temperature is
interpolated on material_flow_temp_graph, otherwise material_print_temperature
is used.

Examples:
  libslice temp -c job.yaml --scope extruder:1 --flow 2.5,5,10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.load(cmd)
			if err != nil {
				return err
			}

			return runTemp(cmd, c, scope, flows)
		},
	}

	cmd.Flags().StringVarP(&scope, "scope", "s", defaultTempScope, "Scope to resolve in")
	cmd.Flags().Float64SliceVar(&flows, "flow", []float64{0}, "Flows to look up, in mm3/s")

	return cmd
}

func runTemp(cmd *cobra.Command, c *config.Config, scope string, flows []float64) error {
	r, err := c.Scope(scope)
	if err != nil {
		return err
	}

	a := settings.Access(r)
	graph := a.GetSettingAsFlowTempGraph(keyFlowTempGraph)
	temp := a.GetSettingInDegreeCelsius(keyPrintTemperature)
	dependent := a.GetSettingBoolean(keyFlowDependentTemp)

	for _, flow := range flows {
		fmt.Fprint(cmd.OutOrStdout(), liblog.Line(
			scope,
			fmt.Sprintf("flow %s", formatFloat(flow)),
			formatFloat(graph.GetTemp(flow, temp, dependent)),
			liblog.LevelInfo, ""))
	}

	return nil
}
