package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekristen/libslice/pkg/config"
	liblog "github.com/ekristen/libslice/pkg/log"
	"github.com/ekristen/libslice/pkg/registry"
	"github.com/ekristen/libslice/pkg/settings"
)

// asString prints the raw value without conversion
const asString = "string"

// converters render a setting through one of the typed accessors
var converters = map[string]func(a settings.Accessors, key string) string{
	"index": func(a settings.Accessors, key string) string {
		return strconv.Itoa(a.GetSettingAsIndex(key))
	},
	"count": func(a settings.Accessors, key string) string {
		return strconv.Itoa(a.GetSettingAsCount(key))
	},
	"mm": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInMillimeters(key))
	},
	"microns": func(a settings.Accessors, key string) string {
		return strconv.Itoa(a.GetSettingInMicrons(key))
	},
	"radians": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInAngleRadians(key))
	},
	"bool": func(a settings.Accessors, key string) string {
		return strconv.FormatBool(a.GetSettingBoolean(key))
	},
	"celsius": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInDegreeCelsius(key))
	},
	"mm/s": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInMillimetersPerSecond(key))
	},
	"mm3": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInCubicMillimeters(key))
	},
	"percent": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInPercentage(key))
	},
	"seconds": func(a settings.Accessors, key string) string {
		return formatFloat(a.GetSettingInSeconds(key))
	},
	"graph": func(a settings.Accessors, key string) string {
		return a.GetSettingAsFlowTempGraph(key).String()
	},
	"gcode-flavor": func(a settings.Accessors, key string) string {
		return a.GetSettingAsGCodeFlavor(key).String()
	},
	"fill-method": func(a settings.Accessors, key string) string {
		return a.GetSettingAsFillMethod(key).String()
	},
	"platform-adhesion": func(a settings.Accessors, key string) string {
		return a.GetSettingAsPlatformAdhesion(key).String()
	},
	"support-type": func(a settings.Accessors, key string) string {
		return a.GetSettingAsSupportType(key).String()
	},
	"z-seam-type": func(a settings.Accessors, key string) string {
		return a.GetSettingAsZSeamType(key).String()
	},
	"surface-mode": func(a settings.Accessors, key string) string {
		return a.GetSettingAsSurfaceMode(key).String()
	},
	"combing-mode": func(a settings.Accessors, key string) string {
		return a.GetSettingAsCombingMode(key).String()
	},
	"support-dist-priority": func(a settings.Accessors, key string) string {
		return a.GetSettingAsSupportDistPriority(key).String()
	},
}

func converterNames() []string {
	names := []string{asString}
	for name := range converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NewGetCommand creates the get command
func NewGetCommand(root *rootOptions) *cobra.Command {
	var (
		scope string
		as    string
	)

	cmd := &cobra.Command{
		Use:   "get <key>...",
		Short: "Resolve settings in a scope",
		Long: `Resolve one or more settings in a scope of the slice job.

Keys may be glob patterns, they are expanded against the registered settings.
With --as the value is converted the way the slicing engine reads it.

Examples:
  # Show the layer height of the second extruder
  libslice get -c job.yaml --scope extruder:1 layer_height

  # Show every speed setting of a mesh
  libslice get -c job.yaml --scope mesh:cube 'speed_*'

  # Read the layer height in microns
  libslice get -c job.yaml layer_height --as microns`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := converters[as]; !ok && as != asString {
				return fmt.Errorf("unknown conversion %s, use one of %s", as, strings.Join(converterNames(), ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.load(cmd)
			if err != nil {
				return err
			}

			return runGet(cmd, c, scope, as, args)
		},
	}

	cmd.Flags().StringVarP(&scope, "scope", "s", config.ScopeGlobal,
		"Scope to resolve in: global, extruder:<n> or mesh:<name>")
	cmd.Flags().StringVar(&as, "as", asString, "Conversion to apply: "+strings.Join(converterNames(), ", "))

	return cmd
}

func runGet(cmd *cobra.Command, c *config.Config, scope, as string, keys []string) error {
	r, err := c.Scope(scope)
	if err != nil {
		return err
	}

	accessors := settings.Access(r)

	for _, key := range registry.ExpandNames(keys) {
		value, ok := settings.Lookup(r, key)
		if !ok {
			fmt.Fprint(cmd.OutOrStdout(), liblog.Line(scope, key, "", liblog.LevelWarn, "not set"))
			continue
		}

		if convert, ok := converters[as]; ok {
			value = convert(accessors, key)
		}

		fmt.Fprint(cmd.OutOrStdout(), liblog.Line(scope, key, value, liblog.LevelInfo, ""))
	}

	return nil
}
