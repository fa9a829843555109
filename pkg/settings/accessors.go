package settings

import (
	"io"
	"math"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/ekristen/libslice/pkg/types"
	"github.com/ekristen/libslice/pkg/utils"
)

// Accessors converts the raw string settings of a Resolver into typed values. None of the conversions fail, values
// that cannot be parsed become zero, false or the default category of an enumeration.
type Accessors struct {
	resolver Resolver
}

// Access returns the typed accessors for r
func Access(r Resolver) Accessors {
	return Accessors{resolver: r}
}

func (a Accessors) logger() *logrus.Entry {
	if l, ok := a.resolver.(logged); ok {
		if entry := l.Logger(); entry != nil {
			return entry
		}
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "settings")
}

// GetSettingAsIndex returns the leading integer of the setting, 0 if there is none
func (a Accessors) GetSettingAsIndex(key string) int {
	return utils.Atoi(a.resolver.GetSettingString(key))
}

// GetSettingAsCount returns the leading integer of the setting, 0 if there is none
func (a Accessors) GetSettingAsCount(key string) int {
	return utils.Atoi(a.resolver.GetSettingString(key))
}

// GetSettingInMillimeters returns the leading number of the setting, 0 if there is none
func (a Accessors) GetSettingInMillimeters(key string) float64 {
	return utils.Atof(a.resolver.GetSettingString(key))
}

// GetSettingInMicrons returns the setting in millimeters converted to whole microns, truncated toward zero
func (a Accessors) GetSettingInMicrons(key string) int {
	return int(a.GetSettingInMillimeters(key) * 1000.0)
}

// GetSettingInAngleRadians returns the setting, which is configured in degrees, in radians
func (a Accessors) GetSettingInAngleRadians(key string) float64 {
	return utils.Atof(a.resolver.GetSettingString(key)) / 180.0 * math.Pi
}

// GetSettingBoolean returns true for "on", "yes", "true" and "True", or when the setting starts with a non-zero
// integer. Other capitalizations of the literals are not recognized.
func (a Accessors) GetSettingBoolean(key string) bool {
	value := a.resolver.GetSettingString(key)

	switch value {
	case "on", "yes", "true", "True":
		return true
	}

	return utils.Atoi(value) != 0
}

// GetSettingInDegreeCelsius returns the leading number of the setting, 0 if there is none
func (a Accessors) GetSettingInDegreeCelsius(key string) float64 {
	return utils.Atof(a.resolver.GetSettingString(key))
}

// GetSettingInMillimetersPerSecond returns the setting as a speed of at least 1 mm/s
func (a Accessors) GetSettingInMillimetersPerSecond(key string) float64 {
	return math.Max(1.0, utils.Atof(a.resolver.GetSettingString(key)))
}

// GetSettingInCubicMillimeters returns the setting as a volume, negative values become 0
func (a Accessors) GetSettingInCubicMillimeters(key string) float64 {
	return math.Max(0.0, utils.Atof(a.resolver.GetSettingString(key)))
}

// GetSettingInPercentage returns the setting as a percentage, negative values become 0
func (a Accessors) GetSettingInPercentage(key string) float64 {
	return math.Max(0.0, utils.Atof(a.resolver.GetSettingString(key)))
}

// GetSettingInSeconds returns the setting as a duration in seconds, negative values become 0
func (a Accessors) GetSettingInSeconds(key string) float64 {
	return math.Max(0.0, utils.Atof(a.resolver.GetSettingString(key)))
}

// flowTempPair matches every innermost "[flow,temp]" pair, also when the pairs are wrapped in an outer list
var flowTempPair = regexp.MustCompile(`(\[([^,\[]*),([^,\]]*)\])`)

// GetSettingAsFlowTempGraph parses a setting of the form [[flow,temp],[flow,temp],...]. Pairs that do not contain two
// numbers are skipped and logged, the remaining pairs are still returned in the order they appear.
func (a Accessors) GetSettingAsFlowTempGraph(key string) types.FlowTempGraph {
	graph := types.FlowTempGraph{}

	value := a.resolver.GetSettingString(key)
	if value == "" {
		return graph
	}

	for _, match := range flowTempPair.FindAllStringSubmatch(value, -1) {
		first, second := match[2], match[3]

		flow, okFlow := utils.Stod(first)
		temp, okTemp := utils.Stod(second)
		if !okFlow || !okTemp {
			a.logger().
				WithField("key", key).
				WithField("value", match[1]).
				Warnf("couldn't read 2D graph element [%s,%s] in setting '%s', ignored", first, second, key)
			continue
		}

		graph.Add(flow, temp)
	}

	return graph
}

// GetSettingAsGCodeFlavor returns the setting as a G-code flavor, RepRap if it is not recognized
func (a Accessors) GetSettingAsGCodeFlavor(key string) types.GCodeFlavor {
	return types.ParseGCodeFlavor(a.resolver.GetSettingString(key))
}

// GetSettingAsFillMethod returns the setting as an infill pattern, none if it is not recognized
func (a Accessors) GetSettingAsFillMethod(key string) types.FillMethod {
	return types.ParseFillMethod(a.resolver.GetSettingString(key))
}

// GetSettingAsPlatformAdhesion returns the setting as an adhesion type, skirt if it is not brim or raft
func (a Accessors) GetSettingAsPlatformAdhesion(key string) types.PlatformAdhesion {
	return types.ParsePlatformAdhesion(a.resolver.GetSettingString(key))
}

// GetSettingAsSupportType returns the setting as a support type, none if it is not recognized
func (a Accessors) GetSettingAsSupportType(key string) types.SupportType {
	return types.ParseSupportType(a.resolver.GetSettingString(key))
}

// GetSettingAsZSeamType returns the setting as a seam type, shortest if it is not recognized
func (a Accessors) GetSettingAsZSeamType(key string) types.ZSeamType {
	return types.ParseZSeamType(a.resolver.GetSettingString(key))
}

// GetSettingAsSurfaceMode returns the setting as a surface mode, normal if it is not recognized
func (a Accessors) GetSettingAsSurfaceMode(key string) types.SurfaceMode {
	return types.ParseSurfaceMode(a.resolver.GetSettingString(key))
}

// GetSettingAsCombingMode returns the setting as a combing mode, all if it is not recognized
func (a Accessors) GetSettingAsCombingMode(key string) types.CombingMode {
	return types.ParseCombingMode(a.resolver.GetSettingString(key))
}

// GetSettingAsSupportDistPriority returns the setting as a support distance priority, xy_overrides_z if it is not
// recognized
func (a Accessors) GetSettingAsSupportDistPriority(key string) types.SupportDistPriority {
	return types.ParseSupportDistPriority(a.resolver.GetSettingString(key))
}
