// Package types provides the value types produced by the typed setting accessors: the enumerated setting categories
// and the FlowTempGraph.
package types

// GCodeFlavor is the dialect of G-code the printer firmware understands.
type GCodeFlavor int

const (
	// GCodeFlavorRepRap is the default flavor, used whenever the configured value is not recognized.
	GCodeFlavorRepRap GCodeFlavor = iota
	GCodeFlavorUltiGCode
	GCodeFlavorMakerbot
	GCodeFlavorBFB
	GCodeFlavorMach3
	GCodeFlavorRepRapVolumetric
	GCodeFlavorGriffin
)

// ParseGCodeFlavor maps a configuration literal to a GCodeFlavor. The comparison is case-sensitive and the
// volumetric literal keeps the historical "Volumatric" spelling found in existing machine definitions.
func ParseGCodeFlavor(value string) GCodeFlavor {
	switch value {
	case "Griffin":
		return GCodeFlavorGriffin
	case "UltiGCode":
		return GCodeFlavorUltiGCode
	case "Makerbot":
		return GCodeFlavorMakerbot
	case "BFB":
		return GCodeFlavorBFB
	case "MACH3":
		return GCodeFlavorMach3
	case "RepRap (Volumatric)":
		return GCodeFlavorRepRapVolumetric
	default:
		return GCodeFlavorRepRap
	}
}

func (f GCodeFlavor) String() string {
	switch f {
	case GCodeFlavorBFB:
		return "BFB"
	case GCodeFlavorMach3:
		return "Mach3"
	case GCodeFlavorMakerbot:
		return "Makerbot"
	case GCodeFlavorUltiGCode:
		return "UltiGCode"
	case GCodeFlavorRepRapVolumetric:
		return "RepRap(Volumetric)"
	case GCodeFlavorGriffin:
		return "Griffin"
	default:
		return "RepRap"
	}
}

// FillMethod is the pattern used for infill and skin.
type FillMethod int

const (
	FillMethodNone FillMethod = iota
	FillMethodLines
	FillMethodGrid
	FillMethodCubic
	FillMethodTetrahedral
	FillMethodTriangles
	FillMethodConcentric
	FillMethodZigZag
)

var fillMethods = map[string]FillMethod{
	"lines":       FillMethodLines,
	"grid":        FillMethodGrid,
	"cubic":       FillMethodCubic,
	"tetrahedral": FillMethodTetrahedral,
	"triangles":   FillMethodTriangles,
	"concentric":  FillMethodConcentric,
	"zigzag":      FillMethodZigZag,
}

// ParseFillMethod maps a configuration literal to a FillMethod, unknown values are FillMethodNone.
func ParseFillMethod(value string) FillMethod {
	if m, ok := fillMethods[value]; ok {
		return m
	}
	return FillMethodNone
}

func (m FillMethod) String() string {
	for name, v := range fillMethods {
		if v == m {
			return name
		}
	}
	return "none"
}

// PlatformAdhesion is the type of structure printed on the build plate to help the model stick.
type PlatformAdhesion int

const (
	PlatformAdhesionSkirt PlatformAdhesion = iota
	PlatformAdhesionBrim
	PlatformAdhesionRaft
)

// ParsePlatformAdhesion maps a configuration literal to a PlatformAdhesion. Only "brim" and "raft" are recognized,
// everything else is a skirt.
func ParsePlatformAdhesion(value string) PlatformAdhesion {
	switch value {
	case "brim":
		return PlatformAdhesionBrim
	case "raft":
		return PlatformAdhesionRaft
	default:
		return PlatformAdhesionSkirt
	}
}

func (a PlatformAdhesion) String() string {
	switch a {
	case PlatformAdhesionBrim:
		return "brim"
	case PlatformAdhesionRaft:
		return "raft"
	default:
		return "skirt"
	}
}

// SupportType determines where support structures are generated.
type SupportType int

const (
	SupportTypeNone SupportType = iota
	SupportTypePlatformOnly
	SupportTypeEverywhere
)

// ParseSupportType maps a configuration literal to a SupportType, unknown values are SupportTypeNone.
func ParseSupportType(value string) SupportType {
	switch value {
	case "everywhere":
		return SupportTypeEverywhere
	case "buildplate":
		return SupportTypePlatformOnly
	default:
		return SupportTypeNone
	}
}

func (t SupportType) String() string {
	switch t {
	case SupportTypeEverywhere:
		return "everywhere"
	case SupportTypePlatformOnly:
		return "buildplate"
	default:
		return "none"
	}
}

// ZSeamType determines where each layer starts.
type ZSeamType int

const (
	ZSeamTypeShortest ZSeamType = iota
	ZSeamTypeBack
	ZSeamTypeRandom
)

// ParseZSeamType maps a configuration literal to a ZSeamType, unknown values are ZSeamTypeShortest.
func ParseZSeamType(value string) ZSeamType {
	switch value {
	case "random":
		return ZSeamTypeRandom
	case "back":
		return ZSeamTypeBack
	default:
		return ZSeamTypeShortest
	}
}

func (t ZSeamType) String() string {
	switch t {
	case ZSeamTypeBack:
		return "back"
	case ZSeamTypeRandom:
		return "random"
	default:
		return "shortest"
	}
}

// SurfaceMode determines whether the model is printed as a solid, as a surface, or both.
type SurfaceMode int

const (
	SurfaceModeNormal SurfaceMode = iota
	SurfaceModeSurface
	SurfaceModeBoth
)

// ParseSurfaceMode maps a configuration literal to a SurfaceMode, unknown values are SurfaceModeNormal.
func ParseSurfaceMode(value string) SurfaceMode {
	switch value {
	case "surface":
		return SurfaceModeSurface
	case "both":
		return SurfaceModeBoth
	default:
		return SurfaceModeNormal
	}
}

func (m SurfaceMode) String() string {
	switch m {
	case SurfaceModeSurface:
		return "surface"
	case SurfaceModeBoth:
		return "both"
	default:
		return "normal"
	}
}

// CombingMode determines which areas travel moves are kept inside of.
type CombingMode int

const (
	CombingModeAll CombingMode = iota
	CombingModeOff
	CombingModeNoSkin
)

// ParseCombingMode maps a configuration literal to a CombingMode, unknown values are CombingModeAll.
func ParseCombingMode(value string) CombingMode {
	switch value {
	case "off":
		return CombingModeOff
	case "noskin":
		return CombingModeNoSkin
	default:
		return CombingModeAll
	}
}

func (m CombingMode) String() string {
	switch m {
	case CombingModeOff:
		return "off"
	case CombingModeNoSkin:
		return "noskin"
	default:
		return "all"
	}
}

// SupportDistPriority determines which of the XY and Z support distances wins when they conflict.
type SupportDistPriority int

const (
	SupportDistPriorityXYOverridesZ SupportDistPriority = iota
	SupportDistPriorityZOverridesXY
)

// ParseSupportDistPriority maps a configuration literal to a SupportDistPriority, unknown values are
// SupportDistPriorityXYOverridesZ.
func ParseSupportDistPriority(value string) SupportDistPriority {
	if value == "z_overrides_xy" {
		return SupportDistPriorityZOverridesXY
	}
	return SupportDistPriorityXYOverridesZ
}

func (p SupportDistPriority) String() string {
	if p == SupportDistPriorityZOverridesXY {
		return "z_overrides_xy"
	}
	return "xy_overrides_z"
}
