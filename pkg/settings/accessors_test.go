package settings

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekristen/libslice/pkg/types"
)

const testKey = "test_setting"

func newValueStore(value string) *Store {
	s, _ := newTestStore(nil)
	s.SetSetting(testKey, value)
	return s
}

func TestAccessors_Integers(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{value: "3", want: 3},
		{value: "-2", want: -2},
		{value: "4.8", want: 4},
		{value: " 7 walls", want: 7},
		{value: "abc", want: 0},
		{value: "", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			s := newValueStore(tc.value)
			assert.Equal(t, tc.want, s.GetSettingAsIndex(testKey))
			assert.Equal(t, tc.want, s.GetSettingAsCount(testKey))
		})
	}
}

func TestAccessors_Lengths(t *testing.T) {
	cases := []struct {
		value   string
		mm      float64
		microns int
	}{
		{value: "0.2", mm: 0.2, microns: 200},
		{value: "0.15", mm: 0.15, microns: 150},
		{value: "-1.5", mm: -1.5, microns: -1500},
		{value: "0.0004", mm: 0.0004, microns: 0},
		{value: "2mm", mm: 2, microns: 2000},
		{value: "junk", mm: 0, microns: 0},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			s := newValueStore(tc.value)
			assert.InDelta(t, tc.mm, s.GetSettingInMillimeters(testKey), 1e-12)
			assert.Equal(t, tc.microns, s.GetSettingInMicrons(testKey))
		})
	}
}

func TestAccessors_AngleRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, newValueStore("180").GetSettingInAngleRadians(testKey), 1e-12)
	assert.InDelta(t, math.Pi/4, newValueStore("45").GetSettingInAngleRadians(testKey), 1e-12)
	assert.InDelta(t, -math.Pi/2, newValueStore("-90").GetSettingInAngleRadians(testKey), 1e-12)
	assert.Equal(t, 0.0, newValueStore("steep").GetSettingInAngleRadians(testKey))
}

func TestAccessors_Boolean(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{value: "on", want: true},
		{value: "yes", want: true},
		{value: "true", want: true},
		{value: "True", want: true},
		{value: "1", want: true},
		{value: "5", want: true},
		{value: "-1", want: true},
		{value: "", want: false},
		{value: "0", want: false},
		{value: "off", want: false},
		{value: "false", want: false},
		{value: "False", want: false},
		{value: "TRUE", want: false},
		{value: "Yes", want: false},
		{value: "0.5", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, newValueStore(tc.value).GetSettingBoolean(testKey))
		})
	}
}

func TestAccessors_ClampedFloats(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		celsius float64
		speed   float64
		clamped float64
	}{
		{name: "positive", value: "50", celsius: 50, speed: 50, clamped: 50},
		{name: "slow", value: "0.5", celsius: 0.5, speed: 1, clamped: 0.5},
		{name: "zero", value: "0", celsius: 0, speed: 1, clamped: 0},
		{name: "negative", value: "-20", celsius: -20, speed: 1, clamped: 0},
		{name: "invalid", value: "fast", celsius: 0, speed: 1, clamped: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newValueStore(tc.value)
			assert.Equal(t, tc.celsius, s.GetSettingInDegreeCelsius(testKey))
			assert.Equal(t, tc.speed, s.GetSettingInMillimetersPerSecond(testKey))
			assert.Equal(t, tc.clamped, s.GetSettingInCubicMillimeters(testKey))
			assert.Equal(t, tc.clamped, s.GetSettingInPercentage(testKey))
			assert.Equal(t, tc.clamped, s.GetSettingInSeconds(testKey))
		})
	}
}

func TestAccessors_FlowTempGraph(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		expected []types.FlowTempPoint
		warnings int
	}{
		{
			name:     "empty",
			value:    "",
			expected: nil,
		},
		{
			name:  "nested",
			value: "[[50,200],[100,210]]",
			expected: []types.FlowTempPoint{
				{Flow: 50, Temp: 200},
				{Flow: 100, Temp: 210},
			},
		},
		{
			name:  "single",
			value: "[3.5,205]",
			expected: []types.FlowTempPoint{
				{Flow: 3.5, Temp: 205},
			},
		},
		{
			name:  "whitespace",
			value: "[ [ 1.5 , 190 ],\n [ 2 , 195 ] ]",
			expected: []types.FlowTempPoint{
				{Flow: 1.5, Temp: 190},
				{Flow: 2, Temp: 195},
			},
		},
		{
			name:     "malformed",
			value:    "[50,abc]",
			expected: nil,
			warnings: 1,
		},
		{
			name:  "partially-malformed",
			value: "[[1,180],[x,190],[3,200]]",
			expected: []types.FlowTempPoint{
				{Flow: 1, Temp: 180},
				{Flow: 3, Temp: 200},
			},
			warnings: 1,
		},
		{
			name:  "numeric-prefix",
			value: "[[5mm3,210C]]",
			expected: []types.FlowTempPoint{
				{Flow: 5, Temp: 210},
			},
		},
		{
			name:     "no-pairs",
			value:    "[]",
			expected: nil,
		},
		{
			name:     "three-values",
			value:    "[1,2,3]",
			expected: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, hook := newTestStore(nil)
			s.SetSetting("material_flow_temp_graph", tc.value)
			hook.Reset()

			graph := s.GetSettingAsFlowTempGraph("material_flow_temp_graph")
			assert.Equal(t, tc.expected, graph.Data)

			require.Len(t, hook.Entries, tc.warnings)
			for _, e := range hook.Entries {
				assert.Equal(t, logrus.WarnLevel, e.Level)
				assert.Equal(t, "material_flow_temp_graph", e.Data["key"])
				assert.Contains(t, e.Message, "material_flow_temp_graph")
			}
		})
	}
}

func TestAccessors_FlowTempGraphMalformedMessage(t *testing.T) {
	s, hook := newTestStore(nil)
	s.SetSetting("graph", "[50,abc]")
	hook.Reset()

	s.GetSettingAsFlowTempGraph("graph")
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "couldn't read 2D graph element [50,abc] in setting 'graph', ignored", hook.LastEntry().Message)
	assert.Equal(t, "[50,abc]", hook.LastEntry().Data["value"])
}

func TestAccessors_Enums(t *testing.T) {
	s, _ := newTestStore(nil)

	s.SetSetting("machine_gcode_flavor", "Griffin")
	assert.Equal(t, types.GCodeFlavorGriffin, s.GetSettingAsGCodeFlavor("machine_gcode_flavor"))
	s.SetSetting("machine_gcode_flavor", "Marlin")
	assert.Equal(t, types.GCodeFlavorRepRap, s.GetSettingAsGCodeFlavor("machine_gcode_flavor"))

	s.SetSetting("infill_pattern", "cubic")
	assert.Equal(t, types.FillMethodCubic, s.GetSettingAsFillMethod("infill_pattern"))
	s.SetSetting("infill_pattern", "gyroid")
	assert.Equal(t, types.FillMethodNone, s.GetSettingAsFillMethod("infill_pattern"))

	s.SetSetting("adhesion_type", "raft")
	assert.Equal(t, types.PlatformAdhesionRaft, s.GetSettingAsPlatformAdhesion("adhesion_type"))
	s.SetSetting("adhesion_type", "none")
	assert.Equal(t, types.PlatformAdhesionSkirt, s.GetSettingAsPlatformAdhesion("adhesion_type"))

	s.SetSetting("support_type", "buildplate")
	assert.Equal(t, types.SupportTypePlatformOnly, s.GetSettingAsSupportType("support_type"))

	s.SetSetting("z_seam_type", "back")
	assert.Equal(t, types.ZSeamTypeBack, s.GetSettingAsZSeamType("z_seam_type"))

	s.SetSetting("magic_mesh_surface_mode", "both")
	assert.Equal(t, types.SurfaceModeBoth, s.GetSettingAsSurfaceMode("magic_mesh_surface_mode"))

	s.SetSetting("retraction_combing", "noskin")
	assert.Equal(t, types.CombingModeNoSkin, s.GetSettingAsCombingMode("retraction_combing"))

	s.SetSetting("support_xy_overrides_z", "z_overrides_xy")
	assert.Equal(t, types.SupportDistPriorityZOverridesXY, s.GetSettingAsSupportDistPriority("support_xy_overrides_z"))
}

func TestAccessors_EnumDefaultsWhenMissing(t *testing.T) {
	s, _ := newTestStore(nil)

	assert.Equal(t, types.GCodeFlavorRepRap, s.GetSettingAsGCodeFlavor("a"))
	assert.Equal(t, types.FillMethodNone, s.GetSettingAsFillMethod("b"))
	assert.Equal(t, types.PlatformAdhesionSkirt, s.GetSettingAsPlatformAdhesion("c"))
	assert.Equal(t, types.SupportTypeNone, s.GetSettingAsSupportType("d"))
	assert.Equal(t, types.ZSeamTypeShortest, s.GetSettingAsZSeamType("e"))
	assert.Equal(t, types.SurfaceModeNormal, s.GetSettingAsSurfaceMode("f"))
	assert.Equal(t, types.CombingModeAll, s.GetSettingAsCombingMode("g"))
	assert.Equal(t, types.SupportDistPriorityXYOverridesZ, s.GetSettingAsSupportDistPriority("h"))
}

func TestAccess_ArbitraryResolver(t *testing.T) {
	a := Access(mapResolver{"speed_print": "0.5", "infill_pattern": "grid"})

	assert.Equal(t, 1.0, a.GetSettingInMillimetersPerSecond("speed_print"))
	assert.Equal(t, types.FillMethodGrid, a.GetSettingAsFillMethod("infill_pattern"))
}
