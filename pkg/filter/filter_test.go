package filter_test

import (
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekristen/libslice/pkg/filter"
)

func TestNewExactFilter(t *testing.T) {
	f := filter.NewExactFilter("testing")

	assert.Equal(t, f.Type, filter.Exact)

	b1, err := f.Match("testing")
	assert.NoError(t, err)
	assert.True(t, b1)

	b2, err := f.Match("test")
	assert.NoError(t, err)
	assert.False(t, b2)
}

func TestNewGlobFilter(t *testing.T) {
	f := filter.NewGlobFilter("speed_*")
	assert.NoError(t, f.Validate())

	match, err := f.Match("speed_infill")
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = f.Match("layer_height")
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestUnmarshalFilter(t *testing.T) {
	cases := []struct {
		name            string
		yaml            string
		match, mismatch []string
		error           bool
	}{
		{
			yaml:     `speed_print`,
			match:    []string{"speed_print"},
			mismatch: []string{"speed", "speed_print_layer_0", "print"},
		},
		{
			yaml:     `{"type":"exact","value":"speed_print"}`,
			match:    []string{"speed_print"},
			mismatch: []string{"speed", "speed_print_layer_0"},
		},
		{
			yaml:     `{"type":"glob","value":"speed_*"}`,
			match:    []string{"speed_print", "speed_infill", "speed_"},
			mismatch: []string{"layer_height", "print_speed"},
		},
		{
			yaml:     `{"type":"glob","value":"machine_?_offset"}`,
			match:    []string{"machine_x_offset", "machine_y_offset"},
			mismatch: []string{"machine_xy_offset", "machine__offset"},
		},
		{
			yaml:     `{"type":"regex","value":"^material_(print|bed)_temperature$"}`,
			match:    []string{"material_print_temperature", "material_bed_temperature"},
			mismatch: []string{"material_standby_temperature", "material_print_temperature_layer_0"},
		},
		{
			name:  "regex-invalid",
			yaml:  `{"type":"regex","value":"b([iao]sh"}`,
			match: []string{"bish"},
			error: true,
		},
		{
			yaml:     `{"type":"contains","value":"temp"}`,
			match:    []string{"material_print_temperature", "material_flow_temp_graph"},
			mismatch: []string{"layer_height"},
		},
		{
			yaml:     `{"type":"prefix","value":"machine_"}`,
			match:    []string{"machine_gcode_flavor", "machine_width"},
			mismatch: []string{"gcode_machine", "layer_height"},
		},
		{
			yaml:     `{"type":"suffix","value":"_layer_0"}`,
			match:    []string{"speed_print_layer_0", "material_print_temperature_layer_0"},
			mismatch: []string{"speed_print", "layer_0_speed"},
		},
		{
			yaml:     `{"type":"In","values":["grid","lines"]}`,
			match:    []string{"grid", "lines"},
			mismatch: []string{"cubic", ""},
		},
		{
			yaml:     `{"type":"NotIn","values":["grid","lines"]}`,
			match:    []string{"cubic", ""},
			mismatch: []string{"grid", "lines"},
		},
		{
			yaml:     `{"type":"greaterThan","value":"200"}`,
			match:    []string{"210", "200.5", "1e3"},
			mismatch: []string{"200", "199", "hot", ""},
		},
		{
			yaml:     `{"type":"lessThan","value":0.1}`,
			match:    []string{"0.05", "-1", " 0.01mm"},
			mismatch: []string{"0.1", "0.2", "thin"},
		},
		{
			name:  "greaterThan-invalid",
			yaml:  `{"type":"greaterThan","value":"hot"}`,
			match: []string{"210"},
			error: true,
		},
		{
			name:  "unknown-filter-type",
			yaml:  `{"type":"custom","value":"does-not-matter"}`,
			match: []string{"12345-somesuffix"},
			error: true,
		},
	}

	for _, tc := range cases {
		name := tc.name
		if name == "" {
			name = tc.yaml
		}

		t.Run(name, func(t *testing.T) {
			var f filter.Filter

			err := yaml.Unmarshal([]byte(tc.yaml), &f)
			require.NoError(t, err)

			for _, o := range tc.match {
				match, err := f.Match(o)
				if tc.error {
					assert.Error(t, err)
					continue
				}

				assert.NoError(t, err)
				assert.True(t, match, "'%v' should match", o)
			}

			for _, o := range tc.mismatch {
				match, err := f.Match(o)
				assert.NoError(t, err)
				assert.False(t, match, "'%v' should not match", o)
			}
		})
	}
}

func TestUnmarshalFilterFields(t *testing.T) {
	var f filter.Filter
	err := yaml.Unmarshal([]byte(`{"group":"hot","property":"value","type":"glob","value":"2*","invert":"true"}`), &f)
	require.NoError(t, err)

	assert.Equal(t, filter.Filter{
		Group:    "hot",
		Property: filter.PropertyValue,
		Type:     filter.Glob,
		Value:    "2*",
		Values:   []string{},
		Invert:   true,
	}, f)

	err = yaml.Unmarshal([]byte(`{"type":"glob","value":"2*","invert":"maybe"}`), &f)
	assert.Error(t, err)
}

func TestSetting_GetProperty(t *testing.T) {
	s := filter.Setting{Key: "layer_height", Value: "0.2"}

	key, err := s.GetProperty("")
	assert.NoError(t, err)
	assert.Equal(t, "layer_height", key)

	key, err = s.GetProperty(filter.PropertyKey)
	assert.NoError(t, err)
	assert.Equal(t, "layer_height", key)

	value, err := s.GetProperty(filter.PropertyValue)
	assert.NoError(t, err)
	assert.Equal(t, "0.2", value)

	_, err = s.GetProperty("unit")
	assert.Error(t, err)
}

func TestFilters_Get(t *testing.T) {
	f := filter.Filters{
		filter.Global: []filter.Filter{filter.NewGlobFilter("machine_*")},
		"mesh:cube":   []filter.Filter{filter.NewExactFilter("infill_pattern")},
	}

	assert.Len(t, f.Get("global"), 1)
	assert.Len(t, f.Get("mesh:cube"), 2)
	assert.Len(t, f.Get(filter.Global), 1)
	assert.Nil(t, filter.Filters{}.Get("global"))
	assert.Nil(t, filter.Filters{}.GetByGroup("global"))
}

func TestFilters_Match(t *testing.T) {
	f := filter.Filters{
		filter.Global: []filter.Filter{
			filter.NewGlobFilter("machine_*"),
		},
		"extruder:0": []filter.Filter{
			{Group: "hot", Type: filter.Prefix, Value: "material_"},
			{Group: "hot", Property: filter.PropertyValue, Type: filter.GreaterThan, Value: "220"},
		},
		"extruder:1": []filter.Filter{
			{Group: "fast", Type: filter.Glob, Value: "speed_*", Invert: true},
		},
	}

	cases := []struct {
		name    string
		scope   string
		setting filter.Setting
		want    bool
	}{
		{name: "global-filter", scope: "global", setting: filter.Setting{Key: "machine_width", Value: "220"}, want: true},
		{name: "global-filter-in-scope", scope: "extruder:0", setting: filter.Setting{Key: "machine_depth"}, want: true},
		{name: "no-match", scope: "global", setting: filter.Setting{Key: "layer_height", Value: "0.2"}},
		{name: "group-all", scope: "extruder:0", setting: filter.Setting{Key: "material_print_temperature", Value: "240"}, want: true},
		{name: "group-partial", scope: "extruder:0", setting: filter.Setting{Key: "material_print_temperature", Value: "210"}},
		{name: "other-scope", scope: "extruder:1", setting: filter.Setting{Key: "material_print_temperature", Value: "240"}, want: true},
		{name: "inverted", scope: "extruder:1", setting: filter.Setting{Key: "speed_print", Value: "60"}},
		{name: "no-filters", scope: "mesh:cube", setting: filter.Setting{Key: "layer_height"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match, err := f.Match(tc.scope, tc.setting)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, match)
		})
	}

	none, err := filter.Filters{}.Match("global", filter.Setting{Key: "layer_height"})
	assert.NoError(t, err)
	assert.False(t, none)
}

func TestFilters_MatchError(t *testing.T) {
	f := filter.Filters{
		"global": []filter.Filter{{Property: "unit", Value: "mm"}},
	}

	_, err := f.Match("global", filter.Setting{Key: "layer_height"})
	assert.Error(t, err)

	f = filter.Filters{
		"global": []filter.Filter{{Type: filter.Regex, Value: "("}},
	}

	_, err = f.Match("global", filter.Setting{Key: "layer_height"})
	assert.Error(t, err)
}

func TestFilters_Validate(t *testing.T) {
	cases := []struct {
		name    string
		filters filter.Filters
		wantErr bool
	}{
		{name: "valid", filters: filter.Filters{"global": {filter.NewGlobFilter("speed_*")}}},
		{name: "valid-in", filters: filter.Filters{"global": {{Type: filter.In, Values: []string{"a"}}}}},
		{name: "empty-value", filters: filter.Filters{"global": {{Type: filter.Glob}}}, wantErr: true},
		{name: "empty-values", filters: filter.Filters{"global": {{Type: filter.NotIn}}}, wantErr: true},
		{name: "bad-property", filters: filter.Filters{"global": {{Property: "unit", Value: "mm"}}}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filters.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAppend(t *testing.T) {
	f1 := filter.Filters{
		"global": []filter.Filter{
			{Property: "key", Type: filter.Exact, Value: "layer_height"},
		},
	}
	f2 := filter.Filters{
		"global": []filter.Filter{
			{Property: "key", Type: filter.Glob, Value: "speed_*"},
		},
		"mesh:cube": []filter.Filter{
			{Property: "value", Type: filter.Regex, Value: "^0"},
		},
	}

	f1.Append(f2)

	expected := filter.Filters{
		"global": []filter.Filter{
			{Property: "key", Type: filter.Exact, Value: "layer_height"},
			{Property: "key", Type: filter.Glob, Value: "speed_*"},
		},
		"mesh:cube": []filter.Filter{
			{Property: "value", Type: filter.Regex, Value: "^0"},
		},
	}

	assert.Equal(t, expected, f1)
}
