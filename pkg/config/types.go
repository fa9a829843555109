package config

import (
	"fmt"
	"sort"
	"strings"

	liberrors "github.com/ekristen/libslice/pkg/errors"
	"github.com/ekristen/libslice/pkg/registry"
)

// Value is a single setting value. Settings are strings, but YAML lets users write numbers, booleans and nested
// lists (for graphs such as material_flow_temp_graph) without quoting them. Scalars are kept as the text that was
// written, so "off" stays "off" and "010" stays "010", lists are joined into the bracketed form the typed accessors
// expect.
type Value string

// UnmarshalYAML unmarshals a setting value from YAML data
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	// A scalar decoded into a string keeps its source text, YAML 1.1 booleans and octals are not resolved
	var scalar string
	if unmarshal(&scalar) == nil {
		*v = Value(scalar)
		return nil
	}

	var list []Value
	if err := unmarshal(&list); err != nil {
		return liberrors.ErrInvalidConfig("unsupported setting value, use a scalar or a list")
	}

	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, string(item))
	}

	*v = Value(fmt.Sprintf("[%s]", strings.Join(parts, ",")))
	return nil
}

// Values is a set of settings keyed by setting name
type Values map[string]Value

// Keys returns the sorted setting names
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply writes every value to s in key order
func (v Values) Apply(s registry.Setter) {
	for _, k := range v.Keys() {
		s.SetSetting(k, string(v[k]))
	}
}

// Mesh is the configuration of a single model in the scene
type Mesh struct {
	// Name identifies the mesh, it must be unique within the configuration
	Name string `yaml:"name" description:"Unique name of the mesh"`

	// Extruder is the index of the extruder the mesh is printed with. The mesh inherits every setting it does not
	// define from that extruder.
	Extruder int `yaml:"extruder" description:"Index of the extruder the mesh is printed with"`

	// Settings are the per mesh overrides
	Settings Values `yaml:"settings" description:"Settings that override the extruder settings"`
}

// Definition registers a setting directly from the configuration file, for settings that are not part of any
// definition file.
type Definition struct {
	Name        string   `yaml:"name" description:"Key of the setting"`
	Label       string   `yaml:"label" description:"Human readable name"`
	Description string   `yaml:"description" description:"What the setting does"`
	Type        string   `yaml:"type" description:"Value type, for example float, int, bool, enum or str"`
	Unit        string   `yaml:"unit" description:"Unit the value is expressed in"`
	Default     Value    `yaml:"default" description:"Default value"`
	Options     []string `yaml:"options" description:"Recognized literals of an enum setting"`
	Category    string   `yaml:"category" description:"Category the setting is listed under"`
	Parent      string   `yaml:"parent" description:"Setting the default is inherited from"`
}

// Registration converts the definition to a registry registration
func (d *Definition) Registration() *registry.Registration {
	return &registry.Registration{
		Name:        d.Name,
		Label:       d.Label,
		Description: d.Description,
		Type:        d.Type,
		Unit:        d.Unit,
		Default:     string(d.Default),
		Options:     d.Options,
		Category:    d.Category,
		Parent:      d.Parent,
	}
}
