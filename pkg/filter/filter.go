// Package filter provides a way to hide settings from dumps based on a set of criteria. Filters are keyed by scope
// name, filters under Global apply to every scope.
package filter

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/mb0/glob"
	"github.com/sirupsen/logrus"

	"github.com/ekristen/libslice/pkg/utils"
)

type Type string

const (
	Empty       Type = ""
	Exact       Type = "exact"
	Glob        Type = "glob"
	Regex       Type = "regex"
	Contains    Type = "contains"
	Suffix      Type = "suffix"
	Prefix      Type = "prefix"
	NotIn       Type = "NotIn"
	In          Type = "In"
	GreaterThan Type = "greaterThan"
	LessThan    Type = "lessThan"

	Global = "__global__"

	// PropertyKey and PropertyValue are the properties a setting can be filtered on
	PropertyKey   = "key"
	PropertyValue = "value"
)

type Property interface {
	GetProperty(string) (string, error)
}

// Setting is a resolved setting as presented to the filters
type Setting struct {
	Key   string
	Value string
}

// GetProperty returns the key or the value of the setting. An empty name selects the key.
func (s Setting) GetProperty(name string) (string, error) {
	switch name {
	case "", PropertyKey:
		return s.Key, nil
	case PropertyValue:
		return s.Value, nil
	default:
		return "", fmt.Errorf("unknown property %s, use %s or %s", name, PropertyKey, PropertyValue)
	}
}

type Filters map[string][]Filter

// Get returns the filters for a specific scope including the global filters. If there are no filters it returns nil
func (f Filters) Get(scope string) []Filter {
	var filters []Filter

	if f[Global] != nil {
		filters = append(filters, f[Global]...)
	}

	if scope != Global && f[scope] != nil {
		filters = append(filters, f[scope]...)
	}

	if len(filters) == 0 {
		return nil
	}

	return filters
}

// GetByGroup returns the filters that apply to a scope grouped by the group name. If there are no filters it
// returns nil
func (f Filters) GetByGroup(scope string) map[string][]Filter {
	filters := make(Filters)

	for _, filter := range f.Get(scope) {
		group := filter.GetGroup()
		filters[group] = append(filters[group], filter)
	}

	if len(filters) == 0 {
		return nil
	}

	return filters
}

// Validate checks if the filters are valid or not and returns an error if they are not
func (f Filters) Validate() error {
	for scope, filters := range f {
		for _, filter := range filters {
			if err := filter.Validate(); err != nil {
				return fmt.Errorf("%s: has an invalid filter: %+v: %w", scope, filter, err)
			}
		}
	}

	return nil
}

// Append appends the filters from f2 to f, for example to add filters given on the command line to the filters of
// the configuration file.
func (f Filters) Append(f2 Filters) {
	for scope, filter := range f2 {
		f[scope] = append(f[scope], filter...)
	}
}

// Match checks if the filters of the scope match the given property. Filters of a group are ANDed, groups are ORed.
func (f Filters) Match(scope string, p Property) (bool, error) {
	scopeFilters := f.GetByGroup(scope)
	if scopeFilters == nil {
		return false, nil
	}

	for group, groupFilters := range scopeFilters {
		matchCount := 0

		for _, filter := range groupFilters {
			prop, err := p.GetProperty(filter.Property)
			if err != nil {
				logrus.WithError(err).Warn("error getting property")
				return false, err
			}

			match, err := filter.Match(prop)
			if err != nil {
				logrus.WithError(err).Warn("error matching filter")
				return false, err
			}

			if filter.Invert {
				match = !match
			}

			if match {
				matchCount++
			}
		}

		logrus.
			WithField("group", group).
			WithField("total", len(groupFilters)).
			WithField("matched", matchCount).
			Trace("filter group evaluated")

		if matchCount == len(groupFilters) {
			return true, nil
		}
	}

	return false, nil
}

// Filter is a filter to apply to a setting
type Filter struct {
	// Group is the name of the group of filters, all filters in a group are ANDed together
	Group string `yaml:"group" json:"group"`

	// Type is the type of filter to apply
	Type Type `yaml:"type" json:"type"`

	// Property is the property to filter on, "key" (the default) or "value"
	Property string `yaml:"property" json:"property"`

	// Value is the value to filter on
	Value string `yaml:"value" json:"value"`

	// Values allows for multiple values to be specified for a filter
	Values []string `yaml:"values" json:"values"`

	// Invert is a flag to invert the filter
	Invert bool `yaml:"invert" json:"invert"`
}

// GetGroup returns the group name of the filter, if it is empty it returns "default"
func (f *Filter) GetGroup() string {
	if f.Group == "" {
		return "default"
	}
	return f.Group
}

// Validate checks if the filter is valid
func (f *Filter) Validate() error {
	switch f.Property {
	case "", PropertyKey, PropertyValue:
	default:
		return fmt.Errorf("unknown property %s", f.Property)
	}

	switch f.Type {
	case In, NotIn:
		if len(f.Values) == 0 {
			return fmt.Errorf("values cannot be empty")
		}
	default:
		if f.Value == "" {
			return fmt.Errorf("value cannot be empty")
		}
	}

	return nil
}

// Match checks if the filter matches the given value
func (f *Filter) Match(o string) (bool, error) {
	switch f.Type {
	case Empty, Exact:
		return f.Value == o, nil

	case Contains:
		return strings.Contains(o, f.Value), nil

	case Glob:
		return glob.Match(f.Value, o)

	case Regex:
		re, err := regexp.Compile(f.Value)
		if err != nil {
			return false, err
		}
		return re.MatchString(o), nil

	case GreaterThan, LessThan:
		limit, ok := utils.Stod(f.Value)
		if !ok {
			return false, fmt.Errorf("%s filter requires a number, got %s", f.Type, f.Value)
		}

		// Values that are not numbers never compare
		value, ok := utils.Stod(o)
		if !ok {
			return false, nil
		}

		if f.Type == GreaterThan {
			return value > limit, nil
		}
		return value < limit, nil

	case Prefix:
		return strings.HasPrefix(o, f.Value), nil

	case Suffix:
		return strings.HasSuffix(o, f.Value), nil

	case In:
		return slices.Contains(f.Values, o), nil

	case NotIn:
		return !slices.Contains(f.Values, o), nil

	default:
		return false, fmt.Errorf("unknown type %s", f.Type)
	}
}

// UnmarshalYAML unmarshals a filter from YAML data. A plain string is an exact match on the setting key.
func (f *Filter) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string

	if unmarshal(&value) == nil {
		f.Type = Exact
		f.Value = value
		return nil
	}

	m := map[string]interface{}{}
	if err := unmarshal(m); err != nil {
		return err
	}

	f.Type = Exact
	if t, ok := m["type"].(string); ok {
		f.Type = Type(t)
	}

	f.Group, _ = m["group"].(string)
	f.Property, _ = m["property"].(string)

	f.Value = ""
	if m["value"] != nil {
		f.Value = fmt.Sprint(m["value"])
	}

	f.Values = []string{}
	if values, ok := m["values"].([]interface{}); ok {
		for _, v := range values {
			f.Values = append(f.Values, fmt.Sprint(v))
		}
	}

	f.Invert = false
	switch invert := m["invert"].(type) {
	case bool:
		f.Invert = invert
	case string:
		b, err := strconv.ParseBool(invert)
		if err != nil {
			return err
		}
		f.Invert = b
	}

	return nil
}

// NewExactFilter creates a new filter that matches the exact setting key
func NewExactFilter(value string) Filter {
	return Filter{
		Type:  Exact,
		Value: value,
	}
}

// NewGlobFilter creates a new filter that matches setting keys against a glob pattern, for example "speed_*"
func NewGlobFilter(pattern string) Filter {
	return Filter{
		Type:     Glob,
		Property: PropertyKey,
		Value:    pattern,
	}
}
