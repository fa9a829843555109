// Package registry provides the process wide catalog of known setting keys. Settings are registered once, usually
// from a definitions file, and the catalog is consulted when settings are written so that typos and settings that
// are still being developed can be reported. The catalog also knows the parent of every setting, which is used to
// resolve inherited defaults in the right order.
package registry

import (
	"fmt"
	"sort"

	"github.com/mb0/glob"
	"github.com/sirupsen/logrus"
	"github.com/stevenle/topsort"
)

// TypeCategory is the type of registrations that only group other settings and carry no value
const TypeCategory = "category"

// Registrations is a map of setting key to registration
type Registrations map[string]*Registration

// registrations is a global variable of all registered settings
var registrations = make(Registrations)

// graph is a global variable of the graph of setting inheritance, edges point from a setting to its parent
var graph = topsort.NewGraph()

// nodes tracks which names have already been added to the graph
var nodes = make(map[string]bool)

// Registration is a struct that contains the information known about a single setting
type Registration struct {
	// Name is the key of the setting, for example "layer_height"
	Name string

	// Label is the human readable name of the setting
	Label string

	// Description explains what the setting does, it is used to generate documentation
	Description string

	// Type is the value type of the setting as written in the definitions, for example "float", "int", "bool",
	// "enum", "str" or "category". It is informational only, values are always stored as strings.
	Type string

	// Unit is the unit the value is expressed in, for example "mm" or "mm/s"
	Unit string

	// Default is the default value of the setting. If it is empty the setting inherits the default of its Parent.
	Default string

	// Options is the list of recognized literals for settings of type "enum"
	Options []string

	// Category is the top level category the setting is listed under, for example "resolution"
	Category string

	// Parent is the setting or category this setting is nested under in the definitions. A setting without its own
	// default inherits the default of its parent.
	Parent string
}

// Checker reports whether a setting key is known
type Checker interface {
	SettingExists(key string) bool
}

// Global is a Checker backed by the process wide registry
type Global struct{}

// SettingExists returns true if the key has been registered with the process wide registry
func (Global) SettingExists(key string) bool {
	return SettingExists(key)
}

// Setter is anything settings can be written to, see ApplyDefaults
type Setter interface {
	SetSetting(key, value string)
}

// Register registers a setting with the registry
func Register(r *Registration) {
	if _, exists := registrations[r.Name]; exists {
		panic(fmt.Sprintf("a setting with the name %s already exists", r.Name))
	}

	logrus.WithField("name", r.Name).Trace("registered setting")

	registrations[r.Name] = r

	addNode(r.Name)
	if r.Parent != "" {
		addNode(r.Parent)
		// Note: AddEdge will never throw an error, both nodes exist
		_ = graph.AddEdge(r.Name, r.Parent)
	}
}

func addNode(name string) {
	if nodes[name] {
		return
	}
	nodes[name] = true
	graph.AddNode(name)
}

// SettingExists returns true if a setting with the given key has been registered
func SettingExists(key string) bool {
	_, ok := registrations[key]
	return ok
}

// GetRegistration returns the registration for the given setting key
func GetRegistration(name string) *Registration {
	return registrations[name]
}

// GetRegistrations returns all registrations
func GetRegistrations() Registrations {
	return registrations
}

// ClearRegistry clears the registry of all registrations
// Designed for use for unit tests, not for production code. Only use if you know what you are doing.
func ClearRegistry() {
	registrations = make(Registrations)
	graph = topsort.NewGraph()
	nodes = make(map[string]bool)
}

// GetNames provides all registered setting keys with every parent listed before its children. Settings that do not
// depend on each other are ordered by name. It panics if the parent relationships contain a cycle.
func GetNames() []string {
	sortedNames := make([]string, 0, len(registrations))
	for name := range registrations {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	seen := make(map[string]bool, len(sortedNames))
	names := make([]string, 0, len(sortedNames))

	for _, name := range sortedNames {
		chain, err := graph.TopSort(name)
		if err != nil {
			panic(err)
		}

		for _, n := range chain {
			if seen[n] {
				continue
			}
			seen[n] = true

			// Parents that were referenced but never registered are not settings
			if _, ok := registrations[n]; !ok {
				continue
			}

			names = append(names, n)
		}
	}

	return names
}

// GetNamesForCategory provides the setting keys registered under the given category, in the order of GetNames
func GetNamesForCategory(category string) []string {
	var names []string
	for _, name := range GetNames() {
		if registrations[name].Category == category {
			names = append(names, name)
		}
	}
	return names
}

// ExpandNames takes a list of names and expands them based on a wildcard and returns all the names that match
func ExpandNames(names []string) []string {
	var expandedNames []string
	registeredNames := GetNames()

	for _, name := range names {
		matches, _ := glob.GlobStrings(registeredNames, name)
		if matches == nil {
			logrus.
				WithField("handler", "ExpandNames").
				WithField("name", name).
				Trace("no expansion for name")

			expandedNames = append(expandedNames, name)
			continue
		}

		logrus.
			WithField("handler", "ExpandNames").
			WithField("name", name).
			WithField("matches", matches).
			Trace("expanded name")

		expandedNames = append(expandedNames, matches...)
	}

	// Ensure predictable order
	sort.Strings(expandedNames)

	return expandedNames
}

// Defaults resolves the default value of every registered setting. A setting without a default of its own inherits
// the resolved default of its parent. Categories and settings that resolve to an empty default are left out.
func Defaults() map[string]string {
	resolved := make(map[string]string)
	defaults := make(map[string]string)

	for _, name := range GetNames() {
		r := registrations[name]

		value := r.Default
		if value == "" && r.Parent != "" {
			value = resolved[r.Parent]
		}
		resolved[name] = value

		if r.Type == TypeCategory || value == "" {
			continue
		}

		defaults[name] = value
	}

	return defaults
}

// ApplyDefaults writes the resolved default of every registered setting to s, parents first
func ApplyDefaults(s Setter) {
	defaults := Defaults()
	for _, name := range GetNames() {
		value, ok := defaults[name]
		if !ok {
			continue
		}
		s.SetSetting(name, value)
	}
}
