// Package config provides the configuration of a slice job. It contains the global settings, the settings of every
// extruder and the per mesh overrides, as well as the definition files that describe which settings exist. The
// configuration is loaded from a YAML file and turned into a tree of settings stores: every extruder inherits from
// the global settings and every mesh inherits from the extruder it is printed with.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/sirupsen/logrus"

	"github.com/ekristen/libslice/pkg/definitions"
	liberrors "github.com/ekristen/libslice/pkg/errors"
	"github.com/ekristen/libslice/pkg/featureflag"
	"github.com/ekristen/libslice/pkg/filter"
	"github.com/ekristen/libslice/pkg/registry"
	"github.com/ekristen/libslice/pkg/settings"
)

const (
	// ScopeGlobal is the name of the global settings scope
	ScopeGlobal = "global"

	// ScopeExtruderPrefix prefixes the index of an extruder scope, for example "extruder:1"
	ScopeExtruderPrefix = "extruder:"

	// ScopeMeshPrefix prefixes the name of a mesh scope, for example "mesh:calibration-cube"
	ScopeMeshPrefix = "mesh:"
)

// Config is the configuration of a slice job.
type Config struct {
	// DefinitionFiles is a list of JSON setting definition files that are loaded into the registry. Relative paths
	// are resolved against the directory of the configuration file.
	DefinitionFiles []string `yaml:"definition-files" description:"JSON setting definition files to register, relative to the configuration file"`

	// Definitions registers additional settings directly from the configuration.
	Definitions []Definition `yaml:"definitions" description:"Settings to register in addition to the definition files"`

	// FeatureFlags is a comma separated list of feature flags to enable (+Flag or Flag) or disable (-Flag).
	FeatureFlags string `yaml:"feature-flags" description:"Comma separated feature flags, prefix with - to disable"`

	// Settings are the global settings, every extruder and mesh inherits from them.
	Settings Values `yaml:"settings" description:"The global settings"`

	// Extruders are the per extruder settings, indexed by extruder number. A machine always has at least one
	// extruder, if none are configured a single extruder without overrides is created.
	Extruders []Values `yaml:"extruders" description:"Per extruder settings, indexed by extruder number"`

	// Meshes are the per mesh settings.
	Meshes []Mesh `yaml:"meshes" description:"Per mesh settings"`

	// Filters hide settings from dumps, keyed by scope name. Filters under "__global__" apply to every scope.
	Filters filter.Filters `yaml:"filters" description:"Filters hiding settings from dumps, keyed by scope"`

	// Log is the logrus entry to use for logging. It cannot be imported from YAML.
	Log *logrus.Entry `yaml:"-"`

	// Flags are the resolved feature flags. It cannot be imported from YAML.
	Flags *featureflag.FeatureFlags `yaml:"-"`

	path      string
	global    *settings.Store
	extruders []*settings.Store
	views     []*settings.Proxy
	meshes    map[string]*settings.Store
}

// Options are the options for creating a new configuration.
type Options struct {
	// Path to the config file
	Path string

	// Log is the logrus entry to use for logging
	Log *logrus.Entry

	// FeatureFlags are applied after the feature flags of the configuration file, so they take precedence.
	FeatureFlags string

	// NoRegisterDefinitions will prevent the definitions from being registered. This is useful for tools that
	// populate the registry themselves. Advanced use only, typically for unit tests.
	NoRegisterDefinitions bool

	// NoBuild will prevent the settings tree from being built. Advanced use only, typically for unit tests.
	NoBuild bool
}

// New creates a new configuration from a file.
func New(opts Options) (*Config, error) {
	c := &Config{
		Settings: make(Values),
		Flags:    featureflag.NewDefaults(),
	}

	if opts.Log != nil {
		c.Log = opts.Log
	} else {
		// Create a logger that discards all output
		// The only way output is logged is if the instantiating tool provides a logger
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		c.Log = logger.WithField("component", "config")
	}

	if err := c.Load(opts.Path); err != nil {
		return nil, err
	}

	c.Flags.ParseFlags(c.FeatureFlags)
	c.Flags.ParseFlags(opts.FeatureFlags)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !opts.NoRegisterDefinitions {
		if err := c.RegisterDefinitions(); err != nil {
			return nil, err
		}
	}

	if !opts.NoBuild {
		if err := c.Build(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Load loads a configuration from a file and parses it into a Config struct.
func (c *Config) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(raw, c); err != nil {
		return err
	}

	c.path = path

	return nil
}

// Validate checks the validity of the configuration that's been parsed
func (c *Config) Validate() error {
	for i, d := range c.Definitions {
		if d.Name == "" {
			return liberrors.ErrInvalidConfig(fmt.Sprintf("definition %d has no name", i))
		}
	}

	if err := c.Filters.Validate(); err != nil {
		return liberrors.ErrInvalidConfig(err.Error())
	}

	seen := make(map[string]bool, len(c.Meshes))
	for i, m := range c.Meshes {
		if m.Name == "" {
			return liberrors.ErrInvalidConfig(fmt.Sprintf("mesh %d has no name", i))
		}

		if seen[m.Name] {
			return liberrors.ErrInvalidConfig(fmt.Sprintf("mesh %s is defined more than once", m.Name))
		}
		seen[m.Name] = true

		if m.Extruder < 0 || m.Extruder >= c.ExtruderCount() {
			return liberrors.ErrUnknownExtruder(
				fmt.Sprintf("mesh %s uses extruder %d, but only %d are configured", m.Name, m.Extruder, c.ExtruderCount()))
		}
	}

	return nil
}

// ExtruderCount returns the number of extruders of the machine, at least one
func (c *Config) ExtruderCount() int {
	if len(c.Extruders) == 0 {
		return 1
	}
	return len(c.Extruders)
}

// RegisterDefinitions loads the definition files and the inline definitions into the registry. Settings that are
// already registered are skipped.
func (c *Config) RegisterDefinitions() error {
	for _, file := range c.DefinitionFiles {
		path := file
		if !filepath.IsAbs(path) && c.path != "" {
			path = filepath.Join(filepath.Dir(c.path), path)
		}

		regs, err := definitions.LoadFile(path)
		if err != nil {
			return err
		}

		added := definitions.Register(regs, c.Log)
		c.Log.WithField("path", path).Debugf("registered %d settings", added)
	}

	inline := make([]*registry.Registration, 0, len(c.Definitions))
	for i := range c.Definitions {
		inline = append(inline, c.Definitions[i].Registration())
	}
	definitions.Register(inline, c.Log)

	return nil
}

// Build creates the settings tree from the configuration. It may be called again after the configuration has been
// changed, every call creates a fresh tree.
func (c *Config) Build() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.Flags == nil {
		c.Flags = featureflag.NewDefaults()
	}

	noWarnings := !c.Flags.Enabled(featureflag.UnregisteredSettingWarnings)
	newStore := func(scope string, parent settings.Resolver) *settings.Store {
		return settings.New(settings.Options{
			Parent:                 parent,
			Log:                    c.Log.WithField("component", "settings").WithField("scope", scope),
			NoUnregisteredWarnings: noWarnings,
		})
	}

	c.global = newStore(ScopeGlobal, nil)
	if c.Flags.Enabled(featureflag.ApplyRegistryDefaults) {
		registry.ApplyDefaults(c.global)
	}
	c.Settings.Apply(c.global)

	c.extruders = make([]*settings.Store, 0, c.ExtruderCount())
	c.views = make([]*settings.Proxy, 0, c.ExtruderCount())
	for i := 0; i < c.ExtruderCount(); i++ {
		store := newStore(ScopeExtruderPrefix+strconv.Itoa(i), c.global)
		if i < len(c.Extruders) {
			c.Extruders[i].Apply(store)
		}

		c.extruders = append(c.extruders, store)
		c.views = append(c.views, settings.NewProxy(store))
	}

	c.meshes = make(map[string]*settings.Store, len(c.Meshes))
	for _, m := range c.Meshes {
		store := newStore(ScopeMeshPrefix+m.Name, c.views[m.Extruder])
		m.Settings.Apply(store)
		c.meshes[m.Name] = store
	}

	c.Log.
		WithField("extruders", len(c.extruders)).
		WithField("meshes", len(c.meshes)).
		Debug("built settings tree")

	return nil
}

// Global returns the global settings, nil if the configuration has not been built
func (c *Config) Global() *settings.Store {
	return c.global
}

// Extruder returns a view on the settings of the given extruder. Writes through the view land in the extruder's
// settings, reads fall back to the global settings.
func (c *Config) Extruder(n int) (*settings.Proxy, error) {
	if c.global == nil {
		return nil, liberrors.ErrNotBuilt
	}

	if n < 0 || n >= len(c.views) {
		return nil, liberrors.ErrUnknownExtruder(
			fmt.Sprintf("extruder %d is not configured, the machine has %d", n, len(c.views)))
	}

	return c.views[n], nil
}

// Mesh returns the settings of the named mesh
func (c *Config) Mesh(name string) (*settings.Store, error) {
	if c.global == nil {
		return nil, liberrors.ErrNotBuilt
	}

	m, ok := c.meshes[name]
	if !ok {
		return nil, liberrors.ErrUnknownMesh(fmt.Sprintf("mesh %s is not configured", name))
	}

	return m, nil
}

// Scope resolves a scope name, "global", "extruder:<n>" or "mesh:<name>", to its settings
func (c *Config) Scope(name string) (settings.Resolver, error) {
	if c.global == nil {
		return nil, liberrors.ErrNotBuilt
	}

	switch {
	case name == ScopeGlobal || name == "":
		return c.global, nil
	case strings.HasPrefix(name, ScopeExtruderPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(name, ScopeExtruderPrefix))
		if err != nil {
			return nil, liberrors.ErrUnknownScope(fmt.Sprintf("invalid extruder scope %s", name))
		}
		view, err := c.Extruder(n)
		if err != nil {
			return nil, err
		}
		return view, nil
	case strings.HasPrefix(name, ScopeMeshPrefix):
		mesh, err := c.Mesh(strings.TrimPrefix(name, ScopeMeshPrefix))
		if err != nil {
			return nil, err
		}
		return mesh, nil
	default:
		return nil, liberrors.ErrUnknownScope(fmt.Sprintf("unknown scope %s", name))
	}
}

// Scopes returns the names of all scopes of the built configuration, global first, then extruders, then meshes in
// configuration order.
func (c *Config) Scopes() []string {
	if c.global == nil {
		return nil
	}

	scopes := []string{ScopeGlobal}
	for i := range c.views {
		scopes = append(scopes, ScopeExtruderPrefix+strconv.Itoa(i))
	}
	for _, m := range c.Meshes {
		scopes = append(scopes, ScopeMeshPrefix+m.Name)
	}

	return scopes
}

// Dump returns every setting visible from the named scope, minus the settings hidden by the filters of the scope.
// Nothing is cached or logged for keys that were never set.
func (c *Config) Dump(scope string) (map[string]string, error) {
	r, err := c.Scope(scope)
	if err != nil {
		return nil, err
	}

	if scope == "" {
		scope = ScopeGlobal
	}

	values := settings.Flatten(r)
	for key, value := range values {
		hidden, err := c.Filters.Match(scope, filter.Setting{Key: key, Value: value})
		if err != nil {
			return nil, err
		}

		if hidden {
			c.Log.
				WithField("scope", scope).
				WithField("key", key).
				Trace("setting hidden by filter")
			delete(values, key)
		}
	}

	return values, nil
}
