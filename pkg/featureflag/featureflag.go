// Package featureflag provides toggles for optional behavior of the library, parsed from a comma separated list such
// as "-UnregisteredSettingWarnings,+ApplyRegistryDefaults".
package featureflag

// Original Source https://github.com/kubernetes/kops/v1.28.2/pkg/featureflag/featureflag.go

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// UnregisteredSettingWarnings controls the warning logged when a setting that is not in the registry is written
	UnregisteredSettingWarnings = "UnregisteredSettingWarnings"

	// ApplyRegistryDefaults controls whether the global settings are seeded with the registered defaults
	ApplyRegistryDefaults = "ApplyRegistryDefaults"
)

// FeatureFlag defines a feature flag
type FeatureFlag struct {
	Key          string
	enabled      *bool
	defaultValue *bool
}

// Enabled checks if the flag is enabled
func (f *FeatureFlag) Enabled() bool {
	if f.enabled != nil {
		return *f.enabled
	}
	if f.defaultValue != nil {
		return *f.defaultValue
	}
	return false
}

// FeatureFlags defines a list of feature flags
type FeatureFlags struct {
	flags      map[string]*FeatureFlag
	flagsMutex sync.Mutex
}

// NewDefaults returns the feature flags known to the library with their default values
func NewDefaults() *FeatureFlags {
	ffc := &FeatureFlags{}
	ffc.New(UnregisteredSettingWarnings, Bool(true), nil)
	ffc.New(ApplyRegistryDefaults, Bool(true), nil)
	return ffc
}

// New creates a new feature flag, or returns the existing flag with the same key. An explicit value overrides the
// default value.
func (ffc *FeatureFlags) New(key string, defaultValue, value *bool) *FeatureFlag {
	ffc.flagsMutex.Lock()
	defer ffc.flagsMutex.Unlock()

	if ffc.flags == nil {
		ffc.flags = make(map[string]*FeatureFlag)
	}

	fl := ffc.flags[key]
	if fl == nil {
		fl = &FeatureFlag{
			Key: key,
		}
		ffc.flags[key] = fl
	}

	if fl.defaultValue == nil {
		fl.defaultValue = defaultValue
	}

	if value != nil {
		fl.enabled = value
	}

	return fl
}

// ParseFlags responsible for parse out the feature flag usage
func (ffc *FeatureFlags) ParseFlags(f string) {
	ffc.flagsMutex.Lock()
	defer ffc.flagsMutex.Unlock()

	f = strings.TrimSpace(f)
	for _, s := range strings.Split(f, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		enabled := true
		var ff *FeatureFlag
		if s[0] == '+' || s[0] == '-' {
			ff = ffc.flags[s[1:]]
			if s[0] == '-' {
				enabled = false
			}
		} else {
			ff = ffc.flags[s]
		}

		if ff != nil {
			logrus.Debugf("FeatureFlag %q=%v", ff.Key, enabled)
			ff.enabled = &enabled
		} else {
			logrus.Debugf("Unknown FeatureFlag %q", s)
		}
	}
}

// Get returns given FeatureFlag.
func (ffc *FeatureFlags) Get(flagName string) (*FeatureFlag, error) {
	ffc.flagsMutex.Lock()
	defer ffc.flagsMutex.Unlock()

	flag, found := ffc.flags[flagName]
	if !found {
		return nil, fmt.Errorf("flag %s not found", flagName)
	}

	return flag, nil
}

// Enabled reports whether the named flag is enabled, unknown flags are disabled
func (ffc *FeatureFlags) Enabled(flagName string) bool {
	flag, err := ffc.Get(flagName)
	if err != nil {
		return false
	}
	return flag.Enabled()
}

// Keys returns the sorted keys of all known flags
func (ffc *FeatureFlags) Keys() []string {
	ffc.flagsMutex.Lock()
	defer ffc.flagsMutex.Unlock()

	keys := make([]string, 0, len(ffc.flags))
	for k := range ffc.flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Bool returns a pointer to the boolean value
func Bool(b bool) *bool {
	return &b
}
