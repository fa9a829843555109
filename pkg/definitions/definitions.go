// Package definitions reads setting definition files into the registry. Definition files are JSON documents with a
// top level "settings" object. Each entry is keyed by the setting name and may nest further settings under
// "children", which is how categories group settings and how a setting inherits its default from another one.
package definitions

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	liberrors "github.com/ekristen/libslice/pkg/errors"
	"github.com/ekristen/libslice/pkg/registry"
)

// Parse converts a definition document into registrations, in document order with every parent listed before its
// children.
func Parse(data []byte) ([]*registry.Registration, error) {
	if !gjson.ValidBytes(data) {
		return nil, liberrors.ErrInvalidDefinition("definition is not valid JSON")
	}

	root := gjson.GetBytes(data, "settings")
	if !root.Exists() {
		return nil, liberrors.ErrInvalidDefinition("definition has no settings object")
	}
	if !root.IsObject() {
		return nil, liberrors.ErrInvalidDefinition("definition settings must be an object")
	}

	var regs []*registry.Registration
	if err := walk(root, "", "", &regs); err != nil {
		return nil, err
	}

	return regs, nil
}

// LoadFile reads and parses the definition file at path
func LoadFile(path string) ([]*registry.Registration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	regs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return regs, nil
}

// Register adds the registrations to the process wide registry and returns how many were added. Settings that are
// already registered are kept as they are, which allows a machine specific definition to be loaded after the base
// definition it extends.
func Register(regs []*registry.Registration, log *logrus.Entry) int {
	if log == nil {
		// The only way output is logged is if the instantiating tool provides a logger
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logger.WithField("component", "definitions")
	}

	added := 0
	for _, r := range regs {
		if registry.SettingExists(r.Name) {
			log.WithField("name", r.Name).Debug("setting already registered, skipping")
			continue
		}

		registry.Register(r)
		added++
	}

	return added
}

func walk(settings gjson.Result, parent, category string, regs *[]*registry.Registration) error {
	var err error

	settings.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if !value.IsObject() {
			err = liberrors.ErrInvalidDefinition(fmt.Sprintf("setting %s must be an object", name))
			return false
		}

		r := &registry.Registration{
			Name:        name,
			Label:       value.Get("label").String(),
			Description: value.Get("description").String(),
			Type:        value.Get("type").String(),
			Unit:        value.Get("unit").String(),
			Default:     stringify(value.Get("default_value")),
			Category:    category,
			Parent:      parent,
		}

		if r.Category == "" {
			r.Category = name
		}

		value.Get("options").ForEach(func(option, _ gjson.Result) bool {
			r.Options = append(r.Options, option.String())
			return true
		})

		*regs = append(*regs, r)

		children := value.Get("children")
		if children.Exists() {
			if !children.IsObject() {
				err = liberrors.ErrInvalidDefinition(fmt.Sprintf("children of %s must be an object", name))
				return false
			}
			if err = walk(children, name, r.Category, regs); err != nil {
				return false
			}
		}

		return true
	})

	return err
}

// stringify renders a JSON default value the way it is written in a settings file
func stringify(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
