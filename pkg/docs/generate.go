// Package docs generates reference documentation for the registered settings and for the keys of the configuration
// file.
package docs

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/ekristen/libslice/pkg/registry"
)

// GenerateOptionsMap maps the YAML keys of a configuration struct to the text of their description tag. The key is
// taken from the yaml tag, falling back to the field name. Fields tagged `yaml:"-"` are skipped. When a field is a
// struct, or a slice or map of structs, its keys are listed as well, prefixed with the parent key.
func GenerateOptionsMap(data interface{}) map[string]string {
	options := map[string]string{}

	if data == nil {
		return options
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	generateOptions(v.Type(), "", options)

	return options
}

func generateOptions(t reflect.Type, prefix string, options map[string]string) {
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		yamlTag := strings.Split(field.Tag.Get("yaml"), ",")
		if yamlTag[0] == "-" {
			continue
		}

		name := field.Name
		if yamlTag[0] != "" {
			name = yamlTag[0]
		}

		if prefix != "" {
			name = fmt.Sprintf("%s.%s", prefix, name)
		}

		options[name] = field.Tag.Get("description")

		elem := field.Type
		switch elem.Kind() {
		case reflect.Slice, reflect.Map:
			elem = elem.Elem()
		}
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}

		generateOptions(elem, name, options)
	}
}

// GenerateSettings writes a markdown reference of every registered setting to w. Settings are grouped by category
// in registry order, settings without a registered category are listed last under "Other".
func GenerateSettings(w io.Writer) error {
	defaults := registry.Defaults()

	var categories []*registry.Registration
	categorized := map[string]bool{}
	for _, name := range registry.GetNames() {
		r := registry.GetRegistration(name)
		if r.Type == registry.TypeCategory {
			categories = append(categories, r)
			categorized[name] = true
		}
	}

	var other []string
	for _, name := range registry.GetNames() {
		r := registry.GetRegistration(name)
		if r.Type != registry.TypeCategory && !categorized[r.Category] {
			other = append(other, name)
		}
	}

	for _, c := range categories {
		title := c.Label
		if title == "" {
			title = c.Name
		}

		names := registry.GetNamesForCategory(c.Name)
		if err := writeSection(w, title, c.Description, names, defaults); err != nil {
			return err
		}
	}

	if len(other) > 0 {
		return writeSection(w, "Other", "", other, defaults)
	}

	return nil
}

func writeSection(w io.Writer, title, description string, names []string, defaults map[string]string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", title)
	if description != "" {
		fmt.Fprintf(&b, "%s\n\n", escape(description))
	}

	b.WriteString("| Setting | Type | Unit | Default | Description |\n")
	b.WriteString("|---|---|---|---|---|\n")

	for _, name := range names {
		r := registry.GetRegistration(name)
		if r.Type == registry.TypeCategory {
			continue
		}

		def := ""
		if value, ok := defaults[name]; ok {
			def = fmt.Sprintf("`%s`", value)
		}

		desc := escape(r.Description)
		if len(r.Options) > 0 {
			desc = strings.TrimSpace(fmt.Sprintf("%s Options: %s.", desc, strings.Join(r.Options, ", ")))
		}

		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n", name, r.Type, escape(r.Unit), def, desc)
	}

	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
