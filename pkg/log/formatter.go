package log

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders setting diagnostics as "<scope> - <key> - <value> - <message>". The scope is the "scope"
// field of the entry, or its "component" when there is none. Entries without a key field are rendered as
// "<scope> - <message>".
type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return nil, nil
	}

	component, _ := entry.Data["scope"].(string)
	if component == "" {
		component, _ = entry.Data["component"].(string)
	}
	if component == "" {
		component = "libslice"
	}

	msgColor := LevelColor(entry.Level)

	key, ok := entry.Data["key"].(string)
	if !ok {
		return []byte(fmt.Sprintf("%s - %s\n", ColorScope.Sprint(component), msgColor.Sprint(entry.Message))), nil
	}

	value := ""
	if v, ok := entry.Data["value"]; ok {
		value = fmt.Sprint(v)
	}

	return []byte(Line(component, key, value, msgColor, entry.Message)), nil
}
