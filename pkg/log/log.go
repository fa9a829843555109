// Package log provides the console rendering used for setting diagnostics and setting dumps.
package log

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	LevelTrace = *color.New(color.FgHiBlack)
	LevelDebug = *color.New(color.FgBlue)
	LevelInfo  = *color.New(color.FgGreen)
	LevelWarn  = *color.New(color.FgYellow)
	LevelError = *color.New(color.FgRed)
)

var (
	ColorScope = *color.New(color.Bold)
	ColorKey   = *color.New(color.Bold)
	ColorValue = *color.New(color.Italic)
)

// LevelColor returns the color messages of the given level are printed in
func LevelColor(level logrus.Level) color.Color {
	switch level {
	case logrus.TraceLevel:
		return LevelTrace
	case logrus.DebugLevel:
		return LevelDebug
	case logrus.InfoLevel:
		return LevelInfo
	case logrus.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

// Sorted -- Format the settings in sorted order ready for printing.
// This ensures that multiple dumps of the same configuration produce stable output so
// that they can be compared with each other.
func Sorted(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sorted := make([]string, 0, len(m))
	for k := range keys {
		sorted = append(sorted, fmt.Sprintf("%s: %q", keys[k], m[keys[k]]))
	}
	return fmt.Sprintf("[%s]", strings.Join(sorted, ", "))
}

// Line renders a single setting line as "<scope> - <key> - \"<value>\" - <message>", leaving out an empty value or
// message
func Line(scope, key, value string, c color.Color, msg string) string {
	parts := []string{ColorScope.Sprint(scope), ColorKey.Sprint(key)}
	if value != "" {
		parts = append(parts, ColorValue.Sprintf("%q", value))
	}
	if msg != "" {
		parts = append(parts, c.Sprint(msg))
	}
	return strings.Join(parts, " - ") + "\n"
}
