package mark

import (
	"fmt"
	"strings"
)

// Level is the priority of a style write. A write replaces (merges into)
// the stored style only if its level is at least the stored level.
type Level int

// Priority levels, from lowest to highest.
const (
	LevelDefault Level = iota
	LevelTheme
	LevelChart
	LevelBaseSeries
	LevelSeries
	LevelMark
	LevelUserChart
	LevelUserSeries
	LevelUserMark
	LevelUserSeriesStyle
	LevelBuiltIn Level = 99
)

var levelNames = map[Level]string{
	LevelDefault:         "default",
	LevelTheme:           "theme",
	LevelChart:           "chart",
	LevelBaseSeries:      "baseSeries",
	LevelSeries:          "series",
	LevelMark:            "mark",
	LevelUserChart:       "userChart",
	LevelUserSeries:      "userSeries",
	LevelUserMark:        "userMark",
	LevelUserSeriesStyle: "userSeriesStyle",
	LevelBuiltIn:         "builtIn",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// IsUser is true for levels of user-supplied chart, series and mark specs.
// Styles written at these levels are subject to the user attribute filter.
func (l Level) IsUser() bool {
	return l == LevelUserChart || l == LevelUserSeries || l == LevelUserMark
}

// ParseLevel finds a level by name, case-insensitive.
func ParseLevel(name string) (Level, bool) {
	for l, n := range levelNames {
		if strings.EqualFold(n, name) {
			return l, true
		}
	}
	return LevelDefault, false
}
