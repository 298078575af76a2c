package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npillmayer/vstyle/color"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - attribute names
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for mark headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for resolved values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

// printTitle prints a heading.
func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printAttribute prints a resolved attribute value. Colors are preceded by
// a swatch.
func printAttribute(w io.Writer, attr string, v any) {
	fmt.Fprintln(w, "    "+styleKey.Render(attr)+" "+formatValue(v))
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return StyleDim.Render("undefined")
	case string:
		if c, err := color.Parse(x); err == nil {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render("  ")
			return swatch + " " + StyleValue.Render(x)
		}
		return StyleValue.Render(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + formatValue(x[k])
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case []map[string]any:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = formatValue(el)
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	}
	return StyleValue.Render(fmt.Sprintf("%v", v))
}
