package theme

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vstyle/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const darkTOML = `
name = "dark"

[[colorScheme.default]]
maxDomainLength = 2
colors = ["#5383F4", "#7BCF8E"]

[[colorScheme.default]]
colors = ["#FF9D2C", "red", "rgb(0, 0, 255)"]

[[colorScheme.series.pie]]
colors = ["#FF8A00"]
`

const darkYAML = `
name: dark
colorScheme:
  default:
    - maxDomainLength: 2
      colors: ['#5383F4', '#7BCF8E']
    - colors: ['#FF9D2C', red, 'rgb(0, 0, 255)']
  series:
    pie:
      - colors: ['#FF8A00']
`

func TestDecodeFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.theme")
	defer teardown()
	//
	for format, doc := range map[Format]string{TOML: darkTOML, YAML: darkYAML} {
		th, err := Decode(strings.NewReader(doc), format)
		require.NoError(t, err, "format %s", format)
		assert.Equal(t, "dark", th.Name)
		require.Len(t, th.ColorScheme.Default, 2)
		c, _ := th.Scheme().ThemeColor("bar", []any{"A", "B", "C"}).Get()
		assert.Equal(t, "#FF9D2C", c, "format %s", format)
		c, _ = th.Scheme().ThemeColor("pie", nil).Get()
		assert.Equal(t, "#FF8A00", c, "format %s", format)
	}
}

func TestDecodeCompletesDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.theme")
	defer teardown()
	//
	th, err := Decode(strings.NewReader("name: minimal\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, "minimal", th.Name)
	c, ok := th.Scheme().ThemeColor("", nil).Get()
	assert.True(t, ok)
	assert.Equal(t, DefaultPalette[0], c)

	th, err = Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, "light", th.Name)
}

func TestDecodeRejectsBadColors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.theme")
	defer teardown()
	//
	doc := "name: broken\ncolorScheme:\n  default:\n    - colors: ['#12345', 'not-a-color']\n"
	_, err := Decode(strings.NewReader(doc), YAML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTheme))
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("themes/dark.YML")
	assert.NoError(t, err)
	assert.Equal(t, YAML, f)
	_, err = FormatFromPath("theme.json")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
