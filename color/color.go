/*
Package color provides color handling for style resolution.

Colors travel through the style engine as strings, exactly as users write
them in specs and themes: hex notation, functional rgb()/rgba() notation or
CSS color names. This package parses these strings, blends opacity into
them, interpolates between them, and computes theme-derived color schemes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/colornames"
)

// tracer traces with key 'vstyle.color'.
func tracer() tracing.Trace {
	return tracing.Select("vstyle.color")
}

// RGBA is a color with an alpha channel. Color channels are in [0…1].
type RGBA struct {
	colorful.Color
	A float64
}

// Transparent is the fully transparent color.
var Transparent = RGBA{A: 0}

// Parse reads a color string. Supported are
//
//     #rgb  #rgba  #rrggbb  #rrggbbaa
//     rgb(r, g, b)  rgba(r, g, b, a)
//     transparent
//
// and all CSS/SVG color names.
func Parse(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return RGBA{}, fmt.Errorf("empty color")
	case s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		cf, _ := colorful.MakeColor(c)
		return RGBA{Color: cf, A: 1}, nil
	}
	return RGBA{}, fmt.Errorf("not a color: %q", s)
}

// IsColor is a predicate for parsable color strings.
func IsColor(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func parseHex(s string) (RGBA, error) {
	alpha := 1.0
	switch len(s) {
	case 5: // #rgba
		a, err := strconv.ParseUint(s[4:5], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("not a color: %q", s)
		}
		alpha = float64(a*17) / 255
		s = s[:4]
	case 9: // #rrggbbaa
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("not a color: %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("not a color: %q", s)
	}
	return RGBA{Color: c, A: alpha}, nil
}

func parseFunctional(s string) (RGBA, error) {
	lp, rp := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lp < 0 || rp < lp {
		return RGBA{}, fmt.Errorf("not a color: %q", s)
	}
	args := strings.Split(s[lp+1:rp], ",")
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, fmt.Errorf("not a color: %q", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, arg := range args {
		x, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return RGBA{}, fmt.Errorf("not a color: %q", s)
		}
		if i < 3 {
			x /= 255
		}
		ch[i] = clamp01(x)
	}
	return RGBA{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, A: ch[3]}, nil
}

// String returns hex notation for opaque colors and rgba() notation otherwise.
func (c RGBA) String() string {
	if c.A >= 1 {
		return c.Clamped().Hex()
	}
	return c.RGBAString()
}

// RGBAString returns the color in rgba() notation.
func (c RGBA) RGBAString() string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(clamp01(c.A), 'f', -1, 64))
}

// SetOpacity replaces the alpha channel of a color string with opacity and
// returns the result in rgba() notation. Strings which cannot be parsed as
// a color are returned unchanged.
func SetOpacity(s string, opacity float64) string {
	c, err := Parse(s)
	if err != nil {
		tracer().Debugf("cannot set opacity of %q: %v", s, err)
		return s
	}
	c.A = clamp01(opacity)
	return c.RGBAString()
}

// Lerp interpolates between two color strings in RGB space, with t in [0…1].
// ok is false if one of the colors cannot be parsed.
func Lerp(from, to string, t float64) (string, bool) {
	c1, err := Parse(from)
	if err != nil {
		return "", false
	}
	c2, err := Parse(to)
	if err != nil {
		return "", false
	}
	t = clamp01(t)
	c := RGBA{
		Color: c1.BlendRgb(c2.Color, t),
		A:     c1.A + t*(c2.A-c1.A),
	}
	return c.String(), true
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
