package canvas

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour. It implements color.Color.
type Color = colorful.Color

// Hex parses a CSS-style hex colour ("#rgb" or "#rrggbb").
func Hex(s string) (Color, error) {
	if len(s) == 4 && strings.HasPrefix(s, "#") {
		s = fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("canvas: invalid colour %q: %w", s, err)
	}
	return c, nil
}

// MustHex is like Hex but panics on malformed input. Intended for constants.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
