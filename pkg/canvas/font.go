package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// Font describes a text face by pixel size and family name.
type Font struct {
	Size   float64
	Family string
}

// String formats the font in CSS shorthand, e.g. "14px Arial".
func (f Font) String() string {
	return strconv.FormatFloat(f.Size, 'f', -1, 64) + "px " + f.Family
}

// ParseFont parses CSS shorthand of the form "<size>px <family>".
func ParseFont(s string) (Font, error) {
	size, family, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok || !strings.HasSuffix(size, "px") {
		return Font{}, fmt.Errorf("canvas: invalid font %q", s)
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(size, "px"), 64)
	if err != nil || px <= 0 {
		return Font{}, fmt.Errorf("canvas: invalid font size in %q", s)
	}
	return Font{Size: px, Family: strings.TrimSpace(family)}, nil
}

// MustParseFont is like ParseFont but panics on malformed input.
func MustParseFont(s string) Font {
	f, err := ParseFont(s)
	if err != nil {
		panic(err)
	}
	return f
}
