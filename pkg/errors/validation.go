package errors

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Bounds for user-supplied values.
const (
	MinProgress = 0.0
	MaxProgress = 100.0
	MinScale    = 0.25
	MaxScale    = 8.0
)

// ValidateProgress checks that p is a finite value within [0, 100]. User input
// is rejected here, not clamped.
func ValidateProgress(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return New(ErrCodeInvalidProgress, "progress must be a finite number")
	}
	if p < MinProgress || p > MaxProgress {
		return New(ErrCodeInvalidProgress, "progress %g out of range [%g, %g]", p, MinProgress, MaxProgress)
	}
	return nil
}

// ParseProgress parses and validates a progress value from text.
func ParseProgress(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidProgress, "progress cannot be empty")
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidProgress, err, "invalid progress %q", s)
	}
	if err := ValidateProgress(p); err != nil {
		return 0, err
	}
	return p, nil
}

// ValidateScale checks a raster scale factor.
func ValidateScale(s float64) error {
	if math.IsNaN(s) || s < MinScale || s > MaxScale {
		return New(ErrCodeInvalidScale, "scale %g out of range [%g, %g]", s, MinScale, MaxScale)
	}
	return nil
}

// ValidateFormats checks that every format is a key of valid.
func ValidateFormats(formats []string, valid map[string]bool) error {
	for _, f := range formats {
		if !valid[f] {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(keys(valid), ", "))
		}
	}
	return nil
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
