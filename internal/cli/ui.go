package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/reactorsim/pkg/reactor"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorAmber  = lipgloss.Color("#c49b66") // Settling mixture - primary accent
	colorOil    = lipgloss.Color("#f7e48d") // Biodiesel - highlights
	colorGreen  = lipgloss.Color("35")      // Green - success
	colorYellow = lipgloss.Color("220")     // Amber - warnings
	colorRed    = lipgloss.Color("167")     // Soft red - errors
	colorBlue   = lipgloss.Color("75")      // Light blue - links
	colorWhite  = lipgloss.Color("255")     // Bright white - values
	colorGray   = lipgloss.Color("245")     // Gray - secondary text
	colorDim    = lipgloss.Color("240")     // Dim gray - muted text
)

// phaseColors tints the phase name in reports.
var phaseColors = map[reactor.Phase]lipgloss.Color{
	reactor.PhaseMixing:       lipgloss.Color("#c5b580"),
	reactor.PhaseIntermediate: lipgloss.Color("#c49b66"),
	reactor.PhaseSeparated:    lipgloss.Color("#b07a3a"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorOil)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAmber)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Frame Output
// =============================================================================

// formatPhase renders a phase name in its colour.
func formatPhase(p reactor.Phase) string {
	return lipgloss.NewStyle().Foreground(phaseColors[p]).Bold(true).Render(p.String())
}

// formatCacheStatus renders the cached/fresh marker.
func formatCacheStatus(cached bool) string {
	if cached {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}

// printFrameSummary prints one dim line describing a frame.
func printFrameSummary(f reactor.Frame, cached bool) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%.1f%% · %.1f h · ", f.Progress, f.Volumes.Hours)) +
		formatPhase(f.Phase) + StyleDim.Render(" · ") + formatCacheStatus(cached))
}
