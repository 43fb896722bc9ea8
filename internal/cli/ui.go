package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal colors (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorCmd    = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255") // white
	colorMuted  = lipgloss.Color("245") // gray
	colorFaint  = lipgloss.Color("240") // dim gray
)

// Exported styles, shared by commands that compose their own lines.
var (
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorValue)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand = lipgloss.NewStyle().Foreground(colorCmd)
)

// Status markers.
const (
	markOK     = "✓"
	markWarn   = "!"
	markInfo   = "›"
	markFile   = "→"
	markCached = "cached"
	markFresh  = "fresh"
)

// status prints "<mark> <msg>" on stdout with the mark styled.
func status(mark lipgloss.Style, symbol, msg string) {
	fmt.Println(mark.Render(symbol) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(styleOK, markOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(StyleWarning, markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleMuted, markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(markFile) + " " + StyleValue.Render(path))
}

// statsLine summarizes a run as "  64×64 · 4095 edges · 12ms · fresh".
// Zero values are left out; the cache status is always shown.
func statsLine(size, edges int, elapsed time.Duration, cached bool) string {
	var fields []string
	if size > 0 {
		fields = append(fields, StyleDim.Render(fmt.Sprintf("%d×%d", size, size)))
	}
	if edges > 0 {
		fields = append(fields, StyleDim.Render(fmt.Sprintf("%d edges", edges)))
	}
	if elapsed > 0 {
		fields = append(fields, StyleDim.Render(elapsed.Round(time.Millisecond).String()))
	}
	if cached {
		fields = append(fields, styleOK.Render(markCached))
	} else {
		fields = append(fields, styleMuted.Render(markFresh))
	}
	return "  " + strings.Join(fields, StyleDim.Render(" · "))
}

func printStats(size, edges int, elapsed time.Duration, cached bool) {
	fmt.Println(statsLine(size, edges, elapsed, cached))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
