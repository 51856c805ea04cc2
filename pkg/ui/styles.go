package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("205") // Pinkish
	infoColor    = lipgloss.Color("39")  // Blue
	successColor = lipgloss.Color("42")  // Green
	warnColor    = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("160") // Red
	subtleColor  = lipgloss.Color("241") // Grey

	// Styles
	bannerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	infoBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(infoColor).
			Padding(0, 1).
			Bold(true).
			SetString("INFO")

	successBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(successColor).
			Padding(0, 1).
			Bold(true).
			SetString("SUCCESS")

	warnBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(warnColor).
			Padding(0, 1).
			Bold(true).
			SetString("WARN")

	errorBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(errorColor).
			Padding(0, 1).
			Bold(true).
			SetString("ERROR")

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	targetStyle = lipgloss.NewStyle().
			Foreground(successColor)
)

var out io.Writer = os.Stdout

// SetOutput redirects every message of this package to w.
func SetOutput(w io.Writer) {
	out = w
}

// Output returns the writer messages go to.
func Output() io.Writer {
	return out
}

// PrintBanner prints the sanename banner
func PrintBanner() {
	fmt.Fprintln(out, bannerStyle.Render("sanename"))
	fmt.Fprintln(out)
}

// Info prints an info message
func Info(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(out, "%s %s\n", infoBadge.String(), textStyle.Render(msg))
}

// Success prints a success message
func Success(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(out, "%s %s\n", successBadge.String(), textStyle.Render(msg))
}

// Warn prints a warning message
func Warn(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(out, "%s %s\n", warnBadge.String(), textStyle.Render(msg))
}

// Error prints an error message
func Error(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(out, "%s %s\n", errorBadge.String(), textStyle.Render(msg))
}

// Subtle returns s in the dimmed style
func Subtle(s string) string {
	return subtleStyle.Render(s)
}

// Arrow formats one rename as "from -> to", padding from to width.
func Arrow(from, to string, width int) string {
	pad := width - lipgloss.Width(from)
	if pad < 0 {
		pad = 0
	}
	return textStyle.Render(from) + strings.Repeat(" ", pad) + subtleStyle.Render(" -> ") + targetStyle.Render(to)
}
