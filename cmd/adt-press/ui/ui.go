// Package ui provides terminal output helpers for the adt-press CLI.
package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

var quietFlag bool

// InitUI initializes the UI with color and quiet settings.
func InitUI(noColor, quiet bool) {
	quietFlag = quiet
	if noColor {
		color.NoColor = true
	}
}

// Info displays an informational message.
func Info(format string, args ...interface{}) {
	if quietFlag {
		return
	}
	fmt.Fprintf(os.Stdout, "%s %s\n", color.CyanString("ℹ"), fmt.Sprintf(format, args...))
}

// Success displays a success message.
func Success(format string, args ...interface{}) {
	if quietFlag {
		return
	}
	fmt.Fprintf(os.Stdout, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Warning displays a warning message.
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "%s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}

// Error displays an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}

// Newline prints a newline.
func Newline() {
	if quietFlag {
		return
	}
	fmt.Fprintln(os.Stdout)
}

// Section displays a section header.
func Section(title string) {
	if quietFlag {
		return
	}
	fmt.Fprintf(os.Stdout, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}

// Table displays data in a formatted table.
func Table(headers []string, rows [][]string) {
	if quietFlag {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(w, strings.Join(separator, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
}

// FormatDuration renders a duration for display, trimming sub-second noise.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
