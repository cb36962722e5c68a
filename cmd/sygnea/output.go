package main

import "fmt"

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func (a *app) colorize(color, text string) string {
	if a.noColor {
		return text
	}
	return color + text + colorReset
}

func (a *app) printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(a.errOut, a.colorize(colorGreen, "✓ "+msg))
}

func (a *app) printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(a.errOut, a.colorize(colorRed, "✗ "+msg))
}

func (a *app) printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(a.errOut, a.colorize(colorYellow, "⚠ "+msg))
}

func (a *app) printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := a.colorize(colorBold, label+":")
	fmt.Fprintf(a.errOut, "  %s %s\n", l, val)
}

func (a *app) printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(a.errOut, a.colorize(colorCyan, "→ "+msg))
}
