// Package term provides color state and terminal detection.
//
// Colors are package-level values because multiple packages (logging,
// display) need them for output formatting. [Configure] enables or disables
// them once during startup; when disabled every color prints its input
// unchanged.
package term

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/xyproto/env/v2"

	"github.com/sccasc/cmipclean/internal/config"
)

// Bold bright colors used by the logger and banner.
var (
	Red     = color.New(color.Bold, color.FgHiRed)
	Green   = color.New(color.Bold, color.FgHiGreen)
	Yellow  = color.New(color.Bold, color.FgHiYellow)
	Blue    = color.New(color.Bold, color.FgHiBlue)
	Cyan    = color.New(color.Bold, color.FgHiCyan)
	Magenta = color.New(color.Bold, color.FgHiMagenta)
)

// Configure resolves the color mode and switches colored output on or off
// for the whole process. Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	color.NoColor = !resolve(mode)
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return !color.NoColor }

// Paint renders s in c when colors are enabled and returns it unchanged
// otherwise.
func Paint(c *color.Color, s string) string {
	if color.NoColor {
		return s
	}
	return c.Sprint(s)
}

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			env.Str("NO_COLOR") == "" &&
			strings.ToLower(env.Str("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
