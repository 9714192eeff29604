// Package report renders diagnostics the way spec.md §6.1's CLI surface
// requires them printed: one line per diagnostic plus source context,
// colorized when writing to a terminal. It is ambient stack this repo
// carries the way the teacher's internal/diagfmt package does, adapted
// down to this repo's simpler Diagnostic/Span shapes (SPEC_FULL.md §2).
package report

import (
	"os"

	"golang.org/x/term"
)

// ColorMode mirrors the --color=auto|on|off flag of spec.md §6.1.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// Resolve turns a --color flag value into a concrete on/off decision,
// consulting the terminal only for "auto", the same way the teacher's
// cmd/surge isTerminal helper gates its own default.
func Resolve(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}
