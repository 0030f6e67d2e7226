package axon

import (
	"os"

	"golang.org/x/term"
)

// DefaultColumns is the fallback width when no terminal is attached.
const DefaultColumns = 80

// DefaultMaxColumns caps auto-detected widths so very wide terminals
// still render at a readable size.
const DefaultMaxColumns = 100

// AutoColumns returns the attached terminal's column count, capped at
// DefaultMaxColumns, or DefaultColumns when detection fails.
func AutoColumns() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return DefaultColumns
	}
	if cols > DefaultMaxColumns {
		return DefaultMaxColumns
	}
	return cols
}
