package axon

import (
	"fmt"
	"image"
	"strings"
)

// halfBlock is the upper half block glyph. One terminal cell shows two
// stacked pixels: the top as the foreground color, the bottom as the
// background color.
const halfBlock = '▀'

// Cell is one terminal character position holding two quantized pixel
// colors as palette indices.
type Cell struct {
	Fg uint8 // top pixel
	Bg uint8 // bottom pixel
}

// CellGrid is the pipeline's terminal-ready output: rows of cells in
// top-to-bottom order plus the palette their indices resolve against.
type CellGrid struct {
	Cols    int
	Rows    int
	Cells   [][]Cell
	Palette *Palette
}

// PackCells folds a quantized index grid into half-block cells. The
// index slice is row-major over cols x pixelRows, and pixelRows must be
// even: cell (r, c) takes its foreground from pixel row 2r and its
// background from pixel row 2r+1.
func PackCells(indices []uint8, cols, pixelRows int, p *Palette) (*CellGrid, error) {
	if cols <= 0 || pixelRows <= 0 {
		return nil, fmt.Errorf("pack cells: grid %dx%d is not positive", cols, pixelRows)
	}
	if pixelRows%2 != 0 {
		return nil, fmt.Errorf("pack cells: pixel row count %d is odd", pixelRows)
	}
	if len(indices) != cols*pixelRows {
		return nil, fmt.Errorf("pack cells: have %d indices for a %dx%d grid", len(indices), cols, pixelRows)
	}

	rows := pixelRows / 2
	cells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		row := make([]Cell, cols)
		top := indices[(2*r)*cols : (2*r+1)*cols]
		bottom := indices[(2*r+1)*cols : (2*r+2)*cols]
		for c := 0; c < cols; c++ {
			row[c] = Cell{Fg: top[c], Bg: bottom[c]}
		}
		cells[r] = row
	}

	return &CellGrid{Cols: cols, Rows: rows, Cells: cells, Palette: p}, nil
}

// Lines serializes each cell row into a 256-color escape string ending
// in a reset, ready to print one per terminal line.
func (g *CellGrid) Lines() []string {
	lines := make([]string, g.Rows)
	var b strings.Builder
	for r, row := range g.Cells {
		b.Reset()
		// ~20 bytes of escapes per cell.
		b.Grow(g.Cols * 24)
		var last Cell
		for c, cell := range row {
			if c == 0 || cell != last {
				fmt.Fprintf(&b, "\x1b[38;5;%d;48;5;%dm", cell.Fg, cell.Bg)
				last = cell
			}
			b.WriteRune(halfBlock)
		}
		b.WriteString("\x1b[0m")
		lines[r] = b.String()
	}
	return lines
}

// String joins the escape lines with newlines.
func (g *CellGrid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// ToImage reconstructs the quantized pixel grid from the cells, two
// pixel rows per cell row. Useful for previews and for tests that
// check the packing round-trips.
func (g *CellGrid) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows*2))
	for r, row := range g.Cells {
		for c, cell := range row {
			out.SetNRGBA(c, 2*r, g.Palette.At(cell.Fg))
			out.SetNRGBA(c, 2*r+1, g.Palette.At(cell.Bg))
		}
	}
	return out
}
