package axon

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"sync"

	"github.com/soniakeys/quant/median"
)

// PaletteSize is the fixed entry count of every palette. Terminal
// 256-color escapes address exactly this range.
const PaletteSize = 256

// SampleMode selects how a LUT swatch is reduced to one color.
type SampleMode int

const (
	// SampleCenter reads the swatch's center pixel. Tolerates ringing
	// at swatch edges from lossy recompression.
	SampleCenter SampleMode = iota
	// SampleAverage averages every pixel in the swatch block.
	SampleAverage
)

// Palette is an ordered table of exactly 256 colors. Entry i is the
// color emitted for terminal escape index i. Palettes are immutable
// after construction; switching palettes is a substitution, never a
// merge.
type Palette struct {
	name   string
	colors [PaletteSize]color.NRGBA

	once    sync.Once
	tree    *colorNode
	spacing float64

	palOnce sync.Once
	pal     color.Palette
}

var (
	ansiOnce    sync.Once
	ansiPalette *Palette
)

// The 6x6x6 color cube occupies indices 16-231. Each axis has six
// levels, and the grayscale ramp at 232-255 steps by 10 from 8.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// The first 16 entries are the xterm default system colors.
var systemColors = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// ANSI256 returns the fixed ANSI 256-color table: 16 system colors,
// the 6x6x6 cube, and the 24-step grayscale ramp. The table is built
// once and shared process-wide.
func ANSI256() *Palette {
	ansiOnce.Do(func() {
		p := &Palette{name: "ansi256"}
		for i, c := range systemColors {
			p.colors[i] = color.NRGBA{R: c[0], G: c[1], B: c[2], A: 255}
		}
		for r := 0; r < 6; r++ {
			for g := 0; g < 6; g++ {
				for b := 0; b < 6; b++ {
					idx := 16 + 36*r + 6*g + b
					p.colors[idx] = color.NRGBA{
						R: cubeLevels[r],
						G: cubeLevels[g],
						B: cubeLevels[b],
						A: 255,
					}
				}
			}
		}
		for i := 0; i < 24; i++ {
			v := uint8(8 + 10*i)
			p.colors[232+i] = color.NRGBA{R: v, G: v, B: v, A: 255}
		}
		ansiPalette = p
	})
	return ansiPalette
}

// NewPalette builds a palette from exactly 256 colors in index order.
func NewPalette(name string, colors []color.NRGBA) (*Palette, error) {
	if len(colors) != PaletteSize {
		return nil, fmt.Errorf("palette %q: need %d colors, got %d", name, PaletteSize, len(colors))
	}
	p := &Palette{name: name}
	copy(p.colors[:], colors)
	return p, nil
}

// LoadLUT parses a palette from an image laid out as a 16x16 grid of
// uniformly tiled swatches, read in row-major index order. Image
// dimensions must be positive multiples of 16 or the import fails with
// a PaletteFormatError and the caller's current palette stays active.
func LoadLUT(r io.Reader, name string, mode SampleMode) (*Palette, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &PaletteFormatError{Err: err}
	}
	return LUTFromImage(img, name, mode)
}

// LoadLUTFile is LoadLUT reading from a file path, named after the file.
func LoadLUTFile(path string, mode SampleMode) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PaletteFormatError{Err: err}
	}
	defer f.Close()
	return LoadLUT(f, path, mode)
}

// LUTFromImage builds a palette from an already decoded LUT image.
func LUTFromImage(img image.Image, name string, mode SampleMode) (*Palette, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || w%16 != 0 || h%16 != 0 {
		return nil, &PaletteFormatError{Width: w, Height: h}
	}

	swatchW, swatchH := w/16, h/16
	p := &Palette{name: name}
	for row := 0; row < 16; row++ {
		for col := 0; col < 16; col++ {
			x0 := bounds.Min.X + col*swatchW
			y0 := bounds.Min.Y + row*swatchH
			var c color.NRGBA
			switch mode {
			case SampleAverage:
				c = averageBlock(img, x0, y0, swatchW, swatchH)
			default:
				c = nrgbaAt(img, x0+swatchW/2, y0+swatchH/2)
			}
			p.colors[row*16+col] = c
		}
	}
	return p, nil
}

// PaletteFromImage derives a 256-color palette from the image itself
// using median-cut quantization. When the image holds fewer distinct
// colors than 256, the last bucket color pads the remaining entries so
// the 256-entry invariant holds.
func PaletteFromImage(img image.Image, name string) *Palette {
	quantizer := median.Quantizer(PaletteSize)
	derived := quantizer.Palette(img).ColorPalette()

	p := &Palette{name: name}
	last := color.NRGBA{A: 255}
	for i := 0; i < PaletteSize; i++ {
		if i < len(derived) {
			r, g, b, _ := derived[i].RGBA()
			last = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
		}
		p.colors[i] = last
	}
	return p
}

// Name returns the palette's display name.
func (p *Palette) Name() string { return p.name }

// At returns the color stored at palette index i.
func (p *Palette) At(i uint8) color.NRGBA { return p.colors[i] }

// ColorPalette returns the table as a color.Palette for libraries that
// speak the standard image/color interfaces. The slice is built once
// and must not be mutated.
func (p *Palette) ColorPalette() color.Palette {
	p.palOnce.Do(func() {
		p.pal = make(color.Palette, PaletteSize)
		for i := range p.colors {
			p.pal[i] = p.colors[i]
		}
	})
	return p.pal
}

// NearestIndex returns the palette index whose color minimizes squared
// Euclidean RGB distance to the given channels. Ties resolve to the
// lowest index, so duplicate colors always map to their first entry.
func (p *Palette) NearestIndex(r, g, b uint8) uint8 {
	p.build()
	_, idx := p.tree.nearest(r, g, b)
	return idx
}

// Spacing reports the mean distance between each entry and its nearest
// distinct neighbor. Ordered dithering scales its perturbation to this
// value so texture strength tracks how coarse the palette is.
func (p *Palette) Spacing() float64 {
	p.build()
	return p.spacing
}

// build constructs the nearest-neighbor acceleration structures. They
// are keyed to this palette instance, so switching palettes naturally
// switches structures with no shared state to invalidate.
func (p *Palette) build() {
	p.once.Do(func() {
		entries := make([]paletteEntry, PaletteSize)
		for i, c := range p.colors {
			entries[i] = paletteEntry{r: c.R, g: c.G, b: c.B, index: uint8(i)}
		}
		p.tree = buildColorTree(entries, 0)
		p.spacing = meanNearestSpacing(p.colors[:])
	})
}

// meanNearestSpacing averages, over all entries, the Euclidean distance
// to the closest other entry with a different color. Duplicate-only
// palettes degenerate to a spacing of 1.
func meanNearestSpacing(colors []color.NRGBA) float64 {
	var total float64
	var counted int
	for i, a := range colors {
		best := math.MaxFloat64
		for j, b := range colors {
			if i == j || a == b {
				continue
			}
			d := sqDist(a.R, a.G, a.B, b.R, b.G, b.B)
			if fd := float64(d); fd < best {
				best = fd
			}
		}
		if best < math.MaxFloat64 {
			total += math.Sqrt(best)
			counted++
		}
	}
	if counted == 0 {
		return 1
	}
	return total / float64(counted)
}

func sqDist(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	r, g, b, _ := img.At(x, y).RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}

func averageBlock(img image.Image, x0, y0, w, h int) color.NRGBA {
	var sumR, sumG, sumB uint64
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
		}
	}
	n := uint64(w * h)
	return color.NRGBA{
		R: uint8((sumR + n/2) / n),
		G: uint8((sumG + n/2) / n),
		B: uint8((sumB + n/2) / n),
		A: 255,
	}
}
