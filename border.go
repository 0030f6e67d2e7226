package axon

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	polaroidWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	captionInk    = color.NRGBA{R: 60, G: 56, B: 54, A: 255}
)

// BorderLayout describes how a bordered canvas is partitioned in pixel
// space: the full canvas, the interior the source lands in, and the
// caption band beneath it. All rectangles are in canvas coordinates.
type BorderLayout struct {
	Canvas  image.Rectangle
	Image   image.Rectangle
	Caption image.Rectangle
}

// PolaroidLayout computes the frame geometry for a source of the given
// pixel dimensions. Margins are proportional per axis, and the caption
// band is the classic thick polaroid bottom, present with or without
// caption text. The framed canvas must be proportionally taller than
// the source, since that is what turns the band into extra grid rows,
// so the side margin is capped to keep 5*marginY*srcW > 2*marginX*srcH
// for every source size, narrow slivers included.
func PolaroidLayout(srcW, srcH int) BorderLayout {
	marginY := srcH / 20
	if marginY < 8 {
		marginY = 8
	}
	marginX := srcW / 20
	if marginX < 8 {
		marginX = 8
	}
	if srcH > 0 {
		if limit := (5*marginY*srcW - 1) / (2 * srcH); marginX > limit {
			marginX = limit
		}
	}
	if marginX < 0 {
		marginX = 0
	}
	band := marginY * 4

	canvasW := srcW + 2*marginX
	canvasH := srcH + marginY + band
	return BorderLayout{
		Canvas:  image.Rect(0, 0, canvasW, canvasH),
		Image:   image.Rect(marginX, marginY, marginX+srcW, marginY+srcH),
		Caption: image.Rect(marginX, marginY+srcH, marginX+srcW, canvasH),
	}
}

// ComposePolaroid copies src onto a white polaroid canvas at native
// resolution, so the frame and caption go through resampling and
// dithering like any other pixel data. The caption, when non-empty, is
// rasterized into the band; the source image itself is never written.
func ComposePolaroid(src image.Image, caption string) (*image.NRGBA, BorderLayout) {
	bounds := src.Bounds()
	layout := PolaroidLayout(bounds.Dx(), bounds.Dy())

	canvas := image.NewNRGBA(layout.Canvas)
	draw.Draw(canvas, layout.Canvas, image.NewUniform(polaroidWhite), image.Point{}, draw.Src)
	draw.Draw(canvas, layout.Image, src, bounds.Min, draw.Src)

	if caption != "" {
		drawCaption(canvas, layout.Caption, caption)
	}
	return canvas, layout
}

// drawCaption rasterizes text centered in the caption band. The glyphs
// are drawn at basicfont scale and then nearest-upscaled to roughly a
// third of the band height, so the caption survives the later
// downsample to terminal cells.
func drawCaption(canvas *image.NRGBA, band image.Rectangle, text string) {
	face := basicfont.Face7x13
	scale := band.Dy() / (3 * face.Height)
	if scale < 1 {
		scale = 1
	}

	// Trim the caption until it fits the band at the chosen scale.
	runes := []rune(text)
	for len(runes) > 0 && font.MeasureString(face, string(runes)).Ceil()*scale > band.Dx() {
		runes = runes[:len(runes)-1]
	}
	if len(runes) == 0 {
		return
	}
	text = string(runes)

	textW := font.MeasureString(face, text).Ceil()
	strip := image.NewNRGBA(image.Rect(0, 0, textW, face.Height))
	draw.Draw(strip, strip.Bounds(), image.NewUniform(polaroidWhite), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(captionInk),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(text)

	dstW := textW * scale
	dstH := face.Height * scale
	dstX := band.Min.X + (band.Dx()-dstW)/2
	dstY := band.Min.Y + (band.Dy()-dstH)/2
	dst := image.Rect(dstX, dstY, dstX+dstW, dstY+dstH)

	xdraw.NearestNeighbor.Scale(canvas, dst, strip, strip.Bounds(), xdraw.Src, nil)
}
