/*
Package axon renders raster images as 256-color half-block text for
terminal display.

Each character cell encodes two vertically stacked pixels using the
upper half block glyph: the top pixel as the foreground color and the
bottom pixel as the background color. The pipeline resamples the
source to the terminal grid, optionally posterizes and dithers it
against the active 256-entry palette, quantizes every pixel to its
nearest palette index, and packs the result into cells.

Main features:

  - Selectable resampling kernels (nearest, bilinear, bicubic, Lanczos)
  - Floyd-Steinberg and Bayer ordered dithering against any palette
  - Fixed ANSI-256 table, LUT palettes imported from 16x16 swatch
    images, and median-cut palettes derived from the image itself
  - Optional polaroid-style framing with a rasterized caption band
  - JSON, PNG, and sixel export of rendered frames
  - An interactive Bubble Tea tuner with live re-render

Basic Usage:

	// Simple one-liner
	axon.PrintFile("image.png")

	// With configuration
	img, err := axon.Open("image.png")
	if err != nil {
	    log.Fatal(err)
	}

	err = img.Width(80).Filter(axon.FilterLanczos).Print()
	if err != nil {
	    log.Fatal(err)
	}

Fluent API:

	img, err := axon.Open("image.png")
	if err != nil {
	    log.Fatal(err)
	}

	rendered, err := img.
	    Width(100).
	    Texture(axon.TextureFloydSteinberg).
	    Posterize(axon.PosterizeLight).
	    Polaroid(true).
	    Caption("day one").
	    Render()

Custom palettes:

	lut, err := axon.LoadLUTFile("palettes/sepia.png", axon.SampleCenter)
	if err != nil {
	    log.Fatal(err)
	}
	rendered, err := axon.New(src).Palette(lut).Render()

Every render pass is a pure function of the source image and a
Settings snapshot. Changing a setting reruns the whole pipeline; no
stage keeps state between passes, so results are reproducible and safe
to recompute from an interactive loop.
*/
package axon
