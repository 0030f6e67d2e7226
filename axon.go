package axon

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// Image wraps a source raster with a fluent API for configuring and
// running the rendering pipeline. The source is decoded once and
// cached; every Render call reruns the whole pipeline against it with
// the current settings snapshot.
type Image struct {
	source image.Image
	reader io.Reader
	path   string

	settings Settings
}

// New creates an Image from an already decoded image.Image.
func New(img image.Image) *Image {
	if img == nil {
		return nil
	}
	return &Image{
		source:   img,
		settings: DefaultSettings(),
	}
}

// Open creates an Image from a file path. Decoding is deferred until
// the first render.
func Open(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	return &Image{
		path:     path,
		settings: DefaultSettings(),
	}, nil
}

// From creates an Image from an io.Reader.
func From(r io.Reader) *Image {
	if r == nil {
		return nil
	}
	return &Image{
		reader:   r,
		settings: DefaultSettings(),
	}
}

// Width sets the target width in terminal columns. Zero auto-detects.
func (i *Image) Width(w int) *Image {
	if w < 0 {
		w = 0
	}
	i.settings.Width = w
	return i
}

// Rows overrides the terminal row count. Zero derives rows from the
// source aspect ratio.
func (i *Image) Rows(r int) *Image {
	if r < 0 {
		r = 0
	}
	i.settings.Rows = r
	return i
}

// Filter sets the resampling kernel.
func (i *Image) Filter(f Filter) *Image {
	i.settings.Filter = f
	return i
}

// Texture sets the dithering mode.
func (i *Image) Texture(t Texture) *Image {
	i.settings.Texture = t
	return i
}

// Posterize sets the channel level reduction.
func (i *Image) Posterize(p Posterize) *Image {
	i.settings.Posterize = p
	return i
}

// Palette sets the active palette. Nil restores the fixed ANSI-256
// table.
func (i *Image) Palette(p *Palette) *Image {
	i.settings.Palette = p
	return i
}

// Polaroid toggles the white frame and caption band.
func (i *Image) Polaroid(on bool) *Image {
	i.settings.Polaroid = on
	return i
}

// Caption sets the polaroid caption text.
func (i *Image) Caption(text string) *Image {
	i.settings.Caption = text
	return i
}

// Settings replaces the whole settings snapshot at once.
func (i *Image) Settings(s Settings) *Image {
	i.settings = s
	return i
}

// CurrentSettings returns a copy of the configured settings.
func (i *Image) CurrentSettings() Settings {
	return i.settings
}

// Cells runs the pipeline and returns the terminal cell grid.
func (i *Image) Cells() (*CellGrid, error) {
	img, err := i.loadImage()
	if err != nil {
		return nil, err
	}
	return renderCells(img, i.settings, i.path)
}

// Render runs the pipeline and returns the escape-sequence string.
func (i *Image) Render() (string, error) {
	grid, err := i.Cells()
	if err != nil {
		return "", err
	}
	return grid.String(), nil
}

// Print renders the image and writes it to stdout.
func (i *Image) Print() error {
	output, err := i.Render()
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

// Source returns the decoded source image, decoding it on first use.
func (i *Image) Source() (image.Image, error) {
	return i.loadImage()
}

// loadImage decodes the configured source exactly once.
func (i *Image) loadImage() (image.Image, error) {
	if i.source != nil {
		return i.source, nil
	}

	if i.path != "" {
		file, err := os.Open(i.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			return nil, &DecodeError{Err: err}
		}

		i.source = img
		return img, nil
	}

	if i.reader != nil {
		img, _, err := image.Decode(i.reader)
		if err != nil {
			return nil, &DecodeError{Err: err}
		}

		i.source = img
		return img, nil
	}

	return nil, fmt.Errorf("no image source configured")
}

// Convenience functions for quick rendering

// Render renders an image with default settings.
func Render(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("image cannot be nil")
	}
	return New(img).Render()
}

// RenderFile renders an image file with default settings.
func RenderFile(path string) (string, error) {
	img, err := Open(path)
	if err != nil {
		return "", err
	}
	return img.Render()
}

// Print prints an image to stdout with default settings.
func Print(img image.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}
	return New(img).Print()
}

// PrintFile prints an image file to stdout with default settings.
func PrintFile(path string) error {
	img, err := Open(path)
	if err != nil {
		return err
	}
	return img.Print()
}
