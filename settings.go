package axon

// Filter selects the interpolation kernel used when resampling the
// source image down to the terminal grid.
type Filter int

const (
	// FilterNearest copies the nearest source pixel. Fast, raw look.
	FilterNearest Filter = iota
	// FilterBilinear averages the four nearest source pixels.
	FilterBilinear
	// FilterBicubic convolves a 4x4 neighborhood with a cubic kernel.
	FilterBicubic
	// FilterLanczos uses a windowed sinc with a support radius of 3.
	FilterLanczos
)

// String returns the menu name for the filter.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Raw"
	case FilterBilinear:
		return "Soft"
	case FilterBicubic:
		return "Crisp"
	case FilterLanczos:
		return "Silk"
	default:
		return "Unknown"
	}
}

// Texture selects the dithering mode applied before quantization.
type Texture int

const (
	// TextureNone passes pixels through unmodified.
	TextureNone Texture = iota
	// TextureFloydSteinberg applies raster-order error diffusion.
	TextureFloydSteinberg
	// TextureBayer applies an 8x8 ordered threshold matrix.
	TextureBayer
)

// String returns the menu name for the texture mode.
func (t Texture) String() string {
	switch t {
	case TextureNone:
		return "Clean"
	case TextureFloydSteinberg:
		return "Grain"
	case TextureBayer:
		return "Grid"
	default:
		return "Unknown"
	}
}

// Posterize selects the per-channel level reduction applied after
// resampling.
type Posterize int

const (
	// PosterizeOff leaves channel values untouched.
	PosterizeOff Posterize = iota
	// PosterizeLight reduces each channel to 4 levels.
	PosterizeLight
	// PosterizeHeavy reduces each channel to 2 levels.
	PosterizeHeavy
)

// Levels returns the channel level count for the posterize mode, or 0
// when posterization is off.
func (p Posterize) Levels() int {
	switch p {
	case PosterizeLight:
		return 4
	case PosterizeHeavy:
		return 2
	default:
		return 0
	}
}

// String returns the menu name for the posterize mode.
func (p Posterize) String() string {
	switch p {
	case PosterizeOff:
		return "Off"
	case PosterizeLight:
		return "Light"
	case PosterizeHeavy:
		return "Heavy"
	default:
		return "Unknown"
	}
}

// Settings is an immutable snapshot of every knob a render pass reads.
// Replacing any field means building a new Settings and running the
// whole pipeline again; a pass never patches itself incrementally.
type Settings struct {
	// Width is the terminal column count. Zero means auto-detect from
	// the attached terminal, capped at DefaultMaxColumns.
	Width int

	// Rows overrides the terminal row count. Zero derives rows from the
	// source aspect ratio, which yields a square grid for square images.
	Rows int

	Filter    Filter
	Texture   Texture
	Posterize Posterize

	// Palette is the active 256-entry table. Nil selects the fixed
	// ANSI-256 table.
	Palette *Palette

	// Polaroid pads the canvas with a white frame and caption band
	// before resampling.
	Polaroid bool

	// Caption is drawn centered in the polaroid band. Ignored unless
	// Polaroid is set.
	Caption string
}

// DefaultSettings returns the settings the interactive tuner starts
// from: Lanczos resampling, no texture, no posterization, the fixed
// ANSI-256 palette, auto-detected width.
func DefaultSettings() Settings {
	return Settings{
		Filter: FilterLanczos,
	}
}

// validate rejects enum values outside the known range. These indicate
// a programming error upstream, not bad user input.
func (s Settings) validate() error {
	if s.Filter < FilterNearest || s.Filter > FilterLanczos {
		return &UnsupportedSettingError{Setting: "filter", Value: int(s.Filter)}
	}
	if s.Texture < TextureNone || s.Texture > TextureBayer {
		return &UnsupportedSettingError{Setting: "texture", Value: int(s.Texture)}
	}
	if s.Posterize < PosterizeOff || s.Posterize > PosterizeHeavy {
		return &UnsupportedSettingError{Setting: "posterize", Value: int(s.Posterize)}
	}
	if s.Width < 0 {
		return &UnsupportedSettingError{Setting: "width", Value: s.Width}
	}
	if s.Rows < 0 {
		return &UnsupportedSettingError{Setting: "rows", Value: s.Rows}
	}
	return nil
}

// palette returns the active palette, falling back to the fixed
// ANSI-256 table.
func (s Settings) palette() *Palette {
	if s.Palette != nil {
		return s.Palette
	}
	return ANSI256()
}
