package axon

import (
	"image"

	"github.com/makeworld-the-better-one/dither/v2"
)

// DitherImage pre-adjusts img against the active palette so the
// nearest-color quantization that follows reads as continuous tone.
// TextureNone passes the input straight through. The returned image
// always has the same dimensions as the input, and the input is never
// modified, so re-running with a different palette starts clean.
func DitherImage(img *image.NRGBA, p *Palette, mode Texture) (*image.NRGBA, error) {
	if mode == TextureNone {
		return img, nil
	}

	d := dither.NewDitherer(p.ColorPalette())
	if d == nil {
		return nil, &UnsupportedSettingError{Setting: "palette", Value: PaletteSize}
	}

	switch mode {
	case TextureFloydSteinberg:
		// Raster-order error diffusion; the classic 7/16, 3/16, 5/16,
		// 1/16 weights depend on strict left-to-right, top-to-bottom
		// traversal, which the ditherer preserves with Serpentine off.
		d.Matrix = dither.FloydSteinberg
	case TextureBayer:
		d.Mapper = dither.Bayer(8, 8, bayerStrength(p))
	default:
		return nil, &UnsupportedSettingError{Setting: "texture", Value: int(mode)}
	}

	return toNRGBA(d.Dither(img)), nil
}

// bayerStrength scales the ordered-dither perturbation so its
// amplitude is about one step between adjacent palette levels. Full
// strength spans the whole channel range, so dividing the palette's
// mean spacing by 255 lands the threshold offsets on the level grid.
func bayerStrength(p *Palette) float32 {
	s := float32(p.Spacing() / 255.0)
	if s <= 0 {
		return 1.0 / 255.0
	}
	if s > 1 {
		return 1
	}
	return s
}
