package axon

import (
	"image"
	"math"
)

// PosterizeImage remaps every channel of img to one of L evenly spaced
// levels, where L comes from the posterize mode. PosterizeOff returns
// the input untouched. The output is always a fresh image; the source
// is never written to.
func PosterizeImage(img *image.NRGBA, mode Posterize) *image.NRGBA {
	levels := mode.Levels()
	if levels == 0 {
		return img
	}

	// 256 possible inputs per channel, so precompute the remap once.
	var lut [256]uint8
	step := 255.0 / float64(levels-1)
	for v := 0; v < 256; v++ {
		q := math.Round(float64(v)/255.0*float64(levels-1)) * step
		lut[v] = uint8(clampChannel(math.Round(q)))
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := img.Pix[y*img.Stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			i := x * 4
			dst[i+0] = lut[src[i+0]]
			dst[i+1] = lut[src[i+1]]
			dst[i+2] = lut[src[i+2]]
			dst[i+3] = 255
		}
	}
	return out
}

// clampChannel bounds a channel value to [0,255]. Overflow here is a
// defined result, never an error path.
func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
