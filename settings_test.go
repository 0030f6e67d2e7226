package axon

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "Raw", FilterNearest.String())
	assert.Equal(t, "Soft", FilterBilinear.String())
	assert.Equal(t, "Crisp", FilterBicubic.String())
	assert.Equal(t, "Silk", FilterLanczos.String())
	assert.Equal(t, "Unknown", Filter(9).String())

	assert.Equal(t, "Clean", TextureNone.String())
	assert.Equal(t, "Grain", TextureFloydSteinberg.String())
	assert.Equal(t, "Grid", TextureBayer.String())

	assert.Equal(t, "Off", PosterizeOff.String())
	assert.Equal(t, "Light", PosterizeLight.String())
	assert.Equal(t, "Heavy", PosterizeHeavy.String())
}

func TestPosterizeLevelCounts(t *testing.T) {
	assert.Equal(t, 0, PosterizeOff.Levels())
	assert.Equal(t, 4, PosterizeLight.Levels())
	assert.Equal(t, 2, PosterizeHeavy.Levels())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, FilterLanczos, s.Filter)
	assert.Equal(t, TextureNone, s.Texture)
	assert.Equal(t, PosterizeOff, s.Posterize)
	assert.Nil(t, s.Palette)
	assert.False(t, s.Polaroid)
	assert.NoError(t, s.validate())
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		setting  string
	}{
		{name: "filter too high", settings: Settings{Filter: Filter(4)}, setting: "filter"},
		{name: "filter negative", settings: Settings{Filter: Filter(-1)}, setting: "filter"},
		{name: "texture out of range", settings: Settings{Texture: Texture(3)}, setting: "texture"},
		{name: "posterize out of range", settings: Settings{Posterize: Posterize(3)}, setting: "posterize"},
		{name: "negative width", settings: Settings{Width: -1}, setting: "width"},
		{name: "negative rows", settings: Settings{Rows: -1}, setting: "rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.validate()
			var uerr *UnsupportedSettingError
			if assert.ErrorAs(t, err, &uerr) {
				assert.Equal(t, tt.setting, uerr.Setting)
			}
		})
	}
}

func TestSettingsPaletteFallback(t *testing.T) {
	assert.Same(t, ANSI256(), Settings{}.palette())

	custom, err := NewPalette("custom", make([]color.NRGBA, PaletteSize))
	assert.NoError(t, err)
	assert.Same(t, custom, Settings{Palette: custom}.palette())
}
