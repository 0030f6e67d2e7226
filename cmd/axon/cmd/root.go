package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hooop/axon"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	width       int
	pola        bool
	caption     string
	palettePath string
	filterName  string
	textureName string
	posterName  string
	jsonPath    string
	previewPath string
	sixelOut    bool
	tune        bool
)

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().IntVarP(&width, "width", "w", 0, "Terminal columns to use for rendering (default: auto-detect)")
	rootCmd.Flags().BoolVar(&pola, "pola", false, "Add a polaroid-style white border around the image")
	rootCmd.Flags().StringVar(&caption, "caption", "", "Caption text on the polaroid border (requires --pola)")
	rootCmd.Flags().StringVarP(&palettePath, "palette", "p", "", "Path to a 16x16-swatch LUT image, or 'adaptive' to derive a palette from the image")
	rootCmd.Flags().StringVarP(&filterName, "filter", "f", "silk", "Resampling kernel: silk, soft, crisp, raw")
	rootCmd.Flags().StringVarP(&textureName, "texture", "t", "clean", "Dither texture: clean, grain, grid")
	rootCmd.Flags().StringVar(&posterName, "poster", "off", "Posterize level: off, light, heavy")
	rootCmd.Flags().StringVar(&jsonPath, "json", "", "Write the rendered lines as JSON to this path")
	rootCmd.Flags().StringVar(&previewPath, "preview", "", "Write an upscaled 256-color PNG preview to this path")
	rootCmd.Flags().BoolVar(&sixelOut, "sixel", false, "Emit a sixel preview instead of half-block text")
	rootCmd.Flags().BoolVarP(&tune, "tune", "i", false, "Open the interactive tuner instead of a one-shot render")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "axon <image>",
	Short: "Render images as 256-color half-block art in your terminal.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		settings, err := buildSettings()
		if err != nil {
			log.Fatalf("Bad flags: %v", err)
		}

		img, err := axon.Open(args[0])
		if err != nil {
			log.Fatalf("Failed to open image: %v", err)
		}

		if strings.EqualFold(palettePath, "adaptive") {
			src, err := img.Source()
			if err != nil {
				log.Fatalf("Failed to decode image: %v", err)
			}
			settings.Palette = axon.PaletteFromImage(src, "adaptive")
		}
		img.Settings(settings)

		if tune {
			runTuner(img, settings)
			return
		}

		grid, err := img.Cells()
		if err != nil {
			log.Fatalf("Failed to render image: %v", err)
		}
		log.Debugf("rendered %dx%d cells", grid.Cols, grid.Rows)

		if sixelOut {
			if err := axon.WritePreviewSixel(os.Stdout, grid, 1); err != nil {
				log.Fatalf("Failed to write sixel: %v", err)
			}
		} else {
			fmt.Println(grid.String())
		}

		if jsonPath != "" {
			if err := writeFile(jsonPath, func(f *os.File) error {
				return axon.ExportJSON(f, grid)
			}); err != nil {
				log.Fatalf("Failed to export JSON: %v", err)
			}
			log.Infof("Export: %s", jsonPath)
		}

		if previewPath != "" {
			if err := writeFile(previewPath, func(f *os.File) error {
				return axon.WritePreviewPNG(f, grid, 8)
			}); err != nil {
				log.Fatalf("Failed to write preview: %v", err)
			}
			log.Infof("Preview: %s", previewPath)
		}
	},
}

// buildSettings translates the flag values into a settings snapshot.
func buildSettings() (axon.Settings, error) {
	s := axon.DefaultSettings()
	s.Width = width
	s.Polaroid = pola
	s.Caption = caption

	switch strings.ToLower(filterName) {
	case "silk":
		s.Filter = axon.FilterLanczos
	case "soft":
		s.Filter = axon.FilterBilinear
	case "crisp":
		s.Filter = axon.FilterBicubic
	case "raw":
		s.Filter = axon.FilterNearest
	default:
		return s, fmt.Errorf("unknown filter %q", filterName)
	}

	switch strings.ToLower(textureName) {
	case "clean":
		s.Texture = axon.TextureNone
	case "grain":
		s.Texture = axon.TextureFloydSteinberg
	case "grid":
		s.Texture = axon.TextureBayer
	default:
		return s, fmt.Errorf("unknown texture %q", textureName)
	}

	switch strings.ToLower(posterName) {
	case "off":
		s.Posterize = axon.PosterizeOff
	case "light":
		s.Posterize = axon.PosterizeLight
	case "heavy":
		s.Posterize = axon.PosterizeHeavy
	default:
		return s, fmt.Errorf("unknown poster level %q", posterName)
	}

	if palettePath != "" && !strings.EqualFold(palettePath, "adaptive") {
		lut, err := axon.LoadLUTFile(palettePath, axon.SampleCenter)
		if err != nil {
			return s, err
		}
		s.Palette = lut
	}

	return s, nil
}

// runTuner opens the interactive arrow-key tuner on the decoded image.
func runTuner(img *axon.Image, settings axon.Settings) {
	src, err := img.Source()
	if err != nil {
		log.Fatalf("Failed to decode image: %v", err)
	}

	var luts []axon.NamedPalette
	if settings.Palette != nil {
		name := strings.TrimSuffix(filepath.Base(palettePath), filepath.Ext(palettePath))
		luts = append(luts, axon.NamedPalette{Name: name, Palette: settings.Palette})
	}

	model := axon.NewTuner(src, settings, luts)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		log.Fatalf("Tuner failed: %v", err)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
