package axon

import (
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tuner is a Bubble Tea model that renders a source image and lets the
// user walk setting rows with the arrow keys. Every change schedules a
// full pipeline pass on a background worker; the view shows the last
// completed frame until the new one lands.
type Tuner struct {
	worker   *RenderWorker
	settings Settings

	rows      []tunerRow
	activeRow int

	frame   string
	pending bool
	err     error
}

// tunerRow is one menu line: a label and its selectable options.
type tunerRow struct {
	label    string
	options  []string
	selected int
	apply    func(s *Settings, idx int)
}

// NamedPalette pairs a palette with its menu label for the tuner's
// palette row.
type NamedPalette struct {
	Name    string
	Palette *Palette
}

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("137"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("231"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("125"))
)

// NewTuner builds a tuner for the source image. The palette row always
// starts with the fixed ANSI-256 table; extra LUTs appear after it in
// the order given.
func NewTuner(src image.Image, s Settings, luts []NamedPalette) *Tuner {
	filters := []Filter{FilterLanczos, FilterBilinear, FilterBicubic, FilterNearest}
	filterNames := make([]string, len(filters))
	filterIdx := 0
	for i, f := range filters {
		filterNames[i] = f.String()
		if f == s.Filter {
			filterIdx = i
		}
	}

	paletteNames := []string{"None"}
	palettes := []*Palette{nil}
	paletteIdx := 0
	for i, np := range luts {
		paletteNames = append(paletteNames, np.Name)
		palettes = append(palettes, np.Palette)
		if np.Palette == s.Palette && s.Palette != nil {
			paletteIdx = i + 1
		}
	}

	t := &Tuner{
		worker:   NewRenderWorker(src, WorkerOptions{}),
		settings: s,
		rows: []tunerRow{
			{
				label:    "Filter",
				options:  filterNames,
				selected: filterIdx,
				apply:    func(s *Settings, idx int) { s.Filter = filters[idx] },
			},
			{
				label:    "Texture",
				options:  []string{TextureNone.String(), TextureFloydSteinberg.String(), TextureBayer.String()},
				selected: int(s.Texture),
				apply:    func(s *Settings, idx int) { s.Texture = Texture(idx) },
			},
			{
				label:    "Poster",
				options:  []string{PosterizeOff.String(), PosterizeLight.String(), PosterizeHeavy.String()},
				selected: int(s.Posterize),
				apply:    func(s *Settings, idx int) { s.Posterize = Posterize(idx) },
			},
			{
				label:    "Palette",
				options:  paletteNames,
				selected: paletteIdx,
				apply:    func(s *Settings, idx int) { s.Palette = palettes[idx] },
			},
		},
	}
	return t
}

// CurrentSettings returns the settings snapshot the tuner converged on.
func (t *Tuner) CurrentSettings() Settings { return t.settings }

type tuneTickMsg struct{}

func tuneTick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(time.Time) tea.Msg {
		return tuneTickMsg{}
	})
}

// Init schedules the first render.
func (t *Tuner) Init() tea.Cmd {
	t.pending = true
	t.worker.Schedule(t.settings)
	return tuneTick()
}

// Update handles keys and polls the worker for completed frames.
func (t *Tuner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tuneTickMsg:
		if res, ok := t.worker.TryLatest(); ok {
			if res.Settings == t.settings {
				t.pending = false
			}
			t.frame = res.Output
			t.err = res.Err
		}
		return t, tuneTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "enter":
			t.worker.Close()
			return t, tea.Quit
		case "up":
			if t.activeRow > 0 {
				t.activeRow--
			}
		case "down":
			if t.activeRow < len(t.rows)-1 {
				t.activeRow++
			}
		case "left":
			t.step(-1)
		case "right":
			t.step(1)
		}
	}
	return t, nil
}

// step moves the active row's selection and schedules a re-render when
// it actually changed.
func (t *Tuner) step(delta int) {
	row := &t.rows[t.activeRow]
	next := row.selected + delta
	if next < 0 || next >= len(row.options) {
		return
	}
	row.selected = next
	row.apply(&t.settings, next)
	t.pending = true
	t.worker.Schedule(t.settings)
}

// View draws the last completed frame above the settings menu.
func (t *Tuner) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if t.err != nil {
		b.WriteString("  " + errStyle.Render(t.err.Error()) + "\n")
	} else if t.frame != "" {
		b.WriteString(t.frame)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.menu())
	return b.String()
}

// menu renders the four setting rows, highlighting the active row and
// each row's current selection.
func (t *Tuner) menu() string {
	maxLabel := 0
	for _, row := range t.rows {
		if len(row.label) > maxLabel {
			maxLabel = len(row.label)
		}
	}

	var lines []string
	for i, row := range t.rows {
		active := i == t.activeRow
		padded := row.label + strings.Repeat(" ", maxLabel-len(row.label))

		var parts []string
		for j, name := range row.options {
			switch {
			case j == row.selected && active:
				parts = append(parts, activeStyle.Render(name))
			case j == row.selected:
				parts = append(parts, inactiveStyle.Render(name))
			default:
				parts = append(parts, dimStyle.Render(name))
			}
		}

		label := dimStyle.Render(padded + ":")
		if active {
			label = labelStyle.Render(padded + ":")
		}
		lines = append(lines, "  "+label+"  "+strings.Join(parts, "  "))
	}
	return strings.Join(lines, "\n")
}
