package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/vibrant/internal/models"
)

// Palette is the set of colors one theme uses
type Palette struct {
	Primary  lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Due      lipgloss.Color
	Selected lipgloss.Color // selected row background
	Border   lipgloss.Color
}

var palettes = map[models.Theme]Palette{
	models.ThemeLight: {
		Primary:  lipgloss.Color("125"),
		Text:     lipgloss.Color("235"),
		Muted:    lipgloss.Color("245"),
		Success:  lipgloss.Color("28"),
		Warning:  lipgloss.Color("166"),
		Error:    lipgloss.Color("160"),
		Due:      lipgloss.Color("25"),
		Selected: lipgloss.Color("254"),
		Border:   lipgloss.Color("250"),
	},
	models.ThemeDark: {
		Primary:  lipgloss.Color("212"),
		Text:     lipgloss.Color("255"),
		Muted:    lipgloss.Color("241"),
		Success:  lipgloss.Color("42"),
		Warning:  lipgloss.Color("214"),
		Error:    lipgloss.Color("196"),
		Due:      lipgloss.Color("45"),
		Selected: lipgloss.Color("237"),
		Border:   lipgloss.Color("240"),
	},
}

// Styles are the lipgloss styles derived from a palette
type Styles struct {
	Title       lipgloss.Style
	Task        lipgloss.Style
	Done        lipgloss.Style
	Selected    lipgloss.Style
	Grabbed     lipgloss.Style
	Due         lipgloss.Style
	Overdue     lipgloss.Style
	Subtle      lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	FilterOn    lipgloss.Style
	FilterOff   lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	Modal       lipgloss.Style
}

// StylesFor builds the styles for theme; unknown themes use light
func StylesFor(theme models.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[models.ThemeLight]
	}

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Task:     lipgloss.NewStyle().Foreground(p.Text),
		Done:     lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Selected: lipgloss.NewStyle().Background(p.Selected).Foreground(p.Text).Bold(true),
		Grabbed: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		Due:         lipgloss.NewStyle().Foreground(p.Due),
		Overdue:     lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Subtle:      lipgloss.NewStyle().Foreground(p.Muted),
		Help:        lipgloss.NewStyle().Foreground(p.Muted),
		Status:      lipgloss.NewStyle().Foreground(p.Success),
		StatusError: lipgloss.NewStyle().Foreground(p.Error),
		FilterOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Underline(true),
		FilterOff: lipgloss.NewStyle().Foreground(p.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		ActivePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
	}
}

// formTheme picks the huh theme matching the UI theme
func formTheme(theme models.Theme) *huh.Theme {
	if theme == models.ThemeDark {
		return huh.ThemeDracula()
	}
	return huh.ThemeBase16()
}
