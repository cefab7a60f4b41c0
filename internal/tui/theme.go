package tui

import "github.com/charmbracelet/lipgloss"

// palette is the set of colours one theme draws with.
type palette struct {
	Base    lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color
}

var playerPalette = palette{
	Base:    "#121212",
	Mantle:  "#000000",
	Surface: "#181818",
	Border:  "#282828",
	Text:    "#FFFFFF",
	Muted:   "#B3B3B3",
	Accent:  "#1ED760",
	Error:   "#F15E6C",
}

var editorPalette = palette{
	Base:    "#0A0A0A",
	Mantle:  "#050505",
	Surface: "#141414",
	Border:  "#2A2A2A",
	Text:    "#EDEDED",
	Muted:   "#7A7A7A",
	Accent:  "#60A5FA",
	Error:   "#F87171",
}

// styles is built once per theme so both themes share one set of render
// helpers.
type styles struct {
	p palette

	title     lipgloss.Style
	subtitle  lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	cursor    lipgloss.Style
	card      lipgloss.Style
	activeTab lipgloss.Style
	tab       lipgloss.Style
	tabSep    lipgloss.Style
	footer    lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	helpKey   lipgloss.Style
	helpDesc  lipgloss.Style
	modal     lipgloss.Style
	chip      lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		p:        p,
		title:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		text:     lipgloss.NewStyle().Foreground(p.Text),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		accent:   lipgloss.NewStyle().Foreground(p.Accent),
		cursor:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		activeTab: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Bold(true).
			Padding(0, 1),
		tab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Mantle).
			Padding(0, 1),
		tabSep: lipgloss.NewStyle().
			Foreground(p.Border).
			Background(p.Mantle),
		footer: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Mantle).
			Padding(0, 2),
		status: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Surface).
			Padding(0, 2),
		statusErr: lipgloss.NewStyle().
			Foreground(p.Error).
			Background(p.Surface).
			Padding(0, 2),
		helpKey:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		helpDesc: lipgloss.NewStyle().Foreground(p.Muted),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		chip: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Border).
			Padding(0, 1),
	}
}
