package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func renderFooter(st styles, bindings []key.Binding, width int) string {
	// every character carries the footer background
	bg := st.p.Mantle
	keyStyle := st.helpKey.Background(bg)
	descStyle := st.helpDesc.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if width == 0 {
		return st.footer.Render(content)
	}
	return st.footer.Width(width).Render(content)
}

func renderStatus(st styles, text string, isErr bool, width int) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	style := st.status
	if isErr {
		style = st.statusErr
	}
	if width == 0 {
		return style.Render(flat)
	}
	return style.Width(width).Render(flat)
}

// placeWithFooter pins the status and footer lines to the bottom of the
// screen.
func placeWithFooter(body, statusLine, footer string, width, height int) string {
	if height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := max(1, height-2)
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	return main + "\n" + statusLine + "\n" + footer
}

// progressBar draws pct (0-100) as a filled track of the given width.
func progressBar(pct float64, width int, fill, track lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 100)
	filled := int(pct / 100 * float64(width))
	return fill.Render(strings.Repeat("━", filled)) + track.Render(strings.Repeat("─", width-filled))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
