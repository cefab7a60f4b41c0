package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saai151/portfolio/internal/slides"
	"github.com/saai151/portfolio/internal/wrapped"
)

const slideWidth = 64

func (w *wrappedView) View(st styles, width, height int) string {
	if w.loading {
		body := w.spinner.View() + " " + st.muted.Render("Compiling your year...")
		return lipgloss.Place(max(width, 1), max(height-2, 1), lipgloss.Center, lipgloss.Center, body)
	}

	slide := w.current()
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(slide.Accent)).Bold(true)
	label := st.muted.Render(slide.Label)

	var body string
	if w.ctrl.Animating() {
		// the fade: the outgoing slide is dimmed until the transition commits
		body = st.muted.Faint(true).Render(w.renderSlide(slide, st, accent))
	} else {
		body = w.renderSlide(slide, st, accent)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(slide.Accent)).
		Padding(1, 3).
		Width(slideWidth).
		Render(label + "\n\n" + body)

	view := lipgloss.JoinVertical(lipgloss.Center, w.renderProgress(st), "", card, "", w.renderArrows(st))
	if !w.result.Live {
		view += "\n" + st.muted.Render("offline stats")
	}
	return lipgloss.Place(max(width, 1), max(height-2, 1), lipgloss.Center, lipgloss.Center, view)
}

// renderProgress draws one segment per slide; segments up to the current
// slide are filled.
func (w *wrappedView) renderProgress(st styles) string {
	n := len(w.deck)
	seg := max((slideWidth-(n-1))/n, 1)
	parts := make([]string, 0, n)
	for i := range w.deck {
		style := st.muted
		glyph := "─"
		if i <= w.ctrl.Index() {
			glyph = "━"
			style = st.text
		}
		if i == w.ctrl.Index() {
			style = st.title
		}
		parts = append(parts, style.Render(strings.Repeat(glyph, seg)))
	}
	return strings.Join(parts, " ")
}

func (w *wrappedView) renderArrows(st styles) string {
	left, right := "‹", "›"
	leftStyle, rightStyle := st.text, st.text
	if w.ctrl.IsFirst() {
		leftStyle = st.muted.Faint(true)
	}
	if w.ctrl.IsLast() {
		right = "done"
	}
	pos := fmt.Sprintf("%d / %d", w.ctrl.Index()+1, w.ctrl.Count())
	return leftStyle.Render(left) + "   " + st.muted.Render(pos) + "   " + rightStyle.Render(right)
}

// renderSlide is the single renderer for every slide; it switches on the
// slide's kind.
func (w *wrappedView) renderSlide(slide slides.Slide, st styles, accent lipgloss.Style) string {
	s := w.result.Stats
	big := st.title
	switch slide.Kind {
	case slides.Intro:
		return big.Render("2025") + "\n" + accent.Render("WRAPPED") + "\n\n" +
			st.muted.Render("Press → to begin.")

	case slides.Hook:
		return big.Render("YOU DIDN'T JUST CODE THIS YEAR.") + "\n" + accent.Render("YOU SHIPPED.") + "\n\n" +
			w.statTrio(slides.Hook, st, accent, "Commits", "PRs Merged", "Repos Active")

	case slides.Genres:
		top, ok := s.TopLanguage()
		if !ok {
			return st.muted.Render("No languages yet.")
		}
		pct := w.counterView(slides.Genres, 0, fmt.Sprintf("%d%%", top.Percentage))
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(top.Color)).Bold(true).Render(top.Name))
		b.WriteString("\n" + st.text.Render("You spent "+pct+" of your time here."))
		b.WriteString("\n" + st.muted.Italic(true).Render(s.GenreQuote()) + "\n")
		for i, lang := range s.Languages {
			if i == 5 {
				break
			}
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(lang.Color)).Render("■")
			line := fmt.Sprintf("%d  %s %-12s %3d%%", i+1, swatch, lang.Name, lang.Percentage)
			b.WriteString("\n" + st.text.Render(line))
		}
		return b.String()

	case slides.Lineup:
		lines := make([]string, 0, len(w.resume.Wrapped.Lineup))
		for i, a := range w.resume.Wrapped.Lineup {
			lines = append(lines, fmt.Sprintf("%s  %s  %s", accent.Render(fmt.Sprintf("%d", i+1)), st.title.Render(a.Name), st.muted.Render(a.Role+" · "+a.Period)))
		}
		return strings.Join(lines, "\n")

	case slides.Habits:
		return st.text.Render("You were most active on "+s.PeakDay+"s.") + "\n" +
			st.text.Render("Your commits peaked around "+s.PeakTime+", proving that sleep is indeed optional for shipping.") + "\n\n" +
			accent.Render(fmt.Sprintf("%d", s.ActiveDays)) + st.muted.Render(" active days")

	case slides.Moments:
		lines := make([]string, 0, len(w.resume.Wrapped.Moments))
		for _, m := range w.resume.Wrapped.Moments {
			lines = append(lines, accent.Render(m.Title)+"\n"+st.muted.Render(m.Detail))
		}
		return strings.Join(lines, "\n\n")

	case slides.TopRepos:
		return renderRepoList(s.TopRepos, st, accent)

	case slides.Personality:
		top := "Code"
		if l, ok := s.TopLanguage(); ok {
			top = l.Name
		}
		return accent.Render(s.Personality()) + "\n\n" +
			st.text.Render("You don't just write code; you craft systems. With "+top+" as your main instrument, you orchestrate complex logic into simple, beautiful solutions.")

	case slides.Share:
		name := strings.ToUpper(w.resume.Profile.Name)
		return st.muted.Render("MY 2025 WRAPPED") + "\n" + big.Render(name) + "\n\n" +
			w.statTrio(slides.Share, st, accent, "Commits", "PRs", "Repos") + "\n\n" +
			st.muted.Render("enter: back to portfolio")
	}
	return ""
}

func (w *wrappedView) statTrio(kind slides.Kind, st styles, accent lipgloss.Style, labels ...string) string {
	cols := make([]string, 0, len(labels))
	for i, label := range labels {
		value := w.counterView(kind, i, "0")
		cols = append(cols, lipgloss.NewStyle().Width(18).Render(accent.Render(value)+"\n"+st.muted.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (w *wrappedView) counterView(kind slides.Kind, i int, fallback string) string {
	list := w.counters[kind]
	if i >= len(list) {
		return fallback
	}
	return list[i].View()
}

func renderRepoList(repos []wrapped.RepoStat, st styles, accent lipgloss.Style) string {
	if len(repos) == 0 {
		return st.muted.Render("Nothing on repeat yet.")
	}
	lines := make([]string, 0, len(repos))
	for i, r := range repos {
		lines = append(lines, fmt.Sprintf("%s  %s\n   %s",
			accent.Render(fmt.Sprintf("%d", i+1)),
			st.title.Render(r.Name),
			st.muted.Render(slides.FormatCount(r.Commits)+" plays (commits)")))
	}
	return strings.Join(lines, "\n")
}
