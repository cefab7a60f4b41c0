package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saai151/portfolio/internal/content"
)

const (
	playTickInterval = 100 * time.Millisecond
	playStep         = 0.5
	sidebarWidth     = 24
	nowPlayingWidth  = 34
)

type section string

const (
	sectionHome       section = "Home"
	sectionAbout      section = "About"
	sectionExperience section = "Experience"
	sectionProjects   section = "Projects"
	sectionSkills     section = "Skills"
	sectionEducation  section = "Education"
)

var playerSections = []section{
	sectionHome,
	sectionAbout,
	sectionExperience,
	sectionProjects,
	sectionSkills,
	sectionEducation,
}

// intent is what a theme asks the root model to do after a key press.
type intent int

const (
	intentNone intent = iota
	intentQuit
	intentOpenWrapped
	intentToggleTheme
)

// playTickMsg advances the now-playing bar. seq ties it to the track it was
// scheduled for; ticks from a previous track or a paused player are dropped.
type playTickMsg struct{ seq int }

// notifyMsg shows the Wrapped toast.
type notifyMsg struct{}

type playerModel struct {
	resume content.Resume
	st     styles

	cursor  int
	offsets map[section]int
	page    viewport.Model

	track    int
	progress float64
	playing  bool
	seq      int

	queueOpen   bool
	queueCursor int

	notifyDelay time.Duration
	notifying   bool
	dismissed   bool

	width, height int
}

func newPlayerModel(resume content.Resume, notifyDelay time.Duration, st styles) *playerModel {
	p := &playerModel{
		resume:      resume,
		st:          st,
		playing:     true,
		notifyDelay: notifyDelay,
		page:        viewport.New(0, 0),
	}
	p.rebuildPage()
	return p
}

func (p *playerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{p.playTick()}
	if p.notifyDelay >= 0 {
		cmds = append(cmds, tea.Tick(p.notifyDelay, func(time.Time) tea.Msg { return notifyMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (p *playerModel) setStyles(st styles) {
	p.st = st
	p.rebuildPage()
}

func (p *playerModel) setSize(width, height int) {
	p.width, p.height = width, height
	p.page.Width = max(width-sidebarWidth-nowPlayingWidth-4, 20)
	// header, player bar, status and footer
	p.page.Height = max(height-6, 3)
	p.rebuildPage()
}

func (p *playerModel) currentProject() (content.Project, bool) {
	if len(p.resume.Projects) == 0 {
		return content.Project{}, false
	}
	return p.resume.Projects[p.track], true
}

func (p *playerModel) playTick() tea.Cmd {
	if !p.playing {
		return nil
	}
	seq := p.seq
	return tea.Tick(playTickInterval, func(time.Time) tea.Msg { return playTickMsg{seq: seq} })
}

// skip moves delta tracks with wrap-around and restarts the bar from zero.
func (p *playerModel) skip(delta int) tea.Cmd {
	n := len(p.resume.Projects)
	if n == 0 {
		return nil
	}
	return p.play((((p.track + delta) % n) + n) % n)
}

func (p *playerModel) play(track int) tea.Cmd {
	p.track = track
	p.progress = 0
	p.seq++
	return p.playTick()
}

func (p *playerModel) togglePlay() tea.Cmd {
	p.playing = !p.playing
	p.seq++
	return p.playTick()
}

// queue lists every track except the current one.
func (p *playerModel) queue() []int {
	out := make([]int, 0, len(p.resume.Projects))
	for i := range p.resume.Projects {
		if i != p.track {
			out = append(out, i)
		}
	}
	return out
}

func (p *playerModel) scope() string {
	if p.queueOpen {
		return scopePlayerQueue
	}
	return scopePlayer
}

func (p *playerModel) Update(msg tea.Msg, keys *KeyRegistry) (tea.Cmd, intent) {
	switch m := msg.(type) {
	case playTickMsg:
		if m.seq != p.seq || !p.playing {
			return nil, intentNone
		}
		proj, ok := p.currentProject()
		if !ok {
			return nil, intentNone
		}
		target := float64(proj.Progress)
		if p.progress >= target {
			// parked at the track's progress; nothing left to animate
			p.progress = target
			return nil, intentNone
		}
		p.progress = min(p.progress+playStep, target)
		return p.playTick(), intentNone
	case notifyMsg:
		if !p.dismissed {
			p.notifying = true
		}
		return nil, intentNone
	case tea.KeyMsg:
		return p.handleKey(m, keys)
	}
	return nil, intentNone
}

func (p *playerModel) handleKey(msg tea.KeyMsg, keys *KeyRegistry) (tea.Cmd, intent) {
	if p.notifying {
		switch keys.Action(msg, scopeNotification) {
		case actionOpenWrapped:
			p.notifying = false
			return nil, intentOpenWrapped
		case actionDismiss:
			// dismissed for the rest of the session
			p.notifying = false
			p.dismissed = true
			return nil, intentNone
		}
	}

	if p.queueOpen {
		q := p.queue()
		switch keys.Action(msg, scopePlayerQueue) {
		case actionUp:
			p.queueCursor = max(p.queueCursor-1, 0)
		case actionDown:
			p.queueCursor = min(p.queueCursor+1, max(len(q)-1, 0))
		case actionSelect:
			p.queueOpen = false
			if p.queueCursor < len(q) {
				return p.play(q[p.queueCursor]), intentNone
			}
		case actionToggleQueue:
			p.queueOpen = false
		case actionQuit:
			return tea.Quit, intentQuit
		}
		return nil, intentNone
	}

	switch keys.Action(msg, scopePlayer) {
	case actionQuit:
		return tea.Quit, intentQuit
	case actionOpenWrapped:
		p.notifying = false
		return nil, intentOpenWrapped
	case actionToggleTheme:
		return nil, intentToggleTheme
	case actionUp:
		p.cursor = max(p.cursor-1, 0)
	case actionDown:
		p.cursor = min(p.cursor+1, len(playerSections)-1)
	case actionSelect:
		p.page.SetYOffset(p.offsets[playerSections[p.cursor]])
	case actionPlayPause:
		return p.togglePlay(), intentNone
	case actionNextProject:
		return p.skip(1), intentNone
	case actionPrevProject:
		return p.skip(-1), intentNone
	case actionToggleQueue:
		p.queueOpen = true
		p.queueCursor = 0
	default:
		// paging keys scroll the library page
		var cmd tea.Cmd
		p.page, cmd = p.page.Update(msg)
		return cmd, intentNone
	}
	return nil, intentNone
}

// rebuildPage renders the library page and records where each section
// starts so the sidebar can jump to it.
func (p *playerModel) rebuildPage() {
	st := p.st
	width := max(p.page.Width, 20)
	wrap := lipgloss.NewStyle().Width(width)
	r := p.resume

	var b strings.Builder
	p.offsets = make(map[section]int, len(playerSections))
	mark := func(s section) {
		p.offsets[s] = strings.Count(b.String(), "\n")
		b.WriteString(st.subtitle.Render(strings.ToUpper(string(s))) + "\n\n")
	}

	mark(sectionHome)
	b.WriteString(st.title.Render(r.Profile.Name) + "\n")
	b.WriteString(st.text.Render(r.Profile.Headline) + "\n")
	b.WriteString(st.muted.Render(r.Profile.Location+" · "+r.Profile.Status) + "\n")
	for _, l := range r.Profile.Links {
		b.WriteString(st.accent.Render(l.Label) + " " + st.muted.Render(l.URL) + "\n")
	}
	b.WriteString("\n")

	mark(sectionAbout)
	for _, s := range r.About {
		b.WriteString(st.title.Render(s.Title) + "\n")
		b.WriteString(wrap.Render(st.text.Render(s.Body)) + "\n\n")
	}
	if len(r.Interests) > 0 {
		chips := make([]string, 0, len(r.Interests))
		for _, in := range r.Interests {
			chips = append(chips, st.chip.Render(in))
		}
		b.WriteString(wrap.Render(strings.Join(chips, " ")) + "\n\n")
	}

	mark(sectionExperience)
	for _, e := range r.Experiences {
		b.WriteString(st.title.Render(e.Role) + st.muted.Render(" · "+e.Company) + "\n")
		b.WriteString(st.muted.Render(e.Period+" · "+e.Duration) + "\n")
		for _, a := range e.Achievements {
			b.WriteString(wrap.Render("• "+a) + "\n")
		}
		b.WriteString("\n")
	}

	mark(sectionProjects)
	for i, pr := range r.Projects {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", st.muted.Render(fmt.Sprintf("%d", i+1)), st.title.Render(pr.Name), st.muted.Render(strings.Join(pr.Technologies, " • "))))
		b.WriteString(wrap.Render(st.text.Render(pr.Description)) + "\n\n")
	}

	mark(sectionSkills)
	for _, g := range r.Skills {
		b.WriteString(st.title.Render(g.Title) + "\n")
		b.WriteString(wrap.Render(st.text.Render(strings.Join(g.Items, ", "))) + "\n\n")
	}

	mark(sectionEducation)
	ed := r.Education
	b.WriteString(st.title.Render(ed.School) + st.muted.Render(" · "+ed.Location) + "\n")
	b.WriteString(st.text.Render(ed.Degree) + st.muted.Render(" · expected "+ed.Expected) + "\n")
	b.WriteString(wrap.Render(st.muted.Render(strings.Join(ed.Courses, " · "))) + "\n")

	p.page.SetContent(b.String())
}

func (p *playerModel) View() string {
	st := p.st

	side := make([]string, 0, len(playerSections)+4)
	side = append(side, st.subtitle.Render(p.resume.Profile.Initials+"  Library"), "")
	for i, s := range playerSections {
		line := "  " + string(s)
		if i == p.cursor {
			line = st.cursor.Render("▸ " + string(s))
		} else {
			line = st.muted.Render(line)
		}
		side = append(side, line)
	}
	side = append(side, "", st.accent.Render("  ♫ 2025 Wrapped (w)"))
	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(p.page.Height).Render(strings.Join(side, "\n"))

	right := p.renderNowPlayingCard()
	if p.queueOpen {
		right = p.renderQueue()
	}
	if p.notifying {
		right = lipgloss.JoinVertical(lipgloss.Left, right, "", p.renderToast())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", p.page.View(), "  ", right)
	return lipgloss.JoinVertical(lipgloss.Left, body, p.renderBar())
}

func (p *playerModel) renderNowPlayingCard() string {
	st := p.st
	proj, ok := p.currentProject()
	if !ok {
		return st.card.Width(nowPlayingWidth).Render(st.muted.Render("Nothing playing"))
	}
	inner := nowPlayingWidth - 4
	lines := []string{
		st.muted.Render("NOW PLAYING"),
		"",
		st.title.Render(proj.Name),
		st.muted.Render(strings.Join(proj.Technologies, " • ")),
		"",
		lipgloss.NewStyle().Width(inner).Render(st.text.Render(proj.Description)),
	}
	return st.card.Width(nowPlayingWidth).Render(strings.Join(lines, "\n"))
}

func (p *playerModel) renderQueue() string {
	st := p.st
	lines := []string{st.title.Render("Queue"), ""}
	for i, idx := range p.queue() {
		proj := p.resume.Projects[idx]
		techs := proj.Technologies
		if len(techs) > 3 {
			techs = techs[:3]
		}
		name := proj.Name
		if i == p.queueCursor {
			name = st.cursor.Render("▸ " + name)
		} else {
			name = st.text.Render("  " + name)
		}
		lines = append(lines,
			padRight(name, nowPlayingWidth-10)+st.muted.Render(fmt.Sprintf("%d%%", proj.Progress)),
			st.muted.Render("  "+strings.Join(techs, " • ")))
	}
	return st.modal.Width(nowPlayingWidth).Render(strings.Join(lines, "\n"))
}

func (p *playerModel) renderToast() string {
	st := p.st
	lines := []string{
		st.accent.Render("✦ Ready for you"),
		st.title.Render(p.resume.Profile.Name + "'s 2025 Wrapped"),
		st.muted.Render("w: play  x: dismiss"),
	}
	return st.modal.Width(nowPlayingWidth).Render(strings.Join(lines, "\n"))
}

// renderBar is the bottom player bar: track, transport state, and the
// progress bar with elapsed and total time.
func (p *playerModel) renderBar() string {
	st := p.st
	proj, ok := p.currentProject()
	if !ok {
		return ""
	}
	state := "▶"
	if p.playing {
		state = "❚❚"
	}
	elapsed := formatTime(int(p.progress * 60 / 100))
	total := formatTime(proj.Progress * 60 / 100)
	barWidth := max(p.width-sidebarWidth-30, 10)
	bar := progressBar(p.progress, barWidth, st.accent, st.muted)
	left := padRight(st.title.Render(proj.Name), sidebarWidth)
	return left + st.muted.Render("⏮ ") + st.accent.Render(state) + st.muted.Render(" ⏭  ") +
		st.muted.Render(elapsed) + " " + bar + " " + st.muted.Render(total)
}

// formatTime renders whole seconds as m:ss.
func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
