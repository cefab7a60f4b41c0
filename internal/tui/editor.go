package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saai151/portfolio/internal/content"
	"github.com/saai151/portfolio/internal/tabs"
)

const (
	typeDelay   = 60 * time.Millisecond
	deleteDelay = 30 * time.Millisecond
	holdDelay   = 1200 * time.Millisecond
	tabBoxWidth = 22
)

// typeTickMsg advances the home greeting by one step.
type typeTickMsg struct{ id int }

// typewriter types each phrase, holds it, deletes it and moves on. It
// stops for good once the last phrase is typed.
type typewriter struct {
	phrases []string
	phrase  int
	shown   int
	erasing bool
	done    bool
	id      int
}

func newTypewriter(greeting []string) typewriter {
	if len(greeting) == 0 {
		return typewriter{done: true}
	}
	phrases := append(append([]string{}, greeting...), greeting[0])
	return typewriter{phrases: phrases}
}

func (t typewriter) text() string {
	if len(t.phrases) == 0 {
		return ""
	}
	if t.done {
		return t.phrases[len(t.phrases)-1]
	}
	return string([]rune(t.phrases[t.phrase])[:t.shown])
}

func (t typewriter) tick(d time.Duration) tea.Cmd {
	id := t.id
	return tea.Tick(d, func(time.Time) tea.Msg { return typeTickMsg{id: id} })
}

func (t typewriter) Init() tea.Cmd {
	if t.done {
		return nil
	}
	return t.tick(typeDelay)
}

func (t typewriter) Update(msg typeTickMsg) (typewriter, tea.Cmd) {
	if t.done || msg.id != t.id {
		return t, nil
	}
	t.id++
	cur := []rune(t.phrases[t.phrase])
	last := t.phrase == len(t.phrases)-1

	switch {
	case t.erasing && t.shown > 0:
		t.shown--
		return t, t.tick(deleteDelay)
	case t.erasing:
		t.erasing = false
		t.phrase++
		return t, t.tick(typeDelay)
	case t.shown < len(cur):
		t.shown++
		if t.shown == len(cur) && last {
			t.done = true
			return t, nil
		}
		if t.shown == len(cur) {
			return t, t.tick(holdDelay)
		}
		return t, t.tick(typeDelay)
	default:
		t.erasing = true
		return t, t.tick(deleteDelay)
	}
}

// Finish jumps to the final phrase.
func (t typewriter) Finish() typewriter {
	t.done = true
	t.id++
	return t
}

// picker is the "add tab" prompt over the unopened kinds.
type picker struct {
	open   bool
	query  string
	cursor int
}

type editorModel struct {
	resume content.Resume
	st     styles

	tabs    tabs.Set
	homeSel int
	greet   typewriter
	picker  picker
	body    viewport.Model

	status string

	width, height int
}

func newEditorModel(resume content.Resume, st styles) *editorModel {
	return &editorModel{
		resume: resume,
		st:     st,
		greet:  newTypewriter(resume.Profile.Greeting),
		body:   viewport.New(0, 0),
	}
}

func (e *editorModel) Init() tea.Cmd {
	return e.greet.Init()
}

func (e *editorModel) setStyles(st styles) {
	e.st = st
	e.refreshBody()
}

func (e *editorModel) setSize(width, height int) {
	e.width, e.height = width, height
	e.body.Width = max(width-4, 20)
	// tab bar, rule, status and footer
	e.body.Height = max(height-5, 3)
	e.refreshBody()
}

func (e *editorModel) scope() string {
	switch {
	case e.picker.open:
		return scopeEditorPicker
	case e.tabs.Len() > 0:
		return scopeEditorTabs
	default:
		return scopeEditorHome
	}
}

// candidates is what the picker offers for the current query.
func (e *editorModel) candidates() []tabs.Kind {
	return tabs.Match(e.picker.query, e.tabs.Unopened())
}

func (e *editorModel) open(k tabs.Kind) {
	e.tabs.Open(k)
	e.status = ""
	e.refreshBody()
}

func (e *editorModel) Update(msg tea.Msg, keys *KeyRegistry) (tea.Cmd, intent) {
	switch m := msg.(type) {
	case typeTickMsg:
		var cmd tea.Cmd
		e.greet, cmd = e.greet.Update(m)
		return cmd, intentNone
	case tea.KeyMsg:
		switch e.scope() {
		case scopeEditorPicker:
			return e.handlePickerKey(m, keys), intentNone
		case scopeEditorTabs:
			return e.handleTabsKey(m, keys)
		default:
			return e.handleHomeKey(m, keys)
		}
	}
	return nil, intentNone
}

func (e *editorModel) handleHomeKey(msg tea.KeyMsg, keys *KeyRegistry) (tea.Cmd, intent) {
	switch keys.Action(msg, scopeEditorHome) {
	case actionQuit:
		return tea.Quit, intentQuit
	case actionOpenWrapped:
		return nil, intentOpenWrapped
	case actionToggleTheme:
		return nil, intentToggleTheme
	case actionLeft:
		e.homeSel = max(e.homeSel-1, 0)
	case actionRight:
		e.homeSel = min(e.homeSel+1, len(tabs.All)-1)
	case actionSelect:
		// opening a tab before the greeting finishes skips the animation
		e.greet = e.greet.Finish()
		e.open(tabs.All[e.homeSel])
	}
	return nil, intentNone
}

func (e *editorModel) handleTabsKey(msg tea.KeyMsg, keys *KeyRegistry) (tea.Cmd, intent) {
	switch keys.Action(msg, scopeEditorTabs) {
	case actionQuit:
		return tea.Quit, intentQuit
	case actionOpenWrapped:
		return nil, intentOpenWrapped
	case actionToggleTheme:
		return nil, intentToggleTheme
	case actionNextTab:
		e.tabs.Cycle(1)
	case actionPrevTab:
		e.tabs.Cycle(-1)
	case actionGotoTab:
		open := e.tabs.OpenKinds()
		idx := int(msg.String()[0] - '1')
		if idx < len(open) {
			e.tabs.SetActive(open[idx])
		}
	case actionCloseTab:
		if k, ok := e.tabs.Active(); ok {
			e.tabs.Close(k)
		}
	case actionAddTab:
		if len(e.tabs.Unopened()) == 0 {
			e.status = "every tab is already open"
			return nil, intentNone
		}
		e.picker = picker{open: true}
		return nil, intentNone
	default:
		var cmd tea.Cmd
		e.body, cmd = e.body.Update(msg)
		return cmd, intentNone
	}
	e.refreshBody()
	return nil, intentNone
}

func (e *editorModel) handlePickerKey(msg tea.KeyMsg, keys *KeyRegistry) tea.Cmd {
	// typed characters go to the query before any binding is consulted
	if msg.Type == tea.KeyRunes {
		e.picker.query += string(msg.Runes)
		e.picker.cursor = 0
		return nil
	}
	if msg.Type == tea.KeyBackspace {
		if r := []rune(e.picker.query); len(r) > 0 {
			e.picker.query = string(r[:len(r)-1])
			e.picker.cursor = 0
		}
		return nil
	}

	cands := e.candidates()
	switch keys.Action(msg, scopeEditorPicker) {
	case actionQuit:
		return tea.Quit
	case actionUp:
		e.picker.cursor = max(e.picker.cursor-1, 0)
	case actionDown:
		e.picker.cursor = min(e.picker.cursor+1, max(len(cands)-1, 0))
	case actionSelect:
		if e.picker.cursor < len(cands) {
			k := cands[e.picker.cursor]
			e.picker = picker{}
			e.open(k)
		}
	case actionCancel:
		e.picker = picker{}
	}
	return nil
}

func (e *editorModel) refreshBody() {
	k, ok := e.tabs.Active()
	if !ok {
		return
	}
	e.body.SetContent(e.renderTab(k))
	e.body.GotoTop()
}

func (e *editorModel) View() string {
	if _, ok := e.tabs.Active(); !ok {
		return e.renderHome()
	}
	view := lipgloss.JoinVertical(lipgloss.Left, e.renderTabBar(), e.body.View())
	if e.picker.open {
		view = lipgloss.Place(max(e.width, 1), max(e.height-2, 1), lipgloss.Center, lipgloss.Center, e.renderPicker())
	}
	return view
}

func (e *editorModel) renderHome() string {
	st := e.st
	heading := st.title.Render(e.greet.text())
	if !e.greet.done {
		heading += st.accent.Render("▌")
	}
	boxes := make([]string, 0, len(tabs.All))
	for i, k := range tabs.All {
		style := st.card.Width(tabBoxWidth)
		label := st.text.Render(k.Label()) + "\n" + st.muted.Render("→")
		if i == e.homeSel {
			style = style.BorderForeground(st.p.Text)
			label = st.title.Render(k.Label()) + "\n" + st.accent.Render("→")
		}
		boxes = append(boxes, style.Render(label))
	}
	view := lipgloss.JoinVertical(lipgloss.Center,
		heading,
		st.muted.Render("Software engineer & builder"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
	)
	return lipgloss.Place(max(e.width, 1), max(e.height-2, 1), lipgloss.Center, lipgloss.Center, view)
}

func (e *editorModel) renderTabBar() string {
	st := e.st
	active, _ := e.tabs.Active()
	parts := make([]string, 0, e.tabs.Len()+1)
	for i, t := range e.tabs.Tabs() {
		label := fmt.Sprintf("%d %s ×", i+1, t.Kind.Label())
		if t.Kind == active {
			parts = append(parts, st.activeTab.Render(label))
		} else {
			parts = append(parts, st.tab.Render(label))
		}
	}
	if len(e.tabs.Unopened()) > 0 {
		parts = append(parts, st.tab.Render("+"))
	}
	bar := strings.Join(parts, st.tabSep.Render("│"))
	rule := st.muted.Render(strings.Repeat("─", max(e.width, lipgloss.Width(bar))))
	return bar + "\n" + rule
}

func (e *editorModel) renderPicker() string {
	st := e.st
	lines := []string{st.title.Render("Open tab"), st.accent.Render("> ") + st.text.Render(e.picker.query) + st.accent.Render("▌"), ""}
	cands := e.candidates()
	if len(cands) == 0 {
		lines = append(lines, st.muted.Render("no matches"))
	}
	for i, k := range cands {
		if i == e.picker.cursor {
			lines = append(lines, st.cursor.Render("▸ "+k.Label()))
		} else {
			lines = append(lines, st.text.Render("  "+k.Label()))
		}
	}
	return st.modal.Width(32).Render(strings.Join(lines, "\n"))
}

func (e *editorModel) renderTab(k tabs.Kind) string {
	st := e.st
	wrap := lipgloss.NewStyle().Width(max(e.body.Width, 20))
	var b strings.Builder
	switch k {
	case tabs.Internships:
		b.WriteString(st.title.Render("Internships") + "\n\n")
		for _, x := range e.resume.Experiences {
			b.WriteString(st.subtitle.Render(x.Company) + st.muted.Render("  "+x.Role) + "\n")
			b.WriteString(st.muted.Render(x.Period+" · "+x.Duration) + "\n")
			for _, a := range x.Achievements {
				b.WriteString(wrap.Render(st.text.Render("- "+a)) + "\n")
			}
			b.WriteString("\n")
		}
	case tabs.Projects:
		b.WriteString(st.title.Render("Projects") + "\n\n")
		for _, p := range e.resume.Projects {
			b.WriteString(st.subtitle.Render(p.Name) + "\n")
			b.WriteString(wrap.Render(st.text.Render(p.Description)) + "\n")
			chips := make([]string, 0, len(p.Technologies))
			for _, t := range p.Technologies {
				chips = append(chips, st.chip.Render(t))
			}
			b.WriteString(strings.Join(chips, " ") + "\n\n")
		}
	case tabs.Blog:
		blog := e.resume.Blog
		if blog == "" {
			blog = "No posts yet. Check back soon."
		}
		b.WriteString(st.title.Render("Blog") + "\n\n" + st.muted.Render(blog) + "\n")
	}
	return b.String()
}
