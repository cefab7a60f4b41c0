package tui

import (
	"context"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saai151/portfolio/internal/config"
	"github.com/saai151/portfolio/internal/content"
)

// App is the root model. It owns both themes and the Wrapped overlay,
// which sits on top of whichever theme is showing.
type App struct {
	ctx    context.Context
	cfg    config.Config
	resume content.Resume
	loader StatsLoader
	keys   *KeyRegistry

	theme  string
	st     styles
	player *playerModel
	editor *editorModel

	wrapped *wrappedView
	loadGen int

	status    string
	statusErr bool

	width, height int
}

func New(ctx context.Context, cfg config.Config, resume content.Resume, loader StatsLoader) *App {
	if loader == nil {
		loader = staticLoader{}
	}
	theme := cfg.UI.Theme
	if theme != config.ThemeEditor {
		theme = config.ThemePlayer
	}
	st := newStyles(paletteFor(theme))
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		resume: resume,
		loader: loader,
		keys:   NewKeyRegistry(),
		theme:  theme,
		st:     st,
		player: newPlayerModel(resume, cfg.Wrapped.NotificationDelay, st),
		editor: newEditorModel(resume, st),
	}
}

func paletteFor(theme string) palette {
	if theme == config.ThemeEditor {
		return editorPalette
	}
	return playerPalette
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.player.Init(), a.editor.Init())
}

// Theme reports the theme currently showing.
func (a *App) Theme() string { return a.theme }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.player.setSize(m.Width, m.Height)
		a.editor.setSize(m.Width, m.Height)
		return a, nil
	case statsLoadedMsg:
		if a.wrapped == nil || m.gen != a.wrapped.gen || !a.wrapped.loading {
			log.Printf("wrapped: dropping stale load gen=%d", m.gen)
			return a, nil
		}
		if !m.result.Live {
			a.status = "showing offline stats"
		}
		return a, a.wrapped.loaded(m.result)
	case playTickMsg, notifyMsg:
		cmd, _ := a.player.Update(msg, a.keys)
		return a, cmd
	case typeTickMsg:
		cmd, _ := a.editor.Update(msg, a.keys)
		return a, cmd
	case tea.KeyMsg:
		if a.wrapped != nil {
			cmd, closed := a.wrapped.Update(m, a.keys)
			if closed {
				a.closeWrapped()
			}
			return a, cmd
		}
		a.status, a.statusErr = "", false
		var (
			cmd tea.Cmd
			in  intent
		)
		if a.theme == config.ThemeEditor {
			cmd, in = a.editor.Update(m, a.keys)
		} else {
			cmd, in = a.player.Update(m, a.keys)
		}
		return a, tea.Batch(cmd, a.apply(in))
	}

	if a.wrapped != nil {
		cmd, _ := a.wrapped.Update(msg, a.keys)
		return a, cmd
	}
	return a, nil
}

func (a *App) apply(in intent) tea.Cmd {
	switch in {
	case intentOpenWrapped:
		return a.openWrapped()
	case intentToggleTheme:
		a.toggleTheme()
	}
	return nil
}

// openWrapped starts a fresh overlay and its load. Any earlier load is
// cancelled and its result will be dropped by generation.
func (a *App) openWrapped() tea.Cmd {
	if a.wrapped != nil {
		a.wrapped.close()
	}
	a.loadGen++
	ctx, cancel := context.WithCancel(a.ctx)
	a.wrapped = newWrappedView(a.loadGen, cancel, a.resume, wrappedOptions{
		StepDelay:       a.cfg.Wrapped.StepDelay,
		JumpDelay:       a.cfg.Wrapped.JumpDelay,
		CounterDuration: a.cfg.Wrapped.CounterDuration,
	}, a.st)
	return tea.Batch(a.wrapped.Init(), loadStatsCmd(ctx, a.loader, a.loadGen))
}

func (a *App) closeWrapped() {
	if a.wrapped == nil {
		return
	}
	a.wrapped.close()
	a.wrapped = nil
}

func (a *App) toggleTheme() {
	if a.theme == config.ThemePlayer {
		a.theme = config.ThemeEditor
	} else {
		a.theme = config.ThemePlayer
	}
	a.st = newStyles(paletteFor(a.theme))
	a.player.setStyles(a.st)
	a.editor.setStyles(a.st)
}

func (a *App) scope() string {
	switch {
	case a.wrapped != nil:
		return a.wrapped.scope()
	case a.theme == config.ThemeEditor:
		return a.editor.scope()
	case a.player.notifying:
		return scopeNotification
	default:
		return a.player.scope()
	}
}

func (a *App) View() string {
	var body string
	switch {
	case a.wrapped != nil:
		body = a.wrapped.View(a.st, a.width, a.height)
	case a.theme == config.ThemeEditor:
		body = a.editor.View()
	default:
		body = a.player.View()
	}

	status := a.status
	if status == "" && a.theme == config.ThemeEditor {
		status = a.editor.status
	}
	if status == "" {
		status = a.headline()
	}
	statusLine := renderStatus(a.st, status, a.statusErr, a.width)
	footer := renderFooter(a.st, a.keys.HelpBindings(a.scope()), a.width)
	view := placeWithFooter(body, statusLine, footer, a.width, a.height)
	if a.width > 0 {
		view = lipgloss.NewStyle().Background(a.st.p.Base).Width(a.width).Render(view)
	}
	return view
}

func (a *App) headline() string {
	parts := []string{a.resume.Profile.Name}
	if a.resume.Profile.Status != "" {
		parts = append(parts, a.resume.Profile.Status)
	}
	return strings.Join(parts, " · ")
}
