package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saai151/portfolio/internal/content"
	"github.com/saai151/portfolio/internal/slides"
	"github.com/saai151/portfolio/internal/wrapped"
)

// StatsLoader resolves the Wrapped dataset. It never fails.
type StatsLoader interface {
	Load(ctx context.Context) wrapped.Result
}

// staticLoader always resolves to the fallback dataset.
type staticLoader struct{}

func (staticLoader) Load(context.Context) wrapped.Result {
	return wrapped.Result{Stats: wrapped.Fallback(), Path: wrapped.PathFallback}
}

// statsLoadedMsg carries a finished load tagged with the generation of the
// overlay that asked for it.
type statsLoadedMsg struct {
	gen    int
	result wrapped.Result
}

func loadStatsCmd(ctx context.Context, loader StatsLoader, gen int) tea.Cmd {
	return func() tea.Msg {
		return statsLoadedMsg{gen: gen, result: loader.Load(ctx)}
	}
}

// wrappedView is the full-screen slideshow. It shows a spinner until the
// stats arrive; navigation only exists once they have.
type wrappedView struct {
	gen     int
	cancel  context.CancelFunc
	loading bool
	result  wrapped.Result

	deck     []slides.Slide
	ctrl     *slides.Controller
	counters map[slides.Kind][]slides.Counter
	spinner  spinner.Model

	resume          content.Resume
	counterDuration time.Duration
	now             func() time.Time
}

type wrappedOptions struct {
	StepDelay       time.Duration
	JumpDelay       time.Duration
	CounterDuration time.Duration
}

func newWrappedView(gen int, cancel context.CancelFunc, resume content.Resume, opts wrappedOptions, st styles) *wrappedView {
	deck := slides.Deck()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = st.accent
	return &wrappedView{
		gen:             gen,
		cancel:          cancel,
		loading:         true,
		deck:            deck,
		ctrl:            slides.NewController(len(deck), opts.StepDelay, opts.JumpDelay),
		counters:        map[slides.Kind][]slides.Counter{},
		spinner:         sp,
		resume:          resume,
		counterDuration: opts.CounterDuration,
		now:             time.Now,
	}
}

func (w *wrappedView) Init() tea.Cmd {
	return w.spinner.Tick
}

// close cancels an in-flight load. Safe to call more than once.
func (w *wrappedView) close() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *wrappedView) current() slides.Slide {
	return w.deck[w.ctrl.Index()]
}

// loaded stores the result and starts the first slide's counters.
func (w *wrappedView) loaded(res wrapped.Result) tea.Cmd {
	w.loading = false
	w.result = res
	w.close()
	w.buildCounters()
	return w.startCounters(w.current().Kind)
}

func (w *wrappedView) buildCounters() {
	s := w.result.Stats
	d := w.counterDuration
	trio := func() []slides.Counter {
		return []slides.Counter{
			slides.NewCounter(s.TotalCommits, d),
			slides.NewCounter(s.TotalPRs, d),
			slides.NewCounter(s.RepoCount, d),
		}
	}
	w.counters[slides.Hook] = trio()
	w.counters[slides.Share] = trio()
	if top, ok := s.TopLanguage(); ok {
		pct := slides.NewCounter(top.Percentage, d)
		pct.Suffix = "%"
		w.counters[slides.Genres] = []slides.Counter{pct}
	}
}

func (w *wrappedView) startCounters(kind slides.Kind) tea.Cmd {
	list := w.counters[kind]
	if len(list) == 0 {
		return nil
	}
	now := w.now()
	cmds := make([]tea.Cmd, 0, len(list))
	for i := range list {
		var cmd tea.Cmd
		list[i], cmd = list[i].Start(now)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (w *wrappedView) Update(msg tea.Msg, keys *KeyRegistry) (tea.Cmd, bool) {
	switch m := msg.(type) {
	case spinner.TickMsg:
		if !w.loading {
			return nil, false
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(m)
		return cmd, false
	case slides.TransitionDoneMsg:
		if w.ctrl.Update(m) {
			return w.startCounters(w.current().Kind), false
		}
		return nil, false
	case slides.CounterFrameMsg:
		for kind, list := range w.counters {
			for i := range list {
				if list[i].ID() != m.ID {
					continue
				}
				var cmd tea.Cmd
				w.counters[kind][i], cmd = list[i].Update(m)
				return cmd, false
			}
		}
		return nil, false
	case tea.KeyMsg:
		return w.handleKey(m, keys)
	}
	return nil, false
}

// handleKey returns closed=true when the overlay should go away.
func (w *wrappedView) handleKey(msg tea.KeyMsg, keys *KeyRegistry) (tea.Cmd, bool) {
	scope := scopeWrapped
	if !w.loading {
		scope = scopeWrappedLoaded
	}
	switch keys.Action(msg, scope) {
	case actionQuit:
		return tea.Quit, true
	case actionCloseWrapped:
		return nil, true
	case actionNextSlide:
		if w.ctrl.IsLast() {
			// the last slide's primary action returns to the portfolio
			return nil, true
		}
		return w.ctrl.Next(), false
	case actionPrevSlide:
		return w.ctrl.Previous(), false
	case actionJumpSlide:
		idx := int(msg.String()[0] - '1')
		return w.ctrl.JumpTo(idx), false
	case actionRestartSlides:
		w.ctrl.Reset()
		return w.startCounters(w.current().Kind), false
	}
	return nil, false
}

func (w *wrappedView) scope() string {
	if w.loading {
		return scopeWrapped
	}
	return scopeWrappedLoaded
}
