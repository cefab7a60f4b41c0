package slides

import (
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCounterDuration = 1500 * time.Millisecond
	counterFrame           = time.Second / 30
)

var (
	lastCounterID int64
	printer       = message.NewPrinter(language.English)
)

func nextCounterID() int {
	return int(atomic.AddInt64(&lastCounterID, 1))
}

// CounterFrameMsg advances the counter with the matching ID.
type CounterFrameMsg struct {
	ID   int
	Time time.Time
}

// Counter animates a number from zero up to a target, easing out so the
// last digits settle slowly.
type Counter struct {
	Prefix string
	Suffix string

	id       int
	target   int
	value    int
	duration time.Duration
	started  time.Time
	running  bool
}

// NewCounter returns a stopped counter showing zero.
func NewCounter(target int, d time.Duration) Counter {
	if d <= 0 {
		d = DefaultCounterDuration
	}
	return Counter{id: nextCounterID(), target: target, duration: d}
}

func (c Counter) ID() int       { return c.id }
func (c Counter) Target() int   { return c.target }
func (c Counter) Value() int    { return c.value }
func (c Counter) Done() bool    { return !c.running && c.value == c.target }
func (c Counter) Running() bool { return c.running }

// Start restarts the animation from zero at now.
func (c Counter) Start(now time.Time) (Counter, tea.Cmd) {
	c.value = 0
	c.started = now
	c.running = true
	// a fresh id makes frames from an earlier run fall through
	c.id = nextCounterID()
	return c, c.tick()
}

// Finish jumps straight to the target.
func (c Counter) Finish() Counter {
	c.value = c.target
	c.running = false
	return c
}

func (c Counter) Update(msg tea.Msg) (Counter, tea.Cmd) {
	frame, ok := msg.(CounterFrameMsg)
	if !ok || frame.ID != c.id || !c.running {
		return c, nil
	}
	progress := float64(frame.Time.Sub(c.started)) / float64(c.duration)
	if progress >= 1 {
		return c.Finish(), nil
	}
	if progress < 0 {
		progress = 0
	}
	c.value = int(math.Floor(float64(c.target) * easeOutCubic(progress)))
	return c, c.tick()
}

func (c Counter) View() string {
	return c.Prefix + FormatCount(c.value) + c.Suffix
}

func (c Counter) tick() tea.Cmd {
	id := c.id
	return tea.Tick(counterFrame, func(t time.Time) tea.Msg {
		return CounterFrameMsg{ID: id, Time: t}
	})
}

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// FormatCount renders n with English digit grouping, e.g. 1,280.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
