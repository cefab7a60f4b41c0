// Package slides drives the Wrapped presentation: which slide is showing,
// the cross-fade lock between slides, and the count-up stat counters.
//
// Everything here is plain Bubble Tea state. Timers are tea.Tick commands
// handed back to the caller; the state only changes when the resulting
// message is fed back through Update.
package slides

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultStepDelay = 400 * time.Millisecond
	DefaultJumpDelay = 300 * time.Millisecond
)

// lastTransitionSeq is shared by every controller so a completion left over
// from a discarded controller never matches a live one.
var lastTransitionSeq atomic.Int64

func nextTransitionSeq() int {
	return int(lastTransitionSeq.Add(1))
}

// TransitionDoneMsg commits a pending transition once its fade has played.
type TransitionDoneMsg struct {
	Seq int
}

// Controller holds the current slide and whether a transition is in
// flight. Only one transition may be pending; requests made while one is
// pending are dropped.
type Controller struct {
	index     int
	count     int
	animating bool
	seq       int
	target    int
	step      time.Duration
	jump      time.Duration
}

// NewController returns a controller over count slides, resting on slide 0.
// Non-positive delays fall back to the defaults.
func NewController(count int, step, jump time.Duration) *Controller {
	if count < 1 {
		count = 1
	}
	if step <= 0 {
		step = DefaultStepDelay
	}
	if jump <= 0 {
		jump = DefaultJumpDelay
	}
	return &Controller{count: count, step: step, jump: jump}
}

func (c *Controller) Index() int      { return c.index }
func (c *Controller) Count() int      { return c.count }
func (c *Controller) Animating() bool { return c.animating }
func (c *Controller) IsFirst() bool   { return c.index == 0 }
func (c *Controller) IsLast() bool    { return c.index == c.count-1 }

// Next starts a transition to the following slide. It returns nil when
// already on the last slide or while a transition is pending.
func (c *Controller) Next() tea.Cmd {
	return c.begin(c.index+1, c.step)
}

// Previous is the mirror of Next.
func (c *Controller) Previous() tea.Cmd {
	return c.begin(c.index-1, c.step)
}

// JumpTo starts a transition to slide i, as the progress indicator does.
func (c *Controller) JumpTo(i int) tea.Cmd {
	return c.begin(i, c.jump)
}

func (c *Controller) begin(target int, delay time.Duration) tea.Cmd {
	if c.animating || target < 0 || target >= c.count {
		return nil
	}
	c.animating = true
	c.target = target
	c.seq = nextTransitionSeq()
	seq := c.seq
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TransitionDoneMsg{Seq: seq}
	})
}

// Update commits the pending transition. It reports whether msg was a
// completion for this controller's current transition.
func (c *Controller) Update(msg tea.Msg) bool {
	done, ok := msg.(TransitionDoneMsg)
	if !ok || !c.animating || done.Seq != c.seq {
		return false
	}
	c.index = c.target
	c.animating = false
	return true
}

// Reset returns to slide 0 and drops any pending transition.
func (c *Controller) Reset() {
	c.index = 0
	c.animating = false
	c.seq = nextTransitionSeq()
}
