package slides

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func newTestController(count int) *Controller {
	return NewController(count, time.Millisecond, time.Millisecond)
}

// finish runs a transition command and feeds its message back.
func finish(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	require.True(t, c.Update(cmd()))
}

func TestNextAdvancesAfterTransition(t *testing.T) {
	c := newTestController(9)
	cmd := c.Next()
	require.True(t, c.Animating())
	require.Equal(t, 0, c.Index(), "index must not move before the fade completes")

	finish(t, c, cmd)
	require.Equal(t, 1, c.Index())
	require.False(t, c.Animating())
}

func TestBoundariesRefuseNavigation(t *testing.T) {
	c := newTestController(3)
	require.Nil(t, c.Previous())
	require.False(t, c.Animating())
	require.Equal(t, 0, c.Index())

	finish(t, c, c.Next())
	finish(t, c, c.Next())
	require.True(t, c.IsLast())

	require.Nil(t, c.Next())
	require.False(t, c.Animating())
	require.Equal(t, 2, c.Index())
}

func TestRequestsDuringTransitionAreIgnored(t *testing.T) {
	c := newTestController(9)
	cmd := c.Next()
	require.Nil(t, c.Next())
	require.Nil(t, c.Previous())
	require.Nil(t, c.JumpTo(5))

	finish(t, c, cmd)
	require.Equal(t, 1, c.Index())
}

func TestJumpTo(t *testing.T) {
	c := newTestController(9)
	finish(t, c, c.JumpTo(6))
	require.Equal(t, 6, c.Index())

	finish(t, c, c.JumpTo(2))
	require.Equal(t, 2, c.Index())

	require.Nil(t, c.JumpTo(9))
	require.Nil(t, c.JumpTo(-1))
	require.Equal(t, 2, c.Index())
}

func TestStaleCompletionIgnored(t *testing.T) {
	c := newTestController(9)
	stale := c.Next()
	msg := stale()
	c.Reset()

	require.False(t, c.Update(msg))
	require.Equal(t, 0, c.Index())
	require.False(t, c.Animating())

	require.False(t, c.Update(TransitionDoneMsg{Seq: 99}))
	require.False(t, c.Update("not a transition"))
}

func TestCompletionFromDiscardedControllerIgnored(t *testing.T) {
	old := newTestController(9)
	leftover := old.Next()()

	c := newTestController(9)
	pending := c.JumpTo(6)
	require.NotNil(t, pending)

	require.False(t, c.Update(leftover))
	require.True(t, c.Animating(), "the new transition must wait for its own timer")
	require.Equal(t, 0, c.Index())

	finish(t, c, pending)
	require.Equal(t, 6, c.Index())
}

func TestIndexStaysInRange(t *testing.T) {
	c := newTestController(4)
	ops := []func() tea.Cmd{c.Next, c.Next, c.Previous, c.Next, c.Next, c.Next, c.Next, c.Previous}
	for _, op := range ops {
		if cmd := op(); cmd != nil {
			finish(t, c, cmd)
		}
		require.GreaterOrEqual(t, c.Index(), 0)
		require.Less(t, c.Index(), c.Count())
	}
	require.Equal(t, 2, c.Index())
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController(0, 0, 0)
	require.Equal(t, 1, c.Count())
	require.Equal(t, DefaultStepDelay, c.step)
	require.Equal(t, DefaultJumpDelay, c.jump)
	require.Nil(t, c.Next())
}

func TestDeckOrder(t *testing.T) {
	deck := Deck()
	require.Len(t, deck, 9)
	require.Equal(t, Intro, deck[0].Kind)
	require.Equal(t, Share, deck[len(deck)-1].Kind)
	for i, s := range deck {
		require.Equal(t, Kind(i), s.Kind)
		require.NotEmpty(t, s.Label)
		require.NotEqual(t, "unknown", s.Kind.String())
	}
}
