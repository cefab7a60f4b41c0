package slides

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCounterEasesToTarget(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	c, cmd := NewCounter(1280, time.Second).Start(start)
	require.NotNil(t, cmd)
	require.Equal(t, 0, c.Value())

	c, cmd = c.Update(CounterFrameMsg{ID: c.ID(), Time: start.Add(500 * time.Millisecond)})
	require.NotNil(t, cmd)
	// 1 - 0.5^3 = 0.875
	require.Equal(t, 1120, c.Value())
	require.True(t, c.Running())

	c, cmd = c.Update(CounterFrameMsg{ID: c.ID(), Time: start.Add(2 * time.Second)})
	require.Nil(t, cmd)
	require.Equal(t, 1280, c.Value())
	require.True(t, c.Done())
}

func TestCounterIgnoresForeignFrames(t *testing.T) {
	start := time.Now()
	c, _ := NewCounter(50, time.Second).Start(start)
	oldID := c.ID()

	c, _ = c.Start(start)
	require.NotEqual(t, oldID, c.ID())

	c, cmd := c.Update(CounterFrameMsg{ID: oldID, Time: start.Add(time.Hour)})
	require.Nil(t, cmd)
	require.Equal(t, 0, c.Value())
}

func TestCounterView(t *testing.T) {
	c := NewCounter(1353, 0).Finish()
	require.Equal(t, "1,353", c.View())

	pct := NewCounter(26, 0)
	pct.Suffix = "%"
	require.Equal(t, "26%", pct.Finish().View())
	require.Equal(t, "0%", pct.View())
}

func TestFormatCount(t *testing.T) {
	require.Equal(t, "0", FormatCount(0))
	require.Equal(t, "999", FormatCount(999))
	require.Equal(t, "1,000,000", FormatCount(1000000))
}
