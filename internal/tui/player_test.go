package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T) (*playerModel, *KeyRegistry) {
	t.Helper()
	p := newPlayerModel(testResume(t), 0, newStyles(playerPalette))
	p.setSize(120, 30)
	return p, NewKeyRegistry()
}

func TestPlayerSkipWrapsAndResetsProgress(t *testing.T) {
	p, keys := newTestPlayer(t)
	p.progress = 40

	p.Update(press("p"), keys)
	require.Equal(t, len(p.resume.Projects)-1, p.track)
	require.Zero(t, p.progress)

	p.Update(press("n"), keys)
	require.Equal(t, 0, p.track)

	p.Update(press("right"), keys)
	require.Equal(t, 1, p.track)
}

func TestPlayerProgressClimbsToTrackProgress(t *testing.T) {
	p, keys := newTestPlayer(t)

	cmd, _ := p.Update(playTickMsg{seq: p.seq}, keys)
	require.NotNil(t, cmd)
	require.InDelta(t, 0.5, p.progress, 1e-9)

	target := float64(p.resume.Projects[0].Progress)
	p.progress = target - 0.25
	p.Update(playTickMsg{seq: p.seq}, keys)
	require.InDelta(t, target, p.progress, 1e-9)

	cmd, _ = p.Update(playTickMsg{seq: p.seq}, keys)
	require.Nil(t, cmd, "a parked bar stops ticking")
	require.InDelta(t, target, p.progress, 1e-9)
}

func TestPlayerIgnoresStaleTicks(t *testing.T) {
	p, keys := newTestPlayer(t)
	old := p.seq
	p.Update(press("n"), keys)

	cmd, _ := p.Update(playTickMsg{seq: old}, keys)
	require.Nil(t, cmd)
	require.Zero(t, p.progress)
}

func TestPlayerPause(t *testing.T) {
	p, keys := newTestPlayer(t)
	require.True(t, p.playing)

	p.Update(press("space"), keys)
	require.False(t, p.playing)
	cmd, _ := p.Update(playTickMsg{seq: p.seq}, keys)
	require.Nil(t, cmd)
	require.Zero(t, p.progress)

	cmd, _ = p.Update(press("space"), keys)
	require.True(t, p.playing)
	require.NotNil(t, cmd)
}

func TestPlayerQueue(t *testing.T) {
	p, keys := newTestPlayer(t)
	require.Equal(t, []int{1, 2}, p.queue())

	p.Update(press("Q"), keys)
	require.Equal(t, scopePlayerQueue, p.scope())
	require.Contains(t, p.View(), "Queue")

	p.Update(press("j"), keys)
	p.Update(press("enter"), keys)
	require.False(t, p.queueOpen)
	require.Equal(t, 2, p.track)
	require.Equal(t, []int{0, 1}, p.queue())

	p.Update(press("Q"), keys)
	p.Update(press("esc"), keys)
	require.False(t, p.queueOpen)
	require.Equal(t, 2, p.track)
}

func TestPlayerSidebarJumpsToSection(t *testing.T) {
	p, keys := newTestPlayer(t)
	require.Zero(t, p.offsets[sectionHome])
	require.Greater(t, p.offsets[sectionExperience], p.offsets[sectionAbout])

	p.Update(press("j"), keys)
	p.Update(press("j"), keys)
	require.Equal(t, sectionExperience, playerSections[p.cursor])

	p.Update(press("enter"), keys)
	require.Equal(t, p.offsets[sectionExperience], p.page.YOffset)

	// the cursor stops at either end
	for range playerSections {
		p.Update(press("k"), keys)
	}
	require.Zero(t, p.cursor)
}

func TestNotificationDismissIsPermanent(t *testing.T) {
	p, keys := newTestPlayer(t)

	p.Update(notifyMsg{}, keys)
	require.True(t, p.notifying)

	_, in := p.Update(press("x"), keys)
	require.Equal(t, intentNone, in)
	require.False(t, p.notifying)

	p.Update(notifyMsg{}, keys)
	require.False(t, p.notifying)
}

func TestPlayerIntents(t *testing.T) {
	p, keys := newTestPlayer(t)

	_, in := p.Update(press("w"), keys)
	require.Equal(t, intentOpenWrapped, in)

	_, in = p.Update(press("t"), keys)
	require.Equal(t, intentToggleTheme, in)

	_, in = p.Update(press("q"), keys)
	require.Equal(t, intentQuit, in)
}

func TestFormatTime(t *testing.T) {
	require.Equal(t, "0:00", formatTime(0))
	require.Equal(t, "0:51", formatTime(51))
	require.Equal(t, "1:00", formatTime(60))
	require.Equal(t, "2:05", formatTime(125))
}
