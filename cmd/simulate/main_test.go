package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/game"
)

func newSession(t *testing.T, seed uint64) *game.Session {
	t.Helper()
	session, err := game.NewSession(config.DefaultGameplayConfig(), seed)
	require.NoError(t, err)
	return session
}

// TestSimulateIdleStopsAtGameOver 测试无输入时第一局结束即停止
func TestSimulateIdleStopsAtGameOver(t *testing.T) {
	session := newSession(t, 3)
	summary := simulate(session, 100000, 0, 1.0/60, false)

	assert.True(t, summary.State.IsTerminal())
	assert.Equal(t, 1, summary.GamesWon+summary.GamesLost)
	assert.Less(t, summary.Frames, 100000)
	assert.Positive(t, summary.Totals.Spawned)
	assert.Equal(t, summary.Frames, summary.CurrentGame.Frames)
}

func TestSimulateFrameLimit(t *testing.T) {
	session := newSession(t, 3)
	summary := simulate(session, 30, 0, 1.0/60, true)

	assert.Equal(t, 30, summary.Frames)
	assert.Equal(t, 30, summary.Totals.Frames)
	assert.InDelta(t, 0.5, summary.SimTime, 1e-9)
	assert.Equal(t, game.StateRunning, summary.State)
}

// TestSimulateDeterministic 测试相同种子产生相同结果
func TestSimulateDeterministic(t *testing.T) {
	a := simulate(newSession(t, 11), 3000, 0, 1.0/60, true)
	b := simulate(newSession(t, 11), 3000, 0, 1.0/60, true)
	assert.Equal(t, a, b)
}
