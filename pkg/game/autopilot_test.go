package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/types"
)

func TestCycleToward(t *testing.T) {
	tests := []struct {
		from, to types.ElementType
		want     int
	}{
		{types.ElementEarth, types.ElementEarth, 0},
		{types.ElementEarth, types.ElementWater, 1},
		{types.ElementEarth, types.ElementFire, 1},
		{types.ElementEarth, types.ElementAir, -1},
		{types.ElementAir, types.ElementEarth, 1},
		{types.ElementFire, types.ElementWater, -1},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, cycleToward(tt.from, tt.to))
		})
	}
}

func TestAutopilotNext(t *testing.T) {
	pilot := NewAutopilot()
	snap := Snapshot{
		Field:  types.RectFromCenter(types.Vec2{}, 1024, 768),
		Basket: BasketView{Bounds: types.RectFromCenter(types.Vec2{X: 0, Y: -339}, 120, 60), Element: types.ElementEarth},
		Orbs: []OrbView{
			{Bounds: types.RectFromCenter(types.Vec2{X: 300, Y: 200}, 60, 60), Element: types.ElementWater},
			{Bounds: types.RectFromCenter(types.Vec2{X: -200, Y: -100}, 60, 60), Element: types.ElementAir},
		},
		State: StateRunning,
	}

	in := pilot.Next(snap, 0.02, 3)
	assert.Equal(t, 0.02, in.DT)
	assert.Equal(t, 3.0, in.Time)
	assert.True(t, in.MoveLeft)
	assert.False(t, in.MoveRight)
	assert.Equal(t, -1, in.Cycle)
	assert.False(t, in.Restart)

	// 已对准则不移动
	snap.Orbs = snap.Orbs[:1]
	snap.Basket.Bounds = types.RectFromCenter(types.Vec2{X: 298, Y: -339}, 120, 60)
	in = pilot.Next(snap, 0.02, 3)
	assert.False(t, in.MoveLeft)
	assert.False(t, in.MoveRight)
	assert.Equal(t, 1, in.Cycle)

	snap.State = StateLost
	in = pilot.Next(snap, 0.02, 3)
	assert.True(t, in.Restart)
}

// TestAutopilotWinsStraightNarrowField 测试无漂移窄场地上自动驾驶能接住所有元素球
func TestAutopilotWinsStraightNarrowField(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	cfg.Field.Width = 400
	cfg.Orb.Drift.Amplitude = types.Range{}
	s, err := NewSession(cfg, 7)
	require.NoError(t, err)

	pilot := NewAutopilot()
	const dt = 1.0 / 60
	now := 0.0
	for i := 0; i < 6000 && s.State() == StateRunning; i++ {
		now += dt
		s.Update(pilot.Next(s.Snapshot(), dt, now))
	}

	assert.Equal(t, StateWon, s.State())
	assert.Equal(t, 0, s.Stats().Missed)
	assert.Equal(t, 0, s.Stats().Wrong)
	assert.Equal(t, 20, s.Stats().Correct)
}
