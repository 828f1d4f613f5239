package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/entities"
	"github.com/decker502/orbcatch/pkg/types"
)

const frameDT = 0.01

// newTestSession 创建不会自动生成元素球的会话
func newTestSession(t *testing.T, mutate func(*config.GameplayConfig)) *Session {
	t.Helper()
	cfg := config.DefaultGameplayConfig()
	cfg.Orb.SpawnInterval = 1000
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewSession(cfg, 42)
	require.NoError(t, err)
	return s
}

// placeOrb 放置一个无漂移、无拖尾的元素球
func placeOrb(s *Session, x, y float64, element types.ElementType) *entities.Orb {
	o := entities.NewOrb(types.Vec2{X: x, Y: y}, s.cfg.Orb.Size, element, s.cfg.Orb.FallSpeed, entities.Drift{}, entities.Trail{})
	s.orbs = append(s.orbs, o)
	return o
}

// step 推进一帧，返回事件类型序列
func step(s *Session, in FrameInput) []EventKind {
	in.DT = frameDT
	events := s.Update(in)
	kinds := make([]EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

// basketCatchY 正好压在篮子上沿的元素球中心 Y
func basketCatchY(s *Session) float64 {
	return s.basket.Bounds().Top() + s.cfg.Orb.Size/2 - 1
}

func TestNewSessionInitialState(t *testing.T) {
	s := newTestSession(t, nil)

	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.OrbCount())
	assert.Equal(t, types.ElementEarth, s.BasketElement())

	// 篮子底边距场地下边缘 30
	b := s.basket.Bounds()
	assert.InDelta(t, -384.0+30, b.Bottom, 1e-9)
	assert.InDelta(t, 0.0, b.Center().X, 1e-9)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	cfg.Scoring.WinThreshold = -1
	_, err := NewSession(cfg, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gameplay config")
}

func TestCorrectCatch(t *testing.T) {
	s := newTestSession(t, nil)
	placeOrb(s, 0, basketCatchY(s), types.ElementEarth)

	kinds := step(s, FrameInput{})

	assert.Equal(t, []EventKind{EventCorrectCatch}, kinds)
	assert.Equal(t, 5, s.Score())
	assert.Equal(t, 0, s.OrbCount())
	assert.Equal(t, 50, s.Pools().Pool(types.ElementEarth).ActiveCount())
	assert.Equal(t, 50, s.Pools().ActiveCount())
	assert.Equal(t, 1, s.Stats().Correct)
}

func TestWrongCatch(t *testing.T) {
	s := newTestSession(t, nil)
	placeOrb(s, 0, basketCatchY(s), types.ElementFire)

	kinds := step(s, FrameInput{})

	assert.Equal(t, []EventKind{EventWrongCatch}, kinds)
	assert.Equal(t, -2, s.Score())
	assert.Equal(t, StateRunning, s.State())
	// 接错时向元素球自己类型的池发射较少的粒子
	assert.Equal(t, 20, s.Pools().Pool(types.ElementFire).ActiveCount())
	assert.Equal(t, 0, s.Pools().Pool(types.ElementEarth).ActiveCount())
}

func TestMissedOrbPenaltyWithoutParticles(t *testing.T) {
	s := newTestSession(t, nil)
	// 上边缘 -390，低于下边缘 -384
	placeOrb(s, 300, -420, types.ElementWater)

	events := s.Update(FrameInput{DT: frameDT, Time: frameDT})

	require.Len(t, events, 1)
	assert.Equal(t, EventMissed, events[0].Kind)
	assert.Equal(t, types.ElementWater, events[0].Element)
	assert.Equal(t, -2, events[0].Score)
	assert.True(t, events[0].IsPenalty())
	assert.Equal(t, -2, s.Score())
	assert.Equal(t, 0, s.Pools().ActiveCount())
	assert.Equal(t, 1, s.Stats().Missed)
}

func TestOrbNotYetOffScreenIsKept(t *testing.T) {
	s := newTestSession(t, nil)
	placeOrb(s, 300, -350, types.ElementWater)

	assert.Empty(t, step(s, FrameInput{}))
	assert.Equal(t, 1, s.OrbCount())
}

// TestLoseOnExactFrame 测试分数达到失败阈值的同一帧进入失败状态
func TestLoseOnExactFrame(t *testing.T) {
	s := newTestSession(t, nil)
	s.score = -3
	placeOrb(s, 0, basketCatchY(s), types.ElementAir)
	placeOrb(s, 300, 200, types.ElementAir)

	events := s.Update(FrameInput{DT: frameDT})

	require.Len(t, events, 2)
	assert.Equal(t, EventWrongCatch, events[0].Kind)
	assert.Equal(t, EventStateChanged, events[1].Kind)
	assert.Equal(t, StateRunning, events[1].Previous)
	assert.Equal(t, StateLost, events[1].State)
	assert.Equal(t, StateLost, s.State())
	// 进入终止状态时丢弃所有元素球
	assert.Equal(t, 0, s.OrbCount())
}

// TestWinOnExactFrame 测试分数达到胜利阈值的同一帧进入胜利状态
func TestWinOnExactFrame(t *testing.T) {
	s := newTestSession(t, nil)
	s.score = 95
	placeOrb(s, 0, basketCatchY(s), types.ElementEarth)

	kinds := step(s, FrameInput{})

	assert.Equal(t, []EventKind{EventCorrectCatch, EventStateChanged}, kinds)
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, StateWon, s.State())
}

// TestThresholdsEvaluatedAfterAllScoring 测试阈值在本帧所有计分之后才判定
func TestThresholdsEvaluatedAfterAllScoring(t *testing.T) {
	s := newTestSession(t, nil)
	s.score = -3
	placeOrb(s, 300, -420, types.ElementWater)          // 漏接 -2 → -5
	placeOrb(s, 0, basketCatchY(s), types.ElementEarth) // 接住 +5 → 0

	kinds := step(s, FrameInput{})

	assert.Equal(t, []EventKind{EventMissed, EventCorrectCatch}, kinds)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, StateRunning, s.State())
}

func TestTerminalStateFreezesGameplay(t *testing.T) {
	s := newTestSession(t, func(cfg *config.GameplayConfig) {
		cfg.Orb.SpawnInterval = 0.05
	})
	s.score = 95
	placeOrb(s, 0, basketCatchY(s), types.ElementEarth)
	step(s, FrameInput{})
	require.Equal(t, StateWon, s.State())

	basketX := s.basket.Position.X
	particles := s.Pools().ActiveCount()
	require.Positive(t, particles)

	for i := 0; i < 20; i++ {
		kinds := step(s, FrameInput{MoveLeft: true, Cycle: 1})
		assert.Empty(t, kinds)
	}
	assert.Equal(t, 0, s.OrbCount(), "no spawning while terminal")
	assert.Equal(t, basketX, s.basket.Position.X, "no movement while terminal")
	assert.Equal(t, types.ElementEarth, s.BasketElement(), "no cycling while terminal")
	assert.Equal(t, 100, s.Score())

	// 粒子继续衰减直到全部消失
	for i := 0; i < 200; i++ {
		step(s, FrameInput{})
	}
	assert.Equal(t, 0, s.Pools().ActiveCount())
}

func TestRestartOnlyInTerminalState(t *testing.T) {
	s := newTestSession(t, nil)
	s.score = 3
	placeOrb(s, 300, 200, types.ElementFire)

	assert.False(t, s.Restart())
	assert.Empty(t, step(s, FrameInput{Restart: true}))
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, 1, s.OrbCount())

	s.score = -4
	placeOrb(s, 0, basketCatchY(s), types.ElementFire)
	step(s, FrameInput{})
	require.Equal(t, StateLost, s.State())

	events := s.Update(FrameInput{DT: frameDT, Restart: true})
	require.Len(t, events, 2)
	assert.Equal(t, EventStateChanged, events[0].Kind)
	assert.Equal(t, StateLost, events[0].Previous)
	assert.Equal(t, EventReset, events[1].Kind)
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 0, s.Score())
}

// TestResetLeavesParticlePools 测试重置不清空粒子池
func TestResetLeavesParticlePools(t *testing.T) {
	s := newTestSession(t, nil)
	placeOrb(s, 0, basketCatchY(s), types.ElementEarth)
	step(s, FrameInput{Cycle: 2})
	step(s, FrameInput{MoveRight: true})
	placeOrb(s, 100, 100, types.ElementAir)
	s.spawnTimer = 3

	before := s.Pools().ActiveCount()
	require.Positive(t, before)

	s.Reset()

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 0, s.OrbCount())
	assert.Equal(t, 0.0, s.spawnTimer)
	assert.Equal(t, types.ElementEarth, s.BasketElement())
	assert.Equal(t, 0.0, s.basket.Position.X)
	assert.Equal(t, Stats{}, s.Stats())
	assert.Equal(t, before, s.Pools().ActiveCount())
}

// TestThreeCorrectThenMiss 测试 3 次接住加 1 次漏接后的分数
func TestThreeCorrectThenMiss(t *testing.T) {
	s := newTestSession(t, nil)

	for i := 0; i < 3; i++ {
		placeOrb(s, 0, basketCatchY(s), types.ElementEarth)
		assert.Equal(t, []EventKind{EventCorrectCatch}, step(s, FrameInput{}))
	}
	placeOrb(s, -300, -420, types.ElementFire)
	assert.Equal(t, []EventKind{EventMissed}, step(s, FrameInput{}))

	assert.Equal(t, 3*5-2, s.Score())
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, Stats{Frames: 4, Correct: 3, Missed: 1}, s.Stats())
}

func TestBasketMovementIsClamped(t *testing.T) {
	s := newTestSession(t, nil)

	s.Update(FrameInput{DT: 10, MoveLeft: true})
	assert.InDelta(t, -512.0, s.basket.Bounds().Left, 1e-9)

	s.Update(FrameInput{DT: 10, MoveRight: true})
	assert.InDelta(t, 512.0, s.basket.Bounds().Right(), 1e-9)

	// 同时按住左右互相抵消
	x := s.basket.Position.X
	s.Update(FrameInput{DT: 0.1, MoveLeft: true, MoveRight: true})
	assert.InDelta(t, x, s.basket.Position.X, 1e-9)
}

func TestBasketCycleInput(t *testing.T) {
	s := newTestSession(t, nil)

	step(s, FrameInput{Cycle: 1})
	assert.Equal(t, types.ElementWater, s.BasketElement())
	step(s, FrameInput{Cycle: -2})
	assert.Equal(t, types.ElementAir, s.BasketElement())
	step(s, FrameInput{Cycle: 4})
	assert.Equal(t, types.ElementAir, s.BasketElement())
}

func TestNegativeDeltaTreatedAsZero(t *testing.T) {
	s := newTestSession(t, nil)
	o := placeOrb(s, 300, 100, types.ElementAir)

	s.Update(FrameInput{DT: -1, MoveLeft: true})
	assert.Equal(t, 100.0, o.Position.Y)
	assert.Equal(t, 0.0, s.basket.Position.X)
}

func TestSpawnAfterInterval(t *testing.T) {
	s := newTestSession(t, func(cfg *config.GameplayConfig) {
		cfg.Orb.SpawnInterval = 1.5
	})

	for i := 0; i < 2; i++ {
		assert.Empty(t, s.Update(FrameInput{DT: 0.5}))
	}
	events := s.Update(FrameInput{DT: 0.5})
	require.Len(t, events, 1)
	assert.Equal(t, EventSpawned, events[0].Kind)
	assert.True(t, events[0].Element.Valid())
	assert.Equal(t, 1, s.OrbCount())
	assert.Equal(t, 0.0, s.spawnTimer)

	snap := s.Snapshot()
	require.Len(t, snap.Orbs, 1)
	orb := snap.Orbs[0]
	assert.InDelta(t, 384.0+30, orb.Bounds.Center().Y, 1e-9)
	assert.GreaterOrEqual(t, events[0].Position.X, -512.0+30)
	assert.LessOrEqual(t, events[0].Position.X, 512.0-30)
	assert.Equal(t, s.cfg.OrbTexture(orb.Element), orb.Texture)
}

func TestSubscribeReceivesEventsSynchronously(t *testing.T) {
	s := newTestSession(t, nil)

	var seen []Event
	var scoreAtCall []int
	s.Subscribe(func(ev Event) {
		seen = append(seen, ev)
		scoreAtCall = append(scoreAtCall, s.Score())
	})
	s.Subscribe(nil)

	placeOrb(s, 0, basketCatchY(s), types.ElementEarth)
	placeOrb(s, 0, basketCatchY(s)-20, types.ElementFire)
	events := s.Update(FrameInput{DT: frameDT})

	assert.Equal(t, events, seen)
	assert.Equal(t, []int{5, 3}, scoreAtCall)

	// Update 之外的 Reset 只通知监听器
	s.Reset()
	require.Len(t, seen, 3)
	assert.Equal(t, EventReset, seen[2].Kind)
}

func TestResize(t *testing.T) {
	s := newTestSession(t, nil)
	s.Update(FrameInput{DT: 10, MoveRight: true})

	s.Resize(800, 600)

	assert.Equal(t, 800.0, s.Field().Width)
	b := s.basket.Bounds()
	assert.InDelta(t, -300.0+30, b.Bottom, 1e-9)
	assert.InDelta(t, 400.0, b.Right(), 1e-9)

	s.Resize(0, 600)
	assert.Equal(t, 800.0, s.Field().Width)

	// 重置后篮子按新场地定位
	s.Reset()
	assert.InDelta(t, -300.0+30, s.basket.Bounds().Bottom, 1e-9)
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t, nil)
	placeOrb(s, 0, basketCatchY(s), types.ElementEarth)
	placeOrb(s, 200, 200, types.ElementWater)
	step(s, FrameInput{Cycle: 2})

	snap := s.Snapshot()
	assert.Equal(t, types.ElementFire, snap.Basket.Element)
	assert.Equal(t, s.cfg.ThemeColor(types.ElementFire), snap.Basket.Tint)
	assert.True(t, snap.Basket.Visible)
	assert.Equal(t, -2, snap.Score)
	assert.Equal(t, StateRunning, snap.State)
	require.Len(t, snap.Orbs, 1)
	assert.Equal(t, types.ElementWater, snap.Orbs[0].Element)

	layer := snap.Particles[types.ElementEarth.Index()]
	assert.Equal(t, types.ElementEarth, layer.Element)
	assert.Equal(t, s.cfg.ElementParticles(types.ElementEarth).Texture, layer.Texture)
	assert.Len(t, layer.Particles, 20)
	assert.Equal(t, 20, snap.ParticleCount())
	for _, p := range layer.Particles {
		assert.True(t, p.Life >= 0 && p.Life <= 1)
	}

	lowest, ok := snap.LowestOrb()
	require.True(t, ok)
	assert.Equal(t, types.ElementWater, lowest.Element)
}

// TestSameSeedIsDeterministic 测试相同种子和输入序列得到相同结果
func TestSameSeedIsDeterministic(t *testing.T) {
	run := func() (Snapshot, Stats, int) {
		s, err := NewSession(nil, 2024)
		require.NoError(t, err)
		pilot := NewAutopilot()
		now := 0.0
		spawned := 0
		for i := 0; i < 1500; i++ {
			now += 1.0 / 60
			for _, ev := range s.Update(pilot.Next(s.Snapshot(), 1.0/60, now)) {
				if ev.Kind == EventSpawned {
					spawned++
				}
			}
		}
		return s.Snapshot(), s.Stats(), spawned
	}

	snapA, statsA, spawnedA := run()
	snapB, statsB, spawnedB := run()
	assert.Equal(t, statsA, statsB)
	assert.Equal(t, snapA, snapB)
	assert.Equal(t, spawnedA, spawnedB)
	assert.Positive(t, spawnedA)
}
