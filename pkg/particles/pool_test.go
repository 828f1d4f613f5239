package particles

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/orbcatch/pkg/types"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// testTuning 测试用的粒子参数
func testTuning() Tuning {
	return Tuning{
		MinDuration: 0.5,
		MaxDuration: 1.5,
		MinSize:     15,
		MaxSize:     25,
		Drag:        0.5,
	}
}

// testProfile 各元素的粒子配置：土略微向下，水略微向上，火强烈向上，风全向扩散且尺寸更大
func testProfile(element types.ElementType) Profile {
	switch element {
	case types.ElementEarth:
		return Profile{
			Color:          types.Color{R: 0.4, G: 0.2, B: 0.0, A: 1},
			Velocity:       VelocityProfile{SpreadX: 30, SpreadY: 30, BiasY: -20},
			SizeMultiplier: 1,
		}
	case types.ElementWater:
		return Profile{
			Color:          types.Color{R: 0.5, G: 0.7, B: 1.0, A: 1},
			Velocity:       VelocityProfile{SpreadX: 40, SpreadY: 40, BiasY: 10},
			SizeMultiplier: 1,
		}
	case types.ElementFire:
		return Profile{
			Color:          types.Color{R: 1.0, G: 0.5, B: 0.0, A: 1},
			Velocity:       VelocityProfile{SpreadX: 60, SpreadY: 80, BiasY: 20, UpwardOnly: true},
			SizeMultiplier: 1,
		}
	case types.ElementAir:
		return Profile{
			Color:          types.Color{R: 0.8, G: 0.9, B: 1.0, A: 1},
			Velocity:       VelocityProfile{SpreadX: 70, SpreadY: 70},
			SizeMultiplier: 1.2,
		}
	}
	return Profile{Color: types.White, SizeMultiplier: 1}
}

func newTestPool(element types.ElementType, capacity int) *Pool {
	return NewPool(element, capacity, testProfile(element), testTuning(), "", newTestRand())
}

// TestPoolNeverExceedsCapacity 测试无论请求多少粒子都不会超过容量
func TestPoolNeverExceedsCapacity(t *testing.T) {
	pool := newTestPool(types.ElementFire, 10)

	assert.Equal(t, 6, pool.Emit(types.Vec2{}, 6))
	assert.Equal(t, 6, pool.ActiveCount())

	// 只剩 4 个空位
	assert.Equal(t, 4, pool.Emit(types.Vec2{}, 50))
	assert.Equal(t, 10, pool.ActiveCount())

	// 已满，静默丢弃
	assert.Equal(t, 0, pool.Emit(types.Vec2{}, 1000))
	assert.Equal(t, 10, pool.ActiveCount())

	active := 0
	for _, p := range pool.particles {
		if p.Active {
			active++
		}
	}
	assert.Equal(t, 10, active)
}

// TestPoolEmitDoesNotOverwriteActive 测试满池时不会覆盖活跃粒子
func TestPoolEmitDoesNotOverwriteActive(t *testing.T) {
	pool := newTestPool(types.ElementEarth, 3)
	pool.Emit(types.Vec2{X: 1, Y: 1}, 3)
	before := make([]Particle, len(pool.particles))
	copy(before, pool.particles)

	pool.Emit(types.Vec2{X: 99, Y: 99}, 5)
	assert.Equal(t, before, pool.particles)
}

// TestPoolScanStartsAfterLastUsed 测试空闲槽位查找从上一次激活槽位之后开始并绕回
func TestPoolScanStartsAfterLastUsed(t *testing.T) {
	pool := newTestPool(types.ElementWater, 4)
	pool.Emit(types.Vec2{}, 3) // 激活 0,1,2
	require.Equal(t, 2, pool.lastUsed)

	// 释放槽位 0，下一次发射应该落在 3（上一次之后），再下一次绕回 0
	pool.particles[0].Active = false
	pool.active--

	pool.Emit(types.Vec2{}, 1)
	assert.Equal(t, 3, pool.lastUsed)
	pool.Emit(types.Vec2{}, 1)
	assert.Equal(t, 0, pool.lastUsed)
	assert.Equal(t, 4, pool.ActiveCount())
}

func TestPoolEmitInitializesParticle(t *testing.T) {
	tuning := testTuning()
	pos := types.Vec2{X: 12, Y: -7}

	for _, element := range types.AllElementTypes() {
		t.Run(element.String(), func(t *testing.T) {
			profile := testProfile(element)
			pool := NewPool(element, 200, profile, tuning, "tex.png", newTestRand())
			require.Equal(t, 200, pool.Emit(pos, 200))

			for _, p := range pool.particles {
				require.True(t, p.Active)
				assert.Equal(t, pos, p.Position)
				assert.Equal(t, 0.0, p.Life)
				assert.Equal(t, profile.Color, p.Color)
				assert.GreaterOrEqual(t, p.Duration, tuning.MinDuration)
				assert.LessOrEqual(t, p.Duration, tuning.MaxDuration)
				assert.GreaterOrEqual(t, p.Size, tuning.MinSize*profile.SizeMultiplier)
				assert.LessOrEqual(t, p.Size, tuning.MaxSize*profile.SizeMultiplier)
				assert.LessOrEqual(t, p.Velocity.X, profile.Velocity.SpreadX)
				assert.GreaterOrEqual(t, p.Velocity.X, -profile.Velocity.SpreadX)
			}
			assert.Equal(t, "tex.png", pool.Texture())
		})
	}
}

// TestProfileVelocityBias 测试各元素类型的速度偏向
func TestProfileVelocityBias(t *testing.T) {
	rng := newTestRand()

	fire := testProfile(types.ElementFire).Velocity
	earth := testProfile(types.ElementEarth).Velocity
	water := testProfile(types.ElementWater).Velocity

	var earthSum, waterSum float64
	const n = 2000
	for i := 0; i < n; i++ {
		v := fire.Sample(rng)
		// 火焰粒子总是向上
		require.GreaterOrEqual(t, v.Y, 20.0)
		require.LessOrEqual(t, v.Y, 100.0)

		earthSum += earth.Sample(rng).Y
		waterSum += water.Sample(rng).Y
	}
	assert.Less(t, earthSum/n, 0.0, "earth should bias downward")
	assert.Greater(t, waterSum/n, 0.0, "water should bias upward")

	assert.Equal(t, 1.2, testProfile(types.ElementAir).SizeMultiplier)
}

// TestPoolAdvanceLifecycle 测试寿命推进、失活与阻力
func TestPoolAdvanceLifecycle(t *testing.T) {
	pool := newTestPool(types.ElementAir, 1)
	pool.Emit(types.Vec2{}, 1)

	p := &pool.particles[0]
	p.Velocity = types.Vec2{X: 10, Y: -20}
	p.Duration = 1.0

	pool.Advance(0.5)
	assert.True(t, p.Active)
	assert.InDelta(t, 0.5, p.Life, 1e-9)
	assert.InDelta(t, 5.0, p.Position.X, 1e-9)
	assert.InDelta(t, -10.0, p.Position.Y, 1e-9)
	// 阻力系数 0.5：速度乘以 (1 - 0.5*0.5)
	assert.InDelta(t, 7.5, p.Velocity.X, 1e-9)
	assert.InDelta(t, -15.0, p.Velocity.Y, 1e-9)

	pool.Advance(0.5)
	assert.True(t, p.Active, "life == duration is still alive")

	pool.Advance(0.01)
	assert.False(t, p.Active)
	assert.Equal(t, 0, pool.ActiveCount())
}

func TestPoolAppendViews(t *testing.T) {
	pool := newTestPool(types.ElementWater, 5)
	pool.Emit(types.Vec2{X: 3}, 2)
	pool.particles[0].Duration = 2
	pool.particles[0].Life = 0.5

	views := pool.AppendViews(nil)
	require.Len(t, views, 2)
	assert.InDelta(t, 0.25, views[0].Life, 1e-9)
	assert.Equal(t, types.Vec2{X: 3}, views[0].Position)
}

func TestPoolClear(t *testing.T) {
	pool := newTestPool(types.ElementFire, 5)
	pool.Emit(types.Vec2{}, 5)
	pool.Clear()
	assert.Equal(t, 0, pool.ActiveCount())
	assert.Equal(t, 5, pool.Emit(types.Vec2{}, 5))
}

func TestNewPoolInvalidCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { newTestPool(types.ElementEarth, 0) })
	assert.Panics(t, func() {
		NewPool(types.ElementType(9), 1, Profile{}, testTuning(), "", newTestRand())
	})
}

func TestPoolSet(t *testing.T) {
	var pools []*Pool
	for _, e := range types.AllElementTypes() {
		pools = append(pools, newTestPool(e, 4))
	}
	set, err := NewPoolSet(pools...)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Emit(types.Vec2{}, 3, types.ElementFire))
	assert.Equal(t, 3, set.Pool(types.ElementFire).ActiveCount())
	assert.Equal(t, 0, set.Pool(types.ElementWater).ActiveCount())
	assert.Equal(t, 3, set.ActiveCount())

	assert.Panics(t, func() { set.Pool(types.ElementType(7)) })

	set.Clear()
	assert.Equal(t, 0, set.ActiveCount())
}

func TestNewPoolSetValidation(t *testing.T) {
	_, err := NewPoolSet(newTestPool(types.ElementEarth, 1))
	assert.ErrorContains(t, err, "missing particle pool")

	_, err = NewPoolSet(newTestPool(types.ElementEarth, 1), newTestPool(types.ElementEarth, 1))
	assert.ErrorContains(t, err, "duplicate particle pool")
}
