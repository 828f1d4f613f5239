package entities

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/orbcatch/pkg/types"
)

// Emitter 粒子发射目标
//
// Orb 每帧由调用方显式传入发射目标，不持有对 Session 的反向引用。
type Emitter interface {
	Emit(pos types.Vec2, count int, element types.ElementType) int
}

// Drift 之字形水平漂移参数（每个元素球独立随机）
type Drift struct {
	Amplitude float64 // 左右摆动幅度
	Frequency float64 // 角频率
	Phase     float64 // 相位偏移
}

// DriftRanges 漂移参数的随机范围
type DriftRanges struct {
	Amplitude types.Range
	Frequency types.Range
	Phase     types.Range
}

// RandomDrift 在给定范围内独立随机生成漂移参数
func RandomDrift(rng *rand.Rand, r DriftRanges) Drift {
	return Drift{
		Amplitude: sample(rng, r.Amplitude),
		Frequency: sample(rng, r.Frequency),
		Phase:     sample(rng, r.Phase),
	}
}

// Trail 元素球的粒子拖尾参数
type Trail struct {
	Interval float64 // 发射间隔（秒）
	Count    int     // 每次发射的粒子数
}

// Orb 下落的元素球
type Orb struct {
	Entity
	FallSpeed float64
	InitialX  float64 // 漂移计算的基准 X
	Drift     Drift
	Trail     Trail
	emitTimer float64
}

// NewOrb 创建元素球
//
// 参数:
//   - pos: 出生点（中心）
//   - size: 宽高（正方形）
//   - element: 元素类型
//   - fallSpeed: 下落速度（单位/秒）
//   - drift: 漂移参数
//   - trail: 拖尾参数
func NewOrb(pos types.Vec2, size float64, element types.ElementType, fallSpeed float64, drift Drift, trail Trail) *Orb {
	return &Orb{
		Entity: Entity{
			Kind:     KindOrb,
			Position: pos,
			Width:    size,
			Height:   size,
			Element:  element,
		},
		FallSpeed: fallSpeed,
		InitialX:  pos.X,
		Drift:     drift,
		Trail:     trail,
	}
}

// Advance 推进元素球一帧
//
// 垂直方向按 fallSpeed*dt 匀速下落；水平位置每帧重新计算为
// initialX + amplitude * sin(now*frequency + phase)，只依赖单调递增的时间，
// 不随帧时间累积误差。
// 拖尾计时器累加 dt，达到间隔后在自身包围盒内随机抖动的位置向匹配类型的池发射粒子。
//
// 参数:
//   - dt: 本帧时间（秒）
//   - now: 单调递增的时间（秒）
//   - rng: 随机数生成器（抖动位置）
//   - emitter: 粒子发射目标，可为 nil
func (o *Orb) Advance(dt, now float64, rng *rand.Rand, emitter Emitter) {
	o.Position.Y -= o.FallSpeed * dt
	o.Position.X = o.InitialX + o.Drift.Amplitude*math.Sin(now*o.Drift.Frequency+o.Drift.Phase)

	if o.Trail.Interval <= 0 {
		return
	}
	o.emitTimer += dt
	if o.emitTimer >= o.Trail.Interval {
		if emitter != nil {
			for i := 0; i < o.Trail.Count; i++ {
				jitter := types.Vec2{
					X: (rng.Float64() - 0.5) * o.Width,
					Y: (rng.Float64() - 0.5) * o.Height,
				}
				emitter.Emit(o.Position.Add(jitter), 1, o.Element)
			}
		}
		o.emitTimer = 0
	}
}

// IsOffScreen 元素球上边缘低于场地下边缘时返回 true
func (o *Orb) IsOffScreen(bottomEdge float64) bool {
	return o.Position.Y+o.Height/2 < bottomEdge
}

func sample(rng *rand.Rand, r types.Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
