package particles

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/orbcatch/pkg/types"
)

// VelocityProfile 初始速度分布
//
// vx = U(-1,1) * SpreadX
// vy = U(-1,1) * SpreadY + BiasY（UpwardOnly 时取 |U(-1,1)|）
type VelocityProfile struct {
	SpreadX    float64
	SpreadY    float64
	BiasY      float64
	UpwardOnly bool
}

// Sample 按分布抽取一个初始速度
func (v VelocityProfile) Sample(rng *rand.Rand) types.Vec2 {
	ux := signedUnit(rng)
	uy := signedUnit(rng)
	if v.UpwardOnly {
		uy = math.Abs(uy)
	}
	return types.Vec2{
		X: ux * v.SpreadX,
		Y: uy*v.SpreadY + v.BiasY,
	}
}

// Profile 某一元素类型的粒子外观与运动参数
type Profile struct {
	Color          types.Color
	Velocity       VelocityProfile
	SizeMultiplier float64
}

// Tuning 与元素类型无关的粒子参数
type Tuning struct {
	MinDuration float64 // 最短寿命（秒）
	MaxDuration float64 // 最长寿命（秒）
	MinSize     float64
	MaxSize     float64
	Drag        float64 // 阻力系数 k，每帧速度乘以 (1 - k*dt)
}

func signedUnit(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
