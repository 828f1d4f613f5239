// Package particles 实现固定容量、可复用的粒子池
//
// 每种元素类型一个池，池之间完全独立。池的槽位在创建时一次性分配，
// 粒子"销毁"只是把 Active 置为 false，不会重新分配内存。
package particles

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/types"
)

// Particle 单个粒子的运行时状态
type Particle struct {
	Position types.Vec2
	Velocity types.Vec2
	Color    types.Color
	Life     float64 // 已存活时间（秒）
	Duration float64 // 总寿命（秒）
	Size     float64
	Active   bool
}

// View 渲染器所需的粒子只读数据
type View struct {
	Position types.Vec2
	Life     float64 // 归一化寿命 0-1
	Color    types.Color
	Size     float64
}

// Pool 固定容量的粒子池
//
// 不变量：活跃粒子数始终 <= 容量。超出容量的发射请求被静默丢弃，
// 不排队，也不覆盖仍在活跃的粒子。
type Pool struct {
	element   types.ElementType
	particles []Particle
	lastUsed  int // 上一次被（重新）激活的槽位
	active    int
	profile   Profile
	tuning    Tuning
	texture   string // 纹理句柄（资源路径），可为空
	rng       *rand.Rand
	logger    zerolog.Logger
}

// NewPool 创建粒子池
//
// 参数:
//   - element: 池对应的元素类型
//   - capacity: 最大同时活跃的粒子数，必须 > 0
//   - profile: 该元素类型的颜色与速度分布
//   - tuning: 与类型无关的寿命、尺寸、阻力参数
//   - texture: 纹理句柄，由资源协作者持有，可为空
//   - rng: 长期存活的随机数生成器（由 Session 持有）
func NewPool(element types.ElementType, capacity int, profile Profile, tuning Tuning, texture string, rng *rand.Rand) *Pool {
	if capacity <= 0 {
		panic(fmt.Sprintf("particles: invalid pool capacity %d", capacity))
	}
	_ = element.Index()
	return &Pool{
		element:   element,
		particles: make([]Particle, capacity),
		lastUsed:  -1,
		profile:   profile,
		tuning:    tuning,
		texture:   texture,
		rng:       rng,
		logger:    logging.For("ParticlePool").With().Str("element", element.String()).Logger(),
	}
}

// Element 返回池对应的元素类型
func (p *Pool) Element() types.ElementType { return p.element }

// Capacity 返回池容量
func (p *Pool) Capacity() int { return len(p.particles) }

// ActiveCount 返回当前活跃粒子数
func (p *Pool) ActiveCount() int { return p.active }

// Texture 返回纹理句柄
func (p *Pool) Texture() string { return p.texture }

// Emit 在指定位置发射最多 count 个粒子
//
// 每个粒子从上一次激活槽位的下一个位置开始线性查找空闲槽位（最多绕回一圈），
// 找不到空闲槽位时跳过该粒子。
//
// 返回:
//   - int: 实际激活的粒子数
func (p *Pool) Emit(pos types.Vec2, count int) int {
	emitted := 0
	for i := 0; i < count; i++ {
		idx := p.findUnused()
		if idx < 0 {
			dropped := count - emitted
			p.logger.Debug().Int("dropped", dropped).Int("capacity", len(p.particles)).Msg("pool exhausted")
			break
		}
		p.spawn(&p.particles[idx], pos)
		p.lastUsed = idx
		p.active++
		emitted++
	}
	return emitted
}

// findUnused 返回一个空闲槽位下标，没有则返回 -1
func (p *Pool) findUnused() int {
	if p.active >= len(p.particles) {
		return -1
	}
	n := len(p.particles)
	start := p.lastUsed + 1
	for k := 0; k < n; k++ {
		i := (start + k) % n
		if !p.particles[i].Active {
			return i
		}
	}
	return -1
}

func (p *Pool) spawn(pt *Particle, pos types.Vec2) {
	pt.Active = true
	pt.Position = pos
	pt.Life = 0
	pt.Duration = uniform(p.rng, p.tuning.MinDuration, p.tuning.MaxDuration)
	pt.Size = uniform(p.rng, p.tuning.MinSize, p.tuning.MaxSize) * p.profile.SizeMultiplier
	pt.Color = p.profile.Color
	pt.Velocity = p.profile.Velocity.Sample(p.rng)
}

// Advance 推进所有活跃粒子
//
// life += dt；超过寿命则失活，否则按速度移动并施加阻力 (1 - k*dt)。
func (p *Pool) Advance(dt float64) {
	if p.active == 0 {
		return
	}
	damping := 1 - p.tuning.Drag*dt
	if damping < 0 {
		damping = 0
	}
	for i := range p.particles {
		pt := &p.particles[i]
		if !pt.Active {
			continue
		}
		pt.Life += dt
		if pt.Life > pt.Duration {
			pt.Active = false
			p.active--
			continue
		}
		pt.Position = pt.Position.Add(pt.Velocity.Scale(dt))
		pt.Velocity = pt.Velocity.Scale(damping)
	}
}

// AppendViews 将活跃粒子的渲染数据追加到 dst
func (p *Pool) AppendViews(dst []View) []View {
	for i := range p.particles {
		pt := &p.particles[i]
		if !pt.Active {
			continue
		}
		life := 0.0
		if pt.Duration > 0 {
			life = pt.Life / pt.Duration
		}
		dst = append(dst, View{
			Position: pt.Position,
			Life:     life,
			Color:    pt.Color,
			Size:     pt.Size,
		})
	}
	return dst
}

// Clear 使所有槽位失活（仅供调试工具使用，游戏重置不会清空粒子池）
func (p *Pool) Clear() {
	for i := range p.particles {
		p.particles[i].Active = false
	}
	p.active = 0
	p.lastUsed = -1
}
