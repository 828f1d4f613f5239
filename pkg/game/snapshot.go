package game

import (
	"github.com/decker502/orbcatch/pkg/particles"
	"github.com/decker502/orbcatch/pkg/types"
)

// BasketView 渲染篮子所需的数据
type BasketView struct {
	Bounds  types.Rect
	Element types.ElementType
	Tint    types.Color // 元素主题色
	Visible bool        // 终止状态下隐藏
}

// OrbView 渲染元素球所需的数据
type OrbView struct {
	Bounds  types.Rect
	Element types.ElementType
	Texture string // 纹理路径，为空时以纯色圆形绘制
}

// ParticleLayer 单个粒子池的活跃粒子
type ParticleLayer struct {
	Element   types.ElementType
	Texture   string
	Particles []particles.View
}

// Snapshot 渲染协作者每帧可以读取的全部状态
//
// Snapshot 中的切片都是新分配的，调用方可以在下一次 Update 之后继续持有。
type Snapshot struct {
	Field     types.Rect
	Basket    BasketView
	Orbs      []OrbView
	Particles [types.NumElementTypes]ParticleLayer
	Score     int
	State     GameState
}

// ParticleCount 所有粒子层的活跃粒子总数
func (s Snapshot) ParticleCount() int {
	n := 0
	for _, layer := range s.Particles {
		n += len(layer.Particles)
	}
	return n
}

// LowestOrb 返回最靠近场地底部的元素球
func (s Snapshot) LowestOrb() (OrbView, bool) {
	if len(s.Orbs) == 0 {
		return OrbView{}, false
	}
	lowest := s.Orbs[0]
	for _, o := range s.Orbs[1:] {
		if o.Bounds.Bottom < lowest.Bounds.Bottom {
			lowest = o
		}
	}
	return lowest, true
}

// Stats 自上次重置以来的计数
type Stats struct {
	Frames  int `yaml:"frames"`
	Spawned int `yaml:"spawned"`
	Correct int `yaml:"correct"`
	Wrong   int `yaml:"wrong"`
	Missed  int `yaml:"missed"`
}
