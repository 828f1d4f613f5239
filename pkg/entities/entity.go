// Package entities 定义篮子与元素球
//
// 两者共享同一个 Entity 结构（位置、尺寸、元素类型、显式的 Kind 判别字段），
// 行为差异通过各自的方法表达，不使用接口多态，便于在每帧热循环中直接遍历。
package entities

import "github.com/decker502/orbcatch/pkg/types"

// Kind 实体判别类型
type Kind uint8

const (
	// KindBasket 玩家控制的篮子
	KindBasket Kind = iota
	// KindOrb 下落的元素球
	KindOrb
)

// String 返回实体类型名
func (k Kind) String() string {
	switch k {
	case KindBasket:
		return "basket"
	case KindOrb:
		return "orb"
	default:
		return "unknown"
	}
}

// Entity 实体公共数据
type Entity struct {
	Kind     Kind
	Position types.Vec2 // 中心点（世界坐标）
	Width    float64
	Height   float64
	Element  types.ElementType
}

// Bounds 返回实体的轴对齐包围盒
func (e *Entity) Bounds() types.Rect {
	return types.RectFromCenter(e.Position, e.Width, e.Height)
}

// Type 返回实体的元素类型
func (e *Entity) Type() types.ElementType {
	return e.Element
}
