package entities

import "github.com/decker502/orbcatch/pkg/types"

// Basket 玩家控制的篮子
//
// 篮子在整个会话中只有一个，不会被销毁，重置时只会重新定位和重设类型。
// 移动后不在此处做边界限制，由 Session 在处理输入时统一夹紧。
type Basket struct {
	Entity
	Speed float64 // 水平移动速度（单位/秒）
}

// NewBasket 创建篮子，初始类型为第一个元素类型
func NewBasket(pos types.Vec2, width, height, speed float64) *Basket {
	return &Basket{
		Entity: Entity{
			Kind:     KindBasket,
			Position: pos,
			Width:    width,
			Height:   height,
			Element:  types.ElementEarth,
		},
		Speed: speed,
	}
}

// MoveLeft 向左移动 speed*dt
func (b *Basket) MoveLeft(dt float64) {
	b.Position.X -= b.Speed * dt
}

// MoveRight 向右移动 speed*dt
func (b *Basket) MoveRight(dt float64) {
	b.Position.X += b.Speed * dt
}

// CycleType 循环切换元素类型，direction 为 +1 或 -1
func (b *Basket) CycleType(direction int) {
	b.Element = b.Element.Cycle(direction)
}
