// Package physics 提供无状态的几何查询
package physics

import "github.com/decker502/orbcatch/pkg/types"

// CheckAABBCollision 检查两个轴对齐矩形是否重叠
//
// 两个轴上同时重叠即视为碰撞，边缘接触也算重叠。
// 这是逐帧的离散检测，不做连续碰撞：下落速度很快且帧率很低时，
// 元素球可能一帧之内穿过篮子而不被检测到。
//
// 参数:
//   - a, b: 由左边缘、下边缘、宽、高定义的矩形
//
// 返回:
//   - bool: 两个矩形重叠返回 true
func CheckAABBCollision(a, b types.Rect) bool {
	collisionX := a.Left+a.Width >= b.Left && b.Left+b.Width >= a.Left
	collisionY := a.Bottom+a.Height >= b.Bottom && b.Bottom+b.Height >= a.Bottom
	return collisionX && collisionY
}

// ClampRectX 将矩形水平平移到 [minX, maxX] 范围内，返回需要施加的位移
//
// 矩形比范围更宽时以左边缘对齐 minX。
func ClampRectX(r types.Rect, minX, maxX float64) float64 {
	if r.Left < minX {
		return minX - r.Left
	}
	if r.Right() > maxX {
		shift := maxX - r.Right()
		if r.Left+shift < minX {
			return minX - r.Left
		}
		return shift
	}
	return 0
}
