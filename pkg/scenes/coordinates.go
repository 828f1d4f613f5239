package scenes

import "github.com/decker502/orbcatch/pkg/types"

// Viewport 世界坐标与屏幕坐标之间的转换
//
//   - 世界坐标：原点在场地中心，Y 轴向上（会话内部使用）
//   - 屏幕坐标：原点在窗口左上角，Y 轴向下（Ebiten 绘制使用）
//
// 场地尺寸与窗口逻辑尺寸一致，因此两者只差一个平移和 Y 轴翻转。
type Viewport struct {
	Width, Height float64
}

// WorldToScreen 世界坐标点 → 屏幕坐标点
func (v Viewport) WorldToScreen(p types.Vec2) (x, y float64) {
	return p.X + v.Width/2, v.Height/2 - p.Y
}

// ScreenToWorld 屏幕坐标点 → 世界坐标点
func (v Viewport) ScreenToWorld(x, y float64) types.Vec2 {
	return types.Vec2{X: x - v.Width/2, Y: v.Height/2 - y}
}

// RectToScreen 世界坐标矩形 → 屏幕坐标矩形（左上角和宽高）
func (v Viewport) RectToScreen(r types.Rect) (x, y, w, h float64) {
	x, y = v.WorldToScreen(types.Vec2{X: r.Left, Y: r.Top()})
	return x, y, r.Width, r.Height
}
