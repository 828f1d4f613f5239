package types

// Vec2 二维向量（世界坐标，原点在场地中心，Y 轴向上）
type Vec2 struct {
	X float64
	Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale 向量数乘
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Rect 轴对齐矩形，由左边缘 X、下边缘 Y、宽、高定义
type Rect struct {
	Left   float64
	Bottom float64
	Width  float64
	Height float64
}

// RectFromCenter 根据中心点和尺寸构造矩形
func RectFromCenter(center Vec2, width, height float64) Rect {
	return Rect{
		Left:   center.X - width/2,
		Bottom: center.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// Right 右边缘 X
func (r Rect) Right() float64 { return r.Left + r.Width }

// Top 上边缘 Y
func (r Rect) Top() float64 { return r.Bottom + r.Height }

// Center 中心点
func (r Rect) Center() Vec2 {
	return Vec2{X: r.Left + r.Width/2, Y: r.Bottom + r.Height/2}
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Bottom && p.Y <= r.Top()
}

// Range 闭区间 [Min, Max]，用于均匀随机采样
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains 判断 v 是否在区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Valid 区间下界不大于上界
func (r Range) Valid() bool {
	return r.Min <= r.Max
}
