package types

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color RGBA 颜色，各通道取值 0-1
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// White 不着色（纹理原色）
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Black 纯黑
var Black = Color{A: 1}

// ParseHexColor 解析 "#RRGGBB" / "#RGB" / "#RRGGBBAA" 格式的颜色
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Hex 返回 "#rrggbb" 形式（alpha 为 1 时）或 "#rrggbbaa"
func (c Color) Hex() string {
	hex := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(math.Round(clamp01(c.A)*255)))
}

// Blend 在 RGB 空间中向 o 插值，t 取 0-1
func (c Color) Blend(o Color, t float64) Color {
	b := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: o.R, G: o.G, B: o.B}, t)
	return Color{R: b.R, G: b.G, B: b.B, A: c.A + (o.A-c.A)*t}
}

// WithAlpha 返回替换 alpha 后的颜色
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA 转换为 image/color 的预乘 RGBA
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(math.Round(clamp01(c.R) * a * 255)),
		G: uint8(math.Round(clamp01(c.G) * a * 255)),
		B: uint8(math.Round(clamp01(c.B) * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
