package utils

import "math"

// EaseOutCubic 三次方缓出，开始快结束慢
// 进度 t 会被限制在 [0, 1]；公式：f(t) = 1 - (1-t)³
// 参考：https://easings.net/
func EaseOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}
