package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubic(t *testing.T) {
	assert.InDelta(t, 0.0, EaseOutCubic(0), 1e-9)
	assert.InDelta(t, 1.0, EaseOutCubic(1), 1e-9)
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
	// 缓出曲线前半程领先线性
	assert.Greater(t, EaseOutCubic(0.3), 0.3)
	// 超出范围的输入被夹紧
	assert.InDelta(t, 0.0, EaseOutCubic(-1), 1e-9)
	assert.InDelta(t, 1.0, EaseOutCubic(2), 1e-9)
}
