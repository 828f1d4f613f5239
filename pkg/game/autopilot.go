package game

import (
	"math"

	"github.com/decker502/orbcatch/pkg/types"
)

// DefaultAutopilotTolerance 篮子中心与目标的水平距离小于该值时不再移动
const DefaultAutopilotTolerance = 4.0

// Autopilot 根据快照生成输入的简单控制器
//
// 追踪最靠近底部的元素球：水平移动到其正下方，并沿最短方向切换到它的类型。
// 终止状态下请求重启。用于无界面模拟和测试。
type Autopilot struct {
	Tolerance float64
}

// NewAutopilot 创建使用默认容差的控制器
func NewAutopilot() *Autopilot {
	return &Autopilot{Tolerance: DefaultAutopilotTolerance}
}

// Next 计算下一帧的输入
//
// 参数:
//   - snap: 当前帧快照
//   - dt: 下一帧的时间步长（秒）
//   - now: 下一帧的单调时间（秒）
func (a *Autopilot) Next(snap Snapshot, dt, now float64) FrameInput {
	in := FrameInput{DT: dt, Time: now}

	if snap.State.IsTerminal() {
		in.Restart = true
		return in
	}

	basketX := snap.Basket.Bounds.Center().X
	targetX := snap.Field.Center().X
	target, ok := snap.LowestOrb()
	if ok {
		targetX = target.Bounds.Center().X
		in.Cycle = cycleToward(snap.Basket.Element, target.Element)
	}

	dx := targetX - basketX
	if math.Abs(dx) > a.Tolerance {
		in.MoveLeft = dx < 0
		in.MoveRight = dx > 0
	}
	return in
}

// cycleToward 返回从 from 切换到 to 的最短方向上的一步，已匹配时返回 0
func cycleToward(from, to types.ElementType) int {
	diff := (to.Index() - from.Index() + types.NumElementTypes) % types.NumElementTypes
	switch {
	case diff == 0:
		return 0
	case diff <= types.NumElementTypes/2:
		return 1
	default:
		return -1
	}
}
