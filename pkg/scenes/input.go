package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/orbcatch/pkg/game"
)

// Touch 触摸点（屏幕坐标）
type Touch struct {
	X, Y int
}

// RawInput 一帧的原始设备输入
type RawInput struct {
	LeftHeld  bool // A 或 ←
	RightHeld bool // D 或 →

	CycleNext int     // 本帧刚按下的 W/↑ 次数
	CyclePrev int     // 本帧刚按下的 S/↓ 次数
	WheelY    float64 // 滚轮纵向偏移

	RestartPressed bool // R 刚按下

	Touches    []Touch // 持续中的触摸
	JustTapped []Touch // 本帧新开始的触摸
}

// InputSource 原始输入来源
type InputSource interface {
	Poll() RawInput
}

// EbitenInput 从 Ebiten 轮询键盘、鼠标滚轮和触摸
type EbitenInput struct {
	touchIDs []ebiten.TouchID
}

// Poll 读取当前帧的输入状态
func (e *EbitenInput) Poll() RawInput {
	raw := RawInput{
		LeftHeld:       ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		RightHeld:      ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		RestartPressed: inpututil.IsKeyJustPressed(ebiten.KeyR),
	}

	for _, k := range []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp} {
		if inpututil.IsKeyJustPressed(k) {
			raw.CycleNext++
		}
	}
	for _, k := range []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown} {
		if inpututil.IsKeyJustPressed(k) {
			raw.CyclePrev++
		}
	}
	_, raw.WheelY = ebiten.Wheel()

	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	for _, id := range e.touchIDs {
		x, y := ebiten.TouchPosition(id)
		raw.Touches = append(raw.Touches, Touch{X: x, Y: y})
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		raw.JustTapped = append(raw.JustTapped, Touch{X: x, Y: y})
	}
	return raw
}

// Translate 把原始输入映射为会话输入
//
// 键盘：A/D 或 ←/→ 移动，W/S 或 ↑/↓ 和滚轮切换类型，R 重启。
// 触摸：按住屏幕下方三分之二的左/右半边移动，点击上方三分之一切换类型，
// 任意点击都会请求重启（会话只在终止状态下响应）。
//
// 返回的 FrameInput 不含 DT 和 Time，由调用方填写。
func Translate(raw RawInput, screenWidth, screenHeight int) game.FrameInput {
	in := game.FrameInput{
		MoveLeft:  raw.LeftHeld,
		MoveRight: raw.RightHeld,
		Cycle:     raw.CycleNext - raw.CyclePrev,
		Restart:   raw.RestartPressed,
	}

	switch {
	case raw.WheelY > 0:
		in.Cycle++
	case raw.WheelY < 0:
		in.Cycle--
	}

	controlTop := screenHeight / 3
	for _, t := range raw.Touches {
		if t.Y < controlTop {
			continue
		}
		if t.X < screenWidth/2 {
			in.MoveLeft = true
		} else {
			in.MoveRight = true
		}
	}
	for _, t := range raw.JustTapped {
		if t.Y < controlTop {
			in.Cycle++
		}
		in.Restart = true
	}
	return in
}
