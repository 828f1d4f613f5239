package game

// FrameInput 一帧的外部输入
//
// 由驱动方（场景或无界面模拟器）每帧构造一次，传给 Session.Update。
type FrameInput struct {
	DT   float64 // 本帧经过的时间（秒），负值按 0 处理
	Time float64 // 单调递增的时间（秒），用于元素球漂移

	MoveLeft  bool // 左移键按住
	MoveRight bool // 右移键按住

	// Cycle 本帧的类型切换步数，正数向后、负数向前（例如滚轮的刻度数）
	Cycle int

	// Restart 请求重启，只在终止状态下生效
	Restart bool
}
