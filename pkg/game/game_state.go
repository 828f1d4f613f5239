package game

// GameState 会话状态机的状态
//
// 初始为 StateRunning；分数达到阈值后进入 StateLost 或 StateWon，
// 终止状态只能通过显式重启回到 StateRunning。
type GameState int

const (
	StateRunning GameState = iota // 游戏进行中
	StateLost                     // 分数降到失败阈值
	StateWon                      // 分数达到胜利阈值
)

// String 返回状态名称，用于日志和模拟输出
func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// IsTerminal 是否为终止状态（胜利或失败）
func (s GameState) IsTerminal() bool {
	return s == StateLost || s == StateWon
}

// MarshalText 以名称形式序列化
func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
