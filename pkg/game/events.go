package game

import "github.com/decker502/orbcatch/pkg/types"

// EventKind 会话事件类型
type EventKind int

const (
	EventCorrectCatch EventKind = iota // 接住同类型元素球
	EventWrongCatch                    // 接住不同类型元素球
	EventMissed                        // 元素球掉出场地
	EventSpawned                       // 生成新元素球
	EventStateChanged                  // 状态机切换
	EventReset                         // 会话被重置
)

func (k EventKind) String() string {
	switch k {
	case EventCorrectCatch:
		return "correct-catch"
	case EventWrongCatch:
		return "wrong-catch"
	case EventMissed:
		return "missed"
	case EventSpawned:
		return "spawned"
	case EventStateChanged:
		return "state-changed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event 会话在一帧内产生的离散事件
//
// 音效协作者在 EventCorrectCatch 上播放正确音效，
// 在 EventWrongCatch 和 EventMissed 上播放错误音效；
// 渲染协作者用被销毁元素球的 Element 给分数着色。
type Event struct {
	Kind     EventKind
	Element  types.ElementType // 相关元素球的类型（Catch/Missed/Spawned）
	Position types.Vec2        // 事件发生位置
	Score    int               // 事件发生后的分数
	State    GameState         // 事件发生后的状态
	Previous GameState         // EventStateChanged 和 EventReset：切换前的状态
}

// IsPenalty 是否为扣分事件（接错或漏接）
func (e Event) IsPenalty() bool {
	return e.Kind == EventWrongCatch || e.Kind == EventMissed
}

// DestroysOrb 是否为销毁元素球的事件
func (e Event) DestroysOrb() bool {
	return e.Kind == EventCorrectCatch || e.IsPenalty()
}
