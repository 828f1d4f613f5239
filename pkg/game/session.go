package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/entities"
	"github.com/decker502/orbcatch/pkg/particles"
	"github.com/decker502/orbcatch/pkg/physics"
	"github.com/decker502/orbcatch/pkg/types"
)

// Listener 事件监听器，在事件发生时同步调用
type Listener func(Event)

// Session 一局游戏的编排器
//
// Session 独占所有可变状态：分数、元素球集合、粒子池、篮子和状态机。
// 它是单线程的，由外部驱动每帧调用一次 Update，且必须在对应的绘制之前调用。
// 随机数生成器只有一个，在创建时播种，生成、漂移、拖尾和粒子初始化共用。
type Session struct {
	cfg    *config.GameplayConfig
	rng    *rand.Rand
	logger zerolog.Logger

	field  types.Rect
	basket *entities.Basket
	orbs   []*entities.Orb
	pools  *particles.PoolSet

	driftRanges entities.DriftRanges
	trail       entities.Trail

	score      int
	state      GameState
	spawnTimer float64
	stats      Stats

	listeners []Listener
	events    []Event
	inUpdate  bool
}

// NewSession 创建会话
//
// 参数:
//   - cfg: 玩法配置，为 nil 时使用默认配置
//   - seed: 随机数种子，相同种子和相同输入序列产生相同结果
//
// 返回:
//   - *Session: 处于 StateRunning 的新会话
//   - error: 配置校验失败
func NewSession(cfg *config.GameplayConfig, seed uint64) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	poolSet, err := NewParticlePools(cfg, rng)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:         cfg,
		rng:         rng,
		logger:      logging.For("Session"),
		field:       types.RectFromCenter(types.Vec2{}, cfg.Field.Width, cfg.Field.Height),
		pools:       poolSet,
		driftRanges: cfg.DriftRanges(),
		trail:       cfg.Trail(),
		state:       StateRunning,
	}
	s.basket = entities.NewBasket(s.basketHome(), cfg.Basket.Width, cfg.Basket.Height, cfg.Basket.Speed)

	s.logger.Info().
		Uint64("seed", seed).
		Float64("width", cfg.Field.Width).
		Float64("height", cfg.Field.Height).
		Msg("session created")
	return s, nil
}

// Subscribe 注册事件监听器
//
// 监听器在 Update 内部事件发生的时刻同步调用，不能在回调中再次调用 Update。
func (s *Session) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Update 推进一帧
//
// 帧内顺序固定：输入 → 元素球推进 → 出界移除与扣分 → 生成 → 碰撞结算 →
// 粒子推进 → 阈值判定。除粒子推进外的玩法步骤只在 StateRunning 下执行，
// 终止状态下粒子继续衰减但不再有新的玩法发射。
//
// 返回:
//   - []Event: 本帧产生的事件，在下一次 Update 之前有效
func (s *Session) Update(in FrameInput) []Event {
	s.events = s.events[:0]
	s.inUpdate = true
	defer func() { s.inUpdate = false }()

	dt := in.DT
	if dt < 0 {
		dt = 0
	}
	s.stats.Frames++

	s.handleInput(in, dt)

	if s.state == StateRunning {
		for _, o := range s.orbs {
			o.Advance(dt, in.Time, s.rng, s.pools)
		}
		s.removeOffScreenOrbs()

		s.spawnTimer += dt
		if s.spawnTimer >= s.cfg.Orb.SpawnInterval {
			s.spawnTimer = 0
			s.spawnOrb()
		}

		s.resolveCollisions()
	}

	s.pools.Advance(dt)

	if s.state == StateRunning {
		s.evaluateThresholds()
	}
	return s.events
}

// handleInput 处理一帧的输入
//
// 重启请求只在终止状态下生效，其余输入只在 StateRunning 下生效。
// 移动之后把篮子夹紧在场地内。
func (s *Session) handleInput(in FrameInput, dt float64) {
	if in.Restart {
		s.Restart()
	}
	if s.state != StateRunning {
		return
	}

	if in.MoveLeft {
		s.basket.MoveLeft(dt)
	}
	if in.MoveRight {
		s.basket.MoveRight(dt)
	}
	s.clampBasket()

	for i := in.Cycle; i > 0; i-- {
		s.basket.CycleType(1)
	}
	for i := in.Cycle; i < 0; i++ {
		s.basket.CycleType(-1)
	}
}

// removeOffScreenOrbs 移除掉出场地的元素球，每个按接错扣分但不发射粒子
func (s *Session) removeOffScreenOrbs() {
	kept := s.orbs[:0]
	for _, o := range s.orbs {
		if !o.IsOffScreen(s.field.Bottom) {
			kept = append(kept, o)
			continue
		}
		s.score += s.cfg.Scoring.WrongPenalty
		s.stats.Missed++
		s.logger.Debug().Str("element", o.Element.String()).Int("score", s.score).Msg("orb missed")
		s.emit(Event{Kind: EventMissed, Element: o.Element, Position: o.Position})
	}
	s.orbs = truncateOrbs(s.orbs, kept)
}

// spawnOrb 在场地顶端边距范围内的随机位置生成随机类型的元素球
func (s *Session) spawnOrb() {
	size := s.cfg.Orb.Size
	margin := s.cfg.Orb.SpawnMargin
	minX := s.field.Left + margin
	maxX := s.field.Right() - margin

	pos := types.Vec2{
		X: minX + s.rng.Float64()*(maxX-minX),
		Y: s.field.Top() + size/2,
	}
	element := types.ElementType(s.rng.IntN(types.NumElementTypes))
	drift := entities.RandomDrift(s.rng, s.driftRanges)

	orb := entities.NewOrb(pos, size, element, s.cfg.Orb.FallSpeed, drift, s.trail)
	s.orbs = append(s.orbs, orb)
	s.stats.Spawned++

	s.logger.Debug().
		Str("element", element.String()).
		Float64("x", pos.X).
		Int("orbs", len(s.orbs)).
		Msg("orb spawned")
	s.emit(Event{Kind: EventSpawned, Element: element, Position: pos})
}

// resolveCollisions 按当前顺序遍历元素球，与篮子重叠的立即结算并移除
func (s *Session) resolveCollisions() {
	basketBounds := s.basket.Bounds()
	kept := s.orbs[:0]
	for _, o := range s.orbs {
		if !physics.CheckAABBCollision(o.Bounds(), basketBounds) {
			kept = append(kept, o)
			continue
		}

		if o.Element == s.basket.Element {
			s.score += s.cfg.Scoring.CorrectReward
			s.stats.Correct++
			s.pools.Emit(o.Position, s.cfg.Scoring.CorrectBurst, o.Element)
			s.logger.Debug().Str("element", o.Element.String()).Int("score", s.score).Msg("correct catch")
			s.emit(Event{Kind: EventCorrectCatch, Element: o.Element, Position: o.Position})
		} else {
			s.score += s.cfg.Scoring.WrongPenalty
			s.stats.Wrong++
			s.pools.Emit(o.Position, s.cfg.Scoring.WrongBurst, o.Element)
			s.logger.Debug().
				Str("element", o.Element.String()).
				Str("basket", s.basket.Element.String()).
				Int("score", s.score).
				Msg("wrong catch")
			s.emit(Event{Kind: EventWrongCatch, Element: o.Element, Position: o.Position})
		}
	}
	s.orbs = truncateOrbs(s.orbs, kept)
}

// evaluateThresholds 在本帧所有计分事件之后判定胜负
func (s *Session) evaluateThresholds() {
	switch {
	case s.score <= s.cfg.Scoring.LoseThreshold:
		s.enterTerminal(StateLost)
	case s.score >= s.cfg.Scoring.WinThreshold:
		s.enterTerminal(StateWon)
	}
}

// enterTerminal 进入终止状态并立即丢弃所有元素球
func (s *Session) enterTerminal(state GameState) {
	prev := s.state
	s.state = state
	s.orbs = truncateOrbs(s.orbs, s.orbs[:0])

	s.logger.Info().Str("state", state.String()).Int("score", s.score).Msg("game over")
	s.emit(Event{Kind: EventStateChanged, Previous: prev})
}

// Reset 无条件重置会话
//
// 分数归零、清空元素球、生成计时器归零、回到 StateRunning，
// 篮子回到默认位置并恢复为第一个元素类型。粒子池不受影响，已有粒子继续衰减。
func (s *Session) Reset() {
	prev := s.state

	s.score = 0
	s.orbs = truncateOrbs(s.orbs, s.orbs[:0])
	s.spawnTimer = 0
	s.state = StateRunning
	s.stats = Stats{}
	s.basket.Position = s.basketHome()
	s.basket.Element = types.ElementEarth

	s.logger.Info().Str("from", prev.String()).Msg("session reset")
	if prev != StateRunning {
		s.emit(Event{Kind: EventStateChanged, Previous: prev})
	}
	s.emit(Event{Kind: EventReset, Previous: prev})
}

// Restart 重启请求，只在终止状态下生效
//
// 返回:
//   - bool: 是否执行了重置
func (s *Session) Restart() bool {
	if !s.state.IsTerminal() {
		s.logger.Debug().Msg("restart ignored while running")
		return false
	}
	s.Reset()
	return true
}

// Resize 更新场地尺寸
//
// 篮子保持水平位置，垂直方向重新放到距新下边缘固定距离处，然后夹紧到场地内。
// 非正尺寸被忽略。
func (s *Session) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		s.logger.Warn().Float64("width", width).Float64("height", height).Msg("ignoring invalid field size")
		return
	}
	if width == s.field.Width && height == s.field.Height {
		return
	}

	s.field = types.RectFromCenter(types.Vec2{}, width, height)
	s.basket.Position.Y = s.basketHome().Y
	s.clampBasket()

	s.logger.Info().Float64("width", width).Float64("height", height).Msg("field resized")
}

// Snapshot 返回渲染协作者需要的全部数据
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Field: s.field,
		Basket: BasketView{
			Bounds:  s.basket.Bounds(),
			Element: s.basket.Element,
			Tint:    s.cfg.ThemeColor(s.basket.Element),
			Visible: s.state == StateRunning,
		},
		Orbs:  make([]OrbView, 0, len(s.orbs)),
		Score: s.score,
		State: s.state,
	}
	for _, o := range s.orbs {
		snap.Orbs = append(snap.Orbs, OrbView{
			Bounds:  o.Bounds(),
			Element: o.Element,
			Texture: s.cfg.OrbTexture(o.Element),
		})
	}
	snap.Particles = ParticleLayers(s.pools)
	return snap
}

// Score 当前分数
func (s *Session) Score() int { return s.score }

// State 当前状态
func (s *Session) State() GameState { return s.state }

// Stats 自上次重置以来的计数
func (s *Session) Stats() Stats { return s.stats }

// OrbCount 存活的元素球数量
func (s *Session) OrbCount() int { return len(s.orbs) }

// Field 当前场地矩形
func (s *Session) Field() types.Rect { return s.field }

// BasketElement 篮子当前的元素类型
func (s *Session) BasketElement() types.ElementType { return s.basket.Element }

// Pools 粒子池集合
func (s *Session) Pools() *particles.PoolSet { return s.pools }

// Config 会话使用的配置
func (s *Session) Config() *config.GameplayConfig { return s.cfg }

// basketHome 篮子的默认位置：水平居中，底边距场地下边缘 bottomMargin
func (s *Session) basketHome() types.Vec2 {
	return types.Vec2{
		X: 0,
		Y: s.field.Bottom + s.cfg.Basket.Height/2 + s.cfg.Basket.BottomMargin,
	}
}

func (s *Session) clampBasket() {
	s.basket.Position.X += physics.ClampRectX(s.basket.Bounds(), s.field.Left, s.field.Right())
}

// emit 填充事件的分数和状态后记录并同步通知监听器
func (s *Session) emit(ev Event) {
	ev.Score = s.score
	ev.State = s.state
	if s.inUpdate {
		s.events = append(s.events, ev)
	}
	for _, l := range s.listeners {
		l(ev)
	}
}

// truncateOrbs 清除 kept 之后残留的指针，返回 kept
func truncateOrbs(all, kept []*entities.Orb) []*entities.Orb {
	clear(all[len(kept):])
	return kept
}
