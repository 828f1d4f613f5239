// Package scenes 包含驱动会话并绘制快照的场景
package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/assets"
	"github.com/decker502/orbcatch/pkg/game"
	"github.com/decker502/orbcatch/pkg/particles"
	"github.com/decker502/orbcatch/pkg/types"
	"github.com/decker502/orbcatch/pkg/utils"
)

// DebugPrint 字形尺寸（像素）
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// 分数文字的缩放：元素球被销毁时放大，再缓动回基础大小
const (
	scoreScale       = 3.0
	scorePopScale    = 0.6
	scorePopDuration = 0.3
)

var backgroundColor = color.RGBA{R: 0x12, G: 0x16, B: 0x22, A: 0xff}

// GameScene 游戏场景
//
// 每帧轮询输入、推进会话，然后只根据会话快照绘制。
// 分数颜色取最近一次被销毁的元素球的主题色，重置时恢复白色。
type GameScene struct {
	session  *game.Session
	rm       *assets.ResourceManager // 可为 nil，此时全部以纯色图形绘制
	input    InputSource
	viewport Viewport

	elapsed   float64
	scoreTint types.Color
	scorePop  float64 // 放大效果剩余时间（秒）

	textImage *ebiten.Image // 文字先画到这里再放大着色
	logger    zerolog.Logger
}

// NewGameScene 创建游戏场景并订阅会话事件
//
// 参数:
//   - session: 要驱动的会话
//   - rm: 资源管理器，可为 nil
//   - input: 输入来源，为 nil 时使用 EbitenInput
func NewGameScene(session *game.Session, rm *assets.ResourceManager, input InputSource) *GameScene {
	if input == nil {
		input = &EbitenInput{}
	}
	field := session.Field()
	s := &GameScene{
		session:   session,
		rm:        rm,
		input:     input,
		viewport:  Viewport{Width: field.Width, Height: field.Height},
		scoreTint: types.White,
		logger:    logging.For("GameScene"),
	}
	session.Subscribe(s.onEvent)
	return s
}

// onEvent 根据会话事件更新分数颜色
func (s *GameScene) onEvent(ev game.Event) {
	switch {
	case ev.DestroysOrb():
		s.scoreTint = s.session.Config().ThemeColor(ev.Element)
		s.scorePop = scorePopDuration
	case ev.Kind == game.EventReset:
		s.scoreTint = types.White
		s.scorePop = 0
	case ev.Kind == game.EventStateChanged:
		s.logger.Info().Str("state", ev.State.String()).Int("score", ev.Score).Msg("state changed")
	}
}

// ScoreTint 当前分数颜色
func (s *GameScene) ScoreTint() types.Color {
	return s.scoreTint
}

// ScoreScale 当前分数文字的缩放倍数
func (s *GameScene) ScoreScale() float64 {
	if s.scorePop <= 0 {
		return scoreScale
	}
	progress := 1 - s.scorePop/scorePopDuration
	return scoreScale + scorePopScale*(1-utils.EaseOutCubic(progress))
}

// Session 场景驱动的会话
func (s *GameScene) Session() *game.Session {
	return s.session
}

// Resize 窗口逻辑尺寸变化时调用，场地随之变化
func (s *GameScene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.viewport = Viewport{Width: float64(width), Height: float64(height)}
	s.session.Resize(s.viewport.Width, s.viewport.Height)
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	s.scorePop = max(s.scorePop-deltaTime, 0)
	in := Translate(s.input.Poll(), int(s.viewport.Width), int(s.viewport.Height))
	in.DT = deltaTime
	in.Time = s.elapsed
	s.session.Update(in)
}

// Draw 绘制当前快照
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := s.session.Snapshot()
	for _, layer := range snap.Particles {
		DrawParticleLayer(screen, s.viewport, layer, s.texture(layer.Texture))
	}
	for _, o := range snap.Orbs {
		s.drawOrb(screen, o)
	}
	if snap.Basket.Visible {
		s.drawBasket(screen, snap.Basket)
	}

	s.drawText(screen, fmt.Sprintf("SCORE %d", snap.Score), 16, 16, s.ScoreScale(), s.scoreTint)
	if snap.State.IsTerminal() {
		s.drawEndMessage(screen, snap.State)
	}
}

// texture 返回纹理，没有资源管理器或加载失败时返回 nil
func (s *GameScene) texture(path string) *ebiten.Image {
	if s.rm == nil {
		return nil
	}
	return s.rm.Image(path)
}

// DrawParticleLayer 绘制一个元素的全部粒子
//
// 粒子随寿命淡出并向白色偏移；tex 为 nil 时画实心圆。
func DrawParticleLayer(screen *ebiten.Image, v Viewport, layer game.ParticleLayer, tex *ebiten.Image) {
	for _, p := range layer.Particles {
		x, y := v.WorldToScreen(p.Position)
		size := particleSize(p)
		c := p.Color.Blend(types.White, 0.4*(1-p.Life)).WithAlpha(1 - p.Life)
		if tex != nil {
			drawTexture(screen, tex, x-size/2, y-size/2, size, size, c)
			continue
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(size/2), c.RGBA(), true)
	}
}

// particleSize 粒子随寿命缩小到一半
func particleSize(p particles.View) float64 {
	return p.Size * (1 - 0.5*p.Life)
}

func (s *GameScene) drawOrb(screen *ebiten.Image, o game.OrbView) {
	x, y, w, h := s.viewport.RectToScreen(o.Bounds)
	if tex := s.texture(o.Texture); tex != nil {
		drawTexture(screen, tex, x, y, w, h, types.White)
		return
	}
	c := s.session.Config().ThemeColor(o.Element)
	vector.DrawFilledCircle(screen, float32(x+w/2), float32(y+h/2), float32(w/2), c.RGBA(), true)
	vector.StrokeCircle(screen, float32(x+w/2), float32(y+h/2), float32(w/2), 2, c.Blend(types.White, 0.5).RGBA(), true)
}

func (s *GameScene) drawBasket(screen *ebiten.Image, b game.BasketView) {
	x, y, w, h := s.viewport.RectToScreen(b.Bounds)
	if tex := s.texture(s.session.Config().Assets.Basket); tex != nil {
		drawTexture(screen, tex, x, y, w, h, b.Tint)
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), b.Tint.RGBA(), false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, types.White.RGBA(), false)
}

func (s *GameScene) drawEndMessage(screen *ebiten.Image, state game.GameState) {
	assetsCfg := s.session.Config().Assets
	title, titlePath := "YOU LOSE", assetsCfg.YouLose
	if state == game.StateWon {
		title, titlePath = "YOU WIN", assetsCfg.YouWin
	}

	cx, cy := s.viewport.Width/2, s.viewport.Height/2
	if tex := s.texture(titlePath); tex != nil {
		drawTextureCentered(screen, tex, cx, cy-60)
	} else {
		s.drawTextCentered(screen, title, cx, cy-60, 6, types.White)
	}
	if tex := s.texture(assetsCfg.Restart); tex != nil {
		drawTextureCentered(screen, tex, cx, cy+60)
	} else {
		s.drawTextCentered(screen, restartHint(), cx, cy+60, 3, types.White)
	}
}

func restartHint() string {
	if utils.IsMobile() {
		return "TAP TO RESTART"
	}
	return "PRESS R TO RESTART"
}

// drawText 用调试字体绘制放大并着色的文字
func (s *GameScene) drawText(screen *ebiten.Image, msg string, x, y, scale float64, tint types.Color) {
	w := len(msg) * glyphWidth
	if s.textImage == nil || s.textImage.Bounds().Dx() < w {
		s.textImage = ebiten.NewImage(max(w, 256), glyphHeight)
	}
	s.textImage.Clear()
	ebitenutil.DebugPrint(s.textImage, msg)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(tint.RGBA())
	screen.DrawImage(s.textImage, op)
}

func (s *GameScene) drawTextCentered(screen *ebiten.Image, msg string, cx, cy, scale float64, tint types.Color) {
	w := float64(len(msg)*glyphWidth) * scale
	h := glyphHeight * scale
	s.drawText(screen, msg, cx-w/2, cy-h/2, scale, tint)
}

// drawTexture 把纹理拉伸到屏幕矩形并着色
func drawTexture(screen, tex *ebiten.Image, x, y, w, h float64, tint types.Color) {
	b := tex.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(tint.RGBA())
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(tex, op)
}

// drawTextureCentered 以原始尺寸居中绘制纹理
func drawTextureCentered(screen, tex *ebiten.Image, cx, cy float64) {
	b := tex.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	drawTexture(screen, tex, cx-w/2, cy-h/2, w, h, types.White)
}
