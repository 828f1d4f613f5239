// Package main provides a particle pool viewer for tuning the per-element
// burst profiles in data/gameplay.yaml.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--config <file>     Gameplay YAML to load (defaults are used when empty)
//	--element <name>    Element selected at start (earth, fire, air, water)
//	--burst <n>         Particles emitted per click
//	--auto-play         Emit a burst at the center every second
//
// Controls:
//
//	Mouse Click / Tap   - Emit a burst at the cursor
//	Left/Right Arrow    - Select previous/next element
//	1-4                 - Select element by index
//	Space               - Emit a burst at the screen center
//	A                   - Emit a burst of every element at once
//	Up/Down Arrow       - Increase/decrease burst size
//	P                   - Toggle pause
//	R                   - Clear all pools
//	Q/Escape            - Quit
package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/game"
	"github.com/decker502/orbcatch/pkg/particles"
	"github.com/decker502/orbcatch/pkg/scenes"
	"github.com/decker502/orbcatch/pkg/types"
)

var CLI struct {
	Config   string `help:"Gameplay YAML file." type:"existingfile" short:"c"`
	Element  string `help:"Element selected at start." default:"fire" enum:"earth,fire,air,water"`
	Burst    int    `help:"Particles emitted per burst." default:"50"`
	AutoPlay bool   `help:"Emit a burst at the center every second."`
	Verbose  bool   `help:"Enable debug logging." short:"v"`
}

// errQuit 用户请求退出
var errQuit = errors.New("quit")

const autoPlayInterval = 1.0

// ParticleViewer implements ebiten.Game for the particle pool viewer
type ParticleViewer struct {
	cfg      *config.GameplayConfig
	pools    *particles.PoolSet
	viewport scenes.Viewport
	element  types.ElementType
	burst    int
	paused   bool
	autoPlay bool
	autoTime float64
	emitted  int
	dropped  int
	logger   zerolog.Logger
}

// NewParticleViewer 创建查看器
func NewParticleViewer(cfg *config.GameplayConfig, element types.ElementType, burst int, seed uint64) (*ParticleViewer, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pools, err := game.NewParticlePools(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &ParticleViewer{
		cfg:      cfg,
		pools:    pools,
		viewport: scenes.Viewport{Width: cfg.Field.Width, Height: cfg.Field.Height},
		element:  element,
		burst:    max(burst, 1),
		logger:   logging.For("ParticleViewer"),
	}, nil
}

// Update 处理输入并推进所有粒子池
func (v *ParticleViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.element = v.element.Cycle(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.element = v.element.Cycle(1)
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(key) {
			v.element = types.AllElementTypes()[i]
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		v.burst += 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		v.burst = max(v.burst-10, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.pools.Clear()
		v.logger.Debug().Msg("pools cleared")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.emit(types.Vec2{}, v.element)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		for _, e := range types.AllElementTypes() {
			v.emit(types.Vec2{}, e)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.emit(v.viewport.ScreenToWorld(float64(x), float64(y)), v.element)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		v.emit(v.viewport.ScreenToWorld(float64(x), float64(y)), v.element)
	}

	if v.paused {
		return nil
	}

	dt := 1.0 / float64(ebiten.TPS())
	if v.autoPlay {
		v.autoTime += dt
		if v.autoTime >= autoPlayInterval {
			v.autoTime = 0
			v.emit(types.Vec2{}, v.element)
		}
	}
	v.pools.Advance(dt)
	return nil
}

// emit 发射一次爆发，池满时多出的粒子被丢弃
func (v *ParticleViewer) emit(pos types.Vec2, element types.ElementType) {
	n := v.pools.Emit(pos, v.burst, element)
	v.emitted += n
	v.dropped += v.burst - n
	v.logger.Debug().
		Str("element", element.String()).
		Int("requested", v.burst).
		Int("emitted", n).
		Msg("burst")
}

// Draw 绘制粒子和状态信息
func (v *ParticleViewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.cfg.ThemeColor(v.element).Blend(types.Black, 0.85).RGBA())

	for _, layer := range game.ParticleLayers(v.pools) {
		scenes.DrawParticleLayer(screen, v.viewport, layer, nil)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Element: %s   Burst: %d", v.element, v.burst), 10, 10)
	y := 30
	for _, e := range types.AllElementTypes() {
		pool := v.pools.Pool(e)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-6s %4d / %d", e, pool.ActiveCount(), v.cfg.ElementParticles(e).Capacity), 10, y)
		y += 20
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Emitted: %d   Dropped: %d", v.emitted, v.dropped), 10, y)
	if v.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (P to resume)", int(v.viewport.Width)-200, 10)
	}
	if v.autoPlay {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY", int(v.viewport.Width)-200, 30)
	}
}

// Layout 返回场地尺寸
func (v *ParticleViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(v.viewport.Width), int(v.viewport.Height)
}

func main() {
	kong.Parse(&CLI,
		kong.Name("particles"),
		kong.Description("Interactive viewer for the element particle pools."),
		kong.UsageOnError())

	level := logging.LevelInfo
	if CLI.Verbose {
		level = logging.LevelDebug
	}
	logging.Setup(level, os.Stderr)
	logger := logging.For("ParticleViewer")

	cfg := config.DefaultGameplayConfig()
	if CLI.Config != "" {
		loaded, err := config.LoadGameplayConfig(CLI.Config)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load gameplay config")
		}
		cfg = loaded
	}

	element, err := types.ParseElementType(CLI.Element)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid element")
	}

	viewer, err := NewParticleViewer(cfg, element, CLI.Burst, uint64(time.Now().UnixNano()))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create viewer")
	}
	viewer.autoPlay = CLI.AutoPlay

	ebiten.SetWindowSize(int(cfg.Field.Width), int(cfg.Field.Height))
	ebiten.SetWindowTitle("Orb Catch - Particle Viewer")

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		logger.Fatal().Err(err).Msg("viewer exited with error")
	}
}
