package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/orbcatch/pkg/entities"
	"github.com/decker502/orbcatch/pkg/particles"
	"github.com/decker502/orbcatch/pkg/types"
)

// DefaultGameplayConfigPath 内嵌默认配置路径
const DefaultGameplayConfigPath = "data/gameplay.yaml"

// GameplayConfig 游戏玩法配置
//
// 包含场地、篮子、元素球、计分、粒子、主题色、资源路径和音效的全部调参。
//
// 配置文件位置: data/gameplay.yaml
type GameplayConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Basket    BasketConfig    `yaml:"basket"`
	Orb       OrbConfig       `yaml:"orb"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Particles ParticlesConfig `yaml:"particles"`

	// Themes 元素主题色（篮子着色、分数着色）
	// key: 元素类型名 (earth/water/fire/air)
	Themes map[string]Color `yaml:"themes"`

	Assets AssetsConfig `yaml:"assets"`
	Audio  AudioConfig  `yaml:"audio"`
}

// FieldConfig 场地尺寸（世界坐标原点在中心，Y 轴向上）
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BasketConfig 篮子配置
type BasketConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	BottomMargin float64 `yaml:"bottomMargin"` // 篮子底部到场地下边缘的距离
}

// OrbConfig 元素球配置
type OrbConfig struct {
	Size          float64 `yaml:"size"`
	FallSpeed     float64 `yaml:"fallSpeed"`
	SpawnInterval float64 `yaml:"spawnInterval"` // 生成间隔（秒）
	SpawnMargin   float64 `yaml:"spawnMargin"`   // 生成时距场地左右边缘的最小距离

	Drift DriftConfig `yaml:"drift"`
	Trail TrailConfig `yaml:"trail"`
}

// DriftConfig 之字形漂移的随机范围
type DriftConfig struct {
	Amplitude types.Range `yaml:"amplitude"`
	Frequency types.Range `yaml:"frequency"`
	Phase     types.Range `yaml:"phase"`
}

// TrailConfig 元素球粒子拖尾
type TrailConfig struct {
	Interval float64 `yaml:"interval"`
	Count    int     `yaml:"count"`
}

// ScoringConfig 计分与胜负阈值
type ScoringConfig struct {
	CorrectReward int `yaml:"correctReward"`
	WrongPenalty  int `yaml:"wrongPenalty"` // 负数
	WinThreshold  int `yaml:"winThreshold"`
	LoseThreshold int `yaml:"loseThreshold"`
	CorrectBurst  int `yaml:"correctBurst"` // 正确接住时发射的粒子数
	WrongBurst    int `yaml:"wrongBurst"`   // 接错时发射的粒子数
}

// ParticlesConfig 粒子配置
type ParticlesConfig struct {
	Duration types.Range `yaml:"duration"`
	Size     types.Range `yaml:"size"`
	Drag     float64     `yaml:"drag"`

	// Elements 各元素类型的粒子池配置
	// key: 元素类型名 (earth/water/fire/air)
	Elements map[string]ElementParticlesConfig `yaml:"elements"`
}

// ElementParticlesConfig 单个元素类型的粒子池配置
type ElementParticlesConfig struct {
	Capacity       int                   `yaml:"capacity"`
	Color          Color                 `yaml:"color"`
	Velocity       VelocityProfileConfig `yaml:"velocity"`
	SizeMultiplier float64               `yaml:"sizeMultiplier"`
	Texture        string                `yaml:"texture"`
}

// VelocityProfileConfig 初始速度分布
type VelocityProfileConfig struct {
	SpreadX    float64 `yaml:"spreadX"`
	SpreadY    float64 `yaml:"spreadY"`
	BiasY      float64 `yaml:"biasY"`
	UpwardOnly bool    `yaml:"upwardOnly"`
}

// AssetsConfig 纹理路径（相对资源目录），缺失时以纯色图形绘制
type AssetsConfig struct {
	Basket  string            `yaml:"basket"`
	Orbs    map[string]string `yaml:"orbs"`
	YouWin  string            `yaml:"youWin"`
	YouLose string            `yaml:"youLose"`
	Restart string            `yaml:"restart"`
}

// AudioConfig 音效配置
type AudioConfig struct {
	Correct string  `yaml:"correct"`
	Wrong   string  `yaml:"wrong"`
	Volume  float64 `yaml:"volume"`
}

// Color YAML 中以十六进制字符串表示的颜色
type Color struct {
	types.Color
}

// UnmarshalYAML 解析 "#RRGGBB" 形式的颜色
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("color must be a hex string: %w", err)
	}
	parsed, err := types.ParseHexColor(s)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// MarshalYAML 输出十六进制字符串
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

func hex(s string) Color {
	c, err := types.ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return Color{Color: c}
}

// DefaultGameplayConfig 返回默认玩法配置
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Field: FieldConfig{Width: 1024, Height: 768},
		Basket: BasketConfig{
			Width:        120,
			Height:       60,
			Speed:        300,
			BottomMargin: 30,
		},
		Orb: OrbConfig{
			Size:          60,
			FallSpeed:     100,
			SpawnInterval: 1.5,
			SpawnMargin:   30,
			Drift: DriftConfig{
				Amplitude: types.Range{Min: 20, Max: 60},
				Frequency: types.Range{Min: 0.8, Max: 5.0},
				Phase:     types.Range{Min: 0, Max: 4 * math.Pi},
			},
			Trail: TrailConfig{Interval: 0.05, Count: 1},
		},
		Scoring: ScoringConfig{
			CorrectReward: 5,
			WrongPenalty:  -2,
			WinThreshold:  100,
			LoseThreshold: -5,
			CorrectBurst:  50,
			WrongBurst:    20,
		},
		Particles: ParticlesConfig{
			Duration: types.Range{Min: 0.5, Max: 1.5},
			Size:     types.Range{Min: 15, Max: 25},
			Drag:     0.5,
			Elements: map[string]ElementParticlesConfig{
				"earth": {
					Capacity:       500,
					Color:          hex("#663300"),
					Velocity:       VelocityProfileConfig{SpreadX: 30, SpreadY: 30, BiasY: -20},
					SizeMultiplier: 1,
					Texture:        "textures/earth_particle.png",
				},
				"water": {
					Capacity:       500,
					Color:          hex("#80b3ff"),
					Velocity:       VelocityProfileConfig{SpreadX: 40, SpreadY: 40, BiasY: 10},
					SizeMultiplier: 1,
					Texture:        "textures/water_particle.png",
				},
				"fire": {
					Capacity:       500,
					Color:          hex("#ff8000"),
					Velocity:       VelocityProfileConfig{SpreadX: 60, SpreadY: 80, BiasY: 20, UpwardOnly: true},
					SizeMultiplier: 1,
					Texture:        "textures/fire_particle.png",
				},
				"air": {
					Capacity:       500,
					Color:          hex("#cce6ff"),
					Velocity:       VelocityProfileConfig{SpreadX: 70, SpreadY: 70},
					SizeMultiplier: 1.2,
					Texture:        "textures/air_particle.png",
				},
			},
		},
		Themes: map[string]Color{
			"earth": hex("#996633"),
			"water": hex("#3366cc"),
			"fire":  hex("#cc3333"),
			"air":   hex("#b3e6ff"),
		},
		Assets: AssetsConfig{
			Basket: "textures/basket.png",
			Orbs: map[string]string{
				"earth": "textures/earth_orb.png",
				"water": "textures/water_orb.png",
				"fire":  "textures/fire_orb.png",
				"air":   "textures/air_orb.png",
			},
			YouWin:  "textures/you_win.png",
			YouLose: "textures/you_lose.png",
			Restart: "textures/press_r_to_restart.png",
		},
		Audio: AudioConfig{
			Correct: "sounds/correct_catch.wav",
			Wrong:   "sounds/wrong_catch.wav",
			Volume:  0.5,
		},
	}
}

// LoadGameplayConfig 加载玩法配置
//
// 从指定路径加载 YAML 格式的配置文件，未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *GameplayConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// ParseGameplayConfig 从 YAML 数据解析玩法配置并验证
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 场地、篮子、元素球尺寸为正
//   - 生成间隔为正，随机范围 Min <= Max
//   - 失败阈值 < 0 < 胜利阈值，正确奖励为正，错误惩罚为负
//   - 每种元素类型都有粒子池配置（容量 > 0）和主题色
func (c *GameplayConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field size must be positive: %.1fx%.1f", c.Field.Width, c.Field.Height)
	}
	if c.Basket.Width <= 0 || c.Basket.Height <= 0 {
		return fmt.Errorf("basket size must be positive: %.1fx%.1f", c.Basket.Width, c.Basket.Height)
	}
	if c.Basket.Speed < 0 {
		return fmt.Errorf("basket speed must not be negative: %.1f", c.Basket.Speed)
	}
	if c.Orb.Size <= 0 {
		return fmt.Errorf("orb size must be positive: %.1f", c.Orb.Size)
	}
	if c.Orb.SpawnInterval <= 0 {
		return fmt.Errorf("orb spawn interval must be positive: %.3f", c.Orb.SpawnInterval)
	}
	if c.Orb.SpawnMargin < 0 || 2*c.Orb.SpawnMargin > c.Field.Width {
		return fmt.Errorf("orb spawn margin out of range: %.1f", c.Orb.SpawnMargin)
	}
	ranges := map[string]types.Range{
		"drift amplitude":   c.Orb.Drift.Amplitude,
		"drift frequency":   c.Orb.Drift.Frequency,
		"drift phase":       c.Orb.Drift.Phase,
		"particle duration": c.Particles.Duration,
		"particle size":     c.Particles.Size,
	}
	for name, r := range ranges {
		if !r.Valid() {
			return fmt.Errorf("%s range invalid: min(%.3f) > max(%.3f)", name, r.Min, r.Max)
		}
	}
	if c.Orb.Trail.Interval < 0 || c.Orb.Trail.Count < 0 {
		return fmt.Errorf("orb trail must not be negative: interval=%.3f count=%d", c.Orb.Trail.Interval, c.Orb.Trail.Count)
	}

	s := c.Scoring
	if !(s.LoseThreshold < 0 && s.WinThreshold > 0) {
		return fmt.Errorf("thresholds must satisfy lose(%d) < 0 < win(%d)", s.LoseThreshold, s.WinThreshold)
	}
	if s.CorrectReward <= 0 {
		return fmt.Errorf("correct reward must be positive: %d", s.CorrectReward)
	}
	if s.WrongPenalty >= 0 {
		return fmt.Errorf("wrong penalty must be negative: %d", s.WrongPenalty)
	}
	if s.CorrectBurst < 0 || s.WrongBurst < 0 {
		return fmt.Errorf("particle bursts must not be negative: correct=%d wrong=%d", s.CorrectBurst, s.WrongBurst)
	}

	if c.Particles.Duration.Min <= 0 {
		return fmt.Errorf("particle duration must be positive: %.3f", c.Particles.Duration.Min)
	}
	if c.Particles.Drag < 0 {
		return fmt.Errorf("particle drag must not be negative: %.3f", c.Particles.Drag)
	}
	for key := range c.Particles.Elements {
		if _, err := types.ParseElementType(key); err != nil {
			return fmt.Errorf("particles.elements: %w", err)
		}
	}
	for key := range c.Themes {
		if _, err := types.ParseElementType(key); err != nil {
			return fmt.Errorf("themes: %w", err)
		}
	}
	for _, e := range types.AllElementTypes() {
		pc, ok := c.Particles.Elements[e.String()]
		if !ok {
			return fmt.Errorf("missing particle config for element %s", e)
		}
		if pc.Capacity <= 0 {
			return fmt.Errorf("particle capacity for %s must be positive: %d", e, pc.Capacity)
		}
		if pc.SizeMultiplier <= 0 {
			return fmt.Errorf("particle size multiplier for %s must be positive: %.2f", e, pc.SizeMultiplier)
		}
		if _, ok := c.Themes[e.String()]; !ok {
			return fmt.Errorf("missing theme color for element %s", e)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume out of range [0,1]: %.2f", c.Audio.Volume)
	}
	return nil
}

// ElementParticles 返回元素类型的粒子池配置
func (c *GameplayConfig) ElementParticles(e types.ElementType) ElementParticlesConfig {
	return c.Particles.Elements[e.String()]
}

// ParticleProfile 转换为粒子池使用的 Profile
func (c *GameplayConfig) ParticleProfile(e types.ElementType) particles.Profile {
	pc := c.ElementParticles(e)
	return particles.Profile{
		Color: pc.Color.Color,
		Velocity: particles.VelocityProfile{
			SpreadX:    pc.Velocity.SpreadX,
			SpreadY:    pc.Velocity.SpreadY,
			BiasY:      pc.Velocity.BiasY,
			UpwardOnly: pc.Velocity.UpwardOnly,
		},
		SizeMultiplier: pc.SizeMultiplier,
	}
}

// ParticleTuning 转换为粒子池使用的 Tuning
func (c *GameplayConfig) ParticleTuning() particles.Tuning {
	return particles.Tuning{
		MinDuration: c.Particles.Duration.Min,
		MaxDuration: c.Particles.Duration.Max,
		MinSize:     c.Particles.Size.Min,
		MaxSize:     c.Particles.Size.Max,
		Drag:        c.Particles.Drag,
	}
}

// DriftRanges 转换为元素球漂移范围
func (c *GameplayConfig) DriftRanges() entities.DriftRanges {
	return entities.DriftRanges{
		Amplitude: c.Orb.Drift.Amplitude,
		Frequency: c.Orb.Drift.Frequency,
		Phase:     c.Orb.Drift.Phase,
	}
}

// Trail 转换为元素球拖尾参数
func (c *GameplayConfig) Trail() entities.Trail {
	return entities.Trail{Interval: c.Orb.Trail.Interval, Count: c.Orb.Trail.Count}
}

// ThemeColor 返回元素主题色，未配置时返回白色
func (c *GameplayConfig) ThemeColor(e types.ElementType) types.Color {
	if col, ok := c.Themes[e.String()]; ok {
		return col.Color
	}
	return types.White
}

// OrbTexture 返回元素球纹理路径，可能为空
func (c *GameplayConfig) OrbTexture(e types.ElementType) string {
	return c.Assets.Orbs[e.String()]
}
