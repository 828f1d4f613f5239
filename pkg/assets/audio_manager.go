package assets

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	synth "github.com/decker502/orbcatch/internal/audio"
	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/game"
	"github.com/decker502/orbcatch/pkg/settings"
)

// Sound 音效种类
type Sound int

const (
	SoundCorrect Sound = iota // 接住同类型元素球
	SoundWrong                // 接错或漏接
)

func (s Sound) String() string {
	if s == SoundCorrect {
		return "correct"
	}
	return "wrong"
}

// SoundFor 返回事件对应的音效，不需要音效的事件返回 false
func SoundFor(kind game.EventKind) (Sound, bool) {
	switch kind {
	case game.EventCorrectCatch:
		return SoundCorrect, true
	case game.EventWrongCatch, game.EventMissed:
		return SoundWrong, true
	default:
		return 0, false
	}
}

// clip 已解码的音效
type clip struct {
	pcm       []byte
	synthetic bool // 文件缺失时由合成器生成
}

// AudioManager 把会话事件转换为音效播放
//
// 音量 = 配置音量 × 用户音效音量；用户关闭音效时不播放。
// audio.Context 为 nil 时所有播放都是空操作。
type AudioManager struct {
	ctx        *audio.Context
	settings   *settings.Manager // 可为 nil
	baseVolume float64
	clips      [2]clip
	logger     zerolog.Logger
}

// NewAudioManager 创建音频管理器并加载两个音效
//
// 音效文件缺失或无法解码时使用合成的提示音代替。
//
// 参数:
//   - ctx: ebiten 音频上下文，可为 nil
//   - rm: 资源管理器
//   - sm: 设置管理器，可为 nil
//   - cfg: 音效配置
func NewAudioManager(ctx *audio.Context, rm *ResourceManager, sm *settings.Manager, cfg config.AudioConfig) *AudioManager {
	am := &AudioManager{
		ctx:        ctx,
		settings:   sm,
		baseVolume: cfg.Volume,
		logger:     logging.For("AudioManager"),
	}
	am.clips[SoundCorrect] = am.loadClip(rm, cfg.Correct, synth.CorrectCue())
	am.clips[SoundWrong] = am.loadClip(rm, cfg.Wrong, synth.WrongCue())
	return am
}

func (am *AudioManager) loadClip(rm *ResourceManager, path string, fallback synth.Cue) clip {
	pcm, err := rm.LoadSoundEffect(path)
	if err == nil {
		am.logger.Info().Str("path", path).Int("bytes", len(pcm)).Msg("sound effect loaded")
		return clip{pcm: pcm}
	}
	am.logger.Warn().Err(err).Str("path", path).Msg("sound effect unavailable, using synthesized cue")
	return clip{pcm: fallback.PCM(), synthetic: true}
}

// Synthetic 音效是否由合成器生成
func (am *AudioManager) Synthetic(s Sound) bool {
	return am.clips[s].synthetic
}

// Volume 当前实际播放音量
func (am *AudioManager) Volume() float64 {
	if am.settings == nil {
		return am.baseVolume
	}
	return am.settings.EffectiveVolume(am.baseVolume)
}

// HandleEvent 会话事件监听器，在事件发生的同一帧播放音效
func (am *AudioManager) HandleEvent(ev game.Event) {
	if s, ok := SoundFor(ev.Kind); ok {
		am.Play(s)
	}
}

// Play 播放音效，返回是否真正开始播放
func (am *AudioManager) Play(s Sound) bool {
	if am.ctx == nil {
		return false
	}
	volume := am.Volume()
	if volume <= 0 {
		return false
	}

	player := am.ctx.NewPlayerFromBytes(am.clips[s].pcm)
	player.SetVolume(volume)
	player.Play()
	return true
}
