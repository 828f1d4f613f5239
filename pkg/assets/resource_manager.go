// Package assets 加载纹理和音效，并把会话事件转换为音效播放
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rs/zerolog"

	synth "github.com/decker502/orbcatch/internal/audio"
	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/types"
)

// ResourceManager 集中管理纹理和音效
//
// 资源从一个 fs.FS 读取（通常是 os.DirFS(assetsDir)），加载结果按路径缓存。
// 纹理加载失败会被记住，之后的 Image 调用直接返回 nil，
// 调用方据此退化为纯色图形，元素仍然完整参与模拟。
//
// 非线程安全，只在游戏主循环中使用。
type ResourceManager struct {
	fsys       fs.FS // 可为 nil，此时所有加载都失败
	sampleRate int

	images map[string]*ebiten.Image // path -> image，加载失败时为 nil
	sounds map[string][]byte        // path -> 16 位立体声 PCM

	logger zerolog.Logger
}

// NewResourceManager 创建资源管理器
//
// 参数:
//   - fsys: 资源文件系统，可为 nil
//   - sampleRate: 音效解码的目标采样率，<=0 时使用 synth.SampleRate
func NewResourceManager(fsys fs.FS, sampleRate int) *ResourceManager {
	if sampleRate <= 0 {
		sampleRate = int(synth.SampleRate)
	}
	return &ResourceManager{
		fsys:       fsys,
		sampleRate: sampleRate,
		images:     make(map[string]*ebiten.Image),
		sounds:     make(map[string][]byte),
		logger:     logging.For("ResourceManager"),
	}
}

// readFile 读取资源文件
func (rm *ResourceManager) readFile(p string) ([]byte, error) {
	if rm.fsys == nil {
		return nil, fmt.Errorf("no asset directory configured for %s", p)
	}
	if p == "" {
		return nil, fmt.Errorf("empty asset path")
	}
	data, err := fs.ReadFile(rm.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", p, err)
	}
	return data, nil
}

// decodeImage 读取并解码图片，不创建 GPU 资源
func (rm *ResourceManager) decodeImage(p string) (image.Image, error) {
	data, err := rm.readFile(p)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}
	return img, nil
}

// LoadImage 加载并缓存纹理
//
// 参数:
//   - p: 相对资源目录的路径（如 "textures/basket.png"）
//
// 返回:
//   - *ebiten.Image: 加载的纹理
//   - error: 文件不存在或无法解码
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if img, ok := rm.images[p]; ok && img != nil {
		return img, nil
	}
	img, err := rm.decodeImage(p)
	if err != nil {
		return nil, err
	}
	eimg := ebiten.NewImageFromImage(img)
	rm.images[p] = eimg
	return eimg, nil
}

// Image 返回纹理，缺失时返回 nil
//
// 每个路径只尝试加载一次，失败只记录一次警告。
func (rm *ResourceManager) Image(p string) *ebiten.Image {
	if p == "" {
		return nil
	}
	if img, ok := rm.images[p]; ok {
		return img
	}
	img, err := rm.LoadImage(p)
	if err != nil {
		rm.logger.Warn().Err(err).Str("path", p).Msg("texture unavailable, drawing untextured shape")
		rm.images[p] = nil
		return nil
	}
	return img
}

// Preload 预加载配置中引用的所有纹理，返回成功加载的数量
func (rm *ResourceManager) Preload(cfg *config.GameplayConfig) int {
	paths := []string{cfg.Assets.Basket, cfg.Assets.YouWin, cfg.Assets.YouLose, cfg.Assets.Restart}
	for _, e := range types.AllElementTypes() {
		paths = append(paths, cfg.OrbTexture(e), cfg.ElementParticles(e).Texture)
	}

	loaded := 0
	for _, p := range paths {
		if rm.Image(p) != nil {
			loaded++
		}
	}
	rm.logger.Info().Int("loaded", loaded).Int("requested", len(paths)).Msg("textures preloaded")
	return loaded
}

// LoadSoundEffect 加载并缓存音效，解码为目标采样率的 16 位立体声 PCM
//
// 支持 .wav / .ogg / .mp3。
func (rm *ResourceManager) LoadSoundEffect(p string) ([]byte, error) {
	if pcm, ok := rm.sounds[p]; ok {
		return pcm, nil
	}
	data, err := rm.readFile(p)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(data)
	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", p, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", p, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rm.sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", p, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect %s: %w", p, err)
	}
	rm.sounds[p] = pcm
	return pcm, nil
}
