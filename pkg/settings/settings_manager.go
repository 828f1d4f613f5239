// Package settings 持久化玩家偏好（音量、静音、全屏）
//
// 这里只保存用户偏好，分数和游戏状态从不落盘。
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/utils"
)

// GameSettings 玩家偏好设置
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  1.0,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Manager 设置管理器
// 负责设置的加载、保存和内存管理
type Manager struct {
	store    *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings *GameSettings
	logger   zerolog.Logger
}

// NewManager 创建设置管理器并尝试加载已保存的设置
//
// 加载失败不是致命错误：记录警告后使用默认设置。
//
// 参数：
//   - store: gdata 跨平台存储管理器，可为 nil
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{
		store:    store,
		settings: DefaultSettings(),
		logger:   logging.For("Settings"),
	}
	if err := m.Load(); err != nil {
		m.logger.Warn().Err(err).Msg("failed to load settings, using defaults")
	}
	return m
}

// Open 打开应用的 gdata 存储并创建设置管理器
//
// 存储不可用时退化为仅内存模式。
func Open(appName string) *Manager {
	logger := logging.For("Settings")
	if err := utils.EnsureStorageDir(appName); err != nil {
		logger.Warn().Err(err).Msg("failed to prepare storage directory")
	}
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn().Err(err).Msg("persistent storage unavailable, settings kept in memory")
		store = nil
	}
	return NewManager(store)
}

// Persistent 设置是否会写入磁盘
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Load 从 gdata 加载设置
//
// 文件中缺失的字段保持默认值。
//
// 返回：
//   - error: 读取或反序列化失败
func (m *Manager) Load() error {
	m.settings = DefaultSettings()
	if m.store == nil {
		return nil
	}
	if !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	m.settings = loaded
	m.logger.Debug().Float64("volume", loaded.SoundVolume).Bool("sound", loaded.SoundEnabled).Msg("settings loaded")
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	m.logger.Debug().Msg("settings saved")
	return nil
}

// Settings 当前设置
func (m *Manager) Settings() *GameSettings {
	return m.settings
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (m *Manager) SetSoundVolume(volume float64) {
	m.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (m *Manager) SetSoundEnabled(enabled bool) {
	m.settings.SoundEnabled = enabled
}

// ToggleSound 切换音效开关并返回新状态
func (m *Manager) ToggleSound() bool {
	m.settings.SoundEnabled = !m.settings.SoundEnabled
	return m.settings.SoundEnabled
}

// SetFullscreen 设置全屏模式
func (m *Manager) SetFullscreen(enabled bool) {
	m.settings.Fullscreen = enabled
}

// EffectiveVolume 返回叠加用户音量后的实际播放音量，静音时为 0
func (m *Manager) EffectiveVolume(base float64) float64 {
	if !m.settings.SoundEnabled {
		return 0
	}
	return clampVolume(base * m.settings.SoundVolume)
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
