// Package logging 统一配置 zerolog 日志输出
//
// 所有组件通过 For(name) 获取带 component 字段的子 logger，
// 输出形如 "[Session] Orb spawned" 的结构化日志。
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level 日志级别选项
type Level int

const (
	// LevelInfo 默认级别
	LevelInfo Level = iota
	// LevelDebug 详细日志（--verbose）
	LevelDebug
	// LevelQuiet 关闭日志（--quiet）
	LevelQuiet
)

// Setup 配置全局 logger
//
// 参数:
//   - level: 日志级别
//   - w: 输出目标，nil 时使用 os.Stdout
func Setup(level Level, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	consoleWriter := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	switch level {
	case LevelDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	case LevelQuiet:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// For 返回带组件名字段的子 logger
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
