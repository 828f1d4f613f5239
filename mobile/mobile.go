//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	make prepare-mobile && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.orbcatch -o build/android/orbcatch.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	make prepare-mobile && ebitenmobile bind -target ios -tags mobile -o build/ios/OrbCatch.xcframework -v ./mobile
package mobile

import (
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/rs/zerolog/log"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/app"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/embedded"
)

func init() {
	logging.Setup(logging.LevelDebug, nil)

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	data, err := embedded.ReadFile(config.DefaultGameplayConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read embedded gameplay config")
	}
	cfg, err := config.ParseGameplayConfig(data)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid embedded gameplay config")
	}

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open embedded assets")
	}

	gameApp, err := app.NewApp(app.Config{
		Gameplay: cfg,
		Assets:   assets,
		Seed:     uint64(time.Now().UnixNano()),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("game initialization failed")
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
