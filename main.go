package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/app"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/embedded"
)

var CLI struct {
	Config     string `help:"Gameplay YAML file overriding the embedded defaults." type:"existingfile" short:"c"`
	Assets     string `help:"Directory holding textures and sound effects." type:"existingdir" short:"a"`
	Seed       uint64 `help:"Random seed for orb spawning and particles." default:"1"`
	Fullscreen bool   `help:"Start in fullscreen mode."`
	Verbose    bool   `help:"Enable debug logging." short:"v" xor:"loglevel"`
	Quiet      bool   `help:"Disable logging." short:"q" xor:"loglevel"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("orbcatch"),
		kong.Description("Catch falling element orbs with a matching basket."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	level := logging.LevelInfo
	switch {
	case CLI.Verbose:
		level = logging.LevelDebug
	case CLI.Quiet:
		level = logging.LevelQuiet
	}
	logging.Setup(level, os.Stderr)

	embedded.Init(dataFS)

	cfg, err := loadGameplay(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	gameApp, err := app.NewApp(app.Config{
		Gameplay:   cfg,
		AssetsDir:  CLI.Assets,
		Seed:       CLI.Seed,
		Fullscreen: CLI.Fullscreen,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("game initialization failed")
	}

	ebiten.SetWindowSize(int(cfg.Field.Width), int(cfg.Field.Height))
	ebiten.SetWindowTitle("Orb Catch")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Error().Err(err).Msg("game loop exited with error")
	}
	gameApp.Shutdown()
}

// loadGameplay 读取玩法配置：指定了文件则从磁盘加载，否则使用内嵌的 data/gameplay.yaml
func loadGameplay(path string) (*config.GameplayConfig, error) {
	if path != "" {
		return config.LoadGameplayConfig(path)
	}
	data, err := embedded.ReadFile(config.DefaultGameplayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded gameplay config: %w", err)
	}
	return config.ParseGameplayConfig(data)
}
