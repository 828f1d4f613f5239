// Package main runs a game session headless and prints a YAML summary.
//
// Usage:
//
//	go run ./cmd/simulate [flags]
//
// By default an autopilot chases the lowest orb and restarts after every
// finished game. With --idle no input is given at all, so the run ends
// once the misses push the score to the lose threshold.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/game"
)

var CLI struct {
	Config  string  `help:"Gameplay YAML file; defaults are used when empty." type:"existingfile" short:"c"`
	Frames  int     `help:"Maximum number of frames to simulate." default:"36000"`
	Games   int     `help:"Stop after this many finished games (0 = no limit)." default:"0"`
	Seed    uint64  `help:"Random seed." default:"1"`
	DT      float64 `name:"dt" help:"Fixed frame time in seconds." default:"0.016666666666666666"`
	Idle    bool    `help:"Give no input instead of steering the basket automatically."`
	Verbose bool    `help:"Log every gameplay event." short:"v"`
}

// Summary 模拟结束后输出的结果
type Summary struct {
	Seed        uint64         `yaml:"seed"`
	Frames      int            `yaml:"frames"`
	SimTime     float64        `yaml:"simTime"`
	Score       int            `yaml:"score"`
	State       game.GameState `yaml:"state"`
	GamesWon    int            `yaml:"gamesWon"`
	GamesLost   int            `yaml:"gamesLost"`
	Totals      game.Stats     `yaml:"totals"`
	CurrentGame game.Stats     `yaml:"currentGame"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("simulate"),
		kong.Description("Run the orb catcher simulation without a window."),
		kong.UsageOnError())

	level := logging.LevelQuiet
	if CLI.Verbose {
		level = logging.LevelDebug
	}
	logging.Setup(level, os.Stderr)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run() error {
	if CLI.DT <= 0 {
		return fmt.Errorf("dt must be positive: %v", CLI.DT)
	}

	cfg := config.DefaultGameplayConfig()
	if CLI.Config != "" {
		loaded, err := config.LoadGameplayConfig(CLI.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	session, err := game.NewSession(cfg, CLI.Seed)
	if err != nil {
		return err
	}

	summary := simulate(session, CLI.Frames, CLI.Games, CLI.DT, !CLI.Idle)
	summary.Seed = CLI.Seed

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(summary)
}

// simulate 以固定步长推进会话，直到帧数或完成局数达到上限
//
// 不开启自动驾驶时，会话进入终局后即停止。
func simulate(session *game.Session, frames, games int, dt float64, autopilot bool) Summary {
	var summary Summary
	logger := log.With().Str("component", "Simulate").Logger()

	session.Subscribe(func(ev game.Event) {
		switch ev.Kind {
		case game.EventSpawned:
			summary.Totals.Spawned++
		case game.EventCorrectCatch:
			summary.Totals.Correct++
		case game.EventWrongCatch:
			summary.Totals.Wrong++
		case game.EventMissed:
			summary.Totals.Missed++
		case game.EventStateChanged:
			switch ev.State {
			case game.StateWon:
				summary.GamesWon++
			case game.StateLost:
				summary.GamesLost++
			}
		}
		logger.Debug().
			Str("event", ev.Kind.String()).
			Str("element", ev.Element.String()).
			Int("score", ev.Score).
			Msg("event")
	})

	pilot := game.NewAutopilot()
	now := 0.0
	for summary.Frames < frames {
		if games > 0 && summary.GamesWon+summary.GamesLost >= games {
			break
		}
		if !autopilot && session.State().IsTerminal() {
			break
		}

		now += dt
		in := game.FrameInput{DT: dt, Time: now}
		if autopilot {
			in = pilot.Next(session.Snapshot(), dt, now)
		}
		session.Update(in)
		summary.Frames++
	}

	summary.Totals.Frames = summary.Frames
	summary.SimTime = now
	summary.Score = session.Score()
	summary.State = session.State()
	summary.CurrentGame = session.Stats()
	return summary
}
