package app

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen the app can show (currently only gameplay).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景实现后会在窗口逻辑尺寸变化时收到通知
type Resizable interface {
	Resize(width, height int)
}
