package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsLeftClickJustPressed focuses units and issues moves
func IsLeftClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// IsRightClickJustPressed clears the focus
func IsRightClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

func GetCursorPosition() (int, int) {
	return ebiten.CursorPosition()
}
