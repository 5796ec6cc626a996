package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/player"
)

const stickDeadzone = 0.2

// readInput samples keyboard and the first gamepad into one tick of player input.
func readInput() player.Input {
	var in player.Input

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Move.Z += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Move.Z -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Turn += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Turn -= 1
	}
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Reload = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.Interact = inpututil.IsKeyJustPressed(ebiten.KeyF)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// Stick up is negative.
			in.Move = common.V3(lx, 0, -ly)
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			in.Turn = rx
		}
		in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		in.Fire = in.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.Reload = in.Reload || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.Interact = in.Interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return in
}
