// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StateIndicatorRL - кружок с цветом активного инструмента; пульсирует при смене.
type StateIndicatorRL struct {
	X, Y       float32
	Radius     float32
	lastChange time.Time
}

func NewStateIndicatorRL(x, y, radius float32) *StateIndicatorRL {
	return &StateIndicatorRL{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Changed restarts the pulse.
func (i *StateIndicatorRL) Changed() {
	i.lastChange = time.Now()
}

// Draw отрисовывает индикатор
func (i *StateIndicatorRL) Draw(stateColor color.RGBA) {
	elapsed := time.Since(i.lastChange).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	currentRadius := i.Radius * float32(scale)

	rlColor := rl.NewColor(stateColor.R, stateColor.G, stateColor.B, stateColor.A)

	rl.DrawCircleV(rl.NewVector2(i.X, i.Y), currentRadius, rlColor)
	rl.DrawCircleLines(int32(i.X), int32(i.Y), currentRadius, rl.White)
}
