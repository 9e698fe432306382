// internal/ui/button.go
package ui

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect        rl.Rectangle
	Text        string
	TextColor   rl.Color
	BgColor     rl.Color
	HoverColor  rl.Color
	ActiveColor rl.Color
	FontSize    int32
	Active      bool

	lastClick time.Time
}

// NewButton создает новую кнопку.
func NewButton(rect rl.Rectangle, text string, active rl.Color) *Button {
	return &Button{
		Rect:        rect,
		Text:        text,
		TextColor:   rl.Black,
		BgColor:     rl.LightGray,
		HoverColor:  rl.Gray,
		ActiveColor: active,
		FontSize:    18,
	}
}

// Contains reports whether p lies inside the button.
func (b *Button) Contains(p rl.Vector2) bool {
	return p.X >= b.Rect.X && p.X < b.Rect.X+b.Rect.Width &&
		p.Y >= b.Rect.Y && p.Y < b.Rect.Y+b.Rect.Height
}

// Press starts the click pulse.
func (b *Button) Press() {
	b.lastClick = time.Now()
}

// Draw отрисовывает кнопку.
func (b *Button) Draw(mousePos rl.Vector2) {
	bgColor := b.BgColor
	switch {
	case b.Active:
		bgColor = b.ActiveColor
	case b.Contains(mousePos):
		bgColor = b.HoverColor
	}

	// короткий "пульс" после клика
	elapsed := time.Since(b.lastClick).Seconds()
	grow := float32(4 * math.Exp(-elapsed*8))
	rect := rl.NewRectangle(b.Rect.X-grow, b.Rect.Y-grow, b.Rect.Width+2*grow, b.Rect.Height+2*grow)

	rl.DrawRectangleRec(rect, bgColor)
	rl.DrawRectangleLinesEx(rect, 2, rl.DarkGray)

	textWidth := rl.MeasureText(b.Text, b.FontSize)
	textX := int32(b.Rect.X + (b.Rect.Width-float32(textWidth))/2)
	textY := int32(b.Rect.Y + (b.Rect.Height-float32(b.FontSize))/2)
	rl.DrawText(b.Text, textX, textY, b.FontSize, b.TextColor)
}
