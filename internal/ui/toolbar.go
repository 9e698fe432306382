package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Toolbar is a row of mutually exclusive buttons, one per tool.
type Toolbar struct {
	Buttons []*Button
}

// NewToolbar lays out one button per label starting at (x, y).
// colors tints the active button; it is indexed like labels.
func NewToolbar(x, y, width, height, gap float32, labels []string, colors []color.RGBA) *Toolbar {
	tb := &Toolbar{}
	for i, label := range labels {
		active := rl.SkyBlue
		if i < len(colors) {
			c := colors[i]
			active = rl.NewColor(c.R, c.G, c.B, c.A)
		}
		rect := rl.NewRectangle(x+float32(i)*(width+gap), y, width, height)
		tb.Buttons = append(tb.Buttons, NewButton(rect, label, active))
	}
	return tb
}

// Hit returns the index of the button under p, or -1.
func (t *Toolbar) Hit(p rl.Vector2) int {
	for i, b := range t.Buttons {
		if b.Contains(p) {
			return i
		}
	}
	return -1
}

// SetActive marks button i as the active one. An out-of-range i clears all.
func (t *Toolbar) SetActive(i int) {
	for j, b := range t.Buttons {
		b.Active = j == i
	}
}

// Active returns the index of the active button, or -1.
func (t *Toolbar) Active() int {
	for i, b := range t.Buttons {
		if b.Active {
			return i
		}
	}
	return -1
}

// Draw рисует все кнопки.
func (t *Toolbar) Draw(mousePos rl.Vector2) {
	for _, b := range t.Buttons {
		b.Draw(mousePos)
	}
}
