package ui

import (
	"image/color"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestToolbarHit(t *testing.T) {
	tb := NewToolbar(10, 10, 100, 30, 5, []string{"a", "b", "c"}, []color.RGBA{{1, 2, 3, 255}})

	cases := []struct {
		p    rl.Vector2
		want int
	}{
		{rl.NewVector2(15, 20), 0},
		{rl.NewVector2(112, 20), -1}, // в зазоре
		{rl.NewVector2(116, 20), 1},
		{rl.NewVector2(300, 39), 2},
		{rl.NewVector2(300, 40), -1},
		{rl.NewVector2(0, 0), -1},
	}
	for _, c := range cases {
		if got := tb.Hit(c.p); got != c.want {
			t.Errorf("Hit(%v) = %d, want %d", c.p, got, c.want)
		}
	}

	if got := tb.Buttons[0].ActiveColor; got != rl.NewColor(1, 2, 3, 255) {
		t.Errorf("first active color = %v", got)
	}
	if got := tb.Buttons[2].ActiveColor; got != rl.SkyBlue {
		t.Errorf("fallback active color = %v", got)
	}
}

func TestToolbarActive(t *testing.T) {
	tb := NewToolbar(0, 0, 10, 10, 0, []string{"a", "b"}, nil)
	if tb.Active() != -1 {
		t.Error("fresh toolbar has an active button")
	}
	tb.SetActive(1)
	if tb.Active() != 1 || tb.Buttons[0].Active {
		t.Errorf("Active = %d", tb.Active())
	}
	tb.SetActive(-1)
	if tb.Active() != -1 {
		t.Error("SetActive(-1) did not clear")
	}
}
