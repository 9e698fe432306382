package tool

import (
	"go-hex-sculptor/internal/state"
	"go-hex-sculptor/pkg/brush"
	"go-hex-sculptor/pkg/hexmap"
)

// materialTool repaints existing tiles. The brush only widens the highlight;
// a click changes the one tile under the pointer.
type materialTool struct {
	center    hexmap.Hex
	hasCenter bool
	builtSize int
}

func (t *materialTool) register(m *state.Machine[*Editor]) {
	s := m.AddState(MaterialPaint).
		OnEnter(func(e *Editor, _ state.Name) {
			*t = materialTool{}
			e.preview.clear()
		}).
		OnUpdate(func(e *Editor, _ float64) {
			if t.hasCenter && t.builtSize != e.brushSize {
				t.highlight(e)
			}
		}).
		OnExit(func(e *Editor, _ state.Name) {
			t.hasCenter = false
			e.preview.clear()
		})
	state.HandleEmpty(s, PointerMoved, func(e *Editor) {
		t.hasCenter = false
		e.preview.clear()
		if _, hit, ok := e.pick(e.pointer); ok {
			t.center = hit.Hex
			t.hasCenter = true
			t.highlight(e)
		}
	})
	state.Handle(s, PointerClicked, t.click)
}

func (t *materialTool) highlight(e *Editor) {
	e.preview.clear()
	area := brush.ComputeBrush(t.center, e.brushRadius())
	e.preview.Highlighted = append(e.preview.Highlighted, brush.Occupied(area, e.Map.Tiles)...)
	t.builtSize = e.brushSize
}

func (t *materialTool) click(e *Editor, c Click) {
	if c.Button != ButtonPrimary {
		return
	}
	tile, hit, ok := e.pick(c.Position)
	if !ok {
		return
	}
	e.Map.Select(hit.Hex)
	if tile == nil || tile.Material == e.Map.Material {
		return
	}
	tile.Material = e.Map.Material
	if tile.Visual != 0 {
		e.renderer.SetMaterial(tile.Visual, tile.Material)
	}
	e.marker.MarkChanged()
}
