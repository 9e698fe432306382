package tool

import (
	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/state"
	"go-hex-sculptor/pkg/brush"
	"go-hex-sculptor/pkg/hexmap"

	"github.com/go-gl/mathgl/mgl64"
)

// paintTool places new tiles at height+offset over the brush area.
type paintTool struct {
	height float64
	offset float64

	// inputs the current preview was built from; Update rebuilds when they drift or the last build missed
	built       bool
	builtSize   int
	builtHeight float64
	builtOffset float64
}

func (p *paintTool) register(m *state.Machine[*Editor]) {
	s := m.AddState(Paint).
		OnEnter(func(e *Editor, _ state.Name) {
			*p = paintTool{}
			e.preview.clear()
		}).
		OnUpdate(p.update).
		OnExit(func(e *Editor, _ state.Name) {
			p.built = false
			e.preview.clear()
		})
	state.HandleEmpty(s, PointerMoved, func(e *Editor) {
		p.rebuild(e)
	})
	state.Handle(s, PointerClicked, p.click)
	state.Handle(s, AdjustPaintHeight, func(e *Editor, delta float64) {
		p.height = clampHeight(p.height + delta)
	})
	state.Handle(s, AdjustPaintOffset, func(e *Editor, delta float64) {
		p.offset = clampHeight(p.offset + delta)
	})
}

// center resolves a screen point to the hex on the paint plane.
func (p *paintTool) center(e *Editor, pos mgl64.Vec2) (hexmap.Hex, bool) {
	if e.plane == nil {
		return hexmap.Hex{}, false
	}
	point, ok := e.plane.IntersectHorizontalPlane(pos, p.height)
	if !ok {
		return hexmap.Hex{}, false
	}
	return hexmap.WorldToHex(point, e.Map.HexSize), true
}

func (p *paintTool) rebuild(e *Editor) {
	e.preview.clear()
	p.built = false
	pos, ok := e.Pointer()
	if !ok {
		return
	}
	center, ok := p.center(e, pos)
	if !ok {
		return
	}
	current, next := brush.PreviewLayers(brush.ComputeBrush(center, e.brushRadius()), p.height, p.offset)
	e.preview.Highlighted = append(e.preview.Highlighted, current...)
	e.preview.Next = append(e.preview.Next, next...)

	p.built = true
	p.builtSize = e.brushSize
	p.builtHeight = p.height
	p.builtOffset = p.offset
}

func (p *paintTool) update(e *Editor, _ float64) {
	if !e.hasPointer {
		return
	}
	// промах по плоскости повторяем каждый кадр: другая высота может попасть
	if !p.built || p.builtSize != e.brushSize || p.builtHeight != p.height || p.builtOffset != p.offset {
		p.rebuild(e)
	}
}

func (p *paintTool) click(e *Editor, c Click) {
	if c.Button != ButtonPrimary {
		return
	}
	center, ok := p.center(e, c.Position)
	if !ok {
		return
	}
	elevation := p.height + p.offset
	for h := range brush.ComputeBrush(center, e.brushRadius()) {
		e.placeTile(h, elevation, e.Map.Material)
	}
	e.Map.Select(center)
	e.marker.MarkChanged()
	p.rebuild(e)
}

func clampHeight(h float64) float64 {
	return min(max(h, config.MinPaintHeight), config.MaxPaintHeight)
}
