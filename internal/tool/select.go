package tool

import "go-hex-sculptor/internal/state"

func registerSelect(m *state.Machine[*Editor]) {
	s := m.AddState(Select).
		OnExit(func(e *Editor, _ state.Name) { e.preview.clear() })
	state.HandleEmpty(s, PointerMoved, (*Editor).hoverTile)
	state.Handle(s, PointerClicked, func(e *Editor, c Click) {
		if c.Button != ButtonPrimary {
			return
		}
		if _, hit, ok := e.pick(c.Position); ok {
			e.Map.Select(hit.Hex)
		}
	})
}

func registerErase(m *state.Machine[*Editor]) {
	s := m.AddState(Erase).
		OnExit(func(e *Editor, _ state.Name) { e.preview.clear() })
	state.HandleEmpty(s, PointerMoved, (*Editor).hoverTile)
	state.Handle(s, PointerClicked, func(e *Editor, c Click) {
		if c.Button != ButtonPrimary {
			return
		}
		_, hit, ok := e.pick(c.Position)
		if !ok {
			return
		}
		removed := e.Map.Tiles.Remove(hit.Hex)
		// the selection follows the click even when nothing was there to remove
		e.Map.Select(hit.Hex)
		if removed {
			e.marker.MarkChanged()
		}
		e.hoverTile()
	})
}
