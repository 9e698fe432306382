package tool

import (
	"log/slog"

	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/state"
	"go-hex-sculptor/pkg/hexmap"
)

// settingsTool edits map-wide values. The hex size is edited on a working
// copy and only reaches the map on ApplySettings.
type settingsTool struct {
	hexSize float64
	dirty   bool
}

func (t *settingsTool) register(m *state.Machine[*Editor]) {
	s := m.AddState(Settings).
		OnEnter(func(e *Editor, _ state.Name) {
			t.hexSize = e.Map.HexSize
			t.dirty = false
			e.preview.clear()
		}).
		OnExit(func(e *Editor, _ state.Name) {
			if t.dirty {
				slog.Debug("discarding unapplied settings", "hexSize", t.hexSize)
			}
			t.dirty = false
		})

	state.Handle(s, AdjustHexSize, func(e *Editor, delta float64) {
		t.hexSize = min(max(t.hexSize+delta, config.MinHexSize), config.MaxHexSize)
		t.dirty = t.hexSize != e.Map.HexSize
	})
	state.HandleEmpty(s, ApplySettings, t.apply)
	state.HandleEmpty(s, RevertSettings, func(e *Editor) {
		t.hexSize = e.Map.HexSize
		t.dirty = false
	})
	state.HandleEmpty(s, ClearTiles, func(e *Editor) {
		n := e.Map.Tiles.Len()
		if n == 0 {
			return
		}
		e.Map.Tiles.Clear()
		e.Map.ClearSelection()
		slog.Info("cleared tiles", "count", n)
		e.marker.MarkChanged()
	})
	state.HandleEmpty(s, ToggleCoordinates, func(e *Editor) {
		e.Map.ShowCoordinates = !e.Map.ShowCoordinates
		e.marker.MarkChanged()
	})
	state.Handle(s, SetCoordFormat, func(e *Editor, f hexmap.CoordFormat) {
		if e.Map.CoordFormat == f {
			return
		}
		e.Map.CoordFormat = f
		e.marker.MarkChanged()
	})
}

func (t *settingsTool) apply(e *Editor) {
	if !t.dirty {
		return
	}
	slog.Info("applying hex size", "from", e.Map.HexSize, "to", t.hexSize)
	e.Map.HexSize = t.hexSize
	e.renderer.RegenerateAll(e.Map)
	t.dirty = false
	e.marker.MarkChanged()
}
