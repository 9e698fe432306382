// Package tool implements the editor's tool modes on top of the generic state machine.
package tool

import (
	"fmt"
	"log/slog"

	"go-hex-sculptor/internal/event"
	"go-hex-sculptor/internal/interfaces"
	"go-hex-sculptor/internal/state"
	"go-hex-sculptor/pkg/brush"
	"go-hex-sculptor/pkg/hexmap"

	"github.com/go-gl/mathgl/mgl64"
)

// Preview holds the positions the renderer highlights for the active tool.
// Highlighted is the hovered area; Next is where Paint would put new tiles.
type Preview struct {
	Highlighted []hexmap.HexPosition
	Next        []hexmap.HexPosition
}

func (p *Preview) clear() {
	p.Highlighted = p.Highlighted[:0]
	p.Next = p.Next[:0]
}

// Deps are the collaborators the editor talks to. Renderer, Marker and Events may be nil.
type Deps struct {
	Picker   interfaces.Picker
	Plane    interfaces.PlaneIntersector
	Renderer interfaces.TileRenderer
	Marker   interfaces.ChangeMarker
	Events   *event.Dispatcher
}

// Editor is the context shared by all tool states.
type Editor struct {
	Map *hexmap.TileMap

	picker   interfaces.Picker
	plane    interfaces.PlaneIntersector
	renderer interfaces.TileRenderer
	marker   interfaces.ChangeMarker
	events   *event.Dispatcher

	machine *state.Machine[*Editor]

	brushSize  int
	pointer    mgl64.Vec2
	hasPointer bool
	preview    Preview

	paint    *paintTool
	material *materialTool
	settings *settingsTool
}

// NewEditor wires the five tools around m. No tool is active until SelectTool.
func NewEditor(m *hexmap.TileMap, deps Deps) *Editor {
	e := &Editor{
		Map:       m,
		picker:    deps.Picker,
		plane:     deps.Plane,
		renderer:  deps.Renderer,
		marker:    deps.Marker,
		events:    deps.Events,
		brushSize: brush.MinSize,
		paint:     &paintTool{},
		material:  &materialTool{},
		settings:  &settingsTool{},
	}
	if e.renderer == nil {
		e.renderer = nopRenderer{}
	}
	if e.marker == nil {
		e.marker = nopMarker{}
	}
	m.Tiles.SetRelease(e.releaseTile)

	e.machine = state.NewMachine(e)
	registerSelect(e.machine)
	e.paint.register(e.machine)
	e.material.register(e.machine)
	registerErase(e.machine)
	e.settings.register(e.machine)
	return e
}

// SelectTool switches the active tool.
func (e *Editor) SelectTool(name state.Name) error {
	if !e.machine.Has(name) {
		return fmt.Errorf("select tool %q: %w", name, state.ErrUnknownState)
	}
	prev := e.machine.Current()
	if err := e.machine.ChangeState(name); err != nil {
		return err
	}
	if prev != name {
		slog.Debug("tool changed", "from", prev, "to", name)
		if e.events != nil {
			e.events.Dispatch(event.Event{Type: event.ToolChanged, Data: name})
		}
	}
	return nil
}

// ActiveTool returns the active tool's name, or "" before the first SelectTool.
func (e *Editor) ActiveTool() state.Name { return e.machine.Current() }

// MovePointer records the pointer position and tells the active tool.
func (e *Editor) MovePointer(pos mgl64.Vec2) error {
	e.pointer = pos
	e.hasPointer = true
	return e.machine.TriggerEvent(PointerMoved, nil)
}

// Click delivers a pointer click at pos.
func (e *Editor) Click(button Button, pos mgl64.Vec2) error {
	e.pointer = pos
	e.hasPointer = true
	return e.machine.TriggerEvent(PointerClicked, Click{Button: button, Position: pos})
}

// Trigger raises any other tool event; tools that do not handle it ignore it.
func (e *Editor) Trigger(name state.EventName, payload any) error {
	return e.machine.TriggerEvent(name, payload)
}

// Tick runs the active tool's per-frame update. Call it after the frame's input events.
func (e *Editor) Tick(dt float64) {
	e.machine.Update(dt)
}

// Pointer returns the last known pointer position.
func (e *Editor) Pointer() (mgl64.Vec2, bool) { return e.pointer, e.hasPointer }

// BrushSize returns the brush size, 1..10.
func (e *Editor) BrushSize() int { return e.brushSize }

// SetBrushSize clamps size to the valid range. Tools pick the change up on their next update.
func (e *Editor) SetBrushSize(size int) {
	e.brushSize = brush.ClampSize(size)
}

// Preview returns the current preview layers. The slices are reused between frames.
func (e *Editor) Preview() Preview { return e.preview }

// PaintLayer returns the Paint tool's height and offset.
func (e *Editor) PaintLayer() (height, offset float64) {
	return e.paint.height, e.paint.offset
}

// SettingsDraft returns the Settings tool's working hex size and whether it differs from the map.
func (e *Editor) SettingsDraft() (hexSize float64, dirty bool) {
	return e.settings.hexSize, e.settings.dirty
}

// SetMaterial changes the material new tiles are painted with.
func (e *Editor) SetMaterial(id hexmap.MaterialID) {
	if e.Map.Material == id {
		return
	}
	e.Map.Material = id
	e.marker.MarkChanged()
}

func (e *Editor) brushRadius() int {
	return brush.RadiusForSize(e.brushSize)
}

// placeTile creates or overwrites the tile at h. The store releases any tile it replaces.
func (e *Editor) placeTile(h hexmap.Hex, elevation float64, material hexmap.MaterialID) *hexmap.Tile {
	tile := e.Map.Tiles.Add(h, hexmap.NewTile(elevation, material))
	tile.Visual = e.renderer.CreateTile(tile)
	return tile
}

func (e *Editor) releaseTile(t *hexmap.Tile) {
	if t.Visual != 0 {
		e.renderer.DestroyTile(t.Visual)
		t.Visual = 0
	}
}

// pick resolves a screen point to an occupied tile.
func (e *Editor) pick(pos mgl64.Vec2) (*hexmap.Tile, hexmap.HexPosition, bool) {
	if e.picker == nil {
		return nil, hexmap.HexPosition{}, false
	}
	hit, ok := e.picker.Pick(pos)
	if !ok {
		return nil, hit, false
	}
	tile, _ := e.Map.Tiles.TryGet(hit.Hex)
	return tile, hit, true
}

// hoverTile highlights the tile under the pointer, used by Select and Erase.
func (e *Editor) hoverTile() {
	e.preview.clear()
	if _, hit, ok := e.pick(e.pointer); ok {
		e.preview.Highlighted = append(e.preview.Highlighted, hit)
	}
}

type nopRenderer struct{}

func (nopRenderer) CreateTile(*hexmap.Tile) hexmap.VisualID        { return 0 }
func (nopRenderer) DestroyTile(hexmap.VisualID)                    {}
func (nopRenderer) SetMaterial(hexmap.VisualID, hexmap.MaterialID) {}
func (nopRenderer) RegenerateAll(*hexmap.TileMap)                  {}

type nopMarker struct{}

func (nopMarker) MarkChanged() {}
