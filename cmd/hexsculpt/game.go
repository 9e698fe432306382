package main

import (
	"log/slog"
	"time"

	"go-hex-sculptor/internal/app"
	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/tool"
	"go-hex-sculptor/internal/viewport"
	"go-hex-sculptor/pkg/hexmap"
	"go-hex-sculptor/pkg/render"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const helpLine = "1-5 tools  [ ] brush  arrows height  shift+arrows offset  M material  " +
	"Q/E PgUp/PgDn camera  wheel zoom  settings: +/- size, Enter apply, Bksp revert, Del clear, C coords, F format  Ctrl+S save"

var toolKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5}

// keyCommands maps single key presses to editor commands. Shift variants are handled in handleKeys.
var keyCommands = map[ebiten.Key]app.Command{
	ebiten.KeyBracketRight: app.CmdBrushGrow,
	ebiten.KeyBracketLeft:  app.CmdBrushShrink,
	ebiten.KeyEqual:        app.CmdHexSizeUp,
	ebiten.KeyMinus:        app.CmdHexSizeDown,
	ebiten.KeyEnter:        app.CmdApplySettings,
	ebiten.KeyBackspace:    app.CmdRevertSettings,
	ebiten.KeyDelete:       app.CmdClearTiles,
	ebiten.KeyC:            app.CmdToggleCoordinates,
	ebiten.KeyF:            app.CmdCycleCoordFormat,
	ebiten.KeyM:            app.CmdCycleMaterial,
}

// editorGame adapts the session to ebiten.Game.
type editorGame struct {
	session        *app.Session
	camera         *viewport.Camera
	renderer       *render.HexRenderer
	lastUpdateTime time.Time
	lastCursor     mgl64.Vec2
}

func (g *editorGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	g.lastUpdateTime = now

	cameraMoved := g.handleCamera()
	g.handleKeys()
	g.handlePointer(cameraMoved)

	// события ввода уже разосланы, теперь кадр инструмента
	g.session.Update(deltaTime)
	return nil
}

func (g *editorGame) handleCamera() bool {
	moved := false
	orbit := func(key ebiten.Key, dYaw, dPitch float64) {
		if ebiten.IsKeyPressed(key) {
			g.camera.Orbit(dYaw, dPitch)
			moved = true
		}
	}
	orbit(ebiten.KeyQ, -config.CameraOrbitStep, 0)
	orbit(ebiten.KeyE, config.CameraOrbitStep, 0)
	orbit(ebiten.KeyPageUp, 0, config.CameraOrbitStep)
	orbit(ebiten.KeyPageDown, 0, -config.CameraOrbitStep)

	if _, wheel := ebiten.Wheel(); wheel != 0 {
		g.camera.Zoom(-wheel * config.CameraZoomStep)
		moved = true
	}
	return moved
}

func (g *editorGame) handleKeys() {
	for i, key := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.report(g.session.UseTool(i))
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.report(g.session.Do(app.CmdSave))
		return
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.do(pick(shift, app.CmdOffsetUp, app.CmdHeightUp))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.do(pick(shift, app.CmdOffsetDown, app.CmdHeightDown))
	}
	for key, cmd := range keyCommands {
		if inpututil.IsKeyJustPressed(key) {
			g.do(cmd)
		}
	}
}

func (g *editorGame) handlePointer(cameraMoved bool) {
	x, y := ebiten.CursorPosition()
	cursor := mgl64.Vec2{float64(x), float64(y)}
	if cursor != g.lastCursor || cameraMoved {
		g.lastCursor = cursor
		g.report(g.session.Editor.MovePointer(cursor))
	}

	buttons := []struct {
		mouse  ebiten.MouseButton
		button tool.Button
	}{
		{ebiten.MouseButtonLeft, tool.ButtonPrimary},
		{ebiten.MouseButtonRight, tool.ButtonSecondary},
		{ebiten.MouseButtonMiddle, tool.ButtonMiddle},
	}
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			g.report(g.session.Editor.Click(b.button, cursor))
		}
	}
}

func (g *editorGame) do(cmd app.Command) {
	if err := g.session.Do(cmd); err != nil {
		slog.Warn("command failed", "command", cmd, "error", err)
	}
}

func (g *editorGame) report(err error) {
	if err != nil {
		slog.Warn("editor input rejected", "error", err)
	}
}

func pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

func (g *editorGame) Draw(screen *ebiten.Image) {
	ed := g.session.Editor
	m := g.session.Map
	preview := ed.Preview()

	opts := render.DrawOptions{
		Highlighted:     preview.Highlighted,
		Next:            preview.Next,
		ShowCoordinates: m.ShowCoordinates,
		CoordFormat:     m.CoordFormat,
	}
	if sel, ok := m.Selected(); ok {
		pos := hexmap.HexPosition{Hex: sel}
		if tile, ok := m.Tiles.TryGet(sel); ok {
			pos = tile.Position()
		}
		opts.Selected = &pos
	}
	g.renderer.Draw(screen, opts)

	for i, line := range g.session.StatusLines() {
		ebitenutil.DebugPrintAt(screen, line, 8, 4+i*config.HUDLineHeight)
	}
	_, h := g.camera.Size()
	ebitenutil.DebugPrintAt(screen, helpLine, 8, h-config.HUDLineHeight-4)
}

func (g *editorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.camera.Size(); w != outsideWidth || h != outsideHeight {
		g.camera.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
