// cmd/hexsculpt_raylib/main.go
package main

import (
	"flag"
	"log/slog"
	"os"

	"go-hex-sculptor/internal/app"
	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/event"
	"go-hex-sculptor/internal/state"
	"go-hex-sculptor/internal/tool"
	"go-hex-sculptor/internal/ui"
	"go-hex-sculptor/internal/viewport"
	"go-hex-sculptor/pkg/hexmap"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	toolbarX      = 10
	toolbarY      = 10
	buttonWidth   = 120
	buttonHeight  = 30
	buttonGap     = 6
	indicatorSize = 12
)

func main() {
	configPath := flag.String("config", config.DefaultSettingsPath, "editor settings file (JSON)")
	dbPath := flag.String("db", "", "SQLite map database (default from settings)")
	fresh := flag.Bool("new", false, "start a new map instead of the last saved one")
	generate := flag.Bool("generate", true, "fill a new map with a noise-generated island")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		slog.Error("failed to load settings", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *dbPath == "" {
		*dbPath = settings.DBPath
	}

	session, err := app.Open(app.Options{
		Settings: settings,
		DBPath:   *dbPath,
		Fresh:    *fresh,
		Generate: *generate,
	})
	if err != nil {
		slog.Error("failed to open session", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Error("failed to save on exit", "error", err)
		}
	}()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(settings.WindowWidth), int32(settings.WindowHeight), "Hex Sculptor (raylib)")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cam := viewport.NewCamera(settings.WindowWidth, settings.WindowHeight)
	cam.Distance = settings.Camera.Distance
	cam.Pitch = settings.Camera.Pitch
	cam.Yaw = settings.Camera.Yaw
	cam.FovY = settings.Camera.FovY

	rlCam := &rl.Camera3D{Up: rl.NewVector3(0, 1, 0), Projection: rl.CameraPerspective}
	syncCamera(rlCam, cam)

	renderer := newPrismRenderer(settings, session.Map.HexSize)
	if err := session.Attach(&rayScene{cam: rlCam, m: session.Map}, renderer); err != nil {
		slog.Error("failed to start editor", "error", err)
		return
	}

	labels := make([]string, len(tool.Order))
	for i, name := range tool.Order {
		labels[i] = string(name)
	}
	toolbar := ui.NewToolbar(toolbarX, toolbarY, buttonWidth, buttonHeight, buttonGap, labels, config.ToolColors)
	indicator := ui.NewStateIndicatorRL(
		toolbarX+float32(len(labels))*(buttonWidth+buttonGap)+indicatorSize,
		toolbarY+buttonHeight/2, indicatorSize)
	session.Events.Subscribe(event.ToolChanged, event.ListenerFunc(func(event.Event) { indicator.Changed() }))

	var lastCursor mgl64.Vec2
	for !rl.WindowShouldClose() {
		dt := min(float64(rl.GetFrameTime()), config.MaxDeltaTime)

		if rl.IsWindowResized() {
			cam.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		cameraMoved := handleCamera(cam)
		syncCamera(rlCam, cam)
		handleKeys(session)

		mouse := rl.GetMousePosition()
		cursor := mgl64.Vec2{float64(mouse.X), float64(mouse.Y)}
		overToolbar := toolbar.Hit(mouse) >= 0
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && overToolbar {
			i := toolbar.Hit(mouse)
			toolbar.Buttons[i].Press()
			report(session.UseTool(i))
		} else if !overToolbar {
			if cursor != lastCursor || cameraMoved {
				lastCursor = cursor
				report(session.Editor.MovePointer(cursor))
			}
			for _, b := range []struct {
				mouse  rl.MouseButton
				button tool.Button
			}{
				{rl.MouseButtonLeft, tool.ButtonPrimary},
				{rl.MouseButtonRight, tool.ButtonSecondary},
				{rl.MouseButtonMiddle, tool.ButtonMiddle},
			} {
				if rl.IsMouseButtonPressed(b.mouse) {
					report(session.Editor.Click(b.button, cursor))
				}
			}
		}

		session.Update(dt)
		toolbar.SetActive(toolIndex(session.Editor.ActiveTool()))

		rl.BeginDrawing()
		c := config.BackgroundColor
		rl.ClearBackground(rl.NewColor(c.R, c.G, c.B, c.A))

		rl.BeginMode3D(*rlCam)
		renderer.draw(session)
		rl.EndMode3D()

		if session.Map.ShowCoordinates {
			renderer.drawCoordinates(*rlCam, session.Map.CoordFormat)
		}
		toolbar.Draw(mouse)
		if i := toolbar.Active(); i >= 0 && i < len(config.ToolColors) {
			indicator.Draw(config.ToolColors[i])
		}
		for i, line := range session.StatusLines() {
			rl.DrawText(line, toolbarX, toolbarY+buttonHeight+12+int32(i*config.HUDLineHeight), 14, rl.RayWhite)
		}
		rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
		rl.EndDrawing()
	}
}

func toolIndex(name state.Name) int {
	for i, n := range tool.Order {
		if n == name {
			return i
		}
	}
	return -1
}

func report(err error) {
	if err != nil {
		slog.Warn("editor input rejected", "error", err)
	}
}

func syncCamera(dst *rl.Camera3D, src *viewport.Camera) {
	dst.Position = toRL(src.Eye())
	dst.Target = toRL(src.Target)
	dst.Fovy = float32(src.FovY)
}

func handleCamera(cam *viewport.Camera) bool {
	moved := false
	orbit := func(key int32, dYaw, dPitch float64) {
		if rl.IsKeyDown(key) {
			cam.Orbit(dYaw, dPitch)
			moved = true
		}
	}
	orbit(rl.KeyQ, -config.CameraOrbitStep, 0)
	orbit(rl.KeyE, config.CameraOrbitStep, 0)
	orbit(rl.KeyPageUp, 0, config.CameraOrbitStep)
	orbit(rl.KeyPageDown, 0, -config.CameraOrbitStep)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.Zoom(-float64(wheel) * config.CameraZoomStep)
		moved = true
	}
	return moved
}

var keyCommands = map[int32]app.Command{
	rl.KeyRightBracket: app.CmdBrushGrow,
	rl.KeyLeftBracket:  app.CmdBrushShrink,
	rl.KeyEqual:        app.CmdHexSizeUp,
	rl.KeyMinus:        app.CmdHexSizeDown,
	rl.KeyEnter:        app.CmdApplySettings,
	rl.KeyBackspace:    app.CmdRevertSettings,
	rl.KeyDelete:       app.CmdClearTiles,
	rl.KeyC:            app.CmdToggleCoordinates,
	rl.KeyF:            app.CmdCycleCoordFormat,
	rl.KeyM:            app.CmdCycleMaterial,
}

func handleKeys(session *app.Session) {
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive} {
		if rl.IsKeyPressed(key) {
			report(session.UseTool(i))
		}
	}
	if rl.IsKeyDown(rl.KeyLeftControl) && rl.IsKeyPressed(rl.KeyS) {
		report(session.Do(app.CmdSave))
		return
	}

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if rl.IsKeyPressed(rl.KeyUp) {
		if shift {
			report(session.Do(app.CmdOffsetUp))
		} else {
			report(session.Do(app.CmdHeightUp))
		}
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		if shift {
			report(session.Do(app.CmdOffsetDown))
		} else {
			report(session.Do(app.CmdHeightDown))
		}
	}
	for key, cmd := range keyCommands {
		if rl.IsKeyPressed(key) {
			report(session.Do(cmd))
		}
	}
}

// rayScene answers the editor's ray queries with raylib's mouse ray.
type rayScene struct {
	cam *rl.Camera3D
	m   *hexmap.TileMap
}

func (s *rayScene) ray(screen mgl64.Vec2) (mgl64.Vec3, mgl64.Vec3) {
	r := rl.GetMouseRay(rl.NewVector2(float32(screen.X()), float32(screen.Y())), *s.cam)
	return fromRL(r.Position), fromRL(r.Direction)
}

func (s *rayScene) IntersectHorizontalPlane(screen mgl64.Vec2, height float64) (mgl64.Vec3, bool) {
	origin, dir := s.ray(screen)
	return viewport.RayHorizontalPlane(origin, dir, height)
}

func (s *rayScene) Pick(screen mgl64.Vec2) (hexmap.HexPosition, bool) {
	origin, dir := s.ray(screen)
	return viewport.PickRay(s.m, origin, dir)
}

func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func fromRL(v rl.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}
