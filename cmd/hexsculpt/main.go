// cmd/hexsculpt/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go-hex-sculptor/internal/app"
	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/persistence"
	"go-hex-sculptor/internal/viewport"
	"go-hex-sculptor/pkg/render"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", config.DefaultSettingsPath, "editor settings file (JSON)")
	dbPath := flag.String("db", "", "SQLite map database (default from settings)")
	memory := flag.Bool("memory", false, "do not open a database; the map is lost on exit")
	fresh := flag.Bool("new", false, "start a new map instead of the last saved one")
	generate := flag.Bool("generate", true, "fill a new map with a noise-generated island")
	list := flag.Bool("list", false, "list saved maps and exit")
	remove := flag.String("delete", "", "delete the saved map with this id and exit")
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
	if *memory {
		*dbPath = ""
	}

	if *list {
		if err := listMaps(*dbPath); err != nil {
			slog.Error("failed to list maps", "error", err)
			os.Exit(1)
		}
		return
	}
	if *remove != "" {
		if err := deleteMap(*dbPath, *remove); err != nil {
			slog.Error("failed to delete map", "id", *remove, "error", err)
			os.Exit(1)
		}
		slog.Info("map deleted", "id", *remove)
		return
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

	g, err := newEditorGame(session)
	if err != nil {
		slog.Error("failed to start editor", "error", err)
		session.Close()
		os.Exit(1)
	}

	ebiten.SetWindowSize(settings.WindowWidth, settings.WindowHeight)
	ebiten.SetWindowTitle("Hex Sculptor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	runErr := ebiten.RunGame(g)

	if err := session.Close(); err != nil {
		slog.Error("failed to save on exit", "error", err)
	}
	if runErr != nil {
		slog.Error("editor stopped", "error", runErr)
		os.Exit(1)
	}
}

func listMaps(path string) error {
	if path == "" {
		return fmt.Errorf("no database to list")
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	maps, err := db.ListMaps()
	if err != nil {
		return err
	}
	if len(maps) == 0 {
		fmt.Println("no saved maps")
	}
	for _, m := range maps {
		fmt.Printf("%s  %8s tiles  saved %s\n", m.ID, humanize.Comma(int64(m.Tiles)), humanize.Time(m.SavedAt))
	}
	return nil
}

func deleteMap(path, rawID string) error {
	if path == "" {
		return fmt.Errorf("no database to delete from")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return err
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.DeleteMap(id)
}

func newEditorGame(session *app.Session) (*editorGame, error) {
	s := session.Settings
	cam := viewport.NewCamera(s.WindowWidth, s.WindowHeight)
	cam.Distance = s.Camera.Distance
	cam.Pitch = s.Camera.Pitch
	cam.Yaw = s.Camera.Yaw
	cam.FovY = s.Camera.FovY

	renderer, err := render.NewHexRenderer(cam, render.NewPalette(s.Materials), session.Map.HexSize)
	if err != nil {
		return nil, err
	}
	if err := session.Attach(viewport.NewScene(cam, session.Map), renderer); err != nil {
		return nil, err
	}
	return &editorGame{
		session:        session,
		camera:         cam,
		renderer:       renderer,
		lastUpdateTime: time.Now(),
	}, nil
}
