// internal/app/session.go
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/event"
	"go-hex-sculptor/internal/interfaces"
	"go-hex-sculptor/internal/persistence"
	"go-hex-sculptor/internal/terrain"
	"go-hex-sculptor/internal/tool"
	"go-hex-sculptor/pkg/hexmap"
)

// Options control how a session finds its map.
type Options struct {
	Settings *config.Settings
	// DBPath is the SQLite file; empty keeps the map in memory only.
	DBPath string
	// Fresh ignores the last saved map and starts a new one.
	Fresh bool
	// Generate fills a new map with the configured starter island.
	Generate bool
}

// Session owns everything one editing run needs apart from the host window:
// the map, its storage, the event bus and the editor.
type Session struct {
	Settings  *config.Settings
	DB        *persistence.DB
	Map       *hexmap.TileMap
	Events    *event.Dispatcher
	Marker    *event.Marker
	Autosaver *persistence.Autosaver
	Editor    *tool.Editor

	renderer  interfaces.TileRenderer
	lastSaved time.Time
	lastError error
}

// Open loads the last saved map (or creates one) and wires storage and events.
func Open(opts Options) (*Session, error) {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	s := &Session{
		Settings: settings,
		Events:   event.NewDispatcher(),
	}
	s.Marker = event.NewMarker(s.Events)

	if opts.DBPath != "" {
		db, err := persistence.Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		s.DB = db
		slog.Info("database opened", "path", opts.DBPath)
	}

	m, created, err := s.loadOrCreate(opts)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Map = m

	if s.DB != nil {
		s.Autosaver = persistence.NewAutosaver(s.DB, s.Map, s.Events, config.AutosaveInterval)
		// сгенерированный остров тоже надо сохранить
		if created && m.Tiles.Len() > 0 {
			s.Marker.MarkChanged()
		}
	}
	s.Events.Subscribe(event.MapSaved, event.ListenerFunc(func(event.Event) {
		s.lastSaved = time.Now()
		s.lastError = nil
	}))
	s.Events.Subscribe(event.SaveFailed, event.ListenerFunc(func(e event.Event) {
		if err, ok := e.Data.(error); ok {
			s.lastError = err
		}
	}))
	return s, nil
}

func (s *Session) loadOrCreate(opts Options) (*hexmap.TileMap, bool, error) {
	if s.DB != nil && !opts.Fresh {
		id, ok, err := s.DB.LastMap()
		if err != nil {
			return nil, false, fmt.Errorf("find last map: %w", err)
		}
		if ok {
			m, err := s.DB.LoadMap(id)
			if err == nil {
				slog.Info("map loaded", "id", m.ID, "tiles", m.Tiles.Len())
				return m, false, nil
			}
			if !errors.Is(err, persistence.ErrNotFound) {
				return nil, false, err
			}
			slog.Warn("last map is gone, starting a new one", "id", id)
		}
	}

	m := hexmap.NewTileMap(s.Settings.HexSize, s.Settings.DefaultMaterial)
	m.CoordFormat = s.Settings.Format()
	if opts.Generate {
		n := terrain.Generate(m, s.Settings.Generate, terrain.PaletteBands(s.Settings))
		slog.Info("starter map generated", "tiles", n, "seed", s.Settings.Generate.Seed)
	}
	slog.Info("new map", "id", m.ID)
	return m, true, nil
}

// Attach connects the host's scene and renderer and starts the editor in Select.
func (s *Session) Attach(scene interfaces.Scene, renderer interfaces.TileRenderer) error {
	s.renderer = renderer
	s.Editor = tool.NewEditor(s.Map, tool.Deps{
		Picker:   scene,
		Plane:    scene,
		Renderer: renderer,
		Marker:   s.Marker,
		Events:   s.Events,
	})
	if renderer != nil {
		renderer.RegenerateAll(s.Map)
	}
	return s.Editor.SelectTool(tool.Select)
}

// Update runs one frame after the host delivered its input events.
func (s *Session) Update(dt float64) {
	if s.Editor != nil {
		s.Editor.Tick(dt)
	}
	if s.Autosaver != nil {
		s.Autosaver.Update(dt)
	}
}

// Save writes the map now, whether or not it changed.
func (s *Session) Save() error {
	if s.DB == nil {
		return errors.New("no database configured")
	}
	if s.Autosaver != nil && s.Autosaver.Pending() {
		return s.Autosaver.Flush()
	}
	if err := s.DB.SaveMap(s.Map); err != nil {
		s.Events.Dispatch(event.Event{Type: event.SaveFailed, Data: err})
		return err
	}
	s.Events.Dispatch(event.Event{Type: event.MapSaved, Data: s.Map.Tiles.Len()})
	return nil
}

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool {
	return s.Autosaver != nil && s.Autosaver.Pending()
}

// Close flushes pending changes and closes the database.
func (s *Session) Close() error {
	var errs []error
	if s.Autosaver != nil {
		errs = append(errs, s.Autosaver.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
