package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"go-hex-sculptor/internal/event"
	"go-hex-sculptor/pkg/hexmap"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "maps.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMap() *hexmap.TileMap {
	m := hexmap.NewTileMap(1.5, "sand")
	m.ShowCoordinates = true
	m.CoordFormat = hexmap.FormatOffsetOddQ
	for h := range hexmap.CoordinateRange(hexmap.Hex{Q: 2, R: -1}, 2) {
		m.Tiles.Add(h, hexmap.NewTile(float64(h.Q)*0.5, "rock"))
	}
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTemp(t)
	m := sampleMap()
	if err := db.SaveMap(m); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	got, err := db.LoadMap(m.ID)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got.ID != m.ID || got.HexSize != 1.5 || got.Material != "sand" {
		t.Errorf("loaded %v material=%q", got, got.Material)
	}
	if !got.ShowCoordinates || got.CoordFormat != hexmap.FormatOffsetOddQ {
		t.Errorf("overlay = %v, %v", got.ShowCoordinates, got.CoordFormat)
	}
	if got.Tiles.Len() != m.Tiles.Len() {
		t.Fatalf("tiles = %d, want %d", got.Tiles.Len(), m.Tiles.Len())
	}
	for tile := range m.Tiles.All() {
		lt, ok := got.Tiles.TryGet(tile.Coord())
		if !ok {
			t.Errorf("missing tile %v", tile.Coord())
			continue
		}
		if lt.Elevation != tile.Elevation || lt.Material != tile.Material {
			t.Errorf("tile %v = %v/%q, want %v/%q", tile.Coord(), lt.Elevation, lt.Material, tile.Elevation, tile.Material)
		}
		if lt.Visual != 0 {
			t.Errorf("tile %v loaded with a visual", tile.Coord())
		}
	}
}

func TestSaveReplacesTiles(t *testing.T) {
	db := openTemp(t)
	m := sampleMap()
	if err := db.SaveMap(m); err != nil {
		t.Fatal(err)
	}
	m.Tiles.Remove(hexmap.Hex{Q: 2, R: -1})
	m.Tiles.Add(hexmap.Hex{Q: 2, R: 0}, hexmap.NewTile(9, "snow"))
	if err := db.SaveMap(m); err != nil {
		t.Fatal(err)
	}

	got, err := db.LoadMap(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tiles.Contains(hexmap.Hex{Q: 2, R: -1}) {
		t.Error("removed tile came back")
	}
	if tile, ok := got.Tiles.TryGet(hexmap.Hex{Q: 2, R: 0}); !ok || tile.Material != "snow" {
		t.Errorf("overwritten tile = %v, %v", tile, ok)
	}
	if got.Tiles.Len() != m.Tiles.Len() {
		t.Errorf("tiles = %d, want %d", got.Tiles.Len(), m.Tiles.Len())
	}
}

func TestLoadMissing(t *testing.T) {
	db := openTemp(t)
	_, err := db.LoadMap(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, ok, err := db.LastMap(); ok || err != nil {
		t.Errorf("LastMap on empty db = %v, %v", ok, err)
	}
}

func TestLastMapAndList(t *testing.T) {
	db := openTemp(t)
	a, b := sampleMap(), hexmap.NewTileMap(1, "grass")
	for _, m := range []*hexmap.TileMap{a, b} {
		if err := db.SaveMap(m); err != nil {
			t.Fatal(err)
		}
	}
	id, ok, err := db.LastMap()
	if err != nil || !ok || id != b.ID {
		t.Errorf("LastMap = %v, %v, %v; want %v", id, ok, err, b.ID)
	}

	list, err := db.ListMaps()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("ListMaps = %d entries", len(list))
	}
	counts := map[uuid.UUID]int{}
	for _, info := range list {
		counts[info.ID] = info.Tiles
	}
	if counts[a.ID] != a.Tiles.Len() || counts[b.ID] != 0 {
		t.Errorf("counts = %v", counts)
	}

	if err := db.DeleteMap(b.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.LastMap(); ok {
		t.Error("last_map still points at a deleted map")
	}
	if err := db.DeleteMap(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

type fakeSaver struct {
	saves int
	err   error
}

func (f *fakeSaver) SaveMap(*hexmap.TileMap) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	return nil
}

func TestAutosaverWaitsForInterval(t *testing.T) {
	d := event.NewDispatcher()
	m := hexmap.NewTileMap(1, "grass")
	s := &fakeSaver{}
	a := NewAutosaver(s, m, d, 5)

	var saved int
	d.Subscribe(event.MapSaved, event.ListenerFunc(func(event.Event) { saved++ }))

	a.Update(10)
	if s.saves != 0 {
		t.Fatal("saved without changes")
	}

	marker := event.NewMarker(d)
	marker.MarkChanged()
	a.Update(3)
	marker.MarkChanged() // does not restart the timer
	a.Update(1.5)
	if s.saves != 0 {
		t.Fatal("saved before the interval")
	}
	a.Update(0.5)
	if s.saves != 1 || saved != 1 || a.Pending() {
		t.Errorf("saves=%d events=%d pending=%v", s.saves, saved, a.Pending())
	}
}

func TestAutosaverRetriesAfterFailure(t *testing.T) {
	d := event.NewDispatcher()
	m := hexmap.NewTileMap(1, "grass")
	s := &fakeSaver{err: errors.New("disk full")}
	a := NewAutosaver(s, m, d, 1)

	var failures []error
	d.Subscribe(event.SaveFailed, event.ListenerFunc(func(e event.Event) {
		failures = append(failures, e.Data.(error))
	}))

	event.NewMarker(d).MarkChanged()
	a.Update(1)
	if len(failures) != 1 || !a.Pending() {
		t.Fatalf("failures=%d pending=%v", len(failures), a.Pending())
	}

	s.err = nil
	a.Update(0.5)
	if s.saves != 0 {
		t.Error("retried before another interval")
	}
	a.Update(0.5)
	if s.saves != 1 || a.Pending() {
		t.Errorf("saves=%d pending=%v", s.saves, a.Pending())
	}
}

func TestAutosaverCloseFlushes(t *testing.T) {
	d := event.NewDispatcher()
	s := &fakeSaver{}
	a := NewAutosaver(s, hexmap.NewTileMap(1, "grass"), d, 100)
	event.NewMarker(d).MarkChanged()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if s.saves != 1 {
		t.Errorf("saves = %d", s.saves)
	}
	event.NewMarker(d).MarkChanged()
	if a.Pending() {
		t.Error("closed autosaver still listening")
	}
}
