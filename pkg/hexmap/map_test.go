package hexmap

import (
	"math/rand"
	"slices"
	"testing"
)

func storedCoords(s *TileStore) []Hex {
	var coords []Hex
	for tile := range s.All() {
		coords = append(coords, tile.Coord())
	}
	return coords
}

func TestTileStoreOverwrite(t *testing.T) {
	var released []*Tile
	s := NewTileStore(func(tile *Tile) { released = append(released, tile) })

	a := s.Add(Hex{0, 0}, NewTile(1, "A"))
	b := s.Add(Hex{0, 0}, NewTile(1, "B"))

	if s.Len() != 1 {
		t.Fatalf("Len = %d after overwrite, want 1", s.Len())
	}
	got, ok := s.TryGet(Hex{0, 0})
	if !ok || got.Material != "B" {
		t.Fatalf("TryGet = %v, %v; want material B", got, ok)
	}
	if got != b {
		t.Error("TryGet did not return the stored tile")
	}
	if len(released) != 1 || released[0] != a {
		t.Errorf("released = %v, want only the first tile", released)
	}
	if got.Coord() != (Hex{0, 0}) {
		t.Errorf("Coord = %v", got.Coord())
	}
}

func TestTileStoreReAddSameTile(t *testing.T) {
	calls := 0
	s := NewTileStore(func(*Tile) { calls++ })
	tile := NewTile(0, "A")
	s.Add(Hex{1, 1}, tile)
	s.Add(Hex{1, 1}, tile)
	if calls != 0 {
		t.Errorf("re-adding the same tile released it %d times", calls)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestTileStoreMoveStoredTile(t *testing.T) {
	calls := 0
	s := NewTileStore(func(*Tile) { calls++ })
	tile := NewTile(0, "A")
	s.Add(Hex{0, 0}, tile)
	s.Add(Hex{1, 0}, tile)

	if s.Len() != 1 || s.Contains(Hex{0, 0}) {
		t.Fatalf("tile stored under both keys: Len = %d", s.Len())
	}
	if got, ok := s.TryGet(Hex{1, 0}); !ok || got != tile || got.Coord() != (Hex{1, 0}) {
		t.Fatalf("TryGet((1,0)) = %v, %v", got, ok)
	}
	if calls != 0 {
		t.Errorf("moving a tile released it %d times", calls)
	}
	if s.Remove(Hex{0, 0}) {
		t.Error("old key still removable")
	}
	if !s.Contains(Hex{1, 0}) || calls != 0 {
		t.Errorf("live tile affected: contains=%v released=%d", s.Contains(Hex{1, 0}), calls)
	}
	if got := storedCoords(s); !slices.Equal(got, []Hex{{1, 0}}) {
		t.Errorf("Coords = %v", got)
	}
}

func TestTileStoreRemove(t *testing.T) {
	calls := 0
	s := NewTileStore(func(*Tile) { calls++ })
	s.Add(Hex{2, -1}, NewTile(0, "A"))

	if s.Remove(Hex{5, 5}) {
		t.Error("Remove of an empty cell reported true")
	}
	if !s.Remove(Hex{2, -1}) {
		t.Error("Remove of an occupied cell reported false")
	}
	if s.Remove(Hex{2, -1}) {
		t.Error("second Remove reported true")
	}
	if calls != 1 {
		t.Errorf("release called %d times, want 1", calls)
	}
	if s.Contains(Hex{2, -1}) || s.Len() != 0 {
		t.Error("store still holds the removed tile")
	}
}

func TestTileStoreClear(t *testing.T) {
	calls := 0
	s := NewTileStore(func(*Tile) { calls++ })
	for h := range CoordinateRange(Hex{}, 2) {
		s.Add(h, NewTile(0, "A"))
	}
	s.Clear()
	if calls != 19 {
		t.Errorf("release called %d times, want 19", calls)
	}
	if s.Len() != 0 || len(slices.Collect(s.All())) != 0 {
		t.Error("store not empty after Clear")
	}
	// usable after Clear
	s.Add(Hex{1, 0}, NewTile(0, "B"))
	if !s.Contains(Hex{1, 0}) {
		t.Error("Add after Clear failed")
	}
}

// The store must agree with a plain reference map after any sequence of Add/Remove.
func TestTileStoreMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewTileStore(nil)
	ref := make(map[Hex]MaterialID)

	for i := 0; i < 5000; i++ {
		h := Hex{Q: rng.Intn(9) - 4, R: rng.Intn(9) - 4}
		if rng.Intn(3) == 0 {
			_, existed := ref[h]
			if got := s.Remove(h); got != existed {
				t.Fatalf("step %d: Remove(%v) = %v, want %v", i, h, got, existed)
			}
			delete(ref, h)
			continue
		}
		m := MaterialID(rune('A' + rng.Intn(5)))
		s.Add(h, NewTile(float64(i), m))
		ref[h] = m
	}

	if s.Len() != len(ref) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(ref))
	}
	for h := range CoordinateRange(Hex{}, 8) {
		_, want := ref[h]
		if s.Contains(h) != want {
			t.Errorf("Contains(%v) = %v, want %v", h, !want, want)
		}
	}
	seen := make(map[Hex]bool)
	for tile := range s.All() {
		h := tile.Coord()
		if seen[h] {
			t.Errorf("All yielded %v twice", h)
		}
		seen[h] = true
		if ref[h] != tile.Material {
			t.Errorf("tile %v material %q, want %q", h, tile.Material, ref[h])
		}
	}
	if len(seen) != len(ref) {
		t.Errorf("All yielded %d tiles, want %d", len(seen), len(ref))
	}
}

func TestTileStoreStableIteration(t *testing.T) {
	s := NewTileStore(nil)
	for h := range CoordinateRange(Hex{}, 3) {
		s.Add(h, NewTile(0, "A"))
	}
	s.Remove(Hex{0, 0})
	first := storedCoords(s)
	for i := 0; i < 5; i++ {
		if again := storedCoords(s); !slices.Equal(first, again) {
			t.Fatal("iteration order changed without mutation")
		}
	}
	for tile := range s.All() {
		if got, _ := s.TryGet(tile.Coord()); got != tile {
			t.Errorf("tile at %v is stored under another key", tile.Coord())
		}
	}
}

func TestTileMapSelection(t *testing.T) {
	m := NewTileMap(1, "grass")
	if _, ok := m.Selected(); ok {
		t.Error("new map has a selection")
	}
	m.Select(Hex{2, 3})
	if h, ok := m.Selected(); !ok || h != (Hex{2, 3}) {
		t.Errorf("Selected = %v, %v", h, ok)
	}
	m.ClearSelection()
	if _, ok := m.Selected(); ok {
		t.Error("selection survived ClearSelection")
	}
}

func TestTilePosition(t *testing.T) {
	s := NewTileStore(nil)
	tile := s.Add(Hex{-2, 1}, NewTile(4.5, "rock"))
	p := tile.Position()
	if p.Hex != (Hex{-2, 1}) || p.Elevation != 4.5 {
		t.Errorf("Position = %+v", p)
	}
}
