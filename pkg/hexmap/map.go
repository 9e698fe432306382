// pkg/hexmap/map.go
package hexmap

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// MaterialID names a material in the renderer's palette.
type MaterialID string

// VisualID is a handle to a tile's rendered representation. Zero means none.
type VisualID uint64

// Tile is one occupied cell. Its coordinate is the key it was stored under and cannot be edited.
type Tile struct {
	coord     Hex
	Elevation float64
	Material  MaterialID
	Visual    VisualID
}

// NewTile creates an unbound tile; the store assigns its coordinate on Add.
func NewTile(elevation float64, material MaterialID) *Tile {
	return &Tile{Elevation: elevation, Material: material}
}

// Coord returns the key the tile is stored under.
func (t *Tile) Coord() Hex { return t.coord }

// Position returns the tile's coordinate together with its elevation.
func (t *Tile) Position() HexPosition {
	return HexPosition{Hex: t.coord, Elevation: t.Elevation}
}

// HexPosition is a coordinate with a world height, whether or not a tile exists there.
type HexPosition struct {
	Hex
	Elevation float64
}

// TileStore maps coordinates to tiles, at most one per coordinate.
// Iteration order is stable until the next mutation.
type TileStore struct {
	tiles   map[Hex]*Tile
	order   []Hex
	index   map[Hex]int
	release func(*Tile)
}

// NewTileStore creates an empty store. release is called for every tile that leaves
// the store (overwrite, Remove, Clear) so its visual can be freed; it may be nil.
func NewTileStore(release func(*Tile)) *TileStore {
	return &TileStore{
		tiles:   make(map[Hex]*Tile),
		index:   make(map[Hex]int),
		release: release,
	}
}

// SetRelease replaces the release hook.
func (s *TileStore) SetRelease(release func(*Tile)) {
	s.release = release
}

// TryGet returns the tile at h.
func (s *TileStore) TryGet(h Hex) (*Tile, bool) {
	t, ok := s.tiles[h]
	return t, ok
}

// Contains reports whether a tile exists at h.
func (s *TileStore) Contains(h Hex) bool {
	_, ok := s.tiles[h]
	return ok
}

// Len returns the number of tiles.
func (s *TileStore) Len() int { return len(s.tiles) }

// Add stores tile under h. An existing tile at h is released and replaced, never merged.
// A tile already stored under another coordinate is moved: its old key is dropped without release.
func (s *TileStore) Add(h Hex, tile *Tile) *Tile {
	if tile.coord != h && s.tiles[tile.coord] == tile {
		s.unlink(tile.coord)
	}
	tile.coord = h
	if prev, ok := s.tiles[h]; ok {
		if prev != tile {
			s.doRelease(prev)
		}
		s.tiles[h] = tile
		return tile
	}
	s.tiles[h] = tile
	s.index[h] = len(s.order)
	s.order = append(s.order, h)
	return tile
}

// Remove deletes the tile at h and reports whether there was one.
func (s *TileStore) Remove(h Hex) bool {
	tile, ok := s.tiles[h]
	if !ok {
		return false
	}
	s.unlink(h)
	s.doRelease(tile)
	return true
}

// unlink drops h from the store without releasing its tile.
func (s *TileStore) unlink(h Hex) {
	delete(s.tiles, h)

	// swap-remove keeps the order slice dense
	i := s.index[h]
	last := len(s.order) - 1
	if i != last {
		moved := s.order[last]
		s.order[i] = moved
		s.index[moved] = i
	}
	s.order = s.order[:last]
	delete(s.index, h)
}

// Clear removes every tile, releasing each.
func (s *TileStore) Clear() {
	old := s.order
	tiles := s.tiles
	s.tiles = make(map[Hex]*Tile)
	s.index = make(map[Hex]int)
	s.order = nil
	for _, h := range old {
		s.doRelease(tiles[h])
	}
}

// All yields every tile. The store must not be mutated while ranging; collect first if needed.
func (s *TileStore) All() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, h := range s.order {
			if !yield(s.tiles[h]) {
				return
			}
		}
	}
}

func (s *TileStore) doRelease(t *Tile) {
	if s.release != nil && t != nil {
		s.release(t)
	}
}

// TileMap is the editable document: the tiles plus map-wide settings.
type TileMap struct {
	ID              uuid.UUID
	Tiles           *TileStore
	HexSize         float64
	Material        MaterialID
	ShowCoordinates bool
	CoordFormat     CoordFormat

	selected    Hex
	hasSelected bool
}

// NewTileMap creates an empty map with a fresh ID.
func NewTileMap(hexSize float64, material MaterialID) *TileMap {
	return &TileMap{
		ID:       uuid.New(),
		Tiles:    NewTileStore(nil),
		HexSize:  hexSize,
		Material: material,
	}
}

// Selected returns the selected coordinate, if any.
func (m *TileMap) Selected() (Hex, bool) {
	return m.selected, m.hasSelected
}

// Select marks h as the selected coordinate.
func (m *TileMap) Select(h Hex) {
	m.selected = h
	m.hasSelected = true
}

// ClearSelection drops the selection.
func (m *TileMap) ClearSelection() {
	m.selected = Hex{}
	m.hasSelected = false
}

// String returns a summary of the map.
func (m *TileMap) String() string {
	return fmt.Sprintf("TileMap(id=%s, hexSize=%.2f, tiles=%d)", m.ID, m.HexSize, m.Tiles.Len())
}
