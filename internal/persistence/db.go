// Package persistence stores tile maps in SQLite.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"go-hex-sculptor/pkg/hexmap"
)

// ErrNotFound is returned when a map id has no saved row.
var ErrNotFound = errors.New("map not found")

// DB wraps a SQLite connection for map storage.
type DB struct {
	conn *sqlx.DB
}

// MapInfo summarizes a saved map.
type MapInfo struct {
	ID      uuid.UUID
	Tiles   int
	SavedAt time.Time
}

type mapRow struct {
	ID          string  `db:"id"`
	HexSize     float64 `db:"hex_size"`
	Material    string  `db:"material"`
	ShowCoords  bool    `db:"show_coords"`
	CoordFormat string  `db:"coord_format"`
	SavedAt     int64   `db:"saved_at"`
}

type tileRow struct {
	Q         int     `db:"q"`
	R         int     `db:"r"`
	Elevation float64 `db:"elevation"`
	Material  string  `db:"material"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	conn, err := sqlx.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// один писатель, иначе SQLITE_BUSY на параллельных транзакциях
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		hex_size REAL NOT NULL,
		material TEXT NOT NULL,
		show_coords INTEGER NOT NULL,
		coord_format TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		map_id TEXT NOT NULL,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		elevation REAL NOT NULL,
		material TEXT NOT NULL,
		PRIMARY KEY (map_id, q, r)
	);

	CREATE TABLE IF NOT EXISTS editor_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMap writes m and all its tiles (full replace) and records it as the last saved map.
func (db *DB) SaveMap(m *hexmap.TileMap) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO maps
		(id, hex_size, material, show_coords, coord_format, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID.String(), m.HexSize, string(m.Material), m.ShowCoordinates,
		m.CoordFormat.String(), time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert map: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM tiles WHERE map_id = ?", m.ID.String()); err != nil {
		return fmt.Errorf("delete tiles: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO tiles (map_id, q, r, elevation, material) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for tile := range m.Tiles.All() {
		c := tile.Coord()
		if _, err := stmt.Exec(m.ID.String(), c.Q, c.R, tile.Elevation, string(tile.Material)); err != nil {
			return fmt.Errorf("insert tile %v: %w", c, err)
		}
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO editor_meta (key, value) VALUES ('last_map', ?)", m.ID.String()); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("map saved", "id", m.ID, "tiles", m.Tiles.Len())
	return nil
}

// LoadMap reads the map saved under id. Tiles come back without visuals.
func (db *DB) LoadMap(id uuid.UUID) (*hexmap.TileMap, error) {
	var row mapRow
	err := db.conn.Get(&row, "SELECT id, hex_size, material, show_coords, coord_format, saved_at FROM maps WHERE id = ?", id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	format, err := hexmap.ParseCoordFormat(row.CoordFormat)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	var tiles []tileRow
	err = db.conn.Select(&tiles, "SELECT q, r, elevation, material FROM tiles WHERE map_id = ? ORDER BY q, r", id.String())
	if err != nil {
		return nil, fmt.Errorf("load tiles %s: %w", id, err)
	}

	m := hexmap.NewTileMap(row.HexSize, hexmap.MaterialID(row.Material))
	m.ID = id
	m.ShowCoordinates = row.ShowCoords
	m.CoordFormat = format
	for _, t := range tiles {
		m.Tiles.Add(hexmap.Hex{Q: t.Q, R: t.R}, hexmap.NewTile(t.Elevation, hexmap.MaterialID(t.Material)))
	}
	slog.Debug("map loaded", "id", id, "tiles", len(tiles))
	return m, nil
}

// LastMap returns the id of the most recently saved map. ok is false on a fresh database.
func (db *DB) LastMap() (id uuid.UUID, ok bool, err error) {
	var value string
	err = db.conn.Get(&value, "SELECT value FROM editor_meta WHERE key = 'last_map'")
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err = uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("last_map: %w", err)
	}
	return id, true, nil
}

// ListMaps returns every saved map, newest first.
func (db *DB) ListMaps() ([]MapInfo, error) {
	var rows []struct {
		ID      string `db:"id"`
		SavedAt int64  `db:"saved_at"`
		Tiles   int    `db:"tiles"`
	}
	err := db.conn.Select(&rows, `SELECT m.id, m.saved_at,
		(SELECT COUNT(*) FROM tiles t WHERE t.map_id = m.id) AS tiles
		FROM maps m ORDER BY m.saved_at DESC`)
	if err != nil {
		return nil, err
	}

	out := make([]MapInfo, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("map id %q: %w", r.ID, err)
		}
		out = append(out, MapInfo{ID: id, Tiles: r.Tiles, SavedAt: time.Unix(0, r.SavedAt)})
	}
	return out, nil
}

// DeleteMap removes a map and its tiles.
func (db *DB) DeleteMap(id uuid.UUID) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tiles WHERE map_id = ?", id.String()); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM maps WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	if _, err := tx.Exec("DELETE FROM editor_meta WHERE key = 'last_map' AND value = ?", id.String()); err != nil {
		return err
	}
	return tx.Commit()
}
