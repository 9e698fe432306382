package persistence

import (
	"log/slog"

	"go-hex-sculptor/internal/event"
	"go-hex-sculptor/pkg/hexmap"
)

// Saver writes a map somewhere durable. *DB is the production Saver.
type Saver interface {
	SaveMap(m *hexmap.TileMap) error
}

// Autosaver listens for MapChanged and saves the map once Interval seconds
// have passed since the first unsaved change. It runs on the frame loop; Update does the work.
type Autosaver struct {
	saver    Saver
	m        *hexmap.TileMap
	events   *event.Dispatcher
	interval float64

	pending bool
	elapsed float64
}

// NewAutosaver subscribes to MapChanged on d.
func NewAutosaver(s Saver, m *hexmap.TileMap, d *event.Dispatcher, interval float64) *Autosaver {
	a := &Autosaver{saver: s, m: m, events: d, interval: interval}
	d.Subscribe(event.MapChanged, a)
	return a
}

// OnEvent implements event.Listener.
func (a *Autosaver) OnEvent(e event.Event) {
	if e.Type != event.MapChanged {
		return
	}
	if !a.pending {
		a.pending = true
		a.elapsed = 0
	}
}

// Pending reports whether there are unsaved changes.
func (a *Autosaver) Pending() bool { return a.pending }

// Update advances the timer and saves when it runs out.
func (a *Autosaver) Update(dt float64) {
	if !a.pending {
		return
	}
	a.elapsed += dt
	if a.elapsed >= a.interval {
		_ = a.Flush()
	}
}

// Flush saves now if anything is pending. A failed save stays pending and is retried after another interval.
func (a *Autosaver) Flush() error {
	if !a.pending {
		return nil
	}
	if err := a.saver.SaveMap(a.m); err != nil {
		slog.Error("autosave failed", "error", err)
		a.elapsed = 0
		a.events.Dispatch(event.Event{Type: event.SaveFailed, Data: err})
		return err
	}
	a.pending = false
	a.elapsed = 0
	slog.Info("map autosaved", "id", a.m.ID, "tiles", a.m.Tiles.Len())
	a.events.Dispatch(event.Event{Type: event.MapSaved, Data: a.m.Tiles.Len()})
	return nil
}

// Close flushes pending changes and unsubscribes.
func (a *Autosaver) Close() error {
	a.events.Unsubscribe(event.MapChanged, a)
	return a.Flush()
}
