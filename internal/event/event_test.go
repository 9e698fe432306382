package event

import "testing"

type counter struct{ n int }

func (c *counter) OnEvent(Event) { c.n++ }

func TestDispatch(t *testing.T) {
	d := NewDispatcher()
	a, b := &counter{}, &counter{}
	d.Subscribe(MapChanged, a)
	d.Subscribe(MapChanged, b)
	d.Subscribe(ToolChanged, b)

	d.Dispatch(Event{Type: MapChanged})
	d.Dispatch(Event{Type: ToolChanged})
	d.Dispatch(Event{Type: MapSaved})

	if a.n != 1 || b.n != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a.n, b.n)
	}

	d.Unsubscribe(MapChanged, a)
	d.Dispatch(Event{Type: MapChanged})
	if a.n != 1 || b.n != 3 {
		t.Errorf("after unsubscribe a=%d b=%d", a.n, b.n)
	}
}

func TestMarker(t *testing.T) {
	d := NewDispatcher()
	var seen []int
	d.Subscribe(MapChanged, ListenerFunc(func(e Event) { seen = append(seen, e.Data.(int)) }))

	m := NewMarker(d)
	m.MarkChanged()
	m.MarkChanged()

	if m.Count() != 2 {
		t.Errorf("Count = %d", m.Count())
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("seen = %v", seen)
	}
}
