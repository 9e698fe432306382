// internal/event/event.go
package event

// EventType names an editor event.
type EventType string

// Event is what listeners receive.
type Event struct {
	Type EventType
	Data any // полезная нагрузка, зависит от Type
}

// Listener получает события, на которые подписан.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher delivers events synchronously, in subscription order.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes listener. Listeners must be comparable (pointers, not funcs).
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

func (d *Dispatcher) Dispatch(event Event) {
	if listeners, exists := d.listeners[event.Type]; exists {
		for _, listener := range listeners {
			listener.OnEvent(event)
		}
	}
}

// Marker turns MarkChanged calls into MapChanged events.
type Marker struct {
	dispatcher *Dispatcher
	count      int
}

func NewMarker(d *Dispatcher) *Marker {
	return &Marker{dispatcher: d}
}

// MarkChanged dispatches MapChanged with the running change count as data.
func (m *Marker) MarkChanged() {
	m.count++
	m.dispatcher.Dispatch(Event{Type: MapChanged, Data: m.count})
}

// Count returns how many times MarkChanged was called.
func (m *Marker) Count() int { return m.count }
