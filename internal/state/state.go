// internal/state/state.go
package state

import (
	"errors"
	"fmt"
)

// Name identifies a registered state.
type Name string

// EventName identifies an event a state may handle.
type EventName string

var (
	ErrUnknownState        = errors.New("unknown state")
	ErrReentrantTransition = errors.New("state change requested during enter/exit")
	ErrPayloadType         = errors.New("unexpected event payload type")
)

// HandlerFunc receives an event payload. It returns an error only for a payload it cannot accept.
type HandlerFunc[C any] func(ctx C, payload any) error

// State описывает одно состояние машины: колбэки жизненного цикла и обработчики событий.
type State[C any] struct {
	name     Name
	enter    func(ctx C, prev Name)
	update   func(ctx C, dt float64)
	exit     func(ctx C, next Name)
	handlers map[EventName]HandlerFunc[C]
}

// Name returns the name the state was registered under.
func (s *State[C]) Name() Name { return s.name }

// OnEnter sets the callback run when the state becomes active. prev is empty on the first change.
func (s *State[C]) OnEnter(fn func(ctx C, prev Name)) *State[C] {
	s.enter = fn
	return s
}

// OnUpdate sets the per-frame callback.
func (s *State[C]) OnUpdate(fn func(ctx C, dt float64)) *State[C] {
	s.update = fn
	return s
}

// OnExit sets the callback run when the state stops being active.
func (s *State[C]) OnExit(fn func(ctx C, next Name)) *State[C] {
	s.exit = fn
	return s
}

// On registers an untyped handler for event, replacing any previous one.
func (s *State[C]) On(event EventName, fn HandlerFunc[C]) *State[C] {
	s.handlers[event] = fn
	return s
}

// Handle registers a handler whose payload must be a P.
func Handle[C, P any](s *State[C], event EventName, fn func(ctx C, payload P)) *State[C] {
	return s.On(event, func(ctx C, payload any) error {
		p, ok := payload.(P)
		if !ok {
			return fmt.Errorf("%s in state %s: got %T: %w", event, s.name, payload, ErrPayloadType)
		}
		fn(ctx, p)
		return nil
	})
}

// HandleEmpty registers a handler for an event that carries no payload. Any payload is ignored.
func HandleEmpty[C any](s *State[C], event EventName, fn func(ctx C)) *State[C] {
	return s.On(event, func(ctx C, _ any) error {
		fn(ctx)
		return nil
	})
}

// Machine переключает зарегистрированные состояния. Начального состояния нет до первого ChangeState.
// Every callback receives the context value the machine was created with.
type Machine[C any] struct {
	ctx           C
	states        map[Name]*State[C]
	current       *State[C]
	transitioning bool
}

// NewMachine создаёт новую машину состояний без начального состояния
func NewMachine[C any](ctx C) *Machine[C] {
	return &Machine[C]{
		ctx:    ctx,
		states: make(map[Name]*State[C]),
	}
}

// AddState registers a state under name and returns it for configuration.
// Registering an existing name replaces that state's definition.
func (m *Machine[C]) AddState(name Name) *State[C] {
	s := &State[C]{
		name:     name,
		handlers: make(map[EventName]HandlerFunc[C]),
	}
	if m.current != nil && m.current.name == name {
		m.current = s
	}
	m.states[name] = s
	return s
}

// Has reports whether name is registered.
func (m *Machine[C]) Has(name Name) bool {
	_, ok := m.states[name]
	return ok
}

// Current returns the active state's name, or "" before the first ChangeState.
func (m *Machine[C]) Current() Name {
	if m.current == nil {
		return ""
	}
	return m.current.name
}

// ChangeState exits the current state and enters name. Changing to the active
// state does nothing. On error the machine stays where it was.
func (m *Machine[C]) ChangeState(name Name) error {
	if m.transitioning {
		return fmt.Errorf("change to %s: %w", name, ErrReentrantTransition)
	}
	next, ok := m.states[name]
	if !ok {
		return fmt.Errorf("change to %s: %w", name, ErrUnknownState)
	}
	if m.current == next {
		return nil
	}

	m.transitioning = true
	defer func() { m.transitioning = false }()

	var prevName Name
	if prev := m.current; prev != nil {
		prevName = prev.name
		if prev.exit != nil {
			prev.exit(m.ctx, name) // Выход из текущего состояния, если оно есть
		}
	}
	m.current = next
	if next.enter != nil {
		next.enter(m.ctx, prevName)
	}
	return nil
}

// TriggerEvent dispatches payload to the active state's handler for event.
// Events nobody handles are dropped without error.
func (m *Machine[C]) TriggerEvent(event EventName, payload any) error {
	if m.current == nil {
		return nil
	}
	h, ok := m.current.handlers[event]
	if !ok {
		return nil
	}
	return h(m.ctx, payload)
}

// Update обновляет текущее состояние
func (m *Machine[C]) Update(dt float64) {
	if m.current == nil {
		return
	}
	if m.current.update != nil {
		m.current.update(m.ctx, dt)
	}
}
