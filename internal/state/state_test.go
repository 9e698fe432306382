package state

import (
	"errors"
	"slices"
	"testing"
)

type recorder struct {
	log []string
}

func (r *recorder) add(s string) { r.log = append(r.log, s) }

func newRecordedMachine() (*Machine[*recorder], *recorder) {
	rec := &recorder{}
	m := NewMachine(rec)
	for _, name := range []Name{"a", "b"} {
		n := string(name)
		m.AddState(name).
			OnEnter(func(r *recorder, prev Name) { r.add("enter " + n + " from " + string(prev)) }).
			OnExit(func(r *recorder, next Name) { r.add("exit " + n + " to " + string(next)) }).
			OnUpdate(func(r *recorder, dt float64) { r.add("update " + n) })
	}
	return m, rec
}

func TestNoInitialState(t *testing.T) {
	m, rec := newRecordedMachine()
	if m.Current() != "" {
		t.Errorf("Current = %q before first change", m.Current())
	}
	m.Update(0.1)
	if err := m.TriggerEvent("anything", nil); err != nil {
		t.Errorf("TriggerEvent with no state: %v", err)
	}
	if len(rec.log) != 0 {
		t.Errorf("callbacks ran without an active state: %v", rec.log)
	}
}

func TestChangeStateOrder(t *testing.T) {
	m, rec := newRecordedMachine()
	if err := m.ChangeState("a"); err != nil {
		t.Fatal(err)
	}
	if err := m.ChangeState("b"); err != nil {
		t.Fatal(err)
	}
	m.Update(0.016)

	want := []string{"enter a from ", "exit a to b", "enter b from a", "update b"}
	if !slices.Equal(rec.log, want) {
		t.Errorf("log = %q, want %q", rec.log, want)
	}
	if m.Current() != "b" {
		t.Errorf("Current = %q", m.Current())
	}
}

func TestChangeToCurrentIsNoop(t *testing.T) {
	m, rec := newRecordedMachine()
	_ = m.ChangeState("a")
	rec.log = nil
	m.Update(1)

	if err := m.ChangeState("a"); err != nil {
		t.Fatalf("ChangeState(current) = %v", err)
	}
	if !slices.Equal(rec.log, []string{"update a"}) {
		t.Errorf("ChangeState(current) ran callbacks: %q", rec.log)
	}
}

func TestChangeToUnknownState(t *testing.T) {
	m, rec := newRecordedMachine()
	_ = m.ChangeState("a")
	rec.log = nil

	err := m.ChangeState("missing")
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("err = %v, want ErrUnknownState", err)
	}
	if m.Current() != "a" {
		t.Errorf("Current = %q after failed change", m.Current())
	}
	if len(rec.log) != 0 {
		t.Errorf("failed change ran callbacks: %q", rec.log)
	}
}

func TestReentrantChangeRejected(t *testing.T) {
	var inner error
	var m *Machine[int]
	m = NewMachine(0)
	m.AddState("a")
	m.AddState("b").OnEnter(func(int, Name) { inner = m.ChangeState("a") })
	m.AddState("c").OnExit(func(int, Name) { inner = m.ChangeState("a") })

	if err := m.ChangeState("b"); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrReentrantTransition) {
		t.Errorf("change from OnEnter = %v, want ErrReentrantTransition", inner)
	}
	if m.Current() != "b" {
		t.Errorf("Current = %q, want b", m.Current())
	}

	inner = nil
	_ = m.ChangeState("c")
	if err := m.ChangeState("b"); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrReentrantTransition) {
		t.Errorf("change from OnExit = %v, want ErrReentrantTransition", inner)
	}
	// the guard must be released afterwards
	if err := m.ChangeState("a"); err != nil {
		t.Errorf("change after transition = %v", err)
	}
}

type click struct{ x, y int }

func TestTriggerEvent(t *testing.T) {
	var got []click
	pings := 0
	m := NewMachine("ctx")
	s := m.AddState("tool")
	Handle(s, "click", func(ctx string, c click) { got = append(got, c) })
	HandleEmpty(s, "ping", func(string) { pings++ })
	m.AddState("idle")

	_ = m.ChangeState("tool")
	if err := m.TriggerEvent("click", click{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := m.TriggerEvent("ping", nil); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (click{1, 2}) || pings != 1 {
		t.Errorf("got %v, pings %d", got, pings)
	}

	err := m.TriggerEvent("click", "not a click")
	if !errors.Is(err, ErrPayloadType) {
		t.Errorf("wrong payload err = %v", err)
	}
	if len(got) != 1 {
		t.Error("handler ran with a wrong payload")
	}
}

func TestUnhandledEventIsIgnored(t *testing.T) {
	m, rec := newRecordedMachine()
	_ = m.ChangeState("a")
	rec.log = nil
	if err := m.TriggerEvent("nobody-listens", 42); err != nil {
		t.Errorf("unhandled event returned %v", err)
	}
	if m.Current() != "a" || len(rec.log) != 0 {
		t.Errorf("unhandled event changed something: %q, %q", m.Current(), rec.log)
	}
}

func TestHandlersAreScopedToActiveState(t *testing.T) {
	hits := 0
	m := NewMachine(struct{}{})
	HandleEmpty(m.AddState("a"), "poke", func(struct{}) { hits++ })
	m.AddState("b")

	_ = m.ChangeState("b")
	_ = m.TriggerEvent("poke", nil)
	_ = m.ChangeState("a")
	_ = m.TriggerEvent("poke", nil)
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestHas(t *testing.T) {
	m, _ := newRecordedMachine()
	if !m.Has("a") || m.Has("z") {
		t.Error("Has is wrong")
	}
}
