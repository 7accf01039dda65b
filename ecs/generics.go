package ecs

import "github.com/milk9111/flipbook/ecs/component"

func storeFor[T any](w *World, handle component.ComponentHandle[T], create bool) *sparseSet[T] {
	id := handle.Kind().ID()
	if s, ok := w.stores[id]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	w.stores[id] = s
	return s
}

// Add attaches value to e, replacing any previous component of that kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, handle, true).set(e, value)
	return nil
}

// Remove detaches the component of that kind from e.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s := storeFor(w, handle, false)
	return s != nil && s.remove(e)
}

// Has reports whether e carries a component of that kind.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s := storeFor(w, handle, false)
	return s != nil && s.has(e)
}

// Get returns the component of that kind on e.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	s := storeFor(w, handle, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

// ForEach calls fn for every entity carrying a component of that kind.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := storeFor(w, handle, false)
	if s == nil {
		return
	}
	ents := append([]Entity(nil), s.dense...)
	for _, e := range ents {
		if v, ok := s.get(e); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every entity carrying both component kinds.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := Get(w, e, hb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 calls fn for every entity carrying all three component kinds.
func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	if fn == nil {
		return
	}
	ForEach2(w, ha, hb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, hc); ok {
			fn(e, a, b, c)
		}
	})
}

// First returns the first entity carrying a component of that kind.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, *T, bool) {
	if w == nil {
		return 0, nil, false
	}
	s := storeFor(w, handle, false)
	if s == nil || len(s.dense) == 0 {
		return 0, nil, false
	}
	return s.dense[0], s.values[0], true
}
