package anim

import "fmt"

// ID identifies a Def by its position in a Set.
type ID int

// NoID means no animation is selected.
const NoID ID = -1

// Select folds over defs in authoring order. Default defs always match,
// triggered defs match when all their triggers are true, and the last match
// wins. NoID is returned when nothing matched.
func Select(defs []Def, ts TriggerState) ID {
	result := NoID
	for i := range defs {
		if defs[i].IsDefault() || ts.All(defs[i].Triggers) {
			result = ID(i)
		}
	}
	return result
}

// Set is a validated, ordered list of animation definitions for one
// character. Later entries have higher priority.
type Set struct {
	defs []Def
}

// NewSet validates defs and takes ownership of the slice.
func NewSet(defs []Def) (*Set, error) {
	if len(defs) == 0 {
		return nil, ErrNoAnimations
	}
	for i := range defs {
		if err := defs[i].Validate(); err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
	}
	return &Set{defs: defs}, nil
}

// Len returns the number of definitions.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}

// Def returns the definition for id.
func (s *Set) Def(id ID) (*Def, bool) {
	if s == nil || id < 0 || int(id) >= len(s.defs) {
		return nil, false
	}
	return &s.defs[id], true
}

// Lookup finds the first definition with the given name.
func (s *Set) Lookup(name string) (ID, bool) {
	if s == nil {
		return NoID, false
	}
	for i := range s.defs {
		if s.defs[i].Name == name {
			return ID(i), true
		}
	}
	return NoID, false
}

// Select picks the active animation for ts.
func (s *Set) Select(ts TriggerState) (ID, error) {
	if s.Len() == 0 {
		return NoID, ErrNoAnimations
	}
	return Select(s.defs, ts), nil
}
