package anim

import (
	"fmt"
	"image"
)

// FrameDuration is the time in seconds between successive frames.
const FrameDuration = 0.1

// Callback is invoked synchronously at an animation lifecycle point.
type Callback func(def *Def)

// Def is an authored flipbook animation. Frames are source rectangles on
// the character's sprite sheet. A Def is not mutated once it is part of a Set.
type Def struct {
	Name       string
	Triggers   []Trigger
	Speed      float64
	Loop       bool
	MustFinish bool
	Frames     []image.Rectangle

	// FinishTriggers are carried as authored data. The player never applies
	// them; see Controller.WithFinishTriggers.
	FinishTriggers []TriggerEffect

	OnStart  []Callback
	OnFinish []Callback
}

// IsDefault reports whether def has no required triggers.
func (d *Def) IsDefault() bool {
	return len(d.Triggers) == 0
}

// Validate checks the load-time invariants of a definition.
func (d *Def) Validate() error {
	if len(d.Frames) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyFrames, d.Name)
	}
	if d.Speed <= 0 {
		return fmt.Errorf("%w: %q has speed %v", ErrInvalidSpeed, d.Name, d.Speed)
	}
	for _, t := range d.Triggers {
		if !t.Valid() {
			return fmt.Errorf("%w: %q references %s", ErrUnknownTrigger, d.Name, t)
		}
	}
	for _, eff := range d.FinishTriggers {
		if !eff.Trigger.Valid() {
			return fmt.Errorf("%w: %q finish effect references %s", ErrUnknownTrigger, d.Name, eff.Trigger)
		}
	}
	return nil
}

func invoke(callbacks []Callback, def *Def) {
	for _, cb := range callbacks {
		if cb != nil {
			cb(def)
		}
	}
}
