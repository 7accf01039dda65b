package anim

import (
	"fmt"
	"strings"
)

// Trigger is a named boolean condition derived once per tick.
type Trigger uint8

const (
	TriggerMoving Trigger = iota
	TriggerAirborne
	TriggerAttacking

	triggerCount
)

var triggerNames = [triggerCount]string{
	TriggerMoving:    "moving",
	TriggerAirborne:  "airborne",
	TriggerAttacking: "attacking",
}

func (t Trigger) String() string {
	if !t.Valid() {
		return fmt.Sprintf("trigger(%d)", uint8(t))
	}
	return triggerNames[t]
}

// Valid reports whether t is one of the known triggers.
func (t Trigger) Valid() bool {
	return t < triggerCount
}

// Triggers returns every known trigger in declaration order.
func Triggers() []Trigger {
	out := make([]Trigger, 0, triggerCount)
	for t := Trigger(0); t < triggerCount; t++ {
		out = append(out, t)
	}
	return out
}

// ParseTrigger resolves an authored trigger name.
func ParseTrigger(name string) (Trigger, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range triggerNames {
		if n == key {
			return Trigger(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTrigger, name)
}

// TriggerEffect is an authored (trigger, value) pair.
type TriggerEffect struct {
	Trigger Trigger
	Value   bool
}

// TriggerState holds the current value of every known trigger.
type TriggerState [triggerCount]bool

// Get returns the value of t. Unknown triggers are never set.
func (s TriggerState) Get(t Trigger) bool {
	if !t.Valid() {
		return false
	}
	return s[t]
}

// Set assigns the value of t.
func (s *TriggerState) Set(t Trigger, v bool) {
	if s == nil || !t.Valid() {
		return
	}
	s[t] = v
}

// All reports whether every trigger in ts is currently true.
func (s TriggerState) All(ts []Trigger) bool {
	for _, t := range ts {
		if !s.Get(t) {
			return false
		}
	}
	return true
}

// Apply sets each effect in order; later effects win.
func (s *TriggerState) Apply(effects []TriggerEffect) {
	for _, eff := range effects {
		s.Set(eff.Trigger, eff.Value)
	}
}

func (s TriggerState) String() string {
	var b strings.Builder
	for t := Trigger(0); t < triggerCount; t++ {
		if t > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%t", t, s[t])
	}
	return b.String()
}

// Observation is what the input and physics layers report for one tick.
type Observation struct {
	MoveX     float64
	Airborne  bool
	Attacking bool
}

// UpdateTriggers derives a fresh TriggerState from this tick's observation.
func UpdateTriggers(obs Observation) TriggerState {
	var s TriggerState
	s[TriggerMoving] = obs.MoveX != 0
	s[TriggerAirborne] = obs.Airborne
	s[TriggerAttacking] = obs.Attacking
	return s
}
