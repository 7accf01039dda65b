package anim

import (
	"fmt"
	"image"
	"math"
)

// timerEpsilon absorbs rounding so six 1/60s ticks span exactly one frame.
const timerEpsilon = 1e-9

// frameState is the per-definition playback state.
type frameState struct {
	index    int
	timer    float64
	sprite   image.Rectangle
	finished bool
}

func (s *frameState) rewind(def *Def) {
	s.index = 0
	s.timer = FrameDuration
	s.sprite = def.Frames[0]
	s.finished = false
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithCatchUp makes Advance step through every frame whose duration has
// elapsed instead of at most one frame per call.
func WithCatchUp() PlayerOption {
	return func(p *Player) { p.catchUp = true }
}

// Player advances the active animation of one character. It owns one
// frameState per definition of its Set for the character's lifetime.
type Player struct {
	set      *Set
	states   []frameState
	current  ID
	previous ID
	catchUp  bool
}

// NewPlayer primes every definition on its first frame.
func NewPlayer(set *Set, opts ...PlayerOption) (*Player, error) {
	if set.Len() == 0 {
		return nil, ErrNoAnimations
	}
	p := &Player{
		set:      set,
		states:   make([]frameState, set.Len()),
		current:  NoID,
		previous: NoID,
	}
	for i := range p.states {
		def, _ := set.Def(ID(i))
		p.states[i].rewind(def)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Set returns the definitions the player was built for.
func (p *Player) Set() *Set {
	return p.set
}

// Current returns the animation advanced most recently.
func (p *Player) Current() ID {
	return p.current
}

// Previous returns the animation that was active before the last switch.
func (p *Player) Previous() ID {
	return p.previous
}

// FrameIndex returns the frame index of id, or -1 for an unknown id.
func (p *Player) FrameIndex(id ID) int {
	st, ok := p.state(id)
	if !ok {
		return -1
	}
	return st.index
}

// Sprite returns the cached frame of id.
func (p *Player) Sprite(id ID) (image.Rectangle, bool) {
	st, ok := p.state(id)
	if !ok {
		return image.Rectangle{}, false
	}
	return st.sprite, true
}

// Finished reports whether id is a non-looping animation that has fired its
// finish callbacks since it was last started.
func (p *Player) Finished(id ID) bool {
	st, ok := p.state(id)
	return ok && st.finished
}

func (p *Player) state(id ID) (*frameState, bool) {
	if p == nil || id < 0 || int(id) >= len(p.states) {
		return nil, false
	}
	return &p.states[id], true
}

// Advance plays id for delta seconds and returns the sprite to display.
// Switching to a different id than the previous call rewinds it to frame 0.
// delta must not be negative or NaN.
func (p *Player) Advance(id ID, delta float64) (image.Rectangle, error) {
	def, ok := p.set.Def(id)
	if !ok {
		return image.Rectangle{}, fmt.Errorf("%w: id %d", ErrNoActiveAnimation, id)
	}
	if math.IsNaN(delta) || delta < 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %v", ErrInvalidDelta, delta)
	}
	st := &p.states[id]

	if id != p.current {
		p.previous = p.current
		p.current = id
		st.rewind(def)
	}

	if st.index == 0 {
		invoke(def.OnStart, def)
	}

	if len(def.Frames) <= 1 {
		st.sprite = def.Frames[0]
		return st.sprite, nil
	}

	// Catch-up never steps more than one pass through the frames per call.
	st.timer -= delta
	for steps := 1; st.timer <= timerEpsilon; steps++ {
		p.step(def, st)
		if !p.catchUp || steps >= len(def.Frames) {
			st.timer = FrameDuration
			break
		}
		st.timer += FrameDuration
	}
	return st.sprite, nil
}

func (p *Player) step(def *Def, st *frameState) {
	last := len(def.Frames) - 1
	if st.index >= last {
		return
	}
	st.index++
	st.sprite = def.Frames[st.index]
	if st.index != last {
		return
	}
	if def.Loop {
		st.index = 0
		return
	}
	st.finished = true
	invoke(def.OnFinish, def)
}
