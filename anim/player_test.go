package anim

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestAdvanceSingleFrame(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("idle", 1, false))
	p := mustPlayer(t, s)
	want := s.defs[0].Frames[0]

	for i, delta := range []float64{0.01, 0.1, 0.5, 3} {
		got, err := p.Advance(0, delta)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("advance %d: got %v, want %v", i, got, want)
		}
	}
	if c.finishes != 0 {
		t.Fatalf("single-frame animation finished %d times", c.finishes)
	}
	if c.starts != 4 {
		t.Fatalf("expected start on every tick at frame 0, got %d", c.starts)
	}
}

func TestAdvanceNonLooping(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("attack", 3, false))
	p := mustPlayer(t, s)
	frames := s.defs[0].Frames

	steps := []struct {
		wantIndex    int
		wantSprite   image.Rectangle
		wantFinishes int
	}{
		{1, frames[1], 0},
		{2, frames[2], 1},
		{2, frames[2], 1},
	}
	for i, st := range steps {
		got, err := p.Advance(0, FrameDuration)
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if got != st.wantSprite || p.FrameIndex(0) != st.wantIndex {
			t.Fatalf("call %d: sprite %v index %d, want %v index %d", i+1, got, p.FrameIndex(0), st.wantSprite, st.wantIndex)
		}
		if c.finishes != st.wantFinishes {
			t.Fatalf("call %d: finishes %d, want %d", i+1, c.finishes, st.wantFinishes)
		}
	}
	if !p.Finished(0) {
		t.Fatalf("expected animation to report finished")
	}
	if c.starts != 1 {
		t.Fatalf("expected one start, got %d", c.starts)
	}
}

func TestAdvanceLooping(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("run", 3, true))
	p := mustPlayer(t, s)

	wantIndex := []int{1, 0, 1, 0}
	wantStarts := []int{1, 1, 2, 2}
	for i := range wantIndex {
		if _, err := p.Advance(0, FrameDuration); err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if got := p.FrameIndex(0); got != wantIndex[i] {
			t.Fatalf("call %d: index %d, want %d", i+1, got, wantIndex[i])
		}
		if c.starts != wantStarts[i] {
			t.Fatalf("call %d: starts %d, want %d", i+1, c.starts, wantStarts[i])
		}
	}
	if c.finishes != 0 {
		t.Fatalf("looping animation finished %d times", c.finishes)
	}
	if p.Finished(0) {
		t.Fatalf("looping animation must never report finished")
	}
}

func TestAdvanceAccumulatesSmallDeltas(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("run", 4, true))
	p := mustPlayer(t, s)

	for i := 0; i < 4; i++ {
		if _, err := p.Advance(0, 0.02); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if got := p.FrameIndex(0); got != 0 {
		t.Fatalf("advanced early: index %d", got)
	}
	if _, err := p.Advance(0, 0.03); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := p.FrameIndex(0); got != 1 {
		t.Fatalf("expected index 1 after 0.11s, got %d", got)
	}
	if c.starts != 5 {
		t.Fatalf("expected a start on each tick spent at frame 0, got %d", c.starts)
	}
}

func TestAdvanceSingleStepPerCall(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("run", 5, false))

	p := mustPlayer(t, s)
	if _, err := p.Advance(0, 0.35); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := p.FrameIndex(0); got != 1 {
		t.Fatalf("default player should advance one frame, got %d", got)
	}

	p = mustPlayer(t, s, WithCatchUp())
	if _, err := p.Advance(0, 0.35); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := p.FrameIndex(0); got != 3 {
		t.Fatalf("catch-up player should advance three frames, got %d", got)
	}
}

func TestAdvanceSixTicksPerFrameAt60TPS(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("run", 4, false))
	p := mustPlayer(t, s)

	ticks := 0
	for p.FrameIndex(0) == 0 && ticks < 100 {
		if _, err := p.Advance(0, 1.0/60); err != nil {
			t.Fatalf("advance: %v", err)
		}
		ticks++
	}
	if ticks != 6 {
		t.Fatalf("expected frame 0 to last 6 ticks, got %d", ticks)
	}

	for i := 0; i < 6; i++ {
		if _, err := p.Advance(0, 1.0/60); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if got := p.FrameIndex(0); got != 2 {
		t.Fatalf("expected index 2 after 12 ticks, got %d", got)
	}
}

func TestAdvanceCatchUpIsBounded(t *testing.T) {
	cases := []struct {
		name  string
		loop  bool
		delta float64
	}{
		{name: "inf_loop", loop: true, delta: math.Inf(1)},
		{name: "huge_loop", loop: true, delta: 1e9},
		{name: "inf_once", loop: false, delta: math.Inf(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c counter
			s := mustSet(t, c.def("run", 4, tc.loop))
			p := mustPlayer(t, s, WithCatchUp())
			if _, err := p.Advance(0, tc.delta); err != nil {
				t.Fatalf("advance: %v", err)
			}
			if idx := p.FrameIndex(0); idx < 0 || idx > 3 {
				t.Fatalf("index out of range: %d", idx)
			}
			if !tc.loop && (c.finishes != 1 || p.FrameIndex(0) != 3) {
				t.Fatalf("expected one finish on the last frame, got %d finishes at %d", c.finishes, p.FrameIndex(0))
			}

			// The timer starts over after the capped pass.
			before := p.FrameIndex(0)
			if _, err := p.Advance(0, FrameDuration/2); err != nil {
				t.Fatalf("advance: %v", err)
			}
			if p.FrameIndex(0) != before {
				t.Fatalf("half a frame advanced from %d to %d", before, p.FrameIndex(0))
			}
		})
	}
}

func TestAdvanceRejectsInvalidDelta(t *testing.T) {
	var c counter
	p := mustPlayer(t, mustSet(t, c.def("run", 4, true)))
	for _, delta := range []float64{math.NaN(), -FrameDuration} {
		if _, err := p.Advance(0, delta); !errors.Is(err, ErrInvalidDelta) {
			t.Fatalf("Advance(%v): expected ErrInvalidDelta, got %v", delta, err)
		}
	}
	if c.starts != 0 {
		t.Fatalf("rejected advance ran %d start callbacks", c.starts)
	}
}

func TestAdvanceSwitchResets(t *testing.T) {
	var x, y counter
	s := mustSet(t, x.def("x", 3, false), y.def("y", 3, false))
	p := mustPlayer(t, s)

	for i := 0; i < 2; i++ {
		if _, err := p.Advance(0, FrameDuration); err != nil {
			t.Fatalf("advance x: %v", err)
		}
	}
	if p.FrameIndex(0) != 2 || x.starts != 1 {
		t.Fatalf("x: index %d starts %d", p.FrameIndex(0), x.starts)
	}

	if _, err := p.Advance(1, 0.01); err != nil {
		t.Fatalf("advance y: %v", err)
	}
	if p.FrameIndex(1) != 0 || y.starts != 1 {
		t.Fatalf("y: index %d starts %d", p.FrameIndex(1), y.starts)
	}
	if p.Current() != 1 || p.Previous() != 0 {
		t.Fatalf("current %d previous %d", p.Current(), p.Previous())
	}

	sprite, err := p.Advance(0, 0.01)
	if err != nil {
		t.Fatalf("advance x again: %v", err)
	}
	if p.FrameIndex(0) != 0 {
		t.Fatalf("x progress resumed at index %d", p.FrameIndex(0))
	}
	if sprite != s.defs[0].Frames[0] {
		t.Fatalf("x sprite %v, want first frame", sprite)
	}
	if x.starts != 2 {
		t.Fatalf("expected start on switch back to x, got %d", x.starts)
	}
	if p.Finished(0) {
		t.Fatalf("finished flag must clear on restart")
	}

	// staying on the same animation does not reset it
	if _, err := p.Advance(0, FrameDuration); err != nil {
		t.Fatalf("advance x: %v", err)
	}
	if p.FrameIndex(0) != 1 || x.starts != 3 {
		t.Fatalf("x: index %d starts %d", p.FrameIndex(0), x.starts)
	}
}

func TestAdvanceCallbackOrder(t *testing.T) {
	var order []string
	def := Def{
		Name:   "hit",
		Speed:  1,
		Frames: testFrames(2),
		OnStart: []Callback{
			func(*Def) { order = append(order, "start-a") },
			nil,
			func(*Def) { order = append(order, "start-b") },
		},
		OnFinish: []Callback{
			func(d *Def) { order = append(order, "finish-"+d.Name) },
		},
	}
	p := mustPlayer(t, mustSet(t, def))
	if _, err := p.Advance(0, FrameDuration); err != nil {
		t.Fatalf("advance: %v", err)
	}
	want := []string{"start-a", "start-b", "finish-hit"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestAdvanceInvalidID(t *testing.T) {
	var c counter
	p := mustPlayer(t, mustSet(t, c.def("idle", 1, true)))
	for _, id := range []ID{NoID, 1, 42} {
		if _, err := p.Advance(id, FrameDuration); !errors.Is(err, ErrNoActiveAnimation) {
			t.Fatalf("Advance(%d): expected ErrNoActiveAnimation, got %v", id, err)
		}
	}
}

func TestNewPlayerPrimesFirstFrame(t *testing.T) {
	var c counter
	s := mustSet(t, c.def("idle", 1, true), c.def("run", 4, true, TriggerMoving))
	p := mustPlayer(t, s)
	for i := 0; i < s.Len(); i++ {
		sprite, ok := p.Sprite(ID(i))
		if !ok || sprite != s.defs[i].Frames[0] {
			t.Fatalf("def %d: sprite %v ok=%v", i, sprite, ok)
		}
	}
	if p.Current() != NoID {
		t.Fatalf("fresh player has current %d", p.Current())
	}
	if _, err := NewPlayer(nil); !errors.Is(err, ErrNoAnimations) {
		t.Fatalf("NewPlayer(nil): %v", err)
	}
}
