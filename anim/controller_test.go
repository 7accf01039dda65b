package anim

import (
	"errors"
	"testing"
)

func mustController(t *testing.T, s *Set, opts ...ControllerOption) *Controller {
	t.Helper()
	c, err := NewController(s, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func observe(t *testing.T, c *Controller, obs Observation) ID {
	t.Helper()
	id, err := c.Observe(obs)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	return id
}

func step(t *testing.T, c *Controller) {
	t.Helper()
	if _, err := c.Step(FrameDuration); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestControllerStepBeforeObserve(t *testing.T) {
	var k counter
	c := mustController(t, mustSet(t, k.def("idle", 1, true)))
	if _, err := c.Step(FrameDuration); !errors.Is(err, ErrNoActiveAnimation) {
		t.Fatalf("expected ErrNoActiveAnimation, got %v", err)
	}
}

func TestControllerPipeline(t *testing.T) {
	var idle, run, jump counter
	s := mustSet(t,
		idle.def("idle", 1, true),
		run.def("run", 4, true, TriggerMoving),
		jump.def("jump", 2, false, TriggerAirborne),
	)
	c := mustController(t, s)

	ticks := []struct {
		obs  Observation
		want string
	}{
		{Observation{}, "idle"},
		{Observation{MoveX: 1}, "run"},
		{Observation{MoveX: 1, Airborne: true}, "jump"},
		{Observation{MoveX: -1}, "run"},
		{Observation{}, "idle"},
	}
	for i, tk := range ticks {
		observe(t, c, tk.obs)
		step(t, c)
		def, ok := c.Active()
		if !ok || def.Name != tk.want {
			t.Fatalf("tick %d: active %v, want %s", i, def, tk.want)
		}
		if got := c.Player().Current(); got != c.Selected() {
			t.Fatalf("tick %d: player on %d, selection %d", i, got, c.Selected())
		}
	}
	if run.starts != 2 || jump.starts != 1 || idle.starts != 2 {
		t.Fatalf("starts idle=%d run=%d jump=%d", idle.starts, run.starts, jump.starts)
	}
	if jump.finishes != 1 {
		t.Fatalf("jump finishes %d", jump.finishes)
	}
}

func TestControllerKeepsSelectionWithoutMatch(t *testing.T) {
	var k counter
	s := mustSet(t, k.def("run", 2, true, TriggerMoving), k.def("jump", 2, false, TriggerAirborne))
	c := mustController(t, s)

	if id := observe(t, c, Observation{}); id != NoID {
		t.Fatalf("expected no selection, got %d", id)
	}
	if id := observe(t, c, Observation{Airborne: true}); id != 1 {
		t.Fatalf("expected jump, got %d", id)
	}
	if id := observe(t, c, Observation{}); id != 1 {
		t.Fatalf("expected jump to stay selected, got %d", id)
	}
}

func TestControllerMustFinish(t *testing.T) {
	var k counter
	attack := k.def("attack", 3, false, TriggerAttacking)
	attack.MustFinish = true
	s := mustSet(t, k.def("idle", 1, true), attack)

	t.Run("ignored_by_default", func(t *testing.T) {
		c := mustController(t, s)
		observe(t, c, Observation{Attacking: true})
		step(t, c)
		if id := observe(t, c, Observation{}); id != 0 {
			t.Fatalf("expected immediate switch to idle, got %d", id)
		}
	})

	t.Run("deferred_until_finished", func(t *testing.T) {
		c := mustController(t, s, WithMustFinish())
		observe(t, c, Observation{Attacking: true})
		step(t, c)
		if id := observe(t, c, Observation{}); id != 1 {
			t.Fatalf("expected attack to be held, got %d", id)
		}
		step(t, c)
		if !c.Player().Finished(1) {
			t.Fatalf("attack should have finished")
		}
		if id := observe(t, c, Observation{}); id != 0 {
			t.Fatalf("expected idle after finish, got %d", id)
		}
	})
}

func TestControllerMustFinishSingleFrame(t *testing.T) {
	var k counter
	hit := k.def("hit", 1, false, TriggerAttacking)
	hit.MustFinish = true
	s := mustSet(t, k.def("idle", 2, true), hit)
	c := mustController(t, s, WithMustFinish())

	observe(t, c, Observation{Attacking: true})
	step(t, c)
	if id := observe(t, c, Observation{}); id != 0 {
		t.Fatalf("single-frame animation never finishes and must not be held, got %d", id)
	}
	step(t, c)
	if def, _ := c.Active(); def.Name != "idle" {
		t.Fatalf("expected idle, got %s", def.Name)
	}
}

func TestControllerFinishTriggers(t *testing.T) {
	var k counter
	attack := k.def("attack", 2, false, TriggerAttacking)
	attack.FinishTriggers = []TriggerEffect{{Trigger: TriggerMoving, Value: true}}
	s := mustSet(t, k.def("idle", 1, true), k.def("run", 2, true, TriggerMoving), attack)

	t.Run("inert_by_default", func(t *testing.T) {
		c := mustController(t, s)
		observe(t, c, Observation{Attacking: true})
		step(t, c)
		if id := observe(t, c, Observation{}); id != 0 {
			t.Fatalf("expected idle, got %d", id)
		}
	})

	t.Run("applied_once", func(t *testing.T) {
		c := mustController(t, s, WithFinishTriggers())
		observe(t, c, Observation{Attacking: true})
		step(t, c)
		if id := observe(t, c, Observation{}); id != 1 {
			t.Fatalf("expected run from finish effect, got %d", id)
		}
		if !c.Triggers().Get(TriggerMoving) {
			t.Fatalf("finish effect missing from trigger state")
		}
		step(t, c)
		if id := observe(t, c, Observation{}); id != 0 {
			t.Fatalf("finish effect leaked into later tick, got %d", id)
		}
	})
}

func TestControllerCatchUpOption(t *testing.T) {
	var k counter
	s := mustSet(t, k.def("run", 6, true))
	c := mustController(t, s, WithPlayerOptions(WithCatchUp()))
	observe(t, c, Observation{})
	if _, err := c.Step(0.25); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := c.Player().FrameIndex(0); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
}
