package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
)

// TriggerSystem turns this tick's input and physics state into an
// observation and runs animation selection. It belongs to the variable-rate
// half of the tick, before any fixed-rate system advances animations.
type TriggerSystem struct {
	logger *log.Logger
}

func NewTriggerSystem(logger *log.Logger) *TriggerSystem {
	return &TriggerSystem{logger: logger}
}

func (t *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AnimatorComponent, func(e ecs.Entity, animator *component.Animator) {
		if animator.Controller == nil {
			return
		}
		animator.Observation = Observe(w, e)
		if _, err := animator.Controller.Observe(animator.Observation); err != nil {
			t.logger.Error("animation selection failed", "entity", e, "error", err)
		}
	})
}

// Observe reads the observation for e from its input and physics components.
// Missing components leave the matching fields at their zero value.
func Observe(w *ecs.World, e ecs.Entity) anim.Observation {
	var obs anim.Observation
	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		obs.MoveX = input.MoveX
		obs.Attacking = input.Attack || input.AttackPressed
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		obs.Airborne = !body.Grounded
	}
	return obs
}
