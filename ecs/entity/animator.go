package entity

import (
	"fmt"

	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
	"github.com/milk9111/flipbook/prefabs"
)

// BuildAnimator builds the animation controller of e from spec.
func BuildAnimator(w *ecs.World, e ecs.Entity, spec prefabs.AnimationSpec) (*anim.Controller, error) {
	set, err := prefabs.BuildAnimationSet(spec, &EventHooks{World: w, Entity: e})
	if err != nil {
		return nil, err
	}

	return anim.NewController(set, prefabs.ControllerOptions(spec)...)
}

// ReloadAnimator rebuilds the controller of e from its prefab. On any error
// the current controller is left in place.
func ReloadAnimator(w *ecs.World, e ecs.Entity) error {
	animator, ok := ecs.Get(w, e, component.AnimatorComponent)
	if !ok {
		return fmt.Errorf("reload %v: %w", e, component.ErrEntityNotAlive)
	}
	if animator.Prefab == "" {
		return nil
	}

	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](animator.Prefab)
	if err != nil {
		return err
	}
	controller, err := BuildAnimator(w, e, spec.Animation)
	if err != nil {
		return fmt.Errorf("reload %s: %w", animator.Prefab, err)
	}

	animator.Controller = controller
	return nil
}
