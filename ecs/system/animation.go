package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
)

// AnimationSystem advances every animator by one fixed tick and copies the
// resulting frame into the sprite. Facing follows the last horizontal input.
type AnimationSystem struct {
	dt     float64
	logger *log.Logger
}

func NewAnimationSystem(dt float64, logger *log.Logger) *AnimationSystem {
	return &AnimationSystem{dt: dt, logger: logger}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.AnimatorComponent, component.SpriteComponent, func(e ecs.Entity, animator *component.Animator, sprite *component.Sprite) {
		if animator.Controller == nil {
			return
		}

		frame, err := animator.Controller.Step(a.dt)
		if err != nil {
			a.logger.Debug("animation step skipped", "entity", e, "error", err)
			return
		}
		sprite.Source = frame

		switch {
		case animator.Observation.MoveX < 0:
			sprite.FacingLeft = true
		case animator.Observation.MoveX > 0:
			sprite.FacingLeft = false
		}
	})
}
