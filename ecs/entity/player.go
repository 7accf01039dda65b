package entity

import (
	"fmt"

	"github.com/milk9111/flipbook/assets"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
	"github.com/milk9111/flipbook/prefabs"
)

const playerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, err
	}
	return NewPlayerFromSpec(w, spec, spec.Transform.X, spec.Transform.Y)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, err
	}
	return NewPlayerFromSpec(w, spec, x, y)
}

// NewPlayerFromSpec creates the controllable character described by spec.
// The entity is destroyed again if any part fails to build.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	sheet, err := assets.LoadImage(spec.Animation.Sheet)
	if err != nil {
		return 0, fmt.Errorf("player: load sheet: %w", err)
	}

	e := ecs.CreateEntity(w)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: %w", err)
	}

	controller, err := BuildAnimator(w, e, spec.Animation)
	if err != nil {
		return fail(err)
	}

	scaleX, scaleY := spec.Transform.ScaleX, spec.Transform.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}

	adds := []error{
		ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}),
		ecs.Add(w, e, component.PlayerComponent, &component.Player{
			MoveSpeed:         spec.MoveSpeed,
			JumpPower:         spec.JumpPower,
			FallMultiplier:    spec.FallMultiplier,
			LowJumpMultiplier: spec.LowJumpMultiplier,
		}),
		ecs.Add(w, e, component.InputComponent, &component.Input{}),
		ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: scaleX, ScaleY: scaleY}),
		ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
			Width:    spec.Collider.Width,
			Height:   spec.Collider.Height,
			Mass:     spec.Collider.Mass,
			Friction: spec.Collider.Friction,
		}),
		ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
			Sheet:   sheet,
			OriginX: spec.Sprite.OriginX,
			OriginY: spec.Sprite.OriginY,
		}),
		ecs.Add(w, e, component.AnimatorComponent, &component.Animator{
			Controller: controller,
			Prefab:     playerPrefab,
		}),
	}
	for _, err := range adds {
		if err != nil {
			return fail(err)
		}
	}

	return e, nil
}
