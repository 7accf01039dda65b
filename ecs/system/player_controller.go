package system

import (
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
)

// PlayerControllerSystem sets horizontal velocity from input and starts
// jumps from the ground.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent, component.InputComponent, component.PhysicsBodyComponent, func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}

		vel := body.Body.Velocity()
		vel.X = input.MoveX * player.MoveSpeed

		if input.JumpPressed && body.Grounded {
			vel.Y = -player.JumpPower
			body.Grounded = false
		}

		body.Body.SetVelocityVector(vel)
	})
}
