package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
)

// groundNormal is the minimum downward contact normal, from the player
// toward the solid, that counts as standing on it.
const groundNormal = 0.5

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

// PhysicsSystem owns the Chipmunk space. Bodies for PhysicsBody and Platform
// entities are created on first sight and removed once their entity dies.
type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	dt            float64
	width, height float64

	entities      map[ecs.Entity]*bodyInfo
	playerShapes  map[*cp.Shape]ecs.Entity
	grounded      map[ecs.Entity]bool
	handlersReady bool
	boundsReady   bool
}

// NewPhysicsSystem builds a space with downward gravity (screen-down is +Y).
// width and height bound the world with static walls when both are positive.
func NewPhysicsSystem(gravity, dt, width, height float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	return &PhysicsSystem{
		space:        space,
		gravity:      gravity,
		dt:           dt,
		width:        width,
		height:       height,
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.ensureBounds()
	ps.syncEntities(w)
	ps.applyJumpGravity(w)

	for e := range ps.grounded {
		delete(ps.grounded, e)
	}

	ps.space.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if body.Body == nil || body.Static {
			return
		}
		body.Grounded = ps.grounded[e]
		pos := body.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := sys.playerShapes[shapeA]
		if !okA {
			var okB bool
			player, okB = sys.playerShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		if n.Y > groundNormal {
			sys.grounded[player] = true
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) ensureBounds() {
	if ps.boundsReady || ps.width <= 0 || ps.height <= 0 {
		return
	}

	segments := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: ps.height}, b: cp.Vector{X: ps.width, Y: ps.height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: ps.height}},
		{a: cp.Vector{X: ps.width, Y: 0}, b: cp.Vector{X: ps.width, Y: ps.height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
	}

	ps.boundsReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) {
			continue
		}
		ps.removeBody(info)
		delete(ps.entities, e)
		delete(ps.grounded, e)
	}

	ecs.ForEach(w, component.PlatformComponent, func(e ecs.Entity, platform *component.Platform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		bb := cp.BB{L: platform.X, B: platform.Y, R: platform.X + platform.Width, T: platform.Y + platform.Height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.entities[e] = &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		info := ps.createBody(w, e, bodyComp, transform)
		if info == nil {
			return
		}
		ps.entities[e] = info
	})
}

func (ps *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) *bodyInfo {
	if bodyComp.Width <= 0 || bodyComp.Height <= 0 {
		return nil
	}

	info := &bodyInfo{static: bodyComp.Static}
	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - bodyComp.Width/2,
			B: transform.Y - bodyComp.Height/2,
			R: transform.X + bodyComp.Width/2,
			T: transform.Y + bodyComp.Height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		bodyComp.Body = ps.space.StaticBody
		bodyComp.Shape = shape
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Characters never rotate.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	shape := cp.NewBox(body, bodyComp.Width, bodyComp.Height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeSolid)
	if ecs.Has(w, e, component.PlayerTagComponent) {
		shape.SetCollisionType(collisionTypePlayer)
		ps.playerShapes[shape] = e
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	bodyComp.Body = body
	bodyComp.Shape = shape
	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	for _, shape := range info.shapes {
		delete(ps.playerShapes, shape)
		ps.space.RemoveShape(shape)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

// applyJumpGravity adds the extra gravity that makes falls snappier and
// shortens jumps when the button is released early.
func (ps *PhysicsSystem) applyJumpGravity(w *ecs.World) {
	ecs.ForEach3(w, component.PlayerComponent, component.InputComponent, component.PhysicsBodyComponent, func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
		if body.Body == nil || body.Static {
			return
		}
		vel := body.Body.Velocity()
		switch {
		case vel.Y > 0 && player.FallMultiplier > 1:
			vel.Y += ps.gravity * (player.FallMultiplier - 1) * ps.dt
		case vel.Y < 0 && !input.Jump && player.LowJumpMultiplier > 1:
			vel.Y += ps.gravity * (player.LowJumpMultiplier - 1) * ps.dt
		default:
			return
		}
		body.Body.SetVelocityVector(vel)
	})
}
