package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are created lazily by the physics system.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Static   bool

	Grounded bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Platform is a static solid rectangle of the stage.
type Platform struct {
	X, Y          float64
	Width, Height float64
}

var PlatformComponent = NewComponent[Platform]()
