package component

import "github.com/milk9111/flipbook/anim"

// Animator drives the sprite of a character through an anim.Controller.
// Observation is refreshed every variable-rate tick before selection.
type Animator struct {
	Controller  *anim.Controller
	Observation anim.Observation
	Prefab      string
}

var AnimatorComponent = NewComponent[Animator]()
