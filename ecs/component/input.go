package component

// Input stores per-tick input state for an entity.
type Input struct {
	MoveX         float64
	Jump          bool
	JumpPressed   bool
	AttackPressed bool
	Attack        bool
}

var InputComponent = NewComponent[Input]()
