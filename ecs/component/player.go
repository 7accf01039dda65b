package component

// Player holds the movement tuning of a controllable character.
type Player struct {
	MoveSpeed float64
	JumpPower float64
	// FallMultiplier scales gravity while falling.
	FallMultiplier float64
	// LowJumpMultiplier scales gravity while rising with jump released.
	LowJumpMultiplier float64
}

var PlayerComponent = NewComponent[Player]()
