package component

// Input stores the input gathered for an entity this frame. Move is held
// state; the Pressed/Released flags are edges consumed by the movement
// system.
type Input struct {
	MoveX        float64
	MoveY        float64
	JumpPressed  bool
	JumpReleased bool
	DashPressed  bool
}

var InputComponent = NewComponent[Input]()
