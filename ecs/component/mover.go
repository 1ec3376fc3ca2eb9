package component

import "github.com/milk9111/platformer/movement"

// Mover drives a body with the movement controller.
type Mover struct {
	Controller *movement.Controller
}

var MoverComponent = NewComponent[Mover]()
