package component

import "github.com/milk9111/platformer/physics"

// PhysicsBody links an entity to its Chipmunk body.
type PhysicsBody struct {
	Player *physics.Player
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
