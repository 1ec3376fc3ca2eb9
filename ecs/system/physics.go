package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// PhysicsSystem steps the Chipmunk world by the frame's simulated time and
// copies body positions back into transforms.
type PhysicsSystem struct {
	world *physics.World
	clock *Clock
}

func NewPhysicsSystem(world *physics.World, clock *Clock) *PhysicsSystem {
	return &PhysicsSystem{world: world, clock: clock}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.world.Step(ps.clock.Tick().Sim)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
			if body.Player == nil {
				return
			}
			pos := body.Player.Position()
			t.X = pos.X
			t.Y = pos.Y
		})
}
