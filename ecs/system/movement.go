package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// MovementSystem forwards gathered input to each controller as events, then
// steps the controller once with the frame's tick.
type MovementSystem struct {
	clock *Clock
}

func NewMovementSystem(clock *Clock) *MovementSystem {
	return &MovementSystem{clock: clock}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if m == nil || w == nil {
		return
	}
	tick := m.clock.Tick()

	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, mover *component.Mover) {
		ctrl := mover.Controller
		if ctrl == nil {
			return
		}

		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			ctrl.Move(cp.Vector{X: in.MoveX, Y: in.MoveY})
			// A tap inside one frame is a press followed by a release.
			if in.JumpPressed {
				ctrl.JumpPressed()
			}
			if in.JumpReleased {
				ctrl.JumpReleased()
			}
			if in.DashPressed {
				ctrl.DashPressed()
			}
			in.JumpPressed, in.JumpReleased, in.DashPressed = false, false, false
		}

		ctrl.Step(tick)
	})
}
