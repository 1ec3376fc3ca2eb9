package movement

import "github.com/jakecoffman/cp"

// Move stores the directional input. Components are clamped to [-1,1].
func (c *Controller) Move(v cp.Vector) {
	if !c.enabled {
		return
	}
	v.X = clampUnit(v.X)
	v.Y = clampUnit(v.Y)
	c.state.MoveInput = v
	if v.X > 0 {
		c.state.Facing = 1
	} else if v.X < 0 {
		c.state.Facing = -1
	}
}

// JumpPressed buffers a jump, or wall jumps at once when airborne against a
// wall.
func (c *Controller) JumpPressed() {
	if !c.enabled {
		return
	}
	s := &c.state
	s.JumpHeld = true
	s.JumpBufferCounter = c.cfg.JumpBufferTime

	if s.wallSliding() {
		s.JumpBufferCounter = 0
		if !s.IsDashing {
			c.wallJump()
		}
	}
}

// JumpReleased cuts an in-progress rise.
func (c *Controller) JumpReleased() {
	if !c.enabled {
		return
	}
	c.state.JumpHeld = false
	if !c.cfg.VariableJump {
		return
	}
	v := c.body.Velocity()
	if v.Y > 0 {
		v.Y *= c.cfg.JumpCutMultiplier
		c.body.SetVelocity(v)
	}
}

// DashPressed starts a dash when the guards allow it.
func (c *Controller) DashPressed() {
	if !c.enabled {
		return
	}
	s := &c.state
	airborne := !s.IsGrounded && !s.IsTouchingWall
	if airborne && (!s.HasAirDash || !c.cfg.AirDash) {
		return
	}
	if !s.CanDash || s.IsDashing || s.IsWallJumping {
		return
	}
	if airborne {
		s.HasAirDash = false
	}
	c.startDash()
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
