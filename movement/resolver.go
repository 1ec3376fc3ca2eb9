package movement

import "math"

// minTargetSpeed is the target speed below which the resolver decelerates.
const minTargetSpeed = 0.01

// resolve runs the ordered motion rules for one step. Later rules override
// earlier ones.
func (c *Controller) resolve(dt float64) {
	s := &c.state
	cfg := &c.cfg
	v := c.body.Velocity()

	// Buffered jump within coyote time.
	if s.JumpBufferCounter > 0 && s.CoyoteCounter > 0 && !s.wallBlocksJump(cfg) {
		v.Y = cfg.JumpForce
		s.JumpBufferCounter = 0
		s.CoyoteCounter = 0
		if c.landing != nil {
			c.tasks.Cancel(c, c.landing)
		}
	}

	if s.IsGrounded || s.IsTouchingWall {
		s.HasAirDash = true
	}

	airborne := !s.IsGrounded

	// Gravity first, then the slide clamp.
	if airborne && !s.IsWallJumping && !s.IsDashing {
		if v.Y < 0 {
			v.Y -= cfg.Gravity * (cfg.FallGravityMultiplier - 1) * dt
		} else if v.Y > 0 && cfg.VariableJump && !s.JumpHeld {
			v.Y -= cfg.Gravity * (cfg.LowJumpGravityMultiplier - 1) * dt
		}
	}

	if airborne && s.IsTouchingWall && !s.IsDashing && !s.IsWallJumping {
		if v.Y < -cfg.WallSlideSpeed {
			v.Y = -cfg.WallSlideSpeed
		}
	}

	s.SteerX = c.steer()
	if !s.IsDashing && !s.IsLandingSmoothing {
		v.X = c.horizontal(v.X, s.SteerX*cfg.MoveSpeed, dt)
	}

	c.body.SetVelocity(v)
}

// horizontal accelerates vx toward target with the rate picked by
// grounded/airborne and accelerating/decelerating.
func (c *Controller) horizontal(vx, target, dt float64) float64 {
	cfg := &c.cfg
	accelerating := math.Abs(target) > minTargetSpeed

	var rate float64
	switch {
	case c.state.IsGrounded && accelerating:
		rate = cfg.GroundAcceleration
	case c.state.IsGrounded:
		rate = cfg.GroundDeceleration
	case accelerating:
		rate = cfg.AirAcceleration * cfg.AirControlMultiplier
	default:
		rate = cfg.AirDeceleration * cfg.AirControlMultiplier
	}
	return approach(vx, target, rate*dt)
}
