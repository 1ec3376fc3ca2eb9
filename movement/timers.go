package movement

// timeEpsilon absorbs float accumulation when comparing elapsed time
// against a configured duration.
const timeEpsilon = 1e-9

func decay(v *float64, dt float64) {
	*v -= dt
	if *v < timeEpsilon {
		*v = 0
	}
}

func clampTimer(v *float64, max float64) {
	if *v < 0 {
		*v = 0
	} else if *v > max {
		*v = max
	}
}

// updateTimers runs the timer bank for one step. Task-owned timers (dash
// cooldown, wall-jump lock, landing smoothing) are decayed by their tasks so
// their expiry and the matching state transition happen together.
func updateTimers(s *State, cfg *Config, dt float64) {
	if s.IsGrounded {
		s.CoyoteCounter = cfg.CoyoteTime
	} else {
		decay(&s.CoyoteCounter, dt)
	}

	decay(&s.JumpBufferCounter, dt)
	if s.wallBlocksJump(cfg) || s.IsDashing || s.IsWallJumping {
		s.JumpBufferCounter = 0
	}

	clampTimers(s, cfg)
}

func clampTimers(s *State, cfg *Config) {
	clampTimer(&s.CoyoteCounter, cfg.CoyoteTime)
	clampTimer(&s.JumpBufferCounter, cfg.JumpBufferTime)
	clampTimer(&s.DashCooldownRemaining, cfg.DashCooldown)
	clampTimer(&s.WallJumpLockRemaining, cfg.WallJumpControlDelay)
	clampTimer(&s.LandingSmoothRemaining, cfg.LandingSmoothingTime)
}
