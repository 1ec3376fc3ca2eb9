package movement

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrWallNormalMismatch = errors.New("movement: wall normal must be nonzero iff touching a wall")
	ErrDashDuringWallJump = errors.New("movement: dashing while wall jumping")
	ErrMoveInputRange     = errors.New("movement: move input outside [-1,1]")
	ErrTimerRange         = errors.New("movement: timer outside [0,max]")
)

// State is the controller's single mutable record. It is created once with
// the controller and only mutated by the controller's handlers, resolver and
// tasks. Position and velocity belong to the Body.
type State struct {
	MoveInput cp.Vector
	// SteerX is MoveInput.X after the wall-jump control lock filter.
	SteerX float64
	Facing float64

	IsGrounded     bool
	IsTouchingWall bool
	WallNormal     cp.Vector

	IsDashing          bool
	IsWallJumping      bool
	BlockTowardsWall   bool
	IsLandingSmoothing bool
	JumpHeld           bool

	HasAirDash bool
	CanDash    bool

	CoyoteCounter          float64
	JumpBufferCounter      float64
	DashCooldownRemaining  float64
	WallJumpLockRemaining  float64
	LandingSmoothRemaining float64
}

func newState() State {
	return State{
		Facing:     1,
		HasAirDash: true,
		CanDash:    true,
	}
}

// wallSliding reports airborne wall contact.
func (s *State) wallSliding() bool {
	return s.IsTouchingWall && !s.IsGrounded
}

// wallBlocksJump reports whether wall contact stops a buffered ground jump.
func (s *State) wallBlocksJump(cfg *Config) bool {
	if cfg.GroundJumpBesideWall {
		return s.wallSliding()
	}
	return s.IsTouchingWall
}

// Check reports every violated invariant of the record against cfg. It never
// panics; a nil error means the state is consistent.
func (s State) Check(cfg Config) error {
	var errs []error

	hasNormal := s.WallNormal.X != 0 || s.WallNormal.Y != 0
	if hasNormal != s.IsTouchingWall {
		errs = append(errs, fmt.Errorf("%w: touching=%v normal=%v", ErrWallNormalMismatch, s.IsTouchingWall, s.WallNormal))
	}
	if s.IsDashing && s.IsWallJumping {
		errs = append(errs, ErrDashDuringWallJump)
	}
	if s.MoveInput.X < -1 || s.MoveInput.X > 1 || s.MoveInput.Y < -1 || s.MoveInput.Y > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrMoveInputRange, s.MoveInput))
	}

	timers := []struct {
		name  string
		value float64
		max   float64
	}{
		{"coyote", s.CoyoteCounter, cfg.CoyoteTime},
		{"jump_buffer", s.JumpBufferCounter, cfg.JumpBufferTime},
		{"dash_cooldown", s.DashCooldownRemaining, cfg.DashCooldown},
		{"wall_jump_lock", s.WallJumpLockRemaining, cfg.WallJumpControlDelay},
		{"landing_smooth", s.LandingSmoothRemaining, cfg.LandingSmoothingTime},
	}
	for _, t := range timers {
		if t.value < 0 || t.value > t.max {
			errs = append(errs, fmt.Errorf("%w: %s=%g max=%g", ErrTimerRange, t.name, t.value, t.max))
		}
	}

	return errors.Join(errs...)
}
