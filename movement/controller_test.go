package movement

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestJumpBuffer(t *testing.T) {
	cases := []struct {
		name      string
		stepsLate int // steps from the press to the landing step
		wantJump  bool
	}{
		{"lands_next_step", 1, true},
		{"lands_after_two", 2, true},
		{"lands_just_inside", 4, true},
		{"buffer_expired", 5, false},
		{"long_expired", 8, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, testConfig())
			h.step(10) // airborne long enough to lose coyote time

			h.ctrl.JumpPressed()
			h.step(c.stepsLate - 1)
			if h.body.vel.Y == h.ctrl.Config().JumpForce {
				t.Fatalf("jumped before landing")
			}

			h.q.ground = true
			h.step(1)

			jumped := h.body.vel.Y == h.ctrl.Config().JumpForce
			if jumped != c.wantJump {
				t.Fatalf("jumped=%v, want %v (vy=%v)", jumped, c.wantJump, h.body.vel.Y)
			}
			if h.state().JumpBufferCounter != 0 && c.wantJump {
				t.Fatalf("buffer not consumed: %v", h.state().JumpBufferCounter)
			}
			h.checkInvariants()
		})
	}
}

func TestCoyoteTime(t *testing.T) {
	cases := []struct {
		name          string
		airborneSteps int // airborne steps including the one that reads the press
		wantJump      bool
	}{
		{"first_airborne_step", 1, true},
		{"mid_window", 3, true},
		{"last_step_inside", 4, true},
		{"window_closed", 5, false},
		{"long_after", 9, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, testConfig())
			h.q.ground = true
			h.step(3)

			h.q.ground = false
			h.step(c.airborneSteps - 1)
			h.ctrl.JumpPressed()
			h.step(1)

			jumped := h.body.vel.Y == h.ctrl.Config().JumpForce
			if jumped != c.wantJump {
				t.Fatalf("jumped=%v, want %v", jumped, c.wantJump)
			}
		})
	}
}

func TestCoyoteJumpOnlyOnce(t *testing.T) {
	h := newHarness(t, testConfig())
	h.q.ground = true
	h.step(2)
	h.q.ground = false

	h.ctrl.JumpPressed()
	h.step(1)
	if h.body.vel.Y != h.ctrl.Config().JumpForce {
		t.Fatalf("expected coyote jump, vy=%v", h.body.vel.Y)
	}

	h.body.vel.Y = 1
	h.ctrl.JumpPressed()
	h.step(1)
	if h.body.vel.Y == h.ctrl.Config().JumpForce {
		t.Fatalf("second jump inside the coyote window must not fire")
	}
}

func TestGroundedWallContactJump(t *testing.T) {
	cases := []struct {
		name   string
		beside bool
		jumps  bool
	}{
		{"wall_blocks_jump", false, false},
		{"beside_wall_toggle", true, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.GroundJumpBesideWall = c.beside
			h := newHarness(t, cfg)
			h.q.ground = true
			h.q.left = true
			h.step(2)

			h.ctrl.JumpPressed()
			h.step(1)
			jumped := h.body.vel.Y == cfg.JumpForce
			if jumped != c.jumps {
				t.Fatalf("jumped=%v, want %v (vy=%v touching=%v)", jumped, c.jumps, h.body.vel.Y, h.state().IsTouchingWall)
			}
			if !c.jumps && h.state().JumpBufferCounter != 0 {
				t.Fatalf("buffer should expire while touching a wall")
			}
			if h.state().IsWallJumping {
				t.Fatalf("grounded jump must not be a wall jump")
			}
		})
	}
}

func TestJumpCut(t *testing.T) {
	cases := []struct {
		name string
		vy   float64
		want float64
	}{
		{"rising_is_cut", 10, 5},
		{"falling_untouched", -4, -4},
		{"resting_untouched", 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, testConfig())
			h.body.vel.Y = c.vy
			h.ctrl.JumpPressed()
			h.ctrl.JumpReleased()
			if !near(h.body.vel.Y, c.want) {
				t.Fatalf("vy=%v, want %v", h.body.vel.Y, c.want)
			}
			if h.state().JumpHeld {
				t.Fatalf("jump should not be held after release")
			}
		})
	}
}

func TestDynamicGravity(t *testing.T) {
	cases := []struct {
		name string
		vy   float64
		held bool
		want float64
	}{
		// g=10: fall adds (2.5-1)*10*dt, low jump adds (2-1)*10*dt.
		{"falling", -1, false, -1.3},
		{"rising_released", 5, false, 4.8},
		{"rising_held", 5, true, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Gravity = 10
			h := newHarness(t, cfg)
			h.step(10)

			h.ctrl.state.JumpHeld = c.held
			h.body.vel.Y = c.vy
			h.step(1)
			if !near(h.body.vel.Y, c.want) {
				t.Fatalf("vy=%v, want %v", h.body.vel.Y, c.want)
			}
		})
	}
}

func TestWallSlideClamp(t *testing.T) {
	cfg := testConfig()
	cfg.Gravity = 10
	h := newHarness(t, cfg)
	h.q.left = true
	h.step(1)

	h.body.vel.Y = -10
	h.step(1)
	if h.body.vel.Y != -cfg.WallSlideSpeed {
		t.Fatalf("vy=%v, want %v", h.body.vel.Y, -cfg.WallSlideSpeed)
	}

	h.body.vel.Y = -1
	h.step(1)
	if h.body.vel.Y < -cfg.WallSlideSpeed || h.body.vel.Y >= -1 {
		t.Fatalf("slow fall should keep accelerating under the clamp, vy=%v", h.body.vel.Y)
	}
}

func TestHorizontalRates(t *testing.T) {
	cfg := testConfig()
	cases := []struct {
		name     string
		grounded bool
		startVX  float64
		input    float64
		want     float64
	}{
		{"ground_accel", true, 0, 1, cfg.GroundAcceleration * dt},
		{"ground_decel", true, 3, 0, 3 - cfg.GroundDeceleration*dt},
		{"air_accel", false, 0, -1, -cfg.AirAcceleration * cfg.AirControlMultiplier * dt},
		{"air_decel", false, -3, 0, -3 + cfg.AirDeceleration*cfg.AirControlMultiplier*dt},
		{"snaps_to_target", true, 4.9, 1, cfg.MoveSpeed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, cfg)
			h.q.ground = c.grounded
			h.step(1)
			h.body.vel.X = c.startVX
			h.ctrl.Move(cp.Vector{X: c.input})
			h.step(1)
			if !near(h.body.vel.X, c.want) {
				t.Fatalf("vx=%v, want %v", h.body.vel.X, c.want)
			}
		})
	}
}

func TestMoveClampsAndFacing(t *testing.T) {
	h := newHarness(t, testConfig())
	h.ctrl.Move(cp.Vector{X: -3, Y: 2})
	s := h.state()
	if s.MoveInput.X != -1 || s.MoveInput.Y != 1 {
		t.Fatalf("move input not clamped: %v", s.MoveInput)
	}
	if s.Facing != -1 {
		t.Fatalf("facing=%v, want -1", s.Facing)
	}
	h.ctrl.Move(cp.Vector{})
	if h.state().Facing != -1 {
		t.Fatalf("zero input must keep facing")
	}
}

func TestDisableIgnoresInputAndSteps(t *testing.T) {
	h := newHarness(t, testConfig())
	h.ctrl.Disable()
	h.ctrl.Move(cp.Vector{X: 1})
	h.ctrl.JumpPressed()
	h.ctrl.DashPressed()
	h.q.ground = true
	h.step(3)

	s := h.state()
	if s.MoveInput.X != 0 || s.JumpBufferCounter != 0 || s.IsDashing || s.IsGrounded {
		t.Fatalf("disabled controller changed state: %+v", s)
	}

	h.ctrl.Enable()
	h.step(1)
	if !h.state().IsGrounded {
		t.Fatalf("enabled controller should sense again")
	}
}

func TestResetRestoresFreshState(t *testing.T) {
	h := newHarness(t, testConfig())
	h.q.ground = true
	h.step(1)
	h.ctrl.Move(cp.Vector{X: 1})
	h.ctrl.DashPressed()
	h.ctrl.Reset()

	s := h.state()
	if s.IsDashing || !s.CanDash || !s.HasAirDash || s.Facing != 1 {
		t.Fatalf("unexpected state after reset: %+v", s)
	}
	if h.ctrl.Tasks() != 0 {
		t.Fatalf("tasks left after reset: %d", h.ctrl.Tasks())
	}
	if h.trail.on {
		t.Fatalf("trail still emitting after reset")
	}
}

func TestSetConfigClampsTimers(t *testing.T) {
	h := newHarness(t, testConfig())
	h.q.ground = true
	h.step(1)
	h.ctrl.JumpPressed()

	cfg := testConfig()
	cfg.CoyoteTime = 0.05
	cfg.JumpBufferTime = 0.03
	h.ctrl.SetConfig(cfg)

	s := h.state()
	if s.CoyoteCounter > 0.05 || s.JumpBufferCounter > 0.03 {
		t.Fatalf("timers not clamped: coyote=%v buffer=%v", s.CoyoteCounter, s.JumpBufferCounter)
	}
	h.checkInvariants()
}

func TestSetInvariantChecks(t *testing.T) {
	h := newHarness(t, testConfig())
	if h.ctrl.InvariantChecks() {
		t.Fatalf("checks on without the option")
	}
	h.ctrl.SetInvariantChecks(true)
	if !h.ctrl.InvariantChecks() {
		t.Fatalf("checks not enabled")
	}
	h.step(1)
	h.ctrl.SetInvariantChecks(false)
	if h.ctrl.InvariantChecks() {
		t.Fatalf("checks not disabled")
	}
}
