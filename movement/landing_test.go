package movement

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func landingConfig() Config {
	cfg := testConfig()
	cfg.LandingSmoothing = true
	cfg.LandingSmoothingTime = 0.1
	return cfg
}

// landAt steps once airborne, then lands with the given vertical velocity.
func landAt(h *harness, vy float64) {
	h.step(1)
	h.body.vel.Y = vy
	h.q.ground = true
	h.step(1)
}

func TestLandingSmoothingEasesToRest(t *testing.T) {
	h := newHarness(t, landingConfig())
	landAt(h, -5)

	if !h.state().IsLandingSmoothing {
		t.Fatalf("landing smoothing should start on touchdown")
	}

	want := []float64{-4, -3, -2, -1}
	prev := h.body.vel.Y
	for i, w := range want {
		h.step(1)
		if !near(h.body.vel.Y, w) {
			t.Fatalf("step %d: vy=%v, want %v", i+1, h.body.vel.Y, w)
		}
		if h.body.vel.Y < prev {
			t.Fatalf("step %d: smoothing not monotonic (%v after %v)", i+1, h.body.vel.Y, prev)
		}
		prev = h.body.vel.Y
		if !h.state().IsLandingSmoothing {
			t.Fatalf("step %d: smoothing ended early", i+1)
		}
		h.checkInvariants()
	}

	h.step(1)
	if h.body.vel.Y != 0 {
		t.Fatalf("vy=%v after smoothing, want 0", h.body.vel.Y)
	}
	if h.state().IsLandingSmoothing {
		t.Fatalf("smoothing flag not cleared")
	}
}

func TestLandingSmoothingHoldsHorizontal(t *testing.T) {
	h := newHarness(t, landingConfig())
	landAt(h, -5)
	h.body.vel.X = 2

	h.ctrl.Move(cp.Vector{X: 1})
	h.step(2)
	if h.body.vel.X != 2 {
		t.Fatalf("horizontal velocity changed during smoothing: %v", h.body.vel.X)
	}

	h.step(3)
	h.step(1)
	if h.body.vel.X == 2 {
		t.Fatalf("horizontal control should resume after smoothing")
	}
}

func TestLandingThreshold(t *testing.T) {
	cases := []struct {
		name       string
		vy         float64
		wantEffect bool
	}{
		{"soft_landing", -5, true},
		{"just_below_threshold", -24.9, true},
		{"at_threshold", -25, false},
		{"hard_landing", -40, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, landingConfig())
			landAt(h, c.vy)

			smoothing := h.state().IsLandingSmoothing
			dust := len(h.dust.played) > 0
			if smoothing != c.wantEffect || dust != c.wantEffect {
				t.Fatalf("smoothing=%v dust=%v, want %v", smoothing, dust, c.wantEffect)
			}
		})
	}
}

func TestLandingDustAtGroundProbe(t *testing.T) {
	h := newHarness(t, landingConfig())
	h.body.pos = cp.Vector{X: 3, Y: 7}
	landAt(h, -2)

	if len(h.dust.played) != 1 {
		t.Fatalf("dust played %d times, want 1", len(h.dust.played))
	}
	want := cp.Vector{X: 3, Y: 6.5}
	if h.dust.played[0] != want {
		t.Fatalf("dust at %v, want %v", h.dust.played[0], want)
	}

	h.step(3)
	if len(h.dust.played) != 1 {
		t.Fatalf("dust replayed while grounded")
	}
}

func TestSpawnOnGroundIsNotALanding(t *testing.T) {
	h := newHarness(t, landingConfig())
	h.q.ground = true
	h.step(2)
	if len(h.dust.played) != 0 || h.state().IsLandingSmoothing {
		t.Fatalf("spawning on the ground triggered a landing")
	}
}

func TestLandingFreeze(t *testing.T) {
	cfg := testConfig()
	cfg.LandingFreeze = true
	cfg.LandingFreezeScale = 0.05
	cfg.LandingFreezeDuration = 0.03
	h := newHarness(t, cfg)
	landAt(h, -5)

	if h.clock.Scale() != 0.05 || h.clock.Active() != 1 {
		t.Fatalf("landing freeze not applied: scale=%v leases=%d", h.clock.Scale(), h.clock.Active())
	}
	h.ctrl.Step(h.clock.Tick(0.02))
	if h.clock.Active() != 1 {
		t.Fatalf("freeze released early")
	}
	h.ctrl.Step(h.clock.Tick(0.02))
	if h.clock.Scale() != 1 || h.clock.Active() != 0 {
		t.Fatalf("freeze not released: scale=%v leases=%d", h.clock.Scale(), h.clock.Active())
	}
}

func TestDashLandingSkipsSmoothing(t *testing.T) {
	h := newHarness(t, landingConfig())
	h.step(1)
	h.ctrl.DashPressed()
	if !h.state().IsDashing {
		t.Fatalf("air dash should start")
	}

	h.q.ground = true
	h.step(1)
	if h.state().IsLandingSmoothing {
		t.Fatalf("landing during a dash must not smooth")
	}
	h.checkInvariants()
}

func TestJumpCancelsLandingSmoothing(t *testing.T) {
	h := newHarness(t, landingConfig())
	h.step(1)
	h.ctrl.JumpPressed()
	h.body.vel.Y = -5
	h.q.ground = true
	h.step(1)

	if h.body.vel.Y != h.ctrl.Config().JumpForce {
		t.Fatalf("buffered jump should fire on landing, vy=%v", h.body.vel.Y)
	}
	if h.state().IsLandingSmoothing {
		t.Fatalf("jump should cancel landing smoothing")
	}
	if h.ctrl.Tasks() != 0 {
		t.Fatalf("smoothing task left running")
	}
}

// The engine resolves an impact before the landing step reads the body, so
// touchdown must be judged on the last airborne velocity.
func TestLandingUsesImpactVelocity(t *testing.T) {
	cases := []struct {
		name      string
		fallVY    float64
		wantSmooth bool
		firstVY   float64
	}{
		{"soft_impact_eases_from_fall", -5, true, -4},
		{"hard_impact_rejected", -40, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, landingConfig())
			h.body.vel.Y = c.fallVY
			h.step(1)

			h.body.vel.Y = 0
			h.q.ground = true
			h.step(1)

			if got := h.state().IsLandingSmoothing; got != c.wantSmooth {
				t.Fatalf("smoothing=%v, want %v", got, c.wantSmooth)
			}
			if (len(h.dust.played) > 0) != c.wantSmooth {
				t.Fatalf("dust played %d times", len(h.dust.played))
			}

			h.step(1)
			if !near(h.body.vel.Y, c.firstVY) {
				t.Fatalf("vy=%v after the first smoothing step, want %v", h.body.vel.Y, c.firstVY)
			}
		})
	}
}
