package movement

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const dt = 0.02

type fakeBody struct {
	pos cp.Vector
	vel cp.Vector
}

func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *fakeBody) Position() cp.Vector     { return b.pos }

type fakeQueries struct {
	ground bool
	left   bool
	right  bool
}

func (q *fakeQueries) OverlapCircle(cp.Vector, float64, uint) bool { return q.ground }

func (q *fakeQueries) Raycast(origin, dir cp.Vector, distance float64, mask uint) (RayHit, bool) {
	if dir.X < 0 && q.left {
		return RayHit{Point: origin, Normal: cp.Vector{X: 1}}, true
	}
	if dir.X > 0 && q.right {
		return RayHit{Point: origin, Normal: cp.Vector{X: -1}}, true
	}
	return RayHit{}, false
}

type fakeTrail struct {
	on    bool
	calls int
}

func (f *fakeTrail) SetEmitting(on bool) {
	f.on = on
	f.calls++
}

type fakeDust struct {
	played []cp.Vector
}

func (f *fakeDust) PlayLandingDust(pos cp.Vector) {
	f.played = append(f.played, pos)
}

type harness struct {
	t     *testing.T
	body  *fakeBody
	q     *fakeQueries
	trail *fakeTrail
	dust  *fakeDust
	clock *TimeScale
	ctrl  *Controller
}

// testConfig uses round durations, no gravity and no freezes so each test
// can reason in whole steps.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = 0
	cfg.CoyoteTime = 0.1
	cfg.JumpBufferTime = 0.1
	cfg.DashDuration = 0.1
	cfg.DashCooldown = 0.2
	cfg.WallJumpControlDelay = 0.2
	cfg.LandingSmoothingTime = 0.1
	cfg.DashFreeze = false
	cfg.LandingFreeze = false
	cfg.LandingSmoothing = false
	cfg.GroundProbe = &GroundProbe{OffsetY: -0.5, Radius: 0.2, Mask: 1}
	cfg.WallProbe = &WallProbe{LeftX: -0.5, RightX: 0.5, Distance: 0.2, Mask: 1}
	return cfg
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		body:  &fakeBody{},
		q:     &fakeQueries{},
		trail: &fakeTrail{},
		dust:  &fakeDust{},
		clock: NewTimeScale(1),
	}
	h.ctrl = NewController(cfg, h.body,
		WithQueries(h.q),
		WithTrail(h.trail),
		WithDust(h.dust),
		WithTimeScale(h.clock),
	)
	return h
}

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.ctrl.Step(Tick{Sim: dt, Real: dt})
	}
}

func (h *harness) state() State {
	return h.ctrl.State()
}

func (h *harness) checkInvariants() {
	h.t.Helper()
	s := h.ctrl.State()
	if err := s.Check(h.ctrl.Config()); err != nil {
		h.t.Fatalf("invariants violated: %v", err)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}
