package movement

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// Body is the rigid body the controller commands. The physics engine owns
// integration; the controller only reads and writes velocity.
type Body interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	Position() cp.Vector
}

// Trail toggles the dash trail effect.
type Trail interface {
	SetEmitting(on bool)
}

// Dust plays the one-shot landing effect.
type Dust interface {
	PlayLandingDust(pos cp.Vector)
}

// Option configures a Controller.
type Option func(*Controller)

// WithQueries supplies the broad-phase queries used by explicit probes.
func WithQueries(q Queries) Option {
	return func(c *Controller) { c.sensor.queries = q }
}

// WithTimeScale shares a simulation rate owner with the host loop.
func WithTimeScale(t *TimeScale) Option {
	return func(c *Controller) {
		if t != nil {
			c.clock = t
		}
	}
}

// WithTrail attaches the dash trail effect.
func WithTrail(t Trail) Option {
	return func(c *Controller) { c.trail = t }
}

// WithDust attaches the landing dust effect.
func WithDust(d Dust) Option {
	return func(c *Controller) { c.dust = d }
}

// WithInvariantChecks logs invariant violations after every step.
func WithInvariantChecks(on bool) Option {
	return func(c *Controller) { c.checks = on }
}

// Controller turns input events and contact sensing into velocity commands,
// once per fixed physics step.
type Controller struct {
	cfg    Config
	state  State
	body   Body
	sensor *Sensor
	clock  *TimeScale
	tasks  TaskScheduler

	trail Trail
	dust  Dust

	dash     *dashTask
	wallLock *wallJumpLock
	landing  *landingSmooth

	enabled bool
	checks  bool
	// sensed is false until the first sensor read, so spawning on the
	// ground is not a landing.
	sensed bool
	// airborneVY is the last vertical velocity left in the body while
	// airborne. The engine resolves an impact before the landing step reads
	// the body, so it holds the landing velocity.
	airborneVY float64
}

// NewController creates an enabled controller for body.
func NewController(cfg Config, body Body, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg.Sanitize(),
		state:   newState(),
		body:    body,
		sensor:  NewSensor(nil),
		clock:   NewTimeScale(1),
		enabled: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.setTrail(false)
	return c
}

// Step advances the controller by one fixed step: in-flight tasks, one sensor
// read, landing detection, the timer bank, then the motion resolver.
func (c *Controller) Step(t Tick) {
	if !c.enabled || c.body == nil {
		return
	}

	c.tasks.Advance(c, t)

	wasGrounded := c.state.IsGrounded
	r := c.sensor.Read(&c.cfg, c.body.Position())
	c.state.IsGrounded = r.Grounded
	c.state.IsTouchingWall = r.Wall
	c.state.WallNormal = r.WallNormal
	if !r.Wall {
		c.state.WallNormal = cp.Vector{}
	}

	if c.sensed && !wasGrounded && c.state.IsGrounded {
		c.land(math.Min(c.body.Velocity().Y, c.airborneVY))
	}
	c.sensed = true

	updateTimers(&c.state, &c.cfg, t.Sim)
	c.resolve(t.Sim)

	c.airborneVY = 0
	if !c.state.IsGrounded {
		c.airborneVY = c.body.Velocity().Y
	}

	if c.checks {
		if err := c.state.Check(c.cfg); err != nil {
			log.Printf("movement: invariant check failed: %v", err)
		}
	}
}

// ContactBegin forwards a physics contact-begin notification to the sensor.
func (c *Controller) ContactBegin(key any, normal cp.Vector, tag SurfaceTag) {
	c.sensor.ContactBegin(key, normal, tag)
}

// ContactEnd forwards a physics contact-end notification to the sensor.
func (c *Controller) ContactEnd(key any) {
	c.sensor.ContactEnd(key)
}

// Disable aborts every timed task, releases held time-scale leases and stops
// reacting to input and steps.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.tasks.CancelAll(c)
	c.enabled = false
}

// Enable resumes stepping after Disable.
func (c *Controller) Enable() {
	c.enabled = true
}

// Enabled reports whether the controller is stepping.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Reset aborts all tasks and recreates the state record.
func (c *Controller) Reset() {
	c.tasks.CancelAll(c)
	c.sensor.Clear()
	c.state = newState()
	c.sensed = false
	c.airborneVY = 0
	c.setTrail(false)
}

// SetConfig swaps the tuning, sanitized, keeping state and tasks. Timers
// are clamped into the new ranges.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg.Sanitize()
	clampTimers(&c.state, &c.cfg)
}

// SetInvariantChecks turns per-step invariant logging on or off.
func (c *Controller) SetInvariantChecks(on bool) {
	c.checks = on
}

// InvariantChecks reports whether per-step invariant logging is on.
func (c *Controller) InvariantChecks() bool {
	return c.checks
}

// Config returns the sanitized tuning in use.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a snapshot of the state record.
func (c *Controller) State() State {
	return c.state
}

// DashPhase returns the phase of the in-flight dash.
func (c *Controller) DashPhase() DashPhase {
	if c.dash == nil {
		return DashIdle
	}
	return c.dash.phase
}

// TimeScale returns the simulation rate owner.
func (c *Controller) TimeScale() *TimeScale {
	return c.clock
}

// Tasks returns the number of in-flight timed tasks.
func (c *Controller) Tasks() int {
	return c.tasks.Len()
}

func (c *Controller) setTrail(on bool) {
	if c.trail != nil {
		c.trail.SetEmitting(on)
	}
}
