package movement

import (
	"math"

	"github.com/jakecoffman/cp"
)

// minDashInputSq is the squared input magnitude below which the dash falls
// back to the facing direction.
const minDashInputSq = 0.01

// DashPhase is the dash sequence state.
type DashPhase int

const (
	DashIdle DashPhase = iota
	DashCommitting
	DashActive
	DashRecovering
	DashCooldown
)

func (p DashPhase) String() string {
	switch p {
	case DashCommitting:
		return "committing"
	case DashActive:
		return "active"
	case DashRecovering:
		return "recovering"
	case DashCooldown:
		return "cooldown"
	default:
		return "idle"
	}
}

const dashTaskName = "dash"

type dashTask struct {
	phase   DashPhase
	dir     cp.Vector
	elapsed float64
	freeze  *ScaleLease
}

// startDash commits a dash. Guards live in DashPressed.
func (c *Controller) startDash() {
	s := &c.state
	if c.landing != nil {
		c.tasks.Cancel(c, c.landing)
		c.landing = nil
	}

	s.CanDash = false
	s.IsDashing = true
	c.body.SetVelocity(cp.Vector{})

	d := &dashTask{phase: DashCommitting, dir: c.dashDirection()}
	if c.cfg.DashFreeze {
		d.freeze = c.clock.Acquire(c.cfg.DashFreezeScale)
	} else {
		d.activate(c)
	}
	c.dash = d
	c.tasks.Start(d)
}

func (c *Controller) dashDirection() cp.Vector {
	s := &c.state
	if s.IsTouchingWall && (s.WallNormal.X != 0 || s.WallNormal.Y != 0) {
		return cp.Vector{X: sign(s.WallNormal.X)}
	}
	if s.MoveInput.LengthSq() > minDashInputSq {
		return s.MoveInput.Normalize()
	}
	return cp.Vector{X: s.Facing}
}

func (d *dashTask) Name() string { return dashTaskName }

func (d *dashTask) activate(c *Controller) {
	d.phase = DashActive
	d.elapsed = 0
	c.setTrail(true)
	c.body.SetVelocity(d.dir.Mult(c.cfg.DashSpeed))
}

func (d *dashTask) Advance(c *Controller, t Tick) bool {
	switch d.phase {
	case DashCommitting:
		d.elapsed += t.Real
		if d.elapsed+timeEpsilon < c.cfg.DashFreezeDuration {
			return false
		}
		d.freeze.Release()
		d.freeze = nil
		d.activate(c)
		return false

	case DashActive:
		d.elapsed += t.Sim
		if d.elapsed+timeEpsilon < c.cfg.DashDuration {
			c.body.SetVelocity(d.dir.Mult(c.cfg.DashSpeed))
			return false
		}
		d.recover(c)
		return c.cfg.DashCooldown <= 0

	case DashCooldown:
		decay(&c.state.DashCooldownRemaining, t.Sim)
		if c.state.DashCooldownRemaining > 0 {
			return false
		}
		d.finish(c)
		return true
	}
	return true
}

// recover hands control back and enters the cooldown wait.
func (d *dashTask) recover(c *Controller) {
	d.phase = DashRecovering
	c.setTrail(false)
	v := c.body.Velocity()
	v.X = c.state.MoveInput.X * c.cfg.MoveSpeed
	c.body.SetVelocity(v)
	c.state.IsDashing = false

	d.phase = DashCooldown
	c.state.DashCooldownRemaining = c.cfg.DashCooldown
	if c.cfg.DashCooldown <= 0 {
		d.finish(c)
	}
}

func (d *dashTask) finish(c *Controller) {
	d.phase = DashIdle
	c.state.DashCooldownRemaining = 0
	c.state.CanDash = true
	if c.dash == d {
		c.dash = nil
	}
}

func (d *dashTask) Abort(c *Controller) {
	d.freeze.Release()
	d.freeze = nil
	if d.phase == DashActive || d.phase == DashCommitting {
		c.setTrail(false)
	}
	c.state.IsDashing = false
	d.finish(c)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func approach(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + math.Copysign(maxDelta, target-current)
}
