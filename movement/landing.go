package movement

import (
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	landingSmoothTaskName = "landing_smooth"
	landingFreezeTaskName = "landing_freeze"
)

// landingSmooth eases vertical velocity linearly from its landing value to
// zero while suppressing horizontal acceleration.
type landingSmooth struct {
	tween *gween.Tween
}

// land runs on the airborne to grounded edge.
func (c *Controller) land(vy float64) {
	if -vy >= c.cfg.LandingFallThreshold {
		return
	}

	if c.dust != nil {
		c.dust.PlayLandingDust(c.groundCheckPosition())
	}

	if c.cfg.LandingFreeze {
		c.tasks.Start(newFreezeTask(landingFreezeTaskName, c.clock, c.cfg.LandingFreezeScale, c.cfg.LandingFreezeDuration))
	}

	if c.cfg.LandingSmoothing && !c.state.IsDashing {
		if c.landing != nil {
			c.tasks.Cancel(c, c.landing)
		}
		c.state.IsLandingSmoothing = true
		c.state.LandingSmoothRemaining = c.cfg.LandingSmoothingTime
		l := &landingSmooth{
			tween: gween.New(float32(vy), 0, float32(c.cfg.LandingSmoothingTime), ease.Linear),
		}
		c.landing = l
		c.tasks.Start(l)
	}
}

func (l *landingSmooth) Name() string { return landingSmoothTaskName }

func (l *landingSmooth) Advance(c *Controller, t Tick) bool {
	vy, done := l.tween.Update(float32(t.Sim))
	decay(&c.state.LandingSmoothRemaining, t.Sim)
	if c.state.LandingSmoothRemaining <= 0 {
		done = true
	}

	v := c.body.Velocity()
	if done {
		v.Y = 0
	} else {
		v.Y = float64(vy)
	}
	c.body.SetVelocity(v)

	if done {
		l.release(c)
	}
	return done
}

func (l *landingSmooth) Abort(c *Controller) {
	c.state.LandingSmoothRemaining = 0
	l.release(c)
}

func (l *landingSmooth) release(c *Controller) {
	c.state.IsLandingSmoothing = false
	if c.landing == l {
		c.landing = nil
	}
}

// groundCheckPosition is where landing dust spawns: the ground probe when
// configured, the body position otherwise.
func (c *Controller) groundCheckPosition() cp.Vector {
	pos := c.body.Position()
	if p := c.cfg.GroundProbe; p != nil {
		pos.X += p.OffsetX
		pos.Y += p.OffsetY
	}
	return pos
}
