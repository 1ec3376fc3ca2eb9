package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/movement"
)

// Clock turns the fixed frame duration into this frame's step tick. It runs
// first so every later system sees the same simulation rate.
type Clock struct {
	scale *movement.TimeScale
	step  float64
	tick  movement.Tick
	frame uint64
}

func NewClock(scale *movement.TimeScale, step float64) *Clock {
	return &Clock{scale: scale, step: step}
}

func (c *Clock) Update(_ *ecs.World) {
	if c == nil {
		return
	}
	c.tick = c.scale.Tick(c.step)
	c.frame++
}

// Tick returns the tick computed by the last Update.
func (c *Clock) Tick() movement.Tick {
	if c == nil {
		return movement.Tick{}
	}
	return c.tick
}

func (c *Clock) Frame() uint64 {
	if c == nil {
		return 0
	}
	return c.frame
}

// Scale returns the shared time scale.
func (c *Clock) Scale() *movement.TimeScale {
	if c == nil {
		return nil
	}
	return c.scale
}
