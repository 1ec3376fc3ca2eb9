package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
)

// Fade drives an effect entity's alpha from 1 to 0. The entity is destroyed
// when the tween finishes.
type Fade struct {
	Tween *gween.Tween
	Alpha float32
}

var FadeComponent = NewComponent[Fade]()

// Velocity moves effect entities that have no physics body.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// TrailEmitter spawns fading copies of its entity's Box while Emitting.
type TrailEmitter struct {
	Emitting bool
	Interval float64
	Lifetime float64
	Color    color.Color
	elapsed  float64
}

// SetEmitting satisfies movement.Trail.
func (t *TrailEmitter) SetEmitting(on bool) {
	t.Emitting = on
}

// Due advances the emitter clock and reports whether a ghost should spawn.
func (t *TrailEmitter) Due(dt float64) bool {
	if !t.Emitting {
		t.elapsed = 0
		return false
	}
	t.elapsed -= dt
	if t.elapsed > 0 {
		return false
	}
	t.elapsed = t.Interval
	return true
}

var TrailEmitterComponent = NewComponent[TrailEmitter]()

// DustEmitter holds the landing burst settings and any bursts requested
// since the last effects update.
type DustEmitter struct {
	Count    int
	Lifetime float64
	Speed    float64
	Color    color.Color
	Pending  []Burst
}

// Burst is one requested landing puff in world space.
type Burst struct {
	X float64
	Y float64
}

// PlayLandingDust satisfies movement.Dust. The burst is spawned by the
// effects system on its next update.
func (d *DustEmitter) PlayLandingDust(pos cp.Vector) {
	d.Pending = append(d.Pending, Burst{X: pos.X, Y: pos.Y})
}

var DustEmitterComponent = NewComponent[DustEmitter]()
