package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	dustSize = 0.12
	// Dust spreads over an upward fan of this half-angle.
	dustSpread = math.Pi / 3
)

// EffectsSystem owns the dash trail ghosts and landing dust. Effects run on
// simulated time so freeze frames hold them in place.
type EffectsSystem struct {
	clock *Clock
}

func NewEffectsSystem(clock *Clock) *EffectsSystem {
	return &EffectsSystem{clock: clock}
}

func (s *EffectsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.clock.Tick().Sim

	ecs.ForEach3(w, component.TrailEmitterComponent.Kind(), component.TransformComponent.Kind(), component.BoxComponent.Kind(),
		func(_ ecs.Entity, trail *component.TrailEmitter, t *component.Transform, box *component.Box) {
			if trail.Due(dt) {
				spawnGhost(w, trail, *t, *box)
			}
		})

	ecs.ForEach(w, component.DustEmitterComponent.Kind(), func(_ ecs.Entity, dust *component.DustEmitter) {
		for _, b := range dust.Pending {
			spawnDust(w, dust, b)
		}
		dust.Pending = dust.Pending[:0]
	})

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, v *component.Velocity, t *component.Transform) {
			t.X += v.X * dt
			t.Y += v.Y * dt
		})

	ecs.ForEach(w, component.FadeComponent.Kind(), func(e ecs.Entity, fade *component.Fade) {
		if fade.Tween == nil {
			ecs.DestroyEntity(w, e)
			return
		}
		alpha, done := fade.Tween.Update(float32(dt))
		fade.Alpha = alpha
		if done {
			ecs.DestroyEntity(w, e)
		}
	})
}

func newFade(lifetime float64) *component.Fade {
	return &component.Fade{
		Tween: gween.New(1, 0, float32(lifetime), ease.Linear),
		Alpha: 1,
	}
}

func spawnGhost(w *ecs.World, trail *component.TrailEmitter, t component.Transform, box component.Box) {
	e := ecs.CreateEntity(w)
	box.Layer = LayerTrail
	if trail.Color != nil {
		box.Color = trail.Color
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &t)
	_ = ecs.Add(w, e, component.BoxComponent.Kind(), &box)
	_ = ecs.Add(w, e, component.FadeComponent.Kind(), newFade(trail.Lifetime))
}

func spawnDust(w *ecs.World, dust *component.DustEmitter, b component.Burst) {
	n := dust.Count
	for i := 0; i < n; i++ {
		// Evenly spaced across the fan, from left to right.
		frac := 0.5
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		angle := math.Pi/2 + dustSpread*(1-2*frac)

		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: b.X, Y: b.Y})
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{
			X: math.Cos(angle) * dust.Speed,
			Y: math.Sin(angle) * dust.Speed,
		})
		_ = ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{
			Width:  dustSize,
			Height: dustSize,
			Color:  dust.Color,
			Layer:  LayerDust,
		})
		_ = ecs.Add(w, e, component.FadeComponent.Kind(), newFade(dust.Lifetime))
	}
}
