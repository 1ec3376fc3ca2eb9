package main

import (
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

var (
	playerColor = color.NRGBA{R: 236, G: 112, B: 99, A: 255}
	trailColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 140}
	dustColor   = color.NRGBA{R: 210, G: 200, B: 180, A: 220}
)

// Player ties the player entity to its body and controller.
type Player struct {
	entity ecs.Entity
	body   *physics.Player
	ctrl   *movement.Controller
}

type playerOptions struct {
	probes bool
	checks bool
	scale  *movement.TimeScale
}

// withProbes copies the player's probe geometry into cfg when probes are
// enabled.
func withProbes(cfg movement.Config, spec *prefabs.PlayerSpec, on bool) movement.Config {
	if on && spec != nil {
		cfg.GroundProbe = spec.Probes.Ground
		cfg.WallProbe = spec.Probes.Wall
	}
	return cfg
}

func SpawnPlayer(w *ecs.World, pw *physics.World, spec *prefabs.PlayerSpec, cfg movement.Config, x, y float64, opts playerOptions) *Player {
	body := pw.SpawnPlayer(cp.Vector{X: x, Y: y}, spec.Width, spec.Height)

	trail := &component.TrailEmitter{
		Interval: spec.Trail.Interval,
		Lifetime: spec.Trail.Lifetime,
		Color:    spec.Trail.Color.Or(trailColor),
	}
	dust := &component.DustEmitter{
		Count:    spec.Dust.Count,
		Lifetime: spec.Dust.Lifetime,
		Speed:    spec.Dust.Speed,
		Color:    spec.Dust.Color.Or(dustColor),
	}

	ctrl := movement.NewController(withProbes(cfg, spec, opts.probes), body,
		movement.WithQueries(pw),
		movement.WithTimeScale(opts.scale),
		movement.WithTrail(trail),
		movement.WithDust(dust),
		movement.WithInvariantChecks(opts.checks),
	)
	pw.Listen(body, ctrl)

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.Or(playerColor),
		Layer:  system.LayerPlayer,
	})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Player: body})
	_ = ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Controller: ctrl})
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, e, component.TrailEmitterComponent.Kind(), trail)
	_ = ecs.Add(w, e, component.DustEmitterComponent.Kind(), dust)

	log.Printf("player: %q spawned, probes=%v", spec.Name, opts.probes)
	return &Player{entity: e, body: body, ctrl: ctrl}
}

// Respawn puts the player back at x,y with a fresh controller state. Contacts
// that persist across the teleport are not reported again, so callers
// clear the level surfaces first.
func (p *Player) Respawn(x, y float64) {
	if p == nil {
		return
	}
	p.ctrl.Reset()
	p.body.Teleport(cp.Vector{X: x, Y: y})
}

// Despawn disables the controller, releasing its tasks and leases, then
// removes the body and entity.
func (p *Player) Despawn(w *ecs.World, pw *physics.World) {
	if p == nil {
		return
	}
	p.ctrl.Disable()
	pw.RemovePlayer(p.body)
	ecs.DestroyEntity(w, p.entity)
}

func (p *Player) Controller() *movement.Controller {
	return p.ctrl
}
