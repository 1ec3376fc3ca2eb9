package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	ticksPerSecond = 60
	fixedStep      = 1.0 / ticksPerSecond
)

type Options struct {
	Level  string
	Debug  bool
	Probes bool
}

type Game struct {
	opts Options

	world   *ecs.World
	physics *physics.World
	sched   *ecs.Scheduler
	clock   *system.Clock
	render  *system.RenderSystem

	cfg        movement.Config
	playerSpec *prefabs.PlayerSpec
	level      *Level
	player     *Player

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
	paused  bool
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := prefabs.LoadMovementConfig(prefabs.MovementFile)
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:       opts,
		world:      ecs.NewWorld(),
		physics:    physics.NewWorld(cfg.Gravity),
		clock:      system.NewClock(movement.NewTimeScale(1), fixedStep),
		render:     system.NewRenderSystem(),
		cfg:        cfg,
		playerSpec: playerSpec,
	}

	g.level, err = LoadLevel(opts.Level, g.world, g.physics)
	if err != nil {
		return nil, err
	}
	g.render.SetBackground(g.level.Background())
	g.spawnPlayer()
	g.spawnCamera()

	g.sched = ecs.NewScheduler(
		g.clock,
		system.NewInputSystem(),
		system.NewMovementSystem(g.clock),
		system.NewPhysicsSystem(g.physics, g.clock),
		system.NewEffectsSystem(g.clock),
		system.NewCameraSystem(baseWidth, baseHeight),
	)

	if w, err := prefabs.NewWatcher(prefabs.Dir); err != nil {
		log.Printf("prefabs: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) spawnPlayer() {
	x, y := g.level.Spawn()
	g.player = SpawnPlayer(g.world, g.physics, g.playerSpec, g.cfg, x, y, playerOptions{
		probes: g.opts.Probes,
		checks: g.opts.Debug,
		scale:  g.clock.Scale(),
	})
}

func (g *Game) respawnPlayer() {
	g.player.Despawn(g.world, g.physics)
	g.spawnPlayer()
}

// toggleDebug flips debug drawing and the player's invariant checks together.
func (g *Game) toggleDebug() {
	g.opts.Debug = !g.opts.Debug
	if g.player != nil {
		g.player.Controller().SetInvariantChecks(g.opts.Debug)
	}
}

func (g *Game) spawnCamera() {
	x, y := g.level.Spawn()
	cam := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: system.DefaultZoom, Smoothness: 0.15})
	_ = ecs.Add(g.world, cam, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.toggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawnPlayer()
	}
	g.reloadChanged()

	g.sched.Update(g.world)
	return nil
}

// reloadChanged applies spec files edited since the last frame.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		if err := g.reload(name); err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
		}
	}
}

func (g *Game) reload(name string) error {
	switch name {
	case prefabs.MovementFile:
		cfg, err := prefabs.LoadMovementConfig(name)
		if err != nil {
			return err
		}
		g.cfg = cfg
		g.player.ctrl.SetConfig(withProbes(cfg, g.playerSpec, g.opts.Probes))
		g.physics.SetGravity(cfg.Gravity)
	case prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		g.playerSpec = spec
		g.respawnPlayer()
	case g.level.File():
		g.level.Unload(g.world, g.physics)
		lvl, err := LoadLevel(g.level.File(), g.world, g.physics)
		if err != nil {
			// The level stays empty until the file is fixed.
			return err
		}
		g.level = lvl
		g.render.SetBackground(lvl.Background())
		g.player.Respawn(lvl.Spawn())
	default:
		return nil
	}
	log.Printf("prefabs: reloaded %s", name)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.opts.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawGizmos(g.world, screen)
		system.DrawPlayerStateDebug(g.world, g.clock, screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) String() string {
	return fmt.Sprintf("level=%s debug=%v probes=%v", g.level.File(), g.opts.Debug, g.opts.Probes)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
