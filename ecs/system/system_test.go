package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/physics"
)

const testStep = 1.0 / 60

type stubBody struct {
	pos cp.Vector
	vel cp.Vector
}

func (b *stubBody) Velocity() cp.Vector     { return b.vel }
func (b *stubBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *stubBody) Position() cp.Vector     { return b.pos }

func count[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}

func TestInputSystemAccumulatesEdges(t *testing.T) {
	frames := []InputFrame{
		{MoveX: 1, JumpPressed: true},
		{MoveX: -0.5, MoveY: 1, DashPressed: true},
	}
	next := 0
	in := NewInputSystemFrom(func() InputFrame {
		f := frames[next]
		next++
		return f
	})

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})

	in.Update(w)
	in.Update(w)

	got, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if got.MoveX != -0.5 || got.MoveY != 1 {
		t.Fatalf("move=(%v,%v), want the latest held state", got.MoveX, got.MoveY)
	}
	if !got.JumpPressed || !got.DashPressed || got.JumpReleased {
		t.Fatalf("edges %+v, want jump and dash kept until consumed", got)
	}
}

func TestMovementSystemForwardsEvents(t *testing.T) {
	clock := NewClock(movement.NewTimeScale(1), testStep)
	body := &stubBody{pos: cp.Vector{X: 5, Y: 5}}
	ctrl := movement.NewController(movement.DefaultConfig(), body, movement.WithTimeScale(clock.Scale()))

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Controller: ctrl})
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1, JumpPressed: true})

	sched := ecs.NewScheduler(clock, NewMovementSystem(clock))
	sched.Update(w)

	s := ctrl.State()
	if s.MoveInput.X != 1 || s.Facing != 1 {
		t.Fatalf("move input not forwarded: %+v", s.MoveInput)
	}
	if !s.JumpHeld || s.JumpBufferCounter <= 0 {
		t.Fatalf("airborne jump should be buffered, state %+v", s)
	}
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if in.JumpPressed || in.JumpReleased || in.DashPressed {
		t.Fatalf("edges should be consumed, got %+v", in)
	}

	in.JumpReleased = true
	sched.Update(w)
	if ctrl.State().JumpHeld {
		t.Fatalf("release not forwarded")
	}
}

func TestPhysicsSystemSyncsTransforms(t *testing.T) {
	world := physics.NewWorld(9.81)
	world.AddSurface(cp.BB{L: 0, B: 0, R: 20, T: 1}, movement.SurfaceGround)
	player := world.SpawnPlayer(cp.Vector{X: 5, Y: 4}, 0.8, 1.4)

	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := &component.Transform{}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), tr)
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Player: player})

	clock := NewClock(movement.NewTimeScale(1), testStep)
	sched := ecs.NewScheduler(clock, NewPhysicsSystem(world, clock))
	for i := 0; i < 10; i++ {
		sched.Update(w)
	}

	pos := player.Position()
	if tr.X != pos.X || tr.Y != pos.Y {
		t.Fatalf("transform (%v,%v) != body %v", tr.X, tr.Y, pos)
	}
	if tr.Y >= 4 {
		t.Fatalf("body should fall, y=%v", tr.Y)
	}
}

func TestFrozenClockHoldsPhysics(t *testing.T) {
	world := physics.NewWorld(9.81)
	player := world.SpawnPlayer(cp.Vector{X: 5, Y: 10}, 0.8, 1.4)

	scale := movement.NewTimeScale(1)
	clock := NewClock(scale, testStep)
	ps := NewPhysicsSystem(world, clock)
	w := ecs.NewWorld()

	lease := scale.Acquire(movement.MinScale)
	clock.Update(w)
	ps.Update(w)
	if got := clock.Tick(); got.Real != testStep || got.Sim != testStep*movement.MinScale {
		t.Fatalf("tick %+v under a freeze lease", got)
	}
	if dy := 10 - player.Position().Y; dy > 1e-6 {
		t.Fatalf("frozen step moved the body by %v", dy)
	}
	lease.Release()

	clock.Update(w)
	if clock.Tick().Sim != testStep {
		t.Fatalf("released lease should restore the rate, tick %+v", clock.Tick())
	}
	if clock.Frame() != 2 {
		t.Fatalf("frame=%d, want 2", clock.Frame())
	}
}

func TestEffectsLandingDust(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	dust := &component.DustEmitter{Count: 3, Lifetime: 0.1, Speed: 2}
	_ = ecs.Add(w, e, component.DustEmitterComponent.Kind(), dust)

	var d movement.Dust = dust
	d.PlayLandingDust(cp.Vector{X: 1, Y: 2})

	clock := NewClock(movement.NewTimeScale(1), testStep)
	sched := ecs.NewScheduler(clock, NewEffectsSystem(clock))
	sched.Update(w)

	if len(dust.Pending) != 0 {
		t.Fatalf("pending bursts not consumed")
	}
	if got := count(w, component.FadeComponent.Kind()); got != 3 {
		t.Fatalf("spawned %d particles, want 3", got)
	}
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, v *component.Velocity, tr *component.Transform) {
			if v.Y <= 0 {
				t.Fatalf("dust should rise, velocity %+v", v)
			}
			if math.Abs(math.Hypot(v.X, v.Y)-2) > 1e-9 {
				t.Fatalf("dust speed %v, want 2", math.Hypot(v.X, v.Y))
			}
			if tr.Y <= 2 {
				t.Fatalf("particle did not move, y=%v", tr.Y)
			}
		})

	for i := 0; i < 10; i++ {
		sched.Update(w)
	}
	if got := count(w, component.FadeComponent.Kind()); got != 0 {
		t.Fatalf("%d particles outlived their lifetime", got)
	}
	if !ecs.IsAlive(w, e) {
		t.Fatalf("emitter entity destroyed")
	}
}

func TestEffectsTrail(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	trail := &component.TrailEmitter{Interval: 0.05, Lifetime: 0.1}
	_ = ecs.Add(w, e, component.TrailEmitterComponent.Kind(), trail)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 3, Y: 4})
	_ = ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{Width: 1, Height: 2, Layer: LayerPlayer})

	clock := NewClock(movement.NewTimeScale(1), testStep)
	sched := ecs.NewScheduler(clock, NewEffectsSystem(clock))

	sched.Update(w)
	if got := count(w, component.FadeComponent.Kind()); got != 0 {
		t.Fatalf("idle trail spawned %d ghosts", got)
	}

	var tr movement.Trail = trail
	tr.SetEmitting(true)
	sched.Update(w)
	sched.Update(w)
	if got := count(w, component.FadeComponent.Kind()); got != 1 {
		t.Fatalf("got %d ghosts, want 1 within one interval", got)
	}

	var ghost *component.Box
	ecs.ForEach2(w, component.FadeComponent.Kind(), component.BoxComponent.Kind(),
		func(_ ecs.Entity, _ *component.Fade, b *component.Box) { ghost = b })
	if ghost.Layer != LayerTrail || ghost.Width != 1 || ghost.Height != 2 {
		t.Fatalf("ghost box %+v", ghost)
	}

	tr.SetEmitting(false)
	for i := 0; i < 10; i++ {
		sched.Update(w)
	}
	if got := count(w, component.FadeComponent.Kind()); got != 0 {
		t.Fatalf("%d ghosts left after stopping", got)
	}
}

func TestClampAxis(t *testing.T) {
	cases := []struct {
		name       string
		v, half, n float64
		want       float64
	}{
		{"inside", 10, 5, 40, 10},
		{"low_edge", 2, 5, 40, 5},
		{"high_edge", 39, 5, 40, 35},
		{"level_smaller_than_view", 3, 10, 12, 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := clampAxis(c.v, c.half, c.n); got != c.want {
				t.Fatalf("clampAxis=%v, want %v", got, c.want)
			}
		})
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 32, Smoothness: 1})
	camT := &component.Transform{}
	_ = ecs.Add(w, cam, component.TransformComponent.Kind(), camT)

	level := ecs.CreateEntity(w)
	_ = ecs.Add(w, level, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 40, Height: 22})

	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 20, Y: 2})

	NewCameraSystem(640, 320).Update(w)
	// View is 20x10 units, so Y clamps to 5.
	if camT.X != 20 || camT.Y != 5 {
		t.Fatalf("camera at (%v,%v), want (20,5)", camT.X, camT.Y)
	}

	v := viewFor(w, 640, 320)
	x, y := v.toScreen(21, 6)
	if x != 352 || y != 128 {
		t.Fatalf("toScreen=(%v,%v), want (352,128)", x, y)
	}
}

func TestRenderOrder(t *testing.T) {
	w := ecs.NewWorld()
	add := func(layer int) ecs.Entity {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
		_ = ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{Width: 1, Height: 1, Layer: layer})
		return e
	}
	dust := add(LayerDust)
	player := add(LayerPlayer)
	tile := add(LayerLevel)
	ghost := add(LayerTrail)

	items := NewRenderSystem().collect(w)
	want := []ecs.Entity{tile, ghost, player, dust}
	if len(items) != len(want) {
		t.Fatalf("collected %d items", len(items))
	}
	for i, e := range want {
		if items[i].e != e {
			t.Fatalf("item %d is %v, want %v", i, items[i].e, e)
		}
	}
}
