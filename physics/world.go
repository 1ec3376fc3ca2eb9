package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/movement"
)

const (
	collisionTypeSurface cp.CollisionType = iota + 1
	collisionTypePlayer
)

// Shape filter categories. Probe masks select from CategoryGround and
// CategoryWall; a zero mask means every level surface.
const (
	CategoryGround uint = 1 << iota
	CategoryWall
	CategoryPlayer

	CategoryLevel = CategoryGround | CategoryWall
)

const (
	groundFriction = 0.8
	playerMass     = 1.0
	iterations     = 20
	// Level units are tiles, not pixels.
	collisionSlop = 0.01
)

// ContactListener receives contact begin/end notifications for one body.
// *movement.Controller satisfies it.
type ContactListener interface {
	ContactBegin(key any, normal cp.Vector, tag movement.SurfaceTag)
	ContactEnd(key any)
}

// World owns the Chipmunk space, the static level surfaces and the player
// bodies. Y points up.
type World struct {
	space         *cp.Space
	handlersReady bool

	surfaces  []*cp.Shape
	listeners map[*cp.Shape]ContactListener
}

// NewWorld creates a world pulling bodies down with gravity.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = iterations
	space.SetCollisionSlop(collisionSlop)
	space.SetGravity(cp.Vector{X: 0, Y: -math.Abs(gravity)})

	w := &World{
		space:     space,
		listeners: make(map[*cp.Shape]ContactListener),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// SetGravity changes the downward acceleration.
func (w *World) SetGravity(gravity float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: -math.Abs(gravity)})
}

// AddSurface adds a static rectangle tagged as ground or wall.
func (w *World) AddSurface(bb cp.BB, tag movement.SurfaceTag) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}

	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	category := CategoryGround
	if tag == movement.SurfaceWall {
		category = CategoryWall
	} else {
		shape.SetFriction(groundFriction)
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES))
	shape.SetCollisionType(collisionTypeSurface)
	shape.UserData = tag
	w.space.AddShape(shape)
	w.surfaces = append(w.surfaces, shape)
	return shape
}

// Surfaces returns the static level shapes in insertion order.
func (w *World) Surfaces() []*cp.Shape {
	return w.surfaces
}

// ClearSurfaces removes every static surface, ending their contacts.
func (w *World) ClearSurfaces() {
	if w == nil || w.space == nil {
		return
	}
	for _, s := range w.surfaces {
		w.space.RemoveShape(s)
	}
	w.surfaces = w.surfaces[:0]
}

// SpawnPlayer adds a rotation-locked dynamic box centred on pos.
func (w *World) SpawnPlayer(pos cp.Vector, width, height float64) *Player {
	if w == nil || w.space == nil {
		return nil
	}

	body := cp.NewBody(playerMass, math.Inf(1))
	body.SetPosition(pos)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryPlayer, cp.ALL_CATEGORIES))
	shape.SetCollisionType(collisionTypePlayer)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	log.Printf("physics: spawned player at (%.2f, %.2f)", pos.X, pos.Y)

	return &Player{body: body, shape: shape, width: width, height: height}
}

// RemovePlayer takes p out of the space.
func (w *World) RemovePlayer(p *Player) {
	if w == nil || w.space == nil || p == nil {
		return
	}
	delete(w.listeners, p.shape)
	w.space.RemoveShape(p.shape)
	w.space.RemoveBody(p.body)
}

// Listen routes contacts of p with level surfaces to l. A nil listener
// stops routing.
func (w *World) Listen(p *Player, l ContactListener) {
	if w == nil || p == nil {
		return
	}
	if l == nil {
		delete(w.listeners, p.shape)
		return
	}
	w.listeners[p.shape] = l
}

// Step advances the simulation by dt seconds of simulated time.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

func (w *World) setupHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	handler := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypeSurface)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		player, surface := arb.Shapes()
		l := world.listeners[player]
		if l == nil {
			return true
		}
		tag, _ := surface.UserData.(movement.SurfaceTag)
		// The arbiter normal points from the player into the surface.
		l.ContactBegin(surface, arb.Normal().Neg(), tag)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		player, surface := arb.Shapes()
		if l := world.listeners[player]; l != nil {
			l.ContactEnd(surface)
		}
	}

	w.handlersReady = true
}
