package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/movement"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	gizmoGroundColor = color.NRGBA{R: 255, G: 220, B: 40, A: 230}
	gizmoWallColor   = color.NRGBA{R: 40, G: 200, B: 255, A: 230}
)

func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	cp.DrawSpace(space, newDebugDrawer(w, screen))
}

// DrawGizmos draws each controller's probe geometry: the ground circle and
// the wall rays.
func DrawGizmos(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	d := newDebugDrawer(w, screen)
	ecs.ForEach(w, component.MoverComponent.Kind(), func(_ ecs.Entity, mover *component.Mover) {
		if mover.Controller == nil {
			return
		}
		g := mover.Controller.Gizmos()
		if g.Ground != nil {
			d.drawCircle(g.Ground.Center, g.Ground.Radius, gizmoGroundColor)
		}
		for _, ray := range g.Walls {
			d.drawLine(ray.From, ray.To, gizmoWallColor)
		}
	})
}

func DrawPlayerStateDebug(w *ecs.World, clock *Clock, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	mover, ok := ecs.Get(w, player, component.MoverComponent.Kind())
	if !ok || mover.Controller == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, stateText(mover.Controller, clock, ecs.Components(w, player)), 10, 10)
}

func stateText(ctrl *movement.Controller, clock *Clock, components []string) string {
	s := ctrl.State()
	return fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f  Frame: %d  Scale: %.3f\n"+
			"Grounded: %v  Wall: %v %v\n"+
			"Dash: %s  CanDash: %v  AirDash: %v\n"+
			"WallJump: %v  Landing: %v  JumpHeld: %v\n"+
			"Coyote: %.3f  Buffer: %.3f  Cooldown: %.3f\n"+
			"Move: (%.2f, %.2f)  Facing: %+.0f  Tasks: %d\n"+
			"Components: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), clock.Frame(), clock.Scale().Scale(),
		s.IsGrounded, s.IsTouchingWall, s.WallNormal,
		ctrl.DashPhase(), s.CanDash, s.HasAirDash,
		s.IsWallJumping, s.IsLandingSmoothing, s.JumpHeld,
		s.CoyoteCounter, s.JumpBufferCounter, s.DashCooldownRemaining,
		s.MoveInput.X, s.MoveInput.Y, s.Facing, ctrl.Tasks(),
		strings.Join(components, ", "),
	)
}

// debugDrawer implements cp.Drawer in level units, projected through the
// camera view.
type debugDrawer struct {
	screen *ebiten.Image
	view   view
}

func newDebugDrawer(w *ecs.World, screen *ebiten.Image) *debugDrawer {
	b := screen.Bounds()
	return &debugDrawer{screen: screen, view: viewFor(w, float64(b.Dx()), float64(b.Dy()))}
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toNRGBA(outline)
	d.drawCircle(pos, radius, c)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, c)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toNRGBA(outline)
	d.drawLine(a, b, c)
	if radius > 0 {
		d.drawCircle(a, radius, c)
		d.drawCircle(b, radius, c)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(outline))
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.toScreen(pos.X, pos.Y)
	half := float32(size / 2)
	vector.FillRect(d.screen, float32(x)-half, float32(y)-half, half*2, half*2, toNRGBA(fill), false)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tints walls and ground differently so surface tags are visible.
func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if tag, ok := shape.UserData.(movement.SurfaceTag); ok && tag == movement.SurfaceWall {
		return cp.FColor{R: 0.1, G: 0.4, B: 0.8, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func (d *debugDrawer) drawLine(a, b cp.Vector, c color.Color) {
	x1, y1 := d.view.toScreen(a.X, a.Y)
	x2, y2 := d.view.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, c, true)
}

func (d *debugDrawer) drawPolygon(verts []cp.Vector, c color.Color) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *debugDrawer) drawCircle(center cp.Vector, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	d.drawPolygon(circlePoints(center, radius), c)
}

func circlePoints(center cp.Vector, radius float64) []cp.Vector {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	return points
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
