package physics

import "github.com/jakecoffman/cp"

// Player is a dynamic box body. It satisfies movement.Body.
type Player struct {
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64
}

func (p *Player) Velocity() cp.Vector {
	return p.body.Velocity()
}

func (p *Player) SetVelocity(v cp.Vector) {
	p.body.SetVelocityVector(v)
}

func (p *Player) Position() cp.Vector {
	return p.body.Position()
}

// Teleport moves the body to pos and stops it.
func (p *Player) Teleport(pos cp.Vector) {
	p.body.SetPosition(pos)
	p.body.SetVelocityVector(cp.Vector{})
}

// Size returns the box width and height.
func (p *Player) Size() (float64, float64) {
	return p.width, p.height
}

// Body returns the underlying Chipmunk body.
func (p *Player) Body() *cp.Body {
	return p.body
}
