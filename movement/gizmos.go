package movement

import "github.com/jakecoffman/cp"

// Circle is a diagnostic circle in world space.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Ray is a diagnostic segment in world space.
type Ray struct {
	From cp.Vector
	To   cp.Vector
}

// Gizmos is the probe geometry for debug drawing. It never affects
// behaviour.
type Gizmos struct {
	Ground *Circle
	Walls  []Ray
}

// Gizmos returns the configured probe geometry at the current body
// position. Empty when probes are not configured.
func (c *Controller) Gizmos() Gizmos {
	var g Gizmos
	if c.body == nil {
		return g
	}
	pos := c.body.Position()

	if p := c.cfg.GroundProbe; p != nil {
		g.Ground = &Circle{
			Center: cp.Vector{X: pos.X + p.OffsetX, Y: pos.Y + p.OffsetY},
			Radius: p.Radius,
		}
	}
	if p := c.cfg.WallProbe; p != nil {
		left := cp.Vector{X: pos.X + p.LeftX, Y: pos.Y + p.LeftY}
		right := cp.Vector{X: pos.X + p.RightX, Y: pos.Y + p.RightY}
		g.Walls = []Ray{
			{From: left, To: left.Add(cp.Vector{X: -p.Distance})},
			{From: right, To: right.Add(cp.Vector{X: p.Distance})},
		}
	}
	return g
}
