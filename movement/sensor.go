package movement

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	groundNormalThreshold = 0.9
	wallNormalThreshold   = 0.95
)

// SurfaceTag identifies what kind of surface a contact belongs to.
type SurfaceTag int

const (
	SurfaceNone SurfaceTag = iota
	SurfaceGround
	SurfaceWall
)

func (t SurfaceTag) String() string {
	switch t {
	case SurfaceGround:
		return "ground"
	case SurfaceWall:
		return "wall"
	default:
		return "none"
	}
}

// RayHit is the result of a successful raycast.
type RayHit struct {
	Point  cp.Vector
	Normal cp.Vector
}

// Queries is the broad-phase collaborator used by the explicit probes.
type Queries interface {
	OverlapCircle(center cp.Vector, radius float64, mask uint) bool
	Raycast(origin, dir cp.Vector, distance float64, mask uint) (RayHit, bool)
}

type contactKind uint8

const (
	contactIgnored contactKind = iota
	contactGround
	contactWall
)

type contact struct {
	kind   contactKind
	normal cp.Vector
}

// Sensor derives grounded/wall contact each step. Ground and wall use the
// explicit probes when configured and contact events otherwise.
type Sensor struct {
	queries Queries

	contacts   map[any]contact
	grounds    int
	walls      int
	lastWall   cp.Vector
	lastWallAt any
}

// NewSensor creates a sensor. queries may be nil when no probe is configured.
func NewSensor(queries Queries) *Sensor {
	return &Sensor{queries: queries, contacts: make(map[any]contact, 8)}
}

// Reading is one step's sensed contact state.
type Reading struct {
	Grounded   bool
	Wall       bool
	WallNormal cp.Vector
}

// Read samples the configured strategies at body position pos.
func (s *Sensor) Read(cfg *Config, pos cp.Vector) Reading {
	var r Reading

	if cfg.GroundProbe != nil && s.queries != nil {
		p := cfg.GroundProbe
		center := cp.Vector{X: pos.X + p.OffsetX, Y: pos.Y + p.OffsetY}
		r.Grounded = s.queries.OverlapCircle(center, p.Radius, p.Mask)
	} else {
		r.Grounded = s.grounds > 0
	}

	if cfg.WallProbe != nil && s.queries != nil {
		r.Wall, r.WallNormal = s.probeWalls(cfg.WallProbe, pos)
	} else if s.walls > 0 {
		r.Wall = true
		r.WallNormal = s.lastWall
	}

	return r
}

// probeWalls casts left then right; a left hit wins when both hit.
func (s *Sensor) probeWalls(p *WallProbe, pos cp.Vector) (bool, cp.Vector) {
	left := cp.Vector{X: pos.X + p.LeftX, Y: pos.Y + p.LeftY}
	if _, ok := s.queries.Raycast(left, cp.Vector{X: -1}, p.Distance, p.Mask); ok {
		return true, cp.Vector{X: 1}
	}
	right := cp.Vector{X: pos.X + p.RightX, Y: pos.Y + p.RightY}
	if _, ok := s.queries.Raycast(right, cp.Vector{X: 1}, p.Distance, p.Mask); ok {
		return true, cp.Vector{X: -1}
	}
	return false, cp.Vector{}
}

// ContactBegin records a contact. normal points away from the surface
// toward the body. A near-vertical normal always classifies as ground, even
// on a wall-tagged surface.
func (s *Sensor) ContactBegin(key any, normal cp.Vector, tag SurfaceTag) {
	if tag == SurfaceNone {
		return
	}
	s.ContactEnd(key)

	c := contact{kind: classify(normal, tag), normal: normal}
	switch c.kind {
	case contactGround:
		s.grounds++
	case contactWall:
		s.walls++
		s.lastWall = normal
		s.lastWallAt = key
	default:
		return
	}
	s.contacts[key] = c
}

// ContactEnd forgets a contact started with ContactBegin.
func (s *Sensor) ContactEnd(key any) {
	c, ok := s.contacts[key]
	if !ok {
		return
	}
	delete(s.contacts, key)
	switch c.kind {
	case contactGround:
		s.grounds--
	case contactWall:
		s.walls--
		if s.walls == 0 {
			s.lastWall = cp.Vector{}
			s.lastWallAt = nil
		} else if s.lastWallAt == key {
			for k, other := range s.contacts {
				if other.kind == contactWall {
					s.lastWall = other.normal
					s.lastWallAt = k
					break
				}
			}
		}
	}
}

// Clear drops every remembered contact.
func (s *Sensor) Clear() {
	for k := range s.contacts {
		delete(s.contacts, k)
	}
	s.grounds = 0
	s.walls = 0
	s.lastWall = cp.Vector{}
	s.lastWallAt = nil
}

func classify(n cp.Vector, tag SurfaceTag) contactKind {
	if math.Abs(n.Y) > groundNormalThreshold {
		return contactGround
	}
	if math.Abs(n.X) > wallNormalThreshold {
		return contactWall
	}
	// Slopes on ground-tagged surfaces still count as floor.
	if tag == SurfaceGround {
		return contactGround
	}
	return contactIgnored
}
