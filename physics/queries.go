package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/movement"
)

func queryFilter(mask uint) cp.ShapeFilter {
	if mask == 0 {
		mask = CategoryLevel
	}
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
}

// OverlapCircle reports whether any surface selected by mask lies within
// radius of center.
func (w *World) OverlapCircle(center cp.Vector, radius float64, mask uint) bool {
	if w == nil || w.space == nil || radius <= 0 {
		return false
	}
	info := w.space.PointQueryNearest(center, radius, queryFilter(mask))
	return info.Shape != nil
}

// Raycast casts from origin along dir for distance and returns the first
// surface selected by mask.
func (w *World) Raycast(origin, dir cp.Vector, distance float64, mask uint) (movement.RayHit, bool) {
	if w == nil || w.space == nil || distance <= 0 || dir.LengthSq() == 0 {
		return movement.RayHit{}, false
	}
	end := origin.Add(dir.Normalize().Mult(distance))
	info := w.space.SegmentQueryFirst(origin, end, 0, queryFilter(mask))
	if info.Shape == nil {
		return movement.RayHit{}, false
	}
	return movement.RayHit{Point: info.Point, Normal: info.Normal}, true
}
