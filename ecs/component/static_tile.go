package component

import "github.com/milk9111/platformer/movement"

// StaticTile marks a level surface. Its Transform is the rectangle centre.
type StaticTile struct {
	Tag movement.SurfaceTag
}

var StaticTileComponent = NewComponent[StaticTile]()
