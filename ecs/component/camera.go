package component

// Camera marks the view entity. Its Transform is the world point shown at
// the screen centre.
type Camera struct {
	// Zoom is screen pixels per level unit.
	Zoom float64
	// Smoothness in (0,1]; 1 snaps to the target every frame.
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()

// LevelBounds is the playable extent, from the origin, in level units.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
