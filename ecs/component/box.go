package component

import "image/color"

// Box is a filled rectangle centred on the entity's Transform, in level
// units.
type Box struct {
	Width  float64
	Height float64
	Color  color.Color
	Layer  int
}

var BoxComponent = NewComponent[Box]()
