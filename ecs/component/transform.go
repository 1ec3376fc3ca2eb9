package component

// Transform is a world-space position in level units with Y pointing up.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
