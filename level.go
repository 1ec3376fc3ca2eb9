package main

import (
	"image/color"
	"strings"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

var (
	groundColor = color.NRGBA{R: 92, G: 84, B: 110, A: 255}
	wallColor   = color.NRGBA{R: 70, G: 96, B: 128, A: 255}
)

// Level is the set of entities and static shapes built from one level spec.
type Level struct {
	file     string
	spec     *prefabs.LevelSpec
	entities []ecs.Entity
}

func levelFile(name string) string {
	if name == "" {
		return prefabs.DefaultLevel
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		return name + ".yaml"
	}
	return name
}

// LoadLevel reads the named level and adds its surfaces to both worlds.
func LoadLevel(name string, w *ecs.World, pw *physics.World) (*Level, error) {
	file := levelFile(name)
	spec, err := prefabs.LoadLevelSpec(file)
	if err != nil {
		return nil, err
	}

	lvl := &Level{file: file, spec: spec}
	for _, s := range spec.Surfaces {
		bb := s.BB()
		pw.AddSurface(bb, s.Tag.SurfaceTag)

		c := color.Color(groundColor)
		if s.Tag.SurfaceTag == movement.SurfaceWall {
			c = wallColor
		}
		e := ecs.CreateEntity(w)
		center := bb.Center()
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y})
		_ = ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{Width: s.W, Height: s.H, Color: c, Layer: system.LayerLevel})
		_ = ecs.Add(w, e, component.StaticTileComponent.Kind(), &component.StaticTile{Tag: s.Tag.SurfaceTag})
		lvl.entities = append(lvl.entities, e)
	}

	bounds := ecs.CreateEntity(w)
	_ = ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: spec.Width, Height: spec.Height})
	lvl.entities = append(lvl.entities, bounds)

	return lvl, nil
}

// Unload removes the level's entities and shapes.
func (l *Level) Unload(w *ecs.World, pw *physics.World) {
	if l == nil {
		return
	}
	for _, e := range l.entities {
		ecs.DestroyEntity(w, e)
	}
	l.entities = nil
	pw.ClearSurfaces()
}

func (l *Level) File() string {
	return l.file
}

func (l *Level) Spawn() (x, y float64) {
	return l.spec.Spawn.X, l.spec.Spawn.Y
}

func (l *Level) Background() color.Color {
	return l.spec.Background.Or(color.NRGBA{R: 24, G: 26, B: 34, A: 255})
}
