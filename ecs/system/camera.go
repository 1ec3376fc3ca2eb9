package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const DefaultZoom = 32

// CameraSystem eases the camera towards the player and keeps the view
// inside the level bounds.
type CameraSystem struct {
	screenW float64
	screenH float64
}

func NewCameraSystem(screenW, screenH float64) *CameraSystem {
	return &CameraSystem{screenW: screenW, screenH: screenH}
}

func (c *CameraSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	camEntity, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camT, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	player, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 1
	}
	camT.X += (target.X - camT.X) * smooth
	camT.Y += (target.Y - camT.Y) * smooth

	if _, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		zoom := cam.Zoom
		if zoom <= 0 {
			zoom = DefaultZoom
		}
		camT.X = clampAxis(camT.X, c.screenW/zoom/2, bounds.Width)
		camT.Y = clampAxis(camT.Y, c.screenH/zoom/2, bounds.Height)
	}
}

// clampAxis keeps a view of half-extent half inside [0,size], centring it
// when the level is smaller than the view.
func clampAxis(v, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	if v < half {
		return half
	}
	if v > size-half {
		return size - half
	}
	return v
}

// view maps level units (Y up) to screen pixels (Y down).
type view struct {
	camX, camY float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func viewFor(w *ecs.World, screenW, screenH float64) view {
	v := view{zoom: DefaultZoom, halfW: screenW / 2, halfH: screenH / 2}
	camEntity, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam.Zoom > 0 {
		v.zoom = cam.Zoom
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		v.camX, v.camY = t.X, t.Y
	}
	return v
}

func (v view) toScreen(x, y float64) (float64, float64) {
	return (x-v.camX)*v.zoom + v.halfW, v.halfH - (y-v.camY)*v.zoom
}
