package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Draw order of Box layers.
const (
	LayerLevel = iota
	LayerTrail
	LayerPlayer
	LayerDust
)

type RenderSystem struct {
	background color.Color
	drawList   []drawItem
}

type drawItem struct {
	e   ecs.Entity
	t   *component.Transform
	box *component.Box
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{background: color.NRGBA{R: 24, G: 26, B: 34, A: 255}}
}

func (r *RenderSystem) SetBackground(c color.Color) {
	if r == nil || c == nil {
		return
	}
	r.background = c
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(r.background)

	b := screen.Bounds()
	v := viewFor(w, float64(b.Dx()), float64(b.Dy()))

	for _, item := range r.collect(w) {
		c := item.box.Color
		if c == nil {
			c = color.White
		}
		if fade, ok := ecs.Get(w, item.e, component.FadeComponent.Kind()); ok {
			c = withAlpha(c, fade.Alpha)
		}
		// Top-left corner in screen space.
		x, y := v.toScreen(item.t.X-item.box.Width/2, item.t.Y+item.box.Height/2)
		vector.FillRect(screen, float32(x), float32(y),
			float32(item.box.Width*v.zoom), float32(item.box.Height*v.zoom), c, false)
	}
}

// collect returns the boxes to draw ordered by layer, then entity.
func (r *RenderSystem) collect(w *ecs.World) []drawItem {
	r.drawList = r.drawList[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.BoxComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, box *component.Box) {
			r.drawList = append(r.drawList, drawItem{e: e, t: t, box: box})
		})
	sort.SliceStable(r.drawList, func(i, j int) bool {
		a, b := r.drawList[i], r.drawList[j]
		if a.box.Layer != b.box.Layer {
			return a.box.Layer < b.box.Layer
		}
		return uint64(a.e) < uint64(b.e)
	})
	return r.drawList
}

func withAlpha(c color.Color, alpha float32) color.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * alpha)
	return n
}
