package system

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
	"golang.org/x/image/colornames"
)

type RenderSystem struct {
	Background    color.Color
	PlatformColor color.Color
}

func NewRenderSystem(background, platform color.Color) *RenderSystem {
	if background == nil {
		background = colornames.Midnightblue
	}
	if platform == nil {
		platform = colornames.Dimgray
	}
	return &RenderSystem{Background: background, PlatformColor: platform}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	screen.Fill(r.Background)

	ecs.ForEach(w, component.PlatformComponent, func(e ecs.Entity, p *component.Platform) {
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), r.PlatformColor, false)
	})

	ecs.ForEach2(w, component.SpriteComponent, component.TransformComponent, func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		if s.Sheet == nil || s.Source.Empty() {
			return
		}
		img, ok := s.Sheet.SubImage(s.Source).(*ebiten.Image)
		if !ok || img == nil {
			return
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		scaleX, scaleY := t.ScaleX, t.ScaleY
		if scaleX == 0 {
			scaleX = 1
		}
		if scaleY == 0 {
			scaleY = 1
		}
		if s.FacingLeft {
			op.GeoM.Scale(-1, 1)
		}
		op.GeoM.Scale(scaleX, scaleY)
		op.GeoM.Translate(t.X, t.Y)

		screen.DrawImage(img, op)
	})
}

// FrameBounds returns the on-screen rectangle covered by the sprite of e.
func FrameBounds(w *ecs.World, e ecs.Entity) image.Rectangle {
	s, ok := ecs.Get(w, e, component.SpriteComponent)
	if !ok {
		return image.Rectangle{}
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return image.Rectangle{}
	}
	scaleX, scaleY := t.ScaleX, t.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	minX := t.X - s.OriginX*scaleX
	minY := t.Y - s.OriginY*scaleY
	return image.Rect(int(minX), int(minY), int(minX+float64(s.Source.Dx())*scaleX), int(minY+float64(s.Source.Dy())*scaleY))
}
