package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Sheet      *ebiten.Image
	Source     image.Rectangle
	OriginX    float64
	OriginY    float64
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
