package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
	"github.com/milk9111/flipbook/prefabs"
)

var errEmptyPlatform = errors.New("stage: platform size must be positive")

// NewStage creates one static entity per platform of spec.
func NewStage(w *ecs.World, spec *prefabs.StageSpec) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, fmt.Errorf("stage: nil spec")
	}

	entities := make([]ecs.Entity, 0, len(spec.Platforms))
	for i, p := range spec.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return entities, fmt.Errorf("platform %d: %w", i, errEmptyPlatform)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.PlatformComponent, &component.Platform{
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
		}); err != nil {
			return entities, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
