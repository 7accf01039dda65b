package system

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
	"github.com/milk9111/flipbook/ecs/entity"
	"github.com/milk9111/flipbook/prefabs"
)

// ReloadSystem consumes ReloadRequest entities and rebuilds every animator
// from its prefab. A prefab that fails to load or validate keeps the old
// animations running.
type ReloadSystem struct {
	logger *log.Logger
}

func NewReloadSystem(logger *log.Logger) *ReloadSystem {
	return &ReloadSystem{logger: logger}
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var paths []string
	ecs.ForEach(w, component.ReloadRequestComponent, func(e ecs.Entity, req *component.ReloadRequest) {
		paths = append(paths, req.Path)
		ecs.DestroyEntity(w, e)
	})
	if len(paths) == 0 {
		return
	}

	ecs.ForEach(w, component.AnimatorComponent, func(e ecs.Entity, animator *component.Animator) {
		if err := entity.ReloadAnimator(w, e); err != nil {
			r.logger.Error("reload failed, keeping current animations", "entity", e, "prefab", animator.Prefab, "error", err)
			return
		}
		fields := []any{"entity", e, "prefab", animator.Prefab, "changed", paths}
		if mod, ok := prefabs.ModTime(animator.Prefab); ok {
			fields = append(fields, "modified", mod.Format(time.TimeOnly))
		}
		r.logger.Info("animations reloaded", fields...)
	})
}

// RequestReload queues a reload. The frame scheduler handles it on the next
// Update, before input and selection run.
func RequestReload(w *ecs.World, path string) error {
	e := ecs.CreateEntity(w)
	return ecs.Add(w, e, component.ReloadRequestComponent, &component.ReloadRequest{Path: path})
}
