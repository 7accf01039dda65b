package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/assets"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/entity"
	"github.com/milk9111/flipbook/prefabs"
)

var errFrameOutside = errors.New("frame outside sprite sheet")

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate animation prefabs",
	Long: `Parse each prefab, build its animation set, compile its hook scripts
and check every frame against the sprite sheet. With no arguments the
player prefab is checked.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{filepath.Join(prefabs.Dir, "player.yaml")}
	}

	var failed int
	for _, path := range args {
		n, err := validateFile(path)
		if err != nil {
			failed++
			logger.Error("invalid", "file", path, "error", err)
			continue
		}
		logger.Info("ok", "file", path, "animations", n)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d prefabs invalid", failed, len(args))
	}
	return nil
}

func validateFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	spec, err := prefabs.ParseSpec[prefabs.PlayerSpec](path, data)
	if err != nil {
		return 0, err
	}

	w := ecs.NewWorld()
	set, err := prefabs.BuildAnimationSet(spec.Animation, &entity.EventHooks{World: w, Entity: ecs.CreateEntity(w)})
	if err != nil {
		return 0, err
	}

	sheet, err := assets.DecodeImage(spec.Animation.Sheet)
	if err != nil {
		return 0, fmt.Errorf("sheet %s: %w", spec.Animation.Sheet, err)
	}
	if err := checkFrames(set, sheet.Bounds()); err != nil {
		return 0, err
	}

	for id := anim.ID(0); int(id) < set.Len(); id++ {
		def, _ := set.Def(id)
		logger.Debug("animation", "id", id, "name", def.Name, "triggers", def.Triggers, "frames", len(def.Frames), "loop", def.Loop)
	}
	return set.Len(), nil
}

func checkFrames(set *anim.Set, bounds image.Rectangle) error {
	for id := anim.ID(0); int(id) < set.Len(); id++ {
		def, _ := set.Def(id)
		for i, frame := range def.Frames {
			if !frame.In(bounds) {
				return fmt.Errorf("%s frame %d %v: %w %v", def.Name, i, frame, errFrameOutside, bounds)
			}
		}
	}
	return nil
}
