package prefabs

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/flipbook/anim"
)

// Phase names the lifecycle point a hook is attached to.
type Phase string

const (
	PhaseStart  Phase = "start"
	PhaseFinish Phase = "finish"
)

// HookFactory turns authored hooks into animation callbacks.
type HookFactory interface {
	Hook(animation string, phase Phase, spec HookSpec) (anim.Callback, error)
}

// LifecycleHooks is implemented by factories that also want a callback on
// every animation, after the authored hooks of that phase.
type LifecycleHooks interface {
	Lifecycle(animation string, phase Phase) anim.Callback
}

var errInvalidSheet = errors.New("prefabs: animation frame size must be positive")

// BuildAnimationSet converts authored animations into a validated anim.Set.
// A nil factory drops every hook.
func BuildAnimationSet(spec AnimationSpec, hooks HookFactory) (*anim.Set, error) {
	if spec.FrameW <= 0 || spec.FrameH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errInvalidSheet, spec.FrameW, spec.FrameH)
	}

	defs := make([]anim.Def, 0, len(spec.Defs))
	for i, ds := range spec.Defs {
		def, err := buildDef(spec, ds, hooks)
		if err != nil {
			return nil, fmt.Errorf("prefabs: animation %d (%s): %w", i, ds.Name, err)
		}
		defs = append(defs, def)
	}

	set, err := anim.NewSet(defs)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %w", err)
	}
	return set, nil
}

func buildDef(sheet AnimationSpec, ds AnimationDefSpec, hooks HookFactory) (anim.Def, error) {
	def := anim.Def{
		Name:       ds.Name,
		Speed:      ds.Speed,
		Loop:       ds.Loop,
		MustFinish: ds.MustFinish,
		Frames:     frameRects(sheet, ds),
	}
	if def.Speed == 0 {
		def.Speed = 1
	}

	for _, name := range ds.Triggers {
		t, err := anim.ParseTrigger(name)
		if err != nil {
			return anim.Def{}, err
		}
		def.Triggers = append(def.Triggers, t)
	}

	for _, ft := range ds.FinishTriggers {
		t, err := anim.ParseTrigger(ft.Trigger)
		if err != nil {
			return anim.Def{}, fmt.Errorf("finish trigger: %w", err)
		}
		def.FinishTriggers = append(def.FinishTriggers, anim.TriggerEffect{Trigger: t, Value: ft.Value})
	}

	var err error
	if def.OnStart, err = buildHooks(hooks, ds.Name, PhaseStart, ds.OnStart); err != nil {
		return anim.Def{}, err
	}
	if def.OnFinish, err = buildHooks(hooks, ds.Name, PhaseFinish, ds.OnFinish); err != nil {
		return anim.Def{}, err
	}
	return def, nil
}

// frameRects cuts FrameCount cells left to right along Row, starting at
// ColStart.
func frameRects(sheet AnimationSpec, ds AnimationDefSpec) []image.Rectangle {
	if ds.FrameCount <= 0 {
		return nil
	}
	frames := make([]image.Rectangle, ds.FrameCount)
	y := ds.Row * sheet.FrameH
	for i := range frames {
		x := (ds.ColStart + i) * sheet.FrameW
		frames[i] = image.Rect(x, y, x+sheet.FrameW, y+sheet.FrameH)
	}
	return frames
}

func buildHooks(hooks HookFactory, animation string, phase Phase, specs []HookSpec) ([]anim.Callback, error) {
	if hooks == nil {
		return nil, nil
	}
	var out []anim.Callback
	for i, hs := range specs {
		if hs.Emit == "" && hs.Script == "" {
			return nil, fmt.Errorf("on_%s hook %d: needs emit or script", phase, i)
		}
		cb, err := hooks.Hook(animation, phase, hs)
		if err != nil {
			return nil, fmt.Errorf("on_%s hook %d: %w", phase, i, err)
		}
		if cb != nil {
			out = append(out, cb)
		}
	}
	if lh, ok := hooks.(LifecycleHooks); ok {
		if cb := lh.Lifecycle(animation, phase); cb != nil {
			out = append(out, cb)
		}
	}
	return out, nil
}

// ControllerOptions maps the authored policy onto controller options.
func ControllerOptions(spec AnimationSpec) []anim.ControllerOption {
	var opts []anim.ControllerOption
	if spec.Policy.MustFinish {
		opts = append(opts, anim.WithMustFinish())
	}
	if spec.Policy.FinishTriggers {
		opts = append(opts, anim.WithFinishTriggers())
	}
	if spec.Policy.CatchUp {
		opts = append(opts, anim.WithPlayerOptions(anim.WithCatchUp()))
	}
	return opts
}
