package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/prefabs"
)

// EventHooks turns authored animation hooks of one entity into world events.
// Scripts are compiled once when the hook is built and run on every call.
type EventHooks struct {
	World  *ecs.World
	Entity ecs.Entity
}

func (h *EventHooks) Hook(animation string, phase prefabs.Phase, spec prefabs.HookSpec) (anim.Callback, error) {
	var compiled *tengo.Compiled
	if spec.Script != "" {
		var err error
		compiled, err = compileHookScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("%s %s hook: %w", animation, phase, err)
		}
	}

	return func(def *anim.Def) {
		if spec.Emit != "" {
			h.emit(spec.Emit, def.Name)
		}
		if compiled != nil {
			h.runScript(compiled, spec.Script, def.Name, phase)
		}
	}, nil
}

func (h *EventHooks) emit(name, animation string) {
	h.World.Events().Push(ecs.Event{
		Type:   ecs.EventAnimationEmit,
		Entity: h.Entity,
		Name:   name,
		Data:   animation,
	})
}

func (h *EventHooks) runScript(compiled *tengo.Compiled, name, animation string, phase prefabs.Phase) {
	err := compiled.Set("animation", animation)
	if err == nil {
		err = compiled.Set("phase", string(phase))
	}
	if err == nil {
		err = compiled.Set("entity", int64(h.Entity))
	}
	if err == nil {
		err = compiled.Run()
	}
	if err != nil {
		h.World.Events().Push(ecs.Event{Type: ecs.EventScriptError, Entity: h.Entity, Name: name, Data: err})
		return
	}

	if !compiled.IsDefined("emit") {
		return
	}
	if out := compiled.Get("emit").String(); out != "" {
		h.emit(out, animation)
	}
}

func compileHookScript(name string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, global := range []string{"animation", "phase"} {
		if err := script.Add(global, ""); err != nil {
			return nil, err
		}
	}
	if err := script.Add("entity", 0); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return compiled, nil
}

// Lifecycle reports every start and finish of animation on the world queue.
func (h *EventHooks) Lifecycle(animation string, phase prefabs.Phase) anim.Callback {
	typ := ecs.EventAnimationStart
	if phase == prefabs.PhaseFinish {
		typ = ecs.EventAnimationFinish
	}
	return func(def *anim.Def) {
		h.World.Events().Push(ecs.Event{Type: typ, Entity: h.Entity, Name: def.Name})
	}
}
