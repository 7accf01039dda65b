package system

import (
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
)

const tick = 1.0 / 60.0

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func frames(row, n int) []image.Rectangle {
	out := make([]image.Rectangle, n)
	for i := range out {
		out[i] = image.Rect(i*32, row*32, (i+1)*32, (row+1)*32)
	}
	return out
}

func testController(t *testing.T) *anim.Controller {
	t.Helper()
	set, err := anim.NewSet([]anim.Def{
		{Name: "idle", Speed: 1, Loop: true, Frames: frames(0, 4)},
		{Name: "run", Speed: 1, Loop: true, Triggers: []anim.Trigger{anim.TriggerMoving}, Frames: frames(1, 6)},
		{Name: "jump", Speed: 1, Triggers: []anim.Trigger{anim.TriggerAirborne}, Frames: frames(2, 3)},
	})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	c, err := anim.NewController(set)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, h, v); err != nil {
		t.Fatalf("Add %v: %v", h, err)
	}
}

func TestObserve(t *testing.T) {
	cases := []struct {
		name  string
		input *component.Input
		body  *component.PhysicsBody
		want  anim.Observation
	}{
		{name: "bare", want: anim.Observation{}},
		{name: "airborne_without_input", body: &component.PhysicsBody{}, want: anim.Observation{Airborne: true}},
		{name: "grounded", body: &component.PhysicsBody{Grounded: true}, want: anim.Observation{}},
		{
			name:  "run_attack",
			input: &component.Input{MoveX: -1, AttackPressed: true},
			body:  &component.PhysicsBody{Grounded: true},
			want:  anim.Observation{MoveX: -1, Attacking: true},
		},
		{
			name:  "held_attack_in_air",
			input: &component.Input{Attack: true},
			body:  &component.PhysicsBody{},
			want:  anim.Observation{Airborne: true, Attacking: true},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			if c.input != nil {
				mustAdd(t, w, e, component.InputComponent, c.input)
			}
			if c.body != nil {
				mustAdd(t, w, e, component.PhysicsBodyComponent, c.body)
			}
			if got := Observe(w, e); got != c.want {
				t.Fatalf("Observe = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestTriggerAndAnimationSystems(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	controller := testController(t)
	input := &component.Input{}
	body := &component.PhysicsBody{Grounded: true}
	sprite := &component.Sprite{}
	mustAdd(t, w, e, component.InputComponent, input)
	mustAdd(t, w, e, component.PhysicsBodyComponent, body)
	mustAdd(t, w, e, component.SpriteComponent, sprite)
	mustAdd(t, w, e, component.AnimatorComponent, &component.Animator{Controller: controller})

	triggers := NewTriggerSystem(quietLogger())
	animation := NewAnimationSystem(tick, quietLogger())
	run := func() {
		triggers.Update(w)
		animation.Update(w)
	}

	run()
	if def, _ := controller.Active(); def.Name != "idle" {
		t.Fatalf("expected idle, got %s", def.Name)
	}
	if sprite.Source != frames(0, 4)[0] {
		t.Fatalf("sprite not set to idle frame 0: %v", sprite.Source)
	}

	input.MoveX = -1
	run()
	if def, _ := controller.Active(); def.Name != "run" {
		t.Fatalf("expected run, got %s", def.Name)
	}
	if !sprite.FacingLeft {
		t.Fatalf("sprite should face left")
	}
	if sprite.Source != frames(1, 6)[0] {
		t.Fatalf("switch did not rewind to run frame 0: %v", sprite.Source)
	}

	body.Grounded = false
	run()
	if def, _ := controller.Active(); def.Name != "jump" {
		t.Fatalf("airborne should win over moving, got %s", def.Name)
	}

	input.MoveX = 0
	body.Grounded = true
	run()
	if def, _ := controller.Active(); def.Name != "idle" {
		t.Fatalf("expected idle, got %s", def.Name)
	}
	if !sprite.FacingLeft {
		t.Fatalf("facing should persist without horizontal input")
	}
}

func TestPhysicsGroundsPlayer(t *testing.T) {
	w := ecs.NewWorld()

	ground := ecs.CreateEntity(w)
	mustAdd(t, w, ground, component.PlatformComponent, &component.Platform{X: 0, Y: 400, Width: 400, Height: 40})

	player := ecs.CreateEntity(w)
	transform := &component.Transform{X: 100, Y: 300}
	body := &component.PhysicsBody{Width: 20, Height: 30, Mass: 1}
	mustAdd(t, w, player, component.PlayerTagComponent, &component.PlayerTag{})
	mustAdd(t, w, player, component.TransformComponent, transform)
	mustAdd(t, w, player, component.PhysicsBodyComponent, body)

	physics := NewPhysicsSystem(1400, tick, 0, 0)
	physics.Update(w)
	if body.Body == nil {
		t.Fatalf("body was not created")
	}
	if body.Grounded {
		t.Fatalf("player should start airborne")
	}

	for i := 0; i < 120; i++ {
		physics.Update(w)
	}
	if !body.Grounded {
		t.Fatalf("player should rest on the platform")
	}
	if transform.Y < 380 || transform.Y > 390 {
		t.Fatalf("expected player to rest near y=385, got %.2f", transform.Y)
	}

	ecs.DestroyEntity(w, player)
	physics.Update(w)
	if len(physics.entities) != 1 {
		t.Fatalf("expected only the platform body to remain, got %d", len(physics.entities))
	}
}

func TestPlayerControllerJumpsFromGround(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	input := &component.Input{MoveX: 1, JumpPressed: true}
	body := &component.PhysicsBody{Width: 20, Height: 30, Mass: 1}
	mustAdd(t, w, e, component.PlayerComponent, &component.Player{MoveSpeed: 200, JumpPower: 500})
	mustAdd(t, w, e, component.InputComponent, input)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{})
	mustAdd(t, w, e, component.PhysicsBodyComponent, body)

	physics := NewPhysicsSystem(0, tick, 0, 0)
	physics.Update(w)

	controller := NewPlayerControllerSystem()
	controller.Update(w)
	vel := body.Body.Velocity()
	if vel.X != 200 || vel.Y != 0 {
		t.Fatalf("airborne jump should not fire: %+v", vel)
	}

	body.Grounded = true
	controller.Update(w)
	vel = body.Body.Velocity()
	if vel.Y != -500 {
		t.Fatalf("expected jump velocity -500, got %.2f", vel.Y)
	}
	if body.Grounded {
		t.Fatalf("jumping should clear grounded")
	}
}

func TestEventLogKeepsRecent(t *testing.T) {
	w := ecs.NewWorld()
	events := NewEventLogSystem(quietLogger())
	for i := 0; i < recentEvents+2; i++ {
		w.Events().Push(ecs.Event{Type: ecs.EventAnimationEmit, Name: string(rune('a' + i))})
	}
	events.Update(w)

	recent := events.Recent()
	if len(recent) != recentEvents {
		t.Fatalf("expected %d recent events, got %d", recentEvents, len(recent))
	}
	if recent[0].Name != "c" {
		t.Fatalf("expected oldest kept event c, got %s", recent[0].Name)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("queue should be drained")
	}
}

func TestReloadSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	animator := &component.Animator{Prefab: "player.yaml"}
	mustAdd(t, w, e, component.AnimatorComponent, animator)

	reload := NewReloadSystem(quietLogger())
	reload.Update(w)
	if animator.Controller != nil {
		t.Fatalf("reload ran without a request")
	}

	if err := RequestReload(w, "player.yaml"); err != nil {
		t.Fatalf("RequestReload: %v", err)
	}
	reload.Update(w)
	if animator.Controller == nil {
		t.Fatalf("controller was not rebuilt")
	}
	if _, _, ok := ecs.First(w, component.ReloadRequestComponent); ok {
		t.Fatalf("reload request should be consumed")
	}
}
