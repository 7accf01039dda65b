package system

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/component"
	"golang.org/x/image/colornames"
)

// DebugOverlay prints the animation state of the player and the latest
// world events, and outlines the drawn frame.
type DebugOverlay struct {
	events *EventLogSystem
}

func NewDebugOverlay(events *EventLogSystem) *DebugOverlay {
	return &DebugOverlay{events: events}
}

func (d *DebugOverlay) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	e, _, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}

	lines := []string{fmt.Sprintf("TPS %.0f", ebiten.ActualTPS())}
	lines = append(lines, DescribeAnimator(w, e)...)
	if d.events != nil {
		for _, evt := range d.events.Recent() {
			lines = append(lines, fmt.Sprintf("  %s %s", evt.Type, evt.Name))
		}
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)

	b := FrameBounds(w, e)
	if !b.Empty() {
		vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), 1, colornames.Yellow, false)
	}
}

// DescribeAnimator returns human readable lines about the animator of e.
func DescribeAnimator(w *ecs.World, e ecs.Entity) []string {
	animator, ok := ecs.Get(w, e, component.AnimatorComponent)
	if !ok || animator.Controller == nil {
		return []string{"no animator"}
	}

	c := animator.Controller
	lines := []string{"triggers: " + c.Triggers().String()}
	def, ok := c.Active()
	if !ok {
		return append(lines, "animation: none")
	}
	frame := c.Player().FrameIndex(c.Selected())
	lines = append(lines, fmt.Sprintf("animation: %s frame %d/%d", def.Name, frame, len(def.Frames)))
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		lines = append(lines, fmt.Sprintf("grounded: %t", body.Grounded))
	}
	return lines
}
