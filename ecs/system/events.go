package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/flipbook/ecs"
)

const recentEvents = 6

// EventLogSystem drains the world event queue once per fixed tick and keeps
// the most recent events for the debug overlay.
type EventLogSystem struct {
	logger *log.Logger
	recent []ecs.Event
}

func NewEventLogSystem(logger *log.Logger) *EventLogSystem {
	return &EventLogSystem{logger: logger}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventScriptError:
			s.logger.Error("animation script failed", "entity", evt.Entity, "script", evt.Name, "error", evt.Data)
		default:
			s.logger.Debug("event", "type", evt.Type, "entity", evt.Entity, "name", evt.Name, "data", evt.Data)
		}

		s.recent = append(s.recent, evt)
		if len(s.recent) > recentEvents {
			s.recent = s.recent[len(s.recent)-recentEvents:]
		}
	}
}

// Recent returns the last few events, oldest first.
func (s *EventLogSystem) Recent() []ecs.Event {
	return s.recent
}
