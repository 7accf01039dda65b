package ecs

// EventType identifies an event kind.
type EventType string

const (
	EventAnimationStart  EventType = "animation_start"
	EventAnimationFinish EventType = "animation_finish"
	EventAnimationEmit   EventType = "animation_emit"
	EventScriptError     EventType = "script_error"
)

// Event is a world event raised by one entity.
type Event struct {
	Type   EventType
	Entity Entity
	Name   string
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
