package ecs

// EventType names what happened in the simulation.
type EventType string

const (
	EventStateChanged EventType = "state_changed"
	EventAttack       EventType = "attack"
	EventPickup       EventType = "pickup"
	EventShot         EventType = "shot"
)

// MaxQueuedEvents bounds the queue for hosts that never drain it.
const MaxQueuedEvents = 4096

// Event is one notification from a tick; Data holds a typed payload such
// as system.StateChange or player.FireResult.
type Event struct {
	Type EventType
	Data any
}

// EventQueue collects events until the host drains them. When full the
// oldest event is dropped.
type EventQueue struct {
	items   []Event
	dropped int
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if len(q.items) >= MaxQueuedEvents {
		q.items = q.items[1:]
		q.dropped++
	}
	q.items = append(q.items, evt)
}

// Drain hands over every queued event in push order.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Dropped counts events lost to the size bound.
func (q *EventQueue) Dropped() int {
	if q == nil {
		return 0
	}
	return q.dropped
}
