package replication

import (
	"log/slog"
	"slices"

	"github.com/udisondev/auracore/internal/errutil"
)

// Hub is an in-process bridge: it delivers every delta of an entity to the
// observer mirrors subscribed to it, synchronously and in production order.
// Transport-backed bridges replace it in a networked deployment.
//
// Not thread-safe: publish and subscribe from the shard goroutine.
type Hub struct {
	// OnReject, if set, runs for every delta an observer refused.
	OnReject func()

	observers map[uint64][]*State
	logger    *slog.Logger
	delivered uint64
}

// NewHub creates an empty hub. logger may be nil.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		observers: make(map[uint64][]*State),
		logger:    logger,
	}
}

// Publish implements Publisher.
func (h *Hub) Publish(d Delta) {
	for _, obs := range h.observers[d.Entity] {
		if err := obs.Apply(d); err != nil {
			errutil.LogError(h.logger, "replication delta rejected", err)
			if h.OnReject != nil {
				h.OnReject()
			}
			continue
		}
		h.delivered++
	}
}

// Subscribe seeds observer from authority and registers it for future deltas.
func (h *Hub) Subscribe(authority, observer *State) {
	deltas, seq := authority.Snapshot()
	observer.Seed(deltas, seq)
	h.observers[authority.Entity()] = append(h.observers[authority.Entity()], observer)
}

// Unsubscribe stops delivery to observer.
func (h *Hub) Unsubscribe(observer *State) {
	entity := observer.Entity()
	h.observers[entity] = slices.DeleteFunc(h.observers[entity], func(s *State) bool { return s == observer })
	if len(h.observers[entity]) == 0 {
		delete(h.observers, entity)
	}
}

// Drop forgets every observer of entity (authority detached).
func (h *Hub) Drop(entity uint64) {
	delete(h.observers, entity)
}

// ObserverCount returns the number of observers of entity.
func (h *Hub) ObserverCount(entity uint64) int {
	return len(h.observers[entity])
}

// Delivered returns the number of deltas successfully applied to observers.
func (h *Hub) Delivered() uint64 {
	return h.delivered
}
