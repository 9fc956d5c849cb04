// Package world is the entity index of a shard: it resolves units by id,
// attaches and detaches them, and runs the shard tick loop.
package world

import (
	"log/slog"
	"slices"

	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/game/unit"
	"github.com/udisondev/auracore/internal/replication"
)

// World holds every unit of one shard.
//
// Not thread-safe: only the shard goroutine touches it. Other goroutines go
// through Shard.Submit.
type World struct {
	env    *unit.Env
	hub    *replication.Hub
	ids    *IDGenerator
	logger *slog.Logger

	units map[uint64]*unit.Unit
	// attach order; ticking follows it so runs are reproducible
	order []uint64
}

// New creates an empty world and installs it as env's index. hub may be nil
// when nothing observes the shard.
func New(env *unit.Env, hub *replication.Hub) *World {
	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w := &World{
		env:    env,
		hub:    hub,
		ids:    NewIDGenerator(),
		logger: logger,
		units:  make(map[uint64]*unit.Unit),
	}
	env.Index = w
	if hub != nil && env.Publisher == nil {
		env.Publisher = hub
	}
	return w
}

// Env returns the shared unit environment.
func (w *World) Env() *unit.Env { return w.env }

// Hub returns the replication hub, or nil.
func (w *World) Hub() *replication.Hub { return w.hub }

// Find implements unit.Index.
func (w *World) Find(id uint64) *unit.Unit {
	return w.units[id]
}

// Spawn creates a unit from p and attaches it. A zero id is replaced by a
// fresh one from the id generator.
func (w *World) Spawn(p unit.Params) (*unit.Unit, error) {
	if p.ID == unit.NoTargetID {
		p.ID = w.ids.Next(p.Kind)
	}
	if _, dup := w.units[p.ID]; dup {
		return nil, oops.Code("WORLD_DUPLICATE").With("unit", p.ID).Errorf("unit already in world")
	}

	u := unit.New(w.env, p)
	if err := w.Attach(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Attach adds u to the index and runs its attach hook.
func (w *World) Attach(u *unit.Unit) error {
	if _, dup := w.units[u.ID()]; dup {
		return oops.Code("WORLD_DUPLICATE").With("unit", u.ID()).Errorf("unit already in world")
	}

	w.units[u.ID()] = u
	w.order = append(w.order, u.ID())
	u.Attached()

	w.logger.Debug("unit attached", "unit", u.ID(), "authority", u.IsAuthority())
	return nil
}

// Detach removes the unit with id from the world. Its auras are stripped,
// every other unit forgets it and its observers are dropped. Returns false if
// no such unit exists.
func (w *World) Detach(id uint64) bool {
	u, ok := w.units[id]
	if !ok {
		return false
	}

	delete(w.units, id)
	w.order = slices.DeleteFunc(w.order, func(x uint64) bool { return x == id })
	u.Detached()

	for _, otherID := range w.order {
		w.units[otherID].HandleEntityDetach(u)
	}
	if w.hub != nil && u.IsAuthority() {
		w.hub.Drop(id)
	}

	w.logger.Debug("unit detached", "unit", id)
	return true
}

// Observe creates an observer unit mirroring authority in this world and
// subscribes it to the hub. The observer must live in a different world
// than its authority.
func (w *World) Observe(hub *replication.Hub, authority *unit.Unit) (*unit.Unit, error) {
	if _, dup := w.units[authority.ID()]; dup {
		return nil, oops.Code("WORLD_DUPLICATE").With("unit", authority.ID()).Errorf("unit already in world")
	}

	obs := unit.New(w.env, unit.Params{ID: authority.ID(), Kind: authority.Kind(), Name: authority.Name()})
	hub.Subscribe(authority.State(), obs.State())
	if err := w.Attach(obs); err != nil {
		return nil, err
	}
	return obs, nil
}

// Update ticks every authority unit by deltaMs.
func (w *World) Update(deltaMs int32) {
	for _, id := range slices.Clone(w.order) {
		u, ok := w.units[id]
		if !ok || !u.IsAuthority() {
			continue
		}
		u.DoUpdate(deltaMs)
	}
}

// Len returns the number of attached units.
func (w *World) Len() int { return len(w.units) }

// Units returns the attached units in attach order.
func (w *World) Units() []*unit.Unit {
	out := make([]*unit.Unit, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.units[id])
	}
	return out
}
