package unit

import (
	"slices"

	"github.com/oklog/ulid/v2"

	"github.com/udisondev/auracore/internal/game/aura"
)

// Aura is a live instance of an aura definition.
//
// The owner hosts the aura's lifetime: it keeps the aura in its owned list
// and ticks it. The caster is who produced it (NoTargetID for environment
// effects). Both are ids resolved through Env.Index.
type Aura struct {
	id       ulid.ULID
	info     *aura.Info
	env      *Env
	casterID uint64
	ownerID  uint64

	targets      []uint64
	durationMs   int32
	maxDuration  int32
	updated      bool
	removed      bool
	removeMode   aura.RemoveMode
	applications map[uint64]*AuraApplication
	// application order, used for deterministic iteration
	appOrder []*AuraApplication
}

func newAura(info *aura.Info, env *Env, casterID, ownerID uint64, targets []uint64) *Aura {
	return &Aura{
		id:           ulid.Make(),
		info:         info,
		env:          env,
		casterID:     casterID,
		ownerID:      ownerID,
		targets:      targets,
		durationMs:   info.DurationMs,
		maxDuration:  info.DurationMs,
		applications: make(map[uint64]*AuraApplication),
	}
}

// ID returns the instance id.
func (a *Aura) ID() ulid.ULID { return a.id }

// Info returns the definition.
func (a *Aura) Info() *aura.Info { return a.info }

// SpellID returns the definition id.
func (a *Aura) SpellID() int32 { return a.info.ID }

// CasterID returns the caster id (NoTargetID for environment auras).
func (a *Aura) CasterID() uint64 { return a.casterID }

// OwnerID returns the id of the unit hosting the aura.
func (a *Aura) OwnerID() uint64 { return a.ownerID }

// Caster resolves the caster, or nil if it is gone or there is none.
func (a *Aura) Caster() *Unit {
	if a.casterID == NoTargetID {
		return nil
	}
	return a.env.Index.Find(a.casterID)
}

// Owner resolves the owner.
func (a *Aura) Owner() *Unit { return a.env.Index.Find(a.ownerID) }

// Duration returns the remaining duration in milliseconds.
func (a *Aura) Duration() int32 { return a.durationMs }

// MaxDuration returns the duration the aura started with.
func (a *Aura) MaxDuration() int32 { return a.maxDuration }

// IsRemoved reports whether the aura was finalized.
func (a *Aura) IsRemoved() bool { return a.removed }

// IsExpired reports whether the aura ran out of time or was finalized.
func (a *Aura) IsExpired() bool {
	return a.removed || (!a.info.IsPermanent() && a.durationMs <= 0)
}

// Updated reports whether the aura already ticked in the current tick.
func (a *Aura) Updated() bool { return a.updated }

// Application returns the application on target id, or nil.
func (a *Aura) Application(targetID uint64) *AuraApplication {
	return a.applications[targetID]
}

// Applications returns the live applications in application order.
func (a *Aura) Applications() []*AuraApplication {
	return slices.Clone(a.appOrder)
}

// ApplyTo creates an application on target with every effect slot enabled
// and runs the target's apply algorithm. Applying to a target that already
// carries this aura refreshes it instead. It returns nil if the target is an
// observer, the aura is finalized, or the application was removed while
// being applied.
func (a *Aura) ApplyTo(target *Unit) *AuraApplication {
	if a.removed || target == nil || !target.requireAuthority("ApplyAuraApplication") {
		return nil
	}
	if existing := a.applications[target.id]; existing != nil {
		a.Refresh()
		return existing
	}
	app := newApplication(a, target, a.info.EffectMask())
	target.ApplyAuraApplication(app)
	if app.IsRemoved() {
		return nil
	}
	return app
}

// Update advances the duration and ticks periodic effects.
func (a *Aura) Update(deltaMs int32) {
	a.updated = true
	if a.removed {
		return
	}

	if !a.info.IsPermanent() {
		a.durationMs = max(a.durationMs-deltaMs, 0)
	}

	for _, app := range slices.Clone(a.appOrder) {
		for _, e := range app.effects {
			if a.removed || app.IsRemoved() {
				break
			}
			if e != nil && app.appliedMask.Has(e.index) {
				e.update(deltaMs)
			}
		}
	}
}

// LateUpdate runs after every aura of the owner has ticked.
func (a *Aura) LateUpdate() {
	a.updated = false
	for _, app := range slices.Clone(a.appOrder) {
		for _, e := range app.effects {
			if app.IsRemoved() {
				break
			}
			if e != nil && app.appliedMask.Has(e.index) {
				if h := handlerFor(e.info.Type); h.Late != nil {
					h.Late(e)
				}
			}
		}
	}
}

// Refresh restarts the duration and resets periodic timers.
func (a *Aura) Refresh() {
	if a.removed {
		return
	}
	a.durationMs = a.maxDuration
	for _, app := range a.appOrder {
		for _, e := range app.effects {
			if e != nil {
				e.periodTimer = 0
			}
		}
		a.env.Events.Publish(Event{Kind: EventAuraRefreshed, Unit: app.target, Application: app})
	}
}

// SetDuration overrides the remaining duration (clamped to the maximum).
func (a *Aura) SetDuration(ms int32) {
	a.durationMs = min(max(ms, 0), a.maxDuration)
}

func (a *Aura) registerForTarget(target *Unit, app *AuraApplication) {
	if _, ok := a.applications[target.id]; ok {
		a.env.violation(CodeDoubleApply, "aura", a.info.ID, "target", target.id)
		a.unregisterForTarget(target, a.applications[target.id])
	}
	a.applications[target.id] = app
	a.appOrder = append(a.appOrder, app)
}

func (a *Aura) unregisterForTarget(target *Unit, app *AuraApplication) {
	if a.applications[target.id] == app {
		delete(a.applications, target.id)
	}
	a.appOrder = slices.DeleteFunc(a.appOrder, func(x *AuraApplication) bool { return x == app })
}

// finalize removes every application of the aura. Called once, by the owner.
func (a *Aura) finalize(mode aura.RemoveMode) {
	if a.removed {
		return
	}
	a.removed = true
	a.removeMode = mode
	for _, app := range slices.Clone(a.appOrder) {
		app.target.RemoveAura(app, mode)
	}
}
