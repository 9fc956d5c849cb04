package unit

import (
	"slices"

	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/game/aura"
)

// NewAura builds an aura hosted by u, cast by caster (nil for the
// environment), aimed at targets. It is not registered anywhere yet: hand it
// to AddOwnedAura, then ApplyTo each target.
func (u *Unit) NewAura(info *aura.Info, caster *Unit, targets ...*Unit) *Aura {
	casterID := NoTargetID
	if caster != nil {
		casterID = caster.id
	}
	ids := make([]uint64, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.id)
	}
	return newAura(info, u.env, casterID, u.id, ids)
}

// CreateAura builds an aura hosted by u, cast by caster (nil for the
// environment), and applies it to targets.
func (u *Unit) CreateAura(info *aura.Info, caster *Unit, targets ...*Unit) *Aura {
	if !u.requireAuthority("CreateAura") {
		return nil
	}

	a := u.NewAura(info, caster, targets...)
	u.addOwnedAura(a, targets)
	for _, t := range targets {
		if a.removed {
			break
		}
		a.ApplyTo(t)
	}
	return a
}

// CreateAuraByID looks spellID up in the environment catalog and creates it
// like CreateAura.
func (u *Unit) CreateAuraByID(spellID int32, caster *Unit, targets ...*Unit) (*Aura, error) {
	var info *aura.Info
	if u.env.Catalog != nil {
		info = u.env.Catalog.Get(spellID)
	}
	if info == nil {
		return nil, oops.Code("AURA_UNKNOWN").With("aura", spellID, "unit", u.id).Errorf("aura not in catalog")
	}
	return u.CreateAura(info, caster, targets...), nil
}

// AddOwnedAura registers a as hosted by u and removes whatever cannot stack
// with it on its targets. It returns false, changing nothing, if a is hosted
// by another unit, already registered or finalized.
func (u *Unit) AddOwnedAura(a *Aura) bool {
	if !u.requireAuthority("AddOwnedAura") {
		return false
	}
	if a == nil || a.ownerID != u.id || a.removed || slices.Contains(u.ownedAuras, a) {
		return false
	}
	targets := make([]*Unit, 0, len(a.targets))
	for _, id := range a.targets {
		if t := u.env.Index.Find(id); t != nil {
			targets = append(targets, t)
		}
	}
	u.addOwnedAura(a, targets)
	return true
}

func (u *Unit) addOwnedAura(a *Aura, targets []*Unit) {
	u.ownedAuras = append(u.ownedAuras, a)
	u.ownedGen++
	u.ownedAurasByID[a.info.ID] = append(u.ownedAurasByID[a.info.ID], a)

	if len(targets) == 0 {
		u.removeNonStackableAuras(a)
		return
	}
	for _, t := range targets {
		if t.authority {
			t.removeNonStackableAuras(a)
		}
	}
}

// FindOwnedAura returns an owned aura with spellID from casterID, skipping except.
func (u *Unit) FindOwnedAura(spellID int32, casterID uint64, except *Aura) *Aura {
	for _, a := range u.ownedAurasByID[spellID] {
		if a.casterID == casterID && a != except {
			return a
		}
	}
	return nil
}

// ApplyAuraApplication runs the apply algorithm for app on u.
func (u *Unit) ApplyAuraApplication(app *AuraApplication) {
	if !u.requireAuthority("ApplyAuraApplication") || app.target != u {
		return
	}
	a := app.aura

	// 1-2: stacking may remove the application (or finalize its aura)
	u.removeNonStackableAuras(a)
	if a.removed {
		app.Remove(a.removeMode)
	}
	if app.IsRemoved() {
		return
	}

	// 3-5: bookkeeping first, effects may depend on it
	u.handleStateContainingAura(app, true)
	u.handleInterruptableAura(app, true)
	a.registerForTarget(u, app)
	if a.info.StateType != aura.StateNone {
		u.ModifyAuraState(a.info.StateType, true)
	}

	// 6
	for i := range a.info.Effects {
		if app.IsRemoved() {
			break
		}
		if app.effectsToApply.Has(i) {
			app.HandleEffect(i, true)
		}
	}

	// 7
	if app.IsRemoved() {
		return
	}
	u.applications = append(u.applications, app)
	u.applicationsByAuraID[a.info.ID] = append(u.applicationsByAuraID[a.info.ID], app)

	u.env.Recorder.AuraApplied(a.info.ID)
	u.env.Events.Publish(Event{Kind: EventAuraApplied, Unit: u, Application: app})
	u.logger.Debug("aura applied", "aura", a.info.ID, "caster", a.casterID)
}

// UnapplyAuraApplication is the exact reverse of ApplyAuraApplication.
// Afterwards the application is removed and its effect mask is empty.
// It is a no-op unless app is currently registered on u.
func (u *Unit) UnapplyAuraApplication(app *AuraApplication, mode aura.RemoveMode) {
	if app == nil || app.target != u || app.aura.applications[u.id] != app {
		return
	}
	if !u.requireAuthority("UnapplyAuraApplication") {
		return
	}
	a := app.aura

	u.deleteApplication(app)

	u.handleInterruptableAura(app, false)
	u.handleStateContainingAura(app, false)
	a.unregisterForTarget(u, app)
	app.Remove(mode)

	for i := range a.info.Effects {
		if app.appliedMask.Has(i) {
			app.HandleEffect(i, false)
		}
	}

	if app.appliedMask != 0 {
		u.env.violation(CodeEffectMask, "unit", u.id, "aura", a.info.ID, "mask", uint32(app.appliedMask))
		for _, e := range app.effects {
			if e != nil && app.appliedMask.Has(e.index) {
				u.unregisterAuraEffect(e)
			}
		}
		app.appliedMask = 0
	}

	u.env.Recorder.AuraRemoved(mode.String())
	u.env.Events.Publish(Event{Kind: EventAuraUnapplied, Unit: u, Application: app})
	u.logger.Debug("aura removed", "aura", a.info.ID, "mode", mode.String())
}

func (u *Unit) deleteApplication(app *AuraApplication) {
	id := app.aura.info.ID
	list := slices.DeleteFunc(u.applicationsByAuraID[id], func(x *AuraApplication) bool { return x == app })
	if len(list) == 0 {
		delete(u.applicationsByAuraID, id)
	} else {
		u.applicationsByAuraID[id] = list
	}
	u.applications = slices.DeleteFunc(u.applications, func(x *AuraApplication) bool { return x == app })
}

// RemoveAura removes app from u. If u hosts the aura, the aura is finalized
// and its applications on other targets go with it. No-op when already removed.
func (u *Unit) RemoveAura(app *AuraApplication, mode aura.RemoveMode) {
	if app == nil || app.removed {
		return
	}
	if !u.requireAuthority("RemoveAura") {
		return
	}
	u.UnapplyAuraApplication(app, mode)
	if app.aura.ownerID == u.id {
		u.removeOwnedAura(app.aura, mode)
	}
}

// RemoveAuraInstance removes the application of a on u, if any.
func (u *Unit) RemoveAuraInstance(a *Aura, mode aura.RemoveMode) {
	u.RemoveAura(a.applications[u.id], mode)
}

// RemoveAurasByID removes every application of spellID on u. casterID
// NoTargetID matches any caster.
func (u *Unit) RemoveAurasByID(spellID int32, casterID uint64, mode aura.RemoveMode) int {
	removed := 0
	for _, app := range slices.Clone(u.applicationsByAuraID[spellID]) {
		if casterID != NoTargetID && app.aura.casterID != casterID {
			continue
		}
		if !app.removed {
			u.RemoveAura(app, mode)
			removed++
		}
	}
	return removed
}

// RemoveOwnedAura drops a from u's owned list and finalizes it.
func (u *Unit) RemoveOwnedAura(a *Aura, mode aura.RemoveMode) {
	if !u.requireAuthority("RemoveOwnedAura") {
		return
	}
	u.removeOwnedAura(a, mode)
}

func (u *Unit) removeOwnedAura(a *Aura, mode aura.RemoveMode) {
	if i := slices.Index(u.ownedAuras, a); i >= 0 {
		u.ownedAuras = slices.Delete(u.ownedAuras, i, i+1)
		u.ownedGen++
	}
	id := a.info.ID
	list := slices.DeleteFunc(u.ownedAurasByID[id], func(x *Aura) bool { return x == a })
	if len(list) == 0 {
		delete(u.ownedAurasByID, id)
	} else {
		u.ownedAurasByID[id] = list
	}
	a.finalize(mode)
}

// removeNonStackableAuras removes every application on u that cannot stack
// with incoming. The conflict set is decided up front, then all of it goes.
func (u *Unit) removeNonStackableAuras(incoming *Aura) {
	stacked := 0
	for _, app := range u.applications {
		if app.aura != incoming && app.aura.info.ID == incoming.info.ID && app.aura.casterID == incoming.casterID {
			stacked++
		}
	}

	var conflicts []*AuraApplication
	for _, app := range u.applications {
		if !u.env.Stacking.CanStack(app.aura, incoming, stacked) {
			conflicts = append(conflicts, app)
		}
	}
	for _, app := range conflicts {
		u.RemoveAura(app, aura.RemoveDefault)
	}
}

func (u *Unit) handleInterruptableAura(app *AuraApplication, added bool) {
	if !app.aura.info.HasInterruptFlags() {
		return
	}

	if added {
		u.interruptable = append(u.interruptable, app)
		u.interruptFlags |= app.aura.info.InterruptFlags
		return
	}

	u.interruptable = slices.DeleteFunc(u.interruptable, func(x *AuraApplication) bool { return x == app })
	u.interruptFlags = aura.InterruptNone
	for _, other := range u.interruptable {
		u.interruptFlags |= other.aura.info.InterruptFlags
	}
}

func (u *Unit) handleStateContainingAura(app *AuraApplication, added bool) {
	st := app.aura.info.StateType
	if st == aura.StateNone {
		return
	}

	if added {
		u.applicationsByState[st] = append(u.applicationsByState[st], app)
		u.ModifyAuraState(st, true)
		return
	}

	list := slices.DeleteFunc(u.applicationsByState[st], func(x *AuraApplication) bool { return x == app })
	if len(list) == 0 {
		delete(u.applicationsByState, st)
	} else {
		u.applicationsByState[st] = list
	}
	u.ModifyAuraState(st, len(list) > 0)
}

func (u *Unit) registerAuraEffect(e *AuraEffect) {
	t := e.info.Type
	u.effectsByType[t] = append(u.effectsByType[t], e)
}

func (u *Unit) unregisterAuraEffect(e *AuraEffect) {
	t := e.info.Type
	list := slices.DeleteFunc(u.effectsByType[t], func(x *AuraEffect) bool { return x == e })
	if len(list) == 0 {
		delete(u.effectsByType, t)
	} else {
		u.effectsByType[t] = list
	}
}

// ModifyAuraState sets or clears an aura state bit.
func (u *Unit) ModifyAuraState(st aura.StateType, apply bool) {
	if apply {
		u.auraState |= st.Mask()
	} else {
		u.auraState &^= st.Mask()
	}
}

// HasAuraState reports whether st is active.
func (u *Unit) HasAuraState(st aura.StateType) bool {
	return st != aura.StateNone && u.auraState&st.Mask() != 0
}

// InterruptAuras removes every interruptable application whose flags
// intersect flags.
func (u *Unit) InterruptAuras(flags aura.InterruptFlags) {
	if !u.interruptFlags.Has(flags) {
		return
	}
	for _, app := range slices.Clone(u.interruptable) {
		if app.aura.info.InterruptFlags.Has(flags) {
			u.RemoveAura(app, aura.RemoveInterrupt)
		}
	}
}

// InterruptFlags returns the union of interrupt flags of every interruptable
// application on u.
func (u *Unit) InterruptFlags() aura.InterruptFlags { return u.interruptFlags }

// HasAuraType reports whether any live effect of type t affects u.
func (u *Unit) HasAuraType(t aura.EffectType) bool {
	return len(u.effectsByType[t]) > 0
}

// AuraEffects returns the live effects of type t.
func (u *Unit) AuraEffects(t aura.EffectType) []*AuraEffect {
	return slices.Clone(u.effectsByType[t])
}

// TotalAuraModifier sums the amounts of every effect of type t.
func (u *Unit) TotalAuraModifier(t aura.EffectType) int32 {
	var total int32
	for _, e := range u.effectsByType[t] {
		total += e.amount
	}
	return total
}

// MaxPositiveAuraModifier returns the largest positive amount of type t, or 0.
func (u *Unit) MaxPositiveAuraModifier(t aura.EffectType) int32 {
	var best int32
	for _, e := range u.effectsByType[t] {
		best = max(best, e.amount)
	}
	return best
}

// MaxNegativeAuraModifier returns the most negative amount of type t, or 0.
func (u *Unit) MaxNegativeAuraModifier(t aura.EffectType) int32 {
	var worst int32
	for _, e := range u.effectsByType[t] {
		worst = min(worst, e.amount)
	}
	return worst
}

// HasAura reports whether an application of spellID affects u.
func (u *Unit) HasAura(spellID int32) bool {
	return len(u.applicationsByAuraID[spellID]) > 0
}

// AuraApplications returns the applications affecting u, oldest first.
func (u *Unit) AuraApplications() []*AuraApplication {
	return slices.Clone(u.applications)
}

// AuraApplicationsByID returns the applications of spellID affecting u.
func (u *Unit) AuraApplicationsByID(spellID int32) []*AuraApplication {
	return slices.Clone(u.applicationsByAuraID[spellID])
}

// OwnedAuras returns the auras hosted by u.
func (u *Unit) OwnedAuras() []*Aura {
	return slices.Clone(u.ownedAuras)
}

// removeAurasOnDeath strips every application that does not survive death.
func (u *Unit) removeAurasOnDeath() {
	for _, app := range slices.Clone(u.applications) {
		if !app.aura.info.Attributes.Has(aura.AttrDeathPersistent) {
			u.RemoveAura(app, aura.RemoveDeath)
		}
	}
}
