package unit

import "github.com/udisondev/auracore/internal/game/aura"

// AuraApplication binds one aura to one target and tracks which effect
// slots are live on it. Removal is terminal and happens once.
type AuraApplication struct {
	aura   *Aura
	target *Unit

	effectsToApply aura.EffectMask
	appliedMask    aura.EffectMask
	effects        []*AuraEffect

	removed    bool
	removeMode aura.RemoveMode
}

func newApplication(a *Aura, target *Unit, effectsToApply aura.EffectMask) *AuraApplication {
	app := &AuraApplication{
		aura:           a,
		target:         target,
		effectsToApply: effectsToApply,
		effects:        make([]*AuraEffect, len(a.info.Effects)),
	}
	caster := a.Caster()
	for i := range a.info.Effects {
		if !effectsToApply.Has(i) {
			continue
		}
		e := &AuraEffect{index: i, info: &a.info.Effects[i], app: app}
		e.amount = a.env.Formulas.EffectAmount(caster, target, e)
		app.effects[i] = e
	}
	return app
}

// Aura returns the applied aura.
func (app *AuraApplication) Aura() *Aura { return app.aura }

// Target returns the affected unit.
func (app *AuraApplication) Target() *Unit { return app.target }

// EffectsToApply returns the slots switched on at apply time.
func (app *AuraApplication) EffectsToApply() aura.EffectMask { return app.effectsToApply }

// AppliedEffectMask returns the slots currently live on the target.
func (app *AuraApplication) AppliedEffectMask() aura.EffectMask { return app.appliedMask }

// Effect returns slot i, or nil if the slot is not part of the application.
func (app *AuraApplication) Effect(i int) *AuraEffect {
	if i < 0 || i >= len(app.effects) {
		return nil
	}
	return app.effects[i]
}

// IsRemoved reports whether Remove was called.
func (app *AuraApplication) IsRemoved() bool { return app.removed }

// RemoveMode returns why the application was removed.
func (app *AuraApplication) RemoveMode() aura.RemoveMode { return app.removeMode }

// Remove flips the application to its terminal state. It returns false if
// it was already removed.
func (app *AuraApplication) Remove(mode aura.RemoveMode) bool {
	if app.removed {
		return false
	}
	app.removed = true
	app.removeMode = mode
	return true
}

// HandleEffect switches slot i on or off. Activation is skipped once the
// application is removed; deactivation always runs for a live slot.
func (app *AuraApplication) HandleEffect(i int, apply bool) {
	e := app.Effect(i)
	if e == nil {
		return
	}

	if apply {
		if app.removed || app.appliedMask.Has(i) {
			return
		}
		app.appliedMask = app.appliedMask.With(i)
		app.target.registerAuraEffect(e)
		if h := handlerFor(e.info.Type); h.Apply != nil {
			h.Apply(e, true)
		}
		return
	}

	if !app.appliedMask.Has(i) {
		return
	}
	app.appliedMask = app.appliedMask.Without(i)
	app.target.unregisterAuraEffect(e)
	if h := handlerFor(e.info.Type); h.Apply != nil {
		h.Apply(e, false)
	}
}
