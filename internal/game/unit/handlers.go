package unit

import (
	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

// EffectHandler is the behavior of one effect type.
//   - Apply runs when a slot is switched on (apply=true) or off. The effect
//     is already registered in the target's type index on apply and already
//     unregistered on unapply.
//   - Periodic runs on every period of a periodic slot.
//   - Late runs in the owner's late-update pass.
type EffectHandler struct {
	Apply    func(e *AuraEffect, apply bool)
	Periodic func(e *AuraEffect)
	Late     func(e *AuraEffect)
}

// effectHandlers maps effect type → behavior. Populated in init().
var effectHandlers = map[aura.EffectType]EffectHandler{}

// RegisterEffectHandler installs the behavior of t, replacing any previous one.
// Call from init(); the table is not guarded.
func RegisterEffectHandler(t aura.EffectType, h EffectHandler) {
	effectHandlers[t] = h
}

func handlerFor(t aura.EffectType) EffectHandler {
	return effectHandlers[t]
}

func init() {
	RegisterEffectHandler(aura.EffectDummy, EffectHandler{})
	RegisterEffectHandler(aura.EffectModIncreaseSpeed, EffectHandler{Apply: handleSpeed})
	RegisterEffectHandler(aura.EffectModDecreaseSpeed, EffectHandler{Apply: handleSpeed})
	RegisterEffectHandler(aura.EffectRoot, EffectHandler{Apply: handleRoot})
	RegisterEffectHandler(aura.EffectStun, EffectHandler{Apply: handleStun})
	RegisterEffectHandler(aura.EffectPeriodicDamage, EffectHandler{Periodic: tickDamage})
	RegisterEffectHandler(aura.EffectPeriodicHeal, EffectHandler{Periodic: tickHeal})
	RegisterEffectHandler(aura.EffectModHaste, EffectHandler{Apply: handleHaste})
	RegisterEffectHandler(aura.EffectModSpellHaste, EffectHandler{Apply: handleHaste})
	RegisterEffectHandler(aura.EffectModSpellPower, EffectHandler{Apply: handleSpellPower})
	RegisterEffectHandler(aura.EffectModMaxHealth, EffectHandler{Apply: handleMaxHealth})
	RegisterEffectHandler(aura.EffectModCritPercent, EffectHandler{Apply: handleCritPercent})
}

func handleSpeed(e *AuraEffect, _ bool) {
	target := e.Target()
	target.UpdateSpeed(model.MoveRun)
	target.UpdateSpeed(model.MoveRunBack)
}

func handleRoot(e *AuraEffect, apply bool) {
	e.Target().SetControlled(apply, model.UnitStateRoot)
}

func handleStun(e *AuraEffect, apply bool) {
	e.Target().SetControlled(apply, model.UnitStateStunned)
}

// periodicSource is who deals the tick: the caster if it is still around,
// the target itself for environment auras.
func periodicSource(e *AuraEffect) *Unit {
	if caster := e.Aura().Caster(); caster != nil {
		return caster
	}
	return e.Target()
}

func tickDamage(e *AuraEffect) {
	target := e.Target()
	if !target.IsAlive() {
		return
	}
	periodicSource(e).DealDamage(target, e.amount)
}

func tickHeal(e *AuraEffect) {
	target := e.Target()
	if !target.IsAlive() {
		return
	}
	periodicSource(e).DealHeal(target, e.amount)
}

// Percent mods recompute from the whole type index so that apply and
// unapply are symmetric.
func handleHaste(e *AuraEffect, _ bool) {
	target := e.Target()
	pct := float32(target.TotalAuraModifier(e.Type())) / 100
	switch e.Type() {
	case aura.EffectModHaste:
		target.modHaste.Set(target.modHaste.Base() * (1 + pct))
	case aura.EffectModSpellHaste:
		target.modSpellHaste.Set(target.modSpellHaste.Base() * (1 + pct))
	}
}

func handleSpellPower(e *AuraEffect, _ bool) {
	target := e.Target()
	target.spellPower.Set(target.spellPower.Base() + target.TotalAuraModifier(aura.EffectModSpellPower))
}

func handleMaxHealth(e *AuraEffect, _ bool) {
	target := e.Target()
	target.maxHealth.Set(target.maxHealth.Base() + target.TotalAuraModifier(aura.EffectModMaxHealth))
	if target.Health() > target.MaxHealth() {
		target.SetHealth(target.MaxHealth())
	}
}

// MiscValue selects the crit kind: 0 melee, 1 ranged, 2 spell.
func handleCritPercent(e *AuraEffect, _ bool) {
	target := e.Target()
	var total float32
	for _, other := range target.effectsByType[aura.EffectModCritPercent] {
		if other.info.MiscValue == e.info.MiscValue {
			total += float32(other.amount)
		}
	}

	attr := target.critPercentage
	switch e.info.MiscValue {
	case 1:
		attr = target.rangedCritPercentage
	case 2:
		attr = target.spellCritPercentage
	}
	attr.Set(attr.Base() + total)
}
