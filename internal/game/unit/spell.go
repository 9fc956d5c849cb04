package unit

import (
	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

// SpellInfo is the part of a spell definition the core reads.
type SpellInfo struct {
	ID         int32
	Name       string
	Positive   bool
	SchoolMask uint32

	MinRangeFriend  float32
	MinRangeHostile float32
	MaxRangeFriend  float32
	MaxRangeHostile float32

	InterruptFlags aura.InterruptFlags
}

// MinRange returns the minimum range against a friendly or hostile target.
func (s *SpellInfo) MinRange(friendly bool) float32 {
	if friendly {
		return s.MinRangeFriend
	}
	return s.MinRangeHostile
}

// MaxRange returns the maximum range against a friendly or hostile target.
func (s *SpellInfo) MaxRange(friendly bool) float32 {
	if friendly {
		return s.MaxRangeFriend
	}
	return s.MaxRangeHostile
}

// MissType is the outcome of a hit roll.
type MissType uint8

const (
	MissNone MissType = iota
	MissMiss
	MissResist
	MissImmune
	MissEvade
	MissReflect
)

// HitType qualifies a landed hit.
type HitType uint8

const (
	HitNormal HitType = iota
	HitCritical
)

// SpellDamageInfo carries one spell hit through damage resolution.
type SpellDamageInfo struct {
	Target     *Unit
	Info       *SpellInfo
	Damage     int32
	Absorb     int32
	Resist     int32
	HitType    HitType
	SchoolMask uint32
}

// DamageBySpell deals a resolved spell hit and announces it.
func (u *Unit) DamageBySpell(d *SpellDamageInfo) int32 {
	victim := d.Target
	if victim == nil || !victim.IsAlive() {
		return 0
	}

	u.env.Events.Publish(Event{
		Kind:     EventSpellDamageDone,
		Unit:     u,
		Other:    victim,
		Amount:   d.Damage,
		Critical: d.HitType == HitCritical,
	})

	victim.InterruptAuras(aura.InterruptHitBySpell)
	return u.DealDamage(victim, d.Damage)
}

// HealBySpell heals target for a spell, adding the caster's healing bonus.
func (u *Unit) HealBySpell(target *Unit, info *SpellInfo, amount int32, _ bool) int32 {
	if info != nil {
		amount += u.env.Formulas.SpellHealingBonusDone(u, target, info, amount)
	}
	return u.DealHeal(target, amount)
}

// SpellDamage resolves a hit of info on victim: base damage plus the
// caster's and victim's bonuses, then absorb and resist.
func (u *Unit) SpellDamage(victim *Unit, info *SpellInfo, base int32) *SpellDamageInfo {
	f := u.env.Formulas
	d := &SpellDamageInfo{Target: victim, Info: info, SchoolMask: info.SchoolMask}
	if f.IsSpellCrit(u, victim, info) {
		d.HitType = HitCritical
	}
	damage := base + f.SpellDamageBonusDone(u, victim, info, base) + f.SpellDamageBonusTaken(u, victim, info, base)
	u.CalculateSpellDamageTaken(d, damage, info)
	return d
}

// CalculateSpellDamageTaken subtracts absorb and resist from damage, stores
// the result in d.Damage and returns it.
func (u *Unit) CalculateSpellDamageTaken(d *SpellDamageInfo, damage int32, info *SpellInfo) int32 {
	if damage < 0 {
		return 0
	}
	victim := d.Target
	if victim == nil || !victim.IsAlive() {
		return 0
	}

	if damage > 0 {
		absorb, resist := u.env.Formulas.AbsorbResist(u, victim, info, damage)
		d.Absorb += absorb
		d.Resist += resist
		damage = max(damage-d.Absorb-d.Resist, 0)
	}

	d.Damage = damage
	return damage
}

// SpellHitResult rolls a spell against victim. Positive spells on
// non-hostile targets and self-casts always land.
func (u *Unit) SpellHitResult(victim *Unit, info *SpellInfo, _ bool) MissType {
	if info.Positive && !u.IsHostileTo(victim) {
		return MissNone
	}
	if u == victim {
		return MissNone
	}
	if victim.HasState(model.UnitStateEvade) {
		return MissEvade
	}
	return MissNone
}

// SpellMinRangeForTarget picks the friendly or hostile minimum range.
func (u *Unit) SpellMinRangeForTarget(target *Unit, info *SpellInfo) float32 {
	if info.MinRangeFriend == info.MinRangeHostile {
		return info.MinRange(false)
	}
	if target == nil {
		return info.MinRange(true)
	}
	return info.MinRange(!u.IsHostileTo(target))
}

// SpellMaxRangeForTarget picks the friendly or hostile maximum range.
func (u *Unit) SpellMaxRangeForTarget(target *Unit, info *SpellInfo) float32 {
	if info.MaxRangeFriend == info.MaxRangeHostile {
		return info.MaxRange(false)
	}
	if target == nil {
		return info.MaxRange(true)
	}
	return info.MaxRange(!u.IsHostileTo(target))
}
