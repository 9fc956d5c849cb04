package unit

// Formulas supplies combat numbers the core leaves to content.
// DefaultFormulas answers zero for every bonus, absorb and resist.
type Formulas interface {
	// AbsorbResist returns how much of damage is absorbed and resisted.
	AbsorbResist(caster, victim *Unit, info *SpellInfo, damage int32) (absorb, resist int32)
	SpellDamageBonusDone(caster, victim *Unit, info *SpellInfo, damage int32) int32
	SpellDamageBonusTaken(caster, victim *Unit, info *SpellInfo, damage int32) int32
	SpellHealingBonusDone(caster, target *Unit, info *SpellInfo, heal int32) int32
	IsSpellCrit(caster, victim *Unit, info *SpellInfo) bool
	// EffectAmount returns the amount an aura effect slot starts with.
	EffectAmount(caster, target *Unit, effect *AuraEffect) int32
}

// DefaultFormulas is the no-op strategy.
type DefaultFormulas struct{}

func (DefaultFormulas) AbsorbResist(*Unit, *Unit, *SpellInfo, int32) (int32, int32) { return 0, 0 }

func (DefaultFormulas) SpellDamageBonusDone(*Unit, *Unit, *SpellInfo, int32) int32 { return 0 }

func (DefaultFormulas) SpellDamageBonusTaken(*Unit, *Unit, *SpellInfo, int32) int32 { return 0 }

func (DefaultFormulas) SpellHealingBonusDone(*Unit, *Unit, *SpellInfo, int32) int32 { return 0 }

func (DefaultFormulas) IsSpellCrit(*Unit, *Unit, *SpellInfo) bool { return false }

func (DefaultFormulas) EffectAmount(_, _ *Unit, effect *AuraEffect) int32 {
	return effect.Info().BaseAmount
}
