package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

type fixedFormulas struct {
	DefaultFormulas
	bonusDone  int32
	bonusTaken int32
	absorb     int32
	resist     int32
	healBonus  int32
	crit       bool
}

func (f fixedFormulas) SpellDamageBonusDone(*Unit, *Unit, *SpellInfo, int32) int32 { return f.bonusDone }

func (f fixedFormulas) SpellDamageBonusTaken(*Unit, *Unit, *SpellInfo, int32) int32 {
	return f.bonusTaken
}

func (f fixedFormulas) AbsorbResist(*Unit, *Unit, *SpellInfo, int32) (int32, int32) {
	return f.absorb, f.resist
}

func (f fixedFormulas) SpellHealingBonusDone(*Unit, *Unit, *SpellInfo, int32) int32 {
	return f.healBonus
}

func (f fixedFormulas) IsSpellCrit(*Unit, *Unit, *SpellInfo) bool { return f.crit }

func TestSpellDamage_AppliesBonusesAbsorbAndResist(t *testing.T) {
	w := newTestWorld(t)
	w.env.Formulas = fixedFormulas{bonusDone: 20, bonusTaken: 5, absorb: 10, resist: 15, crit: true}
	caster := w.spawn(1, 100)
	victim := w.spawn(2, 100)
	info := &SpellInfo{ID: 7, SchoolMask: 4}

	d := caster.SpellDamage(victim, info, 50)

	assert.Equal(t, int32(50), d.Damage)
	assert.Equal(t, int32(10), d.Absorb)
	assert.Equal(t, int32(15), d.Resist)
	assert.Equal(t, HitCritical, d.HitType)
	assert.Equal(t, uint32(4), d.SchoolMask)
}

func TestCalculateSpellDamageTaken_Floors(t *testing.T) {
	w := newTestWorld(t)
	w.env.Formulas = fixedFormulas{absorb: 100}
	caster := w.spawn(1, 100)
	victim := w.spawn(2, 100)
	info := &SpellInfo{ID: 7}

	d := &SpellDamageInfo{Target: victim, Info: info}
	assert.Equal(t, int32(0), caster.CalculateSpellDamageTaken(d, 30, info))
	assert.Equal(t, int32(0), caster.CalculateSpellDamageTaken(d, -5, info))
}

func TestDamageBySpell(t *testing.T) {
	w := newTestWorld(t)
	var log eventLog
	log.listen(w.env.Events)
	caster := w.spawn(1, 100)
	victim := w.spawn(2, 100)
	app := apply(victim, victim, testInfo(10, withInterrupt(aura.InterruptHitBySpell)))

	dealt := caster.DamageBySpell(&SpellDamageInfo{Target: victim, Info: &SpellInfo{ID: 7}, Damage: 25, HitType: HitCritical})

	assert.Equal(t, int32(25), dealt)
	assert.Equal(t, int32(75), victim.Health())
	assert.True(t, app.IsRemoved())
	require.Equal(t, 1, log.count(EventSpellDamageDone))
	for _, e := range log.events {
		if e.Kind == EventSpellDamageDone {
			assert.Same(t, victim, e.Other)
			assert.Equal(t, int32(25), e.Amount)
			assert.True(t, e.Critical)
		}
	}
}

func TestHealBySpell_AddsBonus(t *testing.T) {
	w := newTestWorld(t)
	w.env.Formulas = fixedFormulas{healBonus: 5}
	caster := w.spawn(1, 100)
	target := w.spawnWith(Params{ID: 2, Health: 50, MaxHealth: 100})

	assert.Equal(t, int32(15), caster.HealBySpell(target, &SpellInfo{ID: 3}, 10, false))
	assert.Equal(t, int32(65), target.Health())
}

func TestSpellHitResult(t *testing.T) {
	w := newTestWorld(t)
	caster := w.spawnWith(Params{ID: 1, Health: 10, FactionID: factionAlliance})
	enemy := w.spawnWith(Params{ID: 2, Health: 10, FactionID: factionHorde})
	friend := w.spawnWith(Params{ID: 3, Health: 10, FactionID: factionAlliance})
	harmful := &SpellInfo{ID: 1}
	helpful := &SpellInfo{ID: 2, Positive: true}

	assert.Equal(t, MissNone, caster.SpellHitResult(enemy, harmful, false))
	assert.Equal(t, MissNone, caster.SpellHitResult(caster, harmful, false))

	enemy.AddState(model.UnitStateEvade)
	friend.AddState(model.UnitStateEvade)
	assert.Equal(t, MissEvade, caster.SpellHitResult(enemy, harmful, false))
	assert.Equal(t, MissEvade, caster.SpellHitResult(enemy, helpful, false))
	assert.Equal(t, MissNone, caster.SpellHitResult(friend, helpful, false))
}

func TestSpellRangeForTarget(t *testing.T) {
	w := newTestWorld(t)
	caster := w.spawnWith(Params{ID: 1, Health: 10, FactionID: factionAlliance})
	enemy := w.spawnWith(Params{ID: 2, Health: 10, FactionID: factionHorde})
	friend := w.spawnWith(Params{ID: 3, Health: 10, FactionID: factionAlliance})
	info := &SpellInfo{MinRangeFriend: 0, MinRangeHostile: 5, MaxRangeFriend: 40, MaxRangeHostile: 30}

	assert.Equal(t, float32(5), caster.SpellMinRangeForTarget(enemy, info))
	assert.Equal(t, float32(0), caster.SpellMinRangeForTarget(friend, info))
	assert.Equal(t, float32(30), caster.SpellMaxRangeForTarget(enemy, info))
	assert.Equal(t, float32(40), caster.SpellMaxRangeForTarget(friend, info))
	assert.Equal(t, float32(40), caster.SpellMaxRangeForTarget(nil, info))

	same := &SpellInfo{MaxRangeFriend: 20, MaxRangeHostile: 20}
	assert.Equal(t, float32(20), caster.SpellMaxRangeForTarget(enemy, same))
}
