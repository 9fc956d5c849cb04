package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

func TestDealDamage_Scenario(t *testing.T) {
	w := newTestWorld(t)
	attacker := w.spawn(1, 100)
	victim := w.spawn(2, 100)

	assert.Equal(t, int32(40), attacker.DealDamage(victim, 40))
	assert.Equal(t, int32(60), victim.Health())
	assert.True(t, victim.IsAlive())

	assert.Equal(t, int32(60), attacker.DealDamage(victim, 80), "only the health actually removed is reported")
	assert.Equal(t, int32(0), victim.Health())
	assert.Equal(t, model.DeathStateDead, victim.DeathState())
	assert.True(t, victim.HasState(model.UnitStateDied))
}

func TestDealDamage_Lethal(t *testing.T) {
	tests := []struct {
		health int32
		damage int32
	}{
		{1, 1},
		{50, 50},
		{50, 51},
		{100, 1_000_000},
	}

	for _, tt := range tests {
		w := newTestWorld(t)
		attacker := w.spawn(1, 100)
		victim := w.spawn(2, tt.health)

		got := attacker.DealDamage(victim, tt.damage)

		assert.Equal(t, tt.health, got)
		assert.Equal(t, int32(0), victim.Health())
		assert.True(t, victim.IsDead())
	}
}

func TestDealDamage_BelowOneIsNoop(t *testing.T) {
	for _, amount := range []int32{0, -1, -500} {
		w := newTestWorld(t)
		attacker := w.spawn(1, 100)
		victim := w.spawn(2, 100)

		assert.Equal(t, int32(0), attacker.DealDamage(victim, amount))
		assert.Equal(t, int32(100), victim.Health())
		assert.True(t, victim.IsAlive())
	}
}

func TestDealDamage_DeadTarget(t *testing.T) {
	w := newTestWorld(t)
	attacker := w.spawn(1, 100)
	victim := w.spawn(2, 10)
	attacker.Kill(victim)

	assert.Equal(t, int32(0), attacker.DealDamage(victim, 5))
}

func TestDealDamage_AddsThreat(t *testing.T) {
	w := newTestWorld(t)
	attacker := w.spawn(1, 100)
	victim := w.spawn(2, 100)

	attacker.DealDamage(victim, 30)
	victim.DealDamage(victim, 10)

	require.NotNil(t, victim.Threat().Get(attacker.ID()))
	assert.Equal(t, int64(30), victim.Threat().Get(attacker.ID()).Damage)
	assert.Equal(t, 1, victim.Threat().Len(), "self damage adds no threat")
}

func TestDealDamage_InterruptsAuras(t *testing.T) {
	w := newTestWorld(t)
	attacker := w.spawn(1, 100)
	victim := w.spawn(2, 100)
	app := apply(victim, victim, testInfo(10, withInterrupt(aura.InterruptDamage)))
	require.NotNil(t, app)

	attacker.DealDamage(victim, 5)

	assert.True(t, app.IsRemoved())
	assert.Equal(t, aura.RemoveInterrupt, app.RemoveMode())
	assert.Equal(t, aura.InterruptNone, victim.InterruptFlags())
}

func TestDealHeal_ClampsToMax(t *testing.T) {
	w := newTestWorld(t)
	healer := w.spawn(1, 100)
	target := w.spawnWith(Params{ID: 2, Health: 90, MaxHealth: 100})

	assert.Equal(t, int32(10), healer.DealHeal(target, 30))
	assert.Equal(t, int32(100), target.Health())
	assert.True(t, target.HasFullHealth())
}

func TestDealHeal_Degenerate(t *testing.T) {
	w := newTestWorld(t)
	healer := w.spawn(1, 100)
	target := w.spawnWith(Params{ID: 2, Health: 50, MaxHealth: 100})

	assert.Equal(t, int32(0), healer.DealHeal(target, 0))

	healer.Kill(target)
	assert.Equal(t, int32(0), healer.DealHeal(target, 30))
	assert.Equal(t, int32(0), target.Health())
}

func TestKill_Idempotent(t *testing.T) {
	w := newTestWorld(t)
	rec := newCountingRecorder()
	w.env.Recorder = rec
	var log eventLog
	log.listen(w.env.Events)

	killer := w.spawn(1, 100)
	victim := w.spawn(2, 100)

	killer.Kill(victim)
	killer.Kill(victim)

	assert.True(t, victim.IsDead())
	assert.Equal(t, 1, log.count(EventDeathStateChanged))
	assert.Equal(t, 1, rec.deaths)
}

func TestModifyDeathState_Redundant(t *testing.T) {
	w := newTestWorld(t)
	var log eventLog
	log.listen(w.env.Events)
	u := w.spawn(1, 100)

	u.ModifyDeathState(model.DeathStateAlive)

	assert.Empty(t, log.events)
}

func TestDeath_CancelsCast(t *testing.T) {
	w := newTestWorld(t)
	caster := w.spawn(1, 100)
	spell := &fakeSpell{info: &SpellInfo{ID: 1}, result: CastSuccess, state: ExecutionCasting}

	require.Equal(t, CastSuccess, caster.CastSpell(spell))
	require.True(t, caster.SpellCast().IsCasting())
	assert.True(t, caster.HasState(model.UnitStateCasting))

	caster.Kill(caster)

	assert.False(t, caster.SpellCast().IsCasting())
	assert.False(t, caster.HasState(model.UnitStateCasting))
	assert.Equal(t, 1, spell.cancelled)
}

func TestDeath_RemovesNonPersistentAuras(t *testing.T) {
	w := newTestWorld(t)
	killer := w.spawn(1, 100)
	victim := w.spawn(2, 100)
	plain := apply(victim, killer, testInfo(10))
	persistent := apply(victim, killer, testInfo(11, func(i *aura.Info) { i.Attributes = aura.AttrDeathPersistent }))
	killer.DealDamage(victim, 20)
	require.Equal(t, 1, victim.Threat().Len())

	killer.Kill(victim)

	assert.True(t, plain.IsRemoved())
	assert.Equal(t, aura.RemoveDeath, plain.RemoveMode())
	assert.False(t, persistent.IsRemoved())
	assert.True(t, victim.HasAura(11))
	assert.True(t, victim.Threat().IsEmpty())
}

func TestHandleSpawn(t *testing.T) {
	w := newTestWorld(t)
	u := w.spawn(1, 100)
	u.Kill(u)

	u.HandleSpawn()

	assert.True(t, u.IsAlive())
	assert.False(t, u.HasState(model.UnitStateDied))
	assert.Equal(t, int32(100), u.Health())
}

func TestSetHealth_Clamps(t *testing.T) {
	w := newTestWorld(t)
	u := w.spawn(1, 100)

	assert.Equal(t, int32(-100), u.SetHealth(-20))
	assert.Equal(t, int32(0), u.Health())
	assert.Equal(t, int32(100), u.SetHealth(500))
	assert.Equal(t, int32(0), u.ModifyHealth(1))
	assert.Equal(t, int32(100), u.State().Health(), "written through to the mirror")
}

func TestPower(t *testing.T) {
	w := newTestWorld(t)
	u := w.spawnWith(Params{ID: 1, Health: 100, MaxHealth: 100, Power: 50, MaxPower: 200})

	assert.Equal(t, int32(50), u.Power())
	assert.InDelta(t, 25, u.PowerPercent(), 0.001)
	assert.Equal(t, int32(150), u.ModifyPower(1000))
	assert.Equal(t, int32(200), u.Power())
	assert.Equal(t, int32(-200), u.SetPower(-1))

	u.SetMaxPower(0)
	assert.Equal(t, float32(0), u.PowerPercent())
}

func TestHealthHelpers(t *testing.T) {
	w := newTestWorld(t)
	u := w.spawnWith(Params{ID: 1, Health: 30, MaxHealth: 200})

	assert.InDelta(t, 0.15, u.HealthRatio(), 0.0001)
	assert.InDelta(t, 15, u.HealthPercent(), 0.001)
	assert.False(t, u.HasFullHealth())
	assert.True(t, u.HealthBelowPercent(20))
	assert.False(t, u.HealthAbovePercent(20))
	assert.True(t, u.HealthAbovePercentHealed(20, 11))
	assert.True(t, u.HealthBelowPercentDamaged(10, 11))
	assert.Equal(t, int64(40), u.CountPercentFromMaxHealth(20))
	assert.Equal(t, int64(15), u.CountPercentFromCurrentHealth(50))
}

func TestSetMaxHealth_ReclampsHealth(t *testing.T) {
	w := newTestWorld(t)
	u := w.spawn(1, 100)

	u.SetMaxHealth(60)

	assert.Equal(t, int32(60), u.MaxHealth())
	assert.Equal(t, int32(60), u.Health())
}
