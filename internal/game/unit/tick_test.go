package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auracore/internal/game/aura"
)

const (
	// effectRemoveSibling removes the owner's auras with id MiscValue on every tick.
	effectRemoveSibling = aura.EffectType(201)
	// effectLateRecorder records, in the late pass, how often every owned aura ticked.
	effectLateRecorder = aura.EffectType(202)
)

var lateSeen [][]int32

func init() {
	RegisterEffectHandler(effectRemoveSibling, EffectHandler{
		Periodic: func(e *AuraEffect) {
			e.Aura().Owner().RemoveAurasByID(e.Info().MiscValue, NoTargetID, aura.RemoveCancel)
		},
	})
	RegisterEffectHandler(effectLateRecorder, EffectHandler{
		Late: func(e *AuraEffect) {
			var ticks []int32
			for _, a := range e.Aura().Owner().OwnedAuras() {
				ticks = append(ticks, a.Applications()[0].Effect(0).Ticks())
			}
			lateSeen = append(lateSeen, ticks)
		},
	})
}

func periodic(t aura.EffectType, amount, periodMs int32) func(*aura.Info) {
	return withEffects(aura.EffectInfo{Type: t, BaseAmount: amount, PeriodMs: periodMs})
}

func TestDoUpdate_RemovesExpired(t *testing.T) {
	w := newTestWorld(t)
	v := w.spawn(1, 100)

	short := apply(v, v, testInfo(10, withDuration(1_000)))
	long := apply(v, v, testInfo(11, withDuration(2_000)))
	forever := apply(v, v, testInfo(12, withDuration(aura.DurationPermanent)))

	v.DoUpdate(1_000)

	assert.True(t, short.IsRemoved())
	assert.Equal(t, aura.RemoveExpired, short.RemoveMode())
	assert.False(t, long.IsRemoved())
	assert.Equal(t, int32(1_000), long.Aura().Duration())

	v.DoUpdate(5_000)

	assert.True(t, long.IsRemoved())
	assert.False(t, forever.IsRemoved())
	assert.Len(t, v.OwnedAuras(), 1)
}

func TestDoUpdate_SameTickExpiryRestartsScan(t *testing.T) {
	w := newTestWorld(t)
	v := w.spawn(1, 100)
	for id := int32(20); id < 25; id++ {
		apply(v, v, testInfo(id, withDuration(500)))
	}
	keep := apply(v, v, testInfo(25, withDuration(5_000)))

	v.DoUpdate(500)

	assert.Len(t, v.OwnedAuras(), 1)
	assert.Same(t, keep.Aura(), v.OwnedAuras()[0])
	assert.Equal(t, int32(4_500), keep.Aura().Duration(), "ticked exactly once")
	assert.Len(t, v.AuraApplications(), 1)
}

func TestDoUpdate_EachAuraTicksOnceWhenListChanges(t *testing.T) {
	w := newTestWorld(t)
	v := w.spawn(1, 100)

	first := apply(v, v, testInfo(30, periodic(aura.EffectDummy, 0, 1_000)))
	remover := apply(v, v, testInfo(31, withEffects(aura.EffectInfo{Type: effectRemoveSibling, PeriodMs: 1_000, MiscValue: 33})))
	second := apply(v, v, testInfo(32, periodic(aura.EffectDummy, 0, 1_000)))
	victim := apply(v, v, testInfo(33, periodic(aura.EffectDummy, 0, 1_000)))

	v.DoUpdate(1_000)

	assert.Equal(t, int32(1), first.Effect(0).Ticks())
	assert.Equal(t, int32(1), remover.Effect(0).Ticks())
	assert.Equal(t, int32(1), second.Effect(0).Ticks())
	assert.Equal(t, int32(0), victim.Effect(0).Ticks())
	assert.True(t, victim.IsRemoved())
	assert.Len(t, v.OwnedAuras(), 3)
	for _, a := range v.OwnedAuras() {
		assert.False(t, a.Updated(), "late pass resets the mark")
	}
}

func TestDoUpdate_LateUpdateAfterAllUpdates(t *testing.T) {
	lateSeen = nil
	w := newTestWorld(t)
	v := w.spawn(1, 100)
	withLateRecorder := func(i *aura.Info) {
		i.Effects = []aura.EffectInfo{{Type: effectLateRecorder, PeriodMs: 1_000}}
	}
	for id := int32(40); id < 43; id++ {
		apply(v, v, testInfo(id, withLateRecorder))
	}

	v.DoUpdate(1_000)

	require.Len(t, lateSeen, 3)
	for _, ticks := range lateSeen {
		assert.Equal(t, []int32{1, 1, 1}, ticks)
	}
}

func TestPeriodicDamage_FromCaster(t *testing.T) {
	w := newTestWorld(t)
	c := w.spawn(1, 100)
	v := w.spawn(2, 100)
	app := apply(v, c, testInfo(50, withDuration(3_000), periodic(aura.EffectPeriodicDamage, 10, 1_000)))
	require.NotNil(t, app)

	v.DoUpdate(1_000)
	v.DoUpdate(1_000)
	assert.Equal(t, int32(80), v.Health())
	assert.False(t, app.IsRemoved())

	v.DoUpdate(1_000)

	assert.Equal(t, int32(70), v.Health())
	assert.Equal(t, int32(3), app.Effect(0).Ticks())
	assert.Equal(t, int64(30), v.Threat().Get(c.ID()).Hate)
	assert.True(t, app.IsRemoved())
	assert.Equal(t, aura.RemoveExpired, app.RemoveMode())
}

func TestPeriodicDamage_LargeDeltaTicksRepeatedly(t *testing.T) {
	w := newTestWorld(t)
	c := w.spawn(1, 100)
	v := w.spawn(2, 100)
	app := apply(v, c, testInfo(51, withDuration(10_000), periodic(aura.EffectPeriodicDamage, 5, 1_000)))

	v.DoUpdate(2_500)

	assert.Equal(t, int32(2), app.Effect(0).Ticks())
	assert.Equal(t, int32(90), v.Health())
}

func TestPeriodicDamage_KillsAndRemoves(t *testing.T) {
	w := newTestWorld(t)
	c := w.spawn(1, 100)
	v := w.spawn(2, 15)
	app := apply(v, c, testInfo(52, withDuration(10_000), periodic(aura.EffectPeriodicDamage, 10, 1_000)))

	v.DoUpdate(1_000)
	v.DoUpdate(1_000)

	assert.True(t, v.IsDead())
	assert.True(t, app.IsRemoved())
	assert.Equal(t, aura.RemoveDeath, app.RemoveMode())
	assert.Empty(t, v.OwnedAuras())
}

func TestPeriodicHeal_EnvironmentAura(t *testing.T) {
	w := newTestWorld(t)
	v := w.spawnWith(Params{ID: 1, Health: 50, MaxHealth: 100})
	a := v.CreateAura(testInfo(53, periodic(aura.EffectPeriodicHeal, 5, 1_000)), nil, v)

	v.DoUpdate(3_000)

	assert.Equal(t, NoTargetID, a.CasterID())
	assert.Nil(t, a.Caster())
	assert.Equal(t, int32(65), v.Health())
	assert.True(t, v.Threat().IsEmpty())
}

func TestRefresh_ResetsPeriodicTimer(t *testing.T) {
	w := newTestWorld(t)
	c := w.spawn(1, 100)
	v := w.spawn(2, 100)
	app := apply(v, c, testInfo(54, withDuration(5_000), periodic(aura.EffectPeriodicDamage, 10, 1_000)))

	v.DoUpdate(900)
	app.Aura().Refresh()
	v.DoUpdate(900)

	assert.Equal(t, int32(0), app.Effect(0).Ticks())
	assert.Equal(t, int32(4_100), app.Aura().Duration())
}
