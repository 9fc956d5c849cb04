package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auracore/internal/model"
	"github.com/udisondev/auracore/internal/replication"
)

// mirror is the observer side of a replicated pair: its own env, index and
// event bus, fed by hub deltas from the authority world.
type mirror struct {
	env *Env
	ix  testIndex
	log eventLog
}

func newMirror(t *testing.T, authority *testWorld) *mirror {
	t.Helper()
	m := &mirror{
		env: &Env{Factions: authority.env.Factions, Events: NewBus(), Strict: true},
		ix:  testIndex{},
	}
	m.env.Index = m.ix
	m.log.listen(m.env.Events)
	return m
}

func (m *mirror) observe(hub *replication.Hub, authority *Unit) *Unit {
	obs := New(m.env, Params{ID: authority.ID()})
	hub.Subscribe(authority.State(), obs.State())
	obs.Attached()
	m.ix[obs.ID()] = obs
	return obs
}

func TestObserver_FollowsAuthority(t *testing.T) {
	hub := replication.NewHub(nil)
	w := newTestWorld(t)
	w.env.Publisher = hub
	attacker := w.spawn(1, 100)
	victim := w.spawnWith(Params{ID: 2, Health: 80, MaxHealth: 120, FactionID: factionAlliance})

	m := newMirror(t, w)
	obsAttacker := m.observe(hub, attacker)
	obsVictim := m.observe(hub, victim)

	assert.False(t, obsVictim.IsAuthority())
	assert.Equal(t, int32(80), obsVictim.Health(), "seeded from snapshot")
	assert.Equal(t, int32(120), obsVictim.MaxHealth())

	attacker.DealDamage(victim, 30)
	assert.Equal(t, int32(50), obsVictim.Health())

	victim.SetTarget(attacker)
	assert.Equal(t, attacker.ID(), obsVictim.TargetID())
	assert.Same(t, obsAttacker, obsVictim.Target(), "resolved through the observer index")

	victim.SetFaction(factionHorde, false)
	assert.Equal(t, factionHorde, obsVictim.Faction().ID)
	assert.True(t, obsAttacker.IsHostileTo(obsVictim))

	attacker.Kill(victim)
	assert.True(t, obsVictim.IsDead())
	assert.True(t, obsVictim.HasState(model.UnitStateDied))
	assert.Equal(t, int32(0), obsVictim.Health())

	victim.HandleSpawn()
	assert.True(t, obsVictim.IsAlive())
	assert.False(t, obsVictim.HasState(model.UnitStateDied))
	assert.Equal(t, int32(120), obsVictim.Health())

	assert.Equal(t, 2, m.log.count(EventDeathStateChanged))
	assert.Equal(t, 1, m.log.count(EventFactionChanged))
	assert.Equal(t, 1, m.log.count(EventTargetChanged))
}

func TestObserver_LateJoinSeesDeadUnit(t *testing.T) {
	hub := replication.NewHub(nil)
	w := newTestWorld(t)
	w.env.Publisher = hub
	u := w.spawn(1, 100)
	target := w.spawn(2, 100)
	u.SetTarget(target)
	u.Kill(u)

	m := newMirror(t, w)
	m.observe(hub, target)
	obs := m.observe(hub, u)

	assert.True(t, obs.IsDead())
	assert.True(t, obs.HasState(model.UnitStateDied))
	assert.Equal(t, target.ID(), obs.TargetID())
	assert.Equal(t, uint64(0), hub.Delivered())
}

func TestObserver_CannotRunAuraAlgorithm(t *testing.T) {
	hub := replication.NewHub(nil)
	w := newTestWorld(t)
	w.env.Publisher = hub
	u := w.spawn(1, 100)

	m := newMirror(t, w)
	m.env.Strict = false
	rec := newCountingRecorder()
	m.env.Recorder = rec
	obs := m.observe(hub, u)

	assert.Nil(t, obs.CreateAura(testInfo(10), obs, obs))
	assert.Equal(t, CastFailedNotAuthority, obs.CastSpell(&fakeSpell{info: &SpellInfo{ID: 1}}))
	obs.ModifyDeathState(model.DeathStateDead)

	assert.True(t, obs.IsAlive())
	assert.Equal(t, 2, rec.invariants[CodeObserverMutate])
}

func TestObserver_DetachDropsCallbacks(t *testing.T) {
	hub := replication.NewHub(nil)
	w := newTestWorld(t)
	w.env.Publisher = hub
	u := w.spawn(1, 100)

	m := newMirror(t, w)
	obs := m.observe(hub, u)
	obs.Detached()

	u.SetHealth(10)

	require.Equal(t, int32(10), obs.State().Health(), "the mirror still stores deltas")
	assert.Equal(t, int32(100), obs.Health(), "but the detached unit no longer reacts")
}
