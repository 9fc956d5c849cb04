package unit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

const (
	factionAlliance int32 = 1
	factionHorde    int32 = 2
	factionNeutral  int32 = 3
)

type testIndex map[uint64]*Unit

func (ix testIndex) Find(id uint64) *Unit { return ix[id] }

type testWorld struct {
	env *Env
	ix  testIndex
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	factions, err := model.NewFactionTable(factionAlliance, []model.FactionEntry{
		{ID: factionAlliance, Name: "alliance", Hostile: []int32{factionHorde}, Friendly: []int32{factionAlliance}},
		{ID: factionHorde, Name: "horde", Hostile: []int32{factionAlliance}, Friendly: []int32{factionHorde}},
		{ID: factionNeutral, Name: "neutral"},
	})
	require.NoError(t, err)

	ix := testIndex{}
	return &testWorld{
		env: &Env{Index: ix, Factions: factions, Events: NewBus(), Strict: true},
		ix:  ix,
	}
}

func (w *testWorld) spawn(id uint64, health int32) *Unit {
	return w.spawnWith(Params{ID: id, Health: health, MaxHealth: health, FactionID: factionAlliance})
}

func (w *testWorld) spawnWith(p Params) *Unit {
	p.Authority = true
	u := New(w.env, p)
	u.Attached()
	w.ix[p.ID] = u
	return u
}

func (w *testWorld) detach(u *Unit) {
	delete(w.ix, u.ID())
	u.Detached()
	for _, other := range w.ix {
		other.HandleEntityDetach(u)
	}
}

// testInfo builds a 10s aura with one Dummy effect unless effects are given.
func testInfo(id int32, opts ...func(*aura.Info)) *aura.Info {
	info := &aura.Info{
		ID:         id,
		Name:       "test",
		DurationMs: 10_000,
		Effects:    []aura.EffectInfo{{Type: aura.EffectDummy}},
	}
	for _, opt := range opts {
		opt(info)
	}
	info.Normalize()
	return info
}

func withEffects(effects ...aura.EffectInfo) func(*aura.Info) {
	return func(i *aura.Info) { i.Effects = effects }
}

func withMaxStack(n int) func(*aura.Info) {
	return func(i *aura.Info) { i.MaxStack = n }
}

func withState(s aura.StateType) func(*aura.Info) {
	return func(i *aura.Info) { i.StateType = s }
}

func withInterrupt(f aura.InterruptFlags) func(*aura.Info) {
	return func(i *aura.Info) { i.InterruptFlags = f }
}

func withDuration(ms int32) func(*aura.Info) {
	return func(i *aura.Info) { i.DurationMs = ms }
}

// apply hosts info on target, cast by caster.
func apply(target, caster *Unit, info *aura.Info) *AuraApplication {
	a := target.CreateAura(info, caster, target)
	return a.Application(target.ID())
}

type eventLog struct {
	events []Event
}

func (l *eventLog) listen(bus *Bus) {
	bus.Subscribe(func(e Event) { l.events = append(l.events, e) })
}

func (l *eventLog) kinds() []EventKind {
	out := make([]EventKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func (l *eventLog) count(k EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

type countingRecorder struct {
	applied    int
	removed    map[string]int
	damage     int32
	heal       int32
	deaths     int
	invariants map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{removed: map[string]int{}, invariants: map[string]int{}}
}

func (r *countingRecorder) AuraApplied(int32)       { r.applied++ }
func (r *countingRecorder) AuraRemoved(mode string) { r.removed[mode]++ }
func (r *countingRecorder) Damage(amount int32)     { r.damage += amount }
func (r *countingRecorder) Heal(amount int32)       { r.heal += amount }
func (r *countingRecorder) Death()                  { r.deaths++ }
func (r *countingRecorder) Invariant(code string)   { r.invariants[code]++ }

type fakeSpell struct {
	info      *SpellInfo
	result    CastResult
	state     ExecutionState
	cancelled int
}

func (s *fakeSpell) Info() *SpellInfo               { return s.info }
func (s *fakeSpell) Prepare() CastResult            { return s.result }
func (s *fakeSpell) ExecutionState() ExecutionState { return s.state }
func (s *fakeSpell) Cancel()                        { s.cancelled++ }
