package unit

import (
	"log/slog"

	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/errutil"
	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
	"github.com/udisondev/auracore/internal/replication"
)

// Index resolves units by id. The world implements it.
type Index interface {
	Find(id uint64) *Unit
}

// Recorder receives combat counters. observability.Metrics implements it.
type Recorder interface {
	AuraApplied(auraID int32)
	AuraRemoved(mode string)
	Damage(amount int32)
	Heal(amount int32)
	Death()
	Invariant(code string)
}

type noopRecorder struct{}

func (noopRecorder) AuraApplied(int32)  {}
func (noopRecorder) AuraRemoved(string) {}
func (noopRecorder) Damage(int32)       {}
func (noopRecorder) Heal(int32)         {}
func (noopRecorder) Death()             {}
func (noopRecorder) Invariant(string)   {}

type emptyIndex struct{}

func (emptyIndex) Find(uint64) *Unit { return nil }

// Env is shared by every unit of a shard.
type Env struct {
	Index     Index
	Catalog   *aura.Catalog
	Factions  *model.FactionTable
	Stacking  StackingPolicy
	Formulas  Formulas
	Recorder  Recorder
	Events    *Bus
	Publisher replication.Publisher
	Logger    *slog.Logger

	// Strict turns invariant violations into panics (development builds).
	Strict bool
}

func (e *Env) normalize() {
	if e.Index == nil {
		e.Index = emptyIndex{}
	}
	if e.Stacking == nil {
		e.Stacking = DefaultStacking{}
	}
	if e.Formulas == nil {
		e.Formulas = DefaultFormulas{}
	}
	if e.Recorder == nil {
		e.Recorder = noopRecorder{}
	}
	if e.Events == nil {
		e.Events = NewBus()
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
}

// Invariant codes.
const (
	CodeEffectMask     = "INVARIANT_EFFECT_MASK"
	CodeDetachResidue  = "INVARIANT_DETACH_RESIDUE"
	CodeDoubleApply    = "INVARIANT_DOUBLE_APPLY"
	CodeObserverMutate = "INVARIANT_OBSERVER_MUTATION"
)

// violation reports a broken bookkeeping invariant. In strict mode it panics
// with the oops error; otherwise it logs and lets the caller force-clear.
func (e *Env) violation(code string, kv ...any) {
	err := oops.Code(code).With(kv...).Errorf("unit invariant violated: %s", code)
	e.Recorder.Invariant(code)
	if e.Strict {
		panic(err)
	}
	errutil.LogError(e.Logger, "invariant violation", err)
}
