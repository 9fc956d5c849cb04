// Package aura holds immutable aura definitions shared by every aura instance
// created from them.
package aura

import (
	"github.com/samber/oops"
)

// DurationPermanent marks an aura that never expires on its own.
const DurationPermanent int32 = -1

// EffectInfo defines one effect slot of an aura.
type EffectInfo struct {
	Index      int        `yaml:"-"`
	Type       EffectType `yaml:"type"`
	BaseAmount int32      `yaml:"amount"`
	PeriodMs   int32      `yaml:"period_ms"`
	MiscValue  int32      `yaml:"misc"`
}

// IsPeriodic reports whether the effect ticks while applied.
func (e *EffectInfo) IsPeriodic() bool {
	return e.PeriodMs > 0
}

// Info is an aura definition.
//
// Stacking inputs:
//   - MaxStack: how many applications of the same id from the same caster
//     may coexist on one target (0 is treated as 1).
//   - MultiCaster: applications of the same id from different casters coexist.
//   - StackGroup: auras of different ids in the same non-empty group never coexist.
type Info struct {
	ID             int32          `yaml:"id"`
	Name           string         `yaml:"name"`
	DurationMs     int32          `yaml:"duration_ms"`
	MaxStack       int            `yaml:"max_stack"`
	MultiCaster    bool           `yaml:"multi_caster"`
	StackGroup     string         `yaml:"stack_group"`
	StateType      StateType      `yaml:"state"`
	InterruptFlags InterruptFlags `yaml:"interrupt"`
	Attributes     Attributes     `yaml:"attributes"`
	Effects        []EffectInfo   `yaml:"effects"`
}

// HasInterruptFlags reports whether any action interrupts this aura.
func (i *Info) HasInterruptFlags() bool {
	return i.InterruptFlags != InterruptNone
}

// IsPermanent reports whether the aura has no duration.
func (i *Info) IsPermanent() bool {
	return i.DurationMs < 0
}

// IsPositive reports whether the aura is beneficial.
func (i *Info) IsPositive() bool {
	return i.Attributes.Has(AttrPositive)
}

// StackLimit returns the effective same-caster stack limit (at least 1).
func (i *Info) StackLimit() int {
	return max(i.MaxStack, 1)
}

// EffectMask returns the mask of every defined effect slot.
func (i *Info) EffectMask() EffectMask {
	return MaskAll(len(i.Effects))
}

// HasEffect reports whether any slot has type t.
func (i *Info) HasEffect(t EffectType) bool {
	for k := range i.Effects {
		if i.Effects[k].Type == t {
			return true
		}
	}
	return false
}

// Normalize assigns effect indexes. Called by every constructor path.
func (i *Info) Normalize() {
	for k := range i.Effects {
		i.Effects[k].Index = k
	}
}

// Validate checks structural constraints of the definition.
func (i *Info) Validate() error {
	errb := oops.Code("AURA_INVALID").With("aura", i.ID)

	if i.ID <= 0 {
		return errb.Errorf("aura id must be positive")
	}
	if i.DurationMs == 0 {
		return errb.Errorf("duration must be non-zero (use %d for permanent)", DurationPermanent)
	}
	if i.MaxStack < 0 {
		return errb.With("max_stack", i.MaxStack).Errorf("max stack must not be negative")
	}
	if len(i.Effects) > MaxEffects {
		return errb.With("effects", len(i.Effects)).Errorf("too many effects (max %d)", MaxEffects)
	}
	for k := range i.Effects {
		e := &i.Effects[k]
		if e.Type == EffectNone {
			return errb.With("effect", k).Errorf("effect type is required")
		}
		if e.PeriodMs < 0 {
			return errb.With("effect", k, "period_ms", e.PeriodMs).Errorf("period must not be negative")
		}
	}
	return nil
}
