package unit

import (
	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

// CastResult is the outcome of a cast attempt.
type CastResult uint8

const (
	CastSuccess CastResult = iota
	CastFailedBadTargets
	CastFailedNoPower
	CastFailedCasterDead
	CastFailedMoving
	CastFailedSilenced
	CastFailedInterrupted
	CastFailedNotAuthority
)

var castResultNames = [...]string{
	"success", "bad_targets", "no_power", "caster_dead", "moving",
	"silenced", "interrupted", "not_authority",
}

func (r CastResult) String() string {
	if int(r) < len(castResultNames) {
		return castResultNames[r]
	}
	return "unknown"
}

// ExecutionState is the stage a spell reached after Prepare.
type ExecutionState uint8

const (
	ExecutionPreparing ExecutionState = iota
	ExecutionCasting
	ExecutionProcessing
	ExecutionCompleted
)

// Spell is a cast produced by the spell system.
type Spell interface {
	Info() *SpellInfo
	// Prepare validates targets and resources. A failed Prepare leaves no
	// state behind.
	Prepare() CastResult
	ExecutionState() ExecutionState
	Cancel()
}

// SpellCast is the unit's cast slot.
type SpellCast struct {
	caster *Unit
	spell  Spell
}

// IsCasting reports whether a cast is in progress.
func (c *SpellCast) IsCasting() bool { return c.spell != nil }

// Spell returns the spell being cast, or nil.
func (c *SpellCast) Spell() Spell { return c.spell }

// Cancel aborts the cast in progress.
func (c *SpellCast) Cancel() {
	if c.spell == nil {
		return
	}
	spell := c.spell
	c.spell = nil
	c.caster.RemoveState(model.UnitStateCasting)
	spell.Cancel()
}

// Finish clears the slot after the spell system completed the cast.
func (c *SpellCast) Finish() {
	c.spell = nil
	c.caster.RemoveState(model.UnitStateCasting)
}

func (c *SpellCast) start(spell Spell) {
	if c.spell != nil && c.spell != spell {
		c.Cancel()
	}
	c.spell = spell
	c.caster.AddState(model.UnitStateCasting)
}

// CastSpell prepares spell and, if it needs cast time, puts it in the cast
// slot. Starting any cast interrupts auras broken by casting.
func (u *Unit) CastSpell(spell Spell) CastResult {
	if !u.authority {
		return CastFailedNotAuthority
	}
	if !u.IsAlive() {
		return CastFailedCasterDead
	}
	if u.HasFlag(model.UnitFlagSilenced) {
		return CastFailedSilenced
	}

	result := spell.Prepare()
	if result != CastSuccess {
		return result
	}

	u.InterruptAuras(aura.InterruptCast)

	switch spell.ExecutionState() {
	case ExecutionCasting:
		u.cast.start(spell)
	case ExecutionProcessing, ExecutionCompleted:
		return result
	}
	return CastSuccess
}
