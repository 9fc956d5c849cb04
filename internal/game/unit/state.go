package unit

import (
	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

// UnitState returns the transient state bitset.
func (u *Unit) UnitState() model.UnitState { return u.unitState }

func (u *Unit) AddState(s model.UnitState)      { u.unitState |= s }
func (u *Unit) HasState(s model.UnitState) bool { return u.unitState&s != 0 }
func (u *Unit) RemoveState(s model.UnitState)   { u.unitState &^= s }

// Flags returns the persistent flag bitset.
func (u *Unit) Flags() model.UnitFlags { return u.flags }

func (u *Unit) SetFlag(f model.UnitFlags)      { u.flags |= f }
func (u *Unit) RemoveFlag(f model.UnitFlags)   { u.flags &^= f }
func (u *Unit) HasFlag(f model.UnitFlags) bool { return u.flags&f == f }

// IsMovementBlocked reports whether root or stun holds the unit in place.
func (u *Unit) IsMovementBlocked() bool { return u.HasState(model.UnitStateControlled) }

// IsStopped reports whether the unit is standing still.
func (u *Unit) IsStopped() bool { return !u.HasState(model.UnitStateMoving) }

// StartMoving marks the unit as moving and interrupts auras broken by
// movement. Returns false while movement is blocked.
func (u *Unit) StartMoving() bool {
	if u.IsMovementBlocked() {
		return false
	}
	u.AddState(model.UnitStateMoving)
	u.InterruptAuras(aura.InterruptMove)
	return true
}

// StopMoving clears the moving state.
func (u *Unit) StopMoving() {
	u.RemoveState(model.UnitStateMoving)
}

// SetControlled applies or lifts root or stun. A state is lifted only when
// no effect of its kind is left on the unit.
func (u *Unit) SetControlled(apply bool, state model.UnitState) {
	var effect aura.EffectType
	switch state {
	case model.UnitStateRoot:
		effect = aura.EffectRoot
	case model.UnitStateStunned:
		effect = aura.EffectStun
	default:
		u.logger.Warn("unsupported controlled state", "state", uint32(state))
		return
	}

	if apply {
		u.AddState(state)
		u.StopMoving()
		if state == model.UnitStateStunned && u.cast.IsCasting() {
			u.cast.Cancel()
		}
		return
	}

	if u.HasAuraType(effect) {
		return
	}
	u.RemoveState(state)
}

// UpdateSpeed recomputes the speed rate of t from speed auras: the strongest
// increase (run only) times the strongest slow, never below zero.
func (u *Unit) UpdateSpeed(t model.MoveType) {
	speed := float32(1)

	switch t {
	case model.MoveRunBack:
		// only slows apply
	case model.MoveRun:
		if inc := u.MaxPositiveAuraModifier(aura.EffectModIncreaseSpeed); inc > 0 {
			speed *= 1 + float32(inc)/100
		}
	default:
		u.logger.Debug("speed update for unsupported move type", "type", t.String())
		return
	}

	if slow := u.MaxNegativeAuraModifier(aura.EffectModDecreaseSpeed); slow < 0 {
		speed *= 1 + float32(slow)/100
	}

	u.SetSpeedRate(t, speed)
}

// SetSpeed sets the absolute speed of t.
func (u *Unit) SetSpeed(t model.MoveType, value float32) {
	base := u.movement.BaseSpeed(t)
	if base <= 0 {
		return
	}
	u.SetSpeedRate(t, value/base)
}

// SetSpeedRate sets the multiplier of t, clamped to >= 0.
func (u *Unit) SetSpeedRate(t model.MoveType, rate float32) {
	u.speedRates[t] = max(rate, 0)
}

// SpeedRate returns the multiplier of t (1 before the unit is attached).
func (u *Unit) SpeedRate(t model.MoveType) float32 {
	if rate, ok := u.speedRates[t]; ok {
		return rate
	}
	return 1
}

// Speed returns the effective speed of t.
func (u *Unit) Speed(t model.MoveType) float32 {
	return u.SpeedRate(t) * u.movement.BaseSpeed(t)
}
