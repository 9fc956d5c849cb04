package unit

import (
	"math"

	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/model"
)

// SetHealth clamps value to [0, MaxHealth], writes it through to the
// replicated mirror and returns the applied delta.
func (u *Unit) SetHealth(value int32) int32 {
	return u.health.Set(min(max(value, 0), u.maxHealth.Value()))
}

// ModifyHealth is SetHealth(Health()+delta).
func (u *Unit) ModifyHealth(delta int32) int32 {
	return u.SetHealth(saturate(int64(u.health.Value()) + int64(delta)))
}

// SetMaxHealth changes the maximum and re-clamps health.
func (u *Unit) SetMaxHealth(value int32) {
	u.maxHealth.Set(value)
	if u.Health() > u.MaxHealth() {
		u.SetHealth(u.MaxHealth())
	}
}

// DealDamage removes amount health from target and returns the health
// actually removed. Lethal damage kills the target and reports only the
// health it had left. Amounts below 1 are ignored.
func (u *Unit) DealDamage(target *Unit, amount int32) int32 {
	if amount < 1 || target == nil {
		return 0
	}
	if !target.requireAuthority("DealDamage") {
		return 0
	}

	var removed int32
	if healthValue := target.Health(); healthValue <= amount {
		u.Kill(target)
		removed = healthValue
	} else {
		removed = -target.ModifyHealth(-amount)
	}
	if removed <= 0 {
		return 0
	}

	u.env.Recorder.Damage(removed)
	if target.IsAlive() {
		if u != target {
			target.threat.AddDamage(u.id, removed)
		}
		target.InterruptAuras(aura.InterruptDamage)
	}
	return removed
}

// DealHeal restores amount health on target, clamped by its maximum, and
// returns the health actually restored. Dead targets and amounts below 1
// are ignored.
func (u *Unit) DealHeal(target *Unit, amount int32) int32 {
	if amount < 1 || target == nil {
		return 0
	}
	if !target.requireAuthority("DealHeal") || !target.IsAlive() {
		return 0
	}

	healed := target.ModifyHealth(amount)
	u.env.Recorder.Heal(healed)
	return healed
}

// Kill drops victim's health to 0 and marks it dead. No-op if it has no
// health left.
func (u *Unit) Kill(victim *Unit) {
	if victim.Health() <= 0 {
		return
	}
	if !victim.requireAuthority("Kill") {
		return
	}
	victim.SetHealth(0)
	victim.ModifyDeathState(model.DeathStateDead)
}

// ModifyDeathState moves u to state. Entering Dead cancels the cast, strips
// non-persistent auras and clears the threat list.
func (u *Unit) ModifyDeathState(state model.DeathState) {
	if u.deathState == state {
		return
	}
	if !u.requireAuthority("ModifyDeathState") {
		return
	}

	u.deathState = state
	u.state.SetDeathState(state)

	switch state {
	case model.DeathStateDead:
		u.unitState |= model.UnitStateDied
		if u.cast.IsCasting() {
			u.cast.Cancel()
		}
		u.removeAurasOnDeath()
		u.threat.Clear()
		u.env.Recorder.Death()
		u.logger.Debug("unit died")
	case model.DeathStateAlive:
		u.unitState &^= model.UnitStateDied
	}

	u.env.Events.Publish(Event{Kind: EventDeathStateChanged, Unit: u})
}

// HandleSpawn brings u back alive with full health.
func (u *Unit) HandleSpawn() {
	u.ModifyDeathState(model.DeathStateAlive)
	u.SetHealth(u.MaxHealth())
}

// Power returns the current mana.
func (u *Unit) Power() int32 { return u.power.Value() }

// MaxPower returns the maximum mana.
func (u *Unit) MaxPower() int32 { return u.maxPower.Value() }

// SetPower clamps value to [0, MaxPower] and returns the applied delta.
func (u *Unit) SetPower(value int32) int32 {
	return u.power.Set(min(max(value, 0), u.maxPower.Value()))
}

// SetMaxPower changes the maximum and re-clamps power.
func (u *Unit) SetMaxPower(value int32) {
	u.maxPower.Set(value)
	if u.Power() > u.MaxPower() {
		u.SetPower(u.MaxPower())
	}
}

// ModifyPower adds delta to power and returns the applied delta.
func (u *Unit) ModifyPower(delta int32) int32 {
	return u.SetPower(saturate(int64(u.power.Value()) + int64(delta)))
}

// PowerPercent returns power as a percentage of the maximum.
func (u *Unit) PowerPercent() float32 {
	if u.MaxPower() <= 0 {
		return 0
	}
	return 100 * float32(u.Power()) / float32(u.MaxPower())
}

// HealthRatio returns health / max health, 0 when max health is 0.
func (u *Unit) HealthRatio() float32 {
	if u.MaxHealth() <= 0 {
		return 0
	}
	return float32(u.Health()) / float32(u.MaxHealth())
}

func (u *Unit) HealthPercent() float32 { return 100 * u.HealthRatio() }
func (u *Unit) HasFullHealth() bool    { return u.Health() == u.MaxHealth() }

// CountPercentFromMaxHealth returns percent of max health.
func (u *Unit) CountPercentFromMaxHealth(percent int32) int64 {
	return int64(u.MaxHealth()) * int64(percent) / 100
}

// CountPercentFromCurrentHealth returns percent of current health.
func (u *Unit) CountPercentFromCurrentHealth(percent int32) int64 {
	return int64(u.Health()) * int64(percent) / 100
}

func (u *Unit) HealthBelowPercent(percent int32) bool {
	return int64(u.Health()) < u.CountPercentFromMaxHealth(percent)
}

func (u *Unit) HealthAbovePercent(percent int32) bool {
	return int64(u.Health()) > u.CountPercentFromMaxHealth(percent)
}

func (u *Unit) HealthAbovePercentHealed(percent, heal int32) bool {
	return int64(u.Health())+int64(heal) > u.CountPercentFromMaxHealth(percent)
}

func (u *Unit) HealthBelowPercentDamaged(percent, damage int32) bool {
	return int64(u.Health())-int64(damage) < u.CountPercentFromMaxHealth(percent)
}

func saturate(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
