package unit

import "github.com/udisondev/auracore/internal/model"

// Observer callbacks re-derive local fields from replicated deltas. They
// never run the aura algorithm.

// resync re-derives every mirrored field at once, after a snapshot seed.
func (u *Unit) resync() {
	if v, ok := u.state.LookupAttribute(model.AttrMaxHealth); ok {
		u.maxHealth.Set(int32(v))
	}
	if _, ok := u.state.LookupAttribute(model.AttrHealth); ok {
		u.SetHealth(u.state.Health())
	}
	u.deathState = u.state.DeathState()
	if u.deathState == model.DeathStateDead {
		u.unitState |= model.UnitStateDied
	}
	if u.env.Factions != nil {
		u.faction = u.env.Factions.Get(u.state.FactionID())
	}
	if id := u.state.TargetID(); id != NoTargetID {
		u.UpdateTarget(id, nil, false)
	}
}

func (u *Unit) onDeathStateChanged() {
	u.deathState = u.state.DeathState()
	if u.deathState == model.DeathStateDead {
		u.unitState |= model.UnitStateDied
	} else {
		u.unitState &^= model.UnitStateDied
	}
	u.env.Events.Publish(Event{Kind: EventDeathStateChanged, Unit: u})
}

func (u *Unit) onMaxHealthChanged() {
	u.maxHealth.Set(int32(u.state.Attribute(model.AttrMaxHealth)))
}

func (u *Unit) onHealthStateChanged() {
	u.SetHealth(u.state.Health())
}

func (u *Unit) onTargetIDChanged() {
	u.UpdateTarget(u.state.TargetID(), nil, false)
}

func (u *Unit) onFactionChanged() {
	if u.env.Factions != nil {
		u.faction = u.env.Factions.Get(u.state.FactionID())
	}
	u.env.Events.Publish(Event{Kind: EventFactionChanged, Unit: u})
}
