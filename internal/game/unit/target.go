package unit

// UpdateTarget points u at newTarget, or at newTargetID resolved through the
// world index when newTarget is nil. With updateState the authority also
// replicates the new target id.
func (u *Unit) UpdateTarget(newTargetID uint64, newTarget *Unit, updateState bool) {
	switch {
	case newTarget != nil:
		u.targetID = newTarget.id
		u.target = newTarget
	case newTargetID != NoTargetID:
		u.targetID = newTargetID
		u.target = u.env.Index.Find(newTargetID)
	default:
		u.targetID = NoTargetID
		u.target = nil
	}

	if updateState && u.authority {
		id := NoTargetID
		if u.target != nil {
			id = u.target.id
		}
		u.state.SetTargetID(id)
	}

	u.env.Events.Publish(Event{Kind: EventTargetChanged, Unit: u, Other: u.target})
}

// SetTarget targets t (nil clears) and replicates it.
func (u *Unit) SetTarget(t *Unit) {
	u.UpdateTarget(NoTargetID, t, true)
}

// HandleEntityDetach forgets every reference u holds to a unit leaving the world.
func (u *Unit) HandleEntityDetach(other *Unit) {
	if u.targetID == other.id || u.target == other {
		u.UpdateTarget(NoTargetID, nil, true)
	}
	u.threat.Remove(other.id)
}
