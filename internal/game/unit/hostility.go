package unit

// IsHostileTo: never to self; always between two free-for-all units;
// otherwise by the faction table.
func (u *Unit) IsHostileTo(other *Unit) bool {
	if other == nil || other == u {
		return false
	}
	if u.IsFreeForAll() && other.IsFreeForAll() {
		return true
	}
	return u.faction.IsHostileTo(other.faction)
}

// IsFriendlyTo: always to self; never between two free-for-all units;
// otherwise by the faction table. Two free-for-all units are hostile and
// not friendly.
func (u *Unit) IsFriendlyTo(other *Unit) bool {
	if other == nil {
		return false
	}
	if other == u {
		return true
	}
	if u.IsFreeForAll() && other.IsFreeForAll() {
		return false
	}
	return u.faction.IsFriendlyTo(other.faction)
}
