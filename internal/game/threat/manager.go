// Package threat keeps the per-unit list of attackers and how much each of
// them is hated.
package threat

import "slices"

// Entry tracks hate and damage from a single attacker.
type Entry struct {
	AttackerID uint64
	Hate       int64
	Damage     int64
}

// Manager is the threat list of one unit.
//
// Not thread-safe: owned by its unit on the shard goroutine.
type Manager struct {
	ownerID uint64
	entries map[uint64]*Entry
	// order of first contact; ties in Top resolve to the earliest attacker
	order []uint64
}

// NewManager creates an empty threat list for ownerID.
func NewManager(ownerID uint64) *Manager {
	return &Manager{
		ownerID: ownerID,
		entries: make(map[uint64]*Entry),
	}
}

// OwnerID returns the unit owning this list.
func (m *Manager) OwnerID() uint64 { return m.ownerID }

// AddHate adds hate for an attacker. Self-threat and id 0 are ignored.
func (m *Manager) AddHate(attackerID uint64, hate int64) {
	if e := m.getOrCreate(attackerID); e != nil {
		e.Hate += hate
	}
}

// AddDamage records damage from an attacker and converts it to hate 1:1.
func (m *Manager) AddDamage(attackerID uint64, damage int32) {
	if damage <= 0 {
		return
	}
	if e := m.getOrCreate(attackerID); e != nil {
		e.Damage += int64(damage)
		e.Hate += int64(damage)
	}
}

// Get returns the entry of attackerID, or nil.
func (m *Manager) Get(attackerID uint64) *Entry {
	return m.entries[attackerID]
}

// Top returns the id of the most hated attacker, or 0 if the list is empty.
func (m *Manager) Top() uint64 {
	var (
		topID   uint64
		topHate int64
	)
	for _, id := range m.order {
		if e := m.entries[id]; topID == 0 || e.Hate > topHate {
			topID, topHate = id, e.Hate
		}
	}
	return topID
}

// Remove drops an attacker from the list (it left the world).
func (m *Manager) Remove(attackerID uint64) {
	if _, ok := m.entries[attackerID]; !ok {
		return
	}
	delete(m.entries, attackerID)
	m.order = slices.DeleteFunc(m.order, func(id uint64) bool { return id == attackerID })
}

// Clear empties the list (owner died or left combat).
func (m *Manager) Clear() {
	clear(m.entries)
	m.order = m.order[:0]
}

// Detached is called when the owner leaves the world.
func (m *Manager) Detached() {
	m.Clear()
}

// Len returns the number of attackers.
func (m *Manager) Len() int { return len(m.entries) }

// IsEmpty reports whether nobody threatens the owner.
func (m *Manager) IsEmpty() bool { return len(m.entries) == 0 }

func (m *Manager) getOrCreate(attackerID uint64) *Entry {
	if attackerID == 0 || attackerID == m.ownerID {
		return nil
	}
	if e, ok := m.entries[attackerID]; ok {
		return e
	}
	e := &Entry{AttackerID: attackerID}
	m.entries[attackerID] = e
	m.order = append(m.order, attackerID)
	return e
}
