package model

import (
	"github.com/samber/oops"
)

// Faction is a named allegiance with explicit hostile and friendly sets.
type Faction struct {
	ID       int32
	Name     string
	hostile  map[int32]struct{}
	friendly map[int32]struct{}
}

// IsHostileTo reports whether other is listed hostile to f.
func (f *Faction) IsHostileTo(other *Faction) bool {
	if f == nil || other == nil {
		return false
	}
	_, ok := f.hostile[other.ID]
	return ok
}

// IsFriendlyTo reports whether other is listed friendly to f.
func (f *Faction) IsFriendlyTo(other *Faction) bool {
	if f == nil || other == nil {
		return false
	}
	_, ok := f.friendly[other.ID]
	return ok
}

// FactionEntry is the declarative form of a faction (config / YAML).
type FactionEntry struct {
	ID       int32   `yaml:"id"`
	Name     string  `yaml:"name"`
	Hostile  []int32 `yaml:"hostile"`
	Friendly []int32 `yaml:"friendly"`
}

// FactionTable resolves factions by id. Immutable after construction.
type FactionTable struct {
	byID      map[int32]*Faction
	defaultID int32
}

// NewFactionTable builds a table from entries. defaultID must be one of them.
// Relations referencing unknown ids are rejected.
func NewFactionTable(defaultID int32, entries []FactionEntry) (*FactionTable, error) {
	t := &FactionTable{
		byID:      make(map[int32]*Faction, len(entries)),
		defaultID: defaultID,
	}

	for _, e := range entries {
		if _, dup := t.byID[e.ID]; dup {
			return nil, oops.Code("FACTION_INVALID").With("faction", e.ID).Errorf("duplicate faction id")
		}
		t.byID[e.ID] = &Faction{
			ID:       e.ID,
			Name:     e.Name,
			hostile:  make(map[int32]struct{}, len(e.Hostile)),
			friendly: make(map[int32]struct{}, len(e.Friendly)),
		}
	}

	for _, e := range entries {
		f := t.byID[e.ID]
		for _, id := range e.Hostile {
			if _, ok := t.byID[id]; !ok {
				return nil, oops.Code("FACTION_INVALID").With("faction", e.ID, "hostile", id).Errorf("unknown hostile faction")
			}
			f.hostile[id] = struct{}{}
		}
		for _, id := range e.Friendly {
			if _, ok := t.byID[id]; !ok {
				return nil, oops.Code("FACTION_INVALID").With("faction", e.ID, "friendly", id).Errorf("unknown friendly faction")
			}
			f.friendly[id] = struct{}{}
		}
	}

	if _, ok := t.byID[defaultID]; !ok {
		return nil, oops.Code("FACTION_INVALID").With("faction", defaultID).Errorf("default faction not defined")
	}

	return t, nil
}

// Get returns the faction with id, falling back to the default faction.
func (t *FactionTable) Get(id int32) *Faction {
	if f, ok := t.byID[id]; ok {
		return f
	}
	return t.byID[t.defaultID]
}

// Lookup returns the faction with id and whether it exists.
func (t *FactionTable) Lookup(id int32) (*Faction, bool) {
	f, ok := t.byID[id]
	return f, ok
}

// Default returns the default faction.
func (t *FactionTable) Default() *Faction {
	return t.byID[t.defaultID]
}

// Len returns the number of factions.
func (t *FactionTable) Len() int {
	return len(t.byID)
}
