// Package replication holds the replicated mirror of a unit and the ordered
// delta stream an authority produces for its observers.
package replication

import (
	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/model"
)

// Field identifies a replicated field. Attribute fields are offset by
// fieldAttributeBase so that each attribute has its own callback key.
type Field uint16

const (
	FieldDeathState Field = iota + 1
	FieldTargetID
	FieldFaction

	fieldAttributeBase Field = 0x100
)

// AttributeField returns the field key of attribute id.
func AttributeField(id model.AttributeID) Field {
	return fieldAttributeBase + Field(id)
}

// Attribute returns the attribute id of f and whether f is an attribute field.
func (f Field) Attribute() (model.AttributeID, bool) {
	if f <= fieldAttributeBase {
		return 0, false
	}
	return model.AttributeID(f - fieldAttributeBase), true
}

// Delta is one field-level change produced by an authority.
// Seq is strictly increasing per entity.
type Delta struct {
	Seq    uint64
	Entity uint64
	Field  Field
	Int    int64
	Float  float64
	Bool   bool
}

// Publisher receives deltas in production order.
type Publisher interface {
	Publish(d Delta)
}

// State is the replicated mirror of one entity.
//
// On the authority every write that changes a value produces a Delta handed to
// the publisher. On an observer local writes only store the value; remote
// deltas arrive through Apply, which enforces ordering and fires callbacks.
//
// Not thread-safe: accessed from the shard goroutine that owns the entity.
type State struct {
	entity    uint64
	authority bool
	publisher Publisher

	seq     uint64
	lastSeq uint64

	deathState int32
	targetID   uint64
	factionID  int32
	freeForAll bool
	attributes map[model.AttributeID]float64

	callbacks map[Field][]func()
}

// NewAuthority creates the mirror written by the entity's authority.
// publisher may be nil (nothing observes the entity).
func NewAuthority(entity uint64, publisher Publisher) *State {
	return &State{
		entity:     entity,
		authority:  true,
		publisher:  publisher,
		attributes: make(map[model.AttributeID]float64),
		callbacks:  make(map[Field][]func()),
	}
}

// NewObserver creates a read-only mirror fed by Apply.
func NewObserver(entity uint64) *State {
	return &State{
		entity:     entity,
		attributes: make(map[model.AttributeID]float64),
		callbacks:  make(map[Field][]func()),
	}
}

// Entity returns the id of the mirrored entity.
func (s *State) Entity() uint64 { return s.entity }

// IsAuthority reports whether this mirror belongs to the authority.
func (s *State) IsAuthority() bool { return s.authority }

// Seq returns the sequence number of the last produced (authority) or
// applied (observer) delta.
func (s *State) Seq() uint64 {
	if s.authority {
		return s.seq
	}
	return s.lastSeq
}

// DeathState returns the replicated death state.
func (s *State) DeathState() model.DeathState { return model.DeathState(s.deathState) }

// TargetID returns the replicated target id.
func (s *State) TargetID() uint64 { return s.targetID }

// FactionID returns the replicated faction id.
func (s *State) FactionID() int32 { return s.factionID }

// FreeForAll returns the replicated free-for-all flag.
func (s *State) FreeForAll() bool { return s.freeForAll }

// Attribute returns the replicated attribute value.
func (s *State) Attribute(id model.AttributeID) float64 { return s.attributes[id] }

// LookupAttribute returns the replicated attribute value and whether it was
// ever written.
func (s *State) LookupAttribute(id model.AttributeID) (float64, bool) {
	v, ok := s.attributes[id]
	return v, ok
}

// Health returns the replicated health as an integer.
func (s *State) Health() int32 { return int32(s.attributes[model.AttrHealth]) }

// SetDeathState writes the death state.
func (s *State) SetDeathState(v model.DeathState) {
	if s.deathState == int32(v) {
		return
	}
	s.deathState = int32(v)
	s.emit(Delta{Field: FieldDeathState, Int: int64(v)})
}

// SetTargetID writes the target id.
func (s *State) SetTargetID(id uint64) {
	if s.targetID == id {
		return
	}
	s.targetID = id
	s.emit(Delta{Field: FieldTargetID, Int: int64(id)})
}

// SetFaction writes the faction id and free-for-all flag as one delta.
func (s *State) SetFaction(id int32, freeForAll bool) {
	if s.factionID == id && s.freeForAll == freeForAll {
		return
	}
	s.factionID = id
	s.freeForAll = freeForAll
	s.emit(Delta{Field: FieldFaction, Int: int64(id), Bool: freeForAll})
}

// WriteAttribute implements model.AttributeSink.
func (s *State) WriteAttribute(id model.AttributeID, value float64) {
	if old, ok := s.attributes[id]; ok && old == value {
		return
	}
	s.attributes[id] = value
	s.emit(Delta{Field: AttributeField(id), Float: value})
}

func (s *State) emit(d Delta) {
	if !s.authority {
		return
	}
	s.seq++
	d.Seq = s.seq
	d.Entity = s.entity
	if s.publisher != nil {
		s.publisher.Publish(d)
	}
}

// Apply stores a remote delta on an observer and fires the field callbacks.
// Deltas must arrive in production order; a stale or foreign delta is rejected.
func (s *State) Apply(d Delta) error {
	if s.authority {
		return oops.Code("REPLICATION_AUTHORITY").With("entity", s.entity).Errorf("authority state cannot apply remote deltas")
	}
	if d.Entity != s.entity {
		return oops.Code("REPLICATION_ENTITY").With("entity", s.entity, "delta_entity", d.Entity).Errorf("delta for another entity")
	}
	if d.Seq <= s.lastSeq {
		return oops.Code("REPLICATION_ORDER").With("entity", s.entity, "seq", d.Seq, "last_seq", s.lastSeq).Errorf("out-of-order delta")
	}
	s.lastSeq = d.Seq

	switch d.Field {
	case FieldDeathState:
		s.deathState = int32(d.Int)
	case FieldTargetID:
		s.targetID = uint64(d.Int)
	case FieldFaction:
		s.factionID = int32(d.Int)
		s.freeForAll = d.Bool
	default:
		id, ok := d.Field.Attribute()
		if !ok {
			return oops.Code("REPLICATION_FIELD").With("entity", s.entity, "field", d.Field).Errorf("unknown field")
		}
		s.attributes[id] = d.Float
	}

	for _, cb := range s.callbacks[d.Field] {
		cb()
	}
	return nil
}

// AddCallback registers cb to run after every applied delta of field f.
func (s *State) AddCallback(f Field, cb func()) {
	s.callbacks[f] = append(s.callbacks[f], cb)
}

// RemoveAllCallbacks drops every registered callback.
func (s *State) RemoveAllCallbacks() {
	clear(s.callbacks)
}

// Snapshot returns the full current state as deltas together with the
// sequence number it corresponds to. Used to seed a late observer.
func (s *State) Snapshot() ([]Delta, uint64) {
	out := make([]Delta, 0, 3+len(s.attributes))
	out = append(out,
		Delta{Entity: s.entity, Field: FieldDeathState, Int: int64(s.deathState)},
		Delta{Entity: s.entity, Field: FieldTargetID, Int: int64(s.targetID)},
		Delta{Entity: s.entity, Field: FieldFaction, Int: int64(s.factionID), Bool: s.freeForAll},
	)
	for id := model.AttrHealth; id <= model.AttrSpellCritPercentage; id++ {
		if v, ok := s.attributes[id]; ok {
			out = append(out, Delta{Entity: s.entity, Field: AttributeField(id), Float: v})
		}
	}
	return out, s.Seq()
}

// Seed overwrites an observer with a snapshot taken at seq. No callbacks fire.
func (s *State) Seed(deltas []Delta, seq uint64) {
	for _, d := range deltas {
		switch d.Field {
		case FieldDeathState:
			s.deathState = int32(d.Int)
		case FieldTargetID:
			s.targetID = uint64(d.Int)
		case FieldFaction:
			s.factionID = int32(d.Int)
			s.freeForAll = d.Bool
		default:
			if id, ok := d.Field.Attribute(); ok {
				s.attributes[id] = d.Float
			}
		}
	}
	s.lastSeq = seq
}
