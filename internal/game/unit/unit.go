// Package unit is the combat core of a shard: the Unit aggregate with its
// attributes and death state, the aura application engine, targeting,
// hostility and the observer-side reconciliation of replicated state.
//
// Everything here runs on the single shard goroutine and takes no locks.
package unit

import (
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/auracore/internal/game/aura"
	"github.com/udisondev/auracore/internal/game/threat"
	"github.com/udisondev/auracore/internal/model"
	"github.com/udisondev/auracore/internal/replication"
)

// NoTargetID means "no target".
const NoTargetID uint64 = 0

// Params describes a unit at creation.
type Params struct {
	ID   uint64
	Kind model.Kind
	Name string

	// Authority units own their canonical state; the rest are observers fed
	// by replication deltas.
	Authority bool

	DeathState model.DeathState
	FactionID  int32
	FreeForAll bool

	Health     int32
	MaxHealth  int32
	Power      int32
	MaxPower   int32
	Level      int32
	SpellPower int32

	CritPercentage       float32
	RangedCritPercentage float32
	SpellCritPercentage  float32

	Movement model.MovementDefinition
}

// Unit is a combat participant.
type Unit struct {
	id        uint64
	kind      model.Kind
	name      string
	env       *Env
	logger    *slog.Logger
	state     *replication.State
	authority bool
	attached  bool

	faction        *model.Faction
	deathState     model.DeathState
	unitState      model.UnitState
	flags          model.UnitFlags
	auraState      uint32
	interruptFlags aura.InterruptFlags

	movement   model.MovementDefinition
	speedRates map[model.MoveType]float32

	targetID uint64
	target   *Unit

	health     *model.Attribute[int32]
	maxHealth  *model.Attribute[int32]
	power      *model.Attribute[int32]
	maxPower   *model.Attribute[int32]
	level      *model.Attribute[int32]
	spellPower *model.Attribute[int32]

	modHaste             *model.Attribute[float32]
	modRangedHaste       *model.Attribute[float32]
	modSpellHaste        *model.Attribute[float32]
	modRegenHaste        *model.Attribute[float32]
	critPercentage       *model.Attribute[float32]
	rangedCritPercentage *model.Attribute[float32]
	spellCritPercentage  *model.Attribute[float32]

	ownedAuras []*Aura
	// bumped on every insert/remove of ownedAuras; the tick loop restarts on change
	ownedGen       uint64
	ownedAurasByID map[int32][]*Aura

	applications         []*AuraApplication
	applicationsByAuraID map[int32][]*AuraApplication
	applicationsByState  map[aura.StateType][]*AuraApplication
	effectsByType        map[aura.EffectType][]*AuraEffect
	interruptable        []*AuraApplication

	threat *threat.Manager
	cast   *SpellCast
}

// New creates a detached unit. Call Attached once it enters the world.
func New(env *Env, p Params) *Unit {
	env.normalize()

	u := &Unit{
		id:                   p.ID,
		kind:                 p.Kind,
		name:                 p.Name,
		env:                  env,
		logger:               env.Logger.With("unit", p.ID),
		authority:            p.Authority,
		deathState:           p.DeathState,
		movement:             p.Movement,
		speedRates:           make(map[model.MoveType]float32, len(model.MoveTypes)),
		ownedAurasByID:       make(map[int32][]*Aura),
		applicationsByAuraID: make(map[int32][]*AuraApplication),
		applicationsByState:  make(map[aura.StateType][]*AuraApplication),
		effectsByType:        make(map[aura.EffectType][]*AuraEffect),
		threat:               threat.NewManager(p.ID),
	}
	if u.movement == (model.MovementDefinition{}) {
		u.movement = model.DefaultMovement()
	}
	if p.Authority {
		u.state = replication.NewAuthority(p.ID, env.Publisher)
	} else {
		u.state = replication.NewObserver(p.ID)
	}
	u.cast = &SpellCast{caster: u}

	maxHealth := p.MaxHealth
	if maxHealth <= 0 {
		maxHealth = max(p.Health, 1)
	}
	sink := u.state
	u.maxHealth = model.NewAttribute(model.AttrMaxHealth, maxHealth, 0, math.MaxInt32, sink)
	u.health = model.NewAttribute(model.AttrHealth, min(p.Health, maxHealth), 0, math.MaxInt32, sink)
	u.maxPower = model.NewAttribute(model.AttrMaxPower, p.MaxPower, 0, math.MaxInt32, sink)
	u.power = model.NewAttribute(model.AttrPower, min(p.Power, p.MaxPower), 0, math.MaxInt32, sink)
	u.level = model.NewAttribute(model.AttrLevel, max(p.Level, 1), 1, math.MaxInt32, sink)
	u.spellPower = model.NewAttribute(model.AttrSpellPower, p.SpellPower, 0, math.MaxInt32, sink)
	u.modHaste = model.NewAttribute[float32](model.AttrModHaste, 1, 0, math.MaxFloat32, sink)
	u.modRangedHaste = model.NewAttribute[float32](model.AttrModRangedHaste, 1, 0, math.MaxFloat32, sink)
	u.modSpellHaste = model.NewAttribute[float32](model.AttrModSpellHaste, 1, 0, math.MaxFloat32, sink)
	u.modRegenHaste = model.NewAttribute[float32](model.AttrModRegenHaste, 1, 0, math.MaxFloat32, sink)
	u.critPercentage = model.NewAttribute(model.AttrCritPercentage, p.CritPercentage, 0, 100, sink)
	u.rangedCritPercentage = model.NewAttribute(model.AttrRangedCritPercentage, p.RangedCritPercentage, 0, 100, sink)
	u.spellCritPercentage = model.NewAttribute(model.AttrSpellCritPercentage, p.SpellCritPercentage, 0, 100, sink)

	u.setFaction(p.FactionID, p.FreeForAll)
	u.state.SetDeathState(p.DeathState)
	if p.DeathState == model.DeathStateDead {
		u.unitState |= model.UnitStateDied
	}
	return u
}

// Attached is called when the unit enters the world.
func (u *Unit) Attached() {
	if u.attached {
		return
	}
	u.attached = true

	for _, t := range model.MoveTypes {
		u.speedRates[t] = 1
	}

	if u.authority {
		for _, attr := range u.intAttributes() {
			u.state.WriteAttribute(attr.ID(), float64(attr.Value()))
		}
		for _, attr := range u.floatAttributes() {
			u.state.WriteAttribute(attr.ID(), float64(attr.Value()))
		}
		return
	}

	u.state.AddCallback(replication.FieldDeathState, u.onDeathStateChanged)
	u.state.AddCallback(replication.AttributeField(model.AttrMaxHealth), u.onMaxHealthChanged)
	u.state.AddCallback(replication.AttributeField(model.AttrHealth), u.onHealthStateChanged)
	u.state.AddCallback(replication.FieldTargetID, u.onTargetIDChanged)
	u.state.AddCallback(replication.FieldFaction, u.onFactionChanged)
	u.resync()
}

// Detached is called when the unit leaves the world. Safe to call twice.
// Every aura container must be empty afterwards.
func (u *Unit) Detached() {
	if !u.attached {
		return
	}

	if u.cast.IsCasting() {
		u.cast.Cancel()
	}

	for len(u.ownedAuras) > 0 {
		n := len(u.ownedAuras)
		u.removeOwnedAura(u.ownedAuras[n-1], aura.RemoveDetach)
		if len(u.ownedAuras) >= n {
			break
		}
	}
	for _, app := range slices.Clone(u.applications) {
		u.RemoveAura(app, aura.RemoveDetach)
	}
	u.checkDetachResidue()

	u.state.RemoveAllCallbacks()
	u.threat.Detached()
	u.target = nil
	u.targetID = NoTargetID
	u.attached = false
}

func (u *Unit) checkDetachResidue() {
	residue := len(u.ownedAuras) + len(u.ownedAurasByID) + len(u.applications) +
		len(u.applicationsByAuraID) + len(u.applicationsByState) + len(u.effectsByType) + len(u.interruptable)
	if residue == 0 {
		return
	}

	u.env.violation(CodeDetachResidue,
		"unit", u.id,
		"owned", len(u.ownedAuras),
		"applications", len(u.applications),
		"effects", len(u.effectsByType),
	)
	u.ownedAuras = nil
	u.ownedGen++
	clear(u.ownedAurasByID)
	u.applications = nil
	clear(u.applicationsByAuraID)
	clear(u.applicationsByState)
	clear(u.effectsByType)
	u.interruptable = nil
	u.interruptFlags = aura.InterruptNone
	u.auraState = 0
}

// ID returns the stable entity id.
func (u *Unit) ID() uint64 { return u.id }

// Kind returns whether the unit is a player or a creature.
func (u *Unit) Kind() model.Kind { return u.kind }

// Name returns the display name.
func (u *Unit) Name() string { return u.name }

// Env returns the shard environment.
func (u *Unit) Env() *Env { return u.env }

// State returns the replicated mirror.
func (u *Unit) State() *replication.State { return u.state }

// IsAuthority reports whether this process owns the unit's canonical state.
func (u *Unit) IsAuthority() bool { return u.authority }

// IsAttached reports whether the unit is in the world.
func (u *Unit) IsAttached() bool { return u.attached }

// IsControlledByPlayer reports whether the unit is a player character.
func (u *Unit) IsControlledByPlayer() bool { return u.kind == model.KindPlayer }

// Threat returns the unit's threat list.
func (u *Unit) Threat() *threat.Manager { return u.threat }

// SpellCast returns the cast slot.
func (u *Unit) SpellCast() *SpellCast { return u.cast }

func (u *Unit) Health() int32     { return u.health.Value() }
func (u *Unit) MaxHealth() int32  { return u.maxHealth.Value() }
func (u *Unit) BasePower() int32  { return u.power.Base() }
func (u *Unit) Level() int32      { return u.level.Value() }
func (u *Unit) SpellPower() int32 { return u.spellPower.Value() }

func (u *Unit) ModHaste() float32             { return u.modHaste.Value() }
func (u *Unit) ModRangedHaste() float32       { return u.modRangedHaste.Value() }
func (u *Unit) ModSpellHaste() float32        { return u.modSpellHaste.Value() }
func (u *Unit) ModRegenHaste() float32        { return u.modRegenHaste.Value() }
func (u *Unit) CritPercentage() float32       { return u.critPercentage.Value() }
func (u *Unit) RangedCritPercentage() float32 { return u.rangedCritPercentage.Value() }
func (u *Unit) SpellCritPercentage() float32  { return u.spellCritPercentage.Value() }

// DeathState returns the lifecycle stage.
func (u *Unit) DeathState() model.DeathState { return u.deathState }

func (u *Unit) IsAlive() bool { return u.deathState == model.DeathStateAlive }
func (u *Unit) IsDead() bool  { return u.deathState == model.DeathStateDead }

// Faction returns the unit's faction (never nil once a table is configured).
func (u *Unit) Faction() *model.Faction { return u.faction }

// IsFreeForAll reports whether the unit is in free-for-all mode.
func (u *Unit) IsFreeForAll() bool { return u.state.FreeForAll() }

// Target returns the resolved target, or nil.
func (u *Unit) Target() *Unit { return u.target }

// TargetID returns the id of the current target.
func (u *Unit) TargetID() uint64 { return u.targetID }

// SetFaction changes faction and free-for-all mode. Authority only.
func (u *Unit) SetFaction(id int32, freeForAll bool) {
	if !u.requireAuthority("SetFaction") {
		return
	}
	u.setFaction(id, freeForAll)
	u.env.Events.Publish(Event{Kind: EventFactionChanged, Unit: u})
}

func (u *Unit) setFaction(id int32, freeForAll bool) {
	if u.env.Factions != nil {
		u.faction = u.env.Factions.Get(id)
	}
	u.state.SetFaction(id, freeForAll)
}

func (u *Unit) intAttributes() []*model.Attribute[int32] {
	return []*model.Attribute[int32]{u.maxHealth, u.health, u.maxPower, u.power, u.level, u.spellPower}
}

func (u *Unit) floatAttributes() []*model.Attribute[float32] {
	return []*model.Attribute[float32]{
		u.modHaste, u.modRangedHaste, u.modSpellHaste, u.modRegenHaste,
		u.critPercentage, u.rangedCritPercentage, u.spellCritPercentage,
	}
}

// requireAuthority guards the mutations only the authority may perform.
func (u *Unit) requireAuthority(op string) bool {
	if u.authority {
		return true
	}
	u.env.violation(CodeObserverMutate, "unit", u.id, "op", op)
	return false
}
