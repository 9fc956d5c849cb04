package model

// DeathState is the lifecycle stage of a unit.
// Dead is terminal for this core; respawn goes back through HandleSpawn.
type DeathState int32

const (
	DeathStateAlive DeathState = iota
	DeathStateJustDied
	DeathStateCorpse
	DeathStateDead
	DeathStateJustRespawned
)

var deathStateNames = [...]string{"alive", "just_died", "corpse", "dead", "just_respawned"}

func (s DeathState) String() string {
	if s >= 0 && int(s) < len(deathStateNames) {
		return deathStateNames[s]
	}
	return "unknown"
}

// UnitState is a bitset of transient movement/control states.
type UnitState uint32

const (
	UnitStateNone    UnitState = 0
	UnitStateDied    UnitState = 1 << 0
	UnitStateMoving  UnitState = 1 << 1
	UnitStateRoot    UnitState = 1 << 2
	UnitStateStunned UnitState = 1 << 3
	UnitStateCasting UnitState = 1 << 4
	UnitStateEvade   UnitState = 1 << 5

	// UnitStateControlled marks states that block voluntary movement.
	UnitStateControlled = UnitStateRoot | UnitStateStunned
)

// UnitFlags is a bitset of persistent unit flags.
type UnitFlags uint32

const (
	UnitFlagNone           UnitFlags = 0
	UnitFlagNonAttackable  UnitFlags = 1 << 0
	UnitFlagImmuneToPlayer UnitFlags = 1 << 1
	UnitFlagImmuneToNpc    UnitFlags = 1 << 2
	UnitFlagPacified       UnitFlags = 1 << 3
	UnitFlagSilenced       UnitFlags = 1 << 4
	UnitFlagInCombat       UnitFlags = 1 << 5
	UnitFlagNotSelectable  UnitFlags = 1 << 6
)

// Kind distinguishes player-controlled units from server-driven ones.
type Kind uint8

const (
	KindCreature Kind = iota
	KindPlayer
)
