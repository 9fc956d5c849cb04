package aura

import (
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// StateType is an aura state a unit can be in while at least one
// contributing application is present (e.g. "frozen" enabling shatter combos).
type StateType uint8

const (
	StateNone StateType = iota
	StateDefense
	StateHealthless20
	StateBerserking
	StateFrozen
	StateJudgement
	StateHunterParry
	StateEnrage
	StateBleeding
	StateHealthAbove75

	stateTypeCount
)

var stateTypeNames = map[string]StateType{
	"":               StateNone,
	"none":           StateNone,
	"defense":        StateDefense,
	"healthless_20":  StateHealthless20,
	"berserking":     StateBerserking,
	"frozen":         StateFrozen,
	"judgement":      StateJudgement,
	"hunter_parry":   StateHunterParry,
	"enrage":         StateEnrage,
	"bleeding":       StateBleeding,
	"health_above75": StateHealthAbove75,
}

// Mask returns the single-bit mask of the state (0 for StateNone).
func (s StateType) Mask() uint32 {
	if s == StateNone || s >= stateTypeCount {
		return 0
	}
	return 1 << (s - 1)
}

// UnmarshalYAML accepts the state name.
func (s *StateType) UnmarshalYAML(node *yaml.Node) error {
	v, ok := stateTypeNames[strings.ToLower(node.Value)]
	if !ok {
		return oops.Code("AURA_INVALID").With("state", node.Value, "line", node.Line).Errorf("unknown aura state")
	}
	*s = v
	return nil
}

// ParseStateType resolves a state name.
func ParseStateType(name string) (StateType, bool) {
	v, ok := stateTypeNames[strings.ToLower(name)]
	return v, ok
}

// InterruptFlags describe which actions of the affected unit cancel an aura.
type InterruptFlags uint32

const (
	InterruptNone         InterruptFlags = 0
	InterruptHitBySpell   InterruptFlags = 1 << 0
	InterruptDamage       InterruptFlags = 1 << 1
	InterruptCast         InterruptFlags = 1 << 2
	InterruptMove         InterruptFlags = 1 << 3
	InterruptTurning      InterruptFlags = 1 << 4
	InterruptJump         InterruptFlags = 1 << 5
	InterruptEnterCombat  InterruptFlags = 1 << 6
	InterruptAttack       InterruptFlags = 1 << 7
	InterruptNotSeated    InterruptFlags = 1 << 8
	InterruptChangeMap    InterruptFlags = 1 << 9
	InterruptImmuneOrLost InterruptFlags = 1 << 10
)

var interruptNames = map[string]InterruptFlags{
	"hit_by_spell":   InterruptHitBySpell,
	"damage":         InterruptDamage,
	"cast":           InterruptCast,
	"move":           InterruptMove,
	"turning":        InterruptTurning,
	"jump":           InterruptJump,
	"enter_combat":   InterruptEnterCombat,
	"attack":         InterruptAttack,
	"not_seated":     InterruptNotSeated,
	"change_map":     InterruptChangeMap,
	"immune_or_lost": InterruptImmuneOrLost,
}

// Has reports whether any bit of f is set.
func (i InterruptFlags) Has(f InterruptFlags) bool { return i&f != 0 }

// UnmarshalYAML accepts a list of flag names.
func (i *InterruptFlags) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return oops.Code("AURA_INVALID").With("line", node.Line).Wrapf(err, "decoding interrupt flags")
	}

	flags, err := ParseInterruptFlags(names)
	if err != nil {
		return oops.With("line", node.Line).Wrap(err)
	}
	*i = flags
	return nil
}

// ParseInterruptFlags resolves a list of flag names.
func ParseInterruptFlags(names []string) (InterruptFlags, error) {
	var flags InterruptFlags
	for _, name := range names {
		f, ok := interruptNames[strings.ToLower(name)]
		if !ok {
			return InterruptNone, oops.Code("AURA_INVALID").With("flag", name).Errorf("unknown interrupt flag")
		}
		flags |= f
	}
	return flags, nil
}

// Attributes are behavioral switches of an aura definition.
type Attributes uint32

const (
	AttrNone            Attributes = 0
	AttrPositive        Attributes = 1 << 0
	AttrPassive         Attributes = 1 << 1
	AttrDeathPersistent Attributes = 1 << 2
	AttrHidden          Attributes = 1 << 3
)

var attributeNames = map[string]Attributes{
	"positive":         AttrPositive,
	"passive":          AttrPassive,
	"death_persistent": AttrDeathPersistent,
	"hidden":           AttrHidden,
}

// Has reports whether all bits of a are set.
func (at Attributes) Has(a Attributes) bool { return at&a == a }

// UnmarshalYAML accepts a list of attribute names.
func (at *Attributes) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return oops.Code("AURA_INVALID").With("line", node.Line).Wrapf(err, "decoding aura attributes")
	}

	attrs, err := ParseAttributes(names)
	if err != nil {
		return oops.With("line", node.Line).Wrap(err)
	}
	*at = attrs
	return nil
}

// ParseAttributes resolves a list of attribute names.
func ParseAttributes(names []string) (Attributes, error) {
	var attrs Attributes
	for _, name := range names {
		a, ok := attributeNames[strings.ToLower(name)]
		if !ok {
			return AttrNone, oops.Code("AURA_INVALID").With("attribute", name).Errorf("unknown aura attribute")
		}
		attrs |= a
	}
	return attrs, nil
}

// RemoveMode is the reason an aura application is removed.
type RemoveMode uint8

const (
	RemoveDefault RemoveMode = iota
	RemoveInterrupt
	RemoveExpired
	RemoveCancel
	RemoveEnemySpell
	RemoveDeath
	RemoveDetach
)

var removeModeNames = [...]string{"default", "interrupt", "expired", "cancel", "enemy_spell", "death", "detach"}

func (m RemoveMode) String() string {
	if int(m) < len(removeModeNames) {
		return removeModeNames[m]
	}
	return "unknown"
}
