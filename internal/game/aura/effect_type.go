package aura

import (
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// EffectType tags the behavior of one aura effect slot.
// Behavior lives in the handler table of the unit package, keyed by this tag.
type EffectType uint16

const (
	EffectNone EffectType = iota
	EffectDummy
	EffectModIncreaseSpeed
	EffectModDecreaseSpeed
	EffectRoot
	EffectStun
	EffectPeriodicDamage
	EffectPeriodicHeal
	EffectModHaste
	EffectModSpellHaste
	EffectModSpellPower
	EffectModMaxHealth
	EffectModCritPercent
)

var effectTypeNames = map[EffectType]string{
	EffectNone:             "None",
	EffectDummy:            "Dummy",
	EffectModIncreaseSpeed: "ModIncreaseSpeed",
	EffectModDecreaseSpeed: "ModDecreaseSpeed",
	EffectRoot:             "Root",
	EffectStun:             "Stun",
	EffectPeriodicDamage:   "PeriodicDamage",
	EffectPeriodicHeal:     "PeriodicHeal",
	EffectModHaste:         "ModHaste",
	EffectModSpellHaste:    "ModSpellHaste",
	EffectModSpellPower:    "ModSpellPower",
	EffectModMaxHealth:     "ModMaxHealth",
	EffectModCritPercent:   "ModCritPercent",
}

var effectTypesByName = func() map[string]EffectType {
	m := make(map[string]EffectType, len(effectTypeNames))
	for t, name := range effectTypeNames {
		m[strings.ToLower(name)] = t
	}
	return m
}()

func (t EffectType) String() string {
	if name, ok := effectTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseEffectType resolves an effect type by (case-insensitive) name.
func ParseEffectType(name string) (EffectType, error) {
	t, ok := effectTypesByName[strings.ToLower(name)]
	if !ok {
		return EffectNone, oops.Code("AURA_INVALID").With("effect", name).Errorf("unknown effect type: %s", name)
	}
	return t, nil
}

// UnmarshalYAML accepts the effect type name.
func (t *EffectType) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseEffectType(node.Value)
	if err != nil {
		return oops.With("line", node.Line).Wrap(err)
	}
	*t = v
	return nil
}
