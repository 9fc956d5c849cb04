package model

// AttributeID identifies a replicated unit attribute.
type AttributeID uint8

const (
	AttrHealth AttributeID = iota + 1
	AttrMaxHealth
	AttrPower
	AttrMaxPower
	AttrLevel
	AttrSpellPower
	AttrModHaste
	AttrModRangedHaste
	AttrModSpellHaste
	AttrModRegenHaste
	AttrCritPercentage
	AttrRangedCritPercentage
	AttrSpellCritPercentage
)

var attributeNames = map[AttributeID]string{
	AttrHealth:               "health",
	AttrMaxHealth:            "max_health",
	AttrPower:                "power",
	AttrMaxPower:             "max_power",
	AttrLevel:                "level",
	AttrSpellPower:           "spell_power",
	AttrModHaste:             "mod_haste",
	AttrModRangedHaste:       "mod_ranged_haste",
	AttrModSpellHaste:        "mod_spell_haste",
	AttrModRegenHaste:        "mod_regen_haste",
	AttrCritPercentage:       "crit_percentage",
	AttrRangedCritPercentage: "ranged_crit_percentage",
	AttrSpellCritPercentage:  "spell_crit_percentage",
}

// String returns the snake_case attribute name.
func (id AttributeID) String() string {
	if name, ok := attributeNames[id]; ok {
		return name
	}
	return "unknown"
}

// AttributeSink receives every committed attribute value.
// The replicated mirror of a unit implements it.
type AttributeSink interface {
	WriteAttribute(id AttributeID, value float64)
}

// Number is the set of value types an Attribute can hold.
type Number interface {
	~int32 | ~float32
}

// Attribute is a bounded value with a base (unmodified starting value).
// Value is re-clamped to [min, max] on every Set.
//
// Not thread-safe: owned and mutated only by its unit on the shard goroutine.
type Attribute[T Number] struct {
	id    AttributeID
	base  T
	value T
	min   T
	max   T
	sink  AttributeSink
}

// NewAttribute creates an attribute starting at base (clamped).
// sink may be nil.
func NewAttribute[T Number](id AttributeID, base, minValue, maxValue T, sink AttributeSink) *Attribute[T] {
	a := &Attribute[T]{
		id:   id,
		base: base,
		min:  minValue,
		max:  maxValue,
		sink: sink,
	}
	a.value = a.clamp(base)
	return a
}

// ID returns the attribute identifier.
func (a *Attribute[T]) ID() AttributeID { return a.id }

// Value returns the current value.
func (a *Attribute[T]) Value() T { return a.value }

// Base returns the unmodified starting value.
func (a *Attribute[T]) Base() T { return a.base }

// Min returns the lower bound.
func (a *Attribute[T]) Min() T { return a.min }

// Max returns the upper bound.
func (a *Attribute[T]) Max() T { return a.max }

// Set clamps v to [min, max], stores it, writes it through to the sink and
// returns the signed delta actually applied (0 if the clamped value is unchanged).
// Event dispatch is the caller's responsibility.
func (a *Attribute[T]) Set(v T) T {
	v = a.clamp(v)
	delta := v - a.value
	a.value = v
	if a.sink != nil {
		a.sink.WriteAttribute(a.id, float64(v))
	}
	return delta
}

// Modify is Set(Value()+delta).
func (a *Attribute[T]) Modify(delta T) T {
	return a.Set(a.value + delta)
}

// Reset restores the base value.
func (a *Attribute[T]) Reset() T {
	return a.Set(a.base)
}

func (a *Attribute[T]) clamp(v T) T {
	if v < a.min {
		return a.min
	}
	if v > a.max {
		return a.max
	}
	return v
}
