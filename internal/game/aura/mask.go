package aura

import "math/bits"

// MaxEffects is the number of effect slots an aura can carry.
const MaxEffects = 32

// EffectMask is a bitset of effect indexes.
type EffectMask uint32

// Has reports whether bit i is set.
func (m EffectMask) Has(i int) bool {
	return i >= 0 && i < MaxEffects && m&(1<<uint(i)) != 0
}

// With returns m with bit i set.
func (m EffectMask) With(i int) EffectMask {
	return m | 1<<uint(i)
}

// Without returns m with bit i cleared.
func (m EffectMask) Without(i int) EffectMask {
	return m &^ (1 << uint(i))
}

// Count returns the number of set bits.
func (m EffectMask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// MaskAll returns a mask with the first n bits set.
func MaskAll(n int) EffectMask {
	if n <= 0 {
		return 0
	}
	if n >= MaxEffects {
		return ^EffectMask(0)
	}
	return EffectMask(1)<<uint(n) - 1
}
