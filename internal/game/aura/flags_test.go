package aura

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectMask(t *testing.T) {
	var m EffectMask
	m = m.With(0).With(3)

	assert.True(t, m.Has(0))
	assert.True(t, m.Has(3))
	assert.False(t, m.Has(1))
	assert.False(t, m.Has(-1))
	assert.False(t, m.Has(MaxEffects))
	assert.Equal(t, 2, m.Count())

	m = m.Without(0)
	assert.False(t, m.Has(0))
	assert.Equal(t, 1, m.Count())
}

func TestMaskAll(t *testing.T) {
	assert.Equal(t, EffectMask(0), MaskAll(0))
	assert.Equal(t, EffectMask(0b111), MaskAll(3))
	assert.Equal(t, ^EffectMask(0), MaskAll(MaxEffects))
}

func TestStateType_Mask(t *testing.T) {
	assert.Equal(t, uint32(0), StateNone.Mask())
	assert.Equal(t, uint32(1), StateDefense.Mask())
	assert.NotEqual(t, StateFrozen.Mask(), StateEnrage.Mask())
}

func TestParseEffectType(t *testing.T) {
	got, err := ParseEffectType("periodicdamage")
	assert.NoError(t, err)
	assert.Equal(t, EffectPeriodicDamage, got)
	assert.Equal(t, "PeriodicDamage", got.String())

	_, err = ParseEffectType("nope")
	assert.Error(t, err)
}

func TestRemoveMode_String(t *testing.T) {
	assert.Equal(t, "expired", RemoveExpired.String())
	assert.Equal(t, "unknown", RemoveMode(99).String())
}

func TestInfo_StackLimit(t *testing.T) {
	assert.Equal(t, 1, (&Info{}).StackLimit())
	assert.Equal(t, 3, (&Info{MaxStack: 3}).StackLimit())
}

func TestParseInterruptFlags(t *testing.T) {
	got, err := ParseInterruptFlags([]string{"damage", "Move"})
	assert.NoError(t, err)
	assert.Equal(t, InterruptDamage|InterruptMove, got)

	_, err = ParseInterruptFlags([]string{"sneeze"})
	assert.Error(t, err)
}

func TestParseAttributes(t *testing.T) {
	got, err := ParseAttributes([]string{"positive", "death_persistent"})
	assert.NoError(t, err)
	assert.True(t, got.Has(AttrPositive|AttrDeathPersistent))
	assert.False(t, got.Has(AttrHidden))

	empty, err := ParseAttributes(nil)
	assert.NoError(t, err)
	assert.Equal(t, AttrNone, empty)
}
