package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AddDamageAndTop(t *testing.T) {
	m := NewManager(1)

	m.AddDamage(2, 50)
	m.AddDamage(3, 80)
	m.AddHate(2, 40)

	require.Equal(t, 2, m.Len())
	assert.Equal(t, uint64(2), m.Top())
	assert.Equal(t, int64(50), m.Get(2).Damage)
	assert.Equal(t, int64(90), m.Get(2).Hate)
}

func TestManager_TieGoesToFirstAttacker(t *testing.T) {
	m := NewManager(1)
	m.AddDamage(5, 10)
	m.AddDamage(4, 10)

	assert.Equal(t, uint64(5), m.Top())
}

func TestManager_IgnoresSelfAndZero(t *testing.T) {
	m := NewManager(1)

	m.AddDamage(1, 10)
	m.AddHate(0, 10)
	m.AddDamage(2, 0)

	assert.True(t, m.IsEmpty())
	assert.Equal(t, uint64(0), m.Top())
}

func TestManager_RemoveAndClear(t *testing.T) {
	m := NewManager(1)
	m.AddDamage(2, 10)
	m.AddDamage(3, 5)

	m.Remove(2)
	m.Remove(99)
	assert.Nil(t, m.Get(2))
	assert.Equal(t, uint64(3), m.Top())

	m.Detached()
	assert.True(t, m.IsEmpty())
}
