package world

import (
	"sync/atomic"

	"github.com/udisondev/auracore/internal/model"
)

// IDGenerator hands out unit ids.
//
// ID ranges (convention):
//
//	0x00000000: no unit (unit.NoTargetID)
//	0x00000001 - 0x0FFFFFFF: reserved for ids assigned by callers
//	0x10000000 - 0x1FFFFFFF: players
//	0x20000000 and up:       creatures
type IDGenerator struct {
	nextPlayerID   atomic.Uint64
	nextCreatureID atomic.Uint64
}

// NewIDGenerator creates a generator at the start of each range.
func NewIDGenerator() *IDGenerator {
	gen := &IDGenerator{}
	gen.nextPlayerID.Store(0x10000000)
	gen.nextCreatureID.Store(0x20000000)
	return gen
}

// Next returns a fresh id for a unit of kind k.
// Thread-safe via atomic increment.
func (g *IDGenerator) Next(k model.Kind) uint64 {
	if k == model.KindPlayer {
		return g.nextPlayerID.Add(1)
	}
	return g.nextCreatureID.Add(1)
}
