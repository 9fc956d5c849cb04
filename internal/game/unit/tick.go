package unit

import (
	"slices"

	"github.com/udisondev/auracore/internal/game/aura"
)

// DoUpdate ticks every owned aura once and removes the expired ones.
//
// Removing an aura may remove others (stacking, finalize cascades). When the
// owned list changed during an iteration the scan restarts from index 0;
// auras already ticked this round are skipped by their updated mark. Every
// Update of the tick completes before the first LateUpdate.
func (u *Unit) DoUpdate(deltaMs int32) {
	for i := 0; i < len(u.ownedAuras); i++ {
		a := u.ownedAuras[i]
		if a.updated {
			continue
		}

		gen := u.ownedGen
		a.Update(deltaMs)
		if a.IsExpired() {
			u.removeOwnedAura(a, aura.RemoveExpired)
		}
		if gen != u.ownedGen {
			i = -1
		}
	}

	for _, a := range slices.Clone(u.ownedAuras) {
		a.LateUpdate()
	}
}
