package unit

// StackingPolicy decides whether an incoming aura may coexist with an aura
// already applied to the same target. stacked is the number of applications
// on the target with the incoming aura's id and caster, excluding the
// incoming aura itself.
type StackingPolicy interface {
	CanStack(existing, incoming *Aura, stacked int) bool
}

// DefaultStacking:
//   - an aura always stacks with itself;
//   - different ids stack unless they share a non-empty stack group;
//   - the same id from different casters stacks only for multi-caster auras;
//   - the same id from the same caster stacks while fewer than the stack
//     limit are applied.
type DefaultStacking struct{}

func (DefaultStacking) CanStack(existing, incoming *Aura, stacked int) bool {
	if existing == incoming {
		return true
	}

	ei, ii := existing.info, incoming.info
	if ei.ID != ii.ID {
		return ei.StackGroup == "" || ei.StackGroup != ii.StackGroup
	}
	if existing.casterID != incoming.casterID {
		return ii.MultiCaster
	}
	return stacked < ii.StackLimit()
}
