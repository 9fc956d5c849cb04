package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/game/aura"
)

// querier is the part of a pgx pool the repository needs. pgxmock pools
// satisfy it in tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AuraRepository loads aura templates.
type AuraRepository struct {
	pool querier
}

// NewAuraRepository creates a repository on pool.
func NewAuraRepository(pool querier) *AuraRepository {
	return &AuraRepository{pool: pool}
}

const (
	selectAuraTemplates = `SELECT id, name, duration_ms, max_stack, multi_caster, stack_group, state, interrupt, attributes
		FROM aura_templates ORDER BY id`
	selectAuraEffects = `SELECT aura_id, slot, effect_type, amount, period_ms, misc
		FROM aura_effect_templates ORDER BY aura_id, slot`
)

// LoadAll reads every template with its effects and returns a validated catalog.
func (r *AuraRepository) LoadAll(ctx context.Context) (*aura.Catalog, error) {
	infos, byID, err := r.loadTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.loadEffects(ctx, byID); err != nil {
		return nil, err
	}

	c, err := aura.NewCatalog(infos...)
	if err != nil {
		return nil, oops.With("source", "database").Wrap(err)
	}
	return c, nil
}

func (r *AuraRepository) loadTemplates(ctx context.Context) ([]*aura.Info, map[int32]*aura.Info, error) {
	rows, err := r.pool.Query(ctx, selectAuraTemplates)
	if err != nil {
		return nil, nil, oops.Code("DB_QUERY").With("operation", "select aura templates").Wrap(err)
	}
	defer rows.Close()

	var infos []*aura.Info
	byID := make(map[int32]*aura.Info)
	for rows.Next() {
		var (
			info       aura.Info
			state      string
			interrupt  []string
			attributes []string
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.DurationMs, &info.MaxStack, &info.MultiCaster,
			&info.StackGroup, &state, &interrupt, &attributes); err != nil {
			return nil, nil, oops.Code("DB_QUERY").With("operation", "scan aura template").Wrap(err)
		}

		st, ok := aura.ParseStateType(state)
		if !ok {
			return nil, nil, oops.Code("AURA_INVALID").With("aura", info.ID, "state", state).Errorf("unknown aura state")
		}
		info.StateType = st
		if info.InterruptFlags, err = aura.ParseInterruptFlags(interrupt); err != nil {
			return nil, nil, oops.With("aura", info.ID).Wrap(err)
		}
		if info.Attributes, err = aura.ParseAttributes(attributes); err != nil {
			return nil, nil, oops.With("aura", info.ID).Wrap(err)
		}

		infos = append(infos, &info)
		byID[info.ID] = &info
	}
	if err := rows.Err(); err != nil {
		return nil, nil, oops.Code("DB_QUERY").With("operation", "iterate aura templates").Wrap(err)
	}
	return infos, byID, nil
}

func (r *AuraRepository) loadEffects(ctx context.Context, byID map[int32]*aura.Info) error {
	rows, err := r.pool.Query(ctx, selectAuraEffects)
	if err != nil {
		return oops.Code("DB_QUERY").With("operation", "select aura effects").Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			auraID, amount, periodMs, misc int32
			slot                           int16
			typeName                       string
		)
		if err := rows.Scan(&auraID, &slot, &typeName, &amount, &periodMs, &misc); err != nil {
			return oops.Code("DB_QUERY").With("operation", "scan aura effect").Wrap(err)
		}

		info, ok := byID[auraID]
		if !ok {
			return oops.Code("AURA_INVALID").With("aura", auraID).Errorf("effect for unknown aura")
		}
		if int(slot) != len(info.Effects) {
			return oops.Code("AURA_INVALID").With("aura", auraID, "slot", slot).Errorf("effect slots must be contiguous from 0")
		}
		t, err := aura.ParseEffectType(typeName)
		if err != nil {
			return oops.With("aura", auraID, "slot", slot).Wrap(err)
		}
		info.Effects = append(info.Effects, aura.EffectInfo{Type: t, BaseAmount: amount, PeriodMs: periodMs, MiscValue: misc})
	}
	if err := rows.Err(); err != nil {
		return oops.Code("DB_QUERY").With("operation", "iterate aura effects").Wrap(err)
	}
	return nil
}
