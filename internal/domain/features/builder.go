package features

import (
	"context"
	"fmt"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// statRatioSmoothing keeps the denominator of stat_ratio away from zero.
const statRatioSmoothing = 1.0

// MoveContext carries a move together with the stab and type multiplier the
// scorer already computed for it against the relevant defender.
type MoveContext struct {
	Move           model.Move
	Stab           float64
	TypeMultiplier float64
}

// NeutralOpponentMove is the placeholder used when the caller supplies no
// baseline move for the opponent: a typeless status move with neutral stab
// and multiplier, so the mirrored columns carry no signal.
func NeutralOpponentMove() MoveContext {
	return MoveContext{
		Move:           model.Move{Accuracy: 100, Category: model.Status},
		Stab:           1.0,
		TypeMultiplier: 1.0,
	}
}

// Matchup is the full input for one feature vector: the two combatant
// snapshots, the move under evaluation, and the opponent's baseline move.
// A zero-valued OpponentMove is replaced by NeutralOpponentMove.
type Matchup struct {
	Attacker     model.Combatant
	Defender     model.Combatant
	Move         MoveContext
	OpponentMove MoveContext
}

// Builder assembles feature vectors against a frozen schema and two frozen
// scaler parameter sets. It is immutable after construction and safe for
// concurrent use.
type Builder struct {
	schema  *Schema
	raw     *ScalerParams
	derived *ScalerParams
}

// NewBuilder validates that both scaler sets were frozen against exactly the
// schema's column orders and that the builder knows how to produce every
// named column. Any disagreement is a fatal configuration error; it must
// never surface per request.
func NewBuilder(schema *Schema, raw, derived *ScalerParams) (*Builder, error) {
	if err := raw.matchesOrder(schema.NumericColumns()); err != nil {
		return nil, fmt.Errorf("raw scaler: %w", err)
	}
	if err := derived.matchesOrder(schema.DerivedColumns()); err != nil {
		return nil, fmt.Errorf("derived scaler: %w", err)
	}

	// Probe with a synthetic matchup so a schema naming a column this
	// builder cannot compute fails at startup.
	b := &Builder{schema: schema, raw: raw, derived: derived}
	probeType := schema.Vocabulary()[0]
	probe := Matchup{
		Attacker: model.Combatant{Name: "probe-a", PrimaryType: probeType},
		Defender: model.Combatant{Name: "probe-b", PrimaryType: probeType},
		Move: MoveContext{
			Move: model.Move{Name: "probe", Type: probeType, Category: model.Physical},
			Stab: 1, TypeMultiplier: 1,
		},
	}
	if _, err := b.Build(context.Background(), probe); err != nil {
		return nil, fmt.Errorf("schema probe: %w", err)
	}
	return b, nil
}

// Schema returns the frozen schema the builder emits against.
func (b *Builder) Schema() *Schema { return b.schema }

// Build produces the fixed-width vector for one matchup. The output length
// always equals the schema width; the only per-request failures are type or
// category values outside the frozen vocabularies.
func (b *Builder) Build(ctx context.Context, m Matchup) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("feature build cancelled: %w", err)
	}

	opp := m.OpponentMove
	if opp == (MoveContext{}) {
		opp = NeutralOpponentMove()
	}

	vec := make([]float64, 0, b.schema.Width())

	indicator, err := b.indicatorBlock(m, opp)
	if err != nil {
		return nil, err
	}
	vec = append(vec, indicator...)

	rawValues := rawNumericValues(m, opp)
	for _, col := range b.schema.NumericColumns() {
		x, ok := rawValues[col]
		if !ok {
			return nil, fmt.Errorf("%w: unproducible numeric column %q", ErrSchemaMismatch, col)
		}
		z, err := b.raw.Standardize(col, x)
		if err != nil {
			return nil, err
		}
		vec = append(vec, z)
	}

	derivedValues := derivedFeatureValues(m, opp, rawValues)
	for _, col := range b.schema.DerivedColumns() {
		x, ok := derivedValues[col]
		if !ok {
			return nil, fmt.Errorf("%w: unproducible derived column %q", ErrSchemaMismatch, col)
		}
		z, err := b.derived.Standardize(col, x)
		if err != nil {
			return nil, err
		}
		vec = append(vec, z)
	}

	return vec, nil
}

// indicatorBlock expands the five type fields and two category fields into
// one-hot columns. Absent secondary types zero their whole field; the
// opponent's baseline move is represented numerically only, so a typeless
// placeholder never reaches a type field here.
func (b *Builder) indicatorBlock(m Matchup, opp MoveContext) ([]float64, error) {
	fields := []struct {
		name string
		t    model.Type
	}{
		{"attacker primary type", m.Attacker.PrimaryType},
		{"attacker secondary type", m.Attacker.SecondaryType},
		{"defender primary type", m.Defender.PrimaryType},
		{"defender secondary type", m.Defender.SecondaryType},
		{"move type", m.Move.Move.Type},
	}

	block := make([]float64, 0, b.schema.IndicatorWidth())
	vocabLen := len(b.schema.Vocabulary())

	for _, f := range fields {
		cols := make([]float64, vocabLen)
		if f.t != "" {
			offset, err := b.schema.TypeOffset(f.t)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.name, err)
			}
			cols[offset] = 1
		}
		block = append(block, cols...)
	}

	for _, cat := range []model.Category{m.Move.Move.Category, opp.Move.Category} {
		cols, err := categoryOneHot(cat)
		if err != nil {
			return nil, err
		}
		block = append(block, cols...)
	}

	return block, nil
}

func categoryOneHot(cat model.Category) ([]float64, error) {
	cols := make([]float64, len(categoryValues))
	for i, c := range categoryValues {
		if c == cat {
			cols[i] = 1
			return cols, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
}

// rawNumericValues assembles the stage-1 scalar fields keyed by column name.
// Values here are pre-standardization.
func rawNumericValues(m Matchup, opp MoveContext) map[string]float64 {
	a, d := m.Attacker.Stats, m.Defender.Stats

	movesFirst := 0.0
	// Speed ties resolve to 0: B is assumed to act first or simultaneously.
	if a.Speed > d.Speed {
		movesFirst = 1.0
	}

	return map[string]float64{
		"a_hp":         a.HP,
		"a_attack":     a.Attack,
		"a_defense":    a.Defense,
		"a_sp_attack":  a.SpAttack,
		"a_sp_defense": a.SpDefense,
		"a_speed":      a.Speed,

		"b_hp":         d.HP,
		"b_attack":     d.Attack,
		"b_defense":    d.Defense,
		"b_sp_attack":  d.SpAttack,
		"b_sp_defense": d.SpDefense,
		"b_speed":      d.Speed,

		"move_power":     m.Move.Move.Power,
		"move_accuracy":  m.Move.Move.Accuracy,
		"move_priority":  m.Move.Move.Priority,
		"move_stab":      m.Move.Stab,
		"move_type_mult": m.Move.TypeMultiplier,

		"opp_move_power":     opp.Move.Power,
		"opp_move_accuracy":  opp.Move.Accuracy,
		"opp_move_priority":  opp.Move.Priority,
		"opp_move_stab":      opp.Stab,
		"opp_move_type_mult": opp.TypeMultiplier,

		"speed_diff":      a.Speed - d.Speed,
		"hp_diff":         a.HP - d.HP,
		"attack_diff":     a.Attack - d.Attack,
		"defense_diff":    a.Defense - d.Defense,
		"sp_attack_diff":  a.SpAttack - d.SpAttack,
		"sp_defense_diff": a.SpDefense - d.SpDefense,

		"a_total_stats": a.Total(),
		"b_total_stats": d.Total(),
		"a_moves_first": movesFirst,
	}
}

// derivedFeatureValues computes the six derived columns from the raw
// stage-1 values before their own standardization.
func derivedFeatureValues(m Matchup, opp MoveContext, raw map[string]float64) map[string]float64 {
	effectiveA := m.Move.Move.Power * m.Move.Stab * m.Move.TypeMultiplier
	effectiveB := opp.Move.Power * opp.Stab * opp.TypeMultiplier

	return map[string]float64{
		"stat_ratio":           raw["a_total_stats"] / (raw["b_total_stats"] + statRatioSmoothing),
		"type_advantage_diff":  m.Move.TypeMultiplier - opp.TypeMultiplier,
		"effective_power_a":    effectiveA,
		"effective_power_b":    effectiveB,
		"effective_power_diff": effectiveA - effectiveB,
		"priority_advantage":   m.Move.Move.Priority - opp.Move.Priority,
	}
}
