package features_test

import (
	"context"
	"testing"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/features"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var numericOrder = []string{
	"a_hp", "a_attack", "a_defense", "a_sp_attack", "a_sp_defense", "a_speed",
	"b_hp", "b_attack", "b_defense", "b_sp_attack", "b_sp_defense", "b_speed",
	"move_power", "move_accuracy", "move_priority", "move_stab", "move_type_mult",
	"opp_move_power", "opp_move_accuracy", "opp_move_priority", "opp_move_stab", "opp_move_type_mult",
	"speed_diff", "hp_diff", "attack_diff", "defense_diff", "sp_attack_diff", "sp_defense_diff",
	"a_total_stats", "b_total_stats", "a_moves_first",
}

var derivedOrder = []string{
	"stat_ratio", "type_advantage_diff",
	"effective_power_a", "effective_power_b", "effective_power_diff",
	"priority_advantage",
}

func testVocab() []model.Type {
	return []model.Type{"fire", "grass", "normal", "water"}
}

// identityScaler freezes mean 0 / std 1 so standardized values equal raw ones.
func identityScaler(columns []string) *features.ScalerParams {
	means := make([]float64, len(columns))
	stds := make([]float64, len(columns))
	for i := range stds {
		stds[i] = 1
	}
	p, err := features.NewScalerParams(columns, means, stds)
	if err != nil {
		panic(err)
	}
	return p
}

func newTestBuilder() *features.Builder {
	schema, err := features.NewSchema(1, testVocab(), numericOrder, derivedOrder)
	if err != nil {
		panic(err)
	}
	b, err := features.NewBuilder(schema, identityScaler(numericOrder), identityScaler(derivedOrder))
	if err != nil {
		panic(err)
	}
	return b
}

func testMatchup() features.Matchup {
	return features.Matchup{
		Attacker: model.Combatant{
			Name:        "squirt",
			PrimaryType: "water",
			Stats:       model.StatBlock{HP: 79, Attack: 83, Defense: 100, SpAttack: 85, SpDefense: 105, Speed: 78},
		},
		Defender: model.Combatant{
			Name:          "flare",
			PrimaryType:   "fire",
			SecondaryType: "normal",
			Stats:         model.StatBlock{HP: 78, Attack: 84, Defense: 78, SpAttack: 109, SpDefense: 85, Speed: 100},
		},
		Move: features.MoveContext{
			Move:           model.Move{Name: "surf", Type: "water", Power: 90, Accuracy: 100, Priority: 0, Category: model.Special},
			Stab:           1.5,
			TypeMultiplier: 2,
		},
		OpponentMove: features.MoveContext{
			Move:           model.Move{Name: "ember", Type: "fire", Power: 40, Accuracy: 100, Priority: 0, Category: model.Special},
			Stab:           1.5,
			TypeMultiplier: 0.5,
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	Convey("Given a builder over a four-type schema", t, func() {
		b := newTestBuilder()
		ctx := context.Background()
		// 5 type fields * 4 + 2 category fields * 3 + 31 numeric + 6 derived
		wantWidth := 5*4 + 2*3 + 31 + 6

		Convey("When building a full matchup", func() {
			vec, err := b.Build(ctx, testMatchup())
			So(err, ShouldBeNil)

			Convey("Then the vector has the frozen schema width", func() {
				So(len(vec), ShouldEqual, wantWidth)
				So(b.Schema().Width(), ShouldEqual, wantWidth)
			})

			Convey("And each type field has exactly one hot column", func() {
				columns := b.Schema().Columns()
				index := func(name string) int {
					for i, c := range columns {
						if c == name {
							return i
						}
					}
					t.Fatalf("column %q not in schema", name)
					return -1
				}

				So(vec[index("attacker_type1_water")], ShouldEqual, 1)
				So(vec[index("attacker_type1_fire")], ShouldEqual, 0)
				So(vec[index("defender_type1_fire")], ShouldEqual, 1)
				So(vec[index("defender_type2_normal")], ShouldEqual, 1)
				So(vec[index("move_type_water")], ShouldEqual, 1)
				So(vec[index("move_category_special")], ShouldEqual, 1)
				So(vec[index("move_category_physical")], ShouldEqual, 0)

				Convey("And the attacker's absent secondary type zeroes its field", func() {
					for _, typ := range testVocab() {
						So(vec[index("attacker_type2_"+string(typ))], ShouldEqual, 0)
					}
				})
			})

			Convey("And identity-scaled numeric columns carry the raw values", func() {
				columns := b.Schema().Columns()
				at := func(name string) float64 {
					for i, c := range columns {
						if c == name {
							return vec[i]
						}
					}
					t.Fatalf("column %q not in schema", name)
					return 0
				}

				So(at("a_hp"), ShouldEqual, 79)
				So(at("b_speed"), ShouldEqual, 100)
				So(at("move_power"), ShouldEqual, 90)
				So(at("move_type_mult"), ShouldEqual, 2)
				So(at("speed_diff"), ShouldEqual, -22)
				So(at("hp_diff"), ShouldEqual, 1)
				So(at("a_total_stats"), ShouldEqual, 530)
				So(at("b_total_stats"), ShouldEqual, 534)
				So(at("a_moves_first"), ShouldEqual, 0)

				Convey("And the derived block follows its formulas", func() {
					So(at("stat_ratio"), ShouldAlmostEqual, 530.0/535.0)
					So(at("type_advantage_diff"), ShouldEqual, 1.5)
					So(at("effective_power_a"), ShouldEqual, 270)
					So(at("effective_power_b"), ShouldEqual, 30)
					So(at("effective_power_diff"), ShouldEqual, 240)
					So(at("priority_advantage"), ShouldEqual, 0)
				})
			})
		})

		Convey("When both combatants have equal speed", func() {
			m := testMatchup()
			m.Defender.Stats.Speed = m.Attacker.Stats.Speed

			vec, err := b.Build(ctx, m)
			So(err, ShouldBeNil)

			Convey("Then the speed tie resolves against the attacker", func() {
				idx := -1
				for i, c := range b.Schema().Columns() {
					if c == "a_moves_first" {
						idx = i
					}
				}
				So(idx, ShouldBeGreaterThan, -1)
				So(vec[idx], ShouldEqual, 0)
			})
		})

		Convey("When no opponent baseline move is supplied", func() {
			m := testMatchup()
			m.OpponentMove = features.MoveContext{}

			vec, err := b.Build(ctx, m)
			So(err, ShouldBeNil)
			So(len(vec), ShouldEqual, wantWidth)

			Convey("Then the neutral placeholder fills the mirrored columns", func() {
				columns := b.Schema().Columns()
				at := func(name string) float64 {
					for i, c := range columns {
						if c == name {
							return vec[i]
						}
					}
					return 0
				}
				So(at("opp_move_power"), ShouldEqual, 0)
				So(at("opp_move_accuracy"), ShouldEqual, 100)
				So(at("opp_move_stab"), ShouldEqual, 1)
				So(at("opp_move_type_mult"), ShouldEqual, 1)
				So(at("opp_move_category_status"), ShouldEqual, 1)
				So(at("type_advantage_diff"), ShouldEqual, 1)
				So(at("effective_power_b"), ShouldEqual, 0)
			})
		})

		Convey("When secondary types are present or absent in any combination", func() {
			variants := []features.Matchup{testMatchup()}

			withSecondary := testMatchup()
			withSecondary.Attacker.SecondaryType = "grass"
			variants = append(variants, withSecondary)

			monoDefender := testMatchup()
			monoDefender.Defender.SecondaryType = ""
			variants = append(variants, monoDefender)

			Convey("Then the width never changes", func() {
				for _, m := range variants {
					vec, err := b.Build(ctx, m)
					So(err, ShouldBeNil)
					So(len(vec), ShouldEqual, wantWidth)
				}
			})
		})

		Convey("When building the same matchup twice", func() {
			first, err1 := b.Build(ctx, testMatchup())
			second, err2 := b.Build(ctx, testMatchup())

			Convey("Then the output is identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When a combatant carries a type outside the vocabulary", func() {
			m := testMatchup()
			m.Attacker.PrimaryType = "shadow"

			_, err := b.Build(ctx, m)
			So(err, ShouldWrap, features.ErrInvalidType)
		})

		Convey("When the move carries an unknown category", func() {
			m := testMatchup()
			m.Move.Move.Category = "hexed"

			_, err := b.Build(ctx, m)
			So(err, ShouldWrap, features.ErrInvalidCategory)
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := b.Build(cancelled, testMatchup())
			So(err, ShouldWrap, context.Canceled)
		})
	})
}

func TestScalerParams(t *testing.T) {
	Convey("Given frozen scaler parameters", t, func() {
		p, err := features.NewScalerParams([]string{"x", "y"}, []float64{10, 5}, []float64{2, 0})
		So(err, ShouldBeNil)

		Convey("When standardizing a regular column", func() {
			z, err := p.Standardize("x", 16)
			So(err, ShouldBeNil)
			So(z, ShouldEqual, 3)
		})

		Convey("When the frozen std is zero", func() {
			z, err := p.Standardize("y", 123)
			So(err, ShouldBeNil)
			So(z, ShouldEqual, 0)
		})

		Convey("When the column is unknown", func() {
			_, err := p.Standardize("z", 1)
			So(err, ShouldWrap, features.ErrSchemaMismatch)
		})

		Convey("When parameter lengths disagree", func() {
			_, err := features.NewScalerParams([]string{"x"}, []float64{1, 2}, []float64{1})
			So(err, ShouldWrap, features.ErrSchemaMismatch)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Given schema construction inputs", t, func() {
		Convey("When the vocabulary is unsorted", func() {
			_, err := features.NewSchema(1, []model.Type{"water", "fire"}, numericOrder, derivedOrder)
			So(err, ShouldWrap, features.ErrSchemaMismatch)
		})

		Convey("When a column is duplicated", func() {
			cols := append([]string(nil), numericOrder...)
			cols[1] = cols[0]
			_, err := features.NewSchema(1, testVocab(), cols, derivedOrder)
			So(err, ShouldWrap, features.ErrSchemaMismatch)
		})

		Convey("When construction succeeds", func() {
			schema, err := features.NewSchema(3, testVocab(), numericOrder, derivedOrder)
			So(err, ShouldBeNil)

			Convey("Then the column list covers the full width in order", func() {
				cols := schema.Columns()
				So(len(cols), ShouldEqual, schema.Width())
				So(cols[0], ShouldEqual, "attacker_type1_fire")
				So(cols[schema.IndicatorWidth()], ShouldEqual, "a_hp")
				So(cols[len(cols)-1], ShouldEqual, "priority_advantage")
				So(schema.Version(), ShouldEqual, 3)
			})
		})

		Convey("When a builder is constructed against a scaler in the wrong order", func() {
			schema, err := features.NewSchema(1, testVocab(), numericOrder, derivedOrder)
			So(err, ShouldBeNil)

			shuffled := append([]string(nil), numericOrder...)
			shuffled[0], shuffled[1] = shuffled[1], shuffled[0]

			_, err = features.NewBuilder(schema, identityScaler(shuffled), identityScaler(derivedOrder))
			So(err, ShouldWrap, features.ErrSchemaMismatch)
		})

		Convey("When the schema names a column no builder stage produces", func() {
			cols := append(append([]string(nil), numericOrder...), "a_luck")
			schema, err := features.NewSchema(1, testVocab(), cols, derivedOrder)
			So(err, ShouldBeNil)

			_, err = features.NewBuilder(schema, identityScaler(cols), identityScaler(derivedOrder))
			So(err, ShouldWrap, features.ErrSchemaMismatch)
		})
	})
}
