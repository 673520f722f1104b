// Package typechart provides the immutable type effectiveness lookup.
//
// The chart is built once at startup from the embedded artifact and is
// read-only afterwards, so it is safe to share across concurrent
// evaluations.
package typechart

import (
	"fmt"
	"sort"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// neutralMultiplier is used for pairs the source data leaves implicit.
const neutralMultiplier = 1.0

// Chart is a fully materialized attacking-type x defending-type multiplier
// table over a closed vocabulary. Lookups against unknown types fail.
type Chart struct {
	vocabulary []model.Type
	index      map[model.Type]int
	cells      [][]float64
}

// New materializes a chart from a sparse multiplier map. Every pair in
// vocabulary x vocabulary gets exactly one cell; pairs absent from sparse
// default to 1.0. Entries referencing types outside the vocabulary are
// rejected so a typo in the artifact cannot silently vanish.
func New(vocabulary []model.Type, sparse map[model.Type]map[model.Type]float64) (*Chart, error) {
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrIncomplete)
	}

	vocab := make([]model.Type, len(vocabulary))
	copy(vocab, vocabulary)
	sort.Slice(vocab, func(i, j int) bool { return vocab[i] < vocab[j] })

	index := make(map[model.Type]int, len(vocab))
	for i, t := range vocab {
		if _, dup := index[t]; dup {
			return nil, fmt.Errorf("%w: duplicate type %q", ErrIncomplete, t)
		}
		index[t] = i
	}

	cells := make([][]float64, len(vocab))
	for i := range cells {
		row := make([]float64, len(vocab))
		for j := range row {
			row[j] = neutralMultiplier
		}
		cells[i] = row
	}

	for atk, row := range sparse {
		i, ok := index[atk]
		if !ok {
			return nil, fmt.Errorf("%w: attacking type %q", ErrUnknownType, atk)
		}
		for def, mult := range row {
			j, ok := index[def]
			if !ok {
				return nil, fmt.Errorf("%w: defending type %q", ErrUnknownType, def)
			}
			cells[i][j] = mult
		}
	}

	return &Chart{vocabulary: vocab, index: index, cells: cells}, nil
}

// Vocabulary returns the closed type set in its fixed sorted order.
func (c *Chart) Vocabulary() []model.Type {
	out := make([]model.Type, len(c.vocabulary))
	copy(out, c.vocabulary)
	return out
}

// Contains reports whether t is part of the chart's vocabulary.
func (c *Chart) Contains(t model.Type) bool {
	_, ok := c.index[t]
	return ok
}

// Single returns the multiplier of attacking against one defending type.
func (c *Chart) Single(attacking, defending model.Type) (float64, error) {
	i, ok := c.index[attacking]
	if !ok {
		return 0, fmt.Errorf("%w: attacking type %q", ErrUnknownType, attacking)
	}
	j, ok := c.index[defending]
	if !ok {
		return 0, fmt.Errorf("%w: defending type %q", ErrUnknownType, defending)
	}
	return c.cells[i][j], nil
}

// Multiplier returns the combined multiplier of attacking against a
// defender's type set. Dual-typed defenders multiply the per-type
// multipliers; a missing second type contributes 1.0.
func (c *Chart) Multiplier(attacking model.Type, defending ...model.Type) (float64, error) {
	mult := neutralMultiplier
	if _, ok := c.index[attacking]; !ok {
		return 0, fmt.Errorf("%w: attacking type %q", ErrUnknownType, attacking)
	}
	for _, def := range defending {
		if def == "" {
			continue
		}
		m, err := c.Single(attacking, def)
		if err != nil {
			return 0, err
		}
		mult *= m
	}
	return mult, nil
}
