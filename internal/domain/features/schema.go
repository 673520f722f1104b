// Package features builds the fixed-width numeric vector consumed by the
// trained win-probability classifier.
//
// Column order is the single most fragile contract in the system: the
// classifier was fit against one exact layout, and any drift produces
// silently wrong predictions instead of errors. The layout is therefore
// carried by an explicit, versioned Schema built from the embedded schema
// artifact and cross-checked against the scaler and model artifacts at
// startup.
package features

import (
	"fmt"
	"sort"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
)

// Indicator field prefixes, in frozen layout order. Each type field expands
// into one column per vocabulary entry; each category field expands into one
// column per move category.
var typeFields = []string{
	"attacker_type1",
	"attacker_type2",
	"defender_type1",
	"defender_type2",
	"move_type",
}

var categoryFields = []string{
	"move_category",
	"opp_move_category",
}

// categoryValues is the frozen expansion order for category fields.
var categoryValues = []model.Category{model.Physical, model.Special, model.Status}

// Schema is the frozen feature layout: indicator columns first, then the
// standardized raw numeric columns, then the standardized derived columns.
type Schema struct {
	version   int
	vocab     []model.Type
	typeIndex map[model.Type]int
	numeric   []string
	derived   []string
	columns   []string
}

// NewSchema freezes a schema from the artifact's vocabulary and column
// orders. The vocabulary is sorted once here; the artifact must list it in
// the same order it was frozen at training time, so a re-sort changing the
// order is rejected.
func NewSchema(version int, vocabulary []model.Type, numeric, derived []string) (*Schema, error) {
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty type vocabulary", ErrSchemaMismatch)
	}
	if !sort.SliceIsSorted(vocabulary, func(i, j int) bool { return vocabulary[i] < vocabulary[j] }) {
		return nil, fmt.Errorf("%w: type vocabulary must be in sorted order", ErrSchemaMismatch)
	}
	if len(numeric) == 0 || len(derived) == 0 {
		return nil, fmt.Errorf("%w: missing numeric or derived column order", ErrSchemaMismatch)
	}

	s := &Schema{
		version:   version,
		vocab:     append([]model.Type(nil), vocabulary...),
		typeIndex: make(map[model.Type]int, len(vocabulary)),
		numeric:   append([]string(nil), numeric...),
		derived:   append([]string(nil), derived...),
	}

	for i, t := range s.vocab {
		if _, dup := s.typeIndex[t]; dup {
			return nil, fmt.Errorf("%w: duplicate vocabulary type %q", ErrSchemaMismatch, t)
		}
		s.typeIndex[t] = i
	}

	seen := make(map[string]bool, len(numeric)+len(derived))
	for _, col := range append(append([]string(nil), numeric...), derived...) {
		if seen[col] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaMismatch, col)
		}
		seen[col] = true
	}

	s.columns = make([]string, 0, s.Width())
	for _, field := range typeFields {
		for _, t := range s.vocab {
			s.columns = append(s.columns, field+"_"+string(t))
		}
	}
	for _, field := range categoryFields {
		for _, c := range categoryValues {
			s.columns = append(s.columns, field+"_"+string(c))
		}
	}
	s.columns = append(s.columns, s.numeric...)
	s.columns = append(s.columns, s.derived...)

	return s, nil
}

// Version returns the schema artifact version.
func (s *Schema) Version() int { return s.version }

// Width returns the total feature vector length.
func (s *Schema) Width() int {
	return len(typeFields)*len(s.vocab) + len(categoryFields)*len(categoryValues) + len(s.numeric) + len(s.derived)
}

// IndicatorWidth returns the size of the leading indicator block.
func (s *Schema) IndicatorWidth() int {
	return len(typeFields)*len(s.vocab) + len(categoryFields)*len(categoryValues)
}

// Columns returns every column name in final vector order.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// NumericColumns returns the standardized raw numeric column order.
func (s *Schema) NumericColumns() []string {
	return append([]string(nil), s.numeric...)
}

// DerivedColumns returns the standardized derived column order.
func (s *Schema) DerivedColumns() []string {
	return append([]string(nil), s.derived...)
}

// Vocabulary returns the frozen type vocabulary in expansion order.
func (s *Schema) Vocabulary() []model.Type {
	return append([]model.Type(nil), s.vocab...)
}

// TypeOffset returns the position of t within a type field's one-hot block.
func (s *Schema) TypeOffset(t model.Type) (int, error) {
	i, ok := s.typeIndex[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	return i, nil
}

// Contains reports whether t is part of the vocabulary.
func (s *Schema) Contains(t model.Type) bool {
	_, ok := s.typeIndex[t]
	return ok
}
