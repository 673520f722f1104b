package features

import "fmt"

// ScalerParams holds a frozen per-column (mean, std) set computed at model
// training time. Two independent sets exist: one for the raw numeric block
// and one for the derived block.
type ScalerParams struct {
	columns []string
	mean    map[string]float64
	std     map[string]float64
}

// NewScalerParams freezes scaler parameters. Means and stds are positional
// against columns; length disagreement is a configuration error.
func NewScalerParams(columns []string, means, stds []float64) (*ScalerParams, error) {
	if len(columns) != len(means) || len(columns) != len(stds) {
		return nil, fmt.Errorf("%w: scaler has %d columns, %d means, %d stds",
			ErrSchemaMismatch, len(columns), len(means), len(stds))
	}

	p := &ScalerParams{
		columns: append([]string(nil), columns...),
		mean:    make(map[string]float64, len(columns)),
		std:     make(map[string]float64, len(columns)),
	}
	for i, col := range columns {
		if _, dup := p.mean[col]; dup {
			return nil, fmt.Errorf("%w: duplicate scaler column %q", ErrSchemaMismatch, col)
		}
		p.mean[col] = means[i]
		p.std[col] = stds[i]
	}
	return p, nil
}

// Columns returns the column order the parameters were frozen against.
func (p *ScalerParams) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Standardize applies (x - mean) / std for the named column. A frozen std of
// 0 is degenerate and yields 0 rather than dividing by zero.
func (p *ScalerParams) Standardize(column string, x float64) (float64, error) {
	mean, ok := p.mean[column]
	if !ok {
		return 0, fmt.Errorf("%w: no scaler parameters for column %q", ErrSchemaMismatch, column)
	}
	std := p.std[column]
	if std == 0 {
		return 0, nil
	}
	return (x - mean) / std, nil
}

// matchesOrder verifies the scaler was frozen against exactly the given
// column order.
func (p *ScalerParams) matchesOrder(columns []string) error {
	if len(p.columns) != len(columns) {
		return fmt.Errorf("%w: scaler covers %d columns, schema expects %d",
			ErrSchemaMismatch, len(p.columns), len(columns))
	}
	for i, col := range columns {
		if p.columns[i] != col {
			return fmt.Errorf("%w: scaler column %d is %q, schema expects %q",
				ErrSchemaMismatch, i, p.columns[i], col)
		}
	}
	return nil
}
