package pipeline

import (
	"fmt"
	"slices"
)

// Pipeline is a fitted preprocessing-plus-estimator chain. Build one with Load
// or New; it is never mutated afterwards.
type Pipeline struct {
	name      string
	target    string
	schema    []FeatureSpec
	steps     []step
	estimator Estimator
	width     int
}

// Name is the artifact's informational name.
func (p *Pipeline) Name() string { return p.name }

// Target is the name of the predicted quantity.
func (p *Pipeline) Target() string { return p.target }

// Schema returns a copy of the fitted feature schema, in fitted order.
func (p *Pipeline) Schema() []FeatureSpec {
	return append([]FeatureSpec(nil), p.schema...)
}

// Predict returns one prediction per row of f. The frame's columns must be
// exactly the fitted features, in any order; otherwise, or if a value has the
// wrong kind for its step, the error wraps ErrSchemaMismatch.
func (p *Pipeline) Predict(f *Frame) ([]float64, error) {
	if err := p.checkColumns(f); err != nil {
		return nil, err
	}
	preds := make([]float64, f.Len())
	x := make([]float64, p.width)
	for row := 0; row < len(preds); row++ {
		if err := p.transformRow(f, row, x); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		preds[row] = p.estimator.Predict(x)
	}
	return preds, nil
}

func (p *Pipeline) checkColumns(f *Frame) error {
	var missing, extra []string
	fitted := make(map[string]bool, len(p.schema))
	for _, feat := range p.schema {
		fitted[feat.Name] = true
		if !f.HasColumn(feat.Name) {
			missing = append(missing, feat.Name)
		}
	}
	for _, c := range f.Columns() {
		if !fitted[c] {
			extra = append(extra, c)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: columns are missing: %v", ErrSchemaMismatch, missing)
	}
	if len(extra) > 0 {
		slices.Sort(extra)
		return fmt.Errorf("%w: columns were not seen at fit time: %v", ErrSchemaMismatch, extra)
	}
	return nil
}

// transformRow writes the concatenated step outputs for one row into x.
func (p *Pipeline) transformRow(f *Frame, row int, x []float64) error {
	off := 0
	for _, s := range p.steps {
		cols := s.columns()
		cells := make([]Value, len(cols))
		for i, c := range cols {
			// checkColumns guarantees presence.
			cells[i], _ = f.Value(row, c)
		}
		if err := s.transform(cells, x[off:off+s.width()]); err != nil {
			return err
		}
		off += s.width()
	}
	return nil
}
