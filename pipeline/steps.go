package pipeline

import (
	"fmt"
	"math"
)

// Step kinds understood by the artifact loader.
const (
	StepStandardScaler = "standard_scaler"
	StepMinMaxScaler   = "min_max_scaler"
	StepOneHot         = "one_hot"
	StepPassthrough    = "passthrough"
)

// StepSpec is one preprocessing step of an artifact. Parameter slices are
// indexed like Columns.
type StepSpec struct {
	Kind    string   `yaml:"kind"`
	Columns []string `yaml:"columns"`

	// standard_scaler: (x - mean) / scale
	Mean []float64 `yaml:"mean,omitempty"`
	// standard_scaler and min_max_scaler
	Scale []float64 `yaml:"scale,omitempty"`
	// min_max_scaler: (x - min) * scale + offset
	Min    []float64 `yaml:"min,omitempty"`
	Offset []float64 `yaml:"offset,omitempty"`

	// one_hot
	Categories    [][]string `yaml:"categories,omitempty"`
	HandleUnknown string     `yaml:"handle_unknown,omitempty"` // "ignore" (default) or "error"
}

// step transforms the cells of its columns, in column order, into width()
// consecutive slots of the feature vector.
type step interface {
	columns() []string
	width() int
	transform(cells []Value, out []float64) error
}

func newStep(spec StepSpec, features map[string]FeatureSpec) (step, error) {
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("step %q has no columns", spec.Kind)
	}
	for _, c := range spec.Columns {
		f, ok := features[c]
		if !ok {
			return nil, fmt.Errorf("step %q uses undeclared feature %q", spec.Kind, c)
		}
		if spec.Kind != StepOneHot && f.Type != FeatureNumeric {
			return nil, fmt.Errorf("step %q needs numeric features, %q is %s", spec.Kind, c, f.Type)
		}
	}

	switch spec.Kind {
	case StepStandardScaler:
		if err := checkParams(spec, "mean", spec.Mean); err != nil {
			return nil, err
		}
		if err := checkScale(spec); err != nil {
			return nil, err
		}
		return &standardScaler{cols: spec.Columns, mean: spec.Mean, scale: spec.Scale}, nil
	case StepMinMaxScaler:
		if err := checkParams(spec, "min", spec.Min); err != nil {
			return nil, err
		}
		offset := spec.Offset
		if offset == nil {
			offset = make([]float64, len(spec.Columns))
		}
		if err := checkParams(spec, "offset", offset); err != nil {
			return nil, err
		}
		if err := checkScale(spec); err != nil {
			return nil, err
		}
		return &minMaxScaler{cols: spec.Columns, min: spec.Min, scale: spec.Scale, offset: offset}, nil
	case StepOneHot:
		return newOneHot(spec)
	case StepPassthrough:
		return passthrough{cols: spec.Columns}, nil
	default:
		return nil, fmt.Errorf("unknown step kind %q", spec.Kind)
	}
}

func checkParams(spec StepSpec, name string, params []float64) error {
	if len(params) != len(spec.Columns) {
		return fmt.Errorf("step %q: %s has %d values for %d columns", spec.Kind, name, len(params), len(spec.Columns))
	}
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("step %q: %s[%d] is not finite", spec.Kind, name, i)
		}
	}
	return nil
}

func checkScale(spec StepSpec) error {
	if err := checkParams(spec, "scale", spec.Scale); err != nil {
		return err
	}
	for i, s := range spec.Scale {
		if s == 0 && spec.Kind == StepStandardScaler {
			return fmt.Errorf("step %q: scale[%d] is zero", spec.Kind, i)
		}
	}
	return nil
}

// numeric reads a cell as a finite number. Booleans count as 0/1, matching how
// the fitting side coerced them.
func numeric(column string, v Value) (float64, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, fmt.Errorf("%w: column %q is not finite", ErrSchemaMismatch, column)
		}
		return v.Num, nil
	case KindBool:
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: column %q expects a number, got %s", ErrSchemaMismatch, column, v.Kind)
	}
}

type standardScaler struct {
	cols        []string
	mean, scale []float64
}

func (s *standardScaler) columns() []string { return s.cols }
func (s *standardScaler) width() int        { return len(s.cols) }

func (s *standardScaler) transform(cells []Value, out []float64) error {
	for i, c := range cells {
		x, err := numeric(s.cols[i], c)
		if err != nil {
			return err
		}
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return nil
}

type minMaxScaler struct {
	cols               []string
	min, scale, offset []float64
}

func (s *minMaxScaler) columns() []string { return s.cols }
func (s *minMaxScaler) width() int        { return len(s.cols) }

func (s *minMaxScaler) transform(cells []Value, out []float64) error {
	for i, c := range cells {
		x, err := numeric(s.cols[i], c)
		if err != nil {
			return err
		}
		out[i] = (x-s.min[i])*s.scale[i] + s.offset[i]
	}
	return nil
}

type passthrough struct {
	cols []string
}

func (p passthrough) columns() []string { return p.cols }
func (p passthrough) width() int        { return len(p.cols) }

func (p passthrough) transform(cells []Value, out []float64) error {
	for i, c := range cells {
		x, err := numeric(p.cols[i], c)
		if err != nil {
			return err
		}
		out[i] = x
	}
	return nil
}

type oneHot struct {
	cols         []string
	levels       []map[string]int // per column: category → offset within the column's block
	offsets      []int            // start of each column's block in the step output
	total        int
	errOnUnknown bool
}

func newOneHot(spec StepSpec) (*oneHot, error) {
	if len(spec.Categories) != len(spec.Columns) {
		return nil, fmt.Errorf("step %q: categories has %d lists for %d columns", spec.Kind, len(spec.Categories), len(spec.Columns))
	}
	var errOnUnknown bool
	switch spec.HandleUnknown {
	case "", "ignore":
	case "error":
		errOnUnknown = true
	default:
		return nil, fmt.Errorf("step %q: handle_unknown must be ignore or error, got %q", spec.Kind, spec.HandleUnknown)
	}
	h := &oneHot{cols: spec.Columns, errOnUnknown: errOnUnknown}
	for i, cats := range spec.Categories {
		if len(cats) == 0 {
			return nil, fmt.Errorf("step %q: column %q has no categories", spec.Kind, spec.Columns[i])
		}
		levels := make(map[string]int, len(cats))
		for j, c := range cats {
			if _, dup := levels[c]; dup {
				return nil, fmt.Errorf("step %q: column %q lists category %q twice", spec.Kind, spec.Columns[i], c)
			}
			levels[c] = j
		}
		h.levels = append(h.levels, levels)
		h.offsets = append(h.offsets, h.total)
		h.total += len(cats)
	}
	return h, nil
}

func (h *oneHot) columns() []string { return h.cols }
func (h *oneHot) width() int        { return h.total }

func (h *oneHot) transform(cells []Value, out []float64) error {
	for i := range out[:h.total] {
		out[i] = 0
	}
	for i, c := range cells {
		if c.Kind != KindString && c.Kind != KindNumber {
			return fmt.Errorf("%w: column %q expects a category, got %s", ErrSchemaMismatch, h.cols[i], c.Kind)
		}
		j, ok := h.levels[i][c.Text()]
		if !ok {
			if h.errOnUnknown {
				return fmt.Errorf("%w: column %q has unknown category %q", ErrSchemaMismatch, h.cols[i], c.Text())
			}
			continue
		}
		out[h.offsets[i]+j] = 1
	}
	return nil
}
