package pipeline

import (
	"fmt"
	"strconv"
)

// Kind is the JSON kind of a frame cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	// KindComposite holds a nested array or object. The pipeline never accepts
	// it; it is kept so the mismatch is reported by Predict, not by the parser.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindComposite:
		return "composite"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single frame cell.
type Value struct {
	Kind Kind
	Num  float64
	Str  string // string payload, or raw JSON text for KindComposite
	Bool bool
}

// Number returns a numeric cell.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// String returns a string cell.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool returns a boolean cell.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Null returns a null cell.
func Null() Value { return Value{Kind: KindNull} }

// Text renders the cell the way it is matched against categorical levels.
// Numbers use the shortest decimal form, so 2 and 2.0 both render as "2".
func (v Value) Text() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString, KindComposite:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "null"
	}
}

// Frame is a small column-named table. Column order is preserved as given.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewFrame builds a frame from column names and rows. Every row must have one
// value per column and column names must be unique. Both are copied, so later
// changes to the caller's slices do not reach the frame.
func NewFrame(columns []string, rows [][]Value) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", c)
		}
		index[c] = i
	}
	copied := make([][]Value, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("frame: row %d has %d values, want %d", i, len(r), len(columns))
		}
		copied[i] = append([]Value(nil), r...)
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// HasColumn reports whether the frame has a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Value returns the cell at (row, column). ok is false when the column does
// not exist or row is out of range.
func (f *Frame) Value(row int, column string) (Value, bool) {
	i, ok := f.index[column]
	if !ok || row < 0 || row >= len(f.rows) {
		return Value{}, false
	}
	return f.rows[row][i], true
}
