package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ParseRecord decodes a single JSON object into a one-row frame whose columns
// are the object's keys in the order they appear. A repeated key keeps the
// position of its first occurrence and the value of its last.
//
// The argument must be valid JSON with an object at the top level. Values are
// not checked against any schema here.
func ParseRecord(arg string) (*Frame, error) {
	data := []byte(arg)
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid JSON", ErrArgument)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: input must be a JSON object, got %s", ErrArgument, describeToken(tok))
	}

	var columns []string
	values := make(map[string]Value)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArgument, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected object key %v", ErrArgument, keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: value for %q: %w", ErrArgument, key, err)
		}
		v, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: value for %q: %w", ErrArgument, key, err)
		}
		if _, seen := values[key]; !seen {
			columns = append(columns, key)
		}
		values[key] = v
	}

	row := make([]Value, len(columns))
	for i, c := range columns {
		row[i] = values[c]
	}
	return NewFrame(columns, [][]Value{row})
}

// decodeValue converts one raw JSON value into a cell. The input has already
// passed json.Valid, so only the leading byte needs inspecting.
func decodeValue(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, errors.New("empty value")
	}
	switch raw[0] {
	case 'n':
		return Null(), nil
	case 't':
		return Bool(true), nil
	case 'f':
		return Bool(false), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case '{', '[':
		return Value{Kind: KindComposite, Str: string(raw)}, nil
	default:
		// Out-of-range literals such as 1e400 become ±Inf, which the
		// pipeline later rejects as a non-finite feature.
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, err
		}
		return Number(f), nil
	}
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		if t == '[' {
			return "array"
		}
		return fmt.Sprintf("%q", t.String())
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}
