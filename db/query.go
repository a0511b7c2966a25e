package db

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var ErrInvalidQuery = errors.New("invalid query")

const (
	OpEqual         = "=="
	OpNotEqual      = "!="
	OpLess          = "<"
	OpLessEqual     = "<="
	OpGreater       = ">"
	OpGreaterEqual  = ">="
	OpIn            = "in"
	OpNotIn         = "not-in"
	OpArrayContains = "array-contains"
)

// Query is one predicate of a GetDocByQuery AND chain.
type Query struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

func (q Query) Validate() error {
	if q.Field == "" {
		return fmt.Errorf("%w: empty field", ErrInvalidQuery)
	}
	switch q.Operator {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpArrayContains:
		return nil
	case OpIn, OpNotIn:
		if _, ok := toSlice(q.Value); !ok {
			return fmt.Errorf("%w: operator %q on %q needs a list value", ErrInvalidQuery, q.Operator, q.Field)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported operator %q", ErrInvalidQuery, q.Operator)
	}
}

// Matches evaluates the predicate against a document. Documents missing the
// field never match, including for != and not-in.
func (q Query) Matches(doc Document) bool {
	v, ok := lookupField(doc, q.Field)
	if !ok {
		return false
	}

	switch q.Operator {
	case OpEqual:
		return valuesEqual(v, q.Value)
	case OpNotEqual:
		return !valuesEqual(v, q.Value)
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		c, ok := compareValues(v, q.Value)
		if !ok {
			return false
		}
		switch q.Operator {
		case OpLess:
			return c < 0
		case OpLessEqual:
			return c <= 0
		case OpGreater:
			return c > 0
		default:
			return c >= 0
		}
	case OpIn, OpNotIn:
		candidates, _ := toSlice(q.Value)
		found := false
		for _, c := range candidates {
			if valuesEqual(v, c) {
				found = true
				break
			}
		}
		if q.Operator == OpIn {
			return found
		}
		return !found
	case OpArrayContains:
		elems, ok := toSlice(v)
		if !ok {
			return false
		}
		for _, e := range elems {
			if valuesEqual(e, q.Value) {
				return true
			}
		}
	}
	return false
}

// FilterDocuments keeps the documents matching every query, in input order.
func FilterDocuments(docs []Document, queries []Query) ([]Document, error) {
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		matched := true
		for _, q := range queries {
			if !q.Matches(doc) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, doc)
		}
	}
	return out, nil
}

func lookupField(doc Document, path string) (interface{}, bool) {
	var current interface{} = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func valuesEqual(a, b interface{}) bool {
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders numbers against numbers, strings against strings and
// times against times. Any other pairing is not comparable.
func compareValues(a, b interface{}) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(sa, sb), true
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toSlice(v interface{}) ([]interface{}, bool) {
	if s, ok := v.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
