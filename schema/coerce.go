package schema

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const requiredMessage = "Required"

func typeName(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return "number"
	case float32, int, int32, int64:
		return "number"
	case time.Time:
		return "date"
	case map[string]interface{}:
		return "object"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return reflect.TypeOf(v).String()
}

func expected(want string, got interface{}) string {
	return "Expected " + want + ", received " + typeName(got)
}

// parseNumber converts text the way a JavaScript Number() cast does:
// surrounding space is ignored, an empty string is 0, anything else unparsable is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if n, err := strconv.ParseInt(s, 0, 64); err == nil && !strings.Contains(s, "_") {
			return float64(n)
		}
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	// only the spelled-out form is a number in JavaScript
	if math.IsInf(f, 0) && !strings.HasSuffix(s, "Infinity") {
		return math.NaN()
	}
	return f
}

// toNumber coerces numeric strings and passes numbers through. The returned
// message is empty on success.
func toNumber(v interface{}) (float64, string) {
	var f float64
	switch t := v.(type) {
	case string:
		f = parseNumber(t)
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return 0, expected("number", v)
	}
	if math.IsNaN(f) {
		return 0, "Expected number, received nan"
	}
	return f, ""
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asArray(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
