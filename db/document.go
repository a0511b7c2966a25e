package db

import "strings"

// ApplyUpdate returns a copy of doc with updates applied. Dotted keys address
// nested fields and create intermediate maps as needed.
func ApplyUpdate(doc Document, updates map[string]interface{}) Document {
	out := CopyDocument(doc)
	if out == nil {
		out = Document{}
	}
	for key, value := range updates {
		parts := strings.Split(key, ".")
		target := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := target[part].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				target[part] = next
			}
			target = next
		}
		target[parts[len(parts)-1]] = copyValue(value)
	}
	return out
}

// CopyDocument deep-copies maps and slices so callers never share state with the store.
func CopyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return CopyDocument(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
