package immoweb

// NestedValue walks path one key at a time starting from data and returns
// the value at the fully resolved path, or fallback as soon as a step cannot
// be taken. It never panics: missing keys, non-mapping intermediates and nil
// values all resolve to fallback.
//
// An intermediate value that is present but falsy (nil, false, zero number,
// empty string, empty map or slice) also short-circuits to fallback. Only a
// falsy value at the *final* key is returned as-is.
func NestedValue(data any, path []string, fallback any) any {
	current := data
	for _, key := range path {
		if isFalsy(current) {
			return fallback
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return fallback
		}
		next, present := obj[key]
		if !present {
			return fallback
		}
		current = next
	}
	return current
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64: // encoding/json decodes all numbers to float64
		return t == 0
	case int:
		return t == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
