package collection

// FormToMap copies form fields into a map, turning "true", "false" and "null" into
// true, false and nil. Accepts url.Values as well as map[string]string.
// A multi-valued field becomes []any; an empty one becomes nil.
func FormToMap[V string | []string](form map[string]V) map[string]any {
	result := make(map[string]any, len(form))
	for key, value := range form {
		switch v := any(value).(type) {
		case string:
			result[key] = coerce(v)
		case []string:
			switch len(v) {
			case 0:
				result[key] = nil
			case 1:
				result[key] = coerce(v[0])
			default:
				values := make([]any, len(v))
				for i, s := range v {
					values[i] = coerce(s)
				}
				result[key] = values
			}
		}
	}
	return result
}

func coerce(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	default:
		return s
	}
}
