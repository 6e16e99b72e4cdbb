package object

// Falsy reports whether a method result counts as falsy under the guarded
// prepend rule: false, numeric zero (including NaN), or the empty string.
// A nil result is "no result", which is a separate case — callers check for
// nil before asking Falsy.
func Falsy(v any) bool {
	switch x := v.(type) {
	case bool:
		return !x
	case string:
		return x == ""
	case int:
		return x == 0
	case int8:
		return x == 0
	case int16:
		return x == 0
	case int32:
		return x == 0
	case int64:
		return x == 0
	case uint:
		return x == 0
	case uint8:
		return x == 0
	case uint16:
		return x == 0
	case uint32:
		return x == 0
	case uint64:
		return x == 0
	case float32:
		return x == 0 || x != x
	case float64:
		return x == 0 || x != x
	default:
		return false
	}
}
