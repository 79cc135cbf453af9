// Package jsonseq reads values out of the untyped nested arrays that
// json.Unmarshal produces for schema-less responses. Every accessor
// reports success instead of panicking, so callers can chain lookups
// and fall back on a default.
package jsonseq

// Index returns element i of v if v is a []any and i is in range.
// Negative i counts from the end, -1 being the last element.
func Index(v any, i int) (any, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	if i < 0 {
		i += len(arr)
	}
	if i < 0 || i >= len(arr) {
		return nil, false
	}
	return arr[i], true
}

// Seek follows a path of indices from v, failing on the first miss.
func Seek(v any, path ...int) (any, bool) {
	for _, i := range path {
		var ok bool
		if v, ok = Index(v, i); !ok {
			return nil, false
		}
	}
	return v, true
}

// String unwraps v if it is a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Float unwraps v if it is a number. json.Unmarshal always produces
// float64 for untyped numbers.
func Float(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// Len returns the length of v if v is a []any.
func Len(v any) (int, bool) {
	arr, ok := v.([]any)
	if !ok {
		return 0, false
	}
	return len(arr), true
}
