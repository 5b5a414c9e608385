package internal

import (
	"fmt"
	"strconv"
)

// Scalar is the set of types the typed accessors convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the context value stored under key, or the zero T.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Param returns the path parameter as T, or the zero T when it does not parse.
func Param[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query returns the query parameter as T, or the zero T when it does not parse.
func Query[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault is Query with a fallback for missing or malformed values.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	if v, ok := parseScalar[T](c.Query(name)); ok && c.Query(name) != "" {
		return v
	}
	return defaultValue
}

// BagValue returns the bag value at key as T.
// Values of type T are returned as is; strings (and other scalars, via
// their string form) are converted. Returns the zero value otherwise.
func BagValue[T Scalar](b Bag, key string) T {
	v, _ := BagLookup[T](b, key)
	return v
}

// BagLookup is like BagValue but reports whether the key held a convertible value.
func BagLookup[T Scalar](b Bag, key string) (T, bool) {
	var zero T
	switch v := b[key].(type) {
	case nil:
		return zero, false
	case T:
		return v, true
	case string:
		return parseScalar[T](v)
	case []string:
		if len(v) == 0 {
			return zero, false
		}
		return parseScalar[T](v[0])
	case float64:
		// JSON numbers decode as float64.
		if v == float64(int64(v)) {
			return parseScalar[T](strconv.FormatInt(int64(v), 10))
		}
		return parseScalar[T](strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return parseScalar[T](fmt.Sprint(v))
	}
}

func parseScalar[T Scalar](raw string) (T, bool) {
	var (
		out T
		err error
	)
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(raw, 64)
	case *bool:
		*p, err = strconv.ParseBool(raw)
	default:
		return out, false
	}
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
