package action

import (
	"strconv"
	"strings"
)

// Equal compares an expected value with a raw call value under the given
// data type. Unsigned integers compare numerically and booleans by truth
// value. Everything else is exact string equality.
func Equal(t DataType, want, got string) bool {
	switch t {
	case TypeUI2, TypeUI4:
		bits := 16
		if t == TypeUI4 {
			bits = 32
		}
		w, err := strconv.ParseUint(strings.TrimSpace(want), 10, bits)
		if err != nil {
			return false
		}
		g, err := strconv.ParseUint(strings.TrimSpace(got), 10, bits)
		if err != nil {
			return false
		}
		return w == g
	case TypeBoolean:
		w, ok := ParseBool(want)
		if !ok {
			return false
		}
		g, ok := ParseBool(got)
		return ok && w == g
	default:
		return want == got
	}
}

// Valid reports whether value is acceptable for the data type.
func Valid(t DataType, value string) bool {
	switch t {
	case TypeUI2:
		_, err := strconv.ParseUint(strings.TrimSpace(value), 10, 16)
		return err == nil
	case TypeUI4:
		_, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		return err == nil
	case TypeBoolean:
		_, ok := ParseBool(value)
		return ok
	default:
		return true
	}
}

// ParseBool parses a UPnP boolean: 1/true/yes or 0/false/no, any case.
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	default:
		return false, false
	}
}

// FormatBool renders b the way gateways send it on the wire.
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
