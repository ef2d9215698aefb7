// Package values converts raw configuration values into the typed
// getters of driven.ConfigStore.
//
// Stores hold whatever their decoder produced: TOML yields int64 and
// []any, the in-memory store holds Go values as set, and settings
// typed on the command line arrive as strings. Typed accepts all three.
package values

import (
	"math"
	"strconv"
	"strings"
)

// Typed implements the typed getters on top of a raw lookup. Stores
// embed it and point Lookup at their own Get.
type Typed struct {
	Lookup func(key string) (any, bool)
}

// GetString returns a string value, or "" when the key is missing or
// holds another type.
func (t Typed) GetString(key string) string {
	v, ok := t.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetInt returns an integer value. Whole floats and numeric strings
// convert; anything else is 0.
func (t Typed) GetInt(key string) int {
	v, ok := t.Lookup(key)
	if !ok {
		return 0
	}
	n, _ := Int(v)
	return n
}

// GetFloat returns a numeric value as float64.
func (t Typed) GetFloat(key string) float64 {
	v, ok := t.Lookup(key)
	if !ok {
		return 0
	}
	f, _ := Float(v)
	return f
}

// GetBool returns a boolean value. "true"/"false" strings convert.
func (t Typed) GetBool(key string) bool {
	v, ok := t.Lookup(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

// GetStringSlice returns a list of strings. Non-string elements of a
// decoded array are skipped; a comma-separated string is split.
func (t Typed) GetStringSlice(key string) []string {
	v, ok := t.Lookup(key)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

// Int converts a decoded value to int.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// Float converts a decoded value to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
