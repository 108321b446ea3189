package rawdoc

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ToMap returns value as a string-keyed object.
func ToMap(value any) (map[string]any, bool) {
	mapped, ok := value.(map[string]any)
	return mapped, ok
}

// ToSlice returns value as an ordered sequence.
func ToSlice(value any) ([]any, bool) {
	entries, ok := value.([]any)
	return entries, ok
}

// ToString returns value as a non-empty string after trimming.
func ToString(value any) (string, bool) {
	str, ok := value.(string)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// ToBool returns value as a boolean, accepting the quoted forms authors
// sometimes write.
func ToBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// ToFloat returns value as a float64.
func ToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// ToInt returns value as an int, accepting integral floats.
func ToInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// FormatScalar renders a scalar in its canonical string form, used when a
// string-typed slot is fed from arbitrary authored scalars.
func FormatScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return "", false
	}
}

// ScalarString renders value as a trimmed, non-empty string when it is a
// scalar. Both the validator and the normalizer resolve naming attributes
// through this helper so they agree on what counts as present.
func ScalarString(value any) (string, bool) {
	str, ok := FormatScalar(value)
	if !ok {
		return "", false
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return "", false
	}
	return str, true
}

// SortedKeys returns the keys of m in lexicographic order. Keyed
// collections are walked in this order so diagnostics and canonical output
// stay deterministic.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
