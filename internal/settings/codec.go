package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Encode converts v to the string form stored by backends.
// v must already be normalized for f.
func Encode(f Field, v any) (string, error) {
	switch f.Kind {
	case KindBool:
		return strconv.FormatBool(v.(bool)), nil
	case KindInt:
		return strconv.Itoa(v.(int)), nil
	case KindFloat:
		return strconv.FormatFloat(v.(float64), 'f', -1, 64), nil
	case KindString:
		return v.(string), nil
	case KindPresence:
		return v.(Presence).String(), nil
	case KindStringList, KindStringLists:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", f.Key, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("encode %s: unsupported kind %s", f.Key, f.Kind)
	}
}

// Decode parses a stored string into the field's Go type and validates it.
func Decode(f Field, raw string) (any, error) {
	switch f.Kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a bool, got %q", ErrInvalidValue, f.Key, raw)
		}
		return b, nil
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer, got %q", ErrInvalidValue, f.Key, raw)
		}
		return checkValue(f, n)
	case KindFloat:
		x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidValue, f.Key, raw)
		}
		return checkValue(f, x)
	case KindString:
		return checkValue(f, raw)
	case KindPresence:
		return ParsePresence(raw)
	case KindStringList:
		list := []string{}
		if strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &list); err != nil {
				return nil, fmt.Errorf("%w: %s expects a JSON string list: %v", ErrInvalidValue, f.Key, err)
			}
		}
		return normalize(f, list)
	case KindStringLists:
		lists := [][]string{}
		if strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &lists); err != nil {
				return nil, fmt.Errorf("%w: %s expects a JSON list of string lists: %v", ErrInvalidValue, f.Key, err)
			}
		}
		return normalize(f, lists)
	default:
		return nil, fmt.Errorf("decode %s: unsupported kind %s", f.Key, f.Kind)
	}
}

// ParseText is Decode with friendlier list input: a string list may also be
// given as comma separated words.
func ParseText(f Field, text string) (any, error) {
	if f.Kind == KindStringList {
		trimmed := strings.TrimSpace(text)
		if trimmed != "" && !strings.HasPrefix(trimmed, "[") {
			var list []string
			for _, part := range strings.Split(trimmed, ",") {
				if part = strings.TrimSpace(part); part != "" {
					list = append(list, part)
				}
			}
			return normalize(f, list)
		}
	}
	return Decode(f, text)
}

// Format renders a value for display. Sensitive values are masked.
func Format(f Field, v any) string {
	if f.Sensitive {
		if s, _ := v.(string); s == "" {
			return ""
		}
		return "********"
	}
	s, err := Encode(f, v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// normalize converts v to the canonical Go type of f and validates it.
func normalize(f Field, v any) (any, error) {
	invalid := func() (any, error) {
		return nil, fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidValue, f.Key, f.Kind, v)
	}

	switch f.Kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return invalid()
		}
		return b, nil
	case KindInt:
		n, ok := toInt(v)
		if !ok {
			return invalid()
		}
		return checkValue(f, n)
	case KindFloat:
		x, ok := toFloat(v)
		if !ok {
			return invalid()
		}
		return checkValue(f, x)
	case KindString:
		s, ok := v.(string)
		if !ok {
			return invalid()
		}
		return checkValue(f, s)
	case KindPresence:
		switch p := v.(type) {
		case Presence:
			if p < PresenceAutomatic || p > PresenceOffline {
				return nil, fmt.Errorf("%w: presence %d out of range", ErrInvalidValue, int(p))
			}
			return p, nil
		case string:
			return ParsePresence(p)
		}
		return invalid()
	case KindStringList:
		list, ok := toStringList(v)
		if !ok {
			return invalid()
		}
		return list, nil
	case KindStringLists:
		switch typed := v.(type) {
		case nil:
			return [][]string{}, nil
		case [][]string:
			out := make([][]string, 0, len(typed))
			for _, inner := range typed {
				l, _ := toStringList(inner)
				out = append(out, l)
			}
			return out, nil
		case []any:
			out := make([][]string, 0, len(typed))
			for _, inner := range typed {
				l, ok := toStringList(inner)
				if !ok {
					return invalid()
				}
				out = append(out, l)
			}
			return out, nil
		}
		return invalid()
	}
	return invalid()
}

func checkValue(f Field, v any) (any, error) {
	switch typed := v.(type) {
	case int:
		if !f.InRange(float64(typed)) {
			return nil, fmt.Errorf("%w: %s must be between %g and %g, got %d", ErrInvalidValue, f.Key, f.Min, f.Max, typed)
		}
	case float64:
		if math.IsNaN(typed) || !f.InRange(typed) {
			return nil, fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrInvalidValue, f.Key, f.Min, f.Max, typed)
		}
	case string:
		if len(f.Options) > 0 && !contains(f.Options, typed) {
			return nil, fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalidValue, f.Key, strings.Join(nonEmpty(f.Options), ", "), typed)
		}
	}
	return v, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

func toStringList(v any) ([]string, bool) {
	switch typed := v.(type) {
	case nil:
		return []string{}, true
	case []string:
		return append([]string{}, typed...), true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// clone returns a copy of v that shares no memory with the cache.
func clone(v any) any {
	switch typed := v.(type) {
	case []string:
		return append([]string{}, typed...)
	case [][]string:
		out := make([][]string, len(typed))
		for i, inner := range typed {
			out[i] = append([]string{}, inner...)
		}
		return out
	}
	return v
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
