package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailValidator = validator.New()

	// Leading integer, as parseInt reads it. Anything after the digits is ignored.
	intPrefix = regexp.MustCompile(`^\s*[+-]?\d+`)
	// Leading decimal number, as parseFloat reads it.
	floatPrefix = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ValidationError reports the first field that could not be resolved.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate resolves every field of s against inputs. Fields are visited in
// name order so the reported error is deterministic.
func Validate(inputs map[string]any, s Schema) (Values, error) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Values, len(s))
	for _, name := range names {
		raw, present := inputs[name]
		if raw == nil {
			present = false
		}

		var (
			value any
			ok    bool
			err   *ValidationError
		)
		switch rule := s[name].(type) {
		case StringRule:
			value, ok, err = rule.resolve(name, raw, present)
		case IntegerRule:
			value, ok, err = rule.resolve(name, raw, present)
		case NumberRule:
			value, ok, err = rule.resolve(name, raw, present)
		case BooleanRule:
			value, ok, err = rule.resolve(name, raw, present)
		default:
			return nil, invalid(name, "has no recognised rule")
		}
		if err != nil {
			return nil, err
		}
		if ok {
			out[name] = value
		}
	}
	return out, nil
}

// fallback applies the default-then-absent-then-fail chain shared by every rule.
func fallback[T any](name string, def *T, required bool, reason string) (any, bool, *ValidationError) {
	if def != nil {
		return *def, true, nil
	}
	if !required {
		return nil, false, nil
	}
	return nil, false, invalid(name, reason)
}

func (r IntegerRule) resolve(name string, raw any, present bool) (any, bool, *ValidationError) {
	if present {
		n, err := toInt(raw)
		if errors.Is(err, errTooLarge) || errors.Is(err, errTooSmall) {
			return nil, false, invalid(name, err.Error())
		}
		if err == nil {
			if r.Min != nil && n < *r.Min {
				return nil, false, invalid(name, "value is too small")
			}
			if r.Max != nil && n > *r.Max {
				return nil, false, invalid(name, "value is too large")
			}
			return n, true, nil
		}
	}
	return fallback(name, r.Default, r.Required, "is not an integer")
}

func (r NumberRule) resolve(name string, raw any, present bool) (any, bool, *ValidationError) {
	if present {
		if f, ok := toFloat(raw); ok {
			if r.Min != nil && f < *r.Min {
				return nil, false, invalid(name, "value is too small")
			}
			if r.Max != nil && f > *r.Max {
				return nil, false, invalid(name, "value is too large")
			}
			return f, true, nil
		}
	}
	return fallback(name, r.Default, r.Required, "is not a number")
}

func (r BooleanRule) resolve(name string, raw any, present bool) (any, bool, *ValidationError) {
	if present {
		switch v := raw.(type) {
		case bool:
			return v, true, nil
		case string:
			if v == "true" {
				return true, true, nil
			}
			if v == "false" {
				return false, true, nil
			}
		}
	}
	return fallback(name, r.Default, r.Required, "is not a boolean")
}

func (r StringRule) resolve(name string, raw any, present bool) (any, bool, *ValidationError) {
	if present {
		if s, ok := raw.(string); ok {
			if len(r.OneOf) > 0 && !slices.Contains(r.OneOf, s) {
				return nil, false, invalid(name, "is not one of the permitted values")
			}
			if s != "" || !r.NonEmpty {
				if r.Email && emailValidator.Var(s, "email") != nil {
					return nil, false, invalid(name, "is not a valid email address")
				}
				return s, true, nil
			}
		}
	}
	return fallback(name, r.Default, r.Required, "is not a valid string")
}

var (
	errNotInteger = errors.New("not an integer")
	errTooLarge   = errors.New("value is too large")
	errTooSmall   = errors.New("value is too small")
)

// toInt reads raw as an int. Values outside the int range fail with
// errTooLarge or errTooSmall instead of wrapping around.
func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || math.Trunc(v) != v {
			return 0, errNotInteger
		}
		if v >= float64(math.MaxInt)+1 {
			return 0, errTooLarge
		}
		if v < float64(math.MinInt) {
			return 0, errTooSmall
		}
		return int(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, errNotInteger
		}
		return toInt(f)
	case string:
		m := strings.TrimSpace(intPrefix.FindString(v))
		if m == "" {
			return 0, errNotInteger
		}
		n, err := strconv.Atoi(m)
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(m, "-") {
				return 0, errTooSmall
			}
			return 0, errTooLarge
		}
		if err != nil {
			return 0, errNotInteger
		}
		return n, nil
	}
	return 0, errNotInteger
}

func toFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		m := floatPrefix.FindString(v)
		if m == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
