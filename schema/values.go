package schema

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Values holds the resolved fields of one Validate call.
type Values map[string]any

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

func (v Values) Int(name string) (int, bool) {
	n, ok := v[name].(int)
	return n, ok
}

func (v Values) Float(name string) (float64, bool) {
	f, ok := v[name].(float64)
	return f, ok
}

func (v Values) Bool(name string) (bool, bool) {
	b, ok := v[name].(bool)
	return b, ok
}

// StringPtr returns nil when the field is absent.
func (v Values) StringPtr(name string) *string {
	if s, ok := v.String(name); ok {
		return &s
	}
	return nil
}

// IntPtr returns nil when the field is absent.
func (v Values) IntPtr(name string) *int {
	if n, ok := v.Int(name); ok {
		return &n
	}
	return nil
}

// FloatPtr returns nil when the field is absent.
func (v Values) FloatPtr(name string) *float64 {
	if f, ok := v.Float(name); ok {
		return &f
	}
	return nil
}

// FromQuery takes the first value of every query-string key.
func FromQuery(q url.Values) map[string]any {
	inputs := make(map[string]any, len(q))
	for key, values := range q {
		if len(values) > 0 {
			inputs[key] = values[0]
		}
	}
	return inputs
}

// FromHeader copies the named headers, keyed by their lower-case names.
// Headers that are not sent are left out.
func FromHeader(h http.Header, names ...string) map[string]any {
	inputs := make(map[string]any, len(names))
	for _, name := range names {
		if values := h.Values(name); len(values) > 0 {
			inputs[strings.ToLower(name)] = values[0]
		}
	}
	return inputs
}

// FromPath copies the named path wildcards of r.
func FromPath(r *http.Request, names ...string) map[string]any {
	inputs := make(map[string]any, len(names))
	for _, name := range names {
		if value := r.PathValue(name); value != "" {
			inputs[name] = value
		}
	}
	return inputs
}

// FromJSON decodes a JSON object body. Numbers are kept as json.Number so
// integers survive without float rounding. An empty body yields no inputs.
func FromJSON(body io.Reader) (map[string]any, error) {
	inputs := make(map[string]any)
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, &ValidationError{Field: "body", Reason: "is not a JSON object"}
	}
	return inputs, nil
}
