// Package schema turns loosely typed request inputs (query strings, headers,
// path segments, JSON and form bodies) into typed, bounds-checked values.
//
// A Schema maps field names to rules. Each rule is one of four variants
// (StringRule, IntegerRule, NumberRule, BooleanRule) and resolves its field to
// exactly one outcome: a coerced value, its default, an allowed absence, or a
// *ValidationError. Absent fields never appear in the resulting Values.
package schema

// Kind identifies the value type a rule produces.
type Kind int

const (
	KindString Kind = iota + 1
	KindInteger
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Rule is a single field's validation rule.
type Rule interface {
	Kind() Kind
	isRequired() bool
}

// Schema describes the expected fields of one input source.
type Schema map[string]Rule

// StringRule accepts native strings.
type StringRule struct {
	Required bool
	Default  *string
	NonEmpty bool
	OneOf    []string
	Email    bool
}

// IntegerRule accepts native integers and strings with a leading integer.
type IntegerRule struct {
	Required bool
	Default  *int
	Min      *int
	Max      *int
}

// NumberRule accepts finite native numbers and strings with a leading decimal number.
type NumberRule struct {
	Required bool
	Default  *float64
	Min      *float64
	Max      *float64
}

// BooleanRule accepts the literal strings "true" and "false" and native booleans.
type BooleanRule struct {
	Required bool
	Default  *bool
}

func (StringRule) Kind() Kind  { return KindString }
func (IntegerRule) Kind() Kind { return KindInteger }
func (NumberRule) Kind() Kind  { return KindNumber }
func (BooleanRule) Kind() Kind { return KindBoolean }

func (r StringRule) isRequired() bool  { return r.Required }
func (r IntegerRule) isRequired() bool { return r.Required }
func (r NumberRule) isRequired() bool  { return r.Required }
func (r BooleanRule) isRequired() bool { return r.Required }

// String returns a required string rule.
func String() StringRule { return StringRule{Required: true} }

// Integer returns a required integer rule.
func Integer() IntegerRule { return IntegerRule{Required: true} }

// Number returns a required number rule.
func Number() NumberRule { return NumberRule{Required: true} }

// Boolean returns a required boolean rule.
func Boolean() BooleanRule { return BooleanRule{Required: true} }

func (r StringRule) Optional() StringRule { r.Required = false; return r }
func (r StringRule) NotEmpty() StringRule { r.NonEmpty = true; return r }
func (r StringRule) IsEmail() StringRule  { r.Email = true; return r }

func (r StringRule) WithDefault(v string) StringRule {
	r.Default = &v
	return r
}

func (r StringRule) In(values ...string) StringRule {
	r.OneOf = append([]string(nil), values...)
	return r
}

func (r IntegerRule) Optional() IntegerRule { r.Required = false; return r }

func (r IntegerRule) WithDefault(v int) IntegerRule {
	r.Default = &v
	return r
}

func (r IntegerRule) AtLeast(v int) IntegerRule {
	r.Min = &v
	return r
}

func (r IntegerRule) AtMost(v int) IntegerRule {
	r.Max = &v
	return r
}

func (r IntegerRule) Between(lo, hi int) IntegerRule {
	return r.AtLeast(lo).AtMost(hi)
}

func (r NumberRule) Optional() NumberRule { r.Required = false; return r }

func (r NumberRule) WithDefault(v float64) NumberRule {
	r.Default = &v
	return r
}

func (r NumberRule) Between(lo, hi float64) NumberRule {
	r.Min = &lo
	r.Max = &hi
	return r
}

func (r BooleanRule) Optional() BooleanRule { r.Required = false; return r }

func (r BooleanRule) WithDefault(v bool) BooleanRule {
	r.Default = &v
	return r
}
