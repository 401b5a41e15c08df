package schema

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Integer(t *testing.T) {
	s := Schema{"n": Integer().Between(1, 5)}

	cases := []struct {
		name  string
		input any
		want  int
	}{
		{"plain string", "3", 3},
		{"trailing characters are ignored", "4abc", 4},
		{"leading whitespace and sign", " +2", 2},
		{"native int", 5, 5},
		{"integral float", float64(1), 1},
		{"json number", json.Number("2"), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Validate(map[string]any{"n": tc.input}, s)
			require.NoError(t, err)
			n, ok := out.Int("n")
			assert.True(t, ok)
			assert.Equal(t, tc.want, n)
		})
	}

	t.Run("below minimum", func(t *testing.T) {
		_, err := Validate(map[string]any{"n": "0"}, s)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "n", vErr.Field)
		assert.Equal(t, "value is too small", vErr.Reason)
	})

	t.Run("above maximum", func(t *testing.T) {
		_, err := Validate(map[string]any{"n": "6"}, s)
		assert.EqualError(t, err, "n: value is too large")
	})

	t.Run("out of range does not fall back to default", func(t *testing.T) {
		_, err := Validate(map[string]any{"n": "9"}, Schema{"n": Integer().AtMost(5).WithDefault(1)})
		assert.Error(t, err)
	})

	t.Run("integer string beyond the int range fails", func(t *testing.T) {
		count := Schema{"count": Integer().AtLeast(1).Optional()}
		_, err := Validate(map[string]any{"count": "99999999999999999999"}, count)
		assert.EqualError(t, err, "count: value is too large")

		_, err = Validate(map[string]any{"count": "-99999999999999999999"}, Schema{"count": Integer().WithDefault(3)})
		assert.EqualError(t, err, "count: value is too small")
	})

	t.Run("huge native number fails instead of overflowing", func(t *testing.T) {
		atMost := Schema{"n": Integer().AtMost(5)}
		_, err := Validate(map[string]any{"n": 1e30}, atMost)
		assert.EqualError(t, err, "n: value is too large")

		_, err = Validate(map[string]any{"n": -1e30}, atMost)
		assert.EqualError(t, err, "n: value is too small")

		_, err = Validate(map[string]any{"n": json.Number("1e30")}, atMost)
		assert.EqualError(t, err, "n: value is too large")
	})

	t.Run("unparseable uses default", func(t *testing.T) {
		out, err := Validate(map[string]any{"n": "abc"}, Schema{"n": Integer().WithDefault(7)})
		require.NoError(t, err)
		assert.Equal(t, Values{"n": 7}, out)
	})

	t.Run("fractional native number is not an integer", func(t *testing.T) {
		_, err := Validate(map[string]any{"n": 1.5}, s)
		assert.EqualError(t, err, "n: is not an integer")
	})

	t.Run("missing optional is omitted", func(t *testing.T) {
		out, err := Validate(map[string]any{}, Schema{"n": Integer().Optional()})
		require.NoError(t, err)
		assert.False(t, out.Has("n"))
		assert.Empty(t, out)
	})

	t.Run("missing required fails", func(t *testing.T) {
		_, err := Validate(map[string]any{}, s)
		assert.EqualError(t, err, "n: is not an integer")
	})

	t.Run("empty string is absent", func(t *testing.T) {
		out, err := Validate(map[string]any{"n": ""}, Schema{"n": Integer().Optional()})
		require.NoError(t, err)
		assert.Nil(t, out.IntPtr("n"))
	})
}

func TestValidate_Number(t *testing.T) {
	s := Schema{"lat": Number().Between(-90, 90)}

	t.Run("fractional string", func(t *testing.T) {
		out, err := Validate(map[string]any{"lat": "-43.53"}, s)
		require.NoError(t, err)
		f, ok := out.Float("lat")
		assert.True(t, ok)
		assert.InDelta(t, -43.53, f, 1e-9)
	})

	t.Run("exponent and trailing text", func(t *testing.T) {
		out, err := Validate(map[string]any{"lat": "1e1deg"}, s)
		require.NoError(t, err)
		assert.Equal(t, Values{"lat": 10.0}, out)
	})

	t.Run("json number", func(t *testing.T) {
		out, err := Validate(map[string]any{"lat": json.Number("51.5")}, s)
		require.NoError(t, err)
		assert.Equal(t, Values{"lat": 51.5}, out)
	})

	t.Run("infinity is rejected", func(t *testing.T) {
		_, err := Validate(map[string]any{"lat": "Infinity"}, s)
		assert.EqualError(t, err, "lat: is not a number")
	})

	t.Run("overflow is rejected", func(t *testing.T) {
		_, err := Validate(map[string]any{"lat": "1e400"}, Schema{"lat": Number()})
		assert.Error(t, err)
	})

	t.Run("bounds", func(t *testing.T) {
		_, err := Validate(map[string]any{"lat": "90.5"}, s)
		assert.EqualError(t, err, "lat: value is too large")
		_, err = Validate(map[string]any{"lat": -91}, s)
		assert.EqualError(t, err, "lat: value is too small")
	})

	t.Run("default", func(t *testing.T) {
		out, err := Validate(map[string]any{}, Schema{"lat": Number().WithDefault(0.5)})
		require.NoError(t, err)
		assert.Equal(t, Values{"lat": 0.5}, out)
	})
}

func TestValidate_Boolean(t *testing.T) {
	s := Schema{"b": Boolean()}

	for input, want := range map[any]bool{"true": true, "false": false, true: true} {
		out, err := Validate(map[string]any{"b": input}, s)
		require.NoError(t, err)
		assert.Equal(t, want, out["b"])
	}

	t.Run("other strings fail", func(t *testing.T) {
		for _, input := range []any{"TRUE", "1", "yes", 1} {
			_, err := Validate(map[string]any{"b": input}, s)
			assert.EqualError(t, err, "b: is not a boolean", "input %v", input)
		}
	})

	t.Run("default", func(t *testing.T) {
		out, err := Validate(map[string]any{"b": "maybe"}, Schema{"b": Boolean().WithDefault(false)})
		require.NoError(t, err)
		assert.Equal(t, Values{"b": false}, out)
	})
}

func TestValidate_String(t *testing.T) {
	t.Run("empty allowed by default", func(t *testing.T) {
		out, err := Validate(map[string]any{"s": ""}, Schema{"s": String()})
		require.NoError(t, err)
		assert.Equal(t, Values{"s": ""}, out)
	})

	t.Run("non-empty rejects empty", func(t *testing.T) {
		_, err := Validate(map[string]any{"s": ""}, Schema{"s": String().NotEmpty()})
		assert.EqualError(t, err, "s: is not a valid string")
	})

	t.Run("non-empty optional empty is absent", func(t *testing.T) {
		out, err := Validate(map[string]any{"s": ""}, Schema{"s": String().NotEmpty().Optional()})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("permitted values", func(t *testing.T) {
		rule := String().In("STAR_RATING", "DISTANCE").WithDefault("STAR_RATING")
		out, err := Validate(map[string]any{"sortBy": "DISTANCE"}, Schema{"sortBy": rule})
		require.NoError(t, err)
		assert.Equal(t, Values{"sortBy": "DISTANCE"}, out)

		_, err = Validate(map[string]any{"sortBy": "NAME"}, Schema{"sortBy": rule})
		assert.EqualError(t, err, "sortBy: is not one of the permitted values")

		out, err = Validate(map[string]any{}, Schema{"sortBy": rule})
		require.NoError(t, err)
		assert.Equal(t, Values{"sortBy": "STAR_RATING"}, out)
	})

	t.Run("email", func(t *testing.T) {
		s := Schema{"email": String().NotEmpty().IsEmail()}
		_, err := Validate(map[string]any{"email": "someone@example.com"}, s)
		assert.NoError(t, err)
		_, err = Validate(map[string]any{"email": "not-an-email"}, s)
		assert.EqualError(t, err, "email: is not a valid email address")
	})

	t.Run("non-string is rejected", func(t *testing.T) {
		_, err := Validate(map[string]any{"s": json.Number("12")}, Schema{"s": String()})
		assert.Error(t, err)
	})

	t.Run("nil is treated as missing", func(t *testing.T) {
		out, err := Validate(map[string]any{"s": nil}, Schema{"s": String().Optional()})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestValidate_FirstFailureInNameOrder(t *testing.T) {
	s := Schema{
		"b": Integer(),
		"a": Integer(),
	}
	_, err := Validate(map[string]any{}, s)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "a", vErr.Field)
}

func TestInputAdapters(t *testing.T) {
	t.Run("query takes first value", func(t *testing.T) {
		inputs := FromQuery(url.Values{"q": {"cafe", "bar"}, "count": {"2"}})
		assert.Equal(t, map[string]any{"q": "cafe", "count": "2"}, inputs)
	})

	t.Run("headers are lower-cased and only present ones copied", func(t *testing.T) {
		h := http.Header{}
		h.Set("X-Authorization", "abc")
		inputs := FromHeader(h, "X-Authorization", "Content-Type")
		assert.Equal(t, map[string]any{"x-authorization": "abc"}, inputs)
	})

	t.Run("path values", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/venues/3", nil)
		r.SetPathValue("id", "3")
		assert.Equal(t, map[string]any{"id": "3"}, FromPath(r, "id", "photoFilename"))
	})

	t.Run("json keeps numbers exact", func(t *testing.T) {
		inputs, err := FromJSON(strings.NewReader(`{"categoryId": 1, "latitude": 51.5}`))
		require.NoError(t, err)
		out, err := Validate(inputs, Schema{"categoryId": Integer(), "latitude": Number()})
		require.NoError(t, err)
		assert.Equal(t, Values{"categoryId": 1, "latitude": 51.5}, out)
	})

	t.Run("empty body", func(t *testing.T) {
		inputs, err := FromJSON(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, inputs)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := FromJSON(strings.NewReader("[1, 2]"))
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
