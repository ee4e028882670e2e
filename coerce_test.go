package envault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsInt(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"-7", -7, true},
		{"0", 0, true},
		{"  19 ", 19, true},
		{"3.5", 0, false},
		{"", 0, false},
		{"12abc", 0, false},
	} {
		t.Run(tc.in, func(t *testing.T) {
			n, err := AsInt(tc.in)
			if !tc.ok {
				require.Error(t, err)
				var ce *CoerceError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, KindInt, ce.Kind)
				assert.Equal(t, tc.in, ce.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestAsFloat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.5", 0.5, true},
		{"-2.25", -2.25, true},
		{"3", 3, true},
		{" 1e3 ", 1000, true},
		{"", 0, false},
		{"half", 0, false},
	} {
		t.Run(tc.in, func(t *testing.T) {
			f, err := AsFloat(tc.in)
			if !tc.ok {
				require.Error(t, err)
				var ce *CoerceError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, KindFloat64, ce.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestAsBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "True", "1", "yes", "YES", "on", "On", " true "}
	for _, in := range truthy {
		t.Run(in, func(t *testing.T) {
			b, err := AsBool(in)
			require.NoError(t, err)
			assert.True(t, b)
		})
	}

	falsy := []string{"false", "FALSE", "0", "no", "No", "off", "OFF", "", "  "}
	for _, in := range falsy {
		t.Run(in, func(t *testing.T) {
			b, err := AsBool(in)
			require.NoError(t, err)
			assert.False(t, b)
		})
	}

	for _, in := range []string{"enabled", "2", "truthy", "y"} {
		t.Run(in, func(t *testing.T) {
			_, err := AsBool(in)
			require.Error(t, err)
			var ce *CoerceError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, KindBool, ce.Kind)
		})
	}
}

func TestAsList(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"spaces", " a , b ,c ", []string{"a", "b", "c"}},
		{"quoted", `1,"two",3,"four"`, []string{"1", "two", "3", "four"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"single quoted comma", `'x,y',z`, []string{"x,y", "z"}},
		{"single element", "solo", []string{"solo"}},
		{"trailing comma", "a,b,", []string{"a", "b", ""}},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"quotes kept inside", `pre"a,b"post`, []string{`pre"a,b"post`}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AsList(tc.in))
		})
	}
}

func TestCoerce(t *testing.T) {
	v, err := Coerce("hello", KindString)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = Coerce("8080", KindInt)
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	v, err = Coerce("0.25", KindFloat64)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	v, err = Coerce("yes", KindBool)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Coerce("a,b", KindList)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	_, err = Coerce("x", KindInt)
	assert.Error(t, err)

	_, err = Coerce("x", Kind(99))
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "float64", KindFloat64.String())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
