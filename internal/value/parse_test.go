package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{name: "null", src: "null", want: Null()},
		{name: "true", src: "true", want: Bool(true)},
		{name: "false", src: "false", want: Bool(false)},
		{name: "integer", src: "42", want: Number("42")},
		{name: "negative", src: "-7", want: Number("-7")},
		{name: "zero", src: "0", want: Number("0")},
		{name: "fraction", src: "3.14", want: Number("3.14")},
		{name: "exponent", src: "1e10", want: Number("1e10")},
		{name: "signed exponent", src: "-2.5E-3", want: Number("-2.5E-3")},
		{name: "string", src: `"hello"`, want: String("hello")},
		{name: "empty string", src: `""`, want: String("")},
		{name: "leading whitespace", src: "  \n\ttrue", want: Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumberTextPreserved(t *testing.T) {
	// The decimal text must survive verbatim so large or high-precision
	// numbers display exactly as received.
	tests := []string{
		"0.1000000000000000000000001",
		"9007199254740993",
		"1E+100",
		"-0.0",
	}
	for _, src := range tests {
		got, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, KindNumber, got.Kind)
		assert.Equal(t, src, got.Text)
	}
}

func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "quote", src: `"a\"b"`, want: `a"b`},
		{name: "backslash", src: `"a\\b"`, want: `a\b`},
		{name: "slash", src: `"a\/b"`, want: "a/b"},
		{name: "controls", src: `"\b\f\n\r\t"`, want: "\b\f\n\r\t"},
		{name: "unicode", src: `"é"`, want: "é"},
		{name: "surrogate pair", src: `"😀"`, want: "😀"},
		{name: "lone surrogate", src: `"\ud83d"`, want: "�"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, String(tt.want), got)
		})
	}
}

func TestParseContainers(t *testing.T) {
	got, err := Parse(`{"a": 1, "b": [true, null], "a": "again"}`)
	require.NoError(t, err)

	require.Equal(t, KindObject, got.Kind)
	require.Len(t, got.Members, 3)

	// Member order and duplicate keys are preserved.
	assert.Equal(t, "a", got.Members[0].Key)
	assert.Equal(t, Number("1"), got.Members[0].Value)
	assert.Equal(t, "b", got.Members[1].Key)
	assert.Equal(t, Array(Bool(true), Null()), got.Members[1].Value)
	assert.Equal(t, "a", got.Members[2].Key)
	assert.Equal(t, String("again"), got.Members[2].Value)
}

func TestParseEmptyContainers(t *testing.T) {
	obj, err := Parse("{}")
	require.NoError(t, err)
	assert.Equal(t, Object(), obj)
	assert.Equal(t, 0, obj.ChildCount())

	arr, err := Parse("[ ]")
	require.NoError(t, err)
	assert.Equal(t, Array(), arr)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty input", src: ""},
		{name: "truncated object", src: `{"a":`},
		{name: "missing colon", src: `{"a" 1}`},
		{name: "bad literal", src: "tru"},
		{name: "trailing garbage", src: "1 2"},
		{name: "bare word", src: "hello"},
		{name: "invalid escape", src: `"\q"`},
		{name: "truncated unicode escape", src: `"\u00"`},
		{name: "control char in string", src: "\"a\nb\""},
		{name: "leading zero", src: "01"},
		{name: "lone minus", src: "-"},
		{name: "dot without digits", src: "1."},
		{name: "mismatched brackets", src: `{"a": 1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}
