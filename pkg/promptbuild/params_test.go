package promptbuild

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   Params
		want     string
	}{
		{"single", "Hello ${name}", Params{"name": "John"}, "Hello John"},
		{"multiple", "${a} and ${b}", Params{"a": "x", "b": "y"}, "x and y"},
		{"duplicates", "${a}-${a}", Params{"a": "z"}, "z-z"},
		{"missing kept", "Hello ${name}", Params{}, "Hello ${name}"},
		{"nil kept", "Hello ${name}", Params{"name": nil}, "Hello ${name}"},
		{"whitespace trimmed for lookup", "Hello ${ name }", Params{"name": "Ann"}, "Hello Ann"},
		{"whitespace kept when missing", "Hello ${ name }", nil, "Hello ${ name }"},
		{"int", "Age ${age}", Params{"age": 25}, "Age 25"},
		{"float", "Ratio ${r}", Params{"r": 1.5}, "Ratio 1.5"},
		{"whole float", "Count ${n}", Params{"n": 1000000.0}, "Count 1000000"},
		{"tiny float", "Eps ${e}", Params{"e": 1e-7}, "Eps 1e-7"},
		{"tiny fraction", "Eps ${e}", Params{"e": -2.5e-10}, "Eps -2.5e-10"},
		{"micro float", "Eps ${e}", Params{"e": 0.000001}, "Eps 0.000001"},
		{"huge float", "Big ${b}", Params{"b": 1e21}, "Big 1e+21"},
		{"bool", "Flag ${f}", Params{"f": false}, "Flag false"},
		{"slice as json", "Tags ${t}", Params{"t": []string{"a", "b"}}, `Tags ["a","b"]`},
		{"empty template", "", Params{"a": 1}, ""},
		{"no placeholders", "plain text", Params{"a": 1}, "plain text"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Substitute(tc.template, tc.params))
		})
	}
}

func TestExtractParameters(t *testing.T) {
	assert.Equal(t, []string{"name"}, ExtractParameters("Hello ${name}"))
	assert.Equal(t, []string{"b", "a"}, ExtractParameters("${b} ${a} ${ b } ${a}"))
	assert.Empty(t, ExtractParameters("no params here"))
}

func TestValidateParameters(t *testing.T) {
	missing, err := ValidateParameters("${a} ${b}", Params{"a": 1, "b": 2}, true)
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = ValidateParameters("${a} ${b} ${c}", Params{"a": 1, "c": nil}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, missing)

	_, err = ValidateParameters("${a} ${b}", Params{}, true)
	var mpe *MissingParametersError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, []string{"a", "b"}, mpe.Missing)
	assert.Equal(t, "missing required parameters: a, b", err.Error())
}

func TestParamsHelpers(t *testing.T) {
	p := Params{"age": "25", "zero": 0, "name": "x", "empty": "", "nothing": nil, "list": []string{}}

	n, ok := p.Number("age")
	require.True(t, ok)
	assert.Equal(t, 25.0, n)

	_, ok = p.Number("name")
	assert.False(t, ok)

	assert.True(t, p.Truthy("name"))
	assert.True(t, p.Truthy("list"))
	assert.False(t, p.Truthy("zero"))
	assert.False(t, p.Truthy("empty"))
	assert.False(t, p.Truthy("nothing"))
	assert.False(t, p.Truthy("absent"))

	_, ok = p.Lookup("nothing")
	assert.False(t, ok)
}
