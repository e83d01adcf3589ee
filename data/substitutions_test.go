package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

func TestExpandSubstitutionsWithNoDirectives(t *testing.T) {
	input := []byte(`{"name": "plain"}`)
	sources, err := expandSubstitutions(input)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, input, sources[0].Data)
	assert.Nil(t, sources[0].Params)
}

func TestExpandSubstitutionsWithConstants(t *testing.T) {
	input := []byte(`{"constants": {"GREETING": "hi", "COUNT": 3},` +
		` "text": "<GREETING> there", "value": "<COUNT>"}`)
	sources, err := expandSubstitutions(input)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	var out struct {
		Text  string `json:"text"`
		Value int    `json:"value"`
	}
	require.NoError(t, ParseJSONOrYAML(sources[0].Data, &out))
	assert.Equal(t, "hi there", out.Text)
	assert.Equal(t, 3, out.Value)
}

func TestReplaceVariablesUnescapesEncodedAngleBrackets(t *testing.T) {
	// json.Marshal escapes < and > as \u003c and \u003e; references that went through
	// a marshal round trip must still be expanded
	input := []byte(`{"text": "hello \u003cNAME\u003e"}`)
	out := replaceVariables(input, substitutionSet{"NAME": ldvalue.String("world")})
	assert.Equal(t, `{"text": "hello world"}`, string(out))
}

func TestExpandSubstitutionsWithParameterList(t *testing.T) {
	input := []byte(`{"parameters": [{"A": 1}, {"A": 2}], "value": "<A>"}`)
	sources, err := expandSubstitutions(input)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	var values []int
	for _, source := range sources {
		var out struct {
			Value int `json:"value"`
		}
		require.NoError(t, ParseJSONOrYAML(source.Data, &out))
		values = append(values, out.Value)
		assert.Equal(t, ldvalue.Int(out.Value), source.Params["A"])
	}
	assert.ElementsMatch(t, []int{1, 2}, values)
}

func TestExpandSubstitutionsWithParameterCrossProduct(t *testing.T) {
	input := []byte(`{"parameters": [[{"A": 1}, {"A": 2}], [{"B": "x"}, {"B": "y"}]],` +
		` "value": "<A>-<B>"}`)
	sources, err := expandSubstitutions(input)
	require.NoError(t, err)
	require.Len(t, sources, 4)

	var values []string
	for _, source := range sources {
		var out struct {
			Value string `json:"value"`
		}
		require.NoError(t, ParseJSONOrYAML(source.Data, &out))
		values = append(values, out.Value)
	}
	assert.ElementsMatch(t, []string{"1-x", "2-x", "1-y", "2-y"}, values)
}
