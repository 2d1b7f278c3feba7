package jsonrpc2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonrpc2 "github.com/go-rpckit/jsonrpc2"
)

func TestValueSatisfies(t *testing.T) {
	t.Parallel()

	assert.True(t, jsonrpc2.String("Peter").Satisfies(jsonrpc2.TypeString))
	assert.False(t, jsonrpc2.String("Peter").Satisfies(jsonrpc2.TypeInteger))

	assert.True(t, jsonrpc2.Int(5).Satisfies(jsonrpc2.TypeInteger))
	assert.True(t, jsonrpc2.Int(5).Satisfies(jsonrpc2.TypeReal), "an INTEGER value also satisfies REAL")

	assert.True(t, jsonrpc2.Real(5.0).Satisfies(jsonrpc2.TypeInteger), "integral REAL satisfies INTEGER")
	assert.False(t, jsonrpc2.Real(5.5).Satisfies(jsonrpc2.TypeInteger), "non-integral REAL does not satisfy INTEGER")
	assert.True(t, jsonrpc2.Real(5.5).Satisfies(jsonrpc2.TypeReal))

	assert.True(t, jsonrpc2.Null.Satisfies(jsonrpc2.TypeNull))
	assert.False(t, jsonrpc2.Bool(true).Satisfies(jsonrpc2.TypeNull))
}

func TestValueEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, jsonrpc2.Equal(jsonrpc2.Int(5), jsonrpc2.Real(5.0)), "integral real compares equal to int")
	assert.False(t, jsonrpc2.Equal(jsonrpc2.Int(5), jsonrpc2.Real(5.5)))

	a, err := jsonrpc2.NewObject([]string{"x", "y"}, map[string]jsonrpc2.Value{
		"x": jsonrpc2.Int(1),
		"y": jsonrpc2.String("two"),
	})
	require.NoError(t, err)
	b, err := jsonrpc2.NewObject([]string{"y", "x"}, map[string]jsonrpc2.Value{
		"x": jsonrpc2.Int(1),
		"y": jsonrpc2.String("two"),
	})
	require.NoError(t, err)
	assert.True(t, jsonrpc2.Equal(a, b), "object equality ignores key order")
}

func TestNewObjectRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	_, err := jsonrpc2.NewObject([]string{"a", "a"}, map[string]jsonrpc2.Value{"a": jsonrpc2.Null})
	assert.Error(t, err)
}

func TestDecodeEncodeValueRoundTrip(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"name":"Peter","age":30,"tags":["a","b"],"active":true,"extra":null}`)
	v, err := jsonrpc2.DecodeValue(raw)
	require.NoError(t, err)
	assert.Equal(t, jsonrpc2.KindObject, v.Kind())

	name, ok := v.Field("name")
	require.True(t, ok)
	s, _ := name.AsString()
	assert.Equal(t, "Peter", s)

	age, ok := v.Field("age")
	require.True(t, ok)
	n, ok := age.AsInt()
	require.True(t, ok)
	assert.EqualValues(t, 30, n)

	out, err := jsonrpc2.EncodeValue(v)
	require.NoError(t, err)

	roundTripped, err := jsonrpc2.DecodeValue(out)
	require.NoError(t, err)
	assert.True(t, jsonrpc2.Equal(v, roundTripped))
}
