package jsonrpc2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonrpc2 "github.com/go-rpckit/jsonrpc2"
)

func TestDecodeSpecificationInfersKindAndStyle(t *testing.T) {
	t.Parallel()

	doc := []byte(`[
		{"name":"subtract","params":{"minuend":1,"subtrahend":1},"returns":1},
		{"name":"notify_hello","params":[1]}
	]`)

	descs, err := jsonrpc2.DecodeSpecification(doc)
	require.NoError(t, err)
	require.Len(t, descs, 2)

	var subtract, notifyHello *jsonrpc2.ProcedureDescriptor
	for _, d := range descs {
		switch d.Name {
		case "subtract":
			subtract = d
		case "notify_hello":
			notifyHello = d
		}
	}
	require.NotNil(t, subtract)
	require.NotNil(t, notifyHello)

	assert.Equal(t, jsonrpc2.Method, subtract.Kind)
	assert.Equal(t, jsonrpc2.ByName, subtract.ParamStyle)
	require.True(t, subtract.HasReturnType())
	assert.Equal(t, jsonrpc2.TypeInteger, subtract.ReturnType)

	assert.Equal(t, jsonrpc2.Notification, notifyHello.Kind)
	assert.Equal(t, jsonrpc2.ByPosition, notifyHello.ParamStyle)
	assert.False(t, notifyHello.HasReturnType())
}

func TestDecodeSpecificationReadsEveryLiteralShape(t *testing.T) {
	t.Parallel()

	doc := []byte(`[{"name":"probe","params":{
		"a":"somestring",
		"b":true,
		"c":1,
		"d":1.5,
		"e":{"objectkey":"objectvalue"},
		"f":[]
	},"returns":null}]`)

	descs, err := jsonrpc2.DecodeSpecification(doc)
	require.NoError(t, err)
	require.Len(t, descs, 1)

	types := make(map[string]jsonrpc2.JsonType, len(descs[0].Params))
	for _, p := range descs[0].Params {
		types[p.Name] = p.Type
	}
	assert.Equal(t, jsonrpc2.TypeString, types["a"])
	assert.Equal(t, jsonrpc2.TypeBoolean, types["b"])
	assert.Equal(t, jsonrpc2.TypeInteger, types["c"])
	assert.Equal(t, jsonrpc2.TypeReal, types["d"])
	assert.Equal(t, jsonrpc2.TypeObject, types["e"])
	assert.Equal(t, jsonrpc2.TypeArray, types["f"])

	// a "returns" key present as literal null still makes this a METHOD,
	// declaring NULL as its return type.
	assert.True(t, descs[0].HasReturnType())
	assert.Equal(t, jsonrpc2.TypeNull, descs[0].ReturnType)
}

func TestDecodeSpecificationRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	doc := []byte(`[{"name":"ping","returns":null},{"name":"ping","returns":null}]`)
	_, err := jsonrpc2.DecodeSpecification(doc)
	assert.Error(t, err)
}

func TestEncodeSpecificationRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := jsonrpc2.NewMethodDescriptor("add", jsonrpc2.ByPosition,
		[]jsonrpc2.Param{{Type: jsonrpc2.TypeInteger}, {Type: jsonrpc2.TypeInteger}}, jsonrpc2.TypeInteger)
	require.NoError(t, err)

	out, err := jsonrpc2.EncodeSpecification([]*jsonrpc2.ProcedureDescriptor{d})
	require.NoError(t, err)

	descs, err := jsonrpc2.DecodeSpecification(out)
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "add", descs[0].Name)
	assert.Equal(t, jsonrpc2.ByPosition, descs[0].ParamStyle)
	assert.Equal(t, jsonrpc2.TypeInteger, descs[0].ReturnType)
}

func TestEncodeSpecificationWritesNullForEmptyParams(t *testing.T) {
	t.Parallel()

	d, err := jsonrpc2.NewNotificationDescriptor("ping", jsonrpc2.ByName, nil)
	require.NoError(t, err)

	out, err := jsonrpc2.EncodeSpecification([]*jsonrpc2.ProcedureDescriptor{d})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"params":null`)
	assert.NotContains(t, string(out), `"returns"`)
}
