package jsonrpc2_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonrpc2 "github.com/go-rpckit/jsonrpc2"
)

func TestServerV1SuccessfulCall(t *testing.T) {
	t.Parallel()

	s := jsonrpc2.NewServerV1(newEchoRegistry(t))
	resp := s.Handle(context.Background(), []byte(`{"method":"add","params":[2,3],"id":1}`))
	require.NotNil(t, resp)

	v, err := jsonrpc2.DecodeValue(resp)
	require.NoError(t, err)
	result, ok := v.Field("result")
	require.True(t, ok)
	n, _ := result.AsInt()
	assert.EqualValues(t, 5, n)

	errField, ok := v.Field("error")
	require.True(t, ok)
	assert.True(t, errField.IsNull())
}

func TestServerV1RejectsObjectParams(t *testing.T) {
	t.Parallel()

	s := jsonrpc2.NewServerV1(newEchoRegistry(t))
	resp := s.Handle(context.Background(), []byte(`{"method":"add","params":{"a":1},"id":1}`))
	v, err := jsonrpc2.DecodeValue(resp)
	require.NoError(t, err)

	result, ok := v.Field("result")
	require.True(t, ok)
	assert.True(t, result.IsNull())

	errObj, ok := v.Field("error")
	require.True(t, ok)
	assert.False(t, errObj.IsNull())
}

func TestServerV1NullIDIsNotification(t *testing.T) {
	t.Parallel()

	s := jsonrpc2.NewServerV1(newEchoRegistry(t))
	resp := s.Handle(context.Background(), []byte(`{"method":"notify_update","params":[1],"id":null}`))
	assert.Nil(t, resp)
}

func TestHybridServerRoutesByJSONRPCField(t *testing.T) {
	t.Parallel()

	reg := newEchoRegistry(t)
	s := jsonrpc2.NewHybridServer(reg)

	v2resp := s.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","method":"add","params":[1,2],"id":1}`))
	v, err := jsonrpc2.DecodeValue(v2resp)
	require.NoError(t, err)
	_, hasJSONRPC := v.Field("jsonrpc")
	assert.True(t, hasJSONRPC)

	v1resp := s.Handle(context.Background(), []byte(`{"method":"add","params":[1,2],"id":1}`))
	v, err = jsonrpc2.DecodeValue(v1resp)
	require.NoError(t, err)
	_, hasJSONRPC = v.Field("jsonrpc")
	assert.False(t, hasJSONRPC)
}

func TestHybridServerRoutesArrayToV2Batch(t *testing.T) {
	t.Parallel()

	s := jsonrpc2.NewHybridServer(newEchoRegistry(t))
	resp := s.Handle(context.Background(), []byte(`[{"jsonrpc":"2.0","method":"add","params":[1,2],"id":1}]`))
	v, err := jsonrpc2.DecodeValue(resp)
	require.NoError(t, err)
	assert.Equal(t, jsonrpc2.KindArray, v.Kind())
}
