package jsonrpc2_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonrpc2 "github.com/go-rpckit/jsonrpc2"
)

func TestRegistryAddAndLookup(t *testing.T) {
	t.Parallel()

	reg := jsonrpc2.NewProcedureRegistry()
	d, err := jsonrpc2.NewMethodDescriptor("sayHello", jsonrpc2.ByName,
		[]jsonrpc2.Param{{Name: "name", Type: jsonrpc2.TypeString}}, jsonrpc2.TypeString)
	require.NoError(t, err)

	require.NoError(t, reg.AddMethod(d, func(ctx context.Context, params jsonrpc2.Value) (jsonrpc2.Value, error) {
		name, _ := params.Field("name")
		s, _ := name.AsString()
		return jsonrpc2.String("Hello, " + s), nil
	}))

	got, ok := reg.Lookup("sayHello")
	require.True(t, ok)
	assert.Equal(t, jsonrpc2.Method, got.Kind)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	reg := jsonrpc2.NewProcedureRegistry()
	d1, err := jsonrpc2.NewMethodDescriptor("ping", jsonrpc2.ByPosition, nil, jsonrpc2.TypeNull)
	require.NoError(t, err)
	require.NoError(t, reg.AddMethod(d1, func(ctx context.Context, params jsonrpc2.Value) (jsonrpc2.Value, error) {
		return jsonrpc2.Null, nil
	}))

	d2, err := jsonrpc2.NewMethodDescriptor("ping", jsonrpc2.ByPosition, nil, jsonrpc2.TypeNull)
	require.NoError(t, err)
	err = reg.AddMethod(d2, func(ctx context.Context, params jsonrpc2.Value) (jsonrpc2.Value, error) {
		return jsonrpc2.Null, nil
	})
	assert.Error(t, err)
}

func TestRegistryRejectsWrongKind(t *testing.T) {
	t.Parallel()

	reg := jsonrpc2.NewProcedureRegistry()
	d, err := jsonrpc2.NewNotificationDescriptor("notify_hello", jsonrpc2.ByPosition, nil)
	require.NoError(t, err)

	err = reg.AddMethod(d, func(ctx context.Context, params jsonrpc2.Value) (jsonrpc2.Value, error) {
		return jsonrpc2.Null, nil
	})
	assert.Error(t, err)
}

func TestRegistryDescriptorsSnapshot(t *testing.T) {
	t.Parallel()

	reg := jsonrpc2.NewProcedureRegistry()
	d, err := jsonrpc2.NewNotificationDescriptor("update", jsonrpc2.ByPosition,
		[]jsonrpc2.Param{{Type: jsonrpc2.TypeInteger}})
	require.NoError(t, err)
	require.NoError(t, reg.AddNotification(d, func(ctx context.Context, params jsonrpc2.Value) {}))

	descs := reg.Descriptors()
	require.Len(t, descs, 1)
	assert.Equal(t, "update", descs[0].Name)
}
