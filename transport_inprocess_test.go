package jsonrpc2_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonrpc2 "github.com/go-rpckit/jsonrpc2"
)

func TestInProcessTransportNotificationHasNoResponse(t *testing.T) {
	t.Parallel()

	serverTransport, clientTransport := jsonrpc2.NewInProcessTransport()
	server := jsonrpc2.NewServerV2(newEchoRegistry(t))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- serverTransport.Serve(ctx, server.Handle) }()
	defer clientTransport.Close()

	client := jsonrpc2.NewClient(jsonrpc2.V2)
	data, err := client.BuildNotification("notify_update", jsonrpc2.Array(jsonrpc2.Int(1)), true)
	require.NoError(t, err)
	require.NoError(t, clientTransport.Send(ctx, data))

	// Confirm the transport is still usable for an ordinary call right
	// after a notification, proving the server didn't write a stray
	// response back for it.
	id, reqData, err := client.BuildRequest("add", jsonrpc2.Array(jsonrpc2.Int(1), jsonrpc2.Int(2)), true)
	require.NoError(t, err)
	respData, err := clientTransport.Call(ctx, reqData)
	require.NoError(t, err)

	gotID, result, rpcErr, err := client.ParseResponse(respData)
	require.NoError(t, err)
	require.Nil(t, rpcErr)
	assert.True(t, id.Equal(gotID))
	n, _ := result.AsInt()
	assert.EqualValues(t, 3, n)
}
