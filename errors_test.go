package jsonrpc2_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	jsonrpc2 "github.com/go-rpckit/jsonrpc2"
)

func TestCanonicalMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Method not found", jsonrpc2.CanonicalMessage(jsonrpc2.MethodNotFound))
	assert.Equal(t, "", jsonrpc2.CanonicalMessage(jsonrpc2.Code(-32050)), "server-defined codes have no canonical message")
}

func TestCodeIsServerDefined(t *testing.T) {
	t.Parallel()

	assert.True(t, jsonrpc2.Code(-32050).IsServerDefined())
	assert.False(t, jsonrpc2.ParseError.IsServerDefined())
	assert.False(t, jsonrpc2.ClientInvalidResponse.IsServerDefined(), "carved out of the server-defined range")
}

func TestNewErrorUsesCanonicalMessage(t *testing.T) {
	t.Parallel()

	err := jsonrpc2.NewError(jsonrpc2.InvalidParams)
	assert.Equal(t, "Invalid params", err.Error())
	assert.Equal(t, jsonrpc2.InvalidParams, err.Code)
}

func TestErrorfFormatsMessage(t *testing.T) {
	t.Parallel()

	err := jsonrpc2.Errorf(jsonrpc2.Code(-32010), "rate limit exceeded for %s", "alice")
	assert.Equal(t, "rate limit exceeded for alice", err.Error())
}

func TestErrorWithData(t *testing.T) {
	t.Parallel()

	err := jsonrpc2.NewError(jsonrpc2.InternalError).WithData(jsonrpc2.String("stack overflow"))
	require := err.Data
	if require == nil {
		t.Fatal("expected Data to be set")
	}
	s, ok := require.AsString()
	assert.True(t, ok)
	assert.Equal(t, "stack overflow", s)
}

func TestAsErrorExtractsRPCError(t *testing.T) {
	t.Parallel()

	rpcErr := jsonrpc2.NewError(jsonrpc2.InternalError)
	wrapped := fmt.Errorf("wrapping: %w", rpcErr)

	got, ok := jsonrpc2.AsError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, jsonrpc2.InternalError, got.Code)

	_, ok = jsonrpc2.AsError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}
