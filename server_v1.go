package jsonrpc2

import (
	"context"

	"go.uber.org/zap"
)

// ServerV1 is the JSON-RPC 1.0 server protocol engine: no "jsonrpc" field,
// id is always present (null marks a notification), and params, when
// present, must be a JSON array — the strict reading of the "v1 params
// strictness" open question recorded in DESIGN.md.
type ServerV1 struct {
	*engine
}

// NewServerV1 builds a v1 engine around registry.
func NewServerV1(registry *ProcedureRegistry, opts ...Option) *ServerV1 {
	return &ServerV1{engine: newEngine(registry, opts...)}
}

// Handle processes one request payload. v1 has no batch form; a top-level
// array is itself an InvalidRequest.
func (s *ServerV1) Handle(ctx context.Context, data []byte) []byte {
	resp, _ := s.process(ctx, data)
	return resp
}

func (s *ServerV1) process(ctx context.Context, data []byte) (resp []byte, owed bool) {
	if isBatchPayload(data) {
		b, _ := encodeResponseV1(NullID, Value{}, NewError(InvalidRequest))
		return b, true
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		b, _ := encodeResponseV1(NullID, Value{}, NewError(ParseError))
		return b, true
	}
	if !env.hasMethod || env.method == "" {
		id, _ := env.id()
		b, _ := encodeResponseV1(fallbackID(id), Value{}, NewError(InvalidRequest))
		return b, true
	}
	if !env.hasID {
		b, _ := encodeResponseV1(NullID, Value{}, NewError(InvalidRequest))
		return b, true
	}

	id, ok := env.id()
	if !ok {
		b, _ := encodeResponseV1(NullID, Value{}, NewError(InvalidRequest))
		return b, true
	}
	params, err := env.params()
	if err != nil {
		b, _ := encodeResponseV1(id, Value{}, NewError(InvalidRequest))
		return b, true
	}
	if env.hasParams && !params.IsNull() && params.Kind() != KindArray {
		b, _ := encodeResponseV1(id, Value{}, NewError(InvalidRequest))
		return b, true
	}

	out := s.dispatch(ctx, call{
		id:                 id,
		method:             env.method,
		params:             params,
		notificationIntent: id.IsNotificationIntent(),
	})
	if !out.respond {
		return nil, false
	}
	b, err := encodeResponseV1(out.id, out.result, out.rpcErr)
	if err != nil {
		s.logger.Error("encoding v1 response", zap.Error(err))
		b, _ = encodeResponseV1(out.id, Value{}, NewError(InternalError))
	}
	return b, true
}
