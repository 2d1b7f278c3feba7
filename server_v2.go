package jsonrpc2

import (
	"context"

	"go.uber.org/zap"
)

// ServerV2 is the JSON-RPC 2.0 server protocol engine: it accepts raw
// request bytes (a single object or a top-level batch array) and returns
// the raw response bytes to write back, or nil when nothing should be
// written (a lone notification, or a batch of nothing but notifications).
type ServerV2 struct {
	*engine
}

// NewServerV2 builds a v2 engine around registry.
func NewServerV2(registry *ProcedureRegistry, opts ...Option) *ServerV2 {
	return &ServerV2{engine: newEngine(registry, opts...)}
}

// Handle processes one request payload end to end.
func (s *ServerV2) Handle(ctx context.Context, data []byte) []byte {
	if isBatchPayload(data) {
		return s.handleBatch(ctx, data)
	}
	return s.handleSingle(ctx, data)
}

func (s *ServerV2) handleSingle(ctx context.Context, data []byte) []byte {
	resp, _, err := s.process(ctx, data)
	if err != nil {
		s.logger.Error("processing v2 request", zap.Error(err))
	}
	return resp
}

// process runs one non-batch v2 message through the pipeline, returning the
// encoded response (nil if none is due), whether a response was owed at all
// (used by batch.go to decide whether to keep this entry), and any encoding
// failure encountered along the way — batch.go aggregates these across a
// whole batch rather than losing all but the last one.
func (s *ServerV2) process(ctx context.Context, data []byte) (resp []byte, owed bool, err error) {
	env, decErr := decodeEnvelope(data)
	if decErr != nil {
		b, encErr := encodeResponseV2(NullID, Value{}, NewError(ParseError))
		return b, true, encErr
	}

	if !env.hasJSONRPC || env.jsonrpc != Version {
		id, _ := env.id()
		b, encErr := encodeResponseV2(fallbackID(id), Value{}, NewError(InvalidRequest))
		return b, true, encErr
	}
	if !env.hasMethod || env.method == "" {
		id, _ := env.id()
		b, encErr := encodeResponseV2(fallbackID(id), Value{}, NewError(InvalidRequest))
		return b, true, encErr
	}

	id, ok := env.id()
	if !ok {
		b, encErr := encodeResponseV2(NullID, Value{}, NewError(InvalidRequest))
		return b, true, encErr
	}
	params, perr := env.params()
	if perr != nil {
		b, encErr := encodeResponseV2(fallbackID(id), Value{}, NewError(InvalidRequest))
		return b, true, encErr
	}

	out := s.dispatch(ctx, call{
		id:                 id,
		method:             env.method,
		params:             params,
		notificationIntent: id.IsNotificationIntent(),
	})
	if !out.respond {
		return nil, false, nil
	}
	b, encErr := encodeResponseV2(out.id, out.result, out.rpcErr)
	if encErr != nil {
		b, _ = encodeResponseV2(out.id, Value{}, NewError(InternalError))
	}
	return b, true, encErr
}

// fallbackID echoes id if it is a valid, present id; otherwise responses to
// malformed requests fall back to null, a best-effort id echo.
func fallbackID(id ID) ID {
	if id.IsAbsent() {
		return NullID
	}
	return id
}
