package jsonrpc2

import "context"

// HybridServer auto-detects protocol version per request: a top-level
// array, or an object carrying "jsonrpc":"2.0", is routed to the v2 engine;
// anything else falls back to v1. Both engines share the same procedure
// registry, so a single registration set serves both protocols.
type HybridServer struct {
	v1 *ServerV1
	v2 *ServerV2
}

// NewHybridServer builds a hybrid engine around registry.
func NewHybridServer(registry *ProcedureRegistry, opts ...Option) *HybridServer {
	return &HybridServer{
		v1: NewServerV1(registry, opts...),
		v2: NewServerV2(registry, opts...),
	}
}

// Handle routes data to whichever engine its shape calls for.
func (s *HybridServer) Handle(ctx context.Context, data []byte) []byte {
	if isBatchPayload(data) {
		return s.v2.Handle(ctx, data)
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		// Malformed JSON can't be version-sniffed; v1 and v2 render the
		// same ParseError error object with id null (v2 adds "jsonrpc", v1
		// adds "result":null), so either
		// engine is an equally valid choice here. v1 is picked for no
		// reason beyond determinism.
		return s.v1.Handle(ctx, data)
	}
	if env.hasJSONRPC && env.jsonrpc == Version {
		return s.v2.Handle(ctx, data)
	}
	return s.v1.Handle(ctx, data)
}
