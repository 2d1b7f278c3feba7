package jsonrpc2

import "context"

// ServerTransport is the narrow contract an engine needs from whatever
// carries bytes in from the wire: repeatedly hand it one request payload at
// a time, and let it decide how (or whether) to write back the response.
// HTTP framing, TCP length-prefixing, a Unix socket, or a file descriptor
// pair all implement this the same way; this package ships exactly one
// concrete implementation (transport_inprocess.go) since picking a
// production transport is left to the embedder.
type ServerTransport interface {
	// Serve runs until ctx is canceled or the transport is closed,
	// invoking handle once per incoming payload and writing back whatever
	// non-nil bytes it returns.
	Serve(ctx context.Context, handle func(ctx context.Context, request []byte) []byte) error
	Close() error
}

// ClientTransport is the narrow contract a Client needs to deliver request
// bytes and, for calls (not notifications), receive the matching response.
type ClientTransport interface {
	// Call sends data and waits for the single response payload that
	// answers it.
	Call(ctx context.Context, data []byte) ([]byte, error)
	// Send delivers data with no response expected, for notifications and
	// batches consisting entirely of notifications.
	Send(ctx context.Context, data []byte) error
	Close() error
}

// ClientConnectionHandler lets an embedder observe transport-level
// lifecycle events — useful for a long-lived connection where reconnects or
// unsolicited closes need to drive application logic, distinct from the
// per-call error a Client.ParseResponse already reports.
type ClientConnectionHandler interface {
	Disconnected(err error)
}
