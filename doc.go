// Package jsonrpc2 implements the core of a JSON-RPC 1.0 / 2.0 framework:
// request decoding, procedure dispatch, response encoding, and the matching
// client-side request builder and response decoder.
//
// The package does not open sockets or listen on ports. It exposes a narrow
// transport contract (ServerTransport / ClientTransport) and expects a
// concrete transport — HTTP, TCP, a Unix domain socket, a file descriptor
// pair, ZeroMQ, or simply an in-process pipe — to hand it request bytes and
// return response bytes.
//
// https://www.jsonrpc.org/specification
package jsonrpc2
