package jsonrpc2

import (
	"fmt"

	"go.uber.org/atomic"
)

// ProtocolVersion selects which wire shape a Client (or server engine)
// speaks. HybridServer is the only component that doesn't fix one.
type ProtocolVersion int

const (
	// V1 speaks JSON-RPC 1.0.
	V1 ProtocolVersion = iota
	// V2 speaks JSON-RPC 2.0.
	V2
)

// Client is the request-building, response-parsing half of the protocol. It
// owns the monotonically increasing id counter a caller needs to correlate
// requests with responses; id 0 is never assigned to an outstanding
// request, so the counter always pre-increments.
type Client struct {
	version ProtocolVersion
	counter atomic.Int64
}

// NewClient builds a client speaking the given protocol version, with its
// id counter freshly reset.
func NewClient(version ProtocolVersion) *Client {
	return &Client{version: version}
}

// ResetID rewinds the id counter, so the next call again receives id 1.
func (c *Client) ResetID() {
	c.counter.Store(0)
}

func (c *Client) nextID() ID {
	return NumberID(c.counter.Inc())
}

// BuildRequest composes a method call expecting a response, returning the
// id assigned (for correlating the eventual response) and the wire bytes.
func (c *Client) BuildRequest(method string, params Value, hasParams bool) (ID, []byte, error) {
	id := c.nextID()
	b, err := c.encode(id, method, params, hasParams)
	return id, b, err
}

// BuildNotification composes a notification: id is absent on v2, explicit
// null on v1, and no response is expected either way.
func (c *Client) BuildNotification(method string, params Value, hasParams bool) ([]byte, error) {
	return c.encode(NullID, method, params, hasParams)
}

func (c *Client) encode(id ID, method string, params Value, hasParams bool) ([]byte, error) {
	switch c.version {
	case V2:
		reqID := id
		if id.IsNull() {
			reqID = NoID
		}
		return encodeRequestV2(reqID, method, params, hasParams)
	case V1:
		if !hasParams {
			params = Array()
		}
		return encodeRequestV1(id, method, params)
	default:
		return nil, fmt.Errorf("jsonrpc2: unknown protocol version %d", c.version)
	}
}

// BatchEntry is one call queued into BuildBatch.
type BatchEntry struct {
	Method    string
	Params    Value
	HasParams bool
	// Notification, when true, builds a notification entry: no id is
	// assigned and ParseBatchResponse will have nothing to match it to.
	Notification bool
}

// BuildBatch composes a v2 batch request; v1 has no batch form. The
// returned ids slice is parallel to entries, with NoID standing in for
// each notification's position.
func (c *Client) BuildBatch(entries []BatchEntry) ([]byte, []ID, error) {
	if c.version != V2 {
		return nil, nil, fmt.Errorf("jsonrpc2: batch requests require protocol version V2")
	}

	raw := make([][]byte, len(entries))
	ids := make([]ID, len(entries))
	for i, e := range entries {
		if e.Notification {
			b, err := encodeRequestV2(NoID, e.Method, e.Params, e.HasParams)
			if err != nil {
				return nil, nil, err
			}
			raw[i] = b
			ids[i] = NoID
			continue
		}
		id := c.nextID()
		b, err := encodeRequestV2(id, e.Method, e.Params, e.HasParams)
		if err != nil {
			return nil, nil, err
		}
		raw[i] = b
		ids[i] = id
	}
	return joinBatch(raw), ids, nil
}

// ParseResponse decodes a single response and reports its outcome: exactly
// one of (result, rpcErr) is meaningful, discriminated by rpcErr != nil. A
// response that doesn't carry the fields this protocol version requires is
// reported as ClientInvalidResponse, not as a parse failure — the bytes were
// valid JSON, just not a valid response.
func (c *Client) ParseResponse(data []byte) (id ID, result Value, rpcErr *Error, err error) {
	env, decErr := decodeEnvelope(data)
	if decErr != nil {
		return ID{}, Value{}, nil, Errorf(ParseError, "malformed response body: %s", decErr.Error())
	}

	id, ok := env.id()
	if !ok {
		return ID{}, Value{}, nil, NewError(ClientInvalidResponse)
	}

	wireErr, werr := env.wireError()
	if werr != nil {
		return id, Value{}, nil, NewError(ClientInvalidResponse)
	}

	switch c.version {
	case V2:
		if !env.hasJSONRPC || env.jsonrpc != Version {
			return id, Value{}, nil, NewError(ClientInvalidResponse)
		}
		switch {
		case env.hasError:
			return id, Value{}, wireErr, nil
		case env.hasResult:
			res, rerr := env.result()
			if rerr != nil {
				return id, Value{}, nil, NewError(ClientInvalidResponse)
			}
			return id, res, nil, nil
		default:
			return id, Value{}, nil, NewError(ClientInvalidResponse)
		}
	case V1:
		if !env.hasResult || !env.errorKeyPresent {
			return id, Value{}, nil, NewError(ClientInvalidResponse)
		}
		if wireErr != nil {
			return id, Value{}, wireErr, nil
		}
		res, rerr := env.result()
		if rerr != nil {
			return id, Value{}, nil, NewError(ClientInvalidResponse)
		}
		return id, res, nil, nil
	default:
		return id, Value{}, nil, fmt.Errorf("jsonrpc2: unknown protocol version %d", c.version)
	}
}

// ParseBatchResponse decodes a v2 batch response array into its individual
// entries, in wire order; an empty array is reported back as zero entries,
// not an error.
func (c *Client) ParseBatchResponse(data []byte) ([]BatchResult, error) {
	if c.version != V2 {
		return nil, fmt.Errorf("jsonrpc2: batch responses require protocol version V2")
	}
	elements, err := splitBatchArray(data)
	if err != nil {
		return nil, Errorf(ParseError, "malformed batch response body: %s", err.Error())
	}

	out := make([]BatchResult, len(elements))
	for i, el := range elements {
		id, result, rpcErr, perr := c.ParseResponse(el)
		out[i] = BatchResult{ID: id, Result: result, Err: rpcErr, ParseErr: perr}
	}
	return out, nil
}

// BatchResult is one decoded entry from a batch response.
type BatchResult struct {
	ID       ID
	Result   Value
	Err      *Error
	ParseErr error
}
