package jsonrpc2

import (
	"bytes"
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// handleBatch decodes the top-level array, processes every element
// independently in order, drops notification results, and omits the output
// altogether if nothing survives. A top-level empty array is its own special
// case — a single InvalidRequest object, not an empty array back.
//
// Per-entry encoding failures don't abort the batch — every other entry
// still gets its response — but they're worth a single combined log line
// rather than silently disappearing one by one, hence multierr.Append
// accumulating them across the loop.
func (s *ServerV2) handleBatch(ctx context.Context, data []byte) []byte {
	elements, err := splitBatchArray(data)
	if err != nil {
		b, _ := encodeResponseV2(NullID, Value{}, NewError(ParseError))
		return b
	}
	if len(elements) == 0 {
		b, _ := encodeResponseV2(NullID, Value{}, NewError(InvalidRequest))
		return b
	}

	var responses [][]byte
	var errs error
	for _, el := range elements {
		resp, owed, encErr := s.process(ctx, el)
		errs = multierr.Append(errs, encErr)
		if owed {
			responses = append(responses, resp)
		}
	}
	if errs != nil {
		s.logger.Error("encoding batch responses", zap.Error(errs))
	}
	if len(responses) == 0 {
		return nil
	}
	return joinBatch(responses)
}

// joinBatch concatenates already-encoded response objects into a single
// JSON array, preserving the per-entry order established by handleBatch.
func joinBatch(responses [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range responses {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
