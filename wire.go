package jsonrpc2

import (
	"encoding/json"
	"fmt"

	"github.com/francoispqt/gojay"
)

// Version is the literal value of the "jsonrpc" field in a v2 message.
const Version = "2.0"

// wireEnvelope decodes the union of every field that can appear in either a
// v1 or v2 request/response/notification, deferring params/id/result/error
// to raw bytes until the engine has worked out which shape it is looking at
// — decode into one combined struct, then branch on which fields actually
// showed up.
type wireEnvelope struct {
	hasJSONRPC bool
	jsonrpc    string

	hasID bool
	idRaw gojay.EmbeddedJSON

	hasMethod bool
	method    string

	hasParams bool
	paramsRaw gojay.EmbeddedJSON

	hasResult bool
	resultRaw gojay.EmbeddedJSON

	// errorKeyPresent records that an "error" key appeared at all, whether
	// its value was an object or JSON null. hasError records the stronger
	// fact that it decoded to an actual error object. A v1 response always
	// carries both "result" and "error", with the failing one set to null;
	// distinguishing "key present but null" from "key absent" is what lets
	// client.go tell a well-formed v1 success reply from a malformed one.
	errorKeyPresent bool

	hasError   bool
	errorCode  int64
	errorMsg   string
	hasErrData bool
	errorData  gojay.EmbeddedJSON
}

// NKeys implements gojay.UnmarshalerJSONObject; 0 lets gojay visit every key
// present rather than stopping early.
func (e *wireEnvelope) NKeys() int { return 0 }

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject.
func (e *wireEnvelope) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "jsonrpc":
		e.hasJSONRPC = true
		return dec.String(&e.jsonrpc)
	case "id":
		e.hasID = true
		return dec.EmbeddedJSON(&e.idRaw)
	case "method":
		e.hasMethod = true
		return dec.String(&e.method)
	case "params":
		e.hasParams = true
		return dec.EmbeddedJSON(&e.paramsRaw)
	case "result":
		e.hasResult = true
		return dec.EmbeddedJSON(&e.resultRaw)
	case "error":
		e.errorKeyPresent = true
		// hasError is set from inside wireErrorObject, not here: a v1
		// success response carries "error":null, and gojay's Object
		// decode skips invoking the nested unmarshaler for a null value,
		// so hasError must only become true when an actual error object
		// was present to decode.
		return dec.Object(&wireErrorObject{e})
	}
	return nil
}

// wireErrorObject adapts the nested "error" object to gojay's per-key
// callback, writing straight back into the parent envelope.
type wireErrorObject struct {
	e *wireEnvelope
}

func (w *wireErrorObject) NKeys() int { return 0 }

func (w *wireErrorObject) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	w.e.hasError = true
	switch key {
	case "code":
		return dec.Int64(&w.e.errorCode)
	case "message":
		return dec.String(&w.e.errorMsg)
	case "data":
		w.e.hasErrData = true
		return dec.EmbeddedJSON(&w.e.errorData)
	}
	return nil
}

func (w *wireErrorObject) IsNil() bool { return w == nil }

// decodeEnvelope parses a single JSON text (object) into a wireEnvelope.
// It does not attempt to interpret array (batch) payloads — callers detect
// the array case and route to batch handling before reaching here.
func decodeEnvelope(data []byte) (*wireEnvelope, error) {
	env := &wireEnvelope{}
	if err := gojay.UnmarshalJSONObject(data, env); err != nil {
		return nil, fmt.Errorf("jsonrpc2: decoding envelope: %w", err)
	}
	return env, nil
}

// id converts the deferred id bytes into an ID, given whether the field was
// present at all.
func (e *wireEnvelope) id() (ID, bool) {
	if !e.hasID {
		return NoID, true
	}
	v, err := DecodeValue(e.idRaw)
	if err != nil {
		return ID{}, false
	}
	return idFromValue(v, true)
}

// params converts the deferred params bytes into a Value, or Null if the
// field was absent.
func (e *wireEnvelope) params() (Value, error) {
	if !e.hasParams {
		return Null, nil
	}
	return DecodeValue(e.paramsRaw)
}

// result converts the deferred result bytes into a Value.
func (e *wireEnvelope) result() (Value, error) {
	if !e.hasResult {
		return Null, nil
	}
	return DecodeValue(e.resultRaw)
}

// wireError reconstructs an *Error from the envelope's decoded error fields.
func (e *wireEnvelope) wireError() (*Error, error) {
	if !e.hasError {
		return nil, nil
	}
	rpcErr := &Error{Code: Code(e.errorCode), Message: e.errorMsg}
	if e.hasErrData {
		v, err := DecodeValue(e.errorData)
		if err != nil {
			return nil, err
		}
		rpcErr.Data = &v
	}
	return rpcErr, nil
}

// --- encoding ---
//
// Responses/requests are composed directly as JSON objects rather than
// through gojay's MarshalerJSONObject, because the set of fields present
// differs per protocol version and per success/failure outcome in ways a
// single fixed struct tag scheme cannot express cleanly (v1 always writes
// both result and error; v2 writes exactly one; a notification build omits
// id entirely). encodeObject is the one shared helper all of the v1/v2/
// batch/client encoders route through.

type wireField struct {
	key     string
	value   Value
	present bool
}

// encodeObject renders a set of (key, value) fields as a JSON object,
// skipping any field marked !present. Keys come out in sorted order (see
// EncodeValue), not in the order the fields are listed. It is the encode-side twin of
// wireEnvelope: a tiny, explicit composer instead of a generalized struct
// marshaler, because every caller already knows exactly which fields it
// wants on the wire.
func encodeObject(fields ...wireField) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	values := make(map[string]Value, len(fields))
	for _, f := range fields {
		if !f.present {
			continue
		}
		keys = append(keys, f.key)
		values[f.key] = f.value
	}
	v, err := NewObject(keys, values)
	if err != nil {
		return nil, err
	}
	return EncodeValue(v)
}

// isBatchPayload reports whether data's first non-whitespace byte is '[',
// the sole signal used to route a payload to batch processing instead of
// single-message processing.
func isBatchPayload(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// splitBatchArray decodes a top-level JSON array into its raw element
// texts, without interpreting each element's shape yet — the same
// defer-and-branch idiom wireEnvelope uses for individual fields. This one
// case goes through json-iterator rather than gojay: the batch array's
// length is runtime-variable, which is json-iterator's domain in this
// package (see value_json.go), whereas gojay is reserved for the
// fixed-shape envelope fields above.
func splitBatchArray(data []byte) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := valueJSON.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("jsonrpc2: decoding batch array: %w", err)
	}
	return raw, nil
}

// encodeResponseV2 renders a v2 response envelope. Exactly one of result /
// rpcErr is present on the wire; id is always written, and an absent id
// (a notification-intent request answered with an error) is written as null.
func encodeResponseV2(id ID, result Value, rpcErr *Error) ([]byte, error) {
	fields := []wireField{
		{key: "jsonrpc", value: String(Version), present: true},
		{key: "id", value: idToValue(id), present: true},
		{key: "result", value: result, present: rpcErr == nil},
	}
	if rpcErr != nil {
		fields = append(fields, errorObjectField("error", rpcErr))
	}
	return encodeObject(fields...)
}

// encodeResponseV1 renders a v1 response envelope, which always carries both
// result and error — the failing one set to null. On failure, error is the
// same {code, message[, data]} object v2 uses, not a bare message string:
// the numeric code is wire-visible and callers rely on it.
func encodeResponseV1(id ID, result Value, rpcErr *Error) ([]byte, error) {
	errField := wireField{key: "error", value: Null, present: true}
	if rpcErr != nil {
		errField = errorObjectField("error", rpcErr)
	}
	return encodeObject(
		wireField{key: "result", value: result, present: rpcErr == nil},
		wireField{key: "result", value: Null, present: rpcErr != nil},
		errField,
		wireField{key: "id", value: idToValue(id), present: true},
	)
}

// encodeRequestV2 renders a v2 request/notification. id is omitted entirely
// for a notification: absence, not null, is what marks it as one.
func encodeRequestV2(id ID, method string, params Value, hasParams bool) ([]byte, error) {
	return encodeObject(
		wireField{key: "jsonrpc", value: String(Version), present: true},
		wireField{key: "method", value: String(method), present: true},
		wireField{key: "params", value: params, present: hasParams},
		wireField{key: "id", value: idToValue(id), present: !id.IsAbsent()},
	)
}

// encodeRequestV1 renders a v1 request/notification: no "jsonrpc" field,
// params always written, id explicitly null for a notification. params is
// written as given: Client substitutes an empty array when the caller
// supplies none, but a non-array params is not converted to an array.
func encodeRequestV1(id ID, method string, params Value) ([]byte, error) {
	return encodeObject(
		wireField{key: "method", value: String(method), present: true},
		wireField{key: "params", value: params, present: true},
		wireField{key: "id", value: idToValue(id), present: true},
	)
}

// errorObjectField renders err as the {code, message[, data]} object both
// protocol versions use on the wire. Callers decide whether the field
// belongs in the response at all (v1 always includes "error", set to null
// on success instead of omitted).
func errorObjectField(key string, err *Error) wireField {
	fields := []string{"code", "message"}
	values := map[string]Value{
		"code":    Int(int64(err.Code)),
		"message": String(err.Message),
	}
	if err.Data != nil {
		fields = append(fields, "data")
		values["data"] = *err.Data
	}
	obj, _ := NewObject(fields, values)
	return wireField{key: key, value: obj, present: true}
}
