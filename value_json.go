package jsonrpc2

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// valueJSON is the json-iterator configuration used to move between raw
// wire bytes and Value trees. The fixed-shape request/response envelope
// (wireEnvelope) is decoded with gojay (see wire.go); Value trees are not
// fixed — an incoming `params` or a specification-document literal can be
// any JSON shape — so json-iterator's interface{}-based decode is the better
// fit here. All encoding, envelopes included, goes through EncodeValue.
var valueJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeValue parses raw JSON bytes into a Value.
func DecodeValue(data []byte) (Value, error) {
	var raw interface{}
	if err := valueJSON.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("jsonrpc2: decoding value: %w", err)
	}
	return fromInterface(raw), nil
}

// EncodeValue renders a Value back to raw JSON bytes. Object keys are
// written in sorted order; insertion order is not kept on the wire.
func EncodeValue(v Value) ([]byte, error) {
	return valueJSON.Marshal(toInterface(v))
}

func fromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t))
		}
		return Real(t)
	case []interface{}:
		vs := make([]Value, len(t))
		for i, e := range t {
			vs[i] = fromInterface(e)
		}
		return Array(vs...)
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		values := make(map[string]Value, len(t))
		for _, k := range keys {
			values[k] = fromInterface(t[k])
		}
		v, _ := NewObject(keys, values)
		return v
	default:
		return Null
	}
}

func toInterface(v Value) interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindInt:
		n, _ := v.AsInt()
		return n
	case KindReal:
		f, _ := v.AsReal()
		return f
	case KindString:
		s, _ := v.AsString()
		return s
	case KindArray:
		arr, _ := v.AsArray()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = toInterface(e)
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.objectVal))
		for _, k := range v.objectKeys {
			out[k] = toInterface(v.objectVal[k])
		}
		return out
	default:
		return nil
	}
}
