package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// specEntry is the on-the-wire shape of one procedure in a specification
// document. Params and Returns are deliberately raw bytes: a specification
// document spells out a procedure's parameter and return types as literal
// sample values (1, "somestring", true, 1.0, [], {"objectkey":"objectvalue"},
// null), and it is the JSON type of that literal — not any type-name string —
// that tells the codec which JsonType it declares. Whether Params itself
// decodes as an object or an array additionally selects BY_NAME vs
// BY_POSITION.
type specEntry struct {
	Name    string          `json:"name"`
	Params  json.RawMessage `json:"params"`
	Returns json.RawMessage `json:"returns,omitempty"`
}

// jsonTypeOfLiteral classifies a single JSON literal by its own syntactic
// shape: a quoted value is STRING, true/false is BOOLEAN, an object is
// OBJECT, an array is ARRAY, null is NULL, and a bare number is INTEGER
// unless it carries a decimal point or exponent, in which case it is REAL.
func jsonTypeOfLiteral(raw []byte) (JsonType, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	switch raw[0] {
	case '"':
		return TypeString, true
	case '{':
		return TypeObject, true
	case '[':
		return TypeArray, true
	case 't', 'f':
		return TypeBoolean, true
	case 'n':
		return TypeNull, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if isRealLiteral(raw) {
			return TypeReal, true
		}
		return TypeInteger, true
	default:
		return 0, false
	}
}

// isRealLiteral reports whether a numeric literal's text carries a decimal
// point or exponent, the only thing distinguishing a REAL sample from an
// INTEGER one once both have been parsed to the same underlying float.
func isRealLiteral(raw []byte) bool {
	for _, b := range raw {
		if b == '.' || b == 'e' || b == 'E' {
			return true
		}
	}
	return false
}

// isNullLiteral reports whether raw is exactly the JSON null literal.
func isNullLiteral(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// DecodeSpecification parses a specification document into descriptors: a
// procedure whose "returns" key is present (including explicit null) is a
// METHOD, with its return type read off the literal's own JSON shape;
// otherwise it is a NOTIFICATION. An object-shaped "params" is BY_NAME and
// each field's literal value supplies that parameter's type; an array-shaped
// one is BY_POSITION; null or absent yields an empty parameter list.
// Duplicate procedure names are rejected, as is any entry missing a name.
func DecodeSpecification(data []byte) ([]*ProcedureDescriptor, error) {
	var entries []specEntry
	if err := valueJSON.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("jsonrpc2: decoding specification document: %w", err)
	}
	// An explicit "returns": null can reach specEntry as an empty
	// RawMessage, the same as an absent key, so key presence is read from a
	// second, map-shaped decode of the same document.
	var keysets []map[string]json.RawMessage
	if err := valueJSON.Unmarshal(data, &keysets); err != nil {
		return nil, fmt.Errorf("jsonrpc2: decoding specification document: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]*ProcedureDescriptor, 0, len(entries))
	for i, e := range entries {
		if _, present := keysets[i]["returns"]; present && len(e.Returns) == 0 {
			e.Returns = json.RawMessage("null")
		}
		if e.Name == "" {
			return nil, fmt.Errorf("jsonrpc2: specification entry missing name")
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("jsonrpc2: specification declares %q more than once", e.Name)
		}
		seen[e.Name] = struct{}{}

		style, params, err := decodeSpecParams(e.Params)
		if err != nil {
			return nil, fmt.Errorf("jsonrpc2: procedure %q: %w", e.Name, err)
		}

		if len(e.Returns) == 0 {
			d, err := NewNotificationDescriptor(e.Name, style, params)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
			continue
		}

		returnType, ok := jsonTypeOfLiteral(e.Returns)
		if !ok {
			return nil, fmt.Errorf("jsonrpc2: procedure %q: unreadable returns literal %q", e.Name, e.Returns)
		}
		d, err := NewMethodDescriptor(e.Name, style, params, returnType)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// decodeSpecParams sniffs the shape of a procedure's "params" literal and
// reads each declared parameter's type off its sample value.
func decodeSpecParams(raw json.RawMessage) (ParamStyle, []Param, error) {
	if len(raw) == 0 || isNullLiteral(raw) {
		return ByName, nil, nil
	}

	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '{':
		var fields map[string]json.RawMessage
		if err := valueJSON.Unmarshal(raw, &fields); err != nil {
			return 0, nil, fmt.Errorf("decoding named params: %w", err)
		}
		params := make([]Param, 0, len(fields))
		for name, lit := range fields {
			t, ok := jsonTypeOfLiteral(lit)
			if !ok {
				return 0, nil, fmt.Errorf("unreadable type literal %q for param %q", lit, name)
			}
			params = append(params, Param{Name: name, Type: t})
		}
		return ByName, params, nil

	case len(trimmed) > 0 && trimmed[0] == '[':
		var elems []json.RawMessage
		if err := valueJSON.Unmarshal(raw, &elems); err != nil {
			return 0, nil, fmt.Errorf("decoding positional params: %w", err)
		}
		params := make([]Param, len(elems))
		for i, lit := range elems {
			t, ok := jsonTypeOfLiteral(lit)
			if !ok {
				return 0, nil, fmt.Errorf("unreadable type literal %q at position %d", lit, i)
			}
			params[i] = Param{Type: t}
		}
		return ByPosition, params, nil

	default:
		return 0, nil, fmt.Errorf("params must be a JSON object, array, or null")
	}
}

// canonicalLiteral renders t as the fixed sample value a specification
// document uses to signal that type on the wire.
func canonicalLiteral(t JsonType) Value {
	switch t {
	case TypeString:
		return String("somestring")
	case TypeBoolean:
		return Bool(true)
	case TypeInteger:
		return Int(1)
	case TypeReal:
		return Real(1.0)
	case TypeObject:
		obj, _ := NewObject([]string{"objectkey"}, map[string]Value{"objectkey": String("objectvalue")})
		return obj
	case TypeArray:
		return Array()
	default:
		return Null
	}
}

// EncodeSpecification renders descriptors back to the canonical
// specification document shape: each declared parameter and return type is
// spelled out as its canonical literal sample value, not a type name, and an
// empty parameter list is written as null rather than {} or [].
func EncodeSpecification(descriptors []*ProcedureDescriptor) ([]byte, error) {
	entries := make([]specEntry, len(descriptors))
	for i, d := range descriptors {
		e := specEntry{Name: d.Name}

		paramsValue := Null
		if len(d.Params) > 0 {
			switch d.ParamStyle {
			case ByName:
				keys := make([]string, len(d.Params))
				values := make(map[string]Value, len(d.Params))
				for j, p := range d.Params {
					keys[j] = p.Name
					values[p.Name] = canonicalLiteral(p.Type)
				}
				obj, err := NewObject(keys, values)
				if err != nil {
					return nil, err
				}
				paramsValue = obj
			case ByPosition:
				vs := make([]Value, len(d.Params))
				for j, p := range d.Params {
					vs[j] = canonicalLiteral(p.Type)
				}
				paramsValue = Array(vs...)
			}
		}
		raw, err := EncodeValue(paramsValue)
		if err != nil {
			return nil, err
		}
		e.Params = raw

		if d.HasReturnType() {
			raw, err := EncodeValue(canonicalLiteral(d.ReturnType))
			if err != nil {
				return nil, err
			}
			e.Returns = raw
		}
		entries[i] = e
	}
	return valueJSON.Marshal(entries)
}
