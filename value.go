package jsonrpc2

import (
	"fmt"
	"sort"
)

// Kind tags the concrete shape held by a Value.
type Kind int

// The closed set of JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindArray
	KindObject
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// JsonType enumerates the scalar/structural types a procedure parameter or
// return value may declare. It is coarser than Kind in that an INTEGER
// declaration is also satisfied by a numeric Value carrying an integral
// REAL, and a REAL declaration by any number — see Value.Satisfies.
type JsonType int

// The closed set of declarable parameter/return types.
const (
	TypeString JsonType = iota
	TypeBoolean
	TypeInteger
	TypeReal
	TypeObject
	TypeArray
	TypeNull
)

// String implements fmt.Stringer.
func (t JsonType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	case TypeObject:
		return "OBJECT"
	case TypeArray:
		return "ARRAY"
	case TypeNull:
		return "NULL"
	default:
		return fmt.Sprintf("JsonType(%d)", int(t))
	}
}

// Value is the canonical tagged union used everywhere a JSON value crosses a
// component boundary in this package: {null, bool, integer, real, string,
// array, object}. Equality is structural; duplicate object keys are
// forbidden by construction (NewObject rejects them).
type Value struct {
	kind Kind

	boolVal   bool
	intVal    int64
	realVal   float64
	stringVal string
	arrayVal  []Value
	objectVal map[string]Value
	// objectKeys preserves the order values were inserted in, as reported
	// by ObjectKeys; EncodeValue does not use it and writes keys sorted.
	// Object key order carries no semantic weight of its own.
	objectKeys []string
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// Bool wraps a boolean as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Int wraps an integer as a Value.
func Int(n int64) Value { return Value{kind: KindInt, intVal: n} }

// Real wraps a floating point number as a Value.
func Real(f float64) Value { return Value{kind: KindReal, realVal: f} }

// String wraps a string as a Value.
func String(s string) Value { return Value{kind: KindString, stringVal: s} }

// Array wraps a slice of Values as a Value.
func Array(vs ...Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindArray, arrayVal: cp}
}

// NewObject builds an object Value from the supplied keys, recording their
// order for ObjectKeys (EncodeValue writes keys sorted regardless).
// Duplicate keys are rejected.
func NewObject(keys []string, values map[string]Value) (Value, error) {
	seen := make(map[string]struct{}, len(keys))
	ordered := make([]string, 0, len(keys))
	obj := make(map[string]Value, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return Value{}, fmt.Errorf("jsonrpc2: duplicate object key %q", k)
		}
		seen[k] = struct{}{}
		ordered = append(ordered, k)
		obj[k] = values[k]
	}
	return Value{kind: KindObject, objectVal: obj, objectKeys: ordered}, nil
}

// Object builds an object Value from a map, in sorted key order. Use
// NewObject when ObjectKeys should report a chosen order.
func Object(m map[string]Value) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	v, _ := NewObject(keys, m)
	return v
}

// Kind reports the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload and whether the value was a bool.
func (v Value) AsBool() (bool, bool) { return v.boolVal, v.kind == KindBool }

// AsInt returns the integer payload and whether the value is integral
// (either KindInt, or KindReal holding an integral number).
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.intVal, true
	case KindReal:
		if v.realVal == float64(int64(v.realVal)) {
			return int64(v.realVal), true
		}
	}
	return 0, false
}

// AsReal returns the numeric payload and whether the value is numeric at all.
func (v Value) AsReal() (float64, bool) {
	switch v.kind {
	case KindReal:
		return v.realVal, true
	case KindInt:
		return float64(v.intVal), true
	}
	return 0, false
}

// AsString returns the string payload and whether the value was a string.
func (v Value) AsString() (string, bool) { return v.stringVal, v.kind == KindString }

// AsArray returns the array payload and whether the value was an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arrayVal, true
}

// ObjectKeys returns the object's keys in insertion order, or nil if the
// value is not an object.
func (v Value) ObjectKeys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.objectKeys
}

// Field looks up a key in an object value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.objectVal[key]
	return f, ok
}

// Len returns the number of elements in an array value, or -1 if the value
// is not an array.
func (v Value) Len() int {
	if v.kind != KindArray {
		return -1
	}
	return len(v.arrayVal)
}

// Satisfies reports whether v conforms to the declared JsonType, applying
// the coercion rule that INTEGER does not accept non-integral REALs while
// REAL accepts INTEGER. This is the sole predicate descriptor validation
// uses, and it always terminates on any input.
func (v Value) Satisfies(t JsonType) bool {
	switch t {
	case TypeString:
		return v.kind == KindString
	case TypeBoolean:
		return v.kind == KindBool
	case TypeInteger:
		_, ok := v.AsInt()
		return ok
	case TypeReal:
		_, ok := v.AsReal()
		return ok
	case TypeObject:
		return v.kind == KindObject
	case TypeArray:
		return v.kind == KindArray
	case TypeNull:
		return v.kind == KindNull
	default:
		return false
	}
}

// Equal reports structural equality between two values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		// an integral real and an equal-valued int are still considered
		// equal where the protocol treats them as interchangeable numbers.
		if ai, ok := a.AsInt(); ok {
			if bi, ok2 := b.AsInt(); ok2 {
				return ai == bi
			}
		}
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intVal == b.intVal
	case KindReal:
		return a.realVal == b.realVal
	case KindString:
		return a.stringVal == b.stringVal
	case KindArray:
		if len(a.arrayVal) != len(b.arrayVal) {
			return false
		}
		for i := range a.arrayVal {
			if !Equal(a.arrayVal[i], b.arrayVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.objectVal) != len(b.objectVal) {
			return false
		}
		for k, av := range a.objectVal {
			bv, ok := b.objectVal[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
