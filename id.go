package jsonrpc2

import "strconv"

// idTag discriminates the four states an ID can be in. Absent must never be
// conflated with null: a v2 notification omits the id field entirely, while
// a v1 notification carries it as an explicit null.
type idTag int

const (
	idAbsent idTag = iota
	idNull
	idNumber
	idString
)

// ID is the sum type of (absent | null | integer | string). The zero value
// of ID is the absent id.
type ID struct {
	tag    idTag
	number int64
	name   string
}

// NoID is the absent id: a v2 notification-intent request carries no id
// field at all.
var NoID = ID{tag: idAbsent}

// NullID is the explicit JSON null id used by v1 notifications and by
// protocol-error responses that have no request to echo.
var NullID = ID{tag: idNull}

// NumberID builds an integer id.
func NumberID(n int64) ID { return ID{tag: idNumber, number: n} }

// StrID builds a string id.
func StrID(s string) ID { return ID{tag: idString, name: s} }

// IsAbsent reports whether the id field was missing entirely (v2 only).
func (id ID) IsAbsent() bool { return id.tag == idAbsent }

// IsNull reports whether the id is the JSON literal null.
func (id ID) IsNull() bool { return id.tag == idNull }

// IsNumber reports whether the id carries an integer, returning it.
func (id ID) IsNumber() (int64, bool) { return id.number, id.tag == idNumber }

// IsString reports whether the id carries a string, returning it.
func (id ID) IsString() (string, bool) { return id.name, id.tag == idString }

// IsNotificationIntent reports whether this id marks a notification: absent
// (v2) or null (v1/v2) — a request is method-intent iff its id is present
// and non-null.
func (id ID) IsNotificationIntent() bool {
	return id.tag == idAbsent || id.tag == idNull
}

// Equal reports bit-exact equality: differently-typed ids never compare
// equal even if the textual representation coincides (e.g. NumberID(1) !=
// StrID("1")).
func (id ID) Equal(other ID) bool {
	if id.tag != other.tag {
		return false
	}
	switch id.tag {
	case idNumber:
		return id.number == other.number
	case idString:
		return id.name == other.name
	default:
		return true
	}
}

// String renders a debug-friendly, non-ambiguous representation: string ids
// are quoted, number ids are preceded by '#', absent/null render as such.
func (id ID) String() string {
	switch id.tag {
	case idAbsent:
		return "<absent>"
	case idNull:
		return "null"
	case idNumber:
		return "#" + strconv.FormatInt(id.number, 10)
	case idString:
		return strconv.Quote(id.name)
	default:
		return "<invalid id>"
	}
}

// idFromValue converts a decoded Value into an ID. ok is false if the value
// is not a valid id shape (int, string, or null).
func idFromValue(v Value, present bool) (ID, bool) {
	if !present {
		return NoID, true
	}
	if v.IsNull() {
		return NullID, true
	}
	if n, ok := v.AsInt(); ok {
		return NumberID(n), true
	}
	if s, ok := v.AsString(); ok {
		return StrID(s), true
	}
	return ID{}, false
}

// idToValue converts an ID back into a Value suitable for wire encoding.
// Absent ids have no wire representation; callers must check IsAbsent
// before calling this (v2 omits the field entirely for notifications).
func idToValue(id ID) Value {
	switch id.tag {
	case idNumber:
		return Int(id.number)
	case idString:
		return String(id.name)
	default:
		return Null
	}
}
