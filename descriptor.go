package jsonrpc2

import "fmt"

// ProcedureKind distinguishes a method, which expects a response, from a
// notification, which must not produce one.
type ProcedureKind int

const (
	// Method is a procedure that returns a response.
	Method ProcedureKind = iota
	// Notification is a procedure that must never produce a response.
	Notification
)

// String implements fmt.Stringer.
func (k ProcedureKind) String() string {
	if k == Notification {
		return "NOTIFICATION"
	}
	return "METHOD"
}

// ParamStyle selects whether a procedure's parameters are passed as a named
// object or a positional array.
type ParamStyle int

const (
	// ByName expects params as a JSON object.
	ByName ParamStyle = iota
	// ByPosition expects params as a JSON array, positionally matched
	// against the declared parameter list.
	ByPosition
)

// Param is one declared parameter: a name (synthetic for ByPosition, e.g.
// "param01") paired with its required JsonType.
type Param struct {
	Name string
	Type JsonType
}

// syntheticParamName formats the positional placeholder names required
// for BY_POSITION descriptors: "param01", "param02", ...
func syntheticParamName(i int) string {
	return fmt.Sprintf("param%02d", i+1)
}

// ProcedureDescriptor is the typed, versioned declaration of a named
// procedure.
type ProcedureDescriptor struct {
	Name       string
	Kind       ProcedureKind
	ParamStyle ParamStyle
	Params     []Param
	// ReturnType is present iff Kind == Method; zero value otherwise.
	ReturnType    JsonType
	hasReturnType bool
}

// NewMethodDescriptor builds a METHOD descriptor. params must have unique
// names (ByName) or are renumbered to the synthetic positional scheme
// (ByPosition).
func NewMethodDescriptor(name string, style ParamStyle, params []Param, returnType JsonType) (*ProcedureDescriptor, error) {
	d, err := newDescriptor(name, Method, style, params)
	if err != nil {
		return nil, err
	}
	d.ReturnType = returnType
	d.hasReturnType = true
	return d, nil
}

// NewNotificationDescriptor builds a NOTIFICATION descriptor. A notification
// never carries a return type.
func NewNotificationDescriptor(name string, style ParamStyle, params []Param) (*ProcedureDescriptor, error) {
	return newDescriptor(name, Notification, style, params)
}

func newDescriptor(name string, kind ProcedureKind, style ParamStyle, params []Param) (*ProcedureDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("jsonrpc2: procedure name must not be empty")
	}

	out := make([]Param, len(params))
	seen := make(map[string]struct{}, len(params))
	for i, p := range params {
		pname := p.Name
		if style == ByPosition {
			pname = syntheticParamName(i)
		}
		if _, dup := seen[pname]; dup {
			return nil, fmt.Errorf("jsonrpc2: duplicate parameter name %q in procedure %q", pname, name)
		}
		seen[pname] = struct{}{}
		out[i] = Param{Name: pname, Type: p.Type}
	}

	return &ProcedureDescriptor{
		Name:       name,
		Kind:       kind,
		ParamStyle: style,
		Params:     out,
	}, nil
}

// HasReturnType reports whether the descriptor carries a return type
// (always true for Method, always false for Notification).
func (d *ProcedureDescriptor) HasReturnType() bool { return d.hasReturnType }

// Validate checks an incoming params Value against the descriptor's
// declared parameter list. It never mutates params and always terminates.
func Validate(d *ProcedureDescriptor, params Value) bool {
	if params.IsNull() {
		// null params is equivalent to an empty object/array.
		params = emptyParamsFor(d.ParamStyle)
	}

	switch d.ParamStyle {
	case ByName:
		if params.Kind() != KindObject {
			return false
		}
		for _, p := range d.Params {
			v, ok := params.Field(p.Name)
			if !ok || !v.Satisfies(p.Type) {
				return false
			}
		}
		return true

	case ByPosition:
		if params.Kind() != KindArray {
			return false
		}
		arr, _ := params.AsArray()
		if len(arr) != len(d.Params) {
			return false
		}
		for i, p := range d.Params {
			if !arr[i].Satisfies(p.Type) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func emptyParamsFor(style ParamStyle) Value {
	if style == ByPosition {
		return Array()
	}
	v, _ := NewObject(nil, nil)
	return v
}
