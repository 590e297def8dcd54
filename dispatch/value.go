package dispatch

import (
	"strconv"
	"strings"
)

// Kind enumerates the scalar and composite value kinds a flag or
// positional argument can declare.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindEnum
	KindList
)

// String returns the human-readable name of the kind, as used in help
// output and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// ValueType is a closed description of a declared value type. Enum
// carries its allowed literals, List carries its element type. The
// zero value is the string type.
type ValueType struct {
	Kind Kind
	Elem *ValueType // element type when Kind == KindList
	Enum []string   // allowed literals when Kind == KindEnum
}

// Type constructors. These are the only ways a ValueType should be
// built; they keep the recursive cases well-formed.
var (
	TypeString = ValueType{Kind: KindString}
	TypeBool   = ValueType{Kind: KindBool}
	TypeInt    = ValueType{Kind: KindInt}
	TypeFloat  = ValueType{Kind: KindFloat}
)

// TypeEnum declares an enum type over the given literals.
func TypeEnum(values ...string) ValueType {
	return ValueType{Kind: KindEnum, Enum: values}
}

// TypeList declares a list type over the given element type.
func TypeList(elem ValueType) ValueType {
	return ValueType{Kind: KindList, Elem: &elem}
}

// String renders the type the way help output spells it, e.g.
// "integer", "enum(debug|info)", "list(string)".
func (t ValueType) String() string {
	switch t.Kind {
	case KindEnum:
		return "enum(" + strings.Join(t.Enum, "|") + ")"
	case KindList:
		if t.Elem == nil {
			return "list"
		}
		return "list(" + t.Elem.String() + ")"
	default:
		return t.Kind.String()
	}
}

// Value is a typed value produced by coercion. Exactly the field
// matching Type.Kind is meaningful; enum values live in Str.
type Value struct {
	Type  ValueType
	Str   string
	Bool  bool
	Int   int
	Float float64
	List  []Value
}

// Typed constructors, used for declaring defaults.

func StringValue(s string) Value { return Value{Type: TypeString, Str: s} }
func BoolValue(b bool) Value     { return Value{Type: TypeBool, Bool: b} }
func IntValue(i int) Value       { return Value{Type: TypeInt, Int: i} }
func FloatValue(f float64) Value { return Value{Type: TypeFloat, Float: f} }

func EnumValue(t ValueType, s string) Value { return Value{Type: t, Str: s} }

// ListValue builds a list value from already-coerced elements.
func ListValue(t ValueType, elems ...Value) Value {
	return Value{Type: t, List: elems}
}

// Strings returns the list elements as raw strings. It is a
// convenience for list(string) values.
func (v Value) Strings() []string {
	out := make([]string, 0, len(v.List))
	for _, e := range v.List {
		out = append(out, e.Str)
	}
	return out
}

// Coerce converts a raw token into a typed value and validates it.
// It is a pure function: errors always carry the offending raw token
// and the expected type. List types are not single-token coercions and
// are rejected here; the matcher coerces list elements one by one.
func Coerce(raw string, t ValueType) (Value, error) {
	switch t.Kind {
	case KindString:
		return Value{Type: t, Str: stripOuterQuotes(raw)}, nil

	case KindBool:
		switch raw {
		case "true":
			return Value{Type: t, Bool: true}, nil
		case "false":
			return Value{Type: t, Bool: false}, nil
		}
		return Value{}, newDiagnostic(ErrCoerce, "Invalid boolean '%s': expected true or false", raw)

	case KindInt:
		// strconv consumes the entire token; trailing garbage fails.
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, newDiagnostic(ErrCoerce, "Invalid integer '%s'", raw)
		}
		return Value{Type: t, Int: n}, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, newDiagnostic(ErrCoerce, "Invalid float '%s'", raw)
		}
		return Value{Type: t, Float: f}, nil

	case KindEnum:
		for _, allowed := range t.Enum {
			if raw == allowed {
				return Value{Type: t, Str: raw}, nil
			}
		}
		return Value{}, newDiagnostic(ErrCoerce,
			"Invalid value '%s': expected one of %s", raw, strings.Join(t.Enum, ", "))

	case KindList:
		return Value{}, newDiagnostic(ErrCoerce,
			"Invalid value '%s': list types are coerced element-wise", raw)

	default:
		return Value{}, newDiagnostic(ErrCoerce, "Invalid value '%s': unknown type", raw)
	}
}

// stripOuterQuotes removes one pair of matching double quotes wrapping
// the whole token, if present.
func stripOuterQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
