// Package runtime defines the interpreter's runtime Value and scope
// chain. It depends only on internal/types, never on internal/interp or
// internal/natives — this keeps native function implementations (which
// import runtime but must not import the higher-level interpreter) and
// the interpreter itself (which imports both) free of import cycles,
// the same split the teacher uses between its runtime/builtins/interp
// packages.
package runtime

import (
	"strconv"

	"github.com/ohl-lang/ohl/internal/types"
)

// Value is any runtime value: INT, FLOAT, CHAR, STRING, BOOLEAN, or
// NULL (spec §3.6).
type Value interface {
	Type() types.VarType
	String() string
}

// IntValue is a 32-bit signed integer (INT).
type IntValue struct{ Value int32 }

func (v IntValue) Type() types.VarType { return types.INT }
func (v IntValue) String() string      { return strconv.FormatInt(int64(v.Value), 10) }

// FloatValue is a 32-bit IEEE-754 float (FLOAT).
type FloatValue struct{ Value float32 }

func (v FloatValue) Type() types.VarType { return types.FLOAT }
func (v FloatValue) String() string      { return strconv.FormatFloat(float64(v.Value), 'g', -1, 32) }

// BoolValue is a BOOLEAN.
type BoolValue struct{ Value bool }

func (v BoolValue) Type() types.VarType { return types.BOOLEAN }
func (v BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// CharValue is a single Unicode scalar (CHAR).
type CharValue struct{ Value rune }

func (v CharValue) Type() types.VarType { return types.CHAR }
func (v CharValue) String() string      { return string(v.Value) }

// StringValue is a STRING.
type StringValue struct{ Value string }

func (v StringValue) Type() types.VarType { return types.STRING }
func (v StringValue) String() string      { return v.Value }

// NullValue is the absence of a value (NULL).
type NullValue struct{}

func (v NullValue) Type() types.VarType { return types.NULL }
func (v NullValue) String() string      { return "null" }

// Null is the single shared NULL value.
var Null = NullValue{}

// Equal implements NULL-aware equality (§4.4.3): NULL equals only
// NULL; otherwise two values are equal iff they share a type and
// value.
func Equal(a, b Value) bool {
	_, aNull := a.(NullValue)
	_, bNull := b.(NullValue)
	if aNull || bNull {
		return aNull && bNull
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case IntValue:
		return av.Value == b.(IntValue).Value
	case FloatValue:
		return av.Value == b.(FloatValue).Value
	case BoolValue:
		return av.Value == b.(BoolValue).Value
	case CharValue:
		return av.Value == b.(CharValue).Value
	case StringValue:
		return av.Value == b.(StringValue).Value
	default:
		return false
	}
}
