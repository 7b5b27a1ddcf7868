// Package natives implements the native function registry exposed to
// ohl programs under namespaced paths such as ["System", "print"] and
// ["Math", "abs"] (spec §6.2). It depends only on internal/types and
// internal/interp/runtime, so both the Analyzer (which needs only
// signatures, to type-check call sites) and the Interpreter (which
// needs implementations too) can import it without a cycle.
package natives

import (
	"fmt"

	"github.com/ohl-lang/ohl/internal/types"
)

// ArgSpec constrains one argument slot of a native signature.
type ArgSpec int

const (
	ArgInt ArgSpec = iota
	ArgFloat
	ArgBool
	ArgChar
	ArgString
	ArgNumeric // INT or FLOAT
	ArgAny     // any printable value
)

func (a ArgSpec) String() string {
	switch a {
	case ArgInt:
		return "INT"
	case ArgFloat:
		return "FLOAT"
	case ArgBool:
		return "BOOLEAN"
	case ArgChar:
		return "CHAR"
	case ArgString:
		return "STRING"
	case ArgNumeric:
		return "INT or FLOAT"
	case ArgAny:
		return "any"
	default:
		return "UNKNOWN"
	}
}

func (a ArgSpec) matches(t types.VarType) bool {
	switch a {
	case ArgInt:
		return t == types.INT
	case ArgFloat:
		return t == types.FLOAT
	case ArgBool:
		return t == types.BOOLEAN
	case ArgChar:
		return t == types.CHAR
	case ArgString:
		return t == types.STRING
	case ArgNumeric:
		return t.IsNumeric()
	case ArgAny:
		return true
	default:
		return false
	}
}

// Signature describes a native's parameter and return-type contract.
// Fixed-arity natives list Params; variadic natives (System.print) set
// Variadic and constrain every argument with VariadicParam.
// ReturnMirrorsArg is set for natives whose return type echoes their
// first argument's actual type rather than a fixed type (Math.abs).
type Signature struct {
	Params           []ArgSpec
	Variadic         bool
	VariadicParam    ArgSpec
	Return           types.VarType
	ReturnMirrorsArg bool
}

// CheckArgs validates argTypes against the signature and returns the
// resulting call's static type, or an error describing the mismatch.
func (s Signature) CheckArgs(argTypes []types.VarType) (types.VarType, error) {
	if s.Variadic {
		for i, t := range argTypes {
			if !s.VariadicParam.matches(t) {
				return types.NULL, fmt.Errorf("argument %d: expected %s, got %s", i+1, s.VariadicParam, t)
			}
		}
	} else {
		if len(argTypes) != len(s.Params) {
			return types.NULL, fmt.Errorf("expected %d argument(s), got %d", len(s.Params), len(argTypes))
		}
		for i, t := range argTypes {
			if !s.Params[i].matches(t) {
				return types.NULL, fmt.Errorf("argument %d: expected %s, got %s", i+1, s.Params[i], t)
			}
		}
	}
	if s.ReturnMirrorsArg {
		if len(argTypes) == 0 {
			return types.NULL, fmt.Errorf("expected at least one argument")
		}
		return argTypes[0], nil
	}
	return s.Return, nil
}
