package natives

import (
	"fmt"

	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/types"
)

func registerMath(r *Registry) {
	r.register([]string{"Math", "abs"}, CategoryMath,
		Signature{Params: []ArgSpec{ArgNumeric}, ReturnMirrorsArg: true},
		"absolute value", mathAbs)

	r.register([]string{"Math", "factorial"}, CategoryMath,
		Signature{Params: []ArgSpec{ArgInt}, Return: types.INT},
		"n!, error on negative n", mathFactorial)

	r.register([]string{"Math", "signum"}, CategoryMath,
		Signature{Params: []ArgSpec{ArgNumeric}, Return: types.INT},
		"-1, 0, or 1", mathSignum)
}

func mathAbs(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntValue:
		if v.Value < 0 {
			return runtime.IntValue{Value: -v.Value}, nil
		}
		return v, nil
	case runtime.FloatValue:
		if v.Value < 0 {
			return runtime.FloatValue{Value: -v.Value}, nil
		}
		return v, nil
	default:
		return runtime.Null, fmt.Errorf("Math.abs: unsupported operand %s", v.Type())
	}
}

func mathFactorial(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n := args[0].(runtime.IntValue).Value
	if n < 0 {
		return runtime.Null, fmt.Errorf("Math.factorial: negative argument %d", n)
	}
	var result int32 = 1
	for i := int32(2); i <= n; i++ {
		result *= i
	}
	return runtime.IntValue{Value: result}, nil
}

func mathSignum(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntValue:
		return runtime.IntValue{Value: signumInt(v.Value)}, nil
	case runtime.FloatValue:
		switch {
		case v.Value > 0:
			return runtime.IntValue{Value: 1}, nil
		case v.Value < 0:
			return runtime.IntValue{Value: -1}, nil
		default:
			return runtime.IntValue{Value: 0}, nil
		}
	default:
		return runtime.Null, fmt.Errorf("Math.signum: unsupported operand %s", v.Type())
	}
}

func signumInt(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
