package natives

import (
	"fmt"

	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/types"
)

func registerRandom(r *Registry) {
	r.register([]string{"Random", "nextInt"}, CategoryRandom,
		Signature{Params: []ArgSpec{ArgInt, ArgInt}, Return: types.INT},
		"inclusive integer range", randomNextInt)

	r.register([]string{"Random", "nextFloat"}, CategoryRandom,
		Signature{Params: []ArgSpec{ArgFloat, ArgFloat}, Return: types.FLOAT},
		"inclusive float range", randomNextFloat)

	r.register([]string{"Random", "nextChar"}, CategoryRandom,
		Signature{Params: []ArgSpec{ArgChar, ArgChar}, Return: types.CHAR},
		"inclusive char range", randomNextChar)

	r.register([]string{"Random", "anyInt"}, CategoryRandom,
		Signature{Return: types.INT}, "a platform-default-range int", randomAnyInt)

	r.register([]string{"Random", "anyFloat"}, CategoryRandom,
		Signature{Return: types.FLOAT}, "a float in [0,1)", randomAnyFloat)

	r.register([]string{"Random", "anyChar"}, CategoryRandom,
		Signature{Return: types.CHAR}, "a printable ASCII char", randomAnyChar)

	r.register([]string{"Random", "anyBoolean"}, CategoryRandom,
		Signature{Return: types.BOOLEAN}, "a coin flip", randomAnyBoolean)
}

func randomNextInt(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	a := args[0].(runtime.IntValue).Value
	b := args[1].(runtime.IntValue).Value
	if a > b {
		return runtime.Null, fmt.Errorf("Random.nextInt: lower bound %d exceeds upper bound %d", a, b)
	}
	span := int64(b) - int64(a) + 1
	return runtime.IntValue{Value: a + int32(ctx.Rand.Int63n(span))}, nil
}

func randomNextFloat(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	a := args[0].(runtime.FloatValue).Value
	b := args[1].(runtime.FloatValue).Value
	if a > b {
		return runtime.Null, fmt.Errorf("Random.nextFloat: lower bound %v exceeds upper bound %v", a, b)
	}
	return runtime.FloatValue{Value: a + float32(ctx.Rand.Float64())*(b-a)}, nil
}

func randomNextChar(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	a := args[0].(runtime.CharValue).Value
	b := args[1].(runtime.CharValue).Value
	if a > b {
		return runtime.Null, fmt.Errorf("Random.nextChar: lower bound %q exceeds upper bound %q", a, b)
	}
	span := int64(b) - int64(a) + 1
	return runtime.CharValue{Value: a + rune(ctx.Rand.Int63n(span))}, nil
}

func randomAnyInt(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return runtime.IntValue{Value: ctx.Rand.Int31()}, nil
}

func randomAnyFloat(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return runtime.FloatValue{Value: float32(ctx.Rand.Float64())}, nil
}

func randomAnyChar(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	const lo, hi = 0x20, 0x7e // printable ASCII
	return runtime.CharValue{Value: rune(lo + ctx.Rand.Intn(hi-lo+1))}, nil
}

func randomAnyBoolean(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue{Value: ctx.Rand.Intn(2) == 1}, nil
}
