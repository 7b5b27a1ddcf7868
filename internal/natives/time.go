package natives

import (
	"time"

	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/types"
)

func registerTime(r *Registry) {
	r.register([]string{"Time", "sleep"}, CategoryTime,
		Signature{Params: []ArgSpec{ArgInt}, Return: types.NULL}, "blocks for the given seconds", timeSleep)

	for _, name := range []string{"epoch", "year", "month", "day", "hour", "minute", "second", "millisecond"} {
		r.register([]string{"Time", name}, CategoryTime,
			Signature{Return: types.INT}, "current clock reading: "+name, timeIntReading(name))
	}

	for _, name := range []string{"date", "utc", "now", "short", "long"} {
		r.register([]string{"Time", name}, CategoryTime,
			Signature{Return: types.STRING}, "current clock reading, formatted: "+name, timeStringReading(name))
	}
}

func timeSleep(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	sec := args[0].(runtime.IntValue).Value
	if sec > 0 {
		time.Sleep(time.Duration(sec) * time.Second)
	}
	return runtime.Null, nil
}

func timeIntReading(name string) Func {
	return func(ctx *Context, args []runtime.Value) (runtime.Value, error) {
		now := ctx.Now()
		var v int32
		switch name {
		case "epoch":
			v = int32(now.Unix())
		case "year":
			v = int32(now.Year())
		case "month":
			v = int32(now.Month())
		case "day":
			v = int32(now.Day())
		case "hour":
			v = int32(now.Hour())
		case "minute":
			v = int32(now.Minute())
		case "second":
			v = int32(now.Second())
		case "millisecond":
			v = int32(now.Nanosecond() / int(time.Millisecond))
		}
		return runtime.IntValue{Value: v}, nil
	}
}

func timeStringReading(name string) Func {
	return func(ctx *Context, args []runtime.Value) (runtime.Value, error) {
		now := ctx.Now()
		var s string
		switch name {
		case "date":
			s = now.Format("2006-01-02")
		case "utc":
			s = now.UTC().Format(time.RFC3339)
		case "now":
			s = now.Format(time.RFC3339)
		case "short":
			s = now.Format("15:04:05")
		case "long":
			s = now.Format("2006-01-02 15:04:05")
		}
		return runtime.StringValue{Value: s}, nil
	}
}
