package natives

import (
	"fmt"
	"os"
	"strings"

	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/types"
)

func registerSystem(r *Registry) {
	r.register([]string{"System", "print"}, CategorySystem,
		Signature{Variadic: true, VariadicParam: ArgAny, Return: types.NULL},
		"writes text to stdout without newline", systemPrint)

	r.register([]string{"System", "println"}, CategorySystem,
		Signature{Variadic: true, VariadicParam: ArgAny, Return: types.NULL},
		"print, followed by a newline", systemPrintln)

	r.register([]string{"System", "input"}, CategorySystem,
		Signature{Return: types.STRING},
		"reads one line from stdin, strips trailing CR/LF", systemInput)

	r.register([]string{"System", "exit"}, CategorySystem,
		Signature{Params: []ArgSpec{ArgInt}, Return: types.NULL},
		"terminates the process", systemExit)

	r.register([]string{"System", "flush"}, CategorySystem,
		Signature{Return: types.NULL},
		"flushes stdout", systemFlush)

	r.register([]string{"System", "clear"}, CategorySystem,
		Signature{Return: types.NULL},
		"clears the terminal via an ANSI escape", systemClear)
}

func joinPrintable(args []runtime.Value) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.String())
	}
	return b.String()
}

func systemPrint(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprint(ctx.Stdout, joinPrintable(args))
	return runtime.Null, nil
}

func systemPrintln(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprintln(ctx.Stdout, joinPrintable(args))
	return runtime.Null, nil
}

func systemInput(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	line, err := ctx.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return runtime.Null, fmt.Errorf("System.input: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	return runtime.StringValue{Value: line}, nil
}

func systemExit(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	code := args[0].(runtime.IntValue).Value
	if f, ok := ctx.Stdout.(interface{ Flush() error }); ok {
		f.Flush()
	}
	os.Exit(int(code))
	return runtime.Null, nil
}

func systemFlush(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	if f, ok := ctx.Stdout.(interface{ Flush() error }); ok {
		return runtime.Null, f.Flush()
	}
	return runtime.Null, nil
}

func systemClear(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprint(ctx.Stdout, "\x1b[2J\x1b[H")
	return runtime.Null, nil
}
