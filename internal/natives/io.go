package natives

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/types"
)

func registerIO(r *Registry) {
	r.register([]string{"IO", "readFile"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.STRING}, "reads an entire file", ioReadFile)

	r.register([]string{"IO", "writeFile"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString, ArgString}, Return: types.NULL}, "overwrites a file", ioWriteFile)

	r.register([]string{"IO", "appendFile"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString, ArgString}, Return: types.NULL}, "appends to a file, creating it if missing", ioAppendFile)

	r.register([]string{"IO", "exists"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.BOOLEAN}, "checks whether a path exists", ioExists)

	r.register([]string{"IO", "isFile"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.BOOLEAN}, "checks whether a path is a regular file", ioIsFile)

	r.register([]string{"IO", "isDirectory"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.BOOLEAN}, "checks whether a path is a directory", ioIsDirectory)

	r.register([]string{"IO", "size"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.INT}, "file size in bytes", ioSize)

	r.register([]string{"IO", "lines"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.INT}, "count of newline-delimited lines", ioLines)

	r.register([]string{"IO", "deleteFile"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.NULL}, "removes a file", ioDeleteFile)

	r.register([]string{"IO", "deleteDirectory"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString}, Return: types.NULL}, "removes a directory and its contents", ioDeleteDirectory)

	r.register([]string{"IO", "move"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString, ArgString}, Return: types.NULL}, "renames/moves a file", ioMove)

	r.register([]string{"IO", "copy"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString, ArgString}, Return: types.NULL}, "copies a file", ioCopy)

	r.register([]string{"IO", "printFile"}, CategoryIO,
		Signature{Params: []ArgSpec{ArgString, ArgBool}, Return: types.NULL}, "prints a file, optionally line-numbered", ioPrintFile)
}

func ioReadFile(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	data, err := os.ReadFile(path)
	if err != nil {
		return runtime.Null, fmt.Errorf("IO.readFile: %w", err)
	}
	return runtime.StringValue{Value: string(data)}, nil
}

func ioWriteFile(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	content := args[1].(runtime.StringValue).Value
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return runtime.Null, fmt.Errorf("IO.writeFile: %w", err)
	}
	return runtime.Null, nil
}

func ioAppendFile(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	content := args[1].(runtime.StringValue).Value
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return runtime.Null, fmt.Errorf("IO.appendFile: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return runtime.Null, fmt.Errorf("IO.appendFile: %w", err)
	}
	return runtime.Null, nil
}

func ioExists(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	_, err := os.Stat(path)
	return runtime.BoolValue{Value: err == nil}, nil
}

func ioIsFile(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	info, err := os.Stat(path)
	return runtime.BoolValue{Value: err == nil && !info.IsDir()}, nil
}

func ioIsDirectory(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	info, err := os.Stat(path)
	return runtime.BoolValue{Value: err == nil && info.IsDir()}, nil
}

func ioSize(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	info, err := os.Stat(path)
	if err != nil {
		return runtime.Null, fmt.Errorf("IO.size: %w", err)
	}
	return runtime.IntValue{Value: int32(info.Size())}, nil
}

func ioLines(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	data, err := os.ReadFile(path)
	if err != nil {
		return runtime.Null, fmt.Errorf("IO.lines: %w", err)
	}
	count := strings.Count(string(data), "\n")
	return runtime.IntValue{Value: int32(count)}, nil
}

func ioDeleteFile(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	if err := os.Remove(path); err != nil {
		return runtime.Null, fmt.Errorf("IO.deleteFile: %w", err)
	}
	return runtime.Null, nil
}

func ioDeleteDirectory(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	if err := os.RemoveAll(path); err != nil {
		return runtime.Null, fmt.Errorf("IO.deleteDirectory: %w", err)
	}
	return runtime.Null, nil
}

func ioMove(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	src := args[0].(runtime.StringValue).Value
	dst := args[1].(runtime.StringValue).Value
	if err := os.Rename(src, dst); err != nil {
		return runtime.Null, fmt.Errorf("IO.move: %w", err)
	}
	return runtime.Null, nil
}

func ioCopy(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	src := args[0].(runtime.StringValue).Value
	dst := args[1].(runtime.StringValue).Value
	data, err := os.ReadFile(src)
	if err != nil {
		return runtime.Null, fmt.Errorf("IO.copy: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return runtime.Null, fmt.Errorf("IO.copy: %w", err)
	}
	return runtime.Null, nil
}

func ioPrintFile(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	path := args[0].(runtime.StringValue).Value
	numbered := args[1].(runtime.BoolValue).Value
	f, err := os.Open(path)
	if err != nil {
		return runtime.Null, fmt.Errorf("IO.printFile: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if numbered {
			fmt.Fprintf(ctx.Stdout, "%d: %s\n", n, scanner.Text())
		} else {
			fmt.Fprintln(ctx.Stdout, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return runtime.Null, fmt.Errorf("IO.printFile: %w", err)
	}
	return runtime.Null, nil
}
