package interp

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/natives"
	"github.com/ohl-lang/ohl/internal/types"
	"github.com/ohl-lang/ohl/pkg/token"
)

var p = token.Position{Line: 1, Column: 1}

func newTestInterpreter(stdin string) (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	ctx := &natives.Context{
		Stdout: &out,
		Stdin:  bufio.NewReader(strings.NewReader(stdin)),
		Rand:   rand.New(rand.NewSource(1)),
		Now:    func() time.Time { return time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC) },
	}
	return New(ctx), &out
}

func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts, Position: p} }

func fn(name string, params []ast.Param, ret types.VarType, body *ast.Block) *ast.Function {
	return &ast.Function{Name: name, Params: params, ReturnType: ret, Body: body, Position: p}
}

func mainFn(body *ast.Block, ret types.VarType) *ast.Start {
	return &ast.Start{Functions: []*ast.Function{fn("main", nil, ret, body)}, Position: p}
}

func litInt(v int32) *ast.LitInt     { return &ast.LitInt{Value: v, Position: p} }
func litFloat(v float32) *ast.LitFloat { return &ast.LitFloat{Value: v, Position: p} }
func litBool(v bool) *ast.LitBool    { return &ast.LitBool{Value: v, Position: p} }
func litStr(v string) *ast.LitString { return &ast.LitString{Value: v, Position: p} }
func nullLit() *ast.NullLit          { return &ast.NullLit{Position: p} }
func ident(name string) *ast.Ident   { return &ast.Ident{Name: name, Position: p} }

func binExpr(lhs ast.Expression, op types.Operator, rhs ast.Expression, t types.VarType) *ast.Expr {
	e := &ast.Expr{Lhs: lhs, Op: op, Rhs: rhs, Position: p}
	e.SetType(t)
	return e
}

func callExpr(path []string, t types.VarType, args ...ast.Expression) *ast.Call {
	c := &ast.Call{Path: path, Args: args, Position: p}
	c.SetType(t)
	return c
}

func printCall(args ...ast.Expression) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: callExpr([]string{"System", "print"}, types.NULL, args...), Position: p}
}

func TestRunCallsMainAndPrintsOutput(t *testing.T) {
	in, out := newTestInterpreter("")
	start := mainFn(block(printCall(litStr("hi"))), types.NULL)
	if err := in.Run(start); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.String() != "hi" {
		t.Errorf("stdout = %q, want %q", out.String(), "hi")
	}
}

func TestRunMissingMainIsError(t *testing.T) {
	in, _ := newTestInterpreter("")
	start := &ast.Start{Functions: []*ast.Function{fn("other", nil, types.NULL, block())}, Position: p}
	if err := in.Run(start); err == nil {
		t.Error("Run with no 'main' returned nil error, want an error")
	}
}

func TestArithmeticIntFloatPromotion(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.FLOAT, block(
		&ast.ReturnStmt{Expr: binExpr(litInt(1), types.ADD, litFloat(2.5), types.FLOAT), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil {
		t.Fatalf("callUser error: %v", err)
	}
	if fv, ok := v.(runtime.FloatValue); !ok || fv.Value != 3.5 {
		t.Errorf("result = %v, want FLOAT 3.5", v)
	}
}

func TestStringConcatenation(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.STRING, block(
		&ast.ReturnStmt{Expr: binExpr(litStr("foo"), types.ADD, litStr("bar"), types.STRING), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.StringValue).Value != "foobar" {
		t.Errorf("result = %v, %v, want \"foobar\"", v, err)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.ReturnStmt{Expr: binExpr(litInt(1), types.DIVIDE, litInt(0), types.INT), Position: p},
	))
	if _, err := in.callUser("main", nil); err == nil {
		t.Error("division by zero returned nil error, want an error")
	}
}

func TestRemainderByZeroIsRuntimeError(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.ReturnStmt{Expr: binExpr(litInt(1), types.REMAINDER, litInt(0), types.INT), Position: p},
	))
	if _, err := in.callUser("main", nil); err == nil {
		t.Error("remainder by zero returned nil error, want an error")
	}
}

func TestNegativeIntegerExponentIsRuntimeError(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.ReturnStmt{Expr: binExpr(litInt(2), types.POWER, litInt(-1), types.INT), Position: p},
	))
	if _, err := in.callUser("main", nil); err == nil {
		t.Error("negative exponent returned nil error, want an error")
	}
}

func TestIntPowerComputesExactly(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.ReturnStmt{Expr: binExpr(litInt(2), types.POWER, litInt(10), types.INT), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 1024 {
		t.Errorf("2^10 = %v, %v, want 1024", v, err)
	}
}

func TestShortCircuitAndSkipsRhsEvaluation(t *testing.T) {
	in, _ := newTestInterpreter("")
	rhs := binExpr(litInt(1), types.DIVIDE, litInt(0), types.INT) // would error if evaluated
	in.funcs["main"] = fn("main", nil, types.BOOLEAN, block(
		&ast.ReturnStmt{Expr: binExpr(litBool(false), types.AND, rhs, types.BOOLEAN), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil {
		t.Fatalf("short-circuit AND should not evaluate RHS, got error: %v", err)
	}
	if v.(runtime.BoolValue).Value != false {
		t.Errorf("false && <rhs> = %v, want false", v)
	}
}

func TestShortCircuitOrSkipsRhsEvaluation(t *testing.T) {
	in, _ := newTestInterpreter("")
	rhs := binExpr(litInt(1), types.DIVIDE, litInt(0), types.INT)
	in.funcs["main"] = fn("main", nil, types.BOOLEAN, block(
		&ast.ReturnStmt{Expr: binExpr(litBool(true), types.OR, rhs, types.BOOLEAN), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil {
		t.Fatalf("short-circuit OR should not evaluate RHS, got error: %v", err)
	}
	if v.(runtime.BoolValue).Value != true {
		t.Errorf("true || <rhs> = %v, want true", v)
	}
}

func TestNullCoalescingReturnsRhsWhenLhsNull(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.ReturnStmt{Expr: binExpr(nullLit(), types.NULL_COAL, litInt(5), types.INT), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 5 {
		t.Errorf("null ?? 5 = %v, %v, want 5", v, err)
	}
}

func TestNullCoalescingReturnsLhsWhenNotNull(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.ReturnStmt{Expr: binExpr(litInt(9), types.NULL_COAL, litInt(5), types.INT), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 9 {
		t.Errorf("9 ?? 5 = %v, %v, want 9", v, err)
	}
}

func TestNullEqualityOnlyMatchesNull(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.BOOLEAN, block(
		&ast.ReturnStmt{Expr: binExpr(nullLit(), types.EQUAL, nullLit(), types.BOOLEAN), Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || !v.(runtime.BoolValue).Value {
		t.Errorf("null == null = %v, %v, want true", v, err)
	}
}

func TestPrefixReciprocalOnIntLiftsToFloat(t *testing.T) {
	in, _ := newTestInterpreter("")
	recip := &ast.PrfxExpr{Op: types.RECIPROCAL, Rhs: litInt(4), Position: p}
	recip.SetType(types.FLOAT)
	in.funcs["main"] = fn("main", nil, types.FLOAT, block(&ast.ReturnStmt{Expr: recip, Position: p}))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.FloatValue).Value != 0.25 {
		t.Errorf("recip(4) = %v, %v, want 0.25", v, err)
	}
}

func TestPostfixIncrementYieldsTransformedValueAndMutatesBinding(t *testing.T) {
	in, _ := newTestInterpreter("")
	incr := &ast.PtfxExpr{Lhs: ident("x"), Op: types.INCREMENT, Position: p}
	incr.SetType(types.INT)
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.LetStmt{Name: "x", DeclType: types.INT, Mutable: true, Init: litInt(5), Position: p},
		&ast.ReturnStmt{Expr: incr, Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 6 {
		t.Errorf("x++ result = %v, %v, want 6 (the transformed value)", v, err)
	}
}

func TestPostfixSquare(t *testing.T) {
	in, _ := newTestInterpreter("")
	sq := &ast.PtfxExpr{Lhs: ident("x"), Op: types.SQUARE, Position: p}
	sq.SetType(types.INT)
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.LetStmt{Name: "x", DeclType: types.INT, Mutable: true, Init: litInt(3), Position: p},
		&ast.ReturnStmt{Expr: sq, Position: p},
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 9 {
		t.Errorf("x** result = %v, %v, want 9", v, err)
	}
}

func TestCastIntToFloat(t *testing.T) {
	in, _ := newTestInterpreter("")
	cast := &ast.Cast{Expr: litInt(3), Target: types.FLOAT, Position: p}
	in.funcs["main"] = fn("main", nil, types.FLOAT, block(&ast.ReturnStmt{Expr: cast, Position: p}))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.FloatValue).Value != 3.0 {
		t.Errorf("3 as FLOAT = %v, %v, want 3.0", v, err)
	}
}

func TestCastBoolToInt(t *testing.T) {
	in, _ := newTestInterpreter("")
	cast := &ast.Cast{Expr: litBool(true), Target: types.INT, Position: p}
	in.funcs["main"] = fn("main", nil, types.INT, block(&ast.ReturnStmt{Expr: cast, Position: p}))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 1 {
		t.Errorf("true as INT = %v, %v, want 1", v, err)
	}
}

func TestCastStringIsIllegal(t *testing.T) {
	in, _ := newTestInterpreter("")
	cast := &ast.Cast{Expr: litInt(3), Target: types.STRING, Position: p}
	in.funcs["main"] = fn("main", nil, types.STRING, block(&ast.ReturnStmt{Expr: cast, Position: p}))
	if _, err := in.callUser("main", nil); err == nil {
		t.Error("cast to STRING returned nil error, want an error")
	}
}

func TestLoopExprRunsExactCount(t *testing.T) {
	in, _ := newTestInterpreter("")
	incr := &ast.AssignStmt{Name: "counter", Expr: binExpr(ident("counter"), types.ADD, litInt(1), types.INT), Position: p}
	ret := &ast.ReturnStmt{Expr: ident("counter"), Position: p}
	ret.Expr.SetType(types.INT)
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.LetStmt{Name: "counter", DeclType: types.INT, Mutable: true, Init: litInt(0), Position: p},
		&ast.LoopExpr{Count: litInt(3), Body: block(incr), Position: p},
		ret,
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 3 {
		t.Errorf("loop(3) counter = %v, %v, want 3", v, err)
	}
}

func TestLoopExprRepeatAddsOneIteration(t *testing.T) {
	in, _ := newTestInterpreter("")
	incr := &ast.AssignStmt{Name: "counter", Expr: binExpr(ident("counter"), types.ADD, litInt(1), types.INT), Position: p}
	cond := binExpr(ident("counter"), types.EQUAL, litInt(0), types.BOOLEAN)
	ifStmt := &ast.IfExpr{
		Cond: cond,
		Then: block(incr, &ast.Repeat{Position: p}),
		Else: block(incr),
		Position: p,
	}
	ret := &ast.ReturnStmt{Expr: ident("counter"), Position: p}
	ret.Expr.SetType(types.INT)
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.LetStmt{Name: "counter", DeclType: types.INT, Mutable: true, Init: litInt(0), Position: p},
		&ast.LoopExpr{Count: litInt(1), Body: block(ifStmt), Position: p},
		ret,
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 2 {
		t.Errorf("loop(1) with one repeat ran counter to %v, %v, want 2 (two actual iterations)", v, err)
	}
}

func TestWhileExprBreak(t *testing.T) {
	in, _ := newTestInterpreter("")
	cond := binExpr(litBool(true), types.EQUAL, litBool(true), types.BOOLEAN)
	body := block(
		&ast.AssignStmt{Name: "counter", Expr: binExpr(ident("counter"), types.ADD, litInt(1), types.INT), Position: p},
		&ast.IfExpr{
			Cond: binExpr(ident("counter"), types.NOT_LESS_THAN, litInt(3), types.BOOLEAN),
			Then: block(&ast.Break{Position: p}),
			Position: p,
		},
	)
	ret := &ast.ReturnStmt{Expr: ident("counter"), Position: p}
	ret.Expr.SetType(types.INT)
	in.funcs["main"] = fn("main", nil, types.INT, block(
		&ast.LetStmt{Name: "counter", DeclType: types.INT, Mutable: true, Init: litInt(0), Position: p},
		&ast.WhileExpr{Cond: cond, Body: body, Position: p},
		ret,
	))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 3 {
		t.Errorf("while-break counter = %v, %v, want 3", v, err)
	}
}

func TestForEachOverStringPrintsEachChar(t *testing.T) {
	in, out := newTestInterpreter("")
	forEach := &ast.ForEach{Var: "c", Iterable: litStr("ab"), Body: block(printCall(ident("c"))), Position: p}
	in.funcs["main"] = fn("main", nil, types.NULL, block(forEach))
	if err := in.Run(&ast.Start{Functions: []*ast.Function{in.funcs["main"]}, Position: p}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.String() != "ab" {
		t.Errorf("stdout = %q, want %q", out.String(), "ab")
	}
}

func TestForEachOverInclusiveRangePrintsEachInt(t *testing.T) {
	in, out := newTestInterpreter("")
	rng := &ast.Range{Start: litInt(1), End: litInt(3), Inclusive: true, Position: p}
	rng.SetType(types.INT)
	forEach := &ast.ForEach{Var: "i", Iterable: rng, Body: block(printCall(ident("i"))), Position: p}
	start := &ast.Start{Functions: []*ast.Function{fn("main", nil, types.NULL, block(forEach))}, Position: p}
	if err := in.Run(start); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.String() != "123" {
		t.Errorf("stdout = %q, want %q", out.String(), "123")
	}
}

func TestForExprCountsUpToBound(t *testing.T) {
	in, out := newTestInterpreter("")
	init := &ast.LetStmt{Name: "i", DeclType: types.INT, Mutable: true, Init: litInt(0), Position: p}
	cond := binExpr(ident("i"), types.LESS_THAN, litInt(5), types.BOOLEAN)
	mod := &ast.AssignStmt{Name: "i", Expr: binExpr(ident("i"), types.ADD, litInt(1), types.INT), Position: p}
	forExpr := &ast.ForExpr{Init: init, Cond: cond, Modifier: mod, Body: block(printCall(ident("i"))), Position: p}
	start := &ast.Start{Functions: []*ast.Function{fn("main", nil, types.NULL, block(forExpr))}, Position: p}
	if err := in.Run(start); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.String() != "01234" {
		t.Errorf("stdout = %q, want %q", out.String(), "01234")
	}
}

func TestForExprInitVariableIsOutOfScopeAfterLoop(t *testing.T) {
	in, _ := newTestInterpreter("")
	init := &ast.LetStmt{Name: "i", DeclType: types.INT, Mutable: true, Init: litInt(0), Position: p}
	cond := binExpr(ident("i"), types.LESS_THAN, litInt(3), types.BOOLEAN)
	mod := &ast.AssignStmt{Name: "i", Expr: binExpr(ident("i"), types.ADD, litInt(1), types.INT), Position: p}
	forExpr := &ast.ForExpr{Init: init, Cond: cond, Modifier: mod, Body: block(), Position: p}
	ret := &ast.ReturnStmt{Expr: ident("i"), Position: p}
	ret.Expr.SetType(types.INT)
	in.funcs["main"] = fn("main", nil, types.INT, block(forExpr, ret))
	if _, err := in.callUser("main", nil); err == nil {
		t.Fatal("expected 'i' to be out of scope after the for loop, got nil error")
	}
}

func TestMatchIdentPatternBindsScrutinee(t *testing.T) {
	in, _ := newTestInterpreter("")
	arm := &ast.MatchArm{
		Pattern: ident("n"),
		Body: block(&ast.ReturnStmt{Expr: binExpr(ident("n"), types.ADD, litInt(1), types.INT), Position: p}),
		Position: p,
	}
	match := &ast.MatchStmt{Scrutinee: litInt(41), Arms: []*ast.MatchArm{arm}, Position: p}
	in.funcs["main"] = fn("main", nil, types.INT, block(match))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 42 {
		t.Errorf("match bound result = %v, %v, want 42", v, err)
	}
}

func TestMatchRangePattern(t *testing.T) {
	in, _ := newTestInterpreter("")
	rng := &ast.Range{Start: litInt(1), End: litInt(10), Inclusive: true, Position: p}
	inRange := &ast.MatchArm{Pattern: rng, Body: block(&ast.ReturnStmt{Expr: litStr("in range"), Position: p}), Position: p}
	fallback := &ast.MatchArm{Pattern: &ast.Default{Position: p}, Body: block(&ast.ReturnStmt{Expr: litStr("other"), Position: p}), Position: p}
	match := &ast.MatchStmt{Scrutinee: litInt(5), Arms: []*ast.MatchArm{inRange, fallback}, Position: p}
	in.funcs["main"] = fn("main", nil, types.STRING, block(match))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.StringValue).Value != "in range" {
		t.Errorf("match range result = %v, %v, want \"in range\"", v, err)
	}
}

func TestMatchNullLitPatternOnlyMatchesNull(t *testing.T) {
	in, _ := newTestInterpreter("")
	nullArm := &ast.MatchArm{Pattern: nullLit(), Body: block(&ast.ReturnStmt{Expr: litStr("was null"), Position: p}), Position: p}
	fallback := &ast.MatchArm{Pattern: &ast.Default{Position: p}, Body: block(&ast.ReturnStmt{Expr: litStr("not null"), Position: p}), Position: p}
	match := &ast.MatchStmt{Scrutinee: nullLit(), Arms: []*ast.MatchArm{nullArm, fallback}, Position: p}
	in.funcs["main"] = fn("main", nil, types.STRING, block(match))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.StringValue).Value != "was null" {
		t.Errorf("match on null scrutinee = %v, %v, want \"was null\"", v, err)
	}
}

func TestDeferRunsLifoBeforeScopeExit(t *testing.T) {
	in, out := newTestInterpreter("")
	body := block(
		&ast.DeferStmt{Body: printCall(litStr("A")), Position: p},
		&ast.DeferStmt{Body: printCall(litStr("B")), Position: p},
		printCall(litStr("C")),
	)
	start := &ast.Start{Functions: []*ast.Function{fn("main", nil, types.NULL, body)}, Position: p}
	if err := in.Run(start); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.String() != "CBA" {
		t.Errorf("stdout = %q, want %q", out.String(), "CBA")
	}
}

func TestDeferRunsOnReturnPath(t *testing.T) {
	in, out := newTestInterpreter("")
	body := block(
		&ast.DeferStmt{Body: printCall(litStr("X")), Position: p},
		&ast.ReturnStmt{Position: p},
	)
	start := &ast.Start{Functions: []*ast.Function{fn("main", nil, types.NULL, body)}, Position: p}
	if err := in.Run(start); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.String() != "X" {
		t.Errorf("stdout = %q, want %q", out.String(), "X")
	}
}

func TestLooseBreakAtFunctionBodyRootIsError(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.NULL, block(&ast.Break{Position: p}))
	if _, err := in.callUser("main", nil); err == nil {
		t.Error("loose break at function root returned nil error, want an error")
	}
}

func TestUnknownFunctionIsError(t *testing.T) {
	in, _ := newTestInterpreter("")
	if _, err := in.callUser("doesNotExist", nil); err == nil {
		t.Error("calling an unknown function returned nil error, want an error")
	}
}

func TestUserFunctionArityMismatchIsError(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["add"] = fn("add", []ast.Param{{Name: "a", Type: types.INT}, {Name: "b", Type: types.INT}}, types.INT,
		block(&ast.ReturnStmt{Expr: binExpr(ident("a"), types.ADD, ident("b"), types.INT), Position: p}))
	if _, err := in.callUser("add", []runtime.Value{runtime.IntValue{Value: 1}}); err == nil {
		t.Error("calling with too few arguments returned nil error, want an error")
	}
}

func TestUserFunctionCallAndReturn(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["add"] = fn("add", []ast.Param{{Name: "a", Type: types.INT}, {Name: "b", Type: types.INT}}, types.INT,
		block(&ast.ReturnStmt{Expr: binExpr(ident("a"), types.ADD, ident("b"), types.INT), Position: p}))
	call := callExpr([]string{"add"}, types.INT, litInt(2), litInt(3))
	in.funcs["main"] = fn("main", nil, types.INT, block(&ast.ReturnStmt{Expr: call, Position: p}))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 5 {
		t.Errorf("add(2, 3) = %v, %v, want 5", v, err)
	}
}

func TestRecursionDepthGuard(t *testing.T) {
	in, _ := newTestInterpreter("")
	recurse := fn("recurse", nil, types.NULL, block(
		&ast.ExprStmt{Expr: callExpr([]string{"recurse"}, types.NULL), Position: p},
	))
	in.funcs["recurse"] = recurse
	if _, err := in.callUser("recurse", nil); err == nil {
		t.Error("unbounded recursion returned nil error, want a max-recursion-depth error")
	}
}

func TestAssignToImmutableIsError(t *testing.T) {
	in, _ := newTestInterpreter("")
	in.funcs["main"] = fn("main", nil, types.NULL, block(
		&ast.LetStmt{Name: "x", DeclType: types.INT, Mutable: false, Init: litInt(1), Position: p},
		&ast.AssignStmt{Name: "x", Expr: litInt(2), Position: p},
	))
	if _, err := in.callUser("main", nil); err == nil {
		t.Error("assigning to an immutable binding returned nil error, want an error")
	}
}

func TestUnknownNativeIsError(t *testing.T) {
	in, _ := newTestInterpreter("")
	if _, err := in.call([]string{"System", "doesNotExist"}, nil); err == nil {
		t.Error("calling an unknown native returned nil error, want an error")
	}
}

func TestMathAbsNativeCall(t *testing.T) {
	in, _ := newTestInterpreter("")
	call := callExpr([]string{"Math", "abs"}, types.INT, litInt(-7))
	in.funcs["main"] = fn("main", nil, types.INT, block(&ast.ReturnStmt{Expr: call, Position: p}))
	v, err := in.callUser("main", nil)
	if err != nil || v.(runtime.IntValue).Value != 7 {
		t.Errorf("Math.abs(-7) = %v, %v, want 7", v, err)
	}
}
