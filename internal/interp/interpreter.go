// Package interp implements the tree-walking Interpreter: the final
// pipeline stage that executes a lowered, folded, analyzed semantic
// tree and produces observable effects (spec §4.4). It trusts the
// analyzer's verdict — operand types, cast legality, identifier
// resolvability — and only re-checks the handful of things that can
// still fail at runtime: division/remainder by zero, negative integer
// exponents, immutable/unknown bindings, and recursion depth.
package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/interp/runtime"
	"github.com/ohl-lang/ohl/internal/natives"
	"github.com/ohl-lang/ohl/internal/types"
)

// flowKind is the control-flow outcome of executing a statement
// (§4.4.2's NORMAL/RETURN/BREAK/CONTINUE/REPEAT sum type).
type flowKind int

const (
	flowNormal flowKind = iota
	flowReturn
	flowBreak
	flowContinue
	flowRepeat
)

type flow struct {
	kind  flowKind
	value runtime.Value
}

var normalFlow = flow{kind: flowNormal}

func flowName(k flowKind) string {
	switch k {
	case flowBreak:
		return "break"
	case flowContinue:
		return "continue"
	case flowRepeat:
		return "repeat"
	default:
		return "control flow"
	}
}

// Interpreter executes a *ast.Start against an environment, a call
// stack, and a native function registry.
type Interpreter struct {
	env     *runtime.Environment
	calls   *runtime.CallStack
	natives *natives.Registry
	ctx     *natives.Context
	funcs   map[string]*ast.Function
}

// New creates an Interpreter wired to ctx and the default native
// registry.
func New(ctx *natives.Context) *Interpreter {
	return NewWithRegistry(ctx, natives.DefaultRegistry)
}

// NewWithRegistry creates an Interpreter wired to ctx and an explicit
// registry, for tests that need to substitute their own natives.
func NewWithRegistry(ctx *natives.Context, registry *natives.Registry) *Interpreter {
	return &Interpreter{
		env:     runtime.NewEnvironment(),
		calls:   runtime.NewCallStack(),
		natives: registry,
		ctx:     ctx,
		funcs:   make(map[string]*ast.Function),
	}
}

// Run registers every function in start and executes "main" (§4.4.1).
func (in *Interpreter) Run(start *ast.Start) error {
	for _, fn := range start.Functions {
		in.funcs[fn.Name] = fn
	}
	_, err := in.callUser("main", nil)
	return err
}

// call dispatches path to a user function (single-segment path) or a
// native (multi-segment path), per §4.4.1 step 1.
func (in *Interpreter) call(path []string, args []runtime.Value) (runtime.Value, error) {
	if len(path) == 1 {
		return in.callUser(path[0], args)
	}
	return in.callNative(path, args)
}

func (in *Interpreter) callNative(path []string, args []runtime.Value) (runtime.Value, error) {
	n, ok := in.natives.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("unknown native function '%s'", strings.Join(path, "."))
	}
	return n.Impl(in.ctx, args)
}

func (in *Interpreter) callUser(name string, args []runtime.Value) (runtime.Value, error) {
	fn, ok := in.funcs[name]
	if !ok {
		return nil, fmt.Errorf("function not found: '%s'", name)
	}
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("function '%s' expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}
	if err := in.calls.Push(name); err != nil {
		return nil, err
	}
	defer in.calls.Pop()

	in.env.Push()
	for i, p := range fn.Params {
		in.env.Declare(p.Name, args[i], false)
	}

	f, err := in.execBlock(fn.Body)

	derr := in.runDeferred(in.env.Top())
	in.env.Pop()

	if err != nil {
		return nil, err
	}
	if derr != nil {
		return nil, derr
	}

	switch f.kind {
	case flowReturn:
		return f.value, nil
	case flowNormal:
		return runtime.Null, nil
	default:
		return nil, fmt.Errorf("'%s' used outside of a loop in function '%s'", flowName(f.kind), name)
	}
}

// execBlock runs b in a fresh scope, then runs that scope's deferred
// statements (LIFO) while it is still on the chain before popping it
// (§4.4.2 "block exit / scope pop").
func (in *Interpreter) execBlock(b *ast.Block) (flow, error) {
	in.env.Push()
	f, err := in.execStmts(b.Statements)
	derr := in.runDeferred(in.env.Top())
	in.env.Pop()
	if err != nil {
		return f, err
	}
	if derr != nil {
		return f, derr
	}
	return f, nil
}

func (in *Interpreter) execStmts(stmts []ast.Statement) (flow, error) {
	for _, stmt := range stmts {
		f, err := in.execStmt(stmt)
		if err != nil {
			return f, err
		}
		if f.kind != flowNormal {
			return f, nil
		}
	}
	return normalFlow, nil
}

// runDeferred executes scope's deferred statements in LIFO order. A
// deferred statement yielding a non-NORMAL flow is itself an error:
// deferred code cannot affect the control flow of the scope it
// belongs to (§4.4.2).
func (in *Interpreter) runDeferred(scope *runtime.Scope) error {
	for _, stmt := range scope.Deferred() {
		f, err := in.execStmt(stmt)
		if err != nil {
			return fmt.Errorf("deferred statement: %w", err)
		}
		if f.kind != flowNormal {
			return fmt.Errorf("deferred statement yielded '%s', which is not allowed", flowName(f.kind))
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Statement) (flow, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.execBlock(s)
	case *ast.LetStmt:
		return in.execLet(s)
	case *ast.AssignStmt:
		return in.execAssign(s)
	case *ast.ReturnStmt:
		return in.execReturn(s)
	case *ast.DeferStmt:
		in.env.Defer(s.Body)
		return normalFlow, nil
	case *ast.IfExpr:
		return in.execIf(s)
	case *ast.WhileExpr:
		return in.execWhile(s)
	case *ast.DoWhile:
		return in.execDoWhile(s)
	case *ast.LoopExpr:
		return in.execLoop(s)
	case *ast.ForExpr:
		return in.execFor(s)
	case *ast.ForEach:
		return in.execForEach(s)
	case *ast.MatchStmt:
		return in.execMatch(s)
	case *ast.Break:
		return flow{kind: flowBreak}, nil
	case *ast.Continue:
		return flow{kind: flowContinue}, nil
	case *ast.Repeat:
		return flow{kind: flowRepeat}, nil
	case *ast.BlankStmt:
		return normalFlow, nil
	case *ast.ExprStmt:
		_, err := in.eval(s.Expr)
		return normalFlow, err
	default:
		return normalFlow, fmt.Errorf("interp: unsupported statement %T", stmt)
	}
}

func (in *Interpreter) execLet(s *ast.LetStmt) (flow, error) {
	v, err := in.eval(s.Init)
	if err != nil {
		return normalFlow, err
	}
	in.env.Declare(s.Name, v, s.Mutable)
	return normalFlow, nil
}

func (in *Interpreter) execAssign(s *ast.AssignStmt) (flow, error) {
	v, err := in.eval(s.Expr)
	if err != nil {
		return normalFlow, err
	}
	if err := in.env.Set(s.Name, v); err != nil {
		return normalFlow, err
	}
	return normalFlow, nil
}

func (in *Interpreter) execReturn(s *ast.ReturnStmt) (flow, error) {
	if s.Expr == nil {
		return flow{kind: flowReturn, value: runtime.Null}, nil
	}
	v, err := in.eval(s.Expr)
	if err != nil {
		return normalFlow, err
	}
	return flow{kind: flowReturn, value: v}, nil
}

func (in *Interpreter) execIf(s *ast.IfExpr) (flow, error) {
	c, err := in.eval(s.Cond)
	if err != nil {
		return normalFlow, err
	}
	if c.(runtime.BoolValue).Value {
		return in.execBlock(s.Then)
	}
	if s.Else != nil {
		return in.execStmt(s.Else)
	}
	return normalFlow, nil
}

func (in *Interpreter) execWhile(s *ast.WhileExpr) (flow, error) {
	for {
		c, err := in.eval(s.Cond)
		if err != nil {
			return normalFlow, err
		}
		if !c.(runtime.BoolValue).Value {
			return normalFlow, nil
		}
		f, err := in.execBlock(s.Body)
		if err != nil {
			return normalFlow, err
		}
		switch f.kind {
		case flowBreak:
			return normalFlow, nil
		case flowReturn:
			return f, nil
		}
		// CONTINUE and REPEAT both just re-test the condition: a
		// WHILE_EXPR has no counter or modifier for REPEAT to act on
		// differently than CONTINUE (that distinction is LOOP_EXPR-only,
		// §4.4.2).
	}
}

func (in *Interpreter) execDoWhile(s *ast.DoWhile) (flow, error) {
	for {
		f, err := in.execBlock(s.Body)
		if err != nil {
			return normalFlow, err
		}
		switch f.kind {
		case flowBreak:
			return normalFlow, nil
		case flowReturn:
			return f, nil
		}
		c, err := in.eval(s.Cond)
		if err != nil {
			return normalFlow, err
		}
		if !c.(runtime.BoolValue).Value {
			return normalFlow, nil
		}
	}
}

// execLoop runs s.Body count times; REPEAT adds one to the remaining
// count, giving a bounded restart of the current iteration without
// advancing (§4.4.2, §5).
func (in *Interpreter) execLoop(s *ast.LoopExpr) (flow, error) {
	cv, err := in.eval(s.Count)
	if err != nil {
		return normalFlow, err
	}
	remaining := cv.(runtime.IntValue).Value
	for remaining > 0 {
		f, err := in.execBlock(s.Body)
		if err != nil {
			return normalFlow, err
		}
		switch f.kind {
		case flowBreak:
			return normalFlow, nil
		case flowReturn:
			return f, nil
		case flowRepeat:
			remaining++
		}
		remaining--
	}
	return normalFlow, nil
}

// execFor pushes one scope covering init/cond/modifier/body, per
// §4.4.2. The modifier runs after a normal, continuing, or repeating
// iteration, not after a return or break.
func (in *Interpreter) execFor(s *ast.ForExpr) (flow, error) {
	in.env.Push()
	result, rerr := in.runForLoop(s)
	derr := in.runDeferred(in.env.Top())
	in.env.Pop()
	if rerr != nil {
		return normalFlow, rerr
	}
	if derr != nil {
		return normalFlow, derr
	}
	return result, nil
}

func (in *Interpreter) runForLoop(s *ast.ForExpr) (flow, error) {
	if s.Init != nil {
		if _, err := in.execStmt(s.Init); err != nil {
			return normalFlow, err
		}
	}
	for {
		if s.Cond != nil {
			c, err := in.eval(s.Cond)
			if err != nil {
				return normalFlow, err
			}
			if !c.(runtime.BoolValue).Value {
				return normalFlow, nil
			}
		}
		f, err := in.execBlock(s.Body)
		if err != nil {
			return normalFlow, err
		}
		if f.kind == flowBreak {
			return normalFlow, nil
		}
		if f.kind == flowReturn {
			return f, nil
		}
		if s.Modifier != nil {
			if _, err := in.execStmt(s.Modifier); err != nil {
				return normalFlow, err
			}
		}
	}
}

// execForEach iterates a STRING by Unicode scalar, or a RANGE of
// INT/FLOAT/CHAR from start toward end by unit steps (§4.4.2). A
// RANGE is not itself a runtime.Value (its resolved type is its
// element type, not a distinct RANGE kind — see the analyzer), so it
// is special-cased here rather than evaluated through eval.
func (in *Interpreter) execForEach(s *ast.ForEach) (flow, error) {
	if r, ok := s.Iterable.(*ast.Range); ok {
		return in.execForEachRange(s, r)
	}
	iter, err := in.eval(s.Iterable)
	if err != nil {
		return normalFlow, err
	}
	str, ok := iter.(runtime.StringValue)
	if !ok {
		return normalFlow, fmt.Errorf("for-each: iterable must be a STRING or RANGE, got %s", iter.Type())
	}
	for _, r := range str.Value {
		f, err := in.runForEachIteration(s, runtime.CharValue{Value: r})
		if err != nil {
			return normalFlow, err
		}
		if f.kind == flowBreak {
			return normalFlow, nil
		}
		if f.kind == flowReturn {
			return f, nil
		}
	}
	return normalFlow, nil
}

func (in *Interpreter) execForEachRange(s *ast.ForEach, r *ast.Range) (flow, error) {
	startV, err := in.eval(r.Start)
	if err != nil {
		return normalFlow, err
	}
	endV, err := in.eval(r.End)
	if err != nil {
		return normalFlow, err
	}

	switch sv := startV.(type) {
	case runtime.IntValue:
		ev := endV.(runtime.IntValue)
		step := int32(1)
		if ev.Value < sv.Value {
			step = -1
		}
		for cur := sv.Value; inBoundsInt(cur, ev.Value, step, r.Inclusive); cur += step {
			f, err := in.runForEachIteration(s, runtime.IntValue{Value: cur})
			if err != nil {
				return normalFlow, err
			}
			if f.kind == flowBreak {
				return normalFlow, nil
			}
			if f.kind == flowReturn {
				return f, nil
			}
		}
	case runtime.FloatValue:
		ev := endV.(runtime.FloatValue)
		step := float32(1)
		if ev.Value < sv.Value {
			step = -1
		}
		for cur := sv.Value; inBoundsFloat(cur, ev.Value, step, r.Inclusive); cur += step {
			f, err := in.runForEachIteration(s, runtime.FloatValue{Value: cur})
			if err != nil {
				return normalFlow, err
			}
			if f.kind == flowBreak {
				return normalFlow, nil
			}
			if f.kind == flowReturn {
				return f, nil
			}
		}
	case runtime.CharValue:
		ev := endV.(runtime.CharValue)
		step := int32(1)
		if ev.Value < sv.Value {
			step = -1
		}
		for cur := sv.Value; inBoundsInt(int32(cur), int32(ev.Value), step, r.Inclusive); cur += rune(step) {
			f, err := in.runForEachIteration(s, runtime.CharValue{Value: cur})
			if err != nil {
				return normalFlow, err
			}
			if f.kind == flowBreak {
				return normalFlow, nil
			}
			if f.kind == flowReturn {
				return f, nil
			}
		}
	default:
		return normalFlow, fmt.Errorf("for-each: unsupported range element type %s", startV.Type())
	}
	return normalFlow, nil
}

func (in *Interpreter) runForEachIteration(s *ast.ForEach, v runtime.Value) (flow, error) {
	in.env.Push()
	in.env.Declare(s.Var, v, false)
	f, err := in.execStmts(s.Body.Statements)
	derr := in.runDeferred(in.env.Top())
	in.env.Pop()
	if err != nil {
		return f, err
	}
	if derr != nil {
		return f, derr
	}
	return f, nil
}

func inBoundsInt(cur, end, step int32, inclusive bool) bool {
	if step > 0 {
		if inclusive {
			return cur <= end
		}
		return cur < end
	}
	if inclusive {
		return cur >= end
	}
	return cur > end
}

func inBoundsFloat(cur, end, step float32, inclusive bool) bool {
	if step > 0 {
		if inclusive {
			return cur <= end
		}
		return cur < end
	}
	if inclusive {
		return cur >= end
	}
	return cur > end
}

// execMatch tries each arm's pattern against the scrutinee in order;
// the first match runs its body in a new scope (binding an ID pattern
// to the scrutinee's value) and the rest are ignored (§4.4.2).
func (in *Interpreter) execMatch(s *ast.MatchStmt) (flow, error) {
	scrutinee, err := in.eval(s.Scrutinee)
	if err != nil {
		return normalFlow, err
	}
	for _, arm := range s.Arms {
		matched, bind, err := in.matchPattern(arm.Pattern, scrutinee)
		if err != nil {
			return normalFlow, err
		}
		if !matched {
			continue
		}
		in.env.Push()
		if bind {
			// Match-bound identifiers are mutable, matching the
			// analyzer's armScope.Define(..., mutable=true) (§4.3.3).
			in.env.Declare(arm.Pattern.(*ast.Ident).Name, scrutinee, true)
		}
		f, err := in.execStmts(arm.Body.Statements)
		derr := in.runDeferred(in.env.Top())
		in.env.Pop()
		if err != nil {
			return f, err
		}
		if derr != nil {
			return f, derr
		}
		return f, nil
	}
	return normalFlow, nil
}

// matchPattern reports whether pattern matches scrutinee and whether
// it binds a new variable. A LIT_NULL pattern matches only an actual
// NULL value — it is treated as type-unconstrained by the analyzer
// (§4.3.3) purely for static checking, but that laxness doesn't make
// it a wildcard at runtime; DEFAULT is the only wildcard pattern.
func (in *Interpreter) matchPattern(pattern ast.Expression, scrutinee runtime.Value) (matched, bind bool, err error) {
	switch p := pattern.(type) {
	case *ast.Default:
		return true, false, nil
	case *ast.Ident:
		return true, true, nil
	case *ast.NullLit:
		_, isNull := scrutinee.(runtime.NullValue)
		return isNull, false, nil
	case *ast.Range:
		ok, err := in.matchRange(p, scrutinee)
		return ok, false, err
	default:
		v, err := in.eval(pattern)
		if err != nil {
			return false, false, err
		}
		return runtime.Equal(v, scrutinee), false, nil
	}
}

func (in *Interpreter) matchRange(r *ast.Range, scrutinee runtime.Value) (bool, error) {
	startV, err := in.eval(r.Start)
	if err != nil {
		return false, err
	}
	endV, err := in.eval(r.End)
	if err != nil {
		return false, err
	}
	switch sv := scrutinee.(type) {
	case runtime.IntValue:
		lo, hi := startV.(runtime.IntValue).Value, endV.(runtime.IntValue).Value
		if lo > hi {
			lo, hi = hi, lo
		}
		if r.Inclusive {
			return sv.Value >= lo && sv.Value <= hi, nil
		}
		return sv.Value >= lo && sv.Value < hi, nil
	case runtime.FloatValue:
		lo, hi := startV.(runtime.FloatValue).Value, endV.(runtime.FloatValue).Value
		if lo > hi {
			lo, hi = hi, lo
		}
		if r.Inclusive {
			return sv.Value >= lo && sv.Value <= hi, nil
		}
		return sv.Value >= lo && sv.Value < hi, nil
	case runtime.CharValue:
		lo, hi := startV.(runtime.CharValue).Value, endV.(runtime.CharValue).Value
		if lo > hi {
			lo, hi = hi, lo
		}
		if r.Inclusive {
			return sv.Value >= lo && sv.Value <= hi, nil
		}
		return sv.Value >= lo && sv.Value < hi, nil
	default:
		return false, fmt.Errorf("match: range pattern requires an INT, FLOAT, or CHAR scrutinee, got %s", scrutinee.Type())
	}
}

// eval evaluates expr to a runtime.Value (§4.4.3).
func (in *Interpreter) eval(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.LitInt:
		return runtime.IntValue{Value: e.Value}, nil
	case *ast.LitFloat:
		return runtime.FloatValue{Value: e.Value}, nil
	case *ast.LitBool:
		return runtime.BoolValue{Value: e.Value}, nil
	case *ast.LitChar:
		return runtime.CharValue{Value: e.Value}, nil
	case *ast.LitString:
		return runtime.StringValue{Value: e.Value}, nil
	case *ast.NullLit:
		return runtime.Null, nil
	case *ast.Ident:
		return in.env.Get(e.Name)
	case *ast.Expr:
		return in.evalBinary(e)
	case *ast.PrfxExpr:
		return in.evalPrefix(e)
	case *ast.PtfxExpr:
		return in.evalPostfix(e)
	case *ast.Cast:
		return in.evalCast(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.IfExpr:
		// Defensive: the current lowerer only ever builds IF_EXPR in
		// statement position (see the analyzer's matching case), but
		// IfExpr implements Expression at the type level.
		f, err := in.execIf(e)
		if err != nil {
			return nil, err
		}
		if f.kind == flowReturn {
			return f.value, nil
		}
		return runtime.Null, nil
	default:
		return nil, fmt.Errorf("interp: unsupported expression %T", expr)
	}
}

func (in *Interpreter) evalBinary(e *ast.Expr) (runtime.Value, error) {
	switch e.Op {
	case types.AND:
		lv, err := in.eval(e.Lhs)
		if err != nil {
			return nil, err
		}
		if !lv.(runtime.BoolValue).Value {
			return runtime.BoolValue{Value: false}, nil
		}
		return in.eval(e.Rhs)
	case types.OR:
		lv, err := in.eval(e.Lhs)
		if err != nil {
			return nil, err
		}
		if lv.(runtime.BoolValue).Value {
			return runtime.BoolValue{Value: true}, nil
		}
		return in.eval(e.Rhs)
	case types.NULL_COAL:
		lv, err := in.eval(e.Lhs)
		if err != nil {
			return nil, err
		}
		if _, isNull := lv.(runtime.NullValue); isNull {
			return in.eval(e.Rhs)
		}
		return lv, nil
	}

	lv, err := in.eval(e.Lhs)
	if err != nil {
		return nil, err
	}
	rv, err := in.eval(e.Rhs)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case types.EQUAL:
		return runtime.BoolValue{Value: runtime.Equal(lv, rv)}, nil
	case types.NOT_EQUAL:
		return runtime.BoolValue{Value: !runtime.Equal(lv, rv)}, nil
	case types.XOR:
		return runtime.BoolValue{Value: lv.(runtime.BoolValue).Value != rv.(runtime.BoolValue).Value}, nil
	case types.LESS_THAN, types.GREATER_THAN, types.NOT_LESS_THAN, types.NOT_GREATER_THAN:
		return evalComparison(e.Op, lv, rv), nil
	case types.ADD:
		if ls, ok := lv.(runtime.StringValue); ok {
			return runtime.StringValue{Value: ls.Value + rv.(runtime.StringValue).Value}, nil
		}
		return evalArithmetic(e.Op, e.GetType(), lv, rv)
	case types.SUBTRACT, types.MULTIPLY, types.DIVIDE, types.REMAINDER, types.POWER, types.ROOT:
		return evalArithmetic(e.Op, e.GetType(), lv, rv)
	default:
		return nil, fmt.Errorf("interp: unsupported binary operator %s", e.Op)
	}
}

func evalComparison(op types.Operator, lv, rv runtime.Value) runtime.Value {
	lf, rf := toFloat64(lv), toFloat64(rv)
	var result bool
	switch op {
	case types.LESS_THAN:
		result = lf < rf
	case types.GREATER_THAN:
		result = lf > rf
	case types.NOT_LESS_THAN:
		result = lf >= rf
	case types.NOT_GREATER_THAN:
		result = lf <= rf
	}
	return runtime.BoolValue{Value: result}
}

func toFloat64(v runtime.Value) float64 {
	switch n := v.(type) {
	case runtime.IntValue:
		return float64(n.Value)
	case runtime.FloatValue:
		return float64(n.Value)
	default:
		return 0
	}
}

// evalArithmetic computes a binary arithmetic result of resultType
// (the analyzer's already-decided INT/FLOAT promotion, §4.3.3). INT
// results use wrapping int32 arithmetic, except ROOT, which delegates
// to float exponentiation (§4.4.3) and is rounded down to the integer
// root, the same value the folder produces (§4.2).
func evalArithmetic(op types.Operator, resultType types.VarType, lv, rv runtime.Value) (runtime.Value, error) {
	if resultType == types.INT {
		li, ri := lv.(runtime.IntValue).Value, rv.(runtime.IntValue).Value
		switch op {
		case types.ADD:
			return runtime.IntValue{Value: li + ri}, nil
		case types.SUBTRACT:
			return runtime.IntValue{Value: li - ri}, nil
		case types.MULTIPLY:
			return runtime.IntValue{Value: li * ri}, nil
		case types.DIVIDE:
			if ri == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return runtime.IntValue{Value: li / ri}, nil
		case types.REMAINDER:
			if ri == 0 {
				return nil, fmt.Errorf("remainder by zero")
			}
			return runtime.IntValue{Value: li % ri}, nil
		case types.POWER:
			return evalIntPower(li, ri)
		case types.ROOT:
			if ri == 0 {
				return nil, fmt.Errorf("root with a zero degree")
			}
			root := math.Floor(math.Pow(float64(li), 1.0/float64(ri)))
			if li >= 0 && ri > 0 && math.Pow(root+1, float64(ri)) <= float64(li) {
				root++ // math.Pow can land just below an exact root, e.g. 8^(1/3)
			}
			return runtime.IntValue{Value: int32(root)}, nil
		}
	}

	lf, rf := toFloat64(lv), toFloat64(rv)
	switch op {
	case types.ADD:
		return runtime.FloatValue{Value: float32(lf + rf)}, nil
	case types.SUBTRACT:
		return runtime.FloatValue{Value: float32(lf - rf)}, nil
	case types.MULTIPLY:
		return runtime.FloatValue{Value: float32(lf * rf)}, nil
	case types.DIVIDE:
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return runtime.FloatValue{Value: float32(lf / rf)}, nil
	case types.REMAINDER:
		if rf == 0 {
			return nil, fmt.Errorf("remainder by zero")
		}
		return runtime.FloatValue{Value: float32(math.Mod(lf, rf))}, nil
	case types.POWER:
		return runtime.FloatValue{Value: float32(math.Pow(lf, rf))}, nil
	case types.ROOT:
		if rf == 0 {
			return nil, fmt.Errorf("root with a zero degree")
		}
		return runtime.FloatValue{Value: float32(math.Pow(lf, 1.0/rf))}, nil
	}
	return nil, fmt.Errorf("interp: unsupported arithmetic operator %s", op)
}

func evalIntPower(base, exp int32) (runtime.Value, error) {
	if exp < 0 {
		return nil, fmt.Errorf("negative exponent on an integer")
	}
	result := int32(1)
	for i := int32(0); i < exp; i++ {
		result *= base
	}
	return runtime.IntValue{Value: result}, nil
}

func (in *Interpreter) evalPrefix(p *ast.PrfxExpr) (runtime.Value, error) {
	switch p.Op {
	case types.NOT:
		v, err := in.eval(p.Rhs)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Value: !v.(runtime.BoolValue).Value}, nil
	case types.NEGATIVE:
		v, err := in.eval(p.Rhs)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Value: -n.Value}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Value: -n.Value}, nil
		default:
			return nil, fmt.Errorf("interp: NEGATIVE requires a numeric operand, got %s", v.Type())
		}
	case types.RECIPROCAL:
		// RECIPROCAL on INT lifts to FLOAT(1.0/i) (§4.4.3).
		v, err := in.eval(p.Rhs)
		if err != nil {
			return nil, err
		}
		f := toFloat64(v)
		if f == 0 {
			return nil, fmt.Errorf("reciprocal of zero")
		}
		return runtime.FloatValue{Value: float32(1.0 / f)}, nil
	case types.INCREMENT, types.DECREMENT:
		return in.applyIncDec(p.Rhs, p.Op)
	default:
		return nil, fmt.Errorf("interp: unsupported prefix operator %s", p.Op)
	}
}

func (in *Interpreter) evalPostfix(p *ast.PtfxExpr) (runtime.Value, error) {
	return in.applyIncDec(p.Lhs, p.Op)
}

// applyIncDec implements INCREMENT/DECREMENT/SQUARE (prefix and
// postfix alike): read the identifier's current value, write the
// transformed value back, and yield the transformed value — spec.md
// gives postfix this exact wording, and prefix INCREMENT/DECREMENT
// are read-modify-write in the same sense, so both share this helper
// (§4.4.3; the analyzer already guarantees operand is an *ast.Ident).
func (in *Interpreter) applyIncDec(operand ast.Expression, op types.Operator) (runtime.Value, error) {
	id := operand.(*ast.Ident)
	cur, err := in.env.Get(id.Name)
	if err != nil {
		return nil, err
	}
	var next runtime.Value
	switch v := cur.(type) {
	case runtime.IntValue:
		switch op {
		case types.INCREMENT:
			next = runtime.IntValue{Value: v.Value + 1}
		case types.DECREMENT:
			next = runtime.IntValue{Value: v.Value - 1}
		case types.SQUARE:
			next = runtime.IntValue{Value: v.Value * v.Value}
		}
	case runtime.FloatValue:
		switch op {
		case types.INCREMENT:
			next = runtime.FloatValue{Value: v.Value + 1}
		case types.DECREMENT:
			next = runtime.FloatValue{Value: v.Value - 1}
		case types.SQUARE:
			next = runtime.FloatValue{Value: v.Value * v.Value}
		}
	default:
		return nil, fmt.Errorf("interp: '%s' requires a numeric identifier, got %s", op, cur.Type())
	}
	if err := in.env.Set(id.Name, next); err != nil {
		return nil, err
	}
	return next, nil
}

// evalCast converts v to target, per the same rule table the analyzer
// checked statically (§4.3.3, §4.4.4).
func (in *Interpreter) evalCast(c *ast.Cast) (runtime.Value, error) {
	v, err := in.eval(c.Expr)
	if err != nil {
		return nil, err
	}
	return castValue(v, c.Target)
}

func castValue(v runtime.Value, target types.VarType) (runtime.Value, error) {
	if v.Type() == target {
		return v, nil
	}
	switch target {
	case types.INT:
		switch n := v.(type) {
		case runtime.FloatValue:
			return runtime.IntValue{Value: int32(n.Value)}, nil
		case runtime.BoolValue:
			return runtime.IntValue{Value: boolToInt(n.Value)}, nil
		case runtime.CharValue:
			return runtime.IntValue{Value: int32(n.Value)}, nil
		}
	case types.FLOAT:
		switch n := v.(type) {
		case runtime.IntValue:
			return runtime.FloatValue{Value: float32(n.Value)}, nil
		case runtime.BoolValue:
			return runtime.FloatValue{Value: float32(boolToInt(n.Value))}, nil
		case runtime.CharValue:
			return runtime.FloatValue{Value: float32(n.Value)}, nil
		}
	case types.BOOLEAN:
		switch n := v.(type) {
		case runtime.IntValue:
			return runtime.BoolValue{Value: n.Value != 0}, nil
		case runtime.FloatValue:
			return runtime.BoolValue{Value: n.Value != 0}, nil
		case runtime.CharValue:
			return runtime.BoolValue{Value: n.Value != 0}, nil
		}
	case types.CHAR:
		switch n := v.(type) {
		case runtime.IntValue:
			return runtime.CharValue{Value: rune(n.Value)}, nil
		case runtime.FloatValue:
			return runtime.CharValue{Value: rune(int32(n.Value))}, nil
		case runtime.BoolValue:
			return runtime.CharValue{Value: rune(boolToInt(n.Value))}, nil
		}
	}
	return nil, fmt.Errorf("illegal cast from %s to %s", v.Type(), target)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (in *Interpreter) evalCall(c *ast.Call) (runtime.Value, error) {
	args := make([]runtime.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return in.call(c.Path, args)
}
