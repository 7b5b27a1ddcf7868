package semantic

import (
	"strings"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/diag"
	"github.com/ohl-lang/ohl/internal/natives"
	"github.com/ohl-lang/ohl/internal/types"
)

// Flow indicates whether a sub-tree unconditionally terminates control
// flow — return, break, continue, repeat, or a call to System.exit
// (§4.3.2).
type Flow int

const (
	CONTINUE Flow = iota
	STOP
)

// Analyzer performs the one-pass traversal of §4.3: signature
// collection, type-checking, scope/use tracking, and reachability.
type Analyzer struct {
	diags             *diag.Bag
	natives           *natives.Registry
	userFuncs         map[string]*types.FunctionSignature
	loopDepth         int
	currentReturnType types.VarType
}

// Analyze runs the Analyzer against the default native registry and
// returns its accumulated diagnostics. Check diags.HasErrors() to
// distinguish a clean run (possibly carrying warnings) from one that
// should abort the pipeline before the interpreter runs.
func Analyze(start *ast.Start) *diag.Bag {
	return NewAnalyzer(natives.DefaultRegistry).Analyze(start)
}

// NewAnalyzer creates an Analyzer against a specific native registry,
// letting tests substitute a trimmed registry without touching
// natives.DefaultRegistry.
func NewAnalyzer(registry *natives.Registry) *Analyzer {
	return &Analyzer{diags: &diag.Bag{}, natives: registry, userFuncs: make(map[string]*types.FunctionSignature)}
}

// Analyze runs the full traversal over start.
func (a *Analyzer) Analyze(start *ast.Start) *diag.Bag {
	a.collectSignatures(start)
	for _, fn := range start.Functions {
		a.analyzeFunction(fn)
	}
	a.checkUncalledFunctions(start)
	return a.diags
}

// collectSignatures implements §4.3.1: a pre-pass over START.functions,
// inserting {name -> sig}, with main pre-marked called. Native
// signatures live in the natives registry itself and need no separate
// collection step; analyzeNativeCall consults it directly.
func (a *Analyzer) collectSignatures(start *ast.Start) {
	for _, fn := range start.Functions {
		if _, exists := a.userFuncs[fn.Name]; exists {
			a.diags.Errorf(fn.Position, "duplicate function '%s'", fn.Name)
			continue
		}
		params := make([]types.VarType, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type
		}
		a.userFuncs[fn.Name] = &types.FunctionSignature{
			Parameters: params,
			ReturnType: fn.ReturnType,
			Called:     fn.Name == "main",
		}
	}
}

// checkUncalledFunctions implements §4.3.5.
func (a *Analyzer) checkUncalledFunctions(start *ast.Start) {
	for _, fn := range start.Functions {
		if sig, ok := a.userFuncs[fn.Name]; ok && !sig.Called {
			a.diags.Warnf(fn.Position, "Function '%s' is never called", fn.Name)
		}
	}
}

// analyzeFunction type-checks one function: its parameters occupy a
// scope enclosing the body's own block scope, so parameters are never
// subject to the body block's unused-variable sweep (§4.3.4 speaks of
// unused locals "in the block's local scope", and parameters are bound
// before that block is entered).
func (a *Analyzer) analyzeFunction(fn *ast.Function) {
	paramsScope := NewSymbolTable()
	for _, p := range fn.Params {
		paramsScope.Define(p.Name, p.Type, false, fn.Position)
	}

	prevReturnType := a.currentReturnType
	a.currentReturnType = fn.ReturnType
	a.analyzeBlockScoped(fn.Body, paramsScope)
	a.currentReturnType = prevReturnType

	if fn.ReturnType != types.NULL && !blockHasReturn(fn.Body) {
		a.diags.Errorf(fn.Position, "function '%s' must return a value of type %s on every path", fn.Name, fn.ReturnType)
	}
}

// analyzeBlockScoped enters a fresh scope nested in parent, analyzes
// every statement (flagging anything after a STOP as unreachable, per
// §3.7/§4.3.4), and runs the unused-variable sweep on exit.
func (a *Analyzer) analyzeBlockScoped(b *ast.Block, parent *SymbolTable) Flow {
	scope := NewEnclosedSymbolTable(parent)
	flow := CONTINUE
	stopped := false
	for _, stmt := range b.Statements {
		if stopped {
			a.diags.Warnf(stmt.Pos(), "unreachable statement")
			continue
		}
		if a.analyzeStmt(stmt, scope) == STOP {
			stopped = true
			flow = STOP
		}
	}
	a.checkUnused(scope)
	return flow
}

func (a *Analyzer) checkUnused(scope *SymbolTable) {
	for _, sym := range scope.LocalSymbols() {
		if !sym.Used {
			a.diags.Warnf(sym.Pos, "unused variable '%s'", sym.Name)
		}
	}
}

// ---- statements ----

func (a *Analyzer) analyzeStmt(stmt ast.Statement, scope *SymbolTable) Flow {
	switch s := stmt.(type) {
	case *ast.Block:
		return a.analyzeBlockScoped(s, scope)
	case *ast.LetStmt:
		return a.analyzeLet(s, scope)
	case *ast.AssignStmt:
		return a.analyzeAssign(s, scope)
	case *ast.ReturnStmt:
		return a.analyzeReturn(s, scope)
	case *ast.DeferStmt:
		a.analyzeStmt(s.Body, scope)
		return CONTINUE
	case *ast.IfExpr:
		return a.analyzeIf(s, scope)
	case *ast.WhileExpr:
		return a.analyzeWhile(s, scope)
	case *ast.DoWhile:
		return a.analyzeDoWhile(s, scope)
	case *ast.LoopExpr:
		return a.analyzeLoop(s, scope)
	case *ast.ForExpr:
		return a.analyzeFor(s, scope)
	case *ast.ForEach:
		return a.analyzeForEach(s, scope)
	case *ast.MatchStmt:
		return a.analyzeMatch(s, scope)
	case *ast.Break:
		if a.loopDepth == 0 {
			a.diags.Errorf(s.Position, "'break' used outside of a loop")
		}
		return STOP
	case *ast.Continue:
		if a.loopDepth == 0 {
			a.diags.Errorf(s.Position, "'continue' used outside of a loop")
		}
		return STOP
	case *ast.Repeat:
		if a.loopDepth == 0 {
			a.diags.Errorf(s.Position, "'repeat' used outside of a loop")
		}
		return STOP
	case *ast.BlankStmt:
		return CONTINUE
	case *ast.ExprStmt:
		_, flow := a.analyzeExpr(s.Expr, scope)
		return flow
	default:
		return CONTINUE
	}
}

func assignable(from, to types.VarType) bool {
	return from == types.NULL || from == to
}

func (a *Analyzer) analyzeLet(s *ast.LetStmt, scope *SymbolTable) Flow {
	initType, flow := a.analyzeExpr(s.Init, scope)
	declType := s.DeclType
	switch {
	case declType != types.NULL:
		if !assignable(initType, declType) {
			a.diags.Errorf(s.Position, "cannot assign %s to variable '%s' of type %s", initType, s.Name, declType)
		}
	default:
		declType = initType
	}
	scope.Define(s.Name, declType, s.Mutable, s.Position)
	return flow
}

func (a *Analyzer) analyzeAssign(s *ast.AssignStmt, scope *SymbolTable) Flow {
	rhsType, flow := a.analyzeExpr(s.Expr, scope)
	sym, ok := scope.Resolve(s.Name)
	if !ok {
		a.diags.Errorf(s.Position, "unknown variable '%s'", s.Name)
		return flow
	}
	if !sym.Mutable {
		a.diags.Errorf(s.Position, "Variable '%s' is immutable and cannot be modified", s.Name)
	} else if !assignable(rhsType, sym.Type) {
		a.diags.Errorf(s.Position, "cannot assign %s to variable '%s' of type %s", rhsType, s.Name, sym.Type)
	}
	return flow
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt, scope *SymbolTable) Flow {
	exprType := types.NULL
	if s.Expr != nil {
		exprType, _ = a.analyzeExpr(s.Expr, scope)
	}
	if !assignable(exprType, a.currentReturnType) {
		a.diags.Errorf(s.Position, "cannot return %s from a function declared to return %s", exprType, a.currentReturnType)
	}
	return STOP
}

func (a *Analyzer) analyzeIf(s *ast.IfExpr, scope *SymbolTable) Flow {
	condType, _ := a.analyzeExpr(s.Cond, scope)
	if condType != types.BOOLEAN && condType != types.NULL {
		a.diags.Errorf(s.Cond.Pos(), "if condition must be BOOLEAN, got %s", condType)
	}
	thenFlow := a.analyzeBlockScoped(s.Then, scope)
	elseFlow := CONTINUE
	if s.Else != nil {
		elseFlow = a.analyzeStmt(s.Else, scope)
	}
	s.SetType(types.NULL)
	if s.Else != nil && thenFlow == STOP && elseFlow == STOP {
		return STOP
	}
	return CONTINUE
}

func (a *Analyzer) analyzeWhile(s *ast.WhileExpr, scope *SymbolTable) Flow {
	condType, _ := a.analyzeExpr(s.Cond, scope)
	if condType != types.BOOLEAN && condType != types.NULL {
		a.diags.Errorf(s.Cond.Pos(), "while condition must be BOOLEAN, got %s", condType)
	}
	a.loopDepth++
	a.analyzeBlockScoped(s.Body, scope)
	a.loopDepth--
	return CONTINUE
}

func (a *Analyzer) analyzeDoWhile(s *ast.DoWhile, scope *SymbolTable) Flow {
	a.loopDepth++
	a.analyzeBlockScoped(s.Body, scope)
	a.loopDepth--
	condType, _ := a.analyzeExpr(s.Cond, scope)
	if condType != types.BOOLEAN && condType != types.NULL {
		a.diags.Errorf(s.Cond.Pos(), "do-while condition must be BOOLEAN, got %s", condType)
	}
	return CONTINUE
}

// analyzeLoop implements the LOOP_EXPR header rule: count must be an
// int literal or an INT variable (§4.3.3).
func (a *Analyzer) analyzeLoop(s *ast.LoopExpr, scope *SymbolTable) Flow {
	switch c := s.Count.(type) {
	case *ast.LitInt:
		c.SetType(types.INT)
	case *ast.Ident:
		if t := a.analyzeIdent(c, scope); t != types.INT {
			a.diags.Errorf(c.Position, "loop count variable '%s' must be INT, got %s", c.Name, t)
		}
	default:
		t, _ := a.analyzeExpr(s.Count, scope)
		a.diags.Errorf(s.Count.Pos(), "loop count must be an int literal or an INT variable, got an expression of type %s", t)
	}
	a.loopDepth++
	a.analyzeBlockScoped(s.Body, scope)
	a.loopDepth--
	return CONTINUE
}

func (a *Analyzer) analyzeFor(s *ast.ForExpr, scope *SymbolTable) Flow {
	forScope := NewEnclosedSymbolTable(scope)
	if s.Init != nil {
		a.analyzeStmt(s.Init, forScope)
	}
	condType, _ := a.analyzeExpr(s.Cond, forScope)
	if condType != types.BOOLEAN && condType != types.NULL {
		a.diags.Errorf(s.Cond.Pos(), "for condition must be BOOLEAN, got %s", condType)
	}
	a.loopDepth++
	a.analyzeBlockScoped(s.Body, forScope)
	if s.Modifier != nil {
		a.analyzeStmt(s.Modifier, forScope)
	}
	a.loopDepth--
	a.checkUnused(forScope)
	return CONTINUE
}

// analyzeForEach implements the for-each typing rule: the iterable must
// be a STRING (element CHAR) or a RANGE (element = bound type); a
// Range's ResolvedType holds its element type, since VarType has no
// dedicated RANGE kind (ranges are a control-flow iterable, not a
// first-class runtime value per §3.6).
func (a *Analyzer) analyzeForEach(s *ast.ForEach, scope *SymbolTable) Flow {
	iterType, _ := a.analyzeExpr(s.Iterable, scope)
	_, isRange := s.Iterable.(*ast.Range)

	var elemType types.VarType
	switch {
	case iterType == types.STRING:
		elemType = types.CHAR
	case isRange && (iterType == types.INT || iterType == types.FLOAT || iterType == types.CHAR):
		elemType = iterType
	default:
		a.diags.Errorf(s.Iterable.Pos(), "for-each iterable must be a STRING or a RANGE, got %s", iterType)
		elemType = types.NULL
	}

	bodyScope := NewEnclosedSymbolTable(scope)
	bodyScope.Define(s.Var, elemType, true, s.Position)
	a.loopDepth++
	a.analyzeBlockScoped(s.Body, bodyScope)
	a.loopDepth--
	a.checkUnused(bodyScope)
	return CONTINUE
}

func (a *Analyzer) analyzeMatch(s *ast.MatchStmt, scope *SymbolTable) Flow {
	scrutType, _ := a.analyzeExpr(s.Scrutinee, scope)

	seenDefault := false
	allStop := len(s.Arms) > 0
	for _, arm := range s.Arms {
		if seenDefault {
			a.diags.Warnf(arm.Position, "unreachable match arm after 'default'")
		}
		if _, ok := arm.Pattern.(*ast.Default); ok {
			if seenDefault {
				a.diags.Errorf(arm.Position, "multiple 'default' arms in match")
			}
			seenDefault = true
		}

		armScope := NewEnclosedSymbolTable(scope)
		a.analyzeMatchPattern(arm.Pattern, scrutType, armScope)
		if a.analyzeBlockScoped(arm.Body, armScope) != STOP {
			allStop = false
		}
	}

	if allStop {
		return STOP
	}
	return CONTINUE
}

// analyzeMatchPattern implements the match-pattern typing rule: literal
// patterns must equal the scrutinee's type; an ID pattern binds a new
// variable of the scrutinee's type in the arm's scope; RANGE patterns
// are allowed only for INT/FLOAT/CHAR scrutinees; DEFAULT and NULL
// patterns are unconstrained.
func (a *Analyzer) analyzeMatchPattern(pattern ast.Expression, scrutType types.VarType, armScope *SymbolTable) {
	switch p := pattern.(type) {
	case *ast.Default:
		p.SetType(scrutType)
	case *ast.NullLit:
		p.SetType(types.NULL)
	case *ast.Ident:
		armScope.Define(p.Name, scrutType, true, p.Position)
		p.SetType(scrutType)
	case *ast.Range:
		boundType, _ := a.analyzeRange(p, armScope)
		if scrutType != types.INT && scrutType != types.FLOAT && scrutType != types.CHAR {
			a.diags.Errorf(p.Position, "range patterns are only allowed for INT, FLOAT, or CHAR scrutinees, got %s", scrutType)
		} else if boundType != scrutType {
			a.diags.Errorf(p.Position, "range pattern bound type %s does not match scrutinee type %s", boundType, scrutType)
		}
	default:
		patType, _ := a.analyzeExpr(pattern, armScope)
		if patType != scrutType {
			a.diags.Errorf(pattern.Pos(), "match pattern type %s does not match scrutinee type %s", patType, scrutType)
		}
	}
}

// ---- expressions ----

func combineFlow(flows ...Flow) Flow {
	for _, f := range flows {
		if f == STOP {
			return STOP
		}
	}
	return CONTINUE
}

func (a *Analyzer) analyzeExpr(expr ast.Expression, scope *SymbolTable) (types.VarType, Flow) {
	switch e := expr.(type) {
	case *ast.LitInt:
		e.SetType(types.INT)
		return types.INT, CONTINUE
	case *ast.LitFloat:
		e.SetType(types.FLOAT)
		return types.FLOAT, CONTINUE
	case *ast.LitBool:
		e.SetType(types.BOOLEAN)
		return types.BOOLEAN, CONTINUE
	case *ast.LitChar:
		e.SetType(types.CHAR)
		return types.CHAR, CONTINUE
	case *ast.LitString:
		e.SetType(types.STRING)
		return types.STRING, CONTINUE
	case *ast.NullLit:
		e.SetType(types.NULL)
		return types.NULL, CONTINUE
	case *ast.Default:
		e.SetType(types.NULL)
		return types.NULL, CONTINUE
	case *ast.Ident:
		return a.analyzeIdent(e, scope), CONTINUE
	case *ast.Expr:
		return a.analyzeBinary(e, scope)
	case *ast.PrfxExpr:
		return a.analyzePrefix(e, scope)
	case *ast.PtfxExpr:
		return a.analyzePostfix(e, scope)
	case *ast.Cast:
		return a.analyzeCast(e, scope)
	case *ast.Range:
		return a.analyzeRange(e, scope)
	case *ast.Call:
		return a.analyzeCall(e, scope)
	case *ast.IfExpr:
		// The current lowerer never produces an IF_EXPR in expression
		// position, but ast.IfExpr implements Expression, so handle it
		// defensively rather than silently mistyping it NULL.
		return types.NULL, a.analyzeIf(e, scope)
	default:
		return types.NULL, CONTINUE
	}
}

func (a *Analyzer) analyzeIdent(id *ast.Ident, scope *SymbolTable) types.VarType {
	sym, ok := scope.Resolve(id.Name)
	if !ok {
		a.diags.Errorf(id.Position, "unknown variable '%s'", id.Name)
		id.SetType(types.NULL)
		return types.NULL
	}
	sym.Used = true
	id.SetType(sym.Type)
	return sym.Type
}

func (a *Analyzer) analyzeRange(r *ast.Range, scope *SymbolTable) (types.VarType, Flow) {
	startType, f1 := a.analyzeExpr(r.Start, scope)
	endType, f2 := a.analyzeExpr(r.End, scope)
	switch {
	case startType != endType:
		a.diags.Errorf(r.Position, "range bounds must have the same type, got %s and %s", startType, endType)
	case startType != types.INT && startType != types.FLOAT && startType != types.CHAR:
		a.diags.Errorf(r.Position, "range bounds must be INT, FLOAT, or CHAR, got %s", startType)
	}
	r.SetType(startType)
	return startType, combineFlow(f1, f2)
}

// analyzeBinary implements §4.3.3's binary-operator rules, including
// the blanket "a non-null-coalescing operator with a NULL operand is
// an error" rule, applied uniformly (including to EQUAL/NOT_EQUAL),
// since spec.md states it without carving out an exception and the
// interpreter's own NULL-equality semantics (§4.4.3) only ever see
// NULL operands whose static type wasn't flagged NULL by the analyzer
// (e.g. a NULL_COAL fallback that already resolved to a concrete type).
func (a *Analyzer) analyzeBinary(e *ast.Expr, scope *SymbolTable) (types.VarType, Flow) {
	lhsType, f1 := a.analyzeExpr(e.Lhs, scope)
	rhsType, f2 := a.analyzeExpr(e.Rhs, scope)
	flow := combineFlow(f1, f2)

	if e.Op != types.NULL_COAL && (lhsType == types.NULL || rhsType == types.NULL) {
		a.diags.Errorf(e.Position, "operator '%s' does not accept a NULL operand", e.Op)
		e.SetType(types.NULL)
		return types.NULL, flow
	}

	var result types.VarType
	switch e.Op {
	case types.ADD:
		if lhsType == types.STRING && rhsType == types.STRING {
			result = types.STRING
		} else {
			result = a.analyzeArithmetic(e, lhsType, rhsType)
		}
	case types.SUBTRACT, types.MULTIPLY, types.DIVIDE, types.REMAINDER, types.POWER, types.ROOT:
		result = a.analyzeArithmetic(e, lhsType, rhsType)
	case types.EQUAL, types.NOT_EQUAL:
		result = types.BOOLEAN
	case types.LESS_THAN, types.GREATER_THAN, types.NOT_LESS_THAN, types.NOT_GREATER_THAN:
		if !lhsType.IsNumeric() || !rhsType.IsNumeric() {
			a.diags.Errorf(e.Position, "comparison '%s' requires numeric operands, got %s and %s", e.Op, lhsType, rhsType)
		}
		result = types.BOOLEAN
	case types.AND, types.OR, types.XOR:
		if lhsType != types.BOOLEAN || rhsType != types.BOOLEAN {
			a.diags.Errorf(e.Position, "logical '%s' requires BOOLEAN operands, got %s and %s", e.Op, lhsType, rhsType)
		}
		result = types.BOOLEAN
	case types.NULL_COAL:
		switch {
		case lhsType == types.NULL:
			result = rhsType
		case rhsType == types.NULL:
			result = lhsType
		case lhsType != rhsType:
			a.diags.Errorf(e.Position, "'??' operand types must match, got %s and %s", lhsType, rhsType)
			result = lhsType
		default:
			result = lhsType
		}
	default:
		result = types.NULL
	}
	e.SetType(result)
	return result, flow
}

func (a *Analyzer) analyzeArithmetic(e *ast.Expr, lhsType, rhsType types.VarType) types.VarType {
	if !lhsType.IsNumeric() || !rhsType.IsNumeric() {
		a.diags.Errorf(e.Position, "arithmetic '%s' requires numeric operands, got %s and %s", e.Op, lhsType, rhsType)
		return types.NULL
	}
	if lhsType == types.FLOAT || rhsType == types.FLOAT {
		return types.FLOAT
	}
	return types.INT
}

// analyzePrefix covers NOT, NEGATIVE, RECIPROCAL, and prefix
// INCREMENT/DECREMENT (§4.3.3; RECIPROCAL's always-FLOAT result is
// grounded on §4.4.3's "prefix RECIPROCAL on INT lifts to FLOAT").
func (a *Analyzer) analyzePrefix(p *ast.PrfxExpr, scope *SymbolTable) (types.VarType, Flow) {
	rhsType, flow := a.analyzeExpr(p.Rhs, scope)
	var result types.VarType
	switch p.Op {
	case types.NOT:
		if rhsType != types.BOOLEAN {
			a.diags.Errorf(p.Position, "'!' requires a BOOLEAN operand, got %s", rhsType)
		}
		result = types.BOOLEAN
	case types.NEGATIVE:
		if !rhsType.IsNumeric() {
			a.diags.Errorf(p.Position, "unary '-' requires a numeric operand, got %s", rhsType)
			result = types.NULL
		} else {
			result = rhsType
		}
	case types.RECIPROCAL:
		if !rhsType.IsNumeric() {
			a.diags.Errorf(p.Position, "unary '/' requires a numeric operand, got %s", rhsType)
		}
		result = types.FLOAT
	case types.INCREMENT, types.DECREMENT:
		result = a.checkIncDecOperand(p.Rhs, rhsType, p.Op)
	default:
		result = rhsType
	}
	p.SetType(result)
	return result, flow
}

// analyzePostfix covers postfix INCREMENT, DECREMENT, and SQUARE, all
// of which require an identifier operand per §4.4.2's runtime
// description (the analyzer prose names only INCREMENT/DECREMENT
// explicitly; SQUARE is held to the same rule since it reads-and-writes
// back just like the other two).
func (a *Analyzer) analyzePostfix(p *ast.PtfxExpr, scope *SymbolTable) (types.VarType, Flow) {
	lhsType, flow := a.analyzeExpr(p.Lhs, scope)
	result := a.checkIncDecOperand(p.Lhs, lhsType, p.Op)
	p.SetType(result)
	return result, flow
}

func (a *Analyzer) checkIncDecOperand(operand ast.Expression, operandType types.VarType, op types.Operator) types.VarType {
	id, isID := operand.(*ast.Ident)
	if !isID {
		a.diags.Errorf(operand.Pos(), "'%s' requires an identifier operand, not a literal or expression", op)
		return operandType
	}
	if !operandType.IsNumeric() {
		a.diags.Errorf(operand.Pos(), "'%s' requires a numeric identifier, got %s ('%s')", op, operandType, id.Name)
	}
	return operandType
}

func (a *Analyzer) analyzeCast(c *ast.Cast, scope *SymbolTable) (types.VarType, Flow) {
	srcType, flow := a.analyzeExpr(c.Expr, scope)
	if !castAllowed(srcType, c.Target) {
		a.diags.Errorf(c.Position, "cannot cast %s to %s", srcType, c.Target)
	}
	c.SetType(c.Target)
	return c.Target, flow
}

// castAllowed implements §4.3.3's cast table: identity casts pass
// through; STRING participates only in STRING->STRING (an identity,
// already handled); NULL may never be cast; otherwise every pair drawn
// from {INT, FLOAT, BOOLEAN, CHAR} is allowed.
func castAllowed(from, to types.VarType) bool {
	if from == to {
		return true
	}
	if from == types.NULL || from == types.STRING || to == types.STRING {
		return false
	}
	return isCastablePrimitive(from) && isCastablePrimitive(to)
}

func isCastablePrimitive(t types.VarType) bool {
	return t == types.INT || t == types.FLOAT || t == types.BOOLEAN || t == types.CHAR
}

func (a *Analyzer) analyzeCall(c *ast.Call, scope *SymbolTable) (types.VarType, Flow) {
	argTypes := make([]types.VarType, len(c.Args))
	flow := CONTINUE
	for i, arg := range c.Args {
		t, f := a.analyzeExpr(arg, scope)
		argTypes[i] = t
		if f == STOP {
			flow = STOP
		}
	}
	if len(c.Path) == 1 {
		return a.analyzeUserCall(c, argTypes, flow)
	}
	return a.analyzeNativeCall(c, argTypes, flow)
}

func (a *Analyzer) analyzeUserCall(c *ast.Call, argTypes []types.VarType, flow Flow) (types.VarType, Flow) {
	name := c.Path[0]
	sig, ok := a.userFuncs[name]
	if !ok {
		a.diags.Errorf(c.Position, "unknown function '%s'", name)
		c.SetType(types.NULL)
		return types.NULL, flow
	}
	sig.Called = true

	if len(argTypes) != len(sig.Parameters) {
		a.diags.Errorf(c.Position, "function '%s' expects %d argument(s), got %d", name, len(sig.Parameters), len(argTypes))
	} else {
		for i, t := range argTypes {
			if !assignable(t, sig.Parameters[i]) {
				a.diags.Errorf(c.Position, "argument %d to '%s': expected %s, got %s", i+1, name, sig.Parameters[i], t)
			}
		}
	}
	c.SetType(sig.ReturnType)
	return sig.ReturnType, flow
}

// analyzeNativeCall implements §4.3.1's native pre-registration (looked
// up lazily against the registry rather than copied into userFuncs) and
// §4.3.3's "System.exit is STOP at the call site" rule.
func (a *Analyzer) analyzeNativeCall(c *ast.Call, argTypes []types.VarType, flow Flow) (types.VarType, Flow) {
	n, ok := a.natives.Lookup(c.Path)
	if !ok {
		a.diags.Errorf(c.Position, "unknown native function '%s'", strings.Join(c.Path, "."))
		c.SetType(types.NULL)
		return types.NULL, flow
	}

	resultType, err := n.Signature.CheckArgs(argTypes)
	if err != nil {
		a.diags.Errorf(c.Position, "%s: %s", strings.Join(c.Path, "."), err)
	}
	c.SetType(resultType)

	if len(c.Path) == 2 && c.Path[0] == "System" && c.Path[1] == "exit" {
		flow = STOP
	}
	return resultType, flow
}

// blockHasReturn approximates "a RETURN_STMT on every path reachable
// from the entry" structurally (§4.3.3): loops are never considered
// guaranteed-terminating (the analyzer is not a termination analysis),
// only IF (with both branches) and MATCH (with every arm) propagate a
// guaranteed return from their sub-blocks.
func blockHasReturn(b *ast.Block) bool {
	for _, stmt := range b.Statements {
		if hasReturn(stmt) {
			return true
		}
	}
	return false
}

func hasReturn(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.Block:
		return blockHasReturn(s)
	case *ast.IfExpr:
		if s.Else == nil {
			return false
		}
		return blockHasReturn(s.Then) && hasReturn(s.Else)
	case *ast.MatchStmt:
		if len(s.Arms) == 0 {
			return false
		}
		for _, arm := range s.Arms {
			if !blockHasReturn(arm.Body) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
