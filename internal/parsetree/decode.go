package parsetree

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/ohl-lang/ohl/pkg/token"
)

// Decode reads a YAML-encoded parse tree and builds the typed node graph
// declared in this package. Since the lexer/parser that would normally
// produce this tree from `.ohl` source text are external collaborators
// (§1, §6.1), a fixture or tool standing in for that parser emits this
// YAML shape directly — one map per node, keyed by the field names above
// plus a "kind" discriminator naming the Go type (e.g. "FuncDecl",
// "BinaryExpr"). This is the boundary `cmd/ohl` reads from disk.
func Decode(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parsetree: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsetree: invalid YAML: %w", err)
	}
	return decodeProgram(raw)
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func field(m map[string]any, name string) any {
	if m == nil {
		return nil
	}
	return m[name]
}

func fieldMap(m map[string]any, name string) (map[string]any, bool) {
	return asMap(field(m, name))
}

func fieldSlice(m map[string]any, name string) []any {
	s, _ := asSlice(field(m, name))
	return s
}

func fieldString(m map[string]any, name string) string {
	s, _ := field(m, name).(string)
	return s
}

func fieldBool(m map[string]any, name string) bool {
	b, _ := field(m, name).(bool)
	return b
}

func fieldInt32(m map[string]any, name string) int32 {
	switch n := field(m, name).(type) {
	case int:
		return int32(n)
	case int64:
		return int32(n)
	case uint64:
		return int32(n)
	case float64:
		return int32(n)
	default:
		return 0
	}
}

func fieldFloat32(m map[string]any, name string) float32 {
	switch n := field(m, name).(type) {
	case float64:
		return float32(n)
	case int:
		return float32(n)
	case int64:
		return float32(n)
	default:
		return 0
	}
}

func fieldRune(m map[string]any, name string) rune {
	s := fieldString(m, name)
	for _, r := range s {
		return r
	}
	return 0
}

func decodePosition(m map[string]any) token.Position {
	pm, ok := fieldMap(m, "position")
	if !ok {
		return token.Position{}
	}
	return token.Position{
		Line:   int(fieldInt32(pm, "line")),
		Column: int(fieldInt32(pm, "column")),
		Offset: int(fieldInt32(pm, "offset")),
	}
}

func decodeProgram(m map[string]any) (*Program, error) {
	p := &Program{Position: decodePosition(m)}
	for _, fv := range fieldSlice(m, "functions") {
		fm, ok := asMap(fv)
		if !ok {
			return nil, fmt.Errorf("parsetree: function entry is not a map")
		}
		fn, err := decodeFuncDecl(fm)
		if err != nil {
			return nil, err
		}
		p.Functions = append(p.Functions, fn)
	}
	return p, nil
}

func decodeFuncDecl(m map[string]any) (*FuncDecl, error) {
	fn := &FuncDecl{
		Visibility: Visibility(fieldString(m, "visibility")),
		Name:       fieldString(m, "name"),
		Position:   decodePosition(m),
	}
	if rt, ok := fieldMap(m, "returnType"); ok {
		fn.ReturnType = decodeTypeRef(rt)
	}
	if pl, ok := fieldMap(m, "params"); ok {
		params, err := decodeParamList(pl)
		if err != nil {
			return nil, err
		}
		fn.Params = params
	} else {
		fn.Params = &ParamList{}
	}
	if bm, ok := fieldMap(m, "body"); ok {
		body, err := decodeBlock(bm)
		if err != nil {
			return nil, err
		}
		fn.Body = body
	}
	return fn, nil
}

func decodeParamList(m map[string]any) (*ParamList, error) {
	pl := &ParamList{Position: decodePosition(m)}
	for _, pv := range fieldSlice(m, "params") {
		pm, ok := asMap(pv)
		if !ok {
			return nil, fmt.Errorf("parsetree: param entry is not a map")
		}
		pl.Params = append(pl.Params, &Param{
			Name:     fieldString(pm, "name"),
			Type:     decodeTypeRef(mustMap(pm, "type")),
			Position: decodePosition(pm),
		})
	}
	return pl, nil
}

func mustMap(m map[string]any, name string) map[string]any {
	tm, _ := fieldMap(m, name)
	return tm
}

func decodeTypeRef(m map[string]any) *TypeRef {
	if m == nil {
		return nil
	}
	return &TypeRef{Name: fieldString(m, "name"), Position: decodePosition(m)}
}

func decodeBlock(m map[string]any) (*Block, error) {
	b := &Block{Position: decodePosition(m)}
	for _, sv := range fieldSlice(m, "statements") {
		sm, ok := asMap(sv)
		if !ok {
			return nil, fmt.Errorf("parsetree: statement entry is not a map")
		}
		stmt, err := decodeStatement(sm)
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, stmt)
	}
	return b, nil
}

func decodeMutability(s string) Mutability {
	switch s {
	case "mutable":
		return Mutable
	case "immutable":
		return Immutable
	default:
		return MutabilityDefault
	}
}

func decodeStatement(m map[string]any) (Statement, error) {
	kind := fieldString(m, "kind")
	pos := decodePosition(m)
	switch kind {
	case "Block":
		return decodeBlock(m)
	case "VarDecl":
		v := &VarDecl{
			Name:       fieldString(m, "name"),
			Mutability: decodeMutability(fieldString(m, "mutability")),
			Position:   pos,
		}
		if tm, ok := fieldMap(m, "declType"); ok {
			v.DeclType = decodeTypeRef(tm)
		}
		if im, ok := fieldMap(m, "init"); ok {
			init, err := decodeExpression(im)
			if err != nil {
				return nil, err
			}
			v.Init = init
		}
		return v, nil
	case "AssignStmt":
		expr, err := decodeExpression(mustMap(m, "expr"))
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Name: fieldString(m, "name"), Expr: expr, Position: pos}, nil
	case "CompoundAssignStmt":
		expr, err := decodeExpression(mustMap(m, "expr"))
		if err != nil {
			return nil, err
		}
		return &CompoundAssignStmt{Name: fieldString(m, "name"), Op: fieldString(m, "op"), Expr: expr, Position: pos}, nil
	case "ReturnStmt":
		r := &ReturnStmt{Position: pos}
		if em, ok := fieldMap(m, "expr"); ok {
			expr, err := decodeExpression(em)
			if err != nil {
				return nil, err
			}
			r.Expr = expr
		}
		return r, nil
	case "DeferStmt":
		body, err := decodeStatement(mustMap(m, "body"))
		if err != nil {
			return nil, err
		}
		return &DeferStmt{Body: body, Position: pos}, nil
	case "IfExpr":
		return decodeIfExpr(m)
	case "WhileExpr":
		cond, err := decodeExpression(mustMap(m, "cond"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(mustMap(m, "body"))
		if err != nil {
			return nil, err
		}
		return &WhileExpr{Cond: cond, Body: body, Position: pos}, nil
	case "DoWhile":
		body, err := decodeBlock(mustMap(m, "body"))
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpression(mustMap(m, "cond"))
		if err != nil {
			return nil, err
		}
		return &DoWhile{Body: body, Cond: cond, Position: pos}, nil
	case "LoopExpr":
		count, err := decodeExpression(mustMap(m, "count"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(mustMap(m, "body"))
		if err != nil {
			return nil, err
		}
		return &LoopExpr{Count: count, Body: body, Position: pos}, nil
	case "ForExpr":
		return decodeForExpr(m)
	case "ForEach":
		iter, err := decodeExpression(mustMap(m, "iterable"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(mustMap(m, "body"))
		if err != nil {
			return nil, err
		}
		return &ForEach{Var: fieldString(m, "var"), Iterable: iter, Body: body, Position: pos}, nil
	case "MatchStmt":
		return decodeMatchStmt(m)
	case "Break":
		return &Break{Position: pos}, nil
	case "Continue":
		return &Continue{Position: pos}, nil
	case "Repeat":
		return &Repeat{Position: pos}, nil
	case "BlankStmt":
		return &BlankStmt{Position: pos}, nil
	case "CallExpr":
		return decodeCallExpr(m)
	case "PostfixExpr":
		return decodePostfixExpr(m)
	default:
		return nil, fmt.Errorf("parsetree: unrecognized statement kind %q at %s", kind, pos)
	}
}

func decodeIfExpr(m map[string]any) (*IfExpr, error) {
	cond, err := decodeExpression(mustMap(m, "cond"))
	if err != nil {
		return nil, err
	}
	then, err := decodeBlock(mustMap(m, "then"))
	if err != nil {
		return nil, err
	}
	i := &IfExpr{Cond: cond, Then: then, Position: decodePosition(m)}
	if em, ok := fieldMap(m, "else"); ok {
		elseStmt, err := decodeStatement(em)
		if err != nil {
			return nil, err
		}
		i.Else = elseStmt
	}
	return i, nil
}

func decodeForExpr(m map[string]any) (*ForExpr, error) {
	f := &ForExpr{Position: decodePosition(m)}
	if im, ok := fieldMap(m, "init"); ok {
		init, err := decodeStatement(im)
		if err != nil {
			return nil, err
		}
		f.Init = init
	}
	if cm, ok := fieldMap(m, "cond"); ok {
		cond, err := decodeExpression(cm)
		if err != nil {
			return nil, err
		}
		f.Cond = cond
	}
	if mm, ok := fieldMap(m, "modifier"); ok {
		mod, err := decodeStatement(mm)
		if err != nil {
			return nil, err
		}
		f.Modifier = mod
	}
	body, err := decodeBlock(mustMap(m, "body"))
	if err != nil {
		return nil, err
	}
	f.Body = body
	return f, nil
}

func decodeMatchStmt(m map[string]any) (*MatchStmt, error) {
	scrutinee, err := decodeExpression(mustMap(m, "scrutinee"))
	if err != nil {
		return nil, err
	}
	match := &MatchStmt{Scrutinee: scrutinee, Position: decodePosition(m)}
	for _, av := range fieldSlice(m, "arms") {
		am, ok := asMap(av)
		if !ok {
			return nil, fmt.Errorf("parsetree: match arm entry is not a map")
		}
		pattern, err := decodeExpression(mustMap(am, "pattern"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(mustMap(am, "body"))
		if err != nil {
			return nil, err
		}
		match.Arms = append(match.Arms, &MatchArm{Pattern: pattern, Body: body, Position: decodePosition(am)})
	}
	return match, nil
}

func decodeCallExpr(m map[string]any) (*CallExpr, error) {
	target, err := decodeExpression(mustMap(m, "target"))
	if err != nil {
		return nil, err
	}
	c := &CallExpr{Target: target, Position: decodePosition(m)}
	for _, av := range fieldSlice(m, "args") {
		am, ok := asMap(av)
		if !ok {
			return nil, fmt.Errorf("parsetree: call argument entry is not a map")
		}
		arg, err := decodeExpression(am)
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, arg)
	}
	return c, nil
}

func decodePostfixExpr(m map[string]any) (*PostfixExpr, error) {
	left, err := decodeExpression(mustMap(m, "left"))
	if err != nil {
		return nil, err
	}
	return &PostfixExpr{Left: left, Op: fieldString(m, "op"), Position: decodePosition(m)}, nil
}

func decodeExpression(m map[string]any) (Expression, error) {
	kind := fieldString(m, "kind")
	pos := decodePosition(m)
	switch kind {
	case "BinaryExpr":
		left, err := decodeExpression(mustMap(m, "left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(mustMap(m, "right"))
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Left: left, Op: fieldString(m, "op"), Right: right, Position: pos}, nil
	case "PrefixExpr":
		right, err := decodeExpression(mustMap(m, "right"))
		if err != nil {
			return nil, err
		}
		return &PrefixExpr{Op: fieldString(m, "op"), Right: right, Position: pos}, nil
	case "PostfixExpr":
		return decodePostfixExpr(m)
	case "CastExpr":
		expr, err := decodeExpression(mustMap(m, "expr"))
		if err != nil {
			return nil, err
		}
		return &CastExpr{Expr: expr, Target: decodeTypeRef(mustMap(m, "target")), Position: pos}, nil
	case "Point":
		left, err := decodeExpression(mustMap(m, "left"))
		if err != nil {
			return nil, err
		}
		return &Point{Left: left, Name: fieldString(m, "name"), Position: pos}, nil
	case "CallExpr":
		return decodeCallExpr(m)
	case "Ident":
		return &Ident{Name: fieldString(m, "name"), Position: pos}, nil
	case "IntLit":
		return &IntLit{Value: fieldInt32(m, "value"), Position: pos}, nil
	case "FloatLit":
		return &FloatLit{Value: fieldFloat32(m, "value"), Position: pos}, nil
	case "BoolLit":
		return &BoolLit{Value: fieldBool(m, "value"), Position: pos}, nil
	case "CharLit":
		return &CharLit{Value: fieldRune(m, "value"), Position: pos}, nil
	case "StringLit":
		return &StringLit{Value: fieldString(m, "value"), Position: pos}, nil
	case "NullLit":
		return &NullLit{Position: pos}, nil
	case "RangeExpr":
		start, err := decodeExpression(mustMap(m, "start"))
		if err != nil {
			return nil, err
		}
		end, err := decodeExpression(mustMap(m, "end"))
		if err != nil {
			return nil, err
		}
		return &RangeExpr{Start: start, End: end, Inclusive: fieldBool(m, "inclusive"), Position: pos}, nil
	case "Default":
		return &Default{Position: pos}, nil
	default:
		return nil, fmt.Errorf("parsetree: unrecognized expression kind %q at %s", kind, pos)
	}
}
