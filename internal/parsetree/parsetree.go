// Package parsetree defines the shape of the raw parse tree handed to the
// Lowerer by the external lexer/parser (out of scope for this module; see
// spec §1 and §6.1). Nothing in this package executes — it exists purely
// to give the Lowerer a concrete, typed contract for "a well-formed parse
// tree" so the boundary named in §4.1 is checkable in Go rather than
// assumed.
//
// Node shapes mirror the syntactic (pre-lowering) forms in spec §4.1:
// compound assignment tokens, nested POINT call targets, prefix/postfix
// operator tokens, and the two range spellings are all still present
// here: the Lowerer's job is to rewrite them into the normalized
// semantic tree in package ast.
package parsetree

import "github.com/ohl-lang/ohl/pkg/token"

// Node is the base interface for every raw parse-tree node.
type Node interface {
	Pos() token.Position
	String() string
}

// Program is the root of a raw parse tree: a sequence of top-level
// function declarations.
type Program struct {
	Functions []*FuncDecl
	Position  token.Position
}

func (p *Program) Pos() token.Position { return p.Position }
func (p *Program) String() string      { return "Program" }

// Visibility is a placeholder for the first FUNC_DECL child named in
// spec §4.1; the core language has no visibility modifiers of its own,
// but the raw tree still carries the slot so the Lowerer's contract
// check ("FUNC_DECL children are exactly [visibility, return_type, name,
// PARAM_LIST, BLOCK]") is meaningful.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityDefault Visibility = ""
)

// FuncDecl is a raw FUNC_DECL node: [visibility, return_type, name,
// PARAM_LIST, BLOCK].
type FuncDecl struct {
	Visibility Visibility
	ReturnType *TypeRef
	Name       string
	Params     *ParamList
	Body       *Block
	Position   token.Position
}

func (f *FuncDecl) Pos() token.Position { return f.Position }
func (f *FuncDecl) String() string      { return "FuncDecl(" + f.Name + ")" }

// ParamList is the raw PARAM_LIST node.
type ParamList struct {
	Params   []*Param
	Position token.Position
}

func (p *ParamList) Pos() token.Position { return p.Position }
func (p *ParamList) String() string      { return "ParamList" }

// Param is a raw PARAM node: [ID, type].
type Param struct {
	Name     string
	Type     *TypeRef
	Position token.Position
}

func (p *Param) Pos() token.Position { return p.Position }
func (p *Param) String() string      { return "Param(" + p.Name + ")" }

// TypeRef names a type as written in source.
type TypeRef struct {
	Name     string
	Position token.Position
}

func (t *TypeRef) Pos() token.Position { return t.Position }
func (t *TypeRef) String() string      { return t.Name }

// Statement is any raw statement-position node.
type Statement interface {
	Node
	statementNode()
}

// Expression is any raw expression-position node.
type Expression interface {
	Node
	expressionNode()
}

// Block is a raw BLOCK node.
type Block struct {
	Statements []Statement
	Position   token.Position
}

func (b *Block) Pos() token.Position { return b.Position }
func (b *Block) String() string      { return "Block" }
func (b *Block) statementNode()      {}

// Mutability marks the explicit MUTABLE/IMMUTABLE child of a VAR_DECL.
// Absent (MutabilityDefault) means mutable, per §4.1.
type Mutability int

const (
	MutabilityDefault Mutability = iota
	Mutable
	Immutable
)

// VarDecl is a raw VAR_DECL node ("let"). DeclType may be nil (inferred
// from Init); Init may be nil (lowers to NULL, §4.1).
type VarDecl struct {
	Name       string
	DeclType   *TypeRef
	Mutability Mutability
	Init       Expression
	Position   token.Position
}

func (v *VarDecl) Pos() token.Position { return v.Position }
func (v *VarDecl) String() string      { return "VarDecl(" + v.Name + ")" }
func (v *VarDecl) statementNode()      {}

// AssignStmt is a plain "=" assignment.
type AssignStmt struct {
	Name     string
	Expr     Expression
	Position token.Position
}

func (a *AssignStmt) Pos() token.Position { return a.Position }
func (a *AssignStmt) String() string      { return "AssignStmt(" + a.Name + ")" }
func (a *AssignStmt) statementNode()      {}

// CompoundAssignStmt is one of the seven compound-assignment spellings
// (+=, -=, *=, /=, %=, ^=, ^/=) before the Lowerer rewrites it to
// ASSIGN_STMT{EXPR{...}}.
type CompoundAssignStmt struct {
	Name     string
	Op       string // one of "+=" "-=" "*=" "/=" "%=" "^=" "^/="
	Expr     Expression
	Position token.Position
}

func (c *CompoundAssignStmt) Pos() token.Position { return c.Position }
func (c *CompoundAssignStmt) String() string      { return "CompoundAssignStmt(" + c.Name + c.Op + ")" }
func (c *CompoundAssignStmt) statementNode()      {}

// ReturnStmt is a raw RETURN_STMT node.
type ReturnStmt struct {
	Expr     Expression // nil for bare "return;"
	Position token.Position
}

func (r *ReturnStmt) Pos() token.Position { return r.Position }
func (r *ReturnStmt) String() string      { return "ReturnStmt" }
func (r *ReturnStmt) statementNode()      {}

// DeferStmt is a raw DEFER_STMT node.
type DeferStmt struct {
	Body     Statement
	Position token.Position
}

func (d *DeferStmt) Pos() token.Position { return d.Position }
func (d *DeferStmt) String() string      { return "DeferStmt" }
func (d *DeferStmt) statementNode()      {}

// IfExpr is a raw IF_EXPR node.
type IfExpr struct {
	Cond     Expression
	Then     *Block
	Else     Statement // *Block, another *IfExpr (else-if), or nil
	Position token.Position
}

func (i *IfExpr) Pos() token.Position { return i.Position }
func (i *IfExpr) String() string      { return "IfExpr" }
func (i *IfExpr) statementNode()      {}

// WhileExpr is a raw WHILE_EXPR node.
type WhileExpr struct {
	Cond     Expression
	Body     *Block
	Position token.Position
}

func (w *WhileExpr) Pos() token.Position { return w.Position }
func (w *WhileExpr) String() string      { return "WhileExpr" }
func (w *WhileExpr) statementNode()      {}

// DoWhile is a raw DO_WHILE node.
type DoWhile struct {
	Body     *Block
	Cond     Expression
	Position token.Position
}

func (d *DoWhile) Pos() token.Position { return d.Position }
func (d *DoWhile) String() string      { return "DoWhile" }
func (d *DoWhile) statementNode()      {}

// LoopExpr is a raw LOOP_EXPR node: "loop (count) { ... }".
type LoopExpr struct {
	Count    Expression
	Body     *Block
	Position token.Position
}

func (l *LoopExpr) Pos() token.Position { return l.Position }
func (l *LoopExpr) String() string      { return "LoopExpr" }
func (l *LoopExpr) statementNode()      {}

// ForExpr is a raw FOR_EXPR node (classic C-style for).
type ForExpr struct {
	Init     Statement // nil, VarDecl, AssignStmt, or CompoundAssignStmt
	Cond     Expression
	Modifier Statement
	Body     *Block
	Position token.Position
}

func (f *ForExpr) Pos() token.Position { return f.Position }
func (f *ForExpr) String() string      { return "ForExpr" }
func (f *ForExpr) statementNode()      {}

// ForEach is a raw FOR_EACH node.
type ForEach struct {
	Var      string
	Iterable Expression
	Body     *Block
	Position token.Position
}

func (f *ForEach) Pos() token.Position { return f.Position }
func (f *ForEach) String() string      { return "ForEach" }
func (f *ForEach) statementNode()      {}

// MatchStmt is a raw MATCH_STMT node.
type MatchStmt struct {
	Scrutinee Expression
	Arms      []*MatchArm
	Position  token.Position
}

func (m *MatchStmt) Pos() token.Position { return m.Position }
func (m *MatchStmt) String() string      { return "MatchStmt" }
func (m *MatchStmt) statementNode()      {}

// MatchArm is a raw MATCH_ARM node. Pattern is one of: a literal
// expression, an Ident (binds a variable), a RangeExpr, Default, or Null.
type MatchArm struct {
	Pattern  Expression
	Body     *Block
	Position token.Position
}

func (m *MatchArm) Pos() token.Position { return m.Position }
func (m *MatchArm) String() string      { return "MatchArm" }

// RangeExpr is a raw RANGE_INCL/RANGE_EXCL node.
type RangeExpr struct {
	Start     Expression
	End       Expression
	Inclusive bool
	Position  token.Position
}

func (r *RangeExpr) Pos() token.Position { return r.Position }
func (r *RangeExpr) String() string      { return "RangeExpr" }
func (r *RangeExpr) expressionNode()     {}

// Break/Continue/Repeat/Default are nullary control tokens.
type Break struct{ Position token.Position }

func (b *Break) Pos() token.Position { return b.Position }
func (b *Break) String() string      { return "Break" }
func (b *Break) statementNode()      {}

type Continue struct{ Position token.Position }

func (c *Continue) Pos() token.Position { return c.Position }
func (c *Continue) String() string      { return "Continue" }
func (c *Continue) statementNode()      {}

type Repeat struct{ Position token.Position }

func (r *Repeat) Pos() token.Position { return r.Position }
func (r *Repeat) String() string      { return "Repeat" }
func (r *Repeat) statementNode()      {}

type Default struct{ Position token.Position }

func (d *Default) Pos() token.Position { return d.Position }
func (d *Default) String() string      { return "Default" }
func (d *Default) expressionNode()     {}

// BlankStmt is an empty statement (a bare ";").
type BlankStmt struct{ Position token.Position }

func (b *BlankStmt) Pos() token.Position { return b.Position }
func (b *BlankStmt) String() string      { return "BlankStmt" }
func (b *BlankStmt) statementNode()      {}

// BinaryExpr is a raw binary expression carrying the token spelling of its
// operator (e.g. "+", "==", "&&"); the Lowerer maps these onto
// types.Operator.
type BinaryExpr struct {
	Left     Expression
	Op       string
	Right    Expression
	Position token.Position
}

func (b *BinaryExpr) Pos() token.Position { return b.Position }
func (b *BinaryExpr) String() string      { return "BinaryExpr(" + b.Op + ")" }
func (b *BinaryExpr) expressionNode()     {}

// PrefixExpr is a raw prefix-operator expression: "-x", "/x" (reciprocal),
// "!x", "++x", "--x".
type PrefixExpr struct {
	Op       string
	Right    Expression
	Position token.Position
}

func (p *PrefixExpr) Pos() token.Position { return p.Position }
func (p *PrefixExpr) String() string      { return "PrefixExpr(" + p.Op + ")" }
func (p *PrefixExpr) expressionNode()     {}

// PostfixExpr is a raw postfix-operator expression: "x++", "x--", "x**".
// Like CallExpr, it doubles as a Statement so "i++;" is a valid
// statement on its own, not just inside a larger expression.
type PostfixExpr struct {
	Left     Expression
	Op       string
	Position token.Position
}

func (p *PostfixExpr) Pos() token.Position { return p.Position }
func (p *PostfixExpr) String() string      { return "PostfixExpr(" + p.Op + ")" }
func (p *PostfixExpr) expressionNode()     {}
func (p *PostfixExpr) statementNode()      {}

// CastExpr is a raw cast: "expr as target".
type CastExpr struct {
	Expr     Expression
	Target   *TypeRef
	Position token.Position
}

func (c *CastExpr) Pos() token.Position { return c.Position }
func (c *CastExpr) String() string      { return "CastExpr" }
func (c *CastExpr) expressionNode()     {}

// Point is a raw member-access/qualified-name chain, e.g. System.print
// parses as Point{Left: Ident("System"), Name: "print"}. A bare Point
// used outside a call target is a lowering error (§4.1).
type Point struct {
	Left     Expression // *Ident or nested *Point
	Name     string
	Position token.Position
}

func (p *Point) Pos() token.Position { return p.Position }
func (p *Point) String() string      { return "Point(" + p.Name + ")" }
func (p *Point) expressionNode()     {}

// CallExpr is a raw function call. Target is an *Ident (single-segment
// user function) or a *Point chain (qualified native/user path). A call
// is both an Expression and a Statement, like PostfixExpr, since
// "foo();" is a call used for its side effect in statement position;
// the Lowerer wraps it in ast.ExprStmt (§4.1's default case).
type CallExpr struct {
	Target   Expression
	Args     []Expression
	Position token.Position
}

func (c *CallExpr) Pos() token.Position { return c.Position }
func (c *CallExpr) String() string      { return "CallExpr" }
func (c *CallExpr) expressionNode()     {}
func (c *CallExpr) statementNode()      {}

// Ident is a raw identifier reference.
type Ident struct {
	Name     string
	Position token.Position
}

func (i *Ident) Pos() token.Position { return i.Position }
func (i *Ident) String() string      { return i.Name }
func (i *Ident) expressionNode()     {}

// Literal nodes.

type IntLit struct {
	Value    int32
	Position token.Position
}

func (l *IntLit) Pos() token.Position { return l.Position }
func (l *IntLit) String() string      { return "IntLit" }
func (l *IntLit) expressionNode()     {}

type FloatLit struct {
	Value    float32
	Position token.Position
}

func (l *FloatLit) Pos() token.Position { return l.Position }
func (l *FloatLit) String() string      { return "FloatLit" }
func (l *FloatLit) expressionNode()     {}

type BoolLit struct {
	Value    bool
	Position token.Position
}

func (l *BoolLit) Pos() token.Position { return l.Position }
func (l *BoolLit) String() string      { return "BoolLit" }
func (l *BoolLit) expressionNode()     {}

type CharLit struct {
	Value    rune
	Position token.Position
}

func (l *CharLit) Pos() token.Position { return l.Position }
func (l *CharLit) String() string      { return "CharLit" }
func (l *CharLit) expressionNode()     {}

type StringLit struct {
	Value    string
	Position token.Position
}

func (l *StringLit) Pos() token.Position { return l.Position }
func (l *StringLit) String() string      { return "StringLit" }
func (l *StringLit) expressionNode()     {}

// NullLit is the literal "null".
type NullLit struct{ Position token.Position }

func (l *NullLit) Pos() token.Position { return l.Position }
func (l *NullLit) String() string      { return "NullLit" }
func (l *NullLit) expressionNode()     {}
