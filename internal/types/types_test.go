package types

import "testing"

func TestVarTypeString(t *testing.T) {
	cases := []struct {
		t    VarType
		want string
	}{
		{NULL, "NULL"},
		{INT, "INT"},
		{FLOAT, "FLOAT"},
		{BOOLEAN, "BOOLEAN"},
		{CHAR, "CHAR"},
		{STRING, "STRING"},
		{VarType(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Errorf("VarType(%d).String() = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestVarTypeIsNumeric(t *testing.T) {
	cases := []struct {
		t    VarType
		want bool
	}{
		{INT, true},
		{FLOAT, true},
		{NULL, false},
		{BOOLEAN, false},
		{CHAR, false},
		{STRING, false},
	}
	for _, c := range cases {
		if got := c.t.IsNumeric(); got != c.want {
			t.Errorf("%s.IsNumeric() = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestOperatorString(t *testing.T) {
	cases := []struct {
		op   Operator
		want string
	}{
		{ADD, "+"},
		{SUBTRACT, "-"},
		{MULTIPLY, "*"},
		{DIVIDE, "/"},
		{REMAINDER, "%"},
		{POWER, "^"},
		{ROOT, "^/"},
		{EQUAL, "=="},
		{NOT_EQUAL, "!="},
		{LESS_THAN, "<"},
		{GREATER_THAN, ">"},
		{NOT_LESS_THAN, ">="},
		{NOT_GREATER_THAN, "<="},
		{AND, "&&"},
		{OR, "||"},
		{XOR, "xor"},
		{NOT, "!"},
		{NEGATIVE, "neg"},
		{RECIPROCAL, "recip"},
		{INCREMENT, "++"},
		{DECREMENT, "--"},
		{SQUARE, "**"},
		{NULL_COAL, "??"},
		{Operator(999), "UNKNOWN_OP"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("Operator(%d).String() = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestIsCompoundAssignOp(t *testing.T) {
	cases := []struct {
		tok    string
		wantOp Operator
		wantOk bool
	}{
		{"+=", ADD, true},
		{"-=", SUBTRACT, true},
		{"*=", MULTIPLY, true},
		{"/=", DIVIDE, true},
		{"%=", REMAINDER, true},
		{"^=", POWER, true},
		{"^/=", ROOT, true},
		{"=", 0, false},
		{"++", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		gotOp, gotOk := IsCompoundAssignOp(c.tok)
		if gotOk != c.wantOk || (gotOk && gotOp != c.wantOp) {
			t.Errorf("IsCompoundAssignOp(%q) = (%v, %v), want (%v, %v)", c.tok, gotOp, gotOk, c.wantOp, c.wantOk)
		}
	}
}

func TestFunctionSignatureZeroValueIsNotCalled(t *testing.T) {
	var sig FunctionSignature
	if sig.Called {
		t.Errorf("zero-value FunctionSignature.Called = true, want false")
	}
	if len(sig.Parameters) != 0 {
		t.Errorf("zero-value FunctionSignature.Parameters = %v, want empty", sig.Parameters)
	}
	if sig.ReturnType != NULL {
		t.Errorf("zero-value FunctionSignature.ReturnType = %s, want NULL", sig.ReturnType)
	}
}

func TestFunctionSignatureNativesPreMarkedCalled(t *testing.T) {
	sig := FunctionSignature{
		Parameters: []VarType{INT, FLOAT},
		ReturnType: FLOAT,
		Called:     true,
	}
	if !sig.Called {
		t.Errorf("Called = false, want true")
	}
	if len(sig.Parameters) != 2 {
		t.Errorf("len(Parameters) = %d, want 2", len(sig.Parameters))
	}
}
