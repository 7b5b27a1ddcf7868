package diag

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/ohl-lang/ohl/pkg/token"
)

func TestFormatNoSource(t *testing.T) {
	d := New(token.Position{Line: 3, Column: 5}, "unexpected %s", "token")
	want := "[3|5] error: unexpected token"
	if got := d.Format(false); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatWithSource(t *testing.T) {
	d := Warn(token.Position{Line: 2, Column: 3}, "unused variable 'x'")
	d.Source = "let a = 1;\nlet x = 2;\n"

	got := d.Format(false)
	if !strings.Contains(got, "[2|3] warning: unused variable 'x'") {
		t.Errorf("Format() missing header, got %q", got)
	}
	if !strings.Contains(got, "let x = 2;") {
		t.Errorf("Format() missing source excerpt, got %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Errorf("Format() missing caret, got %q", got)
	}
}

func TestErrorImplementsError(t *testing.T) {
	var err error = New(token.Position{Line: 1, Column: 1}, "boom")
	if err.Error() == "" {
		t.Errorf("Error() returned empty string")
	}
}

func TestBagHasErrors(t *testing.T) {
	var b Bag
	b.Warnf(token.Position{Line: 1, Column: 1}, "warn only")
	if b.HasErrors() {
		t.Errorf("HasErrors() = true, want false for warnings-only bag")
	}

	b.Errorf(token.Position{Line: 2, Column: 1}, "fatal")
	if !b.HasErrors() {
		t.Errorf("HasErrors() = false, want true after Errorf")
	}
}

func TestBagSeparatesErrorsAndWarnings(t *testing.T) {
	var b Bag
	b.Warnf(token.Position{Line: 1, Column: 1}, "w1")
	b.Errorf(token.Position{Line: 2, Column: 1}, "e1")
	b.Warnf(token.Position{Line: 3, Column: 1}, "w2")

	if got := len(b.Errors()); got != 1 {
		t.Errorf("len(Errors()) = %d, want 1", got)
	}
	if got := len(b.Warnings()); got != 2 {
		t.Errorf("len(Warnings()) = %d, want 2", got)
	}
	if got := len(b.All()); got != 3 {
		t.Errorf("len(All()) = %d, want 3", got)
	}
}

func TestBagKeepsInsertionOrderAcrossSeverities(t *testing.T) {
	cases := []struct {
		name string
		add  func(*Bag)
		want []Severity
	}{
		{
			name: "warning then error",
			add: func(b *Bag) {
				b.Warnf(token.Position{Line: 1, Column: 1}, "w")
				b.Errorf(token.Position{Line: 2, Column: 1}, "e")
			},
			want: []Severity{Warning, Error},
		},
		{
			name: "error then warning",
			add: func(b *Bag) {
				b.Errorf(token.Position{Line: 1, Column: 1}, "e")
				b.Warnf(token.Position{Line: 2, Column: 1}, "w")
			},
			want: []Severity{Error, Warning},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b Bag
			c.add(&b)

			got := make([]Severity, len(b.All()))
			for i, d := range b.All() {
				got[i] = d.Severity
			}

			if diff := pretty.Diff(got, c.want); len(diff) > 0 {
				t.Errorf("insertion order mismatch:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}
