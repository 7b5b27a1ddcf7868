package natives

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"time"
)

// Context carries the process-global resources natives need: stdout/stdin,
// an RNG, and the clock. Tests substitute buffers and a seeded RNG in
// place of the process defaults, the same dependency-injection shape as
// the teacher's builtins.Context interface
// (internal/interp/builtins/context.go), simplified here to a concrete
// struct since ohl has no Variant/JSON/class introspection surface for
// natives to need.
type Context struct {
	Stdout io.Writer
	Stdin  *bufio.Reader
	Rand   *rand.Rand
	Now    func() time.Time
}

// NewContext creates a Context wired to the real process stdout/stdin,
// a time-seeded RNG, and the system clock.
func NewContext() *Context {
	return &Context{
		Stdout: os.Stdout,
		Stdin:  bufio.NewReader(os.Stdin),
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:    time.Now,
	}
}
