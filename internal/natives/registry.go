package natives

import (
	"sort"
	"strings"
	"sync"

	"github.com/ohl-lang/ohl/internal/interp/runtime"
)

// Category groups natives by their namespace segment (spec §6.2).
type Category string

const (
	CategorySystem Category = "System"
	CategoryMath   Category = "Math"
	CategoryRandom Category = "Random"
	CategoryTime   Category = "Time"
	CategoryIO     Category = "IO"
)

// Func is a native's implementation. ctx carries the process-global
// resources (stdout/stdin, RNG, clock) a native may need; args are
// already evaluated, and were type-checked against the native's
// Signature by the analyzer; the interpreter passes them on unchecked.
type Func func(ctx *Context, args []runtime.Value) (runtime.Value, error)

// Native is one registered path's full metadata.
type Native struct {
	Path        []string
	Category    Category
	Signature   Signature
	Description string
	Impl        Func
}

// Registry maps namespaced paths ("System.print") to Natives. Grounded
// on the teacher's builtins.Registry (internal/interp/builtins/registry.go),
// adapted from a single flat name space to path-keyed lookup since ohl
// natives are namespaced (System/Math/Random/Time/IO) rather than global.
type Registry struct {
	mu   sync.RWMutex
	byKey map[string]*Native
}

func pathKey(path []string) string { return strings.Join(path, ".") }

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Native)}
}

func (r *Registry) register(path []string, category Category, sig Signature, description string, impl Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[pathKey(path)] = &Native{
		Path:        path,
		Category:    category,
		Signature:   sig,
		Description: description,
		Impl:        impl,
	}
}

// Lookup finds a native by its path segments (e.g. ["System", "print"]).
func (r *Registry) Lookup(path []string) (*Native, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byKey[pathKey(path)]
	return n, ok
}

// All returns every registered native, sorted by path for deterministic
// iteration.
func (r *Registry) All() []*Native {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Native, 0, len(r.byKey))
	for _, n := range r.byKey {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return pathKey(out[i].Path) < pathKey(out[j].Path)
	})
	return out
}

// DefaultRegistry is populated at init with every native in §6.2.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry()
	registerSystem(DefaultRegistry)
	registerMath(DefaultRegistry)
	registerRandom(DefaultRegistry)
	registerTime(DefaultRegistry)
	registerIO(DefaultRegistry)
}
