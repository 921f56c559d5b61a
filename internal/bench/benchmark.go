package bench

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"richards/internal/sched"
)

var (
	ErrUnknownBenchmark = errors.New("unknown benchmark")
	ErrVerification     = errors.New("benchmark failed with incorrect result")
)

// Benchmark is one verifiable workload.
type Benchmark interface {
	Benchmark() any
	VerifyResult(result any) bool
}

// InnerBenchmarkLoop runs b n times and stops at the first result that
// fails to verify.
func InnerBenchmarkLoop(b Benchmark, n int) bool {
	for i := 0; i < n; i++ {
		if !b.VerifyResult(b.Benchmark()) {
			return false
		}
	}
	return true
}

// Richards runs the task scheduler simulation. Every call builds a fresh
// Scheduler so no state carries over between iterations.
type Richards struct {
	Config    sched.Config
	Observers []func(sched.StatusEvent)
}

func (r *Richards) Benchmark() any {
	s := sched.New(r.Config)
	for _, fn := range r.Observers {
		s.Observe(fn)
	}
	return s.Start()
}

func (r *Richards) VerifyResult(result any) bool {
	ok, _ := result.(bool)
	return ok
}

// Factory builds a benchmark from the run configuration.
type Factory func(cfg sched.Config) Benchmark

// Registry maps benchmark names to factories, ordered by name.
type Registry struct {
	m *treemap.Map
}

func NewRegistry() *Registry {
	return &Registry{m: treemap.NewWith(utils.StringComparator)}
}

// DefaultRegistry holds every benchmark this module ships.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("Richards", func(cfg sched.Config) Benchmark {
		return &Richards{Config: cfg}
	})
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.m.Put(name, f)
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, error) {
	v, ok := r.m.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBenchmark, name)
	}
	return v.(Factory), nil
}

// Names lists registered benchmarks in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.m.Size())
	for _, k := range r.m.Keys() {
		names = append(names, k.(string))
	}
	return names
}
