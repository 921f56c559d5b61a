package bench

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Run measures one benchmark over a number of outer iterations.
type Run struct {
	Name            string
	Benchmark       Benchmark
	Iterations      int
	InnerIterations int

	log   *zap.Logger
	total time.Duration
}

// NewRun creates a run with one outer and one inner iteration.
func NewRun(name string, b Benchmark, log *zap.Logger) *Run {
	if log == nil {
		log = zap.NewNop()
	}
	return &Run{
		Name:            name,
		Benchmark:       b,
		Iterations:      1,
		InnerIterations: 1,
		log:             log,
	}
}

// Execute times every outer iteration and stops at the first failed
// verification.
func (r *Run) Execute() error {
	r.log.Info("Starting benchmark", zap.String("name", r.Name),
		zap.Int("iterations", r.Iterations),
		zap.Int("inner_iterations", r.InnerIterations))

	for i := 0; i < r.Iterations; i++ {
		if err := r.measure(); err != nil {
			return err
		}
	}
	r.report()
	return nil
}

func (r *Run) measure() error {
	start := time.Now()
	if !InnerBenchmarkLoop(r.Benchmark, r.InnerIterations) {
		return fmt.Errorf("%s: %w", r.Name, ErrVerification)
	}
	elapsed := time.Since(start)
	r.total += elapsed

	r.log.Info("Iteration finished", zap.String("name", r.Name),
		zap.Int64("runtime_us", elapsed.Microseconds()))
	return nil
}

func (r *Run) report() {
	var avg time.Duration
	if r.Iterations > 0 {
		avg = r.total / time.Duration(r.Iterations)
	}
	r.log.Info("Benchmark finished", zap.String("name", r.Name),
		zap.Int("iterations", r.Iterations),
		zap.Int64("average_us", avg.Microseconds()),
		zap.Int64("total_us", r.total.Microseconds()))
}

// Total returns the summed runtime of all measured iterations.
func (r *Run) Total() time.Duration { return r.total }
