package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"richards/internal/bench"
	"richards/internal/logger"
	"richards/internal/sched"
)

func usage() {
	fmt.Println("richards [-config config.yml] [benchmark [num-iterations [inner-iter]]]")
	fmt.Println()
	fmt.Println("  benchmark      - benchmark name, one of", bench.DefaultRegistry().Names())
	fmt.Println("  num-iterations - number of times to execute benchmark, default: 1")
	fmt.Println("  inner-iter     - number of times the benchmark is executed in an inner loop,")
	fmt.Println("                   which is measured in total, default: 1")
}

func main() {
	path := flag.String("config", "config.yml", "path to the YAML config")
	flag.Usage = usage
	flag.Parse()

	// Read the configuration
	cfg, err := sched.Load(*path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := applyArgs(&cfg, flag.Args()); err != nil {
		usage()
		os.Exit(2)
	}

	l, err := logger.Build(cfg.Logger)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer l.Sync()

	if err := run(cfg, l); err != nil {
		l.Error("Benchmark run failed", zap.Error(err))
		l.Sync()
		os.Exit(1)
	}
}

// applyArgs overrides cfg with the positional arguments
// [benchmark [num-iterations [inner-iter]]].
func applyArgs(cfg *sched.Config, args []string) error {
	if len(args) > 0 {
		cfg.Benchmark = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid num-iterations %q", args[1])
		}
		cfg.Iterations = n
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid inner-iter %q", args[2])
		}
		cfg.InnerIterations = n
	}
	return nil
}

func run(cfg sched.Config, l *zap.Logger) error {
	factory, err := bench.DefaultRegistry().Lookup(cfg.Benchmark)
	if err != nil {
		return err
	}
	b := factory(cfg)

	if r, ok := b.(*bench.Richards); ok {
		if cfg.Trace {
			r.Observers = append(r.Observers, sched.NewTracer(os.Stdout).Handle)
		}
		if cfg.TraceCSV != "" {
			csvLog, err := sched.NewCSVLogger(cfg.TraceCSV)
			if err != nil {
				return fmt.Errorf("open trace csv: %w", err)
			}
			defer csvLog.Close()
			r.Observers = append(r.Observers, csvLog.Handle)
		}
	}

	br := bench.NewRun(cfg.Benchmark, b, l)
	br.Iterations = cfg.Iterations
	br.InnerIterations = cfg.InnerIterations
	if err := br.Execute(); err != nil {
		return err
	}
	l.Info("Total runtime", zap.Int64("total_us", br.Total().Microseconds()))
	return nil
}
