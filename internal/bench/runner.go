package bench

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Result is the timing of one implementation at one capacity.
type Result struct {
	Impl     string
	Capacity int
	Rounds   int
	Elapsed  time.Duration
	Sum      int64
}

// NsPerRound returns the mean time of one workload round.
func (r Result) NsPerRound() float64 {
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Rounds)
}

// Runner executes a Config.
type Runner struct {
	cfg Config
	log *zap.Logger
}

// NewRunner validates cfg and returns a Runner logging to log.
func NewRunner(cfg Config, log *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}, nil
}

// Run times every implementation at every capacity, one case after the
// other. It stops between cases when ctx is done and returns the results
// gathered so far with ctx's error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(r.cfg.Capacities)*len(r.cfg.Implementations))
	for _, capacity := range r.cfg.Capacities {
		for _, name := range r.cfg.Implementations {
			if err := ctx.Err(); err != nil {
				r.log.Warn("benchmark interrupted", zap.Int("completed", len(results)), zap.Error(err))
				return results, err
			}
			res, err := r.runCase(name, capacity)
			if err != nil {
				r.log.Error("benchmark case failed",
					zap.String("impl", name), zap.Int("capacity", capacity), zap.Error(err))
				return results, err
			}
			r.log.Info("benchmark case done",
				zap.String("impl", name),
				zap.Int("capacity", capacity),
				zap.Duration("elapsed", res.Elapsed),
				zap.Float64("nsPerRound", res.NsPerRound()))
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *Runner) runCase(name string, capacity int) (Result, error) {
	factory, err := Lookup(name)
	if err != nil {
		return Result{}, err
	}
	m := factory(capacity)
	r.log.Debug("benchmark case start",
		zap.String("impl", name), zap.Int("capacity", capacity), zap.Int("rounds", r.cfg.Rounds))
	start := time.Now()
	sum, err := Eval(m, r.cfg.Rounds, capacity)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Impl:     name,
		Capacity: capacity,
		Rounds:   r.cfg.Rounds,
		Elapsed:  elapsed,
		Sum:      sum,
	}, nil
}
