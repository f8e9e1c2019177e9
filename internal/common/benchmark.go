package common

import (
	"log/slog"
	"time"
)

type Benchmarker struct {
	start  time.Time
	label  string
	logger *slog.Logger
}

func RuntimeBenchmark[T any](logger *slog.Logger, label string, functionUnderTest func() (T, error)) (T, error) {
	start := time.Now()
	result, err := functionUnderTest()
	logger.Debug("benchmark", "label", label, "elapsed", time.Since(start))
	return result, err
}

func NewBenchmarker(logger *slog.Logger, label string) *Benchmarker {
	return &Benchmarker{start: time.Now(), label: label, logger: logger}
}

// Close logs and returns the elapsed time since NewBenchmarker.
func (benchmarker *Benchmarker) Close() time.Duration {
	elapsed := time.Since(benchmarker.start)
	benchmarker.logger.Debug("benchmark", "label", benchmarker.label, "elapsed", elapsed)
	return elapsed
}
