package perf

import "time"

// Metrics mirrors the per-system execution counters the rest of the engine
// reports.
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	LastExecutionTime    time.Duration
}

// Monitor measures how much of the step budget the computation uses. Samples
// are summed over a window of steps; when the window fills, the average is
// published as Load and the window starts over.
type Monitor struct {
	budget time.Duration
	window int

	sum   time.Duration
	count int
	load  float64

	metrics Metrics
}

// NewMonitor creates a monitor for a fixed step budget, e.g. 1/60 s.
func NewMonitor(budget time.Duration, window int) *Monitor {
	return &Monitor{budget: budget, window: max(window, 1)}
}

// Record folds one step's cost into the window. It returns true when the
// window closed and Load changed.
func (m *Monitor) Record(cost time.Duration) bool {
	m.metrics.ExecutionCount++
	m.metrics.TotalExecutionTime += cost
	m.metrics.AverageExecutionTime = m.metrics.TotalExecutionTime / time.Duration(m.metrics.ExecutionCount)
	m.metrics.MaxExecutionTime = max(m.metrics.MaxExecutionTime, cost)
	m.metrics.LastExecutionTime = cost

	m.sum += cost
	m.count++
	if m.count < m.window {
		return false
	}
	if m.budget > 0 {
		m.load = float64(m.sum) / float64(m.count) / float64(m.budget)
	}
	m.sum = 0
	m.count = 0
	return true
}

// Load is the last published average cost as a fraction of the budget; above
// one means the simulation cannot keep up.
func (m *Monitor) Load() float64 { return m.load }

func (m *Monitor) Metrics() Metrics { return m.metrics }

// Measure runs fn and records its wall-clock cost, failed runs included. The
// bool reports whether the window closed.
func (m *Monitor) Measure(fn func() error) (bool, error) {
	start := time.Now()
	err := fn()
	return m.Record(time.Since(start)), err
}
