package task

import (
	"math"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// Statistics is an on-demand aggregate over all known tasks. It is computed
// per call and never stored.
type Statistics struct {
	TotalTasks  int     `json:"total_tasks"`
	Pending     int     `json:"pending"`
	Running     int     `json:"running"`
	Completed   int     `json:"completed"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// Aggregator computes task statistics from an injected registry.
type Aggregator struct {
	registry *Registry
}

// NewAggregator creates an aggregator over the given registry.
func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Collect returns a consistent point-in-time statistics snapshot: each
// task's status is read exactly once, under the registry lock, so a task
// mid-transition is never double-counted. The success rate is
// completed/(completed+failed), 0 when no task has reached a terminal
// state, rounded to four decimal places.
func (a *Aggregator) Collect() Statistics {
	stats := Statistics{}

	for _, t := range a.registry.Snapshot() {
		stats.TotalTasks++
		switch t.Status {
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusRunning:
			stats.Running++
		case domain.TaskStatusCompleted:
			stats.Completed++
		case domain.TaskStatusFailed:
			stats.Failed++
		}
	}

	if terminal := stats.Completed + stats.Failed; terminal > 0 {
		rate := float64(stats.Completed) / float64(terminal)
		stats.SuccessRate = math.Round(rate*10000) / 10000
	}
	return stats
}
