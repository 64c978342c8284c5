package workers

import "context"

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Start launches every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
