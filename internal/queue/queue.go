// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package queue serializes sync and backup operations. Exactly one
// operation executes at a time; repeated requests for the same id coalesce
// onto the pending entry, and high-priority work runs before anything
// queued at low priority.
package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// ErrQueueClosed is delivered to waiters whose operation never ran because
// the queue was stopped.
var ErrQueueClosed = errors.New("operation queue closed")

// Priority orders pending operations. High priority work (tombstone
// propagation, manual sync) overtakes queued low priority work but never
// preempts an operation already executing.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityHigh
)

// Operation is one unit of queued work.
type Operation func(ctx context.Context) error

type pendingOp struct {
	id       string
	priority Priority
	op       Operation
	waiters  []chan error
}

// Queue is the single-flight operation queue.
type Queue struct {
	logger *logger.Logger

	mu      sync.Mutex
	pending map[string]*pendingOp
	high    []*pendingOp
	low     []*pendingOp
	wake    chan struct{}
	closed  bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a stopped queue. Call Start before adding work.
func New(log *logger.Logger) *Queue {
	return &Queue{
		logger:  log,
		pending: make(map[string]*pendingOp),
		wake:    make(chan struct{}, 1),
	}
}

// Start launches the single worker goroutine.
func (q *Queue) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.done = make(chan struct{})

	go q.run(runCtx)
}

// Stop cancels the worker and fails every still-pending operation with
// ErrQueueClosed.
func (q *Queue) Stop() {
	if q.cancel != nil {
		q.cancel()
		<-q.done
	}

	q.mu.Lock()
	q.closed = true
	leftovers := append(q.high, q.low...)
	q.high, q.low = nil, nil
	q.pending = make(map[string]*pendingOp)
	q.mu.Unlock()

	for _, p := range leftovers {
		deliver(p, ErrQueueClosed)
	}
}

// Add enqueues op under id and returns a channel carrying its terminal
// error (nil on success). A request for an id that is already pending does
// not enqueue again: the caller joins the pending entry's waiters, and a
// high-priority request promotes a low-priority pending entry.
func (q *Queue) Add(id string, op Operation, priority Priority) <-chan error {
	ch := make(chan error, 1)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		ch <- ErrQueueClosed
		return ch
	}

	if p, ok := q.pending[id]; ok {
		p.waiters = append(p.waiters, ch)
		if priority == PriorityHigh && p.priority == PriorityLow {
			q.promoteLocked(p)
		}
		q.mu.Unlock()
		return ch
	}

	p := &pendingOp{id: id, priority: priority, op: op, waiters: []chan error{ch}}
	q.pending[id] = p
	if priority == PriorityHigh {
		q.high = append(q.high, p)
	} else {
		q.low = append(q.low, p)
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return ch
}

// promoteLocked moves a pending entry from the low to the high lane.
// Caller holds mu.
func (q *Queue) promoteLocked(p *pendingOp) {
	for i, candidate := range q.low {
		if candidate == p {
			q.low = append(q.low[:i], q.low[i+1:]...)
			break
		}
	}
	p.priority = PriorityHigh
	q.high = append(q.high, p)
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)

	for {
		p := q.next()
		if p == nil {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
				continue
			}
		}

		err := p.op(ctx)
		if err != nil {
			q.logger.Warn().
				Str("func", "Queue.run").
				Str("id", p.id).
				Err(err).
				Msg("queued operation failed")
		}
		deliver(p, err)

		if ctx.Err() != nil {
			return
		}
	}
}

// next pops the highest-priority pending entry, removing it from the
// pending index so later Adds for the same id queue a fresh run instead of
// joining one that is already executing.
func (q *Queue) next() *pendingOp {
	q.mu.Lock()
	defer q.mu.Unlock()

	var p *pendingOp
	switch {
	case len(q.high) > 0:
		p, q.high = q.high[0], q.high[1:]
	case len(q.low) > 0:
		p, q.low = q.low[0], q.low[1:]
	default:
		return nil
	}

	delete(q.pending, p.id)
	return p
}

// deliver fans the result out to every coalesced waiter.
func deliver(p *pendingOp, err error) {
	for _, ch := range p.waiters {
		ch <- err
	}
}
