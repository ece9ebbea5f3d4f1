// Package queue provides the single-consumer FIFO worker that serializes
// webhook-triggered synchronization runs.
//
// # Model
//
// A Worker runs at most one job at a time, in arrival order. Producers keep
// accepting and enqueueing jobs while one is running; the worker drains the
// backlog to empty before going idle (Idle -> Draining -> Idle). A panic or
// error inside a job is contained at the job boundary and never stops the
// worker.
//
// There is deliberately no priority, cancellation or timeout. Dependent
// writes to the ledger must never race, and a strictly sequential worker is
// the simplest way to guarantee that; a stuck remote call stalling the queue
// is the accepted cost.
//
// # Usage
//
//	w := queue.NewWorker(logger)
//	w.Enqueue("reservation.created R123", func(ctx context.Context) { ... })
package queue
