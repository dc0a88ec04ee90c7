// Package syncx drains committed store mutations to the cloud store. The
// queue is fire-and-forget: the cashier's mutation is already durable in
// memory, a failed remote write is logged and dropped, never retried and never
// rolled back locally.
package syncx

import (
	"context"
	"log"

	"github.com/anditri/warungpos/internal/pos"
)

// Remote is the slice of the cloud repo the worker needs.
type Remote interface {
	UpsertProduct(ctx context.Context, p pos.Product) error
	DeleteProduct(ctx context.Context, id string) error
	UpsertSupplier(ctx context.Context, s pos.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
	UpsertTransaction(ctx context.Context, t pos.Transaction) error
	UpsertOpname(ctx context.Context, o pos.StockOpname) error
	UpsertDeposit(ctx context.Context, d pos.SupplierDeposit) error
	DeleteDeposit(ctx context.Context, id string) error
}

type Queue struct {
	remote  Remote
	inbox   chan pos.Mutation
	closeCh chan struct{}
}

func NewQueue(remote Remote, buf int) *Queue {
	if buf <= 0 {
		buf = 256
	}
	return &Queue{
		remote:  remote,
		inbox:   make(chan pos.Mutation, buf),
		closeCh: make(chan struct{}),
	}
}

// Record implements pos.MutationSink. It never blocks the mutation path: when
// the inbox is full the task is dropped with a log line, matching the
// local-first contract (remote lag must not stall the register).
func (q *Queue) Record(m pos.Mutation) {
	select {
	case q.inbox <- m:
	default:
		log.Printf("sync: inbox full, dropping %s %s", m.Action, m.ID)
	}
}

func (q *Queue) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				// drain what is already buffered, then exit
				for {
					select {
					case m, ok := <-q.inbox:
						if !ok {
							close(q.closeCh)
							return
						}
						q.apply(context.Background(), m)
					default:
						close(q.closeCh)
						return
					}
				}
			case m, ok := <-q.inbox:
				if !ok {
					close(q.closeCh)
					return
				}
				q.apply(ctx, m)
			}
		}
	}()
}

// apply executes one task. Each task is independent: a failure is logged and
// dropped so one broken row cannot block the rest of the queue.
func (q *Queue) apply(ctx context.Context, m pos.Mutation) {
	var err error
	switch {
	case m.Product != nil && m.Action == pos.ActionDelete:
		err = q.remote.DeleteProduct(ctx, m.ID)
	case m.Product != nil:
		err = q.remote.UpsertProduct(ctx, *m.Product)
	case m.Supplier != nil && m.Action == pos.ActionDelete:
		err = q.remote.DeleteSupplier(ctx, m.ID)
	case m.Supplier != nil:
		err = q.remote.UpsertSupplier(ctx, *m.Supplier)
	case m.Transaction != nil:
		err = q.remote.UpsertTransaction(ctx, *m.Transaction)
	case m.Opname != nil:
		err = q.remote.UpsertOpname(ctx, *m.Opname)
	case m.Deposit != nil && m.Action == pos.ActionDelete:
		err = q.remote.DeleteDeposit(ctx, m.ID)
	case m.Deposit != nil:
		err = q.remote.UpsertDeposit(ctx, *m.Deposit)
	default:
		log.Printf("sync: mutation without payload, id=%s", m.ID)
		return
	}
	if err != nil {
		log.Printf("sync: %s %s failed: %v", m.Action, m.ID, err)
	}
}

// Close stops intake; the worker flushes what is left and exits.
func (q *Queue) Close() { close(q.inbox) }

// WaitClosed blocks until the worker has drained.
func (q *Queue) WaitClosed() { <-q.closeCh }
