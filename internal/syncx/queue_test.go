package syncx_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anditri/warungpos/internal/pos"
	"github.com/anditri/warungpos/internal/syncx"
)

type fakeRemote struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{fail: map[string]error{}}
}

func (f *fakeRemote) call(op, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op+":"+id)
	return f.fail[op]
}

func (f *fakeRemote) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) UpsertProduct(_ context.Context, p pos.Product) error {
	return f.call("upsert-product", p.ID)
}
func (f *fakeRemote) DeleteProduct(_ context.Context, id string) error {
	return f.call("delete-product", id)
}
func (f *fakeRemote) UpsertSupplier(_ context.Context, s pos.Supplier) error {
	return f.call("upsert-supplier", s.ID)
}
func (f *fakeRemote) DeleteSupplier(_ context.Context, id string) error {
	return f.call("delete-supplier", id)
}
func (f *fakeRemote) UpsertTransaction(_ context.Context, t pos.Transaction) error {
	return f.call("upsert-transaction", t.ID)
}
func (f *fakeRemote) UpsertOpname(_ context.Context, o pos.StockOpname) error {
	return f.call("upsert-opname", o.ID)
}
func (f *fakeRemote) UpsertDeposit(_ context.Context, d pos.SupplierDeposit) error {
	return f.call("upsert-deposit", d.ID)
}
func (f *fakeRemote) DeleteDeposit(_ context.Context, id string) error {
	return f.call("delete-deposit", id)
}

func TestQueue(t *testing.T) {
	t.Run("DrainsRecordedMutationsInOrder", func(t *testing.T) {
		remote := newFakeRemote()
		q := syncx.NewQueue(remote, 16)
		q.Start(context.Background())

		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "t-1", Transaction: &pos.Transaction{ID: "t-1"}})
		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "p-1", Product: &pos.Product{ID: "p-1"}})
		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "d-1", Deposit: &pos.SupplierDeposit{ID: "d-1"}})

		q.Close()
		q.WaitClosed()

		require.Equal(t, []string{
			"upsert-transaction:t-1",
			"upsert-product:p-1",
			"upsert-deposit:d-1",
		}, remote.seen())
	})

	t.Run("DeleteActionsMapToDeletes", func(t *testing.T) {
		remote := newFakeRemote()
		q := syncx.NewQueue(remote, 16)
		q.Start(context.Background())

		q.Record(pos.Mutation{Action: pos.ActionDelete, ID: "p-1", Product: &pos.Product{ID: "p-1"}})
		q.Record(pos.Mutation{Action: pos.ActionDelete, ID: "s-1", Supplier: &pos.Supplier{ID: "s-1"}})
		q.Record(pos.Mutation{Action: pos.ActionDelete, ID: "d-1", Deposit: &pos.SupplierDeposit{ID: "d-1"}})

		q.Close()
		q.WaitClosed()

		require.Equal(t, []string{
			"delete-product:p-1",
			"delete-supplier:s-1",
			"delete-deposit:d-1",
		}, remote.seen())
	})

	t.Run("RemoteFailureDoesNotStopTheQueue", func(t *testing.T) {
		remote := newFakeRemote()
		remote.fail["upsert-product"] = errors.New("connection refused")
		q := syncx.NewQueue(remote, 16)
		q.Start(context.Background())

		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "p-1", Product: &pos.Product{ID: "p-1"}})
		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "s-1", Supplier: &pos.Supplier{ID: "s-1"}})

		q.Close()
		q.WaitClosed()

		// kegagalan p-1 hanya di-log; s-1 tetap jalan
		require.Equal(t, []string{"upsert-product:p-1", "upsert-supplier:s-1"}, remote.seen())
	})

	t.Run("RecordNeverBlocksWhenFull", func(t *testing.T) {
		remote := newFakeRemote()
		q := syncx.NewQueue(remote, 1)
		// worker sengaja belum di-Start: inbox penuh setelah satu task

		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "p-1", Product: &pos.Product{ID: "p-1"}})
		done := make(chan struct{})
		go func() {
			q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "p-2", Product: &pos.Product{ID: "p-2"}})
			close(done)
		}()
		<-done // selesai tanpa worker berarti drop, bukan block

		q.Start(context.Background())
		q.Close()
		q.WaitClosed()
		require.Equal(t, []string{"upsert-product:p-1"}, remote.seen())
	})

	t.Run("FlushesBufferedTasksOnCancel", func(t *testing.T) {
		remote := newFakeRemote()
		q := syncx.NewQueue(remote, 16)

		q.Record(pos.Mutation{Action: pos.ActionUpsert, ID: "p-1", Product: &pos.Product{ID: "p-1"}})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		q.Start(ctx)
		q.WaitClosed()

		require.Equal(t, []string{"upsert-product:p-1"}, remote.seen())
	})
}
