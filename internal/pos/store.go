package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mutation describes one committed entity change, handed to the sink after the
// store state has already been replaced. The sync layer turns these into
// remote writes; the store itself never waits on them.
type Mutation struct {
	Action      string // "upsert" | "delete"
	ID          string
	Product     *Product
	Supplier    *Supplier
	Transaction *Transaction
	Opname      *StockOpname
	Deposit     *SupplierDeposit
}

const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// MutationSink receives committed mutations. Record must not block: a slow or
// failing remote never holds up the cashier.
type MutationSink interface {
	Record(m Mutation)
}

// Store is the single source of truth for all POS entities. Mutations build
// replacement slices and commit under the lock in one step, so readers never
// observe partial state (decremented stock without its transaction, etc).
type Store struct {
	mu           sync.RWMutex
	products     []Product
	suppliers    []Supplier
	transactions []Transaction
	stockOpnames []StockOpname
	deposits     []SupplierDeposit
	cart         []CartItem

	sink MutationSink
}

// NewStore returns an empty store. sink may be nil when no remote sync is
// wanted (tests, offline mode).
func NewStore(sink MutationSink) *Store {
	return &Store{sink: sink}
}

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

func (s *Store) record(ms ...Mutation) {
	if s.sink == nil {
		return
	}
	for _, m := range ms {
		s.sink.Record(m)
	}
}

// Snapshot copies the five persisted collections (without the cart), e.g. for
// a backup export.
func (s *Store) Snapshot() Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Collections{
		Products:     append([]Product(nil), s.products...),
		Suppliers:    append([]Supplier(nil), s.suppliers...),
		Transactions: append([]Transaction(nil), s.transactions...),
		StockOpnames: append([]StockOpname(nil), s.stockOpnames...),
		Deposits:     append([]SupplierDeposit(nil), s.deposits...),
	}
}

// Restore replaces every persisted collection with the restored backup and
// clears the cart. An imported backup never carries an in-flight cart.
func (s *Store) Restore(c Collections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = c.Products
	s.suppliers = c.Suppliers
	s.transactions = c.Transactions
	s.stockOpnames = c.StockOpnames
	s.deposits = c.Deposits
	s.cart = nil
}

// LoadRemote applies the startup bulk load. Per collection: replace local only
// when the remote set is non-empty or the local one was already empty.
// Jangan timpa data lokal yang belum tersinkron dengan respons cloud kosong.
func (s *Store) LoadRemote(c Collections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(c.Suppliers) > 0 || len(s.suppliers) == 0 {
		s.suppliers = c.Suppliers
	}
	if len(c.Products) > 0 || len(s.products) == 0 {
		s.products = c.Products
	}
	if len(c.Transactions) > 0 || len(s.transactions) == 0 {
		s.transactions = c.Transactions
	}
	if len(c.StockOpnames) > 0 || len(s.stockOpnames) == 0 {
		s.stockOpnames = c.StockOpnames
	}
	if len(c.Deposits) > 0 || len(s.deposits) == 0 {
		s.deposits = c.Deposits
	}
}
