package pos

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrDepositNotFound  = errors.New("deposit not found")
	ErrOpnameNotFound   = errors.New("stock opname not found")
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

type DepositStatus string

const (
	DepositPending DepositStatus = "pending"
	DepositSettled DepositStatus = "settled"
)

// Product adalah barang titipan. Supplier adalah nama yang didenormalisasi;
// SupplierID kosong untuk barang milik sendiri.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	CostPrice  int64     `json:"costPrice"`
	Stock      int       `json:"stock"`
	Supplier   string    `json:"supplier"`
	SupplierID string    `json:"supplierId,omitempty"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItem holds a snapshot of the product at the time it entered the cart,
// not a live reference.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Transaction is append-only; Total and Profit are always the sums over its
// own snapshotted items.
type Transaction struct {
	ID            string        `json:"id"`
	Items         []CartItem    `json:"items"`
	Total         int64         `json:"total"`
	Profit        int64         `json:"profit"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// StockOpname records a physical count reconciliation. Difference is always
// ActualStock - SystemStock, recorded even when zero.
type StockOpname struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	SupplierID   string    `json:"supplierId,omitempty"`
	SupplierName string    `json:"supplierName,omitempty"`
	SystemStock  int       `json:"systemStock"`
	ActualStock  int       `json:"actualStock"`
	Difference   int       `json:"difference"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

type DepositItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	CostPrice   int64  `json:"costPrice"`
}

// SupplierDeposit is the per-supplier payable. SourceTransactionID is set when
// the deposit was generated automatically by a sale; manual deposits leave it
// empty.
type SupplierDeposit struct {
	ID                  string        `json:"id"`
	SupplierID          string        `json:"supplierId"`
	SupplierName        string        `json:"supplierName"`
	Items               []DepositItem `json:"items"`
	TotalValue          int64         `json:"totalValue"`
	Date                time.Time     `json:"date"`
	Notes               string        `json:"notes"`
	Status              DepositStatus `json:"status"`
	SourceTransactionID string        `json:"sourceTransactionId,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
}

// Collections bundles the five persisted entity sets. The cart is transient
// and deliberately not part of it.
type Collections struct {
	Products     []Product         `json:"products"`
	Suppliers    []Supplier        `json:"suppliers"`
	Transactions []Transaction     `json:"transactions"`
	StockOpnames []StockOpname     `json:"stockOpnames"`
	Deposits     []SupplierDeposit `json:"deposits"`
}
