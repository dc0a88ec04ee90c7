// Package wire defines the row shapes exchanged with the cloud store:
// underscore_case columns, timestamps as text, nested line items as typed,
// validated JSON instead of trusting whatever the remote row carries.
package wire

import (
	"encoding/json"
	"fmt"

	"time"

	"github.com/anditri/warungpos/internal/pos"
)

type ProductRow struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	CostPrice  int64     `json:"cost_price"`
	Stock      int       `json:"stock"`
	SupplierID *string   `json:"supplier_id"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SupplierRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionRow struct {
	ID            string          `json:"id"`
	Items         json.RawMessage `json:"items"`
	Total         int64           `json:"total"`
	Profit        int64           `json:"profit"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OpnameRow struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	SupplierID   *string   `json:"supplier_id"`
	SupplierName *string   `json:"supplier_name"`
	SystemStock  int       `json:"system_stock"`
	ActualStock  int       `json:"actual_stock"`
	Difference   int       `json:"difference"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type DepositRow struct {
	ID                  string          `json:"id"`
	SupplierID          string          `json:"supplier_id"`
	SupplierName        string          `json:"supplier_name"`
	Items               json.RawMessage `json:"items"`
	TotalValue          int64           `json:"total_value"`
	Date                time.Time       `json:"date"`
	Notes               string          `json:"notes"`
	Status              string          `json:"status"`
	SourceTransactionID *string         `json:"source_transaction_id"`
	CreatedAt           time.Time       `json:"created_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ---- native -> wire ----

func FromProduct(p pos.Product) ProductRow {
	return ProductRow{
		ID: p.ID, Name: p.Name, Price: p.Price, CostPrice: p.CostPrice, Stock: p.Stock,
		SupplierID: optional(p.SupplierID), Category: p.Category,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func FromSupplier(s pos.Supplier) SupplierRow {
	return SupplierRow{
		ID: s.ID, Name: s.Name, Phone: s.Phone, Address: s.Address, Notes: s.Notes,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func FromTransaction(t pos.Transaction) (TransactionRow, error) {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return TransactionRow{}, fmt.Errorf("encode transaction items: %w", err)
	}
	return TransactionRow{
		ID: t.ID, Items: items, Total: t.Total, Profit: t.Profit,
		PaymentMethod: string(t.PaymentMethod), CreatedAt: t.CreatedAt,
	}, nil
}

func FromOpname(o pos.StockOpname) OpnameRow {
	return OpnameRow{
		ID: o.ID, ProductID: o.ProductID, ProductName: o.ProductName,
		SupplierID: optional(o.SupplierID), SupplierName: optional(o.SupplierName),
		SystemStock: o.SystemStock, ActualStock: o.ActualStock, Difference: o.Difference,
		Notes: o.Notes, CreatedAt: o.CreatedAt,
	}
}

func FromDeposit(d pos.SupplierDeposit) (DepositRow, error) {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return DepositRow{}, fmt.Errorf("encode deposit items: %w", err)
	}
	return DepositRow{
		ID: d.ID, SupplierID: d.SupplierID, SupplierName: d.SupplierName, Items: items,
		TotalValue: d.TotalValue, Date: d.Date, Notes: d.Notes, Status: string(d.Status),
		SourceTransactionID: optional(d.SourceTransactionID), CreatedAt: d.CreatedAt,
	}, nil
}

// ---- wire -> native ----

// ToProduct maps a product row back to the native shape. supplierName is the
// denormalized name resolved from the supplier collection at load time.
func ToProduct(r ProductRow, supplierName string) pos.Product {
	return pos.Product{
		ID: r.ID, Name: r.Name, Price: r.Price, CostPrice: r.CostPrice, Stock: r.Stock,
		Supplier: supplierName, SupplierID: deref(r.SupplierID), Category: r.Category,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func ToSupplier(r SupplierRow) pos.Supplier {
	return pos.Supplier{
		ID: r.ID, Name: r.Name, Phone: r.Phone, Address: r.Address, Notes: r.Notes,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func ToTransaction(r TransactionRow) (pos.Transaction, error) {
	items, err := DecodeCartItems(r.Items)
	if err != nil {
		return pos.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return pos.Transaction{
		ID: r.ID, Items: items, Total: r.Total, Profit: r.Profit,
		PaymentMethod: pos.PaymentMethod(r.PaymentMethod), CreatedAt: r.CreatedAt,
	}, nil
}

func ToOpname(r OpnameRow) pos.StockOpname {
	return pos.StockOpname{
		ID: r.ID, ProductID: r.ProductID, ProductName: r.ProductName,
		SupplierID: deref(r.SupplierID), SupplierName: deref(r.SupplierName),
		SystemStock: r.SystemStock, ActualStock: r.ActualStock, Difference: r.Difference,
		Notes: r.Notes, CreatedAt: r.CreatedAt,
	}
}

func ToDeposit(r DepositRow) (pos.SupplierDeposit, error) {
	items, err := DecodeDepositItems(r.Items)
	if err != nil {
		return pos.SupplierDeposit{}, fmt.Errorf("deposit %s: %w", r.ID, err)
	}
	return pos.SupplierDeposit{
		ID: r.ID, SupplierID: r.SupplierID, SupplierName: r.SupplierName, Items: items,
		TotalValue: r.TotalValue, Date: r.Date, Notes: r.Notes,
		Status: pos.DepositStatus(r.Status), SourceTransactionID: deref(r.SourceTransactionID),
		CreatedAt: r.CreatedAt,
	}, nil
}

// DecodeCartItems parses the jsonb items column into typed cart lines and
// rejects rows a remote writer could have corrupted.
func DecodeCartItems(raw json.RawMessage) ([]pos.CartItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []pos.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	for i, it := range items {
		if it.Product.ID == "" {
			return nil, fmt.Errorf("cart item %d: missing product id", i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("cart item %d: quantity must be positive, got %d", i, it.Quantity)
		}
	}
	return items, nil
}

// DecodeDepositItems does the same for deposit line items.
func DecodeDepositItems(raw json.RawMessage) ([]pos.DepositItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []pos.DepositItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode deposit items: %w", err)
	}
	for i, it := range items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("deposit item %d: missing product id", i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("deposit item %d: quantity must be positive, got %d", i, it.Quantity)
		}
	}
	return items, nil
}
