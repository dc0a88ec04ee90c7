// Package backup converts the store's collections to and from the portable
// snapshot file: {version: 1, exportedAt: ..., data: {...}} with every
// timestamp as an RFC3339 string at millisecond precision.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anditri/warungpos/internal/pos"
)

const Version = 1

// tsLayout matches JS Date.toISOString: UTC, milliseconds, trailing Z.
const tsLayout = "2006-01-02T15:04:05.000Z07:00"

type Envelope struct {
	Version    int    `json:"version"`
	ExportedAt string `json:"exportedAt"`
	Data       Data   `json:"data"`
}

type Data struct {
	Products     []ProductRow     `json:"products"`
	Suppliers    []SupplierRow    `json:"suppliers"`
	Transactions []TransactionRow `json:"transactions"`
	StockOpnames []OpnameRow      `json:"stockOpnames"`
	Deposits     []DepositRow     `json:"deposits"`
}

type ProductRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	CostPrice  int64  `json:"costPrice"`
	Stock      int    `json:"stock"`
	Supplier   string `json:"supplier"`
	SupplierID string `json:"supplierId,omitempty"`
	Category   string `json:"category"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type SupplierRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CartItemRow struct {
	Product  ProductRow `json:"product"`
	Quantity int        `json:"quantity"`
}

type TransactionRow struct {
	ID            string        `json:"id"`
	Items         []CartItemRow `json:"items"`
	Total         int64         `json:"total"`
	Profit        int64         `json:"profit"`
	PaymentMethod string        `json:"paymentMethod"`
	CreatedAt     string        `json:"createdAt"`
}

type OpnameRow struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	SupplierID   string `json:"supplierId,omitempty"`
	SupplierName string `json:"supplierName,omitempty"`
	SystemStock  int    `json:"systemStock"`
	ActualStock  int    `json:"actualStock"`
	Difference   int    `json:"difference"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"createdAt"`
}

type DepositRow struct {
	ID                  string            `json:"id"`
	SupplierID          string            `json:"supplierId"`
	SupplierName        string            `json:"supplierName"`
	Items               []pos.DepositItem `json:"items"`
	TotalValue          int64             `json:"totalValue"`
	Date                string            `json:"date"`
	Notes               string            `json:"notes"`
	Status              string            `json:"status"`
	SourceTransactionID string            `json:"sourceTransactionId,omitempty"`
	CreatedAt           string            `json:"createdAt"`
}

func fmtTime(t time.Time) string { return t.UTC().Format(tsLayout) }

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", field, err)
	}
	return t, nil
}

// Serialize writes the full snapshot envelope. Total and lossless for the five
// persisted collections; the transient cart is never part of a backup.
func Serialize(c pos.Collections) ([]byte, error) {
	env := Envelope{
		Version:    Version,
		ExportedAt: fmtTime(time.Now()),
		Data: Data{
			Products:     make([]ProductRow, 0, len(c.Products)),
			Suppliers:    make([]SupplierRow, 0, len(c.Suppliers)),
			Transactions: make([]TransactionRow, 0, len(c.Transactions)),
			StockOpnames: make([]OpnameRow, 0, len(c.StockOpnames)),
			Deposits:     make([]DepositRow, 0, len(c.Deposits)),
		},
	}
	for _, p := range c.Products {
		env.Data.Products = append(env.Data.Products, productRow(p))
	}
	for _, s := range c.Suppliers {
		env.Data.Suppliers = append(env.Data.Suppliers, SupplierRow{
			ID: s.ID, Name: s.Name, Phone: s.Phone, Address: s.Address, Notes: s.Notes,
			CreatedAt: fmtTime(s.CreatedAt), UpdatedAt: fmtTime(s.UpdatedAt),
		})
	}
	for _, t := range c.Transactions {
		row := TransactionRow{
			ID: t.ID, Total: t.Total, Profit: t.Profit,
			PaymentMethod: string(t.PaymentMethod), CreatedAt: fmtTime(t.CreatedAt),
			Items: make([]CartItemRow, 0, len(t.Items)),
		}
		for _, it := range t.Items {
			row.Items = append(row.Items, CartItemRow{Product: productRow(it.Product), Quantity: it.Quantity})
		}
		env.Data.Transactions = append(env.Data.Transactions, row)
	}
	for _, o := range c.StockOpnames {
		env.Data.StockOpnames = append(env.Data.StockOpnames, OpnameRow{
			ID: o.ID, ProductID: o.ProductID, ProductName: o.ProductName,
			SupplierID: o.SupplierID, SupplierName: o.SupplierName,
			SystemStock: o.SystemStock, ActualStock: o.ActualStock, Difference: o.Difference,
			Notes: o.Notes, CreatedAt: fmtTime(o.CreatedAt),
		})
	}
	for _, d := range c.Deposits {
		env.Data.Deposits = append(env.Data.Deposits, DepositRow{
			ID: d.ID, SupplierID: d.SupplierID, SupplierName: d.SupplierName,
			Items: append([]pos.DepositItem(nil), d.Items...), TotalValue: d.TotalValue,
			Date: fmtTime(d.Date), Notes: d.Notes, Status: string(d.Status),
			SourceTransactionID: d.SourceTransactionID, CreatedAt: fmtTime(d.CreatedAt),
		})
	}
	return json.MarshalIndent(env, "", "  ")
}

func productRow(p pos.Product) ProductRow {
	return ProductRow{
		ID: p.ID, Name: p.Name, Price: p.Price, CostPrice: p.CostPrice, Stock: p.Stock,
		Supplier: p.Supplier, SupplierID: p.SupplierID, Category: p.Category,
		CreatedAt: fmtTime(p.CreatedAt), UpdatedAt: fmtTime(p.UpdatedAt),
	}
}

// Deserialize validates the envelope shape and reconstructs the native
// collections. The returned state never includes a cart: a restored backup
// starts with an empty one.
func Deserialize(b []byte) (pos.Collections, error) {
	var raw struct {
		Version json.RawMessage `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return pos.Collections{}, fmt.Errorf("invalid backup: %w", err)
	}
	var version float64
	if len(raw.Version) == 0 || json.Unmarshal(raw.Version, &version) != nil {
		return pos.Collections{}, errors.New("invalid backup envelope: version must be a number")
	}
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return pos.Collections{}, errors.New("invalid backup envelope: missing data")
	}
	var data Data
	if err := json.Unmarshal(raw.Data, &data); err != nil {
		return pos.Collections{}, fmt.Errorf("invalid backup data: %w", err)
	}

	out := pos.Collections{}
	for _, r := range data.Products {
		p, err := rowProduct(r)
		if err != nil {
			return pos.Collections{}, err
		}
		out.Products = append(out.Products, p)
	}
	for _, r := range data.Suppliers {
		created, err := parseTime("supplier createdAt", r.CreatedAt)
		if err != nil {
			return pos.Collections{}, err
		}
		updated, err := parseTime("supplier updatedAt", r.UpdatedAt)
		if err != nil {
			return pos.Collections{}, err
		}
		out.Suppliers = append(out.Suppliers, pos.Supplier{
			ID: r.ID, Name: r.Name, Phone: r.Phone, Address: r.Address, Notes: r.Notes,
			CreatedAt: created, UpdatedAt: updated,
		})
	}
	for _, r := range data.Transactions {
		created, err := parseTime("transaction createdAt", r.CreatedAt)
		if err != nil {
			return pos.Collections{}, err
		}
		tx := pos.Transaction{
			ID: r.ID, Total: r.Total, Profit: r.Profit,
			PaymentMethod: pos.PaymentMethod(r.PaymentMethod), CreatedAt: created,
		}
		for _, it := range r.Items {
			p, err := rowProduct(it.Product)
			if err != nil {
				return pos.Collections{}, err
			}
			tx.Items = append(tx.Items, pos.CartItem{Product: p, Quantity: it.Quantity})
		}
		out.Transactions = append(out.Transactions, tx)
	}
	for _, r := range data.StockOpnames {
		created, err := parseTime("stock opname createdAt", r.CreatedAt)
		if err != nil {
			return pos.Collections{}, err
		}
		out.StockOpnames = append(out.StockOpnames, pos.StockOpname{
			ID: r.ID, ProductID: r.ProductID, ProductName: r.ProductName,
			SupplierID: r.SupplierID, SupplierName: r.SupplierName,
			SystemStock: r.SystemStock, ActualStock: r.ActualStock, Difference: r.Difference,
			Notes: r.Notes, CreatedAt: created,
		})
	}
	for _, r := range data.Deposits {
		created, err := parseTime("deposit createdAt", r.CreatedAt)
		if err != nil {
			return pos.Collections{}, err
		}
		date, err := parseTime("deposit date", r.Date)
		if err != nil {
			return pos.Collections{}, err
		}
		out.Deposits = append(out.Deposits, pos.SupplierDeposit{
			ID: r.ID, SupplierID: r.SupplierID, SupplierName: r.SupplierName,
			Items: append([]pos.DepositItem(nil), r.Items...), TotalValue: r.TotalValue,
			Date: date, Notes: r.Notes, Status: pos.DepositStatus(r.Status),
			SourceTransactionID: r.SourceTransactionID, CreatedAt: created,
		})
	}
	return out, nil
}

func rowProduct(r ProductRow) (pos.Product, error) {
	created, err := parseTime("product createdAt", r.CreatedAt)
	if err != nil {
		return pos.Product{}, err
	}
	updated, err := parseTime("product updatedAt", r.UpdatedAt)
	if err != nil {
		return pos.Product{}, err
	}
	return pos.Product{
		ID: r.ID, Name: r.Name, Price: r.Price, CostPrice: r.CostPrice, Stock: r.Stock,
		Supplier: r.Supplier, SupplierID: r.SupplierID, Category: r.Category,
		CreatedAt: created, UpdatedAt: updated,
	}, nil
}
