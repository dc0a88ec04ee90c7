package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anditri/warungpos/internal/pos"
	"github.com/anditri/warungpos/internal/wire"
)

// CloudRepo implements the remote persistence contract: bulk load on startup
// plus upsert/delete per entity, keyed by id. It is only ever called from the
// sync worker and from startup, never from the mutation path.
type CloudRepo struct{ DB *pgxpool.Pool }

// LoadAll reads the five collections. Suppliers come first so product rows can
// resolve their denormalized supplier name.
func (r *CloudRepo) LoadAll(ctx context.Context) (pos.Collections, error) {
	var out pos.Collections

	rows, err := r.DB.Query(ctx, `SELECT id, name, phone, address, notes, created_at, updated_at
	                              FROM suppliers ORDER BY created_at DESC`)
	if err != nil {
		return out, fmt.Errorf("load suppliers: %w", err)
	}
	nameByID := map[string]string{}
	for rows.Next() {
		var sr wire.SupplierRow
		if err := rows.Scan(&sr.ID, &sr.Name, &sr.Phone, &sr.Address, &sr.Notes, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
			rows.Close()
			return out, fmt.Errorf("scan supplier: %w", err)
		}
		nameByID[sr.ID] = sr.Name
		out.Suppliers = append(out.Suppliers, wire.ToSupplier(sr))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return out, err
	}

	rows, err = r.DB.Query(ctx, `SELECT id, name, price, cost_price, stock, supplier_id, category, created_at, updated_at
	                             FROM products ORDER BY created_at DESC`)
	if err != nil {
		return out, fmt.Errorf("load products: %w", err)
	}
	for rows.Next() {
		var pr wire.ProductRow
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Price, &pr.CostPrice, &pr.Stock, &pr.SupplierID, &pr.Category, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			rows.Close()
			return out, fmt.Errorf("scan product: %w", err)
		}
		name := ""
		if pr.SupplierID != nil {
			name = nameByID[*pr.SupplierID]
		}
		out.Products = append(out.Products, wire.ToProduct(pr, name))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return out, err
	}

	rows, err = r.DB.Query(ctx, `SELECT id, items, total, profit, payment_method, created_at
	                             FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return out, fmt.Errorf("load transactions: %w", err)
	}
	for rows.Next() {
		var tr wire.TransactionRow
		if err := rows.Scan(&tr.ID, &tr.Items, &tr.Total, &tr.Profit, &tr.PaymentMethod, &tr.CreatedAt); err != nil {
			rows.Close()
			return out, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := wire.ToTransaction(tr)
		if err != nil {
			rows.Close()
			return out, err
		}
		out.Transactions = append(out.Transactions, tx)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return out, err
	}

	rows, err = r.DB.Query(ctx, `SELECT id, product_id, product_name, supplier_id, supplier_name,
	                                    system_stock, actual_stock, difference, notes, created_at
	                             FROM stock_opnames ORDER BY created_at DESC`)
	if err != nil {
		return out, fmt.Errorf("load stock opnames: %w", err)
	}
	for rows.Next() {
		var or wire.OpnameRow
		if err := rows.Scan(&or.ID, &or.ProductID, &or.ProductName, &or.SupplierID, &or.SupplierName,
			&or.SystemStock, &or.ActualStock, &or.Difference, &or.Notes, &or.CreatedAt); err != nil {
			rows.Close()
			return out, fmt.Errorf("scan stock opname: %w", err)
		}
		out.StockOpnames = append(out.StockOpnames, wire.ToOpname(or))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return out, err
	}

	rows, err = r.DB.Query(ctx, `SELECT id, supplier_id, supplier_name, items, total_value, date,
	                                    notes, status, source_transaction_id, created_at
	                             FROM supplier_deposits ORDER BY created_at DESC`)
	if err != nil {
		return out, fmt.Errorf("load deposits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dr wire.DepositRow
		if err := rows.Scan(&dr.ID, &dr.SupplierID, &dr.SupplierName, &dr.Items, &dr.TotalValue, &dr.Date,
			&dr.Notes, &dr.Status, &dr.SourceTransactionID, &dr.CreatedAt); err != nil {
			return out, fmt.Errorf("scan deposit: %w", err)
		}
		d, err := wire.ToDeposit(dr)
		if err != nil {
			return out, err
		}
		out.Deposits = append(out.Deposits, d)
	}
	return out, rows.Err()
}

func (r *CloudRepo) UpsertProduct(ctx context.Context, p pos.Product) error {
	row := wire.FromProduct(p)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, price, cost_price, stock, supplier_id, category, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, price=EXCLUDED.price, cost_price=EXCLUDED.cost_price,
			stock=EXCLUDED.stock, supplier_id=EXCLUDED.supplier_id,
			category=EXCLUDED.category, updated_at=EXCLUDED.updated_at`,
		row.ID, row.Name, row.Price, row.CostPrice, row.Stock, row.SupplierID, row.Category, row.CreatedAt, row.UpdatedAt)
	return err
}

func (r *CloudRepo) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func (r *CloudRepo) UpsertSupplier(ctx context.Context, s pos.Supplier) error {
	row := wire.FromSupplier(s)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO suppliers(id, name, phone, address, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, phone=EXCLUDED.phone, address=EXCLUDED.address,
			notes=EXCLUDED.notes, updated_at=EXCLUDED.updated_at`,
		row.ID, row.Name, row.Phone, row.Address, row.Notes, row.CreatedAt, row.UpdatedAt)
	return err
}

func (r *CloudRepo) DeleteSupplier(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	return err
}

func (r *CloudRepo) UpsertTransaction(ctx context.Context, t pos.Transaction) error {
	row, err := wire.FromTransaction(t)
	if err != nil {
		return err
	}
	// Transaksi append-only; conflict berarti replay, cukup diabaikan.
	_, err = r.DB.Exec(ctx, `
		INSERT INTO transactions(id, items, total, profit, payment_method, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO NOTHING`,
		row.ID, row.Items, row.Total, row.Profit, row.PaymentMethod, row.CreatedAt)
	return err
}

func (r *CloudRepo) UpsertOpname(ctx context.Context, o pos.StockOpname) error {
	row := wire.FromOpname(o)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO stock_opnames(id, product_id, product_name, supplier_id, supplier_name,
		                          system_stock, actual_stock, difference, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO NOTHING`,
		row.ID, row.ProductID, row.ProductName, row.SupplierID, row.SupplierName,
		row.SystemStock, row.ActualStock, row.Difference, row.Notes, row.CreatedAt)
	return err
}

func (r *CloudRepo) UpsertDeposit(ctx context.Context, d pos.SupplierDeposit) error {
	row, err := wire.FromDeposit(d)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO supplier_deposits(id, supplier_id, supplier_name, items, total_value, date,
		                              notes, status, source_transaction_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			supplier_name=EXCLUDED.supplier_name, items=EXCLUDED.items,
			total_value=EXCLUDED.total_value, notes=EXCLUDED.notes, status=EXCLUDED.status`,
		row.ID, row.SupplierID, row.SupplierName, row.Items, row.TotalValue, row.Date,
		row.Notes, row.Status, row.SourceTransactionID, row.CreatedAt)
	return err
}

func (r *CloudRepo) DeleteDeposit(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM supplier_deposits WHERE id=$1`, id)
	return err
}
