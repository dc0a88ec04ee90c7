package pos

import (
	"fmt"
	"time"
)

// ProcessTransaction turns the current cart into a sale. It snapshots the cart
// lines, computes total and profit over the snapshot, decrements stock for
// every product in the cart, and generates one pending deposit per distinct
// supplier touched by the sale. Everything is committed in a single step.
//
// Returns nil when the cart is empty; that is the signaled no-op, not an error.
func (s *Store) ProcessTransaction(method PaymentMethod) *Transaction {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return nil
	}

	items := append([]CartItem(nil), s.cart...)
	ts := now()

	var total, profit int64
	for _, it := range items {
		total += it.Product.Price * int64(it.Quantity)
		profit += (it.Product.Price - it.Product.CostPrice) * int64(it.Quantity)
	}

	tx := Transaction{
		ID:            newID(),
		Items:         items,
		Total:         total,
		Profit:        profit,
		PaymentMethod: method,
		CreatedAt:     ts,
	}

	// Kurangi stok untuk setiap produk di keranjang.
	qtyByProduct := map[string]int{}
	for _, it := range items {
		qtyByProduct[it.Product.ID] += it.Quantity
	}
	updated := make([]Product, len(s.products))
	var touched []Product
	for i, p := range s.products {
		if q, ok := qtyByProduct[p.ID]; ok {
			p.Stock -= q
			p.UpdatedAt = ts
			touched = append(touched, p)
		}
		updated[i] = p
	}

	deposits := s.buildSaleDeposits(tx, items, ts)

	s.transactions = append([]Transaction{tx}, s.transactions...)
	s.products = updated
	s.deposits = append(append([]SupplierDeposit(nil), deposits...), s.deposits...)
	s.cart = nil
	s.mu.Unlock()

	muts := []Mutation{{Action: ActionUpsert, ID: tx.ID, Transaction: &tx}}
	for i := range touched {
		muts = append(muts, Mutation{Action: ActionUpsert, ID: touched[i].ID, Product: &touched[i]})
	}
	for i := range deposits {
		muts = append(muts, Mutation{Action: ActionUpsert, ID: deposits[i].ID, Deposit: &deposits[i]})
	}
	s.record(muts...)

	return &tx
}

// buildSaleDeposits groups supplier-owned cart lines into one pending deposit
// per supplier. Lines without a supplier are skipped; the same product sold in
// several lines is summed into one deposit item. Supplier order follows first
// appearance in the cart so the result is deterministic.
func (s *Store) buildSaleDeposits(tx Transaction, items []CartItem, ts time.Time) []SupplierDeposit {
	type group struct {
		items []DepositItem
		total int64
	}
	groups := map[string]*group{}
	var order []string

	for _, it := range items {
		p := it.Product
		if p.SupplierID == "" {
			continue
		}
		g, ok := groups[p.SupplierID]
		if !ok {
			g = &group{}
			groups[p.SupplierID] = g
			order = append(order, p.SupplierID)
		}
		merged := false
		for i := range g.items {
			if g.items[i].ProductID == p.ID {
				g.items[i].Quantity += it.Quantity
				merged = true
				break
			}
		}
		if !merged {
			g.items = append(g.items, DepositItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				CostPrice:   p.CostPrice,
			})
		}
		g.total += p.CostPrice * int64(it.Quantity)
	}

	deposits := make([]SupplierDeposit, 0, len(order))
	for _, supplierID := range order {
		g := groups[supplierID]
		name := "Unknown"
		for _, sup := range s.suppliers {
			if sup.ID == supplierID {
				name = sup.Name
				break
			}
		}
		deposits = append(deposits, SupplierDeposit{
			ID:                  newID(),
			SupplierID:          supplierID,
			SupplierName:        name,
			Items:               g.items,
			TotalValue:          g.total,
			Date:                ts,
			Notes:               fmt.Sprintf("Penjualan otomatis - %s", tx.ID),
			Status:              DepositPending,
			SourceTransactionID: tx.ID,
			CreatedAt:           ts,
		})
	}
	return deposits
}

func (s *Store) Transactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Transaction(nil), s.transactions...)
}
