package pos

import "time"

// DepositInput records a delivery (or return) from a supplier.
type DepositInput struct {
	SupplierID   string        `json:"supplierId"`
	SupplierName string        `json:"supplierName"`
	Items        []DepositItem `json:"items"`
	TotalValue   int64         `json:"totalValue"`
	Date         time.Time     `json:"date"`
	Notes        string        `json:"notes"`
	Status       DepositStatus `json:"status"`
}

// AddDeposit creates the deposit and increments stock for every item's
// product: the inverse of the sale path, deposits put goods on the shelf.
func (s *Store) AddDeposit(in DepositInput) SupplierDeposit {
	s.mu.Lock()
	ts := now()
	status := in.Status
	if status == "" {
		status = DepositPending
	}
	total := in.TotalValue
	if total == 0 {
		for _, it := range in.Items {
			total += it.CostPrice * int64(it.Quantity)
		}
	}
	date := in.Date
	if date.IsZero() {
		date = ts
	}
	d := SupplierDeposit{
		ID:           newID(),
		SupplierID:   in.SupplierID,
		SupplierName: in.SupplierName,
		Items:        append([]DepositItem(nil), in.Items...),
		TotalValue:   total,
		Date:         date,
		Notes:        in.Notes,
		Status:       status,
		CreatedAt:    ts,
	}

	qtyByProduct := map[string]int{}
	for _, it := range in.Items {
		qtyByProduct[it.ProductID] += it.Quantity
	}
	var touched []Product
	products := append([]Product(nil), s.products...)
	for i := range products {
		if q, ok := qtyByProduct[products[i].ID]; ok {
			products[i].Stock += q
			products[i].UpdatedAt = ts
			touched = append(touched, products[i])
		}
	}

	s.deposits = append([]SupplierDeposit{d}, s.deposits...)
	s.products = products
	s.mu.Unlock()

	muts := []Mutation{{Action: ActionUpsert, ID: d.ID, Deposit: &d}}
	for i := range touched {
		muts = append(muts, Mutation{Action: ActionUpsert, ID: touched[i].ID, Product: &touched[i]})
	}
	s.record(muts...)
	return d
}

// SettleDeposit flips status pending -> settled. One-way and idempotent:
// settling an already-settled deposit leaves it settled.
func (s *Store) SettleDeposit(id string) (SupplierDeposit, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.deposits {
		if s.deposits[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return SupplierDeposit{}, ErrDepositNotFound
	}
	deposits := append([]SupplierDeposit(nil), s.deposits...)
	deposits[idx].Status = DepositSettled
	d := deposits[idx]
	s.deposits = deposits
	s.mu.Unlock()

	s.record(Mutation{Action: ActionUpsert, ID: d.ID, Deposit: &d})
	return d, nil
}

// DeleteDeposit removes the row only. No stock reversal.
func (s *Store) DeleteDeposit(id string) error {
	s.mu.Lock()
	kept := make([]SupplierDeposit, 0, len(s.deposits))
	found := false
	for _, d := range s.deposits {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		s.mu.Unlock()
		return ErrDepositNotFound
	}
	s.deposits = kept
	s.mu.Unlock()

	s.record(Mutation{Action: ActionDelete, ID: id, Deposit: &SupplierDeposit{ID: id}})
	return nil
}

func (s *Store) Deposits() []SupplierDeposit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SupplierDeposit(nil), s.deposits...)
}
