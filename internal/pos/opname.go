package pos

// OpnameInput carries a physical count for one product. SystemStock is the
// caller's view of the stock at count time; the recorded difference is always
// ActualStock - SystemStock, even when zero.
type OpnameInput struct {
	ProductID   string `json:"productId"`
	SystemStock int    `json:"systemStock"`
	ActualStock int    `json:"actualStock"`
	Notes       string `json:"notes"`
}

func buildOpname(in OpnameInput, p Product, found bool) StockOpname {
	o := StockOpname{
		ID:          newID(),
		ProductID:   in.ProductID,
		SystemStock: in.SystemStock,
		ActualStock: in.ActualStock,
		Difference:  in.ActualStock - in.SystemStock,
		Notes:       in.Notes,
		CreatedAt:   now(),
	}
	if found {
		o.ProductName = p.Name
		o.SupplierID = p.SupplierID
		o.SupplierName = p.Supplier
	}
	return o
}

// AddStockOpname records the count without touching product stock. Use
// ReconcileStock when the count should also be applied.
func (s *Store) AddStockOpname(in OpnameInput) StockOpname {
	s.mu.Lock()
	var p Product
	found := false
	for _, cand := range s.products {
		if cand.ID == in.ProductID {
			p, found = cand, true
			break
		}
	}
	o := buildOpname(in, p, found)
	s.stockOpnames = append([]StockOpname{o}, s.stockOpnames...)
	s.mu.Unlock()

	s.record(Mutation{Action: ActionUpsert, ID: o.ID, Opname: &o})
	return o
}

// ApplyStockOpname sets the product's stock to the opname's counted value.
func (s *Store) ApplyStockOpname(opnameID string) error {
	s.mu.Lock()
	var o StockOpname
	found := false
	for _, cand := range s.stockOpnames {
		if cand.ID == opnameID {
			o, found = cand, true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrOpnameNotFound
	}

	var touched *Product
	updated := append([]Product(nil), s.products...)
	for i := range updated {
		if updated[i].ID == o.ProductID {
			updated[i].Stock = o.ActualStock
			updated[i].UpdatedAt = now()
			touched = &updated[i]
		}
	}
	s.products = updated
	s.mu.Unlock()

	if touched != nil {
		s.record(Mutation{Action: ActionUpsert, ID: touched.ID, Product: touched})
	}
	return nil
}

// ReconcileStock records the opname and applies the counted stock to the
// product in the same commit, so a crash can never leave the record without
// the stock correction.
func (s *Store) ReconcileStock(in OpnameInput) (StockOpname, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == in.ProductID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return StockOpname{}, ErrProductNotFound
	}

	o := buildOpname(in, s.products[idx], true)

	updated := append([]Product(nil), s.products...)
	updated[idx].Stock = in.ActualStock
	updated[idx].UpdatedAt = o.CreatedAt
	p := updated[idx]

	s.stockOpnames = append([]StockOpname{o}, s.stockOpnames...)
	s.products = updated
	s.mu.Unlock()

	s.record(
		Mutation{Action: ActionUpsert, ID: o.ID, Opname: &o},
		Mutation{Action: ActionUpsert, ID: p.ID, Product: &p},
	)
	return o, nil
}

func (s *Store) StockOpnames() []StockOpname {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]StockOpname(nil), s.stockOpnames...)
}
