package pos

// ProductInput carries the caller-supplied fields for a new product.
type ProductInput struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	CostPrice  int64  `json:"costPrice"`
	Stock      int    `json:"stock"`
	Supplier   string `json:"supplier"`
	SupplierID string `json:"supplierId"`
	Category   string `json:"category"`
}

// ProductPatch updates only the fields that are set.
type ProductPatch struct {
	Name       *string `json:"name"`
	Price      *int64  `json:"price"`
	CostPrice  *int64  `json:"costPrice"`
	Stock      *int    `json:"stock"`
	Supplier   *string `json:"supplier"`
	SupplierID *string `json:"supplierId"`
	Category   *string `json:"category"`
}

func (s *Store) AddProduct(in ProductInput) Product {
	s.mu.Lock()
	ts := now()
	p := Product{
		ID:         newID(),
		Name:       in.Name,
		Price:      in.Price,
		CostPrice:  in.CostPrice,
		Stock:      in.Stock,
		Supplier:   in.Supplier,
		SupplierID: in.SupplierID,
		Category:   in.Category,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	s.products = append(s.products, p)
	s.mu.Unlock()

	s.record(Mutation{Action: ActionUpsert, ID: p.ID, Product: &p})
	return p
}

func (s *Store) UpdateProduct(id string, patch ProductPatch) (Product, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Product{}, ErrProductNotFound
	}

	p := s.products[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.CostPrice != nil {
		p.CostPrice = *patch.CostPrice
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Supplier != nil {
		p.Supplier = *patch.Supplier
	}
	if patch.SupplierID != nil {
		p.SupplierID = *patch.SupplierID
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	p.UpdatedAt = now()

	updated := append([]Product(nil), s.products...)
	updated[idx] = p
	s.products = updated
	s.mu.Unlock()

	s.record(Mutation{Action: ActionUpsert, ID: p.ID, Product: &p})
	return p, nil
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	kept := make([]Product, 0, len(s.products))
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		s.mu.Unlock()
		return ErrProductNotFound
	}
	s.products = kept
	s.mu.Unlock()

	s.record(Mutation{Action: ActionDelete, ID: id, Product: &Product{ID: id}})
	return nil
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.products...)
}

func (s *Store) ProductByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
