package pos

type SupplierInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type SupplierPatch struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (s *Store) AddSupplier(in SupplierInput) Supplier {
	s.mu.Lock()
	ts := now()
	sup := Supplier{
		ID:        newID(),
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.suppliers = append(s.suppliers, sup)
	s.mu.Unlock()

	s.record(Mutation{Action: ActionUpsert, ID: sup.ID, Supplier: &sup})
	return sup
}

// UpdateSupplier patches the supplier row. A name change additionally cascades
// into the denormalized Product.Supplier and SupplierDeposit.SupplierName
// fields of every row referencing this supplier, all in the same commit.
func (s *Store) UpdateSupplier(id string, patch SupplierPatch) (Supplier, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Supplier{}, ErrSupplierNotFound
	}

	sup := s.suppliers[idx]
	renamed := patch.Name != nil && *patch.Name != sup.Name
	if patch.Name != nil {
		sup.Name = *patch.Name
	}
	if patch.Phone != nil {
		sup.Phone = *patch.Phone
	}
	if patch.Address != nil {
		sup.Address = *patch.Address
	}
	if patch.Notes != nil {
		sup.Notes = *patch.Notes
	}
	sup.UpdatedAt = now()

	suppliers := append([]Supplier(nil), s.suppliers...)
	suppliers[idx] = sup
	s.suppliers = suppliers

	var touchedProducts []Product
	var touchedDeposits []SupplierDeposit
	if renamed {
		products := append([]Product(nil), s.products...)
		for i := range products {
			if products[i].SupplierID == id {
				products[i].Supplier = sup.Name
				products[i].UpdatedAt = sup.UpdatedAt
				touchedProducts = append(touchedProducts, products[i])
			}
		}
		s.products = products

		deposits := append([]SupplierDeposit(nil), s.deposits...)
		for i := range deposits {
			if deposits[i].SupplierID == id {
				deposits[i].SupplierName = sup.Name
				touchedDeposits = append(touchedDeposits, deposits[i])
			}
		}
		s.deposits = deposits
	}
	s.mu.Unlock()

	muts := []Mutation{{Action: ActionUpsert, ID: sup.ID, Supplier: &sup}}
	for i := range touchedProducts {
		muts = append(muts, Mutation{Action: ActionUpsert, ID: touchedProducts[i].ID, Product: &touchedProducts[i]})
	}
	for i := range touchedDeposits {
		muts = append(muts, Mutation{Action: ActionUpsert, ID: touchedDeposits[i].ID, Deposit: &touchedDeposits[i]})
	}
	s.record(muts...)

	return sup, nil
}

// DeleteSupplier removes the supplier row and nulls out SupplierID on
// referencing products. The denormalized name stays behind as a historical
// snapshot; deposits and opnames are history and keep their reference as-is.
func (s *Store) DeleteSupplier(id string) error {
	s.mu.Lock()
	kept := make([]Supplier, 0, len(s.suppliers))
	found := false
	for _, sup := range s.suppliers {
		if sup.ID == id {
			found = true
			continue
		}
		kept = append(kept, sup)
	}
	if !found {
		s.mu.Unlock()
		return ErrSupplierNotFound
	}
	s.suppliers = kept

	var touched []Product
	products := append([]Product(nil), s.products...)
	for i := range products {
		if products[i].SupplierID == id {
			products[i].SupplierID = ""
			products[i].UpdatedAt = now()
			touched = append(touched, products[i])
		}
	}
	s.products = products
	s.mu.Unlock()

	muts := []Mutation{{Action: ActionDelete, ID: id, Supplier: &Supplier{ID: id}}}
	for i := range touched {
		muts = append(muts, Mutation{Action: ActionUpsert, ID: touched[i].ID, Product: &touched[i]})
	}
	s.record(muts...)
	return nil
}

func (s *Store) Suppliers() []Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Supplier(nil), s.suppliers...)
}

func (s *Store) SupplierByID(id string) (Supplier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return sup, true
		}
	}
	return Supplier{}, false
}
