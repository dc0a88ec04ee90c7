package pos

// Seed fills an empty store with demo data for local development. It is a
// no-op when any supplier or product already exists, so a store hydrated from
// the cloud is never polluted.
func (s *Store) Seed() {
	s.mu.Lock()
	if len(s.suppliers) > 0 || len(s.products) > 0 {
		s.mu.Unlock()
		return
	}
	ts := now()

	suppliers := []Supplier{
		{ID: newID(), Name: "Pak Ahmad", Phone: "081234567890", Address: "Jl. Merdeka No. 10", Notes: "Supplier snack", CreatedAt: ts, UpdatedAt: ts},
		{ID: newID(), Name: "Bu Siti", Phone: "081234567891", Address: "Jl. Sudirman No. 5", Notes: "Supplier wafer & biskuit", CreatedAt: ts, UpdatedAt: ts},
		{ID: newID(), Name: "Pak Budi", Phone: "081234567892", Address: "Jl. Gatot Subroto No. 15", Notes: "Supplier minuman", CreatedAt: ts, UpdatedAt: ts},
	}

	products := []Product{
		{ID: newID(), Name: "Chitato Original", Price: 10000, CostPrice: 8000, Stock: 50, Supplier: suppliers[0].Name, SupplierID: suppliers[0].ID, Category: "Snack", CreatedAt: ts, UpdatedAt: ts},
		{ID: newID(), Name: "Tango Wafer", Price: 5000, CostPrice: 4000, Stock: 30, Supplier: suppliers[1].Name, SupplierID: suppliers[1].ID, Category: "Wafer", CreatedAt: ts, UpdatedAt: ts},
		{ID: newID(), Name: "Oreo Original", Price: 7000, CostPrice: 5500, Stock: 40, Supplier: suppliers[1].Name, SupplierID: suppliers[1].ID, Category: "Biskuit", CreatedAt: ts, UpdatedAt: ts},
		{ID: newID(), Name: "Aqua 600ml", Price: 4000, CostPrice: 3000, Stock: 100, Supplier: suppliers[2].Name, SupplierID: suppliers[2].ID, Category: "Minuman", CreatedAt: ts, UpdatedAt: ts},
		{ID: newID(), Name: "Teh Pucuk 350ml", Price: 5000, CostPrice: 3800, Stock: 60, Supplier: suppliers[2].Name, SupplierID: suppliers[2].ID, Category: "Minuman", CreatedAt: ts, UpdatedAt: ts},
	}

	s.suppliers = suppliers
	s.products = products
	s.mu.Unlock()
}
