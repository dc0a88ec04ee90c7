package pos

// SupplierStats aggregates a supplier's footprint across products and
// deposits.
type SupplierStats struct {
	TotalProducts int   `json:"totalProducts"`
	TotalDeposits int   `json:"totalDeposits"`
	TotalValue    int64 `json:"totalValue"`
}

// ProductStats is computed by scanning the snapshotted transaction lines,
// never from the live product row: price edits after a sale must not rewrite
// history.
type ProductStats struct {
	TotalSold    int   `json:"totalSold"`
	TotalRevenue int64 `json:"totalRevenue"`
	TotalProfit  int64 `json:"totalProfit"`
}

func (s *Store) ProductsBySupplier(supplierID string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.products {
		if p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) TransactionsByProduct(productID string) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Transaction
	for _, t := range s.transactions {
		for _, it := range t.Items {
			if it.Product.ID == productID {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func (s *Store) DepositsBySupplier(supplierID string) []SupplierDeposit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []SupplierDeposit
	for _, d := range s.deposits {
		if d.SupplierID == supplierID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) StockOpnamesByProduct(productID string) []StockOpname {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []StockOpname
	for _, o := range s.stockOpnames {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) SupplierStats(supplierID string) SupplierStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st SupplierStats
	for _, p := range s.products {
		if p.SupplierID == supplierID {
			st.TotalProducts++
		}
	}
	for _, d := range s.deposits {
		if d.SupplierID == supplierID {
			st.TotalDeposits++
			st.TotalValue += d.TotalValue
		}
	}
	return st
}

func (s *Store) ProductStats(productID string) ProductStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st ProductStats
	for _, t := range s.transactions {
		for _, it := range t.Items {
			if it.Product.ID != productID {
				continue
			}
			st.TotalSold += it.Quantity
			st.TotalRevenue += it.Product.Price * int64(it.Quantity)
			st.TotalProfit += (it.Product.Price - it.Product.CostPrice) * int64(it.Quantity)
		}
	}
	return st
}
