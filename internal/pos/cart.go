package pos

// AddToCart adds qty of product to the cart, merging with an existing line for
// the same product id. No stock check here: the store accepts over-adding,
// validation is the front-end's problem.
func (s *Store) AddToCart(product Product, qty int) {
	if qty <= 0 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].Product.ID == product.ID {
			updated := append([]CartItem(nil), s.cart...)
			updated[i].Quantity += qty
			s.cart = updated
			return
		}
	}
	s.cart = append(s.cart, CartItem{Product: product, Quantity: qty})
}

// UpdateCartQuantity sets the line's quantity exactly; qty <= 0 removes it.
func (s *Store) UpdateCartQuantity(productID string, qty int) {
	if qty <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := append([]CartItem(nil), s.cart...)
	for i := range updated {
		if updated[i].Product.ID == productID {
			updated[i].Quantity = qty
		}
	}
	s.cart = updated
}

func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]CartItem, 0, len(s.cart))
	for _, it := range s.cart {
		if it.Product.ID == productID {
			continue
		}
		kept = append(kept, it)
	}
	s.cart = kept
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

func (s *Store) Cart() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CartItem(nil), s.cart...)
}
