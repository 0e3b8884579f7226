package session

import (
	"github.com/google/uuid"

	"github.com/shopboxapp/shopbox-client/internal/domain"
)

// AddToCart appends a line item and returns its assigned line id.
// Quantity defaults to 1.
func (s *Session) AddToCart(item domain.CartItem) string {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.LineID = uuid.NewString()

	s.mu.Lock()
	s.cart = append(s.cart, item)
	s.mu.Unlock()

	s.logger.Debug("cart line added", "line_id", item.LineID, "card_id", item.CardID)
	return item.LineID
}

// RemoveFromCart deletes the line with the given id. It reports whether
// a line was removed.
func (s *Session) RemoveFromCart(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.cart {
		if item.LineID == lineID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}

// CartItems returns a copy of the cart lines in insertion order.
func (s *Session) CartItems() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)
	return items
}

// CartCount returns the total quantity across all lines.
func (s *Session) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.cart {
		n += item.Quantity
	}
	return n
}
