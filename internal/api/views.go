package api

import "github.com/shopboxapp/shopbox-client/internal/domain"

// StorefrontView is the home screen model.
type StorefrontView struct {
	TenantID  string               `json:"tenant_id"`
	Shop      *domain.ShopSettings `json:"shop,omitempty"`
	Cards     []domain.Card        `json:"cards"`
	IsOwner   bool                 `json:"is_owner"`
	Theme     domain.Theme         `json:"theme"`
	Connected bool                 `json:"connected"`
	CartCount int                  `json:"cart_count"`
}

// SearchView is the search screen model. When a card_id deep link was
// followed, Card holds the single fetched card and CanonicalPath the
// same route with the parameter stripped.
type SearchView struct {
	TenantID      string        `json:"tenant_id"`
	Cards         []domain.Card `json:"cards"`
	Card          *domain.Card  `json:"card,omitempty"`
	CanonicalPath string        `json:"canonical_path,omitempty"`
	IsOwner       bool          `json:"is_owner"`
}

// CartView is the cart screen model.
type CartView struct {
	TenantID string            `json:"tenant_id"`
	Items    []domain.CartItem `json:"items"`
	Count    int               `json:"count"`
}

// EditView is the add/edit screen model.
type EditView struct {
	TenantID string       `json:"tenant_id"`
	Card     *domain.Card `json:"card,omitempty"`
}

// TapResult reports how a tap on a fixed control resolved.
type TapResult struct {
	Control string `json:"control"`
	Action  string `json:"action"`
}
