package catalog

import (
	"context"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
)

// Query describes a cards/filter request.
type Query struct {
	Filters    map[string]any // mongo-style field filters, nil means all
	Limit      int            // 0 means no limit
	Sort       int            // one of the domain.SortBy* modes
	PriceRange []int64        // [min, max], nil means unbounded
}

// CardDraft carries the editable fields of a card for create and
// update operations.
type CardDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Counts      []string `json:"counts,omitempty"`
	Packages    []string `json:"packages,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Prices      []string `json:"prices,omitempty"`
}

// FilterCards fetches the cards matching a query.
func (s *Service) FilterCards(ctx context.Context, q Query) ([]domain.Card, error) {
	reply, err := s.call(ctx, "cards", "filter",
		[]any{q.Filters, q.Limit, q.Sort, q.PriceRange},
		"cards", "filter")
	if err != nil {
		return nil, err
	}
	var cards []domain.Card
	if err := reply.Arg(0, &cards); err != nil {
		return nil, errors.Internalf("decoding cards: %v", err)
	}
	return cards, nil
}

// GetCard fetches a single card by id.
func (s *Service) GetCard(ctx context.Context, id int64) (domain.Card, error) {
	cards, err := s.FilterCards(ctx, Query{
		Filters: map[string]any{"_id": id},
		Limit:   1,
	})
	if err != nil {
		return domain.Card{}, err
	}
	if len(cards) == 0 {
		return domain.Card{}, errors.NotFoundf("card %d not found", id)
	}
	return cards[0], nil
}

// CreateCard creates a card and returns its backend-assigned id.
func (s *Service) CreateCard(ctx context.Context, draft CardDraft) (int64, error) {
	reply, err := s.call(ctx, "cards", "create", []any{draft}, "cards", "created")
	if err != nil {
		return 0, err
	}
	id, err := ackID(reply, "created card")
	if err != nil {
		return 0, err
	}
	s.logger.Info("card created", "card_id", id)
	return id, nil
}

// UpdateCard replaces the editable fields of an existing card. The
// business id scopes the update to the current shop.
func (s *Service) UpdateCard(ctx context.Context, id int64, businessID string, draft CardDraft) error {
	_, err := s.call(ctx, "cards", "update",
		[]any{draft, nil, id, businessID},
		"cards", "updated")
	if err != nil {
		return err
	}
	s.logger.Info("card updated", "card_id", id)
	return nil
}

// DeleteCard removes a card.
func (s *Service) DeleteCard(ctx context.Context, id int64) error {
	if _, err := s.call(ctx, "cards", "delete", []any{nil, id}, "cards", "deleted"); err != nil {
		return err
	}
	s.logger.Info("card deleted", "card_id", id)
	return nil
}

// AddImage attaches an image to a card at the given slot. The image is
// passed as a data URL, matching what the backend persists.
func (s *Service) AddImage(ctx context.Context, cardID int64, index int, dataURL string) error {
	_, err := s.call(ctx, "images", "add",
		[]any{cardID, index, dataURL},
		"images", "added")
	return err
}

// DeleteImage removes an image. The backend sends no acknowledgement
// for deletions, so this is fire and forget.
func (s *Service) DeleteImage(imageID int64) error {
	return s.send("images", "delete", imageID)
}
