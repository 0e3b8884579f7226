package catalog

import (
	"context"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
)

// GetSettings fetches the shop settings for a business.
func (s *Service) GetSettings(ctx context.Context, businessID string) (domain.ShopSettings, error) {
	reply, err := s.call(ctx, "business_settings", "get",
		[]any{map[string]any{"business_id": businessID}},
		"business_settings", "get")
	if err != nil {
		return domain.ShopSettings{}, err
	}
	var settings domain.ShopSettings
	if err := reply.Arg(0, &settings); err != nil {
		return domain.ShopSettings{}, errors.Internalf("decoding shop settings: %v", err)
	}
	return settings, nil
}

// UpdateSettings saves the shop settings.
func (s *Service) UpdateSettings(ctx context.Context, settings domain.ShopSettings) error {
	_, err := s.call(ctx, "business_settings", "update",
		[]any{settings},
		"business_settings", "update")
	if err != nil {
		return err
	}
	s.logger.Info("shop settings updated", "business_id", settings.BusinessID)
	return nil
}

// UploadLogo sends a logo image as a data URL and returns the URL the
// backend stored it under.
func (s *Service) UploadLogo(ctx context.Context, businessID, dataURL string) (string, error) {
	reply, err := s.call(ctx, "business_settings", "upload_logo",
		[]any{map[string]any{"business_id": businessID, "image_data": dataURL}},
		"business_settings", "upload_logo")
	if err != nil {
		return "", err
	}
	var logoURL string
	if err := reply.Arg(0, &logoURL); err != nil {
		return "", errors.Internalf("decoding logo url: %v", err)
	}
	return logoURL, nil
}

// SubmitHint sends a hint-at-a-gift request and returns its id.
func (s *Service) SubmitHint(ctx context.Context, hint domain.Hint) (int64, error) {
	reply, err := s.call(ctx, "hint", "new", []any{hint}, "hint", "new")
	if err != nil {
		return 0, err
	}
	id, err := ackID(reply, "hint")
	if err != nil {
		return 0, err
	}
	s.logger.Info("hint submitted", "hint_id", id)
	return id, nil
}

// SubmitOrder sends a checkout order and returns its id.
func (s *Service) SubmitOrder(ctx context.Context, order domain.Order) (int64, error) {
	reply, err := s.call(ctx, "order", "new", []any{order}, "order", "new")
	if err != nil {
		return 0, err
	}
	id, err := ackID(reply, "order")
	if err != nil {
		return 0, err
	}
	s.logger.Info("order submitted", "order_id", id)
	return id, nil
}
