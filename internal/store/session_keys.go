package store

import (
	"errors"

	"github.com/shopboxapp/shopbox-client/internal/domain"
)

// Well-known session keys. Names match the web build's local storage so a
// data directory can be inspected with familiar vocabulary.
const (
	keyBusinessID  = "businessId"
	keyOwnerFlag   = "isBusinessOwner"
	keyOwnerInfo   = "ownerInfo"
	keyShopInfo    = "shop_info"
	keyTheme       = "theme"
	keyBypass      = "test"
	keyAccessToken = "accessToken"
)

// BusinessID returns the persisted active tenant id, or "" if none.
func (s *Store) BusinessID() string {
	v, err := s.getString(keyBusinessID)
	if err != nil {
		return ""
	}
	return v
}

// SetBusinessID persists the active tenant id.
func (s *Store) SetBusinessID(id string) error {
	return s.setString(keyBusinessID, id)
}

// ClearBusinessID removes the persisted tenant id.
func (s *Store) ClearBusinessID() error {
	return s.delete(keyBusinessID)
}

// OwnerFlag returns the cached ownership flag. Stored as the strings
// "true"/"false"; anything else reads as false.
func (s *Store) OwnerFlag() bool {
	v, err := s.getString(keyOwnerFlag)
	return err == nil && v == "true"
}

// SetOwnerFlag persists the ownership flag.
func (s *Store) SetOwnerFlag(isOwner bool) error {
	v := "false"
	if isOwner {
		v = "true"
	}
	return s.setString(keyOwnerFlag, v)
}

// OwnerRecord returns the cached ownership record. Malformed or missing
// data fails closed: ok is false and the zero record is returned.
func (s *Store) OwnerRecord() (domain.OwnerRecord, bool) {
	var rec domain.OwnerRecord
	if err := s.getJSON(keyOwnerInfo, &rec); err != nil {
		if !errors.Is(err, ErrKeyNotFound) && s.logger != nil {
			s.logger.Warn("discarding unreadable owner record", "error", err)
		}
		return domain.OwnerRecord{}, false
	}
	if rec.BusinessID == "" {
		return domain.OwnerRecord{}, false
	}
	return rec, true
}

// SetOwnerRecord persists the ownership record.
func (s *Store) SetOwnerRecord(rec domain.OwnerRecord) error {
	return s.setJSON(keyOwnerInfo, rec)
}

// ClearOwnerRecord removes the cached ownership record.
func (s *Store) ClearOwnerRecord() error {
	return s.delete(keyOwnerInfo)
}

// ShopSettings returns the cached shop metadata for the active tenant.
// Malformed data fails closed.
func (s *Store) ShopSettings() (domain.ShopSettings, bool) {
	var info domain.ShopSettings
	if err := s.getJSON(keyShopInfo, &info); err != nil {
		if !errors.Is(err, ErrKeyNotFound) && s.logger != nil {
			s.logger.Warn("discarding unreadable shop settings", "error", err)
		}
		return domain.ShopSettings{}, false
	}
	return info, true
}

// SetShopSettings caches the shop metadata.
func (s *Store) SetShopSettings(info domain.ShopSettings) error {
	return s.setJSON(keyShopInfo, info)
}

// ClearShopSettings removes the cached shop metadata.
func (s *Store) ClearShopSettings() error {
	return s.delete(keyShopInfo)
}

// Theme returns the persisted theme, defaulting to light.
func (s *Store) Theme() domain.Theme {
	v, err := s.getString(keyTheme)
	if err != nil {
		return domain.ThemeLight
	}
	if t := domain.Theme(v); t.Valid() {
		return t
	}
	return domain.ThemeLight
}

// SetTheme persists the theme.
func (s *Store) SetTheme(t domain.Theme) error {
	return s.setString(keyTheme, string(t))
}

// BypassEnabled reports whether the development bypass flag is set.
// When enabled, ownership resolution short-circuits without a network
// call. Never set this outside local development.
func (s *Store) BypassEnabled() bool {
	v, err := s.getString(keyBypass)
	return err == nil && v == "true"
}

// SetBypass sets or clears the development bypass flag.
func (s *Store) SetBypass(enabled bool) error {
	if !enabled {
		return s.delete(keyBypass)
	}
	return s.setString(keyBypass, "true")
}

// AccessToken returns the stored bearer token, or "" if none.
// The token is issued and verified by the backend; it is opaque here.
func (s *Store) AccessToken() string {
	v, err := s.getString(keyAccessToken)
	if err != nil {
		return ""
	}
	return v
}

// SetAccessToken persists the bearer token.
func (s *Store) SetAccessToken(token string) error {
	return s.setString(keyAccessToken, token)
}

// ClearAccessToken removes the stored bearer token.
func (s *Store) ClearAccessToken() error {
	return s.delete(keyAccessToken)
}
