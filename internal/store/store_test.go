package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopboxapp/shopbox-client/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBusinessID_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	assert.Empty(t, s.BusinessID())

	require.NoError(t, s.SetBusinessID("f4e52bb7-a43b-4bfb-b953-2b07c965912b"))
	assert.Equal(t, "f4e52bb7-a43b-4bfb-b953-2b07c965912b", s.BusinessID())

	require.NoError(t, s.ClearBusinessID())
	assert.Empty(t, s.BusinessID())
}

func TestOwnerFlag_StoredAsStrings(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.OwnerFlag())

	require.NoError(t, s.SetOwnerFlag(true))
	raw, err := s.getString(keyOwnerFlag)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)
	assert.True(t, s.OwnerFlag())

	require.NoError(t, s.SetOwnerFlag(false))
	assert.False(t, s.OwnerFlag())

	// A corrupted value reads as false, never errors.
	require.NoError(t, s.setString(keyOwnerFlag, "ture"))
	assert.False(t, s.OwnerFlag())
}

func TestOwnerRecord_RoundTripExact(t *testing.T) {
	s := newTestStore(t)

	rec := domain.OwnerRecord{
		BusinessID: "f4e52bb7-a43b-4bfb-b953-2b07c965912b",
		UserID:     709652754,
		Timestamp:  1735689600000,
	}
	require.NoError(t, s.SetOwnerRecord(rec))

	got, ok := s.OwnerRecord()
	require.True(t, ok)
	assert.Equal(t, rec, got)

	assert.True(t, got.ValidFor("f4e52bb7-a43b-4bfb-b953-2b07c965912b"))
	assert.False(t, got.ValidFor("another-business"))
}

func TestOwnerRecord_MalformedFailsClosed(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.setString(keyOwnerInfo, "{not valid json"))

	_, ok := s.OwnerRecord()
	assert.False(t, ok)
}

func TestOwnerRecord_ClearedAfterDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetOwnerRecord(domain.NewOwnerRecord("shop-a", 42)))
	require.NoError(t, s.ClearOwnerRecord())

	_, ok := s.OwnerRecord()
	assert.False(t, ok)

	// Clearing again is idempotent.
	require.NoError(t, s.ClearOwnerRecord())
}

func TestShopSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.ShopSettings()
	assert.False(t, ok)

	info := domain.ShopSettings{
		BusinessID:   "shop-a",
		BusinessName: "Lavka Bloom",
		Tagline:      "flowers, fast",
		FAQ: []domain.FAQEntry{
			{Question: "Delivery?", Answer: "Same day"},
		},
	}
	require.NoError(t, s.SetShopSettings(info))

	got, ok := s.ShopSettings()
	require.True(t, ok)
	assert.Equal(t, info, got)
}

func TestTheme_DefaultsToLight(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, domain.ThemeLight, s.Theme())

	require.NoError(t, s.SetTheme(domain.ThemeDark))
	assert.Equal(t, domain.ThemeDark, s.Theme())

	// Unknown stored value falls back to light.
	require.NoError(t, s.setString(keyTheme, "Solarized"))
	assert.Equal(t, domain.ThemeLight, s.Theme())
}

func TestBypass_DisabledByDefault(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.BypassEnabled())

	require.NoError(t, s.SetBypass(true))
	assert.True(t, s.BypassEnabled())

	require.NoError(t, s.SetBypass(false))
	assert.False(t, s.BypassEnabled())
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	assert.Empty(t, s.AccessToken())

	require.NoError(t, s.SetAccessToken("eyJ.opaque.token"))
	assert.Equal(t, "eyJ.opaque.token", s.AccessToken())

	require.NoError(t, s.ClearAccessToken())
	assert.Empty(t, s.AccessToken())
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetBusinessID("shop-a"))
	require.NoError(t, s.SetOwnerFlag(true))
	require.NoError(t, s.Close())

	s2, err := New(dir, nil)
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, "shop-a", s2.BusinessID())
	assert.True(t, s2.OwnerFlag())
}
