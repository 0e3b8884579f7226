package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
)

type fakeStore struct {
	businessID string
	theme      domain.Theme
}

func (s *fakeStore) BusinessID() string          { return s.businessID }
func (s *fakeStore) SetBusinessID(id string) error {
	s.businessID = id
	return nil
}
func (s *fakeStore) ClearBusinessID() error {
	s.businessID = ""
	return nil
}
func (s *fakeStore) Theme() domain.Theme {
	if s.theme == "" {
		return domain.ThemeLight
	}
	return s.theme
}
func (s *fakeStore) SetTheme(t domain.Theme) error {
	s.theme = t
	return nil
}

type fakeResolver struct {
	mu       sync.Mutex
	resolved []string
	resets   int
	owners   map[string]bool
}

func (r *fakeResolver) Resolve(ctx context.Context, tenantID string, user *domain.PlatformUser) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, tenantID)
	return r.owners[tenantID]
}

func (r *fakeResolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
}

func (r *fakeResolver) IsOwner(tenantID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owners[tenantID]
}

func newTestSession(store *fakeStore, resolver *fakeResolver) *Session {
	return New(store, resolver, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewRestoresPersistedTenant(t *testing.T) {
	store := &fakeStore{businessID: "biz-1"}
	sess := newTestSession(store, &fakeResolver{})

	assert.Equal(t, "biz-1", sess.TenantID())
}

func TestSetPathActivatesTenant(t *testing.T) {
	store := &fakeStore{}
	resolver := &fakeResolver{}
	sess := newTestSession(store, resolver)
	sess.SetUser(&domain.PlatformUser{ID: 42})

	id := sess.SetPath(context.Background(), "/f4e52bb7-1111-2222-3333-444455556666/card/123")

	assert.Equal(t, "f4e52bb7-1111-2222-3333-444455556666", id)
	assert.Equal(t, "f4e52bb7-1111-2222-3333-444455556666", store.businessID)
	assert.Equal(t, []string{"f4e52bb7-1111-2222-3333-444455556666"}, resolver.resolved)
}

func TestSetPathIdempotentForSameTenant(t *testing.T) {
	store := &fakeStore{}
	resolver := &fakeResolver{}
	sess := newTestSession(store, resolver)

	sess.SetPath(context.Background(), "/biz-1")
	sess.SetPath(context.Background(), "/biz-1/search")
	sess.SetPath(context.Background(), "/biz-1/cart")

	assert.Equal(t, []string{"biz-1"}, resolver.resolved)
}

func TestSetPathReservedClearsTenant(t *testing.T) {
	store := &fakeStore{businessID: "biz-1"}
	resolver := &fakeResolver{}
	sess := newTestSession(store, resolver)

	for _, path := range []string{"/card/5", "/cart", "/welcome", "/oups"} {
		store.businessID = "biz-1"
		sess.tenantID = "biz-1"

		id := sess.SetPath(context.Background(), path)

		assert.Empty(t, id, "path %q", path)
		assert.Empty(t, store.businessID, "path %q", path)
		assert.Empty(t, sess.TenantID(), "path %q", path)
	}
	assert.Equal(t, 4, resolver.resets)
	assert.False(t, sess.IsOwner())
}

func TestSetPathEmptyKeepsPersistedTenant(t *testing.T) {
	store := &fakeStore{businessID: "biz-1"}
	resolver := &fakeResolver{}
	sess := newTestSession(store, resolver)

	id := sess.SetPath(context.Background(), "/")

	assert.Empty(t, id)
	assert.Empty(t, sess.TenantID())
	assert.Equal(t, "biz-1", store.businessID, "root path keeps the stored id for the redirect")
	assert.Zero(t, resolver.resets)
}

func TestSetPathReservedWithoutTenantIsNoop(t *testing.T) {
	resolver := &fakeResolver{}
	sess := newTestSession(&fakeStore{}, resolver)

	sess.SetPath(context.Background(), "/welcome")

	assert.Zero(t, resolver.resets)
}

func TestSetPathSwitchingTenantsResolvesEach(t *testing.T) {
	resolver := &fakeResolver{}
	sess := newTestSession(&fakeStore{}, resolver)

	sess.SetPath(context.Background(), "/biz-1")
	sess.SetPath(context.Background(), "/biz-2")

	assert.Equal(t, []string{"biz-1", "biz-2"}, resolver.resolved)
	assert.Equal(t, "biz-2", sess.TenantID())
}

func TestIsOwnerScopedToActiveTenant(t *testing.T) {
	resolver := &fakeResolver{owners: map[string]bool{"biz-1": true}}
	sess := newTestSession(&fakeStore{}, resolver)

	sess.SetPath(context.Background(), "/biz-1")
	assert.True(t, sess.IsOwner())

	sess.SetPath(context.Background(), "/biz-2")
	assert.False(t, sess.IsOwner())

	sess.SetPath(context.Background(), "/welcome")
	assert.False(t, sess.IsOwner())
}

func TestThemeValidation(t *testing.T) {
	store := &fakeStore{}
	sess := newTestSession(store, &fakeResolver{})

	assert.Equal(t, domain.ThemeLight, sess.Theme())

	require.NoError(t, sess.SetTheme(domain.ThemeDark))
	assert.Equal(t, domain.ThemeDark, sess.Theme())

	err := sess.SetTheme(domain.Theme("Neon"))
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestCartLifecycle(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeResolver{})

	first := sess.AddToCart(domain.CartItem{CardID: 1, Title: "Roses", Quantity: 2})
	second := sess.AddToCart(domain.CartItem{CardID: 2, Title: "Gift box"})
	require.NotEqual(t, first, second)

	items := sess.CartItems()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity, "quantity defaults to 1")
	assert.Equal(t, 3, sess.CartCount())

	assert.True(t, sess.RemoveFromCart(first))
	assert.False(t, sess.RemoveFromCart(first), "second removal is a no-op")
	assert.Equal(t, 1, sess.CartCount())

	sess.ClearCart()
	assert.Empty(t, sess.CartItems())
	assert.Zero(t, sess.CartCount())
}

func TestCartItemsReturnsCopy(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeResolver{})
	sess.AddToCart(domain.CartItem{CardID: 1, Title: "Roses"})

	items := sess.CartItems()
	items[0].Title = "mutated"

	assert.Equal(t, "Roses", sess.CartItems()[0].Title)
}

func TestTapSingleFiresAfterWindow(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeResolver{})
	sess.tapWindow = 20 * time.Millisecond

	fired := make(chan string, 1)
	sess.Tap("like-btn", func() { fired <- "single" }, func() { fired <- "double" })

	select {
	case got := <-fired:
		assert.Equal(t, "single", got)
	case <-time.After(time.Second):
		t.Fatal("single activation never fired")
	}
}

func TestTapDoubleCancelsSingle(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeResolver{})
	sess.tapWindow = 50 * time.Millisecond

	fired := make(chan string, 2)
	sess.Tap("like-btn", func() { fired <- "single" }, func() { fired <- "double" })
	sess.Tap("like-btn", func() { fired <- "single" }, func() { fired <- "double" })

	select {
	case got := <-fired:
		assert.Equal(t, "double", got)
	case <-time.After(time.Second):
		t.Fatal("double activation never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("unexpected second activation %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTapControlsAreIndependent(t *testing.T) {
	sess := newTestSession(&fakeStore{}, &fakeResolver{})
	sess.tapWindow = 20 * time.Millisecond

	var wg sync.WaitGroup
	wg.Add(2)
	sess.Tap("a", func() { wg.Done() }, nil)
	sess.Tap("b", func() { wg.Done() }, nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("both single activations should fire")
	}
}
