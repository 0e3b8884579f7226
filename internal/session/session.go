// Package session holds the per-process client session: the active
// tenant, the platform user, ownership, theme, and the cart. All state
// lives on the Session struct and is mutated only through its methods.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
	"github.com/shopboxapp/shopbox-client/internal/tenant"
)

const tapWindow = 150 * time.Millisecond

// Store is the slice of the persistent store the session needs.
type Store interface {
	BusinessID() string
	SetBusinessID(id string) error
	ClearBusinessID() error
	Theme() domain.Theme
	SetTheme(t domain.Theme) error
}

// Resolver decides ownership for a tenant.
type Resolver interface {
	Resolve(ctx context.Context, tenantID string, user *domain.PlatformUser) bool
	Reset()
	IsOwner(tenantID string) bool
}

// Channel is the session's view of the backend channel.
type Channel interface {
	Connected() bool
}

// Session is the explicit session state shared by all screens.
type Session struct {
	store    Store
	resolver Resolver
	channel  Channel
	logger   *slog.Logger

	mu        sync.RWMutex
	tenantID  string
	user      *domain.PlatformUser
	cart      []domain.CartItem
	taps      map[string]*time.Timer
	tapWindow time.Duration
}

// New restores the session from the persistent store. The tenant id
// survives restarts; the cart does not.
func New(store Store, resolver Resolver, logger *slog.Logger) *Session {
	return &Session{
		store:     store,
		resolver:  resolver,
		logger:    logger,
		tenantID:  store.BusinessID(),
		taps:      make(map[string]*time.Timer),
		tapWindow: tapWindow,
	}
}

// SetChannel attaches the backend channel handle.
func (s *Session) SetChannel(ch Channel) {
	s.mu.Lock()
	s.channel = ch
	s.mu.Unlock()
}

// Connected reports whether the backend channel is up.
func (s *Session) Connected() bool {
	s.mu.RLock()
	ch := s.channel
	s.mu.RUnlock()
	return ch != nil && ch.Connected()
}

// SetUser records the platform user parsed from init data.
func (s *Session) SetUser(user *domain.PlatformUser) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// User returns the platform user, nil when unauthenticated.
func (s *Session) User() *domain.PlatformUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetPath updates the active tenant from a URL path and returns the
// resolved tenant id, empty when the path names no tenant.
//
// A reserved first segment clears the stored tenant and forces
// ownership false. An empty path deactivates the tenant for the request
// but keeps the persisted id, so the root redirect can still find it.
// An unchanged tenant mutates nothing. A new tenant is persisted and
// ownership is re-resolved.
func (s *Session) SetPath(ctx context.Context, path string) string {
	id := tenant.FromPath(path)

	if id == "" {
		s.mu.Lock()
		had := s.tenantID != ""
		s.tenantID = ""
		s.mu.Unlock()
		if had && tenant.Reserved(tenant.FirstSegment(path)) {
			if err := s.store.ClearBusinessID(); err != nil {
				s.logger.Warn("clearing stored tenant", "error", err)
			}
			s.resolver.Reset()
			s.logger.Debug("tenant cleared", "path", path)
		}
		return ""
	}

	s.mu.Lock()
	if s.tenantID == id {
		s.mu.Unlock()
		return id
	}
	s.tenantID = id
	user := s.user
	s.mu.Unlock()

	if err := s.store.SetBusinessID(id); err != nil {
		s.logger.Warn("persisting tenant", "tenant", id, "error", err)
	}
	s.resolver.Resolve(ctx, id, user)
	s.logger.Info("tenant activated", "tenant", id)
	return id
}

// TenantID returns the active tenant id, empty when none.
func (s *Session) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenantID
}

// IsOwner reports whether the current user owns the active tenant.
func (s *Session) IsOwner() bool {
	s.mu.RLock()
	id := s.tenantID
	s.mu.RUnlock()
	if id == "" {
		return false
	}
	return s.resolver.IsOwner(id)
}

// Theme returns the persisted theme.
func (s *Session) Theme() domain.Theme {
	return s.store.Theme()
}

// SetTheme persists a theme choice.
func (s *Session) SetTheme(t domain.Theme) error {
	if !t.Valid() {
		return errors.Validation("unknown theme " + string(t))
	}
	return s.store.SetTheme(t)
}
