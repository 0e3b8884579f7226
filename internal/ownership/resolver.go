// Package ownership resolves whether the current platform user owns the
// active shop, and keeps the persisted ownership state coherent while
// tenants change underneath in-flight checks.
package ownership

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/metrics"
)

// State is the resolution state for the active tenant.
type State int

// Resolution states. Every tenant change re-enters StateResolving.
const (
	StateUnresolved State = iota
	StateResolving
	StateOwner
	StateNotOwner
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateOwner:
		return "owner"
	case StateNotOwner:
		return "not_owner"
	default:
		return "unresolved"
	}
}

// bypassUserID marks records fabricated by the development bypass.
const bypassUserID int64 = -1

// Checker asks the backend whether a user owns a tenant.
type Checker interface {
	CheckOwner(ctx context.Context, tenantID string, userID int64) (*domain.OwnerCheck, error)
}

// Store is the slice of the local store the resolver needs.
type Store interface {
	BypassEnabled() bool
	SetOwnerFlag(isOwner bool) error
	OwnerRecord() (domain.OwnerRecord, bool)
	SetOwnerRecord(rec domain.OwnerRecord) error
	ClearOwnerRecord() error
	SetShopSettings(info domain.ShopSettings) error
	ClearShopSettings() error
}

// Resolver drives the Unresolved -> Resolving -> {Owner, NotOwner} state
// machine. A generation counter ties every check to the tenant that was
// active when it started; completions for superseded generations are
// discarded, so a slow response for an abandoned tenant can never
// overwrite the flag for the current one.
type Resolver struct {
	checker Checker
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	state    State
	tenantID string
	gen      uint64
}

// NewResolver creates a resolver. metrics may be nil in tests.
func NewResolver(checker Checker, store Store, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		checker: checker,
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// State returns the current resolution state and the tenant it is for.
func (r *Resolver) State() (State, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.tenantID
}

// IsOwner reports whether the user is currently resolved as owner of
// the given tenant. It consults the cached record as well, so a fresh
// process can answer before the first network resolution lands, but a
// record for any other tenant never counts.
func (r *Resolver) IsOwner(tenantID string) bool {
	r.mu.Lock()
	if r.tenantID == tenantID && r.state == StateOwner {
		r.mu.Unlock()
		return true
	}
	r.mu.Unlock()

	rec, ok := r.store.OwnerRecord()
	return ok && rec.ValidFor(tenantID)
}

// Reset abandons any in-flight resolution and returns to Unresolved.
// Used when navigation leaves tenant routes entirely: the flag is
// forced false and the cached record cleared.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.gen++
	r.state = StateUnresolved
	r.tenantID = ""
	r.mu.Unlock()

	r.persistNegative()
}

// Resolve runs one ownership check for the tenant. It is idempotent for
// an unchanged backend: checking the same tenant twice yields the same
// answer. The result is applied only if no newer resolution superseded
// this one in the meantime.
func (r *Resolver) Resolve(ctx context.Context, tenantID string, user *domain.PlatformUser) bool {
	gen := r.begin(tenantID)

	// Development bypass: fabricate a record, skip the network.
	if r.store.BypassEnabled() {
		rec := domain.NewOwnerRecord(tenantID, bypassUserID)
		r.logger.Warn("ownership bypass active, skipping owner check", "tenant", tenantID)
		r.countOutcome("bypass")
		return r.applyPositive(gen, tenantID, rec, nil)
	}

	// Unauthenticated users are never owners.
	if user == nil || user.ID == 0 {
		r.logger.Debug("no platform user, treating as non-owner", "tenant", tenantID)
		r.countOutcome("unauthenticated")
		return r.applyNegative(gen, tenantID)
	}

	check, err := r.checker.CheckOwner(ctx, tenantID, user.ID)
	if err != nil {
		// Network failures read as "not owner"; diagnostics only.
		r.logger.Warn("owner check failed", "tenant", tenantID, "error", err)
		r.countOutcome("error")
		return r.applyNegative(gen, tenantID)
	}

	if !check.IsOwner {
		r.countOutcome("not_owner")
		return r.applyNegative(gen, tenantID)
	}

	r.countOutcome("owner")
	rec := domain.NewOwnerRecord(tenantID, user.ID)
	settings := check.ShopSettings
	settings.BusinessID = tenantID
	return r.applyPositive(gen, tenantID, rec, &settings)
}

// begin enters Resolving for the tenant and returns the generation that
// guards this resolution's completion.
func (r *Resolver) begin(tenantID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.state = StateResolving
	r.tenantID = tenantID
	return r.gen
}

// current reports whether the generation still owns the state machine.
func (r *Resolver) current(gen uint64, tenantID string) bool {
	return r.gen == gen && r.tenantID == tenantID
}

// applyPositive commits an owner result unless it went stale.
func (r *Resolver) applyPositive(gen uint64, tenantID string, rec domain.OwnerRecord, settings *domain.ShopSettings) bool {
	r.mu.Lock()
	if !r.current(gen, tenantID) {
		r.mu.Unlock()
		r.dropStale(tenantID)
		return false
	}
	r.state = StateOwner
	r.mu.Unlock()

	if err := r.store.SetOwnerRecord(rec); err != nil {
		r.logger.Warn("failed to persist owner record", "error", err)
	}
	if err := r.store.SetOwnerFlag(true); err != nil {
		r.logger.Warn("failed to persist owner flag", "error", err)
	}
	if settings != nil {
		if err := r.store.SetShopSettings(*settings); err != nil {
			r.logger.Warn("failed to cache shop settings", "error", err)
		}
	}
	return true
}

// applyNegative commits a non-owner result unless it went stale. The
// cached record is always cleared on the negative path so stale records
// cannot linger.
func (r *Resolver) applyNegative(gen uint64, tenantID string) bool {
	r.mu.Lock()
	if !r.current(gen, tenantID) {
		r.mu.Unlock()
		r.dropStale(tenantID)
		return false
	}
	r.state = StateNotOwner
	r.mu.Unlock()

	r.persistNegative()
	return false
}

// persistNegative writes the non-owner state to the store.
func (r *Resolver) persistNegative() {
	if err := r.store.SetOwnerFlag(false); err != nil {
		r.logger.Warn("failed to persist owner flag", "error", err)
	}
	if err := r.store.ClearOwnerRecord(); err != nil {
		r.logger.Warn("failed to clear owner record", "error", err)
	}
}

// dropStale logs a discarded completion for a superseded tenant.
func (r *Resolver) dropStale(tenantID string) {
	r.logger.Debug("discarding stale ownership result", "tenant", tenantID)
	r.countOutcome("stale")
}

func (r *Resolver) countOutcome(outcome string) {
	if r.metrics != nil {
		r.metrics.OwnerChecksTotal.WithLabelValues(outcome).Inc()
	}
}
