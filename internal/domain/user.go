package domain

import "time"

// PlatformUser is the identity injected by the host mini-app runtime.
// It is obtained once at startup and immutable for the session.
type PlatformUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// OwnerRecord caches a positive ownership check for one tenant.
// It is only valid while its BusinessID matches the active tenant;
// a record for any other tenant is stale and must be ignored.
type OwnerRecord struct {
	BusinessID string `json:"businessId"`
	UserID     int64  `json:"userId"`
	Timestamp  int64  `json:"timestamp"` // unix milliseconds
}

// ValidFor reports whether the record vouches for the given tenant.
func (r OwnerRecord) ValidFor(tenantID string) bool {
	return tenantID != "" && r.BusinessID == tenantID
}

// NewOwnerRecord builds a record for a freshly confirmed owner.
func NewOwnerRecord(tenantID string, userID int64) OwnerRecord {
	return OwnerRecord{
		BusinessID: tenantID,
		UserID:     userID,
		Timestamp:  time.Now().UnixMilli(),
	}
}
