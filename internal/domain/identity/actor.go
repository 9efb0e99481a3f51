package identity

import (
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Actor identifies who is performing an operation and within which tenant.
// Every application-layer operation takes an explicit Actor instead of
// reading ambient session state, which keeps services testable and makes
// authorization checks happen before any query runs.
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     Role
}

// NewActor creates a validated actor
func NewActor(userID, tenantID uuid.UUID, role Role) (Actor, error) {
	if userID == uuid.Nil {
		return Actor{}, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return Actor{}, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !role.IsValid() {
		return Actor{}, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	return Actor{UserID: userID, TenantID: tenantID, Role: role}, nil
}

// Require returns ErrForbidden unless the capability check passes
func (a Actor) Require(allowed bool) error {
	if !allowed {
		return shared.ErrForbidden
	}
	return nil
}
