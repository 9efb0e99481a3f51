package catalog

import (
	"strings"
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LocationType represents the kind of inventory location
type LocationType string

const (
	LocationTypeWarehouse LocationType = "WAREHOUSE"
	LocationTypeVehicle   LocationType = "VEHICLE"
	LocationTypeExternal  LocationType = "EXTERNAL"
)

// IsValid returns true if the location type is known
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeVehicle, LocationTypeExternal:
		return true
	}
	return false
}

// String returns the string representation of LocationType
func (t LocationType) String() string {
	return string(t)
}

// Location represents a place stock can live: a warehouse, a technician's
// vehicle, or an external site. Every balance and movement references one.
type Location struct {
	shared.TenantAggregateRoot
	Name   string       `gorm:"type:varchar(200);not null"`
	Type   LocationType `gorm:"type:varchar(20);not null;index"`
	Active bool         `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new inventory location
func NewLocation(tenantID uuid.UUID, name string, locType LocationType) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if !locType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION_TYPE", "Location type must be WAREHOUSE, VEHICLE or EXTERNAL")
	}

	return &Location{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Type:                locType,
		Active:              true,
	}, nil
}

// Rename changes the display name
func (l *Location) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	l.Name = strings.TrimSpace(name)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the location
func (l *Location) Deactivate() {
	l.Active = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Activate re-enables the location
func (l *Location) Activate() {
	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
