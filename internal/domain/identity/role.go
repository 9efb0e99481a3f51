package identity

// Role represents the authorization level of a user within a tenant
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleTechnician Role = "TECHNICIAN"
	RoleViewer     Role = "VIEWER"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTechnician, RoleViewer:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanManageCatalog returns true if the role may create or edit catalog items
// and locations
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// CanManageInventory returns true if the role may apply manual ledger
// operations (stock in/out, transfers, adjustments)
func (r Role) CanManageInventory() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// CanEditWorkOrders returns true if the role may add, update or remove work
// order lines
func (r Role) CanEditWorkOrders() bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleTechnician
}

// CanRegisterPayments returns true if the role may register payments
func (r Role) CanRegisterPayments() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// CanReceivePurchases returns true if the role may receive purchase orders
func (r Role) CanReceivePurchases() bool {
	return r == RoleAdmin || r == RoleSupervisor
}
