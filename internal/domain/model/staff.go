package model

import "time"

// StaffRole names the management roles allowed to drive dispatch.
type StaffRole string

const (
	StaffRoleSystemManager    StaffRole = "system_manager"
	StaffRoleTransportManager StaffRole = "transport_manager"
	StaffRoleInventoryManager StaffRole = "inventory_manager"
)

// Valid reports whether the role is one of the known staff roles.
func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleSystemManager, StaffRoleTransportManager, StaffRoleInventoryManager:
		return true
	}
	return false
}

// Staff is an authenticated back-office account.
type Staff struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         StaffRole
	CreatedAt    time.Time
}

// Driver mirrors the fleet service's view of a driver. Never persisted
// locally.
type Driver struct {
	ID        string `json:"driver_id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
