package workflow

import "strings"

// Role is a closed enumeration of workflow participants. Vendor-side roles
// carry the leading "V_" letter code; everything else is internal staff.
type Role string

const (
	RoleStore                  Role = "STORE"
	RoleAreaManager            Role = "AREA_MANAGER"
	RoleAreaMaintenanceManager Role = "AREA_MAINTENANCE_MANAGER"
	RoleSalesDirector          Role = "SALES_DIRECTOR"
	RoleMaintenanceDirector    Role = "MAINTENANCE_DIRECTOR"
	RoleBoardOfDirectors       Role = "BOARD_OF_DIRECTORS"

	RoleVendorServiceAdmin Role = "V_SERVICE_ADMIN"
	RoleVendorTechnician   Role = "V_TECHNICIAN"
	RoleVendorBackOffice   Role = "V_BACK_OFFICE"
)

var validRoles = map[Role]bool{
	RoleStore:                  true,
	RoleAreaManager:            true,
	RoleAreaMaintenanceManager: true,
	RoleSalesDirector:          true,
	RoleMaintenanceDirector:    true,
	RoleBoardOfDirectors:       true,
	RoleVendorServiceAdmin:     true,
	RoleVendorTechnician:       true,
	RoleVendorBackOffice:       true,
}

// NormalizeRole maps a free-form role code from a caller onto the canonical
// enumeration value. Comparison is case-insensitive and whitespace-trimmed.
func NormalizeRole(code string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(code)))
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

// IsVendor reports whether the role belongs to an external vendor company.
func (r Role) IsVendor() bool {
	return strings.HasPrefix(string(r), "V_")
}

// OwnerType distinguishes internal staff from vendor users as the current
// owner of a work order.
type OwnerType string

const (
	OwnerInternal OwnerType = "INTERNAL"
	OwnerVendor   OwnerType = "VENDOR"
)

// OwnerTypeFor derives the owner type hint from a role.
func OwnerTypeFor(r Role) OwnerType {
	if r.IsVendor() {
		return OwnerVendor
	}
	return OwnerInternal
}
