package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Capability yang dicek server-side oleh RequireCapability.
const (
	CapViewFinancialData = "view_financial_data"
	CapManageClasses     = "manage_classes"
	CapBookClasses       = "book_classes"
	CapManageUsers       = "manage_users"
)

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "Only teachers or admins may access %s."
	ErrOnlyAdminsCanAccess = "Only admins may access %s."
	ErrMissingCapability   = "Your role does not allow %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func CapabilityError(capability string) string {
	return fmt.Sprintf(ErrMissingCapability, capability)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleTeacher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// Capabilities memetakan capability → role yang boleh.
var Capabilities = map[string][]string{
	CapViewFinancialData: {RoleAdmin},
	CapManageClasses:     {RoleAdmin, RoleTeacher},
	CapBookClasses:       {RoleStudent, RoleTeacher},
	CapManageUsers:       {RoleAdmin},
}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// HasCapability: capability yang tidak dikenal selalu false.
func HasCapability(role, capability string) bool {
	for _, r := range Capabilities[capability] {
		if r == role {
			return true
		}
	}
	return false
}
