package constants

const (
	RoleStudent   = "student"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleLibrarian,
		RoleAdmin,
	}

	StaffRoles = []string{
		RoleLibrarian,
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
