package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleTutor = "tutor"
	RoleAdmin = "admin"
)

// Error message templates per role gate
const (
	ErrOnlyAdminsCanAccess = "❌ Only admins may access %s."
	ErrOnlyTutorsCanAccess = "❌ Only approved tutors may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorTutor(feature string) string {
	return fmt.Sprintf(ErrOnlyTutorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleTutor,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	TutorAndAbove = []string{
		RoleTutor,
		RoleAdmin,
	}
)
