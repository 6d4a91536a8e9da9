package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RolePTO     RoleType = "PTO"
	RoleStudent RoleType = "STUDENT"
)

// ValidRole reports whether the given role tag is one the portal recognises.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleAdmin, RolePTO, RoleStudent:
		return true
	}
	return false
}
