package utils

import (
	"strings"
)

const (
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

var ValidUserRoles = map[string]bool{
	RoleFarmer: true,
	RoleAdmin:  true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// An empty role defaults to farmer, the register form's preselected option.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		return RoleFarmer, true
	}
	return normalized, ValidUserRoles[normalized]
}

// IsValidRole checks if a role is valid without normalizing it
func IsValidRole(role string) bool {
	return ValidUserRoles[strings.ToLower(role)]
}
