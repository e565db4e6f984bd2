// Package admin describes who may change site content.
package admin

import "strings"

const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
)

// Principal is the caller identified by a session token.
type Principal struct {
	Email string
	Role  string
}

// Member is one entry of the admin allow-list.
type Member struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

// NormalizeEmail is the comparison form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
