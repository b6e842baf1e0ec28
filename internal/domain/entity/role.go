package entity

import "strings"

// Role rol de un actor del mercado. Enumeración cerrada.
type Role string

// Roles válidos.
const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleOwner  Role = "owner"
)

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleBuyer, RoleOwner:
		return true
	}
	return false
}

// ParseRole normaliza y valida un rol en texto.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}
