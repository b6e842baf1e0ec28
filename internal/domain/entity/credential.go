package entity

import "strings"

// Credential entrada estática de la tabla de credenciales (username, password en texto plano, rol).
// Se carga desde configuración y es inmutable durante la vida del proceso.
type Credential struct {
	Username string
	Password string
	Role     Role
}

// CredentialTable tabla estática de credenciales.
type CredentialTable []Credential

// Find busca un username (case-insensitive). Devuelve la entrada canónica si existe.
func (t CredentialTable) Find(username string) (Credential, bool) {
	for _, c := range t {
		if strings.EqualFold(c.Username, username) {
			return c, true
		}
	}
	return Credential{}, false
}
