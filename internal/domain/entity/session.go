package entity

// Session identidad del actor autenticado. Existe cero o una instancia a la vez;
// se reemplaza o se borra completa, nunca se muta en sitio.
// Los nombres de campo JSON son el formato persistido; no cambiarlos.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
