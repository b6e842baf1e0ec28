package dto

// LoginRequest entrada para login (username + password en texto plano).
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse sesión vigente (sin password).
type SessionResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse salida de login: token, sesión y la vista destino según el rol.
type LoginResponse struct {
	Token      string          `json:"token"`
	Session    SessionResponse `json:"session"`
	TargetView string          `json:"targetView"`
}
