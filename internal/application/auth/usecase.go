package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/Materiales-api/internal/application/dto"
	"github.com/jhoicas/Materiales-api/internal/domain"
	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/domain/repository"
	"github.com/jhoicas/Materiales-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: login, sesión vigente y logout.
// La tabla de credenciales es estática; la comparación de password es texto
// plano exacto, igual que el sistema original.
type UseCase struct {
	creds    entity.CredentialTable
	sessions repository.SessionStore
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(creds entity.CredentialTable, sessions repository.SessionStore, jwtCfg JWTConfig) *UseCase {
	return &UseCase{creds: creds, sessions: sessions, jwtCfg: jwtCfg}
}

// Authenticate busca el username (case-insensitive) y exige coincidencia exacta
// de password. Devuelve la credencial canónica o domain.ErrInvalidCredentials.
func (uc *UseCase) Authenticate(username, password string) (entity.Credential, error) {
	cred, ok := uc.creds.Find(strings.TrimSpace(username))
	if !ok || cred.Password != strings.TrimSpace(password) {
		return entity.Credential{}, domain.ErrInvalidCredentials
	}
	return cred, nil
}

// Login autentica, reemplaza la sesión vigente completa y emite el token JWT.
// La respuesta incluye la vista destino según el rol.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	cred, err := uc.Authenticate(in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	session := entity.Session{Username: cred.Username, Role: cred.Role}
	if err := uc.sessions.Start(ctx, session); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, cred.Username, string(cred.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:      token,
		Session:    toSessionResponse(session),
		TargetView: TargetView(cred.Role),
	}, nil
}

// CurrentSession devuelve la sesión vigente, o nil si no hay ninguna.
func (uc *UseCase) CurrentSession(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := uc.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	out := toSessionResponse(*session)
	return &out, nil
}

// Logout borra la sesión. Idempotente: cerrar una sesión ausente no es error.
func (uc *UseCase) Logout(ctx context.Context) error {
	return uc.sessions.End(ctx)
}

// LoginPath punto de entrada al que se redirige todo acceso sin sesión.
const LoginPath = "/api/auth/login"

// TargetView devuelve la ruta de la vista destino de un rol.
func TargetView(role entity.Role) string {
	switch role {
	case entity.RoleSeller:
		return "/api/views/seller"
	case entity.RoleBuyer:
		return "/api/views/buyer"
	case entity.RoleOwner:
		return "/api/views/owner"
	}
	return LoginPath
}

func toSessionResponse(s entity.Session) dto.SessionResponse {
	return dto.SessionResponse{Username: s.Username, Role: string(s.Role)}
}
