package repository

import (
	"context"

	"github.com/jhoicas/Materiales-api/internal/domain/entity"
)

// SessionStore define el puerto de persistencia para la sesión singleton.
// Current devuelve nil sin error cuando no hay sesión. Start reemplaza
// cualquier sesión existente completa. End es idempotente.
type SessionStore interface {
	Current(ctx context.Context) (*entity.Session, error)
	Start(ctx context.Context, s entity.Session) error
	End(ctx context.Context) error
}
