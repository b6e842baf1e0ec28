package localstore

import (
	"context"

	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore implementación del puerto SessionStore sobre la clave
// "currentUser". Ausencia de la clave = no hay sesión.
type SessionStore struct {
	store *Store
}

// NewSessionStore construye el adaptador de persistencia de la sesión.
func NewSessionStore(store *Store) *SessionStore {
	return &SessionStore{store: store}
}

// Current devuelve la sesión vigente, o nil sin error si no hay ninguna.
func (r *SessionStore) Current(_ context.Context) (*entity.Session, error) {
	var s entity.Session
	_, found, err := r.store.load(keySession, &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

// Start reemplaza cualquier sesión existente completa.
func (r *SessionStore) Start(_ context.Context, s entity.Session) error {
	return r.store.put(keySession, s)
}

// End borra la sesión. Idempotente: terminar una sesión ausente no es error.
func (r *SessionStore) End(_ context.Context) error {
	return r.store.delete(keySession)
}
