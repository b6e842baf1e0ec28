package repository

import (
	"context"

	"github.com/jhoicas/Materiales-api/internal/domain/entity"
)

// ListingStore define el puerto de persistencia para la colección de materiales (DIP).
// La colección se lee y se reescribe completa en cada mutación: no existe
// actualización parcial ni borrado. Load devuelve la revisión actual; Save
// rechaza con domain.ErrConflict si la revisión ya no es la vigente
// (versionado optimista para el ciclo load→modify→store).
type ListingStore interface {
	Load(ctx context.Context) ([]entity.Listing, int64, error)
	Save(ctx context.Context, listings []entity.Listing, rev int64) error
}
