package localstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Materiales-api/internal/domain"
	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/domain/repository"
)

var _ repository.ListingStore = (*ListingStore)(nil)

// ListingStore implementación del puerto ListingStore sobre la clave
// "listedMaterials". El formato persistido es el arreglo JSON plano de
// materiales, en orden de inserción.
type ListingStore struct {
	store *Store
}

// NewListingStore construye el adaptador de persistencia de materiales.
func NewListingStore(store *Store) *ListingStore {
	return &ListingStore{store: store}
}

// Load devuelve la colección completa y su revisión. Clave ausente → colección vacía.
func (r *ListingStore) Load(_ context.Context) ([]entity.Listing, int64, error) {
	var listings []entity.Listing
	rev, found, err := r.store.load(keyListings, &listings)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return []entity.Listing{}, rev, nil
	}
	return listings, rev, nil
}

// Save reescribe la colección completa. Revisión obsoleta → domain.ErrConflict.
func (r *ListingStore) Save(_ context.Context, listings []entity.Listing, rev int64) error {
	ok, err := r.store.compareAndSave(keyListings, listings, rev)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("guardar materiales: %w", domain.ErrConflict)
	}
	return nil
}
