package listing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Materiales-api/internal/application/dto"
	"github.com/jhoicas/Materiales-api/internal/domain"
	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/domain/repository"
)

// saveAttempts intentos del ciclo load→modify→store ante ErrConflict.
const saveAttempts = 2

// UseCase casos de uso sobre la colección de materiales: snapshot completo,
// publicación, venta y las tres vistas por rol. Toda mutación es un ciclo
// load→modify→store de la colección entera; nunca hay actualización parcial.
type UseCase struct {
	store repository.ListingStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.ListingStore) *UseCase {
	return &UseCase{store: store}
}

// ListAll devuelve el snapshot completo en orden de inserción. Nunca muta.
func (uc *UseCase) ListAll(ctx context.Context) ([]entity.Listing, error) {
	listings, _, err := uc.store.Load(ctx)
	return listings, err
}

// Create valida, asigna id fresco, agrega al final y reescribe la colección.
// Rechaza con domain.ErrValidation nombre vacío o precio ausente/negativo sin
// tocar el almacén.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateListingRequest, listedBy string) (*dto.ListingResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	if in.Price == nil || in.Price.IsNegative() {
		return nil, domain.ErrValidation
	}
	price := *in.Price

	var created entity.Listing
	err := uc.readModifyStore(ctx, func(listings []entity.Listing) ([]entity.Listing, error) {
		created = entity.Listing{
			ID:       nextID(listings),
			Name:     name,
			Price:    &price,
			ListedBy: listedBy,
			Status:   entity.StatusAvailable,
		}
		return append(listings, created), nil
	})
	if err != nil {
		return nil, err
	}
	out := toListingResponse(created)
	return &out, nil
}

// MarkSold pasa un material de Available a Sold. Id ausente → domain.ErrNotFound
// sin tocar el almacén. Si ya está Sold la llamada es no-op (idempotente).
func (uc *UseCase) MarkSold(ctx context.Context, id int64) (*dto.ListingResponse, error) {
	var sold entity.Listing
	err := uc.readModifyStore(ctx, func(listings []entity.Listing) ([]entity.Listing, error) {
		idx := -1
		for i := range listings {
			if listings[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
		if listings[idx].Sold() {
			sold = listings[idx]
			return nil, errNoChange
		}
		listings[idx].Status = entity.StatusSold
		sold = listings[idx]
		return listings, nil
	})
	if err != nil {
		return nil, err
	}
	out := toListingResponse(sold)
	return &out, nil
}

// SellerView materiales del usuario vigente, en orden de inserción original.
func (uc *UseCase) SellerView(ctx context.Context, username string) (*dto.SellerViewResponse, error) {
	listings, err := uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SellerViewResponse{Username: username, Listings: []dto.SellerListing{}}
	for _, l := range listings {
		if l.ListedBy != username {
			continue
		}
		out.Listings = append(out.Listings, dto.SellerListing{
			ID:           l.ID,
			Name:         l.Name,
			Status:       string(l.Status),
			PriceDisplay: FormatPrice(l.Price),
		})
	}
	return out, nil
}

// BuyerView todos los materiales; los disponibles exponen la acción de compra.
func (uc *UseCase) BuyerView(ctx context.Context) (*dto.BuyerViewResponse, error) {
	listings, err := uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.BuyerViewResponse{Listings: []dto.BuyerListing{}}
	for _, l := range listings {
		out.Listings = append(out.Listings, dto.BuyerListing{
			ID:           l.ID,
			Name:         l.Name,
			Status:       string(l.Status),
			PriceDisplay: FormatPrice(l.Price),
			CanBuy:       !l.Sold(),
		})
	}
	return out, nil
}

// OwnerView auditoría completa, solo lectura: todos los materiales con quién los publicó.
func (uc *UseCase) OwnerView(ctx context.Context) (*dto.OwnerViewResponse, error) {
	listings, err := uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.OwnerViewResponse{Listings: []dto.OwnerListing{}}
	for _, l := range listings {
		out.Listings = append(out.Listings, dto.OwnerListing{
			ID:           l.ID,
			Name:         l.Name,
			ListedBy:     l.ListedBy,
			Status:       string(l.Status),
			PriceDisplay: FormatPrice(l.Price),
		})
	}
	return out, nil
}

// errNoChange corta el ciclo read-modify-store cuando la mutación resultó no-op.
var errNoChange = errors.New("sin cambios")

// readModifyStore ejecuta el ciclo load→modify→store con un reintento ante
// revisión obsoleta. modify devuelve la colección a persistir, o errNoChange
// para terminar con éxito sin escribir.
func (uc *UseCase) readModifyStore(ctx context.Context, modify func([]entity.Listing) ([]entity.Listing, error)) error {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		listings, rev, err := uc.store.Load(ctx)
		if err != nil {
			return err
		}
		updated, err := modify(listings)
		if err != nil {
			if errors.Is(err, errNoChange) {
				return nil
			}
			return err
		}
		err = uc.store.Save(ctx, updated, rev)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// nextID token monotónico derivado del reloj (milisegundos Unix). Si la marca
// de tiempo colisiona con un id existente, avanza más allá del máximo vigente.
func nextID(listings []entity.Listing) int64 {
	id := time.Now().UnixMilli()
	for _, l := range listings {
		if l.ID >= id {
			id = l.ID + 1
		}
	}
	return id
}

// FormatPrice regla de presentación del precio: dos decimales con símbolo $;
// precio ausente o cero → "Price not set".
func FormatPrice(p *decimal.Decimal) string {
	if p == nil || p.IsZero() {
		return "Price not set"
	}
	return "$" + p.StringFixed(2)
}

func toListingResponse(l entity.Listing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:           l.ID,
		Name:         l.Name,
		Price:        l.Price,
		PriceDisplay: FormatPrice(l.Price),
		ListedBy:     l.ListedBy,
		Status:       string(l.Status),
	}
}
