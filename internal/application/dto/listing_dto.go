package dto

import "github.com/shopspring/decimal"

// CreateListingRequest entrada para publicar un material. Price es puntero
// para distinguir "no enviado" de cero; la validación ocurre en el use case.
type CreateListingRequest struct {
	Name  string           `json:"name" validate:"required,min=1"`
	Price *decimal.Decimal `json:"price" validate:"required"`
}

// ListingResponse salida completa de un material.
type ListingResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	PriceDisplay string           `json:"priceDisplay"`
	ListedBy     string           `json:"listedBy"`
	Status       string           `json:"status"`
}

// SellerListing fila de la vista del vendedor: nombre más precio si está
// disponible, o el estado si ya se vendió.
type SellerListing struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	PriceDisplay string `json:"priceDisplay"`
}

// SellerViewResponse vista del vendedor: solo sus propios materiales, en orden de inserción.
type SellerViewResponse struct {
	Username string          `json:"username"`
	Listings []SellerListing `json:"listings"`
}

// BuyerListing fila de la vista del comprador. CanBuy solo en materiales disponibles.
type BuyerListing struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	PriceDisplay string `json:"priceDisplay"`
	CanBuy       bool   `json:"canBuy"`
}

// BuyerViewResponse vista del comprador: todos los materiales.
type BuyerViewResponse struct {
	Listings []BuyerListing `json:"listings"`
}

// OwnerListing fila de la vista del dueño: auditoría completa, solo lectura.
type OwnerListing struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ListedBy     string `json:"listedBy"`
	Status       string `json:"status"`
	PriceDisplay string `json:"priceDisplay"`
}

// OwnerViewResponse vista del dueño: todos los materiales con quién los publicó.
type OwnerViewResponse struct {
	Listings []OwnerListing `json:"listings"`
}
