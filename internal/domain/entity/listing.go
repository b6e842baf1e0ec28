package entity

import "github.com/shopspring/decimal"

// ListingStatus ciclo de vida de un material: Available → Sold, una sola vía.
type ListingStatus string

// Estados válidos.
const (
	StatusAvailable ListingStatus = "Available"
	StatusSold      ListingStatus = "Sold"
)

// Valid indica si el estado pertenece a la enumeración.
func (s ListingStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

// Listing material publicado en el mercado. La identidad es ID (milisegundos Unix,
// único dentro de la vida del almacén). Solo Status muta después de la creación.
// Los nombres de campo JSON son el formato persistido; no cambiarlos.
type Listing struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	ListedBy string           `json:"listedBy"`
	Status   ListingStatus    `json:"status"`
}

// Sold indica si el material ya fue vendido.
func (l Listing) Sold() bool {
	return l.Status == StatusSold
}
