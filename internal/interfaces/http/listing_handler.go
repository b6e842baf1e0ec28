package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Materiales-api/internal/application/dto"
	"github.com/jhoicas/Materiales-api/internal/application/listing"
	"github.com/jhoicas/Materiales-api/internal/domain"
)

// ListingHandler maneja las vistas por rol y las mutaciones sobre la colección de materiales.
type ListingHandler struct {
	uc *listing.UseCase
}

// NewListingHandler construye el handler de materiales.
func NewListingHandler(uc *listing.UseCase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// SellerView godoc
// @Summary      Vista del vendedor (solo sus materiales)
// @Tags         views
// @Produce      json
// @Success      200   {object}  dto.SellerViewResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/views/seller [get]
func (h *ListingHandler) SellerView(c *fiber.Ctx) error {
	out, err := h.uc.SellerView(c.Context(), GetUsername(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateListing godoc
// @Summary      Publicar un material
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateListingRequest  true  "name, price"
// @Success      201   {object}  dto.ListingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/views/seller/listings [post]
func (h *ListingHandler) CreateListing(c *fiber.Ctx) error {
	var in dto.CreateListingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ingrese un nombre de material válido y un precio numérico"})
	}
	out, err := h.uc.Create(c.Context(), in, GetUsername(c))
	if err != nil {
		return listingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BuyerView godoc
// @Summary      Vista del comprador (todos los materiales; los disponibles se pueden comprar)
// @Tags         views
// @Produce      json
// @Success      200   {object}  dto.BuyerViewResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/views/buyer [get]
func (h *ListingHandler) BuyerView(c *fiber.Ctx) error {
	out, err := h.uc.BuyerView(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Purchase godoc
// @Summary      Comprar un material (Available → Sold)
// @Tags         views
// @Produce      json
// @Param        id    path  int  true  "id del material"
// @Success      200   {object}  dto.ListingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/views/buyer/purchase/{id} [post]
func (h *ListingHandler) Purchase(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.uc.MarkSold(c.Context(), id)
	if err != nil {
		return listingError(c, err)
	}
	return c.JSON(out)
}

// OwnerView godoc
// @Summary      Vista del dueño (auditoría completa, solo lectura)
// @Tags         views
// @Produce      json
// @Success      200   {object}  dto.OwnerViewResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/views/owner [get]
func (h *ListingHandler) OwnerView(c *fiber.Ctx) error {
	out, err := h.uc.OwnerView(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// listingError mapea errores de dominio a respuestas HTTP.
func listingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ingrese un nombre de material válido y un precio numérico no negativo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el material no existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la colección cambió durante la operación, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
