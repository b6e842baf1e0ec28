package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Materiales-api/internal/application/auth"
	"github.com/jhoicas/Materiales-api/internal/application/listing"
	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ListingUC *listing.UseCase
	Sessions  repository.SessionStore
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)

	// Vistas por rol (requieren Bearer Token + sesión vigente)
	views := api.Group("/views", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	listingHandler := NewListingHandler(deps.ListingUC)

	seller := views.Group("/seller", RequireRole(entity.RoleSeller))
	seller.Get("/", listingHandler.SellerView)
	seller.Post("/listings", listingHandler.CreateListing)

	buyer := views.Group("/buyer", RequireRole(entity.RoleBuyer))
	buyer.Get("/", listingHandler.BuyerView)
	buyer.Post("/purchase/:id", listingHandler.Purchase)

	owner := views.Group("/owner", RequireRole(entity.RoleOwner))
	owner.Get("/", listingHandler.OwnerView)
}
