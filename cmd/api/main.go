package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/jhoicas/Materiales-api/internal/application/auth"
	"github.com/jhoicas/Materiales-api/internal/application/listing"
	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/infrastructure/localstore"
	httpRouter "github.com/jhoicas/Materiales-api/internal/interfaces/http"
	"github.com/jhoicas/Materiales-api/pkg/config"
	"github.com/jhoicas/Materiales-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	store, err := localstore.New(afero.NewOsFs(), cfg.Store.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén local")
	}
	listingStore := localstore.NewListingStore(store)
	sessionStore := localstore.NewSessionStore(store)

	creds, err := credentialTable(cfg.Users)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla de credenciales")
	}

	authUC := auth.NewUseCase(creds, sessionStore, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	listingUC := listing.NewUseCase(listingStore)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ListingUC: listingUC,
		Sessions:  sessionStore,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// credentialTable convierte las entradas de configuración a la tabla de dominio,
// validando que cada rol pertenezca a la enumeración.
func credentialTable(users []config.UserEntry) (entity.CredentialTable, error) {
	table := make(entity.CredentialTable, 0, len(users))
	for _, u := range users {
		role, ok := entity.ParseRole(u.Role)
		if !ok {
			return nil, fmt.Errorf("rol inválido %q para el usuario %q", u.Role, u.Username)
		}
		table = append(table, entity.Credential{Username: u.Username, Password: u.Password, Role: role})
	}
	return table, nil
}
