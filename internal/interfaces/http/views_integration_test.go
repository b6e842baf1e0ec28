package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Materiales-api/internal/application/auth"
	"github.com/jhoicas/Materiales-api/internal/application/dto"
	"github.com/jhoicas/Materiales-api/internal/application/listing"
	"github.com/jhoicas/Materiales-api/internal/domain/entity"
	"github.com/jhoicas/Materiales-api/internal/infrastructure/localstore"
	apphttp "github.com/jhoicas/Materiales-api/internal/interfaces/http"
)

// buildMarketApp arma la aplicación completa sobre un almacén en memoria:
// auth + vistas por rol, igual que cmd/api pero sin red ni disco.
func buildMarketApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := localstore.New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	listingStore := localstore.NewListingStore(store)
	sessionStore := localstore.NewSessionStore(store)

	creds := entity.CredentialTable{
		{Username: "seller", Password: "seller123", Role: entity.RoleSeller},
		{Username: "buyer", Password: "buyer123", Role: entity.RoleBuyer},
		{Username: "owner", Password: "owner123", Role: entity.RoleOwner},
	}
	authUC := auth.NewUseCase(creds, sessionStore, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	listingUC := listing.NewUseCase(listingStore)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		ListingUC: listingUC,
		Sessions:  sessionStore,
		JWTSecret: testJWTSecret,
	})
	return app
}

// do lanza una petición JSON con token opcional y decodifica la respuesta en out.
func do(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// login inicia sesión y devuelve el token.
func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	var out dto.LoginResponse
	resp := do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe ser exitoso", username)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de punta a punta: seller publica → buyer compra → owner audita
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_PublicarComprarAuditar(t *testing.T) {
	app := buildMarketApp(t)

	// 1. Login como seller; la vista destino es la del vendedor.
	var loginOut dto.LoginResponse
	resp := do(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: "seller", Password: "seller123"}, &loginOut)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/views/seller", loginOut.TargetView)
	sellerToken := loginOut.Token

	// 2. El seller publica "Steel Beam" a 120.50.
	var created dto.ListingResponse
	resp = do(t, app, http.MethodPost, "/api/views/seller/listings", sellerToken,
		map[string]interface{}{"name": "Steel Beam", "price": 120.50}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Steel Beam", created.Name)
	assert.Equal(t, "$120.50", created.PriceDisplay)
	assert.Equal(t, "Available", created.Status)

	// 3. La vista del seller muestra su material.
	var sellerView dto.SellerViewResponse
	resp = do(t, app, http.MethodGet, "/api/views/seller", sellerToken, nil, &sellerView)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, sellerView.Listings, 1)
	assert.Equal(t, "Steel Beam", sellerView.Listings[0].Name)

	// 4. Login como buyer; la vista del comprador expone la acción de compra.
	buyerToken := login(t, app, "buyer", "buyer123")

	var buyerView dto.BuyerViewResponse
	resp = do(t, app, http.MethodGet, "/api/views/buyer", buyerToken, nil, &buyerView)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, buyerView.Listings, 1)
	assert.Equal(t, "Steel Beam", buyerView.Listings[0].Name)
	assert.Equal(t, "Available", buyerView.Listings[0].Status)
	assert.Equal(t, "$120.50", buyerView.Listings[0].PriceDisplay)
	assert.True(t, buyerView.Listings[0].CanBuy)

	// 5. El buyer compra el material.
	var sold dto.ListingResponse
	resp = do(t, app, http.MethodPost, "/api/views/buyer/purchase/"+strconv.FormatInt(buyerView.Listings[0].ID, 10), buyerToken, nil, &sold)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sold", sold.Status)

	// 6. El owner audita: ve el material, quién lo publicó y su estado final.
	ownerToken := login(t, app, "owner", "owner123")

	var ownerView dto.OwnerViewResponse
	resp = do(t, app, http.MethodGet, "/api/views/owner", ownerToken, nil, &ownerView)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ownerView.Listings, 1)
	assert.Equal(t, "Steel Beam", ownerView.Listings[0].Name)
	assert.Equal(t, "seller", ownerView.Listings[0].ListedBy)
	assert.Equal(t, "Sold", ownerView.Listings[0].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de autenticación y autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrecto_SesionSigueAusente(t *testing.T) {
	app := buildMarketApp(t)

	var errOut dto.ErrorResponse
	resp := do(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: "seller", Password: "wrong"}, &errOut)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", errOut.Code)

	resp = do(t, app, http.MethodGet, "/api/auth/session", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "no debe quedar sesión tras un login fallido")
}

func TestLogout_CierraElAccesoATodasLasVistas(t *testing.T) {
	app := buildMarketApp(t)

	buyerToken := login(t, app, "buyer", "buyer123")

	resp := do(t, app, http.MethodPost, "/api/auth/logout", buyerToken, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var errOut dto.ErrorResponse
	resp = do(t, app, http.MethodGet, "/api/views/buyer", buyerToken, nil, &errOut)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"tras logout el token emitido deja de dar acceso")
	assert.Equal(t, "NO_SESSION", errOut.Code)
}

func TestVistas_RolIncorrecto_Retorna403(t *testing.T) {
	app := buildMarketApp(t)

	sellerToken := login(t, app, "seller", "seller123")

	resp := do(t, app, http.MethodGet, "/api/views/buyer", sellerToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/views/owner", sellerToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreate_EntradaInvalida_Retorna400(t *testing.T) {
	app := buildMarketApp(t)

	sellerToken := login(t, app, "seller", "seller123")

	var errOut dto.ErrorResponse
	resp := do(t, app, http.MethodPost, "/api/views/seller/listings", sellerToken,
		map[string]interface{}{"name": "", "price": 10}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errOut.Code)

	resp = do(t, app, http.MethodPost, "/api/views/seller/listings", sellerToken,
		map[string]interface{}{"name": "Wood", "price": -5}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/views/seller/listings", sellerToken,
		map[string]interface{}{"name": "Wood", "price": "abc"}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "precio no numérico debe rechazarse")

	// Nada de lo anterior debe haber persistido.
	var sellerView dto.SellerViewResponse
	resp = do(t, app, http.MethodGet, "/api/views/seller", sellerToken, nil, &sellerView)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, sellerView.Listings)
}

func TestPurchase_IdDesconocido_Retorna404(t *testing.T) {
	app := buildMarketApp(t)

	buyerToken := login(t, app, "buyer", "buyer123")

	var errOut dto.ErrorResponse
	resp := do(t, app, http.MethodPost, "/api/views/buyer/purchase/999999", buyerToken, nil, &errOut)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errOut.Code)
}

func TestPurchase_Repetida_EsNoOp(t *testing.T) {
	app := buildMarketApp(t)

	sellerToken := login(t, app, "seller", "seller123")
	var created dto.ListingResponse
	resp := do(t, app, http.MethodPost, "/api/views/seller/listings", sellerToken,
		map[string]interface{}{"name": "Cement", "price": 9.99}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	buyerToken := login(t, app, "buyer", "buyer123")
	path := "/api/views/buyer/purchase/" + strconv.FormatInt(created.ID, 10)

	var sold dto.ListingResponse
	resp = do(t, app, http.MethodPost, path, buyerToken, nil, &sold)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sold", sold.Status)

	resp = do(t, app, http.MethodPost, path, buyerToken, nil, &sold)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "repetir la compra es no-op")
	assert.Equal(t, "Sold", sold.Status)
}
