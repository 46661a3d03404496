package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentpro/internal/domain/actor"
	apphttp "github.com/tu-usuario/rentpro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/rentpro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testProfileID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "rentpro-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y materializar el Actor
//   - Una ruta de propietario y una de superadmin
//   - Un handler dummy que devuelve 200 con el actor si pasa los middlewares
func buildTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	echoActor := func(c *fiber.Ctx) error {
		a := apphttp.GetActor(c)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"type":       string(a.Type),
			"user_id":    a.UserID,
			"profile_id": a.ProfileID,
		})
	}
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), echoActor)
	app.Get("/owner", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireOwner(), echoActor)
	app.Get("/admin", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireSuperAdmin(), echoActor)
	app.Get("/public", apphttp.OptionalAuthMiddleware(testJWTSecret), echoActor)
	return app
}

// tokenFor genera un JWT con el tipo de actor indicado.
func tokenFor(t *testing.T, actorType string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, actorType, testProfileID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido → el Actor queda materializado con los claims.
func TestAuthMiddleware_TokenValidoMaterializaActor(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", tokenFor(t, string(actor.TypeTenant)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "tenant", body["type"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testProfileID, body["profile_id"])
}

// Caso 2: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

// Caso 3: header sin esquema Bearer → 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalidoRetorna401(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

// Caso 4: token firmado con otro secret → 401.
func TestAuthMiddleware_FirmaIncorrectaRetorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("otro-secret", testUserID, string(actor.TypeOwner), testProfileID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token expirado → 401.
func TestAuthMiddleware_TokenExpiradoRetorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, string(actor.TypeOwner), testProfileID, testIssuer, -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: tipo de actor desconocido en los claims → 401, nunca un Actor vacío.
func TestAuthMiddleware_TipoDesconocidoRetorna401(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/protected", tokenFor(t, "ghost"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireOwner / RequireSuperAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireOwner_PropietarioAccede(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/owner", tokenFor(t, string(actor.TypeOwner)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireOwner_InquilinoRecibe403(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/owner", tokenFor(t, string(actor.TypeTenant)))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

// El superadmin pasa tanto las rutas de propietario como las suyas.
func TestRequireSuperAdmin_AccedeATodo(t *testing.T) {
	app := buildTestApp()
	token := tokenFor(t, string(actor.TypeSuperAdmin))

	resp := doRequest(t, app, "/owner", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/admin", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireSuperAdmin_PropietarioRecibe403(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/admin", tokenFor(t, string(actor.TypeOwner)))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests OptionalAuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin token la petición pasa con un Actor vacío.
func TestOptionalAuth_SinTokenPasa(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/public", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "", body["type"])
}

// Un token presente pero inválido sí corta la petición.
func TestOptionalAuth_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/public", "Bearer no-es-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Con token válido el Actor queda disponible igual que en rutas protegidas.
func TestOptionalAuth_TokenValidoMaterializaActor(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/public", tokenFor(t, string(actor.TypeOwner)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "owner", body["type"])
}
