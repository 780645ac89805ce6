package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barkatzx/medicare-server/internal/utils"
)

func newAuthTestApp(tokens *utils.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Protect(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":   c.Locals("userID"),
			"role": c.Locals("role"),
		})
	})
	app.Get("/admin", Protect(tokens), AdminOnly, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestProtect_MissingToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", 30)
	app := newAuthTestApp(tokens)

	status, body := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", body["message"])

	// Malformed scheme counts as no token.
	status, body = doRequest(t, app, "/protected", "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", body["message"])
}

func TestProtect_InvalidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", 30)
	app := newAuthTestApp(tokens)

	status, body := doRequest(t, app, "/protected", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestProtect_WrongSigningKey(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", 30)
	other := utils.NewTokenManager("other-secret", 30)
	app := newAuthTestApp(tokens)

	forged, err := other.Generate("64f1b2c3d4e5f60718293a4b", "admin")
	require.NoError(t, err)

	status, body := doRequest(t, app, "/protected", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestProtect_AttachesIdentity(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", 30)
	app := newAuthTestApp(tokens)

	token, err := tokens.Generate("64f1b2c3d4e5f60718293a4b", "customer")
	require.NoError(t, err)

	status, body := doRequest(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", body["id"])
	assert.Equal(t, "customer", body["role"])
}

func TestAdminOnly_RejectsCustomer(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", 30)
	app := newAuthTestApp(tokens)

	token, err := tokens.Generate("64f1b2c3d4e5f60718293a4b", "customer")
	require.NoError(t, err)

	status, body := doRequest(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied: Admins only", body["message"])
}

func TestAdminOnly_AllowsAdmin(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", 30)
	app := newAuthTestApp(tokens)

	token, err := tokens.Generate("64f1b2c3d4e5f60718293a4b", "admin")
	require.NoError(t, err)

	status, body := doRequest(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
}
