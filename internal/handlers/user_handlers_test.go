package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Barkatzx/medicare-server/internal/models"
	"github.com/Barkatzx/medicare-server/internal/services"
)

// stubService overrides only the methods a test exercises; calling an
// unstubbed method panics through the nil embedded interface, which is a
// test bug.
type stubService struct {
	services.UserService
	registerFn func(services.RegisterInput) (*models.User, string, error)
	loginFn    func(email, password string) (*models.User, string, error)
	profileFn  func(userID string) (*services.Profile, error)
	passwordFn func(userID, current, next string) error
	cartFn     func(userID string, item models.CartItem) ([]models.CartItem, error)
}

func (s *stubService) Register(_ context.Context, in services.RegisterInput) (*models.User, string, error) {
	return s.registerFn(in)
}

func (s *stubService) Login(_ context.Context, email, password string) (*models.User, string, error) {
	return s.loginFn(email, password)
}

func (s *stubService) GetProfile(_ context.Context, userID string) (*services.Profile, error) {
	return s.profileFn(userID)
}

func (s *stubService) ChangePassword(_ context.Context, userID, current, next string) error {
	return s.passwordFn(userID, current, next)
}

func (s *stubService) AddToCart(_ context.Context, userID string, item models.CartItem) ([]models.CartItem, error) {
	return s.cartFn(userID, item)
}

// withIdentity stands in for the auth middleware on protected routes.
func withIdentity(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func newTestApp(svc services.UserService, userID string) (*fiber.App, *Handler) {
	h := NewHandler(svc, zap.NewNop())
	app := fiber.New()
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Get("/profile", withIdentity(userID, models.RoleCustomer), h.GetProfile)
	app.Put("/update-password", withIdentity(userID, models.RoleCustomer), h.UpdatePassword)
	app.Post("/cart", withIdentity(userID, models.RoleCustomer), h.AddToCart)
	return app, h
}

func jsonRequest(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, map[string]interface{}, []byte) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw := new(bytes.Buffer)
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.Unmarshal(raw.Bytes(), &decoded)
	return resp.StatusCode, decoded, raw.Bytes()
}

func validRegisterBody() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Test User",
		"email":    "a@x.com",
		"password": "secret1",
		"billInfo": map[string]interface{}{
			"pharmacyName": "City Pharma",
			"pharmacyAddress": map[string]string{
				"road":       "12 Green Road",
				"area":       "Dhanmondi",
				"district":   "Dhaka",
				"division":   "Dhaka",
				"postalCode": "1205",
			},
			"phone": "+8801700000000",
		},
	}
}

func TestRegisterHandler_Created(t *testing.T) {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test User",
		Email: "a@x.com",
		Role:  models.RoleCustomer,
	}
	svc := &stubService{
		registerFn: func(in services.RegisterInput) (*models.User, string, error) {
			assert.Equal(t, "a@x.com", in.Email)
			return user, "signed-token", nil
		},
	}
	app, _ := newTestApp(svc, "")

	status, body, raw := jsonRequest(t, app, http.MethodPost, "/register", validRegisterBody())
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "signed-token", body["token"])

	u := body["user"].(map[string]interface{})
	assert.Equal(t, user.ID.Hex(), u["id"])
	assert.Equal(t, "customer", u["role"])
	assert.NotContains(t, string(raw), "password")
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	svc := &stubService{
		registerFn: func(services.RegisterInput) (*models.User, string, error) {
			return nil, "", services.ErrUserAlreadyExists
		},
	}
	app, _ := newTestApp(svc, "")

	status, body, _ := jsonRequest(t, app, http.MethodPost, "/register", validRegisterBody())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", body["message"])
}

func TestRegisterHandler_ValidationFailure(t *testing.T) {
	svc := &stubService{
		registerFn: func(services.RegisterInput) (*models.User, string, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, "", nil
		},
	}
	app, _ := newTestApp(svc, "")

	payload := validRegisterBody()
	delete(payload, "email")
	status, body, _ := jsonRequest(t, app, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["message"])
	assert.NotEmpty(t, body["errors"])
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	svc := &stubService{
		loginFn: func(email, password string) (*models.User, string, error) {
			return nil, "", services.ErrInvalidCredentials
		},
	}
	app, _ := newTestApp(svc, "")

	status, body, _ := jsonRequest(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestGetProfileHandler_OmitsPasswordHash(t *testing.T) {
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Test User",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleCustomer,
	}
	svc := &stubService{
		profileFn: func(userID string) (*services.Profile, error) {
			assert.Equal(t, user.ID.Hex(), userID)
			return &services.Profile{User: user}, nil
		},
	}
	app, _ := newTestApp(svc, user.ID.Hex())

	status, body, raw := jsonRequest(t, app, http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, string(raw), "$2a$10$")
	assert.NotContains(t, string(raw), "password")
}

func TestGetProfileHandler_NotFound(t *testing.T) {
	svc := &stubService{
		profileFn: func(string) (*services.Profile, error) {
			return nil, services.ErrUserNotFound
		},
	}
	app, _ := newTestApp(svc, primitive.NewObjectID().Hex())

	status, body, _ := jsonRequest(t, app, http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["message"])
}

func TestUpdatePasswordHandler_WrongCurrent(t *testing.T) {
	svc := &stubService{
		passwordFn: func(userID, current, next string) error {
			return services.ErrInvalidCredentials
		},
	}
	app, _ := newTestApp(svc, primitive.NewObjectID().Hex())

	status, body, _ := jsonRequest(t, app, http.MethodPut, "/update-password", map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newpassword",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Current password is incorrect", body["message"])
}

func TestAddToCartHandler_InvalidProductID(t *testing.T) {
	svc := &stubService{
		cartFn: func(string, models.CartItem) ([]models.CartItem, error) {
			t.Fatal("service must not be called with an unparseable product id")
			return nil, nil
		},
	}
	app, _ := newTestApp(svc, primitive.NewObjectID().Hex())

	status, body, _ := jsonRequest(t, app, http.MethodPost, "/cart", map[string]interface{}{
		"productId": "not-hex",
		"name":      "Napa",
		"quantity":  1,
		"price":     12.5,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid product id", body["message"])
}

func TestAddToCartHandler_ReturnsCart(t *testing.T) {
	pid := primitive.NewObjectID()
	svc := &stubService{
		cartFn: func(userID string, item models.CartItem) ([]models.CartItem, error) {
			assert.Equal(t, pid, item.ProductID)
			return []models.CartItem{item}, nil
		},
	}
	app, _ := newTestApp(svc, primitive.NewObjectID().Hex())

	status, _, raw := jsonRequest(t, app, http.MethodPost, "/cart", map[string]interface{}{
		"productId": pid.Hex(),
		"name":      "Napa",
		"quantity":  2,
		"price":     12.5,
	})
	assert.Equal(t, http.StatusOK, status)

	var cart []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &cart))
	require.Len(t, cart, 1)
	assert.Equal(t, float64(2), cart[0]["quantity"])
}
