package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Barkatzx/medicare-server/internal/models"
	"github.com/Barkatzx/medicare-server/internal/services"
	"github.com/Barkatzx/medicare-server/internal/utils"
)

type Handler struct {
	svc    services.UserService
	logger *zap.Logger
}

func NewHandler(svc services.UserService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// fail maps service errors to the HTTP responses the API contract fixes.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	case errors.Is(err, services.ErrUserAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	default:
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
}

func validationFailed(c *fiber.Ctx, errs []utils.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// authedUserID reads the identity the auth middleware attached.
func authedUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

type registerRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     string          `json:"role" validate:"omitempty,oneof=customer admin"`
	BillInfo models.BillInfo `json:"billInfo" validate:"required"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	user, token, err := h.svc.Register(c.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		BillInfo: req.BillInfo,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	user, token, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.svc.GetProfile(c.Context(), authedUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

type updateProfileRequest struct {
	Name     *string          `json:"name"`
	Avatar   *string          `json:"avatar"`
	BillInfo *models.BillInfo `json:"billInfo"`
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	user, err := h.svc.UpdateProfile(c.Context(), authedUserID(c), services.UpdateProfileInput{
		Name:     req.Name,
		Avatar:   req.Avatar,
		BillInfo: req.BillInfo,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(user)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	err := h.svc.ChangePassword(c.Context(), authedUserID(c), req.CurrentPassword, req.NewPassword)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Current password is incorrect"})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

type addToCartRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

func (h *Handler) AddToCart(c *fiber.Ctx) error {
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	pid, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	cart, err := h.svc.AddToCart(c.Context(), authedUserID(c), models.CartItem{
		ProductID: pid,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) RemoveFromCart(c *fiber.Ctx) error {
	cart, err := h.svc.RemoveFromCart(c.Context(), authedUserID(c), c.Params("productId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cart)
}

type addToWishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *Handler) AddToWishlist(c *fiber.Ctx) error {
	var req addToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	pid, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	wishlist, err := h.svc.AddToWishlist(c.Context(), authedUserID(c), pid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(wishlist)
}

func (h *Handler) RemoveFromWishlist(c *fiber.Ctx) error {
	wishlist, err := h.svc.RemoveFromWishlist(c.Context(), authedUserID(c), c.Params("productId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(wishlist)
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.svc.ListUsers(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) GetUserByID(c *fiber.Ctx) error {
	user, err := h.svc.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(user)
}

type adminUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=customer admin"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	var req adminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return validationFailed(c, errs)
	}

	user, err := h.svc.UpdateUser(c.Context(), c.Params("id"), services.AdminUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	if err := h.svc.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User removed"})
}
