package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Barkatzx/medicare-server/internal/models"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal server error")
)

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	BillInfo models.BillInfo
}

// UpdateProfileInput carries the self-service partial update. Nil fields
// are left untouched.
type UpdateProfileInput struct {
	Name     *string
	Avatar   *string
	BillInfo *models.BillInfo
}

// AdminUpdateInput carries the admin partial update.
type AdminUpdateInput struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
}

// CartItemDetail is a cart line with its product ref resolved.
type CartItemDetail struct {
	models.CartItem
	Product *models.ProductSummary `json:"product,omitempty"`
}

// WishlistItemDetail is a wishlist entry with its product ref resolved.
type WishlistItemDetail struct {
	models.WishlistItem
	Product *models.ProductSummary `json:"product,omitempty"`
}

// Profile is the user document with cart/wishlist refs populated.
type Profile struct {
	*models.User
	Cart     []CartItemDetail     `json:"cart"`
	Wishlist []WishlistItemDetail `json:"wishlist"`
}

// UserService defines every operation the HTTP layer exposes.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	AddToCart(ctx context.Context, userID string, item models.CartItem) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID string) ([]models.CartItem, error)
	AddToWishlist(ctx context.Context, userID string, productID primitive.ObjectID) ([]models.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) ([]models.WishlistItem, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in AdminUpdateInput) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}
