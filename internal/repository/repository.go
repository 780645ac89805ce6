package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Barkatzx/medicare-server/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the data operations for the users collection.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	// Update replaces the stored document's mutable fields with u. Cart and
	// wishlist mutations go through this unconditional write; concurrent
	// writers to the same user are last-write-wins.
	Update(ctx context.Context, u *models.User) error
	// UpdateFields applies a partial $set and returns the updated document.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductRepository resolves cart/wishlist product refs for the profile
// endpoint. Read-only; the catalog is owned by another service.
type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ProductSummary, error)
}
