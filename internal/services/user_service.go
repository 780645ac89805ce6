package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Barkatzx/medicare-server/internal/metrics"
	"github.com/Barkatzx/medicare-server/internal/models"
	"github.com/Barkatzx/medicare-server/internal/repository"
	"github.com/Barkatzx/medicare-server/internal/utils"
)

type userService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	tokens   *utils.TokenManager
	logger   *zap.Logger
}

func NewUserService(users repository.UserRepository, products repository.ProductRepository, tokens *utils.TokenManager, logger *zap.Logger) UserService {
	return &userService{
		users:    users,
		products: products,
		tokens:   tokens,
		logger:   logger,
	}
}

// parseID maps a malformed hex id to ErrUserNotFound: an id that cannot
// exist names no user.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrUserNotFound
	}
	return oid, nil
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, "", ErrInternal
	}

	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		BillInfo:     in.BillInfo,
		Cart:         []models.CartItem{},
		Wishlist:     []models.WishlistItem{},
		OrderInfo:    []models.OrderInfo{},
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, "", ErrInternal
	}

	metrics.RegistrationsTotal.Inc()
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Unknown email and wrong password are indistinguishable to
			// the caller.
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.Activity.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		// Login already succeeded; losing the timestamp is not worth a 500.
		s.logger.Warn("failed to update last login", zap.String("user", user.ID.Hex()), zap.Error(err))
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, "", ErrInternal
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, oid)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(user.Cart)+len(user.Wishlist))
	for _, item := range user.Cart {
		ids = append(ids, item.ProductID)
	}
	for _, item := range user.Wishlist {
		ids = append(ids, item.ProductID)
	}

	resolved, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.ProductSummary, len(resolved))
	for i := range resolved {
		byID[resolved[i].ID] = &resolved[i]
	}

	profile := &Profile{
		User:     user,
		Cart:     make([]CartItemDetail, len(user.Cart)),
		Wishlist: make([]WishlistItemDetail, len(user.Wishlist)),
	}
	for i, item := range user.Cart {
		profile.Cart[i] = CartItemDetail{CartItem: item, Product: byID[item.ProductID]}
	}
	for i, item := range user.Wishlist {
		profile.Wishlist[i] = WishlistItemDetail{WishlistItem: item, Product: byID[item.ProductID]}
	}
	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if in.BillInfo != nil {
		fields["billInfo"] = *in.BillInfo
	}

	user, err := s.users.UpdateFields(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	oid, err := parseID(userID)
	if err != nil {
		return err
	}
	user, err := s.findUser(ctx, oid)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return ErrInternal
	}

	if _, err := s.users.UpdateFields(ctx, oid, bson.M{"password": hash}); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// AddToCart merges quantity into an existing line for the same product, or
// appends a new line. The whole embedded array is written back; concurrent
// mutations to the same user are last-write-wins.
func (s *userService) AddToCart(ctx context.Context, userID string, item models.CartItem) ([]models.CartItem, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, oid)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range user.Cart {
		if user.Cart[i].ProductID == item.ProductID {
			user.Cart[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		user.Cart = append(user.Cart, item)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Cart, nil
}

func (s *userService) RemoveFromCart(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, oid)
	if err != nil {
		return nil, err
	}

	kept := user.Cart[:0]
	for _, item := range user.Cart {
		if item.ProductID.Hex() != productID {
			kept = append(kept, item)
		}
	}
	user.Cart = kept

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// AddToWishlist is idempotent: re-adding an existing product changes
// nothing and skips the write entirely.
func (s *userService) AddToWishlist(ctx context.Context, userID string, pid primitive.ObjectID) ([]models.WishlistItem, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, oid)
	if err != nil {
		return nil, err
	}

	for _, item := range user.Wishlist {
		if item.ProductID == pid {
			return user.Wishlist, nil
		}
	}

	user.Wishlist = append(user.Wishlist, models.WishlistItem{
		ProductID: pid,
		AddedAt:   time.Now().UTC(),
	})
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

func (s *userService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]models.WishlistItem, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, oid)
	if err != nil {
		return nil, err
	}

	kept := user.Wishlist[:0]
	for _, item := range user.Wishlist {
		if item.ProductID.Hex() != productID {
			kept = append(kept, item)
		}
	}
	user.Wishlist = kept

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.findUser(ctx, oid)
}

func (s *userService) UpdateUser(ctx context.Context, id string, in AdminUpdateInput) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if in.IsActive != nil {
		fields["isActive"] = *in.IsActive
	}

	user, err := s.users.UpdateFields(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) findUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
