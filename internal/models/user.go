package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored on the user document.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Order status values.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment method values.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentOnline         = "online_payment"
	PaymentCard           = "card"
)

// Address is the structured pharmacy address inside billInfo.
type Address struct {
	Road       string `bson:"road" json:"road" validate:"required"`
	Area       string `bson:"area" json:"area" validate:"required"`
	District   string `bson:"district" json:"district" validate:"required"`
	Division   string `bson:"division" json:"division" validate:"required"`
	PostalCode string `bson:"postalCode" json:"postalCode" validate:"required"`
}

// BillInfo holds the pharmacy billing details attached to every user.
type BillInfo struct {
	PharmacyName    string  `bson:"pharmacyName" json:"pharmacyName"`
	PharmacyAddress Address `bson:"pharmacyAddress" json:"pharmacyAddress" validate:"required"`
	Phone           string  `bson:"phone" json:"phone" validate:"required"`
}

// CartItem is one line in the embedded cart. ProductID is unique within
// the cart; adding an existing product merges quantities instead of
// appending a second line.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// WishlistItem records when a product was wishlisted. No duplicates;
// re-adding an existing product is a no-op.
type WishlistItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

// OrderProduct is a line item inside a historical order snapshot.
type OrderProduct struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// OrderInfo is an append-only order snapshot kept on the user document.
// There is no order-placement endpoint in this service; only the shape is
// defined so other services can write into it.
type OrderInfo struct {
	OrderID       string         `bson:"orderId" json:"orderId"`
	Products      []OrderProduct `bson:"products" json:"products"`
	TotalAmount   float64        `bson:"totalAmount" json:"totalAmount"`
	OrderDate     time.Time      `bson:"orderDate" json:"orderDate"`
	Status        string         `bson:"status" json:"status"`
	PaymentMethod string         `bson:"paymentMethod" json:"paymentMethod"`
}

// Activity tracks login/order side-effect timestamps.
type Activity struct {
	LastLogin     *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	LastOrderDate *time.Time `bson:"lastOrderDate,omitempty" json:"lastOrderDate,omitempty"`
}

// User is the full user document: identity plus embedded commerce state.
// The password hash never leaves the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	BillInfo     BillInfo           `bson:"billInfo" json:"billInfo"`
	Wishlist     []WishlistItem     `bson:"wishlist" json:"wishlist"`
	Cart         []CartItem         `bson:"cart" json:"cart"`
	OrderInfo    []OrderInfo        `bson:"orderInfo" json:"orderInfo"`
	Activity     Activity           `bson:"activity" json:"activity"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the trimmed user object returned by register and login.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the trimmed auth-response view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
