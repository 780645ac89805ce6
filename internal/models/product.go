package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductSummary is the slice of the product document the profile endpoint
// resolves cart and wishlist refs against. The product catalog itself is
// owned elsewhere; this service only reads it.
type ProductSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Price  float64            `bson:"price" json:"price"`
	Images []string           `bson:"images,omitempty" json:"images,omitempty"`
}
