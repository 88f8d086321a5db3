package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one pre-checkout line in a user's cart. TotalPrice is
// always derived server-side from the effective unit price.
type CartLine struct {
	ID         primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	User       primitive.ObjectID  `json:"user" bson:"user"`
	Product    primitive.ObjectID  `json:"product" bson:"product"`
	Size       *primitive.ObjectID `json:"tailles,omitempty" bson:"tailles,omitempty"`
	Quantity   int                 `json:"quantite" bson:"quantite"`
	TotalPrice float64             `json:"totalPrice" bson:"totalPrice"`
	Images     []string            `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// CartLineDetail is a cart line with its product and size resolved,
// used by the per-user listing.
type CartLineDetail struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	User       primitive.ObjectID `json:"user" bson:"user"`
	Product    *Product           `json:"product,omitempty" bson:"product,omitempty"`
	Size       *Size              `json:"tailles,omitempty" bson:"tailles,omitempty"`
	Quantity   int                `json:"quantite" bson:"quantite"`
	TotalPrice float64            `json:"totalPrice" bson:"totalPrice"`
	Images     []string           `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
