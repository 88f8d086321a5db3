package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Format is a paper/layout type a product can be ordered in. It owns
// the sizes available for it.
type Format struct {
	ID    primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Type  string               `json:"type" bson:"type" binding:"required"`
	Sizes []primitive.ObjectID `json:"tailles" bson:"tailles"`
}

// Size is a concrete dimension option belonging to one format, with
// its own price and optionally its own promotion.
type Size struct {
	ID        primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Width     float64             `json:"width" bson:"width" binding:"required"`
	Height    float64             `json:"height" bson:"height" binding:"required"`
	Unit      string              `json:"unit" bson:"unit" binding:"omitempty,oneof=cm m inches"`
	Price     float64             `json:"price" bson:"price" binding:"min=0"`
	Image     string              `json:"image" bson:"image" binding:"required"`
	Format    primitive.ObjectID  `json:"format" bson:"format" binding:"required"`
	Promotion *primitive.ObjectID `json:"promotion,omitempty" bson:"promotion,omitempty"`
}

const DefaultSizeUnit = "cm"

// FormatWithSizes is a format with its sizes resolved, as produced by
// the catalog aggregation.
type FormatWithSizes struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Type  string             `json:"type" bson:"type"`
	Sizes []Size             `json:"tailles" bson:"tailles"`
}
