package models

import (
	"time"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the top level of the two-level catalog taxonomy.
type Category struct {
	ID            primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name" binding:"required,min=3,max=32"`
	Slug          string               `json:"slug,omitempty" bson:"slug"`
	SubCategories []primitive.ObjectID `json:"sousCategories" bson:"sousCategories"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (c *Category) EnsureSlug() {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
}

// SubCategory belongs to exactly one Category and keeps a denormalized
// list of the products referencing it, maintained on product
// create/delete.
type SubCategory struct {
	ID        primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name" binding:"required"`
	Category  primitive.ObjectID   `json:"category" bson:"category" binding:"required"`
	Products  []primitive.ObjectID `json:"produits" bson:"produits"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// SubCategoryWithCategory is a subcategory with its parent resolved,
// as produced by the catalog aggregation.
type SubCategoryWithCategory struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Category *Category          `json:"category,omitempty" bson:"category,omitempty"`
}
