package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promotion is a time-bounded percentage discount applicable to
// products or sizes. It keeps back-references to everything it is
// attached to.
type Promotion struct {
	ID                 primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name               string               `json:"name" bson:"name" binding:"required,min=3"`
	DiscountPercentage float64              `json:"discountPercentage" bson:"discountPercentage"`
	StartDate          time.Time            `json:"startDate" bson:"startDate" binding:"required"`
	EndDate            time.Time            `json:"endDate" bson:"endDate" binding:"required"`
	Products           []primitive.ObjectID `json:"produits" bson:"produits"`
	Sizes              []primitive.ObjectID `json:"tailles" bson:"tailles"`
}

// Validate enforces the percentage range and date ordering at
// creation time; the calculator never re-checks them.
func (p *Promotion) Validate() error {
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return errors.New("discountPercentage must be between 0 and 100")
	}
	if !p.EndDate.After(p.StartDate) {
		return errors.New("endDate must be after startDate")
	}
	return nil
}

// ActiveAt reports whether the promotion window covers now. Both
// bounds are inclusive.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}
