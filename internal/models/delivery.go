package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryAddress is the structured address of a delivery record.
type DeliveryAddress struct {
	Street     string `json:"rue" bson:"rue" binding:"required"`
	PostalCode string `json:"codePostal" bson:"codePostal" binding:"required"`
	City       string `json:"ville" bson:"ville" binding:"required"`
	Country    string `json:"pays" bson:"pays" binding:"required"`
}

// Delivery describes how an order is shipped.
type Delivery struct {
	ID            primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Type          string              `json:"typeLivraison" bson:"typeLivraison" binding:"required"`
	Fee           float64             `json:"frais" bson:"frais" binding:"min=0"`
	EstimatedDate time.Time           `json:"dateEstimee" bson:"dateEstimee" binding:"required"`
	Address       DeliveryAddress     `json:"adresse" bson:"adresse"`
	Order         *primitive.ObjectID `json:"commande,omitempty" bson:"commande,omitempty"`
}

// Payment records one payment made against an order.
type Payment struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Amount float64            `json:"montant" bson:"montant" binding:"min=0"`
	PaidAt time.Time          `json:"datePaiement" bson:"datePaiement"`
	Method string             `json:"mode" bson:"mode" binding:"required,oneof=card paypal transfer other"`
	Order  primitive.ObjectID `json:"commande" bson:"commande" binding:"required"`
}
