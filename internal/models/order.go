package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryStatus is the fixed delivery-state enumeration for orders.
type DeliveryStatus string

const (
	StatusPending        DeliveryStatus = "pending"
	StatusPreparing      DeliveryStatus = "preparing"
	StatusShipped        DeliveryStatus = "shipped"
	StatusInTransit      DeliveryStatus = "in-transit"
	StatusOutForDelivery DeliveryStatus = "out-for-delivery"
	StatusDelivered      DeliveryStatus = "delivered"
	StatusDeliveryFailed DeliveryStatus = "delivery-failed"
	StatusReturned       DeliveryStatus = "returned"
	StatusCancelled      DeliveryStatus = "cancelled"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusShipped, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusDeliveryFailed,
		StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is the order-level payment option.
type PaymentMethod string

const (
	PayCard PaymentMethod = "card"
	PayCash PaymentMethod = "cash"
)

const DefaultTaxPrice = 7

// OrderLine is an immutable snapshot of a cart line taken at checkout.
// Later price or promotion changes never alter it.
type OrderLine struct {
	Product    primitive.ObjectID  `json:"product" bson:"product" binding:"required"`
	Size       *primitive.ObjectID `json:"tailles,omitempty" bson:"tailles,omitempty"`
	Quantity   int                 `json:"quantite" bson:"quantite"`
	TotalPrice float64             `json:"totalPrice" bson:"totalPrice"`
	Images     []string            `json:"images,omitempty" bson:"images,omitempty"`
}

// OrderAddress is the delivery address snapshot carried by the order.
type OrderAddress struct {
	Details    string `json:"details" bson:"details"`
	Phone      string `json:"telephone" bson:"telephone"`
	City       string `json:"ville" bson:"ville"`
	PostalCode string `json:"codePostal" bson:"codePostal"`
}

// Order is the post-checkout representation of a purchase. Only the
// delivery status and the paid flag are mutable after creation.
type Order struct {
	ID              primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderedAt       time.Time           `json:"dateCommande" bson:"dateCommande"`
	DeliveryStatus  DeliveryStatus      `json:"etatLivraison" bson:"etatLivraison"`
	TaxPrice        float64             `json:"prixTaxe" bson:"prixTaxe"`
	TrackingCode    string              `json:"codeSuivi" bson:"codeSuivi"`
	User            primitive.ObjectID  `json:"utilisateur" bson:"utilisateur" binding:"required"`
	PaymentMethod   PaymentMethod       `json:"typeMethodePaiement" bson:"typeMethodePaiement" binding:"omitempty,oneof=card cash"`
	Paid            bool                `json:"estPaye" bson:"estPaye"`
	TotalPrice      float64             `json:"prixTotal" bson:"prixTotal" binding:"required"`
	Delivery        *primitive.ObjectID `json:"livraison,omitempty" bson:"livraison,omitempty"`
	Lines           []OrderLine         `json:"panier" bson:"panier" binding:"required,dive"`
	DeliveryAddress OrderAddress        `json:"adresseLivraison" bson:"adresseLivraison"`
	DeliveredAt     *time.Time          `json:"livreLe,omitempty" bson:"livreLe,omitempty"`
}

// OrderUpdate carries the only mutable post-creation fields.
type OrderUpdate struct {
	DeliveryStatus *DeliveryStatus `json:"etatLivraison,omitempty"`
	Paid           *bool           `json:"estPaye,omitempty"`
}
