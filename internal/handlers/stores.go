package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"photostore/internal/models"
)

// Handlers accept these store interfaces; the mongo repositories in
// internal/repository implement them.

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, kind models.ProductKind, page, limit int) ([]models.Product, int64, error)
	ListDetailed(ctx context.Context, q models.CatalogQuery) ([]models.ProductDetail, int64, error)
	Update(ctx context.Context, id string, fields bson.M) error
	SetPromotion(ctx context.Context, id string, promotionID *primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

type PromotionStore interface {
	Create(ctx context.Context, promotion *models.Promotion) error
	FindByID(ctx context.Context, id string) (*models.Promotion, error)
	FindAll(ctx context.Context) ([]models.Promotion, error)
	FindAllWithDetails(ctx context.Context) ([]bson.M, error)
	Update(ctx context.Context, id string, fields bson.M) error
	AddProduct(ctx context.Context, promotionID, productID primitive.ObjectID) error
	RemoveProduct(ctx context.Context, promotionID, productID primitive.ObjectID) error
	AddSize(ctx context.Context, promotionID, sizeID primitive.ObjectID) error
	RemoveSize(ctx context.Context, promotionID, sizeID primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type SubCategoryStore interface {
	Create(ctx context.Context, sub *models.SubCategory) error
	FindAll(ctx context.Context, categoryID string) ([]models.SubCategory, error)
	FindByID(ctx context.Context, id string) (*models.SubCategory, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type FormatStore interface {
	Create(ctx context.Context, format *models.Format) error
	FindAll(ctx context.Context) ([]models.Format, error)
	FindByID(ctx context.Context, id string) (*models.FormatWithSizes, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type SizeStore interface {
	Create(ctx context.Context, size *models.Size) error
	FindAll(ctx context.Context, formatID string) ([]models.Size, error)
	FindByID(ctx context.Context, id string) (*models.Size, error)
	Update(ctx context.Context, id string, fields bson.M) error
	SetPromotion(ctx context.Context, id string, promotionID *primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

type CartStore interface {
	Create(ctx context.Context, line *models.CartLine) error
	FindAll(ctx context.Context) ([]models.CartLine, error)
	FindByID(ctx context.Context, id string) (*models.CartLine, error)
	FindByUser(ctx context.Context, userID string) ([]models.CartLineDetail, error)
	Update(ctx context.Context, id string, quantity *int, totalPrice *float64) (*models.CartLine, error)
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]bson.M, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindByTrackingCode(ctx context.Context, code string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status *models.DeliveryStatus, paid *bool) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

type DeliveryStore interface {
	Create(ctx context.Context, delivery *models.Delivery) error
	FindAll(ctx context.Context) ([]models.Delivery, error)
	FindByID(ctx context.Context, id string) (*models.Delivery, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	Delete(ctx context.Context, id string) error
}
