package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"photostore/internal/models"
)

type OrderRepository struct {
	orders *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{orders: db.Collection("commandes")}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	order.ID = primitive.NewObjectID()
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}
	_, err := r.orders.InsertOne(ctx, order)
	return err
}

// FindAll lists orders with the purchased products and sizes resolved
// inside each snapshot line.
func (r *OrderRepository) FindAll(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from": "products", "localField": "panier.product",
			"foreignField": "_id", "as": "produitsDetails",
		}},
		{"$lookup": bson.M{
			"from": "tailles", "localField": "panier.tailles",
			"foreignField": "_id", "as": "taillesDetails",
		}},
	}
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]bson.M, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var order models.Order
	err = r.orders.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	cursor, err := r.orders.Find(ctx, bson.M{"utilisateur": objID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) FindByTrackingCode(ctx context.Context, code string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var order models.Order
	err := r.orders.FindOne(ctx, bson.M{"codeSuivi": code}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus mutates the delivery status and the paid flag, the only
// fields an order allows to change after creation. Reaching the
// delivered state stamps the delivery time.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status *models.DeliveryStatus, paid *bool) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	fields := bson.M{}
	if status != nil {
		fields["etatLivraison"] = *status
		if *status == models.StatusDelivered {
			fields["livreLe"] = time.Now()
		}
	}
	if paid != nil {
		fields["estPaye"] = *paid
	}

	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	var order models.Order
	if err := r.orders.FindOne(ctx, bson.M{"_id": objID}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.orders.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
