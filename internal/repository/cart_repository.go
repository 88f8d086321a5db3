package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"photostore/internal/models"
)

type CartRepository struct {
	carts *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{carts: db.Collection("paniers")}
}

func (r *CartRepository) Create(ctx context.Context, line *models.CartLine) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	line.ID = primitive.NewObjectID()
	now := time.Now()
	line.CreatedAt = now
	line.UpdatedAt = now

	_, err := r.carts.InsertOne(ctx, line)
	return err
}

func (r *CartRepository) FindAll(ctx context.Context) ([]models.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := r.carts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lines := make([]models.CartLine, 0)
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*models.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var line models.CartLine
	err = r.carts.FindOne(ctx, bson.M{"_id": objID}).Decode(&line)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByUser lists a user's cart lines with product and size resolved.
func (r *CartRepository) FindByUser(ctx context.Context, userID string) ([]models.CartLineDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	pipeline := []bson.M{
		{"$match": bson.M{"user": objID}},
		{"$lookup": bson.M{
			"from": "products", "localField": "product",
			"foreignField": "_id", "as": "product",
		}},
		{"$unwind": bson.M{"path": "$product", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from": "tailles", "localField": "tailles",
			"foreignField": "_id", "as": "tailles",
		}},
		{"$unwind": bson.M{"path": "$tailles", "preserveNullAndEmptyArrays": true}},
	}
	cursor, err := r.carts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lines := make([]models.CartLineDetail, 0)
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Update mutates quantity and total price only; snapshot images are
// preserved.
func (r *CartRepository) Update(ctx context.Context, id string, quantity *int, totalPrice *float64) (*models.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	fields := bson.M{"updatedAt": time.Now()}
	if quantity != nil {
		fields["quantite"] = *quantity
	}
	if totalPrice != nil {
		fields["totalPrice"] = *totalPrice
	}

	result, err := r.carts.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	var line models.CartLine
	if err := r.carts.FindOne(ctx, bson.M{"_id": objID}).Decode(&line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.carts.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
