package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"photostore/internal/models"
)

type PromotionRepository struct {
	promotions *mongo.Collection
	products   *mongo.Collection
	sizes      *mongo.Collection
}

func NewPromotionRepository(db *mongo.Database) *PromotionRepository {
	return &PromotionRepository{
		promotions: db.Collection("promotions"),
		products:   db.Collection("products"),
		sizes:      db.Collection("tailles"),
	}
}

func (r *PromotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	promotion.ID = primitive.NewObjectID()
	if promotion.Products == nil {
		promotion.Products = []primitive.ObjectID{}
	}
	if promotion.Sizes == nil {
		promotion.Sizes = []primitive.ObjectID{}
	}
	_, err := r.promotions.InsertOne(ctx, promotion)
	return err
}

func (r *PromotionRepository) FindByID(ctx context.Context, id string) (*models.Promotion, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var promotion models.Promotion
	err = r.promotions.FindOne(ctx, bson.M{"_id": objID}).Decode(&promotion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *PromotionRepository) FindAll(ctx context.Context) ([]models.Promotion, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := r.promotions.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	promotions := make([]models.Promotion, 0)
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

// FindAllWithDetails joins every promotion with the products and sizes
// it is attached to.
func (r *PromotionRepository) FindAllWithDetails(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from": "products", "localField": "produits",
			"foreignField": "_id", "as": "produits",
		}},
		{"$lookup": bson.M{
			"from": "tailles", "localField": "tailles",
			"foreignField": "_id", "as": "tailles",
		}},
	}
	cursor, err := r.promotions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	details := make([]bson.M, 0)
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *PromotionRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.promotions.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddProduct records the back-reference promotion -> product.
// $addToSet keeps the operation idempotent.
func (r *PromotionRepository) AddProduct(ctx context.Context, promotionID, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.promotions.UpdateOne(ctx,
		bson.M{"_id": promotionID},
		bson.M{"$addToSet": bson.M{"produits": productID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) RemoveProduct(ctx context.Context, promotionID, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := r.promotions.UpdateOne(ctx,
		bson.M{"_id": promotionID},
		bson.M{"$pull": bson.M{"produits": productID}},
	)
	return err
}

func (r *PromotionRepository) AddSize(ctx context.Context, promotionID, sizeID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.promotions.UpdateOne(ctx,
		bson.M{"_id": promotionID},
		bson.M{"$addToSet": bson.M{"tailles": sizeID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PromotionRepository) RemoveSize(ctx context.Context, promotionID, sizeID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := r.promotions.UpdateOne(ctx,
		bson.M{"_id": promotionID},
		bson.M{"$pull": bson.M{"tailles": sizeID}},
	)
	return err
}

// Delete removes the promotion and clears the forward reference on
// every product and size that pointed at it.
func (r *PromotionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.promotions.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	unset := bson.M{"$set": bson.M{"promotion": nil}}
	if _, err := r.products.UpdateMany(ctx, bson.M{"promotion": objID}, unset); err != nil {
		return err
	}
	if _, err := r.sizes.UpdateMany(ctx, bson.M{"promotion": objID}, unset); err != nil {
		return err
	}
	return nil
}
