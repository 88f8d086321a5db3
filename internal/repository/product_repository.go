package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"photostore/internal/models"
)

const (
	readTimeout      = 3 * time.Second
	writeTimeout     = 5 * time.Second
	aggregateTimeout = 10 * time.Second
)

type ProductRepository struct {
	products      *mongo.Collection
	subcategories *mongo.Collection
	promotions    *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		products:      db.Collection("products"),
		subcategories: db.Collection("souscategories"),
		promotions:    db.Collection("promotions"),
	}
}

// Create inserts the product and pushes its id into the owning
// subcategory's back-reference array. The two writes are per-document
// atomic only; they are not wrapped in a transaction.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.EnsureSlug()
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.products.InsertOne(ctx, product); err != nil {
		return err
	}
	if product.SubCategory != nil {
		_, err := r.subcategories.UpdateOne(ctx,
			bson.M{"_id": *product.SubCategory},
			bson.M{"$addToSet": bson.M{"produits": product.ID}},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = r.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List returns plain products, optionally restricted to one variant
// kind, in insertion order.
func (r *ProductRepository) List(ctx context.Context, kind models.ProductKind, page, limit int) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}

	total, err := r.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListDetailed runs the catalog aggregation: products joined with their
// subcategory and its parent category, the active promotion, and the
// formats with their sizes, plus the effective price per product.
func (r *ProductRepository) ListDetailed(ctx context.Context, q models.CatalogQuery) ([]models.ProductDetail, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	match := bson.M{}
	if q.Slug != "" {
		match["slug"] = q.Slug
	}

	total, err := r.products.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	joined := bson.M{}
	if q.SubCategoryName != "" {
		joined["sousCategorie.name"] = q.SubCategoryName
	}
	if q.CategoryName != "" {
		joined["sousCategorie.category.name"] = q.CategoryName
	}

	now := time.Now()
	discounted := bson.M{"$cond": bson.M{
		"if": bson.M{"$and": bson.A{
			bson.M{"$ne": bson.A{"$promotion", nil}},
			bson.M{"$lte": bson.A{"$promotion.startDate", now}},
			bson.M{"$gte": bson.A{"$promotion.endDate", now}},
		}},
		"then": bson.M{"$round": bson.A{
			bson.M{"$subtract": bson.A{
				"$price",
				bson.M{"$multiply": bson.A{
					"$price",
					bson.M{"$divide": bson.A{"$promotion.discountPercentage", 100}},
				}},
			}},
			2,
		}},
		"else": "$price",
	}}

	pipeline := []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from": "souscategories", "localField": "sousCategorie",
			"foreignField": "_id", "as": "sousCategorie",
		}},
		{"$unwind": bson.M{"path": "$sousCategorie", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from": "categories", "localField": "sousCategorie.category",
			"foreignField": "_id", "as": "sousCategorie.category",
		}},
		{"$unwind": bson.M{"path": "$sousCategorie.category", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from": "promotions", "localField": "promotion",
			"foreignField": "_id", "as": "promotion",
		}},
		{"$unwind": bson.M{"path": "$promotion", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from": "formats", "localField": "formats",
			"foreignField": "_id", "as": "formats",
		}},
		{"$unwind": bson.M{"path": "$formats", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from": "tailles", "localField": "formats.tailles",
			"foreignField": "_id", "as": "formats.tailles",
		}},
		{"$match": joined},
		{"$group": bson.M{
			"_id":           "$_id",
			"name":          bson.M{"$first": "$name"},
			"slug":          bson.M{"$first": "$slug"},
			"price":         bson.M{"$first": "$price"},
			"description":   bson.M{"$first": "$description"},
			"kind":          bson.M{"$first": "$kind"},
			"promotion":     bson.M{"$first": "$promotion"},
			"imageCover":    bson.M{"$first": "$imageCover"},
			"formats":       bson.M{"$push": "$formats"},
			"sousCategorie": bson.M{"$first": "$sousCategorie"},
			"createdAt":     bson.M{"$first": "$createdAt"},
			"updatedAt":     bson.M{"$first": "$updatedAt"},
		}},
		{"$addFields": bson.M{"discountedPrice": discounted}},
	}

	if q.SortField != "" {
		dir := -1
		if q.SortAsc {
			dir = 1
		}
		pipeline = append(pipeline, bson.M{"$sort": bson.M{q.SortField: dir}})
	}
	pipeline = append(pipeline,
		bson.M{"$skip": int64((q.Page - 1) * q.Limit)},
		bson.M{"$limit": int64(q.Limit)},
	)

	cursor, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	details := make([]models.ProductDetail, 0)
	if err := cursor.All(ctx, &details); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// Update applies a partial update; unset fields keep their stored
// values.
func (r *ProductRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	fields["updatedAt"] = time.Now()
	result, err := r.products.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPromotion sets or clears the product's forward promotion
// reference.
func (r *ProductRepository) SetPromotion(ctx context.Context, id string, promotionID *primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{"promotion": promotionID, "updatedAt": time.Now()}
	result, err := r.products.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product and pulls its id out of every
// back-reference array it was pushed into.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.products.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	pull := bson.M{"$pull": bson.M{"produits": objID}}
	if _, err := r.subcategories.UpdateMany(ctx, bson.M{"produits": objID}, pull); err != nil {
		return err
	}
	if _, err := r.promotions.UpdateMany(ctx, bson.M{"produits": objID}, pull); err != nil {
		return err
	}
	return nil
}
