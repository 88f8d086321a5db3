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

type CategoryRepository struct {
	categories    *mongo.Collection
	subcategories *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories:    db.Collection("categories"),
		subcategories: db.Collection("souscategories"),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	category.ID = primitive.NewObjectID()
	category.EnsureSlug()
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	if category.SubCategories == nil {
		category.SubCategories = []primitive.ObjectID{}
	}

	_, err := r.categories.InsertOne(ctx, category)
	return err
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var category models.Category
	err = r.categories.FindOne(ctx, bson.M{"_id": objID}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName matches the category name case-insensitively.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": "^" + name + "$", "$options": "i"}}
	var category models.Category
	err := r.categories.FindOne(ctx, filter).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	fields["updatedAt"] = time.Now()
	result, err := r.categories.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type SubCategoryRepository struct {
	subcategories *mongo.Collection
	categories    *mongo.Collection
}

func NewSubCategoryRepository(db *mongo.Database) *SubCategoryRepository {
	return &SubCategoryRepository{
		subcategories: db.Collection("souscategories"),
		categories:    db.Collection("categories"),
	}
}

// Create inserts the subcategory and pushes its id into the parent
// category's back-reference array.
func (r *SubCategoryRepository) Create(ctx context.Context, sub *models.SubCategory) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	sub.ID = primitive.NewObjectID()
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.Products == nil {
		sub.Products = []primitive.ObjectID{}
	}

	if _, err := r.subcategories.InsertOne(ctx, sub); err != nil {
		return err
	}
	_, err := r.categories.UpdateOne(ctx,
		bson.M{"_id": sub.Category},
		bson.M{"$addToSet": bson.M{"sousCategories": sub.ID}},
	)
	return err
}

// FindAll lists subcategories, optionally restricted to one parent
// category.
func (r *SubCategoryRepository) FindAll(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{}
	if categoryID != "" {
		objID, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return nil, ErrInvalidID
		}
		filter["category"] = objID
	}

	cursor, err := r.subcategories.Find(ctx, filter, options.Find())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := make([]models.SubCategory, 0)
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubCategoryRepository) FindByID(ctx context.Context, id string) (*models.SubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var sub models.SubCategory
	err = r.subcategories.FindOne(ctx, bson.M{"_id": objID}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubCategoryRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	fields["updatedAt"] = time.Now()
	result, err := r.subcategories.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the subcategory and its entry in the parent
// category. Products still referencing it keep a dangling forward
// reference; there is no cascading delete.
func (r *SubCategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.subcategories.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	_, err = r.categories.UpdateMany(ctx,
		bson.M{"sousCategories": objID},
		bson.M{"$pull": bson.M{"sousCategories": objID}},
	)
	return err
}
