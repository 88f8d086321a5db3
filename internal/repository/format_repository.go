package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"photostore/internal/models"
)

type FormatRepository struct {
	formats *mongo.Collection
}

func NewFormatRepository(db *mongo.Database) *FormatRepository {
	return &FormatRepository{formats: db.Collection("formats")}
}

func (r *FormatRepository) Create(ctx context.Context, format *models.Format) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	format.ID = primitive.NewObjectID()
	if format.Sizes == nil {
		format.Sizes = []primitive.ObjectID{}
	}
	_, err := r.formats.InsertOne(ctx, format)
	return err
}

func (r *FormatRepository) FindAll(ctx context.Context) ([]models.Format, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := r.formats.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	formats := make([]models.Format, 0)
	if err := cursor.All(ctx, &formats); err != nil {
		return nil, err
	}
	return formats, nil
}

// FindByID resolves the format together with its sizes.
func (r *FormatRepository) FindByID(ctx context.Context, id string) (*models.FormatWithSizes, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	pipeline := []bson.M{
		{"$match": bson.M{"_id": objID}},
		{"$lookup": bson.M{
			"from": "tailles", "localField": "tailles",
			"foreignField": "_id", "as": "tailles",
		}},
	}
	cursor, err := r.formats.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.FormatWithSizes
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &results[0], nil
}

func (r *FormatRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.formats.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FormatRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.formats.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type SizeRepository struct {
	sizes      *mongo.Collection
	formats    *mongo.Collection
	promotions *mongo.Collection
}

func NewSizeRepository(db *mongo.Database) *SizeRepository {
	return &SizeRepository{
		sizes:      db.Collection("tailles"),
		formats:    db.Collection("formats"),
		promotions: db.Collection("promotions"),
	}
}

// Create inserts the size and pushes its id into the owning format.
func (r *SizeRepository) Create(ctx context.Context, size *models.Size) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	size.ID = primitive.NewObjectID()
	if size.Unit == "" {
		size.Unit = models.DefaultSizeUnit
	}

	if _, err := r.sizes.InsertOne(ctx, size); err != nil {
		return err
	}
	_, err := r.formats.UpdateOne(ctx,
		bson.M{"_id": size.Format},
		bson.M{"$addToSet": bson.M{"tailles": size.ID}},
	)
	return err
}

// FindAll lists sizes, optionally restricted to one format.
func (r *SizeRepository) FindAll(ctx context.Context, formatID string) ([]models.Size, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{}
	if formatID != "" {
		objID, err := primitive.ObjectIDFromHex(formatID)
		if err != nil {
			return nil, ErrInvalidID
		}
		filter["format"] = objID
	}

	cursor, err := r.sizes.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sizes := make([]models.Size, 0)
	if err := cursor.All(ctx, &sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *SizeRepository) FindByID(ctx context.Context, id string) (*models.Size, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var size models.Size
	err = r.sizes.FindOne(ctx, bson.M{"_id": objID}).Decode(&size)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &size, nil
}

func (r *SizeRepository) Update(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.sizes.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPromotion sets or clears the size's forward promotion reference.
func (r *SizeRepository) SetPromotion(ctx context.Context, id string, promotionID *primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.sizes.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"promotion": promotionID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the size and pulls its id from the owning format and
// any promotion referencing it.
func (r *SizeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.sizes.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	pull := bson.M{"$pull": bson.M{"tailles": objID}}
	if _, err := r.formats.UpdateMany(ctx, bson.M{"tailles": objID}, pull); err != nil {
		return err
	}
	if _, err := r.promotions.UpdateMany(ctx, bson.M{"tailles": objID}, pull); err != nil {
		return err
	}
	return nil
}
