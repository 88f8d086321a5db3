package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique keys the store relies on: product
// slugs, category and subcategory names, order tracking codes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	sparse := options.Index().SetUnique(true).SetSparse(true)

	for coll, model := range map[string]mongo.IndexModel{
		"products":       {Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		"categories":     {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		"souscategories": {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		"commandes":      {Keys: bson.D{{Key: "codeSuivi", Value: 1}}, Options: sparse},
	} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
