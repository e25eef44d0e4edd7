package migrations

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func BackfillIsActive(ctx context.Context, database *mongo.Database) error {
	for _, name := range indexOrder {
		result, err := database.Collection(name).UpdateMany(
			ctx,
			bson.M{"isActive": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"isActive": true}},
		)
		if err != nil {
			return err
		}
		log.Printf("Migration applied: %d documents in %s set active", result.ModifiedCount, name)
	}
	return nil
}
