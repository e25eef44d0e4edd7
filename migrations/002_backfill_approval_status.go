package migrations

import (
	"context"

	"HospitalHub/db"
	"HospitalHub/models"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BackfillApprovalStatus marks hospitals registered without a status as pending.
func BackfillApprovalStatus(ctx context.Context, database *mongo.Database) error {
	result, err := database.Collection(db.HospitalCollection).UpdateMany(
		ctx,
		bson.M{"approvalStatus": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"approvalStatus": models.StatusPending}},
	)
	if err != nil {
		return err
	}
	log.Printf("Migration applied: %d hospitals set to pending", result.ModifiedCount)
	return nil
}
