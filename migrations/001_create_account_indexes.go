package migrations

import (
	"context"

	"HospitalHub/db"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	}
}

func index(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(field + "_idx"),
	}
}

// accountIndexes: email is unique per collection, not across collections.
var accountIndexes = map[string][]mongo.IndexModel{
	db.AdminCollection: {uniqueIndex("email")},
	db.HospitalCollection: {
		uniqueIndex("email"),
		uniqueIndex("registrationNumber"),
		uniqueIndex("licenseNumber"),
		index("approvalStatus"),
	},
	db.DoctorCollection: {uniqueIndex("email"), index("hospitalId")},
	db.StaffCollection:  {uniqueIndex("email"), index("hospitalId")},
}

var indexOrder = []string{db.AdminCollection, db.HospitalCollection, db.DoctorCollection, db.StaffCollection}

func CreateAccountIndexes(ctx context.Context, database *mongo.Database) error {
	for _, name := range indexOrder {
		created, err := database.Collection(name).Indexes().CreateMany(ctx, accountIndexes[name])
		if err != nil {
			return err
		}
		log.WithField("collection", name).Printf("Indexes ensured: %v", created)
	}
	return nil
}
