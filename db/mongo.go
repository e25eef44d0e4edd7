package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HospitalHub/models"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var withoutSecret = bson.M{"password": 0}

type MongoStore struct {
	DB     *mongo.Database
	hasher Hasher
	now    func() time.Time
}

func NewMongoStore(database *mongo.Database, hasher Hasher) *MongoStore {
	return &MongoStore{DB: database, hasher: hasher, now: time.Now}
}

/*
* Connect to mongo with the uri given
* Ping the primary so a bad uri fails at startup
 */
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.WithField("database", database).Println("Connected to MongoDB")
	return client, client.Database(database), nil
}

func (s *MongoStore) OpenCollection(kind models.AccountKind) *mongo.Collection {
	return s.DB.Collection(CollectionName(kind))
}

func (s *MongoStore) FindByEmail(ctx context.Context, kind models.AccountKind, email string, withSecret bool) (models.Account, error) {
	return s.findOne(ctx, kind, bson.M{"email": models.NormalizeEmail(email)}, withSecret)
}

func (s *MongoStore) FindByID(ctx context.Context, kind models.AccountKind, id string, withSecret bool) (models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, kind, bson.M{"_id": oid}, withSecret)
}

func (s *MongoStore) findOne(ctx context.Context, kind models.AccountKind, filter bson.M, withSecret bool) (models.Account, error) {
	acc := models.NewAccount(kind)
	if acc == nil {
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}
	opts := options.FindOne()
	if !withSecret {
		opts.SetProjection(withoutSecret)
	}
	err := s.OpenCollection(kind).FindOne(ctx, filter, opts).Decode(acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	return acc, nil
}

func (s *MongoStore) Save(ctx context.Context, acc models.Account) error {
	b := acc.Base()
	b.Email = models.NormalizeEmail(b.Email)
	secretModified := b.PasswordModified()
	if err := models.ApplyPendingPassword(acc, s.hasher.Hash); err != nil {
		return err
	}
	now := s.now().UTC()
	b.UpdatedAt = now
	coll := s.OpenCollection(acc.Kind())

	if b.ID.IsZero() {
		if b.Password == "" {
			return errors.New("a new account requires a password")
		}
		b.ID = primitive.NewObjectID()
		b.CreatedAt = now
		if _, err := coll.InsertOne(ctx, acc); err != nil {
			b.ID = primitive.NilObjectID
			return translateWriteError(err)
		}
		return nil
	}

	set, err := toDocument(acc)
	if err != nil {
		return err
	}
	delete(set, "_id")
	delete(set, "createdAt")
	delete(set, "lastLogin")
	if !secretModified {
		delete(set, "password")
	}
	update := bson.M{"$set": set}
	unset := bson.M{}
	for _, f := range clearableFields {
		if _, ok := set[f]; !ok {
			unset[f] = ""
		}
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": b.ID}, update)
	if err != nil {
		return translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, kind models.AccountKind, id string) error {
	if !deletable(kind) {
		return ErrNotDeletable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.OpenCollection(kind).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin is a single-field write that skips document validation.
func (s *MongoStore) TouchLastLogin(ctx context.Context, kind models.AccountKind, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.OpenCollection(kind).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLogin": at.UTC()}})
	if err != nil {
		return fmt.Errorf("touch lastLogin: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListHospitals(ctx context.Context, status models.ApprovalStatus) ([]*models.Hospital, error) {
	filter := bson.M{}
	if status != "" {
		filter["approvalStatus"] = status
	}
	opts := options.Find().SetProjection(withoutSecret).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.OpenCollection(models.KindHospital).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	hospitals := []*models.Hospital{}
	if err := cursor.All(ctx, &hospitals); err != nil {
		return nil, fmt.Errorf("decode hospitals: %w", err)
	}
	return hospitals, nil
}

func (s *MongoStore) ListStaff(ctx context.Context, hospitalID string) ([]*models.Doctor, []*models.Staff, error) {
	oid, err := primitive.ObjectIDFromHex(hospitalID)
	if err != nil {
		return []*models.Doctor{}, []*models.Staff{}, nil
	}
	filter := bson.M{"hospitalId": oid}
	opts := options.Find().SetProjection(withoutSecret).SetSort(bson.D{{Key: "name", Value: 1}})

	doctors := []*models.Doctor{}
	cursor, err := s.OpenCollection(models.KindDoctor).Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("list doctors: %w", err)
	}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, nil, fmt.Errorf("decode doctors: %w", err)
	}

	staff := []*models.Staff{}
	cursor, err = s.OpenCollection(models.KindStaff).Find(ctx, filter, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("list staff: %w", err)
	}
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, nil, fmt.Errorf("decode staff: %w", err)
	}
	return doctors, staff, nil
}

func toDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return fmt.Errorf("write account: %w", err)
}
