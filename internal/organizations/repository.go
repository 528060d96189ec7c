package organizations

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Organization, error)
	GetStatus(ctx context.Context, id primitive.ObjectID) (string, error)
	List(ctx context.Context) ([]Organization, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Organization, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("organizations")}
}

func (r *mongoRepository) Create(ctx context.Context, org *Organization) error {
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, org)
	if err != nil {
		return err
	}
	org.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Organization, error) {
	var org Organization
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *mongoRepository) GetStatus(ctx context.Context, id primitive.ObjectID) (string, error) {
	org, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return org.Status, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]Organization, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	orgs := []Organization{}
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Organization, error) {
	var org Organization
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}
