package projects

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
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Project, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListWithOrganization(ctx context.Context) ([]ListedProject, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Project, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("projects")}
}

func (r *mongoRepository) Create(ctx context.Context, project *Project) error {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, project)
	if err != nil {
		return err
	}
	project.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	var project Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *mongoRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListWithOrganization joins the organization name onto each project, the
// document-store equivalent of a name-only populate.
func (r *mongoRepository) ListWithOrganization(ctx context.Context) ([]ListedProject, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "organizations",
			"localField":   "organization",
			"foreignField": "_id",
			"as":           "org",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"organization": bson.M{"$first": "$org.name"},
		}}},
		{{Key: "$project", Value: bson.M{"org": 0}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	list := []ListedProject{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Project, error) {
	var project Project
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}
