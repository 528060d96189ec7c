package reports

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
	Create(ctx context.Context, report *VerificationReport) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*VerificationReport, error)
	GetPopulated(ctx context.Context, id primitive.ObjectID) (*PopulatedReport, error)
	ListPopulated(ctx context.Context) ([]PopulatedReport, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*VerificationReport, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("verificationreports")}
}

func (r *mongoRepository) Create(ctx context.Context, report *VerificationReport) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, report)
	if err != nil {
		return err
	}
	report.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*VerificationReport, error) {
	var report VerificationReport
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// populatePipeline expands project and verifier references into name stubs,
// the document-store equivalent of a select:'name _id' populate.
func populatePipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "projects",
			"localField":   "project",
			"foreignField": "_id",
			"as":           "projectDoc",
			"pipeline":     mongo.Pipeline{bson.D{{Key: "$project", Value: bson.M{"name": 1}}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "verifier",
			"foreignField": "_id",
			"as":           "verifierDoc",
			"pipeline":     mongo.Pipeline{bson.D{{Key: "$project", Value: bson.M{"name": 1}}}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"project":  bson.M{"$first": "$projectDoc"},
			"verifier": bson.M{"$first": "$verifierDoc"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"projectDoc": 0, "verifierDoc": 0}}},
	)
	return pipeline
}

func (r *mongoRepository) GetPopulated(ctx context.Context, id primitive.ObjectID) (*PopulatedReport, error) {
	cursor, err := r.coll.Aggregate(ctx, populatePipeline(bson.M{"_id": id}))
	if err != nil {
		return nil, err
	}
	var results []PopulatedReport
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &results[0], nil
}

func (r *mongoRepository) ListPopulated(ctx context.Context) ([]PopulatedReport, error) {
	cursor, err := r.coll.Aggregate(ctx, populatePipeline(nil))
	if err != nil {
		return nil, err
	}
	reports := []PopulatedReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Update applies a $set of the given fields and returns the new document.
// There is no version check; concurrent updates race, last write wins.
func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*VerificationReport, error) {
	fields["updatedAt"] = time.Now()

	var report VerificationReport
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
