package monitoring

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
	Create(ctx context.Context, update *MonitoringUpdate) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*MonitoringUpdate, error)
	List(ctx context.Context) ([]MonitoringUpdate, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]MonitoringUpdate, error)
	ListByProjectInRange(ctx context.Context, projectID primitive.ObjectID, start, end time.Time) ([]MonitoringUpdate, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*MonitoringUpdate, error)
	ExistsByFilePath(ctx context.Context, filePath string) (bool, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection("monitoringupdates")}
}

var timestampDesc = options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

func (r *mongoRepository) Create(ctx context.Context, update *MonitoringUpdate) error {
	now := time.Now()
	update.CreatedAt = now
	update.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, update)
	if err != nil {
		return err
	}
	update.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*MonitoringUpdate, error) {
	var update MonitoringUpdate
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]MonitoringUpdate, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]MonitoringUpdate, error) {
	return r.find(ctx, bson.M{"project": projectID})
}

// ListByProjectInRange selects records whose timestamp lies in the closed
// interval [start, end], most recent first.
func (r *mongoRepository) ListByProjectInRange(ctx context.Context, projectID primitive.ObjectID, start, end time.Time) ([]MonitoringUpdate, error) {
	return r.find(ctx, bson.M{
		"project":   projectID,
		"timestamp": bson.M{"$gte": start, "$lte": end},
	})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]MonitoringUpdate, error) {
	cursor, err := r.coll.Find(ctx, filter, timestampDesc)
	if err != nil {
		return nil, err
	}
	updates := []MonitoringUpdate{}
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// UpdateStatus overwrites the status unconditionally; concurrent writers
// race and the last write wins.
func (r *mongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*MonitoringUpdate, error) {
	var update MonitoringUpdate
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *mongoRepository) ExistsByFilePath(ctx context.Context, filePath string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"filePath": filePath}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
