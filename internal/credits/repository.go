package credits

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

// ReportSnapshot is the slice of a verification report the mint path needs.
type ReportSnapshot struct {
	ID                   primitive.ObjectID `bson:"_id"`
	Project              primitive.ObjectID `bson:"project"`
	Status               string             `bson:"status"`
	VerifiedCarbonAmount float64            `bson:"verifiedCarbonAmount"`
}

type Repository interface {
	Create(ctx context.Context, credit *CarbonCreditNFT) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*CarbonCreditNFT, error)
	List(ctx context.Context) ([]CarbonCreditNFT, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*CarbonCreditNFT, error)
	ExistsByReport(ctx context.Context, reportID primitive.ObjectID) (bool, error)
	GetReportSnapshot(ctx context.Context, reportID primitive.ObjectID) (*ReportSnapshot, error)
}

type mongoRepository struct {
	coll    *mongo.Collection
	reports *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		coll:    db.Collection("carboncreditnfts"),
		reports: db.Collection("verificationreports"),
	}
}

func (r *mongoRepository) Create(ctx context.Context, credit *CarbonCreditNFT) error {
	now := time.Now()
	credit.CreatedAt = now
	credit.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, credit)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.NewValidation("a credit with this token id already exists")
	}
	if err != nil {
		return err
	}
	credit.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*CarbonCreditNFT, error) {
	var credit CarbonCreditNFT
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&credit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]CarbonCreditNFT, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	credits := []CarbonCreditNFT{}
	if err := cursor.All(ctx, &credits); err != nil {
		return nil, err
	}
	return credits, nil
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*CarbonCreditNFT, error) {
	fields["updatedAt"] = time.Now()

	var credit CarbonCreditNFT
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&credit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *mongoRepository) ExistsByReport(ctx context.Context, reportID primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"report": reportID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetReportSnapshot reads the backing report directly; minting only needs
// its status, project, and verified amount.
func (r *mongoRepository) GetReportSnapshot(ctx context.Context, reportID primitive.ObjectID) (*ReportSnapshot, error) {
	var snapshot ReportSnapshot
	err := r.reports.FindOne(ctx, bson.M{"_id": reportID}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
