package monitoring

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/notifications"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/storage"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/workflows"
)

type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*MonitoringUpdate, error)
	List(ctx context.Context) ([]MonitoringUpdate, error)
	Accept(ctx context.Context, id string) (*MonitoringUpdate, error)
	Reject(ctx context.Context, id string) (*MonitoringUpdate, error)
}

type service struct {
	repo         Repository
	blobs        storage.BlobStore
	ipfs         storage.IPFSClient
	hub          *notifications.Hub
	stateMachine *workflows.StateMachine
	logger       *zap.Logger
}

func NewService(repo Repository, blobs storage.BlobStore, ipfs storage.IPFSClient, hub *notifications.Hub, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		blobs:        blobs,
		ipfs:         ipfs,
		hub:          hub,
		stateMachine: workflows.NewMonitoringStateMachine(),
		logger:       logger,
	}
}

// Ingest validates a field submission, stores the evidence file and creates
// a PENDING monitoring update. The file write and the document insert are
// not transactional: a crash in between leaves an orphaned file for the
// janitor to reclaim.
func (s *service) Ingest(ctx context.Context, req IngestRequest) (*MonitoringUpdate, error) {
	if req.File == nil {
		return nil, apperrors.NewValidation(`Image is required (multipart field "image")`)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, apperrors.NewValidation("Only image uploads are allowed")
	}
	if req.FileSize > MaxUploadSize {
		return nil, apperrors.NewValidation("Image exceeds the 15 MB upload limit")
	}
	if req.ProjectID == "" || req.SubmittedBy == "" || req.EvidenceType == "" {
		return nil, apperrors.NewValidation("project, submittedBy, and evidenceType are required")
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid project id")
	}
	submitterID, err := primitive.ObjectIDFromHex(req.SubmittedBy)
	if err != nil {
		return nil, apperrors.NewValidation("invalid submittedBy id")
	}

	var payload map[string]interface{}
	if req.DataPayload != "" {
		if err := json.Unmarshal([]byte(req.DataPayload), &payload); err != nil {
			return nil, apperrors.NewValidation("dataPayload must be valid JSON")
		}
	}

	key := storage.GenerateFilename(req.FileName)
	filePath, err := s.blobs.Save(ctx, key, req.ContentType, req.File)
	if err != nil {
		return nil, err
	}

	// re-open the stored blob for pinning; the placeholder client ignores it
	ipfsHash := storage.PlaceholderIPFSHash
	if rc, openErr := s.blobs.Open(ctx, filePath); openErr == nil {
		if hash, pinErr := s.ipfs.PinFile(ctx, rc); pinErr == nil {
			ipfsHash = hash
		}
		rc.Close()
	}

	update := &MonitoringUpdate{
		Project:      projectID,
		SubmittedBy:  submitterID,
		Timestamp:    time.Now(),
		EvidenceType: NormalizeEvidenceType(req.EvidenceType),
		IPFSHash:     ipfsHash,
		FilePath:     filePath,
		DataPayload:  payload,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Info("monitoring update created",
		zap.String("id", update.ID.Hex()),
		zap.String("project", update.Project.Hex()),
		zap.String("evidence_type", update.EvidenceType))
	return update, nil
}

func (s *service) List(ctx context.Context) ([]MonitoringUpdate, error) {
	return s.repo.List(ctx)
}

func (s *service) Accept(ctx context.Context, id string) (*MonitoringUpdate, error) {
	return s.transition(ctx, id, StatusAccepted)
}

func (s *service) Reject(ctx context.Context, id string) (*MonitoringUpdate, error) {
	return s.transition(ctx, id, StatusRejected)
}

// transition applies a review decision. The current-state check and the
// write are separate operations, so concurrent conflicting decisions both
// succeed and the last write wins.
func (s *service) transition(ctx context.Context, id, target string) (*MonitoringUpdate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("Invalid monitoring update id")
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if current.Status == target {
		return current, nil
	}
	if !s.stateMachine.CanTransition(current.Status, target) {
		return nil, apperrors.ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, oid, target)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(notifications.Event{
		Type:     "monitoring",
		EntityID: updated.ID.Hex(),
		Status:   updated.Status,
		At:       time.Now(),
	})
	return updated, nil
}
