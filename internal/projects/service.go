package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/monitoring"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/geospatial"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/storage"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/workflows"
)

// OrganizationDirectory is the slice of the organization module the project
// service needs: status lookup at creation time.
type OrganizationDirectory interface {
	GetStatus(ctx context.Context, id primitive.ObjectID) (string, error)
}

type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (*Project, error)
	List(ctx context.Context) ([]ListedProject, error)
	ChangeStatus(ctx context.Context, id, status string) (*Project, error)
	MonitoringView(ctx context.Context, id string) (*MonitoringView, error)
}

type service struct {
	repo         Repository
	monitoring   monitoring.Repository
	orgs         OrganizationDirectory
	stateMachine *workflows.StateMachine
}

func NewService(repo Repository, monitoringRepo monitoring.Repository, orgs OrganizationDirectory) Service {
	return &service{
		repo:         repo,
		monitoring:   monitoringRepo,
		orgs:         orgs,
		stateMachine: workflows.NewProjectStateMachine(),
	}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, apperrors.NewValidation("location is required")
	}
	orgID, err := primitive.ObjectIDFromHex(req.Organization)
	if err != nil {
		return nil, apperrors.NewValidation("invalid organization id")
	}

	// a GeoJSON boundary is optional; when present it must parse, and it
	// can stand in for an explicit area figure
	area := req.ProjectArea
	var boundary interface{}
	var centroid []float64
	if len(req.Boundary) > 0 {
		geometry, err := geospatial.ParseBoundary(req.Boundary)
		if err != nil {
			return nil, apperrors.NewValidation("boundary must be valid GeoJSON")
		}
		if area <= 0 {
			area = geospatial.AreaHectares(geometry)
		}
		pin := geospatial.Centroid(geometry)
		centroid = []float64{pin.Lon(), pin.Lat()}
		if err := json.Unmarshal(req.Boundary, &boundary); err != nil {
			return nil, apperrors.NewValidation("boundary must be valid GeoJSON")
		}
	}
	if area <= 0 {
		return nil, apperrors.NewValidation("projectArea must be a positive number of hectares")
	}

	status, err := s.orgs.GetStatus(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if status != "APPROVED" {
		return nil, apperrors.NewValidation("organization must be approved before creating projects")
	}

	project := &Project{
		Name:         name,
		Organization: orgID,
		Location:     strings.TrimSpace(req.Location),
		ProjectArea:  area,
		Boundary:     boundary,
		Centroid:     centroid,
		BaselineData: req.BaselineData,
		Status:       StatusDraft,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) List(ctx context.Context) ([]ListedProject, error) {
	return s.repo.ListWithOrganization(ctx)
}

func (s *service) ChangeStatus(ctx context.Context, id, status string) (*Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("Invalid project id")
	}

	target := strings.ToUpper(strings.TrimSpace(status))
	switch target {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted, StatusArchived:
	default:
		return nil, apperrors.NewValidation("unknown project status")
	}

	project, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if project.Status == target {
		return project, nil
	}
	if !s.stateMachine.CanTransition(project.Status, target) {
		return nil, apperrors.ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, oid, target)
}

// MonitoringView assembles the project monitoring screen payload: project
// identity plus its evidence records shaped for display, newest first.
func (s *service) MonitoringView(ctx context.Context, id string) (*MonitoringView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("Invalid project id")
	}

	project, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	updates, err := s.monitoring.ListByProject(ctx, oid)
	if err != nil {
		return nil, err
	}

	records := make([]MonitoringRecordView, 0, len(updates))
	for _, u := range updates {
		records = append(records, shapeRecord(u))
	}

	return &MonitoringView{
		ProjectName: project.Name,
		ProjectInfo: ProjectInfo{
			ID:        project.ID.Hex(),
			ProjectID: project.ID.Hex(),
		},
		MonitoringRecords: records,
	}, nil
}

func shapeRecord(u monitoring.MonitoringUpdate) MonitoringRecordView {
	view := MonitoringRecordView{
		ID:           u.ID.Hex(),
		EvidenceType: u.EvidenceType,
		Status:       u.Status,
	}
	if view.Status == "" {
		view.Status = monitoring.StatusPending
	}
	if !u.Timestamp.IsZero() {
		view.Timestamp = u.Timestamp.UTC().Format(time.RFC3339)
	}

	// prefer the stored file's base name, fall back to a real IPFS hash
	switch {
	case u.FilePath != "":
		view.Evidence = path.Base(u.FilePath)
	case u.IPFSHash != "" && u.IPFSHash != storage.PlaceholderIPFSHash:
		view.Evidence = u.IPFSHash
	}

	if u.DataPayload != nil {
		view.DataPayload = PayloadView{
			SpeciesPlanted: payloadString(u.DataPayload, "speciesPlanted"),
			NumberOfTrees:  payloadString(u.DataPayload, "numberOfTrees"),
			Notes:          payloadString(u.DataPayload, "notes"),
		}
	}
	return view
}

func payloadString(payload map[string]interface{}, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; counts are whole numbers
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
