package reports

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/monitoring"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/notifications"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/workflows"
)

// ProjectChecker is the slice of the project module the report service
// needs: existence checks at creation time.
type ProjectChecker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreateReportRequest) (*PopulatedReport, error)
	List(ctx context.Context) ([]PopulatedReport, error)
	Get(ctx context.Context, id string) (*PopulatedReport, error)
	Update(ctx context.Context, id string, req UpdateReportRequest) (*VerificationReport, error)
	Submit(ctx context.Context, id string) (*VerificationReport, error)
	Approve(ctx context.Context, id string, req ReviewRequest) (*VerificationReport, error)
	Reject(ctx context.Context, id string, req ReviewRequest) (*VerificationReport, error)
	MonitoringInRange(ctx context.Context, projectID, start, end string) ([]monitoring.MonitoringUpdate, error)
}

type service struct {
	repo         Repository
	monitoring   monitoring.Repository
	projects     ProjectChecker
	hub          *notifications.Hub
	stateMachine *workflows.StateMachine
	logger       *zap.Logger
}

func NewService(repo Repository, monitoringRepo monitoring.Repository, projects ProjectChecker, hub *notifications.Hub, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		monitoring:   monitoringRepo,
		projects:     projects,
		hub:          hub,
		stateMachine: workflows.NewReportStateMachine(),
		logger:       logger,
	}
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(input string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// coerceAmount mirrors the permissive client contract: numbers pass
// through, numeric strings parse, everything else becomes 0.
func coerceAmount(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

func (s *service) Create(ctx context.Context, req CreateReportRequest) (*PopulatedReport, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Project == "" || req.MonitoringStartPeriod == "" || req.MonitoringEndPeriod == "" {
		return nil, apperrors.NewValidation("name, project, monitoringStartPeriod, and monitoringEndPeriod are required.")
	}

	projectID, err := primitive.ObjectIDFromHex(req.Project)
	if err != nil {
		return nil, apperrors.NewValidation("invalid project id")
	}

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	start, ok := parseDate(req.MonitoringStartPeriod)
	if !ok {
		return nil, apperrors.NewValidation("Invalid monitoring period dates")
	}
	end, ok := parseDate(req.MonitoringEndPeriod)
	if !ok {
		return nil, apperrors.NewValidation("Invalid monitoring period dates")
	}
	if start.After(end) {
		return nil, apperrors.NewValidation("monitoringStartPeriod must be before monitoringEndPeriod")
	}

	amount := coerceAmount(req.VerifiedCarbonAmount)
	if amount < 0 {
		return nil, apperrors.NewValidation("verifiedCarbonAmount must not be negative")
	}

	report := &VerificationReport{
		Name:                  name,
		Project:               projectID,
		MonitoringStartPeriod: start,
		MonitoringEndPeriod:   end,
		Status:                NormalizeStatus(req.Status),
		VerifiedCarbonAmount:  amount,
		VerificationTxHash:    strings.TrimSpace(req.VerificationTxHash),
	}
	if req.Verifier != "" {
		verifierID, err := primitive.ObjectIDFromHex(req.Verifier)
		if err != nil {
			return nil, apperrors.NewValidation("invalid verifier id")
		}
		report.Verifier = &verifierID
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("verification report created",
		zap.String("id", report.ID.Hex()),
		zap.String("project", report.Project.Hex()),
		zap.String("status", report.Status))
	return s.repo.GetPopulated(ctx, report.ID)
}

func (s *service) List(ctx context.Context) ([]PopulatedReport, error) {
	return s.repo.ListPopulated(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*PopulatedReport, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid report id")
	}
	return s.repo.GetPopulated(ctx, oid)
}

// Update applies a free-form field edit. A supplied status is normalized
// first and then checked against the transition rules, so terminal reports
// cannot be reopened through the generic update path.
func (s *service) Update(ctx context.Context, id string, req UpdateReportRequest) (*VerificationReport, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid report id")
	}

	fields := bson.M{}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.VerifiedCarbonAmount != nil {
		amount := coerceAmount(req.VerifiedCarbonAmount)
		if amount < 0 {
			return nil, apperrors.NewValidation("verifiedCarbonAmount must not be negative")
		}
		fields["verifiedCarbonAmount"] = amount
	}
	if req.VerificationTxHash != nil {
		fields["verificationTxHash"] = strings.TrimSpace(*req.VerificationTxHash)
	}
	if req.Verifier != nil {
		verifierID, err := primitive.ObjectIDFromHex(*req.Verifier)
		if err != nil {
			return nil, apperrors.NewValidation("invalid verifier id")
		}
		fields["verifier"] = verifierID
	}

	var statusChanged bool
	if req.Status != nil {
		current, err := s.repo.GetByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		target := NormalizeStatus(*req.Status)
		if target == current.Status {
			// writing the current status back is an idempotent no-op
			if len(fields) == 0 {
				return current, nil
			}
		} else {
			if !s.stateMachine.CanTransition(current.Status, target) {
				return nil, apperrors.ErrInvalidTransition
			}
			fields["status"] = target
			statusChanged = true
		}
	}

	if len(fields) == 0 {
		return nil, apperrors.NewValidation("no updatable fields supplied")
	}

	report, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if statusChanged {
		s.publishStatus(report)
	}
	return report, nil
}

func (s *service) Submit(ctx context.Context, id string) (*VerificationReport, error) {
	return s.transition(ctx, id, StatusInReview, ReviewRequest{})
}

func (s *service) Approve(ctx context.Context, id string, req ReviewRequest) (*VerificationReport, error) {
	return s.transition(ctx, id, StatusApproved, req)
}

func (s *service) Reject(ctx context.Context, id string, req ReviewRequest) (*VerificationReport, error) {
	return s.transition(ctx, id, StatusRejected, req)
}

// transition moves a report through the review workflow. The state check
// and the write are separate operations with no optimistic lock, so
// concurrent reviewers race and the last write wins.
func (s *service) transition(ctx context.Context, id, target string, req ReviewRequest) (*VerificationReport, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid report id")
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.VerifiedCarbonAmount != nil {
		amount := coerceAmount(req.VerifiedCarbonAmount)
		if amount < 0 {
			return nil, apperrors.NewValidation("verifiedCarbonAmount must not be negative")
		}
		fields["verifiedCarbonAmount"] = amount
	}
	if req.Verifier != nil {
		verifierID, err := primitive.ObjectIDFromHex(*req.Verifier)
		if err != nil {
			return nil, apperrors.NewValidation("invalid verifier id")
		}
		fields["verifier"] = verifierID
	}
	if req.VerificationTxHash != nil {
		fields["verificationTxHash"] = strings.TrimSpace(*req.VerificationTxHash)
	}

	if current.Status != target {
		if !s.stateMachine.CanTransition(current.Status, target) {
			return nil, apperrors.ErrInvalidTransition
		}
		fields["status"] = target
	} else if len(fields) == 0 {
		// repeating a decision with nothing else to change is a no-op
		return current, nil
	}

	report, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if current.Status != target {
		s.publishStatus(report)
	}
	return report, nil
}

func (s *service) publishStatus(report *VerificationReport) {
	s.hub.Publish(notifications.Event{
		Type:     "report",
		EntityID: report.ID.Hex(),
		Status:   report.Status,
		At:       time.Now(),
	})
}

// MonitoringInRange returns the project's evidence records whose timestamp
// falls in the closed interval [start, end], newest first. The range is
// validated before any query runs.
func (s *service) MonitoringInRange(ctx context.Context, projectID, start, end string) ([]monitoring.MonitoringUpdate, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid project id")
	}

	startTime, ok := parseDate(start)
	if !ok {
		return nil, apperrors.NewValidation("invalid start date")
	}
	endTime, ok := parseDate(end)
	if !ok {
		return nil, apperrors.NewValidation("invalid end date")
	}
	if startTime.After(endTime) {
		return nil, apperrors.NewValidation("start date must not be after end date")
	}

	return s.monitoring.ListByProjectInRange(ctx, oid, startTime, endTime)
}
