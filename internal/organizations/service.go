package organizations

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/workflows"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Organization, error)
	Get(ctx context.Context, id string) (*Organization, error)
	List(ctx context.Context) ([]Organization, error)
	Approve(ctx context.Context, id string) (*Organization, error)
	Reject(ctx context.Context, id string) (*Organization, error)
}

type service struct {
	repo         Repository
	stateMachine *workflows.StateMachine
}

func NewService(repo Repository) Service {
	return &service{
		repo:         repo,
		stateMachine: workflows.NewOrganizationStateMachine(),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name is required")
	}

	orgType := strings.ToUpper(strings.TrimSpace(req.Type))
	if orgType != TypeNGO && orgType != TypePanchayat {
		return nil, apperrors.NewValidation("type must be NGO or PANCHAYAT")
	}

	org := &Organization{
		Name:   name,
		Type:   orgType,
		Status: StatusPending,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *service) Get(ctx context.Context, id string) (*Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid organization id")
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *service) List(ctx context.Context) ([]Organization, error) {
	return s.repo.List(ctx)
}

func (s *service) Approve(ctx context.Context, id string) (*Organization, error) {
	return s.transition(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id string) (*Organization, error) {
	return s.transition(ctx, id, StatusRejected)
}

func (s *service) transition(ctx context.Context, id, target string) (*Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid organization id")
	}

	org, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	// repeating the same decision is a no-op
	if org.Status == target {
		return org, nil
	}
	if !s.stateMachine.CanTransition(org.Status, target) {
		return nil, apperrors.ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, oid, target)
}
