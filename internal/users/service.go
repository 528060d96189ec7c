package users

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleFieldAgent || role == RoleVerifier
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidation("a valid email is required")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidation("password is required")
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if !validRole(role) {
		return nil, apperrors.NewValidation("role must be ADMIN, FIELD_AGENT or VERIFIER")
	}
	orgID, err := primitive.ObjectIDFromHex(req.Organization)
	if err != nil {
		return nil, apperrors.NewValidation("invalid organization id")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		Organization:  orgID,
		Role:          role,
		WalletAddress: strings.TrimSpace(req.WalletAddress),
		Active:        true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewValidation("invalid user id")
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
