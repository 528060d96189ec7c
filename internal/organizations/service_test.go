package organizations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, org *Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Organization), args.Error(1)
}

func (m *MockRepository) GetStatus(ctx context.Context, id primitive.ObjectID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Organization), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Organization, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Organization), args.Error(1)
}

func TestRegister(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*organizations.Organization")).Return(nil)

	org, err := service.Register(ctx, RegisterRequest{Name: "Green Coast Trust", Type: "ngo"})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, org.Status, "new organizations await approval")
	assert.Equal(t, TypeNGO, org.Type)
	mockRepo.AssertExpectations(t)
}

func TestRegisterRejectsUnknownType(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	_, err := service.Register(context.Background(), RegisterRequest{Name: "x", Type: "COMPANY"})

	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApprove(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&Organization{ID: id, Status: StatusPending}, nil)
	mockRepo.On("UpdateStatus", ctx, id, StatusApproved).
		Return(&Organization{ID: id, Status: StatusApproved}, nil)

	org, err := service.Approve(ctx, id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, org.Status)
}

func TestRejectApprovedOrganizationIsConflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&Organization{ID: id, Status: StatusApproved}, nil)

	_, err := service.Reject(ctx, id.Hex())

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRepeatedApproveIsNoOp(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&Organization{ID: id, Status: StatusApproved}, nil)

	org, err := service.Approve(ctx, id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, org.Status)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
