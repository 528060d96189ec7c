package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/monitoring"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, report *VerificationReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*VerificationReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VerificationReport), args.Error(1)
}

func (m *MockRepository) GetPopulated(ctx context.Context, id primitive.ObjectID) (*PopulatedReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PopulatedReport), args.Error(1)
}

func (m *MockRepository) ListPopulated(ctx context.Context) ([]PopulatedReport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]PopulatedReport), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*VerificationReport, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VerificationReport), args.Error(1)
}

// MockMonitoringRepository mocks the monitoring repository for range queries
type MockMonitoringRepository struct {
	mock.Mock
}

func (m *MockMonitoringRepository) Create(ctx context.Context, update *monitoring.MonitoringUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockMonitoringRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*monitoring.MonitoringUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitoring.MonitoringUpdate), args.Error(1)
}

func (m *MockMonitoringRepository) List(ctx context.Context) ([]monitoring.MonitoringUpdate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]monitoring.MonitoringUpdate), args.Error(1)
}

func (m *MockMonitoringRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]monitoring.MonitoringUpdate, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]monitoring.MonitoringUpdate), args.Error(1)
}

func (m *MockMonitoringRepository) ListByProjectInRange(ctx context.Context, projectID primitive.ObjectID, start, end time.Time) ([]monitoring.MonitoringUpdate, error) {
	args := m.Called(ctx, projectID, start, end)
	return args.Get(0).([]monitoring.MonitoringUpdate), args.Error(1)
}

func (m *MockMonitoringRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*monitoring.MonitoringUpdate, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitoring.MonitoringUpdate), args.Error(1)
}

func (m *MockMonitoringRepository) ExistsByFilePath(ctx context.Context, filePath string) (bool, error) {
	args := m.Called(ctx, filePath)
	return args.Bool(0), args.Error(1)
}

// MockProjectChecker mocks project existence checks
type MockProjectChecker struct {
	mock.Mock
}

func (m *MockProjectChecker) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo Repository, monitoringRepo monitoring.Repository, projects ProjectChecker) Service {
	return NewService(repo, monitoringRepo, projects, nil, zap.NewNop())
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"draft":     StatusPending,
		"DRAFT":     StatusPending,
		" pending ": StatusPending,
		"submitted": StatusInReview,
		"in_review": StatusInReview,
		"verified":  StatusApproved,
		"APPROVED":  StatusApproved,
		"rejected":  StatusRejected,
		"banana":    StatusPending,
		"":          StatusPending,
	}

	for input, want := range cases {
		assert.Equal(t, want, NormalizeStatus(input), "input %q", input)
	}

	// normalizing twice changes nothing
	for _, s := range []string{StatusPending, StatusInReview, StatusApproved, StatusRejected} {
		assert.Equal(t, s, NormalizeStatus(NormalizeStatus(s)))
	}
}

func TestCreateReportDefaults(t *testing.T) {
	mockRepo := new(MockRepository)
	mockProjects := new(MockProjectChecker)
	service := newTestService(mockRepo, new(MockMonitoringRepository), mockProjects)

	ctx := context.Background()
	projectID := primitive.NewObjectID()

	mockProjects.On("Exists", ctx, projectID).Return(true, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*reports.VerificationReport")).
		Run(func(args mock.Arguments) {
			report := args.Get(1).(*VerificationReport)
			assert.Equal(t, StatusPending, report.Status)
			assert.Equal(t, 0.0, report.VerifiedCarbonAmount)
			report.ID = primitive.NewObjectID()
		}).Return(nil)
	mockRepo.On("GetPopulated", ctx, mock.AnythingOfType("primitive.ObjectID")).
		Return(&PopulatedReport{Name: "Q1 Mangrove Survey", Status: StatusPending}, nil)

	report, err := service.Create(ctx, CreateReportRequest{
		Name:                  "Q1 Mangrove Survey",
		Project:               projectID.Hex(),
		MonitoringStartPeriod: "2025-01-01",
		MonitoringEndPeriod:   "2025-03-31",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, report.Status)
	mockRepo.AssertExpectations(t)
	mockProjects.AssertExpectations(t)
}

func TestCreateReportValidation(t *testing.T) {
	mockRepo := new(MockRepository)
	mockProjects := new(MockProjectChecker)
	service := newTestService(mockRepo, new(MockMonitoringRepository), mockProjects)

	ctx := context.Background()
	projectID := primitive.NewObjectID()
	mockProjects.On("Exists", ctx, projectID).Return(true, nil)

	_, err := service.Create(ctx, CreateReportRequest{Project: projectID.Hex()})
	assert.True(t, apperrors.IsValidation(err), "missing name should fail validation")

	_, err = service.Create(ctx, CreateReportRequest{
		Name:                  "r",
		Project:               projectID.Hex(),
		MonitoringStartPeriod: "not-a-date",
		MonitoringEndPeriod:   "2025-03-31",
	})
	assert.True(t, apperrors.IsValidation(err), "bad date should fail validation")

	_, err = service.Create(ctx, CreateReportRequest{
		Name:                  "r",
		Project:               projectID.Hex(),
		MonitoringStartPeriod: "2025-06-01",
		MonitoringEndPeriod:   "2025-01-01",
	})
	assert.True(t, apperrors.IsValidation(err), "inverted range should fail validation")

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReportUnknownProject(t *testing.T) {
	mockRepo := new(MockRepository)
	mockProjects := new(MockProjectChecker)
	service := newTestService(mockRepo, new(MockMonitoringRepository), mockProjects)

	ctx := context.Background()
	projectID := primitive.NewObjectID()
	mockProjects.On("Exists", ctx, projectID).Return(false, nil)

	_, err := service.Create(ctx, CreateReportRequest{
		Name:                  "r",
		Project:               projectID.Hex(),
		MonitoringStartPeriod: "2025-01-01",
		MonitoringEndPeriod:   "2025-03-31",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCoerceAmount(t *testing.T) {
	assert.Equal(t, 42.5, coerceAmount(42.5))
	assert.Equal(t, 42.5, coerceAmount("42.5"))
	assert.Equal(t, 0.0, coerceAmount("not a number"))
	assert.Equal(t, 0.0, coerceAmount(nil))
	assert.Equal(t, 0.0, coerceAmount([]string{"x"}))
}

func TestUpdateNormalizesLooseStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusPending}, nil)
	mockRepo.On("Update", ctx, id, mock.MatchedBy(func(fields bson.M) bool {
		return fields["status"] == StatusApproved
	})).Return(&VerificationReport{ID: id, Status: StatusApproved}, nil)

	status := "verified"
	report, err := service.Update(ctx, id.Hex(), UpdateReportRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, report.Status)
	mockRepo.AssertExpectations(t)
}

func TestUpdateSameStatusIsNoOp(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusApproved}, nil)

	status := "approved"
	report, err := service.Update(ctx, id.Hex(), UpdateReportRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, report.Status)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRejectsReopeningTerminalReport(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusApproved}, nil)

	status := "pending"
	_, err := service.Update(ctx, id.Hex(), UpdateReportRequest{Status: &status})

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRequiresAtLeastOneField(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	_, err := service.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateReportRequest{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestReviewWorkflow(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	ctx := context.Background()
	id := primitive.NewObjectID()

	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusPending}, nil).Once()
	mockRepo.On("Update", ctx, id, mock.MatchedBy(func(fields bson.M) bool {
		return fields["status"] == StatusInReview
	})).Return(&VerificationReport{ID: id, Status: StatusInReview}, nil).Once()

	report, err := service.Submit(ctx, id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, StatusInReview, report.Status)

	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusInReview}, nil).Once()
	mockRepo.On("Update", ctx, id, mock.MatchedBy(func(fields bson.M) bool {
		return fields["status"] == StatusApproved && fields["verifiedCarbonAmount"] == 120.0
	})).Return(&VerificationReport{ID: id, Status: StatusApproved, VerifiedCarbonAmount: 120}, nil).Once()

	report, err = service.Approve(ctx, id.Hex(), ReviewRequest{VerifiedCarbonAmount: 120.0})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, report.Status)

	mockRepo.AssertExpectations(t)
}

func TestRejectAfterApprovalIsConflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusApproved}, nil)

	_, err := service.Reject(ctx, id.Hex(), ReviewRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestRepeatedApproveIsNoOp(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockMonitoringRepository), new(MockProjectChecker))

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&VerificationReport{ID: id, Status: StatusApproved}, nil)

	report, err := service.Approve(ctx, id.Hex(), ReviewRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, report.Status)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonitoringInRangeValidatesBeforeQuerying(t *testing.T) {
	mockMonitoring := new(MockMonitoringRepository)
	service := newTestService(new(MockRepository), mockMonitoring, new(MockProjectChecker))

	ctx := context.Background()
	projectID := primitive.NewObjectID().Hex()

	_, err := service.MonitoringInRange(ctx, "nope", "2025-01-01", "2025-02-01")
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.MonitoringInRange(ctx, projectID, "whenever", "2025-02-01")
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.MonitoringInRange(ctx, projectID, "2025-06-01", "2025-01-01")
	assert.True(t, apperrors.IsValidation(err))

	mockMonitoring.AssertNotCalled(t, "ListByProjectInRange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMonitoringInRange(t *testing.T) {
	mockMonitoring := new(MockMonitoringRepository)
	service := newTestService(new(MockRepository), mockMonitoring, new(MockProjectChecker))

	ctx := context.Background()
	projectID := primitive.NewObjectID()
	records := []monitoring.MonitoringUpdate{{ID: primitive.NewObjectID(), Project: projectID}}

	mockMonitoring.On("ListByProjectInRange", ctx, projectID,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(records, nil)

	got, err := service.MonitoringInRange(ctx, projectID.Hex(), "2025-01-01", "2025-03-31")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	mockMonitoring.AssertExpectations(t)
}
