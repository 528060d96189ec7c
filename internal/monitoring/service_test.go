package monitoring

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/apperrors"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/storage"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, update *MonitoringUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*MonitoringUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MonitoringUpdate), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]MonitoringUpdate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]MonitoringUpdate), args.Error(1)
}

func (m *MockRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]MonitoringUpdate, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]MonitoringUpdate), args.Error(1)
}

func (m *MockRepository) ListByProjectInRange(ctx context.Context, projectID primitive.ObjectID, start, end time.Time) ([]MonitoringUpdate, error) {
	args := m.Called(ctx, projectID, start, end)
	return args.Get(0).([]MonitoringUpdate), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*MonitoringUpdate, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MonitoringUpdate), args.Error(1)
}

func (m *MockRepository) ExistsByFilePath(ctx context.Context, filePath string) (bool, error) {
	args := m.Called(ctx, filePath)
	return args.Bool(0), args.Error(1)
}

// memoryBlobStore holds saved blobs in memory for tests.
type memoryBlobStore struct {
	saved map[string][]byte
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{saved: map[string][]byte{}}
}

func (s *memoryBlobStore) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.saved[key] = data
	return "uploads/monitoring/" + key, nil
}

func (s *memoryBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	for k, data := range s.saved {
		if strings.HasSuffix(key, k) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memoryBlobStore) Delete(ctx context.Context, key string) error {
	return nil
}

func newTestService(repo Repository, blobs storage.BlobStore) Service {
	return NewService(repo, blobs, storage.NewIPFSClient(), nil, zap.NewNop())
}

func validIngestRequest() IngestRequest {
	return IngestRequest{
		ProjectID:    primitive.NewObjectID().Hex(),
		SubmittedBy:  primitive.NewObjectID().Hex(),
		EvidenceType: EvidenceGeotaggedPhoto,
		FileName:     "Mangrove Plot 7.JPG",
		ContentType:  "image/jpeg",
		FileSize:     2048,
		File:         strings.NewReader("fake image bytes"),
		DataPayload:  `{"treesPlanted": 120, "areaHectares": 1.5}`,
	}
}

func TestIngest(t *testing.T) {
	mockRepo := new(MockRepository)
	blobs := newMemoryBlobStore()
	service := newTestService(mockRepo, blobs)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*monitoring.MonitoringUpdate")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*MonitoringUpdate).ID = primitive.NewObjectID()
		}).Return(nil)

	update, err := service.Ingest(ctx, validIngestRequest())

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, update.Status)
	assert.Equal(t, EvidenceGeotaggedPhoto, update.EvidenceType)
	assert.Equal(t, storage.PlaceholderIPFSHash, update.IPFSHash)
	assert.Equal(t, float64(120), update.DataPayload["treesPlanted"])
	assert.True(t, strings.HasPrefix(update.FilePath, "uploads/monitoring/"))
	assert.True(t, strings.HasSuffix(update.FilePath, "-mangrove_plot_7.jpg"))
	assert.Len(t, blobs.saved, 1)
	mockRepo.AssertExpectations(t)
}

func TestIngestRejectsNonImage(t *testing.T) {
	mockRepo := new(MockRepository)
	blobs := newMemoryBlobStore()
	service := newTestService(mockRepo, blobs)

	req := validIngestRequest()
	req.FileName = "notes.pdf"
	req.ContentType = "application/pdf"

	_, err := service.Ingest(context.Background(), req)

	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, blobs.saved, "rejected uploads must not be stored")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestRequiresFile(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	req := validIngestRequest()
	req.File = nil

	_, err := service.Ingest(context.Background(), req)

	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestRejectsOversizedFile(t *testing.T) {
	mockRepo := new(MockRepository)
	blobs := newMemoryBlobStore()
	service := newTestService(mockRepo, blobs)

	req := validIngestRequest()
	req.FileSize = MaxUploadSize + 1

	_, err := service.Ingest(context.Background(), req)

	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, blobs.saved)
}

func TestIngestRejectsMalformedPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	req := validIngestRequest()
	req.DataPayload = "{not json"

	_, err := service.Ingest(context.Background(), req)

	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngestNormalizesUnknownEvidenceType(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*monitoring.MonitoringUpdate")).Return(nil)

	req := validIngestRequest()
	req.EvidenceType = "CARRIER_PIGEON"

	update, err := service.Ingest(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, EvidenceOther, update.EvidenceType)
}

func TestAcceptPendingUpdate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&MonitoringUpdate{ID: id, Status: StatusPending}, nil)
	mockRepo.On("UpdateStatus", ctx, id, StatusAccepted).
		Return(&MonitoringUpdate{ID: id, Status: StatusAccepted}, nil)

	update, err := service.Accept(ctx, id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, StatusAccepted, update.Status)
	mockRepo.AssertExpectations(t)
}

func TestRejectAcceptedUpdateIsConflict(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&MonitoringUpdate{ID: id, Status: StatusAccepted}, nil)

	_, err := service.Reject(ctx, id.Hex())

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRepeatedAcceptIsNoOp(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	ctx := context.Background()
	id := primitive.NewObjectID()
	mockRepo.On("GetByID", ctx, id).Return(&MonitoringUpdate{ID: id, Status: StatusAccepted}, nil)

	update, err := service.Accept(ctx, id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, StatusAccepted, update.Status)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConcurrentAcceptRejectLastWriteWins(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, newMemoryBlobStore())

	ctx := context.Background()
	id := primitive.NewObjectID()

	// both reviewers observe PENDING; neither write is guarded, so both
	// decisions succeed and the store keeps whichever landed last
	var mu sync.Mutex
	var finalStatus string
	recordWrite := func(args mock.Arguments) {
		mu.Lock()
		finalStatus = args.String(2)
		mu.Unlock()
	}
	mockRepo.On("GetByID", ctx, id).Return(&MonitoringUpdate{ID: id, Status: StatusPending}, nil)
	mockRepo.On("UpdateStatus", ctx, id, StatusAccepted).Run(recordWrite).
		Return(&MonitoringUpdate{ID: id, Status: StatusAccepted}, nil)
	mockRepo.On("UpdateStatus", ctx, id, StatusRejected).Run(recordWrite).
		Return(&MonitoringUpdate{ID: id, Status: StatusRejected}, nil)

	var wg sync.WaitGroup
	var acceptErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, acceptErr = service.Accept(ctx, id.Hex())
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = service.Reject(ctx, id.Hex())
	}()
	wg.Wait()

	assert.NoError(t, acceptErr)
	assert.NoError(t, rejectErr)
	assert.Contains(t, []string{StatusAccepted, StatusRejected}, finalStatus)
	mockRepo.AssertNumberOfCalls(t, "UpdateStatus", 2)
}

func TestTransitionInvalidID(t *testing.T) {
	service := newTestService(new(MockRepository), newMemoryBlobStore())

	_, err := service.Accept(context.Background(), "not-a-hex-id")
	assert.True(t, apperrors.IsValidation(err))
}
