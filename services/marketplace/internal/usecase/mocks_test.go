package usecase

import (
	"context"
	"io"
	"time"

	"lesson-market/pkg/queue"
	"lesson-market/services/marketplace/internal/entity"

	"github.com/stretchr/testify/mock"
)

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) HasActiveVideoPurchase(ctx context.Context, videoID, userID string) (bool, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) HasActiveCoursePurchaseForVideo(ctx context.Context, videoID, userID string) (bool, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) HasActiveCoursePurchase(ctx context.Context, courseID, userID string) (bool, error) {
	args := m.Called(ctx, courseID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) HasActivePromptPurchase(ctx context.Context, promptID, userID string) (bool, error) {
	args := m.Called(ctx, promptID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) ListRecords(ctx context.Context, kind entity.ContentKind, since *time.Time) ([]entity.PurchaseRecord, error) {
	args := m.Called(ctx, kind, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PurchaseRecord), args.Error(1)
}

func (m *MockPurchaseRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Titles(ctx context.Context, kind entity.ContentKind, ids []string) (map[string]string, error) {
	args := m.Called(ctx, kind, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetRole(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockViewHistoryRepository struct {
	mock.Mock
}

func (m *MockViewHistoryRepository) Touch(ctx context.Context, userID, videoID string, at time.Time) error {
	args := m.Called(ctx, userID, videoID, at)
	return args.Error(0)
}

func (m *MockViewHistoryRepository) UpsertProgress(ctx context.Context, userID, videoID string, progress int, at time.Time) error {
	args := m.Called(ctx, userID, videoID, progress, at)
	return args.Error(0)
}

func (m *MockViewHistoryRepository) Get(ctx context.Context, userID, videoID string) (*entity.ViewHistory, error) {
	args := m.Called(ctx, userID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ViewHistory), args.Error(1)
}

func (m *MockViewHistoryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.HistoryEntry), args.Error(1)
}

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entity.Video), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, filter entity.ContentFilter, publishedOnly bool) ([]*entity.Video, error) {
	args := m.Called(ctx, filter, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoRepository) Create(ctx context.Context, video *entity.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *entity.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) IncrementViewCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPurchase(ctx context.Context, event queue.PurchaseEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDurationProvider struct {
	mock.Mock
}

func (m *MockDurationProvider) Duration(ctx context.Context, vimeoID string) (int, error) {
	args := m.Called(ctx, vimeoID)
	return args.Int(0), args.Error(1)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(key string, ttl time.Duration) (string, error) {
	args := m.Called(key, ttl)
	return args.String(0), args.Error(1)
}

// alwaysAllow is a throttler that admits every tick.
type alwaysAllow struct{}

func (alwaysAllow) Allow(context.Context, string) bool { return true }
