package http

import (
	"context"
	"io"
	"time"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) GetVideo(ctx context.Context, videoID string) (*entity.Video, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockCatalogUseCase) GetVideoPage(ctx context.Context, viewer *entity.Viewer, videoID string) (*usecase.VideoPage, error) {
	args := m.Called(ctx, viewer, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.VideoPage), args.Error(1)
}

func (m *MockCatalogUseCase) GetCoursePage(ctx context.Context, viewer *entity.Viewer, courseID string) (*usecase.CoursePage, error) {
	args := m.Called(ctx, viewer, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CoursePage), args.Error(1)
}

func (m *MockCatalogUseCase) GetPromptPage(ctx context.Context, viewer *entity.Viewer, promptID string) (*usecase.PromptPage, error) {
	args := m.Called(ctx, viewer, promptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PromptPage), args.Error(1)
}

func (m *MockCatalogUseCase) ListVideos(ctx context.Context, filter entity.ContentFilter) ([]*entity.Video, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockCatalogUseCase) ListCourses(ctx context.Context, filter entity.ContentFilter) ([]*entity.Course, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Course), args.Error(1)
}

func (m *MockCatalogUseCase) ListPrompts(ctx context.Context, filter entity.ContentFilter) ([]*entity.Prompt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Prompt), args.Error(1)
}

func (m *MockCatalogUseCase) CreateVideo(ctx context.Context, video *entity.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockCatalogUseCase) UpdateVideo(ctx context.Context, video *entity.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockCatalogUseCase) DeleteVideo(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogUseCase) CreateCourse(ctx context.Context, course *entity.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCatalogUseCase) UpdateCourse(ctx context.Context, course *entity.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCatalogUseCase) DeleteCourse(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogUseCase) ReplaceCourseContents(ctx context.Context, courseID string, videoIDs, promptIDs []string) error {
	return m.Called(ctx, courseID, videoIDs, promptIDs).Error(0)
}

func (m *MockCatalogUseCase) CreatePrompt(ctx context.Context, prompt *entity.Prompt) error {
	return m.Called(ctx, prompt).Error(0)
}

func (m *MockCatalogUseCase) UpdatePrompt(ctx context.Context, prompt *entity.Prompt) error {
	return m.Called(ctx, prompt).Error(0)
}

func (m *MockCatalogUseCase) DeletePrompt(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogUseCase) UploadPromptAttachment(ctx context.Context, promptID, filename, contentType string, body io.ReadSeeker) (string, error) {
	args := m.Called(ctx, promptID, filename, contentType, body)
	return args.String(0), args.Error(1)
}

var _ usecase.CatalogUseCase = (*MockCatalogUseCase)(nil)

type MockPurchaseUseCase struct {
	mock.Mock
}

func (m *MockPurchaseUseCase) PurchaseVideo(ctx context.Context, userID, videoID string, amount *int) (*entity.Purchase, error) {
	args := m.Called(ctx, userID, videoID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}

func (m *MockPurchaseUseCase) PurchaseCourse(ctx context.Context, userID, courseID string) (*entity.Purchase, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}

func (m *MockPurchaseUseCase) PurchasePrompt(ctx context.Context, userID, promptID string) (*entity.Purchase, error) {
	args := m.Called(ctx, userID, promptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Purchase), args.Error(1)
}

var _ usecase.PurchaseUseCase = (*MockPurchaseUseCase)(nil)

type MockProgressUseCase struct {
	mock.Mock
}

func (m *MockProgressUseCase) StartPlayback(ctx context.Context, userID, videoID string) error {
	return m.Called(ctx, userID, videoID).Error(0)
}

func (m *MockProgressUseCase) RecordProgress(ctx context.Context, tick usecase.ProgressTick) bool {
	return m.Called(ctx, tick).Bool(0)
}

func (m *MockProgressUseCase) ResumePosition(ctx context.Context, userID string, video *entity.Video, durationHint int) (*usecase.ResumeInfo, error) {
	args := m.Called(ctx, userID, video, durationHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ResumeInfo), args.Error(1)
}

var _ usecase.ProgressUseCase = (*MockProgressUseCase)(nil)

type MockInteractionUseCase struct {
	mock.Mock
}

func (m *MockInteractionUseCase) ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error) {
	args := m.Called(ctx, userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionUseCase) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Favorite), args.Error(1)
}

func (m *MockInteractionUseCase) ListComments(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(ctx, videoID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) CreateComment(ctx context.Context, userID, videoID, body string) (*entity.Comment, error) {
	args := m.Called(ctx, userID, videoID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) DeleteComment(ctx context.Context, userID, commentID string) error {
	return m.Called(ctx, userID, commentID).Error(0)
}

func (m *MockInteractionUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockInteractionUseCase) ListHistory(ctx context.Context, userID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.HistoryEntry), args.Error(1)
}

func (m *MockInteractionUseCase) ListPurchases(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Purchase), args.Error(1)
}

var _ usecase.InteractionUseCase = (*MockInteractionUseCase)(nil)

type MockRevenueUseCase struct {
	mock.Mock
}

func (m *MockRevenueUseCase) Summary(ctx context.Context) (*usecase.RevenueSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RevenueSummary), args.Error(1)
}

func (m *MockRevenueUseCase) ExportRevenue(ctx context.Context, w io.Writer, params usecase.ExportParams) error {
	return m.Called(ctx, w, params).Error(0)
}

func (m *MockRevenueUseCase) ExportBreakdown(ctx context.Context, w io.Writer, params usecase.ExportParams) error {
	return m.Called(ctx, w, params).Error(0)
}

func (m *MockRevenueUseCase) ExportRanking(ctx context.Context, w io.Writer, params usecase.ExportParams) error {
	return m.Called(ctx, w, params).Error(0)
}

func (m *MockRevenueUseCase) Now() time.Time {
	return m.Called().Get(0).(time.Time)
}

var _ usecase.RevenueUseCase = (*MockRevenueUseCase)(nil)
