package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRevenueUseCase(repo *MockPurchaseRepository, now time.Time) *revenueUseCase {
	uc := NewRevenueUseCase(repo, jst, logger.New()).(*revenueUseCase)
	uc.now = func() time.Time { return now }
	return uc
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestParseExportParams(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)

	params, err := ParseExportParams("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "all", params.Category)
	assert.Equal(t, entity.AllKinds, params.Kinds)
	assert.Equal(t, 10, params.Limit)
	require.NotNil(t, params.Since)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, jst), *params.Since)

	params, err = ParseExportParams("prompt", "7d", "50", now)
	require.NoError(t, err)
	assert.Equal(t, []entity.ContentKind{entity.KindPrompt}, params.Kinds)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, jst), *params.Since)
	assert.Equal(t, 50, params.Limit)

	params, err = ParseExportParams("all", "all", "", now)
	require.NoError(t, err)
	assert.Nil(t, params.Since)

	for _, bad := range [][3]string{
		{"bundle", "", ""},
		{"", "30", ""},
		{"", "0d", ""},
		{"", "-3d", ""},
		{"", "", "0"},
		{"", "", "101"},
		{"", "", "ten"},
	} {
		_, err := ParseExportParams(bad[0], bad[1], bad[2], now)
		assert.ErrorIs(t, err, entity.ErrInvalidInput, "params %v", bad)
	}
}

func TestSummary(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)
	repo := new(MockPurchaseRepository)
	repo.On("ListRecords", mock.Anything, entity.KindVideo, (*time.Time)(nil)).Return([]entity.PurchaseRecord{
		rec(entity.KindVideo, "v1", 1000, entity.PurchaseStatusActive, time.Date(2026, 3, 2, 0, 0, 0, 0, jst)),
		rec(entity.KindVideo, "v1", 500, entity.PurchaseStatusCancelled, time.Date(2026, 3, 2, 0, 0, 0, 0, jst)),
	}, nil)
	repo.On("ListRecords", mock.Anything, entity.KindCourse, (*time.Time)(nil)).Return([]entity.PurchaseRecord{
		rec(entity.KindCourse, "gone", 5000, entity.PurchaseStatusActive, time.Date(2026, 1, 10, 0, 0, 0, 0, jst)),
	}, nil)
	repo.On("ListRecords", mock.Anything, entity.KindPrompt, (*time.Time)(nil)).Return([]entity.PurchaseRecord{}, nil)
	repo.On("Titles", mock.Anything, entity.KindVideo, []string{"v1"}).Return(map[string]string{"v1": "Go basics"}, nil)
	repo.On("Titles", mock.Anything, entity.KindCourse, []string{"gone"}).Return(map[string]string{}, nil)

	summary, err := newRevenueUseCase(repo, now).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6000, summary.TotalRevenue)
	assert.Equal(t, 1000, summary.MonthlyRevenue)
	require.Len(t, summary.TopVideos, 1)
	assert.Equal(t, "Go basics", summary.TopVideos[0].Title)
	require.Len(t, summary.TopCourses, 1)
	assert.Equal(t, "(不明なコース)", summary.TopCourses[0].Title)
	assert.Empty(t, summary.TopPrompts)
}

func TestSummary_LoadError(t *testing.T) {
	repo := new(MockPurchaseRepository)
	repo.On("ListRecords", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := newRevenueUseCase(repo, time.Now()).Summary(context.Background())
	assert.Error(t, err)
}

func TestExportRanking_FallbackLabel(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)
	params, err := ParseExportParams("video", "all", "5", now)
	require.NoError(t, err)

	repo := new(MockPurchaseRepository)
	repo.On("ListRecords", mock.Anything, entity.KindVideo, (*time.Time)(nil)).Return([]entity.PurchaseRecord{
		rec(entity.KindVideo, "deleted", 3000, entity.PurchaseStatusActive, now),
		rec(entity.KindVideo, "v1", 1000, entity.PurchaseStatusActive, now),
	}, nil)
	repo.On("Titles", mock.Anything, entity.KindVideo, []string{"deleted", "v1"}).Return(map[string]string{"v1": "Go basics"}, nil)

	var buf bytes.Buffer
	require.NoError(t, newRevenueUseCase(repo, now).ExportRanking(context.Background(), &buf, params))

	rows := readCSV(t, &buf)
	assert.Equal(t, []string{"rank", "category", "content_id", "title", "purchases", "revenue"}, rows[0])
	assert.Equal(t, []string{"1", "video", "deleted", "(不明な動画)", "1", "3000"}, rows[1])
	assert.Equal(t, []string{"2", "video", "v1", "Go basics", "1", "1000"}, rows[2])
}

func TestExportRanking_FormulaTitlesAreEscaped(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)
	params, err := ParseExportParams("video", "all", "10", now)
	require.NoError(t, err)

	repo := new(MockPurchaseRepository)
	repo.On("ListRecords", mock.Anything, entity.KindVideo, (*time.Time)(nil)).Return([]entity.PurchaseRecord{
		rec(entity.KindVideo, "a", 4000, entity.PurchaseStatusActive, now),
		rec(entity.KindVideo, "b", 3000, entity.PurchaseStatusActive, now),
		rec(entity.KindVideo, "c", 2000, entity.PurchaseStatusActive, now),
		rec(entity.KindVideo, "d", 1000, entity.PurchaseStatusActive, now),
		rec(entity.KindVideo, "e", 500, entity.PurchaseStatusActive, now),
	}, nil)
	repo.On("Titles", mock.Anything, entity.KindVideo, []string{"a", "b", "c", "d", "e"}).Return(map[string]string{
		"a": `=HYPERLINK("http://example.com","x")`,
		"b": "+1 bonus",
		"c": "-50% sale",
		"d": "@channel",
		"e": "Go 1+1",
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, newRevenueUseCase(repo, now).ExportRanking(context.Background(), &buf, params))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 6)
	assert.Equal(t, `'=HYPERLINK("http://example.com","x")`, rows[1][3])
	assert.Equal(t, "'+1 bonus", rows[2][3])
	assert.Equal(t, "'-50% sale", rows[3][3])
	assert.Equal(t, "'@channel", rows[4][3])
	assert.Equal(t, "Go 1+1", rows[5][3])
}

func TestExportRevenue_OneRowPerDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)
	params, err := ParseExportParams("course", "3d", "", now)
	require.NoError(t, err)

	repo := new(MockPurchaseRepository)
	repo.On("ListRecords", mock.Anything, entity.KindCourse, params.Since).Return([]entity.PurchaseRecord{
		rec(entity.KindCourse, "c1", 5000, entity.PurchaseStatusActive, time.Date(2026, 3, 14, 8, 0, 0, 0, jst)),
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, newRevenueUseCase(repo, now).ExportRevenue(context.Background(), &buf, params))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"date", "category", "purchases", "revenue"}, rows[0])
	assert.Equal(t, []string{"2026-03-13", "course", "0", "0"}, rows[1])
	assert.Equal(t, []string{"2026-03-14", "course", "1", "5000"}, rows[2])
	assert.Equal(t, []string{"2026-03-15", "course", "0", "0"}, rows[3])
}

func TestExportBreakdown(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)
	params, err := ParseExportParams("", "all", "", now)
	require.NoError(t, err)

	repo := new(MockPurchaseRepository)
	repo.On("ListRecords", mock.Anything, entity.KindVideo, (*time.Time)(nil)).Return([]entity.PurchaseRecord{
		rec(entity.KindVideo, "v1", 1000, entity.PurchaseStatusActive, now),
	}, nil)
	repo.On("ListRecords", mock.Anything, entity.KindCourse, (*time.Time)(nil)).Return([]entity.PurchaseRecord{}, nil)
	repo.On("ListRecords", mock.Anything, entity.KindPrompt, (*time.Time)(nil)).Return([]entity.PurchaseRecord{
		rec(entity.KindPrompt, "p1", 300, entity.PurchaseStatusCancelled, now),
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, newRevenueUseCase(repo, now).ExportBreakdown(context.Background(), &buf, params))

	assert.Equal(t, [][]string{
		{"category", "purchases", "revenue"},
		{"video", "1", "1000"},
		{"course", "0", "0"},
		{"prompt", "1", "300"},
		{"all", "2", "1300"},
	}, readCSV(t, &buf))
}
