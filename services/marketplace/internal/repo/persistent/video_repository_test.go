package persistent

import (
	"context"
	"testing"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	video := &entity.Video{Title: "Go basics", Price: 1200, IsPublished: true, Genre: "programming", Tags: []string{"go", "intro"}}
	require.NoError(t, repo.Create(ctx, video))
	require.NotEmpty(t, video.ID)

	got, err := repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go basics", got.Title)
	assert.Equal(t, []string{"go", "intro"}, got.Tags)
	assert.Equal(t, 1200, got.Price)
}

func TestVideoRepository_GetByID_NotFound(t *testing.T) {
	repo := NewVideoRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestVideoRepository_ListPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mustCreate(t, db, &model.VideoModel{Title: "public", IsPublished: true, Genre: "music"})
	mustCreate(t, db, &model.VideoModel{Title: "draft", IsPublished: false, Genre: "music"})
	mustCreate(t, db, &model.VideoModel{Title: "other genre", IsPublished: true, Genre: "art"})

	published, err := repo.List(ctx, entity.ContentFilter{}, true)
	require.NoError(t, err)
	assert.Len(t, published, 2)

	music, err := repo.List(ctx, entity.ContentFilter{Genre: "music"}, true)
	require.NoError(t, err)
	require.Len(t, music, 1)
	assert.Equal(t, "public", music[0].Title)

	all, err := repo.List(ctx, entity.ContentFilter{}, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestVideoRepository_IncrementViewCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	row := &model.VideoModel{Title: "counted", IsPublished: true}
	mustCreate(t, db, row)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViewCount(ctx, row.ID))
	}

	got, err := repo.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ViewCount)
}

func TestVideoRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	video := &entity.Video{Title: "before", Price: 500}
	require.NoError(t, repo.Create(ctx, video))
	mustCreate(t, db, &model.CourseVideoModel{CourseID: "c1", VideoID: video.ID, OrderIndex: 0})

	video.Title = "after"
	video.Price = 0
	require.NoError(t, repo.Update(ctx, video))

	got, err := repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, 0, got.Price)

	require.NoError(t, repo.Delete(ctx, video.ID))
	_, err = repo.GetByID(ctx, video.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	var links int64
	require.NoError(t, db.Model(&model.CourseVideoModel{}).Where("video_id = ?", video.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, repo.Delete(ctx, video.ID), entity.ErrNotFound)
}
