package usecase

import (
	"testing"
	"time"

	"lesson-market/services/marketplace/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func rec(kind entity.ContentKind, id string, amount int, status entity.PurchaseStatus, at time.Time) entity.PurchaseRecord {
	return entity.PurchaseRecord{Kind: kind, ContentID: id, Amount: amount, Status: status, CreatedAt: at}
}

func TestTotalRevenue_FiltersCancelledVideoRows(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindVideo, "v1", 1000, entity.PurchaseStatusActive, at),
		rec(entity.KindVideo, "v1", 500, entity.PurchaseStatusCancelled, at),
	}

	assert.Equal(t, 1000, TotalRevenue(records))
}

func TestTotalRevenue_PromptRowsIgnoreStatus(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindCourse, "c1", 5000, entity.PurchaseStatusCancelled, at),
		rec(entity.KindPrompt, "p1", 300, entity.PurchaseStatusCancelled, at),
		rec(entity.KindPrompt, "p2", 200, entity.PurchaseStatusActive, at),
	}

	assert.Equal(t, 500, TotalRevenue(records))
}

func TestMonthlyRevenue_StartsAtFirstOfMonth(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindVideo, "v1", 100, entity.PurchaseStatusActive, time.Date(2026, 2, 28, 23, 59, 59, 0, jst)),
		rec(entity.KindVideo, "v1", 200, entity.PurchaseStatusActive, time.Date(2026, 3, 1, 0, 0, 0, 0, jst)),
		// 2026-02-28 16:00 UTC is 2026-03-01 01:00 in JST.
		rec(entity.KindPrompt, "p1", 300, entity.PurchaseStatusActive, time.Date(2026, 2, 28, 16, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, 500, MonthlyRevenue(records, now))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, jst), MonthStart(now))
}

func TestRankItems_OrderAndLimit(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindVideo, "b", 1000, entity.PurchaseStatusActive, at),
		rec(entity.KindVideo, "a", 500, entity.PurchaseStatusActive, at),
		rec(entity.KindVideo, "a", 500, entity.PurchaseStatusActive, at),
		rec(entity.KindVideo, "c", 2000, entity.PurchaseStatusActive, at),
		rec(entity.KindVideo, "d", 1000, entity.PurchaseStatusActive, at),
		rec(entity.KindVideo, "e", 9999, entity.PurchaseStatusCancelled, at),
	}

	items := RankItems(records, 0)
	require.Len(t, items, 4)
	ids := []string{items[0].ContentID, items[1].ContentID, items[2].ContentID, items[3].ContentID}
	// c has the most revenue; a beats b and d on count; b beats d on id.
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
	assert.Equal(t, 1, items[0].Rank)
	assert.Equal(t, 2, items[1].Purchases)
	assert.Equal(t, 1000, items[1].Revenue)

	top := RankItems(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[1].ContentID)
}

func TestBreakdown(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindVideo, "v1", 1000, entity.PurchaseStatusActive, at),
		rec(entity.KindCourse, "c1", 5000, entity.PurchaseStatusActive, at),
		rec(entity.KindPrompt, "p1", 300, entity.PurchaseStatusCancelled, at),
	}

	assert.Equal(t, []KindTotal{
		{Category: "video", Purchases: 1, Revenue: 1000},
		{Category: "course", Purchases: 1, Revenue: 5000},
		{Category: "prompt", Purchases: 1, Revenue: 300},
		{Category: "all", Purchases: 3, Revenue: 6300},
	}, Breakdown(records))
}

func TestDailySeries_FillsEmptyDays(t *testing.T) {
	now := time.Date(2026, 3, 3, 18, 0, 0, 0, jst)
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindVideo, "v1", 1000, entity.PurchaseStatusActive, time.Date(2026, 3, 1, 10, 0, 0, 0, jst)),
		rec(entity.KindVideo, "v1", 400, entity.PurchaseStatusActive, time.Date(2026, 3, 3, 9, 0, 0, 0, jst)),
		rec(entity.KindVideo, "v1", 800, entity.PurchaseStatusCancelled, time.Date(2026, 3, 3, 9, 0, 0, 0, jst)),
	}

	points := DailySeries(records, since, now)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-03-01", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, 1000, points[0].Revenue)
	assert.Equal(t, 0, points[1].Purchases)
	assert.Equal(t, 400, points[2].Revenue)
	assert.Equal(t, 1, points[2].Purchases)
}

func TestDailySeries_UnboundedStartsAtFirstSale(t *testing.T) {
	now := time.Date(2026, 3, 3, 18, 0, 0, 0, jst)
	records := []entity.PurchaseRecord{
		rec(entity.KindPrompt, "p1", 100, entity.PurchaseStatusActive, time.Date(2026, 3, 2, 10, 0, 0, 0, jst)),
	}

	assert.Len(t, DailySeries(records, time.Time{}, now), 2)
	assert.Len(t, DailySeries(nil, time.Time{}, now), 1)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "(不明な動画)", FallbackTitle(entity.KindVideo))
	assert.Equal(t, "(不明なコース)", FallbackTitle(entity.KindCourse))
	assert.Equal(t, "(不明なプロンプト)", FallbackTitle(entity.KindPrompt))
}
