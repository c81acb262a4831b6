package usecase

import (
	"sort"
	"time"

	"lesson-market/services/marketplace/internal/entity"
)

const (
	UnknownVideoLabel  = "(不明な動画)"
	UnknownCourseLabel = "(不明なコース)"
	UnknownPromptLabel = "(不明なプロンプト)"
)

// FallbackTitle labels content that was deleted after it was sold.
func FallbackTitle(kind entity.ContentKind) string {
	switch kind {
	case entity.KindVideo:
		return UnknownVideoLabel
	case entity.KindCourse:
		return UnknownCourseLabel
	default:
		return UnknownPromptLabel
	}
}

// Counts decides whether a row contributes to revenue. Video and course rows must be
// active; prompt rows count in any status.
func Counts(rec entity.PurchaseRecord) bool {
	if rec.Kind == entity.KindPrompt {
		return true
	}
	return rec.Status == entity.PurchaseStatusActive
}

func TotalRevenue(records []entity.PurchaseRecord) int {
	total := 0
	for _, rec := range records {
		if Counts(rec) {
			total += rec.Amount
		}
	}
	return total
}

// MonthStart is midnight on the first day of now's month in now's location.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func MonthlyRevenue(records []entity.PurchaseRecord, now time.Time) int {
	start := MonthStart(now)
	total := 0
	for _, rec := range records {
		if Counts(rec) && !rec.CreatedAt.Before(start) {
			total += rec.Amount
		}
	}
	return total
}

type KindTotal struct {
	Category  string `json:"category"`
	Purchases int    `json:"purchases"`
	Revenue   int    `json:"revenue"`
}

// Breakdown returns one row per kind in reporting order followed by an "all" row.
func Breakdown(records []entity.PurchaseRecord) []KindTotal {
	byKind := make(map[entity.ContentKind]*KindTotal, len(entity.AllKinds))
	out := make([]KindTotal, 0, len(entity.AllKinds)+1)
	for _, kind := range entity.AllKinds {
		byKind[kind] = &KindTotal{Category: string(kind)}
	}
	all := KindTotal{Category: CategoryAll}
	for _, rec := range records {
		if !Counts(rec) {
			continue
		}
		if t, ok := byKind[rec.Kind]; ok {
			t.Purchases++
			t.Revenue += rec.Amount
		}
		all.Purchases++
		all.Revenue += rec.Amount
	}
	for _, kind := range entity.AllKinds {
		out = append(out, *byKind[kind])
	}
	return append(out, all)
}

type RankedItem struct {
	Rank      int                `json:"rank"`
	Kind      entity.ContentKind `json:"category"`
	ContentID string             `json:"content_id"`
	Title     string             `json:"title"`
	Purchases int                `json:"purchases"`
	Revenue   int                `json:"revenue"`
}

// RankItems groups counted rows by content and orders them by revenue, then purchase
// count, then id. A limit of zero or less keeps every item.
func RankItems(records []entity.PurchaseRecord, limit int) []RankedItem {
	type key struct {
		kind entity.ContentKind
		id   string
	}
	groups := make(map[key]*RankedItem)
	for _, rec := range records {
		if !Counts(rec) {
			continue
		}
		k := key{rec.Kind, rec.ContentID}
		item, ok := groups[k]
		if !ok {
			item = &RankedItem{Kind: rec.Kind, ContentID: rec.ContentID}
			groups[k] = item
		}
		item.Purchases++
		item.Revenue += rec.Amount
	}

	items := make([]RankedItem, 0, len(groups))
	for _, item := range groups {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		if a.Purchases != b.Purchases {
			return a.Purchases > b.Purchases
		}
		if a.ContentID != b.ContentID {
			return a.ContentID < b.ContentID
		}
		return a.Kind < b.Kind
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for i := range items {
		items[i].Rank = i + 1
	}
	return items
}

type DailyPoint struct {
	Date      time.Time
	Purchases int
	Revenue   int
}

// DailySeries buckets counted rows by calendar day in now's location, emitting every
// day from since through now even when it has no sales. A zero since starts at the
// earliest row, or today when there are none.
func DailySeries(records []entity.PurchaseRecord, since, now time.Time) []DailyPoint {
	loc := now.Location()
	day := func(t time.Time) time.Time {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	last := day(now)
	first := last
	if !since.IsZero() {
		first = day(since)
	} else {
		for _, rec := range records {
			if Counts(rec) && day(rec.CreatedAt).Before(first) {
				first = day(rec.CreatedAt)
			}
		}
	}

	type bucket struct{ purchases, revenue int }
	buckets := make(map[string]*bucket)
	for _, rec := range records {
		if !Counts(rec) {
			continue
		}
		d := day(rec.CreatedAt)
		if d.Before(first) || d.After(last) {
			continue
		}
		k := d.Format(dateLayout)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		b.purchases++
		b.revenue += rec.Amount
	}

	var points []DailyPoint
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		p := DailyPoint{Date: d}
		if b, ok := buckets[d.Format(dateLayout)]; ok {
			p.Purchases = b.purchases
			p.Revenue = b.revenue
		}
		points = append(points, p)
	}
	return points
}

const dateLayout = "2006-01-02"
