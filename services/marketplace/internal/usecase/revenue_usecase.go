package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"

	"golang.org/x/sync/errgroup"
)

const (
	CategoryAll = "all"

	defaultRangeDays    = 30
	maxRangeDays        = 3650
	defaultRankingLimit = 10
	maxRankingLimit     = 100
	summaryRankingLimit = 5
)

var rangePattern = regexp.MustCompile(`^([0-9]+)d$`)

// ExportParams are the validated query parameters shared by the CSV exports.
type ExportParams struct {
	Category string
	Kinds    []entity.ContentKind
	// Since is nil for an unbounded range.
	Since *time.Time
	Limit int
}

// ParseExportParams validates category, range and limit. Empty values take defaults:
// all categories, 30 days, 10 rows.
func ParseExportParams(category, rangeParam, limitParam string, now time.Time) (ExportParams, error) {
	params := ExportParams{Category: CategoryAll, Kinds: entity.AllKinds, Limit: defaultRankingLimit}

	if category != "" && category != CategoryAll {
		kind := entity.ContentKind(category)
		if !kind.Valid() {
			return params, fmt.Errorf("category %q: %w", category, entity.ErrInvalidInput)
		}
		params.Category = category
		params.Kinds = []entity.ContentKind{kind}
	}

	switch rangeParam {
	case CategoryAll:
	case "":
		since := rangeStart(now, defaultRangeDays)
		params.Since = &since
	default:
		m := rangePattern.FindStringSubmatch(rangeParam)
		if m == nil {
			return params, fmt.Errorf("range %q: %w", rangeParam, entity.ErrInvalidInput)
		}
		days, err := strconv.Atoi(m[1])
		if err != nil || days < 1 || days > maxRangeDays {
			return params, fmt.Errorf("range %q: %w", rangeParam, entity.ErrInvalidInput)
		}
		since := rangeStart(now, days)
		params.Since = &since
	}

	if limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 || limit > maxRankingLimit {
			return params, fmt.Errorf("limit %q: %w", limitParam, entity.ErrInvalidInput)
		}
		params.Limit = limit
	}
	return params, nil
}

// rangeStart is midnight of the first day of an n-day window ending today.
func rangeStart(now time.Time, days int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

type RevenueSummary struct {
	TotalRevenue   int          `json:"total_revenue"`
	MonthlyRevenue int          `json:"monthly_revenue"`
	Breakdown      []KindTotal  `json:"breakdown"`
	TopVideos      []RankedItem `json:"top_videos"`
	TopCourses     []RankedItem `json:"top_courses"`
	TopPrompts     []RankedItem `json:"top_prompts"`
}

type RevenueUseCase interface {
	Summary(ctx context.Context) (*RevenueSummary, error)
	ExportRevenue(ctx context.Context, w io.Writer, params ExportParams) error
	ExportBreakdown(ctx context.Context, w io.Writer, params ExportParams) error
	ExportRanking(ctx context.Context, w io.Writer, params ExportParams) error
	Now() time.Time
}

type revenueUseCase struct {
	purchaseRepo persistent.PurchaseRepository
	location     *time.Location
	logger       *logger.Logger
	now          func() time.Time
}

func NewRevenueUseCase(purchaseRepo persistent.PurchaseRepository, location *time.Location, logger *logger.Logger) RevenueUseCase {
	if location == nil {
		location = time.Local
	}
	return &revenueUseCase{
		purchaseRepo: purchaseRepo,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

// Now is the reporting clock in the configured location.
func (uc *revenueUseCase) Now() time.Time {
	return uc.now().In(uc.location)
}

func (uc *revenueUseCase) Summary(ctx context.Context) (*RevenueSummary, error) {
	records, err := uc.load(ctx, entity.AllKinds, nil)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{
		TotalRevenue:   TotalRevenue(records),
		MonthlyRevenue: MonthlyRevenue(records, uc.Now()),
		Breakdown:      Breakdown(records),
	}

	byKind := splitByKind(records)
	tops := make(map[entity.ContentKind][]RankedItem, len(entity.AllKinds))
	for _, kind := range entity.AllKinds {
		items, err := uc.withTitles(ctx, RankItems(byKind[kind], summaryRankingLimit))
		if err != nil {
			return nil, err
		}
		tops[kind] = items
	}
	summary.TopVideos = tops[entity.KindVideo]
	summary.TopCourses = tops[entity.KindCourse]
	summary.TopPrompts = tops[entity.KindPrompt]
	return summary, nil
}

func (uc *revenueUseCase) ExportRevenue(ctx context.Context, w io.Writer, params ExportParams) error {
	records, err := uc.load(ctx, params.Kinds, params.Since)
	if err != nil {
		return err
	}

	var since time.Time
	if params.Since != nil {
		since = *params.Since
	}
	points := DailySeries(records, since, uc.Now())

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "category", "purchases", "revenue"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{p.Date.Format(dateLayout), params.Category, strconv.Itoa(p.Purchases), strconv.Itoa(p.Revenue)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (uc *revenueUseCase) ExportBreakdown(ctx context.Context, w io.Writer, params ExportParams) error {
	records, err := uc.load(ctx, params.Kinds, params.Since)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "purchases", "revenue"}); err != nil {
		return err
	}
	for _, t := range Breakdown(records) {
		if params.Category != CategoryAll && t.Category != params.Category && t.Category != CategoryAll {
			continue
		}
		if err := cw.Write([]string{t.Category, strconv.Itoa(t.Purchases), strconv.Itoa(t.Revenue)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (uc *revenueUseCase) ExportRanking(ctx context.Context, w io.Writer, params ExportParams) error {
	records, err := uc.load(ctx, params.Kinds, params.Since)
	if err != nil {
		return err
	}
	items, err := uc.withTitles(ctx, RankItems(records, params.Limit))
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "category", "content_id", "title", "purchases", "revenue"}); err != nil {
		return err
	}
	for _, item := range items {
		row := []string{
			strconv.Itoa(item.Rank),
			string(item.Kind),
			item.ContentID,
			spreadsheetSafe(item.Title),
			strconv.Itoa(item.Purchases),
			strconv.Itoa(item.Revenue),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// spreadsheetSafe keeps a cell from being read as a formula when the export is
// opened in a spreadsheet.
func spreadsheetSafe(cell string) string {
	if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}

// load reads the purchase tables for the given kinds concurrently.
func (uc *revenueUseCase) load(ctx context.Context, kinds []entity.ContentKind, since *time.Time) ([]entity.PurchaseRecord, error) {
	results := make([][]entity.PurchaseRecord, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			records, err := uc.purchaseRepo.ListRecords(gctx, kind, since)
			if err != nil {
				return fmt.Errorf("load %s purchases: %w", kind, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to load revenue records: %v", err)
		return nil, err
	}

	var all []entity.PurchaseRecord
	for _, records := range results {
		all = append(all, records...)
	}
	return all, nil
}

// withTitles fills titles, substituting the fallback label for deleted content.
func (uc *revenueUseCase) withTitles(ctx context.Context, items []RankedItem) ([]RankedItem, error) {
	ids := make(map[entity.ContentKind][]string)
	for _, item := range items {
		ids[item.Kind] = append(ids[item.Kind], item.ContentID)
	}
	titles := make(map[entity.ContentKind]map[string]string, len(ids))
	for kind, kindIDs := range ids {
		t, err := uc.purchaseRepo.Titles(ctx, kind, kindIDs)
		if err != nil {
			return nil, fmt.Errorf("load %s titles: %w", kind, err)
		}
		titles[kind] = t
	}
	for i := range items {
		if title, ok := titles[items[i].Kind][items[i].ContentID]; ok {
			items[i].Title = title
		} else {
			items[i].Title = FallbackTitle(items[i].Kind)
		}
	}
	return items, nil
}

func splitByKind(records []entity.PurchaseRecord) map[entity.ContentKind][]entity.PurchaseRecord {
	out := make(map[entity.ContentKind][]entity.PurchaseRecord, len(entity.AllKinds))
	for _, rec := range records {
		out[rec.Kind] = append(out[rec.Kind], rec)
	}
	return out
}
