package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ActionLoginToPurchase = "login_to_purchase"
	ActionPurchase        = "purchase"

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ObjectStore holds prompt attachments. *s3.Client implements it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) error
	PresignGet(key string, ttl time.Duration) (string, error)
}

type Paywall struct {
	Price      int    `json:"price"`
	PriceLabel string `json:"price_label"`
	Action     string `json:"action"`
}

type VideoPage struct {
	Video         *entity.Video `json:"video"`
	CanWatch      bool          `json:"can_watch"`
	Paywall       *Paywall      `json:"paywall,omitempty"`
	ResumeSeconds *int          `json:"resume_seconds,omitempty"`
}

type CoursePage struct {
	Course    *entity.Course   `json:"course"`
	Videos    []*entity.Video  `json:"videos"`
	Prompts   []*entity.Prompt `json:"prompts"`
	CanAccess bool             `json:"can_access"`
	Paywall   *Paywall         `json:"paywall,omitempty"`
}

type PromptPage struct {
	Prompt         *entity.Prompt `json:"prompt"`
	Unlocked       bool           `json:"unlocked"`
	AttachmentURLs []string       `json:"attachment_urls,omitempty"`
	Paywall        *Paywall       `json:"paywall,omitempty"`
}

type CatalogOptions struct {
	ViewCountRequiresAccess bool
	PresignTTL              time.Duration
}

type CatalogUseCase interface {
	GetVideo(ctx context.Context, videoID string) (*entity.Video, error)
	GetVideoPage(ctx context.Context, viewer *entity.Viewer, videoID string) (*VideoPage, error)
	GetCoursePage(ctx context.Context, viewer *entity.Viewer, courseID string) (*CoursePage, error)
	GetPromptPage(ctx context.Context, viewer *entity.Viewer, promptID string) (*PromptPage, error)
	ListVideos(ctx context.Context, filter entity.ContentFilter) ([]*entity.Video, error)
	ListCourses(ctx context.Context, filter entity.ContentFilter) ([]*entity.Course, error)
	ListPrompts(ctx context.Context, filter entity.ContentFilter) ([]*entity.Prompt, error)

	CreateVideo(ctx context.Context, video *entity.Video) error
	UpdateVideo(ctx context.Context, video *entity.Video) error
	DeleteVideo(ctx context.Context, id string) error
	CreateCourse(ctx context.Context, course *entity.Course) error
	UpdateCourse(ctx context.Context, course *entity.Course) error
	DeleteCourse(ctx context.Context, id string) error
	ReplaceCourseContents(ctx context.Context, courseID string, videoIDs, promptIDs []string) error
	CreatePrompt(ctx context.Context, prompt *entity.Prompt) error
	UpdatePrompt(ctx context.Context, prompt *entity.Prompt) error
	DeletePrompt(ctx context.Context, id string) error
	UploadPromptAttachment(ctx context.Context, promptID, filename, contentType string, body io.ReadSeeker) (string, error)
}

type catalogUseCase struct {
	videoRepo   persistent.VideoRepository
	courseRepo  persistent.CourseRepository
	promptRepo  persistent.PromptRepository
	entitlement EntitlementUseCase
	progress    ProgressUseCase
	store       ObjectStore
	options     CatalogOptions
	logger      *logger.Logger
}

func NewCatalogUseCase(
	videoRepo persistent.VideoRepository,
	courseRepo persistent.CourseRepository,
	promptRepo persistent.PromptRepository,
	entitlement EntitlementUseCase,
	progress ProgressUseCase,
	store ObjectStore,
	options CatalogOptions,
	logger *logger.Logger,
) CatalogUseCase {
	if options.PresignTTL <= 0 {
		options.PresignTTL = 15 * time.Minute
	}
	return &catalogUseCase{
		videoRepo:   videoRepo,
		courseRepo:  courseRepo,
		promptRepo:  promptRepo,
		entitlement: entitlement,
		progress:    progress,
		store:       store,
		options:     options,
		logger:      logger,
	}
}

var yenPrinter = message.NewPrinter(language.Japanese)

// FormatYen renders a whole-yen price with digit grouping, e.g. ¥1,000.
func FormatYen(price int) string {
	return yenPrinter.Sprintf("¥%d", price)
}

func newPaywall(viewer *entity.Viewer, price int) *Paywall {
	action := ActionPurchase
	if viewer.Anonymous() {
		action = ActionLoginToPurchase
	}
	return &Paywall{Price: price, PriceLabel: FormatYen(price), Action: action}
}

// GetVideo returns a published video without touching its counters.
func (uc *catalogUseCase) GetVideo(ctx context.Context, videoID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished {
		return nil, fmt.Errorf("video %s: %w", videoID, entity.ErrNotFound)
	}
	return video, nil
}

func (uc *catalogUseCase) GetVideoPage(ctx context.Context, viewer *entity.Viewer, videoID string) (*VideoPage, error) {
	video, err := uc.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	canWatch, err := uc.entitlement.CanWatchVideo(ctx, viewer, video)
	if err != nil {
		uc.logger.Error("Entitlement check failed for video %s: %v", videoID, err)
		canWatch = false
	}

	if canWatch || !uc.options.ViewCountRequiresAccess {
		if err := uc.videoRepo.IncrementViewCount(ctx, videoID); err != nil {
			uc.logger.Warn("Failed to increment view count for video %s: %v", videoID, err)
		} else {
			video.ViewCount++
		}
	}

	page := &VideoPage{Video: video, CanWatch: canWatch}
	if !canWatch {
		page.Paywall = newPaywall(viewer, video.Price)
	}
	if !viewer.Anonymous() && uc.progress != nil {
		info, err := uc.progress.ResumePosition(ctx, viewer.UserID, video, 0)
		if err != nil {
			uc.logger.Warn("Failed to load resume position for video %s: %v", videoID, err)
		} else {
			page.ResumeSeconds = &info.Position
		}
	}
	return page, nil
}

func (uc *catalogUseCase) GetCoursePage(ctx context.Context, viewer *entity.Viewer, courseID string) (*CoursePage, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, fmt.Errorf("course %s: %w", courseID, entity.ErrNotFound)
	}

	videoItems, err := uc.courseRepo.GetVideoItems(ctx, courseID)
	if err != nil {
		return nil, err
	}
	promptItems, err := uc.courseRepo.GetPromptItems(ctx, courseID)
	if err != nil {
		return nil, err
	}

	videos, err := uc.videoRepo.GetByIDs(ctx, contentIDs(videoItems))
	if err != nil {
		return nil, err
	}
	prompts, err := uc.promptRepo.GetByIDs(ctx, contentIDs(promptItems))
	if err != nil {
		return nil, err
	}

	page := &CoursePage{Course: course, Videos: []*entity.Video{}, Prompts: []*entity.Prompt{}}
	for _, item := range videoItems {
		if v, ok := videos[item.ContentID]; ok && v.IsPublished {
			page.Videos = append(page.Videos, v)
		}
	}
	for _, item := range promptItems {
		if p, ok := prompts[item.ContentID]; ok && p.IsPublished {
			page.Prompts = append(page.Prompts, p.Redacted())
		}
	}

	page.CanAccess, err = uc.entitlement.CanAccessCourse(ctx, viewer, course)
	if err != nil {
		uc.logger.Error("Entitlement check failed for course %s: %v", courseID, err)
		page.CanAccess = false
	}
	if !page.CanAccess {
		page.Paywall = newPaywall(viewer, course.Price)
	}
	return page, nil
}

// GetPromptPage reveals prompt_text and attachments only to purchasers.
func (uc *catalogUseCase) GetPromptPage(ctx context.Context, viewer *entity.Viewer, promptID string) (*PromptPage, error) {
	prompt, err := uc.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if !prompt.IsPublished {
		return nil, fmt.Errorf("prompt %s: %w", promptID, entity.ErrNotFound)
	}

	unlocked, err := uc.entitlement.CanViewPrompt(ctx, viewer, prompt)
	if err != nil {
		uc.logger.Error("Entitlement check failed for prompt %s: %v", promptID, err)
		unlocked = false
	}

	if !unlocked {
		return &PromptPage{
			Prompt:  prompt.Redacted(),
			Paywall: newPaywall(viewer, prompt.Price),
		}, nil
	}

	page := &PromptPage{Prompt: prompt, Unlocked: true}
	if uc.store != nil {
		for _, key := range prompt.Attachments {
			url, err := uc.store.PresignGet(key, uc.options.PresignTTL)
			if err != nil {
				uc.logger.Warn("Failed to presign attachment %s: %v", key, err)
				continue
			}
			page.AttachmentURLs = append(page.AttachmentURLs, url)
		}
	}
	return page, nil
}

func (uc *catalogUseCase) ListVideos(ctx context.Context, filter entity.ContentFilter) ([]*entity.Video, error) {
	return uc.videoRepo.List(ctx, normalizeFilter(filter), true)
}

func (uc *catalogUseCase) ListCourses(ctx context.Context, filter entity.ContentFilter) ([]*entity.Course, error) {
	return uc.courseRepo.List(ctx, normalizeFilter(filter), true)
}

// ListPrompts never includes the gated fields.
func (uc *catalogUseCase) ListPrompts(ctx context.Context, filter entity.ContentFilter) ([]*entity.Prompt, error) {
	if filter.Category != "" && !entity.PromptCategory(filter.Category).Valid() {
		return nil, fmt.Errorf("category %q: %w", filter.Category, entity.ErrInvalidInput)
	}
	prompts, err := uc.promptRepo.List(ctx, normalizeFilter(filter), true)
	if err != nil {
		return nil, err
	}
	for i := range prompts {
		prompts[i] = prompts[i].Redacted()
	}
	return prompts, nil
}

func (uc *catalogUseCase) CreateVideo(ctx context.Context, video *entity.Video) error {
	if err := validateVideo(video); err != nil {
		return err
	}
	if err := uc.videoRepo.Create(ctx, video); err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (uc *catalogUseCase) UpdateVideo(ctx context.Context, video *entity.Video) error {
	if err := validateVideo(video); err != nil {
		return err
	}
	return uc.videoRepo.Update(ctx, video)
}

func (uc *catalogUseCase) DeleteVideo(ctx context.Context, id string) error {
	return uc.videoRepo.Delete(ctx, id)
}

func (uc *catalogUseCase) CreateCourse(ctx context.Context, course *entity.Course) error {
	if err := validateCourse(course); err != nil {
		return err
	}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (uc *catalogUseCase) UpdateCourse(ctx context.Context, course *entity.Course) error {
	if err := validateCourse(course); err != nil {
		return err
	}
	return uc.courseRepo.Update(ctx, course)
}

func (uc *catalogUseCase) DeleteCourse(ctx context.Context, id string) error {
	return uc.courseRepo.Delete(ctx, id)
}

// ReplaceCourseContents swaps a course's videos and prompts in one transaction, keeping
// the caller's order.
func (uc *catalogUseCase) ReplaceCourseContents(ctx context.Context, courseID string, videoIDs, promptIDs []string) error {
	if err := checkIDs("video", videoIDs); err != nil {
		return err
	}
	if err := checkIDs("prompt", promptIDs); err != nil {
		return err
	}
	videos, err := uc.videoRepo.GetByIDs(ctx, videoIDs)
	if err != nil {
		return err
	}
	if missing := firstMissing(videoIDs, videos); missing != "" {
		return fmt.Errorf("video %s does not exist: %w", missing, entity.ErrInvalidInput)
	}
	prompts, err := uc.promptRepo.GetByIDs(ctx, promptIDs)
	if err != nil {
		return err
	}
	if missing := firstMissing(promptIDs, prompts); missing != "" {
		return fmt.Errorf("prompt %s does not exist: %w", missing, entity.ErrInvalidInput)
	}
	if err := uc.courseRepo.ReplaceContents(ctx, courseID, videoIDs, promptIDs); err != nil {
		uc.logger.Error("Failed to replace contents of course %s: %v", courseID, err)
		return err
	}
	uc.logger.Info("Replaced contents of course %s: %d videos, %d prompts", courseID, len(videoIDs), len(promptIDs))
	return nil
}

func (uc *catalogUseCase) CreatePrompt(ctx context.Context, prompt *entity.Prompt) error {
	if err := validatePrompt(prompt); err != nil {
		return err
	}
	if err := uc.promptRepo.Create(ctx, prompt); err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	return nil
}

func (uc *catalogUseCase) UpdatePrompt(ctx context.Context, prompt *entity.Prompt) error {
	if err := validatePrompt(prompt); err != nil {
		return err
	}
	return uc.promptRepo.Update(ctx, prompt)
}

func (uc *catalogUseCase) DeletePrompt(ctx context.Context, id string) error {
	return uc.promptRepo.Delete(ctx, id)
}

// UploadPromptAttachment stores the file under prompts/<id>/ and records its key.
func (uc *catalogUseCase) UploadPromptAttachment(ctx context.Context, promptID, filename, contentType string, body io.ReadSeeker) (string, error) {
	if uc.store == nil {
		return "", fmt.Errorf("attachment storage is not configured")
	}
	if _, err := uc.promptRepo.GetByID(ctx, promptID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("prompts/%s/%s%s", promptID, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := uc.store.Upload(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}
	if err := uc.promptRepo.AppendAttachment(ctx, promptID, key); err != nil {
		return "", fmt.Errorf("failed to record attachment: %w", err)
	}
	return key, nil
}

func validateVideo(video *entity.Video) error {
	if strings.TrimSpace(video.Title) == "" {
		return fmt.Errorf("title is required: %w", entity.ErrInvalidInput)
	}
	if video.Price < 0 {
		return entity.ErrInvalidAmount
	}
	return nil
}

func validateCourse(course *entity.Course) error {
	if strings.TrimSpace(course.Title) == "" {
		return fmt.Errorf("title is required: %w", entity.ErrInvalidInput)
	}
	if course.Price < 0 {
		return entity.ErrInvalidAmount
	}
	return nil
}

func validatePrompt(prompt *entity.Prompt) error {
	if strings.TrimSpace(prompt.Title) == "" {
		return fmt.Errorf("title is required: %w", entity.ErrInvalidInput)
	}
	if !prompt.Category.Valid() {
		return fmt.Errorf("category %q: %w", prompt.Category, entity.ErrInvalidInput)
	}
	if prompt.Price < 0 {
		return entity.ErrInvalidAmount
	}
	return nil
}

func normalizeFilter(filter entity.ContentFilter) entity.ContentFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

func contentIDs(items []*entity.CourseItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ContentID
	}
	return ids
}

func checkIDs(kind string, ids []string) error {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%s id %q is not a valid id: %w", kind, id, entity.ErrInvalidInput)
		}
	}
	return nil
}

func firstMissing[T any](ids []string, found map[string]T) string {
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return id
		}
	}
	return ""
}
