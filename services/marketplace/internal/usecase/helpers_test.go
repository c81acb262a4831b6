package usecase

import (
	"fmt"
	"testing"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/model"
	"lesson-market/services/marketplace/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// marketplace wires the real repositories over one database.
type marketplace struct {
	db          *gorm.DB
	videos      persistent.VideoRepository
	courses     persistent.CourseRepository
	prompts     persistent.PromptRepository
	purchases   persistent.PurchaseRepository
	profiles    persistent.ProfileRepository
	history     persistent.ViewHistoryRepository
	entitlement EntitlementUseCase
	log         *logger.Logger
}

func newMarketplace(t *testing.T) *marketplace {
	t.Helper()
	db := newTestDB(t)
	m := &marketplace{
		db:        db,
		videos:    persistent.NewVideoRepository(db),
		courses:   persistent.NewCourseRepository(db),
		prompts:   persistent.NewPromptRepository(db),
		purchases: persistent.NewPurchaseRepository(db),
		profiles:  persistent.NewProfileRepository(db),
		history:   persistent.NewViewHistoryRepository(db, false),
		log:       logger.New(),
	}
	m.entitlement = NewEntitlementUseCase(m.purchases, m.profiles)
	return m
}

func (m *marketplace) purchaseUseCase(publisher PurchasePublisher) PurchaseUseCase {
	return NewPurchaseUseCase(m.videos, m.courses, m.prompts, m.purchases, publisher, m.log)
}

func (m *marketplace) catalogUseCase(store ObjectStore, options CatalogOptions) CatalogUseCase {
	progress := NewProgressUseCase(m.history, alwaysAllow{}, nil, m.log)
	return NewCatalogUseCase(m.videos, m.courses, m.prompts, m.entitlement, progress, store, options, m.log)
}
