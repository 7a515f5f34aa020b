package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"substation-inspection-backend/internal/model"
)

// recentLimit caps the dashboard's recent-rows window.
const recentLimit = 100

// DashboardStats is the aggregate view served to the dashboard.
type DashboardStats struct {
	Total            int64                 `json:"total"`
	TotalSubmissions int64                 `json:"totalSubmissions"`
	Recent           []model.InspectionLog `json:"recent"`
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	InsertLog(ctx context.Context, rec *model.InspectionLog) error
	DashboardStats(ctx context.Context, month, year int) (*DashboardStats, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

// InsertLog appends one inspection log row.
func (s *gormStore) InsertLog(ctx context.Context, rec *model.InspectionLog) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Status == "" {
		rec.Status = "completed"
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert inspection log: %w", err)
	}
	return nil
}

// DashboardStats returns the distinct-substation count, the raw
// submission count and the most recent rows, optionally windowed to a
// month and/or year. With no filter the unfiltered latest window comes
// back.
func (s *gormStore) DashboardStats(ctx context.Context, month, year int) (*DashboardStats, error) {
	base := s.db.WithContext(ctx).Model(&model.InspectionLog{})

	if month >= 1 && month <= 12 && year > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		base = base.Where("timestamp >= ? AND timestamp < ?", start, end)
	} else if year > 0 {
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(1, 0, 0)
		base = base.Where("timestamp >= ? AND timestamp < ?", start, end)
	}

	stats := &DashboardStats{Recent: []model.InspectionLog{}}

	if err := base.Session(&gorm.Session{}).Distinct("substation_name").Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count distinct substations: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalSubmissions).Error; err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	if err := base.Session(&gorm.Session{}).
		Order("timestamp DESC").
		Limit(recentLimit).
		Find(&stats.Recent).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent logs: %w", err)
	}

	return stats, nil
}
