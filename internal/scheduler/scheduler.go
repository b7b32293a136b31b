package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/config"
	"property-portal/internal/models"
	"property-portal/internal/search"
)

// Scheduler handles scheduled background tasks
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	search    *search.SearchClient
	config    *config.Config
	log       *zap.Logger
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(db *gorm.DB, sc *search.SearchClient, cfg *config.Config, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		db:     db,
		search: sc,
		config: cfg,
		log:    log,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if s.config.Scheduler.KeepAliveEnabled {
		cronSpec := s.parseDailyRunTime(s.config.Scheduler.KeepAliveTime)
		_, err := s.cron.AddFunc(cronSpec, func() {
			if _, err := s.RunKeepAlive(); err != nil {
				s.log.Error("keep-alive ping failed", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}
		s.log.Info("keep-alive job scheduled",
			zap.String("time", s.config.Scheduler.KeepAliveTime),
			zap.String("cron", cronSpec))
	}

	if s.config.Scheduler.ReindexEnabled && s.search != nil {
		cronSpec := s.parseDailyRunTime(s.config.Scheduler.ReindexTime)
		_, err := s.cron.AddFunc(cronSpec, func() {
			if err := s.RunReindex(); err != nil {
				s.log.Error("vacancy reindex failed", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}
		s.log.Info("reindex job scheduled",
			zap.String("time", s.config.Scheduler.ReindexTime),
			zap.String("cron", cronSpec))
	}

	s.cron.Start()
	s.isRunning = true
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		s.log.Info("scheduler stopped")
	}
}

// KeepAliveResult is the outcome of a database keep-alive ping
type KeepAliveResult struct {
	OK         bool      `json:"ok"`
	Properties int64     `json:"properties"`
	Timestamp  time.Time `json:"timestamp"`
}

// RunKeepAlive touches the database so a managed instance is not paused
// for inactivity. It runs a cheap count query and reports the result.
func (s *Scheduler) RunKeepAlive() (*KeepAliveResult, error) {
	var count int64
	if err := s.db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("keep-alive query failed: %w", err)
	}

	result := &KeepAliveResult{OK: true, Properties: count, Timestamp: time.Now()}
	s.log.Info("keep-alive ping succeeded", zap.Int64("properties", count))
	return result, nil
}

// RunReindex rebuilds the vacancy search index from the database
func (s *Scheduler) RunReindex() error {
	if s.search == nil {
		return nil
	}

	var rooms []models.Room
	err := s.db.Preload("Property").
		Where("status = ?", models.RoomStatusVacant).
		Find(&rooms).Error
	if err != nil {
		return fmt.Errorf("failed to load vacant rooms: %w", err)
	}

	listings := make([]search.Listing, 0, len(rooms))
	for i := range rooms {
		listings = append(listings, search.NewListing(&rooms[i], rooms[i].Property))
	}

	if err := s.search.ClearIndex(); err != nil {
		return fmt.Errorf("failed to clear vacancy index: %w", err)
	}
	if len(listings) > 0 {
		if err := s.search.IndexListings(listings); err != nil {
			return fmt.Errorf("failed to index vacant rooms: %w", err)
		}
	}

	s.log.Info("vacancy index rebuilt", zap.Int("listings", len(listings)))
	return nil
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	s.log.Warn("failed to parse run time, using default 02:00", zap.String("value", timeStr))
	return "0 2 * * *"
}
