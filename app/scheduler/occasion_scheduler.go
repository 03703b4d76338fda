// Package scheduler
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rapportlabs/kizuna/app/services"
	businessflow "github.com/rapportlabs/kizuna/business_flow"
	"github.com/rapportlabs/kizuna/repository"
	"github.com/rapportlabs/kizuna/utils"
)

const schedulerPageSize = 500

// enqueuedKeyTTL keeps the dedup marker alive well past the occurrence so a
// restart within the same day cannot re-send
const enqueuedKeyTTL = 48 * time.Hour

// OccasionScheduler periodically scans important dates and hands due
// occasions to the notification service. A redis marker per (date, day)
// makes the hand-off idempotent across ticks and restarts.
type OccasionScheduler struct {
	dateRepo    repository.ImportantDateRepository
	notifier    services.NotificationService
	redisClient *redis.Client
	logger      *log.Logger
	interval    time.Duration
	lookahead   time.Duration
}

func NewOccasionScheduler(
	dateRepo repository.ImportantDateRepository,
	notifier services.NotificationService,
	redisClient *redis.Client,
	interval time.Duration,
	lookahead time.Duration,
) *OccasionScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if lookahead <= 0 {
		lookahead = utils.DefaultLookaheadWindow
	}

	s := &OccasionScheduler{
		dateRepo:    dateRepo,
		notifier:    notifier,
		redisClient: redisClient,
		interval:    interval,
		lookahead:   lookahead,
	}

	if err := s.initSchedulerLogger(); err != nil {
		s.logger = log.Default()
		s.logger.Printf("scheduler: failed to initialize file logger: %v", err)
	}

	return s
}

// initSchedulerLogger configures a logger that writes to both stdout and a rotating file under data/ (or /data)
func (s *OccasionScheduler) initSchedulerLogger() error {
	candidates := []string{
		filepath.Join("data"),
		"/data",
	}
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "scheduler.log"),
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		mw := io.MultiWriter(os.Stdout, rotator)
		s.logger = log.New(mw, "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
		return nil
	}
	return fmt.Errorf("could not create scheduler log file in any candidate directory")
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *OccasionScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *OccasionScheduler) runOnce(ctx context.Context) {
	now := utils.UTCNow()

	var due []businessflow.DueDate
	for offset := 0; ; offset += schedulerPageSize {
		page, err := s.dateRepo.ListSchedulable(ctx, schedulerPageSize, offset)
		if err != nil {
			s.logger.Printf("scheduler: list schedulable dates failed: %v", err)
			return
		}
		due = append(due, businessflow.DueDates(page, now, s.lookahead)...)
		if len(page) < schedulerPageSize {
			break
		}
	}
	if len(due) == 0 {
		return
	}
	s.logger.Printf("scheduler: %d occasions due within %s", len(due), s.lookahead)

	for _, d := range due {
		if err := s.processOccasion(ctx, d); err != nil {
			s.logger.Printf("scheduler: process occasion id=%d failed: %v", d.Record.ID, err)
		}
	}
}

// enqueuedKey identifies one occurrence of one date record for dedup
func (s *OccasionScheduler) enqueuedKey(d businessflow.DueDate) string {
	return fmt.Sprintf("%s:%s:%s", utils.OccasionEnqueuedKeyPrefix, d.Record.UUID, d.OccursAt.Format("2006-01-02"))
}

func (s *OccasionScheduler) processOccasion(ctx context.Context, d businessflow.DueDate) error {
	if s.redisClient != nil {
		acquired, err := s.redisClient.SetNX(ctx, s.enqueuedKey(d), 1, enqueuedKeyTTL).Result()
		if err != nil {
			return fmt.Errorf("acquire dedup marker: %w", err)
		}
		if !acquired {
			return nil
		}
	}

	reminder := &services.OccasionReminder{
		DateID:          d.Record.UUID,
		ContactID:       d.Record.ContactID,
		Occasion:        d.Record.Type,
		Label:           d.Record.Label,
		OccursAt:        d.OccursAt,
		EmailTemplateID: d.Record.EmailTemplateID,
	}
	if err := s.notifier.SendOccasionReminder(ctx, reminder); err != nil {
		// Drop the marker so the next tick retries delivery
		if s.redisClient != nil {
			s.redisClient.Del(ctx, s.enqueuedKey(d))
		}
		return fmt.Errorf("send reminder: %w", err)
	}

	s.logger.Printf("scheduler: occasion id=%d contact=%s enqueued for %s", d.Record.ID, d.Record.ContactID, d.OccursAt.Format(time.RFC3339))
	return nil
}
