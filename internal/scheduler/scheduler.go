package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/config"
	"prep-checkin-go/internal/fetcher"
	"prep-checkin-go/internal/metrics"
	"prep-checkin-go/internal/models"
	"prep-checkin-go/internal/notify"
	"prep-checkin-go/internal/pipeline"
)

// RunLog records per-message outcomes and the processed-message marker.
// Satisfied by repository.Repository.
type RunLog interface {
	IsMessageProcessed(messageID string) (bool, error)
	MarkMessageProcessed(messageID string) error
	LogCheckin(messageID, orderNumber, status string, appended int, errorMsg string) error
}

// Scheduler manages the periodic check-in processing
type Scheduler struct {
	cron      *cron.Cron
	entryID   cron.EntryID
	config    *config.SchedulerConfig
	fetcher   fetcher.EmailFetcher
	pipeline  *pipeline.Pipeline
	runLog    RunLog
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex

	// runMu serializes processing cycles. The dedup check and the append
	// are a read-then-write against the shared sheet, so two overlapping
	// cycles could both read before either appends.
	runMu sync.Mutex
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.SchedulerConfig, f fetcher.EmailFetcher, p *pipeline.Pipeline, runLog RunLog, n notify.Notifier, m *metrics.Metrics) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		config:   cfg,
		fetcher:  f,
		pipeline: p,
		runLog:   runLog,
		notifier: n,
		metrics:  m,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	// A stopped scheduler leaves a cancelled context and a stopped cron
	// behind; rebuild both so Start works again after Stop.
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
		s.cron = cron.New(cron.WithSeconds())
	}

	// Schedule the job to run every N minutes
	schedule := fmt.Sprintf("0 */%d * * * *", s.config.IntervalMinutes)

	entryID, err := s.cron.AddFunc(schedule, s.processMessages)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	logrus.Infof("Scheduler started with interval: %d minutes", s.config.IntervalMinutes)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.cancel()

	ctx := s.cron.Stop()

	select {
	case <-ctx.Done():
		logrus.Info("Scheduler stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Scheduler stop timeout, forcing shutdown")
	}

	s.isRunning = false
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// processMessages is the cron entry point. A cycle still in flight (a slow
// previous firing or a manual run) makes this firing a no-op.
func (s *Scheduler) processMessages() {
	if !s.runMu.TryLock() {
		logrus.Warn("Previous processing cycle still running, skipping this firing")
		return
	}
	defer s.runMu.Unlock()

	s.runCycle()
}

// runCycle fetches new messages and runs each through the pipeline.
// Callers must hold runMu: messages are handled strictly sequentially
// because the dedup check and append against the shared sheet are not safe
// under concurrent writers.
func (s *Scheduler) runCycle() {
	s.wg.Add(1)
	defer s.wg.Done()

	logrus.Info("Starting check-in processing cycle")

	s.mu.RLock()
	if !s.isRunning {
		s.mu.RUnlock()
		logrus.Info("Scheduler not running, skipping processing cycle")
		return
	}
	s.mu.RUnlock()

	startTime := time.Now()

	s.metrics.PullCount.Inc()

	emails, err := s.fetcher.FetchNewEmails(s.ctx)
	if err != nil {
		logrus.Errorf("Failed to fetch messages: %v", err)
		if nerr := s.notifier.NotifyFailure(s.ctx, "Check-in fetch failed", err.Error()); nerr != nil {
			logrus.Errorf("Failed to send failure notification: %v", nerr)
		}
		return
	}

	logrus.Infof("Fetched %d new messages", len(emails))

	for _, email := range emails {
		s.metrics.MessagesSeen.Inc()
		if err := s.processMessage(email); err != nil {
			logrus.Errorf("Failed to process message %s: %v", email.ID, err)
		}
	}

	duration := time.Since(startTime)
	s.metrics.ProcessingTime.Observe(duration.Seconds())
	logrus.Infof("Check-in processing cycle completed in %v", duration)
}

// processMessage processes a single message
func (s *Scheduler) processMessage(email models.EmailMessage) error {
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("context cancelled")
	default:
	}

	processed, err := s.runLog.IsMessageProcessed(email.ID)
	if err != nil {
		return fmt.Errorf("failed to check if message is processed: %w", err)
	}

	if processed {
		logrus.Debugf("Message %s already processed, skipping", email.ID)
		return nil
	}

	outcome := s.pipeline.ProcessMessage(s.ctx, email)

	errMsg := outcome.Reason
	if outcome.Err != nil {
		errMsg = outcome.Err.Error()
	}
	if err := s.runLog.LogCheckin(email.ID, outcome.OrderNumber, outcome.Status, outcome.Appended, errMsg); err != nil {
		logrus.Errorf("Failed to log check-in outcome: %v", err)
	}

	// Errored messages stay unmarked so the next cycle retries them.
	if outcome.Status == models.StatusError {
		return outcome.Err
	}

	if err := s.fetcher.MarkHandled(s.ctx, email.ID); err != nil {
		logrus.Errorf("Failed to mark message %s as handled: %v", email.ID, err)
	}
	if err := s.runLog.MarkMessageProcessed(email.ID); err != nil {
		logrus.Errorf("Failed to record processed message: %v", err)
	}

	logrus.Infof("Processed message %s: status=%s appended=%d duplicates=%d", email.ID, outcome.Status, outcome.Appended, outcome.Duplicates)
	return nil
}

// RunOnce runs the check-in processing once (for manual triggering). A
// cycle already in flight is an error rather than a second concurrent run.
func (s *Scheduler) RunOnce() error {
	if !s.runMu.TryLock() {
		return fmt.Errorf("a processing cycle is already running")
	}
	defer s.runMu.Unlock()

	logrus.Info("Running check-in processing once")
	s.runCycle()
	return nil
}

// GetNextRun returns the time of the next scheduled run
func (s *Scheduler) GetNextRun() time.Time {
	if !s.isRunning {
		return time.Time{}
	}

	entry := s.cron.Entry(s.entryID)
	return entry.Next
}

// GetLastRun returns the time of the last run
func (s *Scheduler) GetLastRun() time.Time {
	if !s.isRunning {
		return time.Time{}
	}

	entry := s.cron.Entry(s.entryID)
	return entry.Prev
}

// Wait waits for the scheduler to stop
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
