// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultReaperSchedule runs the reaper every 15 minutes.
const DefaultReaperSchedule = "*/15 * * * *"

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// StaleSessionCloser ends reading sessions left open for too long.
type StaleSessionCloser interface {
	CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error)
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// SessionReaper periodically closes reading sessions whose reader never
// reported a close, e.g. a tab that was killed.
type SessionReaper struct {
	sessions StaleSessionCloser
	schedule string
	maxAge   time.Duration

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool

	// Guarded separately so a running job never waits on Stop.
	ctxMu sync.Mutex
	ctx   context.Context
}

// NewSessionReaper creates a reaper closing sessions older than maxAge.
func NewSessionReaper(sessions StaleSessionCloser, schedule string, maxAge time.Duration) *SessionReaper {
	if schedule == "" {
		schedule = DefaultReaperSchedule
	}
	return &SessionReaper{
		sessions: sessions,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start schedules the reaper. It stops when ctx is cancelled.
func (s *SessionReaper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule session reaper: %w", err)
	}
	s.entryID = entryID

	s.ctxMu.Lock()
	s.ctx = ctx
	s.ctxMu.Unlock()

	s.cron.Start()
	s.isRunning = true

	log.Printf("Session reaper: started with schedule '%s', closing sessions older than %v", s.schedule, s.maxAge)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *SessionReaper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("Session reaper: stopped")
}

// IsRunning reports whether the reaper is scheduled.
func (s *SessionReaper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the reaper runs next, or nil when stopped.
func (s *SessionReaper) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

// RunNow closes stale sessions immediately.
func (s *SessionReaper) RunNow() {
	s.ctxMu.Lock()
	ctx := s.ctx
	s.ctxMu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	closed, err := s.sessions.CloseStaleSessions(ctx, s.maxAge)
	if err != nil {
		log.Printf("Session reaper: failed: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("Session reaper: closed %d sessions", closed)
	}
}
